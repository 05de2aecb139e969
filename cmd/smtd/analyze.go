package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/show-me-the-data/internal/cli"
	"github.com/Veraticus/show-me-the-data/internal/common"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Analyze a message and register the event",
		Long: `Send a message to the event service for extraction and storage.
The text is read from the arguments, or from stdin when none are given.`,
		Example: `  smtd analyze --category work "김철수 클라이언트: 목요일 3시에 미팅합시다."
  pbpaste | smtd analyze -c order`,
	}
	category := addCategoryFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		mode, err := category(cfg)
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		if text == "" {
			data, readErr := io.ReadAll(cmd.InOrStdin())
			if readErr != nil {
				return fmt.Errorf("failed to read stdin: %w", readErr)
			}
			text = string(data)
		}
		if strings.TrimSpace(text) == "" {
			return common.NewUserError("nothing to analyze: pass text as an argument or on stdin", common.ErrEmptyText)
		}

		client, err := newStoreClient(cfg)
		if err != nil {
			return err
		}

		result, err := client.CreateEvent(cmd.Context(), mode, text, cfg.API.OwnerID)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatError(common.AnalysisFailedMessage))
			return serviceError(cfg, "analyze text", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, cli.FormatSuccess(result.AnalysisSummary))
		fmt.Fprintln(out, cli.RenderEventDetail(result.Record, localTime()))
		fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("tokens used: %d", result.TokensUsed)))
		return nil
	}

	return cmd
}
