package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/show-me-the-data/internal/cli"
	"github.com/Veraticus/show-me-the-data/internal/ics"
	"github.com/Veraticus/show-me-the-data/internal/projection"
	"github.com/Veraticus/show-me-the-data/internal/tui/themes"
)

func exportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a category's events as an iCalendar file",
		Long: `Fetch the events of one category and write them as an .ics calendar that
can be imported into any calendar application.`,
		Example: `  smtd export --category work --out work.ics`,
	}
	category := addCategoryFlag(cmd)
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file, or - for stdout")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		mode, err := category(cfg)
		if err != nil {
			return err
		}

		client, err := newStoreClient(cfg)
		if err != nil {
			return err
		}

		events, err := client.ListEvents(cmd.Context(), mode)
		if err != nil {
			return serviceError(cfg, "list events", err)
		}
		projections := projection.Build(events, themes.Resolve(mode))

		var w io.Writer = cmd.OutOrStdout()
		if outPath != "-" {
			f, createErr := os.Create(outPath) //nolint:gosec // user-chosen output path
			if createErr != nil {
				return fmt.Errorf("failed to create %s: %w", outPath, createErr)
			}
			defer func() { _ = f.Close() }()
			w = f
		}

		skipped, err := ics.Export(w, projections, ics.Options{
			Location: localTime(),
			Name:     "smtd " + mode.Label(),
		})
		if err != nil {
			return fmt.Errorf("failed to write calendar: %w", err)
		}

		if outPath != "-" {
			msg := fmt.Sprintf("Exported %d events to %s", len(projections)-skipped, outPath)
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess(msg))
		}
		if skipped > 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(fmt.Sprintf("%d events without a date were skipped", skipped)))
		}
		return nil
	}

	return cmd
}
