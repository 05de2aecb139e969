package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/show-me-the-data/internal/common"
	"github.com/Veraticus/show-me-the-data/internal/controller"
	"github.com/Veraticus/show-me-the-data/internal/tui"
	"github.com/Veraticus/show-me-the-data/internal/tui/themes"
)

func dashboardCmd() *cobra.Command {
	var (
		mouse     bool
		recordDir string
	)

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		Long: `Open the terminal dashboard: type a message, press ctrl+s to analyze and
register it, and browse events per category.`,
	}
	category := addCategoryFlag(cmd)
	cmd.Flags().BoolVar(&mouse, "mouse", false, "enable mouse support")
	cmd.Flags().StringVar(&recordDir, "record", "", "write every frame to a new directory under this path")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		initial, err := category(cfg)
		if err != nil {
			return err
		}

		// The alt screen owns stderr while the dashboard runs.
		logger, closeLog, err := fileLogger(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return err
		}
		defer closeLog()

		client, err := newStoreClient(cfg)
		if err != nil {
			return err
		}

		ctrl := controller.New(client, controller.Options{
			OwnerID:      cfg.API.OwnerID,
			DiscardStale: cfg.Sync.DiscardStale,
		}, logger)

		opts := []tui.Option{
			tui.WithController(ctrl),
			tui.WithTheme(themes.GetTheme(cfg.UI.Theme)),
			tui.WithCategory(initial),
			tui.WithLocation(localTime()),
			tui.WithMouse(mouse),
		}
		if recordDir != "" {
			rec, recErr := tui.NewRecorder(recordDir)
			if recErr != nil {
				return recErr
			}
			defer func() {
				_ = rec.Close()
				fmt.Fprintf(cmd.ErrOrStderr(), "Recorded %d frames to %s\n", rec.Frames(), rec.Dir())
			}()
			opts = append(opts, tui.WithRecorder(rec))
		}

		logger.Info("dashboard starting",
			"api", cfg.API.BaseURL,
			"category", string(initial),
			"record", recordDir != "")

		return tui.Run(cmd.Context(), opts...)
	}

	return cmd
}

// fileLogger opens path for appending and returns a logger writing to it.
func fileLogger(path, level, format string) (*slog.Logger, func(), error) {
	slogLevel, err := common.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // path comes from config
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger, err := common.NewLogger(f, slogLevel, format)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	slog.SetDefault(logger)

	return logger, func() { _ = f.Close() }, nil
}
