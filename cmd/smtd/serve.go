package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/show-me-the-data/internal/certs"
	"github.com/Veraticus/show-me-the-data/internal/cli"
	"github.com/Veraticus/show-me-the-data/internal/extract"
	"github.com/Veraticus/show-me-the-data/internal/metrics"
	"github.com/Veraticus/show-me-the-data/internal/server"
	"github.com/Veraticus/show-me-the-data/internal/storage"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the event service",
		Long: `Run the HTTP event service the dashboard talks to. Events are extracted
with the configured provider and stored in SQLite.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Stopping event service...")
			ctx := handler.HandleInterrupts(cmd.Context())

			store, err := storage.Open(ctx, cfg.Server.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open event database: %w", err)
			}
			defer func() { _ = store.Close() }()

			extractor, err := extract.New(cfg.Extract)
			if err != nil {
				return err
			}

			srvCfg := server.Config{
				Listen:      cfg.Server.Listen,
				Prefix:      cfg.Server.Prefix,
				CORSOrigins: cfg.Server.CORSOrigins,
			}
			if cfg.Server.TLS {
				certStore := certs.NewStore(cfg.Server.CertDir, certs.HostFromListen(cfg.Server.Listen))
				cert, certErr := certStore.Certificate()
				if certErr != nil {
					return fmt.Errorf("failed to load TLS certificate: %w", certErr)
				}
				certFile, _ := certStore.Paths()
				slog.Info("Serving HTTPS with self-signed certificate", "cert", certFile)
				srvCfg.Certificate = &cert
			}

			srv := server.New(srvCfg, store, extractor, metrics.New(), slog.Default())

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("failed to shut down: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("listen", "", "listen address (default: :8000)")
	cmd.Flags().String("db", "", "SQLite database path (default: ~/.config/smtd/events.db)")
	cmd.Flags().String("extractor", "", "extraction provider (rules, openai)")
	cmd.Flags().Bool("tls", false, "serve HTTPS with a self-signed certificate")
	_ = viper.BindPFlag("server.listen", cmd.Flags().Lookup("listen"))
	_ = viper.BindPFlag("server.db_path", cmd.Flags().Lookup("db"))
	_ = viper.BindPFlag("extract.provider", cmd.Flags().Lookup("extractor"))
	_ = viper.BindPFlag("server.tls", cmd.Flags().Lookup("tls"))

	return cmd
}
