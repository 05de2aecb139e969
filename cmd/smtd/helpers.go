package main

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/show-me-the-data/internal/cli"
	"github.com/Veraticus/show-me-the-data/internal/common"
	"github.com/Veraticus/show-me-the-data/internal/config"
	"github.com/Veraticus/show-me-the-data/internal/eventstore"
	"github.com/Veraticus/show-me-the-data/internal/model"
)

// envKeyReplacer maps nested keys like api.base_url to SMTD_API_BASE_URL.
var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, common.NewUserError("invalid configuration", err)
	}
	return cfg, nil
}

func newStoreClient(cfg config.Config) (*eventstore.Client, error) {
	storeCfg := eventstore.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}
	if cfg.API.CAFile != "" {
		pem, err := os.ReadFile(cfg.API.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, common.NewUserError("api.ca_file contains no certificates", common.ErrInvalidConfig)
		}
		storeCfg.RootCAs = pool
	}

	client, err := eventstore.New(storeCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create event service client: %w", err)
	}
	return client, nil
}

// addCategoryFlag registers --category and returns a getter that falls back to
// the configured default.
func addCategoryFlag(cmd *cobra.Command) func(config.Config) (model.Category, error) {
	var raw string
	cmd.Flags().StringVarP(&raw, "category", "c", "", "event category (recruit, order, work)")

	return func(cfg config.Config) (model.Category, error) {
		if raw == "" {
			return cfg.UI.DefaultCategory, nil
		}
		category, err := model.ParseCategory(raw)
		if err != nil {
			return "", common.NewUserError(fmt.Sprintf("unknown category %q: use recruit, order or work", raw), err)
		}
		return category, nil
	}
}

// serviceError turns a client error into a message for the terminal.
func serviceError(cfg config.Config, op string, err error) error {
	var storeErr *eventstore.Error
	switch {
	case errors.As(err, &storeErr) && storeErr.StatusCode == http.StatusNotFound:
		return common.NewUserError(fmt.Sprintf("failed to %s: not found", op), err)
	case errors.As(err, &storeErr) && storeErr.StatusCode != 0:
		return common.NewUserError(fmt.Sprintf("failed to %s: service returned status %d", op, storeErr.StatusCode), err)
	case errors.Is(err, eventstore.ErrTransport):
		return common.NewUserError(
			fmt.Sprintf("failed to %s: is the event service running at %s?", op, cfg.API.BaseURL), err)
	default:
		return common.NewUserError(fmt.Sprintf("failed to %s: %v", op, err), err)
	}
}

func localTime() *time.Location {
	return time.Local
}

type eventGetter interface {
	GetEvent(ctx context.Context, id string) (model.EventRecord, error)
}

// deletionStatus looks id up after a delete call. Only a 404 counts as gone.
func deletionStatus(ctx context.Context, store eventGetter, id string) (string, bool) {
	_, err := store.GetEvent(ctx, id)
	if err == nil {
		return cli.FormatWarning(fmt.Sprintf("Event %s still exists", id)), false
	}

	var storeErr *eventstore.Error
	if errors.As(err, &storeErr) && storeErr.StatusCode == http.StatusNotFound {
		return cli.FormatSuccess(fmt.Sprintf("Deleted event %s", id)), true
	}
	return cli.FormatWarning(fmt.Sprintf("Could not verify that event %s was deleted: %v", id, err)), false
}
