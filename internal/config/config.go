// Package config loads application configuration from viper.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/show-me-the-data/internal/common"
	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/spf13/viper"
)

// Config is the fully resolved application configuration.
type Config struct {
	Logging LoggingConfig
	API     APIConfig
	Server  ServerConfig
	Extract ExtractConfig
	UI      UIConfig
	Sync    SyncConfig
}

// APIConfig configures the event store client.
type APIConfig struct {
	OwnerID *string
	// CAFile is a PEM bundle that replaces the system roots, for a service
	// running with a self-signed certificate.
	CAFile  string
	BaseURL string
	Timeout time.Duration
}

// SyncConfig configures the synchronization controller.
type SyncConfig struct {
	DiscardStale bool
}

// UIConfig configures the dashboard.
type UIConfig struct {
	Theme           string
	DefaultCategory model.Category
}

// ServerConfig configures the reference event service.
type ServerConfig struct {
	Listen      string
	Prefix      string
	CORSOrigins string
	DBPath      string
	// CertDir holds the self-signed certificate used when TLS is set.
	CertDir     string
	TLS         bool
}

// ExtractConfig configures text extraction in the reference event service.
type ExtractConfig struct {
	Provider          string
	APIKey            string
	// Model and BaseURL fall back to the provider's defaults when empty.
	Model             string
	BaseURL           string
	MaxRetries        int
	RequestsPerMinute int
	CacheTTL          time.Duration
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("api.owner_id", "")
	v.SetDefault("api.ca_file", "")
	v.SetDefault("client.timeout", time.Duration(0))
	v.SetDefault("sync.discard_stale", false)
	v.SetDefault("ui.theme", "default")
	v.SetDefault("ui.default_category", string(model.DefaultCategory))
	v.SetDefault("server.listen", ":8000")
	v.SetDefault("server.prefix", "/api")
	v.SetDefault("server.cors_origins", "*")
	v.SetDefault("server.db_path", "~/.config/smtd/events.db")
	v.SetDefault("server.tls", false)
	v.SetDefault("server.cert_dir", "~/.config/smtd/certs")
	v.SetDefault("extract.provider", "rules")
	v.SetDefault("extract.model", "")
	v.SetDefault("extract.base_url", "")
	v.SetDefault("extract.max_retries", 3)
	v.SetDefault("extract.requests_per_minute", 60)
	v.SetDefault("extract.cache_ttl", 15*time.Minute)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "~/.config/smtd/smtd.log")
}

// Load reads and validates configuration from v.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	category, err := model.ParseCategory(v.GetString("ui.default_category"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: ui.default_category: %w", common.ErrInvalidConfig, err)
	}

	baseURL := strings.TrimRight(v.GetString("api.base_url"), "/")
	if _, parseErr := url.ParseRequestURI(baseURL); parseErr != nil {
		return Config{}, fmt.Errorf("%w: api.base_url %q", common.ErrInvalidConfig, baseURL)
	}

	timeout := v.GetDuration("client.timeout")
	if timeout < 0 {
		return Config{}, fmt.Errorf("%w: client.timeout must not be negative", common.ErrInvalidConfig)
	}

	cfg := Config{
		API: APIConfig{
			BaseURL: baseURL,
			Timeout: timeout,
			CAFile:  ExpandPath(v.GetString("api.ca_file")),
		},
		Sync: SyncConfig{
			DiscardStale: v.GetBool("sync.discard_stale"),
		},
		UI: UIConfig{
			Theme:           v.GetString("ui.theme"),
			DefaultCategory: category,
		},
		Server: ServerConfig{
			Listen:      v.GetString("server.listen"),
			Prefix:      strings.TrimRight(v.GetString("server.prefix"), "/"),
			CORSOrigins: v.GetString("server.cors_origins"),
			DBPath:      ExpandPath(v.GetString("server.db_path")),
			CertDir:     ExpandPath(v.GetString("server.cert_dir")),
			TLS:         v.GetBool("server.tls"),
		},
		Extract: ExtractConfig{
			Provider:          strings.ToLower(v.GetString("extract.provider")),
			APIKey:            v.GetString("extract.api_key"),
			Model:             v.GetString("extract.model"),
			BaseURL:           strings.TrimRight(v.GetString("extract.base_url"), "/"),
			MaxRetries:        v.GetInt("extract.max_retries"),
			RequestsPerMinute: v.GetInt("extract.requests_per_minute"),
			CacheTTL:          v.GetDuration("extract.cache_ttl"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
			File:   ExpandPath(v.GetString("logging.file")),
		},
	}

	if owner := strings.TrimSpace(v.GetString("api.owner_id")); owner != "" {
		cfg.API.OwnerID = &owner
	}

	switch cfg.Extract.Provider {
	case "rules":
	case "openai", "anthropic":
		if cfg.Extract.APIKey == "" {
			return Config{}, fmt.Errorf("%w: extract.api_key is required for the %s provider", common.ErrMissingConfig, cfg.Extract.Provider)
		}
		if cfg.Extract.RequestsPerMinute < 0 {
			return Config{}, fmt.Errorf("%w: extract.requests_per_minute must not be negative", common.ErrInvalidConfig)
		}
	default:
		return Config{}, fmt.Errorf("%w: unsupported extract.provider %q", common.ErrInvalidConfig, cfg.Extract.Provider)
	}

	return cfg, nil
}

// ExpandPath expands a leading ~ and environment variables in a file path.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return path
	case path == "~" || strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return os.ExpandEnv(path)
}
