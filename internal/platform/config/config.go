package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config is the process configuration, loaded once at startup and passed into constructors.
type Config struct {
	Port string

	Storage StorageConfig
	Email   EmailConfig

	// NotifyTimeout bounds the whole notification step, retries included.
	NotifyTimeout time.Duration

	// CatalogFile optionally points at a YAML option catalog. Empty means built-in defaults.
	CatalogFile string
}

type StorageConfig struct {
	Backend     string
	DatabaseURL string
}

// EmailConfig configures the transactional email provider (Brevo).
type EmailConfig struct {
	APIKey  string
	BaseURL string

	SenderName    string
	SenderAddress string
	Subject       string

	// Timeout applies to each HTTP attempt.
	Timeout    time.Duration
	MaxRetries uint64
	RetryDelay time.Duration
}

// Enabled reports whether email credentials are present.
func (c EmailConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// LoadFromEnv reads configuration from environment variables.
//
// Storage settings are required: choosing the postgres backend without DATABASE_URL is a
// configuration error. Email settings are optional; without BREVO_API_KEY the notification
// step is disabled and every submission degrades to a notification warning.
func LoadFromEnv() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	get := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port: get("PORT", "8080"),
		Storage: StorageConfig{
			Backend:     strings.ToLower(get("STORAGE_BACKEND", StorageMemory)),
			DatabaseURL: get("DATABASE_URL", ""),
		},
		Email: EmailConfig{
			APIKey:        get("BREVO_API_KEY", ""),
			BaseURL:       strings.TrimRight(get("BREVO_BASE_URL", "https://api.brevo.com/v3"), "/"),
			SenderName:    get("EMAIL_SENDER_NAME", "SpiceBox"),
			SenderAddress: get("EMAIL_SENDER_ADDRESS", "admin@myspicebox.com.au"),
			Subject:       get("EMAIL_SUBJECT", "🎉 You're on the SpiceBox Waitlist!"),
			Timeout:       5 * time.Second,
			MaxRetries:    1,
			RetryDelay:    250 * time.Millisecond,
		},
		NotifyTimeout: 10 * time.Second,
		CatalogFile:   get("WAITLIST_CATALOG_FILE", ""),
	}

	switch cfg.Storage.Backend {
	case StorageMemory:
	case StoragePostgres:
		if cfg.Storage.DatabaseURL == "" {
			return Config{}, fmt.Errorf("missing required env var DATABASE_URL for STORAGE_BACKEND=postgres")
		}
	default:
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageMemory, StoragePostgres, cfg.Storage.Backend)
	}

	if v := getenv("EMAIL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("EMAIL_TIMEOUT must be a duration (e.g. 5s): %w", err)
		}
		cfg.Email.Timeout = d
	}
	if v := getenv("EMAIL_RETRY_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("EMAIL_RETRY_DELAY must be a duration (e.g. 250ms): %w", err)
		}
		cfg.Email.RetryDelay = d
	}
	if v := getenv("EMAIL_MAX_RETRIES"); v != "" {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return Config{}, fmt.Errorf("EMAIL_MAX_RETRIES must be a small non-negative integer: %w", err)
		}
		cfg.Email.MaxRetries = n
	}
	if v := getenv("NOTIFY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("NOTIFY_TIMEOUT must be a duration (e.g. 10s): %w", err)
		}
		cfg.NotifyTimeout = d
	}

	return cfg, nil
}
