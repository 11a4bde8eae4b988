package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/vytor/flashdeck/internal/logger"
)

type Config struct {
	// Study UI.
	Addr          string
	APIBaseURL    string
	NotifyDisplay time.Duration
	NotifyExit    time.Duration

	// Reference backend.
	BackendAddr string
	DBPath      string

	LogLevel string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:          envOr("ADDR", ":8080"),
		APIBaseURL:    envOr("API_BASE_URL", "http://localhost:8000"),
		NotifyDisplay: envDurationOr("NOTIFY_DISPLAY", 3*time.Second),
		NotifyExit:    envDurationOr("NOTIFY_EXIT", 300*time.Millisecond),
		BackendAddr:   envOr("BACKEND_ADDR", ":8000"),
		DBPath:        envOr("DB_PATH", "file:flashdeck.db"),
		LogLevel:      envOr("LOG_LEVEL", "INFO"),
	}
}

// RegisterFlags binds command-line overrides for c onto fs. Current field
// values become the flag defaults, so call it after Load.
func (c *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen address of the study UI")
	fs.StringVar(&c.APIBaseURL, "api-base-url", c.APIBaseURL, "base URL of the flashcard REST API")
	fs.DurationVar(&c.NotifyDisplay, "notify-display", c.NotifyDisplay, "how long a notification stays visible")
	fs.DurationVar(&c.NotifyExit, "notify-exit", c.NotifyExit, "exit transition after a notification is dismissed")
	fs.StringVar(&c.BackendAddr, "backend-addr", c.BackendAddr, "listen address of the reference backend")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "SQLite database path of the reference backend")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "DEBUG, INFO, WARN or ERROR")
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("API_BASE_URL cannot be empty"))
	} else if u, err := url.Parse(c.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.APIBaseURL))
	}
	if c.NotifyDisplay <= 0 {
		errs = append(errs, fmt.Errorf("NOTIFY_DISPLAY must be positive, got %s", c.NotifyDisplay))
	}
	if c.NotifyExit < 0 {
		errs = append(errs, fmt.Errorf("NOTIFY_EXIT cannot be negative, got %s", c.NotifyExit))
	}
	if strings.TrimSpace(c.BackendAddr) == "" {
		errs = append(errs, errors.New("BACKEND_ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	if !logger.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}

	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
