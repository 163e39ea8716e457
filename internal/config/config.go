package config

import (
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// DirectoryURL is the page whose first table lists all stations.
	DirectoryURL string `envconfig:"DIRECTORY_URL" default:"https://www.hnd.bayern.de/pegel/meldestufen/tabellen"`

	// BaseURL resolves the relative station links of the directory page.
	BaseURL string `envconfig:"BASE_URL" default:"https://www.hnd.bayern.de"`

	UserAgent   string        `envconfig:"USER_AGENT" default:"PegelCrawler/1.0"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// RateLimit is the minimum interval between two requests to the same host.
	// Zero disables the limiter.
	RateLimit     time.Duration `envconfig:"RATE_LIMIT" default:"500ms"`
	RespectRobots bool          `envconfig:"RESPECT_ROBOTS" default:"true"`

	// Workers > 1 fetches stations in parallel. Output order is unaffected.
	Workers int `envconfig:"WORKERS" default:"1"`

	MasterDataTableClass string `envconfig:"MASTER_DATA_TABLE_CLASS" default:"stammdaten"`

	OutputDir string `envconfig:"OUTPUT_DIR" default:"."`

	// DatabaseURL is optional. When set, records are also written to Postgres.
	DatabaseURL string `envconfig:"DB_URL"`

	// MetricsTextfile is optional. When set, run metrics are written there in
	// the Prometheus text format.
	MetricsTextfile string `envconfig:"METRICS_TEXTFILE"`

	LogLevel  slog.Level `envconfig:"LOG_LEVEL" default:"INFO"`
	LogFormat string     `envconfig:"LOG_FORMAT" default:"text"`
}

// Load processes environment variables and populates the Config struct.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			log.Printf("Warning: .env file found but could not be loaded: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1, got %d", c.Workers)
	}
	for name, raw := range map[string]string{"BASE_URL": c.BaseURL, "DIRECTORY_URL": c.DirectoryURL} {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		if !u.IsAbs() {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.MasterDataTableClass == "" {
		return fmt.Errorf("MASTER_DATA_TABLE_CLASS must not be empty")
	}
	return nil
}
