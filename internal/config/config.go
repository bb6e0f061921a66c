package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port int `envconfig:"PORT" default:"8080"`

	// DatabaseURL selects the Postgres store. Empty keeps drawings in SaveDir.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	SaveDir     string `envconfig:"SAVE_DIR" default:"./data/drawings"`

	// Tokens expire after SessionTTL. Sessions with no clients are closed
	// after SessionIdle.
	JWTSecret   string        `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	SessionTTL  time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	SessionIdle time.Duration `envconfig:"SESSION_IDLE" default:"30m"`

	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	ExportWidth    int    `envconfig:"EXPORT_WIDTH" default:"1280"`
	ExportHeight   int    `envconfig:"EXPORT_HEIGHT" default:"720"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.ExportWidth <= 0 || cfg.ExportHeight <= 0 {
		return nil, fmt.Errorf("export size must be positive, got %dx%d", cfg.ExportWidth, cfg.ExportHeight)
	}
	if cfg.SessionIdle <= 0 {
		return nil, fmt.Errorf("SESSION_IDLE must be positive, got %s", cfg.SessionIdle)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	return &cfg, nil
}

// Level maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Origins splits ALLOWED_ORIGINS into its entries.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// OriginHosts strips the scheme from each allowed origin, the form the
// websocket origin check matches against.
func (c *Config) OriginHosts() []string {
	origins := c.Origins()
	hosts := make([]string, len(origins))
	for i, o := range origins {
		_, host, found := strings.Cut(o, "://")
		if !found {
			host = o
		}
		hosts[i] = host
	}
	return hosts
}
