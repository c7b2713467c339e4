// Package config loads service configuration from defaults, an optional
// YAML file, and environment variables.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config contains process configuration.
type Config struct {
	// RESTPort is the HTTP API listen port.
	RESTPort string `koanf:"rest_port"`

	// WSPort is the WebSocket progress feed listen port.
	WSPort string `koanf:"ws_port"`

	// WSAllowedOrigins is a comma-separated list of origins accepted on
	// WebSocket upgrades. Empty accepts any origin.
	WSAllowedOrigins string `koanf:"ws_allowed_origins"`

	// PostgresDSN configures the event store. Empty disables persistence:
	// games are assembled on demand and never written.
	PostgresDSN string `koanf:"postgres_dsn"`

	// RedisURL configures the document cache and completion stream. Empty
	// disables both.
	RedisURL string `koanf:"redis_url"`

	// GamecenterBase and StatsBase override the NHL API hosts.
	GamecenterBase string `koanf:"gamecenter_base"`
	StatsBase      string `koanf:"stats_base"`
	ReportsBase    string `koanf:"reports_base"`

	// GameConcurrency bounds parallel game assembly during backfills.
	GameConcurrency int `koanf:"game_concurrency"`

	// FetchRetries sets attempts per upstream request.
	FetchRetries int `koanf:"fetch_retries"`

	// CacheTTL bounds how long fetched documents stay cached.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		RESTPort:        "8080",
		WSPort:          "8081",
		PostgresDSN:     "",
		RedisURL:        "",
		GamecenterBase:  "https://api-web.nhle.com/v1",
		StatsBase:       "https://api.nhle.com/stats/rest/en",
		ReportsBase:     "https://www.nhl.com/scores/htmlreports",
		GameConcurrency: 4,
		FetchRetries:    3,
		CacheTTL:        24 * time.Hour,
		LogLevel:        "info",
	}
}

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if RINKSIDE_CONFIG is set
//  3. env (prefix RINKSIDE_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("RINKSIDE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: RINKSIDE_REST_PORT, RINKSIDE_POSTGRES_DSN, ...
	// Underscores are preserved so keys match the koanf tags on the struct.
	envProvider := env.Provider("RINKSIDE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rinkside_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.RESTPort == "" {
		return nil, errors.New("rest_port must not be empty")
	}
	if cfg.GameConcurrency < 1 {
		return nil, errors.New("game_concurrency must be at least 1")
	}
	if cfg.FetchRetries < 1 {
		return nil, errors.New("fetch_retries must be at least 1")
	}
	return &cfg, nil
}

// AllowedWSOrigins splits WSAllowedOrigins into individual origins. Nil when
// the setting is empty.
func (c *Config) AllowedWSOrigins() []string {
	if c.WSAllowedOrigins == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(c.WSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
