package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RINKSIDE_CONFIG",
		"RINKSIDE_REST_PORT",
		"RINKSIDE_WS_PORT",
		"RINKSIDE_WS_ALLOWED_ORIGINS",
		"RINKSIDE_POSTGRES_DSN",
		"RINKSIDE_REDIS_URL",
		"RINKSIDE_GAME_CONCURRENCY",
		"RINKSIDE_FETCH_RETRIES",
		"RINKSIDE_CACHE_TTL",
		"RINKSIDE_LOG_LEVEL",
	} {
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.RESTPort != "8080" {
		t.Errorf("RESTPort = %q, want 8080", cfg.RESTPort)
	}
	if cfg.WSPort != "8081" {
		t.Errorf("WSPort = %q, want 8081", cfg.WSPort)
	}
	if cfg.GameConcurrency != 4 {
		t.Errorf("GameConcurrency = %d, want 4", cfg.GameConcurrency)
	}
	if cfg.FetchRetries != 3 {
		t.Errorf("FetchRetries = %d, want 3", cfg.FetchRetries)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("CacheTTL = %v, want 24h", cfg.CacheTTL)
	}
	if cfg.GamecenterBase != "https://api-web.nhle.com/v1" {
		t.Errorf("unexpected GamecenterBase %q", cfg.GamecenterBase)
	}
	if cfg.PostgresDSN != "" || cfg.RedisURL != "" {
		t.Errorf("expected empty DSN/URL defaults, got %q / %q", cfg.PostgresDSN, cfg.RedisURL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("RINKSIDE_REST_PORT", "9090")
	t.Setenv("RINKSIDE_POSTGRES_DSN", "postgres://rinkside@localhost/pbp")
	t.Setenv("RINKSIDE_GAME_CONCURRENCY", "8")
	t.Setenv("RINKSIDE_CACHE_TTL", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.RESTPort != "9090" {
		t.Errorf("RESTPort = %q, want 9090", cfg.RESTPort)
	}
	if cfg.PostgresDSN != "postgres://rinkside@localhost/pbp" {
		t.Errorf("PostgresDSN = %q", cfg.PostgresDSN)
	}
	if cfg.GameConcurrency != 8 {
		t.Errorf("GameConcurrency = %d, want 8", cfg.GameConcurrency)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", cfg.CacheTTL)
	}
	// Untouched fields keep defaults
	if cfg.FetchRetries != 3 {
		t.Errorf("FetchRetries = %d, want 3", cfg.FetchRetries)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "rinkside.yaml")
	content := "rest_port: \"7070\"\nws_port: \"7071\"\nfetch_retries: 5\nredis_url: \"redis://localhost:6379\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("RINKSIDE_CONFIG", path)
	// Env still beats file
	t.Setenv("RINKSIDE_WS_PORT", "7075")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.RESTPort != "7070" {
		t.Errorf("RESTPort = %q, want 7070", cfg.RESTPort)
	}
	if cfg.WSPort != "7075" {
		t.Errorf("WSPort = %q, want 7075 (env over file)", cfg.WSPort)
	}
	if cfg.FetchRetries != 5 {
		t.Errorf("FetchRetries = %d, want 5", cfg.FetchRetries)
	}
	if cfg.RedisURL != "redis://localhost:6379" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
}

func TestAllowedWSOrigins(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"https://app.example.com", []string{"https://app.example.com"}},
		{"https://a.example, https://b.example", []string{"https://a.example", "https://b.example"}},
		{" , ", nil},
	}
	for _, tt := range tests {
		cfg := &Config{WSAllowedOrigins: tt.raw}
		got := cfg.AllowedWSOrigins()
		if len(got) != len(tt.want) {
			t.Errorf("AllowedWSOrigins(%q) = %v, want %v", tt.raw, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("AllowedWSOrigins(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
			}
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("RINKSIDE_CONFIG", "/nonexistent/rinkside.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"empty rest port", "RINKSIDE_REST_PORT", ""},
		{"zero concurrency", "RINKSIDE_GAME_CONCURRENCY", "0"},
		{"zero retries", "RINKSIDE_FETCH_RETRIES", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
