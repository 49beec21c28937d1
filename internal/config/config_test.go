package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()
	if cfg.Provider.Model != "deepseek-chat" {
		t.Errorf("expected model deepseek-chat, got %q", cfg.Provider.Model)
	}
	if cfg.Interval() != 5*time.Minute {
		t.Errorf("expected interval 5m, got %s", cfg.Interval())
	}
	if cfg.Backoff() != time.Minute {
		t.Errorf("expected backoff 1m, got %s", cfg.Backoff())
	}
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty endpoint", func(c *Config) { c.Provider.Endpoint = "" }},
		{"empty model", func(c *Config) { c.Provider.Model = "" }},
		{"empty pipeline", func(c *Config) { c.Pipeline = "" }},
		{"temperature too high", func(c *Config) { c.Provider.Temperature = 3 }},
		{"zero interval", func(c *Config) { c.Schedule.Interval = "0s" }},
		{"negative backoff", func(c *Config) { c.Schedule.Backoff = "-1s" }},
		{"garbage interval", func(c *Config) { c.Schedule.Interval = "soon" }},
		{"bad timeout", func(c *Config) { c.Provider.APITimeout = "x" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaults()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestMergeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("log_level: debug\nschedule:\n  interval: 30s\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := defaults()
	if err := mergeFile(cfg, path); err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected 'debug', got %q", cfg.LogLevel)
	}
	if cfg.Schedule.Interval != "30s" {
		t.Errorf("expected interval 30s, got %q", cfg.Schedule.Interval)
	}
	if cfg.Schedule.Backoff != "1m" {
		t.Errorf("unset fields should keep defaults, got backoff %q", cfg.Schedule.Backoff)
	}
}

func TestMergeFileNotExist(t *testing.T) {
	cfg := defaults()
	err := mergeFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil || !os.IsNotExist(err) {
		t.Errorf("expected os.IsNotExist error, got %v", err)
	}
}

func TestMergeFileRejectsInlineKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("provider:\n  api_key: sk-abc\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := mergeFile(defaults(), path); err == nil {
		t.Error("expected error for inline api_key, got nil")
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoadLayering(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("PULSE_MODEL", "")
	t.Setenv("PULSE_LOG_LEVEL", "")
	chdir(t, work)

	if err := os.MkdirAll(filepath.Join(home, Dir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, Dir, "config.yaml"), []byte("log_level: warn\nprovider:\n  model: user-model\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(Dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(Dir, "config.yaml"), []byte("provider:\n  model: project-model\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected user log level, got %q", cfg.LogLevel)
	}
	if cfg.Provider.Model != "project-model" {
		t.Errorf("project config should win, got %q", cfg.Provider.Model)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	t.Setenv("OPENAI_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("PULSE_MODEL", "")
	t.Setenv("PULSE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Provider.Endpoint != "http://localhost:9999/v1" {
		t.Errorf("expected env endpoint, got %q", cfg.Provider.Endpoint)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected env log level, got %q", cfg.LogLevel)
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	work := t.TempDir()
	chdir(t, work)
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("PULSE_MODEL", "")
	t.Setenv("PULSE_LOG_LEVEL", "")
	t.Setenv("PULSE_DOTENV_KEY", "")
	os.Unsetenv("PULSE_DOTENV_KEY")

	if err := os.WriteFile(".env", []byte("PULSE_DOTENV_KEY=sk-from-dotenv\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile("custom.yaml", []byte("provider:\n  api_key_env: PULSE_DOTENV_KEY\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("custom.yaml")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIKey() != "sk-from-dotenv" {
		t.Errorf("expected key from .env, got %q", cfg.APIKey())
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	if _, err := Load("missing.yaml"); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestAPITimeoutFallback(t *testing.T) {
	cfg := defaults()
	cfg.Provider.APITimeout = "bogus"
	if cfg.APITimeout() != 120*time.Second {
		t.Errorf("expected fallback timeout, got %s", cfg.APITimeout())
	}
}
