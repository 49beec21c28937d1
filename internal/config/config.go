package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Dir is the name of the user and project configuration directory.
const Dir = ".pulse"

// Config is the top-level configuration structure.
type Config struct {
	Pipeline  string         `yaml:"pipeline"`
	Provider  ProviderConfig `yaml:"provider"`
	Schedule  ScheduleConfig `yaml:"schedule"`
	LogLevel  string         `yaml:"log_level"`
	LogFormat string         `yaml:"log_format"`
	LogFile   bool           `yaml:"log_file"`
}

type ProviderConfig struct {
	Endpoint    string  `yaml:"endpoint"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	APITimeout  string  `yaml:"api_timeout"`
}

type ScheduleConfig struct {
	Interval string `yaml:"interval"`
	Backoff  string `yaml:"backoff"`
}

// Validate checks that required fields are present. Credentials are not
// checked here; a missing key fails the first cycle instead.
func (c *Config) Validate() error {
	if c.Pipeline == "" {
		return fmt.Errorf("pipeline is required")
	}
	if c.Provider.Endpoint == "" {
		return fmt.Errorf("provider.endpoint is required")
	}
	if c.Provider.Model == "" {
		return fmt.Errorf("provider.model is required")
	}
	if c.Provider.Temperature < 0 || c.Provider.Temperature > 2 {
		return fmt.Errorf("provider.temperature must be between 0 and 2, got %v", c.Provider.Temperature)
	}
	if _, err := positiveDuration("provider.api_timeout", c.Provider.APITimeout); err != nil {
		return err
	}
	if _, err := positiveDuration("schedule.interval", c.Schedule.Interval); err != nil {
		return err
	}
	if _, err := positiveDuration("schedule.backoff", c.Schedule.Backoff); err != nil {
		return err
	}
	return nil
}

func positiveDuration(field, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", field, s)
	}
	return d, nil
}

// APIKey returns the resolved API key.
func (c *Config) APIKey() string {
	if c.Provider.APIKeyEnv == "" {
		return os.Getenv("OPENAI_API_KEY")
	}
	return os.Getenv(c.Provider.APIKeyEnv)
}

// APITimeout returns the HTTP timeout, falling back to 120s when unparseable.
func (c *Config) APITimeout() time.Duration {
	if d, err := time.ParseDuration(c.Provider.APITimeout); err == nil && d > 0 {
		return d
	}
	return 120 * time.Second
}

// Interval returns the sleep after a successful cycle. Call Validate first.
func (c *Config) Interval() time.Duration {
	d, _ := time.ParseDuration(c.Schedule.Interval)
	return d
}

// Backoff returns the sleep after a failed cycle. Call Validate first.
func (c *Config) Backoff() time.Duration {
	d, _ := time.ParseDuration(c.Schedule.Backoff)
	return d
}

// Load resolves config from defaults → user → project → explicit file → env.
// A .env file in the working directory is loaded first without overriding
// variables already set. explicitPath may be empty.
func Load(explicitPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := defaults()

	// user-level config
	home, err := os.UserHomeDir()
	if err == nil {
		userPath := filepath.Join(home, Dir, "config.yaml")
		if err := mergeFile(cfg, userPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	// project-level config
	projectPath := filepath.Join(Dir, "config.yaml")
	if err := mergeFile(cfg, projectPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	// explicit file must exist
	if explicitPath != "" {
		if err := mergeFile(cfg, explicitPath); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", explicitPath, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func mergeFile(dst *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err == nil {
		if p, ok := raw["provider"].(map[string]interface{}); ok {
			if _, hasKey := p["api_key"]; hasKey {
				return fmt.Errorf("configuration field 'provider.api_key' is not supported in %s. "+
					"Store the key in an environment variable or .env file and name it with provider.api_key_env", path)
			}
		}
	}
	return yaml.Unmarshal(data, dst)
}

// applyEnv lets OPENAI_BASE_URL override the endpoint, matching the
// conventions of OpenAI-compatible SDKs.
func applyEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.Provider.Endpoint = v
	}
	if v := os.Getenv("PULSE_MODEL"); v != "" {
		cfg.Provider.Model = v
	}
	if v := os.Getenv("PULSE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func defaults() *Config {
	return &Config{
		Pipeline: "analyst",
		Provider: ProviderConfig{
			Endpoint:    "https://api.deepseek.com/v1",
			APIKeyEnv:   "OPENAI_API_KEY",
			Model:       "deepseek-chat",
			Temperature: 0.7,
			APITimeout:  "120s",
		},
		Schedule: ScheduleConfig{
			Interval: "5m",
			Backoff:  "1m",
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Defaults returns the built-in configuration.
func Defaults() *Config { return defaults() }
