package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Intervals IntervalsConfig `yaml:"intervals"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	Auth      AuthConfig      `yaml:"auth"`
	Upload    UploadConfig    `yaml:"upload"`
	DataDir   string          `yaml:"data_dir"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// IntervalsConfig holds destination API credentials. Values left empty here
// fall back to the settings store.
type IntervalsConfig struct {
	APIKey    string `yaml:"api_key"`
	AthleteID string `yaml:"athlete_id"`
	BaseURL   string `yaml:"base_url"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type UploadConfig struct {
	DelayMS int `yaml:"delay_ms"`
}

// Delay returns the inter-upload pause, defaulting to 200ms.
func (u UploadConfig) Delay() time.Duration {
	if u.DelayMS <= 0 {
		return 200 * time.Millisecond
	}
	return time.Duration(u.DelayMS) * time.Millisecond
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix PLANSYNC_ and underscore-separated
// paths:
//
//	PLANSYNC_SERVER_HOST, PLANSYNC_SERVER_PORT,
//	PLANSYNC_INTERVALS_API_KEY, PLANSYNC_INTERVALS_ATHLETE_ID,
//	PLANSYNC_INTERVALS_BASE_URL, PLANSYNC_GEMINI_API_KEY,
//	PLANSYNC_GEMINI_MODEL, PLANSYNC_AUTH_API_KEY,
//	PLANSYNC_UPLOAD_DELAY_MS, PLANSYNC_DATA_DIR
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PLANSYNC_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PLANSYNC_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("PLANSYNC_INTERVALS_API_KEY"); v != "" {
		cfg.Intervals.APIKey = v
	}
	if v := os.Getenv("PLANSYNC_INTERVALS_ATHLETE_ID"); v != "" {
		cfg.Intervals.AthleteID = v
	}
	if v := os.Getenv("PLANSYNC_INTERVALS_BASE_URL"); v != "" {
		cfg.Intervals.BaseURL = v
	}
	if v := os.Getenv("PLANSYNC_GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("PLANSYNC_GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("PLANSYNC_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("PLANSYNC_UPLOAD_DELAY_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.Upload.DelayMS = ms
		}
	}
	if v := os.Getenv("PLANSYNC_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	if c.Upload.DelayMS < 0 {
		return fmt.Errorf("upload.delay_ms must not be negative")
	}
	return nil
}
