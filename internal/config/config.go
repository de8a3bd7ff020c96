package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the application's configuration model.
// It captures the listen address, upstream credentials and the warehouse source.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Social    SocialConfig    `yaml:"social"`
	LLM       LLMConfig       `yaml:"llm"`
	Warehouse WarehouseConfig `yaml:"warehouse"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	ListenAddr string `yaml:"listenAddr"`
	// GinMode is "debug", "release" or "test".
	GinMode string `yaml:"ginMode"`
}

type SocialConfig struct {
	BaseURL string `yaml:"baseURL"`
	// Raw API token; it is base64-encoded once for HTTP Basic auth.
	// If empty, read from env PHYLLO_API_TOKEN
	APIToken string `yaml:"apiToken"`
	// Client-side rate limit
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
	// MaxAttempts of 1 disables retries on 429/5xx.
	MaxAttempts    int `yaml:"maxAttempts"`
	BaseBackoffMS  int `yaml:"baseBackoffMs"`
	TimeoutSeconds int `yaml:"timeoutSeconds"`
	ContentLimit   int `yaml:"contentLimit"`
	// PreferredPlatform selects the profile by work platform name, e.g. "Instagram".
	PreferredPlatform string `yaml:"preferredPlatform"`
	// RefreshHistoric asks the provider to re-fetch content before listing it.
	RefreshHistoric bool `yaml:"refreshHistoric"`
}

type LLMConfig struct {
	BaseURL     string `yaml:"baseURL"`
	Model       string `yaml:"model"`
	SearchModel string `yaml:"searchModel"`
	// If empty, read from env OPENAI_API_KEY
	APIKey         string `yaml:"apiKey"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

type WarehouseConfig struct {
	Driver string `yaml:"driver"` // "json" or "sqlite"
	Path   string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{ListenAddr: ":3000", GinMode: "release"},
		Social: SocialConfig{
			BaseURL:        "https://api.staging.getphyllo.com/v1",
			RPS:            2,
			Burst:          10,
			MaxAttempts:    1,
			BaseBackoffMS:  500,
			TimeoutSeconds: 30,
			ContentLimit:   100,
		},
		LLM: LLMConfig{
			BaseURL:        "https://api.openai.com/v1",
			Model:          "gpt-4o-mini",
			SearchModel:    "gpt-4o",
			TimeoutSeconds: 120,
		},
		Warehouse: WarehouseConfig{Driver: "json", Path: "./data/warehouse.json"},
		Log:       LogConfig{Level: "info"},
	}
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(files ...string) []string {
	if len(files) == 0 {
		files = []string{".env", ".env.local"}
	}
	loaded := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			continue
		}
		loaded = append(loaded, f)
	}
	return loaded
}

// ResolveEnv fills in config fields from environment variables.
// Secrets are only read when not set in the file; the rest override.
func (c *Config) ResolveEnv() {
	if c.Social.APIToken == "" {
		c.Social.APIToken = os.Getenv("PHYLLO_API_TOKEN")
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.Server.ListenAddr = v
	} else if v := os.Getenv("PORT"); v != "" {
		c.Server.ListenAddr = ":" + v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		c.Server.GinMode = v
	}
	if v := os.Getenv("WAREHOUSE_DRIVER"); v != "" {
		c.Warehouse.Driver = v
	}
	if v := os.Getenv("WAREHOUSE_PATH"); v != "" {
		c.Warehouse.Path = v
	}
	if v := os.Getenv("SOCIAL_PREFERRED_PLATFORM"); v != "" {
		c.Social.PreferredPlatform = v
	}
	if v := os.Getenv("SOCIAL_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Social.MaxAttempts = n
		}
	}
}

// Validate reports missing required settings.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if strings.TrimSpace(c.Social.APIToken) == "" {
		missing = append(missing, "PHYLLO_API_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	switch c.Warehouse.Driver {
	case "json", "sqlite":
	default:
		return fmt.Errorf("unknown warehouse driver %q", c.Warehouse.Driver)
	}
	return nil
}

// Load reads YAML config from path on top of Default. A missing file is not
// an error; the defaults and environment are used instead.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	cfg.ResolveEnv()
	return cfg, nil
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func (c SocialConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c SocialConfig) BaseBackoff() time.Duration {
	return time.Duration(c.BaseBackoffMS) * time.Millisecond
}

func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
