// ABOUTME: Centralized configuration for the brand memory tools
// ABOUTME: Layers defaults, an optional TOML file, then environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/harper/brand-memory/internal/models"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for brand memory
type Config struct {
	// Storage
	DBPath string

	// OpenAI settings
	OpenAIKey     string
	OpenAIBaseURL string
	ChatModel     string
	Timeout       time.Duration
	MaxRetries    int
	RetryDelay    time.Duration

	// HTTP API
	HTTPAddr string

	// Compose defaults
	MaxLearnings    int
	MaxPatterns     int
	MaxVoiceSamples int
}

// Defaults returns the built-in configuration. An empty DBPath means the XDG data dir.
func Defaults() *Config {
	return &Config{
		ChatModel:       "gpt-4o-mini",
		Timeout:         30 * time.Second,
		MaxRetries:      3,
		RetryDelay:      2 * time.Second,
		HTTPAddr:        ":8080",
		MaxLearnings:    5,
		MaxPatterns:     10,
		MaxVoiceSamples: 5,
	}
}

// Path returns the config file location: $BRANDMEM_CONFIG or $XDG_CONFIG_HOME/brandmem/config.toml
func Path() string {
	if p := os.Getenv("BRANDMEM_CONFIG"); p != "" {
		return p
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, "brandmem", "config.toml")
}

// Load reads the default config file and environment variables
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the given config file (missing is fine) and applies environment overrides
func LoadFrom(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			var file fileConfig
			if err := toml.Unmarshal(data, &file); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
			if err := file.applyTo(cfg); err != nil {
				return nil, fmt.Errorf("invalid config %s: %w", path, err)
			}
		}
	}

	cfg.DBPath = getEnv("BRANDMEM_DB_PATH", cfg.DBPath)
	cfg.OpenAIKey = getEnv("OPENAI_API_KEY", cfg.OpenAIKey)
	cfg.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", cfg.OpenAIBaseURL)
	cfg.ChatModel = getEnv("BRANDMEM_OPENAI_MODEL", cfg.ChatModel)
	cfg.Timeout = getEnvDuration("OPENAI_TIMEOUT", cfg.Timeout)
	cfg.MaxRetries = getEnvInt("OPENAI_MAX_RETRIES", cfg.MaxRetries)
	cfg.RetryDelay = getEnvDuration("OPENAI_RETRY_DELAY", cfg.RetryDelay)
	cfg.HTTPAddr = getEnv("BRANDMEM_HTTP_ADDR", cfg.HTTPAddr)
	cfg.MaxLearnings = getEnvInt("BRANDMEM_MAX_LEARNINGS", cfg.MaxLearnings)
	cfg.MaxPatterns = getEnvInt("BRANDMEM_MAX_PATTERNS", cfg.MaxPatterns)
	cfg.MaxVoiceSamples = getEnvInt("BRANDMEM_MAX_VOICE_SAMPLES", cfg.MaxVoiceSamples)

	return cfg, cfg.Validate()
}

// Validate checks ranges
func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("OPENAI_TIMEOUT must be positive, got %v", c.Timeout)
	}
	if c.MaxLearnings < 1 || c.MaxPatterns < 1 || c.MaxVoiceSamples < 1 {
		return fmt.Errorf("compose caps must be at least 1, got learnings=%d patterns=%d voice_samples=%d",
			c.MaxLearnings, c.MaxPatterns, c.MaxVoiceSamples)
	}
	if c.HTTPAddr == "" {
		return errors.New("BRANDMEM_HTTP_ADDR must not be empty")
	}
	return nil
}

// ComposeOptions returns the default compose options with the configured caps
func (c *Config) ComposeOptions() models.ComposeOptions {
	opts := models.DefaultComposeOptions()
	opts.MaxLearnings = c.MaxLearnings
	opts.MaxPatterns = c.MaxPatterns
	opts.MaxVoiceSamples = c.MaxVoiceSamples
	return opts
}

// fileConfig mirrors Config with durations as strings and every field optional
type fileConfig struct {
	DBPath          *string `toml:"db_path,omitempty"`
	OpenAIKey       *string `toml:"openai_api_key,omitempty"`
	OpenAIBaseURL   *string `toml:"openai_base_url,omitempty"`
	ChatModel       *string `toml:"openai_model,omitempty"`
	Timeout         *string `toml:"openai_timeout,omitempty"`
	MaxRetries      *int    `toml:"openai_max_retries,omitempty"`
	RetryDelay      *string `toml:"openai_retry_delay,omitempty"`
	HTTPAddr        *string `toml:"http_addr,omitempty"`
	MaxLearnings    *int    `toml:"max_learnings,omitempty"`
	MaxPatterns     *int    `toml:"max_patterns,omitempty"`
	MaxVoiceSamples *int    `toml:"max_voice_samples,omitempty"`
}

func (f fileConfig) applyTo(cfg *Config) error {
	setString(&cfg.DBPath, f.DBPath)
	setString(&cfg.OpenAIKey, f.OpenAIKey)
	setString(&cfg.OpenAIBaseURL, f.OpenAIBaseURL)
	setString(&cfg.ChatModel, f.ChatModel)
	setString(&cfg.HTTPAddr, f.HTTPAddr)
	setInt(&cfg.MaxRetries, f.MaxRetries)
	setInt(&cfg.MaxLearnings, f.MaxLearnings)
	setInt(&cfg.MaxPatterns, f.MaxPatterns)
	setInt(&cfg.MaxVoiceSamples, f.MaxVoiceSamples)

	if f.Timeout != nil {
		d, err := time.ParseDuration(*f.Timeout)
		if err != nil {
			return fmt.Errorf("openai_timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if f.RetryDelay != nil {
		d, err := time.ParseDuration(*f.RetryDelay)
		if err != nil {
			return fmt.Errorf("openai_retry_delay: %w", err)
		}
		cfg.RetryDelay = d
	}
	return nil
}

// Marshal renders the config as TOML, durations as strings
func (c *Config) Marshal() ([]byte, error) {
	timeout := c.Timeout.String()
	delay := c.RetryDelay.String()
	return toml.Marshal(fileConfig{
		DBPath:          &c.DBPath,
		OpenAIBaseURL:   &c.OpenAIBaseURL,
		ChatModel:       &c.ChatModel,
		Timeout:         &timeout,
		MaxRetries:      &c.MaxRetries,
		RetryDelay:      &delay,
		HTTPAddr:        &c.HTTPAddr,
		MaxLearnings:    &c.MaxLearnings,
		MaxPatterns:     &c.MaxPatterns,
		MaxVoiceSamples: &c.MaxVoiceSamples,
	})
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
