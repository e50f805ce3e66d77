// Package config loads focusboard settings from config.yaml, FOCUSBOARD_*
// environment variables and built-in defaults, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/sadopc/focusboard/internal/store"
)

const (
	envPrefix = "FOCUSBOARD"

	DefaultModel     = "claude-sonnet-4-5"
	DefaultMaxTokens = 1024
)

type Config struct {
	Store     StoreConfig     `mapstructure:"store"`
	Log       LogConfig       `mapstructure:"log"`
	Assistant AssistantConfig `mapstructure:"assistant"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type AssistantConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int64  `mapstructure:"max_tokens"`
	BaseURL   string `mapstructure:"base_url"`
}

// Enabled reports whether an API key is configured.
func (a AssistantConfig) Enabled() bool {
	return strings.TrimSpace(a.APIKey) != ""
}

// Dir returns the focusboard config directory, e.g. ~/.config/focusboard.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "focusboard"), nil
}

// Load reads the config. An explicit file that does not exist is an error;
// a missing config.yaml in the default directory is not.
func Load(file string) (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("config dir: %w", err)
	}

	v := viper.New()
	setDefaults(v, dir)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.resolve(dir); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("store.backend", store.BackendSQLite)
	v.SetDefault("store.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", filepath.Join(dir, "focusboard.log"))
	v.SetDefault("assistant.api_key", "")
	v.SetDefault("assistant.model", DefaultModel)
	v.SetDefault("assistant.max_tokens", DefaultMaxTokens)
	v.SetDefault("assistant.base_url", "")
}

func (c *Config) resolve(dir string) error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch c.Store.Backend {
	case "", store.BackendSQLite:
		c.Store.Backend = store.BackendSQLite
		if c.Store.Path == "" {
			c.Store.Path = filepath.Join(dir, "focusboard.db")
		}
	case store.BackendDisk:
		if c.Store.Path == "" {
			c.Store.Path = filepath.Join(dir, "data")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	var err error
	if c.Store.Path, err = homedir.Expand(c.Store.Path); err != nil {
		return fmt.Errorf("expand store path: %w", err)
	}
	if c.Log.File != "" {
		if c.Log.File, err = homedir.Expand(c.Log.File); err != nil {
			return fmt.Errorf("expand log file: %w", err)
		}
	}

	if c.Assistant.APIKey == "" {
		c.Assistant.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if c.Assistant.Model == "" {
		c.Assistant.Model = DefaultModel
	}
	if c.Assistant.MaxTokens <= 0 {
		c.Assistant.MaxTokens = DefaultMaxTokens
	}
	return nil
}
