package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the settings of the admin command line
type Config struct {
	BaseURL   string        `mapstructure:"base_url"`
	Username  string        `mapstructure:"username"`
	Password  string        `mapstructure:"password"`
	Timeout   time.Duration `mapstructure:"timeout"`
	TokenFile string        `mapstructure:"token_file"`
	LogLevel  string        `mapstructure:"log_level"`
	ImageBase string        `mapstructure:"image_base"`
}

// Validate checks the loaded settings
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.TokenFile == "" {
		return errors.New("token_file is required")
	}
	return nil
}

// loadConfig reads adminctl.toml and MALLCTL_* variables. An explicit path
// must exist; the default locations are optional.
func loadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("base_url", "http://localhost:8085")
	v.SetDefault("username", "admin")
	v.SetDefault("password", "")
	v.SetDefault("timeout", "30s")
	v.SetDefault("token_file", defaultTokenFile())
	v.SetDefault("log_level", "warn")
	v.SetDefault("image_base", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("adminctl")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "mall4r"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("MALLCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func defaultTokenFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "mall4r", "session.json")
	}
	return ".adminctl-session.json"
}
