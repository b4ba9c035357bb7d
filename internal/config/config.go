// Package config loads seqedit configuration from file, environment and
// defaults, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/astrokit/seqedit/internal/editor"
)

// Config holds the runtime settings.
type Config struct {
	DataDir      string `mapstructure:"data_dir"`
	DatabasePath string `mapstructure:"database_path"`
	HistoryLimit int    `mapstructure:"history_limit"`
	LogLevel     string `mapstructure:"log_level"`
}

// Load reads configuration. A missing config file is fine; environment
// variables use the SEQEDIT_ prefix (SEQEDIT_LOG_LEVEL and so on).
func Load() (*Config, error) {
	v := viper.New()

	dataDir := defaultDataDir()
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("database_path", filepath.Join(dataDir, "seqedit.db"))
	v.SetDefault("history_limit", editor.DefaultHistoryLimit)
	v.SetDefault("log_level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	v.AddConfigPath(".")

	v.SetEnvPrefix("SEQEDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = editor.DefaultHistoryLimit
	}
	return &cfg, nil
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "seqedit")
	}
	return ".seqedit"
}
