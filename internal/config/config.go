// Copyright (c) 2025 EnglishMate Authors
// SPDX-License-Identifier: MIT

// Package config loads tool configuration from the environment and an
// optional ~/.englishmate/config.yaml file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds runtime configuration. API keys are not here — they
// live in the user settings inside the document store.
type Config struct {
	// Storage selects the backend: "sqlite" or "memory".
	Storage string `mapstructure:"storage"`
	// DBPath overrides the SQLite database location.
	DBPath string `mapstructure:"db_path"`
	// LogLevel: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration. Environment variables use the ENGLISHMATE_
// prefix (e.g. ENGLISHMATE_STORAGE=memory) and override the file.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("storage", "sqlite")
	v.SetDefault("db_path", "")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("englishmate")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(home, ".englishmate"))
		if err := v.ReadInConfig(); err != nil {
			// A missing file is fine; a malformed one is not.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
