/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config holds the grouplist configuration. Values come from a YAML
// file, GROUPLIST_ environment variables and flags, merged by viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/grouplist/core/columns"
	"github.com/google/grouplist/datasources"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. GROUPLIST_SERVER_PORT
const EnvPrefix = "GROUPLIST"

// Config represents the complete grouplist configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	// Locale is the BCP 47 tag used to format numbers
	Locale string `mapstructure:"locale" validate:"required"`
	// DataDir resolves relative paths in source options
	DataDir string `mapstructure:"data_dir"`
	// Demo registers the embedded orders source
	Demo    bool                       `mapstructure:"demo"`
	Sources []datasources.SourceConfig `mapstructure:"sources" validate:"unique=Name,dive"`
}

// ServerConfig controls the HTTP server
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`
	// Debug checks every rendered list for partition errors
	Debug bool `mapstructure:"debug"`
	// PageLimit is the default number of displayed rows
	PageLimit int `mapstructure:"page_limit" validate:"gte=0"`
}

// LoggingConfig controls the zerolog output
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Pretty bool   `mapstructure:"pretty"`
}

// Address returns host:port for the listener
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default returns a new Config with default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      8097,
			PageLimit: 100,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Locale: "en",
		Demo:   true,
	}
}

// SetDefaults registers the defaults on v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("server.host", defaults.Server.Host)
	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("server.debug", defaults.Server.Debug)
	v.SetDefault("server.page_limit", defaults.Server.PageLimit)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.pretty", defaults.Logging.Pretty)

	v.SetDefault("locale", defaults.Locale)
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("demo", defaults.Demo)
}

// Init prepares v: defaults, environment overrides and the config file.
// An explicit cfgFile must exist; otherwise grouplist.yaml is searched in the
// working directory and ConfigDir, and a missing file is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	// GROUPLIST_SERVER_PORT for server.port
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("grouplist")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// Load reads the configuration from v into a Config struct and validates it.
// Without a data_dir, relative source paths resolve against the directory of
// the config file.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.DataDir == "" && v.ConfigFileUsed() != "" {
		cfg.DataDir = filepath.Dir(v.ConfigFileUsed())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags and the locale
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := columns.NewFormatter(c.Locale); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Formatter returns the formatter for the configured locale.
// The locale must have passed Validate.
func (c *Config) Formatter() *columns.Formatter {
	f, err := columns.NewFormatter(c.Locale)
	if err != nil {
		return columns.DefaultFormatter()
	}
	return f
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "grouplist")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".grouplist"
	}
	return filepath.Join(home, ".config", "grouplist")
}
