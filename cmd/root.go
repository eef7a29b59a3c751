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

// Package cmd implements the grouplist command line.
package cmd

import (
	"fmt"

	"github.com/google/grouplist/core/config"
	"github.com/google/grouplist/core/logging"
	"github.com/google/grouplist/datasources"
	"github.com/google/grouplist/demo"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "grouplist",
	Short: "Group ordered records by columns",
	Long: `grouplist lists the records of CSV and protobuf data sources and groups
them by any ordered set of columns. Groups appear in the order their first
record appears.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is ./grouplist.yaml or $HOME/.config/grouplist/grouplist.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// loadConfig reads the config selected by the --config flag
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	v := viper.GetViper()
	if err := config.Init(v, cfgFile); err != nil {
		return nil, err
	}
	return config.Load(v)
}

// newLogger builds the logger described by cfg
func newLogger(cfg *config.Config) zerolog.Logger {
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Pretty: cfg.Logging.Pretty,
	})
}

// newManager registers the loaders and the configured sources
func newManager(cfg *config.Config) (*datasources.Manager, error) {
	formatter := cfg.Formatter()
	m := datasources.NewManager()
	m.RegisterLoader(datasources.NewCsvLoader(formatter))
	m.RegisterLoader(datasources.NewProtoLoader(formatter))
	m.SetBaseDir(cfg.DataDir)

	if cfg.Demo {
		if err := demo.Register(m, formatter); err != nil {
			return nil, fmt.Errorf("failed to register demo source: %w", err)
		}
	}
	for _, source := range cfg.Sources {
		if err := m.AddSource(source); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// defaultSource is the source used when --source is not given
func defaultSource(m *datasources.Manager) (string, error) {
	names := m.GetSourceNames()
	if len(names) == 0 {
		return "", fmt.Errorf("no data sources configured")
	}
	return names[0], nil
}
