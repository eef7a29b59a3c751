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

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/grouplist/core/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve grouped lists over HTTP",
	Long: `Start the web interface. Clicking a column header groups the list by that
column; clicking it again removes the column from the grouping.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (default from config, 8097)")
	serveCmd.Flags().Bool("debug", false, "check every list for partition errors")
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.debug", serveCmd.Flags().Lookup("debug"))
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	manager, err := newManager(cfg)
	if err != nil {
		return err
	}

	s, err := server.NewServer(manager, logger, server.Options{
		Title:     "grouplist",
		Subtitle:  "Pick a data source, then click column headers to group",
		PageLimit: cfg.Server.PageLimit,
		Debug:     cfg.Server.Debug,
	})
	if err != nil {
		return err
	}
	if err := s.Start(cfg.Server.Address()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", s.Addr())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}
