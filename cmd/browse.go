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
	"github.com/google/grouplist/core/tui"
	"github.com/spf13/cobra"
)

var browseOpts listOptions

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse a grouped list in the terminal",
	Long: `Show a source in the terminal. Press 1-9 to toggle grouping by the nth
column, j/k to scroll and q to quit.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	addListFlags(browseCmd, &browseOpts)
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	manager, err := newManager(cfg)
	if err != nil {
		return err
	}
	q, err := browseOpts.toQuery(manager)
	if err != nil {
		return err
	}
	ds, err := loadDataset(manager, q)
	if err != nil {
		return err
	}
	return tui.Run(ds, q.Source, "grouplist", q.GroupedColumns)
}
