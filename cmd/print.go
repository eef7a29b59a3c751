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
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/grouplist/core/query"
	"github.com/google/grouplist/core/rendering"
	"github.com/google/grouplist/core/tables"
	"github.com/google/grouplist/core/views"
	"github.com/google/grouplist/datasources"
	"github.com/spf13/cobra"
)

// listOptions selects what print and browse show
type listOptions struct {
	Source  string
	Grouped []string
	Sort    []string
	Filter  string
	Limit   int
	Width   int
	JSON    bool
}

var printOpts listOptions

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print a grouped list",
	Long: `Print the records of a source grouped by the given columns, in order.

Examples:
  grouplist print --group status
  grouplist print --group status,region --sort -amount --filter 'quantity > 1'
  grouplist print --group category --json`,
	Args: cobra.NoArgs,
	RunE: runPrint,
}

func init() {
	addListFlags(printCmd, &printOpts)
	printCmd.Flags().IntVar(&printOpts.Limit, "limit", 0, "maximum number of records to print (0 prints all)")
	printCmd.Flags().IntVar(&printOpts.Width, "width", rendering.DefaultTextWidth, "line width")
	printCmd.Flags().BoolVar(&printOpts.JSON, "json", false, "print the grouping result as JSON")
	rootCmd.AddCommand(printCmd)
}

func addListFlags(cmd *cobra.Command, opts *listOptions) {
	cmd.Flags().StringVarP(&opts.Source, "source", "s", "", "data source (default: the first configured)")
	cmd.Flags().StringSliceVarP(&opts.Grouped, "group", "g", nil, "columns to group by, in order")
	cmd.Flags().StringSliceVar(&opts.Sort, "sort", nil, "sort columns, prefix with - for descending")
	cmd.Flags().StringVarP(&opts.Filter, "filter", "f", "", "filter expression, e.g. 'status == \"Open\"'")
}

func runPrint(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	manager, err := newManager(cfg)
	if err != nil {
		return err
	}
	return printList(cmd.OutOrStdout(), manager, printOpts)
}

// toQuery converts the flags to the list state used by the web surface
func (o listOptions) toQuery(m *datasources.Manager) (*query.Query, error) {
	source := o.Source
	if source == "" {
		var err error
		if source, err = defaultSource(m); err != nil {
			return nil, err
		}
	}
	q := &query.Query{
		Path:           "/list",
		Source:         source,
		GroupedColumns: o.Grouped,
		Filter:         o.Filter,
		Limit:          o.Limit,
	}
	for _, s := range o.Sort {
		if len(s) > 1 && s[0] == '-' {
			q.Sort = append(q.Sort, tables.SortColumn{Name: s[1:], Descending: true})
		} else {
			q.Sort = append(q.Sort, tables.SortColumn{Name: s})
		}
	}
	return q, nil
}

// loadDataset loads the source of q and applies its filter and sort
func loadDataset(m *datasources.Manager, q *query.Query) (*tables.Dataset, error) {
	table, err := m.LoadData(q.Source)
	if err != nil {
		return nil, err
	}
	return views.BuildDataset(table, q)
}

func printList(w io.Writer, m *datasources.Manager, opts listOptions) error {
	q, err := opts.toQuery(m)
	if err != nil {
		return err
	}
	ds, err := loadDataset(m, q)
	if err != nil {
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views.BuildGroupingResult(q.Source, ds, q.GroupedColumns))
	}

	vm := views.BuildListViewModel(ds, q, q.Source)
	if err := vm.CheckGroups(); err != nil {
		return fmt.Errorf("invalid grouping: %w", err)
	}
	return rendering.RenderText(w, vm, rendering.TextOptions{Width: opts.Width})
}
