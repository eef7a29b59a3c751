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

package views

import (
	"github.com/google/grouplist/core/columns"
	"github.com/google/grouplist/core/grouping"
	"github.com/google/grouplist/core/query"
	"github.com/google/grouplist/core/tables"
	"github.com/google/safehtml"
)

// ListViewModel contains a grouped list formatted for template consumption
type ListViewModel struct {
	Title      string
	Source     string
	Filter     string
	Headers    []HeaderInfo
	CurrentURL safehtml.URL // Current URL for building toggle links

	// Exactly one of Groups and Rows is populated
	IsGrouped      bool
	GroupedColumns []string // Display names of the grouping columns, in order
	Groups         []GroupView
	Rows           []RowView

	// Pagination info
	TotalRows     int          // Number of records in the dataset
	DisplayedRows int          // Number of rows actually displayed
	HasMoreRows   bool         // True if there are more rows than displayed
	CurrentLimit  int          // Current row limit
	ShowAllURL    safehtml.URL // URL that lifts the limit
}

// HeaderInfo describes a column header. ToggleURL is the header's click
// handler: following it toggles the column in the grouping selection.
type HeaderInfo struct {
	Name          string
	DisplayName   string
	VisualWeight  int
	IsGrouped     bool
	GroupPosition int // 1-based position in the grouping selection, 0 if not grouped
	ToggleURL     safehtml.URL
	SortDirection int // 1 ascending, -1 descending, 0 unsorted
	SortURL       safehtml.URL
}

// GroupView is one contiguous group of rows
type GroupView struct {
	Key        string
	Label      string
	StartIndex int
	Count      int // Size of the whole group, even when Rows is cut by the limit
	Rows       []RowView
}

// RowView is one displayed record. Cells follow the order of Headers.
type RowView struct {
	ID    string
	Cells []string
}

// BuildListViewModel groups the dataset by the columns grouped in q and
// prepares the result for rendering. The limit applies to displayed rows only;
// grouping always sees every record of the dataset.
func BuildListViewModel(ds *tables.Dataset, q *query.Query, title string) ListViewModel {
	selection := grouping.SelectionFromNames(q.GroupedColumns, ds.Columns)

	vm := ListViewModel{
		Title:        title,
		Source:       q.Source,
		Filter:       q.Filter,
		CurrentURL:   q.ToSafeURL(),
		CurrentLimit: q.Limit,
		ShowAllURL:   q.WithLimit(0),
		IsGrouped:    len(selection) > 0,
	}

	for _, h := range grouping.Headers(ds.Columns, selection) {
		position := 0
		if h.IsGrouped {
			position = indexOf(selection, h.Column.Name()) + 1
		}
		vm.Headers = append(vm.Headers, HeaderInfo{
			Name:          h.Column.Name(),
			DisplayName:   h.Column.DisplayName(),
			VisualWeight:  h.Column.VisualWeight(),
			IsGrouped:     h.IsGrouped,
			GroupPosition: position,
			ToggleURL:     q.WithGroupedColumnToggled(h.Column.Name()),
			SortDirection: q.SortDirection(h.Column.Name()),
			SortURL:       q.WithSortToggled(h.Column.Name()),
		})
	}
	for _, c := range selection {
		vm.GroupedColumns = append(vm.GroupedColumns, c.DisplayName())
	}

	groups, records := grouping.GroupRecords(ds.OrderedRecords(), selection)

	vm.TotalRows = len(records)
	rowsToDisplay := vm.TotalRows
	if q.Limit > 0 && q.Limit < vm.TotalRows {
		rowsToDisplay = q.Limit
		vm.HasMoreRows = true
	}
	vm.DisplayedRows = rowsToDisplay

	if !vm.IsGrouped {
		for _, r := range records[:rowsToDisplay] {
			vm.Rows = append(vm.Rows, buildRow(r, ds.Columns))
		}
		return vm
	}

	for _, g := range groups {
		if g.StartIndex >= rowsToDisplay {
			break
		}
		end := min(g.StartIndex+g.Count, rowsToDisplay)
		gv := GroupView{
			Key:        g.Key,
			Label:      g.Label,
			StartIndex: g.StartIndex,
			Count:      g.Count,
		}
		for _, r := range records[g.StartIndex:end] {
			gv.Rows = append(gv.Rows, buildRow(r, ds.Columns))
		}
		vm.Groups = append(vm.Groups, gv)
	}
	return vm
}

func buildRow(r tables.Record, cols []*columns.ColumnDef) RowView {
	row := RowView{ID: r.ID(), Cells: make([]string, len(cols))}
	for i, c := range cols {
		row.Cells[i] = grouping.DisplayValue(r, c)
	}
	return row
}

func indexOf(selection grouping.Selection, name string) int {
	for i, c := range selection {
		if c.Name() == name {
			return i
		}
	}
	return -1
}

// CheckGroups verifies that the displayed groups partition the displayed rows
func (vm ListViewModel) CheckGroups() error {
	if !vm.IsGrouped {
		return nil
	}
	groups := make([]grouping.Group, len(vm.Groups))
	for i, g := range vm.Groups {
		groups[i] = grouping.Group{Key: g.Key, Label: g.Label, StartIndex: g.StartIndex, Count: len(g.Rows)}
	}
	return grouping.CheckPartition(groups, vm.DisplayedRows)
}
