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

package tables

import (
	"strings"
	"testing"

	"github.com/google/grouplist/core/columns"
)

// createTestTable builds an orders table with id, status and amount columns
func createTestTable(t *testing.T) *DataTable {
	t.Helper()
	table := NewDataTable()

	ids := columns.NewStringColumn(columns.NewColumnDef("id", "ID", 0))
	status := columns.NewStringColumn(columns.NewColumnDef("status", "Status", 0))
	amount := columns.NewDecimalColumn(columns.NewColumnDef("amount", "Amount", 0), nil)

	rows := [][]string{
		{"o1", "Open", "10"},
		{"o2", "Closed", "5.5"},
		{"o3", "Open", ""},
		{"o4", "Pending", "5.5"},
	}
	for _, r := range rows {
		ids.Append(r[0])
		status.Append(r[1])
		if err := amount.AppendString(r[2]); err != nil {
			t.Fatalf("AppendString(%q) failed: %v", r[2], err)
		}
	}
	table.AddColumn(ids)
	table.AddColumn(status)
	table.AddColumn(amount)
	return table
}

func recordIDs(ds *Dataset) string {
	return strings.Join(ds.SortedRecordIDs, ",")
}

func TestDataTableColumnOrder(t *testing.T) {
	table := createTestTable(t)
	names := table.GetColumnNames()
	if strings.Join(names, ",") != "id,status,amount" {
		t.Errorf("unexpected column order: %v", names)
	}

	// replacing a column keeps its position
	table.AddColumn(columns.NewStringColumn(columns.NewColumnDef("status", "State", 0)))
	defs := table.ColumnDefs()
	if defs[1].DisplayName() != "State" {
		t.Errorf("expected replaced column at position 1, got %q", defs[1].DisplayName())
	}
	if len(defs) != 3 {
		t.Errorf("expected 3 columns, got %d", len(defs))
	}
}

func TestRecordIDs(t *testing.T) {
	table := createTestTable(t)
	if id := table.Record(2).ID(); id != "row-2" {
		t.Errorf("default record id = %q, want row-2", id)
	}

	if err := table.SetIDColumn("id"); err != nil {
		t.Fatalf("SetIDColumn failed: %v", err)
	}
	if id := table.Record(2).ID(); id != "o3" {
		t.Errorf("record id = %q, want o3", id)
	}

	if err := table.SetIDColumn("status"); err == nil {
		t.Error("expected error for id column with duplicate values")
	}
	if err := table.SetIDColumn("missing"); err == nil {
		t.Error("expected error for unknown id column")
	}
	if err := table.SetIDColumn("amount"); err == nil {
		t.Error("expected error for id column with empty values")
	}
}

func TestRecordValues(t *testing.T) {
	table := createTestTable(t)
	r := table.Record(1)

	if got := r.FormattedValue("amount"); got != "5.50" {
		t.Errorf("FormattedValue(amount) = %q, want 5.50", got)
	}
	if got := r.RawValue("amount"); got == nil {
		t.Error("RawValue(amount) should not be nil")
	}
	if got := r.RawValue("missing"); got != nil {
		t.Errorf("RawValue(missing) = %v, want nil", got)
	}
	if got := r.FormattedValue("missing"); got != "" {
		t.Errorf("FormattedValue(missing) = %q, want empty", got)
	}
	if got := table.Record(2).RawValue("amount"); got != nil {
		t.Errorf("RawValue of empty cell = %v, want nil", got)
	}
	if got := table.Record(99).FormattedValue("status"); got != columns.ErrorLabel {
		t.Errorf("FormattedValue out of range = %q, want %q", got, columns.ErrorLabel)
	}
}

func TestDatasetSorting(t *testing.T) {
	table := createTestTable(t)
	if err := table.SetIDColumn("id"); err != nil {
		t.Fatalf("SetIDColumn failed: %v", err)
	}

	tests := []struct {
		name string
		sort []SortColumn
		want string
	}{
		{"table order", nil, "o1,o2,o3,o4"},
		{"ascending is stable", []SortColumn{{Name: "amount"}}, "o3,o2,o4,o1"},
		{"descending", []SortColumn{{Name: "amount", Descending: true}}, "o1,o2,o4,o3"},
		{"multi column", []SortColumn{{Name: "amount"}, {Name: "status", Descending: true}}, "o3,o4,o2,o1"},
		{"unknown column ignored", []SortColumn{{Name: "nope"}}, "o1,o2,o3,o4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := table.Dataset(DatasetOptions{Sort: tt.sort})
			if err != nil {
				t.Fatalf("Dataset failed: %v", err)
			}
			if got := recordIDs(ds); got != tt.want {
				t.Errorf("order = %s, want %s", got, tt.want)
			}
		})
	}
}

type statusFilter string

func (f statusFilter) Match(r Record) (bool, error) {
	return r.RawValue("status") == string(f), nil
}

func TestDatasetFilter(t *testing.T) {
	table := createTestTable(t)
	ds, err := table.Dataset(DatasetOptions{Filter: statusFilter("Open")})
	if err != nil {
		t.Fatalf("Dataset failed: %v", err)
	}
	if got := recordIDs(ds); got != "row-0,row-2" {
		t.Errorf("filtered ids = %s, want row-0,row-2", got)
	}
	if len(ds.Records) != 2 {
		t.Errorf("expected 2 records, got %d", len(ds.Records))
	}
	if ds.Column("status") == nil || ds.Column("nope") != nil {
		t.Error("Column lookup by name is wrong")
	}
}

func TestNewDatasetRejectsDuplicateIDs(t *testing.T) {
	records := []Record{
		&StaticRecord{RecordID: "a"},
		&StaticRecord{RecordID: "a"},
	}
	if _, err := NewDataset(nil, records); err == nil {
		t.Error("expected error for duplicate record ids")
	}
}

func TestOrderedRecordsPanicsOnMissingRecord(t *testing.T) {
	ds := &Dataset{
		SortedRecordIDs: []string{"a", "b"},
		Records:         map[string]Record{"a": &StaticRecord{RecordID: "a"}},
	}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected OrderedRecords to panic")
		}
		if !strings.Contains(r.(string), `"b"`) {
			t.Errorf("panic message should name the missing id, got %v", r)
		}
	}()
	ds.OrderedRecords()
}
