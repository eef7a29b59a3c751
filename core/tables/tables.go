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
	"fmt"

	"github.com/google/grouplist/core/columns"
)

// DataTable is a column-oriented table. Columns keep the order in which they
// were added; that order is the display order of the dataset's columns.
type DataTable struct {
	columns  map[string]columns.IDataColumn
	order    []string
	idColumn string
}

func NewDataTable() *DataTable {
	return &DataTable{
		columns: make(map[string]columns.IDataColumn),
	}
}

// AddColumn adds a column, replacing any existing column with the same name
// while keeping its position.
func (dt *DataTable) AddColumn(col columns.IDataColumn) {
	name := col.ColumnDef().Name()
	if _, exists := dt.columns[name]; !exists {
		dt.order = append(dt.order, name)
	}
	dt.columns[name] = col
}

func (dt *DataTable) GetColumn(name string) columns.IDataColumn {
	return dt.columns[name]
}

// GetColumnNames returns the column names in display order
func (dt *DataTable) GetColumnNames() []string {
	names := make([]string, len(dt.order))
	copy(names, dt.order)
	return names
}

// ColumnDefs returns the column definitions in display order
func (dt *DataTable) ColumnDefs() []*columns.ColumnDef {
	defs := make([]*columns.ColumnDef, 0, len(dt.order))
	for _, name := range dt.order {
		defs = append(defs, dt.columns[name].ColumnDef())
	}
	return defs
}

// Length returns the number of rows, taken from the longest column
func (dt *DataTable) Length() int {
	n := 0
	for _, col := range dt.columns {
		if col.Length() > n {
			n = col.Length()
		}
	}
	return n
}

// SetIDColumn makes the values of the named column the record ids.
// The column must exist and hold distinct, non-empty values.
func (dt *DataTable) SetIDColumn(name string) error {
	col := dt.columns[name]
	if col == nil {
		return fmt.Errorf("id column %q not found", name)
	}
	seen := make(map[string]bool, col.Length())
	for i := 0; i < col.Length(); i++ {
		v, err := col.GetValue(uint32(i))
		if err != nil {
			return fmt.Errorf("failed to read id at row %d: %w", i, err)
		}
		if v == nil {
			return fmt.Errorf("id column %q is empty at row %d", name, i)
		}
		id := fmt.Sprint(v)
		if seen[id] {
			return fmt.Errorf("id column %q has duplicate value %q", name, id)
		}
		seen[id] = true
	}
	dt.idColumn = name
	return nil
}

// Record returns the record for row i
func (dt *DataTable) Record(i uint32) Record {
	return &row{table: dt, index: i, id: dt.recordID(i)}
}

func (dt *DataTable) recordID(i uint32) string {
	if dt.idColumn != "" {
		if v, err := dt.columns[dt.idColumn].GetValue(i); err == nil && v != nil {
			return fmt.Sprint(v)
		}
	}
	return fmt.Sprintf("row-%d", i)
}
