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

// Dataset is what a list view is rendered from: columns, records looked up
// by id, and the display order of the record ids.
type Dataset struct {
	Columns         []*columns.ColumnDef
	SortedRecordIDs []string
	Records         map[string]Record
}

// RecordFilter decides whether a record is part of a dataset.
type RecordFilter interface {
	Match(r Record) (bool, error)
}

// DatasetOptions controls how a DataTable is turned into a Dataset.
// Both fields are optional.
type DatasetOptions struct {
	Filter RecordFilter
	Sort   []SortColumn
}

// NewDataset builds a Dataset whose display order is the order of records.
// Record ids must be unique.
func NewDataset(cols []*columns.ColumnDef, records []Record) (*Dataset, error) {
	ds := &Dataset{
		Columns:         cols,
		SortedRecordIDs: make([]string, 0, len(records)),
		Records:         make(map[string]Record, len(records)),
	}
	for _, r := range records {
		if _, exists := ds.Records[r.ID()]; exists {
			return nil, fmt.Errorf("duplicate record id %q", r.ID())
		}
		ds.SortedRecordIDs = append(ds.SortedRecordIDs, r.ID())
		ds.Records[r.ID()] = r
	}
	return ds, nil
}

// OrderedRecords resolves SortedRecordIDs against Records.
//
// An id without a record means the dataset was built incorrectly. Grouping
// such a dataset would silently break the group ranges, so this panics.
func (d *Dataset) OrderedRecords() []Record {
	records := make([]Record, len(d.SortedRecordIDs))
	for i, id := range d.SortedRecordIDs {
		r, ok := d.Records[id]
		if !ok {
			panic(fmt.Sprintf("dataset contract violation: record id %q at position %d has no record", id, i))
		}
		records[i] = r
	}
	return records
}

// Column returns the column with the given name, or nil
func (d *Dataset) Column(name string) *columns.ColumnDef {
	for _, c := range d.Columns {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// Dataset returns the table's records, filtered and sorted according to opts.
func (dt *DataTable) Dataset(opts DatasetOptions) (*Dataset, error) {
	indices := make([]uint32, 0, dt.Length())
	for i := 0; i < dt.Length(); i++ {
		if opts.Filter != nil {
			ok, err := opts.Filter.Match(dt.Record(uint32(i)))
			if err != nil {
				return nil, fmt.Errorf("failed to filter row %d: %w", i, err)
			}
			if !ok {
				continue
			}
		}
		indices = append(indices, uint32(i))
	}

	if len(opts.Sort) > 0 {
		indices = dt.SortIndices(indices, opts.Sort)
	}

	records := make([]Record, len(indices))
	for i, idx := range indices {
		records[i] = dt.Record(idx)
	}
	return NewDataset(dt.ColumnDefs(), records)
}
