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
	"github.com/google/grouplist/core/columns"
)

// Record is a read-only row of a dataset.
//
// RawValue returns the untyped value of a column, or nil when the record has
// no value for it. FormattedValue returns the display string, or "" when the
// record has no value for it.
type Record interface {
	ID() string
	RawValue(column string) any
	FormattedValue(column string) string
}

// row is a Record backed by a row of a DataTable
type row struct {
	table *DataTable
	index uint32
	id    string
}

func (r *row) ID() string {
	return r.id
}

func (r *row) RawValue(column string) any {
	col := r.table.GetColumn(column)
	if col == nil {
		return nil
	}
	v, err := col.GetValue(r.index)
	if err != nil {
		return nil
	}
	return v
}

func (r *row) FormattedValue(column string) string {
	col := r.table.GetColumn(column)
	if col == nil {
		return ""
	}
	s, err := col.GetString(r.index)
	if err != nil {
		return columns.ErrorLabel
	}
	return s
}

// StaticRecord is a Record whose values are held in maps. A column present in
// Raw but not in Formatted is formatted as "".
type StaticRecord struct {
	RecordID  string
	Raw       map[string]any
	Formatted map[string]string
}

func (r *StaticRecord) ID() string {
	return r.RecordID
}

func (r *StaticRecord) RawValue(column string) any {
	return r.Raw[column]
}

func (r *StaticRecord) FormattedValue(column string) string {
	return r.Formatted[column]
}
