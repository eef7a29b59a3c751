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

// Package grouping partitions an ordered list of records into contiguous,
// labeled groups.
//
// Records are grouped by a composite key built from the raw values of the
// selected columns. Groups appear in the order their key was first seen, and
// records keep their relative order inside a group. The result is a flattened
// record list plus one Group per key describing the range it occupies.
package grouping

import (
	"fmt"
	"strings"

	"github.com/google/grouplist/core/columns"
	"github.com/google/grouplist/core/orderedmap"
	"github.com/google/grouplist/core/tables"
)

// keyPrefix starts every group key
const keyPrefix = "_"

// Group is a contiguous range of the flattened records sharing one key.
type Group struct {
	Key        string
	Label      string
	StartIndex int
	Count      int
}

// bucket collects the records of one key in scan order
type bucket struct {
	label   string
	records []tables.Record
}

// GroupRecords groups records by the selected columns.
//
// With an empty selection it returns nil groups and records unchanged.
// Otherwise the returned groups partition the returned records: group i
// starts where group i-1 ends and the counts sum to len(records).
//
// Key fragments are concatenated without a delimiter, so different value
// combinations can produce the same key ("1"+"23" and "12"+"3") and are then
// grouped together.
func GroupRecords(records []tables.Record, selection Selection) ([]Group, []tables.Record) {
	if len(selection) == 0 {
		return nil, records
	}

	buckets := orderedmap.New[string, *bucket]()
	for _, r := range records {
		key, label := KeyAndLabel(r, selection)
		if b, ok := buckets.Get(key); ok {
			b.records = append(b.records, r)
			continue
		}
		buckets.Set(key, &bucket{label: label, records: []tables.Record{r}})
	}

	groups := make([]Group, 0, buckets.Len())
	flattened := make([]tables.Record, 0, len(records))
	buckets.Range(func(key string, b *bucket) bool {
		groups = append(groups, Group{
			Key:        key,
			Label:      b.label,
			StartIndex: len(flattened),
			Count:      len(b.records),
		})
		flattened = append(flattened, b.records...)
		return true
	})
	return groups, flattened
}

// KeyAndLabel returns the group key and label of a record.
//
// The key is keyPrefix followed by the raw value of each selected column.
// The label is the formatted value of each selected column followed by a
// single space, so "Open" and "High" give "Open High ".
func KeyAndLabel(r tables.Record, selection Selection) (key, label string) {
	var k, l strings.Builder
	k.WriteString(keyPrefix)
	for _, c := range selection {
		k.WriteString(rawString(r.RawValue(c.Name())))
		l.WriteString(r.FormattedValue(c.Name()))
		l.WriteString(" ")
	}
	return k.String(), l.String()
}

// rawString coerces a raw value to the string used in keys. A missing value
// becomes the empty string.
func rawString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// DisplayValue returns the text shown in the cell of record for column.
// It is the same whether or not the record is grouped.
func DisplayValue(r tables.Record, column *columns.ColumnDef) string {
	return r.FormattedValue(column.Name())
}

// CheckPartition verifies that groups cover [0, n) in order without gaps or overlaps.
func CheckPartition(groups []Group, n int) error {
	next := 0
	for i, g := range groups {
		if g.StartIndex != next {
			return fmt.Errorf("group %d (%q) starts at %d, expected %d", i, g.Key, g.StartIndex, next)
		}
		if g.Count <= 0 {
			return fmt.Errorf("group %d (%q) is empty", i, g.Key)
		}
		next += g.Count
	}
	if next != n {
		return fmt.Errorf("groups cover %d records, expected %d", next, n)
	}
	return nil
}
