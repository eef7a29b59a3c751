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
	"sort"

	"github.com/google/grouplist/core/columns"
)

// SortColumn is one key of a multi-column sort
type SortColumn struct {
	Name       string
	Descending bool
}

// sortableColumn holds a column reference and its sort direction
type sortableColumn struct {
	col        columns.IDataColumn
	descending bool
}

// SortIndices returns indices ordered by sortOrder. The sort is stable, so
// rows that compare equal keep their table order. Unknown column names are
// ignored.
func (dt *DataTable) SortIndices(indices []uint32, sortOrder []SortColumn) []uint32 {
	sortableCols := make([]sortableColumn, 0, len(sortOrder))
	for _, so := range sortOrder {
		if col := dt.GetColumn(so.Name); col != nil {
			sortableCols = append(sortableCols, sortableColumn{
				col:        col,
				descending: so.Descending,
			})
		}
	}

	sorted := make([]uint32, len(indices))
	copy(sorted, indices)
	if len(sortableCols) == 0 {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		for _, sc := range sortableCols {
			cmp := columns.CompareAtIndex(sc.col, sorted[i], sorted[j])
			if cmp != 0 {
				if sc.descending {
					return cmp > 0
				}
				return cmp < 0
			}
		}
		return false
	})
	return sorted
}
