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
	"github.com/google/grouplist/core/filtering"
	"github.com/google/grouplist/core/query"
	"github.com/google/grouplist/core/tables"
)

// BuildDataset applies the filter and the sort of q to table.
func BuildDataset(table *tables.DataTable, q *query.Query) (*tables.Dataset, error) {
	filter, err := filtering.New(q.Filter, table.ColumnDefs())
	if err != nil {
		return nil, err
	}
	return table.Dataset(tables.DatasetOptions{
		Filter: filter,
		Sort:   q.Sort,
	})
}
