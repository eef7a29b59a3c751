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
	"github.com/google/grouplist/core/grouping"
	"github.com/google/grouplist/core/tables"
)

// GroupingResult is the JSON form of a grouped dataset
type GroupingResult struct {
	Source  string         `json:"source"`
	Grouped []string       `json:"grouped"`
	Columns []ColumnResult `json:"columns"`
	Groups  []GroupResult  `json:"groups"`
	Records []RecordResult `json:"records"`
}

type ColumnResult struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	VisualWeight int    `json:"visualWeight"`
	IsGrouped    bool   `json:"isGrouped"`
}

type GroupResult struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	StartIndex int    `json:"startIndex"`
	Count      int    `json:"count"`
}

type RecordResult struct {
	ID     string            `json:"id"`
	Values map[string]string `json:"values"`
}

// BuildGroupingResult groups every record of ds by the named columns.
// Unknown names are ignored. Groups is empty when nothing is grouped.
func BuildGroupingResult(source string, ds *tables.Dataset, grouped []string) GroupingResult {
	selection := grouping.SelectionFromNames(grouped, ds.Columns)
	groups, records := grouping.GroupRecords(ds.OrderedRecords(), selection)

	result := GroupingResult{
		Source:  source,
		Grouped: selection.Names(),
		Groups:  make([]GroupResult, len(groups)),
		Records: make([]RecordResult, len(records)),
	}
	for _, h := range grouping.Headers(ds.Columns, selection) {
		result.Columns = append(result.Columns, ColumnResult{
			Name:         h.Column.Name(),
			DisplayName:  h.Column.DisplayName(),
			VisualWeight: h.Column.VisualWeight(),
			IsGrouped:    h.IsGrouped,
		})
	}
	for i, g := range groups {
		result.Groups[i] = GroupResult{Key: g.Key, Label: g.Label, StartIndex: g.StartIndex, Count: g.Count}
	}
	for i, r := range records {
		values := make(map[string]string, len(ds.Columns))
		for _, c := range ds.Columns {
			values[c.Name()] = grouping.DisplayValue(r, c)
		}
		result.Records[i] = RecordResult{ID: r.ID(), Values: values}
	}
	return result
}
