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

package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/grouplist/core/tables"
	"github.com/google/safehtml"
)

// DefaultLimit is the number of rows displayed when the URL has no limit
const DefaultLimit = 100

// Query represents the parsed state of a list view URL.
// The grouping selection lives here, so every header click is a navigation
// to a new URL and the list is recomputed from scratch.
type Query struct {
	// Base path (e.g., "/list")
	Path string

	Source         string              // The data source being viewed
	GroupedColumns []string            // Ordered list of columns to group by
	Sort           []tables.SortColumn // Display order of the dataset
	Filter         string              // Filter expression
	Limit          int                 // Number of rows to display (0 = show all)
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	state := &Query{
		Path:  u.Path,
		Limit: DefaultLimit,
	}

	q := u.Query()

	state.Source = q.Get("source")
	state.Filter = q.Get("filter")
	state.GroupedColumns = splitList(q.Get("grouped"))

	// format: col1,-col2 where - means descending
	for _, part := range splitList(q.Get("sort")) {
		if strings.HasPrefix(part, "-") {
			state.Sort = append(state.Sort, tables.SortColumn{Name: part[1:], Descending: true})
		} else {
			state.Sort = append(state.Sort, tables.SortColumn{Name: part})
		}
	}

	limitStr := q.Get("limit")
	if limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit >= 0 {
			state.Limit = limit
		}
	}

	return state
}

// splitList splits a comma separated list, dropping empty and repeated entries
func splitList(s string) []string {
	result := []string{}
	if s == "" {
		return result
	}
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		result = append(result, part)
	}
	return result
}

// Clone creates a deep copy of the Query
func (s *Query) Clone() *Query {
	clone := &Query{
		Path:           s.Path,
		Source:         s.Source,
		GroupedColumns: make([]string, len(s.GroupedColumns)),
		Sort:           make([]tables.SortColumn, len(s.Sort)),
		Filter:         s.Filter,
		Limit:          s.Limit,
	}
	copy(clone.GroupedColumns, s.GroupedColumns)
	copy(clone.Sort, s.Sort)
	return clone
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()

	if s.Source != "" {
		q.Set("source", s.Source)
	}

	if len(s.GroupedColumns) > 0 {
		q.Set("grouped", strings.Join(s.GroupedColumns, ","))
	}

	if len(s.Sort) > 0 {
		parts := make([]string, len(s.Sort))
		for i, sc := range s.Sort {
			if sc.Descending {
				parts[i] = "-" + sc.Name
			} else {
				parts[i] = sc.Name
			}
		}
		q.Set("sort", strings.Join(parts, ","))
	}

	if s.Filter != "" {
		q.Set("filter", s.Filter)
	}

	// Add limit parameter (always included in URL)
	q.Set("limit", strconv.Itoa(s.Limit))

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}

// WithGroupedColumnToggled returns a URL with the grouped column toggled.
// If the column is already grouped, it's removed from grouping.
// If the column is not grouped, it's added to the end of the grouping order.
func (s *Query) WithGroupedColumnToggled(column string) safehtml.URL {
	newState := s.Clone()
	newState.GroupedColumns = ToggleName(s.GroupedColumns, column)
	return newState.ToSafeURL()
}

// ToggleName removes name from names if present and appends it otherwise.
// names is not modified.
func ToggleName(names []string, name string) []string {
	found := false
	out := make([]string, 0, len(names)+1)
	for _, n := range names {
		if n == name {
			found = true
		} else {
			out = append(out, n)
		}
	}
	if !found {
		out = append(out, name)
	}
	return out
}

// IsColumnGrouped checks if a column is in the grouped columns list
func (s *Query) IsColumnGrouped(column string) bool {
	for _, col := range s.GroupedColumns {
		if col == column {
			return true
		}
	}
	return false
}

// SortDirection returns 1 if the column sorts ascending, -1 if descending and
// 0 if the column is not part of the sort.
func (s *Query) SortDirection(column string) int {
	for _, sc := range s.Sort {
		if sc.Name == column {
			if sc.Descending {
				return -1
			}
			return 1
		}
	}
	return 0
}

// WithSortToggled returns a URL that sorts by column only, cycling
// ascending -> descending -> unsorted.
func (s *Query) WithSortToggled(column string) safehtml.URL {
	newState := s.Clone()
	switch s.SortDirection(column) {
	case 0:
		newState.Sort = []tables.SortColumn{{Name: column}}
	case 1:
		newState.Sort = []tables.SortColumn{{Name: column, Descending: true}}
	default:
		newState.Sort = nil
	}
	return newState.ToSafeURL()
}

// WithLimit returns a URL with a different row limit
func (s *Query) WithLimit(limit int) safehtml.URL {
	newState := s.Clone()
	newState.Limit = limit
	return newState.ToSafeURL()
}
