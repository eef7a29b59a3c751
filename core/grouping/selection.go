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

package grouping

import (
	"sync"

	"github.com/google/grouplist/core/columns"
)

// Selection is the ordered list of columns records are grouped by.
// Columns are identified by name: two ColumnDefs with the same name are the
// same column. An empty Selection means no grouping.
type Selection []*columns.ColumnDef

// Contains reports whether a column with the given name is selected
func (s Selection) Contains(name string) bool {
	return s.indexOf(name) >= 0
}

func (s Selection) indexOf(name string) int {
	for i, c := range s {
		if c.Name() == name {
			return i
		}
	}
	return -1
}

// Names returns the selected column names in order
func (s Selection) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name()
	}
	return names
}

// Toggle returns a new selection with column removed if a column of the same
// name is selected, or appended at the end otherwise. s is not modified.
func Toggle(s Selection, column *columns.ColumnDef) Selection {
	if i := s.indexOf(column.Name()); i >= 0 {
		out := make(Selection, 0, len(s)-1)
		out = append(out, s[:i]...)
		return append(out, s[i+1:]...)
	}
	out := make(Selection, 0, len(s)+1)
	out = append(out, s...)
	return append(out, column)
}

// SelectionFromNames resolves names against the available columns, keeping
// the order of names. Unknown and repeated names are skipped.
func SelectionFromNames(names []string, available []*columns.ColumnDef) Selection {
	byName := make(map[string]*columns.ColumnDef, len(available))
	for _, c := range available {
		byName[c.Name()] = c
	}
	s := Selection{}
	for _, name := range names {
		c, ok := byName[name]
		if !ok || s.Contains(name) {
			continue
		}
		s = append(s, c)
	}
	return s
}

// State holds the current selection of a list view. Toggles are applied one
// at a time against the last committed selection.
type State struct {
	mu        sync.Mutex
	selection Selection
}

func NewState(initial Selection) *State {
	return &State{selection: append(Selection{}, initial...)}
}

// Selection returns a copy of the current selection
func (st *State) Selection() Selection {
	st.mu.Lock()
	defer st.mu.Unlock()
	return append(Selection{}, st.selection...)
}

// Toggle toggles column in the current selection, commits the result and returns it
func (st *State) Toggle(column *columns.ColumnDef) Selection {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.selection = Toggle(st.selection, column)
	return append(Selection{}, st.selection...)
}
