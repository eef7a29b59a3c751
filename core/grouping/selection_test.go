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
	"strings"
	"sync"
	"testing"

	"github.com/google/grouplist/core/columns"
)

func names(s Selection) string {
	return strings.Join(s.Names(), ",")
}

func TestToggle(t *testing.T) {
	regionCol := columns.NewColumnDef("region", "Region", 0)

	tests := []struct {
		name   string
		start  Selection
		column *columns.ColumnDef
		want   string
	}{
		{"add to empty", Selection{}, statusCol, "status"},
		{"append at end", Selection{statusCol}, priorityCol, "status,priority"},
		{"remove first", Selection{statusCol, priorityCol, regionCol}, statusCol, "priority,region"},
		{"remove middle", Selection{statusCol, priorityCol, regionCol}, priorityCol, "status,region"},
		{"remove last", Selection{statusCol, priorityCol}, priorityCol, "status"},
		{"remove only", Selection{statusCol}, statusCol, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Toggle(tt.start, tt.column)
			if names(got) != tt.want {
				t.Errorf("Toggle() = [%s], want [%s]", names(got), tt.want)
			}
		})
	}
}

func TestToggleMatchesByName(t *testing.T) {
	// a different object for the same logical column
	sameStatus := columns.NewColumnDef("status", "Status (renamed)", 50)

	s := Toggle(Selection{statusCol, priorityCol}, sameStatus)
	if names(s) != "priority" {
		t.Errorf("expected status to be removed by name, got [%s]", names(s))
	}
	if !(Selection{statusCol}).Contains("status") {
		t.Error("Contains should match by name")
	}
}

func TestToggleSymmetry(t *testing.T) {
	regionCol := columns.NewColumnDef("region", "Region", 0)
	starts := []Selection{
		{},
		{statusCol},
		{statusCol, priorityCol},
		{priorityCol, regionCol, statusCol},
	}
	for _, start := range starts {
		for _, c := range []*columns.ColumnDef{statusCol, priorityCol, regionCol, xCol} {
			got := Toggle(Toggle(start, c), c)
			// toggling a selected column twice moves it to the end, so only
			// unselected columns round-trip to the exact same order
			if start.Contains(c.Name()) {
				if len(got) != len(start) || !got.Contains(c.Name()) {
					t.Errorf("Toggle twice of selected %s on [%s] = [%s]", c.Name(), names(start), names(got))
				}
				continue
			}
			if names(got) != names(start) {
				t.Errorf("Toggle twice of %s on [%s] = [%s]", c.Name(), names(start), names(got))
			}
		}
	}
}

func TestToggleDoesNotModifyInput(t *testing.T) {
	backing := make(Selection, 1, 4)
	backing[0] = statusCol

	added := Toggle(backing, priorityCol)
	other := Toggle(backing, xCol)
	if names(added) != "status,priority" || names(other) != "status,x" {
		t.Errorf("toggles from one snapshot interfered: [%s] and [%s]", names(added), names(other))
	}

	start := Selection{statusCol, priorityCol}
	Toggle(start, statusCol)
	if names(start) != "status,priority" {
		t.Errorf("input selection modified: [%s]", names(start))
	}
}

func TestSelectionFromNames(t *testing.T) {
	available := []*columns.ColumnDef{statusCol, priorityCol, xCol}
	s := SelectionFromNames([]string{"x", "unknown", "status", "x"}, available)
	if names(s) != "x,status" {
		t.Errorf("SelectionFromNames = [%s], want [x,status]", names(s))
	}
	if len(SelectionFromNames(nil, available)) != 0 {
		t.Error("expected empty selection")
	}
}

func TestHeaders(t *testing.T) {
	headers := Headers([]*columns.ColumnDef{statusCol, priorityCol, xCol}, Selection{xCol, statusCol})
	want := []bool{true, false, true}
	for i, h := range headers {
		if h.IsGrouped != want[i] {
			t.Errorf("header %s IsGrouped = %v, want %v", h.Column.Name(), h.IsGrouped, want[i])
		}
	}
}

func TestStateToggle(t *testing.T) {
	st := NewState(nil)
	st.Toggle(statusCol)
	st.Toggle(priorityCol)
	if got := names(st.Selection()); got != "status,priority" {
		t.Errorf("selection = [%s], want [status,priority]", got)
	}
	st.Toggle(statusCol)
	if got := names(st.Selection()); got != "priority" {
		t.Errorf("selection = [%s], want [priority]", got)
	}

	// the returned copy is not the committed state
	s := st.Selection()
	s[0] = xCol
	if got := names(st.Selection()); got != "priority" {
		t.Errorf("state changed through a returned copy: [%s]", got)
	}
}

func TestStateConcurrentToggles(t *testing.T) {
	cols := make([]*columns.ColumnDef, 50)
	for i := range cols {
		cols[i] = columns.NewColumnDef(strings.Repeat("c", i+1), "", 0)
	}

	st := NewState(nil)
	var wg sync.WaitGroup
	for _, c := range cols {
		wg.Add(1)
		go func(c *columns.ColumnDef) {
			defer wg.Done()
			st.Toggle(c)
		}(c)
	}
	wg.Wait()

	// every toggle was applied against the previous result, none were lost
	if got := len(st.Selection()); got != len(cols) {
		t.Errorf("expected %d selected columns, got %d", len(cols), got)
	}
}
