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

package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/grouplist/core/columns"
	"github.com/google/grouplist/core/tables"
)

func testDataset(t *testing.T, n int) *tables.Dataset {
	t.Helper()
	table := tables.NewDataTable()
	status := columns.NewStringColumn(columns.NewColumnDef("status", "Status", 0))
	region := columns.NewStringColumn(columns.NewColumnDef("region", "Region", 0))
	for i := 0; i < n; i++ {
		status.Append([]string{"Open", "Closed"}[i%2])
		region.Append(fmt.Sprintf("R%d", i%3))
	}
	table.AddColumn(status)
	table.AddColumn(region)
	ds, err := table.Dataset(tables.DatasetOptions{})
	if err != nil {
		t.Fatalf("Dataset failed: %v", err)
	}
	return ds
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestNumberKeysToggleGrouping(t *testing.T) {
	m := New(testDataset(t, 6), "orders", "Orders", nil)

	m = update(t, m, key("2"))
	if got := strings.Join(m.Selection().Names(), ","); got != "region" {
		t.Fatalf("selection = [%s], want [region]", got)
	}
	if !strings.Contains(m.View(), "▸ R0") {
		t.Errorf("expected region groups in view:\n%s", m.View())
	}

	m = update(t, m, key("1"))
	if got := strings.Join(m.Selection().Names(), ","); got != "region,status" {
		t.Fatalf("selection = [%s], want [region,status]", got)
	}

	m = update(t, m, key("2"))
	if got := strings.Join(m.Selection().Names(), ","); got != "status" {
		t.Fatalf("selection = [%s], want [status]", got)
	}

	// no third column
	m = update(t, m, key("3"))
	if got := strings.Join(m.Selection().Names(), ","); got != "status" {
		t.Errorf("selection = [%s], want [status]", got)
	}
}

func TestInitialSelection(t *testing.T) {
	m := New(testDataset(t, 4), "orders", "Orders", []string{"status", "unknown"})
	if got := strings.Join(m.Selection().Names(), ","); got != "status" {
		t.Errorf("selection = [%s], want [status]", got)
	}
}

func TestScrolling(t *testing.T) {
	m := New(testDataset(t, 50), "orders", "Orders", nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 10})

	m = update(t, m, key("k"))
	if m.offset != 0 {
		t.Errorf("offset = %d, scrolling up at the top should stay at 0", m.offset)
	}
	m = update(t, m, key("j"))
	m = update(t, m, key("j"))
	if m.offset != 2 {
		t.Errorf("offset = %d, want 2", m.offset)
	}
	m = update(t, m, key("G"))
	if m.offset != m.maxOffset() || m.offset == 0 {
		t.Errorf("offset = %d, want %d", m.offset, m.maxOffset())
	}

	// toggling jumps back to the top
	m = update(t, m, key("1"))
	if m.offset != 0 {
		t.Errorf("offset = %d after toggle, want 0", m.offset)
	}
}

func TestQuit(t *testing.T) {
	m := New(testDataset(t, 2), "orders", "Orders", nil)
	next, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}
