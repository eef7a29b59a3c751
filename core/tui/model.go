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

// Package tui is an interactive terminal list. Pressing the number of a
// column toggles grouping by that column.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/grouplist/core/grouping"
	"github.com/google/grouplist/core/query"
	"github.com/google/grouplist/core/rendering"
	"github.com/google/grouplist/core/tables"
	"github.com/google/grouplist/core/views"
)

const (
	defaultWidth  = rendering.DefaultTextWidth
	defaultHeight = 24
	// title, column numbers and help bar
	chromeLines = 3
)

// Model is the Bubbletea model for the terminal list
type Model struct {
	dataset  *tables.Dataset
	source   string
	title    string
	state    *grouping.State
	lines    []string
	offset   int
	width    int
	height   int
	quitting bool
}

// New creates a model for ds, initially grouped by the named columns
func New(ds *tables.Dataset, source, title string, grouped []string) Model {
	m := Model{
		dataset: ds,
		source:  source,
		title:   title,
		state:   grouping.NewState(grouping.SelectionFromNames(grouped, ds.Columns)),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	m.refresh()
	return m
}

// Selection returns the current grouping selection
func (m Model) Selection() grouping.Selection {
	return m.state.Selection()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "down", "j":
			m.scroll(1)
		case "up", "k":
			m.scroll(-1)
		case "pgdown", " ":
			m.scroll(m.pageSize())
		case "pgup":
			m.scroll(-m.pageSize())
		case "g", "home":
			m.offset = 0
		case "G", "end":
			m.offset = m.maxOffset()

		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			n := int(key[0] - '1')
			if n < len(m.dataset.Columns) {
				m.state.Toggle(m.dataset.Columns[n])
				m.offset = 0
				m.refresh()
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(rendering.TitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.columnKeys())
	b.WriteString("\n")

	end := min(m.offset+m.pageSize(), len(m.lines))
	for _, line := range m.lines[m.offset:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(rendering.MutedStyle.Render("1-9 group by column · j/k scroll · q quit"))
	return b.String()
}

// refresh re-evaluates the grouping for the current selection
func (m *Model) refresh() {
	q := &query.Query{
		Path:           "/list",
		Source:         m.source,
		GroupedColumns: m.state.Selection().Names(),
	}
	vm := views.BuildListViewModel(m.dataset, q, m.title)
	m.lines = rendering.TextLines(vm, rendering.TextOptions{Width: m.width, HideTitle: true})
	m.offset = min(m.offset, m.maxOffset())
}

func (m Model) columnKeys() string {
	selection := m.state.Selection()
	parts := make([]string, 0, len(m.dataset.Columns))
	for i, c := range m.dataset.Columns {
		if i >= 9 {
			break
		}
		label := fmt.Sprintf("%d:%s", i+1, c.DisplayName())
		if selection.Contains(c.Name()) {
			label = rendering.GroupedHeaderStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

func (m *Model) scroll(delta int) {
	m.offset = max(0, min(m.offset+delta, m.maxOffset()))
}

func (m Model) pageSize() int {
	return max(1, m.height-chromeLines)
}

func (m Model) maxOffset() int {
	return max(0, len(m.lines)-m.pageSize())
}

// Run starts the terminal list
func Run(ds *tables.Dataset, source, title string, grouped []string) error {
	p := tea.NewProgram(New(ds, source, title, grouped), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
