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

package rendering

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/grouplist/core/views"
)

const (
	// DefaultTextWidth is the line width used when TextOptions.Width is unset
	DefaultTextWidth = 100
	minColumnWidth   = 4
	columnSeparator  = " │ "
)

// TextOptions controls terminal rendering
type TextOptions struct {
	Width     int  // Total line width
	HideTitle bool // Omit the title and summary lines
}

// RenderText writes the list to w as aligned text lines
func RenderText(w io.Writer, vm views.ListViewModel, opts TextOptions) error {
	for _, line := range TextLines(vm, opts) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// TextLines renders the list one line per slice element. Group headers are
// lines of their own, followed by the group's rows.
func TextLines(vm views.ListViewModel, opts TextOptions) []string {
	if opts.Width <= 0 {
		opts.Width = DefaultTextWidth
	}
	widths := columnWidths(vm.Headers, opts.Width)

	var lines []string
	if !opts.HideTitle {
		lines = append(lines, TitleStyle.Render(vm.Title), MutedStyle.Render(summary(vm)))
	}

	headerCells := make([]string, len(vm.Headers))
	for i, h := range vm.Headers {
		if h.IsGrouped {
			text := fmt.Sprintf("[%d] %s", h.GroupPosition, h.DisplayName)
			headerCells[i] = GroupedHeaderStyle.Width(widths[i]).Render(truncate(text, widths[i]))
		} else {
			headerCells[i] = HeaderStyle.Width(widths[i]).Render(truncate(h.DisplayName, widths[i]))
		}
	}
	lines = append(lines, joinCells(headerCells))

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("─", w)
	}
	lines = append(lines, SeparatorStyle.Render(strings.Join(rule, "─┼─")))

	if vm.IsGrouped {
		for _, g := range vm.Groups {
			lines = append(lines, GroupStyle.Render("▸ "+g.Label)+CountStyle.Render(fmt.Sprintf("(%d)", g.Count)))
			for _, r := range g.Rows {
				lines = append(lines, rowLine(r, widths))
			}
		}
	} else {
		for _, r := range vm.Rows {
			lines = append(lines, rowLine(r, widths))
		}
	}

	if vm.HasMoreRows {
		lines = append(lines, MutedStyle.Render(fmt.Sprintf("… %d more records", vm.TotalRows-vm.DisplayedRows)))
	}
	return lines
}

func summary(vm views.ListViewModel) string {
	if vm.IsGrouped {
		return fmt.Sprintf("grouped by %s · %d groups · %d of %d records",
			strings.Join(vm.GroupedColumns, ", "), len(vm.Groups), vm.DisplayedRows, vm.TotalRows)
	}
	return fmt.Sprintf("%d of %d records", vm.DisplayedRows, vm.TotalRows)
}

func rowLine(r views.RowView, widths []int) string {
	cells := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		cells[i] = lipgloss.NewStyle().Width(widths[i]).Render(truncate(c, widths[i]))
	}
	return joinCells(cells)
}

func joinCells(cells []string) string {
	return strings.Join(cells, SeparatorStyle.Render(columnSeparator))
}

// columnWidths splits the line width between columns in proportion to their
// visual weight
func columnWidths(headers []views.HeaderInfo, total int) []int {
	widths := make([]int, len(headers))
	if len(headers) == 0 {
		return widths
	}
	available := total - lipgloss.Width(columnSeparator)*(len(headers)-1)
	sum := 0
	for _, h := range headers {
		sum += h.VisualWeight
	}
	for i, h := range headers {
		w := minColumnWidth
		if sum > 0 {
			w = max(minColumnWidth, available*h.VisualWeight/sum)
		}
		widths[i] = w
	}
	return widths
}

// truncate shortens s to at most width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 1 || len(runes) <= 1 {
		return string(runes[:min(len(runes), width)])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
