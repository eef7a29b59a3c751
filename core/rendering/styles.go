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

import "github.com/charmbracelet/lipgloss"

var (
	PrimaryColor = lipgloss.Color("#A78BFA") // Purple
	MutedColor   = lipgloss.Color("#9CA3AF") // Gray
	AccentColor  = lipgloss.Color("#10B981") // Green
	BorderColor  = lipgloss.Color("#6B7280")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true)

	GroupedHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(PrimaryColor)

	GroupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	CountStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(BorderColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)
)
