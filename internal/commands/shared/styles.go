// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CLI styles
var (
	StatusOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))  // green
	StatusError = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // red

	// Muted styles labels and secondary text
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// Header styles section headers
	Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	// indent is applied to the body of a section
	indent = lipgloss.NewStyle().PaddingLeft(2)
)

// SymbolOK marks a successful status line
const SymbolOK = "✓"

// RenderOK renders a success message with a green checkmark
func RenderOK(msg string) string {
	return StatusOK.Render(SymbolOK) + " " + msg
}

// RenderError renders an error message in red
func RenderError(msg string) string {
	return StatusError.Render(msg)
}

// RenderLabel renders a dim label (for key: value pairs)
func RenderLabel(label string) string {
	return Muted.Render(label)
}

// RenderSection renders a header followed by indented lines.
func RenderSection(title string, lines []string) string {
	if len(lines) == 0 {
		return Header.Render(title)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		Header.Render(title),
		indent.Render(strings.Join(lines, "\n")),
	)
}

// RenderKeyValues renders aligned "key: value" rows in the given order.
func RenderKeyValues(keys []string, values map[string]string) []string {
	width := 0
	for _, k := range keys {
		width = max(width, lipgloss.Width(k))
	}
	rows := make([]string, 0, len(keys))
	for _, k := range keys {
		label := RenderLabel(k + ":" + strings.Repeat(" ", width-lipgloss.Width(k)))
		rows = append(rows, label+" "+values[k])
	}
	return rows
}
