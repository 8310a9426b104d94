package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.Color("36")
	colorValue  = lipgloss.Color("255")
	colorLabel  = lipgloss.Color("245")
	colorMuted  = lipgloss.Color("240")
)

var (
	StyleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleMuted  = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue  = lipgloss.NewStyle().Foreground(colorValue)
	StyleHeader = lipgloss.NewStyle().Foreground(colorLabel).Bold(true).Padding(0, 1)
	StyleBorder = lipgloss.NewStyle().Foreground(colorMuted)

	styleKey = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
)

const arrow = "→"

// printFile reports a written file on w. Status lines go to stderr so that
// stdout only ever carries chart data.
func printFile(w io.Writer, path string) {
	fmt.Fprintf(w, "  %s %s\n", StyleMuted.Render(arrow), StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	fmt.Fprintln(w, styleKey.Render(key)+" "+StyleValue.Render(value))
}
