// Package output provides terminal output formatting utilities for the
// changeset CLI. This package is designed to have minimal dependencies to
// avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintSuccess prints a green checkmark line, used after a changeset is written.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}

// PrintInfo prints a dim informational line, used for notices like
// auto-assigned patch bumps or a missing git repository.
func PrintInfo(out io.Writer, message string) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", dim("info"), message)
}

// PrintWarning prints a yellow warning line.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("⚠"), message)
}

// PrintHeader prints a bold section header followed by a dim rule sized to
// the terminal.
func PrintHeader(out io.Writer, title string) {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	width := GetTerminalWidth()
	if width > 60 {
		width = 60
	}
	fmt.Fprintf(out, "%s\n%s\n", bold(title), dim(strings.Repeat("─", width)))
}

// BumpColor returns the color used to display a bump severity: red for
// major, yellow for minor, green for patch.
func BumpColor(bump string) *color.Color {
	switch bump {
	case "major":
		return color.New(color.FgRed, color.Bold)
	case "minor":
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgGreen)
	}
}
