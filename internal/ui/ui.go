// Package ui renders recipes and status lines for the terminal.
package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const maxReadableWidth = 100

// Styles for CLI status output.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF8C42"))
	PassStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAF5F"))
	WarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#D7AF00"))
	MutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

// Head returns the first n lines of text.
func Head(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= n {
		return text
	}
	return strings.Join(lines[:n], "\n")
}

// RenderMarkdown renders markdown with glamour, wrapped to the terminal
// width (capped at 100 columns). The raw text is returned when stdout is not
// a terminal or rendering fails.
func RenderMarkdown(markdown string) string {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return markdown
	}
	wrapWidth := 80
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		wrapWidth = w
	}
	if wrapWidth > maxReadableWidth {
		wrapWidth = maxReadableWidth
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return markdown
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}
