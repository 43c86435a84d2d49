package rendering

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const (
	defaultWrapWidth = 80
	maxWrapWidth     = 120
)

// TerminalWidth returns a word-wrap width for f, or the default when f is not a terminal
func TerminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 4 {
		return defaultWrapWidth
	}
	return min(width-4, maxWrapWidth)
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// RenderTerminal renders markdown for display. Colors are used only when color is true.
func RenderTerminal(markdown string, width int, color bool) (string, error) {
	if markdown == "" {
		return "", nil
	}
	if width <= 0 {
		width = defaultWrapWidth
	}

	style := glamour.WithStandardStyle("notty")
	if color {
		style = glamour.WithStandardStyle("dark")
	}

	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", &RenderError{Message: "failed to create markdown renderer", Cause: err}
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", &RenderError{Message: "failed to render markdown", Cause: err}
	}
	return out, nil
}
