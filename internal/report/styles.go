package report

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette - kept minimal and readable on dark and light terminals.
var (
	ColorPrimary = lipgloss.Color("39")  // Blue
	ColorSuccess = lipgloss.Color("34")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

// Symbols for visual feedback.
const (
	SymbolCheck  = "✓"
	SymbolCross  = "✗"
	SymbolBullet = "•"
)

// Styles groups the lipgloss styles used by the text renderers. The zero
// value is not usable; build one with NewStyles or PlainStyles.
type Styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Label   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles returns coloured styles bound to a renderer for w.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Heading: r.NewStyle().Bold(true),
		Label:   r.NewStyle().Foreground(ColorMuted),
		Success: r.NewStyle().Foreground(ColorSuccess),
		Error:   r.NewStyle().Foreground(ColorError),
		Warning: r.NewStyle().Foreground(ColorWarning),
		Muted:   r.NewStyle().Foreground(ColorMuted),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:   plain,
		Heading: plain,
		Label:   plain,
		Success: plain,
		Error:   plain,
		Warning: plain,
		Muted:   plain,
	}
}

// StylesFor picks coloured or plain styles for w.
func StylesFor(w io.Writer) Styles {
	if ColorEnabled(w) {
		return NewStyles(w)
	}
	return PlainStyles()
}

// ColorEnabled reports whether output to w should be coloured.
//
// Colour is disabled when:
//   - NO_COLOR is set (https://no-color.org)
//   - CI is set (common CI/CD convention)
//   - w is not a terminal (files, pipes, buffers)
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
