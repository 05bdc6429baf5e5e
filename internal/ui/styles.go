package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/nibzard/tasktrack/internal/todo"
)

// Color modes accepted by NewRenderer.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Styles holds the lipgloss styles shared by the menu and the board.
type Styles struct {
	Header   lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Priority map[todo.Priority]lipgloss.Style
}

// NewRenderer returns a lipgloss renderer for w honoring the color mode.
// In auto mode color is enabled only when w is a terminal.
func NewRenderer(w io.Writer, mode string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	default:
		if !IsTTY(w) {
			r.SetColorProfile(termenv.Ascii)
		}
	}
	return r
}

// NewStyles builds the palette on r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Success:  r.NewStyle().Foreground(lipgloss.Color("42")),
		Error:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		Warning:  r.NewStyle().Foreground(lipgloss.Color("214")),
		Muted:    r.NewStyle().Faint(true),
		Selected: r.NewStyle().Reverse(true),
		Priority: map[todo.Priority]lipgloss.Style{
			todo.PriorityHigh:   r.NewStyle().Foreground(lipgloss.Color("196")),
			todo.PriorityMedium: r.NewStyle().Foreground(lipgloss.Color("220")),
			todo.PriorityLow:    r.NewStyle().Foreground(lipgloss.Color("42")),
		},
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	return NewStyles(NewRenderer(io.Discard, ColorNever))
}

// PriorityStyle returns the style for p, or an empty style.
func (s Styles) PriorityStyle(p todo.Priority) lipgloss.Style {
	if style, ok := s.Priority[p]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Truncate shortens s to at most width terminal cells, marking the cut
// with "...".
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// PadRight pads s with spaces to width terminal cells.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
