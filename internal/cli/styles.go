package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared by all styled output.
const (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorError     = lipgloss.Color("#EF4444")
	ColorHighlight = lipgloss.Color("#3B82F6")
	ColorValue     = lipgloss.Color("#F59E0B")
)

// Styles holds the lipgloss styles for one output stream.
type Styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Kind    lipgloss.Style
	Value   lipgloss.Style
}

// NewStyles returns styles rendering to w. With color false every style
// renders plain text.
func NewStyles(w io.Writer, color bool) *Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &Styles{Title: plain, Muted: plain, Success: plain, Error: plain, Kind: plain, Value: plain}
	}

	r := lipgloss.NewRenderer(w)
	return &Styles{
		Title:   r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Muted:   r.NewStyle().Foreground(ColorMuted),
		Success: r.NewStyle().Foreground(ColorSuccess),
		Error:   r.NewStyle().Bold(true).Foreground(ColorError),
		Kind:    r.NewStyle().Foreground(ColorHighlight),
		Value:   r.NewStyle().Foreground(ColorValue),
	}
}
