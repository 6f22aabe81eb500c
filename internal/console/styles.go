package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack/internal/cards"
)

// Styles holds the lipgloss styles bound to one output
type Styles struct {
	Header    lipgloss.Style
	HandInfo  lipgloss.Style
	Actions   lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Report    lipgloss.Style
}

// NewStyles builds styles for w. With noColor every style renders as plain
// text.
func NewStyles(w io.Writer, noColor bool) Styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		HandInfo: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Actions: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Report: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1),
	}
}

// Card renders a card in its suit colour
func (s Styles) Card(c cards.Card) string {
	if c.Suit.IsRed() {
		return s.RedCard.Render(c.String())
	}
	return s.BlackCard.Render(c.String())
}

// Cards renders cards separated by ", "
func (s Styles) Cards(cs []cards.Card) string {
	out := ""
	for i, c := range cs {
		if i > 0 {
			out += ", "
		}
		out += s.Card(c)
	}
	return out
}
