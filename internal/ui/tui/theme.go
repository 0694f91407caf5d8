package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/quadra/internal/report"
)

type Theme struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Mode     lipgloss.Style

	// Card frames a finished report, ErrorCard a failed calculation.
	Card      lipgloss.Style
	ErrorCard lipgloss.Style
	Verdict   lipgloss.Style
	Progress  lipgloss.Style
	Toast     lipgloss.Style
}

func DefaultTheme() Theme {
	card := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder())

	return Theme{
		Title:     lipgloss.NewStyle().Bold(true),
		Subtitle:  lipgloss.NewStyle().Faint(true),
		Help:      lipgloss.NewStyle().Faint(true),
		Mode:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Card:      card.BorderForeground(lipgloss.Color("63")),
		ErrorCard: card.BorderForeground(lipgloss.Color("203")).Foreground(lipgloss.Color("203")),
		Verdict:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		Progress:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Toast:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

// Result renders report text. Failures get the error card; otherwise the
// closing verdict paragraph is highlighted.
func (t Theme) Result(text string) string {
	if strings.HasPrefix(text, report.ErrorPrefix) {
		return t.ErrorCard.Render(text)
	}
	i := strings.LastIndex(text, "\n\n")
	if i < 0 {
		return t.Card.Render(text)
	}
	return t.Card.Render(text[:i+2] + t.Verdict.Render(text[i+2:]))
}
