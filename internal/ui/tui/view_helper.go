package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/report"
	"github.com/aalvaropc/quadra/internal/usecase/search"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func modeLabel(mode domain.Mode) string {
	if mode == domain.ModeTolerance {
		return "Mode: tolerance search"
	}
	return "Mode: fixed subintervals"
}

func runningLine(mode domain.Mode, s search.Step) string {
	if mode != domain.ModeTolerance || s.N == 0 {
		return "Computing..."
	}
	return fmt.Sprintf("Searching %s: n=%d error=%s", s.Rule.DisplayName(), s.N, report.Number(s.Error))
}

func helpLine(m model) string {
	if m.running {
		return "esc cancel • ctrl+c quit"
	}
	parts := []string{"enter compute", "tab next", "ctrl+t mode"}
	if showReset(m.input()) {
		parts = append(parts, "ctrl+r reset")
	}
	parts = append(parts, "ctrl+c quit")
	return strings.Join(parts, " • ")
}
