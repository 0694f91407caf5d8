package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/report"
)

func tagged(tag string) lipgloss.Style {
	return lipgloss.NewStyle().Transform(func(s string) string {
		return "<" + tag + ">" + s + "</" + tag + ">"
	})
}

func taggedTheme() Theme {
	th := DefaultTheme()
	th.Card = tagged("card")
	th.ErrorCard = tagged("error")
	th.Verdict = tagged("verdict")
	return th
}

func TestThemeResult_FailureUsesErrorCard(t *testing.T) {
	out := taggedTheme().Result(report.ErrorPrefix + "lower bound must be less than upper bound")

	if !strings.HasPrefix(out, "<error>") {
		t.Fatalf("expected error card, got %q", out)
	}
	if strings.Contains(out, "<card>") || strings.Contains(out, "<verdict>") {
		t.Fatalf("expected no report styling on a failure, got %q", out)
	}
}

func TestThemeResult_HighlightsVerdict(t *testing.T) {
	text := report.Fixed(domain.FixedReport{Verdict: domain.VerdictMidpointBetter})
	out := taggedTheme().Result(text)

	if !strings.HasPrefix(out, "<card>") {
		t.Fatalf("expected report card, got %q", out)
	}
	want := "<verdict>" + domain.VerdictMidpointBetter.Sentence() + "</verdict>"
	if !strings.Contains(out, want) {
		t.Fatalf("expected highlighted verdict %q in %q", want, out)
	}
	if !strings.Contains(out, "Midpoint Rule Area: 0") {
		t.Fatalf("expected report body to be kept, got %q", out)
	}
}

func TestThemeResult_SingleParagraphIsPlainCard(t *testing.T) {
	out := taggedTheme().Result("done")
	if out != "<card>done</card>" {
		t.Fatalf("unexpected render: %q", out)
	}
}

func TestView_RendersFailureWithErrorCard(t *testing.T) {
	m := newModel(Deps{})
	m.theme = taggedTheme()
	m = update(t, m, calcDoneMsg{err: &domain.OpError{
		Op:   "usecase.fixed",
		Kind: domain.KindInvalidExpression,
		Err:  &domain.OpError{Op: "parse", Err: errors.New(`unknown variable "y"`)},
	}})

	if !strings.Contains(m.View(), "<error>"+report.ErrorPrefix) {
		t.Fatalf("expected failure in error card, got %q", m.View())
	}
}
