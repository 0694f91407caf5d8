package query

import (
	"strings"
	"testing"

	"github.com/aalvaropc/quadra/internal/domain"
)

func sampleCalculation() domain.Calculation {
	return domain.Calculation{
		ID:         "calc-1",
		Mode:       domain.ModeFixed,
		Expression: "x^2",
		Interval:   domain.Interval{Lower: 0, Upper: 1},
		Fixed: &domain.FixedReport{
			Midpoint:  domain.QuadratureResult{Rule: domain.RuleMidpoint, Subintervals: 4, Area: 0.328125},
			Trapezoid: domain.QuadratureResult{Rule: domain.RuleTrapezoid, Subintervals: 4, Area: 0.34375},
			Verdict:   domain.VerdictMidpointBetter,
		},
	}
}

func TestSelect_Scalars(t *testing.T) {
	c := sampleCalculation()

	cases := []struct {
		expr string
		want string
	}{
		{"$.fixed.midpoint.area", "0.328125"},
		{"$.fixed.verdict", "midpoint"},
		{"$.interval.upper", "1"},
		{"$.expression", "x^2"},
	}
	for _, tc := range cases {
		got, err := Select(tc.expr, c)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.expr, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.expr, tc.want, got)
		}
	}
}

func TestSelect_ObjectRendersJSON(t *testing.T) {
	got, err := Select("$.fixed.trapezoid", sampleCalculation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, `"area":0.34375`) {
		t.Fatalf("expected JSON object, got %q", got)
	}
}

func TestSelect_Missing(t *testing.T) {
	if _, err := Select("$.tolerance.true_value", sampleCalculation()); err == nil {
		t.Fatalf("expected error for missing path")
	}
}

func TestSelect_Empty(t *testing.T) {
	if _, err := Select("  ", sampleCalculation()); err == nil {
		t.Fatalf("expected error for empty expression")
	}
}

func TestToString_UnwrapsSingleElementArray(t *testing.T) {
	got, err := ToString([]any{"a"})
	if err != nil || got != "a" {
		t.Fatalf("expected a, got %q %v", got, err)
	}
	got, err = ToString([]any{1.0, 2.0})
	if err != nil || got != "[1,2]" {
		t.Fatalf("expected [1,2], got %q %v", got, err)
	}
}
