package report

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/aalvaropc/quadra/internal/domain"
)

func TestFixed_Text(t *testing.T) {
	got := Fixed(domain.FixedReport{
		TrueValueMidpoint:  0.333333,
		TrueValueTrapezoid: 0.3333335,
		Midpoint:           domain.QuadratureResult{Rule: domain.RuleMidpoint, Subintervals: 4, Area: 0.328125},
		Trapezoid:          domain.QuadratureResult{Rule: domain.RuleTrapezoid, Subintervals: 4, Area: 0.34375},
		MidpointError:      0.005208,
		TrapezoidError:     0.010416,
		Verdict:            domain.VerdictMidpointBetter,
	})

	want := "True Value (Midpoint Rule): 0.333333\n" +
		"True Value (Trapezoid Rule): 0.3333335\n\n" +
		"Midpoint Rule Area: 0.328125\n" +
		"Trapezoid Rule Area: 0.34375\n\n" +
		"Midpoint True Error: 0.005208\n" +
		"Trapezoid True Error: 0.010416\n\n" +
		"Midpoint Rule provides a better estimation."
	if got != want {
		t.Fatalf("unexpected text:\n%s\nwant:\n%s", got, want)
	}
}

func TestTolerance_Text(t *testing.T) {
	got := Tolerance(domain.ToleranceReport{
		TrueValue: 2,
		Tolerance: 0.001,
		Midpoint:  domain.QuadratureResult{Rule: domain.RuleMidpoint, Subintervals: 29, Area: 2.0009},
		Trapezoid: domain.QuadratureResult{Rule: domain.RuleTrapezoid, Subintervals: 41, Area: 1.999},
		Verdict:   domain.VerdictTie,
	})
	for _, want := range []string{
		"True Value (Simpson's Rule): 2\n",
		"Tolerance: 0.001\n",
		"Midpoint Rule Subintervals: 29\n",
		"Trapezoid Rule Subintervals: 41\n",
		"Both rules provide the same estimation.",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}
}

func TestNumber_NonFinite(t *testing.T) {
	if got := Number(math.Inf(1)); got != "+Inf" {
		t.Fatalf("expected +Inf, got %q", got)
	}
	if got := Number(math.NaN()); got != "NaN" {
		t.Fatalf("expected NaN, got %q", got)
	}
}

func TestFailure_StripsOperationContext(t *testing.T) {
	inner := &domain.OpError{
		Op:   "sampler.sample",
		Kind: domain.KindInvalidExpression,
		Err:  fmt.Errorf("invalid function %q: %w", "x +", errors.New("parse: unexpected EOF")),
	}
	got := Failure(&domain.OpError{Op: "usecase.fixed", Kind: domain.KindInvalidExpression, Err: inner})
	want := `Error in input or calculation: invalid function "x +": parse: unexpected EOF`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if got := Failure(errors.New("boom")); got != "Error in input or calculation: boom" {
		t.Fatalf("unexpected plain failure: %q", got)
	}
}

func TestCalculation_Empty(t *testing.T) {
	if got := Calculation(domain.Calculation{}); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}
