package quadrature

import (
	"math"
	"testing"

	"github.com/aalvaropc/quadra/internal/domain"
)

func TestSimpson_ExactOnCubics(t *testing.T) {
	f := Func(func(x float64) float64 { return x * x * x })

	cases := []struct {
		lower, upper float64
	}{
		{0, 1},
		{-2, 3},
		{1.5, 4.25},
	}
	for _, c := range cases {
		want := (math.Pow(c.upper, 4) - math.Pow(c.lower, 4)) / 4
		for _, m := range []int{2, 4, 10, 1000} {
			got, err := Simpson(f, c.lower, c.upper, m)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !approxEqual(got, want, 1e-9*math.Max(1, math.Abs(want))) {
				t.Fatalf("[%v,%v] m=%d: expected %v, got %v", c.lower, c.upper, m, want, got)
			}
		}
	}
}

func TestSimpson_RoundsOddStepsUp(t *testing.T) {
	f := &countingIntegrand{fn: func(x float64) float64 { return x * x }}
	if _, err := Simpson(f, 0, 1, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// m=5 becomes 6, so 7 samples.
	if len(f.points) != 7 {
		t.Fatalf("expected 7 samples, got %d", len(f.points))
	}

	odd, _ := Simpson(Func(math.Exp), 0, 1, 7)
	even, _ := Simpson(Func(math.Exp), 0, 1, 8)
	if odd != even {
		t.Fatalf("expected m=7 to equal m=8, got %v and %v", odd, even)
	}
}

func TestSimpson_RejectsNonPositiveSteps(t *testing.T) {
	if _, err := Simpson(Func(math.Sin), 0, 1, 0); !domain.IsKind(err, domain.KindInvalidSubintervalCount) {
		t.Fatalf("expected KindInvalidSubintervalCount, got %v", err)
	}
}

func TestSimpsonReference_Sine(t *testing.T) {
	got, err := SimpsonReference(Func(math.Sin), 0, math.Pi, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !approxEqual(got, 2, 1e-10) {
		t.Fatalf("expected 2, got %v", got)
	}
}

func TestHighStepReference_UsesSameRule(t *testing.T) {
	f := Func(func(x float64) float64 { return x * x })

	mid, err := HighStepReference(domain.RuleMidpoint, f, 0, 1, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	direct, _ := Midpoint(f, 0, 1, 1000)
	if mid != direct.Area {
		t.Fatalf("expected reference to equal Midpoint(1000), got %v vs %v", mid, direct.Area)
	}

	trap, _ := HighStepReference(domain.RuleTrapezoid, f, 0, 1, 0)
	if !approxEqual(trap, 1.0/3, 1e-6) {
		t.Fatalf("expected ~1/3, got %v", trap)
	}
	if trap <= 1.0/3 {
		t.Fatalf("expected trapezoid reference to overestimate a convex function, got %v", trap)
	}
}

func TestHighStepReference_CallCount(t *testing.T) {
	f := &countingIntegrand{fn: func(x float64) float64 { return x }}
	if _, err := HighStepReference(domain.RuleTrapezoid, f, 0, 1, 1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.points) != 1001 {
		t.Fatalf("expected 1001 samples, got %d", len(f.points))
	}
}
