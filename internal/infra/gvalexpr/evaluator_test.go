package gvalexpr

import (
	"math"
	"strings"
	"sync"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		expr      string
		x         float64
		expected  float64
		shouldErr bool
	}{
		{"variable", "x", 2.5, 2.5, false},
		{"polynomial", "2*x+1", 3, 7, false},
		{"caret power", "x^2", 3, 9, false},
		{"double star power", "x**3", 2, 8, false},
		{"power binds tighter than product", "2*x^2", 3, 18, false},
		{"power binds tighter than sum", "1+x^2", 3, 10, false},
		{"parentheses", "(x+1)^2", 1, 4, false},
		{"unary minus", "-x+3", 5, -2, false},
		{"unary minus below power", "-x^2", 2, -4, false},
		{"negated literal power", "-2^2", 0, -4, false},
		{"power groups right to left", "2^3^2", 0, 512, false},
		{"negative exponent", "2^-1", 0, 0.5, false},
		{"double negation", "3 - -x", 1, 4, false},
		{"power of parenthesized negation", "(-x)^2", 2, 4, false},
		{"implicit product with variable", "2x", 3, 6, false},
		{"implicit product with parentheses", "2(x+1)", 1, 4, false},
		{"implicit product binds below power", "2x^2", 3, 18, false},
		{"implicit product of groups", "(x+1)(x-1)", 3, 8, false},
		{"implicit product with pi", "2pi", 0, 2 * math.Pi, false},
		{"implicit product with e", "2e", 0, 2 * math.E, false},
		{"modulo", "x%3", 7, 1, false},
		{"sine", "sin(x)", math.Pi / 2, 1, false},
		{"constants", "pi*e", 0, math.Pi * math.E, false},
		{"natural log", "log(e)", 0, 1, false},
		{"ln alias", "ln(x)", math.E, 1, false},
		{"log10", "log10(x)", 1000, 3, false},
		{"sqrt", "sqrt(x)", 16, 4, false},
		{"nested", "exp(sin(x))", 0, 1, false},
		{"scientific", "1e2*x", 2, 200, false},
		{"spaces", "  x * x  ", 4, 16, false},

		{"empty", "", 0, 0, true},
		{"blank", "   ", 0, 0, true},
		{"trailing operator", "x+", 0, 0, true},
		{"unmatched paren", "(x+1", 0, 0, true},
		{"unbound variable", "y*2", 1, 0, true},
		{"unknown function", "foo(x)", 1, 0, true},
		{"comparison", "x > 1", 2, 0, true},
		{"upper case exponent without digits", "2E", 0, 0, true},
		{"function without parentheses", "sin x", 1, 0, true},
		{"two arguments", "sin(x, x)", 1, 0, true},
	}

	ev := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ev.Evaluate(tt.expr, tt.x)

			if tt.shouldErr {
				if err == nil {
					t.Errorf("expected error for expression %q, but got result: %v", tt.expr, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for expression %q: %v", tt.expr, err)
			}

			const tolerance = 1e-10
			if math.Abs(got-tt.expected) > tolerance {
				t.Errorf("expression %q at x=%v: expected %v, got %v", tt.expr, tt.x, tt.expected, got)
			}
		})
	}
}

func TestEvaluate_ErrorsNameTheIdentifier(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"y", `unknown variable "y"`},
		{"y*2", `unknown variable "y"`},
		{"2*x + theta", `unknown variable "theta"`},
		{"foo(x)", `unknown function "foo"`},
		{"x+", "unexpected end of expression"},
		{"(x+1", "expected ')'"},
	}

	ev := New()
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := ev.Evaluate(tt.expr, 1)
			if err == nil {
				t.Fatalf("expected error for %q", tt.expr)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error for %q to contain %q, got %v", tt.expr, tt.want, err)
			}
		})
	}
}

func TestEvaluate_ConstantSubexpressionsAreFolded(t *testing.T) {
	eval, err := Language().NewEvaluable("2^3^2 + pi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !eval.IsConst() {
		t.Fatalf("expected a constant expression to fold")
	}

	eval, err = Language().NewEvaluable("2x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eval.IsConst() {
		t.Fatalf("expected an expression in x not to fold")
	}
}

func TestEvaluate_DivisionByZeroIsInfinite(t *testing.T) {
	got, err := New().Evaluate("1/x", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(got, 1) {
		t.Fatalf("expected +Inf, got %v", got)
	}
}

func TestEvaluate_ReevaluatesEveryPoint(t *testing.T) {
	ev := New()
	for _, x := range []float64{1, 2, 3} {
		got, err := ev.Evaluate("x*10", x)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != x*10 {
			t.Fatalf("x=%v: expected %v, got %v", x, x*10, got)
		}
	}
}

func TestEvaluate_CacheIsBounded(t *testing.T) {
	ev := New(WithMaxCached(2))
	for _, expr := range []string{"x", "x+1", "x+2", "x+3"} {
		if _, err := ev.Evaluate(expr, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	ev.mu.RLock()
	n := len(ev.cache)
	ev.mu.RUnlock()
	if n > 2 {
		t.Fatalf("expected at most 2 cached expressions, got %d", n)
	}
}

func TestEvaluate_ConcurrentUse(t *testing.T) {
	ev := New()
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := ev.Evaluate("sin(x)^2+cos(x)^2", float64(i*j)); err != nil {
					errs <- err
					return
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("unexpected error: %v", err)
	}
}
