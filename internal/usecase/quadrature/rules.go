// Package quadrature implements the composite rules over n equal-width subintervals
// and the reference integrators used to judge them.
package quadrature

import (
	"fmt"

	"github.com/aalvaropc/quadra/internal/domain"
)

// Integrand is anything that can be sampled at a point.
type Integrand interface {
	Sample(x float64) (float64, error)
}

// Func adapts a plain function into an Integrand.
type Func func(x float64) float64

func (f Func) Sample(x float64) (float64, error) { return f(x), nil }

// Midpoint approximates the integral with n rectangles sampled at subinterval midpoints.
// It makes exactly n samples.
func Midpoint(f Integrand, lower, upper float64, n int) (domain.QuadratureResult, error) {
	if err := checkCount("quadrature.midpoint", n); err != nil {
		return domain.QuadratureResult{}, err
	}

	width := (upper - lower) / float64(n)
	sum := 0.0
	for i := 0; i < n; i++ {
		v, err := f.Sample(lower + (float64(i)+0.5)*width)
		if err != nil {
			return domain.QuadratureResult{}, err
		}
		sum += v
	}

	return domain.QuadratureResult{
		Rule:         domain.RuleMidpoint,
		Subintervals: n,
		Area:         sum * width,
	}, nil
}

// Trapezoid approximates the integral with n trapezoids. Endpoints are weighted by
// one half and interior points by one; it makes exactly n+1 samples.
func Trapezoid(f Integrand, lower, upper float64, n int) (domain.QuadratureResult, error) {
	if err := checkCount("quadrature.trapezoid", n); err != nil {
		return domain.QuadratureResult{}, err
	}

	width := (upper - lower) / float64(n)

	fa, err := f.Sample(lower)
	if err != nil {
		return domain.QuadratureResult{}, err
	}
	fb, err := f.Sample(upper)
	if err != nil {
		return domain.QuadratureResult{}, err
	}

	sum := 0.5*fa + 0.5*fb
	for i := 1; i < n; i++ {
		v, err := f.Sample(lower + float64(i)*width)
		if err != nil {
			return domain.QuadratureResult{}, err
		}
		sum += v
	}

	return domain.QuadratureResult{
		Rule:         domain.RuleTrapezoid,
		Subintervals: n,
		Area:         sum * width,
	}, nil
}

// Apply runs the named rule.
func Apply(rule domain.Rule, f Integrand, lower, upper float64, n int) (domain.QuadratureResult, error) {
	switch rule {
	case domain.RuleMidpoint:
		return Midpoint(f, lower, upper, n)
	case domain.RuleTrapezoid:
		return Trapezoid(f, lower, upper, n)
	default:
		return domain.QuadratureResult{}, &domain.OpError{
			Op:   "quadrature.apply",
			Kind: domain.KindInvalidRule,
			Err:  fmt.Errorf("unknown rule %q", rule),
		}
	}
}

func checkCount(op string, n int) error {
	if n <= 0 {
		return &domain.OpError{
			Op:    op,
			Kind:  domain.KindInvalidSubintervalCount,
			Field: "subintervals",
			Err:   fmt.Errorf("subinterval count must be >= 1, got %d", n),
		}
	}
	return nil
}
