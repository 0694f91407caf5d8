// Package search finds the smallest subinterval count at which a rule's error
// against a reference value is within tolerance.
package search

import (
	"context"
	"fmt"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/usecase/quadrature"
)

// DefaultMaxSubintervals bounds the ascending search when no cap is configured.
const DefaultMaxSubintervals = 100000

// Step describes one search iteration.
type Step struct {
	Rule  domain.Rule
	N     int
	Area  float64
	Error float64
}

// Result is the first subinterval count that satisfied the tolerance.
type Result struct {
	Rule         domain.Rule
	Subintervals int
	Area         float64
	Error        float64
}

// QuadratureResult returns the rule evaluation at the found count.
func (r Result) QuadratureResult() domain.QuadratureResult {
	return domain.QuadratureResult{Rule: r.Rule, Subintervals: r.Subintervals, Area: r.Area}
}

type options struct {
	maxN     int
	progress func(Step) error
}

type Option func(*options)

// WithMaxSubintervals caps the search; values <= 0 keep the default.
func WithMaxSubintervals(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxN = n
		}
	}
}

// WithProgress registers a callback invoked after every iteration. A non-nil
// return aborts the search with that error.
func WithProgress(fn func(Step) error) Option {
	return func(o *options) { o.progress = fn }
}

// FindMinimalSubintervals increases n from 1 until |reference - area(n)| <= tolerance.
// The scan is linear because the error is not monotonic in n for every integrand;
// skipping ahead could miss the smallest satisfying count.
func FindMinimalSubintervals(
	ctx context.Context,
	rule domain.Rule,
	f quadrature.Integrand,
	lower, upper float64,
	reference, tolerance float64,
	opts ...Option,
) (Result, error) {
	if !(tolerance > 0) {
		return Result{}, &domain.OpError{
			Op:    "search.find",
			Kind:  domain.KindInvalidTolerance,
			Field: "tolerance",
			Err:   fmt.Errorf("tolerance must be > 0, got %v", tolerance),
		}
	}

	o := options{maxN: DefaultMaxSubintervals}
	for _, opt := range opts {
		opt(&o)
	}

	lastErr := 0.0
	for n := 1; n <= o.maxN; n++ {
		if err := ctx.Err(); err != nil {
			return Result{}, &domain.OpError{
				Op:   "search.find",
				Kind: domain.KindCanceled,
				Err:  fmt.Errorf("%s search stopped at n=%d: %w", rule, n, err),
			}
		}

		r, err := quadrature.Apply(rule, f, lower, upper, n)
		if err != nil {
			return Result{}, err
		}
		e := domain.TrueError(reference, r.Area)
		lastErr = e

		if o.progress != nil {
			if perr := o.progress(Step{Rule: rule, N: n, Area: r.Area, Error: e}); perr != nil {
				return Result{}, perr
			}
		}

		if e <= tolerance {
			return Result{Rule: rule, Subintervals: n, Area: r.Area, Error: e}, nil
		}
	}

	return Result{}, &domain.OpError{
		Op:   "search.find",
		Kind: domain.KindSearchExhausted,
		Err: fmt.Errorf("%s: no subinterval count up to %d reached tolerance %g (last error %g): %w",
			rule, o.maxN, tolerance, lastErr, domain.ErrExhausted),
	}
}
