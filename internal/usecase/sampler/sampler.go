// Package sampler adapts an expression evaluator into an integrand that the
// quadrature rules can sample.
package sampler

import (
	"fmt"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/ports"
)

// Sampler evaluates one expression at arbitrary points. It is not safe for
// concurrent use; every calculation builds its own.
type Sampler struct {
	ev    ports.ExpressionEvaluator
	expr  string
	calls int
}

func New(ev ports.ExpressionEvaluator, expr string) *Sampler {
	return &Sampler{ev: ev, expr: expr}
}

// Sample evaluates the expression with x bound to the given value. NaN and ±Inf
// results are returned unchanged.
func (s *Sampler) Sample(x float64) (float64, error) {
	s.calls++
	v, err := s.ev.Evaluate(s.expr, x)
	if err != nil {
		return 0, &domain.OpError{
			Op:   "sampler.sample",
			Kind: domain.KindInvalidExpression,
			Err:  fmt.Errorf("invalid function %q: %w", s.expr, err),
		}
	}
	return v, nil
}

func (s *Sampler) Expression() string { return s.expr }

// Calls returns the number of evaluator calls made so far.
func (s *Sampler) Calls() int { return s.calls }
