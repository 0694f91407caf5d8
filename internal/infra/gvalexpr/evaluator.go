// Package gvalexpr evaluates arithmetic expressions in one variable using gval.
package gvalexpr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/PaesslerAG/gval"

	"github.com/aalvaropc/quadra/internal/ports"
)

// Variable is the only identifier bound at evaluation time.
const Variable = "x"

const defaultMaxCached = 256

// Evaluator parses each distinct expression once and evaluates the parsed form at
// every sample point. Only parse trees are cached; results never are.
type Evaluator struct {
	lang      gval.Language
	maxCached int

	mu    sync.RWMutex
	cache map[string]gval.Evaluable
}

type Option func(*Evaluator)

// WithMaxCached bounds the number of parsed expressions kept in memory.
func WithMaxCached(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.maxCached = n
		}
	}
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		lang:      Language(),
		maxCached: defaultMaxCached,
		cache:     map[string]gval.Evaluable{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ ports.ExpressionEvaluator = (*Evaluator)(nil)

// Language returns the gval language for integrands: +, -, *, /, % and ^ (or **),
// unary minus below ^, implicit multiplication, the constants pi and e and the
// one-argument functions listed in functions.
func Language() gval.Language {
	return gval.Init(parseExpression)
}

// Evaluate binds x and evaluates expr.
func (e *Evaluator) Evaluate(expr string, x float64) (float64, error) {
	eval, err := e.compile(expr)
	if err != nil {
		return 0, err
	}

	v, err := eval(context.Background(), map[string]interface{}{Variable: x})
	if err != nil {
		return 0, fmt.Errorf("evaluate at %s=%v: %w", Variable, x, err)
	}
	return toFloat(v)
}

func (e *Evaluator) compile(expr string) (gval.Evaluable, error) {
	key := strings.TrimSpace(expr)
	if key == "" {
		return nil, errors.New("expression is empty")
	}

	e.mu.RLock()
	eval, ok := e.cache[key]
	e.mu.RUnlock()
	if ok {
		return eval, nil
	}

	eval, err := e.lang.NewEvaluable(key)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	e.mu.Lock()
	if len(e.cache) >= e.maxCached {
		e.cache = map[string]gval.Evaluable{}
	}
	e.cache[key] = eval
	e.mu.Unlock()

	return eval, nil
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected a number, got %v (%T)", v, v)
	}
}
