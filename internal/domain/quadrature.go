package domain

import (
	"fmt"
	"math"
)

// Rule names a quadrature rule under test.
type Rule string

const (
	RuleMidpoint  Rule = "midpoint"
	RuleTrapezoid Rule = "trapezoid"
)

// Rules lists the rules under test in report order.
var Rules = []Rule{RuleMidpoint, RuleTrapezoid}

func (r Rule) Valid() bool {
	return r == RuleMidpoint || r == RuleTrapezoid
}

// DisplayName is the human label used by the report printers.
func (r Rule) DisplayName() string {
	switch r {
	case RuleMidpoint:
		return "Midpoint Rule"
	case RuleTrapezoid:
		return "Trapezoid Rule"
	default:
		return string(r)
	}
}

// Interval is the integration domain [Lower, Upper].
type Interval struct {
	Lower float64
	Upper float64
}

// Width returns Upper-Lower. It is negative or zero for reversed intervals.
func (iv Interval) Width() float64 {
	return iv.Upper - iv.Lower
}

// Validate rejects intervals with Lower >= Upper (and NaN bounds).
func (iv Interval) Validate() error {
	if !(iv.Lower < iv.Upper) {
		return &OpError{
			Op:   "domain.interval",
			Kind: KindInvalidInterval,
			Err:  fmt.Errorf("lower bound %v must be less than upper bound %v", iv.Lower, iv.Upper),
		}
	}
	return nil
}

// QuadratureResult is the outcome of one rule evaluated at one subinterval count.
type QuadratureResult struct {
	Rule         Rule
	Subintervals int
	Area         float64
}

// TrueError is the absolute difference between a reference value and an estimate.
func TrueError(reference, estimate float64) float64 {
	return math.Abs(reference - estimate)
}
