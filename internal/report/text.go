// Package report renders calculation results as plain text.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aalvaropc/quadra/internal/domain"
)

// ErrorPrefix starts every user-facing calculation failure.
const ErrorPrefix = "Error in input or calculation: "

// Number formats v with the shortest representation that round-trips.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Fixed renders a fixed-count comparison.
func Fixed(r domain.FixedReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "True Value (Midpoint Rule): %s\n", Number(r.TrueValueMidpoint))
	fmt.Fprintf(&b, "True Value (Trapezoid Rule): %s\n\n", Number(r.TrueValueTrapezoid))
	fmt.Fprintf(&b, "Midpoint Rule Area: %s\n", Number(r.Midpoint.Area))
	fmt.Fprintf(&b, "Trapezoid Rule Area: %s\n\n", Number(r.Trapezoid.Area))
	fmt.Fprintf(&b, "Midpoint True Error: %s\n", Number(r.MidpointError))
	fmt.Fprintf(&b, "Trapezoid True Error: %s\n\n", Number(r.TrapezoidError))
	b.WriteString(r.Verdict.Sentence())
	return b.String()
}

// Tolerance renders the minimal subinterval counts found for a tolerance.
func Tolerance(r domain.ToleranceReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "True Value (Simpson's Rule): %s\n", Number(r.TrueValue))
	fmt.Fprintf(&b, "Tolerance: %s\n\n", Number(r.Tolerance))
	fmt.Fprintf(&b, "Midpoint Rule Subintervals: %d\n", r.Midpoint.Subintervals)
	fmt.Fprintf(&b, "Trapezoid Rule Subintervals: %d\n\n", r.Trapezoid.Subintervals)
	fmt.Fprintf(&b, "Midpoint Rule Area: %s\n", Number(r.Midpoint.Area))
	fmt.Fprintf(&b, "Trapezoid Rule Area: %s\n\n", Number(r.Trapezoid.Area))
	fmt.Fprintf(&b, "Midpoint True Error: %s\n", Number(r.MidpointError))
	fmt.Fprintf(&b, "Trapezoid True Error: %s\n\n", Number(r.TrapezoidError))
	b.WriteString(r.Verdict.Sentence())
	return b.String()
}

// Calculation renders whichever report calc carries.
func Calculation(calc domain.Calculation) string {
	switch {
	case calc.Fixed != nil:
		return Fixed(*calc.Fixed)
	case calc.Tolerance != nil:
		return Tolerance(*calc.Tolerance)
	default:
		return ""
	}
}

// Failure renders err the way the calculator reports a failed calculation.
func Failure(err error) string {
	return ErrorPrefix + Cause(err)
}

// Cause drops the operation prefixes of nested OpErrors and keeps the message a
// user can act on.
func Cause(err error) string {
	if err == nil {
		return ""
	}
	for {
		oe, ok := err.(*domain.OpError)
		if !ok || oe.Err == nil {
			return err.Error()
		}
		err = oe.Err
	}
}
