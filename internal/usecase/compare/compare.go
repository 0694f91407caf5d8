// Package compare assembles rule results and their errors into reports.
// It never samples the integrand.
package compare

import "github.com/aalvaropc/quadra/internal/domain"

// FixedVerdict picks midpoint only when its error is strictly smaller; ties and
// NaN comparisons fall to trapezoid.
func FixedVerdict(midErr, trapErr float64) domain.Verdict {
	if midErr < trapErr {
		return domain.VerdictMidpointBetter
	}
	return domain.VerdictTrapezoidBetter
}

// ToleranceVerdict uses strict comparison both ways; anything else is a tie.
func ToleranceVerdict(midErr, trapErr float64) domain.Verdict {
	switch {
	case midErr < trapErr:
		return domain.VerdictMidpointBetter
	case trapErr < midErr:
		return domain.VerdictTrapezoidBetter
	default:
		return domain.VerdictTie
	}
}

// Fixed builds the fixed-count report. Each rule is judged against its own reference.
func Fixed(trueMid, trueTrap float64, mid, trap domain.QuadratureResult) domain.FixedReport {
	midErr := domain.TrueError(trueMid, mid.Area)
	trapErr := domain.TrueError(trueTrap, trap.Area)

	return domain.FixedReport{
		TrueValueMidpoint:  trueMid,
		TrueValueTrapezoid: trueTrap,
		Midpoint:           mid,
		Trapezoid:          trap,
		MidpointError:      midErr,
		TrapezoidError:     trapErr,
		Verdict:            FixedVerdict(midErr, trapErr),
	}
}

// Tolerance builds the tolerance-search report from errors already measured
// against the shared reference.
func Tolerance(trueValue, tolerance float64, mid, trap domain.QuadratureResult, midErr, trapErr float64) domain.ToleranceReport {
	return domain.ToleranceReport{
		TrueValue:      trueValue,
		Tolerance:      tolerance,
		Midpoint:       mid,
		Trapezoid:      trap,
		MidpointError:  midErr,
		TrapezoidError: trapErr,
		Verdict:        ToleranceVerdict(midErr, trapErr),
	}
}
