package domain

import "time"

// Verdict names the rule with the smaller true error.
type Verdict string

const (
	VerdictMidpointBetter  Verdict = "midpoint"
	VerdictTrapezoidBetter Verdict = "trapezoid"
	VerdictTie             Verdict = "tie"
)

// Sentence renders the verdict the way the report text states it.
func (v Verdict) Sentence() string {
	switch v {
	case VerdictMidpointBetter:
		return "Midpoint Rule provides a better estimation."
	case VerdictTrapezoidBetter:
		return "Trapezoid Rule provides a better estimation."
	default:
		return "Both rules provide the same estimation."
	}
}

// FixedReport compares both rules at a caller-chosen subinterval count, each against
// its own high-resolution reference.
type FixedReport struct {
	TrueValueMidpoint  float64
	TrueValueTrapezoid float64

	Midpoint  QuadratureResult
	Trapezoid QuadratureResult

	MidpointError  float64
	TrapezoidError float64

	Verdict Verdict
}

// ToleranceReport holds, per rule, the smallest subinterval count whose error against
// the shared Simpson reference is within Tolerance.
type ToleranceReport struct {
	TrueValue float64
	Tolerance float64

	Midpoint  QuadratureResult
	Trapezoid QuadratureResult

	MidpointError  float64
	TrapezoidError float64

	Verdict Verdict
}

// Mode selects how the subinterval count is determined.
type Mode string

const (
	ModeFixed     Mode = "fixed"
	ModeTolerance Mode = "tolerance"
)

func (m Mode) Valid() bool {
	return m == ModeFixed || m == ModeTolerance
}

// Calculation is the envelope a host renders for one calculation request.
// Exactly one of Fixed and Tolerance is set.
type Calculation struct {
	ID         string           `json:"id"`
	Mode       Mode             `json:"mode"`
	Expression string           `json:"expression"`
	Interval   Interval         `json:"interval"`
	Fixed      *FixedReport     `json:"fixed,omitempty"`
	Tolerance  *ToleranceReport `json:"tolerance,omitempty"`
	EvalCalls  int              `json:"eval_calls"`
	StartedAt  time.Time        `json:"started_at"`
	EndedAt    time.Time        `json:"ended_at"`
}

// Duration is the wall time spent computing.
func (c Calculation) Duration() time.Duration {
	if c.StartedAt.IsZero() || c.EndedAt.IsZero() {
		return 0
	}
	return c.EndedAt.Sub(c.StartedAt)
}
