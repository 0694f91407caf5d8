package quadrature

import "github.com/aalvaropc/quadra/internal/domain"

// DefaultReferenceSteps is the step count used for reference integrals when the
// caller does not configure one.
const DefaultReferenceSteps = 1000

// HighStepReference computes a rule's own "true value" by running the same rule at
// a large step count.
func HighStepReference(rule domain.Rule, f Integrand, lower, upper float64, steps int) (float64, error) {
	if steps <= 0 {
		steps = DefaultReferenceSteps
	}
	r, err := Apply(rule, f, lower, upper, steps)
	if err != nil {
		return 0, err
	}
	return r.Area, nil
}

// Simpson applies the composite Simpson rule with m steps. An odd m is rounded up
// to the next even number. It makes exactly m+1 samples (after rounding).
func Simpson(f Integrand, lower, upper float64, m int) (float64, error) {
	if err := checkCount("quadrature.simpson", m); err != nil {
		return 0, err
	}
	if m%2 != 0 {
		m++
	}

	h := (upper - lower) / float64(m)

	fa, err := f.Sample(lower)
	if err != nil {
		return 0, err
	}
	fb, err := f.Sample(upper)
	if err != nil {
		return 0, err
	}

	sum := fa + fb
	for i := 1; i < m; i++ {
		v, err := f.Sample(lower + float64(i)*h)
		if err != nil {
			return 0, err
		}
		if i%2 == 1 {
			sum += 4 * v
		} else {
			sum += 2 * v
		}
	}

	return sum * h / 3, nil
}

// SimpsonReference is the rule-independent reference used by the tolerance search.
func SimpsonReference(f Integrand, lower, upper float64, steps int) (float64, error) {
	if steps <= 0 {
		steps = DefaultReferenceSteps
	}
	return Simpson(f, lower, upper, steps)
}
