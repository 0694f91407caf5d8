package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aalvaropc/quadra/internal/domain"
)

// Request is a calculation whose text inputs have been parsed.
type Request struct {
	Mode         domain.Mode
	Expression   string
	Interval     domain.Interval
	Subintervals int
	Tolerance    float64
}

// ParseInput converts raw text inputs into a Request. It never evaluates the
// function, so numeric input errors always surface before any sampling.
func ParseInput(in domain.CalcInput) (Request, error) {
	if !in.Mode.Valid() {
		return Request{}, &domain.OpError{
			Op:    "usecase.parse",
			Kind:  domain.KindInvalidConfig,
			Field: "mode",
			Err:   fmt.Errorf("unknown mode %q (want fixed or tolerance)", in.Mode),
		}
	}

	expr := strings.TrimSpace(in.Expression)
	if expr == "" {
		return Request{}, &domain.OpError{
			Op:    "usecase.parse",
			Kind:  domain.KindInvalidExpression,
			Field: "expression",
			Err:   fmt.Errorf("function is empty"),
		}
	}

	lower, err := parseFloat("lower", in.Lower)
	if err != nil {
		return Request{}, err
	}
	upper, err := parseFloat("upper", in.Upper)
	if err != nil {
		return Request{}, err
	}

	req := Request{
		Mode:       in.Mode,
		Expression: expr,
		Interval:   domain.Interval{Lower: lower, Upper: upper},
	}

	switch in.Mode {
	case domain.ModeFixed:
		n, err := parseInt("subintervals", in.Subintervals)
		if err != nil {
			return Request{}, err
		}
		req.Subintervals = n
	case domain.ModeTolerance:
		tol, err := parseFloat("tolerance", in.Tolerance)
		if err != nil {
			return Request{}, err
		}
		req.Tolerance = tol
	}
	return req, nil
}

func parseFloat(field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, numericError(field, fmt.Errorf("%q is not a number", s))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, numericError(field, fmt.Errorf("%q is not a finite number", s))
	}
	return v, nil
}

func parseInt(field, raw string) (int, error) {
	s := strings.TrimSpace(raw)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, numericError(field, fmt.Errorf("%q is not an integer", s))
	}
	return v, nil
}

func numericError(field string, err error) error {
	return &domain.OpError{
		Op:    "usecase.parse",
		Kind:  domain.KindInvalidNumericInput,
		Field: field,
		Err:   err,
	}
}
