package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid config")
	ErrExhausted     = errors.New("search exhausted")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindInvalidExpression       ErrorKind = "invalid_expression"
	KindInvalidNumericInput     ErrorKind = "invalid_numeric_input"
	KindInvalidInterval         ErrorKind = "invalid_interval"
	KindInvalidSubintervalCount ErrorKind = "invalid_subinterval_count"
	KindInvalidTolerance        ErrorKind = "invalid_tolerance"
	KindInvalidRule             ErrorKind = "invalid_rule"
	KindSearchExhausted         ErrorKind = "search_exhausted"
	KindCanceled                ErrorKind = "canceled"

	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindExecution     ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op    string
	Kind  ErrorKind
	Path  string // Optional: relevant file path
	Field string // Optional: offending input field
	Err   error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Field != "" {
		base += fmt.Sprintf(" (field=%s)", e.Field)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// KindOf returns the kind of the outermost OpError in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}

// IsInputKind reports whether kind describes a problem with caller-supplied input.
func IsInputKind(kind ErrorKind) bool {
	switch kind {
	case KindInvalidExpression,
		KindInvalidNumericInput,
		KindInvalidInterval,
		KindInvalidSubintervalCount,
		KindInvalidTolerance,
		KindInvalidRule:
		return true
	default:
		return false
	}
}
