package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TextValue accepts a JSON string or a JSON number and keeps its text, so numeric
// input errors are reported by the same parser the CLI and TUI use.
type TextValue string

func (v *TextValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a string or a number, got %s", b)
	}
	*v = TextValue(n.String())
	return nil
}

// FixedRequest is the body of POST /v1/integrate/fixed.
type FixedRequest struct {
	Expression   string    `json:"expression" binding:"required"`
	Lower        TextValue `json:"lower" binding:"required"`
	Upper        TextValue `json:"upper" binding:"required"`
	Subintervals TextValue `json:"subintervals" binding:"required"`
}

// ToleranceRequest is the body of POST /v1/integrate/tolerance.
type ToleranceRequest struct {
	Expression string    `json:"expression" binding:"required"`
	Lower      TextValue `json:"lower" binding:"required"`
	Upper      TextValue `json:"upper" binding:"required"`
	Tolerance  TextValue `json:"tolerance" binding:"required"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is a stable machine-readable error code.
	Code string `json:"code"`

	// Field names the offending input, when known.
	Field string `json:"field,omitempty"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Error codes.
const (
	CodeInvalidRequest          = "INVALID_REQUEST"
	CodeInvalidExpression       = "INVALID_EXPRESSION"
	CodeInvalidNumericInput     = "INVALID_NUMERIC_INPUT"
	CodeInvalidInterval         = "INVALID_INTERVAL"
	CodeInvalidSubintervalCount = "INVALID_SUBINTERVAL_COUNT"
	CodeInvalidTolerance        = "INVALID_TOLERANCE"
	CodeSearchExhausted         = "SEARCH_EXHAUSTED"
	CodeCanceled                = "CANCELED"
	CodeInternal                = "INTERNAL"
)
