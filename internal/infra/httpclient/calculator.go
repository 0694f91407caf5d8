package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/ports"
)

const maxResponseBytes = 1 << 20

// Calculator runs calculations on a quadra server instead of in-process.
type Calculator struct {
	baseURL string
	client  *http.Client
}

type Option func(*Calculator)

// WithClient sets a custom HTTP client.
func WithClient(c *http.Client) Option {
	return func(rc *Calculator) {
		if c != nil {
			rc.client = c
		}
	}
}

func NewCalculator(baseURL string, opts ...Option) *Calculator {
	c := &Calculator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  New(DefaultConfig()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.Calculator = (*Calculator)(nil)

type wireError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field"`
}

// codeKinds maps server error codes back to domain kinds.
var codeKinds = map[string]domain.ErrorKind{
	"INVALID_REQUEST":           domain.KindInvalidConfig,
	"INVALID_EXPRESSION":        domain.KindInvalidExpression,
	"INVALID_NUMERIC_INPUT":     domain.KindInvalidNumericInput,
	"INVALID_INTERVAL":          domain.KindInvalidInterval,
	"INVALID_SUBINTERVAL_COUNT": domain.KindInvalidSubintervalCount,
	"INVALID_TOLERANCE":         domain.KindInvalidTolerance,
	"SEARCH_EXHAUSTED":          domain.KindSearchExhausted,
	"CANCELED":                  domain.KindCanceled,
}

func (c *Calculator) Calculate(ctx context.Context, in domain.CalcInput) (domain.Calculation, error) {
	var (
		path string
		body map[string]string
	)
	switch in.Mode {
	case domain.ModeFixed:
		path = "/v1/integrate/fixed"
		body = map[string]string{"expression": in.Expression, "lower": in.Lower, "upper": in.Upper, "subintervals": in.Subintervals}
	case domain.ModeTolerance:
		path = "/v1/integrate/tolerance"
		body = map[string]string{"expression": in.Expression, "lower": in.Lower, "upper": in.Upper, "tolerance": in.Tolerance}
	default:
		return domain.Calculation{}, &domain.OpError{
			Op:    "httpclient.calculate",
			Kind:  domain.KindInvalidConfig,
			Field: "mode",
			Err:   fmt.Errorf("unknown mode %q", in.Mode),
		}
	}

	b, err := json.Marshal(body)
	if err != nil {
		return domain.Calculation{}, execError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return domain.Calculation{}, execError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.Calculation{}, &domain.OpError{Op: "httpclient.calculate", Kind: domain.KindCanceled, Err: ctxErr}
		}
		return domain.Calculation{}, execError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.Calculation{}, execError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return domain.Calculation{}, decodeError(resp.StatusCode, raw)
	}

	var calc domain.Calculation
	if err := json.Unmarshal(raw, &calc); err != nil {
		return domain.Calculation{}, execError(fmt.Errorf("decode response: %w", err))
	}
	return calc, nil
}

func decodeError(status int, raw []byte) error {
	var we wireError
	if err := json.Unmarshal(raw, &we); err != nil || we.Code == "" {
		return execError(fmt.Errorf("server returned %d: %s", status, strings.TrimSpace(string(raw))))
	}
	kind, ok := codeKinds[we.Code]
	if !ok {
		kind = domain.KindExecution
	}
	return &domain.OpError{
		Op:    "httpclient.calculate",
		Kind:  kind,
		Field: we.Field,
		Err:   errors.New(we.Error),
	}
}

func execError(err error) error {
	return &domain.OpError{Op: "httpclient.calculate", Kind: domain.KindExecution, Err: err}
}
