// Package httpapi serves calculations over HTTP with gin.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/ports"
)

// Handlers adapts a Calculator to HTTP. Calculations run one at a time.
type Handlers struct {
	calc    ports.Calculator
	sem     *semaphore.Weighted
	log     *slog.Logger
	version string
}

type Option func(*Handlers)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handlers) {
		if l != nil {
			h.log = l
		}
	}
}

func WithVersion(v string) Option {
	return func(h *Handlers) { h.version = v }
}

func NewHandlers(calc ports.Calculator, opts ...Option) *Handlers {
	h := &Handlers{
		calc:    calc,
		sem:     semaphore.NewWeighted(1),
		log:     slog.Default(),
		version: "dev",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes mounts the calculation endpoints under rg.
func RegisterRoutes(rg gin.IRouter, h *Handlers) {
	rg.POST("/integrate/fixed", h.HandleFixed)
	rg.POST("/integrate/tolerance", h.HandleTolerance)
}

func (h *Handlers) HandleFixed(c *gin.Context) {
	var req FixedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidRequest})
		return
	}
	h.run(c, domain.CalcInput{
		Mode:         domain.ModeFixed,
		Expression:   req.Expression,
		Lower:        string(req.Lower),
		Upper:        string(req.Upper),
		Subintervals: string(req.Subintervals),
	})
}

func (h *Handlers) HandleTolerance(c *gin.Context) {
	var req ToleranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidRequest})
		return
	}
	h.run(c, domain.CalcInput{
		Mode:       domain.ModeTolerance,
		Expression: req.Expression,
		Lower:      string(req.Lower),
		Upper:      string(req.Upper),
		Tolerance:  string(req.Tolerance),
	})
}

func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: h.version})
}

func (h *Handlers) run(c *gin.Context, in domain.CalcInput) {
	ctx := c.Request.Context()

	if err := h.sem.Acquire(ctx, 1); err != nil {
		h.writeError(c, &domain.OpError{Op: "httpapi.acquire", Kind: domain.KindCanceled, Err: err})
		return
	}
	calc, err := h.calc.Calculate(ctx, in)
	h.sem.Release(1)

	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, calc)
}

func (h *Handlers) writeError(c *gin.Context, err error) {
	status, code := StatusFor(err)
	resp := ErrorResponse{Error: err.Error(), Code: code}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		resp.Field = oe.Field
	}
	if status >= http.StatusInternalServerError {
		h.log.Error("http.calc.failed", "request_id", requestID(c), "code", code, "err", err)
	}
	c.JSON(status, resp)
}

// StatusFor maps an error to an HTTP status and error code.
func StatusFor(err error) (int, string) {
	switch domain.KindOf(err) {
	case domain.KindInvalidExpression:
		return http.StatusBadRequest, CodeInvalidExpression
	case domain.KindInvalidNumericInput:
		return http.StatusBadRequest, CodeInvalidNumericInput
	case domain.KindInvalidInterval:
		return http.StatusBadRequest, CodeInvalidInterval
	case domain.KindInvalidSubintervalCount:
		return http.StatusBadRequest, CodeInvalidSubintervalCount
	case domain.KindInvalidTolerance:
		return http.StatusBadRequest, CodeInvalidTolerance
	case domain.KindInvalidConfig, domain.KindInvalidRule:
		return http.StatusBadRequest, CodeInvalidRequest
	case domain.KindSearchExhausted:
		return http.StatusUnprocessableEntity, CodeSearchExhausted
	case domain.KindCanceled:
		return http.StatusGatewayTimeout, CodeCanceled
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, CodeCanceled
	}
	return http.StatusInternalServerError, CodeInternal
}
