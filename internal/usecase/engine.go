package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/ports"
	"github.com/aalvaropc/quadra/internal/usecase/compare"
	"github.com/aalvaropc/quadra/internal/usecase/quadrature"
	"github.com/aalvaropc/quadra/internal/usecase/sampler"
	"github.com/aalvaropc/quadra/internal/usecase/search"
)

// Engine runs fixed-count and tolerance-driven calculations. It holds no
// per-calculation state, so one Engine may serve concurrent callers as long as
// its evaluator is safe for concurrent use.
type Engine struct {
	ev       ports.ExpressionEvaluator
	cfg      domain.Config
	log      *slog.Logger
	now      func() time.Time
	newID    func() string
	observer ports.CalculationObserver
}

type EngineOption func(*Engine)

func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func WithIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithObserver registers a sink for finished calculations (metrics).
func WithObserver(o ports.CalculationObserver) EngineOption {
	return func(e *Engine) { e.observer = o }
}

func NewEngine(ev ports.ExpressionEvaluator, cfg domain.Config, opts ...EngineOption) *Engine {
	e := &Engine{
		ev:    ev,
		cfg:   withDefaults(cfg),
		log:   slog.Default(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the effective configuration after defaults were applied.
func (e *Engine) Config() domain.Config { return e.cfg }

// ComputeFixedCount evaluates both rules at n subintervals and compares each with
// its own reference computed by the same rule at the configured high step count.
func (e *Engine) ComputeFixedCount(ctx context.Context, expr string, lower, upper float64, n int) (domain.FixedReport, error) {
	return e.computeFixed(ctx, sampler.New(e.ev, expr), domain.Interval{Lower: lower, Upper: upper}, n)
}

// ComputeForTolerance finds, for each rule, the smallest subinterval count whose
// error against a composite Simpson reference is within tolerance.
func (e *Engine) ComputeForTolerance(ctx context.Context, expr string, lower, upper, tolerance float64, opts ...search.Option) (domain.ToleranceReport, error) {
	return e.computeTolerance(ctx, sampler.New(e.ev, expr), domain.Interval{Lower: lower, Upper: upper}, tolerance, opts...)
}

// Calculate parses raw inputs, runs the requested mode and wraps the report in a
// Calculation. On error the returned Calculation carries metadata only.
func (e *Engine) Calculate(ctx context.Context, in domain.CalcInput) (domain.Calculation, error) {
	return e.CalculateWith(ctx, in)
}

// CalculateWith is Calculate with extra search options for tolerance mode.
func (e *Engine) CalculateWith(ctx context.Context, in domain.CalcInput, opts ...search.Option) (domain.Calculation, error) {
	calc := domain.Calculation{
		ID:         e.newID(),
		Mode:       in.Mode,
		Expression: in.Expression,
		StartedAt:  e.now(),
	}

	req, err := ParseInput(in)
	if err != nil {
		return e.finish(calc, err)
	}
	calc.Expression = req.Expression
	calc.Interval = req.Interval

	e.log.Info("calc.start",
		"id", calc.ID,
		"mode", string(req.Mode),
		"expression", req.Expression,
		"lower", req.Interval.Lower,
		"upper", req.Interval.Upper,
	)

	s := sampler.New(e.ev, req.Expression)
	switch req.Mode {
	case domain.ModeFixed:
		var rep domain.FixedReport
		rep, err = e.computeFixed(ctx, s, req.Interval, req.Subintervals)
		if err == nil {
			calc.Fixed = &rep
		}
	case domain.ModeTolerance:
		var rep domain.ToleranceReport
		rep, err = e.computeTolerance(ctx, s, req.Interval, req.Tolerance, opts...)
		if err == nil {
			calc.Tolerance = &rep
		}
	}
	calc.EvalCalls = s.Calls()
	return e.finish(calc, err)
}

func (e *Engine) finish(calc domain.Calculation, err error) (domain.Calculation, error) {
	calc.EndedAt = e.now()
	if e.observer != nil {
		e.observer.ObserveCalculation(calc, err)
	}
	if err != nil {
		e.log.Warn("calc.failed",
			"id", calc.ID,
			"mode", string(calc.Mode),
			"kind", string(domain.KindOf(err)),
			"err", err,
		)
		return calc, err
	}
	e.log.Info("calc.ok",
		"id", calc.ID,
		"mode", string(calc.Mode),
		"eval_calls", calc.EvalCalls,
		"duration_ms", calc.Duration().Milliseconds(),
	)
	return calc, nil
}

func (e *Engine) computeFixed(ctx context.Context, s *sampler.Sampler, iv domain.Interval, n int) (domain.FixedReport, error) {
	if n <= 0 {
		return domain.FixedReport{}, &domain.OpError{
			Op:    "usecase.fixed",
			Kind:  domain.KindInvalidSubintervalCount,
			Field: "subintervals",
			Err:   fmt.Errorf("subinterval count must be > 0, got %d", n),
		}
	}
	if e.cfg.Interval.Strict {
		if err := iv.Validate(); err != nil {
			return domain.FixedReport{}, err
		}
	}
	if err := canceled(ctx, "usecase.fixed"); err != nil {
		return domain.FixedReport{}, err
	}

	steps := e.cfg.Reference.Steps
	trueMid, err := quadrature.HighStepReference(domain.RuleMidpoint, s, iv.Lower, iv.Upper, steps)
	if err != nil {
		return domain.FixedReport{}, err
	}
	trueTrap, err := quadrature.HighStepReference(domain.RuleTrapezoid, s, iv.Lower, iv.Upper, steps)
	if err != nil {
		return domain.FixedReport{}, err
	}

	mid, err := quadrature.Midpoint(s, iv.Lower, iv.Upper, n)
	if err != nil {
		return domain.FixedReport{}, err
	}
	trap, err := quadrature.Trapezoid(s, iv.Lower, iv.Upper, n)
	if err != nil {
		return domain.FixedReport{}, err
	}

	return compare.Fixed(trueMid, trueTrap, mid, trap), nil
}

func (e *Engine) computeTolerance(ctx context.Context, s *sampler.Sampler, iv domain.Interval, tol float64, opts ...search.Option) (domain.ToleranceReport, error) {
	if err := iv.Validate(); err != nil {
		return domain.ToleranceReport{}, err
	}
	if !(tol > 0) {
		return domain.ToleranceReport{}, &domain.OpError{
			Op:    "usecase.tolerance",
			Kind:  domain.KindInvalidTolerance,
			Field: "tolerance",
			Err:   fmt.Errorf("tolerance must be > 0, got %v", tol),
		}
	}

	if d := e.cfg.Search.Timeout; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	if err := canceled(ctx, "usecase.tolerance"); err != nil {
		return domain.ToleranceReport{}, err
	}

	ref, err := quadrature.SimpsonReference(s, iv.Lower, iv.Upper, e.cfg.Reference.SimpsonSteps)
	if err != nil {
		return domain.ToleranceReport{}, err
	}

	searchOpts := append([]search.Option{search.WithMaxSubintervals(e.cfg.Search.MaxSubintervals)}, opts...)

	mid, err := search.FindMinimalSubintervals(ctx, domain.RuleMidpoint, s, iv.Lower, iv.Upper, ref, tol, searchOpts...)
	if err != nil {
		e.logSearchFailure(domain.RuleMidpoint, err)
		return domain.ToleranceReport{}, err
	}
	trap, err := search.FindMinimalSubintervals(ctx, domain.RuleTrapezoid, s, iv.Lower, iv.Upper, ref, tol, searchOpts...)
	if err != nil {
		e.logSearchFailure(domain.RuleTrapezoid, err)
		return domain.ToleranceReport{}, err
	}

	return compare.Tolerance(ref, tol, mid.QuadratureResult(), trap.QuadratureResult(), mid.Error, trap.Error), nil
}

func (e *Engine) logSearchFailure(rule domain.Rule, err error) {
	if domain.IsKind(err, domain.KindSearchExhausted) {
		e.log.Warn("search.exhausted", "rule", string(rule), "max_subintervals", e.cfg.Search.MaxSubintervals)
	}
}

func canceled(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindCanceled, Err: err}
	}
	return nil
}

// withDefaults fills unset numeric settings so a zero Config behaves like DefaultConfig.
func withDefaults(cfg domain.Config) domain.Config {
	def := domain.DefaultConfig()
	if cfg.Reference.Steps <= 0 {
		cfg.Reference.Steps = def.Reference.Steps
	}
	if cfg.Reference.SimpsonSteps <= 0 {
		cfg.Reference.SimpsonSteps = def.Reference.SimpsonSteps
	}
	if cfg.Search.MaxSubintervals <= 0 {
		cfg.Search.MaxSubintervals = def.Search.MaxSubintervals
	}
	if cfg.Batch.Workers <= 0 {
		cfg.Batch.Workers = def.Batch.Workers
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	return cfg
}
