// Package metrics exports calculation metrics to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/ports"
)

var (
	// calculationsTotal counts finished calculations; result is "ok" or an error kind.
	calculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quadra_calculations_total",
		Help: "Total calculations by mode and result",
	}, []string{"mode", "result"})

	calculationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quadra_calculation_duration_seconds",
		Help:    "Calculation wall time in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
	}, []string{"mode"})

	evaluatorCalls = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quadra_evaluator_calls",
		Help:    "Expression evaluations per calculation",
		Buckets: prometheus.ExponentialBuckets(100, 4, 10),
	}, []string{"mode"})

	searchSubintervals = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quadra_search_subintervals",
		Help:    "Minimal subinterval counts found by tolerance searches",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"rule"})
)

// ResultOK labels successful calculations.
const ResultOK = "ok"

// Recorder feeds finished calculations into the package metrics.
type Recorder struct{}

func NewRecorder() *Recorder { return &Recorder{} }

var _ ports.CalculationObserver = (*Recorder)(nil)

func (r *Recorder) ObserveCalculation(calc domain.Calculation, err error) {
	mode := string(calc.Mode)
	if !calc.Mode.Valid() {
		mode = "unknown"
	}

	result := ResultOK
	if err != nil {
		result = string(domain.KindOf(err))
		if result == "" {
			result = string(domain.KindExecution)
		}
	}
	calculationsTotal.WithLabelValues(mode, result).Inc()

	if err != nil {
		return
	}
	calculationDuration.WithLabelValues(mode).Observe(calc.Duration().Seconds())
	evaluatorCalls.WithLabelValues(mode).Observe(float64(calc.EvalCalls))

	if t := calc.Tolerance; t != nil {
		searchSubintervals.WithLabelValues(string(domain.RuleMidpoint)).Observe(float64(t.Midpoint.Subintervals))
		searchSubintervals.WithLabelValues(string(domain.RuleTrapezoid)).Observe(float64(t.Trapezoid.Subintervals))
	}
}
