package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/aalvaropc/quadra/internal/domain"
)

func TestRecorder_CountsByModeAndResult(t *testing.T) {
	r := NewRecorder()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	okBefore := testutil.ToFloat64(calculationsTotal.WithLabelValues("fixed", ResultOK))
	badBefore := testutil.ToFloat64(calculationsTotal.WithLabelValues("tolerance", "invalid_interval"))
	execBefore := testutil.ToFloat64(calculationsTotal.WithLabelValues("unknown", "execution"))

	r.ObserveCalculation(domain.Calculation{Mode: domain.ModeFixed, StartedAt: start, EndedAt: start.Add(time.Millisecond), EvalCalls: 2010}, nil)
	r.ObserveCalculation(domain.Calculation{Mode: domain.ModeTolerance}, &domain.OpError{Op: "t", Kind: domain.KindInvalidInterval})
	r.ObserveCalculation(domain.Calculation{Mode: "bogus"}, errors.New("boom"))

	if got := testutil.ToFloat64(calculationsTotal.WithLabelValues("fixed", ResultOK)); got != okBefore+1 {
		t.Fatalf("expected ok counter to grow by 1, got %v -> %v", okBefore, got)
	}
	if got := testutil.ToFloat64(calculationsTotal.WithLabelValues("tolerance", "invalid_interval")); got != badBefore+1 {
		t.Fatalf("expected invalid_interval counter to grow by 1, got %v -> %v", badBefore, got)
	}
	if got := testutil.ToFloat64(calculationsTotal.WithLabelValues("unknown", "execution")); got != execBefore+1 {
		t.Fatalf("expected execution counter for untyped errors, got %v -> %v", execBefore, got)
	}
}

func TestRecorder_ObservesSearchCounts(t *testing.T) {
	r := NewRecorder()
	before := testutil.CollectAndCount(searchSubintervals)

	r.ObserveCalculation(domain.Calculation{
		Mode: domain.ModeTolerance,
		Tolerance: &domain.ToleranceReport{
			Midpoint:  domain.QuadratureResult{Rule: domain.RuleMidpoint, Subintervals: 29},
			Trapezoid: domain.QuadratureResult{Rule: domain.RuleTrapezoid, Subintervals: 41},
		},
	}, nil)

	if got := testutil.CollectAndCount(searchSubintervals); got < 2 || got < before {
		t.Fatalf("expected histogram series for both rules, got %d", got)
	}
}
