package ports

import (
	"context"

	"github.com/aalvaropc/quadra/internal/domain"
)

// Calculator runs one calculation from the raw text inputs a host collected.
type Calculator interface {
	Calculate(ctx context.Context, in domain.CalcInput) (domain.Calculation, error)
}

// CalculationObserver is notified once per finished calculation, successful or not.
type CalculationObserver interface {
	ObserveCalculation(calc domain.Calculation, err error)
}
