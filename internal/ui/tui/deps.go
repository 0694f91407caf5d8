package tui

import (
	"context"
	"log/slog"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/ports"
	"github.com/aalvaropc/quadra/internal/usecase/search"
)

// Calculator is the engine surface the TUI needs: a calculation that can report
// tolerance search progress.
type Calculator interface {
	CalculateWith(ctx context.Context, in domain.CalcInput, opts ...search.Option) (domain.Calculation, error)
}

type Deps struct {
	Calculator           Calculator
	WorkspaceLocator     ports.WorkspaceLocator
	WorkspaceInitializer ports.WorkspaceInitializer

	Logger *slog.Logger
	Debug  bool
}

// FromCalculator adapts a plain calculator, such as the remote client, to the TUI.
// Search options are dropped, so no progress is reported.
func FromCalculator(c ports.Calculator) Calculator {
	return plainCalculator{c}
}

type plainCalculator struct {
	c ports.Calculator
}

func (p plainCalculator) CalculateWith(ctx context.Context, in domain.CalcInput, _ ...search.Option) (domain.Calculation, error) {
	return p.c.Calculate(ctx, in)
}
