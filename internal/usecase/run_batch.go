package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/ports"
	ucassert "github.com/aalvaropc/quadra/internal/usecase/assert"
)

// RunBatch executes every job of a batch file with bounded parallelism. A job
// that fails is recorded in its result and does not stop the others.
type RunBatch struct {
	batches ports.BatchLoader
	calc    ports.Calculator
	workers int
	log     *slog.Logger
}

func NewRunBatch(bl ports.BatchLoader, calc ports.Calculator, workers int, log *slog.Logger) *RunBatch {
	if workers <= 0 {
		workers = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &RunBatch{batches: bl, calc: calc, workers: workers, log: log}
}

func (uc *RunBatch) Execute(ctx context.Context, path string) (domain.BatchResult, error) {
	b, err := uc.batches.LoadBatch(path)
	if err != nil {
		return domain.BatchResult{}, err
	}

	out := domain.BatchResult{
		Name:      b.Name,
		Path:      path,
		StartedAt: time.Now(),
		Results:   make([]domain.JobResult, len(b.Jobs)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)

	for i, job := range b.Jobs {
		g.Go(func() error {
			out.Results[i] = uc.runJob(gctx, job)
			return nil
		})
	}
	_ = g.Wait()

	out.EndedAt = time.Now()
	return out, nil
}

func (uc *RunBatch) runJob(ctx context.Context, job domain.Job) domain.JobResult {
	res := domain.JobResult{Name: job.Name}

	calc, err := uc.calc.Calculate(ctx, job.Input)
	if err != nil {
		res.Error = domain.NewJobError(err)
		uc.log.Warn("batch.job.failed", "job", job.Name, "kind", string(res.Error.Kind), "err", err)
		return res
	}

	res.Calculation = &calc
	res.Checks = ucassert.Evaluate(job.Checks, calc)
	return res
}
