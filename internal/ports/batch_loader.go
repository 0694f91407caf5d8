package ports

import "github.com/aalvaropc/quadra/internal/domain"

// BatchLoader loads batch job files from a source (e.g., filesystem).
type BatchLoader interface {
	LoadBatch(path string) (domain.Batch, error)
	ListBatches(root string) ([]domain.BatchRef, error)
}
