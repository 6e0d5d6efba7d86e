package job

import "context"

type Repository interface {
	GetByJobID(ctx context.Context, jobID string) (*Job, error)
	// GetByJobIDForUpdate acquires a row-level write lock; must run inside
	// a transaction. Soft-deleted rows are still returned so the caller can
	// distinguish deleted from absent.
	GetByJobIDForUpdate(ctx context.Context, jobID string) (*Job, error)
}
