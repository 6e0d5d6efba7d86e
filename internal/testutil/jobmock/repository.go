package jobmock

import (
	"context"

	domain "medmatch-backend/internal/domain/job"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	GetByJobIDFn          func(ctx context.Context, jobID string) (*domain.Job, error)
	GetByJobIDForUpdateFn func(ctx context.Context, jobID string) (*domain.Job, error)
}

func (m *Repo) GetByJobID(ctx context.Context, jobID string) (*domain.Job, error) {
	if m.GetByJobIDFn != nil {
		return m.GetByJobIDFn(ctx, jobID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByJobIDForUpdate(ctx context.Context, jobID string) (*domain.Job, error) {
	if m.GetByJobIDForUpdateFn != nil {
		return m.GetByJobIDForUpdateFn(ctx, jobID)
	}
	return nil, domain.ErrNotFound
}
