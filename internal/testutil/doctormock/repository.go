package doctormock

import (
	"context"

	domain "medmatch-backend/internal/domain/doctor"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	ExistsFn func(ctx context.Context, doctorID string) (bool, error)
}

func (m *Repo) Exists(ctx context.Context, doctorID string) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, doctorID)
	}
	return true, nil
}
