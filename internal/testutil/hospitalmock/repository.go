package hospitalmock

import (
	"context"

	domain "medmatch-backend/internal/domain/hospital"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	GetByHospitalIDFn func(ctx context.Context, hospitalID string) (*domain.Hospital, error)
	IsActiveFn        func(ctx context.Context, hospitalID string) (bool, error)
}

func (m *Repo) GetByHospitalID(ctx context.Context, hospitalID string) (*domain.Hospital, error) {
	if m.GetByHospitalIDFn != nil {
		return m.GetByHospitalIDFn(ctx, hospitalID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) IsActive(ctx context.Context, hospitalID string) (bool, error) {
	if m.IsActiveFn != nil {
		return m.IsActiveFn(ctx, hospitalID)
	}
	return true, nil
}
