package applicationmock

import (
	"context"

	domain "medmatch-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock satisfying application.Repository.
// Fill in only the fields a test needs.
type Repo struct {
	CreateFn             func(ctx context.Context, a *domain.Application) error
	FindActiveFn         func(ctx context.Context, doctorID, jobID string) (*domain.Application, error)
	GetByApplicationIDFn func(ctx context.Context, applicationID string) (*domain.Application, error)
	TransitionFn         func(ctx context.Context, id uint64, from, to domain.Status, notes string) (int64, error)
	ListByDoctorFn       func(ctx context.Context, doctorID string, status *domain.Status, limit, offset int) ([]domain.Application, error)
	CountByDoctorFn      func(ctx context.Context, doctorID string, status *domain.Status) (int64, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) FindActive(ctx context.Context, doctorID, jobID string) (*domain.Application, error) {
	if m.FindActiveFn != nil {
		return m.FindActiveFn(ctx, doctorID, jobID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) Transition(ctx context.Context, id uint64, from, to domain.Status, notes string) (int64, error) {
	if m.TransitionFn != nil {
		return m.TransitionFn(ctx, id, from, to, notes)
	}
	return 1, nil
}

func (m *Repo) ListByDoctor(ctx context.Context, doctorID string, status *domain.Status, limit, offset int) ([]domain.Application, error) {
	if m.ListByDoctorFn != nil {
		return m.ListByDoctorFn(ctx, doctorID, status, limit, offset)
	}
	return nil, nil
}

func (m *Repo) CountByDoctor(ctx context.Context, doctorID string, status *domain.Status) (int64, error) {
	if m.CountByDoctorFn != nil {
		return m.CountByDoctorFn(ctx, doctorID, status)
	}
	return 0, nil
}
