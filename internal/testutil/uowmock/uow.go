package uowmock

import (
	"context"
	"errors"

	"medmatch-backend/internal/domain/job"
	"medmatch-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock satisfying uow.UnitOfWork. Unfilled fields
// return errUnimplemented.
type UoW struct {
	WithinTxFn    func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinJobTxFn func(ctx context.Context, jobID string, fn func(r uow.Repos, j *job.Job) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough builds a UoW that runs callbacks directly against the given
// repos with no transaction, optionally serving jobs to WithinJobTx.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		},
		WithinJobTxFn: func(ctx context.Context, jobID string, fn func(uow.Repos, *job.Job) error) error {
			j, err := r.Jobs.GetByJobIDForUpdate(ctx, jobID)
			if err != nil {
				return err
			}
			return fn(r, j)
		},
	}
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinJobTx(ctx context.Context, jobID string, fn func(r uow.Repos, j *job.Job) error) error {
	if m.WithinJobTxFn != nil {
		return m.WithinJobTxFn(ctx, jobID, fn)
	}
	return errUnimplemented
}
