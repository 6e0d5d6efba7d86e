package application

import "context"

type Repository interface {
	// Create inserts a new row in state applied with active_key set.
	// Callers must first establish, inside the same transaction, that the
	// job is eligible and FindActive returned nothing.
	Create(ctx context.Context, a *Application) error

	// FindActive returns the unique non-deleted, non-withdrawn application
	// for the pair, or gorm.ErrRecordNotFound.
	FindActive(ctx context.Context, doctorID, jobID string) (*Application, error)

	// Get by public application_id (soft-deleted rows excluded).
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)

	// Transition performs the conditional update
	// `SET status = to WHERE id = ? AND status = from` and reports rows
	// affected; zero means a concurrent transition won and the caller must
	// re-read. notes, when non-empty, replaces the notes column (callers
	// append to the value they read under the same transaction).
	Transition(ctx context.Context, id uint64, from, to Status, notes string) (int64, error)

	ListByDoctor(ctx context.Context, doctorID string, status *Status, limit, offset int) ([]Application, error)
	CountByDoctor(ctx context.Context, doctorID string, status *Status) (int64, error)
}
