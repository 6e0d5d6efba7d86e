package mysql

import (
	"context"
	"errors"

	jobDomain "medmatch-backend/internal/domain/job"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JobRepository struct{ db *gorm.DB }

func NewJobRepository(db *gorm.DB) *JobRepository { return &JobRepository{db: db} }

func (r *JobRepository) GetByJobID(ctx context.Context, jobID string) (*jobDomain.Job, error) {
	var out jobDomain.Job
	res := r.db.WithContext(ctx).Where("job_id = ?", jobID).First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, jobDomain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

// GetByJobIDForUpdate locks the job row for the rest of the transaction.
// Soft-deleted rows are returned unscoped so eligibility checks can tell
// "deleted" apart from "never existed".
func (r *JobRepository) GetByJobIDForUpdate(ctx context.Context, jobID string) (*jobDomain.Job, error) {
	q := r.db.WithContext(ctx).Unscoped()
	// SQLite (tests) has no FOR UPDATE; its transaction write lock covers
	// the same ground.
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out jobDomain.Job
	res := q.Where("job_id = ?", jobID).First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, jobDomain.ErrNotFound
		}
		return nil, translateError(res.Error)
	}
	return &out, nil
}
