package uow

import (
	"context"

	"medmatch-backend/internal/domain/application"
	"medmatch-backend/internal/domain/doctor"
	"medmatch-backend/internal/domain/hospital"
	"medmatch-backend/internal/domain/job"
)

type Repos struct {
	Applications application.Repository
	Jobs         job.Repository
	Hospitals    hospital.Repository
	Doctors      doctor.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the job row first, then pass it in. Serializes
	// concurrent submitters for the same job.
	WithinJobTx(ctx context.Context, jobID string, fn func(r Repos, j *job.Job) error) error
}
