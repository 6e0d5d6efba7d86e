package mysql

import (
	"context"

	"medmatch-backend/internal/domain/job"
	"medmatch-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Applications: &ApplicationRepository{db: tx},
		Jobs:         &JobRepository{db: tx},
		Hospitals:    &HospitalRepository{db: tx},
		Doctors:      &DoctorRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return translateError(u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	}))
}

func (u *GormUoW) WithinJobTx(ctx context.Context, jobID string, fn func(r uow.Repos, j *job.Job) error) error {
	return translateError(u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// lock the job row up-front so concurrent submitters serialize here
		j, err := r.Jobs.GetByJobIDForUpdate(ctx, jobID)
		if err != nil {
			return err
		}
		return fn(r, j)
	}))
}
