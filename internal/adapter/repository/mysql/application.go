package mysql

import (
	"context"

	appDomain "medmatch-backend/internal/domain/application"

	"gorm.io/gorm"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	if a.ActiveKey == nil {
		k := appDomain.PairKey(a.DoctorID, a.JobID)
		a.ActiveKey = &k
	}
	return translateError(r.db.WithContext(ctx).Create(a).Error)
}

func (r *ApplicationRepository) FindActive(ctx context.Context, doctorID, jobID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).
		Where("doctor_id = ? AND job_id = ? AND status <> ?", doctorID, jobID, appDomain.StatusWithdrawn).
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *ApplicationRepository) GetByApplicationID(ctx context.Context, applicationID string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

// Transition is the conditional update guarding against lost-update races:
// zero rows affected means the expected from-status no longer holds.
func (r *ApplicationRepository) Transition(ctx context.Context, id uint64, from, to appDomain.Status, notes string) (int64, error) {
	updates := map[string]any{"status": to}
	if notes != "" {
		updates["notes"] = notes
	}
	if to == appDomain.StatusWithdrawn {
		updates["active_key"] = nil
	}
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected, translateError(res.Error)
}

func (r *ApplicationRepository) ListByDoctor(ctx context.Context, doctorID string, status *appDomain.Status, limit, offset int) ([]appDomain.Application, error) {
	q := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var out []appDomain.Application
	res := q.Order("applied_at DESC, id DESC").Limit(limit).Offset(offset).Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) CountByDoctor(ctx context.Context, doctorID string, status *appDomain.Status) (int64, error) {
	q := r.db.WithContext(ctx).Model(&appDomain.Application{}).Where("doctor_id = ?", doctorID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var n int64
	res := q.Count(&n)
	return n, res.Error
}
