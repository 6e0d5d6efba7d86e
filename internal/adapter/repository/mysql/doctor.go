package mysql

import (
	"context"

	doctorDomain "medmatch-backend/internal/domain/doctor"

	"gorm.io/gorm"
)

type DoctorRepository struct{ db *gorm.DB }

func NewDoctorRepository(db *gorm.DB) *DoctorRepository { return &DoctorRepository{db: db} }

func (r *DoctorRepository) Exists(ctx context.Context, doctorID string) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&doctorDomain.Doctor{}).
		Where("doctor_id = ?", doctorID).
		Count(&n)
	if res.Error != nil {
		return false, res.Error
	}
	return n > 0, nil
}
