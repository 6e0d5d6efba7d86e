package mysql

import (
	"context"
	"errors"

	hospitalDomain "medmatch-backend/internal/domain/hospital"

	"gorm.io/gorm"
)

type HospitalRepository struct{ db *gorm.DB }

func NewHospitalRepository(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

func (r *HospitalRepository) GetByHospitalID(ctx context.Context, hospitalID string) (*hospitalDomain.Hospital, error) {
	var out hospitalDomain.Hospital
	res := r.db.WithContext(ctx).Where("hospital_id = ?", hospitalID).First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, hospitalDomain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *HospitalRepository) IsActive(ctx context.Context, hospitalID string) (bool, error) {
	h, err := r.GetByHospitalID(ctx, hospitalID)
	if err != nil {
		if errors.Is(err, hospitalDomain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return h.IsActive, nil
}
