package hospital

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("hospital not found")

type Hospital struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement"`
	HospitalID string         `gorm:"column:hospital_id;type:char(32);not null;uniqueIndex:ux_hospitals_hospital_id"`
	Name       string         `gorm:"column:name;type:varchar(255);not null"`
	IsActive   bool           `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Hospital) TableName() string { return "hospitals" }
