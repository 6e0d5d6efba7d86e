package doctor

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("doctor not found")

// The engine consumes identity only; profile data lives elsewhere.
type Doctor struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement"`
	DoctorID  string         `gorm:"column:doctor_id;type:char(32);not null;uniqueIndex:ux_doctors_doctor_id"`
	FullName  string         `gorm:"column:full_name;type:varchar(255);not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Doctor) TableName() string { return "doctors" }
