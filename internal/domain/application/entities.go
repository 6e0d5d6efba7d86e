package application

import (
	"time"

	"gorm.io/gorm"
)

type Application struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ApplicationID string `gorm:"column:application_id;type:char(32);not null;uniqueIndex:ux_applications_application_id"`
	// Public refs, immutable after creation
	DoctorID string `gorm:"column:doctor_id;type:char(32);not null;index:idx_applications_doctor"`
	JobID    string `gorm:"column:job_id;type:char(32);not null;index:idx_applications_job"`

	Status      Status `gorm:"column:status;type:enum('applied','reviewing','accepted','rejected','withdrawn');default:'applied'"`
	CoverLetter string `gorm:"column:cover_letter;type:text"`
	// Hospital-authored; withdrawal reasons are appended, never overwrite
	Notes string `gorm:"column:notes;type:text"`

	// doctor_id:job_id while the application is active, NULL otherwise.
	// MySQL has no partial unique indexes, so this column carries the
	// at-most-one-active-per-pair constraint.
	ActiveKey *string `gorm:"column:active_key;type:varchar(65);uniqueIndex:ux_applications_active_pair"`

	AppliedAt time.Time      `gorm:"column:applied_at;autoCreateTime"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Application) TableName() string { return "applications" }

// PairKey is the active_key value for an active (doctor, job) pair.
func PairKey(doctorID, jobID string) string { return doctorID + ":" + jobID }
