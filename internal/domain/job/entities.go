package job

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("job not found")

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusSuspended Status = "suspended"
)

// Job postings are owned by the job directory; this core reads them only.
type Job struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement"`
	JobID      string         `gorm:"column:job_id;type:char(32);not null;uniqueIndex:ux_jobs_job_id"`
	HospitalID string         `gorm:"column:hospital_id;type:char(32);not null;index"`
	Title      string         `gorm:"column:title;type:varchar(255);not null"`
	Status     Status         `gorm:"column:status;type:enum('pending','approved','rejected','suspended');default:'pending'"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Job) TableName() string { return "jobs" }

// AcceptsApplications: only approved, not-deleted postings take submissions.
func (j *Job) AcceptsApplications() bool {
	return j.Status == StatusApproved && !j.DeletedAt.Valid
}
