package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM columns) ---

type applicationSQLite struct {
	ID            uint64         `gorm:"primaryKey;column:id"`
	ApplicationID string         `gorm:"column:application_id;size:32;uniqueIndex"`
	DoctorID      string         `gorm:"column:doctor_id;size:32;index"`
	JobID         string         `gorm:"column:job_id;size:32;index"`
	Status        string         `gorm:"column:status;type:text"`
	CoverLetter   string         `gorm:"column:cover_letter"`
	Notes         string         `gorm:"column:notes"`
	ActiveKey     *string        `gorm:"column:active_key;uniqueIndex"`
	AppliedAt     time.Time      `gorm:"column:applied_at"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (applicationSQLite) TableName() string { return "applications" }

type jobSQLite struct {
	ID         uint64         `gorm:"primaryKey;column:id"`
	JobID      string         `gorm:"column:job_id;size:32;uniqueIndex"`
	HospitalID string         `gorm:"column:hospital_id;size:32;index"`
	Title      string         `gorm:"column:title"`
	Status     string         `gorm:"column:status;type:text"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (jobSQLite) TableName() string { return "jobs" }

type hospitalSQLite struct {
	ID         uint64         `gorm:"primaryKey;column:id"`
	HospitalID string         `gorm:"column:hospital_id;size:32;uniqueIndex"`
	Name       string         `gorm:"column:name"`
	IsActive   bool           `gorm:"column:is_active"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (hospitalSQLite) TableName() string { return "hospitals" }

type doctorSQLite struct {
	ID        uint64         `gorm:"primaryKey;column:id"`
	DoctorID  string         `gorm:"column:doctor_id;size:32;uniqueIndex"`
	FullName  string         `gorm:"column:full_name"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (doctorSQLite) TableName() string { return "doctors" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe shadow schema. A single connection keeps concurrent
// transactions serialized the way the MySQL job-row lock would.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&applicationSQLite{}, &jobSQLite{}, &hospitalSQLite{}, &doctorSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
