package application

import (
	"time"
)

type CreateInput struct {
	DoctorID    string
	JobID       string
	CoverLetter string
}

type WithdrawInput struct {
	ApplicationID string
	DoctorID      string
	Reason        string
}

type ReviewInput struct {
	ApplicationID string
	HospitalID    string
	NextStatus    string
	Notes         string
}

type ListInput struct {
	DoctorID string
	Status   string // optional filter
	Page     int    // 1-based
	PerPage  int
}

type ApplicationDTO struct {
	ApplicationID string    `json:"application_id"`
	JobID         string    `json:"job_id"`
	DoctorID      string    `json:"doctor_id"`
	Status        string    `json:"status"`
	CoverLetter   string    `json:"cover_letter,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	AppliedAt     time.Time `json:"applied_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	JobTitle string `json:"job_title,omitempty"`
	Flags    Flags  `json:"flags"`
}

type ApplicationPage struct {
	Items   []ApplicationDTO `json:"items"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}
