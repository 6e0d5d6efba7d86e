package notification

import (
	"context"
	"time"
)

type Kind string

const (
	KindApplicationCreated   Kind = "application.created"
	KindApplicationWithdrawn Kind = "application.withdrawn"
	KindApplicationReviewed  Kind = "application.reviewed"
)

type Event struct {
	Kind          Kind      `json:"kind"`
	ApplicationID string    `json:"application_id"`
	JobID         string    `json:"job_id"`
	DoctorID      string    `json:"doctor_id"`
	HospitalID    string    `json:"hospital_id"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Dispatcher delivers events fire-and-forget. The engine invokes it only
// after a successful commit; a Dispatch error never unwinds the state change.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event) error
}
