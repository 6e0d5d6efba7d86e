package application

import (
	appDomain "medmatch-backend/internal/domain/application"
	hospitalDomain "medmatch-backend/internal/domain/hospital"
	jobDomain "medmatch-backend/internal/domain/job"
)

// Flags are derived on every read from the current job/hospital state.
// They are never persisted on the application row: job and hospital change
// independently and must be reflected immediately.
type Flags struct {
	IsJobWithdrawn      bool `json:"is_job_withdrawn"`
	IsHospitalSuspended bool `json:"is_hospital_suspended"`
	IsActionable        bool `json:"is_actionable"`
}

// ResolveFlags is pure: no I/O, no mutation. A nil job or hospital means the
// related entity is gone and the application is not actionable.
func ResolveFlags(a *appDomain.Application, j *jobDomain.Job, h *hospitalDomain.Hospital) Flags {
	f := Flags{
		IsJobWithdrawn:      j == nil || j.DeletedAt.Valid,
		IsHospitalSuspended: h == nil || !h.IsActive,
	}
	f.IsActionable = !appDomain.IsTerminal(a.Status) && !f.IsJobWithdrawn && !f.IsHospitalSuspended
	return f
}
