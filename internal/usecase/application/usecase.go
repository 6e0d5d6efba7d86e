package application

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	appDomain "medmatch-backend/internal/domain/application"
	hospitalDomain "medmatch-backend/internal/domain/hospital"
	jobDomain "medmatch-backend/internal/domain/job"
	"medmatch-backend/internal/domain/notification"
	"medmatch-backend/internal/domain/uow"
	"medmatch-backend/pkg/id"

	"gorm.io/gorm"
)

const (
	notifyTimeout  = 2 * time.Second
	defaultPerPage = 20
	maxPerPage     = 100
)

type Usecase struct {
	uow        uow.UnitOfWork
	apps       appDomain.Repository
	jobs       jobDomain.Repository
	hospitals  hospitalDomain.Repository
	dispatcher notification.Dispatcher
}

// NewUsecase: non-tx repos serve reads; the UoW owns every write path.
func NewUsecase(tx uow.UnitOfWork, apps appDomain.Repository, jobs jobDomain.Repository, hospitals hospitalDomain.Repository, d notification.Dispatcher) *Usecase {
	return &Usecase{uow: tx, apps: apps, jobs: jobs, hospitals: hospitals, dispatcher: d}
}

// Create submits a doctor's application to a job posting. The job row is
// locked for the whole transaction, so two concurrent submissions for the
// same job serialize and the second one sees the first one's row.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ApplicationDTO, error) {
	if u.uow == nil {
		return nil, appDomain.ErrBusy
	}

	var (
		created   *appDomain.Application
		owningJob *jobDomain.Job
	)
	err := u.uow.WithinJobTx(ctx, in.JobID, func(r uow.Repos, j *jobDomain.Job) error {
		// Re-check eligibility under the lock: a concurrent suspension or
		// soft delete must not race the insert.
		if !j.AcceptsApplications() {
			return appDomain.ErrJobNotEligible
		}

		ok, err := r.Doctors.Exists(ctx, in.DoctorID)
		if err != nil {
			return err
		}
		if !ok {
			return appDomain.ErrNotFound
		}

		if _, err := r.Applications.FindActive(ctx, in.DoctorID, in.JobID); err == nil {
			return appDomain.ErrDuplicateApplication
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		a := &appDomain.Application{
			ApplicationID: id.NewID32(),
			DoctorID:      in.DoctorID,
			JobID:         in.JobID,
			Status:        appDomain.StatusApplied,
			CoverLetter:   in.CoverLetter,
			AppliedAt:     time.Now().UTC(),
		}
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		created = a
		owningJob = j
		return nil
	})
	if err != nil {
		if errors.Is(err, jobDomain.ErrNotFound) {
			return nil, appDomain.ErrNotFound
		}
		return nil, err
	}

	u.notify(notification.Event{
		Kind:          notification.KindApplicationCreated,
		ApplicationID: created.ApplicationID,
		JobID:         created.JobID,
		DoctorID:      created.DoctorID,
		HospitalID:    owningJob.HospitalID,
		Status:        string(created.Status),
	})

	h := u.lookupHospital(ctx, owningJob.HospitalID)
	dto := toDTO(created, owningJob, h)
	return &dto, nil
}

// Withdraw moves an application to withdrawn on behalf of its doctor.
func (u *Usecase) Withdraw(ctx context.Context, in WithdrawInput) (*ApplicationDTO, error) {
	if u.uow == nil {
		return nil, appDomain.ErrBusy
	}

	var withdrawn *appDomain.Application
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByApplicationID(ctx, in.ApplicationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appDomain.ErrNotFound
			}
			return err
		}
		if a.DoctorID != in.DoctorID {
			return appDomain.ErrForbidden
		}
		if a.Status == appDomain.StatusWithdrawn {
			return appDomain.ErrAlreadyWithdrawn
		}
		if !appDomain.CanTransition(a.Status, appDomain.StatusWithdrawn) {
			return appDomain.ErrInvalidTransition
		}

		notes := a.Notes
		if in.Reason != "" {
			notes = appendNote(a.Notes, "withdrawal reason: "+in.Reason)
		}
		n, err := r.Applications.Transition(ctx, a.ID, a.Status, appDomain.StatusWithdrawn, notes)
		if err != nil {
			return err
		}
		if n == 0 {
			return u.raceLoserError(ctx, r, in.ApplicationID)
		}
		a.Status = appDomain.StatusWithdrawn
		a.Notes = notes
		withdrawn = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	j := u.lookupJob(ctx, withdrawn.JobID)
	hospitalID := ""
	if j != nil {
		hospitalID = j.HospitalID
	}
	u.notify(notification.Event{
		Kind:          notification.KindApplicationWithdrawn,
		ApplicationID: withdrawn.ApplicationID,
		JobID:         withdrawn.JobID,
		DoctorID:      withdrawn.DoctorID,
		HospitalID:    hospitalID,
		Status:        string(withdrawn.Status),
	})

	dto := toDTO(withdrawn, j, u.lookupHospital(ctx, hospitalID))
	return &dto, nil
}

// Review applies a hospital-side status change through the same transition
// table the doctor-side flows use.
func (u *Usecase) Review(ctx context.Context, in ReviewInput) (*ApplicationDTO, error) {
	if u.uow == nil {
		return nil, appDomain.ErrBusy
	}

	next, err := appDomain.ParseStatus(in.NextStatus)
	if err != nil {
		return nil, appDomain.ErrInvalidTransition
	}
	if next == appDomain.StatusWithdrawn {
		// withdrawal is doctor-initiated only
		return nil, appDomain.ErrInvalidTransition
	}

	var (
		reviewed  *appDomain.Application
		owningJob *jobDomain.Job
	)
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByApplicationID(ctx, in.ApplicationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appDomain.ErrNotFound
			}
			return err
		}
		j, err := r.Jobs.GetByJobID(ctx, a.JobID)
		if err != nil {
			return err
		}
		if j.HospitalID != in.HospitalID {
			return appDomain.ErrForbidden
		}
		active, err := r.Hospitals.IsActive(ctx, in.HospitalID)
		if err != nil {
			return err
		}
		if !active {
			return appDomain.ErrForbidden
		}
		if a.Status == appDomain.StatusWithdrawn {
			return appDomain.ErrAlreadyWithdrawn
		}
		if !appDomain.CanTransition(a.Status, next) {
			return appDomain.ErrInvalidTransition
		}

		notes := a.Notes
		if in.Notes != "" {
			notes = appendNote(a.Notes, in.Notes)
		}
		n, err := r.Applications.Transition(ctx, a.ID, a.Status, next, notes)
		if err != nil {
			return err
		}
		if n == 0 {
			return u.raceLoserError(ctx, r, in.ApplicationID)
		}
		a.Status = next
		a.Notes = notes
		reviewed = a
		owningJob = j
		return nil
	})
	if err != nil {
		if errors.Is(err, jobDomain.ErrNotFound) {
			return nil, appDomain.ErrNotFound
		}
		return nil, err
	}

	u.notify(notification.Event{
		Kind:          notification.KindApplicationReviewed,
		ApplicationID: reviewed.ApplicationID,
		JobID:         reviewed.JobID,
		DoctorID:      reviewed.DoctorID,
		HospitalID:    owningJob.HospitalID,
		Status:        string(reviewed.Status),
	})

	dto := toDTO(reviewed, owningJob, u.lookupHospital(ctx, owningJob.HospitalID))
	return &dto, nil
}

// Get returns one application with its visibility flags recomputed from the
// current job/hospital state.
func (u *Usecase) Get(ctx context.Context, applicationID, doctorID string) (*ApplicationDTO, error) {
	a, err := u.apps.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appDomain.ErrNotFound
		}
		return nil, err
	}
	if a.DoctorID != doctorID {
		return nil, appDomain.ErrForbidden
	}
	j := u.lookupJob(ctx, a.JobID)
	var h *hospitalDomain.Hospital
	if j != nil {
		h = u.lookupHospital(ctx, j.HospitalID)
	}
	dto := toDTO(a, j, h)
	return &dto, nil
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*ApplicationPage, error) {
	var filter *appDomain.Status
	if s := strings.TrimSpace(in.Status); s != "" {
		st, err := appDomain.ParseStatus(s)
		if err != nil {
			return nil, err
		}
		filter = &st
	}
	page := in.Page
	if page < 1 {
		page = 1
	}
	perPage := in.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	items, err := u.apps.ListByDoctor(ctx, in.DoctorID, filter, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	total, err := u.apps.CountByDoctor(ctx, in.DoctorID, filter)
	if err != nil {
		return nil, err
	}

	out := &ApplicationPage{Items: make([]ApplicationDTO, 0, len(items)), Total: total, Page: page, PerPage: perPage}
	jobsSeen := map[string]*jobDomain.Job{}
	hospitalsSeen := map[string]*hospitalDomain.Hospital{}
	for i := range items {
		a := &items[i]
		j, ok := jobsSeen[a.JobID]
		if !ok {
			j = u.lookupJob(ctx, a.JobID)
			jobsSeen[a.JobID] = j
		}
		var h *hospitalDomain.Hospital
		if j != nil {
			h, ok = hospitalsSeen[j.HospitalID]
			if !ok {
				h = u.lookupHospital(ctx, j.HospitalID)
				hospitalsSeen[j.HospitalID] = h
			}
		}
		out.Items = append(out.Items, toDTO(a, j, h))
	}
	return out, nil
}

// raceLoserError re-reads after a zero-rows conditional update and maps the
// winner's final state onto the loser's error.
func (u *Usecase) raceLoserError(ctx context.Context, r uow.Repos, applicationID string) error {
	cur, err := r.Applications.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appDomain.ErrNotFound
		}
		return err
	}
	if cur.Status == appDomain.StatusWithdrawn {
		return appDomain.ErrAlreadyWithdrawn
	}
	return appDomain.ErrInvalidTransition
}

// notify runs after commit on an independent context: a slow or failing
// dispatcher must never hold the transaction or surface to the caller.
func (u *Usecase) notify(ev notification.Event) {
	if u.dispatcher == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC()
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := u.dispatcher.Dispatch(ctx, ev); err != nil {
		log.Printf("notify %s for application %s: %v", ev.Kind, ev.ApplicationID, err)
	}
}

func (u *Usecase) lookupJob(ctx context.Context, jobID string) *jobDomain.Job {
	j, err := u.jobs.GetByJobID(ctx, jobID)
	if err != nil {
		return nil
	}
	return j
}

func (u *Usecase) lookupHospital(ctx context.Context, hospitalID string) *hospitalDomain.Hospital {
	if hospitalID == "" {
		return nil
	}
	h, err := u.hospitals.GetByHospitalID(ctx, hospitalID)
	if err != nil {
		return nil
	}
	return h
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "\n" + note
}

func toDTO(a *appDomain.Application, j *jobDomain.Job, h *hospitalDomain.Hospital) ApplicationDTO {
	dto := ApplicationDTO{
		ApplicationID: a.ApplicationID,
		JobID:         a.JobID,
		DoctorID:      a.DoctorID,
		Status:        string(a.Status),
		CoverLetter:   a.CoverLetter,
		Notes:         a.Notes,
		AppliedAt:     a.AppliedAt,
		UpdatedAt:     a.UpdatedAt,
		Flags:         ResolveFlags(a, j, h),
	}
	if j != nil {
		dto.JobTitle = j.Title
	}
	return dto
}
