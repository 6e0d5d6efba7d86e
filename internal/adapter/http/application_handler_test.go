package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appDomain "medmatch-backend/internal/domain/application"
	hospitalDomain "medmatch-backend/internal/domain/hospital"
	jobDomain "medmatch-backend/internal/domain/job"
	"medmatch-backend/internal/domain/uow"
	"medmatch-backend/internal/testutil/applicationmock"
	"medmatch-backend/internal/testutil/doctormock"
	"medmatch-backend/internal/testutil/hospitalmock"
	"medmatch-backend/internal/testutil/jobmock"
	"medmatch-backend/internal/testutil/notifymock"
	"medmatch-backend/internal/testutil/uowmock"
	uc "medmatch-backend/internal/usecase/application"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const (
	tDoctorID   = "d1d1d1d1d1d1d1d1d1d1d1d1d1d1d1d1"
	tJobID      = "1111111111111111111111111111111a"
	tHospitalID = "9999999999999999999999999999999b"
	tAppID      = "eeeeeeeeeeeeeeeeeeeeeeeeeeeeeee1"
)

func newEchoWithRoutes(h *ApplicationHandler) *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.POST("/jobs/:job_id/applications", h.Create)
	e.POST("/applications/:application_id/withdraw", h.Withdraw)
	e.PATCH("/applications/:application_id/status", h.Review)
	e.GET("/applications/:application_id", h.Get)
	e.GET("/applications", h.List)
	return e
}

func newTestHandler(apps *applicationmock.Repo) *ApplicationHandler {
	jobs := &jobmock.Repo{}
	jobs.GetByJobIDFn = func(context.Context, string) (*jobDomain.Job, error) {
		return &jobDomain.Job{ID: 1, JobID: tJobID, HospitalID: tHospitalID, Title: "Surgeon", Status: jobDomain.StatusApproved}, nil
	}
	jobs.GetByJobIDForUpdateFn = jobs.GetByJobIDFn
	hospitals := &hospitalmock.Repo{
		GetByHospitalIDFn: func(context.Context, string) (*hospitalDomain.Hospital, error) {
			return &hospitalDomain.Hospital{HospitalID: tHospitalID, IsActive: true}, nil
		},
	}
	if apps.FindActiveFn == nil {
		apps.FindActiveFn = func(context.Context, string, string) (*appDomain.Application, error) {
			return nil, gorm.ErrRecordNotFound
		}
	}
	tx := uowmock.Passthrough(uow.Repos{
		Applications: apps,
		Jobs:         jobs,
		Hospitals:    hospitals,
		Doctors:      &doctormock.Repo{},
	})
	u := uc.NewUsecase(tx, apps, jobs, hospitals, &notifymock.Dispatcher{})
	return NewApplicationHandler(u)
}

func doReq(t *testing.T, e *echo.Echo, method, path string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		hdr      map[string]string
		body     any
		setup    func(*applicationmock.Repo)
		wantCode int
		wantBody string
	}{
		{
			name:     "created",
			path:     "/jobs/" + tJobID + "/applications",
			hdr:      map[string]string{headerDoctorID: tDoctorID},
			body:     map[string]string{"cover_letter": "hi"},
			setup:    func(*applicationmock.Repo) {},
			wantCode: stdhttp.StatusCreated,
			wantBody: `"status":"applied"`,
		},
		{
			name:     "missing doctor header",
			path:     "/jobs/" + tJobID + "/applications",
			hdr:      nil,
			body:     map[string]string{},
			setup:    func(*applicationmock.Repo) {},
			wantCode: stdhttp.StatusBadRequest,
		},
		{
			name:     "bad job id param",
			path:     "/jobs/not-hex/applications",
			hdr:      map[string]string{headerDoctorID: tDoctorID},
			body:     map[string]string{},
			setup:    func(*applicationmock.Repo) {},
			wantCode: stdhttp.StatusBadRequest,
		},
		{
			name: "duplicate maps to conflict",
			path: "/jobs/" + tJobID + "/applications",
			hdr:  map[string]string{headerDoctorID: tDoctorID},
			body: map[string]string{},
			setup: func(m *applicationmock.Repo) {
				m.FindActiveFn = func(context.Context, string, string) (*appDomain.Application, error) {
					return &appDomain.Application{ApplicationID: tAppID}, nil
				}
			},
			wantCode: stdhttp.StatusConflict,
		},
		{
			name: "busy maps to 503",
			path: "/jobs/" + tJobID + "/applications",
			hdr:  map[string]string{headerDoctorID: tDoctorID},
			body: map[string]string{},
			setup: func(m *applicationmock.Repo) {
				m.FindActiveFn = func(context.Context, string, string) (*appDomain.Application, error) {
					return nil, appDomain.ErrBusy
				}
			},
			wantCode: stdhttp.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apps := &applicationmock.Repo{}
			tt.setup(apps)
			e := newEchoWithRoutes(newTestHandler(apps))
			rec := doReq(t, e, stdhttp.MethodPost, tt.path, tt.body, tt.hdr)
			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d; body=%s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Fatalf("body = %s", rec.Body.String())
			}
			if tt.name == "busy maps to 503" && rec.Header().Get("Retry-After") == "" {
				t.Fatal("expected Retry-After header")
			}
		})
	}
}

func TestWithdrawHandler(t *testing.T) {
	stored := &appDomain.Application{
		ID: 5, ApplicationID: tAppID, DoctorID: tDoctorID, JobID: tJobID, Status: appDomain.StatusApplied,
	}
	apps := &applicationmock.Repo{
		GetByApplicationIDFn: func(context.Context, string) (*appDomain.Application, error) {
			cp := *stored
			return &cp, nil
		},
	}
	e := newEchoWithRoutes(newTestHandler(apps))

	rec := doReq(t, e, stdhttp.MethodPost, "/applications/"+tAppID+"/withdraw",
		map[string]string{"reason": "moved"}, map[string]string{headerDoctorID: tDoctorID})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"status":"withdrawn"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}

	// already withdrawn → 409
	stored.Status = appDomain.StatusWithdrawn
	rec = doReq(t, e, stdhttp.MethodPost, "/applications/"+tAppID+"/withdraw",
		map[string]string{}, map[string]string{headerDoctorID: tDoctorID})
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body.String())
	}

	// foreign doctor → 403
	stored.Status = appDomain.StatusApplied
	rec = doReq(t, e, stdhttp.MethodPost, "/applications/"+tAppID+"/withdraw",
		map[string]string{}, map[string]string{headerDoctorID: "a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0a0"})
	if rec.Code != stdhttp.StatusForbidden {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestReviewHandler(t *testing.T) {
	apps := &applicationmock.Repo{
		GetByApplicationIDFn: func(context.Context, string) (*appDomain.Application, error) {
			return &appDomain.Application{
				ID: 5, ApplicationID: tAppID, DoctorID: tDoctorID, JobID: tJobID, Status: appDomain.StatusApplied,
			}, nil
		},
	}
	e := newEchoWithRoutes(newTestHandler(apps))

	rec := doReq(t, e, stdhttp.MethodPatch, "/applications/"+tAppID+"/status",
		map[string]string{"status": "reviewing"}, map[string]string{headerHospitalID: tHospitalID})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body.String())
	}

	// status outside the catalog fails request validation
	rec = doReq(t, e, stdhttp.MethodPatch, "/applications/"+tAppID+"/status",
		map[string]string{"status": "archived"}, map[string]string{headerHospitalID: tHospitalID})
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body.String())
	}

	// withdrawn is not a review target
	rec = doReq(t, e, stdhttp.MethodPatch, "/applications/"+tAppID+"/status",
		map[string]string{"status": "withdrawn"}, map[string]string{headerHospitalID: tHospitalID})
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestGetAndListHandlers(t *testing.T) {
	apps := &applicationmock.Repo{
		GetByApplicationIDFn: func(context.Context, string) (*appDomain.Application, error) {
			return nil, gorm.ErrRecordNotFound
		},
		ListByDoctorFn: func(context.Context, string, *appDomain.Status, int, int) ([]appDomain.Application, error) {
			return []appDomain.Application{
				{ApplicationID: tAppID, DoctorID: tDoctorID, JobID: tJobID, Status: appDomain.StatusApplied},
			}, nil
		},
		CountByDoctorFn: func(context.Context, string, *appDomain.Status) (int64, error) { return 1, nil },
	}
	e := newEchoWithRoutes(newTestHandler(apps))

	rec := doReq(t, e, stdhttp.MethodGet, "/applications/"+tAppID, nil, map[string]string{headerDoctorID: tDoctorID})
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doReq(t, e, stdhttp.MethodGet, "/applications?page=1&per_page=5", nil, map[string]string{headerDoctorID: tDoctorID})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body.String())
	}
	var page uc.ApplicationPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 || !page.Items[0].Flags.IsActionable {
		t.Fatalf("page = %+v", page)
	}

	// unknown status filter → 400
	rec = doReq(t, e, stdhttp.MethodGet, "/applications?status=bogus", nil, map[string]string{headerDoctorID: tDoctorID})
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body.String())
	}

	// identity header required on reads too
	rec = doReq(t, e, stdhttp.MethodGet, "/applications", nil, nil)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("code = %d body=%s", rec.Code, rec.Body.String())
	}
}
