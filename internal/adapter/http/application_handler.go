package http

import (
	"net/http"
	"strconv"

	uc "medmatch-backend/internal/usecase/application"

	"github.com/labstack/echo/v4"
)

const (
	headerDoctorID   = "X-Doctor-Id"
	headerHospitalID = "X-Hospital-Id"
)

type ApplicationHandler struct{ uc *uc.Usecase }

func NewApplicationHandler(u *uc.Usecase) *ApplicationHandler { return &ApplicationHandler{uc: u} }

type createApplicationReq struct {
	CoverLetter string `json:"cover_letter" validate:"omitempty,max=10000"`
}

type withdrawApplicationReq struct {
	Reason string `json:"reason" validate:"omitempty,max=2000"`
}

type reviewApplicationReq struct {
	Status string `json:"status" validate:"required,oneof=reviewing accepted rejected"`
	Notes  string `json:"notes"  validate:"omitempty,max=10000"`
}

// POST /jobs/:job_id/applications
func (h *ApplicationHandler) Create(c echo.Context) error {
	doctorID, ok := identityID(c, headerDoctorID)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + headerDoctorID})
	}
	jobID := c.Param("job_id")
	if !reHex32.MatchString(jobID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid job_id path param"})
	}
	var req createApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), uc.CreateInput{
		DoctorID:    doctorID,
		JobID:       jobID,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// POST /applications/:application_id/withdraw
func (h *ApplicationHandler) Withdraw(c echo.Context) error {
	doctorID, ok := identityID(c, headerDoctorID)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + headerDoctorID})
	}
	applicationID := c.Param("application_id")
	if !reHex32.MatchString(applicationID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application_id path param"})
	}
	var req withdrawApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Withdraw(c.Request().Context(), uc.WithdrawInput{
		ApplicationID: applicationID,
		DoctorID:      doctorID,
		Reason:        req.Reason,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// PATCH /applications/:application_id/status
func (h *ApplicationHandler) Review(c echo.Context) error {
	hospitalID, ok := identityID(c, headerHospitalID)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + headerHospitalID})
	}
	applicationID := c.Param("application_id")
	if !reHex32.MatchString(applicationID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application_id path param"})
	}
	var req reviewApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Review(c.Request().Context(), uc.ReviewInput{
		ApplicationID: applicationID,
		HospitalID:    hospitalID,
		NextStatus:    req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// GET /applications/:application_id
func (h *ApplicationHandler) Get(c echo.Context) error {
	doctorID, ok := identityID(c, headerDoctorID)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + headerDoctorID})
	}
	applicationID := c.Param("application_id")
	if !reHex32.MatchString(applicationID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid application_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), applicationID, doctorID)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// GET /applications?status=&page=&per_page=
func (h *ApplicationHandler) List(c echo.Context) error {
	doctorID, ok := identityID(c, headerDoctorID)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + headerDoctorID})
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))
	out, err := h.uc.List(c.Request().Context(), uc.ListInput{
		DoctorID: doctorID,
		Status:   c.QueryParam("status"),
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		// an unknown status filter is a caller mistake, not a 500
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
