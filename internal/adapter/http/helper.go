package http

import (
	"errors"
	"net/http"

	appDomain "medmatch-backend/internal/domain/application"

	"github.com/labstack/echo/v4"
)

// writeDomainError maps the lifecycle error taxonomy onto HTTP codes.
// Busy is the only retryable one and carries a Retry-After hint.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, appDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, appDomain.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, appDomain.ErrJobNotEligible):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, appDomain.ErrDuplicateApplication),
		errors.Is(err, appDomain.ErrInvalidTransition),
		errors.Is(err, appDomain.ErrAlreadyWithdrawn):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, appDomain.ErrBusy):
		c.Response().Header().Set("Retry-After", "1")
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// identityID pulls and validates a 32-hex caller identity header.
func identityID(c echo.Context, header string) (string, bool) {
	v := c.Request().Header.Get(header)
	if !reHex32.MatchString(v) {
		return "", false
	}
	return v, true
}
