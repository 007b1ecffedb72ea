package handler

import (
	"errors"
	"net/http"

	"github.com/expomeet/expomeet-server/internal/service"
	"github.com/labstack/echo/v4"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// respondError maps service sentinel errors onto the HTTP contract:
// validation and state conflicts are 400 with the explanatory message,
// authorization is 403, missing settings with no sane default are 500.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", err.Error()))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", err.Error()))
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenExpired):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", err.Error()))
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrStatusConflict),
		errors.Is(err, service.ErrQuotaExceeded),
		errors.Is(err, service.ErrOutsideWindow),
		errors.Is(err, service.ErrMeetingsDisabled),
		errors.Is(err, service.ErrAlreadyUsed):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	case errors.Is(err, service.ErrSettingsMissing):
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("settings_missing", err.Error()))
	}
	return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "internal server error"))
}
