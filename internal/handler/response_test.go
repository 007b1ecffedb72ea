package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/expomeet/expomeet-server/internal/service"
	"github.com/labstack/echo/v4"
)

func TestRespondErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"invalid token", service.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", service.ErrTokenExpired, http.StatusUnauthorized},
		{"validation", service.ErrValidation, http.StatusBadRequest},
		{"conflict", service.ErrConflict, http.StatusBadRequest},
		{"status conflict", service.ErrStatusConflict, http.StatusBadRequest},
		{"quota exceeded", service.ErrQuotaExceeded, http.StatusBadRequest},
		{"outside window", service.ErrOutsideWindow, http.StatusBadRequest},
		{"meetings disabled", service.ErrMeetingsDisabled, http.StatusBadRequest},
		{"token already used", service.ErrAlreadyUsed, http.StatusBadRequest},
		{"settings missing", service.ErrSettingsMissing, http.StatusInternalServerError},
	}
	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if err := respondError(c, tt.err); err != nil {
				t.Fatalf("err=%v", err)
			}
			if rec.Code != tt.want {
				t.Fatalf("status=%d want %d", rec.Code, tt.want)
			}
		})
	}
}
