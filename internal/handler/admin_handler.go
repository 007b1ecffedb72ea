package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/expomeet/expomeet-server/internal/repository"
	"github.com/expomeet/expomeet-server/internal/service"
	"github.com/expomeet/expomeet-server/internal/storage"
	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	auth     service.AuthService
	settings service.SettingsService
	travel   service.TravelService
	quota    service.QuotaService
	files    *storage.FileStore
}

func NewAdminHandler(
	auth service.AuthService,
	settings service.SettingsService,
	travel service.TravelService,
	quota service.QuotaService,
	files *storage.FileStore,
) *AdminHandler {
	return &AdminHandler{auth: auth, settings: settings, travel: travel, quota: quota, files: files}
}

func (h *AdminHandler) Settings(c echo.Context) error {
	settings, err := h.settings.All(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"settings": settings})
}

type settingRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value" validate:"required"`
}

func (h *AdminHandler) SetSetting(c echo.Context) error {
	var req settingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}
	if err := h.settings.Set(c.Request().Context(), req.Key, req.Value); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "setting saved"})
}

type inviteRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

func (h *AdminHandler) CreateInvite(c echo.Context) error {
	var req inviteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}
	inv, err := h.auth.CreateInvite(c.Request().Context(), req.Email, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, inv)
}

func (h *AdminHandler) TravelReport(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	plans, total, err := h.travel.Report(c.Request().Context(), repository.TravelReportFilter{
		Search:   c.QueryParam("search"),
		Type:     c.QueryParam("type"),
		SortBy:   c.QueryParam("sort_by"),
		SortDesc: c.QueryParam("sort_desc") == "true",
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"plans": plans,
		"total": total,
	})
}

// ExpireStaleMeetings forces a full sweep of overdue pending requests.
func (h *AdminHandler) ExpireStaleMeetings(c echo.Context) error {
	n, err := h.quota.SweepAll(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"expired": n})
}

func (h *AdminHandler) UploadFloorplan(c echo.Context) error {
	if h.files == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("storage_unavailable", "file storage is not configured"))
	}
	file, err := c.FormFile("floorplan")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "floorplan file is required"))
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "could not read uploaded file"))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "could not read uploaded file"))
	}
	if err := h.files.SaveFloorplan(data); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "floorplan saved"})
}

func (h *AdminHandler) Floorplan(c echo.Context) error {
	if h.files == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("storage_unavailable", "file storage is not configured"))
	}
	data, err := h.files.FetchFloorplan()
	if err != nil {
		return respondError(c, err)
	}
	return c.Blob(http.StatusOK, "image/svg+xml", data)
}
