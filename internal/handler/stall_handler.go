package handler

import (
	"net/http"
	"strconv"

	"github.com/expomeet/expomeet-server/internal/middleware"
	"github.com/expomeet/expomeet-server/internal/service"
	"github.com/labstack/echo/v4"
)

type StallHandler struct {
	stalls service.StallService
}

func NewStallHandler(stalls service.StallService) *StallHandler {
	return &StallHandler{stalls: stalls}
}

func (h *StallHandler) ListMine(c echo.Context) error {
	stalls, err := h.stalls.ListForSeller(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"stalls": stalls})
}

func (h *StallHandler) ListAll(c echo.Context) error {
	stalls, err := h.stalls.ListAll(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"stalls": stalls})
}

func (h *StallHandler) Types(c echo.Context) error {
	types, err := h.stalls.StallTypes(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"stall_types": types})
}

func (h *StallHandler) AvailableNumbers(c echo.Context) error {
	stallID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "invalid stall id"))
	}
	numbers, err := h.stalls.AvailableNumbers(c.Request().Context(), middleware.UserID(c), stallID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"numbers": numbers})
}

type fasciaRequest struct {
	Fascia string `json:"fascia" validate:"required"`
}

func (h *StallHandler) RenameFascia(c echo.Context) error {
	stallID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "invalid stall id"))
	}
	var req fasciaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}
	p, err := h.stalls.RenameFascia(c.Request().Context(), middleware.UserID(c), stallID, req.Fascia)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

type selectNumberRequest struct {
	InventoryID uint64 `json:"inventory_id" validate:"required"`
}

func (h *StallHandler) SelectNumber(c echo.Context) error {
	stallID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "invalid stall id"))
	}
	var req selectNumberRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}
	stall, err := h.stalls.SelectNumber(c.Request().Context(), middleware.UserID(c), stallID, req.InventoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stall)
}

type adminStallUpdateRequest struct {
	Number      string  `json:"number"`
	StallTypeID *uint64 `json:"stall_type_id"`
}

func (h *StallHandler) AdminUpdate(c echo.Context) error {
	stallID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "invalid stall id"))
	}
	var req adminStallUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	stall, err := h.stalls.AdminUpdate(c.Request().Context(), stallID, req.Number, req.StallTypeID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stall)
}
