package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/expomeet/expomeet-server/internal/repository"
	"github.com/expomeet/expomeet-server/internal/service"
	"github.com/labstack/echo/v4"
)

// BuyersHandler serves the buyer directory consumed by sellers and admins.
type BuyersHandler struct {
	buyers service.BuyerService
}

func NewBuyersHandler(buyers service.BuyerService) *BuyersHandler {
	return &BuyersHandler{buyers: buyers}
}

func (h *BuyersHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	f := repository.BuyerFilter{
		Name:         c.QueryParam("name"),
		Organization: c.QueryParam("organization"),
		Interest:     c.QueryParam("interest"),
		PropertyType: c.QueryParam("property_type"),
		Country:      c.QueryParam("country"),
		State:        c.QueryParam("state"),
		Limit:        limit,
		Offset:       offset,
	}
	if v := c.QueryParam("walk_in"); v != "" {
		walkIn := v == "true" || v == "1"
		f.WalkIn = &walkIn
	}
	if v := c.QueryParam("user_ids"); v != "" {
		ids, _ := parseIDList(v)
		f.UserIDs = ids
	}

	profiles, total, err := h.buyers.List(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"buyers": profiles,
		"total":  total,
	})
}

func parseIDList(raw string) ([]uint64, []string) {
	var ids []uint64
	var invalid []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil || id == 0 {
			invalid = append(invalid, part)
			continue
		}
		ids = append(ids, id)
	}
	return ids, invalid
}

func (h *BuyersHandler) ByUserIDs(c echo.Context) error {
	ids, invalid := parseIDList(c.QueryParam("user_ids"))
	if len(ids) == 0 {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "user_ids is required"))
	}
	profiles, err := h.buyers.ByUserIDs(c.Request().Context(), ids)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"buyers":      profiles,
		"invalid_ids": invalid,
	})
}

type batchQuotaRequest struct {
	UserIDs []uint64 `json:"user_ids" validate:"required,min=1"`
}

func (h *BuyersHandler) WithQuota(c echo.Context) error {
	var req batchQuotaRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}
	if len(req.UserIDs) > service.MaxBatchQuotaIDs {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed",
			"at most "+strconv.Itoa(service.MaxBatchQuotaIDs)+" user ids per request"))
	}
	result, err := h.buyers.ByUserIDsWithQuota(c.Request().Context(), req.UserIDs)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]buyerProfileResponse, 0, len(result.Buyers))
	for i := range result.Buyers {
		out = append(out, toBuyerProfileResponse(&result.Buyers[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"buyers":      out,
		"invalid_ids": result.InvalidIDs,
	})
}

func (h *BuyersHandler) Categories(c echo.Context) error {
	cats, err := h.buyers.Categories(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"categories": cats})
}

func (h *BuyersHandler) Interests(c echo.Context) error {
	interests, err := h.buyers.Interests(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"interests": interests})
}

func (h *BuyersHandler) PropertyTypes(c echo.Context) error {
	types, err := h.buyers.PropertyTypes(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"property_types": types})
}

func (h *BuyersHandler) OperatorTypes(c echo.Context) error {
	types, err := h.buyers.OperatorTypes(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"operator_types": types})
}

func (h *BuyersHandler) Countries(c echo.Context) error {
	countries, err := h.buyers.Countries(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"countries": countries})
}

func (h *BuyersHandler) States(c echo.Context) error {
	states, err := h.buyers.States(c.QueryParam("country"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"states": states})
}

// ExportData returns the flattened buyer directory sellers render into a PDF.
func (h *BuyersHandler) ExportData(c echo.Context) error {
	rows, err := h.buyers.ExportData(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"buyers":      rows,
		"total_count": len(rows),
	})
}
