package handler

import (
	"net/http"
	"strconv"

	"github.com/expomeet/expomeet-server/internal/middleware"
	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/service"
	"github.com/labstack/echo/v4"
)

type SellerHandler struct {
	sellers service.SellerService
}

func NewSellerHandler(sellers service.SellerService) *SellerHandler {
	return &SellerHandler{sellers: sellers}
}

type sellerProfileRequest struct {
	BusinessName string `json:"business_name" validate:"required"`
	ContactName  string `json:"contact_name"`
	Mobile       string `json:"mobile"`
	Website      string `json:"website"`
	Description  string `json:"description"`
	SellerType   string `json:"seller_type"`
	TargetMarket string `json:"target_market"`
	GSTNumber    string `json:"gst_number"`
	MicrositeURL string `json:"microsite_url"`
	LogoURL      string `json:"logo_url"`
	InstagramURL string `json:"instagram_url"`
}

func (h *SellerHandler) GetProfile(c echo.Context) error {
	p, err := h.sellers.GetProfile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *SellerHandler) SaveProfile(c echo.Context) error {
	var req sellerProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}
	p, err := h.sellers.SaveProfile(c.Request().Context(), middleware.UserID(c), &model.SellerProfile{
		UserID:       middleware.UserID(c),
		BusinessName: req.BusinessName,
		ContactName:  req.ContactName,
		Mobile:       req.Mobile,
		Website:      req.Website,
		Description:  req.Description,
		SellerType:   req.SellerType,
		TargetMarket: req.TargetMarket,
		GSTNumber:    req.GSTNumber,
		MicrositeURL: req.MicrositeURL,
		LogoURL:      req.LogoURL,
		InstagramURL: req.InstagramURL,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *SellerHandler) List(c echo.Context) error {
	sellers, err := h.sellers.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"sellers": sellers})
}

func (h *SellerHandler) Attendees(c echo.Context) error {
	attendees, err := h.sellers.Attendees(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"attendees": attendees})
}

// TimeSlots lists a seller's slots. Buyers pass the seller's user id and only
// see available slots; sellers see their own full schedule.
func (h *SellerHandler) TimeSlots(c echo.Context) error {
	sellerID := middleware.UserID(c)
	availableOnly := false
	if raw := c.Param("seller_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "invalid seller id"))
		}
		sellerID = id
		availableOnly = middleware.Role(c) != model.RoleSeller || sellerID != middleware.UserID(c)
	}
	slots, err := h.sellers.TimeSlots(c.Request().Context(), sellerID, availableOnly)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"time_slots": slots})
}
