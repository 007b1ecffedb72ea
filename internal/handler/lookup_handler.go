package handler

import (
	"errors"
	"net/http"

	"github.com/expomeet/expomeet-server/internal/bank"
	"github.com/expomeet/expomeet-server/internal/pincode"
	"github.com/labstack/echo/v4"
)

// LookupHandler fronts the external postal pincode and IFSC directories.
type LookupHandler struct {
	pincodes *pincode.Client
	ifsc     *bank.Client
}

func NewLookupHandler(pincodes *pincode.Client, ifsc *bank.Client) *LookupHandler {
	return &LookupHandler{pincodes: pincodes, ifsc: ifsc}
}

func (h *LookupHandler) Pincode(c echo.Context) error {
	code := c.Param("code")
	if err := pincode.Validate(code); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "pincode must be 6 digits"))
	}
	if h.pincodes == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("lookup_unavailable", "pincode lookup is not configured"))
	}
	areas, err := h.pincodes.Lookup(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, pincode.ErrInvalidPincode) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "pincode not found"))
		}
		return c.JSON(http.StatusBadGateway, NewErrorResponse("lookup_failed", "pincode directory is unreachable"))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"areas": areas})
}

func (h *LookupHandler) ValidatePincode(c echo.Context) error {
	err := pincode.Validate(c.Param("code"))
	return c.JSON(http.StatusOK, map[string]bool{"valid": err == nil})
}

func (h *LookupHandler) IFSC(c echo.Context) error {
	code := c.Param("code")
	if err := bank.ValidateIFSC(code); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "invalid ifsc code"))
	}
	if h.ifsc == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("lookup_unavailable", "ifsc lookup is not configured"))
	}
	branch, err := h.ifsc.Lookup(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, bank.ErrInvalidIFSC) {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "ifsc code not found"))
		}
		return c.JSON(http.StatusBadGateway, NewErrorResponse("lookup_failed", "ifsc directory is unreachable"))
	}
	return c.JSON(http.StatusOK, branch)
}
