package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/expomeet/expomeet-server/internal/middleware"
	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/service"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type BuyerHandler struct {
	buyers service.BuyerService
	travel service.TravelService
}

func NewBuyerHandler(buyers service.BuyerService, travel service.TravelService) *BuyerHandler {
	return &BuyerHandler{buyers: buyers, travel: travel}
}

type buyerProfileRequest struct {
	Name                 string   `json:"name" validate:"required"`
	Organization         string   `json:"organization"`
	Designation          string   `json:"designation"`
	Mobile               string   `json:"mobile"`
	Country              string   `json:"country"`
	State                string   `json:"state"`
	City                 string   `json:"city"`
	Address              string   `json:"address"`
	Pincode              string   `json:"pincode"`
	GSTNumber            string   `json:"gst_number"`
	OperatorType         string   `json:"operator_type"`
	Interests            []string `json:"interests"`
	PropertiesOfInterest []string `json:"properties_of_interest"`
	CategoryID           *uint64  `json:"category_id"`
}

func (r *buyerProfileRequest) toModel(userID uint64) (*model.BuyerProfile, error) {
	interests, err := toJSONArray(r.Interests)
	if err != nil {
		return nil, err
	}
	properties, err := toJSONArray(r.PropertiesOfInterest)
	if err != nil {
		return nil, err
	}
	return &model.BuyerProfile{
		UserID:               userID,
		Name:                 r.Name,
		Organization:         r.Organization,
		Designation:          r.Designation,
		Mobile:               r.Mobile,
		Country:              r.Country,
		State:                r.State,
		City:                 r.City,
		Address:              r.Address,
		Pincode:              r.Pincode,
		GSTNumber:            r.GSTNumber,
		OperatorType:         r.OperatorType,
		Interests:            interests,
		PropertiesOfInterest: properties,
		CategoryID:           r.CategoryID,
	}, nil
}

func toJSONArray(values []string) (datatypes.JSON, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// buyerProfileResponse flattens the profile and its quota block into one
// JSON object; the quota key names are the client contract.
type buyerProfileResponse struct {
	model.BuyerProfile
	*service.BuyerQuota
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

func toBuyerProfileResponse(v *service.BuyerView) buyerProfileResponse {
	return buyerProfileResponse{
		BuyerProfile:    v.Profile,
		BuyerQuota:      v.Quota,
		ProfileImageURL: v.ImageURL,
	}
}

func (h *BuyerHandler) GetProfile(c echo.Context) error {
	view, err := h.buyers.GetProfile(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toBuyerProfileResponse(view))
}

func (h *BuyerHandler) SaveProfile(c echo.Context) error {
	var req buyerProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}
	p, err := req.toModel(middleware.UserID(c))
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "invalid interest list"))
	}
	view, err := h.buyers.SaveProfile(c.Request().Context(), middleware.UserID(c), p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toBuyerProfileResponse(view))
}

func (h *BuyerHandler) Dashboard(c echo.Context) error {
	data, err := h.buyers.Dashboard(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, data)
}

func (h *BuyerHandler) UploadProfileImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "image file is required"))
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

	url, err := h.buyers.SaveProfileImage(c.Request().Context(), middleware.UserID(c), file.Filename, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"profile_image": url})
}

type bankDetailsRequest struct {
	AccountHolder string `json:"account_holder" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required,min=6,max=20"`
	IFSCCode      string `json:"ifsc_code" validate:"required,len=11"`
}

func (h *BuyerHandler) GetBankDetails(c echo.Context) error {
	d, err := h.buyers.BankDetails(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *BuyerHandler) SaveBankDetails(c echo.Context) error {
	var req bankDetailsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}
	d, branch, err := h.buyers.SaveBankDetails(c.Request().Context(), middleware.UserID(c), &model.BuyerBankDetails{
		AccountHolder: req.AccountHolder,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"details": d,
		"branch":  branch,
	})
}

func (h *BuyerHandler) TravelPlans(c echo.Context) error {
	plans, err := h.travel.Plans(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"plans": plans})
}

type transportationRequest struct {
	Leg string `json:"leg" validate:"required,oneof=outbound return both"`

	OutboundType              string `json:"outbound_type"`
	OutboundCarrier           string `json:"outbound_carrier"`
	OutboundNumber            string `json:"outbound_number"`
	OutboundDepartureLocation string `json:"outbound_departure_location"`
	OutboundDepartureDatetime string `json:"outbound_departure_datetime"`
	OutboundArrivalLocation   string `json:"outbound_arrival_location"`
	OutboundArrivalDatetime   string `json:"outbound_arrival_datetime"`
	OutboundBookingReference  string `json:"outbound_booking_reference"`
	OutboundSeatInfo          string `json:"outbound_seat_info"`

	ReturnType              string `json:"return_type"`
	ReturnCarrier           string `json:"return_carrier"`
	ReturnNumber            string `json:"return_number"`
	ReturnDepartureLocation string `json:"return_departure_location"`
	ReturnDepartureDatetime string `json:"return_departure_datetime"`
	ReturnArrivalLocation   string `json:"return_arrival_location"`
	ReturnArrivalDatetime   string `json:"return_arrival_datetime"`
	ReturnBookingReference  string `json:"return_booking_reference"`
	ReturnSeatInfo          string `json:"return_seat_info"`
}

func (h *BuyerHandler) SaveTransportation(c echo.Context) error {
	var req transportationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}
	t, err := h.travel.UpdateTransportation(c.Request().Context(), middleware.UserID(c), service.TransportationInput{
		Leg:                       req.Leg,
		OutboundType:              req.OutboundType,
		OutboundCarrier:           req.OutboundCarrier,
		OutboundNumber:            req.OutboundNumber,
		OutboundDepartureLocation: req.OutboundDepartureLocation,
		OutboundDepartureDatetime: req.OutboundDepartureDatetime,
		OutboundArrivalLocation:   req.OutboundArrivalLocation,
		OutboundArrivalDatetime:   req.OutboundArrivalDatetime,
		OutboundBookingReference:  req.OutboundBookingReference,
		OutboundSeatInfo:          req.OutboundSeatInfo,
		ReturnType:                req.ReturnType,
		ReturnCarrier:             req.ReturnCarrier,
		ReturnNumber:              req.ReturnNumber,
		ReturnDepartureLocation:   req.ReturnDepartureLocation,
		ReturnDepartureDatetime:   req.ReturnDepartureDatetime,
		ReturnArrivalLocation:     req.ReturnArrivalLocation,
		ReturnArrivalDatetime:     req.ReturnArrivalDatetime,
		ReturnBookingReference:    req.ReturnBookingReference,
		ReturnSeatInfo:            req.ReturnSeatInfo,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

type accommodationRequest struct {
	HostPropertyID  *uint64 `json:"host_property_id"`
	HotelName       string  `json:"hotel_name"`
	RoomType        string  `json:"room_type" validate:"omitempty,oneof=shared single"`
	CheckInDate     string  `json:"check_in_date"`
	CheckOutDate    string  `json:"check_out_date"`
	SpecialRequests string  `json:"special_requests"`
}

func (h *BuyerHandler) SaveAccommodation(c echo.Context) error {
	var req accommodationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}
	a, err := h.travel.UpdateAccommodation(c.Request().Context(), middleware.UserID(c), service.AccommodationInput{
		HostPropertyID:  req.HostPropertyID,
		HotelName:       req.HotelName,
		RoomType:        req.RoomType,
		CheckInDate:     req.CheckInDate,
		CheckOutDate:    req.CheckOutDate,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *BuyerHandler) HostProperties(c echo.Context) error {
	props, err := h.travel.HostProperties(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"properties": props})
}
