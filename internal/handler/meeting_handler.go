package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/expomeet/expomeet-server/internal/middleware"
	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/service"
	"github.com/labstack/echo/v4"
)

type MeetingHandler struct {
	meetings service.MeetingService
	quota    service.QuotaService
}

func NewMeetingHandler(meetings service.MeetingService, quota service.QuotaService) *MeetingHandler {
	return &MeetingHandler{meetings: meetings, quota: quota}
}

type createMeetingRequest struct {
	CounterpartID uint64  `json:"counterpart_id" validate:"required"`
	Notes         string  `json:"notes"`
	TimeSlotID    *uint64 `json:"time_slot_id"`
	MeetingDate   string  `json:"meeting_date"`
}

type meetingResponse struct {
	ID          uint64     `json:"id"`
	BuyerID     uint64     `json:"buyer_id"`
	SellerID    uint64     `json:"seller_id"`
	RequestorID uint64     `json:"requestor_id"`
	Status      string     `json:"status"`
	TimeSlotID  *uint64    `json:"time_slot_id,omitempty"`
	MeetingDate *time.Time `json:"meeting_date,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	BuyerName   string     `json:"buyer_name,omitempty"`
	SellerName  string     `json:"seller_name,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toMeetingResponse(m *model.Meeting) meetingResponse {
	return meetingResponse{
		ID:          m.ID,
		BuyerID:     m.BuyerID,
		SellerID:    m.SellerID,
		RequestorID: m.RequestorID,
		Status:      string(m.Status),
		TimeSlotID:  m.TimeSlotID,
		MeetingDate: m.MeetingDate,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toMeetingInfoResponse(info service.MeetingInfo) meetingResponse {
	resp := toMeetingResponse(&info.Meeting)
	resp.BuyerName = info.BuyerName
	resp.SellerName = info.SellerName
	return resp
}

func (h *MeetingHandler) Create(c echo.Context) error {
	var req createMeetingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}
	return h.create(c, req.CounterpartID, req.Notes, req.TimeSlotID, req.MeetingDate)
}

type meetingRequestBody struct {
	RequestedID uint64  `json:"requested_id" validate:"required"`
	Notes       string  `json:"notes"`
	TimeSlotID  *uint64 `json:"time_slot_id"`
	MeetingDate string  `json:"meeting_date"`
}

// Request handles the role-specific request routes; the counterpart is
// named requested_id on the wire.
func (h *MeetingHandler) Request(c echo.Context) error {
	var req meetingRequestBody
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}
	return h.create(c, req.RequestedID, req.Notes, req.TimeSlotID, req.MeetingDate)
}

func (h *MeetingHandler) create(c echo.Context, counterpartID uint64, notes string, slotID *uint64, dateStr string) error {
	var meetingDate *time.Time
	if dateStr != "" {
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "meeting_date must be YYYY-MM-DD"))
		}
		meetingDate = &d
	}

	m, err := h.meetings.Create(c.Request().Context(), middleware.UserID(c), middleware.Role(c), service.CreateMeetingInput{
		CounterpartID: counterpartID,
		Notes:         notes,
		TimeSlotID:    slotID,
		MeetingDate:   meetingDate,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toMeetingResponse(m))
}

func (h *MeetingHandler) List(c echo.Context) error {
	list, err := h.meetings.List(c.Request().Context(), middleware.UserID(c), middleware.Role(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]meetingResponse, 0, len(list))
	for _, info := range list {
		out = append(out, toMeetingInfoResponse(info))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"meetings": out,
		"total":    len(out),
	})
}

// Export returns the caller's complete meeting list, unpaginated, for
// client-side PDF rendering.
func (h *MeetingHandler) Export(c echo.Context) error {
	list, err := h.meetings.List(c.Request().Context(), middleware.UserID(c), middleware.Role(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]meetingResponse, 0, len(list))
	for _, info := range list {
		out = append(out, toMeetingInfoResponse(info))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"meetings": out})
}

func (h *MeetingHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "invalid meeting id"))
	}
	m, err := h.meetings.Get(c.Request().Context(), middleware.UserID(c), middleware.Role(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toMeetingResponse(m))
}

func (h *MeetingHandler) Accept(c echo.Context) error {
	return h.respond(c, h.meetings.Accept)
}

func (h *MeetingHandler) Reject(c echo.Context) error {
	return h.respond(c, h.meetings.Reject)
}

type respondFunc func(ctx context.Context, actorID uint64, actorRole model.Role, meetingID uint64) (*model.Meeting, error)

func (h *MeetingHandler) respond(c echo.Context, fn respondFunc) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "invalid meeting id"))
	}
	m, err := fn(c.Request().Context(), middleware.UserID(c), middleware.Role(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toMeetingResponse(m))
}

type statusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// UpdateStatus routes the accepted/rejected transition named in the body.
func (h *MeetingHandler) UpdateStatus(c echo.Context) error {
	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", err.Error()))
	}
	if req.Status == "accepted" {
		return h.respond(c, h.meetings.Accept)
	}
	return h.respond(c, h.meetings.Reject)
}

func (h *MeetingHandler) Cancel(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "invalid meeting id"))
	}
	m, err := h.meetings.Cancel(c.Request().Context(), middleware.UserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toMeetingResponse(m))
}

// Confirm accepts a negative meeting_id as a request to locate the pair's
// active meeting by buyer and seller.
func (h *MeetingHandler) Confirm(c echo.Context) error {
	meetingID, err := strconv.ParseInt(c.Param("meeting_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "invalid meeting id"))
	}
	buyerID, err := strconv.ParseUint(c.Param("buyer_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("validation_failed", "invalid buyer id"))
	}
	m, err := h.meetings.Confirm(c.Request().Context(), middleware.UserID(c), meetingID, buyerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toMeetingResponse(m))
}

func (h *MeetingHandler) BuyerQuota(c echo.Context) error {
	q, err := h.quota.BuyerQuotaForUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *MeetingHandler) SellerQuota(c echo.Context) error {
	q, err := h.quota.SellerQuotaForUser(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}
