package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/repository"
	"gorm.io/gorm"
)

// Default travel timings anchored to the event window: arrivals around
// midday before the opening, departures in the evening of the last day.
const (
	defaultOutboundDepartHour = 12
	defaultOutboundArriveHour = 14
	defaultReturnDepartHour   = 18
	defaultReturnArriveHour   = 12 // next day after the event ends
)

type TransportationInput struct {
	Leg string // outbound | return | both

	OutboundType              string
	OutboundCarrier           string
	OutboundNumber            string
	OutboundDepartureLocation string
	OutboundDepartureDatetime string
	OutboundArrivalLocation   string
	OutboundArrivalDatetime   string
	OutboundBookingReference  string
	OutboundSeatInfo          string

	ReturnType              string
	ReturnCarrier           string
	ReturnNumber            string
	ReturnDepartureLocation string
	ReturnDepartureDatetime string
	ReturnArrivalLocation   string
	ReturnArrivalDatetime   string
	ReturnBookingReference  string
	ReturnSeatInfo          string
}

type AccommodationInput struct {
	HostPropertyID  *uint64
	HotelName       string
	RoomType        string
	CheckInDate     string
	CheckOutDate    string
	SpecialRequests string
}

type TravelService interface {
	Plans(ctx context.Context, userID uint64) ([]model.TravelPlan, error)
	UpdateTransportation(ctx context.Context, userID uint64, in TransportationInput) (*model.Transportation, error)
	UpdateAccommodation(ctx context.Context, userID uint64, in AccommodationInput) (*model.Accommodation, error)
	HostProperties(ctx context.Context) ([]model.HostProperty, error)
	Report(ctx context.Context, f repository.TravelReportFilter) ([]model.TravelPlan, int64, error)
}

type travelService struct {
	travel   repository.TravelRepository
	settings SettingsService
}

func NewTravelService(travel repository.TravelRepository, settings SettingsService) TravelService {
	return &travelService{travel: travel, settings: settings}
}

// Plans returns the user's travel plans, creating an empty default plan
// on first read so the client always has something to edit.
func (s *travelService) Plans(ctx context.Context, userID uint64) ([]model.TravelPlan, error) {
	plans, err := s.travel.ListPlansByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(plans) > 0 {
		return plans, nil
	}
	p := &model.TravelPlan{UserID: userID, Status: "draft"}
	if err := s.travel.CreatePlan(ctx, p); err != nil {
		return nil, err
	}
	return []model.TravelPlan{*p}, nil
}

func (s *travelService) UpdateTransportation(ctx context.Context, userID uint64, in TransportationInput) (*model.Transportation, error) {
	plan, err := s.planFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	t := plan.Transportation
	if t == nil {
		t = &model.Transportation{TravelPlanID: plan.ID}
	}

	eventStart, eventEnd, eventErr := s.settings.EventWindow(ctx)

	leg := strings.ToLower(in.Leg)
	if leg == "" {
		leg = "both"
	}
	if leg == "outbound" || leg == "both" {
		t.OutboundType = in.OutboundType
		t.OutboundCarrier = in.OutboundCarrier
		t.OutboundNumber = in.OutboundNumber
		t.OutboundDepartureLocation = in.OutboundDepartureLocation
		t.OutboundArrivalLocation = in.OutboundArrivalLocation
		t.OutboundBookingReference = in.OutboundBookingReference
		t.OutboundSeatInfo = in.OutboundSeatInfo
		if eventErr == nil {
			t.OutboundDepartureDatetime = parseTravelDatetime(in.OutboundDepartureDatetime,
				atHour(eventStart, defaultOutboundDepartHour))
			t.OutboundArrivalDatetime = parseTravelDatetime(in.OutboundArrivalDatetime,
				atHour(eventStart, defaultOutboundArriveHour))
		} else {
			t.OutboundDepartureDatetime = parseTravelDatetimeNoDefault(in.OutboundDepartureDatetime)
			t.OutboundArrivalDatetime = parseTravelDatetimeNoDefault(in.OutboundArrivalDatetime)
		}
	}
	if leg == "return" || leg == "both" {
		t.ReturnType = in.ReturnType
		t.ReturnCarrier = in.ReturnCarrier
		t.ReturnNumber = in.ReturnNumber
		t.ReturnDepartureLocation = in.ReturnDepartureLocation
		t.ReturnArrivalLocation = in.ReturnArrivalLocation
		t.ReturnBookingReference = in.ReturnBookingReference
		t.ReturnSeatInfo = in.ReturnSeatInfo
		if eventErr == nil {
			t.ReturnDepartureDatetime = parseTravelDatetime(in.ReturnDepartureDatetime,
				atHour(eventEnd, defaultReturnDepartHour))
			t.ReturnArrivalDatetime = parseTravelDatetime(in.ReturnArrivalDatetime,
				atHour(eventEnd.AddDate(0, 0, 1), defaultReturnArriveHour))
		} else {
			t.ReturnDepartureDatetime = parseTravelDatetimeNoDefault(in.ReturnDepartureDatetime)
			t.ReturnArrivalDatetime = parseTravelDatetimeNoDefault(in.ReturnArrivalDatetime)
		}
	}

	if err := s.travel.SaveTransportation(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *travelService) UpdateAccommodation(ctx context.Context, userID uint64, in AccommodationInput) (*model.Accommodation, error) {
	plan, err := s.planFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	a := plan.Accommodation
	if a == nil {
		a = &model.Accommodation{TravelPlanID: plan.ID}
	}

	if in.HostPropertyID != nil {
		prop, err := s.travel.FindHostProperty(ctx, *in.HostPropertyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown host property", ErrValidation)
			}
			return nil, err
		}
		roomCap, guestCap := prop.Capacity()
		rooms, guests, err := s.travel.CountGuestsByProperty(ctx, prop.ID)
		if err != nil {
			return nil, err
		}
		if int(rooms) >= roomCap || int(guests) >= guestCap {
			return nil, fmt.Errorf("%w: host property is full", ErrConflict)
		}
		a.HostPropertyID = in.HostPropertyID
		a.HotelName = ""
	} else {
		a.HostPropertyID = nil
		a.HotelName = in.HotelName
	}
	a.RoomType = in.RoomType
	a.SpecialRequests = in.SpecialRequests
	a.CheckInDate = parseTravelDate(in.CheckInDate)
	a.CheckOutDate = parseTravelDate(in.CheckOutDate)

	if err := s.travel.SaveAccommodation(ctx, a); err != nil {
		return nil, err
	}

	if a.HostPropertyID != nil {
		if err := s.recomputePropertyStats(ctx, *a.HostPropertyID); err != nil {
			log.Printf("[travel] stage=stats_fail property=%d err=%v", *a.HostPropertyID, err)
		}
	}
	return a, nil
}

func (s *travelService) recomputePropertyStats(ctx context.Context, propertyID uint64) error {
	prop, err := s.travel.FindHostProperty(ctx, propertyID)
	if err != nil {
		return err
	}
	rooms, guests, err := s.travel.CountGuestsByProperty(ctx, propertyID)
	if err != nil {
		return err
	}
	prop.RoomsOccupied = int(rooms)
	prop.GuestsPlaced = int(guests)
	return s.travel.SaveHostProperty(ctx, prop)
}

func (s *travelService) HostProperties(ctx context.Context) ([]model.HostProperty, error) {
	return s.travel.ListHostProperties(ctx)
}

func (s *travelService) Report(ctx context.Context, f repository.TravelReportFilter) ([]model.TravelPlan, int64, error) {
	return s.travel.ListPlansForReport(ctx, f)
}

func (s *travelService) planFor(ctx context.Context, userID uint64) (*model.TravelPlan, error) {
	plan, err := s.travel.FindPlanByUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p := &model.TravelPlan{UserID: userID, Status: "draft"}
		if err := s.travel.CreatePlan(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}
	return plan, err
}

func atHour(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
}

// parseTravelDatetime parses a client-sent datetime, substituting the
// default when the field is empty or carries the "T:00" artifact some
// clients produce for unset times.
func parseTravelDatetime(raw string, def time.Time) *time.Time {
	if t := parseTravelDatetimeNoDefault(raw); t != nil {
		return t
	}
	return &def
}

func parseTravelDatetimeNoDefault(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "T:00") {
		return nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	log.Printf("[travel] stage=datetime_parse_fail value=%q", raw)
	return nil
}

func parseTravelDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	log.Printf("[travel] stage=date_parse_fail value=%q", raw)
	return nil
}
