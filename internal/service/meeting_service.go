package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/repository"
	"gorm.io/gorm"
)

// MeetingInfo is a meeting with display names resolved for both parties.
type MeetingInfo struct {
	Meeting    model.Meeting
	BuyerName  string
	SellerName string
}

type CreateMeetingInput struct {
	CounterpartID uint64
	Notes         string
	TimeSlotID    *uint64
	MeetingDate   *time.Time
}

type MeetingService interface {
	Create(ctx context.Context, requestorID uint64, requestorRole model.Role, in CreateMeetingInput) (*model.Meeting, error)
	Accept(ctx context.Context, actorID uint64, actorRole model.Role, meetingID uint64) (*model.Meeting, error)
	Reject(ctx context.Context, actorID uint64, actorRole model.Role, meetingID uint64) (*model.Meeting, error)
	Cancel(ctx context.Context, actorID uint64, meetingID uint64) (*model.Meeting, error)
	Confirm(ctx context.Context, sellerID uint64, meetingID int64, buyerID uint64) (*model.Meeting, error)
	Get(ctx context.Context, actorID uint64, actorRole model.Role, meetingID uint64) (*model.Meeting, error)
	List(ctx context.Context, actorID uint64, actorRole model.Role) ([]MeetingInfo, error)
}

type meetingService struct {
	meetings repository.MeetingRepository
	slots    repository.TimeSlotRepository
	users    repository.UserRepository
	buyers   repository.BuyerProfileRepository
	sellers  repository.SellerProfileRepository
	quota    QuotaService
	settings SettingsService
	now      func() time.Time
}

func NewMeetingService(
	meetings repository.MeetingRepository,
	slots repository.TimeSlotRepository,
	users repository.UserRepository,
	buyers repository.BuyerProfileRepository,
	sellers repository.SellerProfileRepository,
	quota QuotaService,
	settings SettingsService,
) MeetingService {
	return &meetingService{
		meetings: meetings,
		slots:    slots,
		users:    users,
		buyers:   buyers,
		sellers:  sellers,
		quota:    quota,
		settings: settings,
		now:      time.Now,
	}
}

func (s *meetingService) Create(ctx context.Context, requestorID uint64, requestorRole model.Role, in CreateMeetingInput) (*model.Meeting, error) {
	if !s.settings.MeetingsEnabled(ctx) {
		return nil, ErrMeetingsDisabled
	}

	counterpart, err := s.users.FindByID(ctx, in.CounterpartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var buyerID, sellerID uint64
	switch requestorRole {
	case model.RoleBuyer:
		if counterpart.Role != model.RoleSeller {
			return nil, fmt.Errorf("%w: counterpart is not a seller", ErrValidation)
		}
		buyerID, sellerID = requestorID, counterpart.ID
	case model.RoleSeller:
		if counterpart.Role != model.RoleBuyer {
			return nil, fmt.Errorf("%w: counterpart is not a buyer", ErrValidation)
		}
		buyerID, sellerID = counterpart.ID, requestorID
	default:
		return nil, ErrForbidden
	}

	existing, err := s.meetings.FindLatestForPair(ctx, buyerID, sellerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status.BlocksNewRequest() {
		return nil, fmt.Errorf("%w: meeting already exists with status %s", ErrConflict, existing.Status)
	}

	if requestorRole == model.RoleBuyer {
		q, err := s.quota.BuyerQuotaForUser(ctx, requestorID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if err == nil && q.RemainingRequestCount <= 0 {
			return nil, ErrQuotaExceeded
		}
	} else {
		q, err := s.quota.SellerQuotaForUser(ctx, requestorID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if err == nil && q.RemainingRequestCount <= 0 {
			return nil, ErrQuotaExceeded
		}
	}

	m := &model.Meeting{
		BuyerID:     buyerID,
		SellerID:    sellerID,
		RequestorID: requestorID,
		Status:      model.MeetingStatusPending,
		MeetingDate: in.MeetingDate,
		Notes:       in.Notes,
	}
	if err := s.meetings.Create(ctx, m); err != nil {
		return nil, err
	}

	if in.TimeSlotID != nil {
		affected, err := s.slots.AttachMeeting(ctx, *in.TimeSlotID, m.ID)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			// slot got taken between selection and submit; drop the request
			if _, err := s.meetings.UpdateStatusIf(ctx, m.ID, model.MeetingStatusCancelled, model.MeetingStatusPending); err != nil {
				log.Printf("[meeting] stage=slot_conflict_rollback meeting=%d err=%v", m.ID, err)
			}
			return nil, fmt.Errorf("%w: time slot no longer available", ErrConflict)
		}
		m.TimeSlotID = in.TimeSlotID
		if err := s.meetings.Save(ctx, m); err != nil {
			return nil, err
		}
	}

	log.Printf("[meeting] stage=created id=%d buyer=%d seller=%d requestor=%d", m.ID, buyerID, sellerID, requestorID)
	return m, nil
}

// respond handles the shared accept/reject path. Only the party who did
// not open the request may respond, and only while it is still pending.
func (s *meetingService) respond(ctx context.Context, actorID uint64, actorRole model.Role, meetingID uint64, to model.MeetingStatus) (*model.Meeting, error) {
	m, err := s.meetings.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if m.BuyerID != actorID && m.SellerID != actorID {
		return nil, ErrForbidden
	}
	if m.RequestorID == actorID {
		return nil, fmt.Errorf("%w: cannot respond to your own request", ErrForbidden)
	}

	if to == model.MeetingStatusAccepted && actorRole == model.RoleBuyer {
		q, err := s.quota.BuyerQuotaForUser(ctx, actorID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if err == nil && !q.CanAccept {
			return nil, ErrQuotaExceeded
		}
	}

	affected, err := s.meetings.UpdateStatusIf(ctx, meetingID, to, model.MeetingStatusPending)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		current, err := s.meetings.FindByID(ctx, meetingID)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: meeting is %s", ErrStatusConflict, current.Status)
	}

	if to == model.MeetingStatusRejected {
		if err := s.slots.ReleaseByMeeting(ctx, meetingID); err != nil {
			log.Printf("[meeting] stage=slot_release meeting=%d err=%v", meetingID, err)
		}
	}

	log.Printf("[meeting] stage=%s id=%d actor=%d", to, meetingID, actorID)
	return s.meetings.FindByID(ctx, meetingID)
}

func (s *meetingService) Accept(ctx context.Context, actorID uint64, actorRole model.Role, meetingID uint64) (*model.Meeting, error) {
	return s.respond(ctx, actorID, actorRole, meetingID, model.MeetingStatusAccepted)
}

func (s *meetingService) Reject(ctx context.Context, actorID uint64, actorRole model.Role, meetingID uint64) (*model.Meeting, error) {
	return s.respond(ctx, actorID, actorRole, meetingID, model.MeetingStatusRejected)
}

func (s *meetingService) Cancel(ctx context.Context, actorID uint64, meetingID uint64) (*model.Meeting, error) {
	m, err := s.meetings.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if m.BuyerID != actorID && m.SellerID != actorID {
		return nil, ErrForbidden
	}

	affected, err := s.meetings.UpdateStatusIf(ctx, meetingID, model.MeetingStatusCancelled,
		model.MeetingStatusPending, model.MeetingStatusAccepted)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		current, err := s.meetings.FindByID(ctx, meetingID)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: meeting is %s", ErrStatusConflict, current.Status)
	}

	if err := s.slots.ReleaseByMeeting(ctx, meetingID); err != nil {
		log.Printf("[meeting] stage=slot_release meeting=%d err=%v", meetingID, err)
	}

	log.Printf("[meeting] stage=cancelled id=%d actor=%d", meetingID, actorID)
	return s.meetings.FindByID(ctx, meetingID)
}

// Confirm marks a meeting as held after the seller scans the buyer's
// badge at the stall. Walk-in buyers get an unscheduled completion row;
// registered buyers need an accepted meeting whose date has arrived.
// A negative meetingID asks the service to resolve the pair itself.
func (s *meetingService) Confirm(ctx context.Context, sellerID uint64, meetingID int64, buyerID uint64) (*model.Meeting, error) {
	eventStart, eventEnd, err := s.settings.EventWindow(ctx)
	if err != nil {
		return nil, err
	}
	dayStart, dayEnd, err := s.settings.DailyMeetingWindow(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if today.Before(eventStart) || today.After(eventEnd) {
		return nil, fmt.Errorf("%w: outside event dates", ErrOutsideWindow)
	}
	minute := now.Hour()*60 + now.Minute()
	if minute < dayStart.Hour()*60+dayStart.Minute() || minute > dayEnd.Hour()*60+dayEnd.Minute() {
		return nil, fmt.Errorf("%w: outside daily meeting hours", ErrOutsideWindow)
	}

	profile, err := s.buyers.FindByUserID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if profile.CategoryID != nil && *profile.CategoryID == model.WalkInCategoryID {
		existing, err := s.meetings.FindPairWithStatus(ctx, buyerID, sellerID, model.MeetingStatusUnscheduled)
		if err == nil {
			return existing, nil // walk-in already recorded
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		m := &model.Meeting{
			BuyerID:     buyerID,
			SellerID:    sellerID,
			RequestorID: sellerID,
			Status:      model.MeetingStatusUnscheduled,
			MeetingDate: &today,
		}
		if err := s.meetings.Create(ctx, m); err != nil {
			return nil, err
		}
		log.Printf("[meeting] stage=walkin_confirmed id=%d buyer=%d seller=%d", m.ID, buyerID, sellerID)
		return m, nil
	}

	var m *model.Meeting
	if meetingID < 0 {
		m, err = s.meetings.FindPairWithStatus(ctx, buyerID, sellerID,
			model.MeetingStatusAccepted, model.MeetingStatusCompleted)
	} else {
		m, err = s.meetings.FindByID(ctx, uint64(meetingID))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if m.SellerID != sellerID || m.BuyerID != buyerID {
		return nil, ErrForbidden
	}
	if m.Status == model.MeetingStatusCompleted {
		return m, nil // confirming twice is fine
	}
	if m.Status != model.MeetingStatusAccepted {
		return nil, fmt.Errorf("%w: meeting is %s", ErrStatusConflict, m.Status)
	}
	if m.MeetingDate != nil && m.MeetingDate.After(today) {
		return nil, fmt.Errorf("%w: meeting is scheduled for %s", ErrValidation, m.MeetingDate.Format("2006-01-02"))
	}

	affected, err := s.meetings.UpdateStatusIf(ctx, m.ID, model.MeetingStatusCompleted, model.MeetingStatusAccepted)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		current, err := s.meetings.FindByID(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		if current.Status == model.MeetingStatusCompleted {
			return current, nil
		}
		return nil, fmt.Errorf("%w: meeting is %s", ErrStatusConflict, current.Status)
	}

	log.Printf("[meeting] stage=confirmed id=%d buyer=%d seller=%d", m.ID, buyerID, sellerID)
	return s.meetings.FindByID(ctx, m.ID)
}

func (s *meetingService) Get(ctx context.Context, actorID uint64, actorRole model.Role, meetingID uint64) (*model.Meeting, error) {
	m, err := s.meetings.FindByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actorRole != model.RoleAdmin && m.BuyerID != actorID && m.SellerID != actorID {
		return nil, ErrForbidden
	}
	return m, nil
}

func (s *meetingService) List(ctx context.Context, actorID uint64, actorRole model.Role) ([]MeetingInfo, error) {
	if _, err := s.quota.ExpireStaleForUser(ctx, actorID); err != nil {
		return nil, err
	}

	var (
		list []model.Meeting
		err  error
	)
	if actorRole == model.RoleAdmin {
		list, err = s.meetings.ListAll(ctx)
	} else {
		list, err = s.meetings.ListInvolving(ctx, actorID)
	}
	if err != nil {
		return nil, err
	}
	return s.resolveNames(ctx, list)
}

func (s *meetingService) resolveNames(ctx context.Context, list []model.Meeting) ([]MeetingInfo, error) {
	buyerIDs := make([]uint64, 0, len(list))
	sellerIDs := make([]uint64, 0, len(list))
	for _, m := range list {
		buyerIDs = append(buyerIDs, m.BuyerID)
		sellerIDs = append(sellerIDs, m.SellerID)
	}

	buyerNames := map[uint64]string{}
	if len(buyerIDs) > 0 {
		profiles, err := s.buyers.FindByUserIDs(ctx, buyerIDs)
		if err != nil {
			return nil, err
		}
		for _, p := range profiles {
			buyerNames[p.UserID] = p.Name
		}
	}
	sellerNames := map[uint64]string{}
	if len(sellerIDs) > 0 {
		profiles, err := s.sellers.FindByUserIDs(ctx, sellerIDs)
		if err != nil {
			return nil, err
		}
		for _, p := range profiles {
			sellerNames[p.UserID] = p.BusinessName
		}
	}

	out := make([]MeetingInfo, 0, len(list))
	for _, m := range list {
		out = append(out, MeetingInfo{
			Meeting:    m,
			BuyerName:  buyerNames[m.BuyerID],
			SellerName: sellerNames[m.SellerID],
		})
	}
	return out, nil
}
