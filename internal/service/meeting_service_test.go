package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/repository"
	"gorm.io/gorm"
)

type fakeMeetingRepo struct {
	meetings map[uint64]*model.Meeting
	nextID   uint64
}

func newFakeMeetingRepo(seed ...*model.Meeting) *fakeMeetingRepo {
	r := &fakeMeetingRepo{meetings: map[uint64]*model.Meeting{}}
	for _, m := range seed {
		if m.ID == 0 {
			r.nextID++
			m.ID = r.nextID
		} else if m.ID > r.nextID {
			r.nextID = m.ID
		}
		cp := *m
		r.meetings[cp.ID] = &cp
	}
	return r
}

func (r *fakeMeetingRepo) Create(_ context.Context, m *model.Meeting) error {
	r.nextID++
	m.ID = r.nextID
	m.CreatedAt = time.Now()
	cp := *m
	r.meetings[cp.ID] = &cp
	return nil
}

func (r *fakeMeetingRepo) Save(_ context.Context, m *model.Meeting) error {
	cp := *m
	r.meetings[cp.ID] = &cp
	return nil
}

func (r *fakeMeetingRepo) FindByID(_ context.Context, id uint64) (*model.Meeting, error) {
	m, ok := r.meetings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMeetingRepo) FindLatestForPair(_ context.Context, buyerID, sellerID uint64) (*model.Meeting, error) {
	var latest *model.Meeting
	for _, m := range r.meetings {
		if m.BuyerID != buyerID || m.SellerID != sellerID {
			continue
		}
		if latest == nil || m.ID > latest.ID {
			latest = m
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *fakeMeetingRepo) FindPairWithStatus(_ context.Context, buyerID, sellerID uint64, statuses ...model.MeetingStatus) (*model.Meeting, error) {
	for _, m := range r.meetings {
		if m.BuyerID != buyerID || m.SellerID != sellerID {
			continue
		}
		for _, st := range statuses {
			if m.Status == st {
				cp := *m
				return &cp, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeMeetingRepo) ListInvolving(_ context.Context, userID uint64) ([]model.Meeting, error) {
	var out []model.Meeting
	for _, m := range r.meetings {
		if m.BuyerID == userID || m.SellerID == userID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMeetingRepo) ListAll(_ context.Context) ([]model.Meeting, error) {
	var out []model.Meeting
	for _, m := range r.meetings {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeMeetingRepo) ListForBuyers(_ context.Context, buyerIDs []uint64, statuses ...model.MeetingStatus) ([]model.Meeting, error) {
	var out []model.Meeting
	for _, m := range r.meetings {
		for _, id := range buyerIDs {
			if m.BuyerID != id {
				continue
			}
			for _, st := range statuses {
				if m.Status == st {
					out = append(out, *m)
				}
			}
		}
	}
	return out, nil
}

func (r *fakeMeetingRepo) CountBuyerByStatus(_ context.Context, buyerID uint64, statuses ...model.MeetingStatus) (int64, error) {
	var n int64
	for _, m := range r.meetings {
		if m.BuyerID != buyerID {
			continue
		}
		for _, st := range statuses {
			if m.Status == st {
				n++
			}
		}
	}
	return n, nil
}

func (r *fakeMeetingRepo) CountSellerByStatus(_ context.Context, sellerID uint64, statuses ...model.MeetingStatus) (int64, error) {
	var n int64
	for _, m := range r.meetings {
		if m.SellerID != sellerID {
			continue
		}
		for _, st := range statuses {
			if m.Status == st {
				n++
			}
		}
	}
	return n, nil
}

func (r *fakeMeetingRepo) CountsByStatusForUser(_ context.Context, userID uint64) (map[model.MeetingStatus]int64, error) {
	out := map[model.MeetingStatus]int64{}
	for _, m := range r.meetings {
		if m.BuyerID == userID || m.SellerID == userID {
			out[m.Status]++
		}
	}
	return out, nil
}

func (r *fakeMeetingRepo) UpdateStatusIf(_ context.Context, id uint64, to model.MeetingStatus, from ...model.MeetingStatus) (int64, error) {
	m, ok := r.meetings[id]
	if !ok {
		return 0, nil
	}
	for _, st := range from {
		if m.Status == st {
			m.Status = to
			m.UpdatedAt = time.Now()
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeMeetingRepo) expireStale(cutoff time.Time, match func(*model.Meeting) bool) int64 {
	var n int64
	for _, m := range r.meetings {
		if m.Status != model.MeetingStatusPending || !match(m) {
			continue
		}
		if m.CreatedAt.IsZero() || m.CreatedAt.Before(cutoff) {
			m.Status = model.MeetingStatusExpired
			n++
		}
	}
	return n
}

func (r *fakeMeetingRepo) ExpireStaleForUser(_ context.Context, userID uint64, cutoff time.Time) (int64, error) {
	return r.expireStale(cutoff, func(m *model.Meeting) bool {
		return m.BuyerID == userID || m.SellerID == userID || m.RequestorID == userID
	}), nil
}

func (r *fakeMeetingRepo) ExpireStaleForBuyers(_ context.Context, buyerIDs []uint64, cutoff time.Time) (int64, error) {
	return r.expireStale(cutoff, func(m *model.Meeting) bool {
		for _, id := range buyerIDs {
			if m.BuyerID == id || m.RequestorID == id {
				return true
			}
		}
		return false
	}), nil
}

func (r *fakeMeetingRepo) ExpireAllStale(_ context.Context, cutoff time.Time) (int64, error) {
	return r.expireStale(cutoff, func(*model.Meeting) bool { return true }), nil
}

type fakeSlotRepo struct {
	slots map[uint64]*model.TimeSlot
}

func (r *fakeSlotRepo) ListBySeller(_ context.Context, sellerID uint64) ([]model.TimeSlot, error) {
	var out []model.TimeSlot
	for _, s := range r.slots {
		if s.SellerID == sellerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) ListAvailableBySeller(_ context.Context, sellerID uint64) ([]model.TimeSlot, error) {
	var out []model.TimeSlot
	for _, s := range r.slots {
		if s.SellerID == sellerID && s.IsAvailable {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) FindByID(_ context.Context, id uint64) (*model.TimeSlot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSlotRepo) AttachMeeting(_ context.Context, slotID, meetingID uint64) (int64, error) {
	s, ok := r.slots[slotID]
	if !ok || !s.IsAvailable {
		return 0, nil
	}
	s.IsAvailable = false
	s.MeetingID = &meetingID
	return 1, nil
}

func (r *fakeSlotRepo) ReleaseByMeeting(_ context.Context, meetingID uint64) error {
	for _, s := range r.slots {
		if s.MeetingID != nil && *s.MeetingID == meetingID {
			s.IsAvailable = true
			s.MeetingID = nil
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[uint64]*model.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *model.User) error { return nil }

func (r *fakeUserRepo) FindByID(_ context.Context, id uint64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	return err == nil, nil
}

func (r *fakeUserRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

type fakeBuyerRepo struct {
	profiles map[uint64]*model.BuyerProfile
}

func (r *fakeBuyerRepo) Create(_ context.Context, p *model.BuyerProfile) error { return nil }
func (r *fakeBuyerRepo) Save(_ context.Context, p *model.BuyerProfile) error   { return nil }

func (r *fakeBuyerRepo) FindByUserID(_ context.Context, userID uint64) (*model.BuyerProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeBuyerRepo) FindByUserIDs(_ context.Context, userIDs []uint64) ([]model.BuyerProfile, error) {
	var out []model.BuyerProfile
	for _, id := range userIDs {
		if p, ok := r.profiles[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeBuyerRepo) List(_ context.Context, _ repository.BuyerFilter) ([]model.BuyerProfile, int64, error) {
	return nil, 0, nil
}

func (r *fakeBuyerRepo) ListForExport(_ context.Context) ([]model.BuyerProfile, error) {
	return nil, nil
}

func (r *fakeBuyerRepo) DistinctOperatorTypes(_ context.Context) ([]string, error) { return nil, nil }
func (r *fakeBuyerRepo) DistinctCountries(_ context.Context) ([]string, error)     { return nil, nil }

func (r *fakeBuyerRepo) BankDetails(_ context.Context, _ uint64) (*model.BuyerBankDetails, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBuyerRepo) SaveBankDetails(_ context.Context, _ *model.BuyerBankDetails) error {
	return nil
}

type fakeSellerRepo struct {
	profiles map[uint64]*model.SellerProfile
}

func (r *fakeSellerRepo) Create(_ context.Context, p *model.SellerProfile) error { return nil }
func (r *fakeSellerRepo) Save(_ context.Context, p *model.SellerProfile) error   { return nil }

func (r *fakeSellerRepo) FindByID(_ context.Context, id uint64) (*model.SellerProfile, error) {
	for _, p := range r.profiles {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSellerRepo) FindByUserID(_ context.Context, userID uint64) (*model.SellerProfile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeSellerRepo) FindByUserIDs(_ context.Context, userIDs []uint64) ([]model.SellerProfile, error) {
	var out []model.SellerProfile
	for _, id := range userIDs {
		if p, ok := r.profiles[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeSellerRepo) List(_ context.Context) ([]model.SellerProfile, error) { return nil, nil }

func (r *fakeSellerRepo) SearchByName(_ context.Context, _ string, _ int) ([]model.SellerProfile, error) {
	return nil, nil
}

func (r *fakeSellerRepo) FindAttendee(_ context.Context, _ uint64, _ int) (*model.SellerAttendee, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSellerRepo) ListAttendees(_ context.Context, _ uint64) ([]model.SellerAttendee, error) {
	return nil, nil
}

type fakeQuota struct {
	buyer  BuyerQuota
	seller SellerQuota
}

func (q *fakeQuota) ExpireStaleForUser(_ context.Context, _ uint64) (int64, error) { return 0, nil }
func (q *fakeQuota) SweepAll(_ context.Context) (int64, error)                     { return 0, nil }

func (q *fakeQuota) BuyerQuotaForUser(_ context.Context, _ uint64) (BuyerQuota, error) {
	return q.buyer, nil
}

func (q *fakeQuota) SellerQuotaForUser(_ context.Context, _ uint64) (SellerQuota, error) {
	return q.seller, nil
}

func (q *fakeQuota) BatchBuyerQuota(_ context.Context, profiles []model.BuyerProfile) (map[uint64]BuyerQuota, error) {
	out := map[uint64]BuyerQuota{}
	for _, p := range profiles {
		out[p.UserID] = q.buyer
	}
	return out, nil
}

type fakeSettings struct {
	enabled    bool
	eventStart time.Time
	eventEnd   time.Time
	dayStart   time.Time
	dayEnd     time.Time
	missing    bool
}

func (s *fakeSettings) MeetingsEnabled(_ context.Context) bool      { return s.enabled }
func (s *fakeSettings) EventDays(_ context.Context) int             { return 3 }
func (s *fakeSettings) DefaultMeetingsPerDay(_ context.Context) int { return 30 }

func (s *fakeSettings) EventWindow(_ context.Context) (time.Time, time.Time, error) {
	if s.missing {
		return time.Time{}, time.Time{}, ErrSettingsMissing
	}
	return s.eventStart, s.eventEnd, nil
}

func (s *fakeSettings) DailyMeetingWindow(_ context.Context) (time.Time, time.Time, error) {
	if s.missing {
		return time.Time{}, time.Time{}, ErrSettingsMissing
	}
	return s.dayStart, s.dayEnd, nil
}

func (s *fakeSettings) All(_ context.Context) ([]model.SystemSetting, error) { return nil, nil }
func (s *fakeSettings) Set(_ context.Context, _, _ string) error             { return nil }

type meetingFixture struct {
	svc      *meetingService
	meetings *fakeMeetingRepo
	slots    *fakeSlotRepo
	quota    *fakeQuota
	settings *fakeSettings
}

func newMeetingFixture(seed ...*model.Meeting) *meetingFixture {
	meetings := newFakeMeetingRepo(seed...)
	slots := &fakeSlotRepo{slots: map[uint64]*model.TimeSlot{}}
	users := &fakeUserRepo{users: map[uint64]*model.User{
		1: {ID: 1, Username: "buyer1", Role: model.RoleBuyer},
		2: {ID: 2, Username: "seller1", Role: model.RoleSeller},
		3: {ID: 3, Username: "buyer2", Role: model.RoleBuyer},
	}}
	buyers := &fakeBuyerRepo{profiles: map[uint64]*model.BuyerProfile{
		1: {ID: 10, UserID: 1, Name: "Asha"},
		3: {ID: 11, UserID: 3, Name: "Ravi"},
	}}
	sellers := &fakeSellerRepo{profiles: map[uint64]*model.SellerProfile{
		2: {ID: 20, UserID: 2, BusinessName: "Lakeside Resorts"},
	}}
	quota := &fakeQuota{
		buyer:  ComputeBuyerQuota(5, 0, 0),
		seller: ComputeSellerQuota(10, 3, 0, 0),
	}
	settings := &fakeSettings{
		enabled:    true,
		eventStart: time.Date(2026, 11, 12, 0, 0, 0, 0, time.UTC),
		eventEnd:   time.Date(2026, 11, 14, 0, 0, 0, 0, time.UTC),
		dayStart:   time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC),
		dayEnd:     time.Date(0, 1, 1, 18, 0, 0, 0, time.UTC),
	}

	svc := NewMeetingService(meetings, slots, users, buyers, sellers, quota, settings).(*meetingService)
	svc.now = func() time.Time { return time.Date(2026, 11, 13, 11, 0, 0, 0, time.UTC) }
	return &meetingFixture{svc: svc, meetings: meetings, slots: slots, quota: quota, settings: settings}
}

func TestMeetingCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("buyer requests seller", func(t *testing.T) {
		f := newMeetingFixture()
		m, err := f.svc.Create(ctx, 1, model.RoleBuyer, CreateMeetingInput{CounterpartID: 2})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if m.BuyerID != 1 || m.SellerID != 2 || m.RequestorID != 1 {
			t.Fatalf("wrong parties: %+v", m)
		}
		if m.Status != model.MeetingStatusPending {
			t.Fatalf("status=%s want pending", m.Status)
		}
	})

	t.Run("meetings disabled", func(t *testing.T) {
		f := newMeetingFixture()
		f.settings.enabled = false
		_, err := f.svc.Create(ctx, 1, model.RoleBuyer, CreateMeetingInput{CounterpartID: 2})
		if !errors.Is(err, ErrMeetingsDisabled) {
			t.Fatalf("err=%v want ErrMeetingsDisabled", err)
		}
	})

	t.Run("buyer to buyer rejected", func(t *testing.T) {
		f := newMeetingFixture()
		_, err := f.svc.Create(ctx, 1, model.RoleBuyer, CreateMeetingInput{CounterpartID: 3})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("err=%v want ErrValidation", err)
		}
	})

	t.Run("duplicate pending pair blocked", func(t *testing.T) {
		f := newMeetingFixture(&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusPending})
		_, err := f.svc.Create(ctx, 1, model.RoleBuyer, CreateMeetingInput{CounterpartID: 2})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("err=%v want ErrConflict", err)
		}
	})

	t.Run("new request allowed after cancellation", func(t *testing.T) {
		f := newMeetingFixture(&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusCancelled})
		if _, err := f.svc.Create(ctx, 1, model.RoleBuyer, CreateMeetingInput{CounterpartID: 2}); err != nil {
			t.Fatalf("create: %v", err)
		}
	})

	t.Run("quota exhausted", func(t *testing.T) {
		f := newMeetingFixture()
		f.quota.buyer = ComputeBuyerQuota(1, 1, 0)
		_, err := f.svc.Create(ctx, 1, model.RoleBuyer, CreateMeetingInput{CounterpartID: 2})
		if !errors.Is(err, ErrQuotaExceeded) {
			t.Fatalf("err=%v want ErrQuotaExceeded", err)
		}
	})

	t.Run("slot race cancels request", func(t *testing.T) {
		f := newMeetingFixture()
		f.slots.slots[5] = &model.TimeSlot{ID: 5, SellerID: 2, IsAvailable: false}
		slotID := uint64(5)
		_, err := f.svc.Create(ctx, 1, model.RoleBuyer, CreateMeetingInput{CounterpartID: 2, TimeSlotID: &slotID})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("err=%v want ErrConflict", err)
		}
		m, err := f.meetings.FindLatestForPair(ctx, 1, 2)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if m.Status != model.MeetingStatusCancelled {
			t.Fatalf("status=%s want cancelled", m.Status)
		}
	})

	t.Run("slot attached on success", func(t *testing.T) {
		f := newMeetingFixture()
		f.slots.slots[5] = &model.TimeSlot{ID: 5, SellerID: 2, IsAvailable: true}
		slotID := uint64(5)
		m, err := f.svc.Create(ctx, 1, model.RoleBuyer, CreateMeetingInput{CounterpartID: 2, TimeSlotID: &slotID})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if m.TimeSlotID == nil || *m.TimeSlotID != 5 {
			t.Fatalf("slot not attached: %+v", m)
		}
		if f.slots.slots[5].IsAvailable {
			t.Fatal("slot still available after attach")
		}
	})
}

func TestMeetingRespond(t *testing.T) {
	ctx := context.Background()
	pending := func() *model.Meeting {
		return &model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusPending, CreatedAt: time.Now()}
	}

	t.Run("seller accepts buyer request", func(t *testing.T) {
		f := newMeetingFixture(pending())
		m, err := f.svc.Accept(ctx, 2, model.RoleSeller, 1)
		if err != nil {
			t.Fatalf("accept: %v", err)
		}
		if m.Status != model.MeetingStatusAccepted {
			t.Fatalf("status=%s want accepted", m.Status)
		}
	})

	t.Run("requestor cannot respond to own request", func(t *testing.T) {
		f := newMeetingFixture(pending())
		_, err := f.svc.Accept(ctx, 1, model.RoleBuyer, 1)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("err=%v want ErrForbidden", err)
		}
	})

	t.Run("outsider cannot respond", func(t *testing.T) {
		f := newMeetingFixture(pending())
		_, err := f.svc.Accept(ctx, 3, model.RoleBuyer, 1)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("err=%v want ErrForbidden", err)
		}
	})

	t.Run("buyer at accept ceiling cannot accept", func(t *testing.T) {
		f := newMeetingFixture(&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 2, Status: model.MeetingStatusPending, CreatedAt: time.Now()})
		f.quota.buyer = ComputeBuyerQuota(2, 2, 1)
		_, err := f.svc.Accept(ctx, 1, model.RoleBuyer, 1)
		if !errors.Is(err, ErrQuotaExceeded) {
			t.Fatalf("err=%v want ErrQuotaExceeded", err)
		}
	})

	t.Run("responding to settled meeting reports its status", func(t *testing.T) {
		f := newMeetingFixture(&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusRejected})
		_, err := f.svc.Accept(ctx, 2, model.RoleSeller, 1)
		if !errors.Is(err, ErrStatusConflict) {
			t.Fatalf("err=%v want ErrStatusConflict", err)
		}
	})

	t.Run("reject releases the slot", func(t *testing.T) {
		m := pending()
		f := newMeetingFixture(m)
		meetingID := uint64(1)
		f.slots.slots[5] = &model.TimeSlot{ID: 5, SellerID: 2, IsAvailable: false, MeetingID: &meetingID}
		if _, err := f.svc.Reject(ctx, 2, model.RoleSeller, 1); err != nil {
			t.Fatalf("reject: %v", err)
		}
		if !f.slots.slots[5].IsAvailable {
			t.Fatal("slot not released after reject")
		}
	})
}

func TestMeetingCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("either party may cancel accepted meeting", func(t *testing.T) {
		f := newMeetingFixture(&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusAccepted})
		m, err := f.svc.Cancel(ctx, 2, 1)
		if err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if m.Status != model.MeetingStatusCancelled {
			t.Fatalf("status=%s want cancelled", m.Status)
		}
	})

	t.Run("completed meeting cannot be cancelled", func(t *testing.T) {
		f := newMeetingFixture(&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusCompleted})
		_, err := f.svc.Cancel(ctx, 1, 1)
		if !errors.Is(err, ErrStatusConflict) {
			t.Fatalf("err=%v want ErrStatusConflict", err)
		}
	})

	t.Run("cancel frees the slot", func(t *testing.T) {
		f := newMeetingFixture(&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusPending, CreatedAt: time.Now()})
		meetingID := uint64(1)
		f.slots.slots[9] = &model.TimeSlot{ID: 9, SellerID: 2, IsAvailable: false, MeetingID: &meetingID}
		if _, err := f.svc.Cancel(ctx, 1, 1); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if !f.slots.slots[9].IsAvailable {
			t.Fatal("slot not released after cancel")
		}
	})
}

func TestMeetingConfirm(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2026, 11, 13, 0, 0, 0, 0, time.UTC)

	t.Run("accepted meeting completes", func(t *testing.T) {
		f := newMeetingFixture(&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusAccepted, MeetingDate: &today})
		m, err := f.svc.Confirm(ctx, 2, 1, 1)
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if m.Status != model.MeetingStatusCompleted {
			t.Fatalf("status=%s want completed", m.Status)
		}
	})

	t.Run("confirming twice is idempotent", func(t *testing.T) {
		f := newMeetingFixture(&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusCompleted})
		m, err := f.svc.Confirm(ctx, 2, 1, 1)
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if m.Status != model.MeetingStatusCompleted {
			t.Fatalf("status=%s want completed", m.Status)
		}
	})

	t.Run("negative id resolves the pair", func(t *testing.T) {
		f := newMeetingFixture(&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusAccepted})
		m, err := f.svc.Confirm(ctx, 2, -1, 1)
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if m.Status != model.MeetingStatusCompleted {
			t.Fatalf("status=%s want completed", m.Status)
		}
	})

	t.Run("pending meeting cannot be confirmed", func(t *testing.T) {
		f := newMeetingFixture(&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusPending, CreatedAt: time.Now()})
		_, err := f.svc.Confirm(ctx, 2, 1, 1)
		if !errors.Is(err, ErrStatusConflict) {
			t.Fatalf("err=%v want ErrStatusConflict", err)
		}
	})

	t.Run("future meeting cannot be confirmed", func(t *testing.T) {
		future := today.AddDate(0, 0, 1)
		f := newMeetingFixture(&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusAccepted, MeetingDate: &future})
		_, err := f.svc.Confirm(ctx, 2, 1, 1)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("err=%v want ErrValidation", err)
		}
	})

	t.Run("wrong seller forbidden", func(t *testing.T) {
		f := newMeetingFixture(&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusAccepted})
		_, err := f.svc.Confirm(ctx, 3, 1, 1)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("err=%v want ErrForbidden", err)
		}
	})

	t.Run("outside event dates", func(t *testing.T) {
		f := newMeetingFixture(&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusAccepted})
		f.svc.now = func() time.Time { return time.Date(2026, 11, 20, 11, 0, 0, 0, time.UTC) }
		_, err := f.svc.Confirm(ctx, 2, 1, 1)
		if !errors.Is(err, ErrOutsideWindow) {
			t.Fatalf("err=%v want ErrOutsideWindow", err)
		}
	})

	t.Run("outside daily hours", func(t *testing.T) {
		f := newMeetingFixture(&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusAccepted})
		f.svc.now = func() time.Time { return time.Date(2026, 11, 13, 7, 0, 0, 0, time.UTC) }
		_, err := f.svc.Confirm(ctx, 2, 1, 1)
		if !errors.Is(err, ErrOutsideWindow) {
			t.Fatalf("err=%v want ErrOutsideWindow", err)
		}
	})

	t.Run("missing settings surface as config error", func(t *testing.T) {
		f := newMeetingFixture(&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusAccepted})
		f.settings.missing = true
		_, err := f.svc.Confirm(ctx, 2, 1, 1)
		if !errors.Is(err, ErrSettingsMissing) {
			t.Fatalf("err=%v want ErrSettingsMissing", err)
		}
	})

	t.Run("walk-in buyer gets unscheduled completion", func(t *testing.T) {
		f := newMeetingFixture()
		walkIn := model.WalkInCategoryID
		f.svc.buyers.(*fakeBuyerRepo).profiles[7] = &model.BuyerProfile{ID: 70, UserID: 7, Name: "Walk In", CategoryID: &walkIn}
		m, err := f.svc.Confirm(ctx, 2, -1, 7)
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if m.Status != model.MeetingStatusUnscheduled {
			t.Fatalf("status=%s want unscheduled_completed", m.Status)
		}

		again, err := f.svc.Confirm(ctx, 2, -1, 7)
		if err != nil {
			t.Fatalf("second confirm: %v", err)
		}
		if again.ID != m.ID {
			t.Fatalf("second confirm created a new row: %d vs %d", again.ID, m.ID)
		}
	})
}

func TestMeetingGetAndList(t *testing.T) {
	ctx := context.Background()
	seed := []*model.Meeting{
		{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusAccepted, CreatedAt: time.Now()},
		{BuyerID: 3, SellerID: 2, RequestorID: 3, Status: model.MeetingStatusPending, CreatedAt: time.Now()},
	}

	t.Run("participant reads own meeting", func(t *testing.T) {
		f := newMeetingFixture(seed[0])
		if _, err := f.svc.Get(ctx, 1, model.RoleBuyer, 1); err != nil {
			t.Fatalf("get: %v", err)
		}
	})

	t.Run("outsider blocked, admin allowed", func(t *testing.T) {
		f := newMeetingFixture(seed[0])
		if _, err := f.svc.Get(ctx, 3, model.RoleBuyer, 1); !errors.Is(err, ErrForbidden) {
			t.Fatalf("err=%v want ErrForbidden", err)
		}
		if _, err := f.svc.Get(ctx, 99, model.RoleAdmin, 1); err != nil {
			t.Fatalf("admin get: %v", err)
		}
	})

	t.Run("list resolves counterpart names", func(t *testing.T) {
		f := newMeetingFixture(seed[0])
		list, err := f.svc.List(ctx, 1, model.RoleBuyer)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("len=%d want 1", len(list))
		}
		if list[0].BuyerName != "Asha" || list[0].SellerName != "Lakeside Resorts" {
			t.Fatalf("names not resolved: %+v", list[0])
		}
	})

	t.Run("admin sees everything", func(t *testing.T) {
		c0 := *seed[0]
		c1 := *seed[1]
		f := newMeetingFixture(&c0, &c1)
		list, err := f.svc.List(ctx, 99, model.RoleAdmin)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("len=%d want 2", len(list))
		}
	})
}
