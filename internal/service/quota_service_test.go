package service

import (
	"context"
	"testing"
	"time"

	"github.com/expomeet/expomeet-server/internal/model"
	"gorm.io/gorm"
)

type fakeStallRepo struct {
	bySeller map[uint64][]model.Stall
}

func (r *fakeStallRepo) FindByID(_ context.Context, _ uint64) (*model.Stall, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeStallRepo) ListBySellerProfile(_ context.Context, sellerProfileID uint64) ([]model.Stall, error) {
	return r.bySeller[sellerProfileID], nil
}

func (r *fakeStallRepo) ListAll(_ context.Context) ([]model.Stall, error) { return nil, nil }
func (r *fakeStallRepo) Save(_ context.Context, _ *model.Stall) error     { return nil }

func (r *fakeStallRepo) NumberTaken(_ context.Context, _ string, _ uint64) (bool, error) {
	return false, nil
}

func (r *fakeStallRepo) FindStallType(_ context.Context, _ uint64) (*model.StallType, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeStallRepo) ListStallTypes(_ context.Context) ([]model.StallType, error) {
	return nil, nil
}

func (r *fakeStallRepo) FindStallTypesByIDs(_ context.Context, _ []uint64) (map[uint64]model.StallType, error) {
	return nil, nil
}

func (r *fakeStallRepo) ListAvailableInventory(_ context.Context, _ uint64) ([]model.StallInventory, error) {
	return nil, nil
}

func (r *fakeStallRepo) ClaimInventory(_ context.Context, _ uint64) (int64, error) { return 0, nil }
func (r *fakeStallRepo) ReleaseInventoryByNumber(_ context.Context, _ string) error {
	return nil
}

type fakeCategoryRepo struct {
	categories map[uint64]model.BuyerCategory
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uint64) (*model.BuyerCategory, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *fakeCategoryRepo) FindByIDs(_ context.Context, ids []uint64) (map[uint64]model.BuyerCategory, error) {
	out := map[uint64]model.BuyerCategory{}
	for _, id := range ids {
		if c, ok := r.categories[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]model.BuyerCategory, error) { return nil, nil }
func (r *fakeCategoryRepo) ListInterests(_ context.Context) ([]model.Interest, error) {
	return nil, nil
}
func (r *fakeCategoryRepo) ListPropertyTypes(_ context.Context) ([]model.PropertyType, error) {
	return nil, nil
}

func newQuotaFixture(meetings *fakeMeetingRepo, buyers *fakeBuyerRepo) *quotaService {
	cats := &fakeCategoryRepo{categories: map[uint64]model.BuyerCategory{
		1: {ID: 1, MaxMeetings: intPtr(5)},
		2: {ID: 2, MaxMeetings: intPtr(0)},
	}}
	sellers := &fakeSellerRepo{profiles: map[uint64]*model.SellerProfile{}}
	stalls := &fakeStallRepo{bySeller: map[uint64][]model.Stall{}}
	settings := &fakeSettings{enabled: true}

	svc := NewQuotaService(meetings, buyers, sellers, stalls, cats, settings).(*quotaService)
	svc.now = func() time.Time { return time.Date(2026, 11, 13, 11, 0, 0, 0, time.UTC) }
	return svc
}

func TestBuyerQuotaForUser(t *testing.T) {
	ctx := context.Background()
	catID := uint64(1)
	buyers := &fakeBuyerRepo{profiles: map[uint64]*model.BuyerProfile{
		1: {ID: 10, UserID: 1, CategoryID: &catID},
	}}
	meetings := newFakeMeetingRepo(
		&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusAccepted, CreatedAt: time.Now()},
		&model.Meeting{BuyerID: 1, SellerID: 3, RequestorID: 1, Status: model.MeetingStatusPending, CreatedAt: time.Now()},
		&model.Meeting{BuyerID: 1, SellerID: 4, RequestorID: 1, Status: model.MeetingStatusRejected, CreatedAt: time.Now()},
	)
	svc := newQuotaFixture(meetings, buyers)

	q, err := svc.BuyerQuotaForUser(ctx, 1)
	if err != nil {
		t.Fatalf("quota: %v", err)
	}
	want := ComputeBuyerQuota(5, 1, 1)
	if q != want {
		t.Fatalf("got=%+v want=%+v", q, want)
	}
}

func TestBuyerQuotaExpiresStaleRequestsFirst(t *testing.T) {
	ctx := context.Background()
	catID := uint64(1)
	buyers := &fakeBuyerRepo{profiles: map[uint64]*model.BuyerProfile{
		1: {ID: 10, UserID: 1, CategoryID: &catID},
	}}
	stale := time.Date(2026, 11, 10, 9, 0, 0, 0, time.UTC) // older than the 48h window
	meetings := newFakeMeetingRepo(
		&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusPending, CreatedAt: stale},
	)
	svc := newQuotaFixture(meetings, buyers)

	q, err := svc.BuyerQuotaForUser(ctx, 1)
	if err != nil {
		t.Fatalf("quota: %v", err)
	}
	if q.PendingCount != 0 {
		t.Fatalf("stale request still counted: %+v", q)
	}
	m, _ := meetings.FindByID(ctx, 1)
	if m.Status != model.MeetingStatusExpired {
		t.Fatalf("status=%s want expired", m.Status)
	}
}

func TestBatchBuyerQuotaMatchesSingle(t *testing.T) {
	ctx := context.Background()
	cat1, cat2 := uint64(1), uint64(2)
	buyers := &fakeBuyerRepo{profiles: map[uint64]*model.BuyerProfile{
		1: {ID: 10, UserID: 1, CategoryID: &cat1},
		2: {ID: 11, UserID: 2, CategoryID: &cat2},
		3: {ID: 12, UserID: 3}, // no category, event default applies
	}}
	meetings := newFakeMeetingRepo(
		&model.Meeting{BuyerID: 1, SellerID: 9, RequestorID: 1, Status: model.MeetingStatusAccepted, CreatedAt: time.Now()},
		&model.Meeting{BuyerID: 1, SellerID: 8, RequestorID: 1, Status: model.MeetingStatusPending, CreatedAt: time.Now()},
		&model.Meeting{BuyerID: 3, SellerID: 9, RequestorID: 3, Status: model.MeetingStatusPending, CreatedAt: time.Now()},
	)
	svc := newQuotaFixture(meetings, buyers)

	var profiles []model.BuyerProfile
	for _, id := range []uint64{1, 2, 3} {
		p, err := buyers.FindByUserID(ctx, id)
		if err != nil {
			t.Fatalf("profile %d: %v", id, err)
		}
		profiles = append(profiles, *p)
	}

	batch, err := svc.BatchBuyerQuota(ctx, profiles)
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	for _, id := range []uint64{1, 2, 3} {
		single, err := svc.BuyerQuotaForUser(ctx, id)
		if err != nil {
			t.Fatalf("single %d: %v", id, err)
		}
		if batch[id] != single {
			t.Fatalf("user %d: batch=%+v single=%+v", id, batch[id], single)
		}
	}
}

func TestSellerQuotaForUser(t *testing.T) {
	ctx := context.Background()
	buyers := &fakeBuyerRepo{profiles: map[uint64]*model.BuyerProfile{}}
	meetings := newFakeMeetingRepo(
		&model.Meeting{BuyerID: 1, SellerID: 2, RequestorID: 1, Status: model.MeetingStatusAccepted, CreatedAt: time.Now()},
	)
	svc := newQuotaFixture(meetings, buyers)
	svc.sellers.(*fakeSellerRepo).profiles[2] = &model.SellerProfile{ID: 20, UserID: 2}
	svc.stalls.(*fakeStallRepo).bySeller[20] = []model.Stall{
		{StallType: &model.StallType{Attendees: 2, MaxMeetingsPerAttendee: intPtr(10)}},
	}

	q, err := svc.SellerQuotaForUser(ctx, 2)
	if err != nil {
		t.Fatalf("quota: %v", err)
	}
	want := ComputeSellerQuota(20, 3, 1, 0)
	if q != want {
		t.Fatalf("got=%+v want=%+v", q, want)
	}
}
