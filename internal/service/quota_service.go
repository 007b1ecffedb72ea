package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/repository"
	"gorm.io/gorm"
)

// PendingExpiry is how long a meeting request may sit unanswered before
// the sweep marks it expired.
const PendingExpiry = 48 * time.Hour

type QuotaService interface {
	// ExpireStaleForUser runs the lazy expiry sweep for one user's
	// meetings. It is idempotent and safe to call before every quota read.
	ExpireStaleForUser(ctx context.Context, userID uint64) (int64, error)
	SweepAll(ctx context.Context) (int64, error)

	BuyerQuotaForUser(ctx context.Context, userID uint64) (BuyerQuota, error)
	SellerQuotaForUser(ctx context.Context, userID uint64) (SellerQuota, error)
	// BatchBuyerQuota computes quotas for many buyers with a fixed number
	// of queries. Output per buyer matches BuyerQuotaForUser exactly.
	BatchBuyerQuota(ctx context.Context, profiles []model.BuyerProfile) (map[uint64]BuyerQuota, error)
}

type quotaService struct {
	meetings repository.MeetingRepository
	buyers   repository.BuyerProfileRepository
	sellers  repository.SellerProfileRepository
	stalls   repository.StallRepository
	cats     repository.CategoryRepository
	settings SettingsService
	now      func() time.Time
}

func NewQuotaService(
	meetings repository.MeetingRepository,
	buyers repository.BuyerProfileRepository,
	sellers repository.SellerProfileRepository,
	stalls repository.StallRepository,
	cats repository.CategoryRepository,
	settings SettingsService,
) QuotaService {
	return &quotaService{
		meetings: meetings,
		buyers:   buyers,
		sellers:  sellers,
		stalls:   stalls,
		cats:     cats,
		settings: settings,
		now:      time.Now,
	}
}

func (s *quotaService) ExpireStaleForUser(ctx context.Context, userID uint64) (int64, error) {
	n, err := s.meetings.ExpireStaleForUser(ctx, userID, s.now().Add(-PendingExpiry))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("[quota] stage=sweep user=%d expired=%d", userID, n)
	}
	return n, nil
}

func (s *quotaService) SweepAll(ctx context.Context) (int64, error) {
	n, err := s.meetings.ExpireAllStale(ctx, s.now().Add(-PendingExpiry))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("[quota] stage=sweep_all expired=%d", n)
	}
	return n, nil
}

func (s *quotaService) BuyerQuotaForUser(ctx context.Context, userID uint64) (BuyerQuota, error) {
	if _, err := s.ExpireStaleForUser(ctx, userID); err != nil {
		return BuyerQuota{}, err
	}

	profile, err := s.buyers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BuyerQuota{}, ErrNotFound
		}
		return BuyerQuota{}, err
	}

	var category *model.BuyerCategory
	if profile.Category != nil {
		category = profile.Category
	} else if profile.CategoryID != nil {
		category, err = s.cats.FindByID(ctx, *profile.CategoryID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return BuyerQuota{}, err
		}
	}

	accepted, err := s.meetings.CountBuyerByStatus(ctx, userID, model.MeetingStatusAccepted)
	if err != nil {
		return BuyerQuota{}, err
	}
	pending, err := s.meetings.CountBuyerByStatus(ctx, userID, model.MeetingStatusPending)
	if err != nil {
		return BuyerQuota{}, err
	}

	allowed := BuyerAllowedQuota(category, s.settings.DefaultMeetingsPerDay(ctx))
	return ComputeBuyerQuota(allowed, int(accepted), int(pending)), nil
}

func (s *quotaService) SellerQuotaForUser(ctx context.Context, userID uint64) (SellerQuota, error) {
	if _, err := s.ExpireStaleForUser(ctx, userID); err != nil {
		return SellerQuota{}, err
	}

	profile, err := s.sellers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SellerQuota{}, ErrNotFound
		}
		return SellerQuota{}, err
	}
	stalls, err := s.stalls.ListBySellerProfile(ctx, profile.ID)
	if err != nil {
		return SellerQuota{}, err
	}

	accepted, err := s.meetings.CountSellerByStatus(ctx, userID, model.MeetingStatusAccepted)
	if err != nil {
		return SellerQuota{}, err
	}
	pending, err := s.meetings.CountSellerByStatus(ctx, userID, model.MeetingStatusPending)
	if err != nil {
		return SellerQuota{}, err
	}

	perDay := SellerPerDayQuota(stalls, s.settings.DefaultMeetingsPerDay(ctx))
	return ComputeSellerQuota(perDay, s.settings.EventDays(ctx), int(accepted), int(pending)), nil
}

func (s *quotaService) BatchBuyerQuota(ctx context.Context, profiles []model.BuyerProfile) (map[uint64]BuyerQuota, error) {
	if len(profiles) == 0 {
		return map[uint64]BuyerQuota{}, nil
	}

	userIDs := make([]uint64, 0, len(profiles))
	catIDs := make([]uint64, 0, len(profiles))
	for _, p := range profiles {
		userIDs = append(userIDs, p.UserID)
		if p.CategoryID != nil {
			catIDs = append(catIDs, *p.CategoryID)
		}
	}

	if _, err := s.meetings.ExpireStaleForBuyers(ctx, userIDs, s.now().Add(-PendingExpiry)); err != nil {
		return nil, err
	}

	meetings, err := s.meetings.ListForBuyers(ctx, userIDs,
		model.MeetingStatusAccepted, model.MeetingStatusPending)
	if err != nil {
		return nil, err
	}

	var cats map[uint64]model.BuyerCategory
	if len(catIDs) > 0 {
		cats, err = s.cats.FindByIDs(ctx, catIDs)
		if err != nil {
			return nil, err
		}
	}

	type counts struct{ accepted, pending int }
	byBuyer := make(map[uint64]counts, len(profiles))
	for _, m := range meetings {
		c := byBuyer[m.BuyerID]
		switch m.Status {
		case model.MeetingStatusAccepted:
			c.accepted++
		case model.MeetingStatusPending:
			c.pending++
		}
		byBuyer[m.BuyerID] = c
	}

	defaultPerDay := s.settings.DefaultMeetingsPerDay(ctx)
	out := make(map[uint64]BuyerQuota, len(profiles))
	for _, p := range profiles {
		var category *model.BuyerCategory
		if p.CategoryID != nil {
			if c, ok := cats[*p.CategoryID]; ok {
				cc := c
				category = &cc
			}
		}
		c := byBuyer[p.UserID]
		allowed := BuyerAllowedQuota(category, defaultPerDay)
		out[p.UserID] = ComputeBuyerQuota(allowed, c.accepted, c.pending)
	}
	return out, nil
}
