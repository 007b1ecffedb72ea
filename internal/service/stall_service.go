package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/repository"
	"gorm.io/gorm"
)

const (
	fasciaMinLen = 20
	fasciaMaxLen = 80
)

// StallView is a stall with its type expanded and the fascia falling
// back to the seller's business name when none was chosen yet.
type StallView struct {
	Stall     model.Stall
	TypeName  string
	Fascia    string
	Attendees int
}

type StallService interface {
	ListForSeller(ctx context.Context, userID uint64) ([]StallView, error)
	ListAll(ctx context.Context) ([]StallView, error)
	StallTypes(ctx context.Context) ([]model.StallType, error)
	AvailableNumbers(ctx context.Context, userID, stallID uint64) ([]model.StallInventory, error)

	RenameFascia(ctx context.Context, userID, stallID uint64, fascia string) (*model.SellerProfile, error)
	SelectNumber(ctx context.Context, userID, stallID, inventoryID uint64) (*model.Stall, error)
	AdminUpdate(ctx context.Context, stallID uint64, number string, stallTypeID *uint64) (*model.Stall, error)
}

type stallService struct {
	stalls  repository.StallRepository
	sellers repository.SellerProfileRepository
}

func NewStallService(stalls repository.StallRepository, sellers repository.SellerProfileRepository) StallService {
	return &stallService{stalls: stalls, sellers: sellers}
}

func (s *stallService) ListForSeller(ctx context.Context, userID uint64) ([]StallView, error) {
	profile, err := s.sellers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	stalls, err := s.stalls.ListBySellerProfile(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	return viewsFor(stalls, profile), nil
}

func (s *stallService) ListAll(ctx context.Context) ([]StallView, error) {
	stalls, err := s.stalls.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StallView, 0, len(stalls))
	for _, st := range stalls {
		out = append(out, viewFor(st, st.SellerProfile))
	}
	return out, nil
}

func viewsFor(stalls []model.Stall, profile *model.SellerProfile) []StallView {
	out := make([]StallView, 0, len(stalls))
	for _, st := range stalls {
		out = append(out, viewFor(st, profile))
	}
	return out
}

func viewFor(st model.Stall, profile *model.SellerProfile) StallView {
	v := StallView{Stall: st}
	if st.StallType != nil {
		v.TypeName = st.StallType.Name
		v.Attendees = st.StallType.Attendees
	}
	if profile != nil {
		v.Fascia = profile.Fascia
		if v.Fascia == "" {
			v.Fascia = profile.BusinessName
		}
	}
	return v
}

func (s *stallService) StallTypes(ctx context.Context) ([]model.StallType, error) {
	return s.stalls.ListStallTypes(ctx)
}

func (s *stallService) AvailableNumbers(ctx context.Context, userID, stallID uint64) ([]model.StallInventory, error) {
	stall, _, err := s.ownedStall(ctx, userID, stallID)
	if err != nil {
		return nil, err
	}
	if stall.StallTypeID == nil {
		return nil, fmt.Errorf("%w: stall has no type assigned", ErrValidation)
	}
	return s.stalls.ListAvailableInventory(ctx, *stall.StallTypeID)
}

func (s *stallService) RenameFascia(ctx context.Context, userID, stallID uint64, fascia string) (*model.SellerProfile, error) {
	_, profile, err := s.ownedStall(ctx, userID, stallID)
	if err != nil {
		return nil, err
	}
	if n := len(fascia); n < fasciaMinLen || n > fasciaMaxLen {
		return nil, fmt.Errorf("%w: fascia must be %d-%d characters", ErrValidation, fasciaMinLen, fasciaMaxLen)
	}
	profile.Fascia = fascia
	if err := s.sellers.Save(ctx, profile); err != nil {
		return nil, err
	}
	log.Printf("[stall] stage=fascia_renamed seller=%d stall=%d", profile.ID, stallID)
	return profile, nil
}

// SelectNumber lets a seller pick their stall number from the free
// inventory of their stall type, when the type allows self-selection.
func (s *stallService) SelectNumber(ctx context.Context, userID, stallID, inventoryID uint64) (*model.Stall, error) {
	stall, _, err := s.ownedStall(ctx, userID, stallID)
	if err != nil {
		return nil, err
	}
	if stall.StallTypeID == nil || stall.StallType == nil {
		return nil, fmt.Errorf("%w: stall has no type assigned", ErrValidation)
	}
	if !stall.StallType.AllowSellerSelectStall {
		return nil, fmt.Errorf("%w: stall type does not allow self-selection", ErrForbidden)
	}

	inventory, err := s.stalls.ListAvailableInventory(ctx, *stall.StallTypeID)
	if err != nil {
		return nil, err
	}
	var chosen *model.StallInventory
	for i := range inventory {
		if inventory[i].ID == inventoryID {
			chosen = &inventory[i]
			break
		}
	}
	if chosen == nil {
		return nil, fmt.Errorf("%w: number not available for this stall type", ErrValidation)
	}

	affected, err := s.stalls.ClaimInventory(ctx, chosen.ID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: number was just taken", ErrConflict)
	}

	previous := stall.Number
	stall.Number = chosen.Number
	stall.Allocated = true
	if err := s.stalls.Save(ctx, stall); err != nil {
		return nil, err
	}
	if previous != "" && previous != chosen.Number {
		if err := s.stalls.ReleaseInventoryByNumber(ctx, previous); err != nil {
			log.Printf("[stall] stage=release_fail number=%s err=%v", previous, err)
		}
	}

	log.Printf("[stall] stage=number_selected stall=%d number=%s", stall.ID, stall.Number)
	return stall, nil
}

func (s *stallService) AdminUpdate(ctx context.Context, stallID uint64, number string, stallTypeID *uint64) (*model.Stall, error) {
	stall, err := s.stalls.FindByID(ctx, stallID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if number != "" && number != stall.Number {
		taken, err := s.stalls.NumberTaken(ctx, number, stall.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: stall number already in use", ErrConflict)
		}
		stall.Number = number
	}
	if stallTypeID != nil {
		if _, err := s.stalls.FindStallType(ctx, *stallTypeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown stall type", ErrValidation)
			}
			return nil, err
		}
		stall.StallTypeID = stallTypeID
	}
	if err := s.stalls.Save(ctx, stall); err != nil {
		return nil, err
	}
	return stall, nil
}

func (s *stallService) ownedStall(ctx context.Context, userID, stallID uint64) (*model.Stall, *model.SellerProfile, error) {
	profile, err := s.sellers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	stall, err := s.stalls.FindByID(ctx, stallID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if stall.SellerProfileID != profile.ID {
		return nil, nil, ErrForbidden
	}
	return stall, profile, nil
}
