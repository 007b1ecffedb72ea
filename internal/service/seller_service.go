package service

import (
	"context"
	"errors"

	"github.com/expomeet/expomeet-server/internal/model"
	"github.com/expomeet/expomeet-server/internal/repository"
	"gorm.io/gorm"
)

type SellerService interface {
	GetProfile(ctx context.Context, userID uint64) (*model.SellerProfile, error)
	SaveProfile(ctx context.Context, userID uint64, in *model.SellerProfile) (*model.SellerProfile, error)
	List(ctx context.Context) ([]model.SellerProfile, error)
	Attendees(ctx context.Context, userID uint64) ([]model.SellerAttendee, error)
	TimeSlots(ctx context.Context, sellerUserID uint64, availableOnly bool) ([]model.TimeSlot, error)
}

type sellerService struct {
	sellers repository.SellerProfileRepository
	slots   repository.TimeSlotRepository
}

func NewSellerService(sellers repository.SellerProfileRepository, slots repository.TimeSlotRepository) SellerService {
	return &sellerService{sellers: sellers, slots: slots}
}

func (s *sellerService) GetProfile(ctx context.Context, userID uint64) (*model.SellerProfile, error) {
	p, err := s.sellers.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *sellerService) SaveProfile(ctx context.Context, userID uint64, in *model.SellerProfile) (*model.SellerProfile, error) {
	existing, err := s.sellers.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		in.UserID = userID
		if err := s.sellers.Create(ctx, in); err != nil {
			return nil, err
		}
		return in, nil
	}
	if err != nil {
		return nil, err
	}

	existing.BusinessName = in.BusinessName
	existing.ContactName = in.ContactName
	existing.Mobile = in.Mobile
	existing.Website = in.Website
	existing.Description = in.Description
	existing.SellerType = in.SellerType
	existing.TargetMarket = in.TargetMarket
	existing.GSTNumber = in.GSTNumber
	existing.MicrositeURL = in.MicrositeURL
	existing.LogoURL = in.LogoURL
	existing.InstagramURL = in.InstagramURL
	if err := s.sellers.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *sellerService) List(ctx context.Context) ([]model.SellerProfile, error) {
	return s.sellers.List(ctx)
}

func (s *sellerService) Attendees(ctx context.Context, userID uint64) ([]model.SellerAttendee, error) {
	p, err := s.sellers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.sellers.ListAttendees(ctx, p.ID)
}

func (s *sellerService) TimeSlots(ctx context.Context, sellerUserID uint64, availableOnly bool) ([]model.TimeSlot, error) {
	if availableOnly {
		return s.slots.ListAvailableBySeller(ctx, sellerUserID)
	}
	return s.slots.ListBySeller(ctx, sellerUserID)
}
