package repository

import (
	"context"
	"fmt"

	"github.com/expomeet/expomeet-server/internal/model"
	"gorm.io/gorm"
)

// BuyerFilter narrows the buyers listing. Zero values are ignored.
type BuyerFilter struct {
	Name         string
	Organization string
	Interest     string
	PropertyType string
	Country      string
	State        string
	WalkIn       *bool
	UserIDs      []uint64
	Limit        int
	Offset       int
}

type BuyerProfileRepository interface {
	Create(ctx context.Context, p *model.BuyerProfile) error
	Save(ctx context.Context, p *model.BuyerProfile) error
	FindByUserID(ctx context.Context, userID uint64) (*model.BuyerProfile, error)
	FindByUserIDs(ctx context.Context, userIDs []uint64) ([]model.BuyerProfile, error)
	List(ctx context.Context, f BuyerFilter) ([]model.BuyerProfile, int64, error)
	ListForExport(ctx context.Context) ([]model.BuyerProfile, error)
	DistinctOperatorTypes(ctx context.Context) ([]string, error)
	DistinctCountries(ctx context.Context) ([]string, error)
	BankDetails(ctx context.Context, buyerProfileID uint64) (*model.BuyerBankDetails, error)
	SaveBankDetails(ctx context.Context, d *model.BuyerBankDetails) error
}

type buyerProfileRepository struct {
	db *gorm.DB
}

func NewBuyerProfileRepository(db *gorm.DB) BuyerProfileRepository {
	return &buyerProfileRepository{db: db}
}

func (r *buyerProfileRepository) Create(ctx context.Context, p *model.BuyerProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *buyerProfileRepository) Save(ctx context.Context, p *model.BuyerProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *buyerProfileRepository) FindByUserID(ctx context.Context, userID uint64) (*model.BuyerProfile, error) {
	var p model.BuyerProfile
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *buyerProfileRepository) FindByUserIDs(ctx context.Context, userIDs []uint64) ([]model.BuyerProfile, error) {
	var list []model.BuyerProfile
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id IN ?", userIDs).
		Find(&list).Error
	return list, err
}

func (r *buyerProfileRepository) List(ctx context.Context, f BuyerFilter) ([]model.BuyerProfile, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.BuyerProfile{}).Preload("Category")
	if f.Name != "" {
		q = q.Where("name ILIKE ?", "%"+f.Name+"%")
	}
	if f.Organization != "" {
		q = q.Where("organization ILIKE ?", "%"+f.Organization+"%")
	}
	if f.Interest != "" {
		q = q.Where("interests @> ?", fmt.Sprintf(`[%q]`, f.Interest))
	}
	if f.PropertyType != "" {
		q = q.Where("properties_of_interest @> ?", fmt.Sprintf(`[%q]`, f.PropertyType))
	}
	if f.Country != "" {
		q = q.Where("country = ?", f.Country)
	}
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.WalkIn != nil {
		if *f.WalkIn {
			q = q.Where("category_id = ?", model.WalkInCategoryID)
		} else {
			q = q.Where("category_id IS NULL OR category_id <> ?", model.WalkInCategoryID)
		}
	}
	if len(f.UserIDs) > 0 {
		q = q.Where("user_id IN ?", f.UserIDs)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var list []model.BuyerProfile
	if err := q.Order("name").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListForExport returns every buyer with its user row, ordered by
// organization for the printed directory.
func (r *buyerProfileRepository) ListForExport(ctx context.Context) ([]model.BuyerProfile, error) {
	var list []model.BuyerProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("organization").
		Find(&list).Error
	return list, err
}

func (r *buyerProfileRepository) DistinctOperatorTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := r.db.WithContext(ctx).
		Model(&model.BuyerProfile{}).
		Distinct().
		Where("operator_type <> ''").
		Order("operator_type").
		Pluck("operator_type", &types).Error
	return types, err
}

func (r *buyerProfileRepository) DistinctCountries(ctx context.Context) ([]string, error) {
	var countries []string
	err := r.db.WithContext(ctx).
		Model(&model.BuyerProfile{}).
		Distinct().
		Where("country <> ''").
		Order("country").
		Pluck("country", &countries).Error
	return countries, err
}

func (r *buyerProfileRepository) BankDetails(ctx context.Context, buyerProfileID uint64) (*model.BuyerBankDetails, error) {
	var d model.BuyerBankDetails
	err := r.db.WithContext(ctx).Where("buyer_profile_id = ?", buyerProfileID).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *buyerProfileRepository) SaveBankDetails(ctx context.Context, d *model.BuyerBankDetails) error {
	return r.db.WithContext(ctx).Save(d).Error
}

type SellerProfileRepository interface {
	Create(ctx context.Context, p *model.SellerProfile) error
	Save(ctx context.Context, p *model.SellerProfile) error
	FindByID(ctx context.Context, id uint64) (*model.SellerProfile, error)
	FindByUserID(ctx context.Context, userID uint64) (*model.SellerProfile, error)
	FindByUserIDs(ctx context.Context, userIDs []uint64) ([]model.SellerProfile, error)
	List(ctx context.Context) ([]model.SellerProfile, error)
	SearchByName(ctx context.Context, name string, limit int) ([]model.SellerProfile, error)
	FindAttendee(ctx context.Context, sellerProfileID uint64, attendeeNumber int) (*model.SellerAttendee, error)
	ListAttendees(ctx context.Context, sellerProfileID uint64) ([]model.SellerAttendee, error)
}

type sellerProfileRepository struct {
	db *gorm.DB
}

func NewSellerProfileRepository(db *gorm.DB) SellerProfileRepository {
	return &sellerProfileRepository{db: db}
}

func (r *sellerProfileRepository) Create(ctx context.Context, p *model.SellerProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *sellerProfileRepository) Save(ctx context.Context, p *model.SellerProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *sellerProfileRepository) FindByID(ctx context.Context, id uint64) (*model.SellerProfile, error) {
	var p model.SellerProfile
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sellerProfileRepository) FindByUserID(ctx context.Context, userID uint64) (*model.SellerProfile, error) {
	var p model.SellerProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *sellerProfileRepository) FindByUserIDs(ctx context.Context, userIDs []uint64) ([]model.SellerProfile, error) {
	var list []model.SellerProfile
	err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&list).Error
	return list, err
}

func (r *sellerProfileRepository) List(ctx context.Context) ([]model.SellerProfile, error) {
	var list []model.SellerProfile
	err := r.db.WithContext(ctx).Order("business_name").Find(&list).Error
	return list, err
}

func (r *sellerProfileRepository) SearchByName(ctx context.Context, name string, limit int) ([]model.SellerProfile, error) {
	var list []model.SellerProfile
	err := r.db.WithContext(ctx).
		Where("business_name ILIKE ?", "%"+name+"%").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *sellerProfileRepository) FindAttendee(ctx context.Context, sellerProfileID uint64, attendeeNumber int) (*model.SellerAttendee, error) {
	var a model.SellerAttendee
	err := r.db.WithContext(ctx).
		Where("seller_profile_id = ? AND attendee_number = ?", sellerProfileID, attendeeNumber).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *sellerProfileRepository) ListAttendees(ctx context.Context, sellerProfileID uint64) ([]model.SellerAttendee, error) {
	var list []model.SellerAttendee
	err := r.db.WithContext(ctx).
		Where("seller_profile_id = ?", sellerProfileID).
		Order("attendee_number").
		Find(&list).Error
	return list, err
}
