package repository

import (
	"context"

	"github.com/expomeet/expomeet-server/internal/model"
	"gorm.io/gorm"
)

type StallRepository interface {
	FindByID(ctx context.Context, id uint64) (*model.Stall, error)
	ListBySellerProfile(ctx context.Context, sellerProfileID uint64) ([]model.Stall, error)
	ListAll(ctx context.Context) ([]model.Stall, error)
	Save(ctx context.Context, s *model.Stall) error
	NumberTaken(ctx context.Context, number string, excludeID uint64) (bool, error)
	FindStallType(ctx context.Context, id uint64) (*model.StallType, error)
	ListStallTypes(ctx context.Context) ([]model.StallType, error)
	FindStallTypesByIDs(ctx context.Context, ids []uint64) (map[uint64]model.StallType, error)

	ListAvailableInventory(ctx context.Context, stallTypeID uint64) ([]model.StallInventory, error)
	// ClaimInventory marks an inventory row allocated only while it is still
	// free. Zero rows affected means another seller got there first.
	ClaimInventory(ctx context.Context, inventoryID uint64) (int64, error)
	ReleaseInventoryByNumber(ctx context.Context, number string) error
}

type stallRepository struct {
	db *gorm.DB
}

func NewStallRepository(db *gorm.DB) StallRepository {
	return &stallRepository{db: db}
}

func (r *stallRepository) FindByID(ctx context.Context, id uint64) (*model.Stall, error) {
	var s model.Stall
	err := r.db.WithContext(ctx).Preload("StallType").Preload("SellerProfile").First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stallRepository) ListBySellerProfile(ctx context.Context, sellerProfileID uint64) ([]model.Stall, error) {
	var list []model.Stall
	err := r.db.WithContext(ctx).
		Preload("StallType").
		Where("seller_profile_id = ?", sellerProfileID).
		Order("id").
		Find(&list).Error
	return list, err
}

func (r *stallRepository) ListAll(ctx context.Context) ([]model.Stall, error) {
	var list []model.Stall
	err := r.db.WithContext(ctx).
		Preload("StallType").
		Preload("SellerProfile").
		Order("id").
		Find(&list).Error
	return list, err
}

func (r *stallRepository) Save(ctx context.Context, s *model.Stall) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *stallRepository) NumberTaken(ctx context.Context, number string, excludeID uint64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Stall{}).
		Where("number = ? AND id <> ?", number, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *stallRepository) FindStallType(ctx context.Context, id uint64) (*model.StallType, error) {
	var t model.StallType
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *stallRepository) ListStallTypes(ctx context.Context) ([]model.StallType, error) {
	var list []model.StallType
	err := r.db.WithContext(ctx).Order("id").Find(&list).Error
	return list, err
}

func (r *stallRepository) FindStallTypesByIDs(ctx context.Context, ids []uint64) (map[uint64]model.StallType, error) {
	var list []model.StallType
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	out := make(map[uint64]model.StallType, len(list))
	for _, t := range list {
		out[t.ID] = t
	}
	return out, nil
}

func (r *stallRepository) ListAvailableInventory(ctx context.Context, stallTypeID uint64) ([]model.StallInventory, error) {
	var list []model.StallInventory
	err := r.db.WithContext(ctx).
		Where("stall_type_id = ? AND allocated = ?", stallTypeID, false).
		Order("number").
		Find(&list).Error
	return list, err
}

func (r *stallRepository) ClaimInventory(ctx context.Context, inventoryID uint64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.StallInventory{}).
		Where("id = ? AND allocated = ?", inventoryID, false).
		Update("allocated", true)
	return res.RowsAffected, res.Error
}

func (r *stallRepository) ReleaseInventoryByNumber(ctx context.Context, number string) error {
	return r.db.WithContext(ctx).Model(&model.StallInventory{}).
		Where("number = ?", number).
		Update("allocated", false).Error
}
