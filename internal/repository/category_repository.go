package repository

import (
	"context"

	"github.com/expomeet/expomeet-server/internal/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindByID(ctx context.Context, id uint64) (*model.BuyerCategory, error)
	FindByIDs(ctx context.Context, ids []uint64) (map[uint64]model.BuyerCategory, error)
	List(ctx context.Context) ([]model.BuyerCategory, error)
	ListInterests(ctx context.Context) ([]model.Interest, error)
	ListPropertyTypes(ctx context.Context) ([]model.PropertyType, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint64) (*model.BuyerCategory, error) {
	var c model.BuyerCategory
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]model.BuyerCategory, error) {
	var list []model.BuyerCategory
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	out := make(map[uint64]model.BuyerCategory, len(list))
	for _, c := range list {
		out[c.ID] = c
	}
	return out, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.BuyerCategory, error) {
	var list []model.BuyerCategory
	err := r.db.WithContext(ctx).Order("id").Find(&list).Error
	return list, err
}

func (r *categoryRepository) ListInterests(ctx context.Context) ([]model.Interest, error) {
	var list []model.Interest
	err := r.db.WithContext(ctx).Order("name").Find(&list).Error
	return list, err
}

func (r *categoryRepository) ListPropertyTypes(ctx context.Context) ([]model.PropertyType, error) {
	var list []model.PropertyType
	err := r.db.WithContext(ctx).Order("name").Find(&list).Error
	return list, err
}
