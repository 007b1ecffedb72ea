package repository

import (
	"context"
	"errors"

	"github.com/expomeet/expomeet-server/internal/model"
	"gorm.io/gorm"
)

type SettingRepository interface {
	// Get returns the raw value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	GetAll(ctx context.Context) ([]model.SystemSetting, error)
	Set(ctx context.Context, key, value string) error
}

type settingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var s model.SystemSetting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return s.Value, true, nil
}

func (r *settingRepository) GetAll(ctx context.Context) ([]model.SystemSetting, error) {
	var list []model.SystemSetting
	err := r.db.WithContext(ctx).Order("key").Find(&list).Error
	return list, err
}

func (r *settingRepository) Set(ctx context.Context, key, value string) error {
	var s model.SystemSetting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(&model.SystemSetting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	s.Value = value
	return r.db.WithContext(ctx).Save(&s).Error
}
