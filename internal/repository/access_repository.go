package repository

import (
	"context"

	"github.com/expomeet/expomeet-server/internal/model"
	"gorm.io/gorm"
)

type AccessLogRepository interface {
	Create(ctx context.Context, l *model.AccessLog) error
	List(ctx context.Context, limit, offset int) ([]model.AccessLog, int64, error)
}

type accessLogRepository struct {
	db *gorm.DB
}

func NewAccessLogRepository(db *gorm.DB) AccessLogRepository {
	return &accessLogRepository{db: db}
}

func (r *accessLogRepository) Create(ctx context.Context, l *model.AccessLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *accessLogRepository) List(ctx context.Context, limit, offset int) ([]model.AccessLog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.AccessLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.AccessLog
	q := r.db.WithContext(ctx).Order("scan_datetime DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
