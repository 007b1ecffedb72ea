package repository

import (
	"context"
	"time"

	"github.com/expomeet/expomeet-server/internal/model"
	"gorm.io/gorm"
)

type MeetingRepository interface {
	Create(ctx context.Context, m *model.Meeting) error
	Save(ctx context.Context, m *model.Meeting) error
	FindByID(ctx context.Context, id uint64) (*model.Meeting, error)
	FindLatestForPair(ctx context.Context, buyerID, sellerID uint64) (*model.Meeting, error)
	FindPairWithStatus(ctx context.Context, buyerID, sellerID uint64, statuses ...model.MeetingStatus) (*model.Meeting, error)
	ListInvolving(ctx context.Context, userID uint64) ([]model.Meeting, error)
	ListAll(ctx context.Context) ([]model.Meeting, error)
	ListForBuyers(ctx context.Context, buyerIDs []uint64, statuses ...model.MeetingStatus) ([]model.Meeting, error)
	CountBuyerByStatus(ctx context.Context, buyerID uint64, statuses ...model.MeetingStatus) (int64, error)
	CountSellerByStatus(ctx context.Context, sellerID uint64, statuses ...model.MeetingStatus) (int64, error)
	CountsByStatusForUser(ctx context.Context, userID uint64) (map[model.MeetingStatus]int64, error)

	// UpdateStatusIf flips status to `to` only when the row is currently in
	// one of `from`. The caller inspects rows affected to detect a lost race.
	UpdateStatusIf(ctx context.Context, id uint64, to model.MeetingStatus, from ...model.MeetingStatus) (int64, error)

	ExpireStaleForUser(ctx context.Context, userID uint64, cutoff time.Time) (int64, error)
	ExpireStaleForBuyers(ctx context.Context, buyerIDs []uint64, cutoff time.Time) (int64, error)
	ExpireAllStale(ctx context.Context, cutoff time.Time) (int64, error)
}

type meetingRepository struct {
	db *gorm.DB
}

func NewMeetingRepository(db *gorm.DB) MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) Create(ctx context.Context, m *model.Meeting) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *meetingRepository) Save(ctx context.Context, m *model.Meeting) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *meetingRepository) FindByID(ctx context.Context, id uint64) (*model.Meeting, error) {
	var m model.Meeting
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *meetingRepository) FindLatestForPair(ctx context.Context, buyerID, sellerID uint64) (*model.Meeting, error) {
	var m model.Meeting
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND seller_id = ?", buyerID, sellerID).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *meetingRepository) FindPairWithStatus(ctx context.Context, buyerID, sellerID uint64, statuses ...model.MeetingStatus) (*model.Meeting, error) {
	var m model.Meeting
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND seller_id = ? AND status IN ?", buyerID, sellerID, statuses).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *meetingRepository) ListInvolving(ctx context.Context, userID uint64) ([]model.Meeting, error) {
	var list []model.Meeting
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *meetingRepository) ListAll(ctx context.Context) ([]model.Meeting, error) {
	var list []model.Meeting
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *meetingRepository) ListForBuyers(ctx context.Context, buyerIDs []uint64, statuses ...model.MeetingStatus) ([]model.Meeting, error) {
	var list []model.Meeting
	q := r.db.WithContext(ctx).Where("buyer_id IN ?", buyerIDs)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *meetingRepository) CountBuyerByStatus(ctx context.Context, buyerID uint64, statuses ...model.MeetingStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Meeting{}).
		Where("buyer_id = ? AND status IN ?", buyerID, statuses).
		Count(&n).Error
	return n, err
}

func (r *meetingRepository) CountSellerByStatus(ctx context.Context, sellerID uint64, statuses ...model.MeetingStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Meeting{}).
		Where("seller_id = ? AND status IN ?", sellerID, statuses).
		Count(&n).Error
	return n, err
}

func (r *meetingRepository) CountsByStatusForUser(ctx context.Context, userID uint64) (map[model.MeetingStatus]int64, error) {
	type row struct {
		Status model.MeetingStatus
		N      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Meeting{}).
		Select("status, COUNT(*) AS n").
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[model.MeetingStatus]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.N
	}
	return out, nil
}

func (r *meetingRepository) UpdateStatusIf(ctx context.Context, id uint64, to model.MeetingStatus, from ...model.MeetingStatus) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Meeting{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (r *meetingRepository) ExpireStaleForUser(ctx context.Context, userID uint64, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Meeting{}).
		Where("status = ?", model.MeetingStatusPending).
		Where("created_at < ? OR created_at IS NULL", cutoff).
		Where("buyer_id = ? OR seller_id = ? OR requestor_id = ?", userID, userID, userID).
		Update("status", model.MeetingStatusExpired)
	return res.RowsAffected, res.Error
}

func (r *meetingRepository) ExpireStaleForBuyers(ctx context.Context, buyerIDs []uint64, cutoff time.Time) (int64, error) {
	if len(buyerIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&model.Meeting{}).
		Where("status = ?", model.MeetingStatusPending).
		Where("created_at < ? OR created_at IS NULL", cutoff).
		Where("buyer_id IN ? OR requestor_id IN ?", buyerIDs, buyerIDs).
		Update("status", model.MeetingStatusExpired)
	return res.RowsAffected, res.Error
}

func (r *meetingRepository) ExpireAllStale(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Meeting{}).
		Where("status = ?", model.MeetingStatusPending).
		Where("created_at < ? OR created_at IS NULL", cutoff).
		Update("status", model.MeetingStatusExpired)
	return res.RowsAffected, res.Error
}
