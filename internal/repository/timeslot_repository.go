package repository

import (
	"context"

	"github.com/expomeet/expomeet-server/internal/model"
	"gorm.io/gorm"
)

type TimeSlotRepository interface {
	ListBySeller(ctx context.Context, sellerID uint64) ([]model.TimeSlot, error)
	ListAvailableBySeller(ctx context.Context, sellerID uint64) ([]model.TimeSlot, error)
	FindByID(ctx context.Context, id uint64) (*model.TimeSlot, error)
	AttachMeeting(ctx context.Context, slotID, meetingID uint64) (int64, error)
	ReleaseByMeeting(ctx context.Context, meetingID uint64) error
}

type timeSlotRepository struct {
	db *gorm.DB
}

func NewTimeSlotRepository(db *gorm.DB) TimeSlotRepository {
	return &timeSlotRepository{db: db}
}

func (r *timeSlotRepository) ListBySeller(ctx context.Context, sellerID uint64) ([]model.TimeSlot, error) {
	var list []model.TimeSlot
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("slot_date, start_time").
		Find(&list).Error
	return list, err
}

func (r *timeSlotRepository) ListAvailableBySeller(ctx context.Context, sellerID uint64) ([]model.TimeSlot, error) {
	var list []model.TimeSlot
	err := r.db.WithContext(ctx).
		Where("seller_id = ? AND is_available = ?", sellerID, true).
		Order("slot_date, start_time").
		Find(&list).Error
	return list, err
}

func (r *timeSlotRepository) FindByID(ctx context.Context, id uint64) (*model.TimeSlot, error) {
	var s model.TimeSlot
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// AttachMeeting claims a slot for a meeting only while it is still free.
func (r *timeSlotRepository) AttachMeeting(ctx context.Context, slotID, meetingID uint64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.TimeSlot{}).
		Where("id = ? AND is_available = ?", slotID, true).
		Updates(map[string]interface{}{"is_available": false, "meeting_id": meetingID})
	return res.RowsAffected, res.Error
}

func (r *timeSlotRepository) ReleaseByMeeting(ctx context.Context, meetingID uint64) error {
	return r.db.WithContext(ctx).Model(&model.TimeSlot{}).
		Where("meeting_id = ?", meetingID).
		Updates(map[string]interface{}{"is_available": true, "meeting_id": nil}).Error
}
