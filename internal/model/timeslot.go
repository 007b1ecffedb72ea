package model

import "time"

type TimeSlot struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID    uint64    `gorm:"column:seller_id;index;not null" json:"seller_id"`
	SlotDate    time.Time `gorm:"column:slot_date;type:date;not null" json:"slot_date"`
	StartTime   string    `gorm:"column:start_time;size:8;not null" json:"start_time"`
	EndTime     string    `gorm:"column:end_time;size:8;not null" json:"end_time"`
	IsAvailable bool      `gorm:"column:is_available;not null;default:true" json:"is_available"`
	MeetingID   *uint64   `gorm:"column:meeting_id;index" json:"meeting_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TimeSlot) TableName() string {
	return "time_slots"
}
