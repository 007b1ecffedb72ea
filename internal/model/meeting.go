package model

import "time"

type MeetingStatus string

const (
	MeetingStatusPending     MeetingStatus = "pending"
	MeetingStatusAccepted    MeetingStatus = "accepted"
	MeetingStatusRejected    MeetingStatus = "rejected"
	MeetingStatusExpired     MeetingStatus = "expired"
	MeetingStatusCancelled   MeetingStatus = "cancelled"
	MeetingStatusCompleted   MeetingStatus = "completed"
	MeetingStatusUnscheduled MeetingStatus = "unscheduled_completed"
)

// BlocksNewRequest reports whether an existing meeting in this status
// prevents the same buyer/seller pair from opening another request.
// Only a cancelled or expired meeting may be superseded by a fresh one.
func (s MeetingStatus) BlocksNewRequest() bool {
	return s != MeetingStatusCancelled && s != MeetingStatusExpired
}

type Meeting struct {
	ID          uint64        `gorm:"primaryKey;autoIncrement" json:"id"`
	BuyerID     uint64        `gorm:"column:buyer_id;index;not null" json:"buyer_id"`
	SellerID    uint64        `gorm:"column:seller_id;index;not null" json:"seller_id"`
	RequestorID uint64        `gorm:"column:requestor_id;index;not null" json:"requestor_id"`
	Status      MeetingStatus `gorm:"size:32;not null;default:pending;index" json:"status"`
	TimeSlotID  *uint64       `gorm:"column:time_slot_id;index" json:"time_slot_id"`
	MeetingDate *time.Time    `gorm:"column:meeting_date;type:date" json:"meeting_date"`
	Notes       string        `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Meeting) TableName() string {
	return "meetings"
}
