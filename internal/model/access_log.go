package model

import "time"

type ScanType string

const (
	ScanTypeBuyer          ScanType = "buyer"
	ScanTypeSeller         ScanType = "seller"
	ScanTypeSellerAttendee ScanType = "seller_attendee"
)

// AccessLog records a successful badge scan at the venue gate.
type AccessLog struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ScannedID    string    `gorm:"column:scanned_id;size:40;index;not null" json:"scanned_id"`
	ScanType     ScanType  `gorm:"column:scan_type;size:32;not null" json:"scan_type"`
	UserID       *uint64   `gorm:"column:user_id;index" json:"user_id"`
	ScanDatetime time.Time `gorm:"column:scan_datetime;not null" json:"scan_datetime"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AccessLog) TableName() string {
	return "access_logs"
}
