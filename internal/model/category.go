package model

import "time"

// WalkInCategoryID is the reserved buyer category for unregistered
// walk-in visitors badge-scanned at the venue.
const WalkInCategoryID uint64 = 7

type BuyerCategory struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"size:120;not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	MaxMeetings   *int      `gorm:"column:max_meetings" json:"max_meetings"`
	DepositAmount float64   `gorm:"column:deposit_amount" json:"deposit_amount"`
	EntryFee      float64   `gorm:"column:entry_fee" json:"entry_fee"`
	Hosted        bool      `gorm:"column:hosted" json:"hosted"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BuyerCategory) TableName() string {
	return "buyer_categories"
}

// MeetingCeiling returns the per-day accepted-meeting ceiling and whether
// the category sets one. Null or negative max_meetings means unset; zero
// is a real ceiling.
func (c *BuyerCategory) MeetingCeiling() (int, bool) {
	if c == nil || c.MaxMeetings == nil || *c.MaxMeetings < 0 {
		return 0, false
	}
	return *c.MaxMeetings, true
}

type Interest struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:120;uniqueIndex;not null" json:"name"`
}

func (Interest) TableName() string {
	return "interests"
}

type PropertyType struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:120;uniqueIndex;not null" json:"name"`
}

func (PropertyType) TableName() string {
	return "property_types"
}
