package model

import "time"

type StallType struct {
	ID                       uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                     string    `gorm:"size:120;not null" json:"name"`
	Size                     string    `gorm:"size:40" json:"size"`
	Price                    float64   `gorm:"column:price" json:"price"`
	Attendees                int       `gorm:"column:attendees;not null;default:1" json:"attendees"`
	MaxMeetingsPerAttendee   *int      `gorm:"column:max_meetings_per_attendee" json:"max_meetings_per_attendee"`
	MaxAdditionalSellerPass  int       `gorm:"column:max_additional_seller_passes" json:"max_additional_seller_passes"`
	AllowSellerSelectStall   bool      `gorm:"column:allow_seller_select_stall" json:"allow_seller_select_stall"`
	CreatedAt                time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StallType) TableName() string {
	return "stall_types"
}

type Stall struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerProfileID uint64    `gorm:"column:seller_profile_id;index;not null" json:"seller_profile_id"`
	StallTypeID     *uint64   `gorm:"column:stall_type_id;index" json:"stall_type_id"`
	Number          string    `gorm:"size:20" json:"number"`
	Allocated       bool      `gorm:"column:allocated" json:"allocated"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	StallType     *StallType     `gorm:"foreignKey:StallTypeID" json:"stall_type,omitempty"`
	SellerProfile *SellerProfile `gorm:"foreignKey:SellerProfileID" json:"seller_profile,omitempty"`
}

func (Stall) TableName() string {
	return "stalls"
}

type StallInventory struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	StallTypeID uint64    `gorm:"column:stall_type_id;index;not null" json:"stall_type_id"`
	Number      string    `gorm:"size:20;uniqueIndex;not null" json:"number"`
	Allocated   bool      `gorm:"column:allocated;index" json:"allocated"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StallInventory) TableName() string {
	return "stall_inventory"
}
