package model

import (
	"time"

	"gorm.io/datatypes"
)

type BuyerProfile struct {
	ID                   uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID               uint64         `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Name                 string         `gorm:"size:120" json:"name"`
	Organization         string         `gorm:"size:200" json:"organization"`
	Designation          string         `gorm:"size:120" json:"designation"`
	Mobile               string         `gorm:"size:20" json:"mobile"`
	Country              string         `gorm:"size:80" json:"country"`
	State                string         `gorm:"size:80" json:"state"`
	City                 string         `gorm:"size:80" json:"city"`
	Address              string         `gorm:"type:text" json:"address"`
	Pincode              string         `gorm:"size:10" json:"pincode"`
	GSTNumber            string         `gorm:"column:gst_number;size:20" json:"gst_number"`
	OperatorType         string         `gorm:"column:operator_type;size:80" json:"operator_type"`
	Interests            datatypes.JSON `gorm:"type:jsonb" json:"interests"`
	PropertiesOfInterest datatypes.JSON `gorm:"column:properties_of_interest;type:jsonb" json:"properties_of_interest"`
	CategoryID           *uint64        `gorm:"column:category_id;index" json:"category_id"`
	ProfileImage         string         `gorm:"column:profile_image;size:255" json:"profile_image"`
	VCardScanned         bool           `gorm:"column:vcard_scanned" json:"vcard_scanned"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	User     *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category *BuyerCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (BuyerProfile) TableName() string {
	return "buyer_profiles"
}

type SellerProfile struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint64    `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	BusinessName   string    `gorm:"column:business_name;size:200" json:"business_name"`
	ContactName    string    `gorm:"column:contact_name;size:120" json:"contact_name"`
	Mobile         string    `gorm:"size:20" json:"mobile"`
	Website        string    `gorm:"size:255" json:"website"`
	Description    string    `gorm:"type:text" json:"description"`
	SellerType     string    `gorm:"column:seller_type;size:80" json:"seller_type"`
	TargetMarket   string    `gorm:"column:target_market;size:200" json:"target_market"`
	GSTNumber      string    `gorm:"column:gst_number;size:20" json:"gst_number"`
	Fascia         string    `gorm:"size:80" json:"fascia"`
	MicrositeURL   string    `gorm:"column:microsite_url;size:255" json:"microsite_url"`
	LogoURL        string    `gorm:"column:logo_url;size:255" json:"logo_url"`
	InstagramURL   string    `gorm:"column:instagram_url;size:255" json:"instagram_url"`
	WedwiseEnabled bool      `gorm:"column:wedwise_enabled" json:"wedwise_enabled"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (SellerProfile) TableName() string {
	return "seller_profiles"
}

type SellerAttendee struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerProfileID uint64    `gorm:"column:seller_profile_id;index;not null" json:"seller_profile_id"`
	AttendeeNumber  int       `gorm:"column:attendee_number;not null" json:"attendee_number"`
	Name            string    `gorm:"size:120" json:"name"`
	Designation     string    `gorm:"size:120" json:"designation"`
	Mobile          string    `gorm:"size:20" json:"mobile"`
	Email           string    `gorm:"size:120" json:"email"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	SellerProfile *SellerProfile `gorm:"foreignKey:SellerProfileID" json:"seller_profile,omitempty"`
}

func (SellerAttendee) TableName() string {
	return "seller_attendees"
}
