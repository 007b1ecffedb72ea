package model

import "time"

type InvitedBuyer struct {
	ID              uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email           string     `gorm:"size:120;index;not null" json:"email"`
	Name            string     `gorm:"size:120" json:"name"`
	InvitationToken string     `gorm:"column:invitation_token;size:64;uniqueIndex;not null" json:"invitation_token"`
	ExpiresAt       time.Time  `gorm:"column:expires_at;not null" json:"expires_at"`
	IsRegistered    bool       `gorm:"column:is_registered" json:"is_registered"`
	RegisteredAt    *time.Time `gorm:"column:registered_at" json:"registered_at"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (InvitedBuyer) TableName() string {
	return "invited_buyers"
}

// PendingBuyer holds an invited registration awaiting admin approval.
type PendingBuyer struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	InvitedBuyerID uint64    `gorm:"column:invited_buyer_id;index;not null" json:"invited_buyer_id"`
	Email          string    `gorm:"size:120;not null" json:"email"`
	Name           string    `gorm:"size:120" json:"name"`
	Organization   string    `gorm:"size:200" json:"organization"`
	Designation    string    `gorm:"size:120" json:"designation"`
	Mobile         string    `gorm:"size:20" json:"mobile"`
	Country        string    `gorm:"size:80" json:"country"`
	State          string    `gorm:"size:80" json:"state"`
	City           string    `gorm:"size:80" json:"city"`
	Status         string    `gorm:"size:32;not null;default:pending" json:"status"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PendingBuyer) TableName() string {
	return "pending_buyers"
}

// DomainRestriction limits invited registrations to approved mail domains
// when any enabled rows exist.
type DomainRestriction struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Domain    string    `gorm:"size:120;uniqueIndex;not null" json:"domain"`
	Enabled   bool      `gorm:"not null;default:true" json:"enabled"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DomainRestriction) TableName() string {
	return "domain_restrictions"
}
