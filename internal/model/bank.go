package model

import "time"

type BuyerBankDetails struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	BuyerProfileID uint64    `gorm:"column:buyer_profile_id;uniqueIndex;not null" json:"buyer_profile_id"`
	AccountHolder  string    `gorm:"column:account_holder;size:120" json:"account_holder"`
	AccountNumber  string    `gorm:"column:account_number;size:40" json:"account_number"`
	IFSCCode       string    `gorm:"column:ifsc_code;size:11" json:"ifsc_code"`
	BankName       string    `gorm:"column:bank_name;size:120" json:"bank_name"`
	Branch         string    `gorm:"size:120" json:"branch"`
	City           string    `gorm:"size:80" json:"city"`
	State          string    `gorm:"size:80" json:"state"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BuyerBankDetails) TableName() string {
	return "buyer_bank_details"
}
