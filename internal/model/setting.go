package model

import "time"

// Keys of the system_settings rows the services read. Values are stored
// as strings and parsed at the point of use.
const (
	SettingMeetingsEnabled          = "meetings_enabled"
	SettingMaxSellerAttendeesPerDay = "max_seller_attendees_per_day"
	SettingEventStartDate           = "event_start_date"
	SettingEventEndDate             = "event_end_date"
	SettingMeetingStartTime         = "meeting_start_time"
	SettingMeetingEndTime           = "meeting_end_time"
)

type SystemSetting struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Key       string    `gorm:"size:80;uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"size:255" json:"value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}
