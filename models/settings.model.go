package models

import (
	"time"
)

const SystemSettingsID = "system_settings"

// GlobalSetting is a single row keyed by SystemSettingsID
type GlobalSetting struct {
	ID              string    `json:"id" gorm:"primaryKey;size:64"`
	MaintenanceMode bool      `json:"maintenance_mode" gorm:"default:false"`
	PlatformName    string    `json:"platform_name" gorm:"default:'TechStorm Global'"`
	SupportEmail    string    `json:"support_email" gorm:"default:'hello@techstormglobal.com'"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DefaultSettings is what the platform runs with before an admin saves anything
func DefaultSettings() GlobalSetting {
	return GlobalSetting{
		ID:              SystemSettingsID,
		MaintenanceMode: false,
		PlatformName:    "TechStorm Global",
		SupportEmail:    "hello@techstormglobal.com",
	}
}
