package database

import (
	"errors"

	"techstorm/models"

	"gorm.io/gorm"
)

// LoadSettings returns the stored settings row or the defaults when none was saved yet
func LoadSettings(db *gorm.DB) (models.GlobalSetting, error) {
	var settings models.GlobalSetting
	err := db.Where("id = ?", models.SystemSettingsID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultSettings(), nil
	}
	return settings, err
}
