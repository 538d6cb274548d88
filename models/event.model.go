package models

import (
	"time"
)

type Event struct {
	Model
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Date        time.Time `json:"date" gorm:"index"`
	Location    string    `json:"location" gorm:"default:''"`
	IsVirtual   bool      `json:"is_virtual" gorm:"default:false"`
	Image       string    `json:"image" gorm:"default:''"`
}
