package models

type GalleryImage struct {
	Model
	URL         string `json:"url" gorm:"not null"`
	Title       string `json:"title" gorm:"default:''"`
	Category    string `json:"category" gorm:"default:'';index"`
	Description string `json:"description" gorm:"type:text"`
}
