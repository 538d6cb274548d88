package models

type Testimonial struct {
	Model
	Name    string `json:"name" gorm:"not null"`
	Role    string `json:"role" gorm:"not null"`
	Content string `json:"content" gorm:"type:text;not null"`
	Image   string `json:"image" gorm:"default:''"`
	Company string `json:"company" gorm:"default:''"`
	Rating  int    `json:"rating" gorm:"default:5;check:rating >= 1 AND rating <= 5"`
}
