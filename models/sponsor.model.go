package models

type Sponsor struct {
	Model
	Name       string `json:"name" gorm:"not null"`
	LogoURL    string `json:"logo_url" gorm:"not null"`
	WebsiteURL string `json:"website_url" gorm:"default:''"`
	Order      int    `json:"order" gorm:"column:sort_order;default:0"`
}
