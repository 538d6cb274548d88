package models

type TeamMember struct {
	Model
	Name        string `json:"name" gorm:"not null"`
	Role        string `json:"role" gorm:"default:''"`
	Bio         string `json:"bio" gorm:"type:text"`
	Image       string `json:"image" gorm:"default:''"`
	LinkedinURL string `json:"linkedin_url" gorm:"default:''"`
	TwitterURL  string `json:"twitter_url" gorm:"default:''"`
	YoutubeURL  string `json:"youtube_url" gorm:"default:''"`
	Order       int    `json:"order" gorm:"column:sort_order;default:0"`
}
