package models

import (
	"time"
)

type User struct {
	Model
	Name                string     `json:"name" gorm:"default:''"`
	Email               string     `json:"email" gorm:"uniqueIndex;size:191;not null"`
	Password            string     `json:"-" gorm:"not null"`
	Role                string     `json:"role" gorm:"size:16;default:'MENTEE';index"`
	Status              string     `json:"status" gorm:"size:16;default:'ACTIVE'"`
	Image               string     `json:"image" gorm:"default:''"`
	Title               string     `json:"title" gorm:"default:''"`
	Bio                 string     `json:"bio" gorm:"type:text"`
	LinkedinURL         string     `json:"linkedin_url" gorm:"default:''"`
	GithubURL           string     `json:"github_url" gorm:"default:''"`
	TwitterURL          string     `json:"twitter_url" gorm:"default:''"`
	LastLogin           *time.Time `json:"last_login"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"-"`
	BlockedUntil        *time.Time `json:"-"`
}

// IsLocked reports whether the account is inside a login lockout window
func (u *User) IsLocked(now time.Time) bool {
	return u.BlockedUntil != nil && u.BlockedUntil.After(now)
}
