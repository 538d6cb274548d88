package database

import (
	"errors"
	"log"

	"techstorm/config"
	"techstorm/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedAccount struct {
	Name     string
	Email    string
	Password string
	Role     string
}

var seedAccounts = []seedAccount{
	{Name: "Super Admin", Email: "admin@techstorm.com", Password: "admin123", Role: models.RoleAdmin},
	{Name: "Lead Mentor", Email: "mentor@techstorm.com", Password: "mentor123", Role: models.RoleMentor},
}

// Seed creates the bootstrap accounts and the settings row. Existing rows are left alone.
func Seed(db *gorm.DB) error {
	for _, acc := range seedAccounts {
		var existing models.User
		err := db.Where("email = ?", acc.Email).First(&existing).Error
		if err == nil {
			log.Printf("[SEED] %s already exists, skipping", acc.Email)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(acc.Password), config.AppConfig.SaltRound)
		if err != nil {
			return err
		}

		user := models.User{
			Name:     acc.Name,
			Email:    acc.Email,
			Password: string(hashed),
			Role:     acc.Role,
			Status:   models.UserActive,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("[SEED] created %s (%s)", acc.Email, acc.Role)
	}

	settings := models.DefaultSettings()
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&settings).Error
}
