package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"log"
	"os"
	"strings"

	"techstorm/config"
	"techstorm/database"
	"techstorm/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultPassword = "password123"

func main() {
	usersFile := flag.String("users", "", "optional CSV of accounts to create (name,email,role)")
	flag.Parse()

	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	if err := database.Seed(db); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	log.Println("[SEED] bootstrap accounts and settings ready")

	if *usersFile == "" {
		return
	}

	file, err := os.Open(*usersFile)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}
	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{"name", "email", "role"} {
		if _, ok := headerIndex[col]; !ok {
			log.Fatalf("CSV is missing the %q column", col)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash default password: %v", err)
	}

	inserted, skipped := 0, 0
	for i, row := range records[1:] {
		user := models.User{
			Name:     strings.TrimSpace(row[headerIndex["name"]]),
			Email:    strings.ToLower(strings.TrimSpace(row[headerIndex["email"]])),
			Role:     strings.ToUpper(strings.TrimSpace(row[headerIndex["role"]])),
			Password: string(hashed),
			Status:   models.UserActive,
		}
		if user.Email == "" || !models.IsValidRole(user.Role) {
			log.Printf("Row %d: missing email or unknown role, skipping", i+2)
			skipped++
			continue
		}

		var existing models.User
		err := db.Where("email = ?", user.Email).First(&existing).Error
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Row %d: %v", i+2, err)
		}

		if err := db.Create(&user).Error; err != nil {
			log.Printf("Row %d: failed to create %s: %v", i+2, user.Email, err)
			skipped++
			continue
		}
		inserted++
	}

	log.Printf("Import finished: %d created, %d skipped", inserted, skipped)
}
