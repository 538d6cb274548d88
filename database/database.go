package database

import (
	"fmt"
	"log"
	"os"

	"techstorm/config"
	"techstorm/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the configured driver, migrates and stores the handle globally
func ConnectDb() {
	cfg := config.AppConfig

	db, err := Open(dialector(cfg), NewGormLogger(cfg.DBLogLevel))
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", cfg.DBDriver, err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	if err := RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	Database = DbInstance{Db: db}
}

func dialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DBDriver {
	case "sqlite":
		return sqlite.Open(SqliteDSN(cfg.DBSqlitePath))
	case "mysql":
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)
		return mysql.Open(dsn)
	default:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
		return postgres.Open(dsn)
	}
}

// SqliteDSN turns a file path (or ":memory:"-style name) into a DSN with foreign keys on.
// Cascading deletes depend on it.
func SqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&cache=shared", path)
}

// Open connects through the given dialector without migrating
func Open(d gorm.Dialector, l logger.Interface) (*gorm.DB, error) {
	return gorm.Open(d, &gorm.Config{
		Logger:         l,
		TranslateError: true,
	})
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) error {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.LoginTracking{},
		&models.OTP{},
		&models.RevokedToken{},
		&models.Course{},
		&models.Module{},
		&models.Lesson{},
		&models.LessonProgress{},
		&models.Quiz{},
		&models.Question{},
		&models.QuestionOption{},
		&models.QuizAttempt{},
		&models.Assignment{},
		&models.AssignmentSubmission{},
		&models.Enrollment{},
		&models.Invitation{},
		&models.Meeting{},
		&models.Event{},
		&models.GalleryImage{},
		&models.Testimonial{},
		&models.Sponsor{},
		&models.TeamMember{},
		&models.GlobalSetting{},
	)
	if err != nil {
		return err
	}

	log.Println("Migrations completed successfully.")
	return nil
}
