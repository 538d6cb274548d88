package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"techstorm/config"
	"techstorm/database"
	"techstorm/routers"
	"techstorm/utils"
)

func main() {
	config.LoadConfig()
	utils.InitReporter()
	defer utils.CloseReporter()

	database.ConnectDb()

	if config.AppConfig.SeedOnStart {
		if err := database.Seed(database.Database.Db); err != nil {
			log.Printf("[SEED] %v", err)
		}
	}

	utils.InitTokenStore()
	utils.InitMailer()
	utils.InitStorage()

	if config.AppConfig.EnableScheduler {
		scheduler := utils.InitializeScheduler()
		defer scheduler.Stop()
	}

	app := routers.NewApp(true)

	go func() {
		log.Printf("Server is running on port %s", config.AppConfig.Port)
		if err := app.Listen(":" + config.AppConfig.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}

	if sqlDB, err := database.Database.Db.DB(); err == nil {
		sqlDB.Close()
	}
}
