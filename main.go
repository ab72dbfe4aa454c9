// @title LearnPal API
// @version 1.0
// @description Backend server for the LearnPal learning platform: AI generated learning paths, progress tracking and streaks.

// @contact.name API Support
// @contact.email support@learnpal.app

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"github.com/Tejas411/LearnPal/internal/app"
	"github.com/Tejas411/LearnPal/internal/config"
	"github.com/Tejas411/LearnPal/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "force database migrations on startup, even in release mode")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("database migration complete, exiting")
		return
	}

	application.Run()
}
