package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"carrotrent-backend/internal/config"
	"carrotrent-backend/internal/logger"
	"carrotrent-backend/internal/repository/postgres"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	action := flag.String("action", "up", "Migration action: up, down, drop, version")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env file: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	logger.Info("Running migration", "action", *action, "host", cfg.Database.Host, "database", cfg.Database.Database)
	if err := postgres.RunMigration(*action, cfg.GetDatabaseConnectionString()); err != nil {
		logger.Error("Migration failed", "action", *action, "error", err)
		os.Exit(1)
	}
	logger.Info("Migration finished", "action", *action)
}
