package main

import (
	"log"
	"os"

	"github.com/existflow/iplan/internal/config"
	"github.com/existflow/iplan/internal/logger"
	"github.com/existflow/iplan/server"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "postgres://localhost:5432/iplan?sslmode=disable"
	}

	cfg := config.DefaultConfig()
	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.ParseLevel(cfg.LogLevel)
	logCfg.Console = true
	if err := logger.Init(logCfg); err != nil {
		log.Printf("Logger init failed: %v", err)
	}

	srv, err := server.New(dbURL)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Printf("Error closing server: %v", err)
		}
	}()

	log.Printf("iplan sync server starting on :%s", port)
	if err := srv.Start(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
