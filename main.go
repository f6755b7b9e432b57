package main

import (
	"fmt"
	"log"

	"github.com/anandmuthunayagam/Mahizh/internal/config"
	"github.com/anandmuthunayagam/Mahizh/internal/database"
	"github.com/anandmuthunayagam/Mahizh/internal/router"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// optional .env for local development; real env vars win
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if cfg.JWT.Secret == "" {
		log.Fatal("jwt.secret must be set")
	}

	// admin registration stays closed unless a setup token is known;
	// mint one on first boot so the operator can bootstrap the admin
	// account, then it never needs to exist again
	if cfg.Security.SetupToken == "" {
		cfg.Security.SetupToken = uuid.NewString()
		log.Printf("no setup token configured; use X-Setup-Token: %s to register the admin", cfg.Security.SetupToken)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
