package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/urex-bootcamp/config"
	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
	pginfra "github.com/oksasatya/urex-bootcamp/internal/infrastructure/postgres"
	"github.com/oksasatya/urex-bootcamp/pkg/helpers"
)

// Provisions the dashboard admin from ADMIN_USERNAME / ADMIN_PASSWORD.
// Re-running replaces the password hash.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, time.Minute)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	hash, err := helpers.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := &entity.Admin{Username: cfg.AdminUsername, PasswordHash: hash}
	if err := pginfra.NewAdminRepository(pool).Upsert(ctx, admin); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s username=%s\n", admin.ID, admin.Username)
}
