package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gracepoint-dev/church-admin-be/internal/auth"
	"github.com/gracepoint-dev/church-admin-be/internal/config"
	"github.com/gracepoint-dev/church-admin-be/internal/models"
	"github.com/gracepoint-dev/church-admin-be/internal/server"
	"github.com/gracepoint-dev/church-admin-be/internal/storage/postgres"
	"github.com/joho/godotenv"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	store, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer store.Close()

	if err := seedAdmin(ctx, cfg, store); err != nil {
		log.Fatalf("seed admin user: %v", err)
	}

	srv := server.New(cfg, store)

	go func() {
		log.Printf("church admin backend listening on %s", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

// seedAdmin bootstraps a regional_admin account when configured and the users
// table is still empty, so a fresh install has someone able to log in.
func seedAdmin(ctx context.Context, cfg config.Config, store *postgres.Store) error {
	if cfg.SeedAdminUsername == "" || cfg.SeedAdminPassword == "" {
		return nil
	}
	count, err := store.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	_, err = store.CreateUser(ctx, models.User{
		Username:     cfg.SeedAdminUsername,
		PasswordHash: hash,
		Role:         models.RoleRegionalAdmin,
	})
	if err != nil {
		return err
	}
	log.Printf("seeded admin user %q", cfg.SeedAdminUsername)
	return nil
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
