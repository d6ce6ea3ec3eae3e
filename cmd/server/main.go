package main

import (
	"context"
	"database/sql"
	"errors"
	"fleet-ledger-service/internal/adapters/cache"
	"fleet-ledger-service/internal/adapters/repositories"
	"fleet-ledger-service/internal/api"
	"fleet-ledger-service/internal/config"
	"fleet-ledger-service/internal/jobs"
	"fleet-ledger-service/internal/platform/db"
	"fleet-ledger-service/internal/services"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (SQL store, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	conn, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := repositories.NewSQLStore(conn, repositories.DialectFor(cfg.DBDriver))
	store.Defaults.DefaultFuelPrice = cfg.DefaultFuelPrice

	// Initialize schema and optionally seed demo data on startup for local runs.
	if err := initAndSeed(ctx, conn, store, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	snapshots := &services.SnapshotService{Store: store}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable, snapshots load from the store: addr=%s err=%v", cfg.RedisAddr, err)
		}
		snapshots.Cache = cache.NewRedisSnapshotCache(rdb, cfg.SnapshotTTL)
	}

	sweeper := &services.StatusSweeper{Repo: store, OnChange: snapshots.Invalidate}
	job := jobs.NewStatusSweepJob(sweeper, cfg.StatusSweepInterval)
	job.Start(ctx)
	defer job.Stop()

	policy := services.FinancialPolicy{IncludeAwaitingConfirmation: cfg.IncludeAwaitingConfirmation}
	router := api.NewRouter(snapshots, policy)

	log.Printf("Server listening addr=:%s driver=%s", cfg.Port, cfg.DBDriver)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

func initAndSeed(ctx context.Context, conn *sql.DB, store *repositories.SQLStore, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if seedPath == "" {
		return nil
	}
	if err := repositories.SeedFromJSON(ctx, store, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
