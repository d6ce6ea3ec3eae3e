package main

import (
	"context"
	"fleet-ledger-service/internal/adapters/repositories"
	"fleet-ledger-service/internal/config"
	"fleet-ledger-service/internal/platform/db"
	"fmt"
	"log"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()
	seedPath := config.Get("SEED_PATH", "data/seeds/fleet.json")
	ctx := context.Background()

	// SEED_DRY_RUN validates the seed file against an in-memory store and
	// leaves the database untouched.
	if config.Bool("SEED_DRY_RUN", false) {
		summary, err := dryRun(ctx, seedPath)
		if err != nil {
			log.Fatalf("dry run failed: %v", err)
		}
		log.Printf("Dry run complete: %s", summary)
		return
	}

	conn, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	store := repositories.NewSQLStore(conn, repositories.DialectFor(cfg.DBDriver))

	log.Printf("Seeding database from %s...", seedPath)
	if err := repositories.SeedFromJSON(ctx, store, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}

func dryRun(ctx context.Context, seedPath string) (string, error) {
	store := repositories.NewMemoryStore()
	if err := repositories.SeedFromJSON(ctx, store, seedPath); err != nil {
		return "", err
	}

	trucks, _ := store.ListTrucks(ctx)
	drivers, _ := store.ListDrivers(ctx)
	entries, _ := store.ListEntries(ctx)
	plans, _ := store.ListPlanifications(ctx)
	settings, _ := store.GetSettings(ctx)

	return fmt.Sprintf("trucks=%d drivers=%d entries=%d planifications=%d default_fuel_price=%v",
		len(trucks), len(drivers), len(entries), len(plans), settings.DefaultFuelPrice), nil
}
