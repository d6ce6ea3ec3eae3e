package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	DBDriver    string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	SnapshotTTL   time.Duration

	DefaultFuelPrice            float64
	IncludeAwaitingConfirmation bool
	StatusSweepInterval         time.Duration

	SeedPath string
}

// Load reads the environment. Call godotenv.Load first to pick up .env.
func Load() Config {
	driver := Get("DB_DRIVER", "sqlite")
	dsn := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(dsn) == "" && driver == "sqlite" {
		dsn = Get("DB_PATH", "data/fleet.db")
	}

	return Config{
		Port:                        Get("PORT", "8080"),
		DBDriver:                    driver,
		DatabaseURL:                 dsn,
		RedisAddr:                   os.Getenv("REDIS_ADDR"),
		RedisPassword:               os.Getenv("REDIS_PASSWORD"),
		SnapshotTTL:                 Duration("SNAPSHOT_TTL", 5*time.Minute),
		DefaultFuelPrice:            Float("DEFAULT_FUEL_PRICE", 2),
		IncludeAwaitingConfirmation: Bool("INCLUDE_AWAITING_CONFIRMATION", false),
		StatusSweepInterval:         Duration("STATUS_SWEEP_INTERVAL", time.Minute),
		SeedPath:                    Get("SEED_PATH", ""),
	}
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Duration falls back on unparsable and non-positive values.
func Duration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("config: invalid duration key=%s value=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func Float(key string, fallback float64) float64 {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		log.Printf("config: invalid number key=%s value=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}

func Bool(key string, fallback bool) bool {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: invalid bool key=%s value=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}
