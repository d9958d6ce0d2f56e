package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"orderdesk/internal/domain"
)

type Config struct {
	Port              string
	DBDSN             string
	LogFile           string
	LowStockThreshold int
}

func Load() Config {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "orderdesk.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")

	threshold := domain.DefaultLowStockThreshold
	if raw := os.Getenv("LOW_STOCK_THRESHOLD"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			threshold = n
		} else {
			log.Printf("[config] ignoring invalid LOW_STOCK_THRESHOLD=%q", raw)
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, LowStockThreshold: threshold}
	log.Printf("[config] PORT=%s DB_DSN=%s LOW_STOCK_THRESHOLD=%d", cfg.Port, cfg.DBDSN, cfg.LowStockThreshold)
	return cfg
}
