package api

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"

	orderdomain "github.com/Apurer/go-gin-shop-api/internal/domains/orders/domain"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port              string
	PostgresDSN       string
	SQLiteDSN         string
	DBDebug           bool
	SeedSampleData    bool
	OrderSearchLimit  int
	DefaultPageLimit  int
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
	ShutdownTimeout   time.Duration
}

// LoadConfig reads a .env file when present, then environment variables,
// applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		SQLiteDSN:         strings.TrimSpace(os.Getenv("SQLITE_DSN")),
		DBDebug:           isTruthy(os.Getenv("DB_DEBUG")),
		SeedSampleData:    isTruthy(os.Getenv("SEED_SAMPLE_DATA")),
		OrderSearchLimit:  orderdomain.MaxSearchResults,
		DefaultPageLimit:  100,
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		ShutdownTimeout:   10 * time.Second,
	}
	var err error
	if cfg.OrderSearchLimit, err = positiveInt("ORDER_SEARCH_LIMIT", cfg.OrderSearchLimit); err != nil {
		return Config{}, err
	}
	if cfg.OrderSearchLimit > orderdomain.MaxSearchResults {
		return Config{}, fmt.Errorf("ORDER_SEARCH_LIMIT must not exceed %d", orderdomain.MaxSearchResults)
	}
	if cfg.DefaultPageLimit, err = positiveInt("DEFAULT_PAGE_LIMIT", cfg.DefaultPageLimit); err != nil {
		return Config{}, err
	}
	seconds, err := positiveInt("SHUTDOWN_TIMEOUT_SECONDS", int(cfg.ShutdownTimeout/time.Second))
	if err != nil {
		return Config{}, err
	}
	cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	return cfg, nil
}

func positiveInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return value, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
