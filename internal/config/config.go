// README: Config loader with env defaults for HTTP, Gemini variants, ledger, stats, and auth settings.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// VariantConfig selects the model and sampling temperature of one prompt variant.
type VariantConfig struct {
	Model       string
	Temperature float32
}

type PlanConfig struct {
	VariantConfig
	RejectDuplicateLocations bool
}

type LedgerConfig struct {
	RetentionDays int
	PruneSchedule string
}

type Config struct {
	HTTP struct {
		Addr        string
		CORSOrigins []string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Firebase struct {
		ProjectID       string
		CredentialsFile string
	}
	AI struct {
		// GeminiKey may be empty; requests fail individually until it is set.
		GeminiKey string
		BaseURL   string
		Timeout   time.Duration
		Extract   VariantConfig
		Plan      PlanConfig
	}
	Maps struct {
		APIKey string
	}
	Ledger LedgerConfig
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("TRIP_PROXY_HTTP_ADDR", ":"+envOrDefault("PORT", "8080"))
	cfg.HTTP.CORSOrigins = envOrDefaultList("TRIP_PROXY_CORS_ORIGINS", []string{"*"})
	cfg.DB.DSN = os.Getenv("TRIP_PROXY_DB_DSN")
	cfg.Redis.Addr = os.Getenv("TRIP_PROXY_REDIS_ADDR")
	cfg.Firebase.ProjectID = os.Getenv("TRIP_PROXY_FIREBASE_PROJECT_ID")
	cfg.Firebase.CredentialsFile = os.Getenv("TRIP_PROXY_FIREBASE_CREDENTIALS_FILE")

	cfg.AI.GeminiKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	cfg.AI.BaseURL = strings.TrimRight(envOrDefault("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta"), "/")
	// 0 leaves the provider call unbounded.
	cfg.AI.Timeout = time.Duration(envOrDefaultInt("TRIP_PROXY_PROVIDER_TIMEOUT", 60)) * time.Second
	cfg.AI.Extract.Model = envOrDefault("TRIP_PROXY_EXTRACT_MODEL", "gemini-1.5-pro")
	cfg.AI.Extract.Temperature = envOrDefaultFloat32("TRIP_PROXY_EXTRACT_TEMPERATURE", 0.2)
	cfg.AI.Plan.Model = envOrDefault("TRIP_PROXY_PLAN_MODEL", "gemini-2.5-flash")
	cfg.AI.Plan.Temperature = envOrDefaultFloat32("TRIP_PROXY_PLAN_TEMPERATURE", 0.5)
	cfg.AI.Plan.RejectDuplicateLocations = envOrDefaultBool("TRIP_PROXY_PLAN_REJECT_DUPLICATES", false)

	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")

	cfg.Ledger.RetentionDays = envOrDefaultInt("TRIP_PROXY_LEDGER_RETENTION_DAYS", 30)
	cfg.Ledger.PruneSchedule = envOrDefault("TRIP_PROXY_LEDGER_PRUNE_SCHEDULE", "0 3 * * *")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("TRIP_PROXY_HTTP_ADDR is required")
	}
	if c.AI.BaseURL == "" {
		return fmt.Errorf("GEMINI_API_URL must not be empty")
	}
	if c.AI.Timeout < 0 {
		return fmt.Errorf("TRIP_PROXY_PROVIDER_TIMEOUT must not be negative")
	}
	if err := validTemperature("TRIP_PROXY_EXTRACT_TEMPERATURE", c.AI.Extract.Temperature); err != nil {
		return err
	}
	if err := validTemperature("TRIP_PROXY_PLAN_TEMPERATURE", c.AI.Plan.Temperature); err != nil {
		return err
	}
	if c.AI.Extract.Model == "" || c.AI.Plan.Model == "" {
		return fmt.Errorf("variant models must not be empty")
	}
	if c.Ledger.RetentionDays <= 0 {
		return fmt.Errorf("TRIP_PROXY_LEDGER_RETENTION_DAYS must be positive")
	}
	return nil
}

func validTemperature(key string, t float32) error {
	if t < 0 || t > 2 {
		return fmt.Errorf("%s must be within [0, 2], got %v", key, t)
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, def)
	}
	return def
}

func envOrDefaultFloat32(key string, def float32) float32 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(n)
		}
		log.Printf("Warning: Invalid number for %s, using default: %v", key, def)
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
