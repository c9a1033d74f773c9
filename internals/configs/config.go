package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	GoogleMapsAPIKey string
)

/* =======================
   ENV LOADER
======================= */

func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️  No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	GoogleMapsAPIKey = GetEnv("GOOGLE_MAPS_API_KEY")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
	if GoogleMapsAPIKey == "" {
		log.Println("⚠️  GOOGLE_MAPS_API_KEY is not set, ETAs will use the fallback duration")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}

/* =======================
   ENGINE TUNABLES
======================= */

// ReconcilerInterval: pause between reconciliation cycles.
func ReconcilerInterval() time.Duration {
	return time.Duration(GetEnvInt("RECONCILER_INTERVAL_MINUTES", 30)) * time.Minute
}

// ShiftCloseLookahead: how long before start an OPEN shift is auto-closed.
func ShiftCloseLookahead() time.Duration {
	return time.Duration(GetEnvInt("SHIFT_CLOSE_LOOKAHEAD_HOURS", 4)) * time.Hour
}

// SuspensionDays: suspension length applied per no-show.
func SuspensionDays() int {
	return GetEnvInt("NO_SHOW_SUSPENSION_DAYS", 2)
}

// FallbackTravelMinutes: hop duration when the directions provider fails.
func FallbackTravelMinutes() int {
	return GetEnvInt("FALLBACK_TRAVEL_MINUTES", 10)
}

// DwellMinutes: boarding time added at each stop (disabled by default).
func DwellMinutes() int {
	return GetEnvInt("STOP_DWELL_MINUTES", 0)
}

// DirectionsTimeout: hard deadline per directions request.
func DirectionsTimeout() time.Duration {
	return time.Duration(GetEnvInt("DIRECTIONS_TIMEOUT_SECONDS", 5)) * time.Second
}
