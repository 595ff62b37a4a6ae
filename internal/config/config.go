// Package config loads process configuration the way the original service
// does: godotenv for local .env files, then os.Getenv, panicking via
// mustGetenv on a missing required variable at boot.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Admin HTTP surface (internal/adminapi).
	AdminHTTPAddr        string
	AdminJWTSecret       string
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// Database.
	DatabaseURL    string
	DatabaseDriver string // "postgres", "mysql", or "sqlserver"

	// Initial values for the rebindable RuntimeConfig (see runtime.go).
	TablePrefix       string
	ClockMode         string // "utc", "local", or "named"
	ClockZone         string // only used when ClockMode == "named"
	WorkerName        string
	WorkerReadAhead   int
	WorkerMinPriority *int
	WorkerMaxPriority *int
	WorkerQueues      []string
	WorkerMaxRunTimeS int // seconds
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AdminHTTPAddr:        getenv("ADMIN_HTTP_ADDR", ":8081"),
		AdminJWTSecret:       mustGetenv("ADMIN_JWT_SECRET"),
		CORSAllowCredentials: getenv("CORS_ALLOW_CREDENTIALS", "false") == "true",

		DatabaseURL:    mustGetenv("DATABASE_URL"),
		DatabaseDriver: getenv("DATABASE_DRIVER", "postgres"),

		TablePrefix:       getenv("JOBS_TABLE_PREFIX", ""),
		ClockMode:         getenv("CLOCK_MODE", "utc"),
		ClockZone:         getenv("CLOCK_ZONE", ""),
		WorkerName:        getenv("WORKER_NAME", "worker"),
		WorkerReadAhead:   getenvInt("WORKER_READ_AHEAD", 5),
		WorkerMaxRunTimeS: getenvInt("WORKER_MAX_RUN_TIME_SECONDS", 4*60*60),
	}

	origins := strings.Split(getenv("CORS_ALLOWED_ORIGINS", ""), ",")
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if v := getenv("WORKER_MIN_PRIORITY", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.WorkerMinPriority = &n
		}
	}
	if v := getenv("WORKER_MAX_PRIORITY", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.WorkerMaxPriority = &n
		}
	}

	queues := strings.Split(getenv("WORKER_QUEUES", ""), ",")
	for _, q := range queues {
		q = strings.TrimSpace(q)
		if q != "" {
			cfg.WorkerQueues = append(cfg.WorkerQueues, q)
		}
	}

	return cfg, nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func mustGetenv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		panic("missing env: " + key)
	}
	return v
}
