package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognized by the client.
const (
	EnvAPIBaseURL     = "INKPRESS_API_URL"
	EnvDatabaseDSN    = "INKPRESS_DB"
	EnvRequestTimeout = "INKPRESS_TIMEOUT"
)

// parseEnv overlays Config with values from the process environment.
// A .env file in the working directory is loaded first, if present; real
// environment variables win over .env entries (godotenv does not override).
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv(EnvAPIBaseURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvDatabaseDSN); ok && v != "" {
		cfg.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok && v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
}
