// Package config handles configuration for the Inkpress CLI, including
// defaults, environment variables, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API, including any path
//     prefix (e.g. http://localhost:8000/api).
//   - DatabaseDSN: path/DSN of the local SQLite credentials database.
//   - RequestTimeout: upper bound for any single backend request.
type Config struct {
	APIBaseURL     string
	DatabaseDSN    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.DatabaseDSN = "inkpress.db"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config by applying defaults, then overlaying
// values from the environment (including an optional .env file), an
// optional JSON file, and finally command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
