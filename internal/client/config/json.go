package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/avesnin/inkpress-cli/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Timeouts are
// given in whole seconds; values are copied into the runtime Config after
// parsing. Zero/absent fields leave the current Config value in place.
type JsonConfig struct {
	APIBaseURL      string `json:"api_base_url"`
	DatabaseDSN     string `json:"database_dsn"`
	RequestTimeoutS int    `json:"request_timeout_s"`
}

// parseJson overlays Config with values from a JSON file whose path comes
// from the -c/-config flags. No flag, no overlay. Read or unmarshal errors
// panic; this runs once at startup where a bad config file should be loud.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.RequestTimeoutS > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutS) * time.Second
	}
}
