package config

import (
	"encoding/json"
	"os"

	"skycast/models"
)

// Config represents the application configuration.
type Config struct {
	// Port the API server listens on.
	Port int `json:"port"`

	// Upstream endpoints. Empty values fall back to the public defaults.
	GeocodeBaseURL   string `json:"geocodeBaseUrl"`
	ForecastBaseURL  string `json:"forecastBaseUrl"`
	GeolocateBaseURL string `json:"geolocateBaseUrl"`

	// Suggestion debounce delay in milliseconds.
	DebounceMillis int `json:"debounceMillis"`

	// Forecast cache TTL in minutes; 0 disables the cache decorator.
	CacheTTLMinutes int `json:"cacheTtlMinutes"`

	// Outbound rate limiting.
	RequestsPerSecond float64 `json:"requestsPerSecond"`
	Burst             int     `json:"burst"`

	// Path of the sqlite file holding the last resolution; empty disables
	// persistence.
	DatabasePath string `json:"databasePath"`

	// Initial unit preference ("metric" or "imperial").
	Units string `json:"units"`

	// Auto refresh interval in minutes; 0 disables auto refresh.
	RefreshMinutes int `json:"refreshMinutes"`
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := DefaultConfig()
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig creates a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:              8080,
		DebounceMillis:    250,
		CacheTTLMinutes:   10,
		RequestsPerSecond: 2.0,
		Burst:             5,
		DatabasePath:      "skycast.db",
		Units:             models.UnitsMetric,
		RefreshMinutes:    15,
	}
}
