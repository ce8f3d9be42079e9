package config

import (
	"path/filepath"
	"time"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "weatherbot.yaml"

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		GeocodeURL:   "https://geocoding-api.open-meteo.com/v1/search",
		ForecastURL:  "https://api.open-meteo.com/v1/forecast",
		HTTPTimeout:  5 * time.Second,
		ForecastDays: 7,
		CacheTTL:     10 * time.Minute,

		GazetteerLimit:     1000,
		GazetteerCountries: []string{"FR"},
		GazetteerMinLength: 4,

		SpellMaxDistance: 2,
		Thesaurus:        ThesaurusStatic,
		LLMProvider:      "ollama",
		LLMModel:         "llama3.2",

		LogLevel:  "info",
		LogFormat: "console",
		DebugLog:  filepath.Join("bin", "weatherbot.debug.jsonl"),

		ListenAddr:  ":8080",
		CORSOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
	}
}
