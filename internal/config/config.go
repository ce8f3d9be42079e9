package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override config keys:
// WEATHERBOT_HTTP_TIMEOUT -> http_timeout.
const EnvPrefix = "WEATHERBOT_"

// Load reads .env if present, then the YAML file at path, then
// WEATHERBOT_* environment overrides, on top of DefaultConfig.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// listKeys are the keys whose environment value is a comma-separated list:
// WEATHERBOT_GAZETTEER_COUNTRIES=FR,BE.
var listKeys = map[string]bool{
	"gazetteer_countries": true,
	"cors_origins":        true,
}

func envValue(name, value string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	if !listKeys[key] {
		return key, value
	}
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var (
	validThesauri = map[ThesaurusKind]bool{
		ThesaurusNone:   true,
		ThesaurusStatic: true,
		ThesaurusLLM:    true,
	}
	validLevels  = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true}
	validFormats = map[string]bool{"console": true, "json": true}
)

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.GeocodeURL == "" || c.ForecastURL == "" {
		return fmt.Errorf("geocode_url and forecast_url are required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}
	if c.ForecastDays < 1 || c.ForecastDays > 16 {
		return fmt.Errorf("forecast_days must be between 1 and 16")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must be non-negative")
	}
	if c.RedisURL != "" && !strings.HasPrefix(c.RedisURL, "redis://") && !strings.HasPrefix(c.RedisURL, "rediss://") {
		return fmt.Errorf("redis_url must be a redis:// or rediss:// URL")
	}
	if c.GazetteerLimit <= 0 {
		return fmt.Errorf("gazetteer_limit must be positive")
	}
	if c.GazetteerMinLength < 0 {
		return fmt.Errorf("gazetteer_min_length must be non-negative")
	}
	if c.SpellMaxDistance < 0 {
		return fmt.Errorf("spell_max_distance must be non-negative")
	}
	if !validThesauri[c.Thesaurus] {
		return fmt.Errorf("invalid thesaurus %q: must be one of none, static, llm", c.Thesaurus)
	}
	if c.Thesaurus == ThesaurusLLM && c.LLMProvider == "" {
		return fmt.Errorf("llm_provider is required when thesaurus is llm")
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if !validFormats[c.LogFormat] {
		return fmt.Errorf("invalid log_format %q: must be console or json", c.LogFormat)
	}
	return nil
}
