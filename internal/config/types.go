package config

import "time"

// ThesaurusKind selects where vocabulary synonyms come from.
type ThesaurusKind string

const (
	ThesaurusNone   ThesaurusKind = "none"
	ThesaurusStatic ThesaurusKind = "static"
	ThesaurusLLM    ThesaurusKind = "llm"
)

// Config is the weatherbot configuration, corresponding to weatherbot.yaml.
type Config struct {
	GeocodeURL   string        `yaml:"geocode_url" koanf:"geocode_url"`
	ForecastURL  string        `yaml:"forecast_url" koanf:"forecast_url"`
	HTTPTimeout  time.Duration `yaml:"http_timeout" koanf:"http_timeout"`
	ForecastDays int           `yaml:"forecast_days" koanf:"forecast_days"`
	CacheTTL     time.Duration `yaml:"cache_ttl" koanf:"cache_ttl"`
	RedisURL     string        `yaml:"redis_url,omitempty" koanf:"redis_url"`

	GazetteerPath      string   `yaml:"gazetteer_path" koanf:"gazetteer_path"`
	GazetteerLimit     int      `yaml:"gazetteer_limit" koanf:"gazetteer_limit"`
	GazetteerCountries []string `yaml:"gazetteer_countries" koanf:"gazetteer_countries"`
	GazetteerMinLength int      `yaml:"gazetteer_min_length" koanf:"gazetteer_min_length"`

	SpellMaxDistance int           `yaml:"spell_max_distance" koanf:"spell_max_distance"`
	Thesaurus        ThesaurusKind `yaml:"thesaurus" koanf:"thesaurus"`
	LLMProvider      string        `yaml:"llm_provider" koanf:"llm_provider"`
	LLMModel         string        `yaml:"llm_model" koanf:"llm_model"`
	LLMBaseURL       string        `yaml:"llm_base_url" koanf:"llm_base_url"`

	LogLevel  string `yaml:"log_level" koanf:"log_level"`
	LogFormat string `yaml:"log_format" koanf:"log_format"`
	DebugLog  string `yaml:"debug_log" koanf:"debug_log"`

	ListenAddr    string   `yaml:"listen_addr" koanf:"listen_addr"`
	CORSOrigins   []string `yaml:"cors_origins" koanf:"cors_origins"`
	TelegramToken string   `yaml:"telegram_token,omitempty" koanf:"telegram_token"`
}
