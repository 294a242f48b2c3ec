package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	AdminID int64  `yaml:"admin_id" envconfig:"TELEGRAM_ADMIN_ID"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	// UpdateCallback identifies callback updates for rate limit exclusions.
	UpdateCallback = "callback"
	// UpdateMessage identifies message updates for rate limit exclusions.
	UpdateMessage = "message"
)

// RateLimitConfig holds settings for the transport-level rate limiter.
// ExcludeUpdates accepts update types to bypass limiting:
// - "callback": Telegram callback button presses
// - "message": standard text messages
type RateLimitConfig struct {
	IntervalMS     int      `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
	ExcludeUpdates []string `yaml:"exclude_updates" envconfig:"RATE_LIMIT_EXCLUDE_UPDATES"`
}

// AIConfig describes the text-completion endpoint and its retry policy.
type AIConfig struct {
	Endpoint       string  `yaml:"endpoint" envconfig:"AI_ENDPOINT"`
	TimeoutSeconds int     `yaml:"timeout_seconds" envconfig:"AI_TIMEOUT_SECONDS"`
	MaxRetries     int     `yaml:"max_retries" envconfig:"AI_MAX_RETRIES"`
	BackoffFactor  float64 `yaml:"backoff_factor" envconfig:"AI_BACKOFF_FACTOR"`
}

// WeatherConfig describes the geocoding and forecast providers.
type WeatherConfig struct {
	GeocodeEndpoint  string `yaml:"geocode_endpoint" envconfig:"WEATHER_GEOCODE_ENDPOINT"`
	FallbackEndpoint string `yaml:"fallback_endpoint" envconfig:"WEATHER_FALLBACK_ENDPOINT"`
	ForecastEndpoint string `yaml:"forecast_endpoint" envconfig:"WEATHER_FORECAST_ENDPOINT"`
	TimeoutSeconds   int    `yaml:"timeout_seconds" envconfig:"WEATHER_TIMEOUT_SECONDS"`
}

// LookupConfig aggregates settings for the external lookup gateway and
// the dialogue-level constraints applied before any lookup is issued.
type LookupConfig struct {
	AI      AIConfig      `yaml:"ai"`
	Weather WeatherConfig `yaml:"weather"`

	CooldownSeconds   int `yaml:"cooldown_seconds" envconfig:"LOOKUP_COOLDOWN_SECONDS"`
	MaxCityLength     int `yaml:"max_city_length" envconfig:"MAX_CITY_LENGTH"`
	MaxQuestionLength int `yaml:"max_question_length" envconfig:"MAX_QUESTION_LENGTH"`
}

// CacheConfig configures the sqlite-backed lookup response cache.
type CacheConfig struct {
	Path                 string `yaml:"path" envconfig:"CACHE_PATH"`
	TTLMinutes           int    `yaml:"ttl_minutes" envconfig:"CACHE_TTL_MINUTES"`
	PurgeIntervalMinutes int    `yaml:"purge_interval_minutes" envconfig:"CACHE_PURGE_INTERVAL_MINUTES"`
}

// Config aggregates the full bot configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Lookup    LookupConfig    `yaml:"lookup"`
	Cache     CacheConfig     `yaml:"cache"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	allowed := map[string]struct{}{
		UpdateCallback: {},
		UpdateMessage:  {},
	}
	for i, v := range cfg.RateLimit.ExcludeUpdates {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := allowed[key]; !ok {
			return fmt.Errorf("invalid rate_limit.exclude_updates value %q; allowed: callback, message", v)
		}
		cfg.RateLimit.ExcludeUpdates[i] = key
	}

	normalizeLookup(&cfg.Lookup)
	normalizeCache(&cfg.Cache)
	return nil
}

func normalizeLookup(lc *LookupConfig) {
	if lc.AI.Endpoint == "" {
		lc.AI.Endpoint = "https://betadash-api-swordslush-production.up.railway.app/Deepseek-R1"
	}
	if lc.AI.TimeoutSeconds <= 0 {
		lc.AI.TimeoutSeconds = 15
	}
	if lc.AI.MaxRetries < 0 {
		lc.AI.MaxRetries = 0
	}
	if lc.AI.MaxRetries == 0 {
		lc.AI.MaxRetries = 4 // 5 attempts total
	}
	if lc.AI.BackoffFactor <= 0 {
		lc.AI.BackoffFactor = 0.2
	}
	if lc.Weather.GeocodeEndpoint == "" {
		lc.Weather.GeocodeEndpoint = "https://geocoding-api.open-meteo.com/v1/search"
	}
	if lc.Weather.FallbackEndpoint == "" {
		lc.Weather.FallbackEndpoint = "https://nominatim.openstreetmap.org/search"
	}
	if lc.Weather.ForecastEndpoint == "" {
		lc.Weather.ForecastEndpoint = "https://api.open-meteo.com/v1/forecast"
	}
	if lc.Weather.TimeoutSeconds <= 0 {
		lc.Weather.TimeoutSeconds = 10
	}
	if lc.CooldownSeconds <= 0 {
		lc.CooldownSeconds = 5
	}
	if lc.MaxCityLength <= 0 {
		lc.MaxCityLength = 50
	}
	if lc.MaxQuestionLength <= 0 {
		lc.MaxQuestionLength = 200
	}
}

func normalizeCache(cc *CacheConfig) {
	if cc.Path == "" {
		cc.Path = ".cache/aerobot.db"
	}
	if cc.TTLMinutes <= 0 {
		cc.TTLMinutes = 30
	}
	if cc.PurgeIntervalMinutes <= 0 {
		cc.PurgeIntervalMinutes = 10
	}
}

// Timeout returns the completion call timeout as a duration.
func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Timeout returns the per-provider weather call timeout as a duration.
func (c WeatherConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Cooldown returns the per-conversation lookup cooldown as a duration.
func (c LookupConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

// TTL returns the cache row lifetime as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// PurgeInterval returns how often expired cache rows are removed.
func (c CacheConfig) PurgeInterval() time.Duration {
	return time.Duration(c.PurgeIntervalMinutes) * time.Minute
}
