package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	Port       string
	OTel       OTelConfig
	Engine     EngineConfig
	Ranking    ProviderConfig
	Popularity ProviderConfig
	Cache      CacheConfig
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

// EngineConfig carries the generation and selection knobs. The defaults are
// the documented contract: 2-4 word combos, 500-combo output budget, at
// most 1000 input keywords considered.
type EngineConfig struct {
	MinLength        int
	MaxLength        int
	SelectionBudget  int
	MaxInputKeywords int
}

// ProviderConfig points at one external signal service. An empty BaseURL
// disables the provider; the engine then scores with neutral defaults.
type ProviderConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// CacheConfig points at the redis instance backing the 24h provider caches.
// An empty URL disables caching and providers are hit directly.
type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

type ServiceType string

const (
	ServiceTypeServer  ServiceType = "server"
	ServiceTypeAnalyze ServiceType = "analyze"
)

// Load loads configuration from environment variables. In development it
// first tries a service-specific .env file (.env.server, .env.analyze),
// falling back to .env.
func Load(serviceType ServiceType) (Config, error) {
	if getEnv("INSIGHT_ENV", "development") == "development" {
		envFile := fmt.Sprintf(".env.%s", serviceType)
		if err := godotenv.Load(envFile); err != nil {
			_ = godotenv.Load(".env")
		}
	}

	cfg := Config{
		Env:  getEnv("INSIGHT_ENV", "development"),
		Port: getEnv("PORT", "8080"),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "insight"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		Engine: EngineConfig{
			MinLength:        getEnvInt("ENGINE_MIN_LENGTH", 2),
			MaxLength:        getEnvInt("ENGINE_MAX_LENGTH", 4),
			SelectionBudget:  getEnvInt("ENGINE_SELECTION_BUDGET", 500),
			MaxInputKeywords: getEnvInt("ENGINE_MAX_INPUT_KEYWORDS", 1000),
		},
		Ranking: ProviderConfig{
			BaseURL: getEnv("RANKING_API_URL", ""),
			APIKey:  getEnv("RANKING_API_KEY", ""),
			Timeout: getEnvDuration("RANKING_API_TIMEOUT", 15*time.Second),
		},
		Popularity: ProviderConfig{
			BaseURL: getEnv("POPULARITY_API_URL", ""),
			APIKey:  getEnv("POPULARITY_API_KEY", ""),
			Timeout: getEnvDuration("POPULARITY_API_TIMEOUT", 15*time.Second),
		},
		Cache: CacheConfig{
			RedisURL: getEnv("REDIS_URL", ""),
			TTL:      getEnvDuration("SIGNAL_CACHE_TTL", 24*time.Hour),
		},
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c ProviderConfig) Enabled() bool {
	return c.BaseURL != ""
}

func (c CacheConfig) Enabled() bool {
	return c.RedisURL != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
