package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию сервера и калькулятора
type Config struct {
	Port                 int
	MaxPrincipal         float64
	MaxExtraPayment      float64
	MaxMonths            int
	MaxRate              float64
	IterationCapMultiple int
	OTELEndpoint         string
	OTELServiceName      string
	LogLevel             string
	LogFormat            string
	RedisAddr            string
	CacheTTL             time.Duration
	CacheSize            int
	RateLimit            int
	RateLimitWindow      time.Duration
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:                 getEnvInt("PORT", 8000),
		MaxPrincipal:         getEnvFloat("MAX_PRINCIPAL", 1e9),
		MaxExtraPayment:      getEnvFloat("MAX_EXTRA_PAYMENT", 1e8),
		MaxMonths:            getEnvInt("MAX_MONTHS", 600),
		MaxRate:              getEnvFloat("MAX_RATE", 200),
		IterationCapMultiple: getEnvInt("ITERATION_CAP_MULTIPLE", 2),
		OTELEndpoint:         getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:      getEnvString("OTEL_SERVICE_NAME", "loan-amortization"),
		LogLevel:             getEnvString("LOG_LEVEL", "INFO"),
		LogFormat:            getEnvString("LOG_FORMAT", "text"),
		RedisAddr:            getEnvString("REDIS_ADDR", ""),
		CacheTTL:             getEnvDuration("CACHE_TTL", 10*time.Minute),
		CacheSize:            getEnvInt("CACHE_SIZE", 10000),
		RateLimit:            getEnvInt("RATE_LIMIT", 60),
		RateLimitWindow:      getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// Addr возвращает адрес HTTP сервера
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// CapMultiple возвращает множитель лимита итераций (не меньше 1)
func (c *Config) CapMultiple() int {
	if c == nil || c.IterationCapMultiple < 1 {
		return 2
	}
	return c.IterationCapMultiple
}
