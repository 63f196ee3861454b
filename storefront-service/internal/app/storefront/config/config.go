package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config содержит все настройки Storefront Service (BFF витрины)
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Redis   RedisConfig
	Session SessionConfig
	Kafka   KafkaConfig
	JWT     JWTConfig
	CORS    CORSConfig
	Health  HealthConfig
}

type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8080)
}

// BackendConfig - внешний REST API каталога, отзывов и пользователей
type BackendConfig struct {
	URL string
	// Timeout 0 означает отсутствие таймаута: зависший запрос блокирует только свой flow
	Timeout time.Duration
}

// RedisConfig - хранилище сессий
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SessionConfig struct {
	TTL time.Duration // Скользящий TTL записи сессии
}

// KafkaConfig - пустой список брокеров отключает отправку событий
type KafkaConfig struct {
	Brokers []string
	Topic   string // Топик для событий REVIEW_SUBMITTED, PRODUCT_SAVED, PRODUCT_DELETED
}

type JWTConfig struct {
	Secret   string        // Ключ подписи токена сессии, выдаваемого браузеру
	TokenTTL time.Duration // Жёсткий предел жизни токена поверх скользящего TTL
}

type CORSConfig struct {
	AllowedOrigins []string
}

type HealthConfig struct {
	Schedule string // cron-выражение для проверки доступности backend
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	timeoutSec, err := strconv.Atoi(getEnv("BACKEND_TIMEOUT_SEC", "0"))
	if err != nil || timeoutSec < 0 {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT_SEC value: %q", os.Getenv("BACKEND_TIMEOUT_SEC"))
	}

	ttlMin, err := strconv.Atoi(getEnv("SESSION_TTL_MIN", "30"))
	if err != nil || ttlMin <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL_MIN value: %q", os.Getenv("SESSION_TTL_MIN"))
	}

	tokenHours, err := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))
	if err != nil || tokenHours < 0 {
		return nil, fmt.Errorf("invalid JWT_TTL_HOURS value: %q", os.Getenv("JWT_TTL_HOURS"))
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Backend: BackendConfig{
			URL:     strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:3000"), "/"),
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Session: SessionConfig{
			TTL: time.Duration(ttlMin) * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC", "storefront_events"),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
			TokenTTL: time.Duration(tokenHours) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(lookupEnv("CORS_ORIGINS", "http://localhost:5173")),
		},
		Health: HealthConfig{
			Schedule: getEnv("HEALTH_CHECK_SCHEDULE", "@every 1m"),
		},
	}, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// lookupEnv в отличие от getEnv сохраняет явно заданное пустое значение
func lookupEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

// splitList разбирает список через запятую, пропуская пустые элементы
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
