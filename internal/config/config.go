package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shenikar/robosoc/internal/models"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// NATS Config (диспетчеризация юнитов)
	NATSURL          string        `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	DispatchSubject  string        `env:"DISPATCH_SUBJECT_BASE" envDefault:"robosoc.dispatch"`
	DispatchTimeout  time.Duration `env:"DISPATCH_TIMEOUT" envDefault:"5s"`
	DispatchContact  string        `env:"DISPATCH_GUARD_CONTACT" envDefault:"radio"`
	DispatchStream   string        `env:"DISPATCH_STREAM" envDefault:"ROBOSOC_DISPATCH"`

	// Detection Config
	ConfThreshold   float64 `env:"DETECTION_CONF_THRESHOLD" envDefault:"0.4"`
	PersonClassID   int     `env:"DETECTION_PERSON_CLASS" envDefault:"0"`
	RestrictedZones []models.RestrictedZone

	// Cache Config
	RecentCacheTTL time.Duration `env:"RECENT_CACHE_TTL" envDefault:"30s"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// defaultZone - зона по умолчанию, если RESTRICTED_ZONES не задана
var defaultZone = models.RestrictedZone{
	{X: 100, Y: 100}, {X: 300, Y: 100}, {X: 300, Y: 300}, {X: 100, Y: 300},
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getEnvAsInt("REDIS_DB", 0),
		NATSURL:         getEnv("NATS_URL", "nats://localhost:4222"),
		DispatchSubject: getEnv("DISPATCH_SUBJECT_BASE", "robosoc.dispatch"),
		DispatchTimeout: getEnvAsDuration("DISPATCH_TIMEOUT", 5*time.Second),
		DispatchContact: getEnv("DISPATCH_GUARD_CONTACT", "radio"),
		DispatchStream:  getEnv("DISPATCH_STREAM", "ROBOSOC_DISPATCH"),
		ConfThreshold:   getEnvAsFloat("DETECTION_CONF_THRESHOLD", 0.4),
		PersonClassID:   getEnvAsInt("DETECTION_PERSON_CLASS", 0),
		RecentCacheTTL:  getEnvAsDuration("RECENT_CACHE_TTL", 30*time.Second),
	}

	zones, err := parseZones(os.Getenv("RESTRICTED_ZONES"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESTRICTED_ZONES: %w", err)
	}
	cfg.RestrictedZones = zones

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// parseZones разбирает зоны из JSON вида [[[100,100],[300,100],...], ...].
// Каждая зона должна содержать не менее 3 вершин.
func parseZones(raw string) ([]models.RestrictedZone, error) {
	if raw == "" {
		return []models.RestrictedZone{defaultZone}, nil
	}

	var parsed [][][2]int
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse zones JSON: %w", err)
	}

	zones := make([]models.RestrictedZone, 0, len(parsed))
	for i, poly := range parsed {
		if len(poly) < 3 {
			return nil, fmt.Errorf("zone %d has %d vertices, at least 3 required", i, len(poly))
		}
		zone := make(models.RestrictedZone, 0, len(poly))
		for _, v := range poly {
			zone = append(zone, models.Point{X: v[0], Y: v[1]})
		}
		zones = append(zones, zone)
	}
	return zones, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
