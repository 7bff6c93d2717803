package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go-truck-business/internal/shared/connection"
	"go-truck-business/internal/shared/workdate"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   connection.PostgresConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	JWT        JWTConfig
	Attendance AttendanceConfig
}

type AppConfig struct {
	Env         string
	Port        string
	AutoMigrate bool
}

type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Broker string
}

type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

type AttendanceConfig struct {
	Location *time.Location
	// LateAfter is minutes since local midnight; a check-in strictly after it is LATE.
	LateAfter       int
	SummaryCacheTTL time.Duration
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	autoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
	}

	cfg.App = AppConfig{
		Env:         getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "3000"),
		AutoMigrate: autoMigrate,
	}

	cfg.Database = connection.PostgresConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "truck_business"),
		Port:     getEnv("DB_PORT", "5432"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	cfg.Redis = RedisConfig{Addr: getEnv("REDIS_ADDR", "localhost:6379")}
	cfg.Kafka = KafkaConfig{Broker: getEnv("KAFKA_BROKER", "localhost:9092")}

	accessExp, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION: %w", err)
	}
	cfg.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET", ""),
		AccessExpiration: accessExp,
	}

	loc, err := workdate.LoadLocation(getEnv("APP_TIMEZONE", "Asia/Bangkok"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	lateAfter, err := ParseClock(getEnv("ATTENDANCE_LATE_AFTER", "09:15"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_LATE_AFTER: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("SUMMARY_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUMMARY_CACHE_TTL: %w", err)
	}
	cfg.Attendance = AttendanceConfig{
		Location:        loc,
		LateAfter:       lateAfter,
		SummaryCacheTTL: cacheTTL,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.App.Env == "production" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// ParseClock turns "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
