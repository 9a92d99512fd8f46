package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort               = "3000"
	defaultTimezone           = "Europe/Minsk"
	defaultBookingTopic       = "booking_created"
	defaultRateLimitPerMinute = 100
)

type Config struct {
	TelegramToken      string
	AdminChatID        int64
	DBDSN              string
	Environment        string
	Port               string
	LogFile            string
	Location           *time.Location
	AllowedOrigins     []string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	KafkaBrokers       []string
	KafkaBookingTopic  string
	SessionIdleTimeout time.Duration
	RateLimitPerMinute int
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	}

	cfg := &Config{
		DBDSN:             os.Getenv("DB_DSN"),
		TelegramToken:     os.Getenv("TELEGRAM_TOKEN"),
		Environment:       os.Getenv("ENV"),
		Port:              os.Getenv("PORT"),
		LogFile:           os.Getenv("LOG_FILE"),
		AllowedOrigins:    splitList(os.Getenv("ALLOWED_ORIGINS")),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaBookingTopic: os.Getenv("KAFKA_BOOKING_TOPIC"),
	}

	if cfg.DBDSN == "" {
		cfg.DBDSN = os.Getenv("DATABASE_URL")
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.KafkaBookingTopic == "" {
		cfg.KafkaBookingTopic = defaultBookingTopic
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	if raw := os.Getenv("TELEGRAM_ADMIN_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ADMIN_CHAT_ID %q: %w", raw, err)
		}
		cfg.AdminChatID = id
	}

	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}
	cfg.Location = loc

	if raw := os.Getenv("REDIS_DB"); raw != "" {
		db, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", raw, err)
		}
		cfg.RedisDB = db
	}

	if raw := os.Getenv("SESSION_IDLE_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_IDLE_TIMEOUT %q: %w", raw, err)
		}
		cfg.SessionIdleTimeout = d
	}

	// 0 отключает ограничение
	cfg.RateLimitPerMinute = defaultRateLimitPerMinute
	if raw := os.Getenv("RATE_LIMIT_PER_MINUTE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE %q", raw)
		}
		cfg.RateLimitPerMinute = n
	}

	return cfg, nil
}

// BotEnabled бот запускается только при заданных токене и чате администратора
func (c *Config) BotEnabled() bool {
	return c.TelegramToken != "" && c.AdminChatID != 0
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
