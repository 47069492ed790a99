package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	RedisAddr   string
	JWTSecret   []byte
	Port        string

	// SupportReplyDelay is how long the support bot waits before answering
	// an anonymous chat message.
	SupportReplyDelay time.Duration

	// ChannelQueueSize bounds the per-connection outbound queue. Events are
	// dropped, not blocked on, when the queue is full.
	ChannelQueueSize int

	RequestsPerSecond int
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:       getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=ripple port=5432 sslmode=disable TimeZone=UTC"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:         []byte(os.Getenv("JWT_SECRET")),
		Port:              getEnv("PORT", "8080"),
		SupportReplyDelay: 2 * time.Second,
		ChannelQueueSize:  32,
		RequestsPerSecond: 50,
	}

	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}

	if v := os.Getenv("SUPPORT_REPLY_DELAY_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SUPPORT_REPLY_DELAY_MS: %w", err)
		}
		cfg.SupportReplyDelay = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
		}
		cfg.RequestsPerSecond = rps
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
