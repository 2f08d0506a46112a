package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries the process configuration. Redis and RabbitMQ are optional:
// an empty address leaves the corresponding integration disabled.
type Config struct {
	Port      string
	RedisAddr string
	CacheTTL  time.Duration
	AMQPUrl   string
}

func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		RedisAddr: getEnv("REDIS_ADDR", ""),
		CacheTTL:  time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		AMQPUrl:   getEnv("AMQP_URL", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
