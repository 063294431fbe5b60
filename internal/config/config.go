package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	BackendURL    string
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	HTTPPort      string

	JWTSecret       string
	TrainerUsername string
	TrainerPassword string

	DefinitionCacheTTL time.Duration
}

func Load() *Config {
	return &Config{
		BackendURL:         getEnv("BACKEND_URL", "http://localhost:3000"),
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getEnv("MONGO_DATABASE", "evaluations"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		TrainerUsername:    getEnv("TRAINER_USERNAME", "trainer"),
		TrainerPassword:    getEnv("TRAINER_PASSWORD", "trainer123"),
		DefinitionCacheTTL: getDurationEnv("DEFINITION_CACHE_TTL_SECONDS", 300) * time.Second,
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal int) time.Duration {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(defaultVal)
}
