package config

import (
	"os"
	"time"
)

// Config 应用配置
type Config struct {
	Port            string
	Backend         string
	WatsonURL       string
	WatsonModelID   string
	WatsonTimeout   time.Duration
	OpenRouterKey   string
	OpenRouterModel string
	DatabaseURL     string
	RedisURL        string
	CacheDir        string
	CacheTTL        time.Duration
	CleanInterval   time.Duration
	StaticDir       string
	LogLevel        string
	Environment     string
}

// Load 从环境变量加载配置
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "5000"),
		Backend:         getEnv("EMOTION_BACKEND", "watson"),
		WatsonURL:       getEnv("WATSON_URL", ""),
		WatsonModelID:   getEnv("WATSON_MODEL_ID", ""),
		WatsonTimeout:   getDuration("WATSON_TIMEOUT", 10*time.Second),
		OpenRouterKey:   getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterModel: getEnv("OPENROUTER_MODEL", ""),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		CacheDir:        getEnv("CACHE_DIR", ""),
		CacheTTL:        getDuration("CACHE_TTL", 24*time.Hour),
		CleanInterval:   getDuration("CACHE_CLEAN_INTERVAL", time.Hour),
		StaticDir:       getEnv("STATIC_DIR", "web/static"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Environment:     getEnv("ENVIRONMENT", "production"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration 解析 time.ParseDuration 格式，非法值退回默认
func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return d
}
