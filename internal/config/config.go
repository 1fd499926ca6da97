package config

import (
	"os"
	"strings"
)

const (
	defaultListenAddr = ":8080"
	defaultDatabase   = "marketconnect.db"
)

type Config struct {
	AppEnv      string
	DatabaseURL string
	ListenAddr  string
	LogSQL      bool
}

func Load() *Config {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}

	return &Config{
		AppEnv:      strings.ToLower(appEnv),
		DatabaseURL: getEnv("DATABASE_URL", defaultDatabase),
		ListenAddr:  getEnv("LISTEN_ADDR", defaultListenAddr),
		LogSQL:      parseBoolEnv("LOG_SQL", false),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
