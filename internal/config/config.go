package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr          string
	LogLevel          string
	LogPretty         bool
	GinMode           string
	WSAllowAllOrigins bool
	HistoryLimit      int
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Load reads the environment. Values from a .env file in the working
// directory fill in variables that are not already set.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the process environment only.
func FromEnv() Config {
	return Config{
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogPretty:         getenvBool("LOG_PRETTY", true),
		GinMode:           getenv("GIN_MODE", "release"),
		WSAllowAllOrigins: getenvBool("WS_ALLOW_ALL_ORIGINS", true),
		HistoryLimit:      getenvInt("HISTORY_LIMIT", 50),
	}
}
