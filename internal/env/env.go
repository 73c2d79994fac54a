package env

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type AppEnv string

const (
	EnvDevelopment AppEnv = "development"
	EnvProduction  AppEnv = "production"
)

// Init loads .env (if any) into the process environment. Existing variables win.
func Init(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		slog.Debug("no .env file found")
		return
	}
	slog.Debug("environment variables loaded")
}

func Lookup(key string) (string, bool) {
	val, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(val) == "" {
		return "", false
	}
	return strings.TrimSpace(val), true
}

func GetString(key, fallback string) string {
	if val, ok := Lookup(key); ok {
		return val
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if val, ok := Lookup(key); ok {
		i, err := strconv.Atoi(val)
		if err != nil {
			slog.Warn("env must be integer, using fallback", "key", key, "value", val, "fallback", fallback)
			return fallback
		}
		return i
	}
	return fallback
}

func GetBool(key string, fallback bool) bool {
	if val, ok := Lookup(key); ok {
		b, err := strconv.ParseBool(val)
		if err != nil {
			slog.Warn("env must be boolean, using fallback", "key", key, "value", val, "fallback", fallback)
			return fallback
		}
		return b
	}
	return fallback
}
