package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds settings taken from the environment. Project settings left
// empty here fall back to pubspec.yaml, l10n.yaml and then the defaults.
type Config struct {
	ResourceDir string
	ClassName   string
	LookupFile  string
	MainLocale  string
	WorkerCount int
	LogLevel    string
	LogFormat   string
}

// Load reads .env from the working directory, if any, then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		ResourceDir: getEnv("INTL_RESOURCE_DIR", ""),
		ClassName:   getEnv("INTL_CLASS_NAME", ""),
		LookupFile:  getEnv("INTL_LOOKUP_FILE", ""),
		MainLocale:  getEnv("INTL_MAIN_LOCALE", ""),
		WorkerCount: getEnvInt("WORKER_COUNT", 8),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "console"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
