package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the service settings read from the environment.
type Config struct {
	Port       string
	GinMode    string
	AssetsPath string
	LogLevel   string
	MaxTurns   int
}

// Load reads an optional .env file and then the environment. Unset
// variables fall back to defaults; a missing .env file is not an error.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg := Config{
		Port:       getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "release"),
		AssetsPath: getEnv("ASSETS_PATH", "assets"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}

	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return Config{}, fmt.Errorf("GIN_MODE must be debug, release or test, got %q", cfg.GinMode)
	}

	maxTurns, err := getEnvInt("MAX_TURNS", 500)
	if err != nil {
		return Config{}, err
	}
	if maxTurns <= 0 {
		return Config{}, fmt.Errorf("MAX_TURNS must be positive, got %d", maxTurns)
	}
	cfg.MaxTurns = maxTurns

	return cfg, nil
}

// Address is the listen address for the HTTP server.
func (c Config) Address() string {
	return "0.0.0.0:" + c.Port
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}
