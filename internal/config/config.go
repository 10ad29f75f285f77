// Package config reads the library's environment defaults: simulation
// iteration counts, worker bounds and the base RNG seed. A .env file in the
// working directory is honored when present.
package config

import (
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the inference defaults.
type Config struct {
	Iterations int   // default simulation count per run
	Workers    int   // parallel simulation workers
	Seed       int64 // base RNG seed; 0 means draw one per run
}

const defaultIterations = 500

// Load reads configuration from the environment, falling back to library
// defaults. A missing .env file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Iterations: getEnvIntOrDefault("GOSEG_ITERATIONS", defaultIterations),
		Workers:    getEnvIntOrDefault("GOSEG_WORKERS", runtime.NumCPU()),
		Seed:       getEnvInt64OrDefault("GOSEG_SEED", 0),
	}
}

func getEnvIntOrDefault(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvInt64OrDefault(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}
