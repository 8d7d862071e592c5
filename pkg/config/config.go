// Package config loads runtime settings from a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/df07/go-whitted-raytracer/pkg/output"
)

// Config holds the process-wide settings shared by the CLI and web server
type Config struct {
	Width       int
	Height      int
	Workers     int // 0 = use CPU count
	Supersample int // Render at this multiple of the output size, then downscale
	Port        int
	OutputDir   string
	ScenesDir   string
	S3          output.S3Config
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		Width:       800,
		Height:      600,
		Workers:     0,
		Supersample: 1,
		Port:        8080,
		OutputDir:   "output",
		ScenesDir:   "scenes",
	}
}

// intSetting describes a numeric environment variable and its allowed range
type intSetting struct {
	key      string
	target   *int
	min, max int
}

// Load reads <rootDir>/.env, if present, and then the environment. Values
// already set in the environment win over the .env file.
func Load(rootDir string) (Config, error) {
	if err := godotenv.Load(filepath.Join(rootDir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := Default()

	settings := []intSetting{
		{"RT_WIDTH", &cfg.Width, 1, 8192},
		{"RT_HEIGHT", &cfg.Height, 1, 8192},
		{"RT_WORKERS", &cfg.Workers, 0, 1024},
		{"RT_SUPERSAMPLE", &cfg.Supersample, 1, 8},
		{"RT_PORT", &cfg.Port, 1, 65535},
	}
	for _, setting := range settings {
		if err := parseIntEnv(setting); err != nil {
			return Config{}, err
		}
	}

	cfg.OutputDir = getEnv("RT_OUTPUT_DIR", cfg.OutputDir)
	cfg.ScenesDir = getEnv("RT_SCENES_DIR", cfg.ScenesDir)

	cfg.S3 = output.S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getEnv("S3_REGION", "us-east-1"),
		Bucket:    os.Getenv("S3_BUCKET"),
		Prefix:    os.Getenv("S3_PREFIX"),
	}

	return cfg, nil
}

// getEnv returns an environment variable with a default value
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// parseIntEnv overwrites the target when the variable is set, validating it
func parseIntEnv(setting intSetting) error {
	value, ok := os.LookupEnv(setting.key)
	if !ok || value == "" {
		return nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s: must be an integer", setting.key)
	}
	if parsed < setting.min || parsed > setting.max {
		return fmt.Errorf("invalid %s: must be between %d and %d", setting.key, setting.min, setting.max)
	}

	*setting.target = parsed
	return nil
}
