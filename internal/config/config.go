package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/qwstats/ktxstats"
)

const (
	DefaultWorkers   = 4
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Load reads configuration from environment variables and a .env file in the
// working directory. Every key is optional.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, reading from environment variables")
	}

	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}

	rev, err := ktxstats.ParseRevision(getEnv("KTXSTATS_REVISION", string(ktxstats.RevisionCurrent)))
	if err != nil {
		return Config{}, fmt.Errorf("KTXSTATS_REVISION: %w", err)
	}

	workers, err := strconv.Atoi(getEnv("KTXSTATS_WORKERS", strconv.Itoa(DefaultWorkers)))
	if err != nil || workers < 1 {
		return Config{}, fmt.Errorf("KTXSTATS_WORKERS: want a positive integer, got %q", os.Getenv("KTXSTATS_WORKERS"))
	}

	format := getEnv("KTXSTATS_LOG_FORMAT", DefaultLogFormat)
	if format != "text" && format != "json" {
		return Config{}, fmt.Errorf("KTXSTATS_LOG_FORMAT: want text or json, got %q", format)
	}

	cfg := Config{
		Revision: rev,
		Log: LogConfig{
			Level:  getEnv("KTXSTATS_LOG_LEVEL", DefaultLogLevel),
			Format: format,
		},
		MetricsFile: getEnv("KTXSTATS_METRICS_FILE", ""),
		Workers:     workers,
	}
	return cfg, nil
}

// ConfigureLogger applies the log settings to the default charmbracelet
// logger.
func (c LogConfig) ConfigureLogger() error {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	log.SetLevel(level)
	if c.Format == "json" {
		log.SetFormatter(log.JSONFormatter)
	} else {
		log.SetFormatter(log.TextFormatter)
	}
	return nil
}
