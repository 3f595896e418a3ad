package config

import "github.com/mauv0809/qwstats/ktxstats"

// Config holds all configuration for the ktxstats command.
type Config struct {
	Revision    ktxstats.Revision
	Log         LogConfig
	MetricsFile string
	Workers     int
}

type LogConfig struct {
	Level  string
	Format string
}
