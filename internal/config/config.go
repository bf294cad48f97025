// Package config defines service configuration structures and loading hooks.
package config

import (
	"runtime"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory submission queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ranking ingest workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the submission deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxRankingLimit caps GET /rankings?limit.
	MaxRankingLimit int `koanf:"max_ranking_limit"`

	// MaxBatchSize caps the slot count of POST /convert/batch.
	MaxBatchSize int `koanf:"max_batch_size"`

	// AltitudeThresholdM is the elevation in meters below which no
	// correction applies.
	AltitudeThresholdM float64 `koanf:"altitude_threshold_m"`

	// AltitudeFactors overrides the per-stroke correction factors,
	// keyed by stroke name.
	AltitudeFactors map[string]float64 `koanf:"altitude_factors"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		QueueSize:          10_000,
		WorkerCount:        runtime.NumCPU() * 2,
		DedupeSize:         50_000,
		MaxRankingLimit:    100,
		MaxBatchSize:       500,
		AltitudeThresholdM: 1000,
	}
}
