// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
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

	// CatalogPath points at the course catalog CSV loaded on startup.
	CatalogPath string `koanf:"catalog_path"`

	// TopK is the default number of recommendations returned per request.
	TopK int `koanf:"top_k"`

	// MaxLimit caps the per-request limit override.
	MaxLimit int `koanf:"max_limit"`

	// SimilarityWeight scales the lexical cosine component of the final score.
	SimilarityWeight float64 `koanf:"similarity_weight"`

	// CategoryWeight scales the exact-category-match component of the final score.
	CategoryWeight float64 `koanf:"category_weight"`

	// FeedbackCap bounds the per-course feedback adjustment to [-cap, +cap].
	FeedbackCap float64 `koanf:"feedback_cap"`

	// FeedbackCategoryStep is the per-rating increment for category-level feedback.
	FeedbackCategoryStep float64 `koanf:"feedback_category_step"`

	// ShortMaxWeeks is the inclusive upper bound of the Short duration bucket.
	ShortMaxWeeks int `koanf:"short_max_weeks"`

	// FeedbackQueueSize bounds the in-memory feedback event queue.
	FeedbackQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of feedback ingestion workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the feedback event deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:             "info",
		Addr:                 ":8080",
		CatalogPath:          "data/courses.csv",
		TopK:                 10,
		MaxLimit:             50,
		SimilarityWeight:     0.7,
		CategoryWeight:       0.3,
		FeedbackCap:          0.2,
		FeedbackCategoryStep: 0.05,
		ShortMaxWeeks:        6,
		FeedbackQueueSize:    10_000,
		WorkerCount:          runtime.NumCPU() * 2,
		DedupeSize:           100_000,
	}
	return c
}
