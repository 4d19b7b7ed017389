package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if COURSEREC_CONFIG is set
//  3. env (prefix COURSEREC_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("COURSEREC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: COURSEREC_ADDR, COURSEREC_TOP_K, ...
	// Map env keys like COURSEREC_TOP_K -> top_k (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("COURSEREC_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "courserec_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the engine cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.TopK < 1:
		return fmt.Errorf("%w: top_k must be positive", ErrInvalidConfig)
	case c.MaxLimit < c.TopK:
		return fmt.Errorf("%w: max_limit must be >= top_k", ErrInvalidConfig)
	case c.SimilarityWeight < 0 || c.CategoryWeight < 0:
		return fmt.Errorf("%w: score weights must be non-negative", ErrInvalidConfig)
	case c.SimilarityWeight+c.CategoryWeight == 0:
		return fmt.Errorf("%w: at least one score weight must be positive", ErrInvalidConfig)
	case c.FeedbackCap < 0:
		return fmt.Errorf("%w: feedback_cap must be non-negative", ErrInvalidConfig)
	case c.ShortMaxWeeks < 1:
		return fmt.Errorf("%w: short_max_weeks must be positive", ErrInvalidConfig)
	}
	return nil
}
