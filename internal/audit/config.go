// Package audit is the orchestration facade over the engine: it wires the
// normalizer, rule evaluator, matcher, and validator into the call contracts
// the serving layer uses, and owns the caller-side policies (candidate
// deduplication, batch fan-out) that the core components deliberately leave
// out.
package audit

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds tuning for an audit runner.
type Config struct {
	// PriceTolerance is the matcher's unit-price tolerance in dollars.
	// Default: 1.00.
	PriceTolerance float64

	// MinSearchScore is the minimum token-overlap score for a catalog
	// search hit to be trusted as a code correction. Default: 0.3.
	MinSearchScore float64

	// MinSimilarity is the floor below which a valid code's description is
	// replaced with the catalog's canonical wording. Default: 0.25.
	MinSimilarity float64

	// ValidateWorkers bounds the fan-out of batch validation. Validation is
	// CPU-only, so this defaults to a small fixed number rather than
	// GOMAXPROCS. Default: 4.
	ValidateWorkers int
}

// DefaultConfig returns the runner defaults.
func DefaultConfig() Config {
	return Config{
		PriceTolerance:  1.00,
		MinSearchScore:  0.3,
		MinSimilarity:   0.25,
		ValidateWorkers: 4,
	}
}

// Validate checks if the configuration has valid values.
func (c Config) Validate() error {
	if c.PriceTolerance < 0 {
		return fmt.Errorf("price_tolerance cannot be negative (got %.2f)", c.PriceTolerance)
	}
	if c.MinSearchScore < 0.0 || c.MinSearchScore > 1.0 {
		return fmt.Errorf("min_search_score must be between 0.0 and 1.0 (got %.2f)", c.MinSearchScore)
	}
	if c.MinSimilarity < 0.0 || c.MinSimilarity > 1.0 {
		return fmt.Errorf("min_similarity must be between 0.0 and 1.0 (got %.2f)", c.MinSimilarity)
	}
	if c.ValidateWorkers <= 0 {
		return fmt.Errorf("validate_workers must be positive (got %d)", c.ValidateWorkers)
	}
	if c.ValidateWorkers > 64 {
		return fmt.Errorf("validate_workers too large (got %d, max 64)", c.ValidateWorkers)
	}
	return nil
}

// ConfigFromEnv creates a Config from environment variables, falling back to
// defaults.
//
// Environment variables:
//   - ESTAUDIT_PRICE_TOLERANCE: matcher unit-price tolerance in dollars (default: 1.00)
//   - ESTAUDIT_MIN_SEARCH_SCORE: minimum search score for code correction (default: 0.3)
//   - ESTAUDIT_MIN_SIMILARITY: canonical-wording substitution floor (default: 0.25)
//   - ESTAUDIT_VALIDATE_WORKERS: batch validation fan-out (default: 4)
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if err := parseEnvFloat("ESTAUDIT_PRICE_TOLERANCE", &cfg.PriceTolerance); err != nil {
		return cfg, err
	}
	if err := parseEnvFloat("ESTAUDIT_MIN_SEARCH_SCORE", &cfg.MinSearchScore); err != nil {
		return cfg, err
	}
	if err := parseEnvFloat("ESTAUDIT_MIN_SIMILARITY", &cfg.MinSimilarity); err != nil {
		return cfg, err
	}
	if err := parseEnvInt("ESTAUDIT_VALIDATE_WORKERS", &cfg.ValidateWorkers); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration from environment: %w", err)
	}
	return cfg, nil
}

// parseEnvFloat parses a float64 from an environment variable.
func parseEnvFloat(key string, dest *float64) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvInt parses an int from an environment variable.
func parseEnvInt(key string, dest *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}
