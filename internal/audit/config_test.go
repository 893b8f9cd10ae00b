package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"negative tolerance", func(c *Config) { c.PriceTolerance = -0.5 }, true},
		{"zero tolerance ok", func(c *Config) { c.PriceTolerance = 0 }, false},
		{"search score too high", func(c *Config) { c.MinSearchScore = 1.2 }, true},
		{"similarity negative", func(c *Config) { c.MinSimilarity = -0.1 }, true},
		{"zero workers", func(c *Config) { c.ValidateWorkers = 0 }, true},
		{"too many workers", func(c *Config) { c.ValidateWorkers = 128 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ESTAUDIT_PRICE_TOLERANCE", "2.50")
	t.Setenv("ESTAUDIT_VALIDATE_WORKERS", "8")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 2.50, cfg.PriceTolerance)
	assert.Equal(t, 8, cfg.ValidateWorkers)
	// Unset variables keep their defaults.
	assert.Equal(t, 0.3, cfg.MinSearchScore)
}

func TestConfigFromEnvInvalid(t *testing.T) {
	t.Setenv("ESTAUDIT_VALIDATE_WORKERS", "lots")
	_, err := ConfigFromEnv()
	assert.Error(t, err)

	t.Setenv("ESTAUDIT_VALIDATE_WORKERS", "0")
	_, err = ConfigFromEnv()
	assert.Error(t, err, "out-of-range values fail final validation")
}
