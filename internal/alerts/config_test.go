package alerts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeThresholdFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alerts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3, cfg.HorizonDays)
	assert.Equal(t, 30, cfg.FallbackLeadDays)
	assert.Equal(t, 75, cfg.CriticalPercentile)
	assert.Equal(t, 5, cfg.MinSample)
	assert.Equal(t, 70.0, cfg.LowPerformanceRate)

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := writeThresholdFile(t, "horizon_days: 7\nmin_sample: 10\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// Overridden fields
	assert.Equal(t, 7, cfg.HorizonDays)
	assert.Equal(t, 10, cfg.MinSample)

	// Untouched fields keep defaults
	assert.Equal(t, 30, cfg.FallbackLeadDays)
	assert.Equal(t, 75, cfg.CriticalPercentile)
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := writeThresholdFile(t, "horizon_dayz: 7\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"negative horizon", func(c *Config) { c.HorizonDays = -1 }, true},
		{"negative lead", func(c *Config) { c.FallbackLeadDays = -5 }, true},
		{"zero percentile", func(c *Config) { c.CriticalPercentile = 0 }, true},
		{"percentile above 100", func(c *Config) { c.CriticalPercentile = 101 }, true},
		{"zero min sample", func(c *Config) { c.MinSample = 0 }, true},
		{"rate above 100", func(c *Config) { c.LowPerformanceRate = 150 }, true},
		{"zero horizon allowed", func(c *Config) { c.HorizonDays = 0 }, false},
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

func TestConfigHashStable(t *testing.T) {
	a, err := DefaultConfig().Hash()
	require.NoError(t, err)

	b, err := DefaultConfig().Hash()
	require.NoError(t, err)

	assert.Equal(t, a, b)

	changed := DefaultConfig()
	changed.HorizonDays = 5
	c, err := changed.Hash()
	require.NoError(t, err)

	assert.NotEqual(t, a, c)
}
