package alerts

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the engine thresholds. The defaults reproduce the
// behavior procurement staff already rely on; overrides come from an
// optional YAML file loaded at startup.
type Config struct {
	// HorizonDays is the look-ahead window shared by the upcoming and
	// critical classifications.
	HorizonDays int `yaml:"horizon_days" json:"horizon_days"`

	// FallbackLeadDays is added to the order date when neither a promised
	// date nor a contractual deadline exists.
	FallbackLeadDays int `yaml:"fallback_lead_days" json:"fallback_lead_days"`

	// CriticalPercentile gates critical orders by amount.
	CriticalPercentile int `yaml:"critical_percentile" json:"critical_percentile"`

	// MinSample is the minimum order count before a supplier can be
	// flagged low-performing.
	MinSample int `yaml:"min_sample" json:"min_sample"`

	// LowPerformanceRate is the success-rate percentage below which a
	// supplier with enough samples is flagged.
	LowPerformanceRate float64 `yaml:"low_performance_rate" json:"low_performance_rate"`
}

// DefaultConfig returns the production thresholds
func DefaultConfig() Config {
	return Config{
		HorizonDays:        3,
		FallbackLeadDays:   30,
		CriticalPercentile: 75,
		MinSample:          5,
		LowPerformanceRate: 70,
	}
}

// LoadConfig reads threshold overrides from a YAML file.
// Unknown fields fail immediately so typos cannot silently fall back
// to defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read threshold file: %w", err)
	}

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode threshold file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks threshold sanity
func (c Config) Validate() error {
	if c.HorizonDays < 0 {
		return fmt.Errorf("horizon_days must not be negative")
	}
	if c.FallbackLeadDays < 0 {
		return fmt.Errorf("fallback_lead_days must not be negative")
	}
	if c.CriticalPercentile <= 0 || c.CriticalPercentile > 100 {
		return fmt.Errorf("critical_percentile must be in (0, 100]")
	}
	if c.MinSample < 1 {
		return fmt.Errorf("min_sample must be at least 1")
	}
	if c.LowPerformanceRate < 0 || c.LowPerformanceRate > 100 {
		return fmt.Errorf("low_performance_rate must be in [0, 100]")
	}
	return nil
}

// Hash returns a SHA256 over the canonical JSON form of the config,
// logged with every summary so it is always clear which thresholds
// produced a given set of alerts.
func (c Config) Hash() (string, error) {
	jsonBytes, err := json.Marshal(c)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
