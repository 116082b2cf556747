// Package config holds the tunable heuristics of the planning engine and the
// scenario file format consumed by the CLI.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Default heuristic values. They mirror the fixed factors of the memory model
// and are overridable through a heuristics file.
const (
	DefaultActivationFactor     = 0.15
	DefaultOverheadFactor       = 0.08
	DefaultMaxNumSeqs           = 16
	DefaultMaxModelLen          = 2048
	DefaultPressureThreshold    = 0.85
	DefaultQualityLossTolerance = 0.08
)

// Heuristics collects the fixed factors and thresholds used by the estimator,
// breakdown calculator, optimizer, and advisor.
type Heuristics struct {
	// ActivationFactor sizes activation memory as a fraction of weight memory.
	ActivationFactor float64 `yaml:"activationFactor" json:"activationFactor" mapstructure:"activationFactor"`

	// OverheadFactor sizes system overhead as a fraction of total VRAM.
	OverheadFactor float64 `yaml:"overheadFactor" json:"overheadFactor" mapstructure:"overheadFactor"`

	// MaxNumSeqs is the fallback concurrent-sequence count when no candidate
	// parameters are supplied to the breakdown calculator.
	MaxNumSeqs int `yaml:"maxNumSeqs" json:"maxNumSeqs" mapstructure:"maxNumSeqs"`

	// MaxModelLen is the fallback sequence length in tokens.
	MaxModelLen int `yaml:"maxModelLen" json:"maxModelLen" mapstructure:"maxModelLen"`

	// PressureThreshold is the weight-memory/VRAM ratio above which the
	// quantization advisor proposes a lower-memory format.
	PressureThreshold float64 `yaml:"pressureThreshold" json:"pressureThreshold" mapstructure:"pressureThreshold"`

	// QualityLossTolerance is the maximum estimated quality loss the advisor
	// accepts when proposing a format.
	QualityLossTolerance float64 `yaml:"qualityLossTolerance" json:"qualityLossTolerance" mapstructure:"qualityLossTolerance"`
}

// DefaultHeuristics returns the built-in heuristic values.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		ActivationFactor:     DefaultActivationFactor,
		OverheadFactor:       DefaultOverheadFactor,
		MaxNumSeqs:           DefaultMaxNumSeqs,
		MaxModelLen:          DefaultMaxModelLen,
		PressureThreshold:    DefaultPressureThreshold,
		QualityLossTolerance: DefaultQualityLossTolerance,
	}
}

// Validate checks for invalid heuristic values.
func (h *Heuristics) Validate() error {
	if h.ActivationFactor < 0 || h.ActivationFactor > 1 {
		return fmt.Errorf("activationFactor must be between 0 and 1, got %.2f", h.ActivationFactor)
	}
	if h.OverheadFactor < 0 || h.OverheadFactor > 1 {
		return fmt.Errorf("overheadFactor must be between 0 and 1, got %.2f", h.OverheadFactor)
	}
	if h.MaxNumSeqs < 1 {
		return fmt.Errorf("maxNumSeqs must be >= 1, got %d", h.MaxNumSeqs)
	}
	if h.MaxModelLen < 1 {
		return fmt.Errorf("maxModelLen must be >= 1, got %d", h.MaxModelLen)
	}
	if h.PressureThreshold <= 0 || h.PressureThreshold > 1 {
		return fmt.Errorf("pressureThreshold must be in (0, 1], got %.2f", h.PressureThreshold)
	}
	if h.QualityLossTolerance < 0 || h.QualityLossTolerance > 1 {
		return fmt.Errorf("qualityLossTolerance must be between 0 and 1, got %.2f", h.QualityLossTolerance)
	}
	return nil
}

// LoadHeuristics reads a heuristics file, merging it over the defaults.
// An empty path returns the defaults unchanged.
func LoadHeuristics(path string) (Heuristics, error) {
	h := DefaultHeuristics()
	if path == "" {
		return h, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("activationFactor", DefaultActivationFactor)
	v.SetDefault("overheadFactor", DefaultOverheadFactor)
	v.SetDefault("maxNumSeqs", DefaultMaxNumSeqs)
	v.SetDefault("maxModelLen", DefaultMaxModelLen)
	v.SetDefault("pressureThreshold", DefaultPressureThreshold)
	v.SetDefault("qualityLossTolerance", DefaultQualityLossTolerance)

	if err := v.ReadInConfig(); err != nil {
		return h, fmt.Errorf("reading heuristics file %q: %w", path, err)
	}
	if err := v.Unmarshal(&h); err != nil {
		return h, fmt.Errorf("parsing heuristics file %q: %w", path, err)
	}
	if err := h.Validate(); err != nil {
		return DefaultHeuristics(), fmt.Errorf("invalid heuristics in %q: %w", path, err)
	}
	return h, nil
}
