package config

import (
	"fmt"
	"math"
)

// Fallbacks used when a wave's parameters are malformed.
const (
	DefaultSpawnInterval = 1.0 // seconds
	DefaultSpawnBudget   = 4
)

// WaveConfig defines wave progression. Wave n (1-based) uses Overrides[n-1]
// when present, otherwise:
//
//	budget   = BaseBudget + (n-1)*BudgetPerWave
//	interval = max(MinInterval, BaseInterval * IntervalDecay^(n-1))
type WaveConfig struct {
	BaseBudget    int          `yaml:"base_budget"`
	BudgetPerWave int          `yaml:"budget_per_wave"`
	BaseInterval  float64      `yaml:"base_interval"`
	IntervalDecay float64      `yaml:"interval_decay"`
	MinInterval   float64      `yaml:"min_interval"`
	LaneMargin    float64      `yaml:"lane_margin"` // Keep spawn lanes this far from the side walls
	Overrides     []WaveParams `yaml:"overrides"`
}

// WaveParams are the resolved spawn parameters of one wave.
type WaveParams struct {
	Budget   int     `yaml:"budget"`
	Interval float64 `yaml:"interval"`
	Kind     string  `yaml:"kind"` // "scout", "fighter", "bomber", or "" for the default mix
}

// Params returns the parameters for wave n (1-based).
func (w WaveConfig) Params(n int) WaveParams {
	if n < 1 {
		n = 1
	}
	if n <= len(w.Overrides) {
		return w.Overrides[n-1]
	}
	interval := w.BaseInterval * math.Pow(w.IntervalDecay, float64(n-1))
	if interval < w.MinInterval {
		interval = w.MinInterval
	}
	return WaveParams{
		Budget:   w.BaseBudget + (n-1)*w.BudgetPerWave,
		Interval: interval,
	}
}

// Validate reports the first malformed field of the wave's parameters.
func (p WaveParams) Validate(wave int) error {
	if p.Interval <= 0 || math.IsNaN(p.Interval) || math.IsInf(p.Interval, 0) {
		return &ConfigurationError{Wave: wave, Field: "interval", Value: fmt.Sprint(p.Interval)}
	}
	if p.Budget <= 0 {
		return &ConfigurationError{Wave: wave, Field: "budget", Value: fmt.Sprint(p.Budget)}
	}
	switch p.Kind {
	case "", "scout", "fighter", "bomber":
	default:
		return &ConfigurationError{Wave: wave, Field: "kind", Value: p.Kind}
	}
	return nil
}

// Sanitized returns p with every malformed field replaced by its default.
func (p WaveParams) Sanitized() WaveParams {
	if p.Interval <= 0 || math.IsNaN(p.Interval) || math.IsInf(p.Interval, 0) {
		p.Interval = DefaultSpawnInterval
	}
	if p.Budget <= 0 {
		p.Budget = DefaultSpawnBudget
	}
	switch p.Kind {
	case "", "scout", "fighter", "bomber":
	default:
		p.Kind = ""
	}
	return p
}

// ConfigurationError describes a malformed wave parameter. It is fatal to
// that wave's parameters only; the spawner substitutes defaults.
type ConfigurationError struct {
	Wave  int
	Field string
	Value string
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: wave %d: invalid %s %s", e.Wave, e.Field, e.Value)
}
