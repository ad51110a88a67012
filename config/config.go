// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World        WorldConfig        `yaml:"world"`
	Population   PopulationConfig   `yaml:"population"`
	Lifecycle    LifecycleConfig    `yaml:"lifecycle"`
	Movement     MovementConfig     `yaml:"movement"`
	Health       HealthConfig       `yaml:"health"`
	Immunity     ImmunityConfig     `yaml:"immunity"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
}

// WorldConfig holds the board dimensions. The board is square.
type WorldConfig struct {
	Cells int `yaml:"cells"` // Cells per side; valid coordinates are [0, cells)
}

// PopulationConfig holds population and run length parameters.
type PopulationConfig struct {
	Initial           int `yaml:"initial"`            // Entities sampled at turn 0
	Turns             int `yaml:"turns"`              // Snapshots produced by a run, turn 0 included
	ParallelThreshold int `yaml:"parallel_threshold"` // Min population for the worker pool (0 = never)
}

// LifecycleConfig holds aging parameters.
type LifecycleConfig struct {
	MaxAge        int `yaml:"max_age"`          // Entities die once age >= this
	MaxAgeOnStart int `yaml:"max_age_on_start"` // Founder ages are drawn from [0, this]
}

// MovementConfig holds movement and contact geometry.
type MovementConfig struct {
	MinSpeed      int `yaml:"min_speed"`
	MaxSpeed      int `yaml:"max_speed"`
	ContactRadius int `yaml:"contact_radius"` // Chebyshev distance that counts as contact
}

// HealthConfig holds disease stage parameters.
type HealthConfig struct {
	InfectedOnStartProb   float64 `yaml:"infected_on_start_prob"`
	SickOnStartProb       float64 `yaml:"sick_on_start_prob"`
	RecoveringOnStartProb float64 `yaml:"recovering_on_start_prob"`
	InfectedDays          int     `yaml:"infected_days"`
	SickDays              int     `yaml:"sick_days"`
	RecoveryDays          int     `yaml:"recovery_days"`
}

// BracketConfig is one age-keyed immunity range.
type BracketConfig struct {
	MinAge int     `yaml:"min_age"` // inclusive
	MaxAge int     `yaml:"max_age"` // inclusive
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

// ImmunityConfig holds immunity brackets and the per-turn accounting.
// Ages outside both the normal and high brackets fall into the low bracket.
type ImmunityConfig struct {
	Low    BracketConfig `yaml:"low"` // age range ignored
	Normal BracketConfig `yaml:"normal"`
	High   BracketConfig `yaml:"high"`

	// Absolute thresholds: low is (0, LowBelow), medium is [LowBelow, MediumBelow)
	LowBelow    float64 `yaml:"low_below"`
	MediumBelow float64 `yaml:"medium_below"`

	// Daily delta applied after contact resolution
	InfectedDelta   float64 `yaml:"infected_delta"`
	SickDelta       float64 `yaml:"sick_delta"`
	RecoveringDelta float64 `yaml:"recovering_delta"`
	HealthyDelta    float64 `yaml:"healthy_delta"`

	// Contact adjustments
	SickExposurePenalty    float64 `yaml:"sick_exposure_penalty"`    // Healthy resisting a sick peer
	InfectedContactPenalty float64 `yaml:"infected_contact_penalty"` // Infected/recovering meeting an infected peer
	RecoveringContactBoost float64 `yaml:"recovering_contact_boost"` // Recovering meeting a healthy peer
}

// ReproductionConfig holds birth-on-contact parameters.
type ReproductionConfig struct {
	BirthOnContactProb  float64 `yaml:"birth_on_contact_prob"`
	MaxChildrenPerBirth int     `yaml:"max_children_per_birth"`
	MinParentAge        int     `yaml:"min_parent_age"` // inclusive
	MaxParentAge        int     `yaml:"max_parent_age"` // inclusive
}

// TelemetryConfig holds reporting parameters.
type TelemetryConfig struct {
	LogStats            bool    `yaml:"log_stats"`
	BookmarkHistorySize int     `yaml:"bookmark_history_size"`
	CrashDropPercent    float64 `yaml:"crash_drop_percent"` // Population drop from recent peak that counts as a crash
	ChartWidth          int     `yaml:"chart_width"`
	ChartHeight         int     `yaml:"chart_height"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
