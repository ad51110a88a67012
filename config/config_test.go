package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.World.Cells != 100 {
		t.Errorf("World.Cells = %d, want 100", cfg.World.Cells)
	}
	if cfg.Population.Initial != 100 || cfg.Population.Turns != 110 {
		t.Errorf("Population = %+v, want initial 100 turns 110", cfg.Population)
	}
	if cfg.Lifecycle.MaxAge != 100 || cfg.Lifecycle.MaxAgeOnStart != 60 {
		t.Errorf("Lifecycle = %+v", cfg.Lifecycle)
	}
	if cfg.Health.InfectedDays != 2 || cfg.Health.SickDays != 7 || cfg.Health.RecoveryDays != 5 {
		t.Errorf("Health durations = %+v", cfg.Health)
	}
	if cfg.Reproduction.BirthOnContactProb != 0.05 || cfg.Reproduction.MaxChildrenPerBirth != 2 {
		t.Errorf("Reproduction = %+v", cfg.Reproduction)
	}
	if cfg.Immunity.High.Max != 10 || cfg.Immunity.Low.Min != 1 {
		t.Errorf("Immunity brackets = %+v", cfg.Immunity)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	data := []byte("world:\n  cells: 40\nreproduction:\n  birth_on_contact_prob: 0.2\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) error: %v", path, err)
	}
	if cfg.World.Cells != 40 {
		t.Errorf("World.Cells = %d, want 40", cfg.World.Cells)
	}
	if cfg.Reproduction.BirthOnContactProb != 0.2 {
		t.Errorf("BirthOnContactProb = %v, want 0.2", cfg.Reproduction.BirthOnContactProb)
	}
	// Untouched keys keep their defaults
	if cfg.Reproduction.MaxChildrenPerBirth != 2 {
		t.Errorf("MaxChildrenPerBirth = %d, want default 2", cfg.Reproduction.MaxChildrenPerBirth)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero cells", func(c *Config) { c.World.Cells = 0 }},
		{"zero turns", func(c *Config) { c.Population.Turns = 0 }},
		{"speed range inverted", func(c *Config) { c.Movement.MinSpeed = 4 }},
		{"probability above one", func(c *Config) { c.Reproduction.BirthOnContactProb = 1.5 }},
		{"start probabilities above one", func(c *Config) {
			c.Health.InfectedOnStartProb = 0.6
			c.Health.SickOnStartProb = 0.6
		}},
		{"zero sick days", func(c *Config) { c.Health.SickDays = 0 }},
		{"bracket min above max", func(c *Config) { c.Immunity.Normal.Min = 7 }},
		{"overlapping brackets", func(c *Config) { c.Immunity.High.MinAge = 30 }},
		{"thresholds inverted", func(c *Config) { c.Immunity.MediumBelow = 2 }},
		{"parent ages inverted", func(c *Config) { c.Reproduction.MinParentAge = 50 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.World.Cells = 64
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", *loaded, *cfg)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() before Init() should panic")
		}
	}()
	Cfg()
}
