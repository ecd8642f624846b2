package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestValidateDefaultConfig(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration should be valid: %v", err)
	}
}

func TestValidateDetectsInvalidConfigurations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "non positive chunk dimensions",
			mutate: func(cfg *Config) {
				cfg.Chunk.Width = 0
			},
			wantErr: "chunk dimensions must be positive",
		},
		{
			name: "non positive tile size",
			mutate: func(cfg *Config) {
				cfg.Chunk.TileSize = 0
			},
			wantErr: "chunk.tileSize must be positive",
		},
		{
			name: "negative load radius",
			mutate: func(cfg *Config) {
				cfg.Streaming.LoadRadius = -1
			},
			wantErr: "streaming.loadRadius cannot be negative",
		},
		{
			name: "unload radius without hysteresis",
			mutate: func(cfg *Config) {
				cfg.Streaming.UnloadRadius = cfg.Streaming.LoadRadius
			},
			wantErr: "streaming.unloadRadius must be greater than loadRadius",
		},
		{
			name: "maintenance every frame",
			mutate: func(cfg *Config) {
				cfg.Streaming.MaintenanceInterval = Duration(16 * time.Millisecond)
			},
			wantErr: "streaming.maintenanceInterval must be between 50ms and 5s",
		},
		{
			name: "negative load budget",
			mutate: func(cfg *Config) {
				cfg.Streaming.MaxLoadsPerTick = -1
			},
			wantErr: "streaming.maxLoadsPerTick cannot be negative",
		},
		{
			name: "zero octaves",
			mutate: func(cfg *Config) {
				cfg.Noise.Octaves = 0
			},
			wantErr: "noise.octaves must be positive",
		},
		{
			name: "gradient weight above one",
			mutate: func(cfg *Config) {
				cfg.Noise.GradientWeight = 1.5
			},
			wantErr: "noise.gradientWeight must be within [0,1]",
		},
		{
			name: "zero channel frequency",
			mutate: func(cfg *Config) {
				cfg.Noise.Frequencies.Erosion = 0
			},
			wantErr: "noise frequencies must be positive",
		},
		{
			name: "zero solver attempts",
			mutate: func(cfg *Config) {
				cfg.Solver.Attempts = 0
			},
			wantErr: "solver.attempts must be positive",
		},
		{
			name: "inverted feature radius",
			mutate: func(cfg *Config) {
				cfg.Features.MaxRadius = cfg.Features.MinRadius - 1
			},
			wantErr: "features radius range is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected an error, got nil")
			}
			if err.Error() != tt.wantErr {
				t.Fatalf("unexpected error: got %q want %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	if want := Default(); !reflect.DeepEqual(cfg, want) {
		t.Fatalf("default configuration mismatch:\nwant: %#v\n got: %#v", want, cfg)
	}
}

func TestLoadReadsJSONFileAndValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.World.Seed = 7
	cfg.Streaming.LoadRadius = 1

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Fatalf("loaded configuration mismatch:\nwant: %#v\n got: %#v", cfg, got)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")

	contents := `
world:
  seed: 99
streaming:
  loadRadius: 1
  unloadRadius: 3
  maintenanceInterval: 250ms
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if got.World.Seed != 99 {
		t.Fatalf("expected seed 99, got %d", got.World.Seed)
	}
	if got.Streaming.MaintenanceInterval.Duration() != 250*time.Millisecond {
		t.Fatalf("unexpected interval %s", got.Streaming.MaintenanceInterval.Duration())
	}
	// Untouched sections keep their defaults.
	if got.Chunk != Default().Chunk {
		t.Fatalf("expected default chunk config, got %+v", got.Chunk)
	}
}

func TestYAMLRoundTripPreservesConfig(t *testing.T) {
	cfg := Default()
	cfg.Solver.Timeout = Duration(1500 * time.Millisecond)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	if !strings.Contains(string(data), "1.5s") {
		t.Fatalf("expected durations to be encoded as strings, got:\n%s", data)
	}

	var decoded Config
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}
	if !reflect.DeepEqual(&decoded, cfg) {
		t.Fatalf("yaml round trip mismatch:\nwant: %#v\n got: %#v", cfg, &decoded)
	}
}

func TestDurationAcceptsNumericNanoseconds(t *testing.T) {
	var d Duration
	if err := json.Unmarshal([]byte("1000000"), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Duration() != time.Millisecond {
		t.Fatalf("expected 1ms, got %s", d.Duration())
	}
	if err := yaml.Unmarshal([]byte("2000000"), &d); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}
	if d.Duration() != 2*time.Millisecond {
		t.Fatalf("expected 2ms, got %s", d.Duration())
	}
}

func TestLoadInvalidConfiguration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.Chunk.Width = 0

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err = Load(path)
	if err == nil {
		t.Fatalf("expected load to fail")
	}
	if !strings.Contains(err.Error(), "validate config: chunk dimensions must be positive") {
		t.Fatalf("unexpected error: %v", err)
	}
}
