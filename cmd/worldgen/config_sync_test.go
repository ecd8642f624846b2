package main

import (
	"encoding/base64"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"worldgen/internal/config"
)

func TestWriteConfigFromEnvJSON(t *testing.T) {
	t.Setenv("WORLDGEN_CONFIG_YAML_B64", "")
	t.Setenv("WORLDGEN_CONFIG_JSON", `{"world":{"seed":1234},"streaming":{"loadRadius":3,"unloadRadius":5}}`)

	path := filepath.Join(t.TempDir(), "conf", "worldgen.json")
	wrote, err := writeConfigFromEnv(path)
	if err != nil {
		t.Fatalf("writeConfigFromEnv: %v", err)
	}
	if !wrote {
		t.Fatalf("expected config to be written")
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.World.Seed != 1234 || cfg.Streaming.LoadRadius != 3 || cfg.Streaming.UnloadRadius != 5 {
		t.Fatalf("payload not applied: %+v", cfg)
	}
	if cfg.Chunk.Width != config.Default().Chunk.Width {
		t.Fatalf("missing fields should keep defaults, chunk width %d", cfg.Chunk.Width)
	}
}

func TestWriteConfigFromEnvYAML(t *testing.T) {
	cfg := config.Default()
	cfg.World.Seed = 77
	cfg.Streaming.MaintenanceInterval = config.Duration(250 * time.Millisecond)
	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	t.Setenv("WORLDGEN_CONFIG_JSON", "")
	t.Setenv("WORLDGEN_CONFIG_YAML_B64", base64.StdEncoding.EncodeToString(data))

	path := filepath.Join(t.TempDir(), "worldgen.yaml")
	wrote, err := writeConfigFromEnv(path)
	if err != nil {
		t.Fatalf("writeConfigFromEnv: %v", err)
	}
	if !wrote {
		t.Fatalf("expected config to be written")
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if loaded.World.Seed != 77 {
		t.Fatalf("unexpected seed %d", loaded.World.Seed)
	}
	if got := loaded.Streaming.MaintenanceInterval.Duration(); got != 250*time.Millisecond {
		t.Fatalf("unexpected interval %s", got)
	}
}

func TestWriteConfigFromEnvNoPayload(t *testing.T) {
	t.Setenv("WORLDGEN_CONFIG_JSON", "")
	t.Setenv("WORLDGEN_CONFIG_YAML_B64", "")
	wrote, err := writeConfigFromEnv(filepath.Join(t.TempDir(), "unused.json"))
	if err != nil || wrote {
		t.Fatalf("expected no-op, got wrote=%v err=%v", wrote, err)
	}
}

func TestWriteConfigFromEnvErrors(t *testing.T) {
	t.Setenv("WORLDGEN_CONFIG_YAML_B64", "")
	t.Setenv("WORLDGEN_CONFIG_JSON", `{"world":{"seed":1}}`)
	if _, err := writeConfigFromEnv(""); err == nil {
		t.Fatal("expected missing path to fail")
	}

	t.Setenv("WORLDGEN_CONFIG_JSON", `{"streaming":{"loadRadius":5,"unloadRadius":2}}`)
	if _, err := writeConfigFromEnv(filepath.Join(t.TempDir(), "bad.json")); err == nil {
		t.Fatal("expected invalid radii to fail validation")
	}

	t.Setenv("WORLDGEN_CONFIG_JSON", "")
	t.Setenv("WORLDGEN_CONFIG_YAML_B64", "not base64!")
	if _, err := writeConfigFromEnv(filepath.Join(t.TempDir(), "bad.yaml")); err == nil {
		t.Fatal("expected undecodable payload to fail")
	}
}
