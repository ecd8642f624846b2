package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a JSON and YAML friendly wrapper around time.Duration that
// accepts human readable strings such as "500ms" in configuration files while
// still allowing numeric representations when necessary.
type Duration time.Duration

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// MarshalJSON encodes the duration using the canonical string representation.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON decodes a duration from either a string (e.g. "250ms") or a
// numeric value representing nanoseconds. Empty strings and null values decode
// to zero.
func (d *Duration) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("duration: empty value")
	}
	if string(b) == "null" {
		*d = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("duration: decode string: %w", err)
		}
		return d.parse(s)
	}
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*d = Duration(time.Duration(n))
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*d = Duration(time.Duration(f))
		return nil
	}
	return fmt.Errorf("duration: invalid value %s", string(b))
}

// MarshalYAML encodes the duration as its canonical string.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML accepts the same forms as UnmarshalJSON.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration: expected scalar at line %d", node.Line)
	}
	switch node.ShortTag() {
	case "!!null":
		*d = 0
		return nil
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			return fmt.Errorf("duration: decode int: %w", err)
		}
		*d = Duration(time.Duration(n))
		return nil
	}
	return d.parse(node.Value)
}

func (d *Duration) parse(s string) error {
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration: parse %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config captures the tunable parameters of world generation.
type Config struct {
	World     WorldConfig     `json:"world" yaml:"world"`
	Chunk     ChunkConfig     `json:"chunk" yaml:"chunk"`
	Streaming StreamingConfig `json:"streaming" yaml:"streaming"`
	Noise     NoiseConfig     `json:"noise" yaml:"noise"`
	Solver    SolverConfig    `json:"solver" yaml:"solver"`
	Features  FeaturesConfig  `json:"features" yaml:"features"`
	Preview   PreviewConfig   `json:"preview" yaml:"preview"`
}

type WorldConfig struct {
	Seed        int64  `json:"seed" yaml:"seed"`
	Description string `json:"description" yaml:"description"`
}

type ChunkConfig struct {
	Width    int     `json:"width" yaml:"width"`
	Height   int     `json:"height" yaml:"height"`
	TileSize float64 `json:"tileSize" yaml:"tileSize"` // world units per tile
}

type StreamingConfig struct {
	LoadRadius          int      `json:"loadRadius" yaml:"loadRadius"`                   // chunks, Chebyshev
	UnloadRadius        int      `json:"unloadRadius" yaml:"unloadRadius"`               // must exceed loadRadius
	MaintenanceInterval Duration `json:"maintenanceInterval" yaml:"maintenanceInterval"` // e.g. "500ms"
	MaxLoadsPerTick     int      `json:"maxLoadsPerTick" yaml:"maxLoadsPerTick"`         // 0 = unbounded
	Workers             int      `json:"workers" yaml:"workers"`                         // row workers per chunk, 0 = GOMAXPROCS
}

type NoiseConfig struct {
	Octaves        int                `json:"octaves" yaml:"octaves"`
	Lacunarity     float64            `json:"lacunarity" yaml:"lacunarity"`
	Persistence    float64            `json:"persistence" yaml:"persistence"`
	GradientWeight float64            `json:"gradientWeight" yaml:"gradientWeight"`
	Frequencies    ChannelFrequencies `json:"frequencies" yaml:"frequencies"`
}

// ChannelFrequencies holds the base sampling frequency (per tile) of each
// noise channel before octave scaling.
type ChannelFrequencies struct {
	Temperature     float64 `json:"temperature" yaml:"temperature"`
	Humidity        float64 `json:"humidity" yaml:"humidity"`
	Continentalness float64 `json:"continentalness" yaml:"continentalness"`
	Erosion         float64 `json:"erosion" yaml:"erosion"`
	Weirdness       float64 `json:"weirdness" yaml:"weirdness"`
	Gradient        float64 `json:"gradient" yaml:"gradient"`
}

type SolverConfig struct {
	Width        int      `json:"width" yaml:"width"`
	Height       int      `json:"height" yaml:"height"`
	Seed         uint64   `json:"seed" yaml:"seed"`
	TileSet      string   `json:"tileSet" yaml:"tileSet"` // path to a YAML tile set, empty = built-in meadow
	Timeout      Duration `json:"timeout" yaml:"timeout"` // 0 disables
	Attempts     int      `json:"attempts" yaml:"attempts"`
	PollInterval Duration `json:"pollInterval" yaml:"pollInterval"`
}

type FeaturesConfig struct {
	WorldChunks int     `json:"worldChunks" yaml:"worldChunks"`
	ChunkTiles  int     `json:"chunkTiles" yaml:"chunkTiles"`
	TargetSites int     `json:"targetSites" yaml:"targetSites"`
	MinRadius   float64 `json:"minRadius" yaml:"minRadius"`
	MaxRadius   float64 `json:"maxRadius" yaml:"maxRadius"`
}

type PreviewConfig struct {
	OutputDir string `json:"outputDir" yaml:"outputDir"`
	Scale     int    `json:"scale" yaml:"scale"`
}

// Load reads configuration from a JSON or YAML file if provided. The format is
// picked from the file extension. An empty path returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		World: WorldConfig{
			Seed:        42,
			Description: "local development world",
		},
		Chunk: ChunkConfig{
			Width:    64,
			Height:   64,
			TileSize: 32,
		},
		Streaming: StreamingConfig{
			LoadRadius:          2,
			UnloadRadius:        4,
			MaintenanceInterval: Duration(500 * time.Millisecond),
			MaxLoadsPerTick:     16,
			Workers:             0,
		},
		Noise: DefaultNoise(),
		Solver: SolverConfig{
			Width:        96,
			Height:       96,
			Seed:         23_534_536_336_534,
			Timeout:      Duration(30 * time.Second),
			Attempts:     3,
			PollInterval: Duration(100 * time.Millisecond),
		},
		Features: FeaturesConfig{
			WorldChunks: 48,
			ChunkTiles:  64,
			TargetSites: 28,
			MinRadius:   140,
			MaxRadius:   180,
		},
		Preview: PreviewConfig{
			OutputDir: "previews",
			Scale:     1,
		},
	}
}

// DefaultNoise returns the noise parameters the biome tables were tuned for.
func DefaultNoise() NoiseConfig {
	return NoiseConfig{
		Octaves:        5,
		Lacunarity:     2.0,
		Persistence:    0.5,
		GradientWeight: 0.3,
		Frequencies: ChannelFrequencies{
			Temperature:     0.0020,
			Humidity:        0.0020,
			Continentalness: 0.0012,
			Erosion:         0.0025,
			Weirdness:       0.0040,
			Gradient:        0.0005,
		},
	}
}

const (
	minMaintenanceInterval = 50 * time.Millisecond
	maxMaintenanceInterval = 5 * time.Second
)

func (c *Config) Validate() error {
	if c.Chunk.Width <= 0 || c.Chunk.Height <= 0 {
		return errors.New("chunk dimensions must be positive")
	}
	if c.Chunk.TileSize <= 0 {
		return errors.New("chunk.tileSize must be positive")
	}
	if c.Streaming.LoadRadius < 0 {
		return errors.New("streaming.loadRadius cannot be negative")
	}
	if c.Streaming.UnloadRadius <= c.Streaming.LoadRadius {
		return errors.New("streaming.unloadRadius must be greater than loadRadius")
	}
	interval := c.Streaming.MaintenanceInterval.Duration()
	if interval < minMaintenanceInterval || interval > maxMaintenanceInterval {
		return fmt.Errorf("streaming.maintenanceInterval must be between %s and %s", minMaintenanceInterval, maxMaintenanceInterval)
	}
	if c.Streaming.MaxLoadsPerTick < 0 {
		return errors.New("streaming.maxLoadsPerTick cannot be negative")
	}
	if c.Streaming.Workers < 0 {
		return errors.New("streaming.workers cannot be negative")
	}
	if err := c.Noise.Validate(); err != nil {
		return err
	}
	if c.Solver.Width <= 0 || c.Solver.Height <= 0 {
		return errors.New("solver dimensions must be positive")
	}
	if c.Solver.Attempts <= 0 {
		return errors.New("solver.attempts must be positive")
	}
	if c.Solver.Timeout < 0 {
		return errors.New("solver.timeout cannot be negative")
	}
	if c.Solver.PollInterval <= 0 {
		return errors.New("solver.pollInterval must be positive")
	}
	if c.Features.WorldChunks <= 0 || c.Features.ChunkTiles <= 0 {
		return errors.New("features world size must be positive")
	}
	if c.Features.TargetSites <= 0 {
		return errors.New("features.targetSites must be positive")
	}
	if c.Features.MinRadius <= 0 || c.Features.MaxRadius < c.Features.MinRadius {
		return errors.New("features radius range is invalid")
	}
	if c.Preview.Scale <= 0 {
		return errors.New("preview.scale must be positive")
	}
	return nil
}

// Validate checks the fractal parameters. It is exported so callers that build
// a sampler without a full Config can reuse it.
func (n NoiseConfig) Validate() error {
	if n.Octaves <= 0 {
		return errors.New("noise.octaves must be positive")
	}
	if n.Lacunarity <= 0 || n.Persistence <= 0 {
		return errors.New("noise.lacunarity and noise.persistence must be positive")
	}
	if n.GradientWeight < 0 || n.GradientWeight > 1 {
		return errors.New("noise.gradientWeight must be within [0,1]")
	}
	f := n.Frequencies
	if f.Temperature <= 0 || f.Humidity <= 0 || f.Continentalness <= 0 ||
		f.Erosion <= 0 || f.Weirdness <= 0 || f.Gradient <= 0 {
		return errors.New("noise frequencies must be positive")
	}
	return nil
}
