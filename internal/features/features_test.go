package features

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"testing"

	"worldgen/internal/config"
	"worldgen/internal/world"
)

func TestPoissonRadiusClamp(t *testing.T) {
	cfg := config.Default().Features
	side := float64(cfg.WorldChunks * cfg.ChunkTiles)
	raw := PoissonRadius(side*side, float64(cfg.TargetSites))
	if raw <= cfg.MaxRadius {
		t.Fatalf("default world should exceed the radius cap, got %v", raw)
	}
	features, err := Generate(23_534_536_336_534, cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := features[1].Radius; got != cfg.MaxRadius {
		t.Fatalf("landmark radius = %v, want clamp to %v", got, cfg.MaxRadius)
	}

	small := cfg
	small.WorldChunks = 1
	small.TargetSites = 28
	features, err = Generate(1, small)
	if err != nil {
		t.Fatalf("generate small: %v", err)
	}
	for _, f := range features[1:] {
		if f.Radius != cfg.MinRadius {
			t.Fatalf("small world radius = %v, want floor %v", f.Radius, cfg.MinRadius)
		}
	}
}

func TestGenerateLayout(t *testing.T) {
	cfg := config.Default().Features
	features, err := Generate(23_534_536_336_534, cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(features) < 2 {
		t.Fatalf("expected core and landmarks, got %d features", len(features))
	}
	core := features[0]
	if core.Kind != Core || core.X != 0 || core.Y != 0 || core.Radius != 96 {
		t.Fatalf("unexpected core %+v", core)
	}

	half := float64(cfg.WorldChunks*cfg.ChunkTiles) / 2
	landmarks := features[1:]
	for i, a := range landmarks {
		if a.Kind != Landmark {
			t.Fatalf("feature %d is %s", i+1, a.Kind)
		}
		if a.X < -half || a.X >= half || a.Y < -half || a.Y >= half {
			t.Fatalf("landmark %+v outside world", a)
		}
		for _, b := range landmarks[i+1:] {
			if d := math.Hypot(a.X-b.X, a.Y-b.Y); d < a.Radius {
				t.Fatalf("landmarks %+v and %+v only %v apart", a, b, d)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := config.Default().Features
	a, err := Generate(7, cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(7, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("feature %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
	c, err := Generate(8, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(c) == len(a) && c[1] == a[1] {
		t.Fatal("different seeds produced the same first landmark")
	}
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	base := config.Default().Features
	cases := map[string]func(*config.FeaturesConfig){
		"no chunks":     func(c *config.FeaturesConfig) { c.WorldChunks = 0 },
		"no sites":      func(c *config.FeaturesConfig) { c.TargetSites = 0 },
		"inverted band": func(c *config.FeaturesConfig) { c.MinRadius, c.MaxRadius = 200, 100 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			if _, err := Generate(1, cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPoissonDiscCoversArea(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	points := PoissonDisc(rng, 400, 300, 20, 30)
	// Bridson leaves no hole wider than 2r.
	if len(points) < (400*300)/(4*20*20) {
		t.Fatalf("only %d points placed", len(points))
	}
	for i, p := range points {
		for _, q := range points[i+1:] {
			if math.Hypot(p[0]-q[0], p[1]-q[1]) < 20 {
				t.Fatalf("points %v and %v too close", p, q)
			}
		}
	}
	if PoissonDisc(rng, 0, 10, 1, 30) != nil {
		t.Fatal("expected empty area to yield no points")
	}
}

func TestFeatureChunk(t *testing.T) {
	dim := world.Dimensions{Width: 64, Height: 64}
	cases := []struct {
		x, y float64
		want world.ChunkCoord
	}{
		{0, 0, world.ChunkCoord{}},
		{63.9, 64, world.ChunkCoord{X: 0, Y: 1}},
		{-0.5, -64, world.ChunkCoord{X: -1, Y: -1}},
		{-64.1, 130, world.ChunkCoord{X: -2, Y: 2}},
	}
	for _, c := range cases {
		if got := (Feature{X: c.x, Y: c.y}).Chunk(dim); got != c.want {
			t.Fatalf("Chunk(%v,%v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestOverlayDrawsOutlines(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	origin := world.TileCoord{X: -20, Y: -20}
	dim := world.Dimensions{Width: 4, Height: 4}
	Overlay(img, []Feature{
		{Kind: Core, Radius: 10},
		{Kind: Landmark, X: 9, Y: -9, Radius: 2},
	}, origin, dim)

	// Tile (10,0) is on the core circle: pixel (30, 19).
	if got := img.NRGBAAt(30, 19); got != coreColor {
		t.Fatalf("core outline pixel = %v", got)
	}
	// The landmark sits in chunk (2,-3) whose corner tile (8,-12) maps to
	// pixel (28, 31).
	if got := img.NRGBAAt(28, 31); got != chunkColor {
		t.Fatalf("chunk outline pixel = %v", got)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{}) {
		t.Fatalf("untouched pixel = %v", got)
	}
}
