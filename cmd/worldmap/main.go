package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"
	"time"

	"worldgen/internal/config"
	"worldgen/internal/features"
	"worldgen/internal/world"
)

func main() {
	var (
		cfgPath    string
		output     string
		radius     int
		byBiome    bool
		noFeatures bool
	)
	flag.StringVar(&cfgPath, "config", "", "path to world generation configuration file")
	flag.StringVar(&output, "out", "", "output PNG path (default <preview dir>/world_map.png)")
	flag.IntVar(&radius, "radius", 32, "chunks rendered on each side of the origin")
	flag.BoolVar(&byBiome, "biomes", false, "colour by biome instead of terrain tile")
	flag.BoolVar(&noFeatures, "no-features", false, "skip the core and landmark overlay")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if output == "" {
		output = filepath.Join(cfg.Preview.OutputDir, "world_map.png")
	}
	colorOf := world.TileColor
	if byBiome {
		colorOf = world.BiomeColor
	}

	generator := world.NewClimateGenerator(cfg)
	dim := generator.Dimensions()
	side := 2*radius + 1
	log.Printf("rendering %dx%d chunk world map for seed %d", side, side, cfg.World.Seed)

	start := time.Now()
	img, err := world.RenderRegion(context.Background(), generator, dim, world.ChunkCoord{}, radius, colorOf)
	if err != nil {
		log.Fatalf("render world map: %v", err)
	}
	log.Printf("generated %d chunks in %s", side*side, time.Since(start).Round(time.Millisecond))

	if !noFeatures {
		placed, err := features.Generate(uint64(cfg.World.Seed), cfg.Features)
		if err != nil {
			log.Fatalf("place features: %v", err)
		}
		origin := world.ChunkCoord{X: -radius, Y: -radius}.Origin(dim)
		features.Overlay(img, placed, origin, dim)
		log.Printf("placed %d landmarks", len(placed)-1)
	}

	if err := world.SaveRegionPreview(img, output); err != nil {
		log.Fatalf("save world map: %v", err)
	}
	log.Printf("world map written to %s", output)
}
