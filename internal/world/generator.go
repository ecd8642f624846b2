package world

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"worldgen/internal/biome"
	"worldgen/internal/climate"
	"worldgen/internal/config"
	"worldgen/internal/noise"
)

// Generator describes tile population for chunks.
type Generator interface {
	Generate(ctx context.Context, coord ChunkCoord) (*Chunk, error)
}

// ClimateGenerator fills chunks by sampling climate noise, classifying it and
// picking a biome per tile. It holds no mutable state.
type ClimateGenerator struct {
	sampler *noise.Sampler
	dim     Dimensions
	workers int
}

func NewClimateGenerator(cfg *config.Config) *ClimateGenerator {
	return &ClimateGenerator{
		sampler: noise.NewSampler(cfg.World.Seed, cfg.Noise),
		dim:     DimensionsFrom(cfg.Chunk),
		workers: cfg.Streaming.Workers,
	}
}

func (g *ClimateGenerator) Dimensions() Dimensions {
	return g.dim
}

// Classify evaluates the full pipeline for a single global tile.
func (g *ClimateGenerator) Classify(x, y int) (climate.Point, biome.Biome) {
	p := climate.Classify(g.sampler.SampleAll(x, y))
	return p, biome.Pick(p)
}

// TileAt returns the tile generated for a global tile coordinate.
func (g *ClimateGenerator) TileAt(x, y int) Tile {
	_, b := g.Classify(x, y)
	return Tile{ID: b.Tile(), Biome: b}
}

// Generate builds the chunk at coord. Rows are filled concurrently; the result
// only depends on the seed, the configuration and coord.
func (g *ClimateGenerator) Generate(ctx context.Context, coord ChunkCoord) (*Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.dim.Width <= 0 || g.dim.Height <= 0 {
		return nil, fmt.Errorf("invalid chunk dimensions: %+v", g.dim)
	}

	chunk := NewChunk(coord, g.dim)
	origin := chunk.Origin()

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(g.workerCount())
	for localY := 0; localY < g.dim.Height; localY++ {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := chunk.tiles[localY*g.dim.Width : (localY+1)*g.dim.Width]
			for localX := range row {
				row[localX] = g.TileAt(origin.X+localX, origin.Y+localY)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("generate chunk %v: %w", coord, err)
	}
	return chunk, nil
}

func (g *ClimateGenerator) workerCount() int {
	workers := g.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > g.dim.Height {
		workers = g.dim.Height
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
