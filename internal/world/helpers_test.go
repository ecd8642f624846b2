package world

import (
	"bytes"
	"context"
	"log"
	"sync"
	"time"

	"worldgen/internal/biome"
	"worldgen/internal/config"
)

// testLogger returns a logger writing to a buffer the test can inspect.
func testLogger() (*log.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return log.New(buf, "", 0), buf
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// stubGenerator produces cheap chunks whose tile encodes the chunk position.
type stubGenerator struct {
	dim Dimensions
	err error

	mu    sync.Mutex
	calls []ChunkCoord
}

func (g *stubGenerator) Generate(ctx context.Context, coord ChunkCoord) (*Chunk, error) {
	g.mu.Lock()
	g.calls = append(g.calls, coord)
	g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	chunk := NewChunk(coord, g.dim)
	id := stubTile(coord)
	for y := 0; y < g.dim.Height; y++ {
		for x := 0; x < g.dim.Width; x++ {
			chunk.SetTile(x, y, Tile{ID: id, Biome: biome.Plains})
		}
	}
	return chunk, nil
}

func (g *stubGenerator) Calls() []ChunkCoord {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]ChunkCoord(nil), g.calls...)
}

// stubTile maps the 3x3 block around the origin onto distinctly coloured tiles.
func stubTile(coord ChunkCoord) biome.TileID {
	idx := (coord.X + 1) + (coord.Y+1)*3
	if idx < 0 || idx > 8 {
		return biome.TileGrassland
	}
	return biome.TileID(int(biome.TileTundra) + idx)
}

func streamingConfig(load, unload, maxLoads int) config.StreamingConfig {
	return config.StreamingConfig{
		LoadRadius:          load,
		UnloadRadius:        unload,
		MaintenanceInterval: config.Duration(50 * time.Millisecond),
		MaxLoadsPerTick:     maxLoads,
	}
}
