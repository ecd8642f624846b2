package world

import (
	"context"
	"fmt"
	"log"
	"sort"

	"worldgen/internal/config"
)

// Delta lists what a maintenance pass changed.
type Delta struct {
	Loaded   []ChunkCoord
	Unloaded []ChunkCoord
}

// Empty reports whether the pass changed nothing.
func (d Delta) Empty() bool {
	return len(d.Loaded) == 0 && len(d.Unloaded) == 0
}

// Registry owns the set of generated chunks around a viewer. It has a single
// writer: Maintain must not be called concurrently with itself or with reads.
type Registry struct {
	generator    Generator
	loadRadius   int
	unloadRadius int
	maxLoads     int
	logger       *log.Logger

	chunks  map[ChunkCoord]*Chunk
	pending int
}

func NewRegistry(generator Generator, cfg config.StreamingConfig, opts ...Option) *Registry {
	o := applyOptions(opts)
	return &Registry{
		generator:    generator,
		loadRadius:   cfg.LoadRadius,
		unloadRadius: cfg.UnloadRadius,
		maxLoads:     cfg.MaxLoadsPerTick,
		logger:       o.logger,
		chunks:       make(map[ChunkCoord]*Chunk),
	}
}

// Maintain generates missing chunks within the load radius of viewer, nearest
// first and at most maxLoads of them, then drops chunks beyond the unload
// radius. Each pass recomputes the missing set around the current viewer, so
// chunks skipped for budget are reconsidered next pass only if still in range.
func (r *Registry) Maintain(ctx context.Context, viewer ChunkCoord) (Delta, error) {
	var delta Delta

	var missing []ChunkCoord
	for _, offset := range SpiralOffsets(r.loadRadius) {
		coord := viewer.Add(offset.X, offset.Y)
		if _, ok := r.chunks[coord]; !ok {
			missing = append(missing, coord)
		}
	}
	batch := missing
	if r.maxLoads > 0 && len(batch) > r.maxLoads {
		batch = batch[:r.maxLoads]
	}
	r.pending = len(missing)

	for _, coord := range batch {
		chunk, err := r.generator.Generate(ctx, coord)
		if err != nil {
			return delta, fmt.Errorf("maintain around %v: %w", viewer, err)
		}
		r.chunks[coord] = chunk
		r.pending--
		delta.Loaded = append(delta.Loaded, coord)
		r.logger.Printf(" - Generated chunk at %v", coord)
	}

	for coord := range r.chunks {
		dx := coord.X - viewer.X
		dy := coord.Y - viewer.Y
		if dx > r.unloadRadius || dx < -r.unloadRadius || dy > r.unloadRadius || dy < -r.unloadRadius {
			delta.Unloaded = append(delta.Unloaded, coord)
		}
	}
	sortCoords(delta.Unloaded)
	for _, coord := range delta.Unloaded {
		delete(r.chunks, coord)
		r.logger.Printf(" - Unloaded chunk at %v", coord)
	}

	return delta, nil
}

// Pending returns how many in-range chunks were still missing after the last
// pass.
func (r *Registry) Pending() int {
	return r.pending
}

func (r *Registry) Chunk(coord ChunkCoord) (*Chunk, bool) {
	ch, ok := r.chunks[coord]
	return ch, ok
}

func (r *Registry) Len() int {
	return len(r.chunks)
}

// Loaded returns the generated coordinates sorted by row, then column.
func (r *Registry) Loaded() []ChunkCoord {
	coords := make([]ChunkCoord, 0, len(r.chunks))
	for coord := range r.chunks {
		coords = append(coords, coord)
	}
	sortCoords(coords)
	return coords
}

func (r *Registry) snapshot() map[ChunkCoord]*Chunk {
	dup := make(map[ChunkCoord]*Chunk, len(r.chunks))
	for coord, ch := range r.chunks {
		dup[coord] = ch
	}
	return dup
}

func sortCoords(coords []ChunkCoord) {
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y == coords[j].Y {
			return coords[i].X < coords[j].X
		}
		return coords[i].Y < coords[j].Y
	})
}
