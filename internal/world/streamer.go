package world

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"worldgen/internal/config"
)

// ViewerSource reports the current viewer position in world units. ok is
// false while there is no viewer.
type ViewerSource interface {
	Viewer() (pos Vec2, ok bool)
}

// ViewerFunc adapts a function to ViewerSource.
type ViewerFunc func() (Vec2, bool)

func (f ViewerFunc) Viewer() (Vec2, bool) {
	return f()
}

// FixedViewer is a thread-safe ViewerSource whose position is set externally.
type FixedViewer struct {
	mu  sync.RWMutex
	pos Vec2
	ok  bool
}

func (v *FixedViewer) Set(pos Vec2) {
	v.mu.Lock()
	v.pos, v.ok = pos, true
	v.mu.Unlock()
}

// Clear removes the viewer.
func (v *FixedViewer) Clear() {
	v.mu.Lock()
	v.ok = false
	v.mu.Unlock()
}

func (v *FixedViewer) Viewer() (Vec2, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.pos, v.ok
}

// Snapshot is an immutable view of the loaded chunks after a pass.
type Snapshot struct {
	Tick   uint64
	Viewer ChunkCoord
	// Pending counts in-range chunks still waiting for generation.
	Pending int
	chunks  map[ChunkCoord]*Chunk
}

func (s *Snapshot) Chunk(coord ChunkCoord) (*Chunk, bool) {
	ch, ok := s.chunks[coord]
	return ch, ok
}

func (s *Snapshot) Loaded() []ChunkCoord {
	coords := make([]ChunkCoord, 0, len(s.chunks))
	for coord := range s.chunks {
		coords = append(coords, coord)
	}
	sortCoords(coords)
	return coords
}

func (s *Snapshot) Len() int {
	return len(s.chunks)
}

// Streamer runs registry maintenance on a fixed cadence from one goroutine and
// publishes the result for concurrent readers.
type Streamer struct {
	registry *Registry
	source   ViewerSource
	sink     Sink
	dim      Dimensions
	tileSize float64
	interval time.Duration
	logger   *log.Logger

	tick     uint64
	snapshot atomic.Pointer[Snapshot]
	running  atomic.Bool
}

// NewStreamer wires a registry to a viewer source. sink may be nil.
func NewStreamer(cfg *config.Config, generator Generator, source ViewerSource, sink Sink, opts ...Option) *Streamer {
	o := applyOptions(opts)
	s := &Streamer{
		registry: NewRegistry(generator, cfg.Streaming, opts...),
		source:   source,
		sink:     sink,
		dim:      DimensionsFrom(cfg.Chunk),
		tileSize: cfg.Chunk.TileSize,
		interval: cfg.Streaming.MaintenanceInterval.Duration(),
		logger:   o.logger,
	}
	s.snapshot.Store(&Snapshot{chunks: map[ChunkCoord]*Chunk{}})
	return s
}

// Snapshot returns the most recently published state.
func (s *Streamer) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Loaded returns the coordinates in the latest snapshot.
func (s *Streamer) Loaded() []ChunkCoord {
	return s.Snapshot().Loaded()
}

// Chunk looks a chunk up in the latest snapshot.
func (s *Streamer) Chunk(coord ChunkCoord) (*Chunk, bool) {
	return s.Snapshot().Chunk(coord)
}

// Run performs maintenance every interval until ctx ends. Only one Run may be
// active per Streamer.
func (s *Streamer) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("streamer already running")
	}
	defer s.running.Store(false)

	if s.interval <= 0 {
		return fmt.Errorf("invalid maintenance interval %s", s.interval)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.Tick(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.Printf("chunk maintenance failed: %v", err)
			}
		}
	}
}

// Tick runs one maintenance pass. Without a viewer it does nothing. Tick is
// the writer side: callers other than Run must not overlap with it.
func (s *Streamer) Tick(ctx context.Context) (Delta, error) {
	pos, ok := s.source.Viewer()
	if !ok {
		return Delta{}, nil
	}
	viewer := WorldToChunk(pos, s.dim, s.tileSize)

	delta, err := s.registry.Maintain(ctx, viewer)
	if !delta.Empty() || s.registry.Pending() != s.Snapshot().Pending {
		s.tick++
		s.snapshot.Store(&Snapshot{
			Tick:    s.tick,
			Viewer:  viewer,
			Pending: s.registry.Pending(),
			chunks:  s.registry.snapshot(),
		})
		s.forward(delta)
	}
	return delta, err
}

func (s *Streamer) forward(delta Delta) {
	if s.sink == nil {
		return
	}
	for _, coord := range delta.Loaded {
		ch, ok := s.registry.Chunk(coord)
		if !ok {
			continue
		}
		if err := s.sink.ChunkLoaded(ch); err != nil {
			s.logger.Printf("sink load %v: %v", coord, err)
		}
	}
	for _, coord := range delta.Unloaded {
		if err := s.sink.ChunkUnloaded(coord); err != nil {
			s.logger.Printf("sink unload %v: %v", coord, err)
		}
	}
}

// Pending reports how many in-range chunks awaited generation after the last
// published pass. It is safe to call while Run is active.
func (s *Streamer) Pending() int {
	return s.Snapshot().Pending
}
