package world

import "sync"

// Sink receives chunk lifecycle events from a Streamer. Calls arrive from the
// streamer's maintenance goroutine, loads before unloads within a pass.
type Sink interface {
	ChunkLoaded(chunk *Chunk) error
	ChunkUnloaded(coord ChunkCoord) error
}

// EventKind distinguishes recorded sink events.
type EventKind string

const (
	EventLoaded   EventKind = "loaded"
	EventUnloaded EventKind = "unloaded"
)

// Event is one recorded sink call.
type Event struct {
	Kind  EventKind
	Coord ChunkCoord
}

// MemorySink keeps the chunks it has been handed and a log of events.
type MemorySink struct {
	mu     sync.RWMutex
	chunks map[ChunkCoord]*Chunk
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{chunks: make(map[ChunkCoord]*Chunk)}
}

func (m *MemorySink) ChunkLoaded(chunk *Chunk) error {
	m.mu.Lock()
	m.chunks[chunk.Key] = chunk
	m.events = append(m.events, Event{Kind: EventLoaded, Coord: chunk.Key})
	m.mu.Unlock()
	return nil
}

func (m *MemorySink) ChunkUnloaded(coord ChunkCoord) error {
	m.mu.Lock()
	delete(m.chunks, coord)
	m.events = append(m.events, Event{Kind: EventUnloaded, Coord: coord})
	m.mu.Unlock()
	return nil
}

func (m *MemorySink) Chunk(coord ChunkCoord) (*Chunk, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ch, ok := m.chunks[coord]
	return ch, ok
}

func (m *MemorySink) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks)
}

// Events returns a copy of the recorded events in arrival order.
func (m *MemorySink) Events() []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	dup := make([]Event, len(m.events))
	copy(dup, m.events)
	return dup
}
