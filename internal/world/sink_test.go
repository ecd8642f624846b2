package world

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func coordEncoder(chunk *Chunk) ([]byte, error) {
	return []byte(fmt.Sprintf("%d,%d", chunk.Key.X, chunk.Key.Y)), nil
}

func TestDiskSinkWritesAndRemovesChunkFiles(t *testing.T) {
	base := filepath.Join(t.TempDir(), "chunks")
	sink, err := NewDiskSink(base, coordEncoder)
	if err != nil {
		t.Fatalf("new disk sink: %v", err)
	}

	coord := ChunkCoord{X: -2, Y: 7}
	if err := sink.ChunkLoaded(NewChunk(coord, Dimensions{Width: 1, Height: 1})); err != nil {
		t.Fatalf("chunk loaded: %v", err)
	}

	data, err := sink.ReadChunkFile(coord)
	if err != nil {
		t.Fatalf("read chunk file: %v", err)
	}
	if string(data) != "-2,7" {
		t.Fatalf("unexpected payload %q", data)
	}
	if want := filepath.Join(base, "-2", "chunk_7.twc"); sink.Path(coord) != want {
		t.Fatalf("unexpected path %s, want %s", sink.Path(coord), want)
	}

	entries, err := os.ReadDir(filepath.Dir(sink.Path(coord)))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected no temporary files to remain, found %d entries", len(entries))
	}

	if err := sink.ChunkUnloaded(coord); err != nil {
		t.Fatalf("chunk unloaded: %v", err)
	}
	if _, err := os.Stat(sink.Path(coord)); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected chunk file to be removed, stat err: %v", err)
	}
	if err := sink.ChunkUnloaded(coord); err != nil {
		t.Fatalf("unloading twice should be harmless: %v", err)
	}
}

func TestDiskSinkSurfacesEncoderErrors(t *testing.T) {
	boom := errors.New("boom")
	sink, err := NewDiskSink(t.TempDir(), func(*Chunk) ([]byte, error) { return nil, boom })
	if err != nil {
		t.Fatalf("new disk sink: %v", err)
	}
	if err := sink.ChunkLoaded(NewChunk(ChunkCoord{}, Dimensions{Width: 1, Height: 1})); !errors.Is(err, boom) {
		t.Fatalf("expected encoder error, got %v", err)
	}
}

func TestNewDiskSinkValidatesArguments(t *testing.T) {
	if _, err := NewDiskSink("", coordEncoder); err == nil {
		t.Fatal("expected empty base path to fail")
	}
	if _, err := NewDiskSink(t.TempDir(), nil); err == nil {
		t.Fatal("expected nil encoder to fail")
	}
}

func TestMemorySinkRecordsEvents(t *testing.T) {
	sink := NewMemorySink()
	a := NewChunk(ChunkCoord{X: 1}, Dimensions{Width: 1, Height: 1})
	_ = sink.ChunkLoaded(a)
	_ = sink.ChunkUnloaded(a.Key)

	events := sink.Events()
	want := []Event{{Kind: EventLoaded, Coord: a.Key}, {Kind: EventUnloaded, Coord: a.Key}}
	if len(events) != 2 || events[0] != want[0] || events[1] != want[1] {
		t.Fatalf("unexpected events %v", events)
	}
	if sink.Len() != 0 {
		t.Fatalf("expected sink to be empty after unload")
	}
}
