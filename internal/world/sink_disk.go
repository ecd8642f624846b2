package world

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// EncodeFunc serialises a chunk for external consumers.
type EncodeFunc func(chunk *Chunk) ([]byte, error)

// DiskSink mirrors the loaded set as one encoded file per chunk beneath
// basePath and removes files when chunks unload.
type DiskSink struct {
	basePath string
	encode   EncodeFunc
}

// NewDiskSink creates a sink writing encoded chunks beneath basePath.
func NewDiskSink(basePath string, encode EncodeFunc) (*DiskSink, error) {
	if basePath == "" {
		return nil, errors.New("disk sink: base path is empty")
	}
	if encode == nil {
		return nil, errors.New("disk sink: encoder is nil")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create chunk directory: %w", err)
	}
	return &DiskSink{basePath: basePath, encode: encode}, nil
}

// Path returns the file a chunk is written to.
func (d *DiskSink) Path(coord ChunkCoord) string {
	dir := filepath.Join(d.basePath, strconv.Itoa(coord.X))
	return filepath.Join(dir, fmt.Sprintf("chunk_%d.twc", coord.Y))
}

func (d *DiskSink) ChunkLoaded(chunk *Chunk) error {
	payload, err := d.encode(chunk)
	if err != nil {
		return fmt.Errorf("encode chunk %v: %w", chunk.Key, err)
	}
	path := d.Path(chunk.Key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chunk directory: %w", err)
	}

	// Write beside the target and rename so readers never see a partial file.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".chunk-*")
	if err != nil {
		return fmt.Errorf("create chunk file: %w", err)
	}
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write chunk file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("sync chunk file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close chunk file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publish chunk file: %w", err)
	}
	return nil
}

func (d *DiskSink) ChunkUnloaded(coord ChunkCoord) error {
	if err := os.Remove(d.Path(coord)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove chunk file: %w", err)
	}
	return nil
}

// ReadChunkFile returns the raw encoded bytes for coord.
func (d *DiskSink) ReadChunkFile(coord ChunkCoord) ([]byte, error) {
	data, err := os.ReadFile(d.Path(coord))
	if err != nil {
		return nil, fmt.Errorf("read chunk file: %w", err)
	}
	return data, nil
}
