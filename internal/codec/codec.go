// Package codec serialises generated chunks into a compact versioned binary
// form for consumers outside the process.
//
// Layout: the 4-byte magic "TWC1", a version byte, the chunk coordinate as two
// little-endian int32 values, the dimensions as two little-endian uint16
// values, then a zstd frame holding width×height tile ids followed by
// width×height biome ids, one byte each, row-major.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"

	"worldgen/internal/biome"
	"worldgen/internal/world"
)

const (
	Magic   = "TWC1"
	Version = 1

	// MaxTiles caps width×height so a header cannot demand an unbounded
	// allocation.
	MaxTiles = 1 << 20

	headerSize = len(Magic) + 1 + 4 + 4 + 2 + 2
)

var (
	ErrBadMagic           = errors.New("not a chunk file")
	ErrUnsupportedVersion = errors.New("unsupported chunk format version")
	ErrTruncated          = errors.New("chunk data truncated")
	ErrSizeMismatch       = errors.New("tile payload does not match dimensions")
	ErrInvalidTile        = errors.New("invalid tile or biome id")
	ErrTooLarge           = errors.New("chunk exceeds tile limit")
)

var encoder = sync.OnceValues(func() (*zstd.Encoder, error) {
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
})

var decoder = sync.OnceValues(func() (*zstd.Decoder, error) {
	return zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0),
		zstd.WithDecoderMaxMemory(2*MaxTiles),
	)
})

// Encode serialises a chunk.
func Encode(chunk *world.Chunk) ([]byte, error) {
	if chunk == nil {
		return nil, errors.New("encode: nil chunk")
	}
	dim := chunk.Dimensions()
	if dim.Width <= 0 || dim.Height <= 0 || dim.Width > math.MaxUint16 || dim.Height > math.MaxUint16 {
		return nil, fmt.Errorf("encode chunk %v: unsupported dimensions %dx%d", chunk.Key, dim.Width, dim.Height)
	}
	if chunk.Key.X < math.MinInt32 || chunk.Key.X > math.MaxInt32 || chunk.Key.Y < math.MinInt32 || chunk.Key.Y > math.MaxInt32 {
		return nil, fmt.Errorf("encode chunk %v: coordinate out of range", chunk.Key)
	}
	if dim.Area() > MaxTiles {
		return nil, fmt.Errorf("encode chunk %v: %dx%d: %w", chunk.Key, dim.Width, dim.Height, ErrTooLarge)
	}

	area := dim.Area()
	payload := make([]byte, 2*area)
	for i, tile := range chunk.Tiles() {
		payload[i] = byte(tile.ID)
		payload[area+i] = byte(tile.Biome)
	}

	enc, err := encoder()
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}

	out := make([]byte, headerSize, headerSize+area/2)
	copy(out, Magic)
	out[4] = Version
	binary.LittleEndian.PutUint32(out[5:], uint32(int32(chunk.Key.X)))
	binary.LittleEndian.PutUint32(out[9:], uint32(int32(chunk.Key.Y)))
	binary.LittleEndian.PutUint16(out[13:], uint16(dim.Width))
	binary.LittleEndian.PutUint16(out[15:], uint16(dim.Height))
	return enc.EncodeAll(payload, out), nil
}

// Header describes an encoded chunk without decompressing its tiles.
type Header struct {
	Version    byte
	Coord      world.ChunkCoord
	Dimensions world.Dimensions
}

// ReadHeader parses and checks the fixed-size prefix of an encoded chunk.
func ReadHeader(data []byte) (Header, error) {
	if len(data) < headerSize {
		if len(data) >= len(Magic) && !bytes.Equal(data[:len(Magic)], []byte(Magic)) {
			return Header{}, ErrBadMagic
		}
		return Header{}, ErrTruncated
	}
	if !bytes.Equal(data[:len(Magic)], []byte(Magic)) {
		return Header{}, ErrBadMagic
	}
	h := Header{
		Version: data[4],
		Coord: world.ChunkCoord{
			X: int(int32(binary.LittleEndian.Uint32(data[5:]))),
			Y: int(int32(binary.LittleEndian.Uint32(data[9:]))),
		},
		Dimensions: world.Dimensions{
			Width:  int(binary.LittleEndian.Uint16(data[13:])),
			Height: int(binary.LittleEndian.Uint16(data[15:])),
		},
	}
	if h.Version != Version {
		return h, fmt.Errorf("version %d: %w", h.Version, ErrUnsupportedVersion)
	}
	if h.Dimensions.Width == 0 || h.Dimensions.Height == 0 {
		return h, fmt.Errorf("dimensions %dx%d: %w", h.Dimensions.Width, h.Dimensions.Height, ErrSizeMismatch)
	}
	if h.Dimensions.Area() > MaxTiles {
		return h, fmt.Errorf("dimensions %dx%d: %w", h.Dimensions.Width, h.Dimensions.Height, ErrTooLarge)
	}
	return h, nil
}

// Decode rebuilds a chunk from Encode output.
func Decode(data []byte) (*world.Chunk, error) {
	h, err := ReadHeader(data)
	if err != nil {
		return nil, fmt.Errorf("decode chunk: %w", err)
	}
	dec, err := decoder()
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	area := h.Dimensions.Area()
	payload, err := dec.DecodeAll(data[headerSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("decode chunk %v: %w", h.Coord, err)
	}
	if len(payload) != 2*area {
		return nil, fmt.Errorf("decode chunk %v: %d payload bytes for %dx%d: %w",
			h.Coord, len(payload), h.Dimensions.Width, h.Dimensions.Height, ErrSizeMismatch)
	}

	tiles := make([]world.Tile, area)
	for i := range tiles {
		tile := world.Tile{ID: biome.TileID(payload[i]), Biome: biome.Biome(payload[area+i])}
		if !tile.ID.Valid() || !tile.Biome.Valid() {
			return nil, fmt.Errorf("decode chunk %v: tile %d (%d/%d): %w", h.Coord, i, payload[i], payload[area+i], ErrInvalidTile)
		}
		tiles[i] = tile
	}
	return world.ChunkFromTiles(h.Coord, h.Dimensions, tiles)
}
