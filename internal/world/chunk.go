package world

import (
	"fmt"

	"worldgen/internal/biome"
)

// Tile is one generated cell of a chunk.
type Tile struct {
	ID    biome.TileID `json:"tile"`
	Biome biome.Biome  `json:"biome"`
}

// Chunk stores a dense row-major tile grid. A chunk is filled once by a
// generator and treated as read-only after it is handed out.
type Chunk struct {
	Key       ChunkCoord
	dimension Dimensions
	tiles     []Tile
}

func NewChunk(key ChunkCoord, dim Dimensions) *Chunk {
	area := dim.Area()
	if area < 0 {
		area = 0
	}
	return &Chunk{
		Key:       key,
		dimension: dim,
		tiles:     make([]Tile, area),
	}
}

// ChunkFromTiles wraps an existing buffer. The buffer length must equal the
// chunk area.
func ChunkFromTiles(key ChunkCoord, dim Dimensions, tiles []Tile) (*Chunk, error) {
	if dim.Width <= 0 || dim.Height <= 0 {
		return nil, fmt.Errorf("invalid chunk dimensions: %+v", dim)
	}
	if len(tiles) != dim.Area() {
		return nil, fmt.Errorf("chunk %v: tile buffer has %d entries, want %d", key, len(tiles), dim.Area())
	}
	return &Chunk{Key: key, dimension: dim, tiles: tiles}, nil
}

func (c *Chunk) Dimensions() Dimensions {
	return c.dimension
}

// Origin returns the global tile coordinate of local (0,0).
func (c *Chunk) Origin() TileCoord {
	return c.Key.Origin(c.dimension)
}

func (c *Chunk) index(localX, localY int) (int, bool) {
	if localX < 0 || localY < 0 || localX >= c.dimension.Width || localY >= c.dimension.Height {
		return 0, false
	}
	return localY*c.dimension.Width + localX, true
}

// Tile returns the tile at a local position.
func (c *Chunk) Tile(localX, localY int) (Tile, bool) {
	idx, ok := c.index(localX, localY)
	if !ok {
		return Tile{}, false
	}
	return c.tiles[idx], true
}

// SetTile stores a tile at a local position. It reports false when the
// position lies outside the chunk.
func (c *Chunk) SetTile(localX, localY int, tile Tile) bool {
	idx, ok := c.index(localX, localY)
	if !ok {
		return false
	}
	c.tiles[idx] = tile
	return true
}

// GlobalToLocal converts a global tile to a local index if it falls inside the
// chunk.
func (c *Chunk) GlobalToLocal(tile TileCoord) (int, int, bool) {
	origin := c.Origin()
	localX := tile.X - origin.X
	localY := tile.Y - origin.Y
	if _, ok := c.index(localX, localY); !ok {
		return 0, 0, false
	}
	return localX, localY, true
}

// Tiles returns a copy of the row-major tile buffer.
func (c *Chunk) Tiles() []Tile {
	dup := make([]Tile, len(c.tiles))
	copy(dup, c.tiles)
	return dup
}

// ForEachTile visits tiles in row-major order until fn returns false.
func (c *Chunk) ForEachTile(fn func(localX, localY int, tile Tile) bool) {
	for i, tile := range c.tiles {
		if !fn(i%c.dimension.Width, i/c.dimension.Width, tile) {
			return
		}
	}
}

// Len returns the number of tiles in the buffer.
func (c *Chunk) Len() int {
	return len(c.tiles)
}
