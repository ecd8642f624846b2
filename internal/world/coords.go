package world

import (
	"math"

	"worldgen/internal/config"
)

// ChunkCoord identifies a chunk in global chunk space.
type ChunkCoord struct {
	X int
	Y int
}

// TileCoord describes a tile position in global tile space.
type TileCoord struct {
	X int
	Y int
}

// Dimensions defines the size of a chunk in tiles.
type Dimensions struct {
	Width  int
	Height int
}

// Area returns the number of tiles in a chunk.
func (d Dimensions) Area() int {
	return d.Width * d.Height
}

// Vec2 is a position in continuous world units.
type Vec2 struct {
	X float64
	Y float64
}

// DimensionsFrom reads the chunk size from configuration.
func DimensionsFrom(cfg config.ChunkConfig) Dimensions {
	return Dimensions{Width: cfg.Width, Height: cfg.Height}
}

// Origin returns the global tile of the chunk's local (0,0).
func (c ChunkCoord) Origin(dim Dimensions) TileCoord {
	return TileCoord{X: c.X * dim.Width, Y: c.Y * dim.Height}
}

// Add offsets the coordinate by (dx, dy) chunks.
func (c ChunkCoord) Add(dx, dy int) ChunkCoord {
	return ChunkCoord{X: c.X + dx, Y: c.Y + dy}
}

// Chebyshev returns the chessboard distance between two chunks.
func Chebyshev(a, b ChunkCoord) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// LocateTile returns the chunk containing tile and the tile's local index.
func LocateTile(tile TileCoord, dim Dimensions) (ChunkCoord, int, int) {
	chunk := ChunkCoord{
		X: floorDiv(tile.X, dim.Width),
		Y: floorDiv(tile.Y, dim.Height),
	}
	origin := chunk.Origin(dim)
	return chunk, tile.X - origin.X, tile.Y - origin.Y
}

// WorldToChunk maps a world position to the chunk under it. tileSize is the
// number of world units per tile.
func WorldToChunk(pos Vec2, dim Dimensions, tileSize float64) ChunkCoord {
	return ChunkCoord{
		X: int(math.Floor(pos.X / (float64(dim.Width) * tileSize))),
		Y: int(math.Floor(pos.Y / (float64(dim.Height) * tileSize))),
	}
}

// SpiralOffsets lists every offset within radius, starting at (0,0) and
// walking each ring bottom edge, right edge, top edge, then left edge.
func SpiralOffsets(radius int) []ChunkCoord {
	if radius < 0 {
		return nil
	}
	side := 2*radius + 1
	out := make([]ChunkCoord, 0, side*side)
	out = append(out, ChunkCoord{})
	for r := 1; r <= radius; r++ {
		for x := -r; x <= r; x++ {
			out = append(out, ChunkCoord{X: x, Y: -r})
		}
		for y := -r + 1; y <= r; y++ {
			out = append(out, ChunkCoord{X: r, Y: y})
		}
		for x := r - 1; x >= -r; x-- {
			out = append(out, ChunkCoord{X: x, Y: r})
		}
		for y := r - 1; y > -r; y-- {
			out = append(out, ChunkCoord{X: -r, Y: y})
		}
	}
	return out
}

func floorDiv(value, size int) int {
	if size <= 0 {
		return 0
	}
	if value >= 0 {
		return value / size
	}
	return -((-value - 1) / size) - 1
}
