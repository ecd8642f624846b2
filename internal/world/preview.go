package world

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// ColorFunc picks the colour a tile is drawn with.
type ColorFunc func(Tile) color.RGBA

// TileColor draws tiles with the terrain palette.
func TileColor(t Tile) color.RGBA { return t.ID.Color() }

// BiomeColor draws tiles with their biome's own colour.
func BiomeColor(t Tile) color.RGBA { return t.Biome.Color() }

// SaveChunkPreview renders a top-down PNG of the chunk into outputDir, one
// scale×scale block per tile, north up.
func SaveChunkPreview(chunk *Chunk, outputDir string, scale int) error {
	if chunk == nil {
		return fmt.Errorf("chunk is nil")
	}
	dim := chunk.Dimensions()
	if dim.Width <= 0 || dim.Height <= 0 {
		return fmt.Errorf("invalid chunk dimensions: %+v", dim)
	}
	if scale <= 0 {
		scale = 1
	}

	img := image.NewNRGBA(image.Rect(0, 0, dim.Width*scale, dim.Height*scale))
	chunk.ForEachTile(func(localX, localY int, tile Tile) bool {
		fillBlock(img, localX*scale, (dim.Height-1-localY)*scale, scale, TileColor(tile))
		return true
	})

	if err := ensurePreviewDir(outputDir); err != nil {
		return err
	}
	path := filepath.Join(outputDir, fmt.Sprintf("chunk_%d_%d.png", chunk.Key.X, chunk.Key.Y))
	return writePNG(path, img)
}

// RenderRegion draws every chunk within radius of center into one image, one
// pixel per tile. The y axis is flipped so north is up. Chunks are generated
// concurrently.
func RenderRegion(ctx context.Context, generator Generator, dim Dimensions, center ChunkCoord, radius int, colorOf ColorFunc) (*image.NRGBA, error) {
	if radius < 0 {
		return nil, fmt.Errorf("radius cannot be negative")
	}
	if dim.Width <= 0 || dim.Height <= 0 {
		return nil, fmt.Errorf("invalid chunk dimensions: %+v", dim)
	}
	if colorOf == nil {
		colorOf = TileColor
	}

	side := 2*radius + 1
	mapWidth := dim.Width * side
	mapHeight := dim.Height * side
	img := image.NewNRGBA(image.Rect(0, 0, mapWidth, mapHeight))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(side)
	for cy := -radius; cy <= radius; cy++ {
		for cx := -radius; cx <= radius; cx++ {
			group.Go(func() error {
				coord := center.Add(cx, cy)
				chunk, err := generator.Generate(gctx, coord)
				if err != nil {
					return err
				}
				baseX := (cx + radius) * dim.Width
				baseY := (cy + radius) * dim.Height
				// Each goroutine writes a disjoint rectangle of Pix.
				chunk.ForEachTile(func(localX, localY int, tile Tile) bool {
					px := baseX + localX
					py := mapHeight - 1 - (baseY + localY)
					img.SetNRGBA(px, py, toNRGBA(colorOf(tile)))
					return true
				})
				return nil
			})
		}
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("render region around %v: %w", center, err)
	}
	return img, nil
}

// SaveRegionPreview writes an image produced by RenderRegion.
func SaveRegionPreview(img image.Image, path string) error {
	if img == nil {
		return fmt.Errorf("image is nil")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := ensurePreviewDir(dir); err != nil {
			return err
		}
	}
	return writePNG(path, img)
}

func fillBlock(img *image.NRGBA, x0, y0, size int, col color.RGBA) {
	c := toNRGBA(col)
	for y := y0; y < y0+size; y++ {
		for x := x0; x < x0+size; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// toNRGBA assumes opaque input, which every palette colour is.
func toNRGBA(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func writePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close preview: %w", err)
	}
	return nil
}

func ensurePreviewDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory is empty")
	}
	return os.MkdirAll(dir, 0o755)
}
