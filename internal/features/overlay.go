package features

import (
	"image"
	"image/color"
	"math"

	"worldgen/internal/world"
)

var (
	coreColor     = color.NRGBA{R: 31, G: 143, B: 255, A: 255}
	landmarkColor = color.NRGBA{R: 102, G: 51, B: 153, A: 255}
	chunkColor    = color.NRGBA{R: 255, G: 204, B: 51, A: 255}
)

// Overlay outlines features on a north-up map with one pixel per tile.
// origin is the global tile drawn in the bottom-left pixel. Landmarks also get
// their containing chunk outlined.
func Overlay(img *image.NRGBA, features []Feature, origin world.TileCoord, dim world.Dimensions) {
	height := img.Bounds().Dy()
	plot := func(tx, ty int, c color.NRGBA) {
		px := tx - origin.X
		py := height - 1 - (ty - origin.Y)
		if image.Pt(px, py).In(img.Bounds()) {
			img.SetNRGBA(px, py, c)
		}
	}

	for _, f := range features {
		c := landmarkColor
		if f.Kind == Core {
			c = coreColor
		}
		steps := max(16, int(2*math.Pi*f.Radius))
		for i := 0; i < steps; i++ {
			angle := 2 * math.Pi * float64(i) / float64(steps)
			plot(int(math.Round(f.X+f.Radius*math.Cos(angle))), int(math.Round(f.Y+f.Radius*math.Sin(angle))), c)
		}

		if f.Kind != Landmark || dim.Width <= 0 || dim.Height <= 0 {
			continue
		}
		corner := f.Chunk(dim).Origin(dim)
		for x := 0; x < dim.Width; x++ {
			plot(corner.X+x, corner.Y, chunkColor)
			plot(corner.X+x, corner.Y+dim.Height-1, chunkColor)
		}
		for y := 0; y < dim.Height; y++ {
			plot(corner.X, corner.Y+y, chunkColor)
			plot(corner.X+dim.Width-1, corner.Y+y, chunkColor)
		}
	}
}
