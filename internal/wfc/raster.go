package wfc

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// Rasterize paints each cell of the solution as a scale×scale block in its
// variant's colour.
func Rasterize(solution Solution, scale int) (*image.NRGBA, error) {
	if solution.Set == nil || len(solution.Assignments) != solution.Width*solution.Height {
		return nil, fmt.Errorf("rasterize: incomplete solution")
	}
	if scale <= 0 {
		scale = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, solution.Width*scale, solution.Height*scale))
	for _, a := range solution.Assignments {
		c := color.NRGBAModel.Convert(solution.Set.Color(a.Variant)).(color.NRGBA)
		for dy := 0; dy < scale; dy++ {
			for dx := 0; dx < scale; dx++ {
				img.SetNRGBA(a.Coord.X*scale+dx, a.Coord.Y*scale+dy, c)
			}
		}
	}
	return img, nil
}

// SavePNG encodes img to path, creating parent directories as needed.
func SavePNG(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}
