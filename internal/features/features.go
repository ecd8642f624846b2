// Package features places world-scale points of interest: a core at the
// origin and landmark sites scattered by Poisson-disc sampling.
package features

import (
	"fmt"
	"math"
	"math/rand/v2"

	"worldgen/internal/config"
	"worldgen/internal/world"
)

// Hexagonal packing factor, 2/sqrt(3).
const hexPacking = 1.1547005

// Candidates tried around an active sample before it is retired.
const poissonAttempts = 30

const rngStream = 0x6665617475726573

type Kind uint8

const (
	Core Kind = iota
	Landmark
)

func (k Kind) String() string {
	switch k {
	case Core:
		return "core"
	case Landmark:
		return "landmark"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Feature is a circular area of interest in global tile units, centred on the
// world origin.
type Feature struct {
	Kind   Kind    `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Chunk returns the chunk containing the feature centre.
func (f Feature) Chunk(dim world.Dimensions) world.ChunkCoord {
	return world.ChunkCoord{
		X: int(math.Floor(f.X / float64(dim.Width))),
		Y: int(math.Floor(f.Y / float64(dim.Height))),
	}
}

// PoissonRadius returns the disc radius that packs roughly target samples
// into area.
func PoissonRadius(area, target float64) float64 {
	return math.Sqrt(hexPacking * area / target)
}

// Generate returns the core followed by the landmark sites for seed. The same
// seed and configuration always give the same features.
func Generate(seed uint64, cfg config.FeaturesConfig) ([]Feature, error) {
	if cfg.WorldChunks <= 0 || cfg.ChunkTiles <= 0 {
		return nil, fmt.Errorf("features: world size %d chunks of %d tiles is invalid", cfg.WorldChunks, cfg.ChunkTiles)
	}
	if cfg.TargetSites <= 0 {
		return nil, fmt.Errorf("features: target sites must be positive, got %d", cfg.TargetSites)
	}
	if cfg.MinRadius <= 0 || cfg.MaxRadius < cfg.MinRadius {
		return nil, fmt.Errorf("features: radius bounds [%v, %v] are invalid", cfg.MinRadius, cfg.MaxRadius)
	}

	side := float64(cfg.WorldChunks * cfg.ChunkTiles)
	radius := PoissonRadius(side*side, float64(cfg.TargetSites))
	radius = min(max(radius, cfg.MinRadius), cfg.MaxRadius)

	rng := rand.New(rand.NewPCG(seed, rngStream))
	points := PoissonDisc(rng, side, side, radius, poissonAttempts)

	out := make([]Feature, 0, len(points)+1)
	out = append(out, Feature{Kind: Core, Radius: 1.5 * float64(cfg.ChunkTiles)})
	half := side / 2
	for _, p := range points {
		out = append(out, Feature{Kind: Landmark, X: p[0] - half, Y: p[1] - half, Radius: radius})
	}
	return out, nil
}

// PoissonDisc fills [0,width)×[0,height) with points no closer than radius to
// each other (Bridson's algorithm).
func PoissonDisc(rng *rand.Rand, width, height, radius float64, attempts int) [][2]float64 {
	if width <= 0 || height <= 0 || radius <= 0 {
		return nil
	}
	cell := radius / math.Sqrt2
	cols := int(math.Ceil(width / cell))
	rows := int(math.Ceil(height / cell))
	grid := make([]int, cols*rows)
	for i := range grid {
		grid[i] = -1
	}
	cellOf := func(p [2]float64) (int, int) {
		return min(int(p[0]/cell), cols-1), min(int(p[1]/cell), rows-1)
	}

	var points [][2]float64
	var active []int
	add := func(p [2]float64) {
		cx, cy := cellOf(p)
		grid[cy*cols+cx] = len(points)
		active = append(active, len(points))
		points = append(points, p)
	}
	fits := func(p [2]float64) bool {
		cx, cy := cellOf(p)
		for y := max(cy-2, 0); y <= min(cy+2, rows-1); y++ {
			for x := max(cx-2, 0); x <= min(cx+2, cols-1); x++ {
				idx := grid[y*cols+x]
				if idx < 0 {
					continue
				}
				dx, dy := points[idx][0]-p[0], points[idx][1]-p[1]
				if dx*dx+dy*dy < radius*radius {
					return false
				}
			}
		}
		return true
	}

	add([2]float64{rng.Float64() * width, rng.Float64() * height})
	for len(active) > 0 {
		slot := rng.IntN(len(active))
		origin := points[active[slot]]
		placed := false
		for k := 0; k < attempts; k++ {
			angle := rng.Float64() * 2 * math.Pi
			dist := radius * (1 + rng.Float64())
			q := [2]float64{origin[0] + dist*math.Cos(angle), origin[1] + dist*math.Sin(angle)}
			if q[0] < 0 || q[1] < 0 || q[0] >= width || q[1] >= height {
				continue
			}
			if fits(q) {
				add(q)
				placed = true
				break
			}
		}
		if !placed {
			active[slot] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}
	return points
}
