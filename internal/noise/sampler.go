package noise

import (
	"math"
	"math/rand/v2"

	"github.com/ojrac/opensimplex-go"

	"worldgen/internal/config"
)

// Channel identifies one scalar climate field.
type Channel int

const (
	Temperature Channel = iota
	Humidity
	Continentalness
	Erosion
	Weirdness

	channelCount
)

// Channels lists every channel in sampling order.
var Channels = [channelCount]Channel{Temperature, Humidity, Continentalness, Erosion, Weirdness}

func (c Channel) String() string {
	switch c {
	case Temperature:
		return "temperature"
	case Humidity:
		return "humidity"
	case Continentalness:
		return "continentalness"
	case Erosion:
		return "erosion"
	case Weirdness:
		return "weirdness"
	}
	return "unknown"
}

const (
	// maxOffset bounds the per-channel coordinate shift, in tiles.
	maxOffset = 1_000_000.0
	// gradientOffset is the fixed shift applied to the latitude lattice.
	gradientOffset = 10_000.0
	gradientSalt   = 0x6772616469656e74
)

// Sample holds the raw value of every channel at one tile coordinate.
type Sample struct {
	X, Y            int
	Temperature     float64
	Humidity        float64
	Continentalness float64
	Erosion         float64
	Weirdness       float64
}

type layer struct {
	lattice   opensimplex.Noise
	offsetX   float64
	offsetY   float64
	sin, cos  float64
	frequency float64
}

// Sampler evaluates decorrelated fractal noise channels for a world seed.
// All state is fixed at construction, so a Sampler is safe for concurrent use.
type Sampler struct {
	cfg      config.NoiseConfig
	seed     int64
	layers   [channelCount]layer
	gradient layer
}

func NewSampler(seed int64, cfg config.NoiseConfig) *Sampler {
	s := &Sampler{cfg: cfg, seed: seed}
	freqs := [channelCount]float64{
		Temperature:     cfg.Frequencies.Temperature,
		Humidity:        cfg.Frequencies.Humidity,
		Continentalness: cfg.Frequencies.Continentalness,
		Erosion:         cfg.Frequencies.Erosion,
		Weirdness:       cfg.Frequencies.Weirdness,
	}
	for _, ch := range Channels {
		salt := uint64(ch) + 1
		sub := SubSeed(seed, salt)
		rng := rand.New(rand.NewPCG(sub, salt))
		angle := rng.Float64() * 2 * math.Pi
		s.layers[ch] = layer{
			lattice:   opensimplex.New(int64(sub)),
			offsetX:   (rng.Float64()*2 - 1) * maxOffset,
			offsetY:   (rng.Float64()*2 - 1) * maxOffset,
			sin:       math.Sin(angle),
			cos:       math.Cos(angle),
			frequency: freqs[ch],
		}
	}
	s.gradient = layer{
		lattice:   opensimplex.New(int64(SubSeed(seed, gradientSalt))),
		offsetX:   gradientOffset,
		offsetY:   gradientOffset,
		sin:       0,
		cos:       1,
		frequency: cfg.Frequencies.Gradient,
	}
	return s
}

// Seed returns the root seed the sampler was built from.
func (s *Sampler) Seed() int64 {
	return s.seed
}

// Sample returns the value of ch at tile (x, y). Temperature and humidity are
// blended with the latitude gradient.
func (s *Sampler) Sample(ch Channel, x, y int) float64 {
	raw := s.Raw(ch, x, y)
	if ch != Temperature && ch != Humidity {
		return raw
	}
	return s.blend(raw, s.Gradient(x, y))
}

// Raw returns the fractal value of ch without the gradient blend.
func (s *Sampler) Raw(ch Channel, x, y int) float64 {
	if ch < 0 || ch >= channelCount {
		return 0
	}
	return s.fractalNoise(&s.layers[ch], float64(x), float64(y))
}

// Gradient returns the pole-to-equator banding value at (x, y).
func (s *Sampler) Gradient(x, y int) float64 {
	g := &s.gradient
	return g.lattice.Eval2((float64(x)+g.offsetX)*g.frequency, (float64(y)+g.offsetY)*g.frequency)
}

// SampleAll evaluates every channel at (x, y), sharing one gradient lookup.
func (s *Sampler) SampleAll(x, y int) Sample {
	grad := s.Gradient(x, y)
	return Sample{
		X:               x,
		Y:               y,
		Temperature:     s.blend(s.Raw(Temperature, x, y), grad),
		Humidity:        s.blend(s.Raw(Humidity, x, y), grad),
		Continentalness: s.Raw(Continentalness, x, y),
		Erosion:         s.Raw(Erosion, x, y),
		Weirdness:       s.Raw(Weirdness, x, y),
	}
}

func (s *Sampler) blend(noise, gradient float64) float64 {
	w := s.cfg.GradientWeight
	return (1-w)*noise + w*gradient
}

func (s *Sampler) fractalNoise(l *layer, x, y float64) float64 {
	px := x + l.offsetX
	py := y + l.offsetY
	rx := px*l.cos - py*l.sin
	ry := px*l.sin + py*l.cos

	frequency := l.frequency
	amplitude := 1.0
	noiseSum := 0.0
	maxAmplitude := 0.0

	for i := 0; i < s.cfg.Octaves; i++ {
		noiseSum += l.lattice.Eval2(rx*frequency, ry*frequency) * amplitude
		maxAmplitude += amplitude
		amplitude *= s.cfg.Persistence
		frequency *= s.cfg.Lacunarity
	}

	if maxAmplitude == 0 {
		return 0
	}
	return noiseSum / maxAmplitude
}

// SubSeed derives an independent seed for a salt. The mix is SplitMix64's
// finaliser and must stay fixed: changing it changes every generated world.
func SubSeed(seed int64, salt uint64) uint64 {
	return mix64(uint64(seed) ^ mix64(salt))
}

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
