package biome

import (
	"math"

	"worldgen/internal/climate"
)

// Any marks a level requirement as a wildcard.
const Any = -1

// WeirdnessSign constrains the sign of a point's weirdness.
type WeirdnessSign uint8

const (
	AnySign WeirdnessSign = iota
	Positive
	Negative
)

// weirdnessPenalty is added to the distance when the sign requirement fails.
const weirdnessPenalty = 0.5

// Prototype is the climate a biome is tuned for. Level fields hold a target
// level or Any.
type Prototype struct {
	Temperature     int
	Humidity        int
	Continentalness int
	Erosion         int
	PeaksValleys    int
	Weirdness       WeirdnessSign
}

func (p Prototype) levels() [5]int {
	return [5]int{p.Temperature, p.Humidity, p.Continentalness, p.Erosion, p.PeaksValleys}
}

// req starts a prototype with every requirement set to Any.
func req() Prototype {
	return Prototype{Temperature: Any, Humidity: Any, Continentalness: Any, Erosion: Any, PeaksValleys: Any}
}

func (p Prototype) t(v int) Prototype { p.Temperature = v; return p }
func (p Prototype) h(v int) Prototype { p.Humidity = v; return p }
func (p Prototype) c(v int) Prototype { p.Continentalness = v; return p }
func (p Prototype) e(v int) Prototype { p.Erosion = v; return p }
func (p Prototype) pv(v int) Prototype { p.PeaksValleys = v; return p }
func (p Prototype) w(s WeirdnessSign) Prototype { p.Weirdness = s; return p }

var prototypes = [Count]Prototype{
	FrozenOcean:       req().t(0).c(1),
	DeepFrozenOcean:   req().t(0).c(0),
	ColdOcean:         req().t(1).c(1),
	DeepColdOcean:     req().t(1).c(0),
	Ocean:             req().t(2).c(1),
	DeepOcean:         req().t(2).c(0),
	LukewarmOcean:     req().t(3).c(1),
	DeepLukewarmOcean: req().t(3).c(0),
	WarmOcean:         req().t(4).c(1),

	River:       req().pv(0),
	FrozenRiver: req().t(0).pv(0),

	SnowyBeach:  req().t(0).c(2),
	Beach:       req().t(2).c(2),
	DesertBeach: req().t(4).c(2),

	SnowyPlains:          req().t(0).h(0),
	IceSpikes:            req().t(0).h(0).w(Positive),
	Plains:               req().t(1).h(1),
	FlowerForest:         req().t(2).h(0).w(Negative),
	SunflowerPlains:      req().t(2).h(0).w(Positive),
	Savanna:              req().t(3).h(0),
	Desert:               req().t(4).h(0),
	SnowyTaiga:           req().t(0).h(2).w(Positive),
	Taiga:                req().t(1).h(3),
	BirchForest:          req().t(2).h(3).w(Negative),
	OldGrowthBirchForest: req().t(2).h(3).w(Positive),
	Jungle:               req().t(3).h(3).w(Negative),
	SparseJungle:         req().t(3).h(3).w(Positive),
	OldGrowthSpruceTaiga: req().t(4).h(4).w(Negative),
	OldGrowthPineTaiga:   req().t(4).h(4).w(Positive),
	Forest:               req().t(2).h(2),
	DarkForest:           req().t(3).h(4),
	BambooJungle:         req().t(3).h(4).w(Positive),

	Badlands:       req().t(4).h(2),
	ErodedBadlands: req().t(4).h(0).w(Positive),
	WoodedBadlands: req().t(4).h(3),

	Meadow:         req().t(2).h(1).pv(2),
	CherryGrove:    req().t(2).h(1).pv(2).w(Positive),
	PaleGarden:     req().t(4).h(4).pv(2),
	SavannaPlateau: req().t(3).h(0).pv(2),

	WindsweptGravellyHills: req().t(0).h(0).e(5),
	WindsweptHills:         req().t(2).h(2).e(5),
	WindsweptForest:        req().t(2).h(3).e(5),

	JaggedPeaks: req().t(1).pv(4).e(0).w(Negative),
	FrozenPeaks: req().t(1).pv(4).e(0).w(Positive),
	StonyPeaks:  req().t(3).pv(4).e(0),
}

// PrototypeOf returns the climate requirements of b. Unknown biomes report a
// prototype that matches everything.
func PrototypeOf(b Biome) Prototype {
	if !b.Valid() {
		return req()
	}
	return prototypes[b]
}

// Distance scores how far point is from the prototype. Wildcards contribute
// nothing; a failed weirdness requirement adds a fixed penalty.
func (p Prototype) Distance(point climate.Point) float64 {
	have := point.Levels()
	want := p.levels()
	sum := 0.0
	for i := range want {
		if want[i] == Any {
			continue
		}
		d := float64(have[i] - want[i])
		sum += d * d
	}
	dist := math.Sqrt(sum)
	switch p.Weirdness {
	case Positive:
		if !point.IsWeird {
			dist += weirdnessPenalty
		}
	case Negative:
		if point.IsWeird {
			dist += weirdnessPenalty
		}
	}
	return dist
}

// Pick returns the biome whose prototype is nearest to p. Ties go to the
// earliest biome in enumeration order.
func Pick(p climate.Point) Biome {
	return PickFrom(p, all)
}

// PickFrom picks among candidates, resolving ties to the earliest candidate.
// An empty candidate list yields Plains.
func PickFrom(p climate.Point, candidates []Biome) Biome {
	protos := make([]Prototype, len(candidates))
	for i, b := range candidates {
		protos[i] = PrototypeOf(b)
	}
	if i := nearest(p, protos); i >= 0 {
		return candidates[i]
	}
	return Plains
}

// nearest returns the index of the prototype closest to p, or -1 when there
// are none. Only a strictly smaller distance displaces the current best.
func nearest(p climate.Point, protos []Prototype) int {
	best := -1
	bestDist := math.Inf(1)
	for i, proto := range protos {
		if d := proto.Distance(p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
