// Package climate quantises raw noise samples into the ordinal levels used by
// biome selection.
package climate

import (
	"math"

	"worldgen/internal/noise"
)

// TableVersion identifies the threshold tables below. Bump it whenever a
// threshold changes, since stored worlds classify differently afterwards.
const TableVersion = 1

// Level counts per channel. A channel with n thresholds has n+1 levels.
const (
	TemperatureLevels     = 5
	HumidityLevels        = 5
	ContinentalnessLevels = 6
	ErosionLevels         = 7
	PeaksValleysLevels    = 5
)

// Continentalness levels.
const (
	DeepOcean = iota
	Ocean
	Coast
	NearInland
	MidInland
	FarInland
)

// Peaks-and-valleys levels.
const (
	Valleys = iota
	Low
	Mid
	High
	Peaks
)

var (
	temperatureThresholds     = [TemperatureLevels - 1]float64{-0.45, -0.15, 0.20, 0.55}
	humidityThresholds        = [HumidityLevels - 1]float64{-0.35, -0.10, 0.10, 0.30}
	continentalnessThresholds = [ContinentalnessLevels - 1]float64{-0.455, -0.19, -0.11, 0.03, 0.30}
	erosionThresholds         = [ErosionLevels - 1]float64{-0.78, -0.375, -0.2225, 0.05, 0.45, 0.55}
	peaksValleysThresholds    = [PeaksValleysLevels - 1]float64{-0.85, -0.60, 0.20, 0.70}
)

// Point is a classified sample. Raw values are kept for diagnostics.
type Point struct {
	X, Y int

	Temperature     float64
	Humidity        float64
	Continentalness float64
	Erosion         float64
	Weirdness       float64
	PeaksValleys    float64

	TemperatureLevel     int
	HumidityLevel        int
	ContinentalnessLevel int
	ErosionLevel         int
	PeaksValleysLevel    int
	IsWeird              bool
}

// Levels returns the five ordinal levels in biome-table order.
func (p Point) Levels() [5]int {
	return [5]int{
		p.TemperatureLevel,
		p.HumidityLevel,
		p.ContinentalnessLevel,
		p.ErosionLevel,
		p.PeaksValleysLevel,
	}
}

// Classify quantises s. It is total: NaN falls into level 0.
func Classify(s noise.Sample) Point {
	pv := PeaksValleys(s.Weirdness)
	return Point{
		X:                    s.X,
		Y:                    s.Y,
		Temperature:          s.Temperature,
		Humidity:             s.Humidity,
		Continentalness:      s.Continentalness,
		Erosion:              s.Erosion,
		Weirdness:            s.Weirdness,
		PeaksValleys:         pv,
		TemperatureLevel:     level(s.Temperature, temperatureThresholds[:]),
		HumidityLevel:        level(s.Humidity, humidityThresholds[:]),
		ContinentalnessLevel: level(s.Continentalness, continentalnessThresholds[:]),
		ErosionLevel:         level(s.Erosion, erosionThresholds[:]),
		PeaksValleysLevel:    level(pv, peaksValleysThresholds[:]),
		IsWeird:              s.Weirdness > 0,
	}
}

// PeaksValleys folds weirdness into the ridge value 1 - |3|w| - 2|.
func PeaksValleys(weirdness float64) float64 {
	return 1 - math.Abs(3*math.Abs(weirdness)-2)
}

// Level exposes the quantisation for a single channel. Weirdness is reported
// as its peaks-and-valleys level.
func Level(ch noise.Channel, value float64) int {
	switch ch {
	case noise.Temperature:
		return level(value, temperatureThresholds[:])
	case noise.Humidity:
		return level(value, humidityThresholds[:])
	case noise.Continentalness:
		return level(value, continentalnessThresholds[:])
	case noise.Erosion:
		return level(value, erosionThresholds[:])
	case noise.Weirdness:
		return level(PeaksValleys(value), peaksValleysThresholds[:])
	}
	return 0
}

// level counts the thresholds that are <= value.
func level(value float64, thresholds []float64) int {
	n := 0
	for _, t := range thresholds {
		if value >= t {
			n++
		}
	}
	return n
}
