package climate

import (
	"math"
	"testing"

	"worldgen/internal/noise"
)

func TestLevelBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		ch    noise.Channel
		value float64
		want  int
	}{
		{"coldest", noise.Temperature, -1, 0},
		{"threshold is inclusive", noise.Temperature, -0.45, 1},
		{"just below threshold", noise.Temperature, -0.4500001, 0},
		{"hottest", noise.Temperature, 1, 4},
		{"dry", noise.Humidity, -0.36, 0},
		{"wet", noise.Humidity, 0.30, 4},
		{"deep ocean", noise.Continentalness, -0.9, DeepOcean},
		{"ocean", noise.Continentalness, -0.3, Ocean},
		{"coast", noise.Continentalness, -0.15, Coast},
		{"near inland", noise.Continentalness, 0, NearInland},
		{"mid inland", noise.Continentalness, 0.1, MidInland},
		{"far inland", noise.Continentalness, 0.8, FarInland},
		{"least eroded", noise.Erosion, -0.9, 0},
		{"most eroded", noise.Erosion, 0.9, ErosionLevels - 1},
		{"valley at zero weirdness", noise.Weirdness, 0, Valleys},
		{"peak at two thirds", noise.Weirdness, 2.0 / 3.0, Peaks},
		{"peak mirrors sign", noise.Weirdness, -2.0 / 3.0, Peaks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Level(tt.ch, tt.value); got != tt.want {
				t.Fatalf("Level(%s, %f) = %d, want %d", tt.ch, tt.value, got, tt.want)
			}
		})
	}
}

func TestLevelsAreMonotone(t *testing.T) {
	channels := []struct {
		ch     noise.Channel
		levels int
	}{
		{noise.Temperature, TemperatureLevels},
		{noise.Humidity, HumidityLevels},
		{noise.Continentalness, ContinentalnessLevels},
		{noise.Erosion, ErosionLevels},
	}
	for _, c := range channels {
		prev := -1
		for v := -1.5; v <= 1.5; v += 0.001 {
			got := Level(c.ch, v)
			if got < prev {
				t.Fatalf("%s level decreased at %f: %d after %d", c.ch, v, got, prev)
			}
			if got < 0 || got >= c.levels {
				t.Fatalf("%s level %d outside [0,%d)", c.ch, got, c.levels)
			}
			prev = got
		}
		if prev != c.levels-1 {
			t.Fatalf("%s never reached its top level, ended at %d", c.ch, prev)
		}
	}
}

func TestClassifyCarriesRawValuesAndWeirdness(t *testing.T) {
	s := noise.Sample{
		X:               3,
		Y:               -4,
		Temperature:     0.6,
		Humidity:        -0.2,
		Continentalness: 0.05,
		Erosion:         -0.3,
		Weirdness:       -0.5,
	}
	p := Classify(s)

	if p.X != 3 || p.Y != -4 {
		t.Fatalf("expected coordinate (3,-4), got (%d,%d)", p.X, p.Y)
	}
	if p.Temperature != s.Temperature || p.Weirdness != s.Weirdness {
		t.Fatalf("raw values not preserved: %+v", p)
	}
	if p.IsWeird {
		t.Fatal("negative weirdness must not be weird")
	}
	if want := [5]int{4, 1, MidInland, 2, High}; p.Levels() != want {
		t.Fatalf("levels = %v, want %v", p.Levels(), want)
	}
	if want := 1 - math.Abs(3*0.5-2); p.PeaksValleys != want {
		t.Fatalf("peaks and valleys = %f, want %f", p.PeaksValleys, want)
	}

	s.Weirdness = 0.01
	if !Classify(s).IsWeird {
		t.Fatal("positive weirdness must be weird")
	}
}

func TestClassifyIsTotal(t *testing.T) {
	p := Classify(noise.Sample{
		Temperature:     math.NaN(),
		Humidity:        math.Inf(1),
		Continentalness: math.Inf(-1),
		Erosion:         math.NaN(),
		Weirdness:       math.NaN(),
	})
	if p.TemperatureLevel != 0 || p.ErosionLevel != 0 {
		t.Fatalf("NaN should classify to level 0, got %+v", p.Levels())
	}
	if p.HumidityLevel != HumidityLevels-1 || p.ContinentalnessLevel != DeepOcean {
		t.Fatalf("infinities should clamp to the extreme levels, got %+v", p.Levels())
	}
}
