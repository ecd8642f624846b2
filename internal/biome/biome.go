// Package biome maps classified climate points onto a fixed biome table and
// the tile palette used to draw them.
package biome

import (
	"fmt"
)

// TableVersion identifies the prototype, tile and colour tables. Bump it when
// any of them changes.
const TableVersion = 1

// Biome is a closed enumeration. The order is part of the data contract:
// ties during selection resolve to the earliest biome.
type Biome uint8

const (
	FrozenOcean Biome = iota
	DeepFrozenOcean
	ColdOcean
	DeepColdOcean
	Ocean
	DeepOcean
	LukewarmOcean
	DeepLukewarmOcean
	WarmOcean

	River
	FrozenRiver

	SnowyBeach
	Beach
	DesertBeach

	SnowyPlains
	IceSpikes
	Plains
	FlowerForest
	SunflowerPlains
	Savanna
	Desert
	SnowyTaiga
	Taiga
	BirchForest
	OldGrowthBirchForest
	Jungle
	SparseJungle
	OldGrowthSpruceTaiga
	OldGrowthPineTaiga
	Forest
	DarkForest
	BambooJungle

	Badlands
	ErodedBadlands
	WoodedBadlands

	Meadow
	CherryGrove
	PaleGarden
	SavannaPlateau

	WindsweptGravellyHills
	WindsweptHills
	WindsweptForest

	JaggedPeaks
	FrozenPeaks
	StonyPeaks

	// Count is the number of biomes.
	Count int = iota
)

var names = [Count]string{
	FrozenOcean:            "frozen_ocean",
	DeepFrozenOcean:        "deep_frozen_ocean",
	ColdOcean:              "cold_ocean",
	DeepColdOcean:          "deep_cold_ocean",
	Ocean:                  "ocean",
	DeepOcean:              "deep_ocean",
	LukewarmOcean:          "lukewarm_ocean",
	DeepLukewarmOcean:      "deep_lukewarm_ocean",
	WarmOcean:              "warm_ocean",
	River:                  "river",
	FrozenRiver:            "frozen_river",
	SnowyBeach:             "snowy_beach",
	Beach:                  "beach",
	DesertBeach:            "desert_beach",
	SnowyPlains:            "snowy_plains",
	IceSpikes:              "ice_spikes",
	Plains:                 "plains",
	FlowerForest:           "flower_forest",
	SunflowerPlains:        "sunflower_plains",
	Savanna:                "savanna",
	Desert:                 "desert",
	SnowyTaiga:             "snowy_taiga",
	Taiga:                  "taiga",
	BirchForest:            "birch_forest",
	OldGrowthBirchForest:   "old_growth_birch_forest",
	Jungle:                 "jungle",
	SparseJungle:           "sparse_jungle",
	OldGrowthSpruceTaiga:   "old_growth_spruce_taiga",
	OldGrowthPineTaiga:     "old_growth_pine_taiga",
	Forest:                 "forest",
	DarkForest:             "dark_forest",
	BambooJungle:           "bamboo_jungle",
	Badlands:               "badlands",
	ErodedBadlands:         "eroded_badlands",
	WoodedBadlands:         "wooded_badlands",
	Meadow:                 "meadow",
	CherryGrove:            "cherry_grove",
	PaleGarden:             "pale_garden",
	SavannaPlateau:         "savanna_plateau",
	WindsweptGravellyHills: "windswept_gravelly_hills",
	WindsweptHills:         "windswept_hills",
	WindsweptForest:        "windswept_forest",
	JaggedPeaks:            "jagged_peaks",
	FrozenPeaks:            "frozen_peaks",
	StonyPeaks:             "stony_peaks",
}

var all = func() []Biome {
	out := make([]Biome, Count)
	for i := range out {
		out[i] = Biome(i)
	}
	return out
}()

// All returns every biome in enumeration order. The slice is a copy.
func All() []Biome {
	out := make([]Biome, len(all))
	copy(out, all)
	return out
}

// Valid reports whether b is a member of the enumeration.
func (b Biome) Valid() bool {
	return int(b) < Count
}

func (b Biome) String() string {
	if !b.Valid() {
		return fmt.Sprintf("biome(%d)", uint8(b))
	}
	return names[b]
}

// MarshalText encodes the biome by name.
func (b Biome) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("biome: unknown value %d", uint8(b))
	}
	return []byte(names[b]), nil
}

// UnmarshalText decodes a biome name produced by MarshalText.
func (b *Biome) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// Parse looks up a biome by its name.
func Parse(name string) (Biome, error) {
	for i, n := range names {
		if n == name {
			return Biome(i), nil
		}
	}
	return 0, fmt.Errorf("biome: unknown name %q", name)
}
