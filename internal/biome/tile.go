package biome

import (
	"fmt"
	"image/color"
)

// TileID is the coarse terrain palette chunks are drawn with.
type TileID uint8

const (
	TileRainforest TileID = iota
	TileSavannah
	TileTropicalSeasonalForest
	TileDesert
	TileSemiDesert
	TileXericShrubland
	TileGrassland
	TileDeciduousForest
	TileTemperateRainforest
	TileMediterranean
	TileTaiga
	TileBorealForest
	TileTundra
	TileIceSheet
	TileMountain
	TileSwamp
	TileRiver
	TileSnow
	TileBeach
	TileShallowOcean
	TileOcean
	TileDeepOcean

	// TileCount is the number of tiles in the palette.
	TileCount int = iota
)

var tileNames = [TileCount]string{
	TileRainforest:             "rainforest",
	TileSavannah:               "savannah",
	TileTropicalSeasonalForest: "tropical_seasonal_forest",
	TileDesert:                 "desert",
	TileSemiDesert:             "semi_desert",
	TileXericShrubland:         "xeric_shrubland",
	TileGrassland:              "grassland",
	TileDeciduousForest:        "deciduous_forest",
	TileTemperateRainforest:    "temperate_rainforest",
	TileMediterranean:          "mediterranean",
	TileTaiga:                  "taiga",
	TileBorealForest:           "boreal_forest",
	TileTundra:                 "tundra",
	TileIceSheet:               "ice_sheet",
	TileMountain:               "mountain",
	TileSwamp:                  "swamp",
	TileRiver:                  "river",
	TileSnow:                   "snow",
	TileBeach:                  "beach",
	TileShallowOcean:           "shallow_ocean",
	TileOcean:                  "ocean",
	TileDeepOcean:              "deep_ocean",
}

var tileColors = [TileCount]color.RGBA{
	TileRainforest:             rgb(0, 100, 0),
	TileSavannah:               rgb(189, 183, 107),
	TileTropicalSeasonalForest: rgb(34, 139, 34),
	TileDesert:                 rgb(237, 201, 175),
	TileSemiDesert:             rgb(210, 180, 140),
	TileXericShrubland:         rgb(160, 82, 45),
	TileGrassland:              rgb(124, 252, 0),
	TileDeciduousForest:        rgb(34, 139, 34),
	TileTemperateRainforest:    rgb(0, 100, 0),
	TileMediterranean:          rgb(107, 142, 35),
	TileTaiga:                  rgb(46, 139, 87),
	TileBorealForest:           rgb(0, 128, 0),
	TileTundra:                 rgb(176, 196, 222),
	TileIceSheet:               rgb(240, 248, 255),
	TileMountain:               rgb(139, 137, 137),
	TileSwamp:                  rgb(47, 79, 47),
	TileRiver:                  rgb(30, 144, 255),
	TileSnow:                   rgb(255, 250, 250),
	TileBeach:                  rgb(255, 228, 196),
	TileShallowOcean:           rgb(70, 130, 180),
	TileOcean:                  rgb(0, 0, 139),
	TileDeepOcean:              rgb(0, 0, 255),
}

var biomeTiles = [Count]TileID{
	FrozenOcean:       TileIceSheet,
	DeepFrozenOcean:   TileDeepOcean,
	ColdOcean:         TileOcean,
	DeepColdOcean:     TileDeepOcean,
	Ocean:             TileOcean,
	DeepOcean:         TileDeepOcean,
	LukewarmOcean:     TileOcean,
	DeepLukewarmOcean: TileDeepOcean,
	WarmOcean:         TileShallowOcean,

	River:       TileRiver,
	FrozenRiver: TileRiver,

	SnowyBeach:  TileSnow,
	Beach:       TileBeach,
	DesertBeach: TileBeach,

	SnowyPlains:          TileTundra,
	IceSpikes:            TileIceSheet,
	Plains:               TileGrassland,
	FlowerForest:         TileDeciduousForest,
	SunflowerPlains:      TileGrassland,
	Savanna:              TileSavannah,
	Desert:               TileDesert,
	SnowyTaiga:           TileBorealForest,
	Taiga:                TileTaiga,
	BirchForest:          TileDeciduousForest,
	OldGrowthBirchForest: TileDeciduousForest,
	Jungle:               TileRainforest,
	SparseJungle:         TileTropicalSeasonalForest,
	OldGrowthSpruceTaiga: TileTaiga,
	OldGrowthPineTaiga:   TileTaiga,
	Forest:               TileDeciduousForest,
	DarkForest:           TileTemperateRainforest,
	BambooJungle:         TileRainforest,

	Badlands:       TileXericShrubland,
	ErodedBadlands: TileSemiDesert,
	WoodedBadlands: TileMediterranean,

	Meadow:         TileGrassland,
	CherryGrove:    TileMediterranean,
	PaleGarden:     TileSwamp,
	SavannaPlateau: TileSavannah,

	WindsweptGravellyHills: TileMountain,
	WindsweptHills:         TileMountain,
	WindsweptForest:        TileBorealForest,

	JaggedPeaks: TileSnow,
	FrozenPeaks: TileSnow,
	StonyPeaks:  TileMountain,
}

var water = rgb(0, 0, 255)

var biomeColors = [Count]color.RGBA{
	FrozenOcean:       water,
	DeepFrozenOcean:   water,
	ColdOcean:         water,
	DeepColdOcean:     water,
	Ocean:             water,
	DeepOcean:         water,
	LukewarmOcean:     water,
	DeepLukewarmOcean: water,
	WarmOcean:         water,
	River:             water,
	FrozenRiver:       water,

	SnowyBeach:  rgb(240, 240, 255),
	Beach:       rgb(238, 214, 175),
	DesertBeach: rgb(237, 201, 175),

	SnowyPlains:          rgb(255, 255, 255),
	IceSpikes:            rgb(200, 240, 255),
	Plains:               rgb(124, 252, 0),
	FlowerForest:         rgb(205, 133, 63),
	SunflowerPlains:      rgb(255, 215, 0),
	Savanna:              rgb(189, 183, 107),
	Desert:               rgb(237, 201, 175),
	SnowyTaiga:           rgb(175, 238, 238),
	Taiga:                rgb(34, 139, 34),
	BirchForest:          rgb(152, 251, 152),
	OldGrowthBirchForest: rgb(143, 188, 143),
	Jungle:               rgb(0, 100, 0),
	SparseJungle:         rgb(60, 179, 113),
	OldGrowthSpruceTaiga: rgb(0, 128, 0),
	OldGrowthPineTaiga:   rgb(46, 139, 87),
	Forest:               rgb(34, 139, 34),
	DarkForest:           rgb(0, 80, 0),
	BambooJungle:         rgb(107, 142, 35),

	Badlands:       rgb(210, 105, 30),
	ErodedBadlands: rgb(233, 150, 122),
	WoodedBadlands: rgb(139, 69, 19),

	Meadow:         rgb(124, 252, 0),
	CherryGrove:    rgb(255, 182, 193),
	PaleGarden:     rgb(255, 239, 213),
	SavannaPlateau: rgb(189, 183, 107),

	WindsweptGravellyHills: rgb(169, 169, 169),
	WindsweptHills:         rgb(85, 107, 47),
	WindsweptForest:        rgb(34, 139, 34),

	JaggedPeaks: rgb(220, 220, 220),
	FrozenPeaks: rgb(245, 245, 255),
	StonyPeaks:  rgb(112, 128, 144),
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Tile returns the palette entry b is drawn with.
func (b Biome) Tile() TileID {
	if !b.Valid() {
		return TileGrassland
	}
	return biomeTiles[b]
}

// Color returns the biome's own diagnostic colour.
func (b Biome) Color() color.RGBA {
	if !b.Valid() {
		return color.RGBA{A: 255}
	}
	return biomeColors[b]
}

// Valid reports whether t is a member of the palette.
func (t TileID) Valid() bool {
	return int(t) < TileCount
}

// Color returns the palette colour of t. Unknown tiles are black.
func (t TileID) Color() color.RGBA {
	if !t.Valid() {
		return color.RGBA{A: 255}
	}
	return tileColors[t]
}

func (t TileID) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tile(%d)", uint8(t))
	}
	return tileNames[t]
}

// MarshalText encodes the tile by name.
func (t TileID) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("tile: unknown value %d", uint8(t))
	}
	return []byte(tileNames[t]), nil
}

// UnmarshalText decodes a tile name produced by MarshalText.
func (t *TileID) UnmarshalText(text []byte) error {
	for i, n := range tileNames {
		if n == string(text) {
			*t = TileID(i)
			return nil
		}
	}
	return fmt.Errorf("tile: unknown name %q", string(text))
}
