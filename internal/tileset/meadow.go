package tileset

import "image/color"

// Socket labels of the built-in meadow alphabet.
const (
	LabelGrass     = "grass"
	LabelRose      = "rose"
	LabelDandelion = "dandelion"
	LabelTree      = "tree"
)

// Meadow returns the built-in ground-cover alphabet: grass that borders
// flowers and trees, and flower and tree patches that only continue
// themselves (trees may also meet grass).
func Meadow() *Set {
	set, err := New(
		Variant{
			Name:  "grass",
			Color: color.RGBA{R: 34, G: 139, B: 34, A: 255},
			Sockets: AllSides(
				Socket{Label: LabelGrass, Weight: 95},
				Socket{Label: LabelRose, Weight: 2},
				Socket{Label: LabelDandelion, Weight: 3},
			),
		},
		Variant{
			Name:    "rose",
			Color:   color.RGBA{R: 220, G: 20, B: 60, A: 255},
			Sockets: AllSides(Socket{Label: LabelRose, Weight: 2}),
		},
		Variant{
			Name:    "dandelion",
			Color:   color.RGBA{R: 255, G: 215, B: 0, A: 255},
			Sockets: AllSides(Socket{Label: LabelDandelion, Weight: 5}),
		},
		Variant{
			Name:  "tree",
			Color: color.RGBA{R: 0, G: 100, B: 0, A: 255},
			Sockets: AllSides(
				Socket{Label: LabelTree, Weight: 5},
				Socket{Label: LabelGrass, Weight: 2},
			),
		},
	)
	if err != nil {
		panic("tileset: invalid meadow declaration: " + err.Error())
	}
	return set
}
