package tileset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed tileset.schema.json
var schemaSource string

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("tileset.schema.json", schemaSource)
})

var defaultColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}

type fileSocket struct {
	Label  string `json:"label"`
	Weight uint32 `json:"weight"`
}

type fileSides struct {
	All        []fileSocket `json:"all"`
	Vertical   []fileSocket `json:"vertical"`
	Horizontal []fileSocket `json:"horizontal"`
	North      []fileSocket `json:"north"`
	East       []fileSocket `json:"east"`
	South      []fileSocket `json:"south"`
	West       []fileSocket `json:"west"`
}

type fileVariant struct {
	Name    string    `json:"name"`
	Color   string    `json:"color"`
	Sockets fileSides `json:"sockets"`
}

type fileSet struct {
	Name     string        `json:"name"`
	Variants []fileVariant `json:"variants"`
}

// Load reads a tile set declaration from a YAML (or JSON) file.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tile set %s: %w", path, err)
	}
	set, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("tile set %s: %w", path, err)
	}
	return set, nil
}

// Parse validates a YAML (or JSON) tile set declaration against the embedded
// schema and builds the Set it describes.
func Parse(data []byte) (*Set, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalise: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("normalise: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	var decl fileSet
	if err := json.Unmarshal(raw, &decl); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	variants := make([]Variant, 0, len(decl.Variants))
	for _, fv := range decl.Variants {
		col := defaultColor
		if fv.Color != "" {
			parsed, ok := parseHexColor(fv.Color)
			if !ok {
				return nil, fmt.Errorf("variant %q: invalid color %q", fv.Name, fv.Color)
			}
			col = parsed
		}
		variants = append(variants, Variant{
			Name:    fv.Name,
			Color:   col,
			Sockets: fv.Sockets.sides(),
		})
	}
	return New(variants...)
}

// sides applies the shorthands first so explicit directions override them.
func (f fileSides) sides() Sides {
	var s Sides
	if f.All != nil {
		s = s.Merge(AllSides(convertSockets(f.All)...))
	}
	if f.Vertical != nil {
		s = s.Merge(Vertical(convertSockets(f.Vertical)...))
	}
	if f.Horizontal != nil {
		s = s.Merge(Horizontal(convertSockets(f.Horizontal)...))
	}
	explicit := [4][]fileSocket{North: f.North, East: f.East, South: f.South, West: f.West}
	for _, d := range Directions {
		if explicit[d] != nil {
			s[d] = convertSockets(explicit[d])
		}
	}
	return s
}

func convertSockets(in []fileSocket) []Socket {
	out := make([]Socket, len(in))
	for i, s := range in {
		out[i] = Socket{Label: s.Label, Weight: s.Weight}
	}
	return out
}

func parseHexColor(value string) (color.RGBA, bool) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(trimmed) != 6 {
		return color.RGBA{}, false
	}
	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(trimmed[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.RGBA{}, false
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, true
}
