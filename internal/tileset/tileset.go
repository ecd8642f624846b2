// Package tileset declares tile variants with directional sockets and derives
// the adjacency rules a layout solver enforces.
package tileset

import (
	"errors"
	"fmt"
	"image/color"
)

var (
	ErrEmptyAlphabet    = errors.New("tile set has no variants")
	ErrUnnamedVariant   = errors.New("variant has no name")
	ErrDuplicateVariant = errors.New("duplicate variant name")
	ErrNoSockets        = errors.New("variant declares no sockets")
	ErrEmptyLabel       = errors.New("socket label is empty")
)

// Socket is one acceptable connection label on a side. Weight is carried for
// declarations but does not influence solving.
type Socket struct {
	Label  string
	Weight uint32
}

// Sides holds the socket list for each direction, indexed by Direction.
type Sides [4][]Socket

// Vertical declares sockets for north and south.
func Vertical(sockets ...Socket) Sides {
	var s Sides
	s[North] = sockets
	s[South] = sockets
	return s
}

// Horizontal declares sockets for east and west.
func Horizontal(sockets ...Socket) Sides {
	var s Sides
	s[East] = sockets
	s[West] = sockets
	return s
}

// AllSides declares the same sockets on every side.
func AllSides(sockets ...Socket) Sides {
	return Vertical(sockets...).Merge(Horizontal(sockets...))
}

// Side declares sockets for a single direction.
func Side(d Direction, sockets ...Socket) Sides {
	var s Sides
	s[d] = sockets
	return s
}

// Merge returns s with every side other declares replacing the existing one.
func (s Sides) Merge(other Sides) Sides {
	for _, d := range Directions {
		if other[d] != nil {
			s[d] = other[d]
		}
	}
	return s
}

// Variant is one member of a tile alphabet.
type Variant struct {
	Name    string
	Color   color.RGBA
	Sockets Sides
}

// Set is a validated alphabet plus its compatibility matrix.
type Set struct {
	variants []Variant
	index    map[string]int
	// compat[d][i][j] holds when variant j may sit on side d of variant i.
	compat [4][][]bool
}

// New validates the variants and precomputes their compatibility. Variant
// order is preserved and defines variant indices.
func New(variants ...Variant) (*Set, error) {
	if len(variants) == 0 {
		return nil, ErrEmptyAlphabet
	}
	set := &Set{
		variants: make([]Variant, len(variants)),
		index:    make(map[string]int, len(variants)),
	}
	for i, v := range variants {
		if err := validateVariant(v); err != nil {
			return nil, err
		}
		if _, dup := set.index[v.Name]; dup {
			return nil, fmt.Errorf("variant %q: %w", v.Name, ErrDuplicateVariant)
		}
		set.index[v.Name] = i
		set.variants[i] = cloneVariant(v)
	}

	n := len(variants)
	for _, d := range Directions {
		rows := make([][]bool, n)
		for i := range rows {
			rows[i] = make([]bool, n)
			for j := range rows[i] {
				rows[i][j] = sharesLabel(set.variants[i].Sockets[d], set.variants[j].Sockets[d.Opposite()])
			}
		}
		set.compat[d] = rows
	}
	return set, nil
}

func validateVariant(v Variant) error {
	if v.Name == "" {
		return ErrUnnamedVariant
	}
	declared := false
	for _, d := range Directions {
		for _, s := range v.Sockets[d] {
			if s.Label == "" {
				return fmt.Errorf("variant %q %s side: %w", v.Name, d, ErrEmptyLabel)
			}
			declared = true
		}
	}
	if !declared {
		return fmt.Errorf("variant %q: %w", v.Name, ErrNoSockets)
	}
	return nil
}

func cloneVariant(v Variant) Variant {
	for _, d := range Directions {
		v.Sockets[d] = append([]Socket(nil), v.Sockets[d]...)
	}
	return v
}

func sharesLabel(a, b []Socket) bool {
	for _, x := range a {
		for _, y := range b {
			if x.Label == y.Label {
				return true
			}
		}
	}
	return false
}

// Len returns the alphabet size.
func (s *Set) Len() int {
	return len(s.variants)
}

// Variant returns the variant at index i.
func (s *Set) Variant(i int) Variant {
	return cloneVariant(s.variants[i])
}

// Index looks a variant up by name.
func (s *Set) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Names returns the variant names in index order.
func (s *Set) Names() []string {
	names := make([]string, len(s.variants))
	for i, v := range s.variants {
		names[i] = v.Name
	}
	return names
}

// Compatible reports whether variant j may be placed on side d of variant i.
func (s *Set) Compatible(d Direction, i, j int) bool {
	return s.compat[d][i][j]
}

// Color returns the display colour of variant i.
func (s *Set) Color(i int) color.RGBA {
	return s.variants[i].Color
}
