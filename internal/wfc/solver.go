// Package wfc lays out tile variants on a grid with wave function collapse:
// arc-consistent propagation of socket constraints plus minimum-remaining-value
// observation, without backtracking.
package wfc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"worldgen/internal/tileset"
)

var (
	ErrInvalidGrid    = errors.New("grid dimensions must be positive")
	ErrOutOfBounds    = errors.New("cell outside grid")
	ErrUnknownVariant = errors.New("unknown variant")
)

// Stream selector for the collapse RNG.
const rngStream = 0x776663

// ctxCheckInterval bounds how many propagation steps run between context
// checks.
const ctxCheckInterval = 1024

// NoCoord marks a contradiction that is not tied to a cell.
var NoCoord = Coord{X: -1, Y: -1}

// Coord addresses a grid cell. Y grows southwards.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Assignment is the variant chosen for one cell.
type Assignment struct {
	Coord   Coord `json:"coord"`
	Variant int   `json:"variant"`
}

// Stats summarises the work done by a solve.
type Stats struct {
	Observations int
	Propagations int
	// Eliminated counts candidates removed by propagation. Collapses are not
	// included.
	Eliminated int
}

// Solution is a fully collapsed grid.
type Solution struct {
	Width       int
	Height      int
	Set         *tileset.Set
	Assignments []Assignment
	Stats       Stats
}

// At returns the variant assigned to (x, y).
func (s Solution) At(x, y int) int {
	return s.Assignments[y*s.Width+x].Variant
}

// Contradiction reports a cell whose domain emptied, or a solve that could not
// finish, in which case At is NoCoord and Cause holds the reason.
type Contradiction struct {
	At    Coord
	Cause error
}

func (c *Contradiction) Error() string {
	if c.Cause != nil {
		if c.At == NoCoord {
			return fmt.Sprintf("wfc contradiction: %v", c.Cause)
		}
		return fmt.Sprintf("wfc contradiction at %v: %v", c.At, c.Cause)
	}
	return fmt.Sprintf("wfc contradiction at %v", c.At)
}

func (c *Contradiction) Unwrap() error {
	return c.Cause
}

type prior struct {
	cell    int
	variant int
}

// Solver holds the grid, alphabet and priors of one layout problem. Solve may
// be called repeatedly; each call starts from the priors with a fresh RNG
// seeded from the solver seed.
type Solver struct {
	width   int
	height  int
	set     *tileset.Set
	seed    uint64
	priors  []prior
	support [4][][]uint64
}

// New prepares a solver for a width×height grid.
func New(width, height int, set *tileset.Set, seed uint64) (*Solver, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("wfc %dx%d: %w", width, height, ErrInvalidGrid)
	}
	if set == nil || set.Len() == 0 {
		return nil, fmt.Errorf("wfc: %w", tileset.ErrEmptyAlphabet)
	}
	s := &Solver{width: width, height: height, set: set, seed: seed}
	n := set.Len()
	words := (n + 63) / 64
	for _, d := range tileset.Directions {
		rows := make([][]uint64, n)
		for i := range rows {
			row := make([]uint64, words)
			for j := 0; j < n; j++ {
				if set.Compatible(d, i, j) {
					row[j/64] |= 1 << (j % 64)
				}
			}
			rows[i] = row
		}
		s.support[d] = rows
	}
	return s, nil
}

// Width returns the grid width.
func (s *Solver) Width() int { return s.width }

// Height returns the grid height.
func (s *Solver) Height() int { return s.height }

// Seed returns the seed the collapse RNG starts from.
func (s *Solver) Seed() uint64 { return s.seed }

// Set fixes cell (x, y) to a variant before solving. A later call for the same
// cell replaces the earlier one.
func (s *Solver) Set(x, y, variant int) error {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return fmt.Errorf("set %v: %w", Coord{X: x, Y: y}, ErrOutOfBounds)
	}
	if variant < 0 || variant >= s.set.Len() {
		return fmt.Errorf("set %v to %d: %w", Coord{X: x, Y: y}, variant, ErrUnknownVariant)
	}
	cell := y*s.width + x
	for i := range s.priors {
		if s.priors[i].cell == cell {
			s.priors[i].variant = variant
			return nil
		}
	}
	s.priors = append(s.priors, prior{cell: cell, variant: variant})
	return nil
}

// SetByName fixes cell (x, y) to the named variant.
func (s *Solver) SetByName(x, y int, name string) error {
	variant, ok := s.set.Index(name)
	if !ok {
		return fmt.Errorf("set %v to %q: %w", Coord{X: x, Y: y}, name, ErrUnknownVariant)
	}
	return s.Set(x, y, variant)
}

// Solve runs propagation and observation to completion. It returns a
// *Contradiction when a domain empties, or the context error when ctx ends
// first.
func (s *Solver) Solve(ctx context.Context) (Solution, error) {
	start := time.Now()
	run := &solve{
		Solver:  s,
		domains: newDomains(s.width*s.height, s.set.Len()),
		rng:     rand.New(rand.NewPCG(s.seed, rngStream)),
		mask:    make([]uint64, (s.set.Len()+63)/64),
		ctx:     ctx,
	}
	// Cells that start decided are never observed, so their constraints are
	// checked up front.
	for cell, count := range run.domains.count {
		if count == 1 {
			run.queue = append(run.queue, cell)
		}
	}
	for _, p := range s.priors {
		run.domains.fix(p.cell, p.variant)
		run.queue = append(run.queue, p.cell)
	}
	if err := run.propagate(); err != nil {
		return Solution{}, err
	}
	for {
		if err := ctx.Err(); err != nil {
			return Solution{}, fmt.Errorf("wfc: %w", err)
		}
		cell, ok := run.observe()
		if !ok {
			break
		}
		run.queue = append(run.queue, cell)
		if err := run.propagate(); err != nil {
			return Solution{}, err
		}
	}

	solution := Solution{
		Width:       s.width,
		Height:      s.height,
		Set:         s.set,
		Assignments: make([]Assignment, s.width*s.height),
		Stats:       run.stats,
	}
	for cell := range solution.Assignments {
		solution.Assignments[cell] = Assignment{
			Coord:   s.coord(cell),
			Variant: run.domains.first(cell),
		}
	}
	log.Printf("wfc solved %dx%d grid in %s", s.width, s.height, time.Since(start).Round(time.Microsecond))
	return solution, nil
}

func (s *Solver) coord(cell int) Coord {
	return Coord{X: cell % s.width, Y: cell / s.width}
}

// solve is the mutable state of a single Solve call.
type solve struct {
	*Solver
	domains *domains
	rng     *rand.Rand
	queue   []int
	mask    []uint64
	ctx     context.Context
	stats   Stats
}

func (r *solve) propagate() error {
	for len(r.queue) > 0 {
		cell := r.queue[0]
		r.queue = r.queue[1:]
		r.stats.Propagations++
		if r.stats.Propagations%ctxCheckInterval == 0 {
			if err := r.ctx.Err(); err != nil {
				return fmt.Errorf("wfc: %w", err)
			}
		}

		at := r.coord(cell)
		for _, d := range tileset.Directions {
			dx, dy := d.Delta()
			nx, ny := at.X+dx, at.Y+dy
			if nx < 0 || ny < 0 || nx >= r.width || ny >= r.height {
				continue
			}
			neighbour := ny*r.width + nx
			r.supportMask(cell, d)
			removed := r.domains.restrict(neighbour, r.mask)
			if removed == 0 {
				continue
			}
			r.stats.Eliminated += removed
			if r.domains.count[neighbour] == 0 {
				r.queue = r.queue[:0]
				return &Contradiction{At: Coord{X: nx, Y: ny}}
			}
			r.queue = append(r.queue, neighbour)
		}
	}
	return nil
}

// supportMask loads r.mask with every variant allowed on side d of cell.
func (r *solve) supportMask(cell int, d tileset.Direction) {
	clear(r.mask)
	n := r.set.Len()
	for v := 0; v < n; v++ {
		if r.domains.cell(cell)[v/64]&(1<<(v%64)) == 0 {
			continue
		}
		for i, word := range r.support[d][v] {
			r.mask[i] |= word
		}
	}
}

// observe collapses the undecided cell with the fewest candidates, preferring
// the first in row-major order. It reports false once every cell is decided.
func (r *solve) observe() (int, bool) {
	best, bestCount := -1, 0
	for cell, count := range r.domains.count {
		if count > 1 && (best < 0 || count < bestCount) {
			best, bestCount = cell, count
		}
	}
	if best < 0 {
		return 0, false
	}
	r.stats.Observations++
	variant := r.domains.nth(best, r.rng.IntN(bestCount))
	r.domains.fix(best, variant)
	return best, true
}
