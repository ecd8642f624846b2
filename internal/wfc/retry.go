package wfc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
)

const retryStream = 0x7265747279

// BuildFunc prepares a solver, priors included, for the given seed.
type BuildFunc func(seed uint64) (*Solver, error)

// SolveWithRetry solves with seed first and, after each contradiction, with a
// fresh seed drawn from a stream derived from seed. Errors other than cell
// contradictions end the loop immediately.
func SolveWithRetry(ctx context.Context, build BuildFunc, attempts int, seed uint64) (Solution, error) {
	if attempts < 1 {
		attempts = 1
	}
	seeds := rand.New(rand.NewPCG(seed, retryStream))
	current := seed
	var last error
	for attempt := 1; attempt <= attempts; attempt++ {
		solver, err := build(current)
		if err != nil {
			return Solution{}, fmt.Errorf("build solver: %w", err)
		}
		solution, err := solver.Solve(ctx)
		if err == nil {
			return solution, nil
		}
		var contradiction *Contradiction
		if !errors.As(err, &contradiction) || contradiction.Cause != nil {
			return Solution{}, err
		}
		log.Printf("wfc attempt %d/%d with seed %d failed: %v", attempt, attempts, current, err)
		last = err
		current = seeds.Uint64()
	}
	return Solution{}, fmt.Errorf("wfc gave up after %d attempts: %w", attempts, last)
}
