package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"worldgen/internal/config"
	"worldgen/internal/tileset"
	"worldgen/internal/wfc"
)

func main() {
	var (
		cfgPath string
		output  string
		scale   int
	)
	flag.StringVar(&cfgPath, "config", "", "path to world generation configuration file")
	flag.StringVar(&output, "out", "wfc_generation.png", "output PNG path")
	flag.IntVar(&scale, "scale", 1, "pixels per cell")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	set, err := loadTileSet(cfg.Solver.TileSet)
	if err != nil {
		log.Fatalf("load tile set: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	solution, err := solve(ctx, cfg.Solver, set)
	if err != nil {
		var contradiction *wfc.Contradiction
		if errors.As(err, &contradiction) {
			log.Fatalf("wave function collapse failed: %v", err)
		}
		log.Fatalf("solve: %v", err)
	}

	img, err := wfc.Rasterize(solution, scale)
	if err != nil {
		log.Fatalf("rasterize: %v", err)
	}
	if err := wfc.SavePNG(img, output); err != nil {
		log.Fatalf("save image: %v", err)
	}
	log.Printf("wrote %s", output)
}

func loadTileSet(path string) (*tileset.Set, error) {
	if path == "" {
		return tileset.Meadow(), nil
	}
	return tileset.Load(path)
}

// solve runs the retrying solve as one background job and polls it on the
// configured cadence.
func solve(ctx context.Context, cfg config.SolverConfig, set *tileset.Set) (wfc.Solution, error) {
	build := func(seed uint64) (*wfc.Solver, error) {
		solver, err := wfc.New(cfg.Width, cfg.Height, set, seed)
		if err != nil {
			return nil, err
		}
		// The first variant anchors the centre cell.
		if err := solver.Set(cfg.Width/2, cfg.Height/2, 0); err != nil {
			return nil, err
		}
		return solver, nil
	}

	log.Printf("solving %dx%d grid over %d variants (seed %d, %d attempts)", cfg.Width, cfg.Height, set.Len(), cfg.Seed, cfg.Attempts)
	job := wfc.StartFunc(ctx, cfg.Timeout.Duration(), func(ctx context.Context) (wfc.Solution, error) {
		return wfc.SolveWithRetry(ctx, build, cfg.Attempts, cfg.Seed)
	})

	ticker := time.NewTicker(cfg.PollInterval.Duration())
	defer ticker.Stop()
	polls := 0
	for {
		if res, ok := job.Poll(); ok {
			if res.Err != nil {
				return wfc.Solution{}, res.Err
			}
			log.Printf("wave function collapse completed in %s", res.Elapsed.Round(time.Millisecond))
			return res.Solution, nil
		}
		select {
		case <-ctx.Done():
			job.Cancel()
			<-job.Done()
			return wfc.Solution{}, ctx.Err()
		case <-ticker.C:
			polls++
			if polls%50 == 0 {
				log.Printf("still solving after %d polls", polls)
			}
		}
	}
}
