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

	"worldgen/internal/codec"
	"worldgen/internal/config"
	"worldgen/internal/world"
)

func main() {
	var (
		cfgPath  string
		outDir   string
		viewerX  float64
		viewerY  float64
		speed    float64
		previews bool
	)
	flag.StringVar(&cfgPath, "config", "", "path to world generation configuration file")
	flag.StringVar(&outDir, "out", "chunks", "directory encoded chunks are mirrored into")
	flag.Float64Var(&viewerX, "x", 0, "viewer start x in world units")
	flag.Float64Var(&viewerY, "y", 0, "viewer start y in world units")
	flag.Float64Var(&speed, "speed", 0, "viewer eastward speed in world units per second")
	flag.BoolVar(&previews, "previews", false, "also write a PNG preview of every generated chunk")
	flag.Parse()

	if _, err := writeConfigFromEnv(cfgPath); err != nil {
		log.Fatalf("sync config: %v", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	disk, err := world.NewDiskSink(outDir, codec.Encode)
	if err != nil {
		log.Fatalf("initialise chunk output: %v", err)
	}
	var sink world.Sink = disk
	if previews {
		sink = previewSink{Sink: disk, dir: cfg.Preview.OutputDir, scale: cfg.Preview.Scale}
	}

	start := time.Now()
	viewer := world.ViewerFunc(func() (world.Vec2, bool) {
		return world.Vec2{X: viewerX + speed*time.Since(start).Seconds(), Y: viewerY}, true
	})

	generator := world.NewClimateGenerator(cfg)
	logger := log.New(log.Writer(), "worldgen ", log.LstdFlags|log.Lmicroseconds)
	streamer := world.NewStreamer(cfg, generator, viewer, sink, world.WithLogger(logger))
	log.Printf("streaming world seed %d (%dx%d tiles per chunk) into %s", cfg.World.Seed, cfg.Chunk.Width, cfg.Chunk.Height, outDir)

	ctx, cancel := signalContext()
	defer cancel()

	if err := streamer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("streamer exited with error: %v", err)
	}
	log.Printf("stopped with %d chunks loaded", len(streamer.Loaded()))
}

// previewSink writes a PNG next to every chunk the wrapped sink receives.
type previewSink struct {
	world.Sink
	dir   string
	scale int
}

func (p previewSink) ChunkLoaded(chunk *world.Chunk) error {
	if err := p.Sink.ChunkLoaded(chunk); err != nil {
		return err
	}
	return world.SaveChunkPreview(chunk, p.dir, p.scale)
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
			return
		}

		// Ensure the process terminates if shutdown stalls.
		time.AfterFunc(10*time.Second, func() {
			log.Printf("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	return ctx, cancel
}
