// Package main runs the ocean simulation headless and logs body poses.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/swell/internal/config"
	"github.com/Faultbox/swell/internal/logger"
	"github.com/Faultbox/swell/internal/sim"
	"github.com/Faultbox/swell/internal/water"
	"github.com/Faultbox/swell/pkg/buoyancy"
	"github.com/Faultbox/swell/pkg/wave"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Swell ocean simulation ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("simulation finished")
}

func run(cfg *config.Config) error {
	waves, err := wave.Build(cfg.WaveParams())
	if err != nil {
		return fmt.Errorf("building waves: %w", err)
	}
	logger.Info("waves ready",
		zap.Int("count", waves.Len()),
		zap.String("fingerprint", fmt.Sprintf("%016x", waves.Fingerprint())),
	)

	opts := []sim.Option{
		sim.WithLogger(logger.Named("sim")),
		sim.WithTickRate(cfg.Simulation.TickRate),
	}
	if cfg.Surface.Enabled {
		surface, err := water.BuildGrid(cfg.Surface.GridSize, cfg.Surface.WorldSize)
		if err != nil {
			return err
		}
		logger.Info("surface mesh ready",
			zap.Int("vertices", surface.VertexCount()),
			zap.Int("triangles", len(surface.Indices)/3),
		)
		opts = append(opts, sim.WithSurface(surface, cfg.Surface.Workers))
		if cfg.Surface.SampleMesh {
			opts = append(opts, sim.WithMeshSampling())
		}
	}

	world, err := sim.NewWorld(waves, opts...)
	if err != nil {
		return err
	}
	for _, b := range cfg.Bodies {
		id, err := world.AddBody(sim.BodySpec{
			Name:       b.Name,
			Dimensions: b.Size(),
			Config:     b.Buoyancy(),
			Start:      buoyancy.State{Position: b.Start()},
		})
		if err != nil {
			return err
		}
		logger.Info("body added", zap.String("name", b.Name), zap.Stringer("id", id))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	onTick := func(w *sim.World) {
		every := cfg.Simulation.LogEvery
		if every <= 0 || w.Tick()%uint64(every) != 0 {
			return
		}
		logPoses(w)
	}

	if cfg.Simulation.Realtime {
		err = world.RunRealtime(ctx, cfg.Simulation.Ticks, onTick)
	} else {
		err = world.Run(ctx, cfg.Simulation.Ticks, onTick)
	}
	if errors.Is(err, sim.ErrStopped) {
		logger.Info("interrupted", zap.Uint64("tick", world.Tick()))
		err = nil
	}
	if err != nil {
		return err
	}

	logPoses(world)
	return nil
}

func logPoses(w *sim.World) {
	t := w.Time()
	for _, b := range w.Bodies() {
		p, q := b.State.Position, b.State.Orientation
		logger.Info("pose",
			zap.String("body", b.Name),
			zap.Uint64("tick", w.Tick()),
			zap.Float32("t", t),
			zap.Float32s("position", []float32{p.X, p.Y, p.Z}),
			zap.Float32s("orientation", []float32{q.X, q.Y, q.Z, q.W}),
			zap.Float32("submerged", b.Output.Submerged),
		)
	}
}
