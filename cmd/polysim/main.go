// Command polysim runs a scene headless and logs what the solver does.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jakecoffman/convex"
	"github.com/jakecoffman/convex/internal/config"
	"github.com/jakecoffman/convex/internal/logger"
	"github.com/jakecoffman/convex/internal/scene"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("run failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	sc, err := scene.Resolve(cfg.Scene)
	if err != nil {
		return err
	}

	opts := []convex.Option{
		convex.WithOptions(cfg.Simulation),
		convex.WithLogger(logger.Named("space")),
	}
	if cfg.Run.DebugDraw {
		opts = append(opts, convex.WithDrawer(newLogDrawer(logger.Named("draw"), cfg.Simulation.DebugFlags)))
	}
	space, err := convex.NewSpace(opts...)
	if err != nil {
		return err
	}

	shapes, err := sc.Build(space, cfg.Run.Seed)
	if err != nil {
		return err
	}
	logger.Info("scene built",
		zap.String("scene", sc.Name),
		zap.Int("shapes", len(shapes)),
		zap.Stringer("broadphase", cfg.Simulation.BroadPhase))

	start := time.Now()
	for i := 1; i <= cfg.Run.Steps; i++ {
		space.Step(cfg.Run.TimeStep)
		if cfg.Run.ReportEvery > 0 && i%cfg.Run.ReportEvery == 0 {
			report(space)
		}
	}
	logger.Info("done",
		zap.Int("steps", cfg.Run.Steps),
		zap.Duration("elapsed", time.Since(start)),
		zap.Float64("energy", kineticEnergy(space)))
	return nil
}

func report(space *convex.Space) {
	stats := space.Stats()
	var deepest float64
	space.ForEachContact(func(c *convex.Contact) {
		deepest = max(deepest, c.Depth)
	})
	logger.Info("step",
		zap.Uint64("step", stats.Steps),
		zap.Int("pairs", stats.Pairs),
		zap.Int("contacts", stats.Contacts),
		zap.Float64("deepest", deepest),
		zap.Float64("energy", kineticEnergy(space)),
		zap.Duration("broad", stats.BroadPhase),
		zap.Duration("narrow", stats.NarrowPhase),
		zap.Duration("solve", stats.Solve))
}

func kineticEnergy(space *convex.Space) float64 {
	var e float64
	space.ForEachShape(func(s *convex.Shape) {
		e += s.KineticEnergy()
	})
	return e
}
