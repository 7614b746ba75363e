package config

import (
	"flag"

	"github.com/jakecoffman/convex"
)

// Flags holds the command line overrides. Zero values mean "not given".
type Flags struct {
	config     string
	debug      bool
	scene      string
	steps      int
	dt         float64
	seed       int64
	draw       bool
	noGravity  bool
	noResponse bool
	broadPhase string
	logFile    string
}

// RegisterFlags defines the overrides on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.config, "config", "", "Path to config file")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.scene, "scene", "", "Builtin scene name or scene file")
	fs.IntVar(&f.steps, "steps", 0, "Number of steps to run")
	fs.Float64Var(&f.dt, "dt", 0, "Time step in seconds")
	fs.Int64Var(&f.seed, "seed", 0, "Random scene seed")
	fs.BoolVar(&f.draw, "draw", false, "Log debug drawing")
	fs.BoolVar(&f.noGravity, "nogravity", false, "Disable gravity")
	fs.BoolVar(&f.noResponse, "noresponse", false, "Detect contacts without resolving them")
	fs.StringVar(&f.broadPhase, "broadphase", "", "Broad phase: sap or brute")
	fs.StringVar(&f.logFile, "log", "", "Also log to this file")
	return f
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	return f.config
}

func (f *Flags) apply(cfg *Config) {
	if f.debug {
		cfg.Logging.Level = "debug"
	}
	if f.scene != "" {
		cfg.Scene = f.scene
	}
	if f.steps > 0 {
		cfg.Run.Steps = f.steps
	}
	if f.dt > 0 {
		cfg.Run.TimeStep = f.dt
	}
	if f.seed != 0 {
		cfg.Run.Seed = f.seed
	}
	if f.draw {
		cfg.Run.DebugDraw = true
		if cfg.Simulation.DebugFlags == 0 {
			cfg.Simulation.DebugFlags = convex.DrawContacts | convex.DrawStats
		}
	}
	if f.noGravity {
		cfg.Simulation.GravityEnabled = false
	}
	if f.noResponse {
		cfg.Simulation.CollisionResponse = false
	}
	if f.broadPhase != "" {
		// an unknown name is left for Validate to reject
		kind, err := convex.ParseBroadPhaseKind(f.broadPhase)
		if err != nil {
			kind = -1
		}
		cfg.Simulation.BroadPhase = kind
	}
	if f.logFile != "" {
		cfg.Logging.LogFile = f.logFile
	}
}
