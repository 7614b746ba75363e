package convex

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrInvalidOptions is wrapped by every Options validation failure.
var ErrInvalidOptions = errors.New("invalid options")

const (
	MaxGJKIterations = 1000
	MaxEPAIterations = 1000
	EPATolerance     = 0.01
)

// Options configures a Space. The zero value is not usable, start from DefaultOptions.
type Options struct {
	Gravity           Vector `yaml:"gravity"`
	GravityEnabled    bool   `yaml:"gravity_enabled"`
	CollisionResponse bool   `yaml:"collision_response"`
	WarmStarting      bool   `yaml:"warm_starting"`

	VelocityIterations int `yaml:"velocity_iterations"`
	// Each pass removes at most PositionDamping of the overlap beyond PenetrationSlop.
	// Gravity is integrated before contacts are solved, so stacked contacts settle a
	// little deeper than the slop, more so with fewer passes and taller stacks.
	PositionIterations int `yaml:"position_iterations"`

	// Baumgarte factor, the share of the remaining penetration removed per position iteration.
	PositionDamping float64 `yaml:"position_damping"`
	// Penetration allowed without correction.
	PenetrationSlop float64 `yaml:"penetration_slop"`
	// Largest positional correction per iteration.
	MaxCorrection float64 `yaml:"max_correction"`
	// Approach speeds below this do not bounce.
	RestitutionThreshold float64 `yaml:"restitution_threshold"`

	// Step clamps dt to this, in seconds.
	MaxTimeStep float64 `yaml:"max_time_step"`

	MaxGJKIterations int     `yaml:"max_gjk_iterations"`
	MaxEPAIterations int     `yaml:"max_epa_iterations"`
	EPATolerance     float64 `yaml:"epa_tolerance"`

	BroadPhase BroadPhaseKind `yaml:"broad_phase"`

	// DebugFlags selects what DrawSpace emits, see DrawShapes and friends.
	DebugFlags uint `yaml:"debug_flags"`
}

func DefaultOptions() Options {
	return Options{
		Gravity:              Vector{0, -9.8},
		GravityEnabled:       true,
		CollisionResponse:    true,
		WarmStarting:         true,
		VelocityIterations:   8,
		PositionIterations:   3,
		PositionDamping:      0.2,
		PenetrationSlop:      0.005,
		MaxCorrection:        0.2,
		RestitutionThreshold: 1.0,
		MaxTimeStep:          1.0 / 15.0,
		MaxGJKIterations:     MaxGJKIterations,
		MaxEPAIterations:     MaxEPAIterations,
		EPATolerance:         EPATolerance,
		BroadPhase:           SweepAndPruneKind,
	}
}

func (o Options) Validate() error {
	switch {
	case o.VelocityIterations < 1:
		return fmt.Errorf("velocity iterations %d: %w", o.VelocityIterations, ErrInvalidOptions)
	case o.PositionIterations < 0:
		return fmt.Errorf("position iterations %d: %w", o.PositionIterations, ErrInvalidOptions)
	case o.PositionDamping < 0 || o.PositionDamping > 1:
		return fmt.Errorf("position damping %g: %w", o.PositionDamping, ErrInvalidOptions)
	case o.PenetrationSlop < 0:
		return fmt.Errorf("penetration slop %g: %w", o.PenetrationSlop, ErrInvalidOptions)
	case o.MaxCorrection < 0:
		return fmt.Errorf("max correction %g: %w", o.MaxCorrection, ErrInvalidOptions)
	case o.RestitutionThreshold < 0:
		return fmt.Errorf("restitution threshold %g: %w", o.RestitutionThreshold, ErrInvalidOptions)
	case o.MaxTimeStep <= 0:
		return fmt.Errorf("max time step %g: %w", o.MaxTimeStep, ErrInvalidOptions)
	case o.MaxGJKIterations < 1 || o.MaxEPAIterations < 1:
		return fmt.Errorf("iteration caps %d/%d: %w", o.MaxGJKIterations, o.MaxEPAIterations, ErrInvalidOptions)
	case o.EPATolerance <= 0:
		return fmt.Errorf("epa tolerance %g: %w", o.EPATolerance, ErrInvalidOptions)
	case o.BroadPhase != SweepAndPruneKind && o.BroadPhase != BruteForceKind:
		return fmt.Errorf("broad phase %v: %w", o.BroadPhase, ErrInvalidOptions)
	}
	return nil
}

// Option configures NewSpace.
type Option func(*Space)

// WithOptions replaces the space's options. NewSpace validates the result.
func WithOptions(opts Options) Option {
	return func(s *Space) {
		s.opts = opts
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *Space) {
		if log != nil {
			s.log = log
		}
	}
}

func WithDrawer(d Drawer) Option {
	return func(s *Space) {
		s.drawer = d
	}
}

// WithBroadPhase overrides the strategy named by Options.BroadPhase.
func WithBroadPhase(bp BroadPhase) Option {
	return func(s *Space) {
		s.broadPhase = bp
	}
}
