// Package config loads polysim settings from defaults, a YAML file and flags.
package config

import (
	"fmt"

	"github.com/jakecoffman/convex"
)

type Config struct {
	Simulation convex.Options `yaml:"simulation"`
	Run        RunConfig      `yaml:"run"`
	Logging    LoggingConfig  `yaml:"logging"`
	// Scene is a builtin scene name or a path to a scene file.
	Scene string `yaml:"scene"`
}

// RunConfig drives the headless loop.
type RunConfig struct {
	Steps       int     `yaml:"steps"`
	TimeStep    float64 `yaml:"time_step"`
	ReportEvery int     `yaml:"report_every"`
	Seed        int64   `yaml:"seed"`
	// DebugDraw routes debug drawing into the log.
	DebugDraw bool `yaml:"debug_draw"`
}

type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

func Default() *Config {
	return &Config{
		Simulation: convex.DefaultOptions(),
		Run: RunConfig{
			Steps:       600,
			TimeStep:    1.0 / 60.0,
			ReportEvery: 60,
			Seed:        1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Scene: "bouncing",
	}
}

func (c *Config) Validate() error {
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	if c.Run.Steps < 0 {
		return fmt.Errorf("run steps %d: %w", c.Run.Steps, convex.ErrInvalidOptions)
	}
	if c.Run.TimeStep <= 0 {
		return fmt.Errorf("run time step %g: %w", c.Run.TimeStep, convex.ErrInvalidOptions)
	}
	if c.Scene == "" {
		return fmt.Errorf("no scene: %w", convex.ErrInvalidOptions)
	}
	return nil
}
