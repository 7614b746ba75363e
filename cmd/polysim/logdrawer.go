package main

import (
	"go.uber.org/zap"

	"github.com/jakecoffman/convex"
)

// logDrawer writes debug geometry to the log at debug level. Lines are too
// many to be useful, so it only counts them per step and keeps the text.
type logDrawer struct {
	log   *zap.Logger
	flags uint
	lines int
}

func newLogDrawer(log *zap.Logger, flags uint) *logDrawer {
	return &logDrawer{log: log, flags: flags}
}

func (d *logDrawer) DrawLine(a, b convex.Vector, c convex.Color) {
	d.lines++
}

func (d *logDrawer) DrawText(text string, x, y float64) {
	d.log.Debug(text, zap.Int("lines", d.lines))
	d.lines = 0
}

func (d *logDrawer) DrawTextWorld(text string, p convex.Vector) {
	d.log.Debug(text, zap.Stringer("at", p))
}

func (d *logDrawer) Flags() uint {
	return d.flags
}
