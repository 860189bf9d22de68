package adboard

import (
	"log/slog"
	"time"
)

// debugStats holds per-frame timing and simulation metrics.
// Only populated when the board is in debug mode.
type debugStats struct {
	stepTime    time.Duration
	drawTime    time.Duration
	vertexCount int
	energy      float64
	minGap      float64
}

// debugLogEvery is how many simulation steps pass between stats lines.
const debugLogEvery = 60

// debugOverlapWarn is the interpenetration depth (world units) that draws a
// warning in debug mode.
const debugOverlapWarn = 2.0

// stepPhysics runs one physics step, timing it in debug mode.
func (b *Board) stepPhysics() {
	if !b.debug {
		Step(b.store, b.ctrl.Dragged(), &b.physics, b.rng)
		return
	}

	t0 := time.Now()
	Step(b.store, b.ctrl.Dragged(), &b.physics, b.rng)
	b.stats.stepTime = time.Since(t0)
	b.stats.energy = b.store.KineticEnergy()
	b.stats.minGap = b.store.MinGap()

	debugCheckOverlap(b.logger, b.stats.minGap, b.clock.Frame())
	if b.clock.Frame()%debugLogEvery == 0 {
		b.debugLog(b.stats)
	}
}

// debugLog writes the stats through the board's logger.
func (b *Board) debugLog(stats debugStats) {
	b.logger.Debug("frame stats",
		"frame", b.clock.Frame(),
		"step", stats.stepTime,
		"draw", stats.drawTime,
		"vertices", stats.vertexCount,
		"energy", stats.energy,
		"min_gap", stats.minGap,
		"zoom", b.cam.ZoomPercent(),
	)
}

// debugCheckOverlap warns when nodes interpenetrate deeper than
// debugOverlapWarn after a step.
func debugCheckOverlap(l *slog.Logger, minGap float64, frame uint64) bool {
	if minGap >= -debugOverlapWarn {
		return false
	}
	l.Warn("nodes overlap after collision pass", "depth", -minGap, "frame", frame)
	return true
}
