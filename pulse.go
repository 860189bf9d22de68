package adboard

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Pulse animates a value back and forth between two bounds forever. Call
// Update(dt) each frame and read Value. Used for the selection glow.
type Pulse struct {
	tween    *gween.Tween
	from, to float32
	half     float32 // seconds per leg
	fn       ease.TweenFunc
	forward  bool

	// Value is the current animated value.
	Value float64
}

// NewPulse creates a pulse that eases from -> to over half a period, then back.
func NewPulse(from, to float64, period float32, fn ease.TweenFunc) *Pulse {
	p := &Pulse{
		from: float32(from),
		to:   float32(to),
		half: period / 2,
		fn:   fn,
	}
	p.Reset()
	return p
}

// Reset restarts the pulse at its lower bound, heading up.
func (p *Pulse) Reset() {
	p.forward = true
	p.Value = float64(p.from)
	p.tween = gween.New(p.from, p.to, p.half, p.fn)
}

// Update advances the pulse by dt seconds, turning around at either bound.
func (p *Pulse) Update(dt float32) {
	val, finished := p.tween.Update(dt)
	p.Value = float64(val)
	if !finished {
		return
	}
	p.forward = !p.forward
	if p.forward {
		p.tween = gween.New(p.from, p.to, p.half, p.fn)
	} else {
		p.tween = gween.New(p.to, p.from, p.half, p.fn)
	}
}
