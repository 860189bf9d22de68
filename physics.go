package adboard

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// ForceModel selects the shape-maintaining force applied each step.
// Exactly one model is active per configuration.
type ForceModel uint8

const (
	ForceCenter ForceModel = iota // linear spring pulling every node toward the origin
	ForceNone                     // no shape force; repulsion and collisions only
	ForceRadial                   // spring toward a fixed distance from the origin
	ForceDrift                    // constant drift plus a hard rectangular boundary
)

var forceModelNames = [...]string{
	ForceCenter: "center",
	ForceNone:   "none",
	ForceRadial: "radial",
	ForceDrift:  "drift",
}

// String returns the configuration name of the model.
func (m ForceModel) String() string {
	if int(m) < len(forceModelNames) {
		return forceModelNames[m]
	}
	return fmt.Sprintf("ForceModel(%d)", m)
}

// ParseForceModel converts a configuration name into a ForceModel.
func ParseForceModel(s string) (ForceModel, error) {
	for i, name := range forceModelNames {
		if name == s {
			return ForceModel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown force model %q", s)
}

// originSymmetric reports whether the model keeps the system centered on the
// origin, which is what spin cancellation measures angular momentum around.
func (m ForceModel) originSymmetric() bool {
	return m == ForceCenter || m == ForceNone
}

// Falloff selects how repulsion decays with distance.
type Falloff uint8

const (
	FalloffInverseSquare   Falloff = iota // Charge / d^2
	FalloffInverseDistance                // Charge / d
)

var falloffNames = [...]string{
	FalloffInverseSquare:   "inverse_square",
	FalloffInverseDistance: "inverse_distance",
}

// String returns the configuration name of the falloff.
func (f Falloff) String() string {
	if int(f) < len(falloffNames) {
		return falloffNames[f]
	}
	return fmt.Sprintf("Falloff(%d)", f)
}

// ParseFalloff converts a configuration name into a Falloff.
func ParseFalloff(s string) (Falloff, error) {
	for i, name := range falloffNames {
		if name == s {
			return Falloff(i), nil
		}
	}
	return 0, fmt.Errorf("unknown falloff %q", s)
}

// PhysicsConfig holds every tunable of the per-frame physics step. All
// quantities are per frame in world units.
type PhysicsConfig struct {
	Model   ForceModel
	Falloff Falloff

	// Charge is the repulsion strength between every pair of nodes.
	Charge float64

	// CenterStrength is the spring constant for ForceCenter.
	CenterStrength float64

	// TargetRadius and RadialStrength configure ForceRadial.
	TargetRadius   float64
	RadialStrength float64

	// Drift, Bounds and WallRestitution configure ForceDrift.
	Drift           Vec2
	Bounds          Rect
	WallRestitution float64

	// Jitter is the amplitude of the symmetric velocity noise. Zero disables it.
	Jitter float64

	// CollidePadding is extra spacing kept between circles.
	CollidePadding float64
	// Restitution is the fraction of normal velocity kept after a contact.
	Restitution float64
	// CollisionPasses is the number of relaxation passes per step. The
	// velocity impulse is applied on the first pass only.
	CollisionPasses int

	// Decay multiplies every velocity after integration.
	Decay float64

	// CancelSpin removes the rigid-body rotation about the origin each step.
	// Only honored by origin-symmetric models (ForceCenter, ForceNone).
	CancelSpin bool
}

// DefaultPhysics returns the soft, slowly settling tuning of the ad board.
func DefaultPhysics() PhysicsConfig {
	return PhysicsConfig{
		Model:           ForceCenter,
		Falloff:         FalloffInverseSquare,
		Charge:          80,
		CenterStrength:  0.002,
		TargetRadius:    350,
		RadialStrength:  0.002,
		Bounds:          Rect{X: -600, Y: -400, Width: 1200, Height: 800},
		WallRestitution: 0.4,
		Jitter:          0.002,
		CollidePadding:  4,
		Restitution:     0.4,
		CollisionPasses: 3,
		Decay:           0.96,
		CancelSpin:      true,
	}
}

// minRepelDist floors pair distances before dividing.
const minRepelDist = 1.0

// coincidentDist is the distance below which two centers are treated as
// coincident and separated along +X.
const coincidentDist = 1e-9

// Step advances the simulation by one frame. dragged is the node under
// pointer control (NoNode if none): it is exempt from shape force, jitter and
// integration, and acts as an immovable body in repulsion and collisions.
// rng may be nil, which disables jitter.
func Step(s *Store, dragged NodeRef, cfg *PhysicsConfig, rng *rand.Rand) {
	s.refreshRadii()
	nodes := s.nodes

	// Velocities only: both passes read the same position snapshot.
	applyRepulsion(nodes, dragged, cfg)
	applyShapeForce(nodes, dragged, cfg)
	if cfg.Jitter > 0 && rng != nil {
		applyJitter(nodes, dragged, cfg.Jitter, rng)
	}

	passes := cfg.CollisionPasses
	if passes < 1 {
		passes = 1
	}
	for pass := 0; pass < passes; pass++ {
		resolveCollisions(nodes, dragged, cfg, pass == 0)
	}

	if cfg.CancelSpin && cfg.Model.originSymmetric() {
		cancelSpin(nodes, dragged)
	}

	integrate(nodes, dragged, cfg)
}

// applyRepulsion pushes every unordered pair apart, equal and opposite. The
// dragged node pushes without being pushed.
func applyRepulsion(nodes []Node, dragged NodeRef, cfg *PhysicsConfig) {
	if cfg.Charge == 0 {
		return
	}
	for i := 0; i < len(nodes); i++ {
		a := &nodes[i]
		for j := i + 1; j < len(nodes); j++ {
			b := &nodes[j]

			dx := b.X - a.X
			dy := b.Y - a.Y
			dist := math.Hypot(dx, dy)
			if dist < minRepelDist {
				dist = minRepelDist
			}

			var force float64
			switch cfg.Falloff {
			case FalloffInverseDistance:
				force = cfg.Charge / dist
			default:
				force = cfg.Charge / (dist * dist)
			}
			ux := dx / dist * force
			uy := dy / dist * force

			if NodeRef(i) != dragged {
				a.VX -= ux
				a.VY -= uy
			}
			if NodeRef(j) != dragged {
				b.VX += ux
				b.VY += uy
			}
		}
	}
}

// applyShapeForce applies the configured shape-maintaining force.
func applyShapeForce(nodes []Node, dragged NodeRef, cfg *PhysicsConfig) {
	for i := range nodes {
		if NodeRef(i) == dragged {
			continue
		}
		n := &nodes[i]
		switch cfg.Model {
		case ForceCenter:
			n.VX -= n.X * cfg.CenterStrength
			n.VY -= n.Y * cfg.CenterStrength
		case ForceRadial:
			r := math.Hypot(n.X, n.Y)
			if r < coincidentDist {
				continue // no direction at the origin
			}
			k := (cfg.TargetRadius - r) * cfg.RadialStrength / r
			n.VX += n.X * k
			n.VY += n.Y * k
		case ForceDrift:
			n.VX += cfg.Drift.X
			n.VY += cfg.Drift.Y
		}
	}
}

func applyJitter(nodes []Node, dragged NodeRef, amount float64, rng *rand.Rand) {
	for i := range nodes {
		if NodeRef(i) == dragged {
			continue
		}
		n := &nodes[i]
		n.VX += (rng.Float64() - 0.5) * amount
		n.VY += (rng.Float64() - 0.5) * amount
	}
}

// resolveCollisions separates overlapping circles pairwise in store order.
// Corrections are applied immediately, so later pairs see earlier ones.
func resolveCollisions(nodes []Node, dragged NodeRef, cfg *PhysicsConfig, withImpulse bool) {
	for i := 0; i < len(nodes); i++ {
		a := &nodes[i]
		aDragged := NodeRef(i) == dragged
		for j := i + 1; j < len(nodes); j++ {
			b := &nodes[j]
			bDragged := NodeRef(j) == dragged

			dx := b.X - a.X
			dy := b.Y - a.Y
			minDist := a.radius + b.radius + cfg.CollidePadding
			distSq := dx*dx + dy*dy
			if distSq >= minDist*minDist {
				continue
			}

			dist := math.Sqrt(distSq)
			nx, ny := 1.0, 0.0
			if dist > coincidentDist {
				nx = dx / dist
				ny = dy / dist
			}

			// Positional correction along the contact normal.
			overlap := minDist - dist
			switch {
			case aDragged:
				b.X += nx * overlap
				b.Y += ny * overlap
			case bDragged:
				a.X -= nx * overlap
				a.Y -= ny * overlap
			default:
				half := overlap * 0.5
				a.X -= nx * half
				a.Y -= ny * half
				b.X += nx * half
				b.Y += ny * half
			}

			if !withImpulse {
				continue
			}

			// Relative velocity of b with respect to a along the normal;
			// non-negative means already separating.
			vn := (b.VX-a.VX)*nx + (b.VY-a.VY)*ny
			if vn >= 0 {
				continue
			}
			impulse := -(1 + cfg.Restitution) * vn
			switch {
			case aDragged:
				b.VX += impulse * nx
				b.VY += impulse * ny
			case bDragged:
				a.VX -= impulse * nx
				a.VY -= impulse * ny
			default:
				impulse *= 0.5
				a.VX -= impulse * nx
				a.VY -= impulse * ny
				b.VX += impulse * nx
				b.VY += impulse * ny
			}
		}
	}
}

// cancelSpin subtracts the rigid rotation omega = L/I about the origin from
// every free node.
func cancelSpin(nodes []Node, dragged NodeRef) {
	var l, inertia float64
	for i := range nodes {
		if NodeRef(i) == dragged {
			continue
		}
		n := &nodes[i]
		l += n.X*n.VY - n.Y*n.VX
		inertia += n.X*n.X + n.Y*n.Y
	}
	if inertia <= 0 {
		return
	}
	omega := l / inertia
	for i := range nodes {
		if NodeRef(i) == dragged {
			continue
		}
		n := &nodes[i]
		n.VX += omega * n.Y
		n.VY -= omega * n.X
	}
}

// integrate moves free nodes by their velocity, then damps it.
func integrate(nodes []Node, dragged NodeRef, cfg *PhysicsConfig) {
	bounded := cfg.Model == ForceDrift && !cfg.Bounds.Empty()
	for i := range nodes {
		if NodeRef(i) == dragged {
			continue
		}
		n := &nodes[i]
		n.X += n.VX
		n.Y += n.VY
		n.VX *= cfg.Decay
		n.VY *= cfg.Decay
		if bounded {
			clampToBounds(n, cfg.Bounds, cfg.WallRestitution)
		}
	}
}

// clampToBounds keeps the node's circle inside bounds, reflecting the
// velocity component on every axis that was clamped. A circle wider than the
// bounds is centered on that axis.
func clampToBounds(n *Node, bounds Rect, restitution float64) {
	r := n.radius
	minX, maxX := bounds.X+r, bounds.X+bounds.Width-r
	minY, maxY := bounds.Y+r, bounds.Y+bounds.Height-r

	switch {
	case minX > maxX:
		n.X = bounds.X + bounds.Width/2
		n.VX = 0
	case n.X < minX:
		n.X = minX
		n.VX = math.Abs(n.VX) * restitution
	case n.X > maxX:
		n.X = maxX
		n.VX = -math.Abs(n.VX) * restitution
	}

	switch {
	case minY > maxY:
		n.Y = bounds.Y + bounds.Height/2
		n.VY = 0
	case n.Y < minY:
		n.Y = minY
		n.VY = math.Abs(n.VY) * restitution
	case n.Y > maxY:
		n.Y = maxY
		n.VY = -math.Abs(n.VY) * restitution
	}
}
