package adboard

import (
	"math"
	"math/rand/v2"
	"testing"
)

func twoNodeStore(ax, bx float64) *Store {
	s := NewStore([]NodeDef{{ID: "a"}, {ID: "b"}}, DefaultSizing())
	s.At(0).X = ax
	s.At(1).X = bx
	return s
}

func quietPhysics() PhysicsConfig {
	cfg := DefaultPhysics()
	cfg.Model = ForceNone
	cfg.Jitter = 0
	cfg.CancelSpin = false
	cfg.Decay = 1
	return cfg
}

func TestParseForceModel(t *testing.T) {
	for _, m := range []ForceModel{ForceCenter, ForceNone, ForceRadial, ForceDrift} {
		got, err := ParseForceModel(m.String())
		if err != nil || got != m {
			t.Errorf("ParseForceModel(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseForceModel("gravity"); err == nil {
		t.Error("ParseForceModel(gravity) should fail")
	}
	if _, err := ParseFalloff("inverse_cube"); err == nil {
		t.Error("ParseFalloff(inverse_cube) should fail")
	}
}

func TestRepulsionEqualAndOpposite(t *testing.T) {
	cfg := quietPhysics()
	s := twoNodeStore(-150, 150)
	applyRepulsion(s.nodes, NoNode, &cfg)

	a, b := s.At(0), s.At(1)
	want := cfg.Charge / (300 * 300)
	assertNear(t, "a.VX", a.VX, -want)
	assertNear(t, "b.VX", b.VX, want)
	assertNear(t, "sum VY", a.VY+b.VY, 0)
}

func TestRepulsionInverseDistance(t *testing.T) {
	cfg := quietPhysics()
	cfg.Falloff = FalloffInverseDistance
	s := twoNodeStore(0, 200)
	applyRepulsion(s.nodes, NoNode, &cfg)
	assertNear(t, "b.VX", s.At(1).VX, cfg.Charge/200)
}

func TestRepulsionCoincidentIsFinite(t *testing.T) {
	cfg := quietPhysics()
	s := twoNodeStore(10, 10)
	Step(s, NoNode, &cfg, nil)
	for i := range s.Len() {
		n := s.At(NodeRef(i))
		if math.IsNaN(n.X) || math.IsNaN(n.VX) || math.IsInf(n.VX, 0) {
			t.Fatalf("node %d not finite: %v", i, n)
		}
	}
	if s.MinGap() < -1e-6 {
		t.Errorf("coincident nodes still overlap: gap %v", s.MinGap())
	}
}

func TestDraggedNodeIsImmovable(t *testing.T) {
	cfg := DefaultPhysics()
	s := NewStore(testDefs(), DefaultSizing())
	s.ArrangeCircle(60) // heavily overlapping
	dragged := NodeRef(2)
	d := s.At(dragged)
	d.X, d.Y = 17, -4
	d.VX, d.VY = 1.5, -0.5

	rng := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		Step(s, dragged, &cfg, rng)
	}
	assertNear(t, "dragged X", d.X, 17)
	assertNear(t, "dragged Y", d.Y, -4)
	assertNear(t, "dragged VX", d.VX, 1.5)
	assertNear(t, "dragged VY", d.VY, -0.5)
}

func TestCollisionImpulse(t *testing.T) {
	cfg := quietPhysics()
	cfg.Charge = 0
	cfg.CollidePadding = 0
	cfg.CollisionPasses = 1
	s := twoNodeStore(0, 70) // radii 40, overlap 10
	s.At(0).VX = 1
	s.At(1).VX = -1

	resolveCollisions(s.nodes, NoNode, &cfg, true)

	a, b := s.At(0), s.At(1)
	assertNear(t, "a.X", a.X, -5)
	assertNear(t, "b.X", b.X, 75)
	// vn = -2, impulse = 1.4*2 = 2.8 split evenly.
	assertNear(t, "a.VX", a.VX, 1-1.4)
	assertNear(t, "b.VX", b.VX, -1+1.4)
	assertNear(t, "momentum", a.VX+b.VX, 0)
}

func TestCollisionSeparatingPairKeepsVelocity(t *testing.T) {
	cfg := quietPhysics()
	cfg.CollidePadding = 0
	s := twoNodeStore(0, 70)
	s.At(0).VX = -1
	s.At(1).VX = 1
	resolveCollisions(s.nodes, NoNode, &cfg, true)
	assertNear(t, "a.VX", s.At(0).VX, -1)
	assertNear(t, "b.VX", s.At(1).VX, 1)
}

func TestCollisionAgainstDraggedNode(t *testing.T) {
	cfg := quietPhysics()
	cfg.CollidePadding = 0
	s := twoNodeStore(0, 70)
	s.At(1).VX = -1

	resolveCollisions(s.nodes, 0, &cfg, true)

	a, b := s.At(0), s.At(1)
	assertNear(t, "a.X", a.X, 0)
	assertNear(t, "b.X", b.X, 80)
	assertNear(t, "a.VX", a.VX, 0)
	assertNear(t, "b.VX", b.VX, -1+1.4)
}

func TestCenterForcePullsInward(t *testing.T) {
	cfg := DefaultPhysics()
	cfg.Jitter = 0
	s := NewStore([]NodeDef{{ID: "solo"}}, DefaultSizing())
	s.At(0).X = 300
	Step(s, NoNode, &cfg, nil)
	if s.At(0).X >= 300 {
		t.Errorf("X = %v, want < 300", s.At(0).X)
	}
}

func TestRadialForceSeeksTargetRadius(t *testing.T) {
	cfg := quietPhysics()
	cfg.Model = ForceRadial
	cfg.Decay = 0.9
	s := NewStore([]NodeDef{{ID: "solo"}}, DefaultSizing())
	s.At(0).X = 100
	for range 2000 {
		Step(s, NoNode, &cfg, nil)
	}
	if r := math.Hypot(s.At(0).X, s.At(0).Y); !approxEqual(r, cfg.TargetRadius, 1) {
		t.Errorf("radius = %v, want ~%v", r, cfg.TargetRadius)
	}

	origin := NewStore([]NodeDef{{ID: "origin"}}, DefaultSizing())
	Step(origin, NoNode, &cfg, nil)
	if n := origin.At(0); n.X != 0 || n.Y != 0 {
		t.Errorf("node at origin moved to (%v, %v)", n.X, n.Y)
	}
}

func TestDriftStaysInBounds(t *testing.T) {
	cfg := quietPhysics()
	cfg.Model = ForceDrift
	cfg.Drift = Vec2{X: 0.8, Y: 0.3}
	cfg.Decay = 0.98
	s := NewStore(testDefs(), DefaultSizing())
	s.ArrangeCircle(200)

	for range 600 {
		Step(s, NoNode, &cfg, nil)
	}
	b := cfg.Bounds
	for i := range s.Len() {
		n := s.At(NodeRef(i))
		r := n.Radius()
		if n.X-r < b.X-epsilon || n.X+r > b.X+b.Width+epsilon ||
			n.Y-r < b.Y-epsilon || n.Y+r > b.Y+b.Height+epsilon {
			t.Errorf("node %d at (%v, %v) r=%v escaped %v", i, n.X, n.Y, r, b)
		}
	}
}

func TestClampToBoundsOversizedCircle(t *testing.T) {
	n := &Node{X: 5, Y: 5, VX: 3, VY: 3, radius: 50}
	clampToBounds(n, Rect{X: 0, Y: 0, Width: 40, Height: 200}, 0.5)
	assertNear(t, "X", n.X, 20)
	assertNear(t, "VX", n.VX, 0)
	assertNear(t, "Y", n.Y, 50)
	assertNear(t, "VY", n.VY, 1.5)
}

func TestCancelSpinRemovesAngularMomentum(t *testing.T) {
	s := NewStore(testDefs(), DefaultSizing())
	s.ArrangeCircle(350)
	for i := range s.Len() {
		n := s.At(NodeRef(i))
		// Pure rotation plus a radial component.
		n.VX = -n.Y*0.01 + n.X*0.001
		n.VY = n.X*0.01 + n.Y*0.001
	}
	cancelSpin(s.nodes, NoNode)

	var l float64
	for i := range s.Len() {
		n := s.At(NodeRef(i))
		l += n.X*n.VY - n.Y*n.VX
	}
	if !approxEqual(l, 0, 1e-6) {
		t.Errorf("angular momentum = %v, want 0", l)
	}
	n := s.At(0)
	assertNear(t, "radial VX kept", n.VX, 0.35)
}

func TestIdleSimulationSettles(t *testing.T) {
	cfg := DefaultPhysics()
	s := NewStore(testDefs(), DefaultSizing())
	s.ArrangeCircle(350)
	rng := rand.New(rand.NewPCG(7, 11))

	// The center pull can never release more than its initial potential energy.
	maxEnergy := 0.5 * cfg.CenterStrength * 350 * 350 * float64(s.Len())
	for step := range 500 {
		Step(s, NoNode, &cfg, rng)
		if e := s.KineticEnergy(); e > maxEnergy || math.IsNaN(e) {
			t.Fatalf("step %d: kinetic energy %v exceeds %v", step, e, maxEnergy)
		}
	}
	if gap := s.MinGap(); gap < -1 {
		t.Errorf("after 500 steps min gap = %v, want >= -1", gap)
	}
	if e := s.KineticEnergy(); e > 5 {
		t.Errorf("after 500 steps kinetic energy = %v, want settled below 5", e)
	}
}

func TestStepDeterministicWithSeed(t *testing.T) {
	run := func() Vec2 {
		cfg := DefaultPhysics()
		s := NewStore(testDefs(), DefaultSizing())
		s.ArrangeCircle(350)
		rng := rand.New(rand.NewPCG(42, 42))
		for range 100 {
			Step(s, NoNode, &cfg, rng)
		}
		return s.At(5).Pos()
	}
	a, b := run(), run()
	if a != b {
		t.Errorf("same seed produced %v and %v", a, b)
	}
}
