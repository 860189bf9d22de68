package adboard

import "math"

// Store holds the fixed, ordered list of nodes. Iteration order is the
// definition order and never changes; physics relies on it for
// reproducible pairwise accumulation.
type Store struct {
	nodes  []Node
	sizing Sizing
	index  map[string]NodeRef
}

// NewStore creates a store from the given definitions. Radii are derived
// immediately so hit testing works before the first physics step.
func NewStore(defs []NodeDef, sizing Sizing) *Store {
	s := &Store{
		nodes:  make([]Node, len(defs)),
		sizing: sizing,
		index:  make(map[string]NodeRef, len(defs)),
	}
	for i, d := range defs {
		s.nodes[i] = Node{
			ID:       d.ID,
			Color:    d.Color,
			VideoRef: d.VideoRef,
			Metrics:  d.Metrics,
		}
		if _, dup := s.index[d.ID]; !dup {
			s.index[d.ID] = NodeRef(i)
		}
	}
	s.refreshRadii()
	return s
}

// Len returns the number of nodes.
func (s *Store) Len() int {
	return len(s.nodes)
}

// At returns the node referenced by ref. Panics if ref is out of range.
func (s *Store) At(ref NodeRef) *Node {
	if ref < 0 || int(ref) >= len(s.nodes) {
		panic("adboard: node ref out of range")
	}
	return &s.nodes[ref]
}

// Nodes returns the node slice. The returned slice MUST NOT be resized by the
// caller.
func (s *Store) Nodes() []Node {
	return s.nodes
}

// Find returns the node with the given id.
func (s *Store) Find(id string) (NodeRef, bool) {
	ref, ok := s.index[id]
	return ref, ok
}

// FindAt returns the first node (in store order) whose circle contains the
// world point (wx, wy). The boundary counts as inside.
func (s *Store) FindAt(wx, wy float64) (NodeRef, bool) {
	for i := range s.nodes {
		if s.nodes[i].Contains(wx, wy) {
			return NodeRef(i), true
		}
	}
	return NoNode, false
}

// Sizing returns the radius rule used by the store.
func (s *Store) Sizing() Sizing {
	return s.sizing
}

// refreshRadii recomputes every radius from the node's metrics.
func (s *Store) refreshRadii() {
	for i := range s.nodes {
		n := &s.nodes[i]
		n.radius = s.sizing.Radius(n.Metrics)
	}
}

// ArrangeCircle places node i at angle 2*pi*i/n on a circle of radius r
// around the origin and zeroes all velocities.
func (s *Store) ArrangeCircle(r float64) {
	count := float64(len(s.nodes))
	for i := range s.nodes {
		n := &s.nodes[i]
		angle := float64(i) / count * math.Pi * 2
		n.X = math.Cos(angle) * r
		n.Y = math.Sin(angle) * r
		n.VX, n.VY = 0, 0
	}
}

// Centroid returns the mean node position, or the origin for an empty store.
func (s *Store) Centroid() Vec2 {
	if len(s.nodes) == 0 {
		return Vec2{}
	}
	var c Vec2
	for i := range s.nodes {
		c.X += s.nodes[i].X
		c.Y += s.nodes[i].Y
	}
	inv := 1 / float64(len(s.nodes))
	return Vec2{c.X * inv, c.Y * inv}
}

// KineticEnergy returns the total kinetic energy with unit masses.
func (s *Store) KineticEnergy() float64 {
	var e float64
	for i := range s.nodes {
		n := &s.nodes[i]
		e += 0.5 * (n.VX*n.VX + n.VY*n.VY)
	}
	return e
}

// MinGap returns the smallest surface-to-surface distance over all pairs.
// A negative value is the deepest interpenetration. Returns +Inf for fewer
// than two nodes.
func (s *Store) MinGap() float64 {
	gap := math.Inf(1)
	for i := 0; i < len(s.nodes); i++ {
		a := &s.nodes[i]
		for j := i + 1; j < len(s.nodes); j++ {
			b := &s.nodes[j]
			d := math.Hypot(b.X-a.X, b.Y-a.Y) - a.radius - b.radius
			if d < gap {
				gap = d
			}
		}
	}
	return gap
}
