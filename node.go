package adboard

import "fmt"

// Metrics is the performance record shown for a node. All values are
// percentages.
type Metrics struct {
	CTR      float64
	HookRate float64
	HoldRate float64
}

// NodeDef is the static definition a node is created from. Position,
// velocity and radius are derived and never supplied.
type NodeDef struct {
	ID       string
	Color    Color
	VideoRef string
	Metrics  Metrics
}

// NodeRef identifies a node by its index in the Store.
type NodeRef int

// NoNode is the NodeRef used when no node is referenced.
const NoNode NodeRef = -1

// Valid reports whether r refers to a node (it does not check bounds).
func (r NodeRef) Valid() bool {
	return r >= 0
}

// Sizing derives a node radius from its metrics.
type Sizing struct {
	// RadiusBase is the radius of a node with a CTR of zero.
	RadiusBase float64
	// RadiusPerCTR is added to the radius for every CTR percentage point.
	RadiusPerCTR float64
}

// DefaultSizing returns the sizing rule radius = 40 + ctr*7.
func DefaultSizing() Sizing {
	return Sizing{RadiusBase: 40, RadiusPerCTR: 7}
}

// Radius returns the radius for the given metrics.
func (s Sizing) Radius(m Metrics) float64 {
	return s.RadiusBase + m.CTR*s.RadiusPerCTR
}

// Node is a single circular entity on the board. A flat value type; the
// Store owns every Node and hands out NodeRefs.
type Node struct {
	// Identity
	ID       string
	Color    Color
	VideoRef string
	Metrics  Metrics

	// Physical state (world units, per frame)
	X, Y   float64
	VX, VY float64

	// radius is derived from Metrics at the start of every physics step.
	radius float64
}

// Radius returns the node's current radius in world units.
func (n *Node) Radius() float64 {
	return n.radius
}

// Pos returns the node's position.
func (n *Node) Pos() Vec2 {
	return Vec2{n.X, n.Y}
}

// Vel returns the node's velocity.
func (n *Node) Vel() Vec2 {
	return Vec2{n.VX, n.VY}
}

// Contains reports whether the world point (x, y) lies inside or on the
// node's circle.
func (n *Node) Contains(x, y float64) bool {
	dx := x - n.X
	dy := y - n.Y
	return dx*dx+dy*dy <= n.radius*n.radius
}

// String returns a short description used in log lines.
func (n *Node) String() string {
	return fmt.Sprintf("%s@(%.1f,%.1f)", n.ID, n.X, n.Y)
}
