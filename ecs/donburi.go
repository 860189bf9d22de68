package ecs

import (
	"github.com/phanxgames/adboard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/features/math"
	"github.com/yohamta/donburi/filter"
)

// BoardEventType is the Donburi event type for board events.
var BoardEventType = events.NewEventType[adboard.BoardEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Board events are published to BoardEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) adboard.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event adboard.BoardEvent) {
	BoardEventType.Publish(s.world, event)
}

// NodeData mirrors one board node.
type NodeData struct {
	Ref      adboard.NodeRef
	ID       string
	Position math.Vec2
	Velocity math.Vec2
	Radius   float64
	Selected bool
}

// Node is the component carrying NodeData.
var Node = donburi.NewComponentType[NodeData]()

// NodeQuery matches every mirrored node entity.
var NodeQuery = donburi.NewQuery(filter.Contains(Node))

// Mirror copies board node state into Donburi entities.
type Mirror struct {
	world    donburi.World
	board    *adboard.Board
	entities []donburi.Entity
}

// NewMirror creates one entity per node of board and syncs it once.
func NewMirror(world donburi.World, board *adboard.Board) *Mirror {
	if board == nil {
		panic("ecs: NewMirror called with nil board")
	}
	s := board.Store()
	m := &Mirror{
		world:    world,
		board:    board,
		entities: make([]donburi.Entity, s.Len()),
	}
	for i := range m.entities {
		m.entities[i] = world.Create(Node)
	}
	m.Sync()
	return m
}

// Entity returns the entity mirroring ref.
func (m *Mirror) Entity(ref adboard.NodeRef) (donburi.Entity, bool) {
	if !ref.Valid() || int(ref) >= len(m.entities) {
		return donburi.Null, false
	}
	return m.entities[ref], true
}

// Sync copies positions, velocities, radii and the selection into the
// mirrored entities.
func (m *Mirror) Sync() {
	selected, hasSel := m.board.Selected()
	nodes := m.board.Store().Nodes()
	for i := range nodes {
		n := &nodes[i]
		entry := m.world.Entry(m.entities[i])
		Node.SetValue(entry, NodeData{
			Ref:      adboard.NodeRef(i),
			ID:       n.ID,
			Position: math.NewVec2(n.X, n.Y),
			Velocity: math.NewVec2(n.VX, n.VY),
			Radius:   n.Radius(),
			Selected: hasSel && selected == adboard.NodeRef(i),
		})
	}
}
