package adboard

import (
	"fmt"
	"math"
)

// InteractionState is the pointer gesture the controller is tracking.
type InteractionState uint8

const (
	StateIdle              InteractionState = iota // no gesture
	StatePointerDownOnNode                         // pressed on a node, not yet moved past the click threshold
	StateDragging                                  // a node follows the pointer
	StatePanning                                   // the view follows the pointer
	StateInertia                                   // the view coasts after a pan release
)

var interactionStateNames = [...]string{
	StateIdle:              "idle",
	StatePointerDownOnNode: "pointer_down_on_node",
	StateDragging:          "dragging",
	StatePanning:           "panning",
	StateInertia:           "inertia",
}

func (s InteractionState) String() string {
	if int(s) < len(interactionStateNames) {
		return interactionStateNames[s]
	}
	return fmt.Sprintf("InteractionState(%d)", s)
}

// InteractionConfig holds the gesture tunables.
type InteractionConfig struct {
	// ClickThreshold is the screen distance (pixels) the pointer may travel
	// from the down point and still count as a click.
	ClickThreshold float64
	// ThrowClamp bounds each axis of a released node's velocity.
	ThrowClamp float64
	// Inertia lets the view keep coasting after a pan is released.
	Inertia bool
	// Friction multiplies the pan velocity every inertia frame.
	Friction float64
	// StopThreshold is the pan speed below which inertia ends.
	StopThreshold float64
}

// DefaultInteraction returns the stock gesture tuning.
func DefaultInteraction() InteractionConfig {
	return InteractionConfig{
		ClickThreshold: 6,
		ThrowClamp:     3,
		Inertia:        true,
		Friction:       0.9,
		StopThreshold:  0.1,
	}
}

type pointerState struct {
	downX, downY float64 // screen position of the press
	lastX, lastY float64 // last screen position seen
	candidate    NodeRef // node under the press, until it becomes a drag or click
	dragged      NodeRef
	panVX        float64
	panVY        float64
}

// Controller turns primary-button pointer events into node drags, clicks,
// and view pans. It mutates the camera and store directly and reports
// gestures through notify.
type Controller struct {
	cfg   InteractionConfig
	cam   *Camera
	store *Store
	state InteractionState
	ptr   pointerState

	notify func(EventType, NodeRef)
}

// NewController creates a controller bound to a camera and store. notify may
// be nil.
func NewController(cam *Camera, store *Store, cfg InteractionConfig, notify func(EventType, NodeRef)) *Controller {
	if cam == nil || store == nil {
		panic("adboard: controller needs a camera and a store")
	}
	c := &Controller{
		cfg:    cfg,
		cam:    cam,
		store:  store,
		notify: notify,
	}
	c.reset()
	return c
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.ptr.candidate = NoNode
	c.ptr.dragged = NoNode
}

func (c *Controller) fire(e EventType, ref NodeRef) {
	if c.notify != nil {
		c.notify(e, ref)
	}
}

// State returns the current gesture state.
func (c *Controller) State() InteractionState {
	return c.state
}

// Dragged returns the node under pointer control, or NoNode.
func (c *Controller) Dragged() NodeRef {
	if c.state == StateDragging {
		return c.ptr.dragged
	}
	return NoNode
}

// PanVelocity returns the current screen-space pan velocity.
func (c *Controller) PanVelocity() Vec2 {
	return Vec2{c.ptr.panVX, c.ptr.panVY}
}

// PointerDown starts a gesture at screen point (sx, sy). A press on a node
// becomes a click candidate; anywhere else starts a pan. Any running inertia
// or camera scroll stops first.
func (c *Controller) PointerDown(sx, sy float64, button MouseButton) {
	if button != MouseButtonLeft {
		return
	}
	switch c.state {
	case StatePointerDownOnNode, StateDragging, StatePanning:
		// Missed the matching up; drop the stale gesture.
		c.Cancel()
	}
	c.cam.CancelScroll()
	c.ptr.panVX, c.ptr.panVY = 0, 0

	c.ptr.downX, c.ptr.downY = sx, sy
	c.ptr.lastX, c.ptr.lastY = sx, sy
	c.ptr.dragged = NoNode

	wx, wy := c.cam.ToWorld(sx, sy)
	if ref, ok := c.store.FindAt(wx, wy); ok {
		c.ptr.candidate = ref
		c.state = StatePointerDownOnNode
		return
	}
	c.ptr.candidate = NoNode
	c.state = StatePanning
	c.fire(EventPanStart, NoNode)
}

// PointerMove feeds a pointer position. Call it every frame while the button
// is held, even without movement, so the pan velocity decays to zero when the
// pointer rests.
func (c *Controller) PointerMove(sx, sy float64) {
	switch c.state {
	case StatePointerDownOnNode:
		if math.Hypot(sx-c.ptr.downX, sy-c.ptr.downY) <= c.cfg.ClickThreshold {
			break
		}
		c.ptr.dragged = c.ptr.candidate
		c.ptr.candidate = NoNode
		c.state = StateDragging
		c.fire(EventDragStart, c.ptr.dragged)
		c.dragTo(sx, sy)

	case StateDragging:
		c.dragTo(sx, sy)

	case StatePanning:
		dx, dy := sx-c.ptr.lastX, sy-c.ptr.lastY
		c.cam.PanBy(dx, dy)
		c.ptr.panVX, c.ptr.panVY = dx, dy
	}
	c.ptr.lastX, c.ptr.lastY = sx, sy
}

// dragTo moves the dragged node to the world point under (sx, sy) and sets its
// velocity to the clamped per-event displacement.
func (c *Controller) dragTo(sx, sy float64) {
	n := c.store.At(c.ptr.dragged)
	wx, wy := c.cam.ToWorld(sx, sy)
	lim := c.cfg.ThrowClamp
	n.VX = clamp(wx-n.X, -lim, lim)
	n.VY = clamp(wy-n.Y, -lim, lim)
	n.X, n.Y = wx, wy
}

// PointerUp ends the gesture. A press that never passed the click threshold
// selects its candidate node; a drag releases the node with its throw
// velocity; a pan hands off to inertia when enabled and fast enough.
func (c *Controller) PointerUp(sx, sy float64, button MouseButton) {
	if button != MouseButtonLeft {
		return
	}
	switch c.state {
	case StatePointerDownOnNode:
		ref := c.ptr.candidate
		c.reset()
		c.fire(EventSelect, ref)

	case StateDragging:
		ref := c.ptr.dragged
		c.reset()
		c.fire(EventThrow, ref)

	case StatePanning:
		c.reset()
		if c.cfg.Inertia && math.Hypot(c.ptr.panVX, c.ptr.panVY) > c.cfg.StopThreshold {
			c.state = StateInertia
		} else {
			c.ptr.panVX, c.ptr.panVY = 0, 0
		}
	}
}

// Cancel abandons any gesture without producing a click. A dragged node is let
// go with whatever velocity it had.
func (c *Controller) Cancel() {
	c.reset()
	c.ptr.panVX, c.ptr.panVY = 0, 0
}

// Tick advances inertia by one frame.
func (c *Controller) Tick() {
	if c.state != StateInertia {
		return
	}
	c.cam.OffsetX += c.ptr.panVX
	c.cam.OffsetY += c.ptr.panVY
	c.ptr.panVX *= c.cfg.Friction
	c.ptr.panVY *= c.cfg.Friction
	if math.Hypot(c.ptr.panVX, c.ptr.panVY) < c.cfg.StopThreshold {
		c.state = StateIdle
		c.ptr.panVX, c.ptr.panVY = 0, 0
	}
}
