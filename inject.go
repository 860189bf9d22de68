package adboard

// syntheticPointerEvent represents a single injected input event. Screen
// coordinates are used and routed through the same controller path as real
// mouse input.
type syntheticPointerEvent struct {
	kind             syntheticKind
	screenX, screenY float64
	deltaY           float64
	mods             KeyModifiers
}

type syntheticKind uint8

const (
	synthPress syntheticKind = iota
	synthMove
	synthRelease
	synthWheel
)

// InjectPress queues a primary-button press at the given screen coordinates.
// The event is consumed on the next Update.
func (b *Board) InjectPress(x, y float64) {
	b.injectQueue = append(b.injectQueue, syntheticPointerEvent{kind: synthPress, screenX: x, screenY: y})
}

// InjectMove queues a pointer move with the button held. Use this between
// InjectPress and InjectRelease to simulate a drag or pan.
func (b *Board) InjectMove(x, y float64) {
	b.injectQueue = append(b.injectQueue, syntheticPointerEvent{kind: synthMove, screenX: x, screenY: y})
}

// InjectRelease queues a primary-button release at the given screen
// coordinates.
func (b *Board) InjectRelease(x, y float64) {
	b.injectQueue = append(b.injectQueue, syntheticPointerEvent{kind: synthRelease, screenX: x, screenY: y})
}

// InjectWheel queues a wheel event at the given screen coordinates.
func (b *Board) InjectWheel(x, y, deltaY float64, mods KeyModifiers) {
	b.injectQueue = append(b.injectQueue, syntheticPointerEvent{
		kind: synthWheel, screenX: x, screenY: y, deltaY: deltaY, mods: mods,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (b *Board) InjectClick(x, y float64) {
	b.InjectPress(x, y)
	b.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release), in which case the release happens
// without any move.
func (b *Board) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	b.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		b.InjectMove(x, y)
	}
	b.InjectRelease(toX, toY)
}

// Injecting reports whether synthetic input is still queued. Device input
// should be skipped while it is.
func (b *Board) Injecting() bool {
	return len(b.injectQueue) > 0
}

// processInjectedInput pops one event from the inject queue and feeds it to
// the controller. Returns true if an event was consumed.
func (b *Board) processInjectedInput() bool {
	if len(b.injectQueue) == 0 {
		return false
	}
	evt := b.injectQueue[0]
	copy(b.injectQueue, b.injectQueue[1:])
	b.injectQueue = b.injectQueue[:len(b.injectQueue)-1]

	switch evt.kind {
	case synthPress:
		b.PointerDown(evt.screenX, evt.screenY, MouseButtonLeft)
	case synthMove:
		b.PointerMove(evt.screenX, evt.screenY)
	case synthRelease:
		b.PointerUp(evt.screenX, evt.screenY, MouseButtonLeft)
	case synthWheel:
		b.Wheel(evt.screenX, evt.screenY, evt.deltaY, evt.mods)
	}
	return true
}
