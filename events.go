package adboard

// BoardEvent describes a gesture outcome on the board. Node is NoNode for
// events that are not about a node (pan start).
type BoardEvent struct {
	Type EventType
	Node NodeRef
	ID   string
	// X and Y are the node's world position (or the view offset for pans).
	X, Y float64
	// VX and VY are the node's velocity at the time of the event; for
	// throws this is the release velocity.
	VX, VY float64
}

// SelectEvent is delivered when a click commits on a node. It carries what an
// info overlay needs to present the node.
type SelectEvent struct {
	BoardEvent
	Metrics  Metrics
	VideoRef string
}

// EntityStore is the interface for optional ECS integration. Every board
// event is forwarded to it after the board's own handlers ran.
type EntityStore interface {
	EmitEvent(event BoardEvent)
}

// MediaPlayer starts playback of a node's video reference when it is
// selected and stops it when the selection is cleared. Errors are reported
// but never interrupt the board; playback is fire-and-forget.
type MediaPlayer interface {
	Play(videoRef string) error
	Stop() error
}

// Sound names a short interface sound effect.
type Sound uint8

const (
	SoundClick Sound = iota // node selected
	SoundThrow              // dragged node released
	SoundPop                // overlay opened
	SoundTap                // overlay closed
)

var soundNames = [...]string{
	SoundClick: "click",
	SoundThrow: "throw",
	SoundPop:   "pop",
	SoundTap:   "tap",
}

func (s Sound) String() string {
	if int(s) < len(soundNames) {
		return soundNames[s]
	}
	return "unknown"
}

// SoundPlayer plays sound effects. Play must not block the frame.
type SoundPlayer interface {
	Play(s Sound) error
}

// --- Handler registry ---

type handler[F any] struct {
	id uint32
	fn F
}

func removeHandler[F any](s []handler[F], id uint32) []handler[F] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[F]{}
			return s[:len(s)-1]
		}
	}
	return s
}

type handlerRegistry struct {
	selects   []handler[func(SelectEvent)]
	dragStart []handler[func(BoardEvent)]
	throw     []handler[func(BoardEvent)]
	panStart  []handler[func(BoardEvent)]
	dismiss   []handler[func(BoardEvent)]
	nextID    uint32
}

// CallbackHandle allows removing a registered board callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing twice is a
// no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventSelect:
		h.reg.selects = removeHandler(h.reg.selects, h.id)
	case EventDragStart:
		h.reg.dragStart = removeHandler(h.reg.dragStart, h.id)
	case EventThrow:
		h.reg.throw = removeHandler(h.reg.throw, h.id)
	case EventPanStart:
		h.reg.panStart = removeHandler(h.reg.panStart, h.id)
	case EventDismiss:
		h.reg.dismiss = removeHandler(h.reg.dismiss, h.id)
	}
}

func (r *handlerRegistry) add(event EventType, fn func(BoardEvent)) CallbackHandle {
	r.nextID++
	h := handler[func(BoardEvent)]{id: r.nextID, fn: fn}
	switch event {
	case EventDragStart:
		r.dragStart = append(r.dragStart, h)
	case EventThrow:
		r.throw = append(r.throw, h)
	case EventPanStart:
		r.panStart = append(r.panStart, h)
	case EventDismiss:
		r.dismiss = append(r.dismiss, h)
	default:
		panic("adboard: no plain handler list for " + event.String())
	}
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

func (r *handlerRegistry) addSelect(fn func(SelectEvent)) CallbackHandle {
	r.nextID++
	r.selects = append(r.selects, handler[func(SelectEvent)]{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: EventSelect}
}

func (r *handlerRegistry) list(event EventType) []handler[func(BoardEvent)] {
	switch event {
	case EventDragStart:
		return r.dragStart
	case EventThrow:
		return r.throw
	case EventPanStart:
		return r.panStart
	case EventDismiss:
		return r.dismiss
	}
	return nil
}

// --- Board-level registration ---

// OnSelect registers a callback for node selection (a click that did not
// become a drag).
func (b *Board) OnSelect(fn func(SelectEvent)) CallbackHandle {
	return b.handlers.addSelect(fn)
}

// OnDragStart registers a callback fired when a press on a node turns into a
// drag.
func (b *Board) OnDragStart(fn func(BoardEvent)) CallbackHandle {
	return b.handlers.add(EventDragStart, fn)
}

// OnThrow registers a callback fired when a dragged node is released.
func (b *Board) OnThrow(fn func(BoardEvent)) CallbackHandle {
	return b.handlers.add(EventThrow, fn)
}

// OnPanStart registers a callback fired when a press on empty canvas starts
// a pan.
func (b *Board) OnPanStart(fn func(BoardEvent)) CallbackHandle {
	return b.handlers.add(EventPanStart, fn)
}

// OnDismiss registers a callback fired when the selection is cleared.
func (b *Board) OnDismiss(fn func(BoardEvent)) CallbackHandle {
	return b.handlers.add(EventDismiss, fn)
}
