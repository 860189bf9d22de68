package adboard

import (
	"log/slog"
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

// Config aggregates every tunable of a Board.
type Config struct {
	Physics     PhysicsConfig
	Camera      CameraConfig
	Interaction InteractionConfig
	Sizing      Sizing

	// Width and Height are the initial canvas size in pixels.
	Width, Height float64
	// TPS is the simulation rate; one physics step runs per tick.
	TPS int
	// CircleRadius is the radius of the initial ring layout.
	CircleRadius float64
	// Seed drives the jitter random source.
	Seed uint64

	// FocusOnSelect scrolls the selected node to the viewport center over
	// FocusDuration seconds.
	FocusOnSelect bool
	FocusDuration float32

	Background Color
	Debug      bool
}

// DefaultConfig returns the stock tuning: a 350 ring under a center pull on
// an 800x600 canvas at 60 TPS.
func DefaultConfig() Config {
	return Config{
		Physics:       DefaultPhysics(),
		Camera:        DefaultCamera(),
		Interaction:   DefaultInteraction(),
		Sizing:        DefaultSizing(),
		Width:         800,
		Height:        600,
		TPS:           60,
		CircleRadius:  350,
		Seed:          1,
		FocusDuration: 0.4,
		Background:    MustParseHexColor("#f5f5f0"),
	}
}

// Board is the simulation context. It owns the node store, camera, gesture
// controller, frame clock, and event handlers. All methods must be called
// from the goroutine driving Update and Draw, except Retune.
type Board struct {
	store   *Store
	cam     *Camera
	ctrl    *Controller
	clock   FrameClock
	physics PhysicsConfig
	rng     *rand.Rand
	cfg     Config
	dt      float32

	selected NodeRef
	handlers handlerRegistry
	entities EntityStore
	media    MediaPlayer
	sound    SoundPlayer
	logger   *slog.Logger

	retune chan PhysicsConfig

	input       inputState
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner

	// ScreenshotDir is where queued screenshots are written.
	ScreenshotDir   string
	screenshotQueue []string

	glow   *Pulse
	render renderState
	hud    hudState
	stats  debugStats
	debug  bool
}

// NewBoard creates a board from node definitions, laid out on a ring around
// the origin with the camera centered per cfg.Camera.Recenter.
func NewBoard(defs []NodeDef, cfg Config) *Board {
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Physics == (PhysicsConfig{}) {
		cfg.Physics = DefaultPhysics()
	}
	if cfg.Sizing == (Sizing{}) {
		cfg.Sizing = DefaultSizing()
	}
	if cfg.Camera == (CameraConfig{}) {
		cfg.Camera = DefaultCamera()
	}
	if cfg.Interaction == (InteractionConfig{}) {
		cfg.Interaction = DefaultInteraction()
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 600
	}
	if cfg.CircleRadius <= 0 {
		cfg.CircleRadius = 350
	}

	b := &Board{
		store:         NewStore(defs, cfg.Sizing),
		physics:       cfg.Physics,
		rng:           rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		cfg:           cfg,
		dt:            float32(1.0 / float64(cfg.TPS)),
		selected:      NoNode,
		logger:        slog.Default().With("component", "adboard"),
		retune:        make(chan PhysicsConfig, 1),
		ScreenshotDir: "screenshots",
		glow:          NewPulse(0.35, 0.9, 0.8, ease.InOutSine),
		debug:         cfg.Debug,
	}
	b.store.ArrangeCircle(cfg.CircleRadius)
	b.cam = NewCamera(Rect{Width: cfg.Width, Height: cfg.Height}, cfg.Camera)
	b.cam.Recenter(b.store)
	b.ctrl = NewController(b.cam, b.store, cfg.Interaction, b.onGesture)
	return b
}

// Store returns the board's node store.
func (b *Board) Store() *Store { return b.store }

// Camera returns the board's camera.
func (b *Board) Camera() *Camera { return b.cam }

// Controller returns the gesture controller.
func (b *Board) Controller() *Controller { return b.ctrl }

// Clock returns the frame clock, for pausing and single-stepping.
func (b *Board) Clock() *FrameClock { return &b.clock }

// Physics returns the physics tuning currently in effect.
func (b *Board) Physics() PhysicsConfig { return b.physics }

// SetLogger replaces the board's logger.
func (b *Board) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	b.logger = l.With("component", "adboard")
}

// SetEntityStore sets the optional ECS bridge.
func (b *Board) SetEntityStore(store EntityStore) { b.entities = store }

// SetMediaPlayer sets the player started when a node is selected.
func (b *Board) SetMediaPlayer(p MediaPlayer) { b.media = p }

// SetSoundPlayer sets the sound effect sink.
func (b *Board) SetSoundPlayer(p SoundPlayer) { b.sound = p }

// SetDebugMode enables per-frame stats logging and the FPS readout.
func (b *Board) SetDebugMode(enabled bool) { b.debug = enabled }

// Retune hands new physics tuning to the board. Safe to call from any
// goroutine; the latest value wins and takes effect at the next Update.
func (b *Board) Retune(cfg PhysicsConfig) {
	for {
		select {
		case b.retune <- cfg:
			return
		default:
			// Drop the stale pending value.
			select {
			case <-b.retune:
			default:
			}
		}
	}
}

func (b *Board) drainRetune() {
	select {
	case cfg := <-b.retune:
		b.physics = cfg
		b.logger.Info("physics retuned", "model", cfg.Model, "charge", cfg.Charge)
	default:
	}
}

// Update runs one tick: pending tuning, scripted and injected input, inertia,
// camera animation, then one physics step unless the clock is paused.
func (b *Board) Update() {
	b.drainRetune()
	if b.testRunner != nil {
		b.testRunner.step(b)
	}
	b.processInjectedInput()

	b.ctrl.Tick()
	b.cam.update(b.dt, b.store)
	b.glow.Update(b.dt)
	b.hud.tick(float64(b.dt))

	if b.clock.advance() {
		b.stepPhysics()
	}
}

// Advance runs n ticks without a window.
func (b *Board) Advance(n int) {
	for range n {
		b.Update()
	}
}

// --- Pointer surface ---

// PointerDown forwards a press at screen point (sx, sy).
func (b *Board) PointerDown(sx, sy float64, button MouseButton) {
	b.ctrl.PointerDown(sx, sy, button)
}

// PointerMove forwards a pointer position.
func (b *Board) PointerMove(sx, sy float64) {
	b.ctrl.PointerMove(sx, sy)
}

// PointerUp forwards a release at screen point (sx, sy).
func (b *Board) PointerUp(sx, sy float64, button MouseButton) {
	b.ctrl.PointerUp(sx, sy, button)
}

// CancelPointer abandons the current gesture (pointer lost, window blur).
func (b *Board) CancelPointer() {
	b.ctrl.Cancel()
}

// Wheel zooms around the pointer. See Camera.Wheel.
func (b *Board) Wheel(sx, sy, deltaY float64, mods KeyModifiers) {
	b.cam.Wheel(sx, sy, deltaY, mods)
}

// ZoomIn zooms in one step around the viewport center.
func (b *Board) ZoomIn() { b.cam.ZoomIn() }

// ZoomOut zooms out one step around the viewport center.
func (b *Board) ZoomOut() { b.cam.ZoomOut() }

// Resize updates the canvas size and recenters the view.
func (b *Board) Resize(width, height float64) {
	if width == b.cam.Viewport.Width && height == b.cam.Viewport.Height {
		return
	}
	b.cam.Resize(width, height, b.store)
}

// --- Selection ---

// Selected returns the selected node, if any.
func (b *Board) Selected() (NodeRef, bool) {
	return b.selected, b.selected.Valid()
}

// ClearSelection drops the selection, stops its media and fires Dismiss
// handlers.
func (b *Board) ClearSelection() {
	if !b.selected.Valid() {
		return
	}
	ref := b.selected
	b.selected = NoNode
	if b.media != nil {
		if err := b.media.Stop(); err != nil {
			b.logger.Debug("media stop failed", "node", b.store.At(ref).ID, "err", err)
		}
	}
	b.dispatch(b.nodeEvent(EventDismiss, ref))
}

func (b *Board) nodeEvent(typ EventType, ref NodeRef) BoardEvent {
	if !ref.Valid() {
		return BoardEvent{Type: typ, Node: NoNode, X: b.cam.OffsetX, Y: b.cam.OffsetY}
	}
	n := b.store.At(ref)
	return BoardEvent{Type: typ, Node: ref, ID: n.ID, X: n.X, Y: n.Y, VX: n.VX, VY: n.VY}
}

// onGesture receives gesture outcomes from the controller.
func (b *Board) onGesture(typ EventType, ref NodeRef) {
	switch typ {
	case EventSelect:
		b.selectNode(ref)
		return
	case EventThrow:
		b.play(SoundThrow)
	}
	b.dispatch(b.nodeEvent(typ, ref))
}

func (b *Board) selectNode(ref NodeRef) {
	b.selected = ref
	b.glow.Reset()
	n := b.store.At(ref)

	b.play(SoundClick)
	if b.media != nil && n.VideoRef != "" {
		if err := b.media.Play(n.VideoRef); err != nil {
			b.logger.Debug("media play failed", "node", n.ID, "video", n.VideoRef, "err", err)
		}
	}
	if b.cfg.FocusOnSelect {
		b.cam.ScrollTo(n.X, n.Y, b.cfg.FocusDuration, ease.OutCubic)
	}

	evt := SelectEvent{
		BoardEvent: b.nodeEvent(EventSelect, ref),
		Metrics:    n.Metrics,
		VideoRef:   n.VideoRef,
	}
	for _, h := range b.handlers.selects {
		h.fn(evt)
	}
	if b.entities != nil {
		b.entities.EmitEvent(evt.BoardEvent)
	}
}

func (b *Board) dispatch(evt BoardEvent) {
	for _, h := range b.handlers.list(evt.Type) {
		h.fn(evt)
	}
	if b.entities != nil {
		b.entities.EmitEvent(evt)
	}
}

func (b *Board) play(s Sound) {
	if b.sound == nil {
		return
	}
	if err := b.sound.Play(s); err != nil {
		b.logger.Debug("sound play failed", "sound", s, "err", err)
	}
}
