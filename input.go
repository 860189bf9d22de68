package adboard

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// wheelLineDelta converts one Ebitengine wheel notch into the browser-style
// deltaY that Camera.Wheel expects (negative scrolls up and zooms in).
const wheelLineDelta = 100

// pointerTransition classifies the primary button between two polls.
type pointerTransition uint8

const (
	pointerNone pointerTransition = iota
	pointerPress
	pointerHold
	pointerRelease
)

func classifyPointer(wasDown, isDown bool) pointerTransition {
	switch {
	case isDown && !wasDown:
		return pointerPress
	case isDown && wasDown:
		return pointerHold
	case !isDown && wasDown:
		return pointerRelease
	default:
		return pointerNone
	}
}

// wheelDelta maps Ebitengine's wheel y offset (positive = up) onto deltaY.
func wheelDelta(wy float64) float64 {
	return -wy * wheelLineDelta
}

// inputState tracks device input across polls. The mouse and the first touch
// share one logical pointer.
type inputState struct {
	down     bool
	touching bool
	touchID  ebiten.TouchID
	lastX    float64
	lastY    float64
	touchBuf []ebiten.TouchID
}

// readModifiers reads the modifier keys the wheel zoom cares about.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	return mods
}

// pollInput reads mouse, touch, wheel and shortcut keys and forwards them to
// the board. Device input is ignored while synthetic input is queued. When
// captured is set a layer above the board owns this frame's input: the
// button state is still tracked so a press that began on the layer never
// reaches the board as a hold.
func (b *Board) pollInput(captured bool) {
	if b.Injecting() {
		return
	}
	sx, sy, isDown := b.readPointer()
	if captured {
		if st := b.ctrl.State(); st != StateIdle && st != StateInertia {
			b.CancelPointer()
		}
		b.input.down = isDown
		b.input.lastX, b.input.lastY = sx, sy
		return
	}

	mods := readModifiers()
	b.pollShortcuts()

	switch classifyPointer(b.input.down, isDown) {
	case pointerPress:
		b.PointerDown(sx, sy, MouseButtonLeft)
	case pointerHold:
		// Every held frame counts as a move so a resting pointer zeroes the
		// pan velocity before release.
		b.PointerMove(sx, sy)
	case pointerRelease:
		b.PointerUp(sx, sy, MouseButtonLeft)
	}
	b.input.down = isDown
	b.input.lastX, b.input.lastY = sx, sy

	if _, wy := ebiten.Wheel(); wy != 0 {
		mx, my := ebiten.CursorPosition()
		b.Wheel(float64(mx), float64(my), wheelDelta(wy), mods)
	}
}

// readPointer returns the logical pointer position and button state. A touch
// owns the pointer until it lifts; otherwise the mouse does.
func (b *Board) readPointer() (float64, float64, bool) {
	in := &b.input
	in.touchBuf = ebiten.AppendTouchIDs(in.touchBuf[:0])

	if in.touching {
		for _, id := range in.touchBuf {
			if id == in.touchID {
				tx, ty := ebiten.TouchPosition(id)
				return float64(tx), float64(ty), true
			}
		}
		// Lifted: release at the last known position.
		in.touching = false
		return in.lastX, in.lastY, false
	}
	if !in.down && len(in.touchBuf) > 0 {
		in.touching = true
		in.touchID = in.touchBuf[0]
		tx, ty := ebiten.TouchPosition(in.touchID)
		return float64(tx), float64(ty), true
	}

	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// pollShortcuts handles the keyboard shortcuts: +/- zoom, P pause, N single
// step, Escape dismiss.
func (b *Board) pollShortcuts() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		b.ZoomIn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		b.ZoomOut()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		b.clock.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		b.clock.Step(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		b.ClearSelection()
	}
}
