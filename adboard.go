package adboard

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// MouseButton identifies the button of a pointer press. Gestures only
// respond to MouseButtonLeft; device input and touches always report it.
// Embedders forwarding their own events may pass the other values, and the
// controller ignores them.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary button or touch
	MouseButtonRight                     // ignored by the controller
	MouseButtonMiddle                    // ignored by the controller
)

// KeyModifiers is the set of modifier keys held during a wheel event.
type KeyModifiers uint8

// ModCtrl selects the fast wheel zoom step.
const ModCtrl KeyModifiers = 1


// EventType identifies a kind of board event.
type EventType uint8

const (
	EventSelect    EventType = iota // a click committed on a node
	EventDragStart                  // a pointer-down on a node crossed the click threshold
	EventThrow                      // a dragged node was released with its throw velocity
	EventPanStart                   // a pointer-down on empty canvas started a pan
	EventDismiss                    // the selection was cleared
)

// String returns a lower-case name for the event type.
func (e EventType) String() string {
	switch e {
	case EventSelect:
		return "select"
	case EventDragStart:
		return "drag_start"
	case EventThrow:
		return "throw"
	case EventPanStart:
		return "pan_start"
	case EventDismiss:
		return "dismiss"
	default:
		return "unknown"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
