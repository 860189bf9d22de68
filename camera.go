package adboard

import (
	"fmt"
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RecenterMode selects what Recenter puts at the viewport center. The mode is
// fixed when the camera is created and applies to every resize.
type RecenterMode uint8

const (
	RecenterOrigin   RecenterMode = iota // world origin maps to the viewport center
	RecenterCentroid                     // node centroid maps to the viewport center
)

var recenterModeNames = [...]string{
	RecenterOrigin:   "origin",
	RecenterCentroid: "centroid",
}

// String returns the configuration name of the mode.
func (m RecenterMode) String() string {
	if int(m) < len(recenterModeNames) {
		return recenterModeNames[m]
	}
	return fmt.Sprintf("RecenterMode(%d)", m)
}

// ParseRecenterMode converts a configuration name into a RecenterMode.
func ParseRecenterMode(s string) (RecenterMode, error) {
	for i, name := range recenterModeNames {
		if name == s {
			return RecenterMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown recenter mode %q", s)
}

// CameraConfig holds the camera tunables.
type CameraConfig struct {
	InitialScale float64
	MinScale     float64
	MaxScale     float64

	// ZoomStep is the factor applied by ZoomIn (and divided by ZoomOut).
	ZoomStep float64
	// WheelStep is the wheel zoom factor; WheelStepFast is used while Ctrl
	// is held.
	WheelStep     float64
	WheelStepFast float64

	Recenter RecenterMode
	// FollowLerp eases the offset toward the node centroid every frame.
	// Only used with RecenterCentroid; zero disables following.
	FollowLerp float64
}

// DefaultCamera returns a camera at 100% zoom, clamped to [0.3, 3], that keeps
// the world origin centered.
func DefaultCamera() CameraConfig {
	return CameraConfig{
		InitialScale:  1,
		MinScale:      0.3,
		MaxScale:      3,
		ZoomStep:      1.1,
		WheelStep:     1.1,
		WheelStepFast: 1.2,
		Recenter:      RecenterOrigin,
	}
}

// scrollAnim holds active scroll-to tweens for the camera offset.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera maps between world space and screen space:
//
//	screen = world*Scale + Offset
//
// Screen coordinates are relative to the canvas top-left.
type Camera struct {
	// Scale is the zoom factor (1.0 = 100%). The zoom methods keep it within
	// [MinScale, MaxScale].
	Scale float64
	// OffsetX and OffsetY are the screen-space translation.
	OffsetX, OffsetY float64
	// Viewport is the canvas rectangle in screen space.
	Viewport Rect

	MinScale, MaxScale float64
	ZoomStep           float64
	WheelStep          float64
	WheelStepFast      float64

	mode       RecenterMode
	followLerp float64

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	cachedFor     [3]float64 // Scale, OffsetX, OffsetY the matrices were built from
	cacheValid    bool

	scrollTween *scrollAnim
}

// NewCamera creates a camera for the given viewport. The offset is left at
// zero; call Recenter once nodes are placed.
func NewCamera(viewport Rect, cfg CameraConfig) *Camera {
	c := &Camera{
		Scale:         cfg.InitialScale,
		Viewport:      viewport,
		MinScale:      cfg.MinScale,
		MaxScale:      cfg.MaxScale,
		ZoomStep:      cfg.ZoomStep,
		WheelStep:     cfg.WheelStep,
		WheelStepFast: cfg.WheelStepFast,
		mode:          cfg.Recenter,
		followLerp:    cfg.FollowLerp,
	}
	if c.MinScale <= 0 {
		c.MinScale = 0.3
	}
	if c.MaxScale < c.MinScale {
		c.MaxScale = c.MinScale
	}
	if c.Scale == 0 {
		c.Scale = 1
	}
	c.Scale = clamp(c.Scale, c.MinScale, c.MaxScale)
	return c
}

// Mode returns the recenter mode chosen at construction.
func (c *Camera) Mode() RecenterMode {
	return c.mode
}

// computeViewMatrix returns the world-to-screen matrix, rebuilding it and its
// inverse whenever Scale or the offset changed since the last call.
func (c *Camera) computeViewMatrix() [6]float64 {
	key := [3]float64{c.Scale, c.OffsetX, c.OffsetY}
	if c.cacheValid && key == c.cachedFor {
		return c.viewMatrix
	}
	c.viewMatrix = scaleTranslate(c.Scale, c.OffsetX, c.OffsetY)
	c.invViewMatrix = invertAffine(c.viewMatrix)
	c.cachedFor = key
	c.cacheValid = true
	return c.viewMatrix
}

// ViewMatrix returns the world-to-screen affine matrix [a, b, c, d, tx, ty].
func (c *Camera) ViewMatrix() [6]float64 {
	return c.computeViewMatrix()
}

// ToScreen converts world coordinates to screen coordinates.
func (c *Camera) ToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ToWorld converts screen coordinates to world coordinates.
func (c *Camera) ToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// ZoomAt multiplies the scale by factor, clamped to [MinScale, MaxScale],
// keeping the world point under the focal screen point (fx, fy) fixed.
// Reports whether the scale changed.
func (c *Camera) ZoomAt(fx, fy, factor float64) bool {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return false
	}
	bx, by := c.ToWorld(fx, fy)
	newScale := clamp(c.Scale*factor, c.MinScale, c.MaxScale)
	if newScale == c.Scale {
		return false
	}
	c.Scale = newScale
	ax, ay := c.ToWorld(fx, fy)

	// Shift so the focal world point lands back on (fx, fy).
	c.OffsetX += (ax - bx) * newScale
	c.OffsetY += (ay - by) * newScale
	c.scrollTween = nil
	return true
}

// ZoomIn zooms in by ZoomStep around the viewport center.
func (c *Camera) ZoomIn() bool {
	cx, cy := c.Viewport.Center()
	return c.ZoomAt(cx, cy, c.ZoomStep)
}

// ZoomOut zooms out by ZoomStep around the viewport center.
func (c *Camera) ZoomOut() bool {
	cx, cy := c.Viewport.Center()
	return c.ZoomAt(cx, cy, 1/c.ZoomStep)
}

// Wheel applies a scroll-wheel zoom anchored at the pointer. A negative
// deltaY zooms in, a positive one zooms out, zero is ignored. Holding Ctrl
// uses WheelStepFast.
func (c *Camera) Wheel(sx, sy, deltaY float64, mods KeyModifiers) bool {
	if deltaY == 0 {
		return false
	}
	factor := c.WheelStep
	if mods&ModCtrl != 0 {
		factor = c.WheelStepFast
	}
	if deltaY > 0 {
		factor = 1 / factor
	}
	return c.ZoomAt(sx, sy, factor)
}

// PanBy translates the view by a screen-space delta.
func (c *Camera) PanBy(dx, dy float64) {
	c.OffsetX += dx
	c.OffsetY += dy
	c.scrollTween = nil
}

// ZoomPercent returns the scale as a rounded percentage (1.0 -> 100).
func (c *Camera) ZoomPercent() int {
	return int(math.Round(c.Scale * 100))
}

// focusOffset returns the offset that puts world point (wx, wy) at the
// viewport center at the current scale.
func (c *Camera) focusOffset(wx, wy float64) (float64, float64) {
	cx, cy := c.Viewport.Center()
	return cx - wx*c.Scale, cy - wy*c.Scale
}

// Recenter moves the view so the origin (RecenterOrigin) or the centroid of
// the store's nodes (RecenterCentroid) maps to the viewport center.
func (c *Camera) Recenter(s *Store) {
	var wx, wy float64
	if c.mode == RecenterCentroid && s != nil {
		p := s.Centroid()
		wx, wy = p.X, p.Y
	}
	c.OffsetX, c.OffsetY = c.focusOffset(wx, wy)
	c.scrollTween = nil
}

// Resize updates the viewport size and recenters with the camera's mode.
func (c *Camera) Resize(width, height float64, s *Store) {
	c.Viewport.Width = width
	c.Viewport.Height = height
	c.Recenter(s)
}

// VisibleBounds returns the world-space rectangle currently on screen.
func (c *Camera) VisibleBounds() Rect {
	x0, y0 := c.ToWorld(c.Viewport.X, c.Viewport.Y)
	x1, y1 := c.ToWorld(c.Viewport.X+c.Viewport.Width, c.Viewport.Y+c.Viewport.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// ScrollTo animates the offset over duration seconds so that world point
// (wx, wy) ends at the viewport center. Any pan, zoom or recenter cancels it.
func (c *Camera) ScrollTo(wx, wy float64, duration float32, easeFn ease.TweenFunc) {
	tx, ty := c.focusOffset(wx, wy)
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.OffsetX), float32(tx), duration, easeFn),
		tweenY: gween.New(float32(c.OffsetY), float32(ty), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// CancelScroll stops a ScrollTo animation where it is.
func (c *Camera) CancelScroll() {
	c.scrollTween = nil
}

// update advances the scroll animation and centroid following. Called from
// Board.Update.
func (c *Camera) update(dt float32, s *Store) {
	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.OffsetX = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.OffsetY = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
		return
	}

	if c.followLerp > 0 && c.mode == RecenterCentroid && s != nil {
		p := s.Centroid()
		tx, ty := c.focusOffset(p.X, p.Y)
		c.OffsetX += (tx - c.OffsetX) * c.followLerp
		c.OffsetY += (ty - c.OffsetY) * c.followLerp
	}
}
