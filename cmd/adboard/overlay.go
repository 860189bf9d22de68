package main

import (
	"bytes"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/adboard"
)

const (
	panelWidth   = 360
	panelHeight  = 210
	panelMargin  = 20
	panelPadding = 20
	titleSize    = 22
	bodySize     = 16
	lineGap      = 10
)

var (
	backdropColor = color.RGBA{0, 0, 0, 140}
	panelColor    = color.RGBA{255, 255, 255, 245}
	borderColor   = color.RGBA{60, 60, 60, 255}
	titleColor    = color.RGBA{20, 20, 20, 255}
	bodyColor     = color.RGBA{70, 70, 70, 255}
	hintColor     = color.RGBA{140, 140, 140, 255}
)

// overlay is the modal info panel for the selected ad. Selection opens it;
// a click outside the panel or Escape clears the selection, and the
// resulting Dismiss closes it.
type overlay struct {
	sound adboard.SoundPlayer

	open  bool
	title string
	lines []string

	titleFace *text.GoTextFace
	bodyFace  *text.GoTextFace
	touchBuf  []ebiten.TouchID
}

func newOverlay(b *adboard.Board) *overlay {
	o := &overlay{}
	b.OnSelect(o.show)
	b.OnDismiss(func(adboard.BoardEvent) { o.hide() })
	return o
}

func (o *overlay) show(e adboard.SelectEvent) {
	wasOpen := o.open
	o.open = true
	o.title = e.ID
	o.lines = panelLines(e)
	if !wasOpen {
		o.play(adboard.SoundPop)
	}
}

func (o *overlay) hide() {
	if !o.open {
		return
	}
	o.open = false
	o.play(adboard.SoundTap)
}

func (o *overlay) play(s adboard.Sound) {
	if o.sound != nil {
		_ = o.sound.Play(s)
	}
}

// panelLines formats the metrics block shown under the ad id.
func panelLines(e adboard.SelectEvent) []string {
	lines := []string{
		"CTR: " + percent(e.Metrics.CTR),
		"Hook Rate: " + percent(e.Metrics.HookRate),
		"Hold Rate: " + percent(e.Metrics.HoldRate),
	}
	if e.VideoRef != "" {
		lines = append(lines, "Video: "+e.VideoRef)
	}
	return lines
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// panelRect centers the panel in the viewport, shrinking it on narrow
// canvases.
func panelRect(vp adboard.Rect) adboard.Rect {
	w := min(float64(panelWidth), vp.Width-2*panelMargin)
	h := min(float64(panelHeight), vp.Height-2*panelMargin)
	w, h = max(w, 0), max(h, 0)
	return adboard.Rect{
		X:      vp.X + (vp.Width-w)/2,
		Y:      vp.Y + (vp.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// Update implements adboard.Layer. The board receives no input while the
// panel is open.
func (o *overlay) Update(b *adboard.Board) bool {
	if !o.open {
		return false
	}
	x, y, pressed := o.justPressed()
	o.handle(b, pressed, x, y, inpututil.IsKeyJustPressed(ebiten.KeyEscape))
	return true
}

// handle applies one frame of panel input.
func (o *overlay) handle(b *adboard.Board, pressed bool, x, y float64, escape bool) {
	if !o.open {
		return
	}
	outside := pressed && !panelRect(b.Camera().Viewport).Contains(x, y)
	if escape || outside {
		b.ClearSelection()
		// Dismiss already closed the panel unless the selection was gone.
		o.hide()
	}
}

func (o *overlay) justPressed() (x, y float64, ok bool) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := ebiten.CursorPosition()
		return float64(cx), float64(cy), true
	}
	o.touchBuf = inpututil.AppendJustPressedTouchIDs(o.touchBuf[:0])
	if len(o.touchBuf) > 0 {
		tx, ty := ebiten.TouchPosition(o.touchBuf[0])
		return float64(tx), float64(ty), true
	}
	return 0, 0, false
}

// Draw implements adboard.Layer.
func (o *overlay) Draw(screen *ebiten.Image) {
	if !o.open {
		return
	}
	o.loadFaces()

	bounds := screen.Bounds()
	vp := adboard.Rect{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}
	vector.DrawFilledRect(screen, 0, 0, float32(vp.Width), float32(vp.Height), backdropColor, false)

	r := panelRect(vp)
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), panelColor, true)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, borderColor, true)

	x := r.X + panelPadding
	y := r.Y + panelPadding
	if o.titleFace != nil {
		drawText(screen, o.title, o.titleFace, x, y, titleColor)
		y += titleSize + 2*lineGap
	}
	if o.bodyFace == nil {
		return
	}
	for _, line := range o.lines {
		drawText(screen, line, o.bodyFace, x, y, bodyColor)
		y += bodySize + lineGap
	}
	drawText(screen, "Esc or click outside to close", o.bodyFace, x, r.Y+r.Height-panelPadding-bodySize, hintColor)
}

func (o *overlay) loadFaces() {
	if o.titleFace != nil {
		return
	}
	title, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return
	}
	body, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return
	}
	o.titleFace = &text.GoTextFace{Source: title, Size: titleSize}
	o.bodyFace = &text.GoTextFace{Source: body, Size: bodySize}
}

func drawText(dst *ebiten.Image, s string, face text.Face, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}
