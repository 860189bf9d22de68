package adboard

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugGlyphW is the advance of ebitenutil's debug font.
const debugGlyphW = 6

// hudState caches the FPS/TPS panel, which is redrawn about twice a second.
type hudState struct {
	fpsImg     *ebiten.Image
	sinceDraw  float64
	fpsPending bool
}

// tick advances the FPS panel refresh timer.
func (h *hudState) tick(dt float64) {
	h.sinceDraw += dt
	if h.sinceDraw >= 0.5 {
		h.sinceDraw = 0
		h.fpsPending = true
	}
}

// zoomLabel formats the zoom readout, e.g. "110%".
func zoomLabel(percent int) string {
	return fmt.Sprintf("%d%%", percent)
}

// drawHUD draws the zoom readout in the bottom-right corner, a pause marker
// in the bottom-left, and in debug mode the FPS/TPS panel top-left.
func (b *Board) drawHUD(screen *ebiten.Image) {
	vp := b.cam.Viewport
	bottom := int(vp.Y+vp.Height) - 20

	zoom := zoomLabel(b.cam.ZoomPercent())
	ebitenutil.DebugPrintAt(screen, zoom, int(vp.X+vp.Width)-8-len(zoom)*debugGlyphW, bottom)

	if b.clock.Paused() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("PAUSED  frame %d", b.clock.Frame()), int(vp.X)+8, bottom)
	}

	if !b.debug {
		return
	}
	h := &b.hud
	if h.fpsImg == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		h.fpsImg = ebiten.NewImage(100, 32)
		h.fpsPending = true
	}
	if h.fpsPending {
		h.fpsPending = false
		h.fpsImg.Clear()
		h.fpsImg.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(h.fpsImg, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(vp.X+8, vp.Y+8)
	screen.DrawImage(h.fpsImg, &op)
}
