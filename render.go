package adboard

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Stroke and highlight styling, in world units.
const (
	strokeWidth  = 2.3
	strokeJitter = 0.7 // the two outline passes are offset by ±jitter on both axes

	selectGap   = 6.0 // selection ring radius beyond the node radius
	selectWidth = 6.0
	glowReach   = 22.0 // how far the glow extends beyond the selection ring
	glowRings   = 6
)

var (
	strokeColor = MustParseHexColor("#00000099")
	labelColor  = MustParseHexColor("#111")
	selectColor = ColorWhite.WithAlpha(0.9)
)

// renderState holds per-board render buffers, reused across frames.
type renderState struct {
	white       *ebiten.Image
	font        *TTFFont
	verts       []ebiten.Vertex // world space
	screenVerts []ebiten.Vertex
	inds        []uint32
}

// Draw renders the board: background, then for each node in store order its
// fill, double outline and (when selected) glow and ring; labels on top; the
// HUD last.
func (b *Board) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if b.debug {
		t0 = time.Now()
	}

	screen.Fill(b.cfg.Background.toRGBA())

	view := b.cam.ViewMatrix()
	visible := b.cam.VisibleBounds()
	rs := &b.render
	rs.verts = rs.verts[:0]
	rs.inds = rs.inds[:0]

	nodes := b.store.Nodes()
	for i := range nodes {
		n := &nodes[i]
		selected := NodeRef(i) == b.selected
		reach := n.radius + strokeWidth
		if selected {
			reach = n.radius + selectGap + selectWidth/2 + glowReach
		}
		if !circleVisible(visible, n.X, n.Y, reach) {
			continue
		}
		rs.appendNode(n, selected, b.glow.Value, b.cam.Scale)
	}
	rs.flush(screen, view)

	font := rs.labelFont()
	for i := range nodes {
		n := &nodes[i]
		if !circleVisible(visible, n.X, n.Y, n.radius) {
			continue
		}
		drawLabel(screen, font, truncateLabel(n.ID), n.X, n.Y, view, labelColor)
	}

	b.drawHUD(screen)
	b.flushScreenshots(screen)

	if b.debug {
		b.stats.drawTime = time.Since(t0)
		b.stats.vertexCount = len(rs.verts)
	}
}

// appendNode emits the geometry for one node.
func (rs *renderState) appendNode(n *Node, selected bool, glow, scale float64) {
	r := n.radius
	segs := circleSegments((r + selectGap) * scale)

	rs.verts, rs.inds = appendCircleFan(rs.verts, rs.inds, n.X, n.Y, r, segs, n.Color)
	for _, off := range [2]float64{strokeJitter, -strokeJitter} {
		rs.verts, rs.inds = appendStroke(rs.verts, rs.inds, n.X+off, n.Y+off, r, strokeWidth, segs, strokeColor)
	}
	if !selected {
		return
	}

	// Glow: concentric rings in the node color fading outward, intensity
	// driven by the pulse.
	ringR := r + selectGap
	band := glowReach / glowRings
	for k := 0; k < glowRings; k++ {
		inner := ringR + float64(k)*band
		fade := 1 - float64(k)/glowRings
		c := n.Color.WithAlpha(n.Color.A * glow * fade * 0.5)
		rs.verts, rs.inds = appendRing(rs.verts, rs.inds, n.X, n.Y, inner, inner+band, segs, c)
	}
	rs.verts, rs.inds = appendStroke(rs.verts, rs.inds, n.X, n.Y, ringR, selectWidth, segs, selectColor)
}

// flush transforms the accumulated world-space geometry by the view matrix
// and submits it in one DrawTriangles32 call.
func (rs *renderState) flush(dst *ebiten.Image, view [6]float64) {
	if len(rs.verts) == 0 {
		return
	}
	if cap(rs.screenVerts) < len(rs.verts) {
		rs.screenVerts = make([]ebiten.Vertex, len(rs.verts))
	}
	rs.screenVerts = rs.screenVerts[:len(rs.verts)]
	transformVertices(rs.verts, rs.screenVerts, view)

	var triOp ebiten.DrawTrianglesOptions
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	triOp.AntiAlias = true
	dst.DrawTriangles32(rs.screenVerts, rs.inds, rs.ensureWhitePixel(), &triOp)
}
