package adboard

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	minCircleSegments = 16
	maxCircleSegments = 128
	// circleSegmentLen is the target on-screen length of one rim segment.
	circleSegmentLen = 4.0
)

// circleSegments picks a rim subdivision for a circle of the given on-screen
// radius so the outline stays smooth at any zoom.
func circleSegments(screenRadius float64) int {
	if !(screenRadius > 0) {
		return minCircleSegments
	}
	n := int(math.Ceil(2 * math.Pi * screenRadius / circleSegmentLen))
	if n < minCircleSegments {
		return minCircleSegments
	}
	if n > maxCircleSegments {
		return maxCircleSegments
	}
	return n
}

// vertexColor converts c to premultiplied vertex color components.
func vertexColor(c Color) (r, g, b, a float32) {
	a = float32(clamp01(c.A))
	return float32(clamp01(c.R)) * a, float32(clamp01(c.G)) * a, float32(clamp01(c.B)) * a, a
}

// appendCircleFan appends a filled circle as a triangle fan: one hub vertex
// plus segs rim vertices, 3*segs indices. Untextured vertices sample the
// center of the white pixel.
func appendCircleFan(verts []ebiten.Vertex, inds []uint32, cx, cy, r float64, segs int, c Color) ([]ebiten.Vertex, []uint32) {
	if segs < 3 {
		segs = 3
	}
	cr, cg, cb, ca := vertexColor(c)
	base := uint32(len(verts))

	verts = append(verts, ebiten.Vertex{
		DstX: float32(cx), DstY: float32(cy),
		SrcX: 0.5, SrcY: 0.5,
		ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
	})
	step := 2 * math.Pi / float64(segs)
	for i := 0; i < segs; i++ {
		sin, cos := math.Sincos(float64(i) * step)
		verts = append(verts, ebiten.Vertex{
			DstX: float32(cx + cos*r), DstY: float32(cy + sin*r),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}

	// Fan around the hub, wrapping the last rim vertex back to the first.
	for i := 0; i < segs; i++ {
		next := (i + 1) % segs
		inds = append(inds, base, base+1+uint32(i), base+1+uint32(next))
	}
	return verts, inds
}

// appendRing appends an annulus between inner and outer radii as a closed
// triangle strip: 2*segs vertices, 6*segs indices.
func appendRing(verts []ebiten.Vertex, inds []uint32, cx, cy, inner, outer float64, segs int, c Color) ([]ebiten.Vertex, []uint32) {
	if segs < 3 {
		segs = 3
	}
	if inner < 0 {
		inner = 0
	}
	cr, cg, cb, ca := vertexColor(c)
	base := uint32(len(verts))

	step := 2 * math.Pi / float64(segs)
	for i := 0; i < segs; i++ {
		sin, cos := math.Sincos(float64(i) * step)
		verts = append(verts,
			ebiten.Vertex{
				DstX: float32(cx + cos*outer), DstY: float32(cy + sin*outer),
				SrcX: 0.5, SrcY: 0.5,
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			},
			ebiten.Vertex{
				DstX: float32(cx + cos*inner), DstY: float32(cy + sin*inner),
				SrcX: 0.5, SrcY: 0.5,
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			},
		)
	}

	// Two triangles per segment: outer-inner-nextOuter, inner-nextInner-nextOuter.
	for i := 0; i < segs; i++ {
		o := base + uint32(i*2)
		in := o + 1
		j := base + uint32(((i+1)%segs)*2)
		jin := j + 1
		inds = append(inds, o, in, j, in, jin, j)
	}
	return verts, inds
}

// appendStroke appends a centered outline of the given width around a circle.
func appendStroke(verts []ebiten.Vertex, inds []uint32, cx, cy, r, width float64, segs int, c Color) ([]ebiten.Vertex, []uint32) {
	half := width / 2
	return appendRing(verts, inds, cx, cy, r-half, r+half, segs, c)
}

// transformVertices applies an affine transform to src vertices, writing the
// result into dst. dst must be at least len(src) in length.
//
// Matrix layout: [0]=a, [1]=b, [2]=c, [3]=d, [4]=tx, [5]=ty
// newX = a*x + c*y + tx, newY = b*x + d*y + ty
func transformVertices(src, dst []ebiten.Vertex, transform [6]float64) {
	a, b, c, d, tx, ty := transform[0], transform[1], transform[2], transform[3], transform[4], transform[5]
	for i := range src {
		s := &src[i]
		ox := float64(s.DstX)
		oy := float64(s.DstY)
		dst[i] = *s
		dst[i].DstX = float32(a*ox + c*oy + tx)
		dst[i].DstY = float32(b*ox + d*oy + ty)
	}
}

// circleVisible reports whether a circle overlaps the rectangle.
func circleVisible(bounds Rect, cx, cy, r float64) bool {
	nx := clamp(cx, bounds.X, bounds.X+bounds.Width)
	ny := clamp(cy, bounds.Y, bounds.Y+bounds.Height)
	dx, dy := cx-nx, cy-ny
	return dx*dx+dy*dy <= r*r
}

// ensureWhitePixel returns the render state's lazily created 1x1 white image.
func (rs *renderState) ensureWhitePixel() *ebiten.Image {
	if rs.white == nil {
		rs.white = ebiten.NewImage(1, 1)
		rs.white.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return rs.white
}
