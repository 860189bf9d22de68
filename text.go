package adboard

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	// labelMaxRunes is the longest id drawn untruncated.
	labelMaxRunes = 20
	// labelKeepRunes is how much of a long id survives before the ellipsis.
	labelKeepRunes = 18

	defaultLabelSize = 20
)

// truncateLabel shortens ids longer than 20 runes to their first 18 runes
// followed by an ellipsis.
func truncateLabel(id string) string {
	if utf8.RuneCountInString(id) <= labelMaxRunes {
		return id
	}
	i, n := 0, 0
	for i = range id {
		if n == labelKeepRunes {
			break
		}
		n++
	}
	return id[:i] + "…"
}

// TTFFont wraps Ebitengine's text/v2 for node labels.
type TTFFont struct {
	face *text.GoTextFace
	size float64
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size
// (in world units).
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("adboard: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	return &TTFFont{
		face: face,
		size: size,
		lh:   m.HAscent + m.HDescent + m.HLineGap,
	}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// SetLabelFont replaces the font used for node labels.
func (b *Board) SetLabelFont(f *TTFFont) {
	b.render.font = f
}

// labelFont returns the label font, loading Go Regular on first use.
func (rs *renderState) labelFont() *TTFFont {
	if rs.font != nil {
		return rs.font
	}
	f, err := LoadTTFFont(goregular.TTF, defaultLabelSize)
	if err != nil {
		// The embedded font is known-good.
		panic(err)
	}
	rs.font = f
	return f
}

// drawLabel draws s centered on world point (wx, wy) under the view transform.
// Labels scale with the zoom like the circles they sit on.
func drawLabel(dst *ebiten.Image, f *TTFFont, s string, wx, wy float64, view [6]float64, c Color) {
	op := &text.DrawOptions{}
	op.GeoM = ebitenGeoM(labelTransform(view, wx, wy))
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	op.LineSpacing = f.lh
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, s, f.face, op)
}

// labelTransform places a label's local origin at world point (wx, wy) and
// then applies the view.
func labelTransform(view [6]float64, wx, wy float64) [6]float64 {
	return multiplyAffine(view, [6]float64{1, 0, 0, 1, wx, wy})
}

// ebitenGeoM converts an affine matrix to an ebiten.GeoM.
func ebitenGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
