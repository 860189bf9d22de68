package adboard

import "testing"

func TestAppendNodeUnselected(t *testing.T) {
	var rs renderState
	n := &Node{X: 5, Y: 5, Color: ColorWhite, radius: 40}
	rs.appendNode(n, false, 1, 1)

	segs := circleSegments(46)
	wantVerts := (1 + segs) + 2*(2*segs)
	if len(rs.verts) != wantVerts {
		t.Errorf("verts = %d, want %d (fill + two strokes)", len(rs.verts), wantVerts)
	}
	wantInds := 3*segs + 2*(6*segs)
	if len(rs.inds) != wantInds {
		t.Errorf("inds = %d, want %d", len(rs.inds), wantInds)
	}
}

func TestAppendNodeSelectedAddsGlowAndRing(t *testing.T) {
	var plain, sel renderState
	n := &Node{Color: MustParseHexColor("#3366cc"), radius: 60}
	plain.appendNode(n, false, 1, 1)
	sel.appendNode(n, true, 1, 1)

	segs := circleSegments(66)
	extra := (glowRings + 1) * 2 * segs
	if got := len(sel.verts) - len(plain.verts); got != extra {
		t.Errorf("selected adds %d verts, want %d", got, extra)
	}

	// The final ring is the white selection stroke.
	last := sel.verts[len(sel.verts)-1]
	if last.ColorA != float32(0.9) || last.ColorR != float32(0.9) {
		t.Errorf("selection ring color = (%v, %v), want premultiplied white 0.9", last.ColorR, last.ColorA)
	}
}

func TestAppendNodeGlowFollowsPulse(t *testing.T) {
	n := &Node{Color: ColorWhite, radius: 40}
	var dim, bright renderState
	dim.appendNode(n, true, 0.2, 1)
	bright.appendNode(n, true, 0.8, 1)

	segs := circleSegments(46)
	glowStart := (1 + segs) + 2*(2*segs)
	if !(bright.verts[glowStart].ColorA > dim.verts[glowStart].ColorA) {
		t.Errorf("glow alpha %v (bright) should exceed %v (dim)",
			bright.verts[glowStart].ColorA, dim.verts[glowStart].ColorA)
	}
}

func TestStrokeStyle(t *testing.T) {
	assertNear(t, "stroke alpha", strokeColor.A, 0x99/255.0)
	assertNear(t, "label R", labelColor.R, 0x11/255.0)
}
