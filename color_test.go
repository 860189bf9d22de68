package adboard

import (
	"image/color"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff0000", Color{R: 1, G: 0, B: 0, A: 1}},
		{"00ff00", Color{R: 0, G: 1, B: 0, A: 1}},
		{"#00f", Color{R: 0, G: 0, B: 1, A: 1}},
		{"#fff8", Color{R: 1, G: 1, B: 1, A: 0x88 / 255.0}},
		{"#00000099", Color{R: 0, G: 0, B: 0, A: 0x99 / 255.0}},
		{"  #111 ", Color{R: 0x11 / 255.0, G: 0x11 / 255.0, B: 0x11 / 255.0, A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if err != nil {
				t.Fatalf("ParseHexColor(%q): %v", tt.in, err)
			}
			assertNear(t, "R", got.R, tt.want.R)
			assertNear(t, "G", got.G, tt.want.G)
			assertNear(t, "B", got.B, tt.want.B)
			assertNear(t, "A", got.A, tt.want.A)
		})
	}
}

func TestParseHexColorErrors(t *testing.T) {
	for _, in := range []string{"", "#", "#12", "#12345", "#gggggg", "#+12345"} {
		if _, err := ParseHexColor(in); err == nil {
			t.Errorf("ParseHexColor(%q) should fail", in)
		}
	}
}

func TestMustParseHexColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseHexColor should panic on bad input")
		}
	}()
	MustParseHexColor("nope")
}

func TestColorToRGBAPremultiplied(t *testing.T) {
	got := Color{R: 1, G: 1, B: 0, A: 0.2}.toRGBA()
	want := color.RGBA{R: 51, G: 51, B: 0, A: 51}
	if got != want {
		t.Errorf("toRGBA = %v, want %v", got, want)
	}
	if got := (Color{R: 1, G: 1, B: 1, A: 0}).toRGBA(); got != (color.RGBA{}) {
		t.Errorf("transparent toRGBA = %v, want zero", got)
	}
}
