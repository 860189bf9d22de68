package adboard

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHexColor parses a CSS-style hex color: "#RGB", "#RGBA", "#RRGGBB" or
// "#RRGGBBAA". The leading '#' is optional.
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3, 4:
		// Expand shorthand: "f0a" -> "ff00aa".
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("parse color %q: want 3, 4, 6 or 8 hex digits", s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// MustParseHexColor is like ParseHexColor but panics on malformed input.
// Intended for compile-time constants.
func MustParseHexColor(s string) Color {
	c, err := ParseHexColor(s)
	if err != nil {
		panic("adboard: " + err.Error())
	}
	return c
}
