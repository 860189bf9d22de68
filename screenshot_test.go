package adboard

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-select", "after-select"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	b := NewBoard(testDefs(), DefaultConfig())
	b.Screenshot("a")
	b.Screenshot("b")
	b.Screenshot("c")
	if len(b.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(b.screenshotQueue))
	}
	if b.screenshotQueue[0] != "a" || b.screenshotQueue[1] != "b" || b.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", b.screenshotQueue)
	}
}

func TestScreenshotDirDefault(t *testing.T) {
	b := NewBoard(testDefs(), DefaultConfig())
	if b.ScreenshotDir != "screenshots" {
		t.Errorf("ScreenshotDir = %q, want %q", b.ScreenshotDir, "screenshots")
	}
}

func TestScreenshotPath(t *testing.T) {
	tests := []struct {
		name  string
		frame uint64
		label string
		dup   int
		want  string
	}{
		{"first", 42, "after select", 0, "20260101_120000_f000042_after_select.png"},
		{"repeat in one flush", 42, "after select", 1, "20260101_120000_f000042_after_select_2.png"},
		{"later frame", 43, "after select", 0, "20260101_120000_f000043_after_select.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := screenshotPath("out", "20260101_120000", tt.frame, tt.label, tt.dup)
			if want := filepath.Join("out", tt.want); got != want {
				t.Errorf("screenshotPath = %q, want %q", got, want)
			}
		})
	}
}

func TestScreenshotPathsDistinctWithinSecond(t *testing.T) {
	seen := map[string]bool{}
	for frame := uint64(0); frame < 3; frame++ {
		for dup := 0; dup < 2; dup++ {
			p := screenshotPath("out", "20260101_120000", frame, "same", dup)
			if seen[p] {
				t.Fatalf("duplicate path %q", p)
			}
			seen[p] = true
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		51, 51, 0, 51, // white-yellow at 20%
		0, 0, 0, 0,
		10, 20, 30, 255,
	}
	img := unpremultiply(pixels, 3, 1)
	want := []byte{255, 255, 0, 51, 0, 0, 0, 0, 10, 20, 30, 255}
	for i, w := range want {
		if img.Pix[i] != w {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], w)
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	img := unpremultiply([]byte{255, 0, 0, 255}, 1, 1)
	if err := writePNG(path, img); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, _, _, a := decoded.At(0, 0).RGBA(); r != 0xffff || a != 0xffff {
		t.Errorf("pixel = r %x a %x, want opaque red", r, a)
	}
}
