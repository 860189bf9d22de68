package adboard

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// current frame's Draw call. The resulting PNG is written to ScreenshotDir
// with a filename built from the time, the frame number and the label. Safe to call from Update or Draw.
func (b *Board) Screenshot(label string) {
	b.screenshotQueue = append(b.screenshotQueue, label)
}

// flushScreenshots captures the rendered frame for every queued label and
// writes each as a PNG file. Called at the end of Board.Draw.
func (b *Board) flushScreenshots(screen *ebiten.Image) {
	if len(b.screenshotQueue) == 0 {
		return
	}

	if err := os.MkdirAll(b.ScreenshotDir, 0o755); err != nil {
		b.logger.Error("screenshot: mkdir failed", "dir", b.ScreenshotDir, "err", err)
		b.screenshotQueue = b.screenshotQueue[:0]
		return
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, w, h)

	stamp := time.Now().Format("20060102_150405")
	frame := b.clock.Frame()
	seen := make(map[string]int, len(b.screenshotQueue))
	for _, label := range b.screenshotQueue {
		path := screenshotPath(b.ScreenshotDir, stamp, frame, label, seen[label])
		seen[label]++
		if err := writePNG(path, img); err != nil {
			b.logger.Error("screenshot failed", "err", err)
			continue
		}
		b.logger.Info("screenshot saved", "path", path, "frame", frame)
	}
	b.screenshotQueue = b.screenshotQueue[:0]
}

// unpremultiply converts premultiplied RGBA pixels to straight-alpha NRGBA.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// screenshotPath names a capture by wall-clock stamp, frame and label. dup
// counts earlier captures with the same label in one flush and is appended
// when positive.
func screenshotPath(dir, stamp string, frame uint64, label string, dup int) string {
	name := fmt.Sprintf("%s_f%06d_%s", stamp, frame, sanitizeLabel(label))
	if dup > 0 {
		name += fmt.Sprintf("_%d", dup+1)
	}
	return filepath.Join(dir, name+".png")
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
