package adboard

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), &buf
}

func TestDebugCheckOverlap(t *testing.T) {
	l, buf := captureLogger()
	if debugCheckOverlap(l, -0.5, 10) {
		t.Error("shallow overlap reported")
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output: %s", buf.String())
	}
	if !debugCheckOverlap(l, -5, 11) {
		t.Error("deep overlap not reported")
	}
	if !strings.Contains(buf.String(), "overlap") || !strings.Contains(buf.String(), "frame=11") {
		t.Errorf("warning missing details: %s", buf.String())
	}
}

func TestDebugModeLogsStats(t *testing.T) {
	b := NewBoard(testDefs(), DefaultConfig())
	l, buf := captureLogger()
	b.SetLogger(l)
	b.SetDebugMode(true)

	b.Advance(debugLogEvery)

	out := buf.String()
	if !strings.Contains(out, "frame stats") {
		t.Fatalf("no stats line after %d frames: %s", debugLogEvery, out)
	}
	for _, key := range []string{"energy=", "min_gap=", "component=adboard"} {
		if !strings.Contains(out, key) {
			t.Errorf("stats line missing %q: %s", key, out)
		}
	}
}

func TestDebugModeOffIsQuiet(t *testing.T) {
	b := NewBoard(testDefs(), DefaultConfig())
	l, buf := captureLogger()
	b.SetLogger(l)
	b.Advance(debugLogEvery * 2)
	if strings.Contains(buf.String(), "frame stats") {
		t.Errorf("stats logged with debug off: %s", buf.String())
	}
}
