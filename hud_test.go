package adboard

import "testing"

func TestZoomLabel(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{100, "100%"},
		{30, "30%"},
		{300, "300%"},
	}
	for _, tt := range tests {
		if got := zoomLabel(tt.percent); got != tt.want {
			t.Errorf("zoomLabel(%d) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}

func TestHUDRefreshCadence(t *testing.T) {
	var h hudState
	for range 29 {
		h.tick(1.0 / 60)
	}
	if h.fpsPending {
		t.Error("refresh requested before half a second")
	}
	h.tick(1.0 / 60)
	h.tick(1.0 / 60)
	if !h.fpsPending {
		t.Error("no refresh after half a second")
	}
}
