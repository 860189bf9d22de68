package adboard

import "testing"

func TestClassifyPointer(t *testing.T) {
	tests := []struct {
		name          string
		wasDown, down bool
		want          pointerTransition
	}{
		{"idle", false, false, pointerNone},
		{"press", false, true, pointerPress},
		{"hold", true, true, pointerHold},
		{"release", true, false, pointerRelease},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyPointer(tt.wasDown, tt.down); got != tt.want {
				t.Errorf("classifyPointer(%v, %v) = %d, want %d", tt.wasDown, tt.down, got, tt.want)
			}
		})
	}
}

func TestWheelDelta(t *testing.T) {
	tests := []struct {
		wy, want float64
	}{
		{1, -100},
		{-1, 100},
		{0.5, -50},
		{0, 0},
	}
	for _, tt := range tests {
		if got := wheelDelta(tt.wy); !approxEqual(got, tt.want, epsilon) {
			t.Errorf("wheelDelta(%v) = %v, want %v", tt.wy, got, tt.want)
		}
	}
}

func TestWheelDeltaZoomsInOnScrollUp(t *testing.T) {
	b := NewBoard(testDefs(), DefaultConfig())
	b.Wheel(400, 300, wheelDelta(1), 0)
	if !approxEqual(b.cam.Scale, 1.1, 1e-9) {
		t.Errorf("Scale = %v after scroll up, want 1.1", b.cam.Scale)
	}
	b.Wheel(400, 300, wheelDelta(-1), ModCtrl)
	if !approxEqual(b.cam.Scale, 1.1/1.2, 1e-9) {
		t.Errorf("Scale = %v after fast scroll down, want %v", b.cam.Scale, 1.1/1.2)
	}
}
