package sfx

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/phanxgames/adboard"
)

// ErrNotInitialized is returned by Play before Init succeeds.
var ErrNotInitialized = errors.New("sfx: speaker not initialized")

// Player mixes sound effects onto the speaker. It implements
// adboard.SoundPlayer.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      float64
	initialized bool
}

// NewPlayer creates a player with the given master volume in [0, 1].
func NewPlayer(master float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		master: master,
	}
}

// Init opens the audio device. On failure the player stays silent and Play
// returns ErrNotInitialized.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play starts s without waiting for it to finish.
func (p *Player) Play(s adboard.Sound) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return ErrNotInitialized
	}
	st := Synth(s, p.master, SampleRate)
	if st == nil {
		return fmt.Errorf("sfx: no sound for %v", s)
	}
	speaker.Lock()
	p.mixer.Add(st)
	speaker.Unlock()
	return nil
}

// Close stops all sounds and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
