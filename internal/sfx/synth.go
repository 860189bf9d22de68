// Package sfx synthesizes the board's interface sounds with beep.
package sfx

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/phanxgames/adboard"
)

// SampleRate is the output rate of every synthesized sound.
const SampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave uint8

const (
	WaveSine Wave = iota
	WaveSquare
	WaveNoise
)

// Volumes holds the per-sound gain, matching the stock mix.
var Volumes = map[adboard.Sound]float64{
	adboard.SoundClick: 0.25,
	adboard.SoundThrow: 0.4,
	adboard.SoundPop:   0.35,
	adboard.SoundTap:   0.2,
}

// oscillator generates a wave whose frequency glides linearly from freq to
// endFreq over its duration.
type oscillator struct {
	freq, endFreq float64
	phase         float64
	duration      int
	position      int
	wave          Wave
	rate          beep.SampleRate
	rng           *rand.Rand
}

func newOscillator(freq, endFreq float64, d time.Duration, wave Wave, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(d),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(uint64(freq), uint64(d))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		f := o.freq + (o.endFreq-o.freq)*t
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(d),
	}
}

// gain returns the envelope level at sample p.
func (e *envelope) gain(p int) float64 {
	switch {
	case p >= e.total:
		return 0
	case e.attack > 0 && p < e.attack:
		return float64(p) / float64(e.attack)
	case e.release > 0 && p >= e.total-e.release:
		return float64(e.total-p) / float64(e.release)
	default:
		return 1
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		g := e.gain(e.position)
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain. Zero or less is silent, since
// log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is an oscillator shaped by an envelope and bounded to its duration.
func tone(freq, endFreq float64, d, attack, release time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	osc := newOscillator(freq, endFreq, d, wave, rate)
	return beep.Take(rate.N(d), newEnvelope(osc, d, attack, release, rate))
}

// Synth builds the streamer for s scaled by master. Unknown sounds return nil.
func Synth(s adboard.Sound, master float64, rate beep.SampleRate) beep.Streamer {
	var st beep.Streamer
	switch s {
	case adboard.SoundClick:
		// Short bright tick.
		st = tone(1800, 1400, 35*time.Millisecond, time.Millisecond, 30*time.Millisecond, WaveSine, rate)
	case adboard.SoundThrow:
		// Falling noise swoosh over a low sine.
		d := 180 * time.Millisecond
		st = beep.Take(rate.N(d), beep.Mix(
			newVolume(tone(0, 0, d, 20*time.Millisecond, 150*time.Millisecond, WaveNoise, rate), 0.5),
			newVolume(tone(320, 120, d, 10*time.Millisecond, 160*time.Millisecond, WaveSine, rate), 0.5),
		))
	case adboard.SoundPop:
		// Rising chirp.
		st = tone(400, 900, 70*time.Millisecond, 3*time.Millisecond, 50*time.Millisecond, WaveSine, rate)
	case adboard.SoundTap:
		st = tone(260, 220, 30*time.Millisecond, time.Millisecond, 25*time.Millisecond, WaveSquare, rate)
	default:
		return nil
	}
	return newVolume(st, Volumes[s]*master)
}
