package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type waveType int

const (
	waveSine waveType = iota
	waveSquare
	waveSaw
	waveTriangle
	waveNoise
)

// tone is a finite streamer: one oscillator swept from startFreq to endFreq
// over its length, shaped by a linear attack/release envelope and an
// optional exponential decay. Noise tones ignore the frequency fields.
type tone struct {
	sr        beep.SampleRate
	wave      waveType
	startFreq float64
	endFreq   float64
	length    int // total samples
	attack    int // samples
	release   int // samples
	expDecay  float64
	gain      float64
	pos       int
	phase     float64
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	if t.pos >= t.length {
		return 0, false
	}
	n := 0
	for i := range samples {
		if t.pos >= t.length {
			break
		}
		prog := float64(t.pos) / float64(t.length)
		freq := t.startFreq + (t.endFreq-t.startFreq)*prog
		t.phase += freq / float64(t.sr)
		if t.phase >= 1 {
			t.phase -= 1
		}
		v := t.sample() * t.envelope(prog) * t.gain
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
		n++
	}
	return n, true
}

func (t *tone) Err() error { return nil }

func (t *tone) sample() float64 {
	switch t.wave {
	case waveSquare:
		if t.phase < 0.5 {
			return 1
		}
		return -1
	case waveSaw:
		return 2*t.phase - 1
	case waveTriangle:
		return 1 - 4*math.Abs(t.phase-0.5)
	case waveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * t.phase)
	}
}

func (t *tone) envelope(prog float64) float64 {
	env := 1.0
	if t.attack > 0 && t.pos < t.attack {
		env = float64(t.pos) / float64(t.attack)
	}
	if t.release > 0 {
		if tail := t.length - t.pos; tail < t.release {
			if r := float64(tail) / float64(t.release); r < env {
				env = r
			}
		}
	}
	if t.expDecay > 0 {
		env *= math.Exp(-t.expDecay * prog)
	}
	return env
}

// newVolume wraps a streamer at linear volume v. v <= 0 is fully silent.
func newVolume(s beep.Streamer, v float64) beep.Streamer {
	vol := &effects.Volume{Streamer: s, Base: 2, Silent: v <= 0}
	if v > 0 {
		vol.Volume = math.Log2(v)
	}
	return vol
}

// mixTake mixes finite streamers and cuts the result at n samples.
// beep.Mixer alone never drains, so the Take bound keeps finished effects
// from lingering in the manager's mixer.
func mixTake(n int, s ...beep.Streamer) beep.Streamer {
	return beep.Take(n, beep.Mix(s...))
}

// newShipShot is the player's fire blip: a short square sweep dropping an
// octave. The base pitch tracks the shot interval so the rate-of-fire ramp
// is audible.
func newShipShot(sr beep.SampleRate, interval, master float64) beep.Streamer {
	const slow, fast = 0.17, 0.042
	if interval > slow {
		interval = slow
	}
	if interval < fast {
		interval = fast
	}
	base := 660 + 440*(slow-interval)/(slow-fast)
	t := &tone{
		sr:        sr,
		wave:      waveSquare,
		startFreq: base,
		endFreq:   base * 0.5,
		length:    sr.N(time.Millisecond * 70),
		attack:    sr.N(time.Millisecond * 2),
		release:   sr.N(time.Millisecond * 25),
		gain:      0.5,
	}
	return newVolume(t, 0.30*master)
}

// newSaucerShot is the hostile zap: a saw sweep falling most of three
// octaves.
func newSaucerShot(sr beep.SampleRate, master float64) beep.Streamer {
	t := &tone{
		sr:        sr,
		wave:      waveSaw,
		startFreq: 980,
		endFreq:   170,
		length:    sr.N(time.Millisecond * 120),
		attack:    sr.N(time.Millisecond * 2),
		release:   sr.N(time.Millisecond * 40),
		gain:      0.5,
	}
	return newVolume(t, 0.28*master)
}

// newExplosion is a noise burst over a sine thump. Bigger sizes run longer
// and thump lower.
func newExplosion(sr beep.SampleRate, size int, master float64) beep.Streamer {
	if size < 1 {
		size = 1
	}
	if size > 9 {
		size = 9
	}
	dur := time.Duration(150+90*size) * time.Millisecond
	length := sr.N(dur)
	noise := &tone{
		sr:       sr,
		wave:     waveNoise,
		length:   length,
		attack:   sr.N(time.Millisecond),
		release:  sr.N(time.Millisecond * 30),
		expDecay: 5,
		gain:     0.8,
	}
	thump := &tone{
		sr:        sr,
		wave:      waveSine,
		startFreq: float64(110 - 8*size),
		endFreq:   float64(110-8*size) * 0.5,
		length:    length,
		attack:    sr.N(time.Millisecond),
		release:   sr.N(time.Millisecond * 30),
		expDecay:  4,
		gain:      0.9,
	}
	return newVolume(mixTake(length, noise, thump), 0.45*master)
}

// newShipExplosion is the long death rumble.
func newShipExplosion(sr beep.SampleRate, master float64) beep.Streamer {
	length := sr.N(time.Millisecond * 1200)
	noise := &tone{
		sr:       sr,
		wave:     waveNoise,
		length:   length,
		attack:   sr.N(time.Millisecond * 2),
		release:  sr.N(time.Millisecond * 150),
		expDecay: 3,
		gain:     0.8,
	}
	rumble := &tone{
		sr:        sr,
		wave:      waveSine,
		startFreq: 60,
		endFreq:   28,
		length:    length,
		attack:    sr.N(time.Millisecond * 2),
		release:   sr.N(time.Millisecond * 150),
		expDecay:  2.5,
		gain:      1.0,
	}
	return newVolume(mixTake(length, noise, rumble), 0.55*master)
}

// newShieldBuzz is the absorb sound: two detuned squares beating against
// each other.
func newShieldBuzz(sr beep.SampleRate, master float64) beep.Streamer {
	length := sr.N(time.Millisecond * 150)
	low := &tone{
		sr:        sr,
		wave:      waveSquare,
		startFreq: 180,
		endFreq:   180,
		length:    length,
		attack:    sr.N(time.Millisecond * 3),
		release:   sr.N(time.Millisecond * 50),
		gain:      0.4,
	}
	high := &tone{
		sr:        sr,
		wave:      waveSquare,
		startFreq: 271,
		endFreq:   271,
		length:    length,
		attack:    sr.N(time.Millisecond * 3),
		release:   sr.N(time.Millisecond * 50),
		gain:      0.25,
	}
	return newVolume(mixTake(length, low, high), 0.35*master)
}

// newLevelSweep is the level-clear flourish: a triangle rising a twelfth.
func newLevelSweep(sr beep.SampleRate, master float64) beep.Streamer {
	t := &tone{
		sr:        sr,
		wave:      waveTriangle,
		startFreq: 330,
		endFreq:   990,
		length:    sr.N(time.Millisecond * 450),
		attack:    sr.N(time.Millisecond * 5),
		release:   sr.N(time.Millisecond * 120),
		gain:      0.6,
	}
	return newVolume(t, 0.35*master)
}
