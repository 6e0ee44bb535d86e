package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to exhaustion and returns the sample count. Fails the
// test if the streamer is still running after limit samples.
func drain(t *testing.T, s beep.Streamer, limit int) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
		if total > limit {
			t.Fatalf("streamer still running after %d samples", total)
		}
	}
}

func countSignFlips(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	flips := 0
	prev := 0.0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			v := buf[i][0]
			if (prev < 0 && v > 0) || (prev > 0 && v < 0) {
				flips++
			}
			if v != 0 {
				prev = v
			}
		}
		if !ok {
			return flips
		}
	}
}

func TestToneDrainContract(t *testing.T) {
	tn := &tone{sr: sampleRate, wave: waveSine, startFreq: 440, endFreq: 440, length: 100, gain: 1}

	buf := make([][2]float64, 64)
	n, ok := tn.Stream(buf)
	if n != 64 || !ok {
		t.Fatalf("first Stream = (%d, %v), want (64, true)", n, ok)
	}
	n, ok = tn.Stream(buf)
	if n != 36 || !ok {
		t.Fatalf("second Stream = (%d, %v), want (36, true)", n, ok)
	}
	n, ok = tn.Stream(buf)
	if n != 0 || ok {
		t.Fatalf("drained Stream = (%d, %v), want (0, false)", n, ok)
	}
	if tn.Err() != nil {
		t.Fatalf("Err = %v, want nil", tn.Err())
	}
}

func TestToneAmplitudeBounds(t *testing.T) {
	waves := []waveType{waveSine, waveSquare, waveSaw, waveTriangle, waveNoise}
	for _, w := range waves {
		tn := &tone{sr: sampleRate, wave: w, startFreq: 330, endFreq: 660, length: 2000, gain: 1}
		buf := make([][2]float64, 512)
		for {
			n, ok := tn.Stream(buf)
			for i := 0; i < n; i++ {
				if buf[i][0] < -1 || buf[i][0] > 1 {
					t.Fatalf("wave %d sample %f outside [-1, 1]", w, buf[i][0])
				}
				if buf[i][0] != buf[i][1] {
					t.Fatalf("wave %d channels differ: %f vs %f", w, buf[i][0], buf[i][1])
				}
			}
			if !ok {
				break
			}
		}
	}
}

func TestToneAttackRamp(t *testing.T) {
	tn := &tone{sr: sampleRate, wave: waveSquare, startFreq: 500, endFreq: 500,
		length: 1000, attack: 200, gain: 1}

	buf := make([][2]float64, 1000)
	tn.Stream(buf)

	if buf[0][0] != 0 {
		t.Fatalf("first sample = %f, want 0 at attack start", buf[0][0])
	}
	early, late := 0.0, 0.0
	for i := 0; i < 50; i++ {
		if a := abs(buf[i][0]); a > early {
			early = a
		}
	}
	for i := 300; i < 350; i++ {
		if a := abs(buf[i][0]); a > late {
			late = a
		}
	}
	if early >= late {
		t.Fatalf("attack ramp not rising: early peak %f >= late peak %f", early, late)
	}
}

func TestEnvelopeExpDecayFalls(t *testing.T) {
	tn := &tone{sr: sampleRate, length: 1000, expDecay: 3, gain: 1}

	tn.pos = 250
	at25 := tn.envelope(0.25)
	tn.pos = 750
	at75 := tn.envelope(0.75)

	if at75 >= at25 {
		t.Fatalf("decay envelope not falling: %f at 0.75 >= %f at 0.25", at75, at25)
	}
}

func TestEffectsDrainFinite(t *testing.T) {
	limit := sampleRate.N(time.Second * 3)
	cases := []struct {
		name string
		s    beep.Streamer
	}{
		{"ship_shot", newShipShot(sampleRate, 0.09, 1)},
		{"saucer_shot", newSaucerShot(sampleRate, 1)},
		{"explosion_small", newExplosion(sampleRate, 1, 1)},
		{"explosion_large", newExplosion(sampleRate, 3, 1)},
		{"explosion_clamped", newExplosion(sampleRate, 99, 1)},
		{"ship_explosion", newShipExplosion(sampleRate, 1)},
		{"shield_buzz", newShieldBuzz(sampleRate, 1)},
		{"level_sweep", newLevelSweep(sampleRate, 1)},
	}
	for _, c := range cases {
		got := drain(t, c.s, limit)
		if got == 0 {
			t.Errorf("%s produced no samples", c.name)
		}
	}
}

func TestExplosionSizeScalesLength(t *testing.T) {
	limit := sampleRate.N(time.Second * 3)
	small := drain(t, newExplosion(sampleRate, 1, 1), limit)
	large := drain(t, newExplosion(sampleRate, 3, 1), limit)
	if large <= small {
		t.Fatalf("size 3 explosion (%d samples) not longer than size 1 (%d)", large, small)
	}
}

func TestShipShotPitchTracksInterval(t *testing.T) {
	// A shorter shot interval means a faster gun and a higher blip, so the
	// fast shot must cross zero more often over the same length.
	slowFlips := countSignFlips(newShipShot(sampleRate, 0.17, 1))
	fastFlips := countSignFlips(newShipShot(sampleRate, 0.042, 1))
	if fastFlips <= slowFlips {
		t.Fatalf("fast shot flips %d <= slow shot flips %d", fastFlips, slowFlips)
	}
}

func TestVolumeSilentAtZero(t *testing.T) {
	tn := &tone{sr: sampleRate, wave: waveSquare, startFreq: 440, endFreq: 440, length: 500, gain: 1}
	s := newVolume(tn, 0)

	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] != 0 || buf[i][1] != 0 {
				t.Fatalf("silent volume leaked sample (%f, %f)", buf[i][0], buf[i][1])
			}
		}
		if !ok {
			return
		}
	}
}

func TestManagerNoopBeforeInitialize(t *testing.T) {
	sm := NewSoundManager()

	// No speaker is open in tests. Every entry point must be callable
	// without panicking and must leave the mixer empty.
	sm.PlayShipShot(0.09)
	sm.PlaySaucerShot()
	sm.PlayExplosion(3)
	sm.PlaySaucerExplosion()
	sm.PlayShipExplosion()
	sm.PlayShieldHit()
	sm.PlayLevelClear()
	sm.SetMasterVolume(0.5)
	sm.Cleanup()

	if got := sm.mixer.Len(); got != 0 {
		t.Fatalf("mixer has %d streamers before Initialize, want 0", got)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
