// Package audio synthesizes the game's sound effects at runtime. Every
// effect is a procedural beep.Streamer; there are no sample assets.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// SoundManager owns the mixer the speaker pulls from. All Play methods are
// safe to call before Initialize or after a failed Initialize; they just do
// nothing, so a muted or audio-less run needs no special casing.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      float64
	initialized bool
}

// NewSoundManager creates a silent manager. Call Initialize to open the
// speaker.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		master: 1.0,
	}
}

// Initialize opens the audio device and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything. The speaker itself has no close; clearing
// the mixer is as far down as beep lets us go.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.mixer.Clear()
	sm.initialized = false
}

// SetMasterVolume scales all subsequently played effects. 0 is silent.
func (sm *SoundManager) SetMasterVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if v < 0 {
		v = 0
	}
	sm.master = v
}

// play adds a finite streamer to the mixer if audio is up.
func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized || s == nil {
		return
	}
	sm.mixer.Add(s)
}

// PlayShipShot plays the player's fire blip. The pitch tracks the current
// shot interval so the ROF ramp is audible: the faster the gun, the higher
// the blip.
func (sm *SoundManager) PlayShipShot(shootInterval float64) {
	sm.play(newShipShot(sampleRate, shootInterval, sm.master))
}

// PlaySaucerShot plays the hostile zap.
func (sm *SoundManager) PlaySaucerShot() {
	sm.play(newSaucerShot(sampleRate, sm.master))
}

// PlayExplosion plays an asteroid break. Size 1-9 scales length and depth.
func (sm *SoundManager) PlayExplosion(size int) {
	sm.play(newExplosion(sampleRate, size, sm.master))
}

// PlaySaucerExplosion plays the saucer kill crunch.
func (sm *SoundManager) PlaySaucerExplosion() {
	sm.play(newExplosion(sampleRate, 5, sm.master))
}

// PlayShipExplosion plays the long death rumble.
func (sm *SoundManager) PlayShipExplosion() {
	sm.play(newShipExplosion(sampleRate, sm.master))
}

// PlayShieldHit plays the shield absorb buzz.
func (sm *SoundManager) PlayShieldHit() {
	sm.play(newShieldBuzz(sampleRate, sm.master))
}

// PlayLevelClear plays the rising level-clear sweep.
func (sm *SoundManager) PlayLevelClear() {
	sm.play(newLevelSweep(sampleRate, sm.master))
}
