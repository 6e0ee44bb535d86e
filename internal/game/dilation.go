package game

import "math"

// --- Time dilation ---

// The world runs on movement-scaled time: a still ship freezes everything
// at the floor factor, full speed runs it at 1.0. Firing counts as motion
// so the player can slow-walk a firefight without the world stopping dead.
const (
	dilationFloor       = 0.01
	dilationRiseRate    = 2.0   // fraction of the gap closed per second when speeding up
	dilationFiringBonus = 500.0 // px/s of virtual movement while the trigger is down
)

// dilationTarget maps effective player movement to the target factor.
func dilationTarget(movement float64) float64 {
	ratio := math.Min(movement/shipReferenceSpeed, 1.0)
	return dilationFloor + (1.0-dilationFloor)*ratio
}

// updateDilation moves the current factor toward the target for this tick.
// Rising interpolates quickly; falling reuses the ship's coast-decay curve
// so time winds down at the same rate the ship does.
func (w *World) updateDilation(dt float64, firing bool) {
	if w.ship == nil || !w.ship.Active() {
		w.dilation = 1.0
		return
	}

	movement := w.ship.Speed()
	if firing {
		movement += dilationFiringBonus
	}
	target := dilationTarget(movement)

	if target > w.dilation {
		w.dilation += (target - w.dilation) * dilationRiseRate * dt
	} else {
		w.dilation *= math.Pow(w.ship.decayRate(), dt)
	}

	if w.dilation < dilationFloor {
		w.dilation = dilationFloor
	} else if w.dilation > 1.0 {
		w.dilation = 1.0
	}
}

// --- Screen shake ---

// triggerShake starts a shake. The wall-clock duration is stretched by the
// inverse dilation factor so a slow-motion impact still reads on screen.
func (w *World) triggerShake(intensity, duration, dilationFactor float64) {
	if w.status == StatusGameOver && w.gameOverTimer > 0.1 {
		return
	}
	w.shakeIntensity = intensity
	w.shakeTimer = duration / math.Max(dilationFactor, dilationFloor)
}

// updateShake ticks the shake clock on undilated time and rolls a fresh
// random offset each tick while it runs.
func (w *World) updateShake(dt float64) {
	if w.shakeTimer > 0 {
		w.shakeTimer -= dt
		w.shakeX = (w.rng.Float64()*2 - 1) * w.shakeIntensity
		w.shakeY = (w.rng.Float64()*2 - 1) * w.shakeIntensity
		if w.shakeTimer <= 0 {
			w.shakeIntensity = 0
		}
	} else {
		w.shakeX, w.shakeY = 0, 0
	}
}

// ShakeOffset returns the current camera displacement.
func (w *World) ShakeOffset() (float64, float64) {
	return w.shakeX, w.shakeY
}
