package game

import (
	"math/rand"
)

// --- Saucer gunnery ---

const saucerBulletSpeed = 200.0 // px/s, fixed for every personality

// AimAngle computes the firing angle for one shot. Tactical-tier
// personalities lead the target using the ship's true velocity from the
// view; the rest shoot at where the ship is right now. Accuracy jitter is
// applied last, after the aiming method.
func (s *Saucer) AimAngle(view *WorldView, rng *rand.Rand) float64 {
	var angle float64
	if s.personality.UsesPredictiveAim() {
		angle = s.predictiveAim(view.PlayerPos, view.PlayerVel, saucerBulletSpeed)
	} else {
		angle = s.directAim(view.PlayerPos)
	}
	return s.applyAccuracy(angle, rng)
}

// directAim points straight at the target's current position.
func (s *Saucer) directAim(target Vec2) float64 {
	return target.Sub(s.pos).Heading()
}

// predictiveAim leads the target by its velocity over the bullet's flight
// time to the target's current position. A coincident target yields 0.
func (s *Saucer) predictiveAim(target, targetVel Vec2, bulletSpeed float64) float64 {
	dist := target.Sub(s.pos).Mag()
	if dist == 0 {
		return 0
	}
	flight := dist / bulletSpeed
	predicted := target.Add(targetVel.Scale(flight))
	return predicted.Sub(s.pos).Heading()
}

// applyAccuracy perturbs the angle by a uniform jitter scaled by how far
// accuracy falls short of perfect. Accuracy at or above 1 fires true, so
// the tacticals and the deadly never waver.
func (s *Saucer) applyAccuracy(angle float64, rng *rand.Rand) float64 {
	if s.accuracy >= 1.0 {
		return angle
	}
	spread := (1.0 - s.accuracy) * 0.5
	return angle + (rng.Float64()*2-1)*spread
}
