package game

import "math"

// --- Player ship ---

const (
	shipRadius         = 15.0
	shipThrustPower    = 281.25
	shipRotationSpeed  = 5.0    // radians/sec
	shipReferenceSpeed = 1000.0 // treated as 100% speed by decay, thrust falloff, and dilation
	shipSpeedDecay     = 0.275  // velocity multiplier per second of coasting

	shieldMaxHits          = 3
	shieldRechargeDuration = 3.0 // seconds per shield point
	shieldDamageVisual     = 1.0 // seconds the ring flashes after a hit
	shieldPulseVisual      = 1.0 // seconds the full-recharge pulse runs

	// Rate-of-fire curve: holding the trigger ramps the interval down to the
	// peak over rofPeakTime, then fatigue eases it back up over the rest of
	// the curve. Releasing resets to the start.
	rofStartInterval = 0.09
	rofPeakInterval  = 0.042
	rofFloorInterval = 0.17
	rofPeakTime      = 2.0
	rofCurveDuration = 11.38
)

// Ship is the player vessel. Thrust and rotation are applied by the input
// layer with undilated time; Update integrates with dilated time so the
// ship freezes along with the rest of the world when nothing moves.
type Ship struct {
	pos    Vec2
	vel    Vec2
	angle  float64
	radius float64

	thrusting bool

	invulnerable     bool
	invulnerableTime float64

	shootTimer    float64
	shootInterval float64
	rofTime       float64 // seconds of sustained fire, drives the interval curve

	shieldHits        int
	shieldRecharge    float64
	shieldDamageTimer float64
	shieldPulseTimer  float64

	active bool
}

// NewShip spawns the ship at (x,y) facing right with full shields.
func NewShip(x, y float64) *Ship {
	return &Ship{
		pos:           Vec2{x, y},
		radius:        shipRadius,
		shootInterval: rofStartInterval,
		shieldHits:    shieldMaxHits,
		active:        true,
	}
}

// RotateLeft turns the hull counterclockwise.
func (s *Ship) RotateLeft(dt float64) {
	s.angle -= shipRotationSpeed * dt
}

// RotateRight turns the hull clockwise.
func (s *Ship) RotateRight(dt float64) {
	s.angle += shipRotationSpeed * dt
}

// accelMultiplier scales thrust by current speed. Low speeds get a boost,
// and thrust fades to 10% as the ship approaches the reference speed.
func (s *Ship) accelMultiplier() float64 {
	pct := s.vel.Mag() / shipReferenceSpeed * 100
	switch {
	case pct < 50:
		return 1.25
	case pct >= 100:
		return 0.1
	default:
		return 1.0 - 0.9*(pct-50)/50
	}
}

// Thrust accelerates along the hull facing.
func (s *Ship) Thrust(dt float64) {
	s.thrusting = true
	push := Vec2{shipThrustPower * s.accelMultiplier(), 0}.Rotate(s.angle)
	s.vel = s.vel.Add(push.Scale(dt))
}

// ReverseThrust accelerates against the hull facing.
func (s *Ship) ReverseThrust(dt float64) {
	s.thrusting = true
	push := Vec2{-shipThrustPower * s.accelMultiplier(), 0}.Rotate(s.angle)
	s.vel = s.vel.Add(push.Scale(dt))
}

// StrafeLeft accelerates perpendicular to the hull facing, to its left.
func (s *Ship) StrafeLeft(dt float64) {
	s.thrusting = true
	push := Vec2{0, -shipThrustPower * s.accelMultiplier()}.Rotate(s.angle)
	s.vel = s.vel.Add(push.Scale(dt))
}

// StrafeRight accelerates perpendicular to the hull facing, to its right.
func (s *Ship) StrafeRight(dt float64) {
	s.thrusting = true
	push := Vec2{0, shipThrustPower * s.accelMultiplier()}.Rotate(s.angle)
	s.vel = s.vel.Add(push.Scale(dt))
}

// StopThrust marks the ship as coasting so speed decay applies.
func (s *Ship) StopThrust() {
	s.thrusting = false
}

// Update integrates one tick of dilated time: movement, wrap, timers,
// shield recharge, and coasting decay.
func (s *Ship) Update(dt, width, height float64) {
	if !s.active {
		return
	}
	s.pos = s.pos.Add(s.vel.Scale(dt))
	s.pos = wrapPosition(s.pos, width, height)

	if s.invulnerable {
		s.invulnerableTime -= dt
		if s.invulnerableTime <= 0 {
			s.invulnerable = false
		}
	}

	s.updateRateOfFire(dt, s.shootTimer > 0)
	if s.shootTimer > 0 {
		s.shootTimer -= dt
	}

	if s.shieldHits < shieldMaxHits {
		s.shieldRecharge += dt
		if s.shieldRecharge >= shieldRechargeDuration {
			if s.shieldHits == shieldMaxHits-1 {
				s.shieldPulseTimer = shieldPulseVisual
			}
			s.shieldHits++
			s.shieldRecharge = 0
		}
	}
	if s.shieldDamageTimer > 0 {
		s.shieldDamageTimer -= dt
	}
	if s.shieldPulseTimer > 0 {
		s.shieldPulseTimer -= dt
	}

	if !s.thrusting {
		s.vel = s.vel.Scale(math.Pow(s.decayRate(), dt))
	}
}

// decayRate returns the per-second velocity multiplier for coasting. Below
// 10% of reference speed the decay runs at the 4th power so the ship snaps
// to a stop instead of creeping.
func (s *Ship) decayRate() float64 {
	pct := s.vel.Mag() / shipReferenceSpeed * 100
	if pct < 10 {
		return math.Pow(shipSpeedDecay, 4)
	}
	return shipSpeedDecay
}

// updateRateOfFire advances the sustained-fire curve. Quartic ramp to the
// peak interval, then a quadratic ease out to the fatigue floor.
func (s *Ship) updateRateOfFire(dt float64, shooting bool) {
	if !shooting {
		s.rofTime = 0
		s.shootInterval = rofStartInterval
		return
	}
	s.rofTime += dt
	if s.rofTime <= rofPeakTime {
		progress := s.rofTime / rofPeakTime
		smooth := progress * progress * progress * progress
		s.shootInterval = rofStartInterval + (rofPeakInterval-rofStartInterval)*smooth
		return
	}
	progress := (s.rofTime - rofPeakTime) / (rofCurveDuration - rofPeakTime)
	if progress > 1 {
		progress = 1
	}
	smooth := 1 - (1-progress)*(1-progress)
	s.shootInterval = rofPeakInterval + (rofFloorInterval-rofPeakInterval)*smooth
}

// fireSpeedMultiplier scales bullet muzzle speed by the current interval.
// The peak rate overdrives shots to 1.25x and the fatigue floor drops them
// to 0.75x.
func (s *Ship) fireSpeedMultiplier() float64 {
	switch {
	case s.shootInterval >= rofFloorInterval:
		return 0.75
	case s.shootInterval <= rofPeakInterval:
		return 1.25
	default:
		progress := (s.shootInterval - rofStartInterval) / (rofFloorInterval - rofStartInterval)
		return 1.0 - progress*0.25
	}
}

// AbsorbHit spends one shield point and restarts the recharge clock. The
// caller must check Shields() > 0 first.
func (s *Ship) AbsorbHit() {
	s.shieldHits--
	s.shieldRecharge = 0
	s.shieldDamageTimer = shieldDamageVisual
}

// MakeInvulnerable grants spawn protection for the given duration.
func (s *Ship) MakeInvulnerable(seconds float64) {
	s.invulnerable = true
	s.invulnerableTime = seconds
}

// ResetForLevel recenters the ship with zero velocity and full shields.
func (s *Ship) ResetForLevel(width, height float64) {
	s.pos = Vec2{width / 2, height / 2}
	s.vel = Vec2{}
	s.angle = 0
	s.shieldHits = shieldMaxHits
	s.shieldPulseTimer = shieldPulseVisual
	s.MakeInvulnerable(1.0)
}

// Active reports whether the ship is alive.
func (s *Ship) Active() bool { return s.active }

// Pos returns the current position.
func (s *Ship) Pos() Vec2 { return s.pos }

// Vel returns the current velocity.
func (s *Ship) Vel() Vec2 { return s.vel }

// Angle returns the hull facing in radians.
func (s *Ship) Angle() float64 { return s.angle }

// Speed returns the current speed in px/s.
func (s *Ship) Speed() float64 { return s.vel.Mag() }

// Shields returns the remaining shield points.
func (s *Ship) Shields() int { return s.shieldHits }

// Invulnerable reports whether spawn protection is running.
func (s *Ship) Invulnerable() bool { return s.invulnerable }

// Thrusting reports whether any thrust control is held.
func (s *Ship) Thrusting() bool { return s.thrusting }
