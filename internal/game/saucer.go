package game

import (
	"math"
	"math/rand"
)

const (
	saucerRadius     = 26.0
	baseRotationRate = 2.5 // radians/sec of angle smoothing at normal time
	defaultBulletCap = 5   // overridden by the world from the level formula
)

// Saucer is one autonomous hostile agent. Its Update runs the full decision
// pipeline once per tick: observe, score the situation, pick a state, derive
// behavior weights, blend steering vectors into a velocity, then decide
// whether to fire.
type Saucer struct {
	personality Personality

	pos    Vec2
	vel    Vec2
	angle  float64 // facing in radians, wrapped to (-pi, pi]
	radius float64

	speed    float64
	maxSpeed float64
	accel    float64 // reserved, movement does not consume it

	state         SaucerState
	stateTimer    float64 // accumulates every tick, bookkeeping only
	stateDuration float64 // nominal duration, bookkeeping only

	weights behaviorWeights

	// Player observation, copied from the view each tick. playerVel holds
	// the per-tick positional delta, not the ship's true velocity.
	playerPos     Vec2
	playerVel     Vec2
	lastPlayerPos Vec2
	seenPlayer    bool

	// Patrol drift: direction is +-1 fixed at spawn, oscillation is the
	// weave phase.
	direction   float64
	oscillation float64

	shootTimer    float64
	shootInterval float64
	accuracy      float64
	aggression    float64
	bulletsFired  int
	maxBullets    int

	// Last computed situation scores, kept for the HUD, logs, and reports.
	threat      float64
	opportunity float64

	trace []SaucerDebugSnapshot

	active bool
}

// NewSaucer spawns a saucer at (x,y) with the given personality. The rng
// picks the fixed patrol direction; initial velocity is a straight
// horizontal cruise and the facing matches it.
func NewSaucer(x, y float64, p Personality, rng *rand.Rand) *Saucer {
	tn := TuningFor(p)
	s := &Saucer{
		personality:   p,
		pos:           Vec2{x, y},
		radius:        saucerRadius,
		speed:         tn.Speed,
		maxSpeed:      tn.MaxSpeed,
		accel:         tn.Acceleration,
		state:         StatePatrol,
		shootInterval: tn.ShootInterval,
		accuracy:      tn.Accuracy,
		aggression:    tn.Aggression,
		maxBullets:    defaultBulletCap,
		direction:     1,
		active:        true,
	}
	if rng.Float64() < 0.5 {
		s.direction = -1
	}
	s.vel = Vec2{s.direction * s.speed, 0}
	s.angle = s.vel.Heading()
	return s
}

// Update advances the saucer one tick and reports whether it wants to fire.
// dt is already time-dilated by the world; view.TimeDilation carries the raw
// factor for rotation compensation. The caller spawns the projectile and
// calls RecordShot when it does.
func (s *Saucer) Update(dt float64, view *WorldView) bool {
	if !s.active {
		return false
	}

	// Move with last tick's velocity first, then think.
	s.pos = s.pos.Add(s.vel.Scale(dt))
	s.pos = wrapPosition(s.pos, view.Width, view.Height)

	s.observePlayer(view)
	s.threat = s.threatLevel(view)
	s.opportunity = s.opportunityLevel(view)

	s.stateTimer += dt
	sit := situation{
		threat:      s.threat,
		opportunity: s.opportunity,
		playerSpeed: s.playerVel.Mag(),
		hasOthers:   len(view.Others) > 0,
	}
	s.state, s.stateDuration = decideFor(s.personality)(sit)

	s.weights = weightsFor(s.state)
	s.synthesizeVelocity(dt, view)

	return s.updateShooting(dt)
}

// synthesizeVelocity blends every weighted steering vector into the final
// velocity, clamps it to maxSpeed, and smooths the facing angle toward the
// new heading. The rotation rate is divided by the time-dilation factor so
// perceived turn speed stays roughly constant through slow motion.
func (s *Saucer) synthesizeVelocity(dt float64, view *WorldView) {
	var final Vec2
	if w := s.weights[BehaviorSeek]; w > 0 {
		final = final.Add(s.steerSeek(view).Scale(w))
	}
	if w := s.weights[BehaviorFlee]; w > 0 {
		final = final.Add(s.steerFlee(view).Scale(w))
	}
	if w := s.weights[BehaviorFlank]; w > 0 {
		final = final.Add(s.steerFlank(view).Scale(w))
	}
	if w := s.weights[BehaviorSwarm]; w > 0 {
		final = final.Add(s.steerSwarm(view).Scale(w))
	}
	if w := s.weights[BehaviorPatrol]; w > 0 {
		final = final.Add(s.steerPatrol(dt).Scale(w))
	}
	if w := s.weights[BehaviorIntercept]; w > 0 {
		final = final.Add(s.steerIntercept(view).Scale(w))
	}
	if w := s.weights[BehaviorEvade]; w > 0 {
		final = final.Add(s.steerEvade(view).Scale(w))
	}
	if w := s.weights[BehaviorAvoidAsteroids]; w > 0 {
		final = final.Add(s.steerAvoidAsteroids(view).Scale(w))
	}

	// A zero blend keeps the previous velocity; the saucer coasts.
	if final.MagSq() == 0 {
		return
	}
	s.vel = final.Limit(s.maxSpeed)

	target := s.vel.Heading()
	diff := normalizeAngle(target - s.angle)
	rate := baseRotationRate / math.Max(view.TimeDilation, 0.1)
	s.angle = normalizeAngle(s.angle + diff*rate*dt)
}

// updateShooting advances the shot timer and reports whether the gate
// passes this tick. Passing resets the timer immediately; the bullet count
// only moves when the world actually spawns a projectile via RecordShot.
func (s *Saucer) updateShooting(dt float64) bool {
	s.shootTimer += dt
	if s.shootTimer >= s.shootInterval && s.bulletsFired < s.maxBullets {
		s.shootTimer = 0
		return true
	}
	return false
}

// RecordShot counts a projectile the world spawned for this saucer.
func (s *Saucer) RecordShot() {
	s.bulletsFired++
}

// SetBulletCap sets the per-saucer live-shot budget; the world reapplies the
// level formula every tick.
func (s *Saucer) SetBulletCap(n int) {
	s.maxBullets = n
}

// Deactivate marks the saucer destroyed and releases its bullet budget.
func (s *Saucer) Deactivate() {
	s.active = false
	s.bulletsFired = 0
}

// Active reports whether the saucer is still in play.
func (s *Saucer) Active() bool { return s.active }

// Personality returns the immutable personality tag.
func (s *Saucer) Personality() Personality { return s.personality }

// State returns the state chosen on the most recent tick.
func (s *Saucer) State() SaucerState { return s.state }

// Pos returns the current position.
func (s *Saucer) Pos() Vec2 { return s.pos }

// Vel returns the current velocity.
func (s *Saucer) Vel() Vec2 { return s.vel }

// Angle returns the current facing in radians.
func (s *Saucer) Angle() float64 { return s.angle }

// Threat returns the threat level from the most recent tick.
func (s *Saucer) Threat() float64 { return s.threat }

// Opportunity returns the opportunity level from the most recent tick.
func (s *Saucer) Opportunity() float64 { return s.opportunity }

// Weights returns the behavior weight vector from the most recent tick.
func (s *Saucer) Weights() behaviorWeights {
	return s.weights
}

// BulletsFired returns how many of this saucer's shots are in flight.
func (s *Saucer) BulletsFired() int { return s.bulletsFired }

// wrapPosition wraps a point to the toroidal playfield.
func wrapPosition(p Vec2, width, height float64) Vec2 {
	if p.X < 0 {
		p.X = width
	} else if p.X > width {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = height
	} else if p.Y > height {
		p.Y = 0
	}
	return p
}
