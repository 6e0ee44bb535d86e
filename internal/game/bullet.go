package game

// --- Projectiles ---

const (
	bulletMaxDistance = 1000.0 // px of travel before a shot burns out
	bulletBaseWidth   = 16
	bulletBaseHeight  = 8
)

// Bullet is a single shot in flight, fired by the ship or a saucer. Shots
// wrap like everything else and expire on total distance traveled rather
// than on a timer.
type Bullet struct {
	pos    Vec2
	vel    Vec2
	angle  float64 // render orientation, not always the velocity heading
	radius float64

	fromSaucer bool
	traveled   float64

	scale  float64 // velocity-based sprite scale
	width  int
	height int

	active bool
}

// bulletScale maps shot speed to sprite scale. Slow shots render small,
// fast shots large, with two linear bands meeting at the 400 px/s baseline.
func bulletScale(speed float64) float64 {
	switch {
	case speed <= 300:
		return 0.75
	case speed >= 500:
		return 1.5
	case speed <= 400:
		return 0.75 + (speed-300)/100*0.25
	default:
		return 1.0 + (speed-400)/100*0.5
	}
}

// newBullet spawns a shot. The angle is the render orientation; ship shots
// pass the hull angle since their velocity inherits the ship's drift.
func newBullet(pos, vel Vec2, angle float64, fromSaucer bool) *Bullet {
	b := &Bullet{
		pos:        pos,
		vel:        vel,
		angle:      angle,
		fromSaucer: fromSaucer,
		active:     true,
	}
	b.scale = bulletScale(vel.Mag())
	b.width = int(bulletBaseWidth * b.scale)
	b.height = int(bulletBaseHeight * b.scale)
	side := b.width
	if b.height < side {
		side = b.height
	}
	b.radius = float64(side / 2)
	if b.radius < 2 {
		b.radius = 2
	}
	return b
}

// Update advances the shot one tick. The distance check runs on the wrapped
// position, so a shot that crosses an edge spends most of its budget on the
// jump and dies soon after.
func (b *Bullet) Update(dt, width, height float64) {
	if !b.active {
		return
	}
	prev := b.pos
	b.pos = b.pos.Add(b.vel.Scale(dt))
	b.pos = wrapPosition(b.pos, width, height)
	b.traveled += b.pos.Dist(prev)
	if b.traveled >= bulletMaxDistance {
		b.active = false
	}
}

// Active reports whether the shot is still in flight.
func (b *Bullet) Active() bool { return b.active }

// Pos returns the current position.
func (b *Bullet) Pos() Vec2 { return b.pos }

// Vel returns the current velocity.
func (b *Bullet) Vel() Vec2 { return b.vel }

// Radius returns the collision radius.
func (b *Bullet) Radius() float64 { return b.radius }

// FromSaucer reports whether a saucer fired this shot.
func (b *Bullet) FromSaucer() bool { return b.fromSaucer }
