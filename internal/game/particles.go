package game

import (
	"image/color"
	"math"
	"math/rand"
)

// --- Explosion particles ---

// Particle is one glowing fleck of an explosion. It fades linearly over its
// lifetime and is pruned when the clock runs out.
type Particle struct {
	pos      Vec2
	vel      Vec2
	col      color.RGBA
	lifetime float64
	maxLife  float64
	size     float64
	active   bool
}

func (p *Particle) update(dt float64) {
	if !p.active {
		return
	}
	p.pos = p.pos.Add(p.vel.Scale(dt))
	p.lifetime -= dt
	if p.lifetime <= 0 {
		p.lifetime = 0
		p.active = false
	}
}

// Alpha returns the fade fraction, 1 at spawn down to 0 at expiry.
func (p *Particle) Alpha() float64 {
	if p.maxLife <= 0 {
		return 0
	}
	return p.lifetime / p.maxLife
}

// Pos returns the particle position.
func (p *Particle) Pos() Vec2 { return p.pos }

// Color returns the particle color.
func (p *Particle) Color() color.RGBA { return p.col }

// Size returns the render radius.
func (p *Particle) Size() float64 { return p.size }

// ExplosionSystem owns every live particle and the spawn recipes for each
// kind of blast.
type ExplosionSystem struct {
	particles []*Particle
	rng       *rand.Rand
}

// NewExplosionSystem creates an empty particle pool drawing randomness from
// the given rng.
func NewExplosionSystem(rng *rand.Rand) *ExplosionSystem {
	return &ExplosionSystem{rng: rng}
}

// jitterChannel shifts one color channel by up to +-50, clamped.
func jitterChannel(rng *rand.Rand, c uint8) uint8 {
	lo := int(c) - 50
	if lo < 0 {
		lo = 0
	}
	hi := int(c) + 50
	if hi > 255 {
		hi = 255
	}
	return uint8(lo + rng.Intn(hi-lo+1))
}

func (es *ExplosionSystem) jitterColor(base color.RGBA) color.RGBA {
	return color.RGBA{
		R: jitterChannel(es.rng, base.R),
		G: jitterChannel(es.rng, base.G),
		B: jitterChannel(es.rng, base.B),
		A: 255,
	}
}

func (es *ExplosionSystem) spawn(pos, vel Vec2, col color.RGBA, lifetime, size float64) {
	es.particles = append(es.particles, &Particle{
		pos: pos, vel: vel, col: col,
		lifetime: lifetime, maxLife: lifetime,
		size: size, active: true,
	})
}

// AddExplosion spawns a modest burst, used for shield impacts.
func (es *ExplosionSystem) AddExplosion(x, y float64, n int, base color.RGBA) {
	for i := 0; i < n; i++ {
		angle := es.rng.Float64() * 2 * math.Pi
		speed := (25 + es.rng.Float64()*75) * (0.5 + es.rng.Float64())
		lifetime := (0.5 + es.rng.Float64()) * (0.8 + es.rng.Float64()*0.4)
		size := 1.0 + es.rng.Float64()*0.5
		es.spawn(Vec2{x, y}, fromAngle(angle).Scale(speed), es.jitterColor(base), lifetime, size)
	}
}

// AddSaucerExplosion spawns a hot, fast burst for a destroyed saucer.
func (es *ExplosionSystem) AddSaucerExplosion(x, y float64, n int, base color.RGBA) {
	for i := 0; i < n; i++ {
		angle := es.rng.Float64() * 2 * math.Pi
		speed := (50 + es.rng.Float64()*250) * (0.5 + es.rng.Float64())
		lifetime := (0.5 + es.rng.Float64()) * (0.8 + es.rng.Float64()*0.4)
		size := 1.0 + es.rng.Float64()*0.5
		es.spawn(Vec2{x, y}, fromAngle(angle).Scale(speed), es.jitterColor(base), lifetime, size)
	}
}

// AddAsteroidExplosion spawns debris scaled to the rock that died. Big
// rocks throw larger, faster, longer-lived flecks, and the two largest
// sizes scatter the spawn points across the rock's face.
func (es *ExplosionSystem) AddAsteroidExplosion(x, y float64, n, size int, base color.RGBA) {
	baseSpeed := asteroidParticleLerp(size, 50, 100, 150)
	sizeBase := asteroidParticleLerp(size, 1.0, 2.0, 4.0)
	for i := 0; i < n; i++ {
		spawn := Vec2{x, y}
		if size >= 8 {
			spread := float64(size) * 2
			sa := es.rng.Float64() * 2 * math.Pi
			spawn = spawn.Add(fromAngle(sa).Scale(es.rng.Float64() * spread))
		}
		angle := es.rng.Float64() * 2 * math.Pi
		speed := baseSpeed * (0.5 + es.rng.Float64())
		lifetime := float64(size) * 0.2 * (0.75 + es.rng.Float64()*0.25)
		psize := sizeBase * (0.75 + es.rng.Float64()*0.25)
		es.spawn(spawn, fromAngle(angle).Scale(speed), es.jitterColor(base), lifetime, psize)
	}
}

// asteroidParticleLerp interpolates a per-size particle parameter through
// anchor values at sizes 1, 5, and 9.
func asteroidParticleLerp(size int, at1, at5, at9 float64) float64 {
	switch {
	case size <= 1:
		return at1
	case size == 5:
		return at5
	case size >= 9:
		return at9
	case size < 5:
		return at1 + float64(size-1)/4*(at5-at1)
	default:
		return at5 + float64(size-5)/4*(at9-at5)
	}
}

// AddShipExplosion spawns the player-death burst: mostly bright yellow with
// a scatter of white, slower but much longer-lived than the rest.
func (es *ExplosionSystem) AddShipExplosion(x, y float64, n int) {
	for i := 0; i < n; i++ {
		angle := es.rng.Float64() * 2 * math.Pi
		speed := 75 + es.rng.Float64()*225

		var col color.RGBA
		if es.rng.Float64() < 0.8 {
			b := 0.7 + es.rng.Float64()*0.3
			col = color.RGBA{uint8(255 * b), uint8(255 * b), uint8(50 * b), 255}
		} else {
			b := 0.6 + es.rng.Float64()*0.4
			col = color.RGBA{uint8(255 * b), uint8(255 * b), uint8(255 * b), 255}
		}

		lifetime := 1.2 + es.rng.Float64()*1.3
		size := 1.25 + es.rng.Float64()*2.25
		es.spawn(Vec2{x, y}, fromAngle(angle).Scale(speed), col, lifetime, size)
	}
}

// Update ages every particle by one tick of dilated time and prunes the
// dead ones in place.
func (es *ExplosionSystem) Update(dt float64) {
	kept := es.particles[:0]
	for _, p := range es.particles {
		p.update(dt)
		if p.active {
			kept = append(kept, p)
		}
	}
	es.particles = kept
}

// Particles returns the live particle slice for rendering.
func (es *ExplosionSystem) Particles() []*Particle {
	return es.particles
}

// Count returns the number of live particles.
func (es *ExplosionSystem) Count() int {
	return len(es.particles)
}
