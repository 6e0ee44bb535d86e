package game

import (
	"math"
	"math/rand"
)

// --- Asteroids ---

// Size runs 1..9, smallest to largest. Scale, spin, and drift speed all key
// off it: big rocks are slow and ponderous, fragments are quick.
const (
	asteroidMinSize    = 1
	asteroidMaxSize    = 9
	asteroidBaseRadius = 50.0 // radius at scale 1.0 before the hitbox trim
	asteroidHitboxTrim = 0.925
)

var asteroidScaleFactors = map[int]float64{
	9: 7.5, 8: 6.0, 7: 4.5, 6: 3.0, 5: 1.5, 4: 1.0, 3: 0.75, 2: 0.5, 1: 0.25,
}

var asteroidSpinFactors = map[int]float64{
	9: 0.1, 8: 0.2, 7: 0.3, 6: 0.4, 5: 0.5, 4: 0.6, 3: 0.7, 2: 0.8, 1: 0.9,
}

var asteroidSpeedFactors = map[int]float64{
	9: 0.1, 8: 0.3, 7: 0.5, 6: 0.7, 5: 0.9, 4: 1.0, 3: 1.5, 2: 2.0, 1: 2.5,
}

// Asteroid is one drifting rock. The outline points are generated once at
// spawn and rotated at draw time.
type Asteroid struct {
	size   int
	pos    Vec2
	vel    Vec2
	radius float64

	spin      float64 // radians/sec
	spinAngle float64

	points []Vec2 // irregular outline, centered on the origin

	active bool
}

// NewAsteroid spawns a rock of the given size with a random drift direction
// and spin drawn from the rng.
func NewAsteroid(x, y float64, size int, rng *rand.Rand) *Asteroid {
	if size < asteroidMinSize {
		size = asteroidMinSize
	} else if size > asteroidMaxSize {
		size = asteroidMaxSize
	}
	a := &Asteroid{
		size:   size,
		pos:    Vec2{x, y},
		radius: float64(int(asteroidBaseRadius * asteroidScaleFactors[size] * asteroidHitboxTrim)),
		active: true,
	}
	a.spin = (rng.Float64()*4 - 2) * asteroidSpinFactors[size]

	speed := (50 + rng.Float64()*100) * 0.75 * asteroidSpeedFactors[size]
	angle := rng.Float64() * 2 * math.Pi
	a.vel = fromAngle(angle).Scale(speed)

	a.points = makeAsteroidOutline(size, a.radius, rng)
	return a
}

// makeAsteroidOutline builds the irregular polygon, more vertices for
// bigger rocks.
func makeAsteroidOutline(size int, radius float64, rng *rand.Rand) []Vec2 {
	n := 8 + size*2
	points := make([]Vec2, n)
	for i := 0; i < n; i++ {
		angle := float64(i) / float64(n) * 2 * math.Pi
		variation := 0.6 + rng.Float64()*0.8
		points[i] = fromAngle(angle).Scale(radius * variation)
	}
	return points
}

// Update advances drift and spin by one tick of dilated time.
func (a *Asteroid) Update(dt, width, height float64) {
	if !a.active {
		return
	}
	a.pos = a.pos.Add(a.vel.Scale(dt))
	a.pos = wrapPosition(a.pos, width, height)
	a.spinAngle += a.spin * dt
}

// Split breaks the rock into fragments and deactivates it. Sizes above 2
// always yield two children one size down; size 2 shatters into two size-1
// slivers only a quarter of the time; size 1 just vanishes. Children
// inherit 130% of the parent speed fanned up to 60 degrees off its heading,
// plus 5% of the velocity of whatever smashed it.
func (a *Asteroid) Split(impact Vec2, rng *rand.Rand) []*Asteroid {
	a.active = false

	childSize := a.size - 1
	if a.size == 2 {
		if rng.Float64() >= 0.25 {
			return nil
		}
		childSize = 1
	} else if a.size <= 1 {
		return nil
	}

	children := make([]*Asteroid, 0, 2)
	for i := 0; i < 2; i++ {
		child := NewAsteroid(a.pos.X, a.pos.Y, childSize, rng)

		baseSpeed := a.vel.Mag() * 1.3
		offset := (rng.Float64()*2 - 1) * math.Pi / 3
		heading := a.vel.Heading() + offset
		speed := baseSpeed * (0.7 + rng.Float64()*0.6)

		child.vel = fromAngle(heading).Scale(speed).Add(impact.Scale(0.05))
		child.spin = (rng.Float64()*4 - 2) * asteroidSpinFactors[childSize]
		child.spinAngle = rng.Float64() * 2 * math.Pi
		children = append(children, child)
	}
	return children
}

// Active reports whether the rock is still in play.
func (a *Asteroid) Active() bool { return a.active }

// Size returns the size class, 1..9.
func (a *Asteroid) Size() int { return a.size }

// Pos returns the current position.
func (a *Asteroid) Pos() Vec2 { return a.pos }

// Vel returns the current velocity.
func (a *Asteroid) Vel() Vec2 { return a.vel }

// Radius returns the collision radius.
func (a *Asteroid) Radius() float64 { return a.radius }
