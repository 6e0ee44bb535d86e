package game

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// --- Parallax starfield ---

const (
	starCount          = 200
	starTrailThreshold = 4.2  // speed factor where trails start
	starTrailMax       = 30.0 // px at full factor, before depth scaling
)

type star struct {
	pos        Vec2
	depth      float64 // 0 far, 1 near; scales parallax, size, and trails
	size       float64
	base       float64 // resting brightness
	brightness float64 // smoothed display brightness
	phase      float64 // twinkle offset
}

// StarField is the scrolling backdrop. Stars drift against the ship's
// velocity with depth-scaled parallax; at high speed they brighten and
// stretch into trails. Purely cosmetic, so it keeps its own rng.
type StarField struct {
	width  float64
	height float64
	stars  []star

	vel    Vec2    // last ship velocity, sets the trail direction
	factor float64 // last speed factor
	t      float64
}

func NewStarField(width, height float64, rng *rand.Rand) *StarField {
	sf := &StarField{width: width, height: height, stars: make([]star, starCount)}
	for i := range sf.stars {
		// Squaring biases toward far stars so the field reads deep.
		depth := 0.1 + rng.Float64()*rng.Float64()*0.9
		base := 0.25 + rng.Float64()*0.75
		sf.stars[i] = star{
			pos:        Vec2{rng.Float64() * width, rng.Float64() * height},
			depth:      depth,
			size:       0.5 + depth*1.5,
			base:       base,
			brightness: base,
			phase:      rng.Float64() * 2 * math.Pi,
		}
	}
	return sf
}

// Update scrolls the field against the ship velocity. The speed factor
// multiplies the parallax a second time, so the backdrop accelerates
// super-linearly and sells the ship's top speed.
func (sf *StarField) Update(dt float64, shipVel Vec2) {
	sf.t += dt
	sf.vel = shipVel
	sf.factor = math.Min(shipVel.Mag()/100, 10)

	// Parallax constants are tuned per 60 Hz frame.
	step := dt * 60
	for i := range sf.stars {
		s := &sf.stars[i]
		s.pos.X -= shipVel.X * s.depth * 0.01 * sf.factor * step
		s.pos.Y -= shipVel.Y * s.depth * 0.01 * sf.factor * step
		s.pos = wrapPosition(s.pos, sf.width, sf.height)

		target := s.base * (0.75 + 0.25*math.Sin(sf.t*2+s.phase))
		if sf.factor > 1 {
			boost := math.Min((sf.factor-1)/9, 1)
			target = s.base + (1-s.base)*boost
		}
		s.brightness = s.brightness*0.8 + target*0.2
	}
}

func (sf *StarField) Draw(dst *ebiten.Image) {
	var trailDir Vec2
	trailLen := 0.0
	if sf.factor >= starTrailThreshold && sf.vel.MagSq() > 1e-9 {
		trailDir = sf.vel.Normalize()
		trailLen = (sf.factor - starTrailThreshold) / (10 - starTrailThreshold) * starTrailMax
	}

	for i := range sf.stars {
		s := &sf.stars[i]
		b := math.Min(s.brightness, 1)
		c := uint8(b * 255)
		col := color.RGBA{uint8(b * 235), uint8(b * 242), c, 255}

		if l := trailLen * s.depth; l > 1 {
			tip := s.pos.Add(trailDir.Scale(l))
			vector.StrokeLine(dst, float32(s.pos.X), float32(s.pos.Y), float32(tip.X), float32(tip.Y), float32(s.size*0.8), col, false)
			continue
		}
		vector.FillCircle(dst, float32(s.pos.X), float32(s.pos.Y), float32(s.size), col, false)
	}
}
