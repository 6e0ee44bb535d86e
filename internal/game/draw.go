package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// --- World rendering ---

var (
	colorSpace      = color.RGBA{8, 10, 20, 255}
	colorShip       = color.RGBA{235, 235, 245, 255}
	colorShipInvuln = color.RGBA{90, 160, 255, 255}
	colorFlameOuter = color.RGBA{255, 140, 30, 255}
	colorFlameInner = color.RGBA{255, 230, 120, 255}
	colorShieldRing = color.RGBA{90, 170, 255, 120}
	colorShieldHurt = color.RGBA{255, 80, 80, 220}
	colorShieldArc  = color.RGBA{90, 170, 255, 200}
	colorAsteroid   = color.RGBA{170, 160, 150, 255}
	colorPlayerShot = color.RGBA{255, 240, 160, 255}
	colorPlayerCore = color.RGBA{255, 255, 255, 255}
	colorSaucerShot = color.RGBA{255, 90, 70, 255}
	colorSaucerHull = color.RGBA{190, 200, 215, 255}
)

// personalityColor is the accent used for a saucer's dome and lights.
func personalityColor(p Personality) color.RGBA {
	switch p {
	case PersonalityAggressive:
		return color.RGBA{255, 90, 70, 255}
	case PersonalityDefensive:
		return color.RGBA{80, 160, 255, 255}
	case PersonalityTactical:
		return color.RGBA{190, 110, 255, 255}
	case PersonalitySwarm:
		return color.RGBA{255, 180, 60, 255}
	case PersonalityDeadly:
		return color.RGBA{255, 30, 30, 255}
	default:
		return color.RGBA{200, 200, 200, 255}
	}
}

// drawWorld renders the simulation into the world buffer in world
// coordinates. Bodies near an edge render again at their ghost positions so
// big rocks do not pop when they cross.
func (g *Game) drawWorld(dst *ebiten.Image) {
	w := g.world
	width, height := w.Size()

	for _, a := range w.Asteroids() {
		for _, pos := range wrappedPositions(a.Pos(), a.Radius(), width, height) {
			drawAsteroidSprite(dst, a, pos)
		}
	}

	for _, b := range w.SaucerBullets() {
		drawBulletSprite(dst, b, colorSaucerShot, colorSaucerShot)
	}
	for _, b := range w.Bullets() {
		drawBulletSprite(dst, b, colorPlayerShot, colorPlayerCore)
	}

	for _, s := range w.Saucers() {
		for _, pos := range wrappedPositions(s.Pos(), s.radius, width, height) {
			drawSaucerSprite(dst, s, pos)
		}
	}

	if ship := w.Ship(); ship != nil && ship.Active() {
		// The margin covers the outermost shield ring.
		for _, pos := range wrappedPositions(ship.Pos(), ship.radius+35, width, height) {
			g.drawShip(dst, ship, pos)
		}
	}

	drawParticles(dst, w.Explosions().Particles())
}

// drawShip renders the hull triangle, thrust flame, shield rings, and the
// recharge arc at the given center (real or ghost position).
func (g *Game) drawShip(dst *ebiten.Image, ship *Ship, center Vec2) {
	hull := colorShip
	if ship.Invulnerable() && int(ship.invulnerableTime*20)%2 == 0 {
		hull = colorShipInvuln
	}

	// Equilateral hull, nose on the facing.
	var pts [3]Vec2
	for i := 0; i < 3; i++ {
		a := ship.angle + float64(i)*2*math.Pi/3
		pts[i] = center.Add(fromAngle(a).Scale(ship.radius))
	}
	strokeLoop(dst, pts[:], 2, hull)

	if ship.Thrusting() {
		g.drawFlame(dst, ship, center)
	}

	g.drawShields(dst, ship, center)
}

// drawFlame renders the exhaust triangle behind the hull, longer at speed
// with a tick-driven flicker.
func (g *Game) drawFlame(dst *ebiten.Image, ship *Ship, center Vec2) {
	speedFrac := math.Min(ship.Speed()/shipReferenceSpeed, 1)
	flick := 0.15 * math.Sin(float64(g.world.Tick())*0.9)
	length := ship.radius * (0.9 + 1.3*speedFrac + flick)

	rear := ship.angle + math.Pi
	tip := center.Add(fromAngle(rear).Scale(length))
	baseL := center.Add(fromAngle(ship.angle + 2.5).Scale(ship.radius * 0.6))
	baseR := center.Add(fromAngle(ship.angle - 2.5).Scale(ship.radius * 0.6))

	vector.StrokeLine(dst, float32(baseL.X), float32(baseL.Y), float32(tip.X), float32(tip.Y), 2, colorFlameOuter, true)
	vector.StrokeLine(dst, float32(baseR.X), float32(baseR.Y), float32(tip.X), float32(tip.Y), 2, colorFlameOuter, true)

	inner := center.Add(fromAngle(rear).Scale(length * 0.55))
	vector.StrokeLine(dst, float32(center.X), float32(center.Y), float32(inner.X), float32(inner.Y), 2, colorFlameInner, true)
}

// drawShields renders one ring per remaining shield point plus the recharge
// arc for the point under repair. Rings flash red right after a hit and
// brighten during the full-recharge pulse.
func (g *Game) drawShields(dst *ebiten.Image, ship *Ship, center Vec2) {
	for i := 0; i < ship.Shields(); i++ {
		r := float32(ship.radius + 15 + float64(i)*5)
		col := colorShieldRing
		if ship.shieldDamageTimer > 0 {
			col = colorShieldHurt
			col.A = uint8(80 + 175*ship.shieldDamageTimer/shieldDamageVisual)
		} else if ship.shieldPulseTimer > 0 {
			col.A = uint8(120 + 135*ship.shieldPulseTimer/shieldPulseVisual)
		}
		vector.StrokeCircle(dst, float32(center.X), float32(center.Y), r, 1.5, col, true)
	}

	if ship.Shields() < shieldMaxHits {
		frac := ship.shieldRecharge / shieldRechargeDuration
		r := ship.radius + 15 + float64(ship.Shields())*5
		drawArc(dst, center, r, -math.Pi/2, frac*2*math.Pi, 1.5, colorShieldArc)
	}
}

// drawSaucerSprite renders the hull ellipse, rim, dome, and running lights.
func drawSaucerSprite(dst *ebiten.Image, s *Saucer, center Vec2) {
	rx := s.radius
	ry := s.radius * 0.38
	accent := personalityColor(s.Personality())

	strokeEllipse(dst, center, rx, ry, 2, colorSaucerHull)
	vector.StrokeLine(dst, float32(center.X-rx), float32(center.Y), float32(center.X+rx), float32(center.Y), 1, colorSaucerHull, true)

	dome := accent
	dome.A = 200
	vector.StrokeCircle(dst, float32(center.X), float32(center.Y-ry*0.9), float32(s.radius*0.42), 1.5, dome, true)

	// Three lights along the underside, blinking out of phase.
	for i := 0; i < 3; i++ {
		x := center.X + (float64(i)-1)*rx*0.55
		if int(s.stateTimer*3)%2 == i%2 {
			vector.FillCircle(dst, float32(x), float32(center.Y+ry*0.5), 2.5, accent, true)
		}
	}
}

// drawAsteroidSprite renders the stored outline rotated by the current spin.
func drawAsteroidSprite(dst *ebiten.Image, a *Asteroid, center Vec2) {
	pts := make([]Vec2, len(a.points))
	for i, p := range a.points {
		pts[i] = center.Add(p.Rotate(a.spinAngle))
	}
	strokeLoop(dst, pts, 1.5, colorAsteroid)
}

// drawBulletSprite renders a shot as a streak along its render angle with a
// brighter core.
func drawBulletSprite(dst *ebiten.Image, b *Bullet, glow, core color.RGBA) {
	dir := fromAngle(b.angle)
	half := float64(b.width) / 2
	tail := b.pos.Sub(dir.Scale(half))
	head := b.pos.Add(dir.Scale(half))

	outer := glow
	outer.A = 160
	vector.StrokeLine(dst, float32(tail.X), float32(tail.Y), float32(head.X), float32(head.Y), float32(b.height)*0.6, outer, true)
	vector.StrokeLine(dst, float32(tail.X), float32(tail.Y), float32(head.X), float32(head.Y), float32(b.height)*0.25, core, true)
}

func drawParticles(dst *ebiten.Image, particles []*Particle) {
	for _, p := range particles {
		a := p.Alpha()
		if a <= 0 {
			continue
		}
		col := p.Color()
		col.R = uint8(float64(col.R) * a)
		col.G = uint8(float64(col.G) * a)
		col.B = uint8(float64(col.B) * a)
		col.A = uint8(255 * a)
		pos := p.Pos()
		vector.FillCircle(dst, float32(pos.X), float32(pos.Y), float32(p.Size()), col, false)
	}
}

// --- Primitive helpers ---

// strokeLoop draws a closed polyline through the points.
func strokeLoop(dst *ebiten.Image, pts []Vec2, width float32, col color.RGBA) {
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, col, true)
	}
}

// strokeEllipse approximates an axis-aligned ellipse with 24 segments.
func strokeEllipse(dst *ebiten.Image, center Vec2, rx, ry float64, width float32, col color.RGBA) {
	const steps = 24
	prev := Vec2{center.X + rx, center.Y}
	for i := 1; i <= steps; i++ {
		a := float64(i) / steps * 2 * math.Pi
		p := Vec2{center.X + math.Cos(a)*rx, center.Y + math.Sin(a)*ry}
		vector.StrokeLine(dst, float32(prev.X), float32(prev.Y), float32(p.X), float32(p.Y), width, col, true)
		prev = p
	}
}

// drawArc strokes a circular arc starting at `start` radians and sweeping
// clockwise by `sweep`.
func drawArc(dst *ebiten.Image, center Vec2, r, start, sweep float64, width float32, col color.RGBA) {
	if sweep <= 0 {
		return
	}
	steps := int(math.Ceil(sweep / 0.15))
	if steps < 1 {
		steps = 1
	}
	prev := center.Add(fromAngle(start).Scale(r))
	for i := 1; i <= steps; i++ {
		a := start + sweep*float64(i)/float64(steps)
		p := center.Add(fromAngle(a).Scale(r))
		vector.StrokeLine(dst, float32(prev.X), float32(prev.Y), float32(p.X), float32(p.Y), width, col, true)
		prev = p
	}
}
