package game

import "image/color"

// --- Collisions ---

// Explosion palettes.
var (
	asteroidBurstRed    = color.RGBA{255, 50, 50, 255}
	asteroidBurstOrange = color.RGBA{255, 150, 0, 255}
	asteroidBurstYellow = color.RGBA{255, 255, 100, 255}
	saucerBurstBlue     = color.RGBA{0, 150, 255, 255}
	saucerBurstWhite    = color.RGBA{255, 255, 255, 255}
	shieldImpactBlue    = color.RGBA{0, 100, 255, 255}
)

// wrappedPositions returns every position an object effectively occupies on
// the torus: its real spot plus ghost copies across whichever edges its
// radius overlaps.
func wrappedPositions(p Vec2, radius, width, height float64) []Vec2 {
	positions := []Vec2{p}

	if p.X < radius {
		positions = append(positions, Vec2{p.X + width, p.Y})
	} else if p.X > width-radius {
		positions = append(positions, Vec2{p.X - width, p.Y})
	}
	if p.Y < radius {
		positions = append(positions, Vec2{p.X, p.Y + height})
	} else if p.Y > height-radius {
		positions = append(positions, Vec2{p.X, p.Y - height})
	}

	switch {
	case p.X < radius && p.Y < radius:
		positions = append(positions, Vec2{p.X + width, p.Y + height})
	case p.X > width-radius && p.Y < radius:
		positions = append(positions, Vec2{p.X - width, p.Y + height})
	case p.X < radius && p.Y > height-radius:
		positions = append(positions, Vec2{p.X + width, p.Y - height})
	case p.X > width-radius && p.Y > height-radius:
		positions = append(positions, Vec2{p.X - width, p.Y - height})
	}
	return positions
}

// wrappedHit is a circle test across all ghost-position pairs, so objects
// straddling opposite edges still collide.
func (w *World) wrappedHit(p1, p2 Vec2, r1, r2 float64) bool {
	for _, a := range wrappedPositions(p1, r1, w.width, w.height) {
		for _, b := range wrappedPositions(p2, r2, w.width, w.height) {
			if a.Dist(b) < r1+r2 {
				return true
			}
		}
	}
	return false
}

// asteroidShake returns the camera kick for a rock of the given size dying.
// Only the five biggest sizes register.
func asteroidShake(size int) (intensity, duration float64) {
	switch size {
	case 9:
		return 12, 0.75
	case 8:
		return 10, 0.5
	case 7:
		return 8, 0.4
	case 6:
		return 6, 0.30
	case 5:
		return 5, 0.20
	default:
		return 0, 0
	}
}

// explodeAsteroid handles a rock being smashed by an impact: shake,
// debris, score, the split, and the event. The impactor's velocity bleeds
// into the fragments.
func (w *World) explodeAsteroid(a *Asteroid, impact Vec2) {
	if intensity, duration := asteroidShake(a.size); intensity > 0 {
		w.triggerShake(intensity, duration, 1.0)
	}

	total := (20 + 2*a.size*20) / 2
	w.explosions.AddAsteroidExplosion(a.pos.X, a.pos.Y, int(float64(total)*0.40), a.size, asteroidBurstRed)
	w.explosions.AddAsteroidExplosion(a.pos.X, a.pos.Y, int(float64(total)*0.35), a.size, asteroidBurstOrange)
	w.explosions.AddAsteroidExplosion(a.pos.X, a.pos.Y, int(float64(total)*0.25), a.size, asteroidBurstYellow)

	w.addScore(a.size * 100)
	w.emit(Event{Kind: EventAsteroidDestroyed, Pos: a.pos, Size: a.size})

	w.asteroids = append(w.asteroids, a.Split(impact, w.rng)...)
}

// explodeSaucer handles a saucer dying to player fire or a shielded ram.
func (w *World) explodeSaucer(s *Saucer, n int, base color.RGBA) {
	w.explosions.AddSaucerExplosion(s.pos.X, s.pos.Y, n, base)
	w.emit(Event{Kind: EventSaucerDestroyed, Pos: s.pos, Personality: s.personality})
	s.Deactivate()
}

// shieldAbsorb spends a shield point and kicks the camera harder the
// closer the shield is to collapse. The kick runs on dilated time so slow
// motion stretches it.
func (w *World) shieldAbsorb() {
	w.ship.AbsorbHit()
	w.emit(Event{Kind: EventShieldHit, Pos: w.ship.pos})
	switch w.ship.Shields() {
	case 2:
		w.triggerShake(1, 0.2, w.dilation)
	case 1:
		w.triggerShake(3, 0.4, w.dilation)
	case 0:
		w.triggerShake(5, 0.6, w.dilation)
	}
}

// checkCollisions runs every pairwise pass in a fixed order. Each pass
// skips already-dead objects, so one frame's earlier kills are respected by
// later passes within the same frame.
func (w *World) checkCollisions() {
	w.collideBulletsAsteroids()
	w.collideBulletsSaucers()
	w.collideShipAsteroids()
	w.collideSaucersAsteroids()
	w.collideShipSaucers()
	w.collideShipSaucerBullets()
	w.collideSaucerBulletsAsteroids()
}

func (w *World) collideBulletsAsteroids() {
	for _, b := range w.bullets {
		if !b.active {
			continue
		}
		for _, a := range w.asteroids {
			if !a.active {
				continue
			}
			if w.wrappedHit(b.pos, a.pos, b.radius, a.radius) {
				b.active = false
				w.explodeAsteroid(a, b.vel)
				break
			}
		}
	}
}

func (w *World) collideBulletsSaucers() {
	for _, b := range w.bullets {
		if !b.active {
			continue
		}
		for _, s := range w.saucers {
			if !s.active {
				continue
			}
			if w.wrappedHit(b.pos, s.pos, b.radius, s.radius) {
				b.active = false
				w.triggerShake(8, 0.5, 1.0)
				// 90 particles total, electric blue with a white scatter.
				w.explosions.AddSaucerExplosion(s.pos.X, s.pos.Y, 81, saucerBurstBlue)
				w.explodeSaucer(s, 9, saucerBurstWhite)
				w.addScore(200)
				break
			}
		}
	}
}

func (w *World) collideShipAsteroids() {
	if w.ship == nil || !w.ship.Active() || w.ship.Invulnerable() {
		return
	}
	for _, a := range w.asteroids {
		if !a.active {
			continue
		}
		if !w.wrappedHit(w.ship.pos, a.pos, w.ship.radius, a.radius) {
			continue
		}
		if w.ship.Shields() > 0 {
			w.shieldAbsorb()
			// A shielded ram vaporizes the rock outright, no fragments.
			a.active = false
			w.explosions.AddExplosion(a.pos.X, a.pos.Y, 20+a.size*5, shieldImpactBlue)
			w.addScore(a.size * 50)
			w.emit(Event{Kind: EventAsteroidDestroyed, Pos: a.pos, Size: a.size})
		} else {
			a.active = false
			w.destroyShip()
		}
		break
	}
}

func (w *World) collideSaucersAsteroids() {
	for _, s := range w.saucers {
		if !s.active {
			continue
		}
		for _, a := range w.asteroids {
			if !a.active {
				continue
			}
			if w.wrappedHit(s.pos, a.pos, s.radius, a.radius) {
				// The saucer plows through; only the rock breaks.
				w.explodeAsteroid(a, s.vel)
				break
			}
		}
	}
}

func (w *World) collideShipSaucers() {
	if w.ship == nil || !w.ship.Active() || w.ship.Invulnerable() {
		return
	}
	for _, s := range w.saucers {
		if !s.active {
			continue
		}
		if !w.wrappedHit(w.ship.pos, s.pos, w.ship.radius, s.radius) {
			continue
		}
		if w.ship.Shields() > 0 {
			w.shieldAbsorb()
			w.explodeSaucer(s, 45, shieldImpactBlue)
			w.addScore(100)
		} else {
			s.Deactivate()
			w.destroyShip()
		}
		break
	}
}

func (w *World) collideShipSaucerBullets() {
	if w.ship == nil || !w.ship.Active() || w.ship.Invulnerable() {
		return
	}
	for _, b := range w.saucerBullets {
		if !b.active {
			continue
		}
		if !w.wrappedHit(w.ship.pos, b.pos, w.ship.radius, b.radius) {
			continue
		}
		b.active = false
		if w.ship.Shields() > 0 {
			w.shieldAbsorb()
			w.explosions.AddExplosion(w.ship.pos.X, w.ship.pos.Y, 25, shieldImpactBlue)
		} else {
			w.destroyShip()
		}
		break
	}
}

// collideSaucerBulletsAsteroids blocks every saucer shot that meets a rock;
// one in ten shots breaks the rock as well.
func (w *World) collideSaucerBulletsAsteroids() {
	for _, b := range w.saucerBullets {
		if !b.active {
			continue
		}
		for _, a := range w.asteroids {
			if !a.active {
				continue
			}
			if w.wrappedHit(b.pos, a.pos, b.radius, a.radius) {
				b.active = false
				if w.rng.Float64() < 0.1 {
					w.explodeAsteroid(a, b.vel)
				}
				break
			}
		}
	}
}
