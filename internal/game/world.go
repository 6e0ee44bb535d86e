package game

import (
	"math"
	"math/rand"
)

// --- World ---

const (
	continuousFireCap = 40 // live player shots allowed while holding fire
	tapFireCap        = 20 // live player shots allowed for tap firing
	muzzleOffset      = 25 // px ahead of the ship a shot spawns
	playerBulletSpeed = 400.0

	startingLives = 3
	maxLives      = 3
)

// GameStatus is the coarse run state of a world.
type GameStatus int

const (
	StatusPlaying GameStatus = iota
	StatusGameOver
)

func (s GameStatus) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// InputState carries one tick of player intent into the world. The front
// end fills it from the keyboard; the test harness scripts it directly.
type InputState struct {
	RotateLeft  bool
	RotateRight bool
	Thrust      bool
	Reverse     bool
	StrafeLeft  bool
	StrafeRight bool
	FireHeld    bool
	FireTapped  bool
}

// World is the whole simulation: ship, saucers, rocks, shots, particles,
// waves, score. It knows nothing about rendering or audio; the front end
// wraps it and the headless harness drives it directly.
type World struct {
	width  float64
	height float64
	rng    *rand.Rand

	ship          *Ship
	saucers       []*Saucer
	bullets       []*Bullet // player shots
	saucerBullets []*Bullet
	asteroids     []*Asteroid
	explosions    *ExplosionSystem

	level  int
	score  int
	lives  int
	status GameStatus

	dilation      float64
	gameOverTimer float64

	// Saucer wave bookkeeping.
	waveTimer       float64 // countdown to the wave announcing itself
	toSpawn         int
	spawnQueue      []Personality // fixed order for the first level
	spawnCorner     Vec2
	massSpawn       bool
	spawnDelay      float64
	levelClearPause float64

	// Screen shake.
	shakeIntensity float64
	shakeTimer     float64
	shakeX, shakeY float64

	events []Event
	stats  WorldStats

	tick int
}

// NewWorld builds a fresh level-1 world. The seed drives every random
// decision the simulation makes, so equal seeds replay identically.
func NewWorld(width, height float64, seed int64) *World {
	w := &World{
		width:     width,
		height:    height,
		rng:       rand.New(rand.NewSource(seed)), // #nosec G404 -- game only
		level:     1,
		lives:     startingLives,
		status:    StatusPlaying,
		dilation:  1.0,
		waveTimer: saucerWaveDelay,
	}
	w.explosions = NewExplosionSystem(w.rng)
	w.initShip()
	w.spawnLevelAsteroids()
	return w
}

func (w *World) initShip() {
	w.ship = NewShip(w.width/2, w.height/2)
	w.ship.MakeInvulnerable(3.0)
}

// Update advances the world one frame. dt is wall-clock seconds; the world
// derives its own dilated time from the ship's movement. Controls run on
// wall-clock time so the ship stays responsive inside slow motion.
func (w *World) Update(dt float64, in InputState) {
	w.tick++

	if w.status != StatusPlaying {
		w.gameOverTimer += dt
		if w.gameOverTimer >= 3.0 {
			w.shakeIntensity = 0
			w.shakeTimer = 0
			w.shakeX, w.shakeY = 0, 0
		}
		return
	}

	w.applyInput(dt, in)

	firing := in.FireHeld || (w.ship != nil && w.ship.shootTimer > 0)
	w.updateDilation(dt, firing)
	w.updateShake(dt)

	dilated := dt * w.dilation

	if w.ship != nil {
		w.ship.Update(dilated, w.width, w.height)
	}
	w.explosions.Update(dilated)

	w.updateBullets(dilated)
	w.updateAsteroids(dilated)
	w.updateSaucers(dilated)
	w.updateSaucerBullets(dilated)
	w.updateWaves(dilated)
	w.checkLevelClear(dt)

	w.checkCollisions()
	w.updateSpeedShake()
}

// applyInput runs the control handlers on undilated time and fires shots.
func (w *World) applyInput(dt float64, in InputState) {
	if w.ship == nil || !w.ship.Active() {
		return
	}
	if in.RotateLeft {
		w.ship.RotateLeft(dt)
	} else if in.RotateRight {
		w.ship.RotateRight(dt)
	}
	if in.StrafeLeft {
		w.ship.StrafeLeft(dt)
	} else if in.StrafeRight {
		w.ship.StrafeRight(dt)
	}
	if in.Thrust {
		w.ship.Thrust(dt)
	} else if in.Reverse {
		w.ship.ReverseThrust(dt)
	} else {
		w.ship.StopThrust()
	}
	if in.FireTapped {
		w.fireOnce()
	}
	if in.FireHeld {
		w.fireContinuous()
	}
}

// spawnPlayerBullet builds a shot at the muzzle with the ship's drift
// folded into the muzzle velocity.
func (w *World) spawnPlayerBullet() {
	ship := w.ship
	speed := playerBulletSpeed * ship.fireSpeedMultiplier()
	vel := fromAngle(ship.angle).Scale(speed).Add(ship.vel)
	pos := ship.pos.Add(fromAngle(ship.angle).Scale(muzzleOffset))
	w.bullets = append(w.bullets, newBullet(pos, vel, ship.angle, false))
	w.emit(Event{Kind: EventPlayerFired, Pos: pos})

	intensity, duration := rofShake(ship.shootInterval)
	if intensity > 0 {
		w.triggerShake(intensity, duration, 1.0)
	}
}

// fireOnce is the tap-fire path: no cadence gate, tighter shot cap.
func (w *World) fireOnce() {
	if len(w.bullets) >= tapFireCap {
		return
	}
	w.spawnPlayerBullet()
}

// fireContinuous is the held-trigger path, gated by the rate-of-fire timer.
func (w *World) fireContinuous() {
	if w.ship.shootTimer > 0 || len(w.bullets) >= continuousFireCap {
		return
	}
	w.spawnPlayerBullet()
	w.ship.shootTimer = w.ship.shootInterval
}

// rofShake maps the current fire interval to recoil shake. Slow fire is
// steady; the quadratic ramp only kicks in near the peak rate.
func rofShake(interval float64) (intensity, duration float64) {
	switch {
	case interval >= rofStartInterval:
		return 0, 0
	case interval <= rofPeakInterval:
		return 0.63, 0.1
	default:
		progress := (interval - rofPeakInterval) / (rofStartInterval - rofPeakInterval)
		q := progress * progress
		return 0.63 - q*0.63, 0.1 - q*0.1
	}
}

func (w *World) updateBullets(dt float64) {
	kept := w.bullets[:0]
	for _, b := range w.bullets {
		b.Update(dt, w.width, w.height)
		if b.Active() {
			kept = append(kept, b)
		}
	}
	w.bullets = kept
}

func (w *World) updateSaucerBullets(dt float64) {
	kept := w.saucerBullets[:0]
	for _, b := range w.saucerBullets {
		b.Update(dt, w.width, w.height)
		if b.Active() {
			kept = append(kept, b)
		}
	}
	w.saucerBullets = kept
}

func (w *World) updateAsteroids(dt float64) {
	kept := w.asteroids[:0]
	for _, a := range w.asteroids {
		a.Update(dt, w.width, w.height)
		if a.Active() {
			kept = append(kept, a)
		}
	}
	w.asteroids = kept
}

// updateSaucers runs each saucer's full pipeline and handles fire requests.
// The per-level shot cap is reapplied every tick so a level change takes
// effect on live saucers immediately.
func (w *World) updateSaucers(dt float64) {
	bulletCap := 5 + (w.level/2)*5

	var bullets, asteroids []Vec2
	if len(w.saucers) > 0 {
		bullets = make([]Vec2, len(w.bullets))
		for i, b := range w.bullets {
			bullets[i] = b.Pos()
		}
		asteroids = make([]Vec2, len(w.asteroids))
		for i, a := range w.asteroids {
			asteroids[i] = a.Pos()
		}
	}

	for _, s := range w.saucers {
		view := w.viewFor(s, bullets, asteroids)
		s.SetBulletCap(bulletCap)

		wantsFire := s.Update(dt, view)
		if wantsFire && view.HasPlayer {
			angle := s.AimAngle(view, w.rng)
			vel := fromAngle(angle).Scale(saucerBulletSpeed)
			w.saucerBullets = append(w.saucerBullets, newBullet(s.Pos(), vel, angle, true))
			s.RecordShot()
			w.emit(Event{Kind: EventSaucerFired, Pos: s.Pos(), Personality: s.Personality()})
		}
		s.recordTrace(w.tick, view)
	}

	// Compaction waits until every saucer has updated, so the flock views
	// built above never range over a half-rewritten slice.
	kept := w.saucers[:0]
	for _, s := range w.saucers {
		if s.Active() {
			kept = append(kept, s)
		} else {
			s.Deactivate()
		}
	}
	w.saucers = kept
}

// viewFor assembles one saucer's snapshot of the world. The shared bullet
// and asteroid slices are built once per tick; only the flock differs per
// saucer.
func (w *World) viewFor(s *Saucer, bullets, asteroids []Vec2) *WorldView {
	view := &WorldView{
		Width:        w.width,
		Height:       w.height,
		Bullets:      bullets,
		Asteroids:    asteroids,
		TimeDilation: w.dilation,
	}
	if w.ship != nil && w.ship.Active() {
		view.HasPlayer = true
		view.PlayerPos = w.ship.Pos()
		view.PlayerVel = w.ship.Vel()
	}
	for _, other := range w.saucers {
		if other != s && other.Active() {
			view.Others = append(view.Others, other.Pos())
		}
	}
	return view
}

// updateSpeedShake adds a continuous rumble above half of reference speed,
// ramping quadratically to intensity 7 at full speed.
func (w *World) updateSpeedShake() {
	if w.ship == nil || !w.ship.Active() {
		return
	}
	pct := math.Min(w.ship.Speed()/shipReferenceSpeed*100, 100)
	if pct < 50 {
		return
	}
	normalized := (pct - 50) / 50
	intensity := normalized * normalized * 7.0
	w.triggerShake(intensity, 0.1, 1.0)
}

// destroyShip handles the ship losing its last shield: explosion, a life
// gone, and either a respawn or the end of the run.
func (w *World) destroyShip() {
	w.explosions.AddShipExplosion(w.ship.pos.X, w.ship.pos.Y, 150)
	w.emit(Event{Kind: EventShipDestroyed, Pos: w.ship.pos})
	w.ship.active = false
	w.lives--
	if w.lives <= 0 {
		w.status = StatusGameOver
		w.gameOverTimer = 0
		w.emit(Event{Kind: EventGameOver})
		return
	}
	w.triggerShake(7, 0.6, 1.0)
	w.initShip()
}

func (w *World) addScore(points int) {
	w.score += points
}

// --- Accessors ---

// Ship returns the player ship, which may be nil between runs.
func (w *World) Ship() *Ship { return w.ship }

// Saucers returns the live saucer slice.
func (w *World) Saucers() []*Saucer { return w.saucers }

// Bullets returns the live player shots.
func (w *World) Bullets() []*Bullet { return w.bullets }

// SaucerBullets returns the live saucer shots.
func (w *World) SaucerBullets() []*Bullet { return w.saucerBullets }

// Asteroids returns the live rocks.
func (w *World) Asteroids() []*Asteroid { return w.asteroids }

// Explosions returns the particle system.
func (w *World) Explosions() *ExplosionSystem { return w.explosions }

// Level returns the current level, starting at 1.
func (w *World) Level() int { return w.level }

// Score returns the accumulated score.
func (w *World) Score() int { return w.score }

// Lives returns the remaining lives.
func (w *World) Lives() int { return w.lives }

// Status returns the coarse run state.
func (w *World) Status() GameStatus { return w.status }

// TimeDilation returns the current time factor in [0.01, 1].
func (w *World) TimeDilation() float64 { return w.dilation }

// Size returns the playfield dimensions.
func (w *World) Size() (float64, float64) { return w.width, w.height }

// Tick returns the number of Update calls so far.
func (w *World) Tick() int { return w.tick }

// Stats returns the lifetime tallies for the run.
func (w *World) Stats() WorldStats { return w.stats }
