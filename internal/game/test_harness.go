package game

import (
	"fmt"
	"math"
)

const simTimeStep = 1.0 / 60.0

// TestSim is a headless simulation harness used exclusively by tests.
// It drives a World at a fixed time step with no Ebiten dependency and
// records structured events to a SimLog for assertions and reports.
type TestSim struct {
	World    *World
	SimLog   *SimLog
	Reporter *SimReporter

	// Input is applied on every tick. FireTapped is cleared after each
	// tick since a tap lasts one frame.
	Input InputState

	dt     float64
	labels map[*Saucer]string
	nextID int

	// construction staging
	width       int
	height      int
	seed        int64
	level       int
	verbose     bool
	noWaves     bool
	noAsteroids bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptConfig simOptionKind = iota // size, seed, level, flags; applied before the world exists
	simOptEntity                      // ship, saucer, rock, bullet placement; applied to the built world
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithSize sets the playfield dimensions.
func WithSize(w, h int) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.width = w
		ts.height = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithLevel starts the world at the given level. Combine with
// WithNoAsteroids when the level-one field would get in the way.
func WithLevel(level int) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.level = level
	}}
}

// WithTimeStep overrides the default 60 Hz step.
func WithTimeStep(dt float64) SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.dt = dt
	}}
}

// WithNoWaves disables the saucer wave scheduler so only hand-placed
// saucers exist.
func WithNoWaves() SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.noWaves = true
	}}
}

// WithNoAsteroids clears the level-spawned asteroid field.
func WithNoAsteroids() SimOption {
	return SimOption{simOptConfig, func(ts *TestSim) {
		ts.noAsteroids = true
	}}
}

// WithShip places the ship at (x,y), stationary and vulnerable.
func WithShip(x, y float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ship := ts.World.ship
		ship.pos = Vec2{X: x, Y: y}
		ship.vel = Vec2{}
		ship.invulnerable = false
		ship.invulnerableTime = 0
	}}
}

// WithShipVelocity sets the ship's velocity.
func WithShipVelocity(vx, vy float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.World.ship.vel = Vec2{X: vx, Y: vy}
	}}
}

// WithNoShip removes the player from the field, so saucers have no
// target to observe.
func WithNoShip() SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.World.ship.active = false
	}}
}

// WithSaucer places a saucer of the given personality at (x,y).
func WithSaucer(x, y float64, p Personality) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		s := NewSaucer(x, y, p, ts.World.rng)
		ts.World.saucers = append(ts.World.saucers, s)
	}}
}

// WithAsteroid places an asteroid of the given size at (x,y).
func WithAsteroid(x, y float64, size int) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		a := NewAsteroid(x, y, size, ts.World.rng)
		ts.World.asteroids = append(ts.World.asteroids, a)
	}}
}

// WithPlayerBullet places a live player bullet at (x,y) with velocity (vx,vy).
func WithPlayerBullet(x, y, vx, vy float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		vel := Vec2{X: vx, Y: vy}
		b := newBullet(Vec2{X: x, Y: y}, vel, vel.Heading(), false)
		ts.World.bullets = append(ts.World.bullets, b)
	}}
}

// WithSaucerBullet places a live saucer bullet at (x,y) with velocity (vx,vy).
func WithSaucerBullet(x, y, vx, vy float64) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		vel := Vec2{X: vx, Y: vy}
		b := newBullet(Vec2{X: x, Y: y}, vel, vel.Heading(), true)
		ts.World.saucerBullets = append(ts.World.saucerBullets, b)
	}}
}

// NewTestSim constructs a TestSim from the given options in ordered passes:
//  1. Configuration (size, seed, level, scheduler flags)
//  2. Build the World
//  3. Entities (ship placement, saucers, asteroids, bullets)
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		dt:     simTimeStep,
		width:  1280,
		height: 720,
		seed:   1,
		level:  1,
		labels: make(map[*Saucer]string),
	}
	for _, o := range opts {
		if o.kind == simOptConfig {
			o.fn(ts)
		}
	}

	ts.World = NewWorld(float64(ts.width), float64(ts.height), ts.seed)
	ts.SimLog = NewSimLog(ts.verbose)
	ts.Reporter = NewSimReporter(reportWindowTicks, ts.verbose)
	ts.World.level = ts.level
	if ts.noWaves {
		ts.World.waveTimer = math.Inf(1)
	}
	if ts.noAsteroids {
		ts.World.asteroids = ts.World.asteroids[:0]
	}

	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	ts.ensureLabels()
	return ts
}

// ensureLabels assigns stable "S0", "S1", ... labels to saucers in spawn
// order. Labels survive pruning so log lines keep referring to the same
// craft.
func (ts *TestSim) ensureLabels() {
	for _, s := range ts.World.saucers {
		if _, ok := ts.labels[s]; !ok {
			ts.labels[s] = fmt.Sprintf("S%d", ts.nextID)
			ts.nextID++
		}
	}
}

// Label returns the harness label for a saucer, or "--" if it was never
// seen.
func (ts *TestSim) Label(s *Saucer) string {
	if l, ok := ts.labels[s]; ok {
		return l
	}
	return "--"
}

// SaucerByLabel returns the live saucer with the given label, or nil.
func (ts *TestSim) SaucerByLabel(label string) *Saucer {
	for _, s := range ts.World.saucers {
		if ts.labels[s] == label {
			return s
		}
	}
	return nil
}

// CurrentTick returns the current simulation tick.
func (ts *TestSim) CurrentTick() int {
	return ts.World.Tick()
}

// RunTicks advances the simulation n ticks, logging events to SimLog.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.runOneTick()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if
// predicate returns true. Returns the tick at which the predicate was
// satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.runOneTick()
		if predicate(ts) {
			return ts.CurrentTick()
		}
	}
	return -1
}

// runOneTick steps the world once and diffs the result into the SimLog.
func (ts *TestSim) runOneTick() {
	w := ts.World

	// Snapshot previous per-saucer state for change detection.
	prevStates := make(map[*Saucer]SaucerState, len(w.saucers))
	for _, s := range w.saucers {
		prevStates[s] = s.State()
	}
	prevScore := w.score
	prevLevel := w.level
	prevLives := w.lives

	w.Update(ts.dt, ts.Input)
	ts.Input.FireTapped = false
	ts.ensureLabels()
	tick := w.Tick()

	// --- Post-tick logging ---

	for _, ev := range w.DrainEvents() {
		ts.logEvent(tick, ev)
	}

	for _, s := range w.saucers {
		prev, seen := prevStates[s]
		if seen && s.State() != prev {
			ts.SimLog.Add(tick, ts.Label(s), s.Personality().String(),
				"state", "transition",
				fmt.Sprintf("%s → %s", prev, s.State()), 0)
		}
		ts.SimLog.AddVerbose(tick, ts.Label(s), s.Personality().String(),
			"steer", "position",
			fmt.Sprintf("(%.1f,%.1f) spd=%.0f", s.Pos().X, s.Pos().Y, s.Vel().Mag()),
			s.Vel().Mag())
		ts.SimLog.AddVerbose(tick, ts.Label(s), s.Personality().String(),
			"steer", "situation",
			fmt.Sprintf("threat=%.2f opp=%.2f", s.Threat(), s.Opportunity()), 0)
	}

	if w.score != prevScore {
		ts.SimLog.Add(tick, "--", "--", "score", "gain",
			fmt.Sprintf("+%d → %d", w.score-prevScore, w.score), float64(w.score))
	}
	if w.level != prevLevel {
		ts.SimLog.Add(tick, "--", "--", "level", "advance",
			fmt.Sprintf("%d → %d", prevLevel, w.level), float64(w.level))
	}
	if w.lives != prevLives {
		ts.SimLog.Add(tick, "--", "--", "ship", "lives",
			fmt.Sprintf("%d → %d", prevLives, w.lives), float64(w.lives))
	}

	ts.SimLog.AddVerbose(tick, "--", "--", "dilation", "factor",
		fmt.Sprintf("%.3f", w.TimeDilation()), w.TimeDilation())

	if tick%reporterInterval == 0 {
		ts.Reporter.Collect(w)
	}
}

// logEvent translates a world event into a SimLog entry.
func (ts *TestSim) logEvent(tick int, ev Event) {
	pos := fmt.Sprintf("(%.0f,%.0f)", ev.Pos.X, ev.Pos.Y)
	switch ev.Kind {
	case EventPlayerFired:
		ts.SimLog.AddVerbose(tick, "--", "--", "combat", "player_fired", pos, 0)
	case EventSaucerFired:
		ts.SimLog.Add(tick, "--", ev.Personality.String(), "combat", "saucer_fired", pos, 0)
	case EventSaucerSpawned:
		ts.SimLog.Add(tick, "--", ev.Personality.String(), "wave", "spawn", pos, 0)
	case EventSaucerDestroyed:
		ts.SimLog.Add(tick, "--", ev.Personality.String(), "combat", "saucer_down", pos, 0)
	case EventAsteroidDestroyed:
		ts.SimLog.Add(tick, "--", "--", "combat", "rock_break",
			fmt.Sprintf("size=%d %s", ev.Size, pos), float64(ev.Size))
	case EventShieldHit:
		ts.SimLog.Add(tick, "--", "--", "shield", "hit",
			fmt.Sprintf("%d left", ts.World.ship.Shields()), float64(ts.World.ship.Shields()))
	case EventShipDestroyed:
		ts.SimLog.Add(tick, "--", "--", "ship", "destroyed", pos, 0)
	case EventLevelCleared:
		ts.SimLog.Add(tick, "--", "--", "level", "cleared",
			fmt.Sprintf("level %d", ts.World.level), float64(ts.World.level))
	case EventGameOver:
		ts.SimLog.Add(tick, "--", "--", "level", "game_over",
			fmt.Sprintf("score %d", ts.World.score), float64(ts.World.score))
	}
}

// SimSnapshot captures a lightweight state summary.
type SimSnapshot struct {
	Tick     int
	Level    int
	Score    int
	Lives    int
	Dilation float64
	Saucers  []SaucerSnapshot
}

// SaucerSnapshot is a lightweight copy of a saucer's state at a tick.
type SaucerSnapshot struct {
	Label       string
	Personality Personality
	State       SaucerState
	Pos         Vec2
	Vel         Vec2
	Threat      float64
	Opportunity float64
	Shots       int
}

// Snapshot returns the current state of all live saucers plus world
// counters.
func (ts *TestSim) Snapshot() SimSnapshot {
	w := ts.World
	snap := SimSnapshot{
		Tick:     w.Tick(),
		Level:    w.Level(),
		Score:    w.Score(),
		Lives:    w.Lives(),
		Dilation: w.TimeDilation(),
	}
	for _, s := range w.saucers {
		snap.Saucers = append(snap.Saucers, SaucerSnapshot{
			Label:       ts.Label(s),
			Personality: s.Personality(),
			State:       s.State(),
			Pos:         s.Pos(),
			Vel:         s.Vel(),
			Threat:      s.Threat(),
			Opportunity: s.Opportunity(),
			Shots:       s.BulletsFired(),
		})
	}
	return snap
}
