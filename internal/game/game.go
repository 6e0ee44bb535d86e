package game

import (
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/wrenware/staroids/internal/audio"
)

// --- Front end ---

const (
	ScreenWidth  = 1280
	ScreenHeight = 720

	frameTime = 1.0 / 60.0

	reporterInterval   = 60 // ticks between behaviour samples
	flashDuration      = 2.0
	scorePulseDuration = 0.35
)

// Game is the playable shell around a World: input, rendering, audio cues,
// and the periodic behaviour reporter. ebiten drives it at 60 ticks/sec and
// the simulation always steps a fixed frameTime, so a run is reproducible
// from its seed alone.
type Game struct {
	world    *World
	seed     int64
	sounds   *audio.SoundManager
	reporter *SimReporter
	stars    *StarField

	worldBuf *ebiten.Image
	hudBuf   *ebiten.Image

	input InputState

	// simSpeed is sim ticks per frame; 0 is paused. Fractions accumulate in
	// tickAccum so 0.5 runs every other frame.
	simSpeed  float64
	tickAccum float64

	prevKeys map[ebiten.Key]bool

	showHUD   bool
	debugMode bool
	selected  int // index into the live saucer slice, -1 = none

	flashMsg   string
	flashTimer float64

	scorePulse float64
	lastScore  int
}

// New builds a run from the given seed. Seed 0 picks a fresh one from the
// clock. The sound manager may be silent (uninitialized); cues then no-op.
func New(seed int64, sounds *audio.SoundManager) *Game {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		seed:     seed,
		sounds:   sounds,
		simSpeed: 1,
		showHUD:  true,
		selected: -1,
		prevKeys: map[ebiten.Key]bool{},
	}
	g.world = NewWorld(ScreenWidth, ScreenHeight, seed)
	g.reporter = NewSimReporter(reportWindowTicks, false)
	g.stars = NewStarField(ScreenWidth, ScreenHeight, rand.New(rand.NewSource(seed+77))) // #nosec G404 -- game only
	g.worldBuf = ebiten.NewImage(ScreenWidth, ScreenHeight)
	g.hudBuf = ebiten.NewImage(ScreenWidth, ScreenHeight)
	return g
}

// Seed returns the seed of the current run.
func (g *Game) Seed() int64 { return g.seed }

// World exposes the simulation, mainly for the debug overlay and tests.
func (g *Game) World() *World { return g.world }

func (g *Game) Update() error {
	// Input runs every frame regardless of sim speed so pause and restart
	// stay responsive.
	g.handleInput()

	if g.flashTimer > 0 {
		g.flashTimer -= frameTime
	}

	if g.simSpeed <= 0 {
		return nil
	}

	// For speeds > 1 run multiple sim ticks per frame; for speeds < 1
	// accumulate fractions.
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.simTick()
	}
	return nil
}

// simTick runs one fixed-step simulation tick and the per-tick feedback.
func (g *Game) simTick() {
	g.world.Update(frameTime, g.input)

	g.playEvents(g.world.DrainEvents())

	// The backdrop runs on dilated time so slow motion freezes the stars
	// along with everything else.
	var shipVel Vec2
	if ship := g.world.Ship(); ship != nil && ship.Active() {
		shipVel = ship.Vel()
	}
	g.stars.Update(frameTime*g.world.TimeDilation(), shipVel)

	if g.scorePulse > 0 {
		g.scorePulse -= frameTime
	}
	if score := g.world.Score(); score != g.lastScore {
		g.scorePulse = scorePulseDuration
		g.lastScore = score
	}

	if g.world.Tick()%reporterInterval == 0 {
		g.reporter.Collect(g.world)
	}
}

// playEvents maps the tick's world events to sound cues.
func (g *Game) playEvents(events []Event) {
	if g.sounds == nil {
		return
	}
	for _, ev := range events {
		switch ev.Kind {
		case EventPlayerFired:
			interval := rofStartInterval
			if ship := g.world.Ship(); ship != nil {
				interval = ship.shootInterval
			}
			g.sounds.PlayShipShot(interval)
		case EventSaucerFired:
			g.sounds.PlaySaucerShot()
		case EventSaucerDestroyed:
			g.sounds.PlaySaucerExplosion()
		case EventAsteroidDestroyed:
			g.sounds.PlayExplosion(ev.Size)
		case EventShieldHit:
			g.sounds.PlayShieldHit()
		case EventShipDestroyed:
			g.sounds.PlayShipExplosion()
		case EventLevelCleared:
			g.sounds.PlayLevelClear()
		}
	}
}

// restart begins a fresh run. The seed advances by one so consecutive runs
// differ while a fixed -seed start stays reproducible.
func (g *Game) restart() {
	g.seed++
	g.world = NewWorld(ScreenWidth, ScreenHeight, g.seed)
	g.reporter = NewSimReporter(reportWindowTicks, false)
	g.selected = -1
	g.lastScore = 0
	g.scorePulse = 0
	g.tickAccum = 0
	if g.simSpeed <= 0 {
		g.simSpeed = 1
	}
}

// selectedSaucer resolves the selection index, which can go stale as
// saucers die and the slice compacts.
func (g *Game) selectedSaucer() *Saucer {
	saucers := g.world.Saucers()
	if g.selected < 0 || g.selected >= len(saucers) {
		return nil
	}
	return saucers[g.selected]
}

// flash shows a short status line at the bottom of the screen.
func (g *Game) flash(msg string) {
	g.flashMsg = msg
	g.flashTimer = flashDuration
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorSpace)

	// World renders into its own buffer so the shake offset moves the whole
	// scene, stars included, in one blit.
	g.worldBuf.Clear()
	g.stars.Draw(g.worldBuf)
	g.drawWorld(g.worldBuf)

	var blit ebiten.DrawImageOptions
	sx, sy := g.world.ShakeOffset()
	blit.GeoM.Translate(sx, sy)
	screen.DrawImage(g.worldBuf, &blit)

	if g.showHUD {
		g.hudBuf.Clear()
		g.drawHUD(g.hudBuf)
		var hud ebiten.DrawImageOptions
		if g.world.Status() == StatusGameOver {
			hud.ColorScale.ScaleAlpha(0.4)
		}
		screen.DrawImage(g.hudBuf, &hud)
	}

	if g.debugMode {
		g.drawDebugOverlay(screen)
	}
	if g.world.Status() == StatusGameOver {
		g.drawGameOver(screen)
	}
	g.drawBanners(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
