package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// --- HUD ---

var hudFace = text.NewGoXFace(basicfont.Face7x13)

var (
	colorHUDText  = color.RGBA{210, 220, 235, 255}
	colorHUDDim   = color.RGBA{120, 130, 150, 255}
	colorHUDAlert = color.RGBA{255, 120, 90, 255}
)

// drawText renders one line of HUD text at the given scale. align applies
// along the line, so AlignCenter centers on x.
func drawText(dst *ebiten.Image, str string, x, y, scale float64, col color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	op.PrimaryAlign = align
	text.Draw(dst, str, hudFace, op)
}

func (g *Game) drawHUD(dst *ebiten.Image) {
	w := g.world

	// Score, pulsing briefly on every gain.
	scale := 2.0
	if g.scorePulse > 0 {
		scale += 0.7 * g.scorePulse / scorePulseDuration
	}
	drawText(dst, fmt.Sprintf("SCORE %d", w.Score()), 24, 14, scale, colorHUDText, text.AlignStart)

	drawText(dst, fmt.Sprintf("LEVEL %d", w.Level()), ScreenWidth/2, 14, 2, colorHUDText, text.AlignCenter)

	// Lives as hull icons, right-aligned.
	for i := 0; i < w.Lives(); i++ {
		center := Vec2{ScreenWidth - 36 - float64(i)*28, 28}
		drawShipIcon(dst, center, 9, colorHUDText)
	}

	count := len(w.Saucers())
	col := colorHUDDim
	if count >= 3 {
		col = colorHUDAlert
	}
	drawText(dst, fmt.Sprintf("UFO x%d", count), ScreenWidth-24, 46, 1, col, text.AlignEnd)

	g.drawShieldPips(dst)
	g.drawDilationBar(dst)
}

// drawShipIcon strokes a small upward hull triangle, for the lives row.
func drawShipIcon(dst *ebiten.Image, center Vec2, radius float64, col color.RGBA) {
	var pts [3]Vec2
	for i := 0; i < 3; i++ {
		a := -math.Pi/2 + float64(i)*2*math.Pi/3
		pts[i] = center.Add(fromAngle(a).Scale(radius))
	}
	strokeLoop(dst, pts[:], 1.5, col)
}

// drawShieldPips renders one pip per shield point, with the recharging point
// filling left to right on its slot.
func (g *Game) drawShieldPips(dst *ebiten.Image) {
	ship := g.world.Ship()
	if ship == nil || !ship.Active() {
		drawText(dst, "SHIP DOWN", 24, ScreenHeight-52, 1, colorHUDAlert, text.AlignStart)
		return
	}

	drawText(dst, "SHIELD", 24, ScreenHeight-58, 1, colorHUDDim, text.AlignStart)

	const pipW, pipH = 22.0, 10.0
	for i := 0; i < shieldMaxHits; i++ {
		x := float32(24 + float64(i)*(pipW+6))
		y := float32(ScreenHeight - 40)
		switch {
		case i < ship.Shields():
			vector.FillRect(dst, x, y, pipW, pipH, color.RGBA{90, 170, 255, 230}, false)
		case i == ship.Shields():
			frac := ship.shieldRecharge / shieldRechargeDuration
			vector.FillRect(dst, x, y, float32(pipW*frac), pipH, color.RGBA{90, 170, 255, 120}, false)
			vector.StrokeRect(dst, x, y, pipW, pipH, 1, colorHUDDim, false)
		default:
			vector.StrokeRect(dst, x, y, pipW, pipH, 1, colorHUDDim, false)
		}
	}
}

// drawDilationBar renders the time factor as a bottom-center bar, dim blue
// in deep slow motion and white at full speed.
func (g *Game) drawDilationBar(dst *ebiten.Image) {
	const barW, barH = 220.0, 10.0
	x := float32(ScreenWidth/2 - barW/2)
	y := float32(ScreenHeight - 40)
	d := g.world.TimeDilation()

	fill := color.RGBA{
		uint8(80 + 150*d),
		uint8(110 + 130*d),
		255,
		220,
	}
	vector.FillRect(dst, x, y, float32(barW*d), barH, fill, false)
	vector.StrokeRect(dst, x, y, barW, barH, 1, colorHUDDim, false)
	drawText(dst, "TIME", ScreenWidth/2-barW/2-44, ScreenHeight-42, 1, colorHUDDim, text.AlignStart)
	drawText(dst, fmt.Sprintf("x%.2f", d), ScreenWidth/2+barW/2+8, ScreenHeight-42, 1, colorHUDDim, text.AlignStart)
}

// drawBanners renders transient status text: pause, sim speed, flash lines.
func (g *Game) drawBanners(screen *ebiten.Image) {
	if g.simSpeed <= 0 {
		drawText(screen, "PAUSED", ScreenWidth/2, ScreenHeight*0.45, 3, colorHUDText, text.AlignCenter)
		drawText(screen, "P to resume", ScreenWidth/2, ScreenHeight*0.45+48, 1, colorHUDDim, text.AlignCenter)
	} else if g.simSpeed != 1 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("sim speed: %gx", g.simSpeed), 8, 8)
	}

	if g.flashTimer > 0 && g.flashMsg != "" {
		drawText(screen, g.flashMsg, 24, ScreenHeight-76, 1, colorHUDText, text.AlignStart)
	}
}

func (g *Game) drawGameOver(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, ScreenWidth, ScreenHeight, color.RGBA{0, 0, 0, 140}, false)

	w := g.world
	cy := ScreenHeight * 0.35
	drawText(screen, "GAME OVER", ScreenWidth/2, cy, 5, color.RGBA{255, 90, 70, 255}, text.AlignCenter)
	drawText(screen, fmt.Sprintf("FINAL SCORE %d", w.Score()), ScreenWidth/2, cy+90, 2, colorHUDText, text.AlignCenter)
	drawText(screen, fmt.Sprintf("LEVEL REACHED %d", w.Level()), ScreenWidth/2, cy+126, 1, colorHUDDim, text.AlignCenter)

	if int(w.gameOverTimer*2)%2 == 0 {
		drawText(screen, "PRESS R TO RESTART", ScreenWidth/2, cy+180, 1.5, colorHUDText, text.AlignCenter)
	}
}

// drawDebugOverlay labels every saucer with its personality, state, and
// situation scores, and prints a world status line. Toggled with F1.
func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	w := g.world
	stats := w.Stats()
	status := fmt.Sprintf("T=%06d dil=%.2f saucers=%d rocks=%d shots=%d/%d spawned=%d killed=%d",
		w.Tick(), w.TimeDilation(), len(w.Saucers()), len(w.Asteroids()),
		len(w.Bullets()), len(w.SaucerBullets()), stats.SaucersSpawned, stats.SaucersDestroyed)
	ebitenutil.DebugPrintAt(screen, status, 8, ScreenHeight-16)

	for i, s := range w.Saucers() {
		pos := s.Pos()
		prefix := " "
		if i == g.selected {
			prefix = ">"
			vector.StrokeCircle(screen, float32(pos.X), float32(pos.Y), float32(s.radius+10), 1, colorHUDText, true)
		}
		label := fmt.Sprintf("%sS%d %s/%s\n t=%.2f o=%.2f sh=%d",
			prefix, i, s.Personality(), s.State(), s.Threat(), s.Opportunity(), s.BulletsFired())
		ebitenutil.DebugPrintAt(screen, label, int(pos.X)-40, int(pos.Y)+40)
	}

	if ship := w.Ship(); ship != nil && ship.Active() {
		pos := ship.Pos()
		label := fmt.Sprintf("spd=%.0f rof=%.3f", ship.Speed(), ship.shootInterval)
		ebitenutil.DebugPrintAt(screen, label, int(pos.X)+24, int(pos.Y)-34)
	}
}
