package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Input ---

// handleInput samples the held movement keys into g.input and processes the
// edge-triggered toggles. Edge detection compares against last frame's key
// map, the same way for every toggle.
func (g *Game) handleInput() {
	g.input = InputState{
		RotateLeft:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		RotateRight: ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Thrust:      ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Reverse:     ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		StrafeLeft:  ebiten.IsKeyPressed(ebiten.KeyA),
		StrafeRight: ebiten.IsKeyPressed(ebiten.KeyD),
		FireHeld:    ebiten.IsKeyPressed(ebiten.KeySpace),
	}

	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	// R: restart, any time.
	if pressed(ebiten.KeyR) {
		g.restart()
	}

	// P: pause/resume.
	if pressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}

	// ,/.: step sim speed down/up.
	speeds := []float64{0, 0.5, 1, 2, 4}
	if pressed(ebiten.KeyComma) {
		for i, s := range speeds {
			if s >= g.simSpeed && i > 0 {
				g.simSpeed = speeds[i-1]
				break
			}
		}
	}
	if pressed(ebiten.KeyPeriod) {
		for i, s := range speeds {
			if s <= g.simSpeed && i < len(speeds)-1 && speeds[i+1] > g.simSpeed {
				g.simSpeed = speeds[i+1]
				break
			}
		}
	}

	// F1: debug overlay. H: HUD.
	if pressed(ebiten.KeyF1) {
		g.debugMode = !g.debugMode
	}
	if pressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}

	// Tab: cycle the selected saucer, wrapping through "none".
	if pressed(ebiten.KeyTab) {
		g.selected++
		if g.selected >= len(g.world.Saucers()) {
			g.selected = -1
		}
	}

	// F2: copy the selected saucer's debug report to the clipboard.
	if pressed(ebiten.KeyF2) {
		g.copySaucerReport()
	}

	// F3: copy the behaviour window report to the clipboard.
	if pressed(ebiten.KeyF3) {
		g.copyBehaviourReport()
	}

	g.prevKeys = currentKeys
}

func (g *Game) copySaucerReport() {
	sel := g.selectedSaucer()
	if sel == nil {
		g.flash("no saucer selected (Tab to select)")
		return
	}
	report := g.saucerDebugReport(sel, fmt.Sprintf("S%d", g.selected), 0)
	if err := setClipboardText(report); err != nil {
		g.flash("clipboard: " + err.Error())
		return
	}
	g.flash(fmt.Sprintf("saucer S%d report copied", g.selected))
}

func (g *Game) copyBehaviourReport() {
	report := g.reporter.WindowSummary().Format()
	if err := setClipboardText(report); err != nil {
		g.flash("clipboard: " + err.Error())
		return
	}
	g.flash("behaviour report copied")
}
