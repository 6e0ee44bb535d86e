package game

import (
	"strings"
	"testing"
)

// spendRun drives one saucer against a parked, firing ship for seven seconds
// of wall time. Holding fire keeps dilation near one half, so the shot clocks
// actually advance; the saucer starts far off both the muzzle line and its
// wrap-around return, so nothing interrupts the spend.
func spendRun(p Personality) *TestSim {
	ts := NewTestSim(
		WithSize(1280, 720),
		WithSeed(1),
		WithNoWaves(),
		WithNoAsteroids(),
		WithShip(640, 360),
		WithSaucer(40, 160, p),
		WithAsteroid(100, 650, 1),
	)
	parkAsteroids(ts)
	ts.Input.FireHeld = true
	ts.RunTicks(420)
	return ts
}

func TestEffectiveness_DeadlySpendsItsBudgetFaster(t *testing.T) {
	deadly := spendRun(PersonalityDeadly)
	tactical := spendRun(PersonalityTactical)

	dumpSummary(t, deadly)
	dumpSummary(t, tactical)

	deadlyShots := deadly.World.Stats().SaucerShots
	tacticalShots := tactical.World.Stats().SaucerShots
	t.Logf("shots in 420 ticks: deadly=%d tactical=%d", deadlyShots, tacticalShots)

	// Identical geometry, identical clock: the 0.7s trigger beats the 1.0s
	// trigger.
	if deadlyShots <= tacticalShots {
		t.Errorf("deadly fired %d, tactical %d; the faster trigger should win",
			deadlyShots, tacticalShots)
	}
	if deadlyShots < 4 {
		t.Errorf("deadly managed only %d shots, want at least 4", deadlyShots)
	}
	if deadlyShots > 5 {
		t.Errorf("deadly fired %d shots past its level-1 budget of 5", deadlyShots)
	}
	if tacticalShots < 2 || tacticalShots > 3 {
		t.Errorf("tactical fired %d shots, want 2 or 3", tacticalShots)
	}

	// The approach never reaches contact range in this window.
	if alive := len(deadly.World.Saucers()); alive != 1 {
		t.Errorf("deadly run should end with its saucer alive, got %d", alive)
	}
	if alive := len(tactical.World.Saucers()); alive != 1 {
		t.Errorf("tactical run should end with its saucer alive, got %d", alive)
	}
}

func TestEffectiveness_ReporterSeesTheSpend(t *testing.T) {
	ts := spendRun(PersonalityDeadly)

	rpt := ts.Reporter.Latest()
	if rpt == nil {
		t.Fatal("reporter collected nothing over 420 ticks")
	}
	if rpt.SaucersAlive != 1 {
		t.Errorf("latest snapshot counts %d saucers, want 1", rpt.SaucersAlive)
	}
	if rpt.Personalities[PersonalityDeadly] != 1 {
		t.Errorf("latest snapshot lost the personality census: %v", rpt.Personalities)
	}

	wr := ts.Reporter.WindowSummary()
	if wr == nil {
		t.Fatal("no window summary after a full run")
	}
	if wr.SampleCount != 7 {
		t.Errorf("expected 7 one-second samples in 420 ticks, got %d", wr.SampleCount)
	}
	if wr.SaucerShots < 3 {
		t.Errorf("window shot delta %d, want at least 3", wr.SaucerShots)
	}
	if wr.PlayerShots < 10 {
		t.Errorf("a held trigger should land well over 10 shots in the window, got %d", wr.PlayerShots)
	}

	// The whole run is one committed chase at roughly half speed.
	if pct := wr.StatePct[StatePursue]; pct < 90 {
		t.Errorf("pursue share %.1f%%, want the chase to dominate", pct)
	}
	if pct := wr.PersonalityPct[PersonalityDeadly]; pct < 99 {
		t.Errorf("personality share %.1f%%, want a pure deadly window", pct)
	}
	if wr.AvgDilation < 0.45 || wr.AvgDilation > 0.55 {
		t.Errorf("firing hover should average near 0.5 dilation, got %.3f", wr.AvgDilation)
	}
	if wr.MinDilation < 0.40 {
		t.Errorf("dilation dipped to %.3f inside the window", wr.MinDilation)
	}

	text := wr.Format()
	for _, want := range []string{"Behaviour Report", "deadly", "pursue"} {
		if !strings.Contains(text, want) {
			t.Errorf("window format missing %q:\n%s", want, text)
		}
	}
	if latest := ts.Reporter.FormatLatest(); !strings.Contains(latest, "alive=1") {
		t.Errorf("latest format missing the live count:\n%s", latest)
	}
}
