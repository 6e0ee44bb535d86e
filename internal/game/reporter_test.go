package game

import (
	"math"
	"strings"
	"testing"
)

// --- Construction ---

func TestNewSimReporter_WindowFallback(t *testing.T) {
	if r := NewSimReporter(0, false); r.windowTicks != reportWindowTicks {
		t.Fatalf("zero window = %d, want the default %d", r.windowTicks, reportWindowTicks)
	}
	if r := NewSimReporter(-5, false); r.windowTicks != reportWindowTicks {
		t.Fatalf("negative window = %d, want the default", r.windowTicks)
	}
	if r := NewSimReporter(120, false); r.windowTicks != 120 {
		t.Fatalf("window = %d, want 120", r.windowTicks)
	}
}

// --- Collecting ---

func TestReporter_CollectSnapshot(t *testing.T) {
	w := NewWorld(1280, 720, 3)
	s := NewSaucer(100, 100, PersonalityAggressive, w.rng)
	s.threat = 0.4
	s.opportunity = 0.2
	down := NewSaucer(900, 500, PersonalityDeadly, w.rng)
	down.Deactivate()
	w.saucers = append(w.saucers, s, down)

	r := NewSimReporter(600, false)
	r.Collect(w)

	rpt := r.Latest()
	if rpt == nil {
		t.Fatalf("no report after Collect")
	}
	if rpt.Tick != 0 || rpt.Level != 1 || rpt.Lives != 3 {
		t.Fatalf("report counters: %+v", rpt)
	}
	if rpt.SaucersAlive != 1 {
		t.Fatalf("SaucersAlive = %d, want 1 (downed saucer counted)", rpt.SaucersAlive)
	}
	if rpt.States[StatePatrol] != 1 || rpt.Personalities[PersonalityAggressive] != 1 {
		t.Fatalf("distributions: states=%v personalities=%v", rpt.States, rpt.Personalities)
	}
	if rpt.AvgThreat != 0.4 || rpt.AvgOpportunity != 0.2 {
		t.Fatalf("averages: threat=%v opp=%v", rpt.AvgThreat, rpt.AvgOpportunity)
	}

	mass := 0
	for _, a := range w.Asteroids() {
		mass += a.Size()
	}
	if rpt.Asteroids != 2 || rpt.AsteroidMass != mass {
		t.Fatalf("field census: rocks=%d mass=%d, want 2/%d", rpt.Asteroids, rpt.AsteroidMass, mass)
	}
	if rpt.ShipShields != shieldMaxHits || rpt.Dilation != 1.0 {
		t.Fatalf("ship block: shields=%d dilation=%v", rpt.ShipShields, rpt.Dilation)
	}
	if len(rpt.Saucers) != 0 {
		t.Fatalf("quiet reporter kept per-saucer detail: %d entries", len(rpt.Saucers))
	}
}

func TestReporter_VerboseKeepsSaucerDetail(t *testing.T) {
	w := NewWorld(1280, 720, 3)
	s := NewSaucer(100, 100, PersonalityTactical, w.rng)
	s.threat = 0.6
	w.saucers = append(w.saucers, s)

	r := NewSimReporter(600, true)
	r.Collect(w)

	rpt := r.Latest()
	if len(rpt.Saucers) != 1 {
		t.Fatalf("verbose reporter kept %d saucer entries, want 1", len(rpt.Saucers))
	}
	d := rpt.Saucers[0]
	if d.Label != "S0" || d.Personality != PersonalityTactical || d.Threat != 0.6 {
		t.Fatalf("saucer detail: %+v", d)
	}
	if d.X != s.Pos().X || d.Y != s.Pos().Y {
		t.Fatalf("saucer detail position: (%v,%v) vs %v", d.X, d.Y, s.Pos())
	}
}

func TestReporter_HistoryPruning(t *testing.T) {
	w := NewWorld(1280, 720, 3)
	r := NewSimReporter(600, false)

	for i := 0; i < 105; i++ {
		w.tick = i
		r.Collect(w)
	}

	if len(r.History()) != 100 {
		t.Fatalf("history holds %d reports, want 100 after pruning", len(r.History()))
	}
	if r.History()[0].Tick != 5 {
		t.Fatalf("oldest surviving report is T=%d, want 5", r.History()[0].Tick)
	}
}

// --- Empty cases ---

func TestReporter_EmptyStates(t *testing.T) {
	r := NewSimReporter(600, false)

	if r.Latest() != nil {
		t.Fatalf("empty reporter has a latest report")
	}
	if r.WindowSummary() != nil {
		t.Fatalf("empty reporter produced a window summary")
	}
	if got := r.FormatLatest(); got != "No data.\n" {
		t.Fatalf("empty FormatLatest = %q", got)
	}
	var wr *WindowReport
	if got := wr.Format(); got != "No data collected yet.\n" {
		t.Fatalf("nil WindowReport.Format = %q", got)
	}
}

// --- Window summaries ---

func TestReporter_WindowSummary(t *testing.T) {
	w := NewWorld(1280, 720, 3)
	w.asteroids = nil
	s := NewSaucer(100, 100, PersonalityAggressive, w.rng)
	s.threat = 0.5
	w.saucers = append(w.saucers, s)

	wide := NewSimReporter(600, false)
	narrow := NewSimReporter(150, false)

	collect := func() {
		wide.Collect(w)
		narrow.Collect(w)
	}

	collect() // T=0: score 0, patrol

	w.tick = 100
	w.score = 300
	w.stats.SaucerShots = 4
	s.state = StatePursue
	s.threat = 0.7
	collect() // T=100

	w.tick = 200
	w.score = 500
	w.stats.SaucerShots = 9
	w.stats.SaucersDestroyed = 1
	collect() // T=200

	wr := wide.WindowSummary()
	if wr == nil {
		t.Fatalf("no window summary")
	}
	if wr.FromTick != 0 || wr.ToTick != 200 || wr.SampleCount != 3 {
		t.Fatalf("window bounds: %+v", wr)
	}
	if wr.ScoreDelta != 500 || wr.SaucerShots != 9 || wr.SaucersDestroyed != 1 {
		t.Fatalf("window deltas: score=%d shots=%d downed=%d", wr.ScoreDelta, wr.SaucerShots, wr.SaucersDestroyed)
	}
	if wr.AvgSaucersAlive != 1.0 {
		t.Fatalf("AvgSaucersAlive = %v, want 1", wr.AvgSaucersAlive)
	}
	if math.Abs(wr.StatePct[StatePatrol]-100.0/3) > 0.1 || math.Abs(wr.StatePct[StatePursue]-200.0/3) > 0.1 {
		t.Fatalf("state percentages: %v", wr.StatePct)
	}
	if math.Abs(wr.AvgThreat-(0.5+0.7+0.7)/3) > 1e-9 {
		t.Fatalf("AvgThreat = %v", wr.AvgThreat)
	}
	if wr.MinDilation != 1.0 || wr.AvgDilation != 1.0 {
		t.Fatalf("dilation stats: avg=%v min=%v", wr.AvgDilation, wr.MinDilation)
	}

	nr := narrow.WindowSummary()
	if nr.SampleCount != 2 {
		t.Fatalf("narrow window kept %d samples, want 2", nr.SampleCount)
	}
	if nr.FromTick != 100 || nr.ScoreDelta != 200 || nr.SaucerShots != 5 {
		t.Fatalf("narrow window: from=%d score=%d shots=%d", nr.FromTick, nr.ScoreDelta, nr.SaucerShots)
	}
}

func TestWindowReport_Format(t *testing.T) {
	wr := &WindowReport{
		FromTick:    0,
		ToTick:      600,
		SampleCount: 11,
		StatePct: map[SaucerState]float64{
			StatePursue: 60,
			StatePatrol: 40,
		},
		PersonalityPct: map[Personality]float64{
			PersonalityAggressive: 100,
		},
		AvgThreat:   0.5,
		AvgDilation: 0.8,
		MinDilation: 0.3,
		ScoreDelta:  120,
	}

	out := wr.Format()
	for _, want := range []string{
		"=== Behaviour Report (T=0..600, 11 samples) ===",
		"pursue",
		"60.0%",
		"aggressive",
		"contested",
		"score delta=+120",
		"min=0.300",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestFormatLatest_Snapshot(t *testing.T) {
	w := NewWorld(1280, 720, 3)
	s := NewSaucer(100, 100, PersonalityAggressive, w.rng)
	w.saucers = append(w.saucers, s)

	r := NewSimReporter(600, false)
	r.Collect(w)

	out := r.FormatLatest()
	for _, want := range []string{
		"--- Snapshot T=0 ---",
		"alive=1",
		"score=0 level=1 lives=3",
		"patrol=1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("snapshot missing %q:\n%s", want, out)
		}
	}
}

// --- Pressure bands ---

func TestPressureLabel_Bands(t *testing.T) {
	cases := []struct {
		threat float64
		want   string
	}{
		{0.8, "under heavy fire"},
		{0.71, "under heavy fire"},
		{0.7, "contested"},
		{0.5, "contested"},
		{0.4, "skirmishing"},
		{0.2, "skirmishing"},
		{0.15, "quiet"},
		{0.0, "quiet"},
	}
	for _, tc := range cases {
		if got := pressureLabel(tc.threat); got != tc.want {
			t.Fatalf("pressureLabel(%v) = %q, want %q", tc.threat, got, tc.want)
		}
	}
}

// --- Standalone aggregates ---

func TestStateProportions(t *testing.T) {
	w := NewWorld(1280, 720, 3)
	a := NewSaucer(0, 0, PersonalityAggressive, w.rng)
	b := NewSaucer(0, 0, PersonalityAggressive, w.rng)
	c := NewSaucer(0, 0, PersonalityDefensive, w.rng)
	down := NewSaucer(0, 0, PersonalityDeadly, w.rng)
	a.state = StatePursue
	b.state = StatePursue
	c.state = StateFlee
	down.state = StatePursue
	down.Deactivate()

	props := StateProportions([]*Saucer{a, b, c, down})
	if math.Abs(props[StatePursue]-2.0/3) > 1e-9 {
		t.Fatalf("pursue proportion = %v, want 2/3", props[StatePursue])
	}
	if math.Abs(props[StateFlee]-1.0/3) > 1e-9 {
		t.Fatalf("flee proportion = %v, want 1/3", props[StateFlee])
	}

	if got := StateProportions(nil); len(got) != 0 {
		t.Fatalf("empty roster produced proportions: %v", got)
	}
}

func TestAverageSituation(t *testing.T) {
	w := NewWorld(1280, 720, 3)
	a := NewSaucer(0, 0, PersonalityAggressive, w.rng)
	b := NewSaucer(0, 0, PersonalityDefensive, w.rng)
	a.threat, a.opportunity = 0.2, 0.6
	b.threat, b.opportunity = 0.4, 0.2

	threat, opp := AverageSituation([]*Saucer{a, b})
	if math.Abs(threat-0.3) > 1e-9 || math.Abs(opp-0.4) > 1e-9 {
		t.Fatalf("averages = %v/%v, want 0.3/0.4", threat, opp)
	}

	threat, opp = AverageSituation(nil)
	if threat != 0 || opp != 0 {
		t.Fatalf("empty roster averaged %v/%v", threat, opp)
	}
}

// --- Harness cadence ---

func TestHarness_CollectsEverySecond(t *testing.T) {
	ts := NewTestSim(WithNoWaves(), WithNoAsteroids())

	ts.RunTicks(120)

	if len(ts.Reporter.History()) != 2 {
		t.Fatalf("reporter holds %d samples after 2s, want 2", len(ts.Reporter.History()))
	}
	if ts.Reporter.History()[0].Tick != reporterInterval {
		t.Fatalf("first sample at T=%d, want %d", ts.Reporter.History()[0].Tick, reporterInterval)
	}
}
