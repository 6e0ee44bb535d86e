package game

import (
	"math"
	"math/rand"
	"strings"
	"testing"
)

// --- Snapshot formatting ---

func TestSaucerDebugSnapshot_CompactString(t *testing.T) {
	s := SaucerDebugSnapshot{
		Tick:        42,
		State:       StatePursue,
		Threat:      0.5,
		Opportunity: 0.25,
		Speed:       120,
		PlayerDist:  300,
		Shots:       2,
		Dilation:    1.0,
	}
	want := "[T=0042] S0 st=pursue       thr=0.50 opp=0.25 spd=120.0 dist= 300.0 shots=2 td=1.00"
	if got := s.CompactString("S0"); got != want {
		t.Fatalf("CompactString:\n got %q\nwant %q", got, want)
	}
}

// --- Trace ring ---

func TestRecordTrace_RingCap(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewSaucer(100, 100, PersonalityAggressive, rng)
	view := &WorldView{Width: 1280, Height: 720, TimeDilation: 1.0}

	for i := 0; i < saucerTraceCap+50; i++ {
		s.recordTrace(i, view)
	}

	if len(s.trace) != saucerTraceCap {
		t.Fatalf("ring holds %d snapshots, want %d", len(s.trace), saucerTraceCap)
	}
	if s.trace[0].Tick != 50 {
		t.Fatalf("oldest surviving tick = %d, want 50", s.trace[0].Tick)
	}
	if s.trace[0].PlayerDist != -1 {
		t.Fatalf("no-player snapshot dist = %v, want -1", s.trace[0].PlayerDist)
	}
}

func TestRecordTrace_PlayerDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewSaucer(100, 100, PersonalityAggressive, rng)
	view := &WorldView{
		Width: 1280, Height: 720, TimeDilation: 0.8,
		HasPlayer: true, PlayerPos: Vec2{103, 104},
	}

	s.recordTrace(7, view)

	snap := s.trace[0]
	if snap.PlayerDist != 5 {
		t.Fatalf("dist = %v, want 5", snap.PlayerDist)
	}
	if snap.X != 100 || snap.Y != 100 || snap.Tick != 7 || snap.Dilation != 0.8 {
		t.Fatalf("snapshot fields: %+v", snap)
	}
}

func TestDebugSnapshots_RangeInclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := NewSaucer(0, 0, PersonalityAggressive, rng)
	view := &WorldView{Width: 1280, Height: 720, TimeDilation: 1.0}
	for i := 0; i < 10; i++ {
		s.recordTrace(i, view)
	}

	got := s.debugSnapshots(3, 6)
	if len(got) != 4 {
		t.Fatalf("range [3,6] returned %d snapshots, want 4", len(got))
	}
	if got[0].Tick != 3 || got[3].Tick != 6 {
		t.Fatalf("range bounds: first=%d last=%d", got[0].Tick, got[3].Tick)
	}
}

// --- Trace summary ---

func TestSummarizeSnapshots(t *testing.T) {
	snaps := []SaucerDebugSnapshot{
		{Tick: 0, X: 0, State: StatePatrol, Threat: 0.1, Opportunity: 0.0, Speed: 100, Shots: 0, PlayerDist: 400},
		{Tick: 1, X: 2, State: StatePatrol, Threat: 0.2, Opportunity: 0.2, Speed: 120, Shots: 0, PlayerDist: 300},
		{Tick: 2, X: 2.5, State: StatePursue, Threat: 0.6, Opportunity: 0.4, Speed: 150, Shots: 1, PlayerDist: 200},
		{Tick: 3, X: 5, State: StatePursue, Threat: 0.4, Opportunity: 0.4, Speed: 150, Shots: 2, PlayerDist: -1},
	}

	sum := summarizeSnapshots(snaps)

	if sum.stateTicks[StatePatrol] != 2 || sum.stateTicks[StatePursue] != 2 {
		t.Fatalf("state ticks: %v", sum.stateTicks)
	}
	if sum.movedTicks != 2 {
		t.Fatalf("movedTicks = %d, want 2 (half-pixel drift ignored)", sum.movedTicks)
	}
	if sum.maxStateRun != 2 {
		t.Fatalf("maxStateRun = %d, want 2", sum.maxStateRun)
	}
	if sum.shotsFired != 2 {
		t.Fatalf("shotsFired = %d, want 2", sum.shotsFired)
	}
	if sum.minThreat != 0.1 || sum.maxThreat != 0.6 {
		t.Fatalf("threat range: %v..%v", sum.minThreat, sum.maxThreat)
	}
	if math.Abs(sum.avgThreat-0.325) > 1e-9 {
		t.Fatalf("avgThreat = %v, want 0.325", sum.avgThreat)
	}
	if sum.avgSpeed != 130 || sum.maxSpeed != 150 {
		t.Fatalf("speed stats: avg=%v max=%v", sum.avgSpeed, sum.maxSpeed)
	}
	if sum.minDist != 200 || sum.maxDist != 400 || sum.avgDist != 300 {
		t.Fatalf("dist stats ignore the no-player tick: %v/%v/%v",
			sum.minDist, sum.avgDist, sum.maxDist)
	}
}

func TestSummarizeSnapshots_ShotResetGuard(t *testing.T) {
	snaps := []SaucerDebugSnapshot{
		{Tick: 0, Shots: 5, PlayerDist: -1},
		{Tick: 1, Shots: 2, PlayerDist: -1},
	}
	sum := summarizeSnapshots(snaps)
	if sum.shotsFired != 2 {
		t.Fatalf("reset window counted %d shots, want 2", sum.shotsFired)
	}
	if sum.minDist != 0 || sum.avgDist != 0 {
		t.Fatalf("all-blind window dist stats: %v/%v", sum.minDist, sum.avgDist)
	}
}

func TestSummarizeSnapshots_Empty(t *testing.T) {
	sum := summarizeSnapshots(nil)
	if sum.stateTicks == nil || len(sum.stateTicks) != 0 {
		t.Fatalf("empty summary: %+v", sum)
	}
}

// --- Story events ---

func TestStoryEvents(t *testing.T) {
	snaps := []SaucerDebugSnapshot{
		{Tick: 0, State: StatePatrol, Threat: 0.1, Dilation: 1.0},
		{Tick: 1, State: StatePursue, Threat: 0.15, Opportunity: 0.3, Dilation: 1.0},
		{Tick: 2, State: StatePursue, Threat: 0.5, Shots: 1, PlayerDist: 250, Dilation: 1.0},
		{Tick: 3, State: StatePursue, Threat: 0.5, Shots: 1, Dilation: 0.4},
	}

	got := storyEvents(snaps)
	want := []string{
		"T=1 state patrol -> pursue (thr=0.15 opp=0.30)",
		"T=2 fired (total 1, dist=250)",
		"T=2 threat spike 0.15 -> 0.50",
		"T=3 time slowed to 0.40",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d:\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStoryEvents_Capped(t *testing.T) {
	var snaps []SaucerDebugSnapshot
	for i := 0; i < 30; i++ {
		st := StatePatrol
		if i%2 == 1 {
			st = StatePursue
		}
		snaps = append(snaps, SaucerDebugSnapshot{Tick: i, State: st, PlayerDist: -1})
	}

	got := storyEvents(snaps)
	if len(got) != 25 {
		t.Fatalf("capped list holds %d entries, want 24 + overflow line", len(got))
	}
	if got[24] != "... (5 more events)" {
		t.Fatalf("overflow line = %q", got[24])
	}
}

// --- Stages ---

func TestBuildStages_GroupsByBand(t *testing.T) {
	snaps := []SaucerDebugSnapshot{
		{Tick: 0, X: 0, State: StatePatrol, Threat: 0.05, PlayerDist: 100},
		{Tick: 1, X: 3, State: StatePatrol, Threat: 0.1, PlayerDist: 110},
		{Tick: 2, X: 4, State: StatePursue, Threat: 0.1, PlayerDist: 110},
	}

	stages := buildStages(snaps)
	if len(stages) != 2 {
		t.Fatalf("built %d stages, want 2", len(stages))
	}
	first := stages[0]
	if first.startTick != 0 || first.endTick != 1 || first.count != 2 {
		t.Fatalf("first stage bounds: %+v", first)
	}
	if !first.onlyPatrol {
		t.Fatalf("pure-patrol stage not tagged")
	}
	if first.movedDistance != 3 {
		t.Fatalf("stage moved %v, want 3", first.movedDistance)
	}
	if stages[1].onlyPatrol {
		t.Fatalf("pursue stage tagged as patrol")
	}
}

func TestBuildStages_DistanceBandSplits(t *testing.T) {
	snaps := []SaucerDebugSnapshot{
		{Tick: 0, State: StatePatrol, PlayerDist: 100},
		{Tick: 1, State: StatePatrol, PlayerDist: 450},
	}
	if stages := buildStages(snaps); len(stages) != 2 {
		t.Fatalf("distance jump built %d stages, want 2", len(stages))
	}
	if buildStages(nil) != nil {
		t.Fatalf("empty trace built stages")
	}
}

// --- Full report ---

func TestSaucerDebugReport(t *testing.T) {
	w := NewWorld(1280, 720, 7)
	g := &Game{world: w, seed: 7}
	s := NewSaucer(300, 300, PersonalityDeadly, w.rng)
	w.saucers = append(w.saucers, s)

	view := &WorldView{
		Width: 1280, Height: 720, TimeDilation: 1.0,
		HasPlayer: true, PlayerPos: Vec2{640, 360},
	}
	for i := 1; i <= 10; i++ {
		s.recordTrace(i, view)
	}
	w.tick = 10

	report := g.saucerDebugReport(s, "S0", 120)
	for _, want := range []string{
		"--- Staroids saucer report ---",
		"seed=7 tick_range=[0..10] ticks=11",
		"selected=S0 personality=deadly state=patrol",
		"== SELECTED (S0) ==",
		"patrol=10",
		"stages:",
		"[PATROL-RUN]",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}

	if got := g.saucerDebugReport(s, "S0", 0); got != report {
		t.Fatalf("zero window did not default to 120 ticks")
	}

	if g.saucerDebugReport(nil, "S0", 120) != "" {
		t.Fatalf("nil saucer produced a report")
	}

	blind := NewSaucer(0, 0, PersonalityAggressive, w.rng)
	if got := g.saucerDebugReport(blind, "S1", 120); !strings.Contains(got, "(no snapshots recorded yet)") {
		t.Fatalf("traceless report = %q", got)
	}
}
