package game

import (
	"fmt"
	"sort"
	"strings"
	"testing"
)

type stallProbeState struct {
	lastPos    Vec2
	stagnant   int
	reportedAt int
}

func transitionTick(entries []SimLogEntry, category, key, needle string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if needle == "" || strings.Contains(e.Value, needle) {
			return e.Tick
		}
	}
	return -1
}

func formatTopCounts(title string, m map[string]int, n int) string {
	if len(m) == 0 {
		return fmt.Sprintf("%s: none", title)
	}
	type kv struct {
		k string
		v int
	}
	items := make([]kv, 0, len(m))
	for k, v := range m {
		items = append(items, kv{k: k, v: v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].v == items[j].v {
			return items[i].k < items[j].k
		}
		return items[i].v > items[j].v
	})
	if n > len(items) {
		n = len(items)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, fmt.Sprintf("%s=%d", items[i].k, items[i].v))
	}
	return fmt.Sprintf("%s: %s", title, strings.Join(parts, ", "))
}

// stallReason classifies a stalled saucer from what the probe can observe.
func stallReason(s *Saucer, speed, distToShip float64) string {
	switch {
	case speed < 5 && (s.State() == StateSwarmAttack || s.State() == StateSwarmPatrol):
		return "swarm_huddle"
	case speed < 5:
		return "spent_blend_coast"
	case s.State() == StateEvade || s.State() == StateFlee:
		return "evade_equilibrium"
	case distToShip >= 0 && distToShip < flankRange && (s.State() == StateFlank || s.State() == StateIntercept):
		return "orbit_pivot"
	case s.State() == StatePatrol:
		return "patrol_turnpoint"
	default:
		return "unknown"
	}
}

func dumpStallNarrative(t *testing.T, ts *TestSim, stallTicks []int, reasonCounts, bySaucer map[string]int) {
	t.Helper()
	entries := ts.SimLog.Entries()
	firstTransition := transitionTick(entries, "state", "transition", "")
	firstWave := transitionTick(entries, "wave", "spawn", "")
	firstShot := transitionTick(entries, "combat", "saucer_fired", "")
	firstShieldHit := transitionTick(entries, "shield", "hit", "")
	firstKill := transitionTick(entries, "combat", "saucer_down", "")
	firstStall := -1
	if len(stallTicks) > 0 {
		firstStall = stallTicks[0]
	}

	t.Log("=== Stall Narrative ===")
	t.Logf("phase markers: first_transition=%d first_wave=%d first_shot=%d first_shield_hit=%d first_kill=%d first_stall=%d",
		firstTransition, firstWave, firstShot, firstShieldHit, firstKill, firstStall)
	t.Logf("event totals: transitions=%d waves=%d saucer_shots=%d saucers_down=%d rock_breaks=%d shield_hits=%d level_advances=%d",
		ts.SimLog.CountCategory("state", "transition"),
		ts.SimLog.CountCategory("wave", "spawn"),
		ts.SimLog.CountCategory("combat", "saucer_fired"),
		ts.SimLog.CountCategory("combat", "saucer_down"),
		ts.SimLog.CountCategory("combat", "rock_break"),
		ts.SimLog.CountCategory("shield", "hit"),
		ts.SimLog.CountCategory("level", "advance"))
	t.Log(formatTopCounts("stall reasons", reasonCounts, 6))
	t.Log(formatTopCounts("saucers with most stalls", bySaucer, 6))

	if wr := ts.Reporter.WindowSummary(); wr != nil {
		t.Log("=== Window Behaviour Story ===")
		t.Log(wr.Format())
	}

	if len(stallTicks) == 0 {
		return
	}
	t.Log("=== Focused Event Windows Around Stalls ===")
	maxWindows := 3
	if maxWindows > len(stallTicks) {
		maxWindows = len(stallTicks)
	}
	for i := 0; i < maxWindows; i++ {
		tick := stallTicks[i]
		from := tick - 20
		if from < 1 {
			from = 1
		}
		to := tick + 10
		t.Logf("--- Stall window #%d (T=%d, range %d..%d) ---", i+1, tick, from, to)
		window := ts.SimLog.FormatRange(from, to)
		if window == "" {
			t.Log("(no events in window)")
			continue
		}
		for _, ln := range strings.Split(strings.TrimSpace(window), "\n") {
			if strings.TrimSpace(ln) == "" {
				continue
			}
			t.Log(ln)
		}
	}
}

// TestScenario_StallProbe_TurretSiege runs a long organic siege and logs
// internal saucer state whenever one appears stalled: barely moving for a
// prolonged window while world time is running near full speed. Floored
// dilation is deliberate slow motion, not a stall, so those ticks are
// excluded from the stagnation count.
func TestScenario_StallProbe_TurretSiege(t *testing.T) {
	ts := NewTestSim(
		WithSize(1280, 720),
		WithSeed(42),
		WithShip(640, 360),
	)
	ts.Input.FireHeld = true

	const (
		totalTicks        = 3600
		stillThreshold    = 90
		minMoveDistance   = 0.20
		stallDilationGate = 0.30
		maxReports        = 40
	)

	probes := make(map[*Saucer]*stallProbeState)
	reasonCounts := map[string]int{}
	bySaucer := map[string]int{}
	stallTicks := make([]int, 0, maxReports)
	slowMotionTicks := 0
	peakAlive := 0

	reports := 0
	for i := 0; i < totalTicks; i++ {
		ts.RunTicks(1)
		if ts.World.Status() != StatusPlaying {
			t.Logf("run ended at tick %d: %s", ts.CurrentTick(), ts.World.Status())
			break
		}
		tick := ts.CurrentTick()
		dilation := ts.World.TimeDilation()
		if dilation <= stallDilationGate {
			slowMotionTicks++
		}

		saucers := ts.World.Saucers()
		if len(saucers) > peakAlive {
			peakAlive = len(saucers)
		}

		for _, s := range saucers {
			p := probes[s]
			if p == nil {
				probes[s] = &stallProbeState{lastPos: s.Pos(), reportedAt: -1000}
				continue
			}
			moved := s.Pos().Dist(p.lastPos)
			p.lastPos = s.Pos()
			if dilation <= stallDilationGate {
				continue
			}
			if moved < minMoveDistance {
				p.stagnant++
			} else {
				p.stagnant = 0
			}
			if p.stagnant < stillThreshold || tick-p.reportedAt < stillThreshold {
				continue
			}

			distToShip := -1.0
			if ship := ts.World.Ship(); ship != nil && ship.Active() {
				distToShip = s.Pos().Dist(ship.Pos())
			}
			speed := s.Vel().Mag()
			reason := stallReason(s, speed, distToShip)
			label := ts.Label(s)
			reasonCounts[reason]++
			bySaucer[label]++
			stallTicks = append(stallTicks, tick)

			t.Logf("STALL tick=%d saucer=%s %s state=%s stagnantTicks=%d moved=%.3f pos=(%.1f,%.1f) speed=%.1f",
				tick, label, s.Personality(), s.State(), p.stagnant, moved, s.Pos().X, s.Pos().Y, speed)
			t.Logf("  situation threat=%.2f opp=%.2f distToShip=%.1f dilation=%.3f shots=%d/%d stateTimer=%.2f shootTimer=%.2f",
				s.Threat(), s.Opportunity(), distToShip, dilation, s.BulletsFired(), s.maxBullets, s.stateTimer, s.shootTimer)
			t.Logf("  reason=%s", reason)

			p.reportedAt = tick
			reports++
			if reports >= maxReports {
				break
			}
		}
		if reports >= maxReports {
			break
		}
	}

	t.Log(ts.SimLog.Summary(ts.World))
	dumpStallNarrative(t, ts, stallTicks, reasonCounts, bySaucer)
	t.Logf("stall aggregates: slowMotionTicks=%d peakSaucersAlive=%d finalLevel=%d finalScore=%d",
		slowMotionTicks, peakAlive, ts.World.Level(), ts.World.Score())
	t.Logf("stall reports captured: %d", reports)
}
