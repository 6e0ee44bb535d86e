package game

import (
	"fmt"
	"math"
	"strings"
)

// saucerTraceCap bounds the per-saucer debug ring (~15s at 60TPS).
const saucerTraceCap = 900

// SaucerDebugSnapshot is one tick of a saucer's observable state, kept in a
// bounded ring so the clipboard report can reconstruct recent behaviour.
type SaucerDebugSnapshot struct {
	Tick        int
	X, Y        float64
	Speed       float64
	State       SaucerState
	StateTimer  float64
	Threat      float64
	Opportunity float64
	Shots       int
	PlayerDist  float64 // -1 when no player is on the field
	Dilation    float64
}

// CompactString renders one snapshot as a single debug line.
func (s SaucerDebugSnapshot) CompactString(label string) string {
	return fmt.Sprintf("[T=%04d] %s st=%-12s thr=%.2f opp=%.2f spd=%5.1f dist=%6.1f shots=%d td=%.2f",
		s.Tick, label, s.State, s.Threat, s.Opportunity, s.Speed, s.PlayerDist, s.Shots, s.Dilation)
}

// recordTrace appends the current tick to the saucer's debug ring.
func (s *Saucer) recordTrace(tick int, view *WorldView) {
	dist := -1.0
	if view.HasPlayer {
		dist = s.pos.Dist(view.PlayerPos)
	}
	s.trace = append(s.trace, SaucerDebugSnapshot{
		Tick:        tick,
		X:           s.pos.X,
		Y:           s.pos.Y,
		Speed:       s.vel.Mag(),
		State:       s.state,
		StateTimer:  s.stateTimer,
		Threat:      s.threat,
		Opportunity: s.opportunity,
		Shots:       s.bulletsFired,
		PlayerDist:  dist,
		Dilation:    view.TimeDilation,
	})
	if len(s.trace) > saucerTraceCap {
		s.trace = s.trace[len(s.trace)-saucerTraceCap:]
	}
}

// debugSnapshots returns the ring entries within [fromTick, toTick].
func (s *Saucer) debugSnapshots(fromTick, toTick int) []SaucerDebugSnapshot {
	var out []SaucerDebugSnapshot
	for _, snap := range s.trace {
		if snap.Tick >= fromTick && snap.Tick <= toTick {
			out = append(out, snap)
		}
	}
	return out
}

func (g *Game) saucerDebugReport(selected *Saucer, label string, lastTicks int) string {
	if selected == nil {
		return ""
	}
	if lastTicks <= 0 {
		lastTicks = 120
	}

	toTick := g.world.Tick()
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- Staroids saucer report ---\n")
	fmt.Fprintf(&b, "seed=%d tick_range=[%d..%d] ticks=%d\n", g.seed, fromTick, toTick, toTick-fromTick+1)
	fmt.Fprintf(&b, "selected=%s personality=%s state=%s\n\n", label, selected.Personality(), selected.State())

	fmt.Fprintf(&b, "== SELECTED (%s) ==\n", label)
	snaps := selected.debugSnapshots(fromTick, toTick)
	if len(snaps) == 0 {
		b.WriteString("(no snapshots recorded yet)\n")
		return b.String()
	}

	summary := summarizeSnapshots(snaps)
	b.WriteString("summary: ")
	for _, st := range saucerStates() {
		if n := summary.stateTicks[st]; n > 0 {
			fmt.Fprintf(&b, "%s=%d ", st, n)
		}
	}
	fmt.Fprintf(&b, "\n         movedTicks=%d maxStateRun=%d shots=%d\n",
		summary.movedTicks, summary.maxStateRun, summary.shotsFired)
	fmt.Fprintf(&b,
		"         threat[min/avg/max]=%.2f/%.2f/%.2f  opp[min/avg/max]=%.2f/%.2f/%.2f\n",
		summary.minThreat, summary.avgThreat, summary.maxThreat,
		summary.minOpp, summary.avgOpp, summary.maxOpp)
	fmt.Fprintf(&b,
		"         spd[avg/max]=%.0f/%.0f  dist[min/avg/max]=%.0f/%.0f/%.0f\n",
		summary.avgSpeed, summary.maxSpeed,
		summary.minDist, summary.avgDist, summary.maxDist)

	events := storyEvents(snaps)
	if len(events) > 0 {
		b.WriteString("events:\n")
		for _, e := range events {
			b.WriteString("  - ")
			b.WriteString(e)
			b.WriteByte('\n')
		}
	}

	stages := buildStages(snaps)
	b.WriteString("stages:\n")
	for i, st := range stages {
		tag := ""
		if st.onlyPatrol {
			tag = " [PATROL-RUN]"
		}
		fmt.Fprintf(&b,
			"  %02d) T=%d..%d (%dt)%s state:%s thr:%.2f->%.2f opp:%.2f->%.2f spd:%.0f->%.0f dist:%.0f->%.0f moved:%.0f shots:+%d\n",
			i+1,
			st.startTick,
			st.endTick,
			st.count,
			tag,
			st.first.State,
			st.first.Threat,
			st.last.Threat,
			st.first.Opportunity,
			st.last.Opportunity,
			st.first.Speed,
			st.last.Speed,
			st.first.PlayerDist,
			st.last.PlayerDist,
			st.movedDistance,
			st.last.Shots-st.first.Shots,
		)
		if st.count <= 3 {
			for _, ss := range snaps[st.startIdx : st.endIdx+1] {
				b.WriteString("      ")
				b.WriteString(ss.CompactString(label))
				b.WriteByte('\n')
			}
		} else {
			b.WriteString("      first: ")
			b.WriteString(st.first.CompactString(label))
			b.WriteByte('\n')
			b.WriteString("      last:  ")
			b.WriteString(st.last.CompactString(label))
			b.WriteByte('\n')
		}
	}

	return b.String()
}

type saucerTraceSummary struct {
	stateTicks  map[SaucerState]int
	movedTicks  int
	maxStateRun int
	shotsFired  int
	minThreat   float64
	avgThreat   float64
	maxThreat   float64
	minOpp      float64
	avgOpp      float64
	maxOpp      float64
	avgSpeed    float64
	maxSpeed    float64
	minDist     float64
	avgDist     float64
	maxDist     float64
}

func summarizeSnapshots(snaps []SaucerDebugSnapshot) saucerTraceSummary {
	if len(snaps) == 0 {
		return saucerTraceSummary{stateTicks: map[SaucerState]int{}}
	}
	res := saucerTraceSummary{
		stateTicks: make(map[SaucerState]int),
		minThreat:  math.MaxFloat64,
		minOpp:     math.MaxFloat64,
		minDist:    math.MaxFloat64,
	}
	run := 0
	curState := snaps[0].State
	var threatSum, oppSum, speedSum, distSum float64
	distCount := 0
	for i, s := range snaps {
		res.stateTicks[s.State]++
		if s.State == curState {
			run++
		} else {
			curState = s.State
			run = 1
		}
		if run > res.maxStateRun {
			res.maxStateRun = run
		}
		if i > 0 {
			if math.Hypot(s.X-snaps[i-1].X, s.Y-snaps[i-1].Y) > 0.75 {
				res.movedTicks++
			}
		}
		threatSum += s.Threat
		oppSum += s.Opportunity
		speedSum += s.Speed
		if s.Threat < res.minThreat {
			res.minThreat = s.Threat
		}
		if s.Threat > res.maxThreat {
			res.maxThreat = s.Threat
		}
		if s.Opportunity < res.minOpp {
			res.minOpp = s.Opportunity
		}
		if s.Opportunity > res.maxOpp {
			res.maxOpp = s.Opportunity
		}
		if s.Speed > res.maxSpeed {
			res.maxSpeed = s.Speed
		}
		if s.PlayerDist >= 0 {
			distSum += s.PlayerDist
			distCount++
			if s.PlayerDist < res.minDist {
				res.minDist = s.PlayerDist
			}
			if s.PlayerDist > res.maxDist {
				res.maxDist = s.PlayerDist
			}
		}
	}
	n := float64(len(snaps))
	res.avgThreat = threatSum / n
	res.avgOpp = oppSum / n
	res.avgSpeed = speedSum / n
	if distCount > 0 {
		res.avgDist = distSum / float64(distCount)
	}
	if res.minDist == math.MaxFloat64 {
		res.minDist = 0
	}
	res.shotsFired = snaps[len(snaps)-1].Shots - snaps[0].Shots
	if res.shotsFired < 0 {
		// Shot counter resets when the saucer deactivates mid-window.
		res.shotsFired = snaps[len(snaps)-1].Shots
	}
	return res
}

type reportStage struct {
	startIdx      int
	endIdx        int
	startTick     int
	endTick       int
	count         int
	first         SaucerDebugSnapshot
	last          SaucerDebugSnapshot
	movedDistance float64
	onlyPatrol    bool
}

func buildStages(snaps []SaucerDebugSnapshot) []reportStage {
	if len(snaps) == 0 {
		return nil
	}
	band := func(v float64, scale float64, limit int) int {
		b := int(v * scale)
		if b > limit {
			b = limit
		}
		if b < 0 {
			b = 0
		}
		return b
	}
	keyOf := func(s SaucerDebugSnapshot) string {
		distBand := -1
		if s.PlayerDist >= 0 {
			distBand = band(s.PlayerDist, 1.0/200.0, 6)
		}
		return fmt.Sprintf("st=%d|thr=%d|opp=%d|dist=%d",
			s.State,
			band(s.Threat, 5, 4),
			band(s.Opportunity, 5, 4),
			distBand,
		)
	}

	stages := make([]reportStage, 0, 16)
	start := 0
	curKey := keyOf(snaps[0])
	for i := 1; i < len(snaps); i++ {
		k := keyOf(snaps[i])
		if k == curKey {
			continue
		}
		stages = append(stages, makeStage(snaps, start, i-1))
		start = i
		curKey = k
	}
	stages = append(stages, makeStage(snaps, start, len(snaps)-1))
	return stages
}

func makeStage(snaps []SaucerDebugSnapshot, start, end int) reportStage {
	first := snaps[start]
	last := snaps[end]
	moved := math.Hypot(last.X-first.X, last.Y-first.Y)
	allPatrol := true
	for i := start; i <= end; i++ {
		if snaps[i].State != StatePatrol && snaps[i].State != StateSwarmPatrol {
			allPatrol = false
			break
		}
	}
	return reportStage{
		startIdx:      start,
		endIdx:        end,
		startTick:     first.Tick,
		endTick:       last.Tick,
		count:         end - start + 1,
		first:         first,
		last:          last,
		movedDistance: moved,
		onlyPatrol:    allPatrol,
	}
}

func storyEvents(snaps []SaucerDebugSnapshot) []string {
	if len(snaps) == 0 {
		return nil
	}
	var out []string
	prev := snaps[0]
	for i := 1; i < len(snaps); i++ {
		cur := snaps[i]
		if cur.State != prev.State {
			out = append(out, fmt.Sprintf("T=%d state %s -> %s (thr=%.2f opp=%.2f)",
				cur.Tick, prev.State, cur.State, cur.Threat, cur.Opportunity))
		}
		if cur.Shots > prev.Shots {
			out = append(out, fmt.Sprintf("T=%d fired (total %d, dist=%.0f)",
				cur.Tick, cur.Shots, cur.PlayerDist))
		}
		if cur.Threat-prev.Threat > 0.3 {
			out = append(out, fmt.Sprintf("T=%d threat spike %.2f -> %.2f", cur.Tick, prev.Threat, cur.Threat))
		}
		if prev.Dilation >= 0.5 && cur.Dilation < 0.5 {
			out = append(out, fmt.Sprintf("T=%d time slowed to %.2f", cur.Tick, cur.Dilation))
		}
		prev = cur
	}
	if len(out) > 24 {
		out = append(out[:24], fmt.Sprintf("... (%d more events)", len(out)-24))
	}
	return out
}
