package game

import (
	"fmt"
	"strings"
)

// reportWindowTicks is the default sliding window for recent-behaviour reports (~10s at 60TPS).
const reportWindowTicks = 600

// --- Snapshot types ---

// SaucerReport captures a single saucer's state.
type SaucerReport struct {
	Label       string
	Personality Personality
	State       SaucerState
	X, Y        float64
	Speed       float64
	Threat      float64
	Opportunity float64
	Shots       int
}

// SimReport is a full snapshot of the simulation at one tick.
type SimReport struct {
	Tick int

	// Distribution of live saucers across states and personalities.
	States        map[SaucerState]int
	Personalities map[Personality]int

	SaucersAlive   int
	AvgThreat      float64
	AvgOpportunity float64

	// Field census.
	Asteroids     int
	AsteroidMass  int // sum of size classes
	PlayerBullets int
	SaucerBullets int

	// Player and run state.
	Score       int
	Level       int
	Lives       int
	ShipShields int
	ShipSpeed   float64
	Dilation    float64

	// Lifetime tallies at this tick, for window deltas.
	Stats WorldStats

	// Saucer detail (optional, for verbose mode).
	Saucers []SaucerReport
}

// --- Reporter ---

// SimReporter collects periodic reports from the simulation and can produce
// summaries over sliding time windows.
type SimReporter struct {
	history     []SimReport
	windowTicks int
	verbose     bool
}

// NewSimReporter creates a reporter with the given window size.
func NewSimReporter(windowTicks int, verbose bool) *SimReporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &SimReporter{
		windowTicks: windowTicks,
		verbose:     verbose,
	}
}

// Collect gathers a snapshot from the current world state.
// Call this periodically (e.g. every 60 ticks / 1s).
func (r *SimReporter) Collect(w *World) {
	report := SimReport{
		Tick:          w.Tick(),
		States:        make(map[SaucerState]int),
		Personalities: make(map[Personality]int),
		Score:         w.Score(),
		Level:         w.Level(),
		Lives:         w.Lives(),
		Dilation:      w.TimeDilation(),
		Stats:         w.Stats(),
		PlayerBullets: len(w.Bullets()),
		SaucerBullets: len(w.SaucerBullets()),
	}

	for i, s := range w.Saucers() {
		if !s.Active() {
			continue
		}
		report.SaucersAlive++
		report.States[s.State()]++
		report.Personalities[s.Personality()]++
		report.AvgThreat += s.Threat()
		report.AvgOpportunity += s.Opportunity()

		if r.verbose {
			report.Saucers = append(report.Saucers, SaucerReport{
				Label:       fmt.Sprintf("S%d", i),
				Personality: s.Personality(),
				State:       s.State(),
				X:           s.Pos().X,
				Y:           s.Pos().Y,
				Speed:       s.Vel().Mag(),
				Threat:      s.Threat(),
				Opportunity: s.Opportunity(),
				Shots:       s.BulletsFired(),
			})
		}
	}
	if report.SaucersAlive > 0 {
		report.AvgThreat /= float64(report.SaucersAlive)
		report.AvgOpportunity /= float64(report.SaucersAlive)
	}

	for _, a := range w.Asteroids() {
		report.Asteroids++
		report.AsteroidMass += a.Size()
	}

	if ship := w.Ship(); ship != nil && ship.Active() {
		report.ShipShields = ship.Shields()
		report.ShipSpeed = ship.Speed()
	}

	r.history = append(r.history, report)

	// Prune old history beyond 2x window to prevent unbounded growth.
	maxKeep := r.windowTicks / 60 * 2 // reports per second * 2 windows
	if maxKeep < 100 {
		maxKeep = 100
	}
	if len(r.history) > maxKeep {
		r.history = r.history[len(r.history)-maxKeep:]
	}
}

// Latest returns the most recent report, or nil if none collected yet.
func (r *SimReporter) Latest() *SimReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// WindowSummary returns an aggregated summary over the recent time window.
// It averages state proportions, saucer pressure, and dilation across all
// reports in the window, and diffs lifetime tallies between its ends.
func (r *SimReporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	// Find reports within the window, newest first.
	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []SimReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}
	if len(window) == 0 {
		return nil
	}

	newest := window[0]
	oldest := window[len(window)-1]
	n := float64(len(window))
	wr := &WindowReport{
		FromTick:       oldest.Tick,
		ToTick:         newest.Tick,
		SampleCount:    len(window),
		StatePct:       make(map[SaucerState]float64),
		PersonalityPct: make(map[Personality]float64),
		MinDilation:    1.0,
	}

	stateTotal := make(map[SaucerState]float64)
	persTotal := make(map[Personality]float64)
	var total float64

	for _, rpt := range window {
		for st, c := range rpt.States {
			stateTotal[st] += float64(c)
			total += float64(c)
		}
		for p, c := range rpt.Personalities {
			persTotal[p] += float64(c)
		}

		wr.AvgSaucersAlive += float64(rpt.SaucersAlive)
		wr.AvgThreat += rpt.AvgThreat
		wr.AvgOpportunity += rpt.AvgOpportunity
		wr.AvgAsteroids += float64(rpt.Asteroids)
		wr.AvgShipSpeed += rpt.ShipSpeed
		wr.AvgDilation += rpt.Dilation
		if rpt.Dilation < wr.MinDilation {
			wr.MinDilation = rpt.Dilation
		}
	}

	if total > 0 {
		for st, c := range stateTotal {
			wr.StatePct[st] = c / total * 100
		}
		for p, c := range persTotal {
			wr.PersonalityPct[p] = c / total * 100
		}
	}

	wr.AvgSaucersAlive /= n
	wr.AvgThreat /= n
	wr.AvgOpportunity /= n
	wr.AvgAsteroids /= n
	wr.AvgShipSpeed /= n
	wr.AvgDilation /= n

	// Deltas between the ends of the window.
	wr.ScoreDelta = newest.Score - oldest.Score
	wr.SaucersDestroyed = newest.Stats.SaucersDestroyed - oldest.Stats.SaucersDestroyed
	wr.SaucerShots = newest.Stats.SaucerShots - oldest.Stats.SaucerShots
	wr.PlayerShots = newest.Stats.PlayerShots - oldest.Stats.PlayerShots
	wr.ShieldHits = newest.Stats.ShieldHits - oldest.Stats.ShieldHits
	wr.ShipsLost = newest.Stats.ShipsLost - oldest.Stats.ShipsLost

	return wr
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	// State and personality distributions as percentages (0-100).
	StatePct       map[SaucerState]float64
	PersonalityPct map[Personality]float64

	// Averages over the window.
	AvgSaucersAlive float64
	AvgThreat       float64
	AvgOpportunity  float64
	AvgAsteroids    float64
	AvgShipSpeed    float64
	AvgDilation     float64
	MinDilation     float64

	// Deltas across the window.
	ScoreDelta       int
	SaucersDestroyed int
	SaucerShots      int
	PlayerShots      int
	ShieldHits       int
	ShipsLost        int
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Behaviour Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)

	sb.WriteString("\n--- Saucer State Distribution ---\n")
	for _, st := range saucerStates() {
		if pct, ok := wr.StatePct[st]; ok && pct > 0.5 {
			fmt.Fprintf(&sb, "  %-14s %5.1f%%\n", st, pct)
		}
	}

	sb.WriteString("\n--- Personality Mix ---\n")
	for _, p := range Personalities() {
		if pct, ok := wr.PersonalityPct[p]; ok && pct > 0.5 {
			fmt.Fprintf(&sb, "  %-14s %5.1f%%\n", p, pct)
		}
	}

	sb.WriteString("\n--- Engagement ---\n")
	fmt.Fprintf(&sb, "  avg threat=%.2f  avg opportunity=%.2f  (%s)\n",
		wr.AvgThreat, wr.AvgOpportunity, pressureLabel(wr.AvgThreat))
	fmt.Fprintf(&sb, "  saucer shots=%d  player shots=%d  saucers destroyed=%d\n",
		wr.SaucerShots, wr.PlayerShots, wr.SaucersDestroyed)
	fmt.Fprintf(&sb, "  shield hits=%d  ships lost=%d\n", wr.ShieldHits, wr.ShipsLost)

	sb.WriteString("\n--- Field ---\n")
	fmt.Fprintf(&sb, "  saucers alive=%.1f  asteroids=%.1f  score delta=%+d\n",
		wr.AvgSaucersAlive, wr.AvgAsteroids, wr.ScoreDelta)

	sb.WriteString("\n--- Time Dilation ---\n")
	fmt.Fprintf(&sb, "  avg=%.3f  min=%.3f  avg ship speed=%.0f\n",
		wr.AvgDilation, wr.MinDilation, wr.AvgShipSpeed)

	return sb.String()
}

// pressureLabel classifies the average threat the saucer force is under.
func pressureLabel(threat float64) string {
	switch {
	case threat > 0.7:
		return "under heavy fire"
	case threat > 0.4:
		return "contested"
	case threat > 0.15:
		return "skirmishing"
	default:
		return "quiet"
	}
}

// FormatLatest returns a concise snapshot of the most recent collected report.
func (r *SimReporter) FormatLatest() string {
	rpt := r.Latest()
	if rpt == nil {
		return "No data.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Snapshot T=%d ---\n", rpt.Tick)
	fmt.Fprintf(&sb, "Saucers: alive=%d  threat=%.2f opp=%.2f  shots_in_flight=%d\n",
		rpt.SaucersAlive, rpt.AvgThreat, rpt.AvgOpportunity, rpt.SaucerBullets)
	fmt.Fprintf(&sb, "Field:   rocks=%d (mass=%d)  player_shots=%d\n",
		rpt.Asteroids, rpt.AsteroidMass, rpt.PlayerBullets)
	fmt.Fprintf(&sb, "Player:  score=%d level=%d lives=%d shields=%d speed=%.0f dilation=%.3f\n",
		rpt.Score, rpt.Level, rpt.Lives, rpt.ShipShields, rpt.ShipSpeed, rpt.Dilation)

	sb.WriteString("States:  ")
	for _, st := range saucerStates() {
		if c, ok := rpt.States[st]; ok && c > 0 {
			fmt.Fprintf(&sb, "%s=%d ", st, c)
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

// History returns all collected reports.
func (r *SimReporter) History() []SimReport {
	return r.history
}

// StateProportions computes the proportion of each state across all live
// saucers at the current moment. Returns a map of SaucerState → fraction (0-1).
func StateProportions(saucers []*Saucer) map[SaucerState]float64 {
	counts := make(map[SaucerState]int)
	total := 0
	for _, s := range saucers {
		if !s.Active() {
			continue
		}
		counts[s.State()]++
		total++
	}
	props := make(map[SaucerState]float64, len(counts))
	if total > 0 {
		for st, c := range counts {
			props[st] = float64(c) / float64(total)
		}
	}
	return props
}

// AverageSituation returns the mean threat and opportunity across live
// saucers, or zeros when none are alive.
func AverageSituation(saucers []*Saucer) (threat, opportunity float64) {
	n := 0
	for _, s := range saucers {
		if !s.Active() {
			continue
		}
		threat += s.Threat()
		opportunity += s.Opportunity()
		n++
	}
	if n > 0 {
		threat /= float64(n)
		opportunity /= float64(n)
	}
	return threat, opportunity
}
