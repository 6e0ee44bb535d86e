package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/wrenware/staroids/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	firstSpawnTick    int
	firstSaucerShot   int
	firstKillTick     int
	firstShieldHit    int
	firstShipDownTick int
	gameOverTick      int

	stateChanges  int
	saucerShots   int
	spawns        int
	kills         int
	rockBreaks    int
	shieldHits    int
	shipDowns     int
	levelAdvances int

	shotsByPersonality map[string]int

	finalScore    int
	finalLevel    int
	finalLives    int
	finalDilation float64

	windowSummary *game.WindowReport
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "baseline", "scenario name")
	flag.BoolVar(&verbose, "verbose", false, "record per-tick detail in the sim log")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	switch scenario {
	case "baseline", "turret", "duel", "gauntlet", "swarm":
	default:
		fmt.Printf("error: unsupported scenario %q (supported: baseline, turret, duel, gauntlet, swarm)\n", scenario)
		return
	}

	fmt.Printf("=== Headless Saucer Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", scenario, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenario(scenario, i+1, seed, ticks, verbose)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

// buildScenario assembles the starting field for a named scenario:
//
//	baseline - a normal level-one run, player idle
//	turret   - baseline with the player holding fire
//	duel     - one aggressive saucer vs a stationary ship, clear field
//	gauntlet - one saucer of every personality vs a stationary ship
//	swarm    - four swarm saucers closing in from the corners
func buildScenario(name string, seed int64, verbose bool) *game.TestSim {
	base := []game.SimOption{
		game.WithSize(1280, 720),
		game.WithSeed(seed),
	}
	if verbose {
		base = append(base, game.WithVerbose(true))
	}

	switch name {
	case "duel":
		return game.NewTestSim(append(base,
			game.WithNoWaves(),
			game.WithNoAsteroids(),
			game.WithShip(640, 360),
			game.WithSaucer(100, 100, game.PersonalityAggressive),
		)...)
	case "gauntlet":
		opts := append(base,
			game.WithNoWaves(),
			game.WithNoAsteroids(),
			game.WithShip(640, 360),
		)
		for i, p := range game.Personalities() {
			opts = append(opts, game.WithSaucer(140+float64(i)*250, 120, p))
		}
		return game.NewTestSim(opts...)
	case "swarm":
		return game.NewTestSim(append(base,
			game.WithNoWaves(),
			game.WithNoAsteroids(),
			game.WithShip(640, 360),
			game.WithSaucer(100, 100, game.PersonalitySwarm),
			game.WithSaucer(1180, 100, game.PersonalitySwarm),
			game.WithSaucer(100, 620, game.PersonalitySwarm),
			game.WithSaucer(1180, 620, game.PersonalitySwarm),
		)...)
	default: // baseline, turret
		return game.NewTestSim(base...)
	}
}

func runScenario(name string, runIndex int, seed int64, ticks int, verbose bool) runStats {
	ts := buildScenario(name, seed, verbose)
	if name == "turret" {
		ts.Input.FireHeld = true
	}
	ts.RunTicks(ticks)

	entries := ts.SimLog.Entries()
	shotsByPersonality := map[string]int{}
	for _, e := range entries {
		if e.Category == "combat" && e.Key == "saucer_fired" {
			shotsByPersonality[e.Personality]++
		}
	}

	w := ts.World
	return runStats{
		runIndex:           runIndex,
		seed:               seed,
		firstSpawnTick:     firstTick(entries, "wave", "spawn", ""),
		firstSaucerShot:    firstTick(entries, "combat", "saucer_fired", ""),
		firstKillTick:      firstTick(entries, "combat", "saucer_down", ""),
		firstShieldHit:     firstTick(entries, "shield", "hit", ""),
		firstShipDownTick:  firstTick(entries, "ship", "destroyed", ""),
		gameOverTick:       firstTick(entries, "level", "game_over", ""),
		stateChanges:       ts.SimLog.CountCategory("state", "transition"),
		saucerShots:        ts.SimLog.CountCategory("combat", "saucer_fired"),
		spawns:             ts.SimLog.CountCategory("wave", "spawn"),
		kills:              ts.SimLog.CountCategory("combat", "saucer_down"),
		rockBreaks:         ts.SimLog.CountCategory("combat", "rock_break"),
		shieldHits:         ts.SimLog.CountCategory("shield", "hit"),
		shipDowns:          ts.SimLog.CountCategory("ship", "destroyed"),
		levelAdvances:      ts.SimLog.CountCategory("level", "advance"),
		shotsByPersonality: shotsByPersonality,
		finalScore:         w.Score(),
		finalLevel:         w.Level(),
		finalLives:         w.Lives(),
		finalDilation:      w.TimeDilation(),
		windowSummary:      ts.Reporter.WindowSummary(),
	}
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// classifyRun grades a run from the saucer force's point of view.
func classifyRun(rs runStats) string {
	switch {
	case rs.gameOverTick >= 0:
		return "overrun"
	case rs.shipDowns > 0:
		return "bloodied"
	case rs.shieldHits > 0:
		return "contested"
	case rs.saucerShots > 0:
		return "engaged"
	default:
		return "passive"
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("verdict=%s\n", classifyRun(rs))
	fmt.Printf("phase_markers: first_spawn=%d first_saucer_shot=%d first_kill=%d first_shield_hit=%d first_ship_down=%d game_over=%d\n",
		rs.firstSpawnTick, rs.firstSaucerShot, rs.firstKillTick, rs.firstShieldHit, rs.firstShipDownTick, rs.gameOverTick)
	fmt.Printf("event_totals: state_change=%d saucer_shots=%d spawns=%d kills=%d rock_breaks=%d shield_hits=%d ship_downs=%d level_advance=%d\n",
		rs.stateChanges, rs.saucerShots, rs.spawns, rs.kills, rs.rockBreaks, rs.shieldHits, rs.shipDowns, rs.levelAdvances)
	fmt.Printf("shots_by_personality: %s\n", joinCounts(rs.shotsByPersonality))
	fmt.Printf("final: score=%d level=%d lives=%d dilation=%.3f\n",
		rs.finalScore, rs.finalLevel, rs.finalLives, rs.finalDilation)
	if rs.windowSummary != nil {
		ws := rs.windowSummary
		fmt.Printf("window_samples=%d window_tick_range=%d..%d\n",
			ws.SampleCount, ws.FromTick, ws.ToTick)
		fmt.Printf("window_avg: saucers=%.1f threat=%.2f opportunity=%.2f rocks=%.1f ship_speed=%.0f dilation=%.3f min_dilation=%.3f\n",
			ws.AvgSaucersAlive, ws.AvgThreat, ws.AvgOpportunity, ws.AvgAsteroids, ws.AvgShipSpeed, ws.AvgDilation, ws.MinDilation)
		fmt.Printf("window_deltas: score=%+d kills=%d saucer_shots=%d player_shots=%d shield_hits=%d ships_lost=%d\n",
			ws.ScoreDelta, ws.SaucersDestroyed, ws.SaucerShots, ws.PlayerShots, ws.ShieldHits, ws.ShipsLost)
		fmt.Printf("window_states: %s\n", formatStatePct(ws.StatePct))
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalState := 0
	totalShots := 0
	totalSpawns := 0
	totalKills := 0
	totalRocks := 0
	totalShield := 0
	totalShipDowns := 0
	totalAdvances := 0
	totalScore := 0
	totalLevel := 0
	totalLives := 0

	spawnTicks := make([]int, 0, len(all))
	shotTicks := make([]int, 0, len(all))
	killTicks := make([]int, 0, len(all))
	shieldTicks := make([]int, 0, len(all))
	shipDownTicks := make([]int, 0, len(all))
	gameOverTicks := make([]int, 0, len(all))
	verdicts := map[string]int{}
	shotsByPers := map[string]int{}

	for _, rs := range all {
		totalState += rs.stateChanges
		totalShots += rs.saucerShots
		totalSpawns += rs.spawns
		totalKills += rs.kills
		totalRocks += rs.rockBreaks
		totalShield += rs.shieldHits
		totalShipDowns += rs.shipDowns
		totalAdvances += rs.levelAdvances
		totalScore += rs.finalScore
		totalLevel += rs.finalLevel
		totalLives += rs.finalLives
		verdicts[classifyRun(rs)]++
		for p, n := range rs.shotsByPersonality {
			shotsByPers[p] += n
		}
		if rs.firstSpawnTick >= 0 {
			spawnTicks = append(spawnTicks, rs.firstSpawnTick)
		}
		if rs.firstSaucerShot >= 0 {
			shotTicks = append(shotTicks, rs.firstSaucerShot)
		}
		if rs.firstKillTick >= 0 {
			killTicks = append(killTicks, rs.firstKillTick)
		}
		if rs.firstShieldHit >= 0 {
			shieldTicks = append(shieldTicks, rs.firstShieldHit)
		}
		if rs.firstShipDownTick >= 0 {
			shipDownTicks = append(shipDownTicks, rs.firstShipDownTick)
		}
		if rs.gameOverTick >= 0 {
			gameOverTicks = append(gameOverTicks, rs.gameOverTick)
		}
	}

	n := len(all)
	fmt.Println("=== Aggregate Report ===")
	fmt.Printf("runs=%d\n", n)
	fmt.Printf("verdicts: %s\n", joinCounts(verdicts))
	fmt.Printf("avg_events_per_run: state_change=%.1f saucer_shots=%.1f spawns=%.1f kills=%.1f rock_breaks=%.1f shield_hits=%.1f ship_downs=%.1f level_advance=%.1f\n",
		avg(totalState, n), avg(totalShots, n), avg(totalSpawns, n), avg(totalKills, n),
		avg(totalRocks, n), avg(totalShield, n), avg(totalShipDowns, n), avg(totalAdvances, n))
	fmt.Printf("phase_marker_avg_ticks: first_spawn=%s first_saucer_shot=%s first_kill=%s first_shield_hit=%s first_ship_down=%s game_over=%s\n",
		avgTickString(spawnTicks), avgTickString(shotTicks), avgTickString(killTicks),
		avgTickString(shieldTicks), avgTickString(shipDownTicks), avgTickString(gameOverTicks))
	fmt.Printf("shots_by_personality_total: %s\n", joinCounts(shotsByPers))
	fmt.Printf("avg_final: score=%.1f level=%.1f lives=%.1f\n",
		avg(totalScore, n), avg(totalLevel, n), avg(totalLives, n))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

// joinCounts renders a count map as "k=v,k=v" in key order, or "none".
func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, ",")
}

// formatStatePct renders a state distribution, largest share first. States
// below half a percent are noise and dropped.
func formatStatePct(pcts map[game.SaucerState]float64) string {
	type row struct {
		state game.SaucerState
		pct   float64
	}
	rows := make([]row, 0, len(pcts))
	for st, pct := range pcts {
		if pct > 0.5 {
			rows = append(rows, row{st, pct})
		}
	}
	if len(rows) == 0 {
		return "none"
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].pct != rows[j].pct {
			return rows[i].pct > rows[j].pct
		}
		return rows[i].state.String() < rows[j].state.String()
	})
	parts := make([]string, 0, len(rows))
	for _, r := range rows {
		parts = append(parts, fmt.Sprintf("%s=%.1f%%", r.state, r.pct))
	}
	return strings.Join(parts, " ")
}
