package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless test simulation.
type SimLogEntry struct {
	Tick        int
	Actor       string  // label e.g. "S0" for saucers, "--" for global events
	Personality string  // "aggressive", "deadly", ..., or "--"
	Category    string  // state, steer, combat, wave, shield, level, dilation
	Key         string  // specific event name within the category
	Value       string  // human-readable detail
	NumVal      float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] S0   state     transition       patrol → pursue
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a headless test simulation.
// It is unbounded and machine-readable, meant for assertions and reports
// rather than on-screen display.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position, speed,
// and threat entries are also recorded (useful for detailed debugging).
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, actor, personality, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:        tick,
		Actor:       actor,
		Personality: personality,
		Category:    category,
		Key:         key,
		Value:       value,
		NumVal:      numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, actor, personality, category, key, value string, numVal float64) {
	if !sl.verbose {
		return
	}
	sl.Add(tick, actor, personality, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterActor returns entries for a specific actor label.
func (sl *SimLog) FilterActor(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Actor == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a tick range.
func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTickRange(fromTick, toTick) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable snapshot of the world state.
func (sl *SimLog) Summary(w *World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", w.Tick())

	// State distribution across live saucers.
	stateCount := map[SaucerState]int{}
	for _, s := range w.Saucers() {
		if s.Active() {
			stateCount[s.State()]++
		}
	}
	if len(stateCount) > 0 {
		sb.WriteString("Saucer states: ")
		for _, st := range saucerStates() {
			if n := stateCount[st]; n > 0 {
				fmt.Fprintf(&sb, "%s=%d  ", st, n)
			}
		}
		sb.WriteByte('\n')
	} else {
		sb.WriteString("Saucer states: none\n")
	}

	// Per-saucer situation scores.
	for i, s := range w.Saucers() {
		if !s.Active() {
			continue
		}
		fmt.Fprintf(&sb, "S%d %s: state=%s threat=%.2f opp=%.2f shots=%d\n",
			i, s.Personality(), s.State(), s.Threat(), s.Opportunity(), s.BulletsFired())
	}

	fmt.Fprintf(&sb, "Level=%d  Score=%d  Lives=%d  Dilation=%.3f\n",
		w.Level(), w.Score(), w.Lives(), w.TimeDilation())
	if ship := w.Ship(); ship != nil && ship.Active() {
		fmt.Fprintf(&sb, "Ship: pos=(%.0f,%.0f) speed=%.0f shields=%d\n",
			ship.Pos().X, ship.Pos().Y, ship.Speed(), ship.Shields())
	} else {
		sb.WriteString("Ship: down\n")
	}
	fmt.Fprintf(&sb, "Rocks=%d  PlayerShots=%d  SaucerShots=%d\n",
		len(w.Asteroids()), len(w.Bullets()), len(w.SaucerBullets()))

	return sb.String()
}
