package game

// --- World events ---

// EventKind labels one observable thing that happened during a tick.
type EventKind int

const (
	EventPlayerFired EventKind = iota
	EventSaucerFired
	EventSaucerSpawned
	EventSaucerDestroyed
	EventAsteroidDestroyed
	EventShieldHit
	EventShipDestroyed
	EventLevelCleared
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventPlayerFired:
		return "player_fired"
	case EventSaucerFired:
		return "saucer_fired"
	case EventSaucerSpawned:
		return "saucer_spawned"
	case EventSaucerDestroyed:
		return "saucer_destroyed"
	case EventAsteroidDestroyed:
		return "asteroid_destroyed"
	case EventShieldHit:
		return "shield_hit"
	case EventShipDestroyed:
		return "ship_destroyed"
	case EventLevelCleared:
		return "level_cleared"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is one entry in the per-tick event stream. The world appends as it
// simulates; the front end drains the slice for sound cues and the test
// harness reads it for assertions.
type Event struct {
	Kind        EventKind
	Pos         Vec2
	Size        int         // asteroid size class, when relevant
	Personality Personality // saucer personality, when relevant
}

// WorldStats holds lifetime tallies for the run, independent of event
// draining. The reporter diffs these across snapshots.
type WorldStats struct {
	PlayerShots      int
	SaucerShots      int
	SaucersSpawned   int
	SaucersDestroyed int
	AsteroidsBroken  int
	ShieldHits       int
	ShipsLost        int
}

func (w *World) emit(ev Event) {
	w.events = append(w.events, ev)
	switch ev.Kind {
	case EventPlayerFired:
		w.stats.PlayerShots++
	case EventSaucerFired:
		w.stats.SaucerShots++
	case EventSaucerSpawned:
		w.stats.SaucersSpawned++
	case EventSaucerDestroyed:
		w.stats.SaucersDestroyed++
	case EventAsteroidDestroyed:
		w.stats.AsteroidsBroken++
	case EventShieldHit:
		w.stats.ShieldHits++
	case EventShipDestroyed:
		w.stats.ShipsLost++
	}
}

// Events returns the events accumulated since the last Drain.
func (w *World) Events() []Event {
	return w.events
}

// DrainEvents returns the accumulated events and clears the stream.
func (w *World) DrainEvents() []Event {
	evs := w.events
	w.events = nil
	return evs
}
