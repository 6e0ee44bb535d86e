package game

// SaucerState is the active high-level behaviour state. Exactly one is
// active per tick; it selects the behavior weight vector.
type SaucerState int

const (
	StatePatrol SaucerState = iota
	StateSeek
	StatePursue
	StateFlank
	StateFlee
	StateEvade
	StateIntercept
	StateSwarmAttack
	StateSwarmPatrol
)

// saucerStates lists every state in declaration order, for reports that
// iterate the full set.
func saucerStates() []SaucerState {
	return []SaucerState{
		StatePatrol, StateSeek, StatePursue, StateFlank, StateFlee,
		StateEvade, StateIntercept, StateSwarmAttack, StateSwarmPatrol,
	}
}

func (s SaucerState) String() string {
	switch s {
	case StatePatrol:
		return "patrol"
	case StateSeek:
		return "seek"
	case StatePursue:
		return "pursue"
	case StateFlank:
		return "flank"
	case StateFlee:
		return "flee"
	case StateEvade:
		return "evade"
	case StateIntercept:
		return "intercept"
	case StateSwarmAttack:
		return "swarm_attack"
	case StateSwarmPatrol:
		return "swarm_patrol"
	default:
		return "unknown"
	}
}

// situation bundles the scalar inputs a transition function may consult.
type situation struct {
	threat      float64
	opportunity float64
	playerSpeed float64 // magnitude of the observed player velocity
	hasOthers   bool    // at least one other active saucer in play
}

// decideFunc returns the next state and its nominal duration for a
// situation. The duration is bookkeeping only; states are re-decided from
// scratch every tick.
type decideFunc func(sit situation) (SaucerState, float64)

var stateTable = map[Personality]decideFunc{
	PersonalityAggressive: decideAggressive,
	PersonalityDefensive:  decideDefensive,
	PersonalityTactical:   decideTactical,
	PersonalitySwarm:      decideSwarm,
	PersonalityDeadly:     decideDeadly,
}

// decideFor returns the transition function for a personality, falling back
// to the aggressive table for unknown values.
func decideFor(p Personality) decideFunc {
	if fn, ok := stateTable[p]; ok {
		return fn
	}
	return decideAggressive
}

// decideAggressive favors direct engagement, pressing the attack even under
// moderate threat.
func decideAggressive(sit situation) (SaucerState, float64) {
	switch {
	case sit.threat < 0.3:
		if sit.opportunity > 0.7 {
			return StatePursue, 4.0
		}
		return StatePatrol, 3.0
	case sit.threat < 0.7:
		if sit.opportunity > 0.5 {
			return StateFlank, 3.0
		}
		return StateIntercept, 2.0
	default:
		if sit.opportunity > 0.8 {
			return StatePursue, 2.0
		}
		return StateEvade, 1.5
	}
}

// decideDefensive puts survival first and only commits when the player
// looks vulnerable.
func decideDefensive(sit situation) (SaucerState, float64) {
	switch {
	case sit.threat > 0.6:
		return StateFlee, 2.0
	case sit.threat > 0.3:
		return StateEvade, 1.5
	case sit.opportunity > 0.6:
		return StateIntercept, 2.5
	default:
		return StatePatrol, 4.0
	}
}

// decideTactical reads the player's movement before anything else: a fast
// player gets intercepted, a vulnerable one gets flanked.
func decideTactical(sit situation) (SaucerState, float64) {
	switch {
	case sit.playerSpeed > 500:
		return StateIntercept, 2.0
	case sit.threat > 0.5:
		return StateEvade, 1.0
	case sit.opportunity > 0.6:
		return StateFlank, 3.0
	default:
		return StateSeek, 2.5
	}
}

// decideSwarm coordinates with the rest of the wave; a lone swarm saucer
// just patrols.
func decideSwarm(sit situation) (SaucerState, float64) {
	if !sit.hasOthers {
		return StatePatrol, 2.0
	}
	if sit.opportunity > 0.6 {
		return StateSwarmAttack, 3.0
	}
	return StateSwarmPatrol, 2.0
}

// decideDeadly never retreats except under extreme threat with nothing to
// gain.
func decideDeadly(sit situation) (SaucerState, float64) {
	if sit.opportunity > 0.3 {
		switch {
		case sit.threat < 0.4:
			return StatePursue, 5.0
		case sit.threat < 0.7:
			return StateFlank, 4.0
		default:
			return StateIntercept, 3.0
		}
	}
	if sit.threat < 0.6 {
		return StateIntercept, 3.0
	}
	return StateEvade, 1.0
}
