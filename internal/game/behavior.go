package game

// Behavior indexes one steering behavior in the fixed-size weight vector.
type Behavior int

const (
	BehaviorSeek Behavior = iota
	BehaviorFlee
	BehaviorFlank
	BehaviorSwarm
	BehaviorPatrol
	BehaviorIntercept
	BehaviorEvade
	BehaviorAvoidAsteroids

	behaviorCount
)

func (b Behavior) String() string {
	switch b {
	case BehaviorSeek:
		return "seek"
	case BehaviorFlee:
		return "flee"
	case BehaviorFlank:
		return "flank"
	case BehaviorSwarm:
		return "swarm"
	case BehaviorPatrol:
		return "patrol"
	case BehaviorIntercept:
		return "intercept"
	case BehaviorEvade:
		return "evade"
	case BehaviorAvoidAsteroids:
		return "avoid_asteroids"
	default:
		return "unknown"
	}
}

// behaviorWeights is a weight vector over all steering behaviors. Values are
// arbitrary non-negative scalars combined by weighted vector sum; they are
// not a probability distribution and are never normalized.
type behaviorWeights [behaviorCount]float64

// avoidWeight is applied to avoid_asteroids in every state.
const avoidWeight = 0.3

// stateWeights holds the base weight vector per state. Unlisted behaviors
// stay zero; avoid_asteroids is layered on by weightsFor.
var stateWeights = map[SaucerState]behaviorWeights{
	StatePursue:      {BehaviorSeek: 0.8, BehaviorIntercept: 0.2},
	StateFlank:       {BehaviorFlank: 0.6, BehaviorSeek: 0.4},
	StateFlee:        {BehaviorFlee: 0.9, BehaviorEvade: 0.1},
	StateEvade:       {BehaviorEvade: 0.7, BehaviorFlee: 0.3},
	StatePatrol:      {BehaviorPatrol: 0.8, BehaviorSeek: 0.2},
	StateIntercept:   {BehaviorIntercept: 0.9, BehaviorSeek: 0.1},
	StateSwarmAttack: {BehaviorSwarm: 0.6, BehaviorSeek: 0.4},
	StateSwarmPatrol: {BehaviorSwarm: 0.8, BehaviorPatrol: 0.2},
	StateSeek:        {BehaviorSeek: 1.0},
}

// weightsFor returns the full weight vector for a state, with asteroid
// avoidance always active. The array is returned by value; callers own
// their copy.
func weightsFor(state SaucerState) behaviorWeights {
	w := stateWeights[state]
	w[BehaviorAvoidAsteroids] = avoidWeight
	return w
}
