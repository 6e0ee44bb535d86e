package game

// Personality selects which state-transition table and combat tuning a
// saucer uses. Immutable after spawn.
type Personality int

const (
	PersonalityAggressive Personality = iota
	PersonalityDefensive
	PersonalityTactical
	PersonalitySwarm
	PersonalityDeadly
)

func (p Personality) String() string {
	switch p {
	case PersonalityAggressive:
		return "aggressive"
	case PersonalityDefensive:
		return "defensive"
	case PersonalityTactical:
		return "tactical"
	case PersonalitySwarm:
		return "swarm"
	case PersonalityDeadly:
		return "deadly"
	default:
		return "unknown"
	}
}

// ParsePersonality maps a name to a Personality. Unknown names fall back to
// aggressive, the same default the state machine uses.
func ParsePersonality(name string) Personality {
	switch name {
	case "aggressive":
		return PersonalityAggressive
	case "defensive":
		return PersonalityDefensive
	case "tactical":
		return PersonalityTactical
	case "swarm":
		return PersonalitySwarm
	case "deadly":
		return PersonalityDeadly
	default:
		return PersonalityAggressive
	}
}

// Personalities returns every personality in display order.
func Personalities() []Personality {
	return []Personality{
		PersonalityAggressive,
		PersonalityDefensive,
		PersonalityTactical,
		PersonalitySwarm,
		PersonalityDeadly,
	}
}

// UsesPredictiveAim reports whether this personality leads its shots toward
// where the player will be rather than where it is.
func (p Personality) UsesPredictiveAim() bool {
	switch p {
	case PersonalityTactical, PersonalitySwarm, PersonalityDeadly:
		return true
	default:
		return false
	}
}

// Tuning holds the movement and combat parameters for one personality.
type Tuning struct {
	Speed         float64 // cruise speed steering vectors are scaled to
	MaxSpeed      float64 // hard cap on synthesized velocity
	Acceleration  float64 // reserved, not applied by movement
	ShootInterval float64 // seconds between shots
	Accuracy      float64 // >= 1.0 means no angular spread
	Aggression    float64 // relative hostility, surfaced in reports
}

var personalityTunings = map[Personality]Tuning{
	PersonalityAggressive: {Speed: 100, MaxSpeed: 150, Acceleration: 50, ShootInterval: 1.0, Accuracy: 0.75, Aggression: 1.0},
	PersonalityDefensive:  {Speed: 100, MaxSpeed: 150, Acceleration: 50, ShootInterval: 1.0, Accuracy: 0.75, Aggression: 1.0},
	PersonalityTactical:   {Speed: 100, MaxSpeed: 150, Acceleration: 50, ShootInterval: 1.0, Accuracy: 1.0, Aggression: 1.0},
	PersonalitySwarm:      {Speed: 100, MaxSpeed: 150, Acceleration: 50, ShootInterval: 1.0, Accuracy: 1.0, Aggression: 1.0},
	PersonalityDeadly:     {Speed: 120, MaxSpeed: 180, Acceleration: 50, ShootInterval: 0.7, Accuracy: 1.5, Aggression: 2.0},
}

// TuningFor returns the tuning for a personality. Unknown personalities get
// the aggressive tuning.
func TuningFor(p Personality) Tuning {
	if tn, ok := personalityTunings[p]; ok {
		return tn
	}
	return personalityTunings[PersonalityAggressive]
}
