package game

import "math"

const (
	// Tactical ranges shared by awareness and steering.
	optimalDistance = 200.0 // preferred engagement range
	dangerZone      = 100.0 // inside this the player is an immediate threat
	avoidDistance   = 80.0  // asteroid avoidance radius

	bulletThreatNear  = 50.0  // player bullet distance scoring +0.3
	bulletThreatFar   = 100.0 // player bullet distance scoring +0.1
	asteroidBusyRange = 200.0 // asteroids this close to the player occupy them
)

// WorldView is the frozen snapshot a saucer reads during one Update call.
// The world builds a fresh view before any of the tick's mutations so that
// agents never observe mid-tick removals, and the saucer copies what it
// needs instead of retaining the slices.
type WorldView struct {
	Width  float64
	Height float64

	HasPlayer bool
	PlayerPos Vec2
	PlayerVel Vec2 // the ship's true velocity, used only for aimed shots

	Bullets   []Vec2 // active player bullet positions
	Asteroids []Vec2 // active asteroid positions
	Others    []Vec2 // other active saucers, excluding the one being updated

	TimeDilation float64 // raw world factor, for rotation-rate compensation
}

// threatLevel scores how endangered the saucer currently is, in [0,1].
// Contributions accumulate and are clamped: player proximity, incoming
// player bullets, and a fast-moving player all raise it. Without a player
// there is nothing to fear.
func (s *Saucer) threatLevel(view *WorldView) float64 {
	if !view.HasPlayer {
		return 0
	}
	threat := 0.0

	dist := s.pos.Dist(s.playerPos)
	if dist < dangerZone {
		threat += 0.4
	} else if dist < optimalDistance {
		threat += 0.2
	}

	for _, b := range view.Bullets {
		d := s.pos.Dist(b)
		if d < bulletThreatNear {
			threat += 0.3
		} else if d < bulletThreatFar {
			threat += 0.1
		}
	}

	speed := s.playerVel.Mag()
	if speed > 800 {
		threat += 0.3
	} else if speed > 400 {
		threat += 0.1
	}

	return math.Min(threat, 1.0)
}

// opportunityLevel scores how favorable attacking is right now, in [0,1].
// A slow player is an easy target; a player hemmed in by asteroids is a
// distracted one.
func (s *Saucer) opportunityLevel(view *WorldView) float64 {
	if !view.HasPlayer {
		return 0
	}
	opp := 0.0

	speed := s.playerVel.Mag()
	if speed < 200 {
		opp += 0.4
	} else if speed < 400 {
		opp += 0.2
	}

	busy := 0
	for _, a := range view.Asteroids {
		if a.Dist(s.playerPos) < asteroidBusyRange {
			busy++
		}
	}
	if busy > 2 {
		opp += 0.3
	}

	return math.Min(opp, 1.0)
}

// observePlayer copies the player's position into the saucer's own fields
// and derives the observed velocity as the delta of successive positions.
// The first sighting uses the world-supplied true velocity since there is
// no previous position to difference against.
func (s *Saucer) observePlayer(view *WorldView) {
	if !view.HasPlayer {
		return
	}
	if s.seenPlayer {
		s.playerVel = view.PlayerPos.Sub(s.lastPlayerPos)
	} else {
		s.playerVel = view.PlayerVel
		s.seenPlayer = true
	}
	s.playerPos = view.PlayerPos
	s.lastPlayerPos = view.PlayerPos
}
