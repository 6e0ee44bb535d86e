package game

import "math"

const (
	flankRange        = 150.0 // offset from the player to the flanking point
	interceptLead     = 1.0   // seconds of player movement to lead by
	evadeRadius       = 100.0 // bullets inside this radius push the saucer away
	patrolWeave       = 50.0  // vertical amplitude of the patrol weave
	oscillationRate   = 2.0   // phase advance per second while patrolling
	avoidPushStrength = 2.0   // weighting of close asteroids before renormalizing
)

// Each steering function returns a desired-velocity vector scaled to the
// saucer's cruise speed. Zero-magnitude directions degrade to the zero
// vector rather than dividing by zero, and player-relative behaviors return
// zero when there is no player to react to.

// steerSeek points straight at the player.
func (s *Saucer) steerSeek(view *WorldView) Vec2 {
	if !view.HasPlayer {
		return Vec2{}
	}
	return s.playerPos.Sub(s.pos).Normalize().Scale(s.speed)
}

// steerFlee points straight away from the player.
func (s *Saucer) steerFlee(view *WorldView) Vec2 {
	if !view.HasPlayer {
		return Vec2{}
	}
	return s.pos.Sub(s.playerPos).Normalize().Scale(s.speed)
}

// steerFlank heads for a point 90 degrees off the player's observed heading,
// flankRange units out, to attack from the side.
func (s *Saucer) steerFlank(view *WorldView) Vec2 {
	if !view.HasPlayer {
		return Vec2{}
	}
	flankAngle := s.playerVel.Heading() + math.Pi/2
	target := s.playerPos.Add(fromAngle(flankAngle).Scale(flankRange))
	return target.Sub(s.pos).Normalize().Scale(s.speed)
}

// steerSwarm drifts toward the centroid of the other saucers at half cruise
// speed, loose cohesion rather than tight formation. Zero when flying alone.
func (s *Saucer) steerSwarm(view *WorldView) Vec2 {
	if len(view.Others) == 0 {
		return Vec2{}
	}
	var center Vec2
	for _, o := range view.Others {
		center = center.Add(o)
	}
	center = center.Scale(1.0 / float64(len(view.Others)))
	return center.Sub(s.pos).Normalize().Scale(s.speed * 0.5)
}

// steerPatrol produces the classic saucer weave: constant horizontal drift
// in the spawn direction with a sine-wave vertical bob. The oscillation
// phase only advances while the patrol behavior is actually weighted in.
func (s *Saucer) steerPatrol(dt float64) Vec2 {
	s.oscillation += oscillationRate * dt
	return Vec2{s.direction * s.speed, math.Sin(s.oscillation) * patrolWeave}
}

// steerIntercept heads for where the player will be in interceptLead
// seconds at their observed velocity.
func (s *Saucer) steerIntercept(view *WorldView) Vec2 {
	if !view.HasPlayer {
		return Vec2{}
	}
	future := s.playerPos.Add(s.playerVel.Scale(interceptLead))
	return future.Sub(s.pos).Normalize().Scale(s.speed)
}

// steerEvade pushes away from every player bullet inside evadeRadius,
// weighting closer bullets harder, then renormalizes to cruise speed.
func (s *Saucer) steerEvade(view *WorldView) Vec2 {
	var force Vec2
	for _, b := range view.Bullets {
		dist := s.pos.Dist(b)
		if dist >= evadeRadius {
			continue
		}
		away := s.pos.Sub(b).Normalize()
		strength := (evadeRadius - dist) / evadeRadius
		force = force.Add(away.Scale(strength))
	}
	if force.MagSq() == 0 {
		return Vec2{}
	}
	return force.Normalize().Scale(s.speed)
}

// steerAvoidAsteroids pushes away from asteroids inside avoidDistance with
// double the evade weighting, then renormalizes to cruise speed.
func (s *Saucer) steerAvoidAsteroids(view *WorldView) Vec2 {
	var force Vec2
	for _, a := range view.Asteroids {
		dist := s.pos.Dist(a)
		if dist >= avoidDistance {
			continue
		}
		away := s.pos.Sub(a).Normalize()
		strength := (avoidDistance - dist) / avoidDistance
		force = force.Add(away.Scale(strength * avoidPushStrength))
	}
	if force.MagSq() == 0 {
		return Vec2{}
	}
	return force.Normalize().Scale(s.speed)
}
