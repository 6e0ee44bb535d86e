package game

import "math"

// Vec2 is a 2D vector used for positions, velocities, and steering forces.
// All methods are value receivers returning new vectors; nothing mutates.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by a scalar.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Mag returns the vector's length.
func (v Vec2) Mag() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// MagSq returns the squared length, cheaper when only comparing.
func (v Vec2) MagSq() float64 { return v.X*v.X + v.Y*v.Y }

// Normalize returns a unit-length copy, or the zero vector when the
// magnitude is zero.
func (v Vec2) Normalize() Vec2 {
	m := v.Mag()
	if m > 0 {
		return Vec2{v.X / m, v.Y / m}
	}
	return Vec2{}
}

// Limit caps the magnitude at max, preserving direction.
func (v Vec2) Limit(max float64) Vec2 {
	if v.MagSq() > max*max {
		return v.Normalize().Scale(max)
	}
	return v
}

// Rotate returns the vector rotated by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Heading returns the vector's direction in radians (atan2 of Y over X).
func (v Vec2) Heading() float64 { return math.Atan2(v.Y, v.X) }

// Dist returns the distance between two points.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Mag() }

// DistSq returns the squared distance between two points.
func (v Vec2) DistSq(o Vec2) float64 { return v.Sub(o).MagSq() }

// fromAngle builds a unit vector pointing along angle radians.
func fromAngle(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

// normalizeAngle wraps an angle to [-pi, pi].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
