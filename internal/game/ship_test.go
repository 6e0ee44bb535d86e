package game

import (
	"math"
	"testing"
)

// --- Rate-of-fire curve ---

func TestUpdateRateOfFire_RampsToPeak(t *testing.T) {
	s := NewShip(0, 0)
	if s.shootInterval != rofStartInterval {
		t.Fatalf("fresh interval = %.4f, want %.4f", s.shootInterval, rofStartInterval)
	}

	// Quartic ramp: halfway through the ramp only 1/16th of the drop has
	// happened.
	s.updateRateOfFire(0.5, true)
	s.updateRateOfFire(0.5, true)
	want := rofStartInterval + (rofPeakInterval-rofStartInterval)*0.0625
	if math.Abs(s.shootInterval-want) > 1e-9 {
		t.Fatalf("interval at 1s = %.6f, want %.6f", s.shootInterval, want)
	}

	s.updateRateOfFire(0.5, true)
	s.updateRateOfFire(0.5, true)
	if math.Abs(s.shootInterval-rofPeakInterval) > 1e-9 {
		t.Fatalf("interval at peak time = %.6f, want %.6f", s.shootInterval, rofPeakInterval)
	}
}

func TestUpdateRateOfFire_FatigueEasesToFloor(t *testing.T) {
	s := NewShip(0, 0)
	for i := 0; i < 23; i++ { // 11.5s of sustained fire, past the curve end
		s.updateRateOfFire(0.5, true)
	}
	if math.Abs(s.shootInterval-rofFloorInterval) > 1e-9 {
		t.Fatalf("fatigued interval = %.6f, want floor %.6f", s.shootInterval, rofFloorInterval)
	}
	// The floor holds no matter how long the trigger stays down.
	s.updateRateOfFire(100, true)
	if math.Abs(s.shootInterval-rofFloorInterval) > 1e-9 {
		t.Fatalf("interval crept past the floor to %.6f", s.shootInterval)
	}
}

func TestUpdateRateOfFire_ReleaseResets(t *testing.T) {
	s := NewShip(0, 0)
	for i := 0; i < 8; i++ {
		s.updateRateOfFire(0.5, true)
	}
	s.updateRateOfFire(1.0/60.0, false)
	if s.rofTime != 0 || s.shootInterval != rofStartInterval {
		t.Fatalf("release left rofTime=%.3f interval=%.4f", s.rofTime, s.shootInterval)
	}
}

func TestFireSpeedMultiplier_Bands(t *testing.T) {
	s := NewShip(0, 0)
	cases := []struct {
		interval float64
		want     float64
	}{
		{rofStartInterval, 1.0},
		{0.13, 0.875},
		{rofFloorInterval, 0.75},
		{0.20, 0.75},
		{rofPeakInterval, 1.25},
		{0.03, 1.25},
	}
	for _, tc := range cases {
		s.shootInterval = tc.interval
		if got := s.fireSpeedMultiplier(); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("interval %.3f: multiplier = %.4f, want %.4f", tc.interval, got, tc.want)
		}
	}
}

// --- Thrust ---

func TestAccelMultiplier_Bands(t *testing.T) {
	s := NewShip(0, 0)
	cases := []struct {
		speed float64
		want  float64
	}{
		{0, 1.25},
		{499, 1.25},
		{500, 1.0},
		{750, 0.55},
		{1000, 0.1},
		{1500, 0.1},
	}
	for _, tc := range cases {
		s.vel = Vec2{tc.speed, 0}
		if got := s.accelMultiplier(); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("speed %.0f: accel multiplier = %.4f, want %.4f", tc.speed, got, tc.want)
		}
	}
}

func TestThrust_PushesAlongFacing(t *testing.T) {
	s := NewShip(0, 0)
	s.angle = math.Pi / 2
	s.Thrust(0.1)
	want := shipThrustPower * 1.25 * 0.1
	if math.Abs(s.vel.Y-want) > 1e-9 || math.Abs(s.vel.X) > 1e-9 {
		t.Fatalf("thrust velocity = (%.4f,%.4f), want (0,%.4f)", s.vel.X, s.vel.Y, want)
	}
	if !s.Thrusting() {
		t.Fatalf("thrust did not mark the ship as thrusting")
	}
	s.StopThrust()
	if s.Thrusting() {
		t.Fatalf("StopThrust did not clear the flag")
	}
}

func TestStrafe_PerpendicularToFacing(t *testing.T) {
	s := NewShip(0, 0)
	s.StrafeLeft(0.1)
	if s.vel.Y >= 0 {
		t.Fatalf("left strafe at facing 0 must push -Y, got %.4f", s.vel.Y)
	}
	s = NewShip(0, 0)
	s.StrafeRight(0.1)
	if s.vel.Y <= 0 {
		t.Fatalf("right strafe at facing 0 must push +Y, got %.4f", s.vel.Y)
	}
}

// --- Coasting decay ---

func TestUpdate_CoastDecaySnapsToStop(t *testing.T) {
	s := NewShip(100, 100)
	s.vel = Vec2{400, 0}
	s.StopThrust()

	s.Update(1.0, 1e6, 1e6)
	if math.Abs(s.vel.X-110) > 1e-6 {
		t.Fatalf("after 1s coast: speed = %.4f, want 110", s.vel.X)
	}
	s.Update(1.0, 1e6, 1e6)
	if math.Abs(s.vel.X-30.25) > 1e-6 {
		t.Fatalf("after 2s coast: speed = %.4f, want 30.25", s.vel.X)
	}
	// Below 10% of reference speed the decay runs at the 4th power.
	s.Update(1.0, 1e6, 1e6)
	if s.vel.X > 1 {
		t.Fatalf("slow coast did not snap toward zero, speed = %.4f", s.vel.X)
	}
}

func TestUpdate_ThrustingSkipsDecay(t *testing.T) {
	s := NewShip(100, 100)
	s.vel = Vec2{400, 0}
	s.thrusting = true
	s.Update(1.0, 1e6, 1e6)
	if s.vel.X != 400 {
		t.Fatalf("velocity decayed while thrusting: %.4f", s.vel.X)
	}
}

// --- Shields ---

func TestShieldRecharge_OnePointPerDuration(t *testing.T) {
	s := NewShip(0, 0)
	s.AbsorbHit()
	if s.Shields() != 2 {
		t.Fatalf("shields after hit = %d, want 2", s.Shields())
	}

	for i := 0; i < 5; i++ {
		s.Update(0.5, 1e6, 1e6)
	}
	if s.Shields() != 2 {
		t.Fatalf("shields regenerated early at 2.5s: %d", s.Shields())
	}
	s.Update(0.5, 1e6, 1e6)
	if s.Shields() != 3 {
		t.Fatalf("shields after 3s = %d, want 3", s.Shields())
	}
	// Restoring the final point fires the full-recharge pulse.
	if s.shieldPulseTimer <= 0 {
		t.Fatalf("full recharge did not pulse")
	}
}

func TestAbsorbHit_RestartsRechargeClock(t *testing.T) {
	s := NewShip(0, 0)
	s.AbsorbHit()
	s.Update(2.0, 1e6, 1e6)
	s.AbsorbHit()
	if s.Shields() != 1 {
		t.Fatalf("shields = %d, want 1", s.Shields())
	}
	if s.shieldRecharge != 0 {
		t.Fatalf("recharge clock = %.2f after a hit, want 0", s.shieldRecharge)
	}
	// Only 2s more puts the first point back at 3s from the second hit.
	s.Update(2.0, 1e6, 1e6)
	if s.Shields() != 1 {
		t.Fatalf("shields regenerated early: %d", s.Shields())
	}
	s.Update(1.0, 1e6, 1e6)
	if s.Shields() != 2 {
		t.Fatalf("shields = %d after a full recharge window, want 2", s.Shields())
	}
}

func TestShieldRecharge_IdleAtFull(t *testing.T) {
	s := NewShip(0, 0)
	s.Update(10, 1e6, 1e6)
	if s.Shields() != shieldMaxHits {
		t.Fatalf("full shields drifted to %d", s.Shields())
	}
	if s.shieldRecharge != 0 {
		t.Fatalf("recharge clock ran while shields were full: %.2f", s.shieldRecharge)
	}
}

// --- Spawn protection ---

func TestMakeInvulnerable_Expires(t *testing.T) {
	s := NewShip(0, 0)
	s.MakeInvulnerable(0.5)
	s.Update(0.25, 1e6, 1e6)
	if !s.Invulnerable() {
		t.Fatalf("protection expired at half its duration")
	}
	s.Update(0.3, 1e6, 1e6)
	if s.Invulnerable() {
		t.Fatalf("protection still running past its duration")
	}
}

func TestResetForLevel_Recenters(t *testing.T) {
	s := NewShip(50, 50)
	s.vel = Vec2{300, -200}
	s.angle = 2.2
	s.AbsorbHit()
	s.AbsorbHit()

	s.ResetForLevel(1280, 720)
	if s.Pos() != (Vec2{640, 360}) {
		t.Fatalf("reset position = (%.1f,%.1f), want center", s.Pos().X, s.Pos().Y)
	}
	if s.Vel() != (Vec2{}) || s.Angle() != 0 {
		t.Fatalf("reset left motion: vel=(%.1f,%.1f) angle=%.2f", s.Vel().X, s.Vel().Y, s.Angle())
	}
	if s.Shields() != shieldMaxHits {
		t.Fatalf("reset shields = %d, want %d", s.Shields(), shieldMaxHits)
	}
	if !s.Invulnerable() {
		t.Fatalf("reset ship must get spawn protection")
	}
}
