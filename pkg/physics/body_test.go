// pkg/physics/body_test.go
package physics

import (
	"math"
	"testing"
)

func TestPhysicsBody_SetMass(t *testing.T) {
	tests := []struct {
		name            string
		mass            float64
		expectedInvMass float64
	}{
		{"unit_mass", 1, 1},
		{"heavy_body", 4, 0.25},
		{"light_body", 0.5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := NewPhysicsBody(1, tt.mass, NewCircle(1))
			if body.Mass() != tt.mass {
				t.Errorf("Mass() = %v, expected %v", body.Mass(), tt.mass)
			}
			if body.InvMass() != tt.expectedInvMass {
				t.Errorf("InvMass() = %v, expected %v", body.InvMass(), tt.expectedInvMass)
			}
		})
	}

	t.Run("reassignment_rederives_inverse", func(t *testing.T) {
		body := NewPhysicsBody(1, 2, NewCircle(1))
		body.SetMass(8)

		if body.InvMass() != 0.125 {
			t.Errorf("InvMass() after SetMass(8) = %v, expected 0.125", body.InvMass())
		}
	})

	t.Run("zero_mass_propagates_infinity", func(t *testing.T) {
		// Mass is not validated; the non-finite inverse is the documented
		// pass-through behavior.
		body := NewPhysicsBody(1, 0, NewCircle(1))

		if !math.IsInf(body.InvMass(), 1) {
			t.Errorf("InvMass() for zero mass = %v, expected +Inf", body.InvMass())
		}
	})
}

func TestPhysicsBody_ApplyForce(t *testing.T) {
	t.Run("scales_by_inverse_mass", func(t *testing.T) {
		body := NewPhysicsBody(1, 2, NewCircle(1))
		body.ApplyForce(Vector2D{X: 4, Y: -6})

		if body.Velocity.X != 2 || body.Velocity.Y != -3 {
			t.Errorf("Velocity after ApplyForce = %v, expected {2 -3}", body.Velocity)
		}
	})

	t.Run("static_body_ignores_force", func(t *testing.T) {
		body := NewPhysicsBody(1, 2, NewCircle(1))
		body.Static = true
		body.ApplyForce(Vector2D{X: 100, Y: 100})

		if body.Velocity.X != 0 || body.Velocity.Y != 0 {
			t.Errorf("static body velocity = %v, expected zero", body.Velocity)
		}
	})

	t.Run("does_not_wake_sleeping_body", func(t *testing.T) {
		body := NewPhysicsBody(1, 1, NewCircle(1))
		body.sleeping = true
		body.ApplyForce(Vector2D{X: 5, Y: 0})

		if !body.IsSleeping() {
			t.Error("ApplyForce woke the body; only WakeUp may do that")
		}
	})
}

func TestPhysicsBody_SleepStateMachine(t *testing.T) {
	t.Run("idle_body_falls_asleep_after_threshold", func(t *testing.T) {
		body := NewPhysicsBody(1, 1, NewCircle(1))
		// Squared speed 0.005, below the 0.01 threshold.
		body.Velocity = Vector2D{X: 0.05, Y: 0.05}

		for i := 0; i < 10; i++ {
			body.Integrate(0.1, Vector2D{})
			if body.IsSleeping() {
				t.Fatalf("body slept after %v time units, threshold is 1.0", float64(i+1)*0.1)
			}
		}
		// Crosses 1.0 cumulative idle time on this call.
		body.Integrate(0.1, Vector2D{})

		if !body.IsSleeping() {
			t.Error("body should be sleeping after 1.1 idle time units")
		}
	})

	t.Run("fast_frame_resets_idle_time", func(t *testing.T) {
		body := NewPhysicsBody(1, 1, NewCircle(1))
		body.Velocity = Vector2D{X: 0.05, Y: 0.05}
		for i := 0; i < 9; i++ {
			body.Integrate(0.1, Vector2D{})
		}

		body.Velocity = Vector2D{X: 1, Y: 0}
		body.Integrate(0.1, Vector2D{})

		if body.idleTime != 0 {
			t.Errorf("idleTime = %v after a fast frame, expected 0", body.idleTime)
		}
		if body.IsSleeping() {
			t.Error("body slept despite the idle timer being reset")
		}
	})

	t.Run("sleeping_body_skips_integration", func(t *testing.T) {
		body := NewPhysicsBody(1, 1, NewCircle(1))
		body.Position = Vector2D{X: 5, Y: 5}
		body.sleeping = true

		body.Integrate(0.016, Vector2D{X: 0, Y: -9.8})

		if body.Position.X != 5 || body.Position.Y != 5 {
			t.Errorf("sleeping body moved to %v", body.Position)
		}
		if body.Velocity.Y != 0 {
			t.Errorf("sleeping body accumulated gravity, velocity = %v", body.Velocity)
		}
	})

	t.Run("velocity_alone_never_wakes", func(t *testing.T) {
		body := NewPhysicsBody(1, 1, NewCircle(1))
		body.sleeping = true
		body.Velocity = Vector2D{X: 10, Y: 10}

		body.Integrate(0.016, Vector2D{})

		if !body.IsSleeping() {
			t.Error("sleep state cleared by velocity; only WakeUp may clear it")
		}
	})

	t.Run("wake_up_resets_idle_time", func(t *testing.T) {
		body := NewPhysicsBody(1, 1, NewCircle(1))
		body.sleeping = true
		body.idleTime = 2.5

		body.WakeUp()

		if body.IsSleeping() {
			t.Error("WakeUp() left the body sleeping")
		}
		if body.idleTime != 0 {
			t.Errorf("idleTime = %v after WakeUp, expected 0", body.idleTime)
		}
	})
}

func TestPhysicsBody_Integrate(t *testing.T) {
	t.Run("applies_drag_gravity_then_position", func(t *testing.T) {
		body := NewPhysicsBody(1, 1, NewCircle(1))
		body.Velocity = Vector2D{X: 10, Y: 0}
		body.LinearDrag = 0.5
		gravity := Vector2D{X: 0, Y: -10}

		body.Integrate(0.1, gravity)

		// Drag first: 10 * (1 - 0.5*0.1) = 9.5. Then gravity: y = -1.
		if body.Velocity.X != 9.5 {
			t.Errorf("Velocity.X = %v, expected 9.5", body.Velocity.X)
		}
		if body.Velocity.Y != -1 {
			t.Errorf("Velocity.Y = %v, expected -1", body.Velocity.Y)
		}
		// Position uses the post-drag, post-gravity velocity.
		if body.Position.X != 0.95 {
			t.Errorf("Position.X = %v, expected 0.95", body.Position.X)
		}
		if body.Position.Y != -0.1 {
			t.Errorf("Position.Y = %v, expected -0.1", body.Position.Y)
		}
	})

	t.Run("static_body_never_integrates", func(t *testing.T) {
		body := NewPhysicsBody(1, 1, NewCircle(1))
		body.Static = true
		body.Velocity = Vector2D{X: 1, Y: 1}

		body.Integrate(1, Vector2D{X: 0, Y: -9.8})

		if body.Position.X != 0 || body.Position.Y != 0 {
			t.Errorf("static body moved to %v", body.Position)
		}
		if body.idleTime != 0 {
			t.Error("static body accrued idle time")
		}
	})
}
