// pkg/physics/body.go
package physics

// BodyID is a unique identifier for a physics body. IDs are assigned by
// the caller; uniqueness is required, ordering is not.
type BodyID int64

// NoBody is the sentinel value for "no body", used by the transient
// pair-generation partner tag.
const NoBody BodyID = -1

const (
	// sleepVelocityEpsilon is the squared linear speed below which a body
	// accrues idle time.
	sleepVelocityEpsilon = 0.01
	// sleepIdleThreshold is the accumulated idle time after which a body
	// falls asleep.
	sleepIdleThreshold = 1.0
)

// PhysicsBody holds the physical state of a single simulated object.
// Position, velocity and the material coefficients may be mutated freely
// between Step calls, but never concurrently with one.
type PhysicsBody struct {
	ID       BodyID
	Position Vector2D
	Velocity Vector2D
	Shape    Shape

	Friction    float64
	Restitution float64
	LinearDrag  float64

	Static bool
	Sensor bool

	// Bounds is overwritten from Shape and Position every broad phase.
	Bounds AABB

	// mass and invMass are only ever written together via SetMass.
	mass    float64
	invMass float64

	sleeping bool
	idleTime float64

	// inGrid mirrors the body's actual presence in the grid partitions.
	inGrid bool

	// lastPartner is the pair-generation dedup tag, reset to NoBody at
	// the start of every broad phase.
	lastPartner BodyID
}

// NewPhysicsBody creates a body with the given identifier, mass and shape.
// Mass is not validated; a non-positive mass propagates a non-finite or
// negative inverse mass into the impulse math.
func NewPhysicsBody(id BodyID, mass float64, shape Shape) *PhysicsBody {
	b := &PhysicsBody{
		ID:          id,
		Shape:       shape,
		lastPartner: NoBody,
	}
	b.SetMass(mass)
	return b
}

// SetMass assigns the body's mass and derives the inverse mass in the
// same write, so the two are never observable in an inconsistent state.
func (b *PhysicsBody) SetMass(mass float64) {
	b.mass = mass
	b.invMass = 1 / mass
}

// Mass returns the body's mass
func (b *PhysicsBody) Mass() float64 {
	return b.mass
}

// InvMass returns the stored inverse mass. Resolution math uses
// effectiveInvMass instead, which zeroes it for static bodies.
func (b *PhysicsBody) InvMass() float64 {
	return b.invMass
}

// IsSleeping reports whether the body is in the sleeping state
func (b *PhysicsBody) IsSleeping() bool {
	return b.sleeping
}

// InGrid reports whether the body is currently resident in a spatial grid
func (b *PhysicsBody) InGrid() bool {
	return b.inGrid
}

// WakeUp transitions the body back to the awake state and resets its idle
// time. This is the only way out of the sleeping state; velocity alone
// never wakes a body.
func (b *PhysicsBody) WakeUp() {
	b.sleeping = false
	b.idleTime = 0
}

// ApplyForce adds f scaled by the inverse mass to the body's velocity.
// Static bodies ignore forces. Applying a force does not wake a sleeping
// body.
func (b *PhysicsBody) ApplyForce(f Vector2D) {
	if b.Static {
		return
	}
	b.Velocity = b.Velocity.Add(f.Scale(b.invMass))
}

// sleepTick advances the sleep state machine by dt. Nearly motionless
// bodies accumulate idle time; any faster frame resets it.
func (b *PhysicsBody) sleepTick(dt float64) {
	if b.Velocity.LengthSquared() < sleepVelocityEpsilon {
		b.idleTime += dt
	} else {
		b.idleTime = 0
	}
	if b.idleTime > sleepIdleThreshold {
		b.sleeping = true
	}
}

// Integrate advances the body by dt under the given gravity. Static
// bodies never integrate. Sleeping bodies run only the sleep check; drag,
// gravity and the position update are skipped until something wakes them.
func (b *PhysicsBody) Integrate(dt float64, gravity Vector2D) {
	if b.Static {
		return
	}
	b.sleepTick(dt)
	if b.sleeping {
		return
	}
	b.Velocity.X *= 1 - b.LinearDrag*dt
	b.Velocity.Y *= 1 - b.LinearDrag*dt
	b.Velocity = b.Velocity.Add(gravity.Scale(dt))
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
}

// effectiveInvMass is the inverse mass used by the resolver: zero for
// static bodies regardless of what SetMass stored.
func (b *PhysicsBody) effectiveInvMass() float64 {
	if b.Static {
		return 0
	}
	return b.invMass
}

// snapLowVelocity zeroes each velocity component whose magnitude is below
// the resting threshold. Called after a friction impulse lands.
func (b *PhysicsBody) snapLowVelocity() {
	if b.Velocity.X < velocityEpsilon && b.Velocity.X > -velocityEpsilon {
		b.Velocity.X = 0
	}
	if b.Velocity.Y < velocityEpsilon && b.Velocity.Y > -velocityEpsilon {
		b.Velocity.Y = 0
	}
}
