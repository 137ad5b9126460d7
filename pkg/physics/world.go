// pkg/physics/world.go
package physics

import (
	"math"

	"github.com/opd-ai/go-physics2d/pkg/event"
)

const (
	// velocityEpsilon is the threshold below which friction impulses are
	// dropped and post-friction velocity components snap to zero.
	velocityEpsilon = 0.01
	// penetrationSlop is the overlap tolerated before positional
	// correction kicks in.
	penetrationSlop = 0.01
	// correctionPercent is the fraction of the remaining penetration
	// corrected per frame (Baumgarte factor).
	correctionPercent = 0.2
)

// World owns a set of bodies and a spatial grid and advances them through
// the fixed per-frame collision pipeline. All state reachable from a
// world is mutated exclusively by Step; nothing here is safe to touch
// concurrently with an in-progress Step call.
type World struct {
	// Gravity is applied uniformly to every awake dynamic body each
	// integration.
	Gravity Vector2D

	grid *SpatialGrid

	// bodies is insertion-ordered. Pair generation and the resolver's
	// bodyA/bodyB asymmetry are order-sensitive, so the ordering is part
	// of the contract.
	bodies []*PhysicsBody

	// Per-frame buffers, cleared at post-step.
	pairs    []Pair
	contacts []Contact

	events *event.Bus
}

// NewWorld creates a world bound to the given grid
func NewWorld(grid *SpatialGrid) *World {
	return &World{grid: grid}
}

// SetEventBus attaches a bus that body registration and narrow-phase
// results are published on. A nil bus disables publishing.
func (w *World) SetEventBus(bus *event.Bus) {
	w.events = bus
}

// Bodies returns the world's body list in insertion order. The returned
// slice is the live backing store; treat it as read-only.
func (w *World) Bodies() []*PhysicsBody {
	return w.bodies
}

// AddBody registers a body with the world. The body joins the grid lazily
// on the next broad phase, not here.
func (w *World) AddBody(b *PhysicsBody) {
	w.bodies = append(w.bodies, b)
	if w.events != nil {
		w.events.Publish(event.NewBodyEvent(event.BodyAdded, w, int64(b.ID)))
	}
}

// RemoveBody unregisters a body, evicting it from the grid partitions if
// it is resident so the membership flag stays truthful.
func (w *World) RemoveBody(b *PhysicsBody) {
	for i, registered := range w.bodies {
		if registered == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	if b.inGrid {
		w.grid.RemoveBody(b)
	}
	if w.events != nil {
		w.events.Publish(event.NewBodyEvent(event.BodyRemoved, w, int64(b.ID)))
	}
}

// Step advances the simulation by dt time units. The six phases always
// run, in this order, to completion; no configuration can skip or
// reorder them.
func (w *World) Step(dt float64) {
	w.broadPhase()
	w.narrowPhase()
	w.resolveStaticCollisions()
	w.resolveDynamicCollisions()
	w.integrate(dt)
	w.clearFrame()
}

// broadPhase refreshes every body's AABB from its shape and position,
// then asks the grid for the frame's candidate pairs.
func (w *World) broadPhase() {
	for _, b := range w.bodies {
		switch s := b.Shape.(type) {
		case *Circle:
			b.Bounds = AABB{
				Min: Vector2D{X: b.Position.X - s.Radius, Y: b.Position.Y - s.Radius},
				Max: Vector2D{X: b.Position.X + s.Radius, Y: b.Position.Y + s.Radius},
			}
		default:
			// Unrecognized shape kinds keep their previous bounds. This is
			// the extension point for new shapes.
		}
	}
	w.pairs = w.grid.GeneratePairs(w.bodies)
}

// narrowPhase runs the exact intersection test on each candidate pair and
// wakes both bodies of every contact produced.
func (w *World) narrowPhase() {
	for _, p := range w.pairs {
		switch {
		case p.A.Shape.Kind() == ShapeCircle && p.B.Shape.Kind() == ShapeCircle:
			contact, ok := circleCircleContact(p.A, p.B, p.A.Shape.(*Circle), p.B.Shape.(*Circle))
			if !ok {
				continue
			}
			p.A.WakeUp()
			p.B.WakeUp()
			w.contacts = append(w.contacts, contact)
			w.publishContact(contact)
		default:
			// No narrow-phase test registered for this shape pairing.
		}
	}
}

// resolveStaticCollisions is a reserved phase for shape-specific
// static-only resolution. It is intentionally empty but always invoked so
// the pipeline shape does not change when it grows a body.
func (w *World) resolveStaticCollisions() {
}

// resolveDynamicCollisions runs one sequential-impulse pass over the
// frame's contacts.
func (w *World) resolveDynamicCollisions() {
	for i := range w.contacts {
		w.resolveContact(&w.contacts[i])
	}
}

// resolveContact applies the restitution impulse, Coulomb friction and
// positional correction for a single contact. Static bodies contribute
// zero inverse mass and are never moved. Sensor contacts are detection
// only. Two zero-mass dynamic bodies divide by zero here; only the
// both-static case is guarded.
func (w *World) resolveContact(c *Contact) {
	a, b := c.A, c.B
	if a.Static && b.Static {
		return
	}
	if a.Sensor || b.Sensor {
		return
	}

	invA := a.effectiveInvMass()
	invB := b.effectiveInvMass()
	invSum := invA + invB

	rv := b.Velocity.Sub(a.Velocity)
	velAlongNormal := rv.Dot(c.Normal)

	// Bodies separating along the normal get no impulse, but positional
	// correction below still runs.
	if velAlongNormal < 0 {
		e := math.Min(a.Restitution, b.Restitution)
		j := -(1 + e) * velAlongNormal / invSum
		if !a.Static {
			a.Velocity = a.Velocity.Sub(c.Normal.Scale(j * invA))
		}
		if !b.Static {
			b.Velocity = b.Velocity.Add(c.Normal.Scale(j * invB))
		}

		// Friction along the tangent of the pre-impulse relative velocity.
		// A purely normal approach leaves a zero tangent, which normalizes
		// to NaN and fails the magnitude gate below.
		tangent := rv.Sub(c.Normal.Scale(velAlongNormal))
		tangent.Normalize()
		jt := -rv.Dot(tangent) / invSum

		if math.Abs(jt) > velocityEpsilon {
			// Coulomb clamp against the normal impulse, using body A's
			// friction coefficient.
			var frictionImpulse float64
			if math.Abs(jt) < j*a.Friction {
				frictionImpulse = jt
			} else {
				frictionImpulse = -j * a.Friction
			}
			if !a.Static {
				a.Velocity = a.Velocity.Sub(tangent.Scale(frictionImpulse * invA))
				a.snapLowVelocity()
			}
			if !b.Static {
				b.Velocity = b.Velocity.Add(tangent.Scale(frictionImpulse * invB))
				b.snapLowVelocity()
			}
		}
	}

	correction := math.Max(c.Penetration-penetrationSlop, 0) / invSum * correctionPercent
	if !a.Static {
		a.Position = a.Position.Sub(c.Normal.Scale(correction * invA))
	}
	if !b.Static {
		b.Position = b.Position.Add(c.Normal.Scale(correction * invB))
	}
}

// integrate advances every body; static and sleeping bodies no-op
// internally.
func (w *World) integrate(dt float64) {
	for _, b := range w.bodies {
		b.Integrate(dt, w.Gravity)
	}
}

// clearFrame drops the frame's transient buffers.
func (w *World) clearFrame() {
	w.pairs = nil
	w.contacts = nil
}

func (w *World) publishContact(c Contact) {
	if w.events == nil {
		return
	}
	eventType := event.ContactDetected
	if c.A.Sensor || c.B.Sensor {
		eventType = event.SensorOverlap
	}
	w.events.Publish(event.NewContactEvent(eventType, w, int64(c.A.ID), int64(c.B.ID), c.Penetration))
}
