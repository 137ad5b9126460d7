// pkg/physics/collision.go
package physics

// Pair is a broad-phase candidate. A pair may never become a contact if
// the narrow-phase test rejects it.
type Pair struct {
	A *PhysicsBody
	B *PhysicsBody
}

// Contact describes a detected collision between two bodies. Contacts are
// produced fresh each frame and never persisted across frames.
type Contact struct {
	A *PhysicsBody
	B *PhysicsBody
	// Normal is the unit collision normal pointing from A to B.
	Normal Vector2D
	// Penetration is the overlap depth along the normal.
	Penetration float64
	// Point is the contact point on A's surface.
	Point Vector2D
}

// circleCircleContact performs the exact intersection test between two
// circle bodies. Circles touching exactly at their surfaces do not count
// as colliding. Coincident centers produce a NaN normal; that is the
// documented zero-length Normalize behavior, not a special case here.
func circleCircleContact(a, b *PhysicsBody, ca, cb *Circle) (Contact, bool) {
	delta := b.Position.Sub(a.Position)
	distance := delta.Length()

	if distance >= ca.Radius+cb.Radius {
		return Contact{}, false
	}

	normal := delta
	normal.Normalize()

	return Contact{
		A:           a,
		B:           b,
		Normal:      normal,
		Penetration: ca.Radius + cb.Radius - distance,
		Point:       a.Position.Add(normal.Scale(ca.Radius)),
	}, true
}
