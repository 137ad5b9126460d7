// pkg/physics/shape.go
package physics

// ShapeKind tags the concrete geometry of a Shape. Dispatch on the kind
// pair is exhaustive in the narrow phase; an unhandled pairing is skipped
// rather than guessed at.
type ShapeKind int

const (
	// ShapeCircle is the only kind currently implemented.
	ShapeCircle ShapeKind = iota
)

// Shape is a polymorphic geometry descriptor. A shape instance is owned
// exclusively by the body it is attached to.
type Shape interface {
	Kind() ShapeKind
}

// Circle is a circular collision shape defined by its radius. The center
// is always the owning body's position.
type Circle struct {
	Radius float64
}

// NewCircle creates a circle shape with the given radius
func NewCircle(radius float64) *Circle {
	return &Circle{Radius: radius}
}

// Kind returns ShapeCircle
func (c *Circle) Kind() ShapeKind {
	return ShapeCircle
}

// AABB is an axis-aligned bounding box. Boxes are recomputed from shape
// and position every broad phase and carry no identity of their own.
type AABB struct {
	Min Vector2D
	Max Vector2D
}
