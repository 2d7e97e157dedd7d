// Package raycast finds what a world-space ray hits first among positioned shapes.
package raycast

import (
	"github.com/zeusync/spatial/pkg/spatial"
	"github.com/zeusync/spatial/pkg/spatial/shape"
)

// Collider is anything placed in the world that a ray can hit.
type Collider interface {
	CollisionShape() shape.Shape
	WorldTransform() spatial.Transform
}

// Body places a shape in world space. Callers replace fields to move or reshape it.
type Body struct {
	Shape     shape.Shape
	Transform spatial.Transform
}

var _ Collider = Body{}

// NewBody pairs a shape with its world transform
func NewBody(s shape.Shape, t spatial.Transform) Body {
	return Body{Shape: s, Transform: t}
}

func (b Body) CollisionShape() shape.Shape       { return b.Shape }
func (b Body) WorldTransform() spatial.Transform { return b.Transform }
