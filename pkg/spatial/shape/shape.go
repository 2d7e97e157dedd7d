// Package shape holds the local-space collision primitives tested by raycasts.
package shape

import "github.com/zeusync/spatial/pkg/spatial"

// Shape is local-space geometry a ray can be tested against.
//
// The set of shapes is closed: Empty, Sphere, Box, Plane and Compound.
type Shape interface {
	// Collides intersects a local-space ray with the shape.
	Collides(ray spatial.Ray) (Collision, bool)
	Kind() Kind

	sealed()
}

// Collision is a local-space intersection: the ray is inside the shape for
// TIn <= t <= TOut, and Normal is the surface normal at the entry point.
// TIn is negative when the ray starts inside the shape.
type Collision struct {
	TIn    float64
	TOut   float64
	Normal spatial.Vector3
}

// Kind identifies a shape variant
type Kind uint8

const (
	KindEmpty Kind = iota
	KindSphere
	KindBox
	KindPlane
	KindCompound
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindSphere:
		return "sphere"
	case KindBox:
		return "box"
	case KindPlane:
		return "plane"
	case KindCompound:
		return "compound"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "empty":
		return KindEmpty, true
	case "sphere":
		return KindSphere, true
	case "box":
		return KindBox, true
	case "plane":
		return KindPlane, true
	case "compound":
		return KindCompound, true
	default:
		return 0, false
	}
}

var (
	_ Shape = Empty{}
	_ Shape = Sphere{}
	_ Shape = Box{}
	_ Shape = Plane{}
	_ Shape = Compound{}
)
