package raycast

import "github.com/zeusync/spatial/pkg/spatial"

// RayCollision is a world-space hit of Ray against Hit.
type RayCollision[B any] struct {
	Ray    spatial.Ray
	Hit    B
	TIn    float64
	TOut   float64
	Normal spatial.Vector3
}

// Penetration is the length of ray parameter spent inside the body
func (c RayCollision[B]) Penetration() float64 {
	return c.TOut - c.TIn
}

// PosIn is where the ray enters the body
func (c RayCollision[B]) PosIn() spatial.Vector3 {
	return c.Ray.Point(c.TIn)
}

// PosOut is where the ray leaves the body
func (c RayCollision[B]) PosOut() spatial.Vector3 {
	return c.Ray.Point(c.TOut)
}
