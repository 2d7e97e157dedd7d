package shape

import (
	"fmt"
	"math"

	"github.com/zeusync/spatial/pkg/spatial"
)

// Sphere is centred on the local origin.
type Sphere struct {
	Radius float64
}

// NewSphere validates the radius. A Sphere literal skips this check.
func NewSphere(radius float64) (Sphere, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Sphere{}, fmt.Errorf("sphere radius %g: %w", radius, ErrInvalidShape)
	}
	return Sphere{Radius: radius}, nil
}

func (s Sphere) Collides(ray spatial.Ray) (Collision, bool) {
	a := ray.Direction.Dot(ray.Direction)
	if a == 0 {
		return Collision{}, false
	}
	b := ray.Origin.Dot(ray.Direction)
	c := ray.Origin.Dot(ray.Origin) - s.Radius*s.Radius

	// Outside and pointing away.
	if c > 0 && b > 0 {
		return Collision{}, false
	}

	disc := b*b - a*c
	if disc < 0 {
		return Collision{}, false
	}

	root := math.Sqrt(disc)
	tIn := (-b - root) / a
	tOut := (-b + root) / a

	return Collision{
		TIn:    tIn,
		TOut:   tOut,
		Normal: ray.Point(tIn).DivScalar(s.Radius),
	}, true
}

func (Sphere) Kind() Kind { return KindSphere }
func (Sphere) sealed()    {}
