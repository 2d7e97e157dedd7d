package shape

import (
	"fmt"
	"math"

	"github.com/zeusync/spatial/pkg/spatial"
)

// ParallelEpsilon is the |direction·normal| below which a ray counts as parallel to a plane.
const ParallelEpsilon = 1e-12

// Plane is the infinitely thin, two-sided plane through the local origin with the
// given normal.
type Plane struct {
	Normal spatial.Vector3
}

// NewPlane normalises the normal; a zero normal is rejected.
func NewPlane(normal spatial.Vector3) (Plane, error) {
	n, err := normal.Normalize()
	if err != nil {
		return Plane{}, fmt.Errorf("plane normal %v: %w", normal, ErrInvalidShape)
	}
	return Plane{Normal: n}, nil
}

// Collides returns a zero-thickness hit (TIn == TOut). The reported normal faces the
// incoming ray.
func (p Plane) Collides(ray spatial.Ray) (Collision, bool) {
	denom := ray.Direction.Dot(p.Normal)
	if math.Abs(denom) < ParallelEpsilon {
		return Collision{}, false
	}

	t := -ray.Origin.Dot(p.Normal) / denom
	if t < 0 {
		return Collision{}, false
	}

	normal := p.Normal
	if denom > 0 {
		normal = normal.Neg()
	}
	return Collision{TIn: t, TOut: t, Normal: normal}, true
}

func (Plane) Kind() Kind { return KindPlane }
func (Plane) sealed()    {}
