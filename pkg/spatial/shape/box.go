package shape

import (
	"fmt"
	"math"

	"github.com/zeusync/spatial/pkg/spatial"
)

// Box is an axis-aligned box centred on the local origin.
type Box struct {
	HalfExtent spatial.Vector3
}

// NewBox validates the half extents. Zero extents (flat boxes) are allowed.
func NewBox(halfExtent spatial.Vector3) (Box, error) {
	if !halfExtent.IsFinite() || halfExtent.MinComponent() < 0 {
		return Box{}, fmt.Errorf("box half extent %v: %w", halfExtent, ErrInvalidShape)
	}
	return Box{HalfExtent: halfExtent}, nil
}

// Collides uses the slab method. The entry normal belongs to the axis whose slab was
// entered last; when several axes are entered at the same t, x wins over y over z.
func (b Box) Collides(ray spatial.Ray) (Collision, bool) {
	if ray.Direction == spatial.ZeroVector3 {
		return Collision{}, false
	}
	xIn, xOut, ok := slab(ray.Origin.X, ray.Direction.X, b.HalfExtent.X)
	if !ok {
		return Collision{}, false
	}
	yIn, yOut, ok := slab(ray.Origin.Y, ray.Direction.Y, b.HalfExtent.Y)
	if !ok {
		return Collision{}, false
	}
	zIn, zOut, ok := slab(ray.Origin.Z, ray.Direction.Z, b.HalfExtent.Z)
	if !ok {
		return Collision{}, false
	}

	tN := math.Max(xIn, math.Max(yIn, zIn))
	tF := math.Min(xOut, math.Min(yOut, zOut))
	if tN > tF || tF < 0 {
		return Collision{}, false
	}

	var normal spatial.Vector3
	switch {
	case xIn >= yIn && xIn >= zIn:
		normal.X = -sign(ray.Direction.X)
	case yIn >= zIn:
		normal.Y = -sign(ray.Direction.Y)
	default:
		normal.Z = -sign(ray.Direction.Z)
	}

	return Collision{TIn: tN, TOut: tF, Normal: normal}, true
}

// slab intersects the ray with -h <= p <= h on one axis. A ray parallel to the slab
// either misses or stays inside it forever.
func slab(origin, dir, h float64) (tIn, tOut float64, ok bool) {
	if dir == 0 {
		if origin < -h || origin > h {
			return 0, 0, false
		}
		return math.Inf(-1), math.Inf(1), true
	}
	inv := 1 / dir
	t1 := (-h - origin) * inv
	t2 := (h - origin) * inv
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return t1, t2, true
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func (Box) Kind() Kind { return KindBox }
func (Box) sealed()    {}
