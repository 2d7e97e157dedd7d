package raycast

import (
	"iter"
	"slices"

	"github.com/zeusync/spatial/pkg/spatial"
)

// Cast returns the body whose entry parameter TIn is smallest among all bodies the
// ray hits with TIn <= maxDistance. Bodies rejected by test are skipped; a nil test
// accepts every body. On equal TIn the body yielded first wins.
//
// TIn is negative when the ray starts inside a body.
func Cast[B Collider](ray spatial.Ray, bodies iter.Seq[B], maxDistance float64, test func(B) bool) (RayCollision[B], bool) {
	var (
		best  RayCollision[B]
		found bool
	)
	for body := range bodies {
		hit, ok := collide(ray, body, maxDistance, test)
		if !ok {
			continue
		}
		if !found || hit.TIn < best.TIn {
			best = hit
			found = true
		}
	}
	return best, found
}

// CastSlice is Cast over a slice
func CastSlice[B Collider](ray spatial.Ray, bodies []B, maxDistance float64, test func(B) bool) (RayCollision[B], bool) {
	return Cast(ray, slices.Values(bodies), maxDistance, test)
}

// CastAll returns every hit with TIn <= maxDistance ordered by TIn. Hits with equal TIn
// keep the order in which their bodies were yielded.
func CastAll[B Collider](ray spatial.Ray, bodies iter.Seq[B], maxDistance float64, test func(B) bool) []RayCollision[B] {
	var hits []RayCollision[B]
	for body := range bodies {
		if hit, ok := collide(ray, body, maxDistance, test); ok {
			hits = append(hits, hit)
		}
	}
	slices.SortStableFunc(hits, func(a, b RayCollision[B]) int {
		switch {
		case a.TIn < b.TIn:
			return -1
		case a.TIn > b.TIn:
			return 1
		default:
			return 0
		}
	})
	return hits
}

func collide[B Collider](ray spatial.Ray, body B, maxDistance float64, test func(B) bool) (RayCollision[B], bool) {
	if test != nil && !test(body) {
		return RayCollision[B]{}, false
	}
	s := body.CollisionShape()
	if s == nil {
		return RayCollision[B]{}, false
	}

	transform := body.WorldTransform()
	local, ok := s.Collides(transform.InvertRay(ray))
	if !ok || local.TIn > maxDistance {
		return RayCollision[B]{}, false
	}

	return RayCollision[B]{
		Ray:    ray,
		Hit:    body,
		TIn:    local.TIn,
		TOut:   local.TOut,
		Normal: transform.Rotation.Rotate(local.Normal),
	}, true
}
