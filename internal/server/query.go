package server

import (
	"fmt"
	"math"

	"github.com/zeusync/spatial/internal/core/systems/physics"
	"github.com/zeusync/spatial/pkg/spatial"
	"github.com/zeusync/spatial/pkg/spatial/raycast"
)

// Query is a single raycast request. Direction need not be unit length; it is
// normalised so that t values in the response are distances.
type Query struct {
	Origin      []float64 `json:"origin"`
	Direction   []float64 `json:"direction"`
	MaxDistance *float64  `json:"max_distance,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Exclude     []string  `json:"exclude,omitempty"`
	All         bool      `json:"all,omitempty"`
}

// Response answers a Query. For a nearest-hit query the hit fields are inlined; for
// an all-hits query they are listed in Hits ordered by distance.
type Response struct {
	Hit bool `json:"hit"`
	*HitInfo
	Hits  []HitInfo `json:"hits,omitempty"`
	Error string    `json:"error,omitempty"`
}

type HitInfo struct {
	Body        BodyInfo   `json:"body"`
	TIn         float64    `json:"t_in"`
	TOut        float64    `json:"t_out"`
	Penetration float64    `json:"penetration"`
	Normal      [3]float64 `json:"normal"`
	PosIn       [3]float64 `json:"pos_in"`
	PosOut      [3]float64 `json:"pos_out"`
}

type BodyInfo struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Kind        string     `json:"kind"`
	Tags        []string   `json:"tags,omitempty"`
	Translation [3]float64 `json:"translation"`
	Rotation    [4]float64 `json:"rotation"`
}

type castRequest struct {
	ray         spatial.Ray
	maxDistance float64
	filter      physics.Filter
	all         bool
}

// resolve validates q. limit caps the requested distance and is used when none is given.
func (q Query) resolve(limit float64) (castRequest, error) {
	origin, err := queryVector("origin", q.Origin)
	if err != nil {
		return castRequest{}, err
	}
	direction, err := queryVector("direction", q.Direction)
	if err != nil {
		return castRequest{}, err
	}
	ray, err := spatial.NewRay(origin, direction).Normalize()
	if err != nil {
		return castRequest{}, fmt.Errorf("%w: direction: %w", ErrInvalidQuery, err)
	}

	maxDistance := limit
	if q.MaxDistance != nil {
		d := *q.MaxDistance
		if math.IsNaN(d) || d < 0 {
			return castRequest{}, fmt.Errorf("%w: max_distance %g", ErrInvalidQuery, d)
		}
		maxDistance = math.Min(d, limit)
	}

	filters := make([]physics.Filter, 0, len(q.Tags)+1)
	for _, tag := range q.Tags {
		filters = append(filters, physics.WithTag(tag))
	}
	if len(q.Exclude) > 0 {
		ids := make([]physics.BodyID, 0, len(q.Exclude))
		for _, s := range q.Exclude {
			id, err := physics.ParseBodyID(s)
			if err != nil {
				return castRequest{}, fmt.Errorf("%w: exclude %q: %w", ErrInvalidQuery, s, err)
			}
			ids = append(ids, id)
		}
		filters = append(filters, physics.Excluding(ids...))
	}

	var filter physics.Filter
	if len(filters) > 0 {
		filter = physics.All(filters...)
	}

	return castRequest{ray: ray, maxDistance: maxDistance, filter: filter, all: q.All}, nil
}

func queryVector(field string, v []float64) (spatial.Vector3, error) {
	if len(v) != 3 {
		return spatial.Vector3{}, fmt.Errorf("%w: %s needs 3 components, got %d", ErrInvalidQuery, field, len(v))
	}
	vec := spatial.NewVector3(v[0], v[1], v[2])
	if !vec.IsFinite() {
		return spatial.Vector3{}, fmt.Errorf("%w: %s is not finite", ErrInvalidQuery, field)
	}
	return vec, nil
}

func newHitInfo(c raycast.RayCollision[physics.Body]) HitInfo {
	return HitInfo{
		Body:        newBodyInfo(c.Hit),
		TIn:         c.TIn,
		TOut:        c.TOut,
		Penetration: c.Penetration(),
		Normal:      array3(c.Normal),
		PosIn:       array3(c.PosIn()),
		PosOut:      array3(c.PosOut()),
	}
}

func newBodyInfo(b physics.Body) BodyInfo {
	r := b.Transform.Rotation
	info := BodyInfo{
		ID:          b.ID.String(),
		Name:        b.Name,
		Tags:        b.Tags,
		Translation: array3(b.Transform.Translation),
		Rotation:    [4]float64{r.X, r.Y, r.Z, r.W},
	}
	if b.Shape != nil {
		info.Kind = b.Shape.Kind().String()
	}
	return info
}

func array3(v spatial.Vector3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
