package physics

import (
	"slices"

	"github.com/google/uuid"
	"github.com/zeusync/spatial/pkg/spatial"
	"github.com/zeusync/spatial/pkg/spatial/raycast"
	"github.com/zeusync/spatial/pkg/spatial/shape"
)

// BodyID identifies a body inside a World. It is the string form of a random UUID.
type BodyID string

// NewBodyID returns a fresh random id.
func NewBodyID() BodyID {
	return BodyID(uuid.NewString())
}

// ParseBodyID validates s as a UUID and returns it in canonical form.
func ParseBodyID(s string) (BodyID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return BodyID(id.String()), nil
}

func (id BodyID) String() string { return string(id) }

// Body is a snapshot of a registered body. Snapshots own their Tags; mutating a
// snapshot does not affect the World.
type Body struct {
	ID        BodyID
	Name      string
	Tags      []string
	Shape     shape.Shape
	Transform spatial.Transform

	seq uint64
}

var _ raycast.Collider = Body{}

func (b Body) CollisionShape() shape.Shape       { return b.Shape }
func (b Body) WorldTransform() spatial.Transform { return b.Transform }

func (b Body) HasTag(tag string) bool {
	return slices.Contains(b.Tags, tag)
}

func (b Body) clone() Body {
	b.Tags = slices.Clone(b.Tags)
	return b
}

// Filter selects bodies for a cast. A nil Filter accepts every body. Filters must
// not modify the body they are given.
type Filter func(Body) bool

// WithTag accepts bodies carrying tag.
func WithTag(tag string) Filter {
	return func(b Body) bool { return b.HasTag(tag) }
}

// Excluding rejects the listed bodies.
func Excluding(ids ...BodyID) Filter {
	return func(b Body) bool { return !slices.Contains(ids, b.ID) }
}

// All accepts a body only when every non-nil filter accepts it.
func All(filters ...Filter) Filter {
	return func(b Body) bool {
		for _, f := range filters {
			if f != nil && !f(b) {
				return false
			}
		}
		return true
	}
}
