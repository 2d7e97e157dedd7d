package shape

import (
	"fmt"

	"github.com/zeusync/spatial/pkg/spatial"
)

// Child is a shape placed inside a Compound.
type Child struct {
	Shape     Shape
	Transform spatial.Transform
}

// Compound groups child shapes, each with its own local transform.
type Compound struct {
	Children []Child
}

// NewCompound rejects children without a shape.
func NewCompound(children ...Child) (Compound, error) {
	for i, child := range children {
		if child.Shape == nil {
			return Compound{}, fmt.Errorf("compound child %d has no shape: %w", i, ErrInvalidShape)
		}
	}
	return Compound{Children: children}, nil
}

// Collides returns the hit of the nearest child (smallest TIn, earlier child on ties),
// with the normal expressed in the compound's space.
func (c Compound) Collides(ray spatial.Ray) (Collision, bool) {
	var (
		best  Collision
		found bool
	)
	for _, child := range c.Children {
		if child.Shape == nil {
			continue
		}
		hit, ok := child.Shape.Collides(child.Transform.InvertRay(ray))
		if !ok {
			continue
		}
		if !found || hit.TIn < best.TIn {
			hit.Normal = child.Transform.ApplyDirection(hit.Normal)
			best = hit
			found = true
		}
	}
	return best, found
}

func (Compound) Kind() Kind { return KindCompound }
func (Compound) sealed()    {}
