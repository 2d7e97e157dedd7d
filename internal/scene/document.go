// Package scene reads YAML and JSON scene documents and turns them into bodies of a
// physics.World.
package scene

import (
	"fmt"
	"math"

	"github.com/zeusync/spatial/internal/core/systems/physics"
	"github.com/zeusync/spatial/pkg/concurrent"
	"github.com/zeusync/spatial/pkg/spatial"
	"github.com/zeusync/spatial/pkg/spatial/shape"
)

// Document is a named list of bodies.
type Document struct {
	Name   string     `json:"name" yaml:"name"`
	Bodies []BodySpec `json:"bodies" yaml:"bodies"`
}

type BodySpec struct {
	Name      string        `json:"name" yaml:"name"`
	Tags      []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Shape     ShapeSpec     `json:"shape" yaml:"shape"`
	Transform TransformSpec `json:"transform" yaml:"transform"`
}

// ShapeSpec describes a shape. Which fields apply depends on Type.
type ShapeSpec struct {
	Type       string      `json:"type" yaml:"type"`
	Radius     float64     `json:"radius,omitempty" yaml:"radius,omitempty"`
	HalfExtent []float64   `json:"half_extent,omitempty" yaml:"half_extent,omitempty"`
	Normal     []float64   `json:"normal,omitempty" yaml:"normal,omitempty"`
	Children   []ChildSpec `json:"children,omitempty" yaml:"children,omitempty"`
}

type ChildSpec struct {
	Shape     ShapeSpec     `json:"shape" yaml:"shape"`
	Transform TransformSpec `json:"transform" yaml:"transform"`
}

// TransformSpec is a translation plus an optional rotation. Missing parts are identity.
type TransformSpec struct {
	Translation []float64     `json:"translation,omitempty" yaml:"translation,omitempty"`
	Rotation    *RotationSpec `json:"rotation,omitempty" yaml:"rotation,omitempty"`
}

// RotationSpec accepts one of three forms: Axis with Angle in degrees, a raw
// Quaternion [x, y, z, w], or a Direction for local +Z with an optional Up for local +Y.
type RotationSpec struct {
	Axis       []float64 `json:"axis,omitempty" yaml:"axis,omitempty"`
	Angle      float64   `json:"angle,omitempty" yaml:"angle,omitempty"`
	Quaternion []float64 `json:"quaternion,omitempty" yaml:"quaternion,omitempty"`
	Direction  []float64 `json:"direction,omitempty" yaml:"direction,omitempty"`
	Up         []float64 `json:"up,omitempty" yaml:"up,omitempty"`
}

// Build constructs the shape, recursing into compound children.
func (s ShapeSpec) Build() (shape.Shape, error) {
	kind, ok := shape.ParseKind(s.Type)
	if !ok {
		return nil, fmt.Errorf("shape %q: %w", s.Type, ErrUnknownShapeType)
	}

	switch kind {
	case shape.KindEmpty:
		return shape.Empty{}, nil
	case shape.KindSphere:
		return shape.NewSphere(s.Radius)
	case shape.KindBox:
		he, err := vector(s.HalfExtent)
		if err != nil {
			return nil, fmt.Errorf("box half_extent: %w", err)
		}
		return shape.NewBox(he)
	case shape.KindPlane:
		n, err := vector(s.Normal)
		if err != nil {
			return nil, fmt.Errorf("plane normal: %w", err)
		}
		return shape.NewPlane(n)
	case shape.KindCompound:
		children := make([]shape.Child, 0, len(s.Children))
		for i, c := range s.Children {
			child, err := c.Shape.Build()
			if err != nil {
				return nil, fmt.Errorf("compound child %d: %w", i, err)
			}
			t, err := c.Transform.Build()
			if err != nil {
				return nil, fmt.Errorf("compound child %d: %w", i, err)
			}
			children = append(children, shape.Child{Shape: child, Transform: t})
		}
		return shape.NewCompound(children...)
	default:
		return nil, fmt.Errorf("shape %q: %w", s.Type, ErrUnknownShapeType)
	}
}

// Build returns the transform with a normalised rotation.
func (t TransformSpec) Build() (spatial.Transform, error) {
	translation := spatial.ZeroVector3
	if t.Translation != nil {
		v, err := vector(t.Translation)
		if err != nil {
			return spatial.Transform{}, fmt.Errorf("translation: %w", err)
		}
		translation = v
	}

	rotation := spatial.IdentityQuaternion
	if t.Rotation != nil {
		q, err := t.Rotation.Build()
		if err != nil {
			return spatial.Transform{}, fmt.Errorf("rotation: %w", err)
		}
		rotation = q
	}

	return spatial.NewTransform(rotation, translation)
}

func (r RotationSpec) Build() (spatial.Quaternion, error) {
	forms := 0
	for _, set := range []bool{r.Axis != nil, r.Quaternion != nil, r.Direction != nil} {
		if set {
			forms++
		}
	}
	if forms != 1 {
		return spatial.Quaternion{}, ErrAmbiguousRotation
	}

	switch {
	case r.Axis != nil:
		axis, err := vector(r.Axis)
		if err != nil {
			return spatial.Quaternion{}, fmt.Errorf("axis: %w", err)
		}
		return spatial.QuaternionAxisAngle(axis, r.Angle*math.Pi/180)
	case r.Quaternion != nil:
		if len(r.Quaternion) != 4 {
			return spatial.Quaternion{}, fmt.Errorf("got %d components: %w", len(r.Quaternion), ErrInvalidQuaternion)
		}
		q := r.Quaternion
		return spatial.NewQuaternion(q[0], q[1], q[2], q[3]).Normalize()
	default:
		dir, err := vector(r.Direction)
		if err != nil {
			return spatial.Quaternion{}, fmt.Errorf("direction: %w", err)
		}
		up := spatial.UnitY
		if r.Up != nil {
			if up, err = vector(r.Up); err != nil {
				return spatial.Quaternion{}, fmt.Errorf("up: %w", err)
			}
		}
		return spatial.QuaternionLooking(dir, up)
	}
}

// Validate builds every body without registering it and reports the first problem.
func (d *Document) Validate() error {
	_, err := d.buildAll()
	return err
}

type builtBody struct {
	spec      BodySpec
	shape     shape.Shape
	transform spatial.Transform
}

// buildAll checks names in document order, then builds the bodies concurrently.
// Results keep document order.
func (d *Document) buildAll() ([]builtBody, error) {
	seen := make(map[string]struct{}, len(d.Bodies))
	out := make([]builtBody, len(d.Bodies))
	for i, b := range d.Bodies {
		if b.Name == "" {
			return nil, fmt.Errorf("scene: body #%d: %w", i, ErrMissingBodyName)
		}
		if _, dup := seen[b.Name]; dup {
			return nil, fmt.Errorf("scene: body %q: %w", b.Name, ErrDuplicateBodyName)
		}
		seen[b.Name] = struct{}{}
		out[i].spec = b
	}

	bodies := func(yield func(*builtBody) bool) {
		for i := range out {
			if !yield(&out[i]) {
				return
			}
		}
	}
	err := concurrent.Concurrent(bodies, func(b *builtBody) error {
		var err error
		b.shape, b.transform, err = b.spec.build()
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b BodySpec) build() (shape.Shape, spatial.Transform, error) {
	s, err := b.Shape.Build()
	if err != nil {
		return nil, spatial.Transform{}, fmt.Errorf("scene: body %q: %w", b.Name, err)
	}
	t, err := b.Transform.Build()
	if err != nil {
		return nil, spatial.Transform{}, fmt.Errorf("scene: body %q: %w", b.Name, err)
	}
	return s, t, nil
}

// Populate validates the document and adds its bodies to w in document order. Nothing
// is added when validation fails; bodies added before a failing Add are removed again.
func (d *Document) Populate(w *physics.World) ([]physics.BodyID, error) {
	built, err := d.buildAll()
	if err != nil {
		return nil, err
	}

	ids := make([]physics.BodyID, 0, len(built))
	for _, b := range built {
		id, err := w.Add(b.spec.Name, b.shape, b.transform, b.spec.Tags...)
		if err != nil {
			for _, added := range ids {
				_ = w.Remove(added)
			}
			return nil, fmt.Errorf("scene: body %q: %w", b.spec.Name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func vector(v []float64) (spatial.Vector3, error) {
	if len(v) != 3 {
		return spatial.Vector3{}, fmt.Errorf("got %d components: %w", len(v), ErrInvalidVector)
	}
	return spatial.NewVector3(v[0], v[1], v[2]), nil
}
