package spatial

import "fmt"

// Transform is a rigid object-to-world mapping: rotate, then translate.
//
// Rotation is expected to be a unit quaternion. NewTransform guarantees it; a struct
// literal with a non-unit rotation produces a scaling, non-rigid mapping that the
// Invert family still undoes.
type Transform struct {
	Rotation    Quaternion
	Translation Vector3
}

// IdentityTransform leaves every point where it is.
var IdentityTransform = Transform{Rotation: IdentityQuaternion}

// NewTransform normalises rotation and pairs it with translation.
func NewTransform(rotation Quaternion, translation Vector3) (Transform, error) {
	r, err := rotation.Normalize()
	if err != nil {
		return Transform{}, fmt.Errorf("transform rotation: %w", err)
	}
	return Transform{Rotation: r, Translation: translation}, nil
}

// Translation returns a transform that only moves points
func Translation(v Vector3) Transform {
	return Transform{Rotation: IdentityQuaternion, Translation: v}
}

// Rotation returns a transform that only rotates points around the origin
func Rotation(q Quaternion) Transform {
	return Transform{Rotation: q, Translation: ZeroVector3}
}

// Apply maps a point from object space to world space
func (t Transform) Apply(v Vector3) Vector3 {
	return t.Rotation.Rotate(v).Add(t.Translation)
}

// ApplyDirection rotates a direction; translation does not affect directions
func (t Transform) ApplyDirection(v Vector3) Vector3 {
	return t.Rotation.Rotate(v)
}

// ApplyRay maps a ray from object space to world space
func (t Transform) ApplyRay(r Ray) Ray {
	if t.Rotation == IdentityQuaternion {
		return Ray{Origin: r.Origin.Add(t.Translation), Direction: r.Direction}
	}
	return Ray{Origin: t.Apply(r.Origin), Direction: t.Rotation.Rotate(r.Direction)}
}

// Invert maps a point from world space back to object space
func (t Transform) Invert(v Vector3) Vector3 {
	return t.inverseRotation().Rotate(v.Sub(t.Translation))
}

// InvertDirection rotates a world direction into object space
func (t Transform) InvertDirection(v Vector3) Vector3 {
	return t.inverseRotation().Rotate(v)
}

// InvertRay maps a ray from world space back to object space. A unit rotation
// preserves length, so ray parameters mean the same in both spaces.
func (t Transform) InvertRay(r Ray) Ray {
	if t.Rotation == IdentityQuaternion {
		return Ray{Origin: r.Origin.Sub(t.Translation), Direction: r.Direction}
	}
	inv := t.inverseRotation()
	return Ray{Origin: inv.Rotate(r.Origin.Sub(t.Translation)), Direction: inv.Rotate(r.Direction)}
}

// Inverse returns the world-to-object transform. The translation has to be rotated
// into the inverse frame; negating it alone is only correct without rotation.
func (t Transform) Inverse() Transform {
	inv := t.inverseRotation()
	return Transform{Rotation: inv, Translation: inv.Rotate(t.Translation.Neg())}
}

// inverseRotation is Rotation.Inverse. A zero rotation has no inverse and collapses
// every point onto the translation; its conjugate (also zero) is returned.
func (t Transform) inverseRotation() Quaternion {
	if t.Rotation == IdentityQuaternion {
		return IdentityQuaternion
	}
	inv, err := t.Rotation.Inverse()
	if err != nil {
		return t.Rotation.Conjugate()
	}
	return inv
}

// Compose returns the transform applying other first (child) and t second (parent).
func (t Transform) Compose(other Transform) Transform {
	return Transform{
		Rotation:    t.Rotation.Mul(other.Rotation),
		Translation: t.Rotation.Rotate(other.Translation).Add(t.Translation),
	}
}

// Plus is Compose under the name used by scene graphs ("parent plus child").
func (t Transform) Plus(other Transform) Transform {
	return t.Compose(other)
}

// ApproxEqual compares rotation and translation component-wise
func (t Transform) ApproxEqual(other Transform, eps float64) bool {
	return t.Rotation.ApproxEqual(other.Rotation, eps) && t.Translation.ApproxEqual(other.Translation, eps)
}

func (t Transform) String() string {
	return fmt.Sprintf("transform{rotation: %v, translation: %v}", t.Rotation, t.Translation)
}
