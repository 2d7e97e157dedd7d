package spatial

import (
	"fmt"
	"math"
)

// Quaternion is a rotation in 3D space stored as (X, Y, Z, W) with W the scalar part.
//
// Rotation operations are only rigid for unit quaternions. The type does not enforce
// unit norm; use Normalize or the constructors below to obtain one.
type Quaternion struct {
	X, Y, Z, W float64
}

var (
	IdentityQuaternion = Quaternion{W: 1}
	ZeroQuaternion     = Quaternion{}
)

// SlerpLinearThreshold is the 1-|cos θ| value at or below which Slerp falls back to
// linear interpolation, keeping sin θ away from zero.
const SlerpLinearThreshold = 0.1

// antiParallelEpsilon bounds how close the dot of two unit vectors may get to ±1
// before QuaternionFromTo treats them as parallel.
const antiParallelEpsilon = 1e-9

// collinearEpsilon is the squared cross-product length under which two directions are
// treated as collinear.
const collinearEpsilon = 1e-12

// NewQuaternion creates a quaternion from its raw components
func NewQuaternion(x, y, z, w float64) Quaternion {
	return Quaternion{X: x, Y: y, Z: z, W: w}
}

// QuaternionAxisAngle returns the rotation of angle radians around axis.
func QuaternionAxisAngle(axis Vector3, angle float64) (Quaternion, error) {
	n, err := axis.Normalize()
	if err != nil {
		return Quaternion{}, fmt.Errorf("axis angle: %w", err)
	}
	s, c := math.Sincos(angle / 2)
	return Quaternion{X: n.X * s, Y: n.Y * s, Z: n.Z * s, W: c}, nil
}

// Vector returns the imaginary part
func (q Quaternion) Vector() Vector3 {
	return Vector3{X: q.X, Y: q.Y, Z: q.Z}
}

func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Norm returns the squared length x²+y²+z²+w²
func (q Quaternion) Norm() float64 {
	return q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
}

func (q Quaternion) Length() float64 {
	return math.Sqrt(q.Norm())
}

func (q Quaternion) Add(other Quaternion) Quaternion {
	return Quaternion{X: q.X + other.X, Y: q.Y + other.Y, Z: q.Z + other.Z, W: q.W + other.W}
}

func (q Quaternion) Scale(s float64) Quaternion {
	return Quaternion{X: q.X * s, Y: q.Y * s, Z: q.Z * s, W: q.W * s}
}

func (q Quaternion) Dot(other Quaternion) float64 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Normalize returns the unit quaternion with the same orientation.
func (q Quaternion) Normalize() (Quaternion, error) {
	length := q.Length()
	if !usableLength(length) {
		return Quaternion{}, fmt.Errorf("normalize quaternion %v: %w", q, ErrDegenerateInput)
	}
	return q.Scale(1 / length), nil
}

// Inverse returns conjugate / norm. For unit quaternions this equals Conjugate.
func (q Quaternion) Inverse() (Quaternion, error) {
	norm := q.Norm()
	if !(norm > 0) || math.IsInf(norm, 0) {
		return Quaternion{}, fmt.Errorf("invert quaternion %v: %w", q, ErrDegenerateInput)
	}
	return q.Conjugate().Scale(1 / norm), nil
}

// Mul returns the Hamilton product q * other. Rotating by the result applies other
// first and q second.
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate applies the rotation to v using the expanded sandwich product q v q*.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	u := q.Vector()
	s := q.W
	return u.Scale(2 * u.Dot(v)).
		Add(v.Scale(s*s - u.Dot(u))).
		Add(u.Cross(v).Scale(2 * s))
}

// ApproxEqual compares components with tolerance eps. q and -q encode the same
// rotation but are not considered equal here.
func (q Quaternion) ApproxEqual(other Quaternion, eps float64) bool {
	return math.Abs(q.X-other.X) <= eps &&
		math.Abs(q.Y-other.Y) <= eps &&
		math.Abs(q.Z-other.Z) <= eps &&
		math.Abs(q.W-other.W) <= eps
}

// SameRotation reports whether q and other rotate identically within eps.
func (q Quaternion) SameRotation(other Quaternion, eps float64) bool {
	return math.Abs(math.Abs(q.Dot(other))-1) <= eps
}

func (q Quaternion) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", q.X, q.Y, q.Z, q.W)
}

// Slerp interpolates between q1 and q2 along the shortest arc. t=0 yields q1, t=1 yields
// q2 (or -q2 when that is the shorter way round).
func Slerp(q1, q2 Quaternion, t float64) Quaternion {
	dot := q1.Dot(q2)
	if dot < 0 {
		q2 = q2.Scale(-1)
		dot = -dot
	}

	if 1-dot <= SlerpLinearThreshold {
		lerp := q1.Scale(1 - t).Add(q2.Scale(t))
		if n, err := lerp.Normalize(); err == nil {
			return n
		}
		return lerp
	}

	theta := math.Acos(clamp(dot, -1, 1))
	sinTheta := math.Sin(theta)
	a := math.Sin((1-t)*theta) / sinTheta
	b := math.Sin(t*theta) / sinTheta
	return q1.Scale(a).Add(q2.Scale(b))
}

// QuaternionOfAxes converts an orthonormal basis into the rotation mapping the unit
// axes onto x, y and z. The branch is chosen by the trace and the largest diagonal
// term of the implied rotation matrix.
func QuaternionOfAxes(x, y, z Vector3) Quaternion {
	// Matrix columns are the axes: m[row][col] = axis_col.row.
	m00, m01, m02 := x.X, y.X, z.X
	m10, m11, m12 := x.Y, y.Y, z.Y
	m20, m21, m22 := x.Z, y.Z, z.Z

	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		return Quaternion{
			X: (m21 - m12) / s,
			Y: (m02 - m20) / s,
			Z: (m10 - m01) / s,
			W: s / 4,
		}
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		return Quaternion{
			X: s / 4,
			Y: (m01 + m10) / s,
			Z: (m02 + m20) / s,
			W: (m21 - m12) / s,
		}
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		return Quaternion{
			X: (m01 + m10) / s,
			Y: s / 4,
			Z: (m12 + m21) / s,
			W: (m02 - m20) / s,
		}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		return Quaternion{
			X: (m02 + m20) / s,
			Y: (m12 + m21) / s,
			Z: s / 4,
			W: (m10 - m01) / s,
		}
	}
}

// QuaternionFromTo returns the shortest rotation turning from onto to.
func QuaternionFromTo(from, to Vector3) (Quaternion, error) {
	f, err := from.Normalize()
	if err != nil {
		return Quaternion{}, fmt.Errorf("from-to rotation: %w", err)
	}
	t, err := to.Normalize()
	if err != nil {
		return Quaternion{}, fmt.Errorf("from-to rotation: %w", err)
	}

	dot := f.Dot(t)
	if dot >= 1-antiParallelEpsilon {
		return IdentityQuaternion, nil
	}
	if dot <= -1+antiParallelEpsilon {
		// Any axis orthogonal to from works for a half turn.
		axis := UnitX.Cross(f)
		if axis.LengthSq() < collinearEpsilon {
			axis = UnitY.Cross(f)
		}
		axis, _ = axis.Normalize()
		return Quaternion{X: axis.X, Y: axis.Y, Z: axis.Z}, nil
	}

	c := f.Cross(t)
	return Quaternion{X: c.X, Y: c.Y, Z: c.Z, W: 1 + dot}.Normalize()
}

// QuaternionLooking returns the rotation that points local +Z along dir with local +Y
// as close to up as possible. When dir and up are collinear the roll is undefined and
// the shortest rotation from +Z to dir is returned instead.
func QuaternionLooking(dir, up Vector3) (Quaternion, error) {
	z, err := dir.Normalize()
	if err != nil {
		return Quaternion{}, fmt.Errorf("look rotation: %w", err)
	}
	side := up.Cross(z)
	if side.LengthSq() < collinearEpsilon {
		return QuaternionFromTo(UnitZ, z)
	}
	x, err := side.Normalize()
	if err != nil {
		return QuaternionFromTo(UnitZ, z)
	}
	y := z.Cross(x)
	return QuaternionOfAxes(x, y, z), nil
}
