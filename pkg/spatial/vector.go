package spatial

import (
	"fmt"
	"math"
)

// Vector3 represents a 3D point or direction.
type Vector3 struct {
	X, Y, Z float64
}

// Common vectors
var (
	ZeroVector3 = Vector3{}
	OneVector3  = Vector3{X: 1, Y: 1, Z: 1}
	UnitX       = Vector3{X: 1}
	UnitY       = Vector3{Y: 1}
	UnitZ       = Vector3{Z: 1}
)

// NewVector3 creates a new 3D vector
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum of two vectors
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns the component-wise difference of two vectors
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Mul returns the component-wise product of two vectors
func (v Vector3) Mul(other Vector3) Vector3 {
	return Vector3{X: v.X * other.X, Y: v.Y * other.Y, Z: v.Z * other.Z}
}

// Div returns the component-wise quotient of two vectors
func (v Vector3) Div(other Vector3) Vector3 {
	return Vector3{X: v.X / other.X, Y: v.Y / other.Y, Z: v.Z / other.Z}
}

// Scale multiplies every component by s
func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// DivScalar divides every component by s
func (v Vector3) DivScalar(s float64) Vector3 {
	return Vector3{X: v.X / s, Y: v.Y / s, Z: v.Z / s}
}

// Neg returns the vector pointing the opposite way
func (v Vector3) Neg() Vector3 {
	return Vector3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Dot returns the dot product of two vectors
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// LengthSq returns the squared magnitude of the vector
func (v Vector3) LengthSq() float64 {
	return v.Dot(v)
}

// Length returns the magnitude of the vector
func (v Vector3) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

// Normalize returns a unit vector in the same direction.
// A zero or non-finite length yields ErrDegenerateInput.
func (v Vector3) Normalize() (Vector3, error) {
	length := v.Length()
	if !usableLength(length) {
		return Vector3{}, fmt.Errorf("normalize %v: %w", v, ErrDegenerateInput)
	}
	return v.DivScalar(length), nil
}

// Abs returns the component-wise absolute value
func (v Vector3) Abs() Vector3 {
	return Vector3{X: math.Abs(v.X), Y: math.Abs(v.Y), Z: math.Abs(v.Z)}
}

// Sign returns -1, 0 or 1 per component
func (v Vector3) Sign() Vector3 {
	return Vector3{X: sign(v.X), Y: sign(v.Y), Z: sign(v.Z)}
}

// Min returns a vector with the minimum components of two vectors
func (v Vector3) Min(other Vector3) Vector3 {
	return Vector3{X: math.Min(v.X, other.X), Y: math.Min(v.Y, other.Y), Z: math.Min(v.Z, other.Z)}
}

// Max returns a vector with the maximum components of two vectors
func (v Vector3) Max(other Vector3) Vector3 {
	return Vector3{X: math.Max(v.X, other.X), Y: math.Max(v.Y, other.Y), Z: math.Max(v.Z, other.Z)}
}

// MinComponent returns the smallest of X, Y and Z
func (v Vector3) MinComponent() float64 {
	return math.Min(v.X, math.Min(v.Y, v.Z))
}

// MaxComponent returns the largest of X, Y and Z
func (v Vector3) MaxComponent() float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

// Distance returns the distance between two points
func (v Vector3) Distance(other Vector3) float64 {
	return v.Sub(other).Length()
}

// DistanceSq returns the squared distance between two points
func (v Vector3) DistanceSq(other Vector3) float64 {
	return v.Sub(other).LengthSq()
}

// Midpoint returns the point halfway between v and other
func (v Vector3) Midpoint(other Vector3) Vector3 {
	return v.Add(other).Scale(0.5)
}

// Angle returns the angle between two vectors in radians, in [0, π].
// The angle against a zero vector is 0.
func (v Vector3) Angle(other Vector3) float64 {
	return angle(v.Dot(other), v.Length()*other.Length())
}

// ApproxEqual reports whether every component differs by at most eps
func (v Vector3) ApproxEqual(other Vector3, eps float64) bool {
	return math.Abs(v.X-other.X) <= eps &&
		math.Abs(v.Y-other.Y) <= eps &&
		math.Abs(v.Z-other.Z) <= eps
}

// IsFinite reports whether no component is NaN or infinite
func (v Vector3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Vector2 represents a 2D point or direction.
type Vector2 struct {
	X, Y float64
}

// NewVector2 creates a new 2D vector
func NewVector2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vector2) Mul(other Vector2) Vector2 {
	return Vector2{X: v.X * other.X, Y: v.Y * other.Y}
}

func (v Vector2) Div(other Vector2) Vector2 {
	return Vector2{X: v.X / other.X, Y: v.Y / other.Y}
}

func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

func (v Vector2) DivScalar(s float64) Vector2 {
	return Vector2{X: v.X / s, Y: v.Y / s}
}

func (v Vector2) Neg() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

func (v Vector2) Dot(other Vector2) float64 {
	return v.X*other.X + v.Y*other.Y
}

func (v Vector2) LengthSq() float64 {
	return v.Dot(v)
}

func (v Vector2) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

func (v Vector2) Abs() Vector2 {
	return Vector2{X: math.Abs(v.X), Y: math.Abs(v.Y)}
}

func (v Vector2) Sign() Vector2 {
	return Vector2{X: sign(v.X), Y: sign(v.Y)}
}

func (v Vector2) MinComponent() float64 {
	return math.Min(v.X, v.Y)
}

func (v Vector2) MaxComponent() float64 {
	return math.Max(v.X, v.Y)
}

func (v Vector2) Distance(other Vector2) float64 {
	return v.Sub(other).Length()
}

func (v Vector2) Midpoint(other Vector2) Vector2 {
	return v.Add(other).Scale(0.5)
}

// Normalize returns a unit vector in the same direction, or ErrDegenerateInput.
func (v Vector2) Normalize() (Vector2, error) {
	length := v.Length()
	if !usableLength(length) {
		return Vector2{}, fmt.Errorf("normalize %v: %w", v, ErrDegenerateInput)
	}
	return v.DivScalar(length), nil
}

// Angle returns the unsigned angle between two vectors in radians.
func (v Vector2) Angle(other Vector2) float64 {
	return angle(v.Dot(other), v.Length()*other.Length())
}

// Vector4 represents a homogeneous 4-component vector.
type Vector4 struct {
	X, Y, Z, W float64
}

// NewVector4 creates a new 4D vector
func NewVector4(x, y, z, w float64) Vector4 {
	return Vector4{X: x, Y: y, Z: z, W: w}
}

func (v Vector4) Add(other Vector4) Vector4 {
	return Vector4{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z, W: v.W + other.W}
}

func (v Vector4) Sub(other Vector4) Vector4 {
	return Vector4{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z, W: v.W - other.W}
}

func (v Vector4) Mul(other Vector4) Vector4 {
	return Vector4{X: v.X * other.X, Y: v.Y * other.Y, Z: v.Z * other.Z, W: v.W * other.W}
}

func (v Vector4) Div(other Vector4) Vector4 {
	return Vector4{X: v.X / other.X, Y: v.Y / other.Y, Z: v.Z / other.Z, W: v.W / other.W}
}

func (v Vector4) Scale(s float64) Vector4 {
	return Vector4{X: v.X * s, Y: v.Y * s, Z: v.Z * s, W: v.W * s}
}

func (v Vector4) DivScalar(s float64) Vector4 {
	return Vector4{X: v.X / s, Y: v.Y / s, Z: v.Z / s, W: v.W / s}
}

func (v Vector4) Neg() Vector4 {
	return Vector4{X: -v.X, Y: -v.Y, Z: -v.Z, W: -v.W}
}

func (v Vector4) Dot(other Vector4) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

func (v Vector4) LengthSq() float64 {
	return v.Dot(v)
}

func (v Vector4) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

func (v Vector4) Abs() Vector4 {
	return Vector4{X: math.Abs(v.X), Y: math.Abs(v.Y), Z: math.Abs(v.Z), W: math.Abs(v.W)}
}

func (v Vector4) Sign() Vector4 {
	return Vector4{X: sign(v.X), Y: sign(v.Y), Z: sign(v.Z), W: sign(v.W)}
}

func (v Vector4) MinComponent() float64 {
	return math.Min(math.Min(v.X, v.Y), math.Min(v.Z, v.W))
}

func (v Vector4) MaxComponent() float64 {
	return math.Max(math.Max(v.X, v.Y), math.Max(v.Z, v.W))
}

func (v Vector4) Distance(other Vector4) float64 {
	return v.Sub(other).Length()
}

func (v Vector4) Midpoint(other Vector4) Vector4 {
	return v.Add(other).Scale(0.5)
}

// Normalize returns a unit vector in the same direction, or ErrDegenerateInput.
func (v Vector4) Normalize() (Vector4, error) {
	length := v.Length()
	if !usableLength(length) {
		return Vector4{}, fmt.Errorf("normalize %v: %w", v, ErrDegenerateInput)
	}
	return v.DivScalar(length), nil
}

// Angle returns the unsigned angle between two vectors in radians.
func (v Vector4) Angle(other Vector4) float64 {
	return angle(v.Dot(other), v.Length()*other.Length())
}

// XYZ drops the W component
func (v Vector4) XYZ() Vector3 {
	return Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

// angle computes acos(dot/lengths). The cosine is clamped because rounding can push it
// just outside [-1, 1].
func angle(dot, lengths float64) float64 {
	if lengths == 0 {
		return 0
	}
	return math.Acos(clamp(dot/lengths, -1, 1))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
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

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func usableLength(length float64) bool {
	return length > 0 && isFinite(length)
}
