package spatial

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAxisAngle(t testing.TB, axis Vector3, angle float64) Quaternion {
	t.Helper()
	q, err := QuaternionAxisAngle(axis, angle)
	require.NoError(t, err)
	return q
}

func sampleRotations(t testing.TB) []Quaternion {
	return []Quaternion{
		IdentityQuaternion,
		mustAxisAngle(t, UnitX, math.Pi/3),
		mustAxisAngle(t, UnitY, -2.1),
		mustAxisAngle(t, NewVector3(1, 1, 1), 0.7),
		mustAxisAngle(t, NewVector3(-0.2, 0.9, 0.4), math.Pi),
		mustAxisAngle(t, NewVector3(3, -1, 2), 5.5),
	}
}

func TestQuaternionInverseIsIdentity(t *testing.T) {
	for _, q := range sampleRotations(t) {
		inv, err := q.Inverse()
		require.NoError(t, err)
		assert.True(t, q.Mul(inv).ApproxEqual(IdentityQuaternion, eps), "q*q⁻¹ for %v", q)
		assert.True(t, inv.ApproxEqual(q.Conjugate(), eps), "unit inverse is the conjugate")
	}
}

func TestQuaternionDegenerate(t *testing.T) {
	_, err := ZeroQuaternion.Inverse()
	assert.ErrorIs(t, err, ErrDegenerateInput)

	_, err = ZeroQuaternion.Normalize()
	assert.ErrorIs(t, err, ErrDegenerateInput)

	_, err = QuaternionAxisAngle(ZeroVector3, 1)
	assert.ErrorIs(t, err, ErrDegenerateInput)
}

func TestQuaternionInverseOfNonUnit(t *testing.T) {
	q := NewQuaternion(0, 0, 2, 2)
	inv, err := q.Inverse()
	require.NoError(t, err)
	assert.True(t, q.Mul(inv).ApproxEqual(IdentityQuaternion, eps))
}

func TestQuaternionRotate(t *testing.T) {
	q := mustAxisAngle(t, UnitZ, math.Pi/2)
	assert.True(t, q.Rotate(UnitX).ApproxEqual(UnitY, eps))
	assert.True(t, q.Rotate(UnitY).ApproxEqual(UnitX.Neg(), eps))
	assert.True(t, q.Rotate(UnitZ).ApproxEqual(UnitZ, eps))
	assert.Equal(t, NewVector3(1, 2, 3), IdentityQuaternion.Rotate(NewVector3(1, 2, 3)))
}

func TestQuaternionRotateMatchesMathgl(t *testing.T) {
	v := NewVector3(0.3, -1.7, 2.2)
	for _, q := range sampleRotations(t) {
		want := Vector3FromVec3(q.Quat().Rotate(v.Vec3()))
		assert.True(t, q.Rotate(v).ApproxEqual(want, 1e-9), "rotation by %v", q)
	}
}

func TestQuaternionMulOrder(t *testing.T) {
	// q1.Mul(q2) applies q2 first.
	q1 := mustAxisAngle(t, UnitZ, math.Pi/2)
	q2 := mustAxisAngle(t, UnitX, math.Pi/2)
	v := UnitY

	composed := q1.Mul(q2).Rotate(v)
	stepwise := q1.Rotate(q2.Rotate(v))
	assert.True(t, composed.ApproxEqual(stepwise, eps))

	want := QuaternionFromQuat(q1.Quat().Mul(q2.Quat()))
	assert.True(t, q1.Mul(q2).ApproxEqual(want, eps))
}

func TestSlerp(t *testing.T) {
	a := mustAxisAngle(t, UnitY, 0)
	b := mustAxisAngle(t, UnitY, math.Pi/2)

	assert.True(t, Slerp(a, b, 0).ApproxEqual(a, eps))
	assert.True(t, Slerp(a, b, 1).ApproxEqual(b, eps))

	mid := Slerp(a, b, 0.5)
	assert.True(t, mid.ApproxEqual(mustAxisAngle(t, UnitY, math.Pi/4), eps))
	assert.InDelta(t, 1.0, mid.Length(), eps)

	want := QuaternionFromQuat(mgl64.QuatSlerp(a.Quat(), b.Quat(), 0.3))
	assert.True(t, Slerp(a, b, 0.3).ApproxEqual(want, 1e-9))
}

func TestSlerpSameRotation(t *testing.T) {
	for _, q := range sampleRotations(t) {
		for _, f := range []float64{0, 0.25, 0.5, 0.9, 1} {
			assert.True(t, Slerp(q, q, f).ApproxEqual(q, eps), "slerp(q, q, %v)", f)
		}
	}
}

func TestSlerpShortestPath(t *testing.T) {
	a := mustAxisAngle(t, UnitZ, 0.2)
	b := mustAxisAngle(t, UnitZ, 0.6).Scale(-1)

	mid := Slerp(a, b, 0.5)
	assert.True(t, mid.SameRotation(mustAxisAngle(t, UnitZ, 0.4), eps))
}

func TestSlerpLinearFallback(t *testing.T) {
	a := mustAxisAngle(t, UnitX, 0.01)
	b := mustAxisAngle(t, UnitX, 0.02)
	require.LessOrEqual(t, 1-a.Dot(b), SlerpLinearThreshold)

	mid := Slerp(a, b, 0.5)
	assert.InDelta(t, 1.0, mid.Length(), eps)
	assert.True(t, mid.SameRotation(mustAxisAngle(t, UnitX, 0.015), 1e-9))
}

func TestQuaternionOfAxesBranches(t *testing.T) {
	tests := []struct {
		name string
		q    Quaternion
	}{
		{"identity (positive trace)", IdentityQuaternion},
		{"small angle", mustAxisAngle(t, NewVector3(1, 2, 3), 0.4)},
		{"half turn around x", mustAxisAngle(t, UnitX, math.Pi)},
		{"half turn around y", mustAxisAngle(t, UnitY, math.Pi)},
		{"half turn around z", mustAxisAngle(t, UnitZ, math.Pi)},
		{"large angle", mustAxisAngle(t, NewVector3(-1, 0.5, 0.2), 3)},
		{"large angle y-dominant", mustAxisAngle(t, NewVector3(0.1, 1, -0.2), 2.9)},
		{"large angle z-dominant", mustAxisAngle(t, NewVector3(0.2, -0.1, 1), 3.1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := tt.q.Rotate(UnitX)
			y := tt.q.Rotate(UnitY)
			z := tt.q.Rotate(UnitZ)

			got := QuaternionOfAxes(x, y, z)
			assert.InDelta(t, 1.0, got.Length(), 1e-9)
			assert.True(t, got.SameRotation(tt.q, 1e-9), "got %v want %v", got, tt.q)
		})
	}
}

func TestQuaternionFromTo(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vector3
	}{
		{"orthogonal", UnitX, UnitY},
		{"arbitrary", NewVector3(1, 2, 3), NewVector3(-3, 0.5, 1)},
		{"parallel", NewVector3(0, 2, 0), UnitY},
		{"anti-parallel x", UnitX, UnitX.Neg()},
		{"anti-parallel y", NewVector3(0, 3, 0), NewVector3(0, -1, 0)},
		{"anti-parallel skew", NewVector3(1, 1, 1), NewVector3(-2, -2, -2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := QuaternionFromTo(tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, q.Length(), 1e-9)

			from, _ := tt.from.Normalize()
			to, _ := tt.to.Normalize()
			assert.True(t, q.Rotate(from).ApproxEqual(to, 1e-9), "rotated %v", q.Rotate(from))
		})
	}

	_, err := QuaternionFromTo(ZeroVector3, UnitX)
	assert.ErrorIs(t, err, ErrDegenerateInput)
}

func TestQuaternionLooking(t *testing.T) {
	dir := NewVector3(1, 0, 1)
	q, err := QuaternionLooking(dir, UnitY)
	require.NoError(t, err)

	want, _ := dir.Normalize()
	assert.True(t, q.Rotate(UnitZ).ApproxEqual(want, 1e-9))
	// Up stays in the plane spanned by dir and world up.
	assert.InDelta(t, 0, q.Rotate(UnitY).Dot(want.Cross(UnitY)), 1e-9)
	assert.Greater(t, q.Rotate(UnitY).Y, 0.0)
}

func TestQuaternionLookingCollinearFallsBack(t *testing.T) {
	q, err := QuaternionLooking(UnitY, UnitY)
	require.NoError(t, err)
	assert.True(t, q.Rotate(UnitZ).ApproxEqual(UnitY, 1e-9))

	q, err = QuaternionLooking(UnitZ.Neg(), UnitZ)
	require.NoError(t, err)
	assert.True(t, q.Rotate(UnitZ).ApproxEqual(UnitZ.Neg(), 1e-9))

	_, err = QuaternionLooking(ZeroVector3, UnitY)
	assert.ErrorIs(t, err, ErrDegenerateInput)
}

func BenchmarkQuaternionRotate(b *testing.B) {
	q := mustAxisAngle(b, NewVector3(1, 2, 3), 0.8)
	v := NewVector3(4, 5, 6)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		v = q.Rotate(v)
	}
}
