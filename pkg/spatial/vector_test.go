package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestVector3Arithmetic(t *testing.T) {
	a := NewVector3(1, 2, 3)
	b := NewVector3(4, 5, 6)

	assert.Equal(t, NewVector3(5, 7, 9), a.Add(b))
	assert.Equal(t, NewVector3(3, 3, 3), b.Sub(a))
	assert.Equal(t, NewVector3(4, 10, 18), a.Mul(b))
	assert.Equal(t, NewVector3(4, 2.5, 2), b.Div(a))
	assert.Equal(t, NewVector3(2, 4, 6), a.Scale(2))
	assert.Equal(t, NewVector3(0.5, 1, 1.5), a.DivScalar(2))
	assert.Equal(t, NewVector3(-1, -2, -3), a.Neg())
	assert.Equal(t, 32.0, a.Dot(b))
	assert.Equal(t, NewVector3(2.5, 3.5, 4.5), a.Midpoint(b))
}

func TestVector3Cross(t *testing.T) {
	assert.Equal(t, UnitZ, UnitX.Cross(UnitY))
	assert.Equal(t, UnitX, UnitY.Cross(UnitZ))
	assert.Equal(t, UnitY, UnitZ.Cross(UnitX))

	for _, v := range []Vector3{
		NewVector3(1, 2, 3),
		NewVector3(-0.3, 1e6, 7.25),
		NewVector3(1e-8, -4, 0),
	} {
		assert.True(t, v.Cross(v).ApproxEqual(ZeroVector3, eps), "v x v should vanish for %v", v)
	}
}

func TestVector3LengthAndDistance(t *testing.T) {
	v := NewVector3(3, 4, 0)
	assert.InDelta(t, 5.0, v.Length(), eps)
	assert.InDelta(t, 25.0, v.LengthSq(), eps)
	assert.InDelta(t, 5.0, ZeroVector3.Distance(v), eps)
	assert.InDelta(t, 25.0, ZeroVector3.DistanceSq(v), eps)
}

func TestVector3Normalize(t *testing.T) {
	n, err := NewVector3(3, 4, 0).Normalize()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, n.Length(), eps)
	assert.True(t, n.ApproxEqual(NewVector3(0.6, 0.8, 0), eps))

	_, err = ZeroVector3.Normalize()
	assert.ErrorIs(t, err, ErrDegenerateInput)

	_, err = NewVector3(math.Inf(1), 0, 0).Normalize()
	assert.ErrorIs(t, err, ErrDegenerateInput)
}

func TestVector3Components(t *testing.T) {
	v := NewVector3(-2, 0, 5)
	assert.Equal(t, NewVector3(2, 0, 5), v.Abs())
	assert.Equal(t, NewVector3(-1, 0, 1), v.Sign())
	assert.Equal(t, -2.0, v.MinComponent())
	assert.Equal(t, 5.0, v.MaxComponent())
	assert.Equal(t, NewVector3(-2, 0, 1), v.Min(OneVector3))
	assert.Equal(t, NewVector3(1, 1, 5), v.Max(OneVector3))
}

func TestVector3Angle(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vector3
		expected float64
	}{
		{"orthogonal", UnitX, UnitY, math.Pi / 2},
		{"parallel", NewVector3(2, 0, 0), NewVector3(5, 0, 0), 0},
		{"opposite", UnitX, UnitX.Neg(), math.Pi},
		{"diagonal", UnitX, NewVector3(1, 1, 0), math.Pi / 4},
		{"zero vector", ZeroVector3, UnitX, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Angle(tt.b)
			assert.False(t, math.IsNaN(got))
			assert.InDelta(t, tt.expected, got, 1e-7)
		})
	}
}

func TestVector3AngleClampsRounding(t *testing.T) {
	// Nearly parallel vectors whose cosine rounds above 1.
	a := NewVector3(0.1, 0.2, 0.3)
	b := a.Scale(3)
	assert.False(t, math.IsNaN(a.Angle(b)))
	assert.False(t, math.IsNaN(a.Angle(a.Neg())))
}

func TestVector2AndVector4(t *testing.T) {
	v2 := NewVector2(3, 4)
	assert.InDelta(t, 5.0, v2.Length(), eps)
	assert.Equal(t, NewVector2(-3, -4), v2.Neg())
	assert.InDelta(t, math.Pi/2, NewVector2(1, 0).Angle(NewVector2(0, 2)), eps)
	n2, err := v2.Normalize()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, n2.Length(), eps)
	_, err = Vector2{}.Normalize()
	assert.ErrorIs(t, err, ErrDegenerateInput)

	v4 := NewVector4(1, 2, 2, 4)
	assert.InDelta(t, 5.0, v4.Length(), eps)
	assert.Equal(t, 26.0, v4.Dot(NewVector4(2, 2, 2, 4)))
	assert.Equal(t, 1.0, v4.MinComponent())
	assert.Equal(t, 4.0, v4.MaxComponent())
	assert.Equal(t, NewVector3(1, 2, 2), v4.XYZ())
	_, err = Vector4{}.Normalize()
	assert.ErrorIs(t, err, ErrDegenerateInput)
}
