package spatial

import "github.com/go-gl/mathgl/mgl64"

// Conversions to and from go-gl/mathgl for callers that render or simulate with it.

// Vec3 converts v to an mgl64 vector
func (v Vector3) Vec3() mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// Vector3FromVec3 converts an mgl64 vector
func Vector3FromVec3(v mgl64.Vec3) Vector3 {
	return Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// Quat converts q to an mgl64 quaternion
func (q Quaternion) Quat() mgl64.Quat {
	return mgl64.Quat{W: q.W, V: mgl64.Vec3{q.X, q.Y, q.Z}}
}

// QuaternionFromQuat converts an mgl64 quaternion
func QuaternionFromQuat(q mgl64.Quat) Quaternion {
	return Quaternion{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W}
}

// Mat4 returns the homogeneous matrix of the transform
func (t Transform) Mat4() mgl64.Mat4 {
	return mgl64.Translate3D(t.Translation.X, t.Translation.Y, t.Translation.Z).Mul4(t.Rotation.Quat().Mat4())
}
