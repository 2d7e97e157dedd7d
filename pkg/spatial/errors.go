package spatial

import "errors"

// Math errors
var (
	// ErrDegenerateInput is returned when an operation would divide by a zero
	// length or norm (normalising a zero vector, inverting a zero quaternion,
	// building a rotation from collinear or empty axes).
	ErrDegenerateInput = errors.New("degenerate input")
)
