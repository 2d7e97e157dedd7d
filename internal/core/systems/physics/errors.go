package physics

import "errors"

// World errors
var (
	ErrBodyNotFound = errors.New("body not found")
	ErrNilShape     = errors.New("body shape is nil")
)
