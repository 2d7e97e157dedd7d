package scene

import "errors"

// Scene errors
var (
	ErrUnknownShapeType  = errors.New("unknown shape type")
	ErrInvalidVector     = errors.New("vector must have 3 components")
	ErrInvalidQuaternion = errors.New("quaternion must have 4 components")
	ErrAmbiguousRotation = errors.New("rotation must use exactly one of axis/angle, quaternion or direction/up")
	ErrUnsupportedFormat = errors.New("unsupported scene file extension")
	ErrMissingBodyName   = errors.New("body name is empty")
	ErrDuplicateBodyName = errors.New("duplicate body name")
)
