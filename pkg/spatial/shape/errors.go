package shape

import "errors"

var (
	ErrInvalidShape = errors.New("invalid shape")
)
