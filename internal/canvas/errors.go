package canvas

import "errors"

// ErrInvalidSize indicates a surface was requested with a non-positive width or height.
var ErrInvalidSize = errors.New("canvas: width and height must be positive")
