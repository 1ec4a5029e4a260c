package particle

import "errors"

// ErrInvalidConfig indicates a Config whose bounds cannot be satisfied.
var ErrInvalidConfig = errors.New("particle: invalid config")
