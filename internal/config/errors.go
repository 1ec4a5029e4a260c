package config

import "errors"

var (
	// ErrInvalidConfig indicates a value outside the range a sketch can draw.
	ErrInvalidConfig = errors.New("config: invalid value")
	// ErrUnsupportedFormat indicates a config file with an unknown extension.
	ErrUnsupportedFormat = errors.New("config: unsupported file format")
)
