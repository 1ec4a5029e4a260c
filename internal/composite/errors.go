package composite

import "errors"

var (
	// ErrSizeMismatch indicates an overlay whose dimensions differ from the base.
	ErrSizeMismatch = errors.New("composite: layer size does not match base")
	// ErrUnknownBlendMode indicates a blend mode with no defined formula.
	ErrUnknownBlendMode = errors.New("composite: unknown blend mode")
)
