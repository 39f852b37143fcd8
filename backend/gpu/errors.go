package gpu

import "errors"

// Errors returned by the GPU engine.
var (
	// ErrInvalidDimensions is returned when a surface has no area.
	ErrInvalidDimensions = errors.New("gpu: invalid dimensions")

	// ErrApplicationDestroyed is returned by Render after Destroy.
	ErrApplicationDestroyed = errors.New("gpu: application destroyed")
)
