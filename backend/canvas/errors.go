package canvas

import "errors"

// Errors returned by the canvas engine.
var (
	// ErrInvalidDimensions is returned when a surface has no area.
	ErrInvalidDimensions = errors.New("canvas: invalid dimensions")

	// ErrApplicationDestroyed is returned by Render after Destroy.
	ErrApplicationDestroyed = errors.New("canvas: application destroyed")

	// ErrNoBounds is returned by Cache for objects without bounds.
	ErrNoBounds = errors.New("canvas: object has no bounds")

	// ErrImageNotLoaded is returned by Image.Wait when loading failed.
	ErrImageNotLoaded = errors.New("canvas: image not loaded")
)
