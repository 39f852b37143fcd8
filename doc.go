// Package ge lets application code draw scenes on either of two 2D
// engines through one call surface.
//
// # Engines
//
// The GPU engine (backend/gpu) is a retained scene graph: rotation in
// radians, pivot and skew, color filters applied every frame and an
// interaction plugin for hit testing. The canvas engine (backend/canvas)
// is a display list: rotation in degrees, a registration point, filters
// that apply to cached objects only and pixel-exact hit testing.
//
// A Helper picks one engine at Init and forwards every call to it,
// translating arguments where the engines disagree:
//
//	h := ge.New(ge.WithLogger(slog.Default()))
//	if err := h.Init(useGPU); err != nil {
//		return err
//	}
//	app, err := h.NewApp(backend.Surface{ID: "stage", Width: 480, Height: 270})
//	...
//	sprite := h.NewSpriteWithURL("cat.png")
//
// Store rotation through RotateWrite and read it back through RotateRead
// so callers can work in degrees with either engine.
//
// # Objects
//
// Every object a Helper returns is a backend.Object owned by the active
// engine. Passing an object from the other engine returns
// backend.ErrForeignObject.
//
// # Process-wide helper
//
// Default returns the helper shared by the process. Replace it with
// SetDefault, typically once at startup.
package ge
