// Package backend defines the engine abstraction behind the ge facade.
//
// Each engine package implements RenderBackend once and registers a factory
// from its init function:
//
//	import (
//		_ "github.com/entrylabs/ge/backend/canvas"
//		_ "github.com/entrylabs/ge/backend/gpu"
//	)
//
// # Engine Selection
//
// Select returns the engine matching the mode flag, initialized:
//
//	b, err := backend.Select(useGPU, backend.Config{Logger: logger})
//	if err != nil {
//		return err
//	}
//	app, err := b.NewApp(backend.Surface{ID: "entryCanvas", Width: 480, Height: 270})
//
// # Objects
//
// Engines hand out opaque Object handles. Passing a handle created by one
// engine to the other fails with ErrForeignObject; nothing is converted
// between engines.
//
// # Available Backends
//
//   - "gpu": retained scene graph, radians, live filters
//   - "canvas": display list, degrees, cached filters, pixel hit-testing
package backend
