// Package gpu is the GPU scene-graph engine.
//
// Display objects form a retained tree of containers, sprites, graphics and
// text. Transforms use radians and a pivot point. Color-matrix filters are
// attached to a node and applied to its rendered subtree on every frame,
// with offsets normalized to 0..1.
//
// Vector content is rasterized by github.com/gogpu/gg, which uses a
// registered GPU accelerator when one is available:
//
//	import _ "github.com/gogpu/gg/gpu"
//
// The engine registers itself with the backend registry on import:
//
//	import _ "github.com/entrylabs/ge/backend/gpu"
//
// Hit testing needs the interaction plugin, which every Application has
// unless it was created WithoutInteraction.
package gpu
