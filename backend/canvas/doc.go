// Package canvas is the canvas display-list engine.
//
// Display objects carry a position, scale, rotation and skew in degrees,
// and a registration point. A Stage draws its display list into a frame
// on every Update, after ticking each tick-enabled object.
//
// Color-matrix filters are 5x5 with offsets in 0..255 units. They take
// effect when an object is cached: Cache renders the object once, runs
// the filters over the result and draws from it until Uncache.
//
// Hit testing is pixel exact. HitTest draws an object into a 1x1 frame at
// a local point and checks the alpha there.
//
// Images load in the background. Attach OnLoad or call Wait before
// relying on an Image's size:
//
//	img := canvas.NewImage()
//	img.OnLoad(func() { stage.Update() })
//	img.SetSrc("cat.png")
//
// The engine registers itself with the backend registry on import:
//
//	import _ "github.com/entrylabs/ge/backend/canvas"
package canvas
