// Package lime is the 2D scene and animation engine underneath the Tangerine
// editor.
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree; each node has a GUID, a
// string Id, typed properties, a [Components] side table and one [Animator]
// per animated property.
//
//	root := lime.NewFrame("root")
//	img := lime.NewImage("hero", nil, lime.Vec2{X: 32, Y: 32})
//	root.AddNode(img)
//
// # Properties and animators
//
// Properties are registered by name ([RegisterProperty]) and read or written
// generically with [Node.Get] and [Node.Set]. An animator keeps keyframes
// sorted by frame and interpolates between them; a key added at an existing
// frame replaces it.
//
//	pos := lime.AnimatorFor[lime.Vec2](img, lime.PropPosition)
//	pos.Add(0, lime.Vec2{})
//	pos.Add(10, lime.Vec2{X: 100})
//	pos.Evaluate(5) // {50 0}
//
// Segments can be shaped with an [Easing]; easings map onto the [gween]
// easing functions.
//
// # Components
//
// Components attach arbitrary typed state to a node (or any other owner of
// a [Components] value) without changing the Node type:
//
//	sel := lime.GetOrAdd[Selection](&img.Components)
//
// # Rendering and resources
//
// [Renderer] evaluates animators at the current frame and draws image nodes
// with [Ebitengine]. GPU images are wrapped in [Texture]; disposal is deferred
// to the next frame boundary so that finalizers never touch the GPU from the
// wrong goroutine. [Window] turns the ebiten game loop into lifecycle events.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package lime
