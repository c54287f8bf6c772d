package core

import (
	"fmt"

	"github.com/phanxgames/lime"
)

// SampleNodeCount is the number of image nodes in NewSampleDocument.
const SampleNodeCount = 20

// NewSampleDocument creates a document whose root holds SampleNodeCount image
// nodes named "Image 00" to "Image 19", each with Position, Scale, Size and
// Rotation animators. The history starts empty and unmodified.
func NewSampleDocument(opts ...Option) *Document {
	doc := NewDocument(opts...)
	root := doc.Root()
	for i := 0; i < SampleNodeCount; i++ {
		n := lime.NewImage(fmt.Sprintf("Image %02d", i), nil, lime.Vec2{X: 32, Y: 32})
		n.Position = lime.Vec2{Y: float64(i) * 28}
		n.Color = lime.Color{R: 1, G: 0.55 + 0.02*float64(i), B: 0.1, A: 1}

		pos := lime.AnimatorFor[lime.Vec2](n, lime.PropPosition)
		y := n.Position.Y
		pos.Add(0, lime.Vec2{Y: y})
		pos.Add(10, lime.Vec2{X: 100, Y: y})
		pos.Add(12, lime.Vec2{X: 100, Y: y})
		pos.Add(16, lime.Vec2{X: 100, Y: y})
		pos.Add(19, lime.Vec2{X: 100, Y: y})
		pos.Add(30, lime.Vec2{X: 200, Y: y})

		scale := lime.AnimatorFor[lime.Vec2](n, lime.PropScale)
		scale.Add(5, lime.Vec2{X: 1, Y: 1})
		scale.Add(15, lime.Vec2{X: 2, Y: 1})

		size := lime.AnimatorFor[lime.Vec2](n, lime.PropSize)
		size.Add(0, lime.Vec2{X: 32, Y: 32})
		size.Add(50, lime.Vec2{X: 50, Y: 32})
		size.Add(100, lime.Vec2{X: 100, Y: 32})

		rot := lime.AnimatorFor[float64](n, lime.PropRotation)
		rot.Add(15, 0)
		rot.Add(60, 1)

		root.AddNode(n)
	}
	return doc
}
