package lime

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// color32 is a compact RGBA color using float32, for render commands only.
type color32 struct {
	R, G, B, A float32
}

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Node      *Node
	Transform [6]float32
	Size      Vec2
	Color     color32
	BlendMode BlendMode

	// image is nil for solid quads; the shared white pixel is used instead.
	image *ebiten.Image
}

// affine32 converts a [6]float64 affine matrix to [6]float32.
func affine32(m [6]float64) [6]float32 {
	return [6]float32{float32(m[0]), float32(m[1]), float32(m[2]), float32(m[3]), float32(m[4]), float32(m[5])}
}

// Renderer is the per-frame render pass. It evaluates every animator at the
// current frame, refreshes world transforms and draws image nodes in tree
// order. The editor core never calls into it; it only reads node state.
type Renderer struct {
	ClearColor Color

	commands []RenderCommand
	white    *ebiten.Image
}

// NewRenderer creates a renderer with a transparent clear color.
func NewRenderer() *Renderer {
	return &Renderer{commands: make([]RenderCommand, 0, 64)}
}

// Prepare applies animators at frame and rebuilds the command list for the
// tree rooted at root. The returned slice is reused by the next call.
func (r *Renderer) Prepare(root *Node, frame int) []RenderCommand {
	root.ApplyAnimators(frame)
	root.UpdateTransforms()
	r.commands = r.commands[:0]
	r.traverse(root)
	return r.commands
}

// traverse walks the node tree depth-first and emits render commands for
// visible image nodes.
func (r *Renderer) traverse(n *Node) {
	if !n.Visible {
		return
	}
	if n.Type == NodeTypeImage && n.Size.X > 0 && n.Size.Y > 0 {
		cmd := RenderCommand{
			Node:      n,
			Transform: affine32(n.worldTransform),
			Size:      n.Size,
			Color:     color32{float32(n.Color.R), float32(n.Color.G), float32(n.Color.B), float32(n.Color.A * n.worldAlpha)},
			BlendMode: n.BlendMode,
		}
		if n.Texture != nil {
			cmd.image = n.Texture.Image()
		}
		r.commands = append(r.commands, cmd)
	}
	for _, child := range n.children {
		r.traverse(child)
	}
}

// Draw prepares and submits the tree rooted at root onto target.
func (r *Renderer) Draw(target *ebiten.Image, root *Node, frame int) {
	if r.ClearColor.A > 0 {
		target.Fill(r.ClearColor.toRGBA())
	}
	r.Prepare(root, frame)
	r.submit(target)
}

func (r *Renderer) submit(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range r.commands {
		cmd := &r.commands[i]
		img := cmd.image
		if img == nil {
			img = r.whitePixel()
		}
		b := img.Bounds()

		op.GeoM.Reset()
		op.GeoM.Scale(cmd.Size.X/float64(b.Dx()), cmd.Size.Y/float64(b.Dy()))
		var world ebiten.GeoM
		world.SetElement(0, 0, float64(cmd.Transform[0]))
		world.SetElement(1, 0, float64(cmd.Transform[1]))
		world.SetElement(0, 1, float64(cmd.Transform[2]))
		world.SetElement(1, 1, float64(cmd.Transform[3]))
		world.SetElement(0, 2, float64(cmd.Transform[4]))
		world.SetElement(1, 2, float64(cmd.Transform[5]))
		op.GeoM.Concat(world)

		op.ColorScale.Reset()
		c := cmd.Color
		op.ColorScale.Scale(c.R*c.A, c.G*c.A, c.B*c.A, c.A)
		op.Blend = cmd.BlendMode.EbitenBlend()
		target.DrawImage(img, &op)
	}
}

// whitePixel returns a lazily-initialized 1x1 white image used for solid quads.
func (r *Renderer) whitePixel() *ebiten.Image {
	if r.white == nil {
		r.white = ebiten.NewImage(1, 1)
		r.white.Fill(color.White)
	}
	return r.white
}
