package lime

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// transform properties. Returns [a, b, c, d, tx, ty].
//
// Pivot is normalized to Size, so Pivot{0.5, 0.5} rotates an image around its
// center. Composition order:
//
//	Translate(-Pivot*Size) -> Scale -> Rotate -> Translate(Position)
func computeLocalTransform(n *Node) [6]float64 {
	sx, sy := n.Scale.X, n.Scale.Y
	sin, cos := math.Sincos(n.Rotation)

	px := n.Pivot.X * n.Size.X
	py := n.Pivot.Y * n.Size.Y
	preTx := -px * sx
	preTy := -py * sy

	return [6]float64{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		cos*preTx - sin*preTy + n.Position.X,
		sin*preTx + cos*preTy + n.Position.Y,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform recomputes a node's worldTransform and worldAlpha.
// parentRecomputed forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Opacity
		n.transformDirty = false
	}
	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, recompute)
	}
}

// WorldToLocal converts a world-space point to this node's local coordinate
// space, using the transform from the last UpdateTransforms or render pass.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return transformPoint(invertAffine(n.worldTransform), wx, wy)
}

// UpdateTransforms recomputes world transforms for the subtree rooted at n.
// The parent's last computed transform is used as the starting point.
func (n *Node) UpdateTransforms() {
	parent, alpha := identityTransform, 1.0
	if n.Parent != nil {
		parent, alpha = n.Parent.worldTransform, n.Parent.worldAlpha
	}
	updateWorldTransform(n, parent, alpha, false)
}

// Bounds returns the node rectangle in local space: the origin to Size.
func (n *Node) Bounds() Rect {
	return Rect{Width: n.Size.X, Height: n.Size.Y}
}

// HitTest reports whether the world point lies inside the node bounds.
func (n *Node) HitTest(wx, wy float64) bool {
	return n.Bounds().Contains(n.WorldToLocal(wx, wy))
}

// NodeAt returns the topmost visible image node under the world point in the
// subtree rooted at n, or nil. Later siblings are drawn on top and win.
func NodeAt(n *Node, wx, wy float64) *Node {
	if !n.Visible {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit := NodeAt(n.children[i], wx, wy); hit != nil {
			return hit
		}
	}
	if n.Type == NodeTypeImage && n.HitTest(wx, wy) {
		return n
	}
	return nil
}
