package se

import "gonum.org/v1/gonum/mat"

// This file implements the isometric, homomorphic embedding of SE(n) and
// its Lie algebra into GL(n+1) and its Lie algebra. Points embed as their
// affine matrices. Tangents do NOT embed as their screw matrices: the
// embedded Lie algebra uses the right trivialization of GL(n+1), so the
// translation block must be rotated back through the point's rotation.

// EmbedPoint writes the embedding of p in GL(n+1) into dst and returns it:
// exactly the affine matrix of p. A nil dst allocates.
func (g *Group) EmbedPoint(dst *mat.Dense, p Pose) *mat.Dense {
	return g.AffineMatrix(dst, p)
}

// ProjectPoint extracts the pose from a GL(n+1) matrix lying in the
// embedded image, inverting EmbedPoint. The caller is responsible for q
// actually being in the image; no validation is performed here.
func (g *Group) ProjectPoint(q mat.Matrix) Pose {
	return g.PoseFromAffine(q)
}

// EmbedTangent writes the embedding of the tangent x at the point p into
// dst and returns it. The rotation block Ω passes through unchanged; the
// translation block becomes Rᵗ·b; the last row is zero. A nil dst
// allocates.
func (g *Group) EmbedTangent(dst *mat.Dense, p Pose, x Tangent) *mat.Dense {
	n := g.N
	if dst == nil {
		dst = mat.NewDense(n+1, n+1, nil)
	} else {
		dst.ReuseAs(n+1, n+1)
	}

	var back mat.VecDense
	back.MulVec(p.R.T(), x.B)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dst.Set(i, j, x.Omega.At(i, j))
		}
		dst.Set(i, n, back.AtVec(i))
		dst.Set(n, i, 0)
	}
	dst.Set(n, n, 0)
	return dst
}

// ProjectTangent extracts the tangent at p from an embedded tangent y,
// inverting EmbedTangent: the translation block is rotated forward by R,
// undoing the embedding's Rᵗ.
func (g *Group) ProjectTangent(p Pose, y mat.Matrix) Tangent {
	n := g.N
	x := NewTangent(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x.Omega.Set(i, j, y.At(i, j))
		}
	}

	col := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		col.SetVec(i, y.At(i, n))
	}
	x.B.MulVec(p.R, col)
	return x
}
