package se

import "gonum.org/v1/gonum/mat"

// Compose returns the semidirect product p·q as a fresh pose:
//
//	(t1, R1)·(t2, R2) = (R1·t2 + t1, R1·R2)
//
// The first rotation acts on the second translation before the translations
// are combined.
func (g *Group) Compose(p, q Pose) Pose {
	dst := NewPose(g.N)
	g.ComposeInto(&dst, p, q)
	return dst
}

// ComposeInto writes p·q into dst. dst may alias p or q; the rotation
// product and the acted translation are staged through temporaries.
func (g *Group) ComposeInto(dst *Pose, p, q Pose) {
	var acted mat.VecDense
	g.Rot.Apply(&acted, p.R, q.T)
	g.Trans.Compose(&acted, p.T, &acted)

	dst.R.Mul(p.R, q.R)
	dst.T.CopyVec(&acted)
}

// ComposeMatrix writes the affine-matrix product a·b into dst and returns
// it. In matrix form composition is plain matrix multiplication. dst may
// alias a or b: the multiply runs through an internal workspace when the
// receiver overlaps an operand. A nil dst allocates.
func (g *Group) ComposeMatrix(dst, a, b *mat.Dense) *mat.Dense {
	if dst == nil {
		dst = mat.NewDense(g.N+1, g.N+1, nil)
	}
	dst.Mul(a, b)
	return dst
}

// Inverse returns p⁻¹ = (-Rᵗ·t, Rᵗ) as a fresh pose.
func (g *Group) Inverse(p Pose) Pose {
	dst := NewPose(g.N)
	g.InverseInto(&dst, p)
	return dst
}

// InverseInto writes p⁻¹ into dst. dst may alias p.
func (g *Group) InverseInto(dst *Pose, p Pose) {
	var rt mat.Dense
	rt.CloneFrom(p.R.T())

	var back mat.VecDense
	g.Rot.Apply(&back, &rt, p.T)
	g.Trans.Inverse(&back, &back)

	dst.R.Copy(&rt)
	dst.T.CopyVec(&back)
}

// InverseMatrix writes the inverse of the affine matrix m into dst and
// returns it, using the closed form rather than a general matrix inverse.
// dst must not alias m. A nil dst allocates.
func (g *Group) InverseMatrix(dst, m *mat.Dense) *mat.Dense {
	p := g.PoseFromAffine(m)
	g.InverseInto(&p, p)
	return g.AffineMatrix(dst, p)
}
