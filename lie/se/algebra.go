package se

import "gonum.org/v1/gonum/mat"

// BracketMatrix writes the Lie bracket [x, y] = x·y - y·x of two screw
// matrices into dst and returns it. The result is the exact floating-point
// commutator: two products and a subtraction, no tolerance involved. A nil
// dst allocates.
func (g *Group) BracketMatrix(dst, x, y *mat.Dense) *mat.Dense {
	if dst == nil {
		dst = mat.NewDense(g.N+1, g.N+1, nil)
	}
	var xy, yx mat.Dense
	xy.Mul(x, y)
	yx.Mul(y, x)
	dst.Sub(&xy, &yx)
	return dst
}

// Bracket returns the Lie bracket of two structured tangents:
//
//	[(b1, Ω1), (b2, Ω2)] = (Ω1·b2 - Ω2·b1, [Ω1, Ω2])
//
// where the rotation part is the bracket of the rotation group. The result
// agrees with BracketMatrix applied to the screw forms.
func (g *Group) Bracket(x, y Tangent) Tangent {
	dst := NewTangent(g.N)

	var ob1, ob2 mat.VecDense
	ob1.MulVec(x.Omega, y.B)
	ob2.MulVec(y.Omega, x.B)
	dst.B.SubVec(&ob1, &ob2)

	g.Rot.Bracket(dst.Omega, x.Omega, y.Omega)
	return dst
}

// Adjoint returns the adjoint action of the point p on the tangent x:
// conjugation of the screw matrix by the affine matrix of p, which pushes
// an identity tangent forward by left translation and pulls it back by
// right translation at p. Computed blockwise:
//
//	Ad_p(b, Ω) = (R·b - (R·Ω·Rᵗ)·t, R·Ω·Rᵗ)
func (g *Group) Adjoint(p Pose, x Tangent) Tangent {
	dst := NewTangent(g.N)
	g.AdjointInto(&dst, p, x)
	return dst
}

// AdjointInto writes the adjoint action into dst. dst may alias x.
func (g *Group) AdjointInto(dst *Tangent, p Pose, x Tangent) {
	var ro, conj mat.Dense
	ro.Mul(p.R, x.Omega)
	conj.Mul(&ro, p.R.T())

	var rb, ct mat.VecDense
	rb.MulVec(p.R, x.B)
	ct.MulVec(&conj, p.T)

	dst.B.SubVec(&rb, &ct)
	dst.Omega.Copy(&conj)
}

// AdjointCoords computes the adjoint action at n=3 directly on coordinate
// vectors. in and out are 6-vectors laid out as Vee: translation
// coordinates first, rotation coordinates last. With p = (t, R), r the
// translation coordinates and ω the rotation coordinates:
//
//	ω' = R·ω
//	r' = t × ω' + R·r
//
// This is the closed form of Adjoint and must agree with it.
func (g *Group) AdjointCoords(dst *mat.VecDense, p Pose, in mat.Vector) {
	if g.N != 3 {
		panic("se: AdjointCoords is defined for n=3 only")
	}
	if in.Len() != 6 {
		panic("se: AdjointCoords needs a 6-vector")
	}

	r := mat.NewVecDense(3, []float64{in.AtVec(0), in.AtVec(1), in.AtVec(2)})
	w := mat.NewVecDense(3, []float64{in.AtVec(3), in.AtVec(4), in.AtVec(5)})

	var rw, rr mat.VecDense
	rw.MulVec(p.R, w)
	rr.MulVec(p.R, r)

	t := p.T
	cx := t.AtVec(1)*rw.AtVec(2) - t.AtVec(2)*rw.AtVec(1)
	cy := t.AtVec(2)*rw.AtVec(0) - t.AtVec(0)*rw.AtVec(2)
	cz := t.AtVec(0)*rw.AtVec(1) - t.AtVec(1)*rw.AtVec(0)

	dst.ReuseAsVec(6)
	dst.SetVec(0, cx+rr.AtVec(0))
	dst.SetVec(1, cy+rr.AtVec(1))
	dst.SetVec(2, cz+rr.AtVec(2))
	dst.SetVec(3, rw.AtVec(0))
	dst.SetVec(4, rw.AtVec(1))
	dst.SetVec(5, rw.AtVec(2))
}

// Hat builds the structured tangent from its minimal coordinate vector:
// translation coordinates first, rotation coordinates last. SE(2) takes 3
// coordinates (2 translational + 1 rotational), SE(3) takes 6 (3 + 3); the
// rotation block is delegated to the rotation group's Hat.
func (g *Group) Hat(v mat.Vector) Tangent {
	n := g.N
	if v.Len() != g.DOF() {
		panic("se: hat coordinate vector has wrong length")
	}
	x := NewTangent(n)
	for i := 0; i < n; i++ {
		x.B.SetVec(i, v.AtVec(i))
	}

	rot := mat.NewVecDense(g.Rot.DOF(), nil)
	for i := 0; i < rot.Len(); i++ {
		rot.SetVec(i, v.AtVec(n+i))
	}
	g.Rot.Hat(x.Omega, rot)
	return x
}

// Vee serialises the structured tangent into its minimal coordinate
// vector, inverting Hat.
func (g *Group) Vee(dst *mat.VecDense, x Tangent) {
	n := g.N
	dst.ReuseAsVec(g.DOF())
	for i := 0; i < n; i++ {
		dst.SetVec(i, x.B.AtVec(i))
	}

	var rot mat.VecDense
	g.Rot.Vee(&rot, x.Omega)
	for i := 0; i < rot.Len(); i++ {
		dst.SetVec(n+i, rot.AtVec(i))
	}
}
