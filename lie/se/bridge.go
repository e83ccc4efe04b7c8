package se

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/liegroups/lie"
)

// AffineMatrix writes the homogeneous matrix form [[R, t], [0ᵀ, 1]] of p
// into dst and returns it. A nil dst allocates a fresh (n+1)×(n+1) matrix.
func (g *Group) AffineMatrix(dst *mat.Dense, p Pose) *mat.Dense {
	n := g.N
	if dst == nil {
		dst = mat.NewDense(n+1, n+1, nil)
	} else {
		dst.ReuseAs(n+1, n+1)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dst.Set(i, j, p.R.At(i, j))
		}
		dst.Set(i, n, p.T.AtVec(i))
		dst.Set(n, i, 0)
	}
	dst.Set(n, n, 1)
	return dst
}

// ScrewMatrix writes the homogeneous matrix form [[Ω, b], [0ᵀ, 0]] of x
// into dst and returns it. A nil dst allocates.
func (g *Group) ScrewMatrix(dst *mat.Dense, x Tangent) *mat.Dense {
	n := g.N
	if dst == nil {
		dst = mat.NewDense(n+1, n+1, nil)
	} else {
		dst.ReuseAs(n+1, n+1)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dst.Set(i, j, x.Omega.At(i, j))
		}
		dst.Set(i, n, x.B.AtVec(i))
		dst.Set(n, i, 0)
	}
	dst.Set(n, n, 0)
	return dst
}

// PoseFromAffine extracts the structured pair (t, R) from an affine matrix.
// The returned pose owns fresh copies of the blocks.
func (g *Group) PoseFromAffine(m mat.Matrix) Pose {
	n := g.N
	p := NewPose(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p.R.Set(i, j, m.At(i, j))
		}
		p.T.SetVec(i, m.At(i, n))
	}
	return p
}

// TangentFromScrew extracts the structured pair (b, Ω) from a screw matrix.
// The returned tangent owns fresh copies of the blocks.
func (g *Group) TangentFromScrew(m mat.Matrix) Tangent {
	n := g.N
	x := NewTangent(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x.Omega.Set(i, j, m.At(i, j))
		}
		x.B.SetVec(i, m.At(i, n))
	}
	return x
}

// Components returns views of the rotation block and translation column of
// the homogeneous matrix m. The views share m's backing array: writing
// through them writes into m. This aliasing is the point; callers use it
// to edit the blocks of an affine or screw matrix in place.
func (g *Group) Components(m *mat.Dense) (r *mat.Dense, t *mat.VecDense) {
	n := g.N
	r = m.Slice(0, n, 0, n).(*mat.Dense)
	t = m.ColView(n).(*mat.VecDense).SliceVec(0, n).(*mat.VecDense)
	return r, t
}

// IdentityMatrix returns the identity element in affine-matrix form. This
// is the literal (n+1)×(n+1) identity, built directly rather than through
// the conversion path.
func (g *Group) IdentityMatrix() *mat.Dense {
	return lie.Eye(g.N + 1)
}

// Identity returns the identity element in structured form.
func (g *Group) Identity() Pose {
	return NewPose(g.N)
}

// CheckAffine validates that m is an element of SE(n) in affine-matrix
// form: correct shape, last row exactly [0,...,0,1] to within tol, an
// orthogonal rotation block with determinant +1, and a finite translation.
// Block checks are delegated to the component groups. When several
// independent checks fail, every violation is reported.
func (g *Group) CheckAffine(m mat.Matrix, tol float64) error {
	var viol lie.Violations
	n := g.N
	rows, cols := m.Dims()
	if rows != n+1 || cols != n+1 {
		viol.Addf("se: matrix is %dx%d, want %dx%d", rows, cols, n+1, n+1)
		return viol.Err()
	}

	viol.Add(g.checkLastRow(m, 1))
	viol.Add(g.Rot.CheckPoint(blockOf(m, n), tol))
	viol.Add(g.Trans.CheckPoint(colOf(m, n), tol))
	return viol.Err()
}

// CheckScrew validates that m is a Lie algebra element in screw-matrix
// form: correct shape, last row exactly zero to within tol, a
// skew-symmetric rotation block, and a finite translation block.
func (g *Group) CheckScrew(m mat.Matrix, tol float64) error {
	var viol lie.Violations
	n := g.N
	rows, cols := m.Dims()
	if rows != n+1 || cols != n+1 {
		viol.Addf("se: matrix is %dx%d, want %dx%d", rows, cols, n+1, n+1)
		return viol.Err()
	}

	viol.Add(g.checkLastRow(m, 0))
	viol.Add(g.Rot.CheckVector(blockOf(m, n), tol))
	viol.Add(g.Trans.CheckVector(colOf(m, n), tol))
	return viol.Err()
}

// CheckPose validates the structured representation by delegating each
// block to its component group.
func (g *Group) CheckPose(p Pose, tol float64) error {
	var viol lie.Violations
	viol.Add(g.Rot.CheckPoint(p.R, tol))
	viol.Add(g.Trans.CheckPoint(p.T, tol))
	return viol.Err()
}

// CheckTangent validates the structured tangent representation.
func (g *Group) CheckTangent(x Tangent, tol float64) error {
	var viol lie.Violations
	viol.Add(g.Rot.CheckVector(x.Omega, tol))
	viol.Add(g.Trans.CheckVector(x.B, tol))
	return viol.Err()
}

// checkLastRow verifies the homogeneous row [0,...,0,last]. The tolerance
// here is deliberately strict: the row is structural, not data.
func (g *Group) checkLastRow(m mat.Matrix, last float64) error {
	n := g.N
	tol := lie.DefaultTol
	for j := 0; j < n; j++ {
		if v := m.At(n, j); v < -tol || v > tol {
			return fmt.Errorf("se: homogeneous row entry (%d,%d) is %v, want 0", n, j, v)
		}
	}
	if v := m.At(n, n); v < last-tol || v > last+tol {
		return fmt.Errorf("se: homogeneous row entry (%d,%d) is %v, want %v", n, n, v, last)
	}
	return nil
}

// blockOf returns the top-left n×n block of m as a copy-free view when m is
// a *mat.Dense, and a copy otherwise.
func blockOf(m mat.Matrix, n int) mat.Matrix {
	if d, ok := m.(*mat.Dense); ok {
		return d.Slice(0, n, 0, n)
	}
	b := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			b.Set(i, j, m.At(i, j))
		}
	}
	return b
}

// colOf returns rows 0..n-1 of column n of m.
func colOf(m mat.Matrix, n int) mat.Vector {
	if d, ok := m.(*mat.Dense); ok {
		return d.ColView(n).(*mat.VecDense).SliceVec(0, n)
	}
	v := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v.SetVec(i, m.At(i, n))
	}
	return v
}
