// Package so implements the special orthogonal group SO(n): rotations of
// n-space, represented as n×n orthogonal matrices with determinant +1. Lie
// algebra elements are skew-symmetric n×n matrices.
//
// Closed forms are provided for n=2 (planar rotation angle) and n=3
// (Rodrigues formula and the trace logarithm); every other dimension falls
// back to the general matrix exponential/logarithm.
package so

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/liegroups/internal/matfn"
	"github.com/banshee-data/liegroups/lie"
)

// Group is the rotation group of dimension N.
type Group struct {
	N int

	// AngleEps gates the switch between trigonometric closed forms and
	// their Taylor expansions near zero rotation angle.
	AngleEps float64
}

// New returns the rotation group SO(n) with default tolerances.
func New(n int) *Group {
	if n < 1 {
		panic("so: dimension must be positive")
	}
	return &Group{N: n, AngleEps: lie.DefaultAngleEps}
}

// Dim returns the ambient dimension n.
func (g *Group) Dim() int { return g.N }

// DOF returns the number of rotational degrees of freedom, n(n-1)/2.
func (g *Group) DOF() int { return g.N * (g.N - 1) / 2 }

// Identity returns the identity rotation.
func (g *Group) Identity() *mat.Dense { return lie.Eye(g.N) }

// Angle returns the rotation angle encoded by the skew-symmetric matrix
// omega: ‖Ω‖_F / √2. For n=2 and n=3 this is the usual rotation angle.
func (g *Group) Angle(omega mat.Matrix) float64 {
	return mat.Norm(omega, 2) / math.Sqrt2
}

// Apply writes R·v into dst: the action of the rotation R on a translation
// vector. dst must not alias v.
func (g *Group) Apply(dst *mat.VecDense, r mat.Matrix, v mat.Vector) {
	dst.MulVec(r, v)
}

// Exp writes the group exponential of the skew-symmetric matrix omega into
// dst. dst must not alias omega.
func (g *Group) Exp(dst *mat.Dense, omega mat.Matrix) {
	switch g.N {
	case 2:
		theta := omega.At(1, 0)
		s, c := math.Sincos(theta)
		dst.ReuseAs(2, 2)
		dst.Set(0, 0, c)
		dst.Set(0, 1, -s)
		dst.Set(1, 0, s)
		dst.Set(1, 1, c)
	case 3:
		g.exp3(dst, omega)
	default:
		matfn.Expm(dst, omega)
	}
}

// exp3 is the Rodrigues formula R = I + α·Ω + β·Ω² with α = sinθ/θ and
// β = (1-cosθ)/θ², series-expanded near θ=0.
func (g *Group) exp3(dst *mat.Dense, omega mat.Matrix) {
	theta := g.Angle(omega)
	var alpha, beta float64
	if theta < g.AngleEps {
		alpha = 1 - theta*theta/6
		beta = 0.5 - theta*theta/24
	} else {
		alpha = math.Sin(theta) / theta
		// Half-angle form of (1-cosθ)/θ², stable at the branch boundary.
		sh := math.Sin(theta / 2)
		beta = 2 * sh * sh / (theta * theta)
	}

	var om2 mat.Dense
	om2.Mul(omega, omega)

	dst.ReuseAs(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := alpha*omega.At(i, j) + beta*om2.At(i, j)
			if i == j {
				v++
			}
			dst.Set(i, j, v)
		}
	}
}

// Log writes the group logarithm of the rotation r into dst: the
// skew-symmetric matrix whose exponential is r. dst must not alias r.
func (g *Group) Log(dst *mat.Dense, r mat.Matrix) {
	switch g.N {
	case 2:
		theta := math.Atan2(r.At(1, 0), r.At(0, 0))
		dst.ReuseAs(2, 2)
		dst.Set(0, 0, 0)
		dst.Set(0, 1, -theta)
		dst.Set(1, 0, theta)
		dst.Set(1, 1, 0)
	case 3:
		g.log3(dst, r)
	default:
		var l mat.Dense
		// The logarithm of an orthogonal matrix is skew-symmetric;
		// project out any numerical leakage from the general routine.
		_ = matfn.Logm(&l, r)
		dst.ReuseAs(g.N, g.N)
		var lt mat.Dense
		lt.CloneFrom(l.T())
		dst.Sub(&l, &lt)
		dst.Scale(0.5, dst)
	}
}

// log3 is Ω = α·(R - Rᵗ) with α = θ/(2·sinθ) and
// θ = arccos((trace(R)-1)/2), series-expanded near θ=0. The trace is
// clamped so a numerically out-of-range value cannot produce NaN.
func (g *Group) log3(dst *mat.Dense, r mat.Matrix) {
	cosTheta := lie.Clamp((mat.Trace(r)-1)/2, -1, 1)
	theta := math.Acos(cosTheta)

	var alpha float64
	if theta < g.AngleEps {
		alpha = 0.5 + theta*theta/12
	} else {
		alpha = theta / (2 * math.Sin(theta))
	}

	dst.ReuseAs(3, 3)
	var rt mat.Dense
	rt.CloneFrom(r.T())
	dst.Sub(r, &rt)
	dst.Scale(alpha, dst)
}

// Bracket writes the Lie bracket [a, b] = ab - ba of two skew-symmetric
// matrices into dst. dst may alias a or b.
func (g *Group) Bracket(dst *mat.Dense, a, b mat.Matrix) {
	var ab, ba mat.Dense
	ab.Mul(a, b)
	ba.Mul(b, a)
	dst.Sub(&ab, &ba)
}

// Hat writes the skew-symmetric matrix with coordinates v into dst.
// SO(2) takes 1 coordinate, SO(3) takes 3 (the usual cross-product matrix).
// No closed-form basis is defined for other dimensions.
func (g *Group) Hat(dst *mat.Dense, v mat.Vector) {
	switch g.N {
	case 2:
		if v.Len() != 1 {
			panic("so: SO(2) hat needs 1 coordinate")
		}
		theta := v.AtVec(0)
		dst.ReuseAs(2, 2)
		dst.Set(0, 0, 0)
		dst.Set(0, 1, -theta)
		dst.Set(1, 0, theta)
		dst.Set(1, 1, 0)
	case 3:
		if v.Len() != 3 {
			panic("so: SO(3) hat needs 3 coordinates")
		}
		x, y, z := v.AtVec(0), v.AtVec(1), v.AtVec(2)
		dst.ReuseAs(3, 3)
		dst.Set(0, 0, 0)
		dst.Set(0, 1, -z)
		dst.Set(0, 2, y)
		dst.Set(1, 0, z)
		dst.Set(1, 1, 0)
		dst.Set(1, 2, -x)
		dst.Set(2, 0, -y)
		dst.Set(2, 1, x)
		dst.Set(2, 2, 0)
	default:
		panic("so: hat has no closed-form basis for this dimension")
	}
}

// Vee writes the coordinate vector of the skew-symmetric matrix omega into
// dst, inverting Hat.
func (g *Group) Vee(dst *mat.VecDense, omega mat.Matrix) {
	switch g.N {
	case 2:
		dst.ReuseAsVec(1)
		dst.SetVec(0, omega.At(1, 0))
	case 3:
		dst.ReuseAsVec(3)
		dst.SetVec(0, omega.At(2, 1))
		dst.SetVec(1, omega.At(0, 2))
		dst.SetVec(2, omega.At(1, 0))
	default:
		panic("so: vee has no closed-form basis for this dimension")
	}
}

// CheckPoint validates that r is an element of SO(n): square of the right
// size, orthogonal, and of determinant +1. All violations are reported, not
// just the first.
func (g *Group) CheckPoint(r mat.Matrix, tol float64) error {
	var viol lie.Violations
	rows, cols := r.Dims()
	if rows != g.N || cols != g.N {
		viol.Addf("so: point is %dx%d, want %dx%d", rows, cols, g.N, g.N)
		return viol.Err()
	}

	var rtr mat.Dense
	rtr.Mul(r.T(), r)
	if !mat.EqualApprox(&rtr, lie.Eye(g.N), tol) {
		viol.Addf("so: matrix is not orthogonal (RᵗR differs from I)")
	}
	if d := mat.Det(r); math.Abs(d-1) > tol {
		viol.Addf("so: determinant is %v, want 1", d)
	}
	return viol.Err()
}

// CheckVector validates that omega is in the Lie algebra of SO(n):
// skew-symmetric of the right size.
func (g *Group) CheckVector(omega mat.Matrix, tol float64) error {
	var viol lie.Violations
	rows, cols := omega.Dims()
	if rows != g.N || cols != g.N {
		viol.Addf("so: tangent is %dx%d, want %dx%d", rows, cols, g.N, g.N)
		return viol.Err()
	}

	var sym mat.Dense
	sym.CloneFrom(omega.T())
	sym.Add(&sym, omega)
	if mat.Norm(&sym, 2) > tol {
		viol.Addf("so: tangent matrix is not skew-symmetric")
	}
	return viol.Err()
}
