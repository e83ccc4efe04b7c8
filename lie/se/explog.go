package se

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/liegroups/internal/matfn"
	"github.com/banshee-data/liegroups/lie"
)

// Exp returns the group exponential of x as a fresh pose. Dimensions 2 and
// 3 use closed forms; any other dimension goes through the general matrix
// exponential of the screw matrix.
func (g *Group) Exp(x Tangent) Pose {
	dst := NewPose(g.N)
	g.ExpInto(&dst, x)
	return dst
}

// ExpInto writes the group exponential of x into dst. dst must not alias x.
func (g *Group) ExpInto(dst *Pose, x Tangent) {
	switch g.N {
	case 2:
		g.exp2(dst, x)
	case 3:
		g.exp3(dst, x)
	default:
		g.ExpGeneric(dst, x)
	}
}

// Log returns the group logarithm of p as a fresh tangent, the inverse of
// Exp.
func (g *Group) Log(p Pose) Tangent {
	dst := NewTangent(g.N)
	g.LogInto(&dst, p)
	return dst
}

// LogInto writes the group logarithm of p into dst. dst must not alias p.
func (g *Group) LogInto(dst *Tangent, p Pose) {
	switch g.N {
	case 2:
		g.log2(dst, p)
	case 3:
		g.log3(dst, p)
	default:
		g.LogGeneric(dst, p)
	}
}

// exp2 is the closed form at n=2. With θ = vee(Ω), the rotation is the
// planar rotation by θ and the translation is U(θ)·b where
//
//	U(θ) = sinθ/θ · I + (1-cosθ)/θ² · Ω.
//
// Near θ=0 the two scalar coefficients are replaced by their Taylor
// expansions to avoid cancellation.
func (g *Group) exp2(dst *Pose, x Tangent) {
	theta := x.Omega.At(1, 0)

	var a, c float64 // a = sinθ/θ, c = (1-cosθ)/θ
	if math.Abs(theta) < g.AngleEps {
		a = 1 - theta*theta/6
		c = theta / 2
	} else {
		a = math.Sin(theta) / theta
		sh := math.Sin(theta / 2)
		c = 2 * sh * sh / theta
	}

	b1, b2 := x.B.AtVec(0), x.B.AtVec(1)
	dst.T.SetVec(0, a*b1-c*b2)
	dst.T.SetVec(1, c*b1+a*b2)
	g.Rot.Exp(dst.R, x.Omega)
}

// exp3 is the closed form at n=3: Rodrigues for the rotation block and the
// left Jacobian J_l = I + β·Ω + γ·Ω² for the translation, with
//
//	θ = ‖Ω‖_F/√2,  β = (1-cosθ)/θ²,  γ = (1-sinθ/θ)/θ².
func (g *Group) exp3(dst *Pose, x Tangent) {
	theta := g.Rot.Angle(x.Omega)

	var beta, gamma float64
	if theta < g.AngleEps {
		beta = 0.5 - theta*theta/24
		gamma = 1.0/6 - theta*theta/120
	} else {
		sh := math.Sin(theta / 2)
		beta = 2 * sh * sh / (theta * theta)
		alpha := math.Sin(theta) / theta
		gamma = (1 - alpha) / (theta * theta)
	}

	jac := leftJacobian3(x.Omega, beta, gamma)
	dst.T.MulVec(jac, x.B)
	g.Rot.Exp(dst.R, x.Omega)
}

// log2 inverts exp2. The rotation logarithm is delegated to the rotation
// group; the translation solves U(θ)⁻¹·t in closed form:
//
//	b1 = α·t1 + β·t2,  b2 = α·t2 - β·t1
//
// with β = θ/2 and α = β·cot(β), series 1 - θ²/12 near zero.
func (g *Group) log2(dst *Tangent, p Pose) {
	g.Rot.Log(dst.Omega, p.R)
	theta := dst.Omega.At(1, 0)

	half := theta / 2
	var alpha float64
	if math.Abs(theta) < g.AngleEps {
		alpha = 1 - theta*theta/12
	} else {
		alpha = half * math.Cos(half) / math.Sin(half)
	}

	t1, t2 := p.T.AtVec(0), p.T.AtVec(1)
	dst.B.SetVec(0, alpha*t1+half*t2)
	dst.B.SetVec(1, alpha*t2-half*t1)
}

// log3 inverts exp3. The angle comes from the trace, clamped against
// floating-point drift; the translation applies the inverse left Jacobian
//
//	J_l⁻¹ = I - Ω/2 + β·Ω²,  β = 1/θ² - (1+cosθ)/(2θ·sinθ)
//
// with series β = 1/12 + θ²/720 near zero.
func (g *Group) log3(dst *Tangent, p Pose) {
	cosTheta := lie.Clamp((mat.Trace(p.R)-1)/2, -1, 1)
	theta := math.Acos(cosTheta)

	g.Rot.Log(dst.Omega, p.R)

	var beta float64
	if theta < g.AngleEps {
		beta = 1.0/12 + theta*theta/720
	} else {
		beta = 1/(theta*theta) - (1+cosTheta)/(2*theta*math.Sin(theta))
	}

	jacInv := leftJacobian3(dst.Omega, -0.5, beta)
	dst.B.MulVec(jacInv, p.T)
}

// leftJacobian3 builds I + c1·Ω + c2·Ω² for a 3×3 skew matrix Ω. Both the
// left Jacobian and its inverse have this shape, differing only in the
// coefficients.
func leftJacobian3(omega *mat.Dense, c1, c2 float64) *mat.Dense {
	var om2 mat.Dense
	om2.Mul(omega, omega)

	jac := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v := c1*omega.At(i, j) + c2*om2.At(i, j)
			if i == j {
				v++
			}
			jac.Set(i, j, v)
		}
	}
	return jac
}

// ExpGeneric computes the exponential for any dimension by exponentiating
// the screw matrix and extracting the blocks of the resulting affine
// matrix. At n=2 and n=3 it must agree with the closed forms; the closed
// forms are validated against it in the tests and by cmd/tools/angle-sweep.
func (g *Group) ExpGeneric(dst *Pose, x Tangent) {
	screw := g.ScrewMatrix(nil, x)
	var e mat.Dense
	matfn.Expm(&e, screw)

	n := g.N
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dst.R.Set(i, j, e.At(i, j))
		}
		dst.T.SetVec(i, e.At(i, n))
	}
}

// LogGeneric computes the logarithm for any dimension via the general
// matrix logarithm of the affine matrix. The last row of the result is
// discarded outright: the screw form requires it to be exactly zero, and
// re-padding it guards against numerical leakage from the general routine.
// An inversion failure inside the logarithm means p was not a group
// element; per the validity contract the partial result is kept rather
// than raising.
func (g *Group) LogGeneric(dst *Tangent, p Pose) {
	aff := g.AffineMatrix(nil, p)
	var l mat.Dense
	_ = matfn.Logm(&l, aff)

	n := g.N
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dst.Omega.Set(i, j, l.At(i, j))
		}
		dst.B.SetVec(i, l.At(i, n))
	}
}
