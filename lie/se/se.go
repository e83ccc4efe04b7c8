// Package se implements the special Euclidean group SE(n): rigid motions of
// n-space, the semidirect product of the translation group T(n) and the
// rotation group SO(n).
//
// A rigid motion is carried in one of two interchangeable representations:
// the structured pair Pose{t, R}, or the (n+1)×(n+1) homogeneous affine
// matrix [[R, t], [0ᵀ, 1]]. Lie algebra elements likewise appear as
// Tangent{b, Ω} or the screw matrix [[Ω, b], [0ᵀ, 0]]. Conversions between
// the two are cheap and explicit; the arithmetic fast paths never convert
// silently.
//
// All operations are pure: each call reads its inputs, writes its outputs,
// and keeps no state, so values may be used freely across goroutines as
// long as output buffers are not shared.
package se

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/liegroups/lie"
	"github.com/banshee-data/liegroups/lie/so"
	"github.com/banshee-data/liegroups/lie/tn"
)

// Rotations is the view of the rotation group SO(n) that SE(n) needs: the
// per-block exponential and logarithm, coordinate (de)serialisation, the
// bracket, validity checks, and the action of rotations on translations.
type Rotations interface {
	Dim() int
	DOF() int
	Angle(omega mat.Matrix) float64
	Apply(dst *mat.VecDense, r mat.Matrix, v mat.Vector)
	Exp(dst *mat.Dense, omega mat.Matrix)
	Log(dst *mat.Dense, r mat.Matrix)
	Hat(dst *mat.Dense, v mat.Vector)
	Vee(dst *mat.VecDense, omega mat.Matrix)
	Bracket(dst *mat.Dense, a, b mat.Matrix)
	CheckPoint(r mat.Matrix, tol float64) error
	CheckVector(omega mat.Matrix, tol float64) error
}

// Translations is the view of the translation group T(n) that SE(n) needs.
type Translations interface {
	Dim() int
	Exp(dst *mat.VecDense, b mat.Vector)
	Log(dst *mat.VecDense, p mat.Vector)
	Compose(dst *mat.VecDense, a, b mat.Vector)
	Inverse(dst *mat.VecDense, a mat.Vector)
	CheckPoint(p mat.Vector, tol float64) error
	CheckVector(b mat.Vector, tol float64) error
}

// Group is the special Euclidean group of dimension N. The dimension is
// fixed at construction; supplying matrices of another size is a programmer
// error and panics, matching gonum's shape conventions.
type Group struct {
	N int

	// AngleEps gates the Taylor-series branches of Exp and Log near zero
	// rotation angle. The same threshold is applied in both directions so
	// the round trip stays exact across the branch.
	AngleEps float64

	// Rot and Trans are the component-group collaborators. New wires in
	// lie/so and lie/tn; tests may substitute others.
	Rot   Rotations
	Trans Translations
}

// New returns SE(n) with the default collaborators and tolerances.
func New(n int) *Group {
	if n < 1 {
		panic("se: dimension must be positive")
	}
	return &Group{
		N:        n,
		AngleEps: lie.DefaultAngleEps,
		Rot:      so.New(n),
		Trans:    tn.New(n),
	}
}

// DOF returns the dimension of the Lie algebra: n translational plus
// n(n-1)/2 rotational degrees of freedom.
func (g *Group) DOF() int { return g.N + g.Rot.DOF() }

// Pose is the structured representation of a rigid motion: translation
// vector T of length n and rotation matrix R of size n×n.
type Pose struct {
	T *mat.VecDense
	R *mat.Dense
}

// Tangent is the structured representation of a Lie algebra element:
// translation part B of length n and skew-symmetric rotation part Omega of
// size n×n.
type Tangent struct {
	B     *mat.VecDense
	Omega *mat.Dense
}

// NewPose returns the identity pose of dimension n: zero translation and
// identity rotation.
func NewPose(n int) Pose {
	return Pose{T: mat.NewVecDense(n, nil), R: lie.Eye(n)}
}

// NewTangent returns the zero tangent of dimension n.
func NewTangent(n int) Tangent {
	return Tangent{B: mat.NewVecDense(n, nil), Omega: mat.NewDense(n, n, nil)}
}

// Clone returns a deep copy of p.
func (p Pose) Clone() Pose {
	return Pose{T: mat.VecDenseCopyOf(p.T), R: mat.DenseCopyOf(p.R)}
}

// Clone returns a deep copy of x.
func (x Tangent) Clone() Tangent {
	return Tangent{B: mat.VecDenseCopyOf(x.B), Omega: mat.DenseCopyOf(x.Omega)}
}

func (p Pose) String() string {
	return fmt.Sprintf("Pose{t=%v, R=%v}",
		mat.Formatted(p.T, mat.FormatMATLAB()),
		mat.Formatted(p.R, mat.FormatMATLAB()))
}

func (x Tangent) String() string {
	return fmt.Sprintf("Tangent{b=%v, Ω=%v}",
		mat.Formatted(x.B, mat.FormatMATLAB()),
		mat.Formatted(x.Omega, mat.FormatMATLAB()))
}
