// Package tn implements the translation group T(n): real n-vectors under
// addition. It is the translation collaborator consumed by lie/se; its
// exponential and logarithm are the identity map between the group and its
// Lie algebra.
package tn

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/liegroups/lie"
)

// Group is the translation group of dimension N.
type Group struct {
	N int
}

// New returns the translation group T(n).
func New(n int) *Group {
	if n < 1 {
		panic("tn: dimension must be positive")
	}
	return &Group{N: n}
}

// Dim returns the ambient dimension n.
func (g *Group) Dim() int { return g.N }

// Identity returns the group identity, the zero vector.
func (g *Group) Identity() *mat.VecDense {
	return mat.NewVecDense(g.N, nil)
}

// Exp writes the group element reached from the identity along b. For T(n)
// this is b itself.
func (g *Group) Exp(dst *mat.VecDense, b mat.Vector) {
	dst.CopyVec(b)
}

// Log writes the Lie algebra element whose exponential is p. For T(n) this
// is p itself.
func (g *Group) Log(dst *mat.VecDense, p mat.Vector) {
	dst.CopyVec(p)
}

// Compose writes a+b into dst. dst may alias a or b.
func (g *Group) Compose(dst *mat.VecDense, a, b mat.Vector) {
	dst.AddVec(a, b)
}

// Inverse writes -a into dst. dst may alias a.
func (g *Group) Inverse(dst *mat.VecDense, a mat.Vector) {
	dst.ScaleVec(-1, a)
}

// CheckPoint reports whether p is a valid group element: length n with
// finite entries.
func (g *Group) CheckPoint(p mat.Vector, tol float64) error {
	return g.checkVec(p, "point")
}

// CheckVector reports whether b is a valid tangent vector. T(n) is flat, so
// the condition is the same as for points.
func (g *Group) CheckVector(b mat.Vector, tol float64) error {
	return g.checkVec(b, "tangent vector")
}

func (g *Group) checkVec(v mat.Vector, kind string) error {
	var viol lie.Violations
	if v.Len() != g.N {
		viol.Addf("tn: %s has length %d, want %d", kind, v.Len(), g.N)
		return viol.Err()
	}
	for i := 0; i < v.Len(); i++ {
		if math.IsNaN(v.AtVec(i)) || math.IsInf(v.AtVec(i), 0) {
			viol.Addf("tn: %s entry %d is not finite", kind, i)
			break
		}
	}
	return viol.Err()
}
