// Package matfn provides general dense matrix exponential and logarithm
// primitives. The group packages use these as the fallback for dimensions
// without closed forms.
package matfn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	// seriesRadius bounds ‖A-I‖_F before the log series is applied.
	// Repeated square roots pull the argument inside this radius.
	seriesRadius = 0.25
	maxSqrts     = 48
	seriesTerms  = 32

	sqrtMaxIter = 64
	sqrtTol     = 1e-14
)

// Expm computes the matrix exponential of the square matrix a, placing the
// result in dst. It delegates to gonum's scaling-and-squaring Padé
// implementation.
func Expm(dst *mat.Dense, a mat.Matrix) {
	dst.Exp(a)
}

// Logm computes the principal matrix logarithm of the square matrix a,
// placing the result in dst. It uses inverse scaling and squaring:
// Denman-Beavers iterations take repeated square roots until a is within
// the convergence radius of the Mercator series log(I+X) = Σ (-1)^(m+1) X^m/m,
// and the series result is scaled back up.
//
// a must be invertible with no real negative eigenvalues for the result to
// be meaningful; group elements near the identity always qualify. On an
// inversion failure Logm returns an error along with the best value it
// reached, so callers that tolerate meaningless output on invalid input can
// ignore the error.
func Logm(dst *mat.Dense, a mat.Matrix) error {
	n, c := a.Dims()
	if n != c {
		panic("matfn: matrix is not square")
	}

	cur := mat.DenseCopyOf(a)
	var sqrtErr error
	k := 0
	for k < maxSqrts && distFromIdentity(cur) > seriesRadius {
		if err := sqrtm(cur, cur); err != nil {
			sqrtErr = fmt.Errorf("matfn: square root %d failed: %w", k, err)
			break
		}
		k++
	}

	// X = A^(1/2^k) - I.
	x := mat.NewDense(n, n, nil)
	x.Copy(cur)
	for i := 0; i < n; i++ {
		x.Set(i, i, x.At(i, i)-1)
	}

	// Mercator series in X.
	sum := mat.DenseCopyOf(x)
	term := mat.DenseCopyOf(x)
	var scaled mat.Dense
	sign := -1.0
	for m := 2; m <= seriesTerms; m++ {
		term.Mul(term, x)
		scaled.Scale(sign/float64(m), term)
		sum.Add(sum, &scaled)
		sign = -sign
	}

	dst.Scale(float64(uint64(1)<<uint(k)), sum)
	return sqrtErr
}

// sqrtm computes the principal square root of a by the Denman-Beavers
// iteration, placing the result in dst. dst may alias a.
func sqrtm(dst *mat.Dense, a mat.Matrix) error {
	n, _ := a.Dims()
	y := mat.DenseCopyOf(a)
	z := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		z.Set(i, i, 1)
	}

	var yInv, zInv, yNext, zNext, diff mat.Dense
	for it := 0; it < sqrtMaxIter; it++ {
		if err := yInv.Inverse(y); err != nil {
			return err
		}
		if err := zInv.Inverse(z); err != nil {
			return err
		}
		yNext.Add(y, &zInv)
		yNext.Scale(0.5, &yNext)
		zNext.Add(z, &yInv)
		zNext.Scale(0.5, &zNext)

		diff.Sub(&yNext, y)
		converged := mat.Norm(&diff, 2) <= sqrtTol*mat.Norm(&yNext, 2)
		y.Copy(&yNext)
		z.Copy(&zNext)
		if converged {
			break
		}
	}
	dst.Copy(y)
	return nil
}

// distFromIdentity returns ‖a - I‖_F.
func distFromIdentity(a *mat.Dense) float64 {
	n, _ := a.Dims()
	var x mat.Dense
	x.CloneFrom(a)
	for i := 0; i < n; i++ {
		x.Set(i, i, x.At(i, i)-1)
	}
	return mat.Norm(&x, 2)
}
