package se

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func randomTangent(g *Group, rng *rand.Rand) Tangent {
	coords := mat.NewVecDense(g.DOF(), nil)
	for i := 0; i < coords.Len(); i++ {
		coords.SetVec(i, rng.NormFloat64())
	}
	return g.Hat(coords)
}

func TestBracketMatrixIsExactCommutator(t *testing.T) {
	t.Parallel()
	g := New(3)
	rng := rand.New(rand.NewSource(41))

	x := g.ScrewMatrix(nil, randomTangent(g, rng))
	y := g.ScrewMatrix(nil, randomTangent(g, rng))

	got := g.BracketMatrix(nil, x, y)

	var xy, yx, want mat.Dense
	xy.Mul(x, y)
	yx.Mul(y, x)
	want.Sub(&xy, &yx)

	// Same products, same subtraction: bit-for-bit equality, no tolerance.
	assert.True(t, mat.Equal(got, &want))
}

func TestBracketStructuredMatchesMatrix(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 3} {
		g := New(n)
		rng := rand.New(rand.NewSource(int64(43 + n)))
		x := randomTangent(g, rng)
		y := randomTangent(g, rng)

		structured := g.Bracket(x, y)
		viaMatrix := g.BracketMatrix(nil,
			g.ScrewMatrix(nil, x), g.ScrewMatrix(nil, y))
		want := g.TangentFromScrew(viaMatrix)

		assert.True(t, mat.EqualApprox(structured.Omega, want.Omega, 1e-13), "n=%d", n)
		assert.True(t, mat.EqualApprox(structured.B, want.B, 1e-13), "n=%d", n)
	}
}

func TestBracketSE2RotationPartVanishes(t *testing.T) {
	t.Parallel()
	g := New(2)
	rng := rand.New(rand.NewSource(47))

	// so(2) is abelian, so the rotation part of any se(2) bracket is zero.
	x := randomTangent(g, rng)
	y := randomTangent(g, rng)
	br := g.Bracket(x, y)
	assert.InDelta(t, 0, mat.Norm(br.Omega, 2), 1e-15)
}

func TestAdjointClosedFormMatchesConjugation(t *testing.T) {
	t.Parallel()
	g := New(3)
	rng := rand.New(rand.NewSource(53))

	for trial := 0; trial < 10; trial++ {
		p := randomPose(t, g, rng)
		x := randomTangent(g, rng)

		// General form: blockwise conjugation of the screw matrix.
		general := g.Adjoint(p, x)
		var generalCoords mat.VecDense
		g.Vee(&generalCoords, general)

		// n=3 closed form on coordinate vectors.
		var inCoords, outCoords mat.VecDense
		g.Vee(&inCoords, x)
		g.AdjointCoords(&outCoords, p, &inCoords)

		var diff mat.VecDense
		diff.SubVec(&generalCoords, &outCoords)
		assert.InDelta(t, 0, mat.Norm(&diff, 2), 1e-12, "trial=%d", trial)
	}
}

func TestAdjointMatchesScrewConjugation(t *testing.T) {
	t.Parallel()
	g := New(3)
	rng := rand.New(rand.NewSource(59))

	p := randomPose(t, g, rng)
	x := randomTangent(g, rng)

	got := g.ScrewMatrix(nil, g.Adjoint(p, x))

	// Ad_p(X) = A·X·A⁻¹ on homogeneous matrices.
	a := g.AffineMatrix(nil, p)
	aInv := g.InverseMatrix(nil, a)
	var ax, want mat.Dense
	ax.Mul(a, g.ScrewMatrix(nil, x))
	want.Mul(&ax, aInv)

	assert.True(t, mat.EqualApprox(got, &want, 1e-12))
}

func TestAdjointIdentityIsIdentity(t *testing.T) {
	t.Parallel()
	g := New(3)
	rng := rand.New(rand.NewSource(61))
	x := randomTangent(g, rng)

	got := g.Adjoint(g.Identity(), x)
	assert.True(t, mat.EqualApprox(x.Omega, got.Omega, 1e-15))
	assert.True(t, mat.EqualApprox(x.B, got.B, 1e-15))
}

func TestAdjointIntoAliasing(t *testing.T) {
	t.Parallel()
	g := New(3)
	rng := rand.New(rand.NewSource(67))
	p := randomPose(t, g, rng)
	x := randomTangent(g, rng)
	want := g.Adjoint(p, x)

	g.AdjointInto(&x, p, x)
	assert.True(t, mat.EqualApprox(want.Omega, x.Omega, 1e-15))
	assert.True(t, mat.EqualApprox(want.B, x.B, 1e-15))
}

func TestHatVeeRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("SE(2) three coordinates", func(t *testing.T) {
		t.Parallel()
		g := New(2)
		in := mat.NewVecDense(3, []float64{1, -2, 0.75})
		x := g.Hat(in)

		assert.Equal(t, 1.0, x.B.AtVec(0))
		assert.Equal(t, -2.0, x.B.AtVec(1))
		assert.Equal(t, 0.75, x.Omega.At(1, 0))

		var out mat.VecDense
		g.Vee(&out, x)
		assert.True(t, mat.Equal(in, &out))
	})

	t.Run("SE(3) six coordinates", func(t *testing.T) {
		t.Parallel()
		g := New(3)
		in := mat.NewVecDense(6, []float64{1, 2, 3, 0.1, -0.2, 0.3})
		x := g.Hat(in)

		assert.Equal(t, 3.0, x.B.AtVec(2))
		// Rotation block is the cross-product matrix of (0.1, -0.2, 0.3).
		assert.Equal(t, 0.1, x.Omega.At(2, 1))
		assert.Equal(t, -0.2, x.Omega.At(0, 2))
		assert.Equal(t, 0.3, x.Omega.At(1, 0))

		var out mat.VecDense
		g.Vee(&out, x)
		assert.True(t, mat.Equal(in, &out))
	})

	t.Run("wrong length panics", func(t *testing.T) {
		t.Parallel()
		g := New(3)
		require.Panics(t, func() {
			g.Hat(mat.NewVecDense(5, nil))
		})
	})
}

func TestDOF(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 3, New(2).DOF())
	assert.Equal(t, 6, New(3).DOF())
	assert.Equal(t, 10, New(4).DOF())
}
