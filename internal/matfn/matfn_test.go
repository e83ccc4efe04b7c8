package matfn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestExpmZeroIsIdentity(t *testing.T) {
	t.Parallel()
	var e mat.Dense
	Expm(&e, mat.NewDense(3, 3, nil))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, e.At(i, j), 1e-15)
		}
	}
}

func TestLogmIdentityIsZero(t *testing.T) {
	t.Parallel()
	eye := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	var l mat.Dense
	require.NoError(t, Logm(&l, eye))
	assert.InDelta(t, 0, mat.Norm(&l, 2), 1e-14)
}

func TestLogmInvertsExpm(t *testing.T) {
	t.Parallel()

	t.Run("planar rotation", func(t *testing.T) {
		t.Parallel()
		theta := 1.1
		skew := mat.NewDense(2, 2, []float64{0, -theta, theta, 0})

		var e mat.Dense
		Expm(&e, skew)
		assert.InDelta(t, math.Cos(theta), e.At(0, 0), 1e-13)

		var l mat.Dense
		require.NoError(t, Logm(&l, &e))
		assert.True(t, mat.EqualApprox(skew, &l, 1e-10))
	})

	t.Run("screw matrix", func(t *testing.T) {
		t.Parallel()
		// A rigid-motion generator: skew block plus translation column.
		s := mat.NewDense(4, 4, []float64{
			0, -0.4, 0.2, 1.0,
			0.4, 0, -0.3, -0.5,
			-0.2, 0.3, 0, 0.25,
			0, 0, 0, 0,
		})

		var e mat.Dense
		Expm(&e, s)
		var l mat.Dense
		require.NoError(t, Logm(&l, &e))
		assert.True(t, mat.EqualApprox(s, &l, 1e-9))
	})

	t.Run("larger angle forces square roots", func(t *testing.T) {
		t.Parallel()
		theta := 2.9
		skew := mat.NewDense(2, 2, []float64{0, -theta, theta, 0})
		var e mat.Dense
		Expm(&e, skew)
		var l mat.Dense
		require.NoError(t, Logm(&l, &e))
		assert.True(t, mat.EqualApprox(skew, &l, 1e-8))
	})
}

func TestLogmSingularInput(t *testing.T) {
	t.Parallel()
	// Not invertible: cannot be a group element. Logm must not panic; the
	// result is meaningless but an error is surfaced.
	singular := mat.NewDense(2, 2, []float64{1, 0, 0, 0})
	var l mat.Dense
	err := Logm(&l, singular)
	assert.Error(t, err)
}
