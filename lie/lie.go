// Package lie holds the numerical constants and validation plumbing shared
// by the group packages (lie/so, lie/tn, lie/se).
package lie

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// DefaultAngleEps is the rotation-angle threshold below which the
// exponential/logarithm maps switch from the trigonometric closed forms to
// their Taylor-series expansions. At 1e-4 the discarded series terms are
// O(θ⁴) ≈ 1e-16, so both branches agree to machine precision at the switch.
const DefaultAngleEps = 1e-4

// DefaultTol is the default absolute tolerance for validity checks
// (homogeneous-row structure, orthogonality, skew-symmetry).
const DefaultTol = 1e-10

// Violations accumulates independent validity failures so that a check can
// report every problem with a matrix rather than short-circuiting on the
// first one.
type Violations struct {
	errs []error
}

// Add records a violation. Nil errors are ignored, and aggregate errors
// produced by another Violations are flattened so nested delegated checks
// still count one entry per individual failure.
func (v *Violations) Add(err error) {
	if err == nil {
		return
	}
	if agg, ok := err.(*CheckError); ok {
		v.errs = append(v.errs, agg.Errs...)
		return
	}
	v.errs = append(v.errs, err)
}

// Addf records a violation built with fmt.Errorf.
func (v *Violations) Addf(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf(format, args...))
}

// Err returns nil when no violations were recorded, the sole violation when
// there was exactly one, and a *CheckError aggregating all of them otherwise.
func (v *Violations) Err() error {
	switch len(v.errs) {
	case 0:
		return nil
	case 1:
		return v.errs[0]
	default:
		return &CheckError{Errs: v.errs}
	}
}

// CheckError is an aggregate of two or more validity violations.
type CheckError struct {
	Errs []error
}

func (e *CheckError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d violations: %s", len(e.Errs), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual violations to errors.Is/errors.As.
func (e *CheckError) Unwrap() []error { return e.Errs }

// CountViolations reports how many individual violations err carries:
// 0 for nil, len(Errs) for an aggregate, 1 for anything else.
func CountViolations(err error) int {
	if err == nil {
		return 0
	}
	if agg, ok := err.(*CheckError); ok {
		return len(agg.Errs)
	}
	return 1
}

// Eye returns the n×n identity matrix.
func Eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// Clamp limits x to the interval [lo, hi]. Used to guard arccos against
// floating-point traces slightly outside [-1, 1].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
