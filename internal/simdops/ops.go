// Package simdops provides the vector primitives used by the EOS kernel.
//
// Two implementations share one function-pointer table: the SIMD one backed by
// github.com/tphakala/simd, and a plain Go one used when SIMD is disabled.
// With Profile-Guided Optimization (Go 1.22+), the indirect calls in hot paths
// can be devirtualized and inlined.
package simdops

import (
	"github.com/tphakala/simd/f64"
)

// Ops holds float64 vector operations.
type Ops struct {
	// Name identifies the implementation ("simd" or "scalar").
	Name string

	// DotProductUnsafe computes the dot product without bounds checking.
	// Use only when slices are guaranteed to have equal length.
	DotProductUnsafe func(a, b []float64) float64

	// Sum returns the sum of all elements.
	Sum func(a []float64) float64

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []float64, s float64)
}

var (
	simdOps = Ops{
		Name:             "simd",
		DotProductUnsafe: f64.DotProductUnsafe,
		Sum:              f64.Sum,
		Scale:            f64.Scale,
	}
	scalarOps = Ops{
		Name:             "scalar",
		DotProductUnsafe: dotScalar,
		Sum:              sumScalar,
		Scale:            scaleScalar,
	}
)

// For returns the SIMD operations when enabled, the plain Go ones otherwise.
func For(enableSIMD bool) *Ops {
	if enableSIMD {
		return &simdOps
	}
	return &scalarOps
}

// SIMD returns the tphakala/simd backed operations.
func SIMD() *Ops {
	return &simdOps
}

// Scalar returns the plain Go operations.
func Scalar() *Ops {
	return &scalarOps
}

func dotScalar(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func sumScalar(a []float64) float64 {
	var s float64
	for _, v := range a {
		s += v
	}
	return s
}

func scaleScalar(dst, a []float64, s float64) {
	for i, v := range a {
		dst[i] = v * s
	}
}
