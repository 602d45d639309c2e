// Package kernel implements batched index mapping and local polynomial
// evaluation for EOS tables.
package kernel

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-eos/internal/grid"
)

// Errors returned by the mapper.
var (
	// ErrDomain indicates a density or shifted energy whose logarithm is undefined.
	ErrDomain = errors.New("value outside logarithm domain")

	// ErrLengthMismatch indicates input and output slices of different lengths.
	ErrLengthMismatch = errors.New("slice length mismatch")
)

// Indices holds the per-element cell indices and local log-space offsets of a
// batch, plus the reciprocals needed to convert log-space derivatives to
// physical ones.
type Indices struct {
	I1, I2       []int32
	Frac1, Frac2 []float64

	// InvRho is 1/ρ and InvE is 1/(e+shift).
	InvRho, InvE []float64
}

// NewIndices allocates indices for n elements.
func NewIndices(n int) *Indices {
	return &Indices{
		I1:     make([]int32, n),
		I2:     make([]int32, n),
		Frac1:  make([]float64, n),
		Frac2:  make([]float64, n),
		InvRho: make([]float64, n),
		InvE:   make([]float64, n),
	}
}

// Len returns the number of elements.
func (x *Indices) Len() int {
	return len(x.I1)
}

// Slice returns a view of elements [lo, hi). The view shares storage.
func (x *Indices) Slice(lo, hi int) *Indices {
	return &Indices{
		I1:     x.I1[lo:hi],
		I2:     x.I2[lo:hi],
		Frac1:  x.Frac1[lo:hi],
		Frac2:  x.Frac2[lo:hi],
		InvRho: x.InvRho[lo:hi],
		InvE:   x.InvE[lo:hi],
	}
}

// Mapper converts (density, energy) pairs to cells of a table grid. The
// density axis is indexed by ln ρ and the energy axis by ln(e + Shift).
type Mapper struct {
	Axis1 *grid.Axis
	Axis2 *grid.Axis
	Shift float64
}

// Map fills idx for every element of rho and ei. Coordinates outside the
// table clip to the boundary cells. A non-positive or NaN density or shifted
// energy fails with ErrDomain; idx contents are then unspecified.
func (m *Mapper) Map(rho, ei []float64, idx *Indices) error {
	if len(rho) != len(ei) || len(rho) != idx.Len() {
		return fmt.Errorf("%w: rho=%d ei=%d indices=%d", ErrLengthMismatch, len(rho), len(ei), idx.Len())
	}

	for k, r := range rho {
		if !(r > 0) {
			return fmt.Errorf("%w: density[%d] = %v", ErrDomain, k, r)
		}
		e := ei[k] + m.Shift
		if !(e > 0) {
			return fmt.Errorf("%w: energy[%d] + shift = %v", ErrDomain, k, e)
		}

		i1, f1 := m.Axis1.IndexAndOffset(math.Log(r))
		i2, f2 := m.Axis2.IndexAndOffset(math.Log(e))

		idx.I1[k] = int32(i1)
		idx.I2[k] = int32(i2)
		idx.Frac1[k] = f1
		idx.Frac2[k] = f2
		idx.InvRho[k] = 1 / r
		idx.InvE[k] = 1 / e
	}

	return nil
}
