// Package coeff stores per-cell polynomial coefficients of an EOS table.
package coeff

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTable indicates a coefficient array that does not match the grid.
var ErrInvalidTable = errors.New("invalid coefficient table")

// Table maps a cell (i1, i2) of an n1×n2 grid to the coefficients of a local
// polynomial of degree d in each local coordinate:
//
//	v(f1, f2) = Σ_{p,q=0..d} c[p][q] * f1^p * f2^q
//
// Coefficients are stored cell-major. Cell (i1, i2) starts at
// ((i1*n2)+i2)*Terms() and coefficient c[p][q] sits at p*(d+1)+q within it.
//
// A Table is immutable after construction and safe for concurrent use.
type Table struct {
	n1, n2 int
	degree int
	terms  int
	data   []float64
}

// New builds a table for an n1×n2 cell grid. The polynomial degree is derived
// from the bundle size len(data)/(n1*n2), which must be (d+1)² for
// 1 <= d <= MaxDegree. The data is copied.
func New(n1, n2 int, data []float64) (*Table, error) {
	if n1 < 1 || n2 < 1 {
		return nil, fmt.Errorf("%w: grid must have at least one cell, got %dx%d", ErrInvalidTable, n1, n2)
	}

	cells := n1 * n2
	if len(data) == 0 || len(data)%cells != 0 {
		return nil, fmt.Errorf("%w: %d coefficients do not divide into %dx%d cells",
			ErrInvalidTable, len(data), n1, n2)
	}

	terms := len(data) / cells
	degree, err := degreeForTerms(terms)
	if err != nil {
		return nil, err
	}

	c := make([]float64, len(data))
	copy(c, data)

	return &Table{
		n1:     n1,
		n2:     n2,
		degree: degree,
		terms:  terms,
		data:   c,
	}, nil
}

// degreeForTerms returns d for a bundle of (d+1)² coefficients.
func degreeForTerms(terms int) (int, error) {
	side := int(math.Round(math.Sqrt(float64(terms))))
	if side*side != terms {
		return 0, fmt.Errorf("%w: %d coefficients per cell is not a square", ErrInvalidTable, terms)
	}
	degree := side - 1
	if degree < 1 || degree > MaxDegree {
		return 0, fmt.Errorf("%w: polynomial degree %d outside 1..%d", ErrInvalidTable, degree, MaxDegree)
	}
	return degree, nil
}

// Cell returns the coefficient bundle of cell (i1, i2). The returned slice
// aliases the table and must not be modified.
func (t *Table) Cell(i1, i2 int) []float64 {
	off := (i1*t.n2 + i2) * t.terms
	return t.data[off : off+t.terms : off+t.terms]
}

// At returns coefficient c[p][q] of cell (i1, i2).
func (t *Table) At(i1, i2, p, q int) float64 {
	return t.Cell(i1, i2)[p*(t.degree+1)+q]
}

// Dims returns the cell grid dimensions.
func (t *Table) Dims() (n1, n2 int) {
	return t.n1, t.n2
}

// Degree returns the polynomial degree in each coordinate.
func (t *Table) Degree() int {
	return t.degree
}

// Terms returns the number of coefficients per cell, (Degree()+1)².
func (t *Table) Terms() int {
	return t.terms
}

// MemoryUsage returns the coefficient storage size in bytes.
func (t *Table) MemoryUsage() int64 {
	return int64(len(t.data)) * bytesPerFloat64
}
