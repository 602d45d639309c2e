package coeff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_DegreeFromBundleSize verifies the degree follows the bundle size.
func TestNew_DegreeFromBundleSize(t *testing.T) {
	tests := []struct {
		name   string
		terms  int
		degree int
	}{
		{"Bilinear", 4, 1},
		{"Biquadratic", 9, 2},
		{"Bicubic", BicubicTerms, 3},
		{"Biquintic", 36, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab, err := New(3, 2, make([]float64, 3*2*tt.terms))
			require.NoError(t, err)
			assert.Equal(t, tt.degree, tab.Degree())
			assert.Equal(t, tt.terms, tab.Terms())
		})
	}
}

// TestNew_Invalid verifies malformed coefficient arrays are rejected.
func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		n1, n2 int
		size   int
	}{
		{"No cells", 0, 4, 16},
		{"Empty data", 2, 2, 0},
		{"Not divisible", 2, 2, 63},
		{"Not square", 2, 2, 4 * 12},
		{"Constant only", 2, 2, 4},
		{"Degree too high", 1, 1, 49},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.n1, tt.n2, make([]float64, tt.size))
			require.ErrorIs(t, err, ErrInvalidTable)
		})
	}
}

// TestCell_Layout verifies cell-major, p-major coefficient addressing.
func TestCell_Layout(t *testing.T) {
	const n1, n2 = 3, 4
	data := make([]float64, n1*n2*BicubicTerms)
	for i := range data {
		data[i] = float64(i)
	}

	tab, err := New(n1, n2, data)
	require.NoError(t, err)

	cell := tab.Cell(2, 1)
	require.Len(t, cell, BicubicTerms)
	assert.InDelta(t, float64((2*n2+1)*BicubicTerms), cell[0], 0)

	// c[1][2] of cell (1, 3)
	want := float64((1*n2+3)*BicubicTerms + 1*4 + 2)
	assert.InDelta(t, want, tab.At(1, 3, 1, 2), 0)

	// The table owns its data.
	data[0] = -1
	assert.InDelta(t, 0.0, tab.At(0, 0, 0, 0), 0)

	n1Got, n2Got := tab.Dims()
	assert.Equal(t, n1, n1Got)
	assert.Equal(t, n2, n2Got)
	assert.Equal(t, int64(len(data)*8), tab.MemoryUsage())
}
