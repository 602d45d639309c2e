package tableio

import (
	"path/filepath"
	"testing"

	"github.com/robert-malhotra/go-hdf5/hdf5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-eos/internal/testutil"
)

func sampleTable() *TableData {
	x1 := testutil.ExpNodes(testutil.UniformNodes(-10, 1, 6))
	x2 := testutil.ExpNodes(testutil.UniformNodes(20, 0.5, 4))
	return &TableData{
		X1:          x1,
		X1Shift:     []float64{0},
		X2:          x2,
		X2Shift:     []float64{1e11},
		Entropy:     testutil.ConstantCoefficients(6, 4, 1.5e9),
		Pressure:    testutil.HermiteCoefficients(testutil.UniformNodes(-10, 1, 6), testutil.UniformNodes(20, 0.5, 4), testutil.Bilinear(1, 1, 1, 0)),
		Temperature: testutil.ConstantCoefficients(6, 4, 8.5),
		Units: Units{
			Entropy:     "erg/g/K",
			Pressure:    "dyn/cm^2",
			Temperature: "K",
		},
	}
}

// TestWriteRead verifies a written table is read back unchanged.
func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.h5")
	want := sampleTable()

	require.NoError(t, Write(path, want))

	got, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, want.X1, got.X1)
	assert.Equal(t, want.X1Shift, got.X1Shift)
	assert.Equal(t, want.X2, got.X2)
	assert.Equal(t, want.X2Shift, got.X2Shift)
	assert.Equal(t, want.Entropy, got.Entropy)
	assert.Equal(t, want.Pressure, got.Pressure)
	assert.Equal(t, want.Temperature, got.Temperature)
	assert.Equal(t, want.Units, got.Units)

	n1, n2 := got.Cells()
	assert.Equal(t, 6, n1)
	assert.Equal(t, 4, n2)
}

// TestRead_OptionalShifts verifies missing shift datasets read as empty.
func TestRead_OptionalShifts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noshift.h5")
	d := sampleTable()
	d.X1Shift, d.X2Shift = nil, nil
	d.Units = Units{}

	require.NoError(t, Write(path, d))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Empty(t, got.X1Shift)
	assert.Empty(t, got.X2Shift)
	assert.Empty(t, got.Units.Pressure)
}

// TestRead_MissingCoefficients verifies a file without coefficient datasets
// is rejected.
func TestRead_MissingCoefficients(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.h5")

	f, err := hdf5.Create(path)
	require.NoError(t, err)
	_, err = f.Root().CreateDataset(DatasetX1, []float64{1, 2, 3})
	require.NoError(t, err)
	_, err = f.Root().CreateDataset(DatasetX2, []float64{1, 2})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = Read(path)
	require.ErrorIs(t, err, ErrMissing)
}

// TestRead_BundleSizeMismatch verifies the ncoef attribute is checked.
func TestRead_BundleSizeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mismatch.h5")

	f, err := hdf5.Create(path)
	require.NoError(t, err)
	root := f.Root()
	_, err = root.CreateDataset(DatasetX1, []float64{1, 2, 3})
	require.NoError(t, err)
	_, err = root.CreateDataset(DatasetX2, []float64{1, 2})
	require.NoError(t, err)
	_, err = root.CreateDataset(DatasetEntropy, make([]float64, 30), hdf5.WithAttribute(AttrNCoef, int64(16)))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = Read(path)
	require.ErrorIs(t, err, ErrMismatch)
}

// TestRead_MissingFile verifies open errors surface.
func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.h5"))
	require.Error(t, err)
}

// TestWrite_Invalid verifies inconsistent tables are not written.
func TestWrite_Invalid(t *testing.T) {
	d := sampleTable()
	d.Pressure = d.Pressure[:10]
	err := Write(filepath.Join(t.TempDir(), "bad.h5"), d)
	require.ErrorIs(t, err, ErrMismatch)

	err = Write(filepath.Join(t.TempDir(), "bad2.h5"), &TableData{X1: []float64{1}})
	require.ErrorIs(t, err, ErrMismatch)
}
