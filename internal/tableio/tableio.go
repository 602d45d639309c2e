// Package tableio reads and writes EOS tables stored as HDF5 files.
//
// A table file holds, at the root group, the float64 datasets
//
//	x1, x1shift   density axis nodes and their shift
//	x2, x2shift   energy axis nodes and their shift
//	c1, c2, c3    entropy, ln-pressure and ln-temperature coefficients
//
// The coefficient datasets are flat, cell-major bundles and carry a "u"
// attribute with the unit string and an "ncoef" attribute with the bundle size.
package tableio

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-hdf5/hdf5"
)

// Dataset and attribute names.
const (
	DatasetX1      = "x1"
	DatasetX1Shift = "x1shift"
	DatasetX2      = "x2"
	DatasetX2Shift = "x2shift"
	DatasetEntropy = "c1"
	DatasetPress   = "c2"
	DatasetTemp    = "c3"

	AttrUnit  = "u"
	AttrNCoef = "ncoef"
)

// Errors returned while reading a table file.
var (
	ErrMissing  = errors.New("missing table data")
	ErrMismatch = errors.New("inconsistent table data")
)

// Units holds the unit strings of the three tabulated quantities.
type Units struct {
	Entropy     string
	Pressure    string
	Temperature string
}

// TableData is the raw content of an EOS table: axis nodes as stored (not yet
// logged), their shifts, and the coefficient bundles of each quantity.
// Pressure and Temperature coefficients describe the natural logarithm of the
// quantity; Entropy coefficients describe the quantity itself.
type TableData struct {
	X1, X1Shift []float64
	X2, X2Shift []float64

	Entropy     []float64
	Pressure    []float64
	Temperature []float64

	Units Units
}

// Cells returns the cell grid dimensions implied by the axes.
func (d *TableData) Cells() (n1, n2 int) {
	return len(d.X1) - 1, len(d.X2) - 1
}

// Read loads a table from an HDF5 file.
func Read(path string) (*TableData, error) {
	f, err := hdf5.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	d := &TableData{}

	vectors := []struct {
		name     string
		dst      *[]float64
		optional bool
	}{
		{DatasetX1, &d.X1, false},
		{DatasetX1Shift, &d.X1Shift, true},
		{DatasetX2, &d.X2, false},
		{DatasetX2Shift, &d.X2Shift, true},
	}
	for _, v := range vectors {
		vals, err := readVector(f, v.name, v.optional)
		if err != nil {
			return nil, err
		}
		*v.dst = vals
	}

	n1, n2 := d.Cells()
	if n1 < 1 || n2 < 1 {
		return nil, fmt.Errorf("%w: axes need at least two nodes (x1=%d, x2=%d)", ErrMismatch, len(d.X1), len(d.X2))
	}

	quantities := []struct {
		name string
		dst  *[]float64
		unit *string
	}{
		{DatasetEntropy, &d.Entropy, &d.Units.Entropy},
		{DatasetPress, &d.Pressure, &d.Units.Pressure},
		{DatasetTemp, &d.Temperature, &d.Units.Temperature},
	}
	for _, q := range quantities {
		if err := readCoefficients(f, q.name, n1*n2, q.dst, q.unit); err != nil {
			return nil, err
		}
	}

	return d, nil
}

func readVector(f *hdf5.File, name string, optional bool) ([]float64, error) {
	ds, err := f.OpenDataset(name)
	if err != nil {
		if optional && errors.Is(err, hdf5.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: dataset %s: %w", ErrMissing, name, err)
	}

	vals, err := ds.ReadFloat64()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return vals, nil
}

func readCoefficients(f *hdf5.File, name string, cells int, dst *[]float64, unit *string) error {
	ds, err := f.OpenDataset(name)
	if err != nil {
		return fmt.Errorf("%w: dataset %s: %w", ErrMissing, name, err)
	}

	vals, err := ds.ReadFloat64()
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	if attr := ds.Attr(AttrNCoef); attr != nil {
		ncoef, err := attr.ReadScalarInt64()
		if err != nil {
			return fmt.Errorf("reading %s@%s: %w", name, AttrNCoef, err)
		}
		if int64(len(vals)) != ncoef*int64(cells) {
			return fmt.Errorf("%w: %s has %d values, want %d cells x %d coefficients",
				ErrMismatch, name, len(vals), cells, ncoef)
		}
	}

	if attr := ds.Attr(AttrUnit); attr != nil {
		u, err := attr.ReadScalarString()
		if err != nil {
			return fmt.Errorf("reading %s@%s: %w", name, AttrUnit, err)
		}
		*unit = u
	}

	*dst = vals
	return nil
}

// Write stores a table as an HDF5 file, replacing any existing file.
func Write(path string, d *TableData) error {
	n1, n2 := d.Cells()
	if n1 < 1 || n2 < 1 {
		return fmt.Errorf("%w: axes need at least two nodes (x1=%d, x2=%d)", ErrMismatch, len(d.X1), len(d.X2))
	}

	f, err := hdf5.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	root := f.Root()

	vectors := []struct {
		name string
		vals []float64
	}{
		{DatasetX1, d.X1},
		{DatasetX1Shift, d.X1Shift},
		{DatasetX2, d.X2},
		{DatasetX2Shift, d.X2Shift},
	}
	for _, v := range vectors {
		if len(v.vals) == 0 {
			continue
		}
		if _, err := root.CreateDataset(v.name, v.vals); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", v.name, err)
		}
	}

	cells := n1 * n2
	quantities := []struct {
		name string
		vals []float64
		unit string
	}{
		{DatasetEntropy, d.Entropy, d.Units.Entropy},
		{DatasetPress, d.Pressure, d.Units.Pressure},
		{DatasetTemp, d.Temperature, d.Units.Temperature},
	}
	for _, q := range quantities {
		if len(q.vals) == 0 || len(q.vals)%cells != 0 {
			f.Close()
			return fmt.Errorf("%w: %s has %d values for %d cells", ErrMismatch, q.name, len(q.vals), cells)
		}

		opts := []hdf5.DatasetOption{hdf5.WithAttribute(AttrNCoef, int64(len(q.vals)/cells))}
		if q.unit != "" {
			opts = append(opts, hdf5.WithAttribute(AttrUnit, q.unit))
		}
		if _, err := root.CreateDataset(q.name, q.vals, opts...); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", q.name, err)
		}
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
