package eos

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-eos/internal/coeff"
	"github.com/tphakala/go-eos/internal/grid"
	"github.com/tphakala/go-eos/internal/kernel"
	"github.com/tphakala/go-eos/internal/tableio"
)

// Common errors returned by the package.
var (
	// ErrLoad indicates the table could not be obtained from its source.
	ErrLoad = errors.New("cannot load EOS table")

	// ErrInvalidAxis indicates malformed axis data in a table.
	ErrInvalidAxis = grid.ErrInvalidAxis

	// ErrInvalidTable indicates coefficient data that does not fit the grid.
	ErrInvalidTable = coeff.ErrInvalidTable

	// ErrUnsupportedQuantity indicates an unknown quantity name.
	ErrUnsupportedQuantity = errors.New("unsupported quantity")

	// ErrUnsupportedRank indicates a field that is neither 3-D nor 4-D.
	ErrUnsupportedRank = errors.New("unsupported field rank")

	// ErrShapeMismatch indicates density and energy fields of different shapes.
	ErrShapeMismatch = errors.New("field shape mismatch")

	// ErrDomain indicates a non-positive density or shifted energy.
	ErrDomain = kernel.ErrDomain

	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid EOS configuration")
)

// TableData is the raw table content produced by a Loader.
type TableData = tableio.TableData

// Units holds the unit strings of the tabulated quantities.
type Units = tableio.Units

// Quantity selects one of the tabulated thermodynamic quantities.
type Quantity int

const (
	// Entropy is stored directly.
	Entropy Quantity = iota

	// Pressure is the gas pressure, stored as its natural logarithm.
	Pressure

	// Temperature is stored as its natural logarithm.
	Temperature

	numQuantities
)

// String returns the quantity name.
func (q Quantity) String() string {
	switch q {
	case Entropy:
		return "Entropy"
	case Pressure:
		return "Pressure"
	case Temperature:
		return "Temperature"
	default:
		return fmt.Sprintf("Quantity(%d)", int(q))
	}
}

// logStored reports whether the table holds ln of the quantity.
func (q Quantity) logStored() bool {
	return q == Pressure || q == Temperature
}

// ParseQuantity resolves a quantity name. Full names are case-insensitive and
// single-letter aliases E/e, P/p and T/t are accepted.
func ParseQuantity(s string) (Quantity, error) {
	switch strings.ToLower(s) {
	case "entropy", "e":
		return Entropy, nil
	case "pressure", "p":
		return Pressure, nil
	case "temperature", "t":
		return Temperature, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedQuantity, s)
	}
}

// Loader produces raw table data from a path.
type Loader interface {
	Load(path string) (*TableData, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (*TableData, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (*TableData, error) {
	return f(path)
}

// HDF5Loader reads tables from HDF5 files.
type HDF5Loader struct{}

// Load reads the HDF5 table at path.
func (HDF5Loader) Load(path string) (*TableData, error) {
	return tableio.Read(path)
}

// WriteHDF5 stores table data as an HDF5 file readable by Load.
func WriteHDF5(path string, d *TableData) error {
	return tableio.Write(path, d)
}

// Table is a loaded equation-of-state table. It answers entropy, pressure and
// temperature queries, and pressure/temperature derivatives, as functions of
// density and internal energy.
//
// A Table is immutable once constructed and safe for concurrent use by
// multiple goroutines.
type Table struct {
	config Config

	mapper kernel.Mapper
	kernel *kernel.Kernel
	tables [numQuantities]*coeff.Table
	units  Units
}

// Load reads an HDF5 table file.
func Load(path string, opts ...Option) (*Table, error) {
	return LoadWith(HDF5Loader{}, path, opts...)
}

// LoadWith obtains table data from l and builds a Table from it.
func LoadWith(l Loader, path string, opts ...Option) (*Table, error) {
	data, err := l.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}

	t, err := New(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	t.config.Logger.Debugf("Loaded EOS table %s: %dx%d cells, degree %d, ln rho [%g, %g], ln(e+%g) [%g, %g]",
		path, t.mapper.Axis1.Cells(), t.mapper.Axis2.Cells(), t.tables[Pressure].Degree(),
		t.mapper.Axis1.Min(), t.mapper.Axis1.Max(), t.mapper.Shift, t.mapper.Axis2.Min(), t.mapper.Axis2.Max())

	return t, nil
}

// New builds a Table from raw table data.
func New(data *TableData, opts ...Option) (*Table, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.resolve()

	if data == nil {
		return nil, fmt.Errorf("%w: table data is nil", ErrLoad)
	}

	ax1, err := grid.FromShifted(data.X1, data.X1Shift)
	if err != nil {
		return nil, fmt.Errorf("density axis: %w", err)
	}

	var shift float64
	switch len(data.X2Shift) {
	case 0:
	case 1:
		shift = data.X2Shift[0]
	default:
		return nil, fmt.Errorf("%w: energy shift must be a scalar, got %d values", ErrInvalidAxis, len(data.X2Shift))
	}

	ax2, err := grid.FromShifted(data.X2, data.X2Shift)
	if err != nil {
		return nil, fmt.Errorf("energy axis: %w", err)
	}

	t := &Table{
		config: cfg,
		mapper: kernel.Mapper{Axis1: ax1, Axis2: ax2, Shift: shift},
		kernel: kernel.New(kernel.Options{UseSIMD: cfg.EnableSIMD}),
		units:  data.Units,
	}

	n1, n2 := ax1.Cells(), ax2.Cells()
	raw := [numQuantities][]float64{
		Entropy:     data.Entropy,
		Pressure:    data.Pressure,
		Temperature: data.Temperature,
	}
	for q, c := range raw {
		if len(c) == 0 {
			return nil, fmt.Errorf("%w: missing %s coefficients", ErrLoad, Quantity(q))
		}
		tab, err := coeff.New(n1, n2, c)
		if err != nil {
			return nil, fmt.Errorf("%s coefficients: %w", Quantity(q), err)
		}
		t.tables[q] = tab
	}

	t.checkSpacing("density", ax1)
	t.checkSpacing("energy", ax2)

	return t, nil
}

// checkSpacing warns about strongly non-uniform axes.
func (t *Table) checkSpacing(name string, a *grid.Axis) {
	narrowest, widest := a.Spacing()
	if widest > maxSpacingRatio*narrowest {
		t.config.Logger.Warnf("EOS %s axis is non-uniform (cell widths %g to %g); lookups refine the linear estimate",
			name, narrowest, widest)
	}
}

// Unit returns the unit string of a quantity.
func (t *Table) Unit(quantity string) (string, error) {
	q, err := ParseQuantity(quantity)
	if err != nil {
		return "", err
	}

	switch q {
	case Entropy:
		return t.units.Entropy, nil
	case Pressure:
		return t.units.Pressure, nil
	default:
		return t.units.Temperature, nil
	}
}

// Axes returns copies of the log-space density axis (ln ρ) and energy axis
// (ln(e + shift)).
func (t *Table) Axes() (lnRho, lnE []float64) {
	return t.mapper.Axis1.Values(), t.mapper.Axis2.Values()
}

// EnergyShift returns the constant added to the internal energy before
// taking its logarithm.
func (t *Table) EnergyShift() float64 {
	return t.mapper.Shift
}

// Info describes a loaded table.
type Info struct {
	// Cells1 and Cells2 are the grid dimensions along density and energy.
	Cells1, Cells2 int

	// Degree is the per-coordinate polynomial degree of the pressure table.
	Degree int

	// LnRhoMin and LnRhoMax bound the density axis (ln ρ).
	LnRhoMin, LnRhoMax float64

	// LnEMin and LnEMax bound the energy axis (ln(e + shift)).
	LnEMin, LnEMax float64

	// EnergyShift is added to e before taking the logarithm.
	EnergyShift float64

	// Units of the tabulated quantities.
	Units Units

	// Kernel names the coefficient contraction strategy.
	Kernel string

	// Parallel and Workers describe query parallelism.
	Parallel bool
	Workers  int

	// MemoryUsage is the approximate table size in bytes.
	MemoryUsage int64
}

// Info returns information about the table.
func (t *Table) Info() Info {
	info := Info{
		Cells1:      t.mapper.Axis1.Cells(),
		Cells2:      t.mapper.Axis2.Cells(),
		Degree:      t.tables[Pressure].Degree(),
		LnRhoMin:    t.mapper.Axis1.Min(),
		LnRhoMax:    t.mapper.Axis1.Max(),
		LnEMin:      t.mapper.Axis2.Min(),
		LnEMax:      t.mapper.Axis2.Max(),
		EnergyShift: t.mapper.Shift,
		Units:       t.units,
		Kernel:      t.kernel.Name(),
		Parallel:    t.config.EnableParallel,
		Workers:     1,
	}
	if t.config.EnableParallel {
		info.Workers = t.config.Workers
	}

	for _, tab := range t.tables {
		info.MemoryUsage += tab.MemoryUsage()
	}
	info.MemoryUsage += int64(info.Cells1+info.Cells2+2) * bytesPerFloat64

	return info
}
