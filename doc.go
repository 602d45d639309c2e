// Package eos provides fast lookup of equation-of-state quantities from
// precomputed tables, in pure Go.
//
// A table tabulates entropy, gas pressure and temperature as smooth functions
// of mass density ρ and internal energy e. It is loaded once and then queried
// over whole 3-D or 4-D simulation fields, typically millions of elements per
// timestep.
//
// # Features
//
//   - Log-space grid lookup in O(1) per element, with boundary extrapolation
//   - Per-cell local polynomials (bicubic for standard tables) with exact
//     analytic first derivatives
//   - Combined queries that share one cell lookup: pressure and temperature,
//     pressure with dP/dρ and dP/de, temperature with dT/de
//   - Optional parallel evaluation across goroutines, bit-identical to
//     sequential evaluation
//   - Optional SIMD coefficient contraction via github.com/tphakala/simd
//   - HDF5 table files via github.com/robert-malhotra/go-hdf5
//
// # Quick Start
//
//	table, err := eos.Load("solar.h5")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// rho and ei are fields of identical shape, e.g. (nx, ny, nz)
//	p, err := table.Query(rho, ei, "Pressure")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For hydrodynamics solvers that need pressure derivatives:
//
//	p, dPdRho, dPdEi, err := table.PressureWithGradient(rho, ei)
//
// # Table Layout
//
// The density axis is indexed by ln ρ and the energy axis by ln(e + shift),
// where the shift is a constant stored with the table. Within a cell with
// lower nodes (x1₀, x2₀), a quantity is the polynomial
//
//	v = Σ c[p][q] · (ln ρ − x1₀)^p · (ln(e+shift) − x2₀)^q
//
// The entropy table stores the entropy itself; the pressure and temperature
// tables store their natural logarithms, and queries exponentiate them.
//
// # Out-of-range Inputs
//
// Densities and energies outside the tabulated range are not errors: they are
// evaluated with the polynomial of the nearest boundary cell. Non-positive
// densities, or energies at or below −shift, fail with [ErrDomain] because
// their logarithm is undefined.
//
// # Thread Safety
//
// A [Table] is immutable after [Load] or [New] returns and may be queried
// from any number of goroutines concurrently.
package eos
