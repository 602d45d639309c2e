package eos

import (
	"fmt"

	"github.com/tphakala/go-eos/internal/kernel"
)

// checkFields validates the rank and shape of a density/energy pair.
func checkFields(rho, ei *Field) error {
	for _, f := range []struct {
		name  string
		field *Field
	}{{"density", rho}, {"energy", ei}} {
		if f.field == nil {
			return fmt.Errorf("%w: %s field is nil", ErrUnsupportedRank, f.name)
		}
		if r := f.field.Rank(); r != rank3D && r != rank4D {
			return fmt.Errorf("%w: %s field has rank %d, only 3-D and 4-D fields are supported",
				ErrUnsupportedRank, f.name, r)
		}
	}

	if !rho.SameShape(ei) || rho.Len() != ei.Len() {
		return fmt.Errorf("%w: density %v, energy %v", ErrShapeMismatch, rho.Shape, ei.Shape)
	}

	return nil
}

// each maps every element of rho/ei to its table cell once and hands each
// mapped range to fn. Ranges may run concurrently.
func (t *Table) each(rho, ei *Field, fn func(idx *kernel.Indices, lo, hi int)) error {
	if err := checkFields(rho, ei); err != nil {
		return err
	}

	idx := kernel.NewIndices(rho.Len())
	return t.forChunks(rho.Len(), func(lo, hi int) error {
		sub := idx.Slice(lo, hi)
		if err := t.mapper.Map(rho.Data[lo:hi], ei.Data[lo:hi], sub); err != nil {
			if lo > 0 {
				return fmt.Errorf("elements from %d: %w", lo, err)
			}
			return err
		}
		fn(sub, lo, hi)
		return nil
	})
}

// Query evaluates the named quantity ("Entropy", "Pressure", "Temperature"
// or an alias accepted by ParseQuantity) for every element of rho and ei.
// The result has the shape of the inputs.
func (t *Table) Query(rho, ei *Field, quantity string) (*Field, error) {
	q, err := ParseQuantity(quantity)
	if err != nil {
		return nil, err
	}
	return t.QueryQuantity(rho, ei, q)
}

// QueryQuantity evaluates q for every element of rho and ei. Pressure and
// temperature tables hold logarithms and are exponentiated; entropy is
// returned as stored.
func (t *Table) QueryQuantity(rho, ei *Field, q Quantity) (*Field, error) {
	if q < 0 || q >= numQuantities {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedQuantity, q)
	}

	if err := checkFields(rho, ei); err != nil {
		return nil, err
	}

	tab := t.tables[q]
	out := rho.like()
	err := t.each(rho, ei, func(idx *kernel.Indices, lo, hi int) {
		v := out.Data[lo:hi]
		t.kernel.Evaluate(tab, idx, v)
		if q.logStored() {
			kernel.Exp(v)
		}
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// PressureAndTemperature evaluates pressure and temperature with a single
// cell lookup per element.
func (t *Table) PressureAndTemperature(rho, ei *Field) (pressure, temperature *Field, err error) {
	if err := checkFields(rho, ei); err != nil {
		return nil, nil, err
	}

	pressure, temperature = rho.like(), rho.like()
	err = t.each(rho, ei, func(idx *kernel.Indices, lo, hi int) {
		p, tt := pressure.Data[lo:hi], temperature.Data[lo:hi]
		t.kernel.Evaluate(t.tables[Pressure], idx, p)
		t.kernel.Evaluate(t.tables[Temperature], idx, tt)
		kernel.Exp(p)
		kernel.Exp(tt)
	})
	if err != nil {
		return nil, nil, err
	}

	return pressure, temperature, nil
}

// PressureWithGradient evaluates pressure and its partial derivatives with
// respect to density and internal energy. The derivatives are analytic
// derivatives of the interpolating surface:
//
//	dP/dρ = P * ∂lnP/∂lnρ / ρ
//	dP/de = P * ∂lnP/∂ln(e+shift) / (e+shift)
func (t *Table) PressureWithGradient(rho, ei *Field) (pressure, dPdRho, dPdEi *Field, err error) {
	if err := checkFields(rho, ei); err != nil {
		return nil, nil, nil, err
	}

	pressure, dPdRho, dPdEi = rho.like(), rho.like(), rho.like()
	err = t.each(rho, ei, func(idx *kernel.Indices, lo, hi int) {
		p, dr, de := pressure.Data[lo:hi], dPdRho.Data[lo:hi], dPdEi.Data[lo:hi]
		t.kernel.EvaluateWithGradient(t.tables[Pressure], idx, p, dr, de)
		kernel.Exp(p)
		expGradient(dr, p, idx.InvRho)
		expGradient(de, p, idx.InvE)
	})
	if err != nil {
		return nil, nil, nil, err
	}

	return pressure, dPdRho, dPdEi, nil
}

// TemperatureWithGradient evaluates temperature and its partial derivative
// with respect to internal energy.
func (t *Table) TemperatureWithGradient(rho, ei *Field) (temperature, dTdEi *Field, err error) {
	if err := checkFields(rho, ei); err != nil {
		return nil, nil, err
	}

	temperature, dTdEi = rho.like(), rho.like()
	err = t.each(rho, ei, func(idx *kernel.Indices, lo, hi int) {
		tt, de := temperature.Data[lo:hi], dTdEi.Data[lo:hi]
		dRho := make([]float64, hi-lo)
		t.kernel.EvaluateWithGradient(t.tables[Temperature], idx, tt, dRho, de)
		kernel.Exp(tt)
		expGradient(de, tt, idx.InvE)
	})
	if err != nil {
		return nil, nil, err
	}

	return temperature, dTdEi, nil
}

// expGradient turns ∂lnQ/∂(log coordinate) into the physical derivative of Q
// in place: d[i] = q[i] * d[i] * inv[i].
func expGradient(d, q, inv []float64) {
	kernel.ChainRule(d, inv)
	for i := range d {
		d[i] *= q[i]
	}
}
