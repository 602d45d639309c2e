package eos

// QueryFloat32 is like Query but for single-precision fields.
// Inputs are widened to float64, evaluated, and the result narrowed back.
// The interpolation itself always runs in double precision.
func (t *Table) QueryFloat32(rho, ei *Field32, quantity string) (*Field32, error) {
	q, err := ParseQuantity(quantity)
	if err != nil {
		return nil, err
	}

	out, err := t.QueryQuantity(widen(rho), widen(ei), q)
	if err != nil {
		return nil, err
	}
	return out.ToFloat32(), nil
}

// PressureAndTemperatureFloat32 is like PressureAndTemperature but for
// single-precision fields.
func (t *Table) PressureAndTemperatureFloat32(rho, ei *Field32) (pressure, temperature *Field32, err error) {
	p, tt, err := t.PressureAndTemperature(widen(rho), widen(ei))
	if err != nil {
		return nil, nil, err
	}
	return p.ToFloat32(), tt.ToFloat32(), nil
}

// PressureWithGradientFloat32 is like PressureWithGradient but for
// single-precision fields.
func (t *Table) PressureWithGradientFloat32(rho, ei *Field32) (pressure, dPdRho, dPdEi *Field32, err error) {
	p, dr, de, err := t.PressureWithGradient(widen(rho), widen(ei))
	if err != nil {
		return nil, nil, nil, err
	}
	return p.ToFloat32(), dr.ToFloat32(), de.ToFloat32(), nil
}

// TemperatureWithGradientFloat32 is like TemperatureWithGradient but for
// single-precision fields.
func (t *Table) TemperatureWithGradientFloat32(rho, ei *Field32) (temperature, dTdEi *Field32, err error) {
	tt, de, err := t.TemperatureWithGradient(widen(rho), widen(ei))
	if err != nil {
		return nil, nil, err
	}
	return tt.ToFloat32(), de.ToFloat32(), nil
}

// widen converts a possibly nil float32 field.
func widen(f *Field32) *Field {
	if f == nil {
		return nil
	}
	return f.ToFloat64()
}
