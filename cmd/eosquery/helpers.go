package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"

	eos "github.com/tphakala/go-eos"
	"github.com/tphakala/go-eos/internal/simdops"
)

// tableRanges returns the density and energy ranges covered by the table.
func tableRanges(info eos.Info) (rho, e rangeConfig) {
	rho = rangeConfig{Min: math.Exp(info.LnRhoMin), Max: math.Exp(info.LnRhoMax)}
	e = rangeConfig{
		Min: math.Exp(info.LnEMin) - info.EnergyShift,
		Max: math.Exp(info.LnEMax) - info.EnergyShift,
	}
	return rho, e
}

// position returns i/(n-1), or 0.5 for a single-element axis.
func position(i, n int) float64 {
	if n == 1 {
		return 0.5
	}
	return float64(i) / float64(n-1)
}

// sweepBox builds density and energy fields of the given shape. Density is
// log-uniform along the first axis and energy is uniform in ln(e+shift)
// along the second; the remaining axes repeat the pattern.
func sweepBox(shape []int, rho, e rangeConfig, shift float64) (rhoF, eiF *eos.Field) {
	rhoF, eiF = eos.NewField(shape...), eos.NewField(shape...)

	stride1 := 1
	for _, d := range shape[2:] {
		stride1 *= d
	}
	stride0 := stride1 * shape[1]

	lnRho0, lnRho1 := math.Log(rho.Min), math.Log(rho.Max)
	lnE0, lnE1 := math.Log(e.Min+shift), math.Log(e.Max+shift)

	for n := range rhoF.Data {
		i0 := n / stride0
		i1 := (n / stride1) % shape[1]

		rhoF.Data[n] = math.Exp(lnRho0 + (lnRho1-lnRho0)*position(i0, shape[0]))
		eiF.Data[n] = math.Exp(lnE0+(lnE1-lnE0)*position(i1, shape[1])) - shift
	}

	return rhoF, eiF
}

// summary describes the values of one output field.
type summary struct {
	Name     string
	Min, Max float64
	Mean     float64
	NaN      bool
	Elements int
}

// summarize scans data with gonum for extrema and ops for the mean.
func summarize(name string, data []float64, ops *simdops.Ops) summary {
	s := summary{Name: name, Elements: len(data)}
	if len(data) == 0 {
		return s
	}

	s.NaN = floats.HasNaN(data)
	s.Min = floats.Min(data)
	s.Max = floats.Max(data)
	s.Mean = ops.Sum(data) / float64(len(data))
	return s
}

// writeSummaries prints one aligned row per field.
func writeSummaries(w io.Writer, ss []summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "field\tmin\tmax\tmean\tNaN\t")
	for _, s := range ss {
		fmt.Fprintf(tw, "%s\t%.6e\t%.6e\t%.6e\t%v\t\n", s.Name, s.Min, s.Max, s.Mean, s.NaN)
	}
	return tw.Flush()
}
