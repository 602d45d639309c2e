// Command eosplot renders an EOS quantity along isochores.
//
// Usage:
//
//	eosplot -table solar.h5
//	eosplot -table solar.h5 -q T -rho 1e-9,1e-8,1e-7 -out temperature.png
//	eosplot -table solar.h5 -q S -n 8 -e 1e12:5e13 -out entropy.svg
package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot/vg"

	eos "github.com/tphakala/go-eos"
	"github.com/tphakala/go-eos/internal/simdops"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logrus.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("eosplot", flag.ContinueOnError)
	table := fs.String("table", "", "EOS table file (HDF5)")
	quantity := fs.String("q", "Pressure", "Quantity: Entropy, Pressure or Temperature")
	densities := fs.String("rho", "", "Comma-separated isochore densities (default: spread over the table)")
	count := fs.Int("n", defaultIsochores, "Number of isochores when -rho is not given")
	eRange := fs.String("e", "", "Energy range min:max (default: table range)")
	points := fs.Int("points", defaultPoints, "Samples per isochore")
	out := fs.String("out", defaultOutput, "Output image (.png, .svg, .pdf, .eps)")
	width := fs.Float64("width", defaultWidthIn, "Image width in inches")
	height := fs.Float64("height", defaultHeightIn, "Image height in inches")
	simd := fs.Bool("simd", false, "Use SIMD coefficient contraction")
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *table == "" {
		if fs.NArg() == 0 {
			fmt.Fprintf(os.Stderr, "Usage: eosplot [options] -table table.h5\n\nOptions:\n")
			fs.PrintDefaults()
			return fmt.Errorf("%w: no table file given", errInvalidArgs)
		}
		*table = fs.Arg(0)
	}
	if *points < minPoints {
		return fmt.Errorf("%w: need at least %d points", errInvalidArgs, minPoints)
	}
	if *count < 1 || *count > maxIsochores {
		return fmt.Errorf("%w: isochore count must be in [1, %d]", errInvalidArgs, maxIsochores)
	}

	q, err := eos.ParseQuantity(*quantity)
	if err != nil {
		return err
	}

	tab, err := eos.Load(*table, eos.WithLogger(log), eos.WithSIMD(*simd), eos.WithParallel(0))
	if err != nil {
		return err
	}
	info := tab.Info()

	rhos := isochores(info.LnRhoMin, info.LnRhoMax, *count)
	if *densities != "" {
		if rhos, err = parseDensities(*densities); err != nil {
			return err
		}
	}

	lnE0, lnE1 := info.LnEMin, info.LnEMax
	if *eRange != "" {
		lnE0, lnE1, err = parseEnergyRange(*eRange, info.EnergyShift)
		if err != nil {
			return err
		}
	}

	rho, ei, lnE := isochoreFields(rhos, lnE0, lnE1, info.EnergyShift, *points)
	values, err := tab.QueryQuantity(rho, ei, q)
	if err != nil {
		return err
	}

	unit, err := tab.Unit(q.String())
	if err != nil {
		return err
	}

	curves := isochoreCurves(rhos, lnE, values, q, simdops.For(*simd))
	title := fmt.Sprintf("%s isochores (%s)", q, *table)
	if err := render(*out, title, axisLabel(q, unit), curves, vg.Length(*width)*vg.Inch, vg.Length(*height)*vg.Inch); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"quantity":  q.String(),
		"isochores": len(rhos),
		"points":    *points,
	}).Infof("Wrote %s", *out)
	return nil
}

// parseEnergyRange parses "min:max" and returns it as ln(e+shift) bounds.
func parseEnergyRange(s string, shift float64) (lnE0, lnE1 float64, err error) {
	var lo, hi float64
	if _, err := fmt.Sscanf(s, "%g:%g", &lo, &hi); err != nil {
		return 0, 0, fmt.Errorf("%w: energy range %q: %w", errInvalidArgs, s, err)
	}
	if lo+shift <= 0 || hi <= lo {
		return 0, 0, fmt.Errorf("%w: energy range [%g, %g] with shift %g", errInvalidArgs, lo, hi, shift)
	}
	return math.Log(lo + shift), math.Log(hi + shift), nil
}
