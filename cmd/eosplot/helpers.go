package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	eos "github.com/tphakala/go-eos"
	"github.com/tphakala/go-eos/internal/simdops"
)

var errInvalidArgs = errors.New("invalid plot arguments")

// ln10Inv converts natural logarithms to decimal ones.
var ln10Inv = 1 / math.Ln10

// isochores picks n densities evenly spaced in ln ρ across [lnMin, lnMax].
func isochores(lnMin, lnMax float64, n int) []float64 {
	rhos := make([]float64, n)
	for i := range rhos {
		f := 0.5
		if n > 1 {
			f = float64(i) / float64(n-1)
		}
		rhos[i] = math.Exp(lnMin + (lnMax-lnMin)*f)
	}
	return rhos
}

// parseDensities parses a comma-separated list of positive densities.
func parseDensities(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	rhos := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: density %q: %w", errInvalidArgs, p, err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("%w: density %g must be positive", errInvalidArgs, v)
		}
		rhos = append(rhos, v)
	}
	return rhos, nil
}

// isochoreFields builds the query box (len(rhos), points, 1): one row per
// isochore, with energy uniform in ln(e+shift) over [lnE0, lnE1]. It also
// returns the ln(e+shift) abscissae.
func isochoreFields(rhos []float64, lnE0, lnE1, shift float64, points int) (rho, ei *eos.Field, lnE []float64) {
	rho = eos.NewField(len(rhos), points, 1)
	ei = eos.NewField(len(rhos), points, 1)
	lnE = make([]float64, points)

	for j := range lnE {
		lnE[j] = lnE0 + (lnE1-lnE0)*float64(j)/float64(points-1)
	}
	for i, r := range rhos {
		for j, y := range lnE {
			rho.Set(r, i, j, 0)
			ei.Set(math.Exp(y)-shift, i, j, 0)
		}
	}
	return rho, ei, lnE
}

// curve is one plotted line.
type curve struct {
	Label string
	XYs   plotter.XYs
}

// isochoreCurves turns query results into plot curves. Abscissae are
// log10(e+shift); ordinates are log10 of the quantity unless it is entropy.
func isochoreCurves(rhos, lnE []float64, values *eos.Field, q eos.Quantity, ops *simdops.Ops) []curve {
	points := len(lnE)
	x := make([]float64, points)
	ops.Scale(x, lnE, ln10Inv)

	curves := make([]curve, len(rhos))
	y := make([]float64, points)
	for i, r := range rhos {
		row := values.Data[i*points : (i+1)*points]
		if q == eos.Entropy {
			copy(y, row)
		} else {
			for j, v := range row {
				y[j] = math.Log(v)
			}
			ops.Scale(y, y, ln10Inv)
		}

		xys := make(plotter.XYs, points)
		for j := range xys {
			xys[j].X, xys[j].Y = x[j], y[j]
		}
		curves[i] = curve{Label: fmt.Sprintf("ρ = %.3g", r), XYs: xys}
	}
	return curves
}

// axisLabel names the ordinate of a quantity plot.
func axisLabel(q eos.Quantity, unit string) string {
	label := q.String()
	if q != eos.Entropy {
		label = "log10 " + label
	}
	if unit != "" {
		label += " [" + unit + "]"
	}
	return label
}

// render draws the curves and saves them to path; the extension selects
// the image format.
func render(path, title, yLabel string, curves []curve, width, height vg.Length) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "log10(e + shift)"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	for i, c := range curves {
		line, err := plotter.NewLine(c.XYs)
		if err != nil {
			return fmt.Errorf("isochore %s: %w", c.Label, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(c.Label, line)
	}
	p.Legend.Top = true

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
