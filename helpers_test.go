package eos

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-eos/internal/testutil"
)

const testShift = 1.0

// Log-space nodes of the synthetic test table.
var (
	testLnRho = testutil.UniformNodes(-6, 0.5, 16)
	testLnE   = testutil.UniformNodes(0, 0.25, 20)
)

// surfaces are the log-space functions tabulated by a synthetic table.
type surfaces struct {
	entropy, lnP, lnT testutil.Surface
}

func defaultSurfaces() surfaces {
	return surfaces{
		entropy: testutil.Cubic(2, 0.1, 0.3, -0.02, 0.01),
		lnP:     testutil.Bilinear(1.5, 1.2, 0.9, 0.05),
		lnT:     testutil.Bilinear(-0.5, 0.1, 1.1, -0.02),
	}
}

// syntheticData builds a table whose cells reproduce s exactly.
func syntheticData(s surfaces) *TableData {
	x2 := testutil.ExpNodes(testLnE)
	for i := range x2 {
		x2[i] -= testShift
	}

	return &TableData{
		X1:          testutil.ExpNodes(testLnRho),
		X2:          x2,
		X2Shift:     []float64{testShift},
		Entropy:     testutil.HermiteCoefficients(testLnRho, testLnE, s.entropy),
		Pressure:    testutil.HermiteCoefficients(testLnRho, testLnE, s.lnP),
		Temperature: testutil.HermiteCoefficients(testLnRho, testLnE, s.lnT),
		Units:       Units{Entropy: "erg/g/K", Pressure: "dyn/cm^2", Temperature: "K"},
	}
}

// quietLogger discards load diagnostics.
func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

func newTestTable(t testing.TB, opts ...Option) *Table {
	t.Helper()

	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	tab, err := New(syntheticData(defaultSurfaces()), opts...)
	require.NoError(t, err)
	return tab
}

// box fills density and energy fields of the given shape with points spread
// over the interior of the table.
func box(shape ...int) (rho, ei *Field) {
	rho, ei = NewField(shape...), NewField(shape...)
	for n := range rho.Data {
		x := -5.9 + 7.8*frac(float64(n)*0.6180339887)
		y := 0.05 + 4.9*frac(float64(n)*0.4142135623)
		rho.Data[n] = math.Exp(x)
		ei.Data[n] = math.Exp(y) - testShift
	}
	return rho, ei
}

func frac(x float64) float64 {
	return x - math.Floor(x)
}

// logCoords returns the table coordinates of element n.
func logCoords(rho, ei *Field, n int) (x, y float64) {
	return math.Log(rho.Data[n]), math.Log(ei.Data[n] + testShift)
}
