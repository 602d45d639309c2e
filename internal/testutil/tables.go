package testutil

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// bicubicSide is the number of coefficients per coordinate of a bicubic cell.
const bicubicSide = 4

// Surface is a smooth function of the log-space table coordinates
// (x = ln ρ, y = ln(e+shift)) together with its partials.
type Surface struct {
	F, Fx, Fy, Fxy func(x, y float64) float64
}

// Bilinear returns the surface a + b*x + c*y + d*x*y.
func Bilinear(a, b, c, d float64) Surface {
	return Surface{
		F:   func(x, y float64) float64 { return a + b*x + c*y + d*x*y },
		Fx:  func(_, y float64) float64 { return b + d*y },
		Fy:  func(x, _ float64) float64 { return c + d*x },
		Fxy: func(_, _ float64) float64 { return d },
	}
}

// Cubic returns a tensor-product cubic surface that bicubic Hermite cells
// reproduce exactly:
//
//	F = a + b*x + c*y + d*x²*y + e*x*y³
func Cubic(a, b, c, d, e float64) Surface {
	return Surface{
		F:   func(x, y float64) float64 { return a + b*x + c*y + d*x*x*y + e*x*y*y*y },
		Fx:  func(x, y float64) float64 { return b + 2*d*x*y + e*y*y*y },
		Fy:  func(x, y float64) float64 { return c + d*x*x + 3*e*x*y*y },
		Fxy: func(x, y float64) float64 { return 2*d*x + 3*e*y*y },
	}
}

// UniformNodes returns n+1 equally spaced nodes starting at x0.
func UniformNodes(x0, dx float64, n int) []float64 {
	nodes := make([]float64, n+1)
	for i := range nodes {
		nodes[i] = x0 + float64(i)*dx
	}
	return nodes
}

// ExpNodes returns exp(x) for every node, i.e. the raw (unlogged) axis.
func ExpNodes(logNodes []float64) []float64 {
	raw := make([]float64, len(logNodes))
	for i, x := range logNodes {
		raw[i] = math.Exp(x)
	}
	return raw
}

// hermiteBasis maps corner data [f0, f1, f0', f1'] of a unit interval to the
// monomial coefficients of the cubic Hermite interpolant.
var hermiteBasis = mat.NewDense(bicubicSide, bicubicSide, []float64{
	1, 0, 0, 0,
	0, 0, 1, 0,
	-3, 3, -2, -1,
	2, -2, 1, 1,
})

// HermiteCoefficients builds cell-major bicubic coefficients for the grid
// spanned by the log-space nodes ax1 × ax2. Each cell interpolates s and its
// partials at the four corners, so the assembled surface is continuous with
// continuous first derivatives across cell boundaries.
//
// Coefficients are expressed in the unnormalized local offsets used by the
// table lookup, so c[p][q] carries a factor 1/(h1^p h2^q).
func HermiteCoefficients(ax1, ax2 []float64, s Surface) []float64 {
	n1, n2 := len(ax1)-1, len(ax2)-1
	terms := bicubicSide * bicubicSide
	out := make([]float64, n1*n2*terms)

	corner := mat.NewDense(bicubicSide, bicubicSide, nil)
	var tmp, a mat.Dense

	for i1 := 0; i1 < n1; i1++ {
		x0, x1 := ax1[i1], ax1[i1+1]
		h1 := x1 - x0
		for i2 := 0; i2 < n2; i2++ {
			y0, y1 := ax2[i2], ax2[i2+1]
			h2 := y1 - y0

			xs := [2]float64{x0, x1}
			ys := [2]float64{y0, y1}
			for i := 0; i < 2; i++ {
				for j := 0; j < 2; j++ {
					x, y := xs[i], ys[j]
					corner.Set(i, j, s.F(x, y))
					corner.Set(i, j+2, s.Fy(x, y)*h2)
					corner.Set(i+2, j, s.Fx(x, y)*h1)
					corner.Set(i+2, j+2, s.Fxy(x, y)*h1*h2)
				}
			}

			tmp.Mul(hermiteBasis, corner)
			a.Mul(&tmp, hermiteBasis.T())

			cell := out[(i1*n2+i2)*terms : (i1*n2+i2+1)*terms]
			for p := 0; p < bicubicSide; p++ {
				for q := 0; q < bicubicSide; q++ {
					cell[p*bicubicSide+q] = a.At(p, q) / (math.Pow(h1, float64(p)) * math.Pow(h2, float64(q)))
				}
			}
		}
	}

	return out
}

// ConstantCoefficients builds bicubic coefficients whose surface is the
// constant v everywhere.
func ConstantCoefficients(n1, n2 int, v float64) []float64 {
	terms := bicubicSide * bicubicSide
	out := make([]float64, n1*n2*terms)
	for c := 0; c < n1*n2; c++ {
		out[c*terms] = v
	}
	return out
}
