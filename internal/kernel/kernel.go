package kernel

import (
	"math"

	"github.com/tphakala/go-eos/internal/coeff"
	"github.com/tphakala/go-eos/internal/simdops"
)

// Options configures a Kernel.
type Options struct {
	// UseSIMD contracts each cell bundle against a monomial vector with the
	// SIMD dot product. Otherwise the polynomial is evaluated by nested Horner
	// schemes.
	UseSIMD bool
}

// Kernel evaluates the local polynomial of a coefficient table at a batch of
// cell indices and offsets:
//
//	v = Σ_{p,q} c[p][q] * f1^p * f2^q
//
// together with its exact partials ∂v/∂f1 and ∂v/∂f2 when requested.
// A Kernel has no mutable state and is safe for concurrent use.
type Kernel struct {
	useSIMD bool
	ops     *simdops.Ops
}

// New creates a kernel.
func New(opts Options) *Kernel {
	return &Kernel{
		useSIMD: opts.UseSIMD,
		ops:     simdops.For(opts.UseSIMD),
	}
}

// Name returns the contraction strategy in use.
func (k *Kernel) Name() string {
	if k.useSIMD {
		return "dot-" + k.ops.Name
	}
	return "horner"
}

// Evaluate writes the polynomial value of every element of idx to out.
func (k *Kernel) Evaluate(t *coeff.Table, idx *Indices, out []float64) {
	if k.useSIMD {
		k.evaluateDot(t, idx, out)
		return
	}

	d := t.Degree()
	for n := range out {
		c := t.Cell(int(idx.I1[n]), int(idx.I2[n]))
		v, _, _ := horner2(c, d, idx.Frac1[n], idx.Frac2[n])
		out[n] = v
	}
}

// EvaluateWithGradient writes the polynomial value and its partials with
// respect to the two local coordinates.
func (k *Kernel) EvaluateWithGradient(t *coeff.Table, idx *Indices, val, d1, d2 []float64) {
	if k.useSIMD {
		k.evaluateGradientDot(t, idx, val, d1, d2)
		return
	}

	d := t.Degree()
	for n := range val {
		c := t.Cell(int(idx.I1[n]), int(idx.I2[n]))
		val[n], d1[n], d2[n] = horner2(c, d, idx.Frac1[n], idx.Frac2[n])
	}
}

// horner2 evaluates the bivariate polynomial and both first partials.
// Each row p is evaluated in f2 by Horner's rule, then the rows are combined
// in f1 the same way.
func horner2(c []float64, d int, f1, f2 float64) (v, dv1, dv2 float64) {
	side := d + 1
	for p := d; p >= 0; p-- {
		row := c[p*side : p*side+side]

		r, dr := row[d], 0.0
		for q := d - 1; q >= 0; q-- {
			dr = dr*f2 + r
			r = r*f2 + row[q]
		}

		dv1 = dv1*f1 + v
		v = v*f1 + r
		dv2 = dv2*f1 + dr
	}
	return v, dv1, dv2
}

func (k *Kernel) evaluateDot(t *coeff.Table, idx *Indices, out []float64) {
	d := t.Degree()
	mono := make([]float64, t.Terms())
	pow1 := make([]float64, d+1)
	pow2 := make([]float64, d+1)

	for n := range out {
		powers(pow1, idx.Frac1[n])
		powers(pow2, idx.Frac2[n])
		outer(mono, pow1, pow2)

		c := t.Cell(int(idx.I1[n]), int(idx.I2[n]))
		out[n] = k.ops.DotProductUnsafe(c, mono)
	}
}

func (k *Kernel) evaluateGradientDot(t *coeff.Table, idx *Indices, val, d1, d2 []float64) {
	d := t.Degree()
	terms := t.Terms()
	mono := make([]float64, 3*terms)
	m0, m1, m2 := mono[:terms], mono[terms:2*terms], mono[2*terms:]
	pow1 := make([]float64, d+1)
	pow2 := make([]float64, d+1)
	dpow1 := make([]float64, d+1)
	dpow2 := make([]float64, d+1)

	for n := range val {
		powers(pow1, idx.Frac1[n])
		powers(pow2, idx.Frac2[n])
		derivPowers(dpow1, pow1)
		derivPowers(dpow2, pow2)

		outer(m0, pow1, pow2)
		outer(m1, dpow1, pow2)
		outer(m2, pow1, dpow2)

		c := t.Cell(int(idx.I1[n]), int(idx.I2[n]))
		val[n] = k.ops.DotProductUnsafe(c, m0)
		d1[n] = k.ops.DotProductUnsafe(c, m1)
		d2[n] = k.ops.DotProductUnsafe(c, m2)
	}
}

// powers fills dst with x^0, x^1, ...
func powers(dst []float64, x float64) {
	v := 1.0
	for i := range dst {
		dst[i] = v
		v *= x
	}
}

// derivPowers fills dst with d/dx x^i = i*x^(i-1), given pow[i] = x^i.
func derivPowers(dst, pow []float64) {
	dst[0] = 0
	for i := 1; i < len(dst); i++ {
		dst[i] = float64(i) * pow[i-1]
	}
}

// outer writes dst[p*len(b)+q] = a[p]*b[q].
func outer(dst, a, b []float64) {
	side := len(b)
	for p, ap := range a {
		row := dst[p*side : p*side+side]
		for q, bq := range b {
			row[q] = ap * bq
		}
	}
}

// ChainRule converts log-space partials to physical ones in place:
// d[i] *= inv[i], with inv = 1/ρ or 1/(e+shift).
func ChainRule(d, inv []float64) {
	for i := range d {
		d[i] *= inv[i]
	}
}

// Exp replaces every element by its exponential.
func Exp(v []float64) {
	for i, x := range v {
		v[i] = math.Exp(x)
	}
}
