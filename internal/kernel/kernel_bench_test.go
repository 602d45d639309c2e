package kernel

import (
	"testing"

	"github.com/tphakala/go-eos/internal/testutil"
)

const benchElements = 4096

func benchIndices(f *fixture) *Indices {
	xs := make([]float64, benchElements)
	ys := make([]float64, benchElements)
	for i := range xs {
		xs[i] = -4 + 5.9*float64(i)/benchElements
		ys[i] = 1 + 3.9*float64((i*7)%benchElements)/benchElements
	}
	return f.indicesAt(xs, ys)
}

// BenchmarkEvaluate compares the contraction strategies on a bicubic table.
func BenchmarkEvaluate(b *testing.B) {
	for _, kc := range kernels {
		b.Run(kc.name, func(b *testing.B) {
			f := newFixture(b, testutil.Cubic(1, 2, 3, 0.5, 0.25))
			idx := benchIndices(f)
			out := make([]float64, benchElements)
			k := New(kc.opts)

			b.ReportAllocs()
			for b.Loop() {
				k.Evaluate(f.table, idx, out)
			}
		})
	}
}

// BenchmarkEvaluateWithGradient measures value plus both partials.
func BenchmarkEvaluateWithGradient(b *testing.B) {
	for _, kc := range kernels {
		b.Run(kc.name, func(b *testing.B) {
			f := newFixture(b, testutil.Cubic(1, 2, 3, 0.5, 0.25))
			idx := benchIndices(f)
			val := make([]float64, benchElements)
			d1 := make([]float64, benchElements)
			d2 := make([]float64, benchElements)
			k := New(kc.opts)

			b.ReportAllocs()
			for b.Loop() {
				k.EvaluateWithGradient(f.table, idx, val, d1, d2)
			}
		})
	}
}
