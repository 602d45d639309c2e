package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eos "github.com/tphakala/go-eos"
	"github.com/tphakala/go-eos/internal/simdops"
	"github.com/tphakala/go-eos/internal/testutil"
)

// writeTable stores a small table with constant quantities.
func writeTable(t *testing.T) string {
	t.Helper()

	lnRho := testutil.UniformNodes(-6, 2, 3)
	lnE := testutil.UniformNodes(0, 2, 2)

	path := filepath.Join(t.TempDir(), "table.h5")
	require.NoError(t, eos.WriteHDF5(path, &eos.TableData{
		X1:          testutil.ExpNodes(lnRho),
		X2:          testutil.ExpNodes(lnE),
		Entropy:     testutil.ConstantCoefficients(3, 2, 1.5),
		Pressure:    testutil.ConstantCoefficients(3, 2, math.Log(100)),
		Temperature: testutil.ConstantCoefficients(3, 2, math.Log(5000)),
	}))
	return path
}

func TestParseShape(t *testing.T) {
	shape, err := parseShape("4, 8,16")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 8, 16}, shape)

	_, err = parseShape("4,x,16")
	require.ErrorIs(t, err, errInvalidConfig)
}

func TestParseRange(t *testing.T) {
	r, err := parseRange("1e-9:2.5e-5")
	require.NoError(t, err)
	assert.InDelta(t, 1e-9, r.Min, 0)
	assert.InDelta(t, 2.5e-5, r.Max, 0)

	for _, bad := range []string{"1e-9", "a:1", "1:b"} {
		_, err := parseRange(bad)
		require.ErrorIs(t, err, errInvalidConfig, bad)
	}
}

func TestQueryConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(c *queryConfig)
		wantErr bool
	}{
		{"valid", func(*queryConfig) {}, false},
		{"4-D", func(c *queryConfig) { c.Shape = []int{2, 4, 4, 4} }, false},
		{"no table", func(c *queryConfig) { c.Table = "" }, true},
		{"rank 2", func(c *queryConfig) { c.Shape = []int{4, 4} }, true},
		{"zero dimension", func(c *queryConfig) { c.Shape = []int{4, 0, 4} }, true},
		{"negative density", func(c *queryConfig) { c.Density = rangeConfig{Min: -1, Max: 1} }, true},
		{"inverted energy", func(c *queryConfig) { c.Energy = rangeConfig{Min: 2, Max: 1} }, true},
		{"negative workers", func(c *queryConfig) { c.Workers = -1 }, true},
		{"no repeat", func(c *queryConfig) { c.Repeat = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultQueryConfig()
			cfg.Table = "table.h5"
			tt.edit(&cfg)

			err := cfg.validate()
			if tt.wantErr {
				require.ErrorIs(t, err, errInvalidConfig)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
table: solar.h5
shape: [2, 8, 8, 8]
density: {min: 1.0e-9, max: 1.0e-5}
simd: true
repeat: 3
`), 0o644))

	cfg := defaultQueryConfig()
	require.NoError(t, loadConfig(path, &cfg))

	assert.Equal(t, "solar.h5", cfg.Table)
	assert.Equal(t, []int{2, 8, 8, 8}, cfg.Shape)
	assert.InDelta(t, 1e-9, cfg.Density.Min, 0)
	assert.True(t, cfg.Energy.isZero())
	assert.True(t, cfg.SIMD)
	assert.True(t, cfg.Parallel, "unset keys keep their defaults")
	assert.Equal(t, 3, cfg.Repeat)

	require.NoError(t, os.WriteFile(path, []byte("shape: [1, 2"), 0o644))
	require.Error(t, loadConfig(path, &cfg))
	require.Error(t, loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), &cfg))
}

func TestSweepBox(t *testing.T) {
	rho, ei := sweepBox([]int{3, 5, 2}, rangeConfig{Min: 1e-4, Max: 1}, rangeConfig{Min: 0, Max: 99}, 1)

	assert.Equal(t, []int{3, 5, 2}, rho.Shape)
	assert.InDelta(t, 1e-4, rho.At(0, 4, 1), 1e-16)
	assert.InDelta(t, 1e-2, rho.At(1, 0, 0), 1e-14)
	assert.InDelta(t, 1.0, rho.At(2, 3, 0), 1e-12)

	assert.InDelta(t, 0.0, ei.At(2, 0, 1), 1e-12)
	assert.InDelta(t, 99.0, ei.At(0, 4, 0), 1e-10)
	// ln(e+1) is uniform, so the middle node sits at sqrt(100) - 1.
	assert.InDelta(t, 9.0, ei.At(1, 2, 1), 1e-10)

	testutil.AssertMonotonic(t, []float64{rho.At(0, 0, 0), rho.At(1, 0, 0), rho.At(2, 0, 0)})
}

func TestSummarize(t *testing.T) {
	data := []float64{3, -1, 4, 1, 5}

	for _, ops := range []*simdops.Ops{simdops.Scalar(), simdops.SIMD()} {
		s := summarize("P", data, ops)
		assert.InDelta(t, -1.0, s.Min, 0)
		assert.InDelta(t, 5.0, s.Max, 0)
		assert.InDelta(t, 2.4, s.Mean, 1e-12)
		assert.False(t, s.NaN)
		assert.Equal(t, 5, s.Elements)
	}

	s := summarize("T", []float64{1, math.NaN()}, simdops.Scalar())
	assert.True(t, s.NaN)

	empty := summarize("S", nil, simdops.Scalar())
	assert.Zero(t, empty.Elements)
}

func TestRun(t *testing.T) {
	path := writeTable(t)

	for _, args := range [][]string{
		{"-table", path, "-shape", "4,4,4"},
		{"-table", path, "-shape", "2,4,4,4", "-simd", "-float32", "-repeat", "2"},
		{"-shape", "4,4,4", "-parallel=false", "-rho", "1e-3:1e-1", "-e", "2:50", path},
	} {
		var out bytes.Buffer
		require.NoError(t, run(args, &out), args)

		text := out.String()
		for _, name := range fieldOrder {
			assert.Contains(t, text, name)
		}
		assert.Contains(t, text, "1.000000e+02", "constant pressure table")
		assert.Contains(t, text, "false")
	}
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer

	require.ErrorIs(t, run([]string{"-shape", "4,4,4"}, &out), errUsage)
	require.ErrorIs(t, run([]string{"-shape", "4,x"}, &out), errInvalidConfig)
	require.ErrorIs(t, run([]string{"-table", filepath.Join(t.TempDir(), "nope.h5")}, &out), eos.ErrLoad)

	path := writeTable(t)
	require.ErrorIs(t, run([]string{"-table", path, "-shape", "2,2,2", "-rho", "1e-3:1", "-e", "-5:1"}, &out), eos.ErrDomain)
}
