// Command eosquery loads an EOS table and times queries over a synthetic
// simulation box.
//
// Usage:
//
//	eosquery -table solar.h5
//	eosquery -table solar.h5 -shape 4,128,128,128 -simd
//	eosquery -config query.yaml -parallel=false
//
// A YAML config file may set any of the options below; flags given on the
// command line take precedence:
//
//	table: solar.h5
//	shape: [64, 64, 64]
//	density: {min: 1.0e-9, max: 1.0e-5}
//	energy: {min: 1.0e12, max: 1.0e13}
//	parallel: true
//	workers: 0
//	simd: false
//	float32: false
//	repeat: 5
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	eos "github.com/tphakala/go-eos"
	"github.com/tphakala/go-eos/internal/simdops"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		logrus.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("eosquery", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML configuration file")
	table := fs.String("table", "", "EOS table file (HDF5)")
	shape := fs.String("shape", "", "Box shape, e.g. 64,64,64 or 4,64,64,64")
	rhoRange := fs.String("rho", "", "Density range min:max (default: table range)")
	eRange := fs.String("e", "", "Energy range min:max (default: table range)")
	parallel := fs.Bool("parallel", true, "Split queries across goroutines")
	workers := fs.Int("workers", defaultWorkers, "Worker goroutines (0 = GOMAXPROCS)")
	simd := fs.Bool("simd", false, "Use SIMD coefficient contraction")
	single := fs.Bool("float32", false, "Query single-precision fields")
	repeat := fs.Int("repeat", defaultRepeat, "Query passes to time")
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg := defaultQueryConfig()
	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			return err
		}
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		if flagErr != nil {
			return
		}
		switch f.Name {
		case "table":
			cfg.Table = *table
		case "shape":
			cfg.Shape, flagErr = parseShape(*shape)
		case "rho":
			cfg.Density, flagErr = parseRange(*rhoRange)
		case "e":
			cfg.Energy, flagErr = parseRange(*eRange)
		case "parallel":
			cfg.Parallel = *parallel
		case "workers":
			cfg.Workers = *workers
		case "simd":
			cfg.SIMD = *simd
		case "float32":
			cfg.Float32 = *single
		case "repeat":
			cfg.Repeat = *repeat
		}
	})
	if flagErr != nil {
		return flagErr
	}
	if cfg.Table == "" && fs.NArg() > 0 {
		cfg.Table = fs.Arg(0)
	}

	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Usage: eosquery [options] -table table.h5\n\nOptions:\n")
		fs.PrintDefaults()
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	return query(cfg, log, stdout)
}

// query loads the table, runs every query kind and prints field summaries.
func query(cfg queryConfig, log *logrus.Logger, stdout io.Writer) error {
	opts := []eos.Option{eos.WithLogger(log), eos.WithSIMD(cfg.SIMD)}
	if cfg.Parallel {
		opts = append(opts, eos.WithParallel(cfg.Workers))
	}

	start := time.Now()
	table, err := eos.Load(cfg.Table, opts...)
	if err != nil {
		return err
	}

	info := table.Info()
	log.WithFields(logrus.Fields{
		"cells":   fmt.Sprintf("%dx%d", info.Cells1, info.Cells2),
		"degree":  info.Degree,
		"kernel":  info.Kernel,
		"workers": info.Workers,
		"memory":  info.MemoryUsage,
		"elapsed": time.Since(start),
	}).Info("Table loaded")

	rhoBounds, eBounds := tableRanges(info)
	if !cfg.Density.isZero() {
		rhoBounds = cfg.Density
	}
	if !cfg.Energy.isZero() {
		eBounds = cfg.Energy
	}

	rho, ei := sweepBox(cfg.Shape, rhoBounds, eBounds, info.EnergyShift)
	log.Debugf("Box %v: rho [%g, %g], e [%g, %g]", cfg.Shape, rhoBounds.Min, rhoBounds.Max, eBounds.Min, eBounds.Max)

	var results map[string]*eos.Field
	for pass := range cfg.Repeat {
		passStart := time.Now()
		if cfg.Float32 {
			results, err = runFloat32(table, rho, ei)
		} else {
			results, err = runFloat64(table, rho, ei)
		}
		if err != nil {
			return err
		}
		elapsed := time.Since(passStart)
		log.Infof("Pass %d: %v (%.1f ns/element)", pass+1, elapsed,
			elapsed.Seconds()*nsPerElementScale/float64(rho.Len()))
	}

	ops := simdops.For(cfg.SIMD)
	summaries := make([]summary, 0, len(fieldOrder))
	for _, name := range fieldOrder {
		summaries = append(summaries, summarize(name, results[name].Data, ops))
	}
	return writeSummaries(stdout, summaries)
}

// fieldOrder lists the output fields in print order.
var fieldOrder = []string{"S", "P", "T", "dP/drho", "dP/de", "dT/de"}

func runFloat64(table *eos.Table, rho, ei *eos.Field) (map[string]*eos.Field, error) {
	s, err := table.QueryQuantity(rho, ei, eos.Entropy)
	if err != nil {
		return nil, err
	}
	p, t, err := table.PressureAndTemperature(rho, ei)
	if err != nil {
		return nil, err
	}
	_, dPdRho, dPdE, err := table.PressureWithGradient(rho, ei)
	if err != nil {
		return nil, err
	}
	_, dTdE, err := table.TemperatureWithGradient(rho, ei)
	if err != nil {
		return nil, err
	}

	return map[string]*eos.Field{
		"S": s, "P": p, "T": t,
		"dP/drho": dPdRho, "dP/de": dPdE, "dT/de": dTdE,
	}, nil
}

func runFloat32(table *eos.Table, rho, ei *eos.Field) (map[string]*eos.Field, error) {
	rho32, ei32 := rho.ToFloat32(), ei.ToFloat32()

	s, err := table.QueryFloat32(rho32, ei32, "Entropy")
	if err != nil {
		return nil, err
	}
	p, t, err := table.PressureAndTemperatureFloat32(rho32, ei32)
	if err != nil {
		return nil, err
	}
	_, dPdRho, dPdE, err := table.PressureWithGradientFloat32(rho32, ei32)
	if err != nil {
		return nil, err
	}
	_, dTdE, err := table.TemperatureWithGradientFloat32(rho32, ei32)
	if err != nil {
		return nil, err
	}

	return map[string]*eos.Field{
		"S": s.ToFloat64(), "P": p.ToFloat64(), "T": t.ToFloat64(),
		"dP/drho": dPdRho.ToFloat64(), "dP/de": dPdE.ToFloat64(), "dT/de": dTdE.ToFloat64(),
	}, nil
}

// parseShape parses a comma-separated list of dimensions.
func parseShape(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	shape := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: shape %q: %w", errInvalidConfig, s, err)
		}
		shape = append(shape, d)
	}
	return shape, nil
}

// parseRange parses "min:max".
func parseRange(s string) (rangeConfig, error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return rangeConfig{}, fmt.Errorf("%w: range %q must be min:max", errInvalidConfig, s)
	}
	minVal, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return rangeConfig{}, fmt.Errorf("%w: range %q: %w", errInvalidConfig, s, err)
	}
	maxVal, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return rangeConfig{}, fmt.Errorf("%w: range %q: %w", errInvalidConfig, s, err)
	}
	return rangeConfig{Min: minVal, Max: maxVal}, nil
}
