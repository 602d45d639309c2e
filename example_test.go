package eos_test

import (
	"fmt"
	"log"
	"math"

	eos "github.com/tphakala/go-eos"
)

// constantBundle returns a single bicubic cell holding the constant v.
func constantBundle(v float64) []float64 {
	c := make([]float64, 16)
	c[0] = v
	return c
}

func ExampleNew() {
	table, err := eos.New(&eos.TableData{
		X1:          []float64{1e-3, 1e2},
		X2:          []float64{1e10, 1e14},
		Entropy:     constantBundle(2.5e8),
		Pressure:    constantBundle(math.Log(1e5)),
		Temperature: constantBundle(math.Log(6000)),
	})
	if err != nil {
		log.Fatal(err)
	}

	rho, _ := eos.FieldFrom([]float64{0.1, 0.2}, 1, 1, 2)
	ei, _ := eos.FieldFrom([]float64{2e12, 3e12}, 1, 1, 2)

	p, temp, err := table.PressureAndTemperature(rho, ei)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("P = %.4g, T = %.4g\n", p.At(0, 0, 1), temp.At(0, 0, 1))
	// Output: P = 1e+05, T = 6000
}

func ExampleParseQuantity() {
	for _, name := range []string{"pressure", "T", "Entropy"} {
		q, err := eos.ParseQuantity(name)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(q)
	}
	// Output:
	// Pressure
	// Temperature
	// Entropy
}
