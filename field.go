package eos

import (
	"fmt"
	"slices"
)

// Field is a dense, row-major N-dimensional array of float64 values, such as
// the density or internal energy of a simulation box.
type Field struct {
	Shape []int
	Data  []float64
}

// NewField allocates a zeroed field of the given shape.
func NewField(shape ...int) *Field {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return &Field{
		Shape: slices.Clone(shape),
		Data:  make([]float64, n),
	}
}

// FieldFrom wraps data as a field of the given shape without copying.
func FieldFrom(data []float64, shape ...int) (*Field, error) {
	n := 1
	for _, d := range shape {
		if d < 1 {
			return nil, fmt.Errorf("%w: dimension %d in shape %v", ErrShapeMismatch, d, shape)
		}
		n *= d
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: shape %v needs %d values, got %d", ErrShapeMismatch, shape, n, len(data))
	}
	return &Field{Shape: slices.Clone(shape), Data: data}, nil
}

// Rank returns the number of dimensions.
func (f *Field) Rank() int {
	return len(f.Shape)
}

// Len returns the number of elements.
func (f *Field) Len() int {
	return len(f.Data)
}

// SameShape reports whether f and o have identical shapes.
func (f *Field) SameShape(o *Field) bool {
	return slices.Equal(f.Shape, o.Shape)
}

// Index returns the flat offset of a multi-index.
func (f *Field) Index(idx ...int) int {
	off := 0
	for i, d := range f.Shape {
		off = off*d + idx[i]
	}
	return off
}

// At returns the element at a multi-index.
func (f *Field) At(idx ...int) float64 {
	return f.Data[f.Index(idx...)]
}

// Set stores v at a multi-index.
func (f *Field) Set(v float64, idx ...int) {
	f.Data[f.Index(idx...)] = v
}

// like allocates a zeroed field with the same shape as f.
func (f *Field) like() *Field {
	return NewField(f.Shape...)
}

// Field32 is the single-precision counterpart of Field, for simulations that
// store their boxes as float32.
type Field32 struct {
	Shape []int
	Data  []float32
}

// ToFloat64 converts the field to double precision.
func (f *Field32) ToFloat64() *Field {
	out := &Field{Shape: slices.Clone(f.Shape), Data: make([]float64, len(f.Data))}
	for i, v := range f.Data {
		out.Data[i] = float64(v)
	}
	return out
}

// ToFloat32 converts the field to single precision.
func (f *Field) ToFloat32() *Field32 {
	out := &Field32{Shape: slices.Clone(f.Shape), Data: make([]float32, len(f.Data))}
	for i, v := range f.Data {
		out.Data[i] = float32(v)
	}
	return out
}
