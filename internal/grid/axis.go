// Package grid implements the log-space coordinate axes of an EOS table.
package grid

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidAxis indicates malformed axis data.
var ErrInvalidAxis = errors.New("invalid table axis")

// Axis is an ordered, strictly increasing, near-uniformly spaced 1-D axis.
// It stores N+1 node values (N cells) and a scale factor used to map a
// coordinate to its cell in O(1).
//
// An Axis is immutable after construction and safe for concurrent use.
type Axis struct {
	nodes []float64
	scale float64
}

// FromValues builds an axis from node values that are already in log space.
// The values are copied.
func FromValues(values []float64) (*Axis, error) {
	if len(values) < minNodes {
		return nil, fmt.Errorf("%w: need at least %d nodes, got %d", ErrInvalidAxis, minNodes, len(values))
	}

	nodes := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: node %d is not finite (%v)", ErrInvalidAxis, i, v)
		}
		if i > 0 && v <= nodes[i-1] {
			return nil, fmt.Errorf("%w: nodes not strictly increasing at %d (%v <= %v)",
				ErrInvalidAxis, i, v, nodes[i-1])
		}
		nodes[i] = v
	}

	n := len(nodes) - 1
	return &Axis{
		nodes: nodes,
		scale: float64(n) / (nodes[n] - nodes[0]),
	}, nil
}

// FromShifted builds the log axis ln(raw[k] + shift). The shift may be empty
// (no shift), a single scalar, or one value per node.
func FromShifted(raw, shift []float64) (*Axis, error) {
	switch len(shift) {
	case 0, 1, len(raw):
	default:
		return nil, fmt.Errorf("%w: shift has %d values, want 0, 1 or %d",
			ErrInvalidAxis, len(shift), len(raw))
	}

	logs := make([]float64, len(raw))
	for k, x := range raw {
		s := 0.0
		switch len(shift) {
		case 0:
		case 1:
			s = shift[0]
		default:
			s = shift[k]
		}
		if !(x+s > 0) {
			return nil, fmt.Errorf("%w: node %d is non-positive after shift (%v + %v)",
				ErrInvalidAxis, k, x, s)
		}
		logs[k] = math.Log(x + s)
	}

	return FromValues(logs)
}

// IndexAndOffset returns the cell containing x and the unnormalized offset of
// x from the cell's lower node.
//
// Coordinates outside the axis clip to the first or last cell; the offset is
// then negative or larger than the cell width and the caller extrapolates
// from that boundary cell.
func (a *Axis) IndexAndOffset(x float64) (int, float64) {
	last := len(a.nodes) - 2

	i := 0
	if est := math.Floor((x - a.nodes[0]) * a.scale); est > 0 {
		if est > float64(last) {
			i = last
		} else {
			i = int(est)
		}
	}

	// The linear estimate can land one cell off near a node because of
	// rounding, or on slightly non-uniform axes.
	for i < last && a.nodes[i+1] <= x {
		i++
	}
	for i > 0 && a.nodes[i] > x {
		i--
	}

	return i, x - a.nodes[i]
}

// Cells returns the number of cells N.
func (a *Axis) Cells() int {
	return len(a.nodes) - 1
}

// Node returns the k-th node value.
func (a *Axis) Node(k int) float64 {
	return a.nodes[k]
}

// Min returns the first node.
func (a *Axis) Min() float64 {
	return a.nodes[0]
}

// Max returns the last node.
func (a *Axis) Max() float64 {
	return a.nodes[len(a.nodes)-1]
}

// Scale returns N / (max - min).
func (a *Axis) Scale() float64 {
	return a.scale
}

// Values returns a copy of the node values.
func (a *Axis) Values() []float64 {
	out := make([]float64, len(a.nodes))
	copy(out, a.nodes)
	return out
}

// Spacing returns the narrowest and widest cell widths.
func (a *Axis) Spacing() (narrowest, widest float64) {
	narrowest = math.Inf(1)
	for k := 1; k < len(a.nodes); k++ {
		w := a.nodes[k] - a.nodes[k-1]
		narrowest = math.Min(narrowest, w)
		widest = math.Max(widest, w)
	}
	return narrowest, widest
}
