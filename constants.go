package eos

// Supported field ranks.
const (
	rank3D = 3
	rank4D = 4
)

// Parallel query constants
const (
	// defaultMinChunk is the smallest number of elements handed to one worker.
	// Smaller batches are evaluated on the calling goroutine.
	defaultMinChunk = 4096
)

// Load-time diagnostics
const (
	// maxSpacingRatio is the widest/narrowest cell ratio above which an axis is
	// reported as non-uniform. Lookups stay exact, but the O(1) cell estimate
	// may need several refinement steps per element.
	maxSpacingRatio = 1.5

	bytesPerFloat64 = 8
)
