package main

// Default command-line flag values
const (
	defaultEdge    = 64 // Box edge length along each axis
	defaultRepeat  = 1  // Query passes per run
	defaultWorkers = 0  // GOMAXPROCS
)

// Box rank limits
const (
	minRank = 3
	maxRank = 4
)

// Timing conversion
const (
	nsPerElementScale = 1e9
)
