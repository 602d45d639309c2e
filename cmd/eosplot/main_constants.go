package main

// Default command-line flag values
const (
	defaultIsochores = 5
	defaultPoints    = 200
	defaultWidthIn   = 6.0 // inches
	defaultHeightIn  = 4.5 // inches
	defaultOutput    = "isochores.png"
)

// Plot limits
const (
	minPoints    = 2
	maxIsochores = 32
)
