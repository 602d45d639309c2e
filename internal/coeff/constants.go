package coeff

const (
	// MaxDegree is the highest supported per-coordinate polynomial degree.
	MaxDegree = 5

	// BicubicTerms is the bundle size of a bicubic cell.
	BicubicTerms = 16

	bytesPerFloat64 = 8
)
