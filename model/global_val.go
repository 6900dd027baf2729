package model

// Plate dimensions and node layout, unit cm.
// The four nodes sit on the mid-line y = 1 and are fixed, not derived.

const (
	Width  = 4.0 // x extent
	Height = 2.0 // y extent

	NodeCount = 4
)

var (
	NodeXs = [NodeCount]float64{1.0, 2.0, 3.0, 4.0}
	NodeYs = [NodeCount]float64{1.0, 1.0, 1.0, 1.0}
)

// Limits are the clamp ranges applied to user input before it reaches the solver.
type Limits struct {
	SigmaMin, SigmaMax float64
	NxMin, NxMax       int
	NyMin, NyMax       int
}

var DefaultLimits = Limits{
	SigmaMin: 0.35,
	SigmaMax: 1.20,
	NxMin:    80,
	NxMax:    320,
	NyMin:    60,
	NyMax:    260,
}
