package calculator

import (
	"fmt"
	"time"

	"github.com/mehranjafarii/heat-simulation-fdm/model"
)

const Title = "Heat Conduction Simulation - Problem 5-52"

// Result holds everything one simulation produced.
type Result struct {
	Inputs model.SimulationInput // after clamping
	A      [][]float64
	B      []float64
	X      []float64
	T      model.NodeTemperatures
	Nodes  [model.NodeCount]model.Node
	Field  *model.FieldGrid

	// kernel system diagnostics
	Coefficients []float64
	KernelMatrix [][]float64
	KernelCond   float64

	Residual float64 // max |A·x - b| of the FDM system
	Elapsed  time.Duration
}

// Payload is the JSON export document.
type Payload struct {
	Title       string                 `json:"title"`
	Inputs      model.SimulationInput  `json:"inputs"`
	A           [][]float64            `json:"A"`
	B           []float64              `json:"b"`
	X           []float64              `json:"x"`
	T           model.NodeTemperatures `json:"T"`
	PlotPayload PlotPayload            `json:"plotPayload"`
}

type PlotPayload struct {
	X     []float64   `json:"x"`
	Y     []float64   `json:"y"`
	Z     [][]float64 `json:"z"`
	Nodes PlotNodes   `json:"nodes"`
	Meta  PlotMeta    `json:"meta"`
}

type PlotNodes struct {
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	Labels []string  `json:"labels"`
}

type PlotMeta struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

func (r *Result) Payload() Payload {
	nodes := PlotNodes{
		X:      make([]float64, 0, model.NodeCount),
		Y:      make([]float64, 0, model.NodeCount),
		Labels: make([]string, 0, model.NodeCount),
	}
	for i, n := range r.Nodes {
		nodes.X = append(nodes.X, n.X)
		nodes.Y = append(nodes.Y, n.Y)
		nodes.Labels = append(nodes.Labels, fmt.Sprintf("T%d=%.1f°C", i+1, n.T))
	}

	return Payload{
		Title:  Title,
		Inputs: r.Inputs,
		A:      r.A,
		B:      r.B,
		X:      r.X,
		T:      r.T,
		PlotPayload: PlotPayload{
			X:     r.Field.Xs,
			Y:     r.Field.Ys,
			Z:     r.Field.Values,
			Nodes: nodes,
			Meta:  PlotMeta{Top: r.Inputs.Top, Bottom: r.Inputs.Bottom},
		},
	}
}

// Profile is the vertical cut of the field nearest to x.
func (r *Result) Profile(x float64) model.Profile {
	return r.Field.ProfileAtX(x)
}
