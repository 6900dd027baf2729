package model

import (
	"errors"
	"fmt"
	"math"
)

var ErrNonFinite = errors.New("model: non-finite input")

// SimulationInput is one simulation request as sent by the front end.
type SimulationInput struct {
	Top    float64 `json:"top"`    // top boundary temperature, °C
	Bottom float64 `json:"bottom"` // bottom boundary temperature, °C
	Vnode  float64 `json:"vnode"`  // interior perturbation, °C
	Sigma  float64 `json:"sigma"`  // Gaussian kernel width
	Nx     int     `json:"nx"`
	Ny     int     `json:"ny"`
}

// Clamp returns a copy of in with sigma, nx and ny forced into l.
// A NaN sigma becomes l.SigmaMin.
func (in SimulationInput) Clamp(l Limits) SimulationInput {
	out := in
	if math.IsNaN(in.Sigma) {
		out.Sigma = l.SigmaMin
	} else {
		out.Sigma = math.Max(l.SigmaMin, math.Min(l.SigmaMax, in.Sigma))
	}
	out.Nx = clampInt(in.Nx, l.NxMin, l.NxMax)
	out.Ny = clampInt(in.Ny, l.NyMin, l.NyMax)
	return out
}

// Validate rejects NaN or infinite boundary and perturbation temperatures.
func (in SimulationInput) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"top", in.Top}, {"bottom", in.Bottom}, {"vnode", in.Vnode}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s=%g", ErrNonFinite, f.name, f.v)
		}
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Node is a sample point of the plate with its temperature.
type Node struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	T float64 `json:"T"`
}

type NodeTemperatures struct {
	T1 float64 `json:"T1"`
	T2 float64 `json:"T2"`
	T3 float64 `json:"T3"`
	T4 float64 `json:"T4"`
}

func NewNodeTemperatures(x []float64) NodeTemperatures {
	return NodeTemperatures{T1: x[0], T2: x[1], T3: x[2], T4: x[3]}
}

func (t NodeTemperatures) Slice() []float64 {
	return []float64{t.T1, t.T2, t.T3, t.T4}
}

// Nodes places t at the fixed node coordinates.
func Nodes(t NodeTemperatures) [NodeCount]Node {
	var nodes [NodeCount]Node
	for i, T := range t.Slice() {
		nodes[i] = Node{X: NodeXs[i], Y: NodeYs[i], T: T}
	}
	return nodes
}

// FieldGrid is a sampled temperature field. Values is indexed [iy][ix].
type FieldGrid struct {
	Xs     []float64   `json:"x"`
	Ys     []float64   `json:"y"`
	Values [][]float64 `json:"z"`
}

func (g *FieldGrid) Nx() int { return len(g.Xs) }
func (g *FieldGrid) Ny() int { return len(g.Ys) }

func (g *FieldGrid) At(ix, iy int) float64 {
	return g.Values[iy][ix]
}

// NearestIndex returns the index of the sample in axis closest to v.
// Ties resolve to the lower index.
func NearestIndex(axis []float64, v float64) int {
	best, bestD := 0, math.Inf(1)
	for i, a := range axis {
		if d := math.Abs(a - v); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// Profile is a vertical temperature cut through the field.
type Profile struct {
	X  float64   `json:"x"`
	Ys []float64 `json:"y"`
	Ts []float64 `json:"T"`
}

// ProfileAtX cuts the field along the column nearest to xcut.
func (g *FieldGrid) ProfileAtX(xcut float64) Profile {
	ix := NearestIndex(g.Xs, xcut)
	ts := make([]float64, len(g.Values))
	for iy, row := range g.Values {
		ts[iy] = row[ix]
	}
	return Profile{
		X:  g.Xs[ix],
		Ys: append([]float64(nil), g.Ys...),
		Ts: ts,
	}
}

// ProfileReq asks for the vertical cut nearest to X.
type ProfileReq struct {
	X float64 `json:"x"`
}

// Msg is the message exchanged with the front end over the websocket.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
