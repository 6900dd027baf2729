package rbf

import (
	"errors"
	"fmt"
	"math"

	"github.com/exascience/pargo/parallel"
	"gonum.org/v1/gonum/floats"

	"github.com/mehranjafarii/heat-simulation-fdm/model"
	"github.com/mehranjafarii/heat-simulation-fdm/solver"
)

// DefaultRegularization is added to the kernel matrix diagonal.
const DefaultRegularization = 1e-9

var ErrDegenerateGrid = errors.New("rbf: grid needs at least 2 samples per axis")

// Reconstructor turns the node temperatures into a dense field: a linear
// top/bottom baseline plus one Gaussian bump per node, with bump weights
// chosen so the field passes through every node temperature.
type Reconstructor struct {
	Regularization float64
	Solver         solver.Solver
	// Workers > 1 evaluates grid rows in parallel. Output is identical
	// to the sequential path.
	Workers int
}

// Default returns a sequential Reconstructor with the default regularization.
func Default() Reconstructor {
	return Reconstructor{Regularization: DefaultRegularization, Workers: 1}
}

// ReconstructField uses Default().
func ReconstructField(nodes [model.NodeCount]model.Node, top, bottom, sigma float64, nx, ny int) (*model.FieldGrid, error) {
	return Default().ReconstructField(nodes, top, bottom, sigma, nx, ny)
}

// Baseline is the linear conduction profile, bottom at y = 0 and top at y = Height.
func Baseline(top, bottom, y float64) float64 {
	return bottom - (bottom-top)*(y/model.Height)
}

// Kernel is the isotropic Gaussian of width sigma.
func Kernel(dx, dy, sigma float64) float64 {
	return math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
}

// Interpolant is a fitted field that can be evaluated anywhere in the plane.
type Interpolant struct {
	nodes  [model.NodeCount]model.Node
	top    float64
	bottom float64
	sigma  float64

	k     [][]float64
	coeff []float64
}

// Fit solves the kernel system for the bump weights.
func (r Reconstructor) Fit(nodes [model.NodeCount]model.Node, top, bottom, sigma float64) (*Interpolant, error) {
	n := len(nodes)
	k := make([][]float64, n)
	rhs := make([]float64, n)
	for i := 0; i < n; i++ {
		rhs[i] = nodes[i].T - Baseline(top, bottom, nodes[i].Y)
		k[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			k[i][j] = Kernel(nodes[i].X-nodes[j].X, nodes[i].Y-nodes[j].Y, sigma)
		}
		k[i][i] += r.Regularization
	}

	coeff, err := r.Solver.Solve(k, rhs)
	if err != nil {
		return nil, err
	}
	return &Interpolant{
		nodes:  nodes,
		top:    top,
		bottom: bottom,
		sigma:  sigma,
		k:      k,
		coeff:  coeff,
	}, nil
}

// At evaluates the field at (x, y).
func (p *Interpolant) At(x, y float64) float64 {
	return p.eval(x, y, Baseline(p.top, p.bottom, y))
}

func (p *Interpolant) eval(x, y, base float64) float64 {
	val := base
	for k, node := range p.nodes {
		val += p.coeff[k] * Kernel(x-node.X, y-node.Y, p.sigma)
	}
	return val
}

func (p *Interpolant) Coefficients() []float64 {
	return append([]float64(nil), p.coeff...)
}

// KernelMatrix returns the regularised kernel matrix used by Fit.
func (p *Interpolant) KernelMatrix() [][]float64 {
	out := make([][]float64, len(p.k))
	for i, row := range p.k {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// ReconstructField samples the fitted field on an nx × ny grid spanning
// [0, Width] × [0, Height], both ends included.
func (r Reconstructor) ReconstructField(nodes [model.NodeCount]model.Node, top, bottom, sigma float64, nx, ny int) (*model.FieldGrid, error) {
	p, err := r.Fit(nodes, top, bottom, sigma)
	if err != nil {
		return nil, err
	}
	return r.Sample(p, nx, ny)
}

// Sample evaluates p on an nx × ny grid.
func (r Reconstructor) Sample(p *Interpolant, nx, ny int) (*model.FieldGrid, error) {
	if nx < 2 || ny < 2 {
		return nil, fmt.Errorf("%w: nx=%d ny=%d", ErrDegenerateGrid, nx, ny)
	}
	xs := floats.Span(make([]float64, nx), 0, model.Width)
	ys := floats.Span(make([]float64, ny), 0, model.Height)

	values := make([][]float64, ny)
	rows := func(low, high int) {
		for iy := low; iy < high; iy++ {
			y := ys[iy]
			base := Baseline(p.top, p.bottom, y)
			row := make([]float64, nx)
			for ix, x := range xs {
				row[ix] = p.eval(x, y, base)
			}
			values[iy] = row
		}
	}
	if r.Workers > 1 {
		parallel.Range(0, ny, r.Workers, rows)
	} else {
		rows(0, ny)
	}

	return &model.FieldGrid{Xs: xs, Ys: ys, Values: values}, nil
}
