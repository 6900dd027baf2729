package fdm

import (
	"github.com/mehranjafarii/heat-simulation-fdm/model"
	"github.com/mehranjafarii/heat-simulation-fdm/solver"
)

// Discretised conduction equations:
// 1) 4T1 - 2T2 = Top + Bottom
// 2) -T1 + 4T2 = Top + Vnode + Bottom
// 3) -T2 + T3  = 0   (T3 = T2, symmetry)
// 4)  T1 - T4  = 0   (T4 = T1, insulated edge)
var coefficients = [model.NodeCount][model.NodeCount]float64{
	{4.0, -2.0, 0.0, 0.0},
	{-1.0, 4.0, 0.0, 0.0},
	{0.0, -1.0, 1.0, 0.0},
	{1.0, 0.0, 0.0, -1.0},
}

// Model is the fixed four-node finite-difference model of the plate.
type Model struct {
	Solver solver.Solver
}

// BuildSystem returns fresh copies of the coefficient matrix and right-hand side.
func BuildSystem(top, bottom, vnode float64) ([][]float64, []float64) {
	a := make([][]float64, model.NodeCount)
	for i := range coefficients {
		a[i] = append([]float64(nil), coefficients[i][:]...)
	}
	b := []float64{
		top + bottom,
		top + vnode + bottom,
		0.0,
		0.0,
	}
	return a, b
}

// Equations lists the discretised equations in the order of BuildSystem's rows.
func Equations() []string {
	return []string{
		"4T1 - 2T2 = Top + Bottom",
		"-T1 + 4T2 = Top + Vnode + Bottom",
		"-T2 + T3  = 0   (T3 = T2)",
		" T1 - T4  = 0   (T4 = T1)",
	}
}

// ComputeNodeTemperatures solves the model with the default solver.
func ComputeNodeTemperatures(top, bottom, vnode float64) (model.NodeTemperatures, error) {
	return Model{}.ComputeNodeTemperatures(top, bottom, vnode)
}

// ComputeNodeTemperatures returns solver.ErrSingularSystem unchanged if elimination fails.
func (m Model) ComputeNodeTemperatures(top, bottom, vnode float64) (model.NodeTemperatures, error) {
	a, b := BuildSystem(top, bottom, vnode)
	x, err := m.Solver.Solve(a, b)
	if err != nil {
		return model.NodeTemperatures{}, err
	}
	return model.NewNodeTemperatures(x), nil
}
