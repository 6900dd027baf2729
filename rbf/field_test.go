package rbf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehranjafarii/heat-simulation-fdm/fdm"
	"github.com/mehranjafarii/heat-simulation-fdm/model"
	"github.com/mehranjafarii/heat-simulation-fdm/solver"
)

func fdmNodes(t *testing.T, top, bottom, vnode float64) [model.NodeCount]model.Node {
	T, err := fdm.ComputeNodeTemperatures(top, bottom, vnode)
	require.NoError(t, err)
	return model.Nodes(T)
}

func TestBaseline(t *testing.T) {
	assert.Equal(t, 20.0, Baseline(100, 20, 0))
	assert.Equal(t, 100.0, Baseline(100, 20, 2))
	assert.Equal(t, 60.0, Baseline(100, 20, 1))
}

func TestKernel(t *testing.T) {
	assert.Equal(t, 1.0, Kernel(0, 0, 0.5))
	assert.InDelta(t, math.Exp(-0.5), Kernel(1, 0, 1), 1e-15)
	assert.Equal(t, Kernel(0.3, -0.4, 0.7), Kernel(-0.4, 0.3, 0.7))
}

func TestReconstructFieldShape(t *testing.T) {
	g, err := ReconstructField(fdmNodes(t, 100, 0, 0), 100, 0, 0.8, 80, 60)
	require.NoError(t, err)

	require.Len(t, g.Xs, 80)
	require.Len(t, g.Ys, 60)
	require.Len(t, g.Values, 60)
	for _, row := range g.Values {
		assert.Len(t, row, 80)
	}
	assert.Equal(t, 0.0, g.Xs[0])
	assert.InDelta(t, 4.0, g.Xs[79], 1e-12)
	assert.Equal(t, 0.0, g.Ys[0])
	assert.InDelta(t, 2.0, g.Ys[59], 1e-12)

	step := g.Xs[1] - g.Xs[0]
	for i := 1; i < len(g.Xs); i++ {
		assert.InDelta(t, step, g.Xs[i]-g.Xs[i-1], 1e-12)
	}
}

func TestReconstructFieldInterpolates(t *testing.T) {
	cases := []struct {
		name                      string
		top, bottom, vnode, sigma float64
	}{
		{"narrow", 100, 0, 0, 0.35},
		{"medium", 100, 0, 25, 0.8},
		{"wide", 100, 0, 0, 1.2},
		{"inverted", 10, 90, -15, 0.6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			nodes := fdmNodes(t, c.top, c.bottom, c.vnode)

			p, err := Default().Fit(nodes, c.top, c.bottom, c.sigma)
			require.NoError(t, err)
			for _, n := range nodes {
				assert.InDelta(t, n.T, p.At(n.X, n.Y), 1e-4)
			}

			// nx=81, ny=61 puts grid points on every node
			g, err := Default().ReconstructField(nodes, c.top, c.bottom, c.sigma, 81, 61)
			require.NoError(t, err)
			for _, n := range nodes {
				ix := model.NearestIndex(g.Xs, n.X)
				iy := model.NearestIndex(g.Ys, n.Y)
				assert.InDelta(t, n.T, g.At(ix, iy), 1e-4)
			}
		})
	}
}

func TestFarFieldFollowsBaseline(t *testing.T) {
	nodes := fdmNodes(t, 100, 0, 30)
	p, err := Default().Fit(nodes, 100, 0, 0.35)
	require.NoError(t, err)
	for _, y := range []float64{0, 0.5, 1, 2} {
		assert.InDelta(t, Baseline(100, 0, y), p.At(50, y), 1e-12)
	}
}

func TestWorkersMatchSequential(t *testing.T) {
	nodes := fdmNodes(t, 75, 5, 10)
	seq, err := Default().ReconstructField(nodes, 75, 5, 0.7, 120, 90)
	require.NoError(t, err)

	par := Reconstructor{Regularization: DefaultRegularization, Workers: 4}
	g, err := par.ReconstructField(nodes, 75, 5, 0.7, 120, 90)
	require.NoError(t, err)
	assert.Equal(t, seq, g)
}

func TestDefaultIsIndependent(t *testing.T) {
	d := Default()
	d.Regularization = 0
	d.Workers = 8
	assert.Equal(t, Reconstructor{Regularization: DefaultRegularization, Workers: 1}, Default())
}

func TestReconstructFieldDeterministic(t *testing.T) {
	nodes := fdmNodes(t, 60, 15, 3)
	a, err := ReconstructField(nodes, 60, 15, 0.9, 100, 70)
	require.NoError(t, err)
	b, err := ReconstructField(nodes, 60, 15, 0.9, 100, 70)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDegenerateGrid(t *testing.T) {
	nodes := fdmNodes(t, 100, 0, 0)
	_, err := ReconstructField(nodes, 100, 0, 0.8, 1, 60)
	assert.ErrorIs(t, err, ErrDegenerateGrid)
	_, err = ReconstructField(nodes, 100, 0, 0.8, 80, 0)
	assert.ErrorIs(t, err, ErrDegenerateGrid)
}

func TestCoincidentNodes(t *testing.T) {
	var nodes [model.NodeCount]model.Node
	for i := range nodes {
		nodes[i] = model.Node{X: 2, Y: 1, T: 50}
	}

	_, err := Reconstructor{}.Fit(nodes, 100, 0, 0.8)
	assert.ErrorIs(t, err, solver.ErrSingularSystem)

	// the diagonal term keeps the system solvable
	_, err = Default().Fit(nodes, 100, 0, 0.8)
	assert.NoError(t, err)
}

func TestDiagnostics(t *testing.T) {
	nodes := fdmNodes(t, 100, 0, 0)
	p, err := Default().Fit(nodes, 100, 0, 0.5)
	require.NoError(t, err)

	k := p.KernelMatrix()
	require.Len(t, k, 4)
	for i := range k {
		assert.Equal(t, 1+DefaultRegularization, k[i][i])
		for j := range k {
			if i != j {
				assert.Equal(t, k[i][j], k[j][i])
			}
		}
	}

	coeff := p.Coefficients()
	rhs := make([]float64, len(nodes))
	for i, n := range nodes {
		rhs[i] = n.T - Baseline(100, 0, n.Y)
	}
	assert.Less(t, solver.Residual(k, coeff, rhs), 1e-9)

	// returned slices are copies
	k[0][0] = 0
	coeff[0] = 0
	assert.NotEqual(t, 0.0, p.KernelMatrix()[0][0])
	assert.NotEqual(t, 0.0, p.Coefficients()[0])
}
