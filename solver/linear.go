package solver

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultTolerance is the smallest pivot magnitude accepted during elimination.
const DefaultTolerance = 1e-12

var (
	ErrSingularSystem    = errors.New("solver: singular system")
	ErrDimensionMismatch = errors.New("solver: dimension mismatch")
)

// Solver solves dense square systems by Gauss-Jordan elimination with
// partial pivoting. The zero value uses DefaultTolerance.
type Solver struct {
	Tolerance float64
}

var defaultSolver = Solver{Tolerance: DefaultTolerance}

// Solve solves a·x = b with the default pivot tolerance.
func Solve(a [][]float64, b []float64) ([]float64, error) {
	return defaultSolver.Solve(a, b)
}

func (s Solver) tolerance() float64 {
	if s.Tolerance <= 0 {
		return DefaultTolerance
	}
	return s.Tolerance
}

// Solve works on copies of a and b; the caller's slices are left untouched.
func (s Solver) Solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	if len(a) != n {
		return nil, fmt.Errorf("%w: %d rows, %d right-hand entries", ErrDimensionMismatch, len(a), n)
	}
	m := make([][]float64, n)
	for i, row := range a {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrDimensionMismatch, i, len(row), n)
		}
		m[i] = append([]float64(nil), row...)
	}
	y := append([]float64(nil), b...)
	tol := s.tolerance()

	for k := 0; k < n; k++ {
		// partial pivoting
		piv := k
		for i := k + 1; i < n; i++ {
			if math.Abs(m[i][k]) > math.Abs(m[piv][k]) {
				piv = i
			}
		}
		if piv != k {
			m[k], m[piv] = m[piv], m[k]
			y[k], y[piv] = y[piv], y[k]
		}
		diag := m[k][k]
		// also catches a NaN pivot
		if !(math.Abs(diag) >= tol) {
			return nil, fmt.Errorf("%w: pivot %g in column %d", ErrSingularSystem, diag, k)
		}

		for j := k; j < n; j++ {
			m[k][j] /= diag
		}
		y[k] /= diag

		for i := 0; i < n; i++ {
			if i == k {
				continue
			}
			f := m[i][k]
			for j := k; j < n; j++ {
				m[i][j] -= f * m[k][j]
			}
			y[i] -= f * y[k]
		}
	}
	return y, nil
}

// Residual returns max |(a·x - b)_i|.
func Residual(a [][]float64, x, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	A := Dense(a)
	var ax mat.VecDense
	ax.MulVec(A, mat.NewVecDense(len(x), append([]float64(nil), x...)))
	r := 0.0
	for i := range b {
		if d := math.Abs(ax.AtVec(i) - b[i]); d > r {
			r = d
		}
	}
	return r
}

// Dense copies a row-major matrix into a gonum Dense.
func Dense(a [][]float64) *mat.Dense {
	rows := len(a)
	cols := 0
	if rows > 0 {
		cols = len(a[0])
	}
	data := make([]float64, 0, rows*cols)
	for _, row := range a {
		data = append(data, row...)
	}
	return mat.NewDense(rows, cols, data)
}

// Cond returns the 2-norm condition number of a.
func Cond(a [][]float64) float64 {
	return mat.Cond(Dense(a), 2)
}
