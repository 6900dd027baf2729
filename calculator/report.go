package calculator

import (
	"fmt"
	"strings"

	"github.com/mehranjafarii/heat-simulation-fdm/fdm"
)

// Report renders the equations, inputs, node temperatures and the matrix dump.
func (r *Result) Report() string {
	var sb strings.Builder
	in := r.Inputs

	sb.WriteString("Equations (FDM + insulated edge + symmetry):\n")
	for i, eq := range fdm.Equations() {
		fmt.Fprintf(&sb, "%d) %s\n", i+1, eq)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Top=%.2f°C , Bottom=%.2f°C , Vnode=%.2f°C , sigma=%.2f\n",
		in.Top, in.Bottom, in.Vnode, in.Sigma)
	fmt.Fprintf(&sb, "Result: T1=%.3f, T2=%.3f, T3=%.3f, T4=%.3f (°C)\n",
		r.T.T1, r.T.T2, r.T.T3, r.T.T4)
	sb.WriteString("\n")
	sb.WriteString(MatrixText(r.A, "A"))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "b = [%s]\n", rowText(r.B))
	fmt.Fprintf(&sb, "x = [T1 T2 T3 T4]^T = [%s]\n", rowText(r.X))
	return sb.String()
}

// MatrixText prints a as "name =" followed by one bracketed row per line.
func MatrixText(a [][]float64, name string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s =\n", name)
	for _, row := range a {
		fmt.Fprintf(&sb, "  [%s]\n", rowText(row))
	}
	return sb.String()
}

func rowText(v []float64) string {
	cells := make([]string, len(v))
	for i, x := range v {
		cells[i] = fmt.Sprintf("%8.3f", x)
	}
	return strings.Join(cells, "  ")
}
