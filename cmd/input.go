package cmd

import (
	"fmt"
	"io"

	"github.com/ghodss/yaml"

	"github.com/mehranjafarii/heat-simulation-fdm/model"
)

// InputParameters is read from a YAML input file. Keys that are absent keep
// the values the struct held before Parse.
type InputParameters struct {
	Title string `json:"title"`
	model.SimulationInput
	XCut float64 `json:"xcut"`
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "%8.3f\t\t= Top\n", ip.Top)
	fmt.Fprintf(w, "%8.3f\t\t= Bottom\n", ip.Bottom)
	fmt.Fprintf(w, "%8.3f\t\t= Vnode\n", ip.Vnode)
	fmt.Fprintf(w, "%8.3f\t\t= Sigma\n", ip.Sigma)
	fmt.Fprintf(w, "[%d x %d]\t\t= Grid (nx x ny)\n", ip.Nx, ip.Ny)
	fmt.Fprintf(w, "%8.3f\t\t= Profile x\n", ip.XCut)
}

const exampleInput = `
########################################
title: "Problem 5-52"
top: 100
bottom: 0
vnode: 0
sigma: 0.8   # clamped to [0.35, 1.20]
nx: 160      # clamped to [80, 320]
ny: 120      # clamped to [60, 260]
xcut: 2.0    # x of the temperature profile
########################################
`
