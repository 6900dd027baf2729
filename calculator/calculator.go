package calculator

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mehranjafarii/heat-simulation-fdm/fdm"
	"github.com/mehranjafarii/heat-simulation-fdm/model"
	"github.com/mehranjafarii/heat-simulation-fdm/rbf"
	"github.com/mehranjafarii/heat-simulation-fdm/solver"
)

// Calculator runs one simulation per request: node temperatures from the
// finite-difference model, then the reconstructed field. It keeps no
// state between requests and is safe for concurrent use.
type Calculator struct {
	limits model.Limits
	fdm    fdm.Model
	rbf    rbf.Reconstructor
}

func NewCalculator(cfg Config) *Calculator {
	s := solver.Solver{Tolerance: cfg.PivotTolerance}
	return &Calculator{
		limits: cfg.Limits,
		fdm:    fdm.Model{Solver: s},
		rbf: rbf.Reconstructor{
			Regularization: cfg.Regularization,
			Solver:         s,
			Workers:        cfg.Workers,
		},
	}
}

// Simulate rejects non-finite temperatures, clamps in to the configured
// limits and runs the model.
func (c *Calculator) Simulate(in model.SimulationInput) (*Result, error) {
	start := time.Now()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in = in.Clamp(c.limits)

	a, b := fdm.BuildSystem(in.Top, in.Bottom, in.Vnode)
	T, err := c.fdm.ComputeNodeTemperatures(in.Top, in.Bottom, in.Vnode)
	if err != nil {
		log.WithFields(log.Fields{"inputs": in, "err": err}).Error("node temperatures")
		return nil, fmt.Errorf("node temperatures: %w", err)
	}
	x := T.Slice()
	nodes := model.Nodes(T)

	p, err := c.rbf.Fit(nodes, in.Top, in.Bottom, in.Sigma)
	if err != nil {
		log.WithFields(log.Fields{"inputs": in, "err": err}).Error("field reconstruction")
		return nil, fmt.Errorf("field reconstruction (sigma=%g): %w", in.Sigma, err)
	}
	field, err := c.rbf.Sample(p, in.Nx, in.Ny)
	if err != nil {
		return nil, fmt.Errorf("field reconstruction: %w", err)
	}

	k := p.KernelMatrix()
	res := &Result{
		Inputs:       in,
		A:            a,
		B:            b,
		X:            x,
		T:            T,
		Nodes:        nodes,
		Field:        field,
		Coefficients: p.Coefficients(),
		KernelMatrix: k,
		KernelCond:   solver.Cond(k),
		Residual:     solver.Residual(a, x, b),
		Elapsed:      time.Since(start),
	}

	log.WithFields(log.Fields{
		"top":     in.Top,
		"bottom":  in.Bottom,
		"vnode":   in.Vnode,
		"sigma":   in.Sigma,
		"nx":      in.Nx,
		"ny":      in.Ny,
		"T":       x,
		"cond":    res.KernelCond,
		"elapsed": res.Elapsed,
	}).Info("simulation finished")
	return res, nil
}
