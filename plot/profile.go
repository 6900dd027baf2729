package plot

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/mehranjafarii/heat-simulation-fdm/model"
)

const (
	Width  = 800
	Height = 600
)

var ErrShortProfile = errors.New("plot: profile needs at least 2 samples")

// RenderProfile draws temperature against height as a PNG line chart.
func RenderProfile(w io.Writer, p model.Profile) error {
	if len(p.Ts) < 2 || len(p.Ts) != len(p.Ys) {
		return ErrShortProfile
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Temperature profile at x=%.2f cm", p.X),
		Width:  Width,
		Height: Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "T (C)",
			Style: chart.Style{FontSize: 10.0},
			Range: temperatureRange(p.Ts),
		},
		YAxis: chart.YAxis{
			Name:  "y (cm)",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "T(y)",
				XValues: p.Ts,
				YValues: p.Ys,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2.0},
			},
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render profile: %w", err)
	}
	return nil
}

// temperatureRange widens a flat profile so the axis keeps a non-zero span.
// A nil range lets go-chart fit the data.
func temperatureRange(ts []float64) chart.Range {
	lo, hi := floats.Min(ts), floats.Max(ts)
	if lo != hi {
		return nil
	}
	return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
}
