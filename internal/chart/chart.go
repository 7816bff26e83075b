// Package chart renders stored runs to a standalone HTML page with
// interactive time-series charts.
package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"

	"github.com/pillowtrucker/pendsim/internal/dynamo"
	"github.com/pillowtrucker/pendsim/internal/pendulum"
	"github.com/pillowtrucker/pendsim/internal/store"
)

func stateFromRow(row []float64) pendulum.State {
	return pendulum.StateFromVector(dynamo.State(row))
}

var seriesNames = []string{"theta1", "theta2", "omega1", "omega2"}

// Render writes an HTML line chart of a run's angles, angular
// velocities, and total energy.
func Render(w io.Writer, meta *store.RunMetadata, states [][]float64, times []float64) error {
	if len(states) == 0 {
		return fmt.Errorf("no data to chart")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "100%",
			Height:          "600px",
			PageTitle:       "pendsim run " + meta.ID,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "double pendulum: " + meta.ID,
			Subtitle: fmt.Sprintf("dt=%.4fs g=%.3f m=(%.2f, %.2f) l=(%.2f, %.2f) %s",
				meta.Dt, meta.Gravity, meta.Mass1, meta.Mass2, meta.Length1, meta.Length2, meta.Integrator),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "slider",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithLegendOpts(opts.Legend{
			Orient: "horizontal",
			Show:   opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	xs := make([]string, len(times))
	for i, t := range times {
		xs[i] = fmt.Sprintf("%.3f", t)
	}
	line.SetXAxis(xs)

	for col, name := range seriesNames {
		data := make([]opts.LineData, len(states))
		for i := range states {
			v := 0.0
			if col < len(states[i]) {
				v = states[i][col]
			}
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(name, data)
	}

	dyn := meta.Dynamics()
	energy := make([]opts.LineData, len(states))
	for i := range states {
		s := stateFromRow(states[i])
		energy[i] = opts.LineData{Value: dyn.Energy(s)}
	}
	line.AddSeries("energy", energy)

	return line.Render(w)
}

// RenderFile renders to a file path, logging what was written.
func RenderFile(path string, meta *store.RunMetadata, states [][]float64, times []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := Render(f, meta, states, times); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	log.WithFields(log.Fields{
		"run":     meta.ID,
		"samples": len(states),
		"output":  path,
	}).Info("chart rendered")

	return nil
}
