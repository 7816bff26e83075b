package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pillowtrucker/pendsim/internal/analysis"
	"github.com/pillowtrucker/pendsim/internal/automation"
	"github.com/pillowtrucker/pendsim/internal/chart"
	"github.com/pillowtrucker/pendsim/internal/config"
	"github.com/pillowtrucker/pendsim/internal/dynamo"
	"github.com/pillowtrucker/pendsim/internal/export"
	"github.com/pillowtrucker/pendsim/internal/integrators"
	"github.com/pillowtrucker/pendsim/internal/metrics"
	"github.com/pillowtrucker/pendsim/internal/pendulum"
	"github.com/pillowtrucker/pendsim/internal/store"
	"github.com/pillowtrucker/pendsim/internal/viz"
)

var (
	dataDir      string
	dt           float64
	duration     float64
	theta1       float64
	theta2       float64
	omega1       float64
	omega2       float64
	gravity      float64
	mass1        float64
	mass2        float64
	length1      float64
	length2      float64
	seed         int64
	integrator   string
	configFile   string
	preset       string
	frameRate    int
	xAxis        int
	yAxis        int
	outFile      string
	perturbation float64
	verbose      bool
	svgStyle     string
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	trials       int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pendsim",
		Short: "double pendulum simulation lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pendsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the trajectory",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 2, "state index for y-axis")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	chartCmd := &cobra.Command{
		Use:   "chart [run_id]",
		Short: "render an interactive HTML chart",
		Args:  cobra.ExactArgs(1),
		RunE:  chartRun,
	}
	chartCmd.Flags().StringVarP(&outFile, "out", "o", "", "output path (default <run_id>.html)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov",
		Short: "estimate the largest Lyapunov exponent",
		RunE:  runLyapunov,
	}
	addSimFlags(lyapunovCmd)
	lyapunovCmd.Flags().Float64Var(&perturbation, "perturbation", 1e-8, "initial separation")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same initial condition",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addSimFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDT\tDURATION\tTHETA1\tTHETA2")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.4f\t%.1fs\t%.2f\t%.2f\n",
					name, p.Dt, p.Duration, p.InitState.Theta1, p.InitState.Theta2)
			}
			return w.Flush()
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the outer bob's path as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output path (default <run_id>.svg)")
	exportSVGCmd.Flags().StringVar(&svgStyle, "style", "path", "rendering style (path, braille)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one physical parameter across a range",
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "gravity", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 1.0, "range start")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 20.0, "range end")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "run trials from randomly perturbed initial states",
		RunE:  runMonteCarlo,
	}
	addSimFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturbation", 0.01, "uniform perturbation half-width")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, phaseCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, chartCmd, analyzeCmd,
		lyapunovCmd, compareCmd, presetsCmd, sweepCmd, monteCarloCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&theta1, "theta1", config.DefaultTheta, "inner rod angle")
	cmd.Flags().Float64Var(&theta2, "theta2", config.DefaultTheta, "outer rod angle")
	cmd.Flags().Float64Var(&omega1, "omega1", 0.0, "inner angular velocity")
	cmd.Flags().Float64Var(&omega2, "omega2", 0.0, "outer angular velocity")
	cmd.Flags().Float64Var(&gravity, "gravity", pendulum.StandardGravity, "gravitational acceleration")
	cmd.Flags().Float64Var(&mass1, "m1", pendulum.DefaultMass, "inner bob mass")
	cmd.Flags().Float64Var(&mass2, "m2", pendulum.DefaultMass, "outer bob mass")
	cmd.Flags().Float64Var(&length1, "l1", pendulum.DefaultLength, "inner rod length")
	cmd.Flags().Float64Var(&length2, "l2", pendulum.DefaultLength, "outer rod length")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator ("+strings.Join(integrators.Names(), ", ")+")")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset name")
}

// buildConfig resolves precedence: defaults, then preset, then config
// file, then explicitly set CLI flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flagTargets := map[string]*float64{
		"dt":      &cfg.Dt,
		"time":    &cfg.Duration,
		"theta1":  &cfg.InitState.Theta1,
		"theta2":  &cfg.InitState.Theta2,
		"omega1":  &cfg.InitState.Omega1,
		"omega2":  &cfg.InitState.Omega2,
		"gravity": &cfg.Params.Gravity,
		"m1":      &cfg.Params.Mass1,
		"m2":      &cfg.Params.Mass2,
		"l1":      &cfg.Params.Length1,
		"l2":      &cfg.Params.Length2,
	}
	flagValues := map[string]float64{
		"dt": dt, "time": duration,
		"theta1": theta1, "theta2": theta2,
		"omega1": omega1, "omega2": omega2,
		"gravity": gravity, "m1": mass1, "m2": mass2,
		"l1": length1, "l2": length2,
	}
	for name, target := range flagTargets {
		if cmd.Flags().Changed(name) {
			*target = flagValues[name]
		}
	}
	if cmd.Flags().Changed("integrator") || cfg.Integrator == "" {
		cfg.Integrator = integrator
	}
	if f := cmd.Flags().Lookup("seed"); f != nil && (cfg.Seed == 0 || f.Changed) {
		cfg.Seed = seed
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}

	dyn := cfg.Dynamics()
	sys := pendulum.NewSystem(dyn)

	sim := dynamo.New(sys, integ)
	sim.AddMetric(metrics.NewEnergy(sys))
	sim.AddMetric(metrics.NewEnergyDrift(sys))
	sim.AddMetric(metrics.NewStability(1e6, 2, 3))

	log.WithFields(log.Fields{
		"integrator": cfg.Integrator,
		"dt":         cfg.Dt,
		"duration":   cfg.Duration,
	}).Info("running simulation")
	start := time.Now()

	simCfg := dynamo.DefaultConfig()
	simCfg.Dt = cfg.Dt
	simCfg.Duration = cfg.Duration
	simCfg.Seed = cfg.Seed

	result, err := sim.Run(context.Background(), cfg.State().Vector(), simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(dyn, cfg.Dt, cfg.Duration, cfg.Seed, cfg.Integrator, result)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"run_id":  runID,
		"steps":   result.StepsTaken,
		"elapsed": elapsed,
	}).Info("simulation complete")

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(result.States))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	return viz.Run(cfg.Dynamics(), cfg.State(), frameRate)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tINTEG\tG\tM1/M2\tL1/L2")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%s\t%.2f\t%.2f/%.2f\t%.2f/%.2f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Gravity,
			run.Mass1, run.Mass2,
			run.Length1, run.Length2,
		)
	}

	return w.Flush()
}

var plotCaptions = []string{
	"theta1 (inner angle)",
	"theta2 (outer angle)",
	"omega1 (inner angular velocity)",
	"omega2 (outer angular velocity)",
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(states))

	for varIdx := 0; varIdx < len(plotCaptions) && varIdx < len(states[0]); varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][varIdx]
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(plotCaptions[varIdx]),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

var phaseAxisNames = []string{"theta1", "theta2", "omega1", "omega2"}

func phasePlot(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if len(states[0]) <= xAxis || len(states[0]) <= yAxis || xAxis < 0 || yAxis < 0 {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	axisName := func(i int) string {
		if i < len(phaseAxisNames) {
			return phaseAxisNames[i]
		}
		return fmt.Sprintf("x%d", i)
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("x-axis: %s, y-axis: %s\n\n", axisName(xAxis), axisName(yAxis))

	xData := make([]float64, len(states))
	yData := make([]float64, len(states))
	for i := range states {
		xData[i] = states[i][xAxis]
		yData[i] = states[i][yAxis]
	}

	xMin, xMax := xData[0], xData[0]
	yMin, yMax := yData[0], yData[0]
	for i := range xData {
		if xData[i] < xMin {
			xMin = xData[i]
		}
		if xData[i] > xMax {
			xMax = xData[i]
		}
		if yData[i] < yMin {
			yMin = yData[i]
		}
		if yData[i] > yMax {
			yMax = yData[i]
		}
	}

	xRange := xMax - xMin
	yRange := yMax - yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	width := 70
	height := 20
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i := range xData {
		px := int(float64(width-1) * (xData[i] - xMin) / xRange)
		py := int(float64(height-1) * (yData[i] - yMin) / yRange)
		py = height - 1 - py
		if px >= 0 && px < width && py >= 0 && py < height {
			if i < len(xData)/3 {
				canvas[py][px] = '.'
			} else if i < 2*len(xData)/3 {
				canvas[py][px] = 'o'
			} else {
				canvas[py][px] = '●'
			}
		}
	}

	fmt.Printf("  %.2f ┌%s┐\n", yMax, strings.Repeat("─", width))
	for i := range canvas {
		if i == height/2 {
			fmt.Printf("  %.2f │", (yMax+yMin)/2)
		} else {
			fmt.Print("       │")
		}
		fmt.Print(string(canvas[i]))
		fmt.Println("│")
	}
	fmt.Printf("  %.2f └%s┘\n", yMin, strings.Repeat("─", width))
	fmt.Printf("       %.2f%s%.2f\n", xMin, strings.Repeat(" ", width-20), xMax)
	fmt.Printf("\nLegend: . = early, o = middle, ● = late\n")

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "theta1", "theta2", "omega1", "omega2"}); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	return store.ExportJSONTo(os.Stdout, meta, states, times)
}

func chartRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	path := outFile
	if path == "" {
		path = args[0] + ".html"
	}
	// chart logs its own completion with the output path
	return chart.RenderFile(path, meta, states, times)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 || len(states[0]) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	data := make([]float64, len(states))
	for i := range states {
		data[i] = states[i][0]
	}

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (theta1)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}

	sys := pendulum.NewSystem(cfg.Dynamics())

	log.WithFields(log.Fields{
		"duration":     cfg.Duration,
		"perturbation": perturbation,
	}).Info("estimating Lyapunov exponent")

	lambda := analysis.LyapunovExponent(sys, integ, cfg.State().Vector(), cfg.Dt, cfg.Duration, perturbation)

	fmt.Printf("largest Lyapunov exponent: %.6f\n", lambda)
	if lambda > 0.01 {
		fmt.Println("the trajectory is chaotic")
	} else {
		fmt.Println("the trajectory is regular")
	}

	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	dyn := cfg.Dynamics()
	x0 := cfg.State().Vector()

	fmt.Printf("comparing integrators (dt=%.4f, duration=%.1fs)\n\n", cfg.Dt, cfg.Duration)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s\n", "integrator", "final_theta1", "energy_drift", "time_ms")
	fmt.Println(strings.Repeat("-", 54))

	for _, name := range args {
		integ, err := integrators.New(name)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		sim := dynamo.New(pendulum.NewSystem(dyn), integ)

		simCfg := dynamo.DefaultConfig()
		simCfg.Dt = cfg.Dt
		simCfg.Duration = cfg.Duration

		start := time.Now()
		result, err := sim.Run(context.Background(), x0.Clone(), simCfg)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		finalTheta1 := 0.0
		if len(result.States) > 0 && len(result.States[len(result.States)-1]) > 0 {
			finalTheta1 = result.States[len(result.States)-1][0]
		}

		fmt.Printf("%-12s  %12.6f  %12.2e  %12.2f\n",
			name, finalTheta1, result.EnergyDrift, float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	trail := export.BobTrail(meta.Dynamics(), states)
	if len(trail) < 2 {
		return fmt.Errorf("not enough data to render")
	}

	var svg string
	switch svgStyle {
	case "path":
		svg = export.TrailSVG(trail, 800, 600, "#00ff00")
	case "braille":
		canvas := viz.NewCanvas(80, 40)
		reach := meta.Length1 + meta.Length2
		scale := 40.0 * 4 * 0.45 / reach
		for _, p := range trail {
			canvas.Set(80+int(p.X*scale), 80+int(p.Y*scale))
		}
		svg = export.CanvasSVG(canvas, 5.0)
	default:
		return fmt.Errorf("unknown style: %s (path, braille)", svgStyle)
	}

	path := outFile
	if path == "" {
		path = args[0] + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		return err
	}

	log.WithField("path", path).Info("svg written")
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Integrator: cfg.Integrator,
		ParamName:  sweepParam,
		ParamMin:   sweepMin,
		ParamMax:   sweepMax,
		NumSteps:   sweepSteps,
		Duration:   cfg.Duration,
		Dt:         cfg.Dt,
		Base:       *cfg.Dynamics(),
		InitState:  cfg.State(),
	}

	results, err := automation.RunSweep(context.Background(), sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL_THETA1\tFINAL_THETA2\tE_MIN\tE_MAX\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			r.ParamValue, r.FinalState.Theta1, r.FinalState.Theta2, r.MinEnergy, r.MaxEnergy)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	mc := &automation.MonteCarloConfig{
		Integrator:   cfg.Integrator,
		Dynamics:     *cfg.Dynamics(),
		BaseState:    cfg.State(),
		Perturbation: perturbation,
		NumTrials:    trials,
		Duration:     cfg.Duration,
		Dt:           cfg.Dt,
		Seed:         cfg.Seed,
	}

	start := time.Now()
	results, err := automation.RunMonteCarlo(context.Background(), mc)
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)

	log.WithFields(log.Fields{
		"trials":  trials,
		"elapsed": time.Since(start),
	}).Info("monte carlo complete")

	fmt.Printf("trials: %d\n", len(results))
	fmt.Printf("bounded: %d\n", stable)
	fmt.Printf("unbounded: %d\n", unstable)

	var spreadT1, spreadT2 float64
	for _, r := range results {
		d1 := r.FinalState.Theta1 - results[0].FinalState.Theta1
		d2 := r.FinalState.Theta2 - results[0].FinalState.Theta2
		if d1 < 0 {
			d1 = -d1
		}
		if d2 < 0 {
			d2 = -d2
		}
		if d1 > spreadT1 {
			spreadT1 = d1
		}
		if d2 > spreadT2 {
			spreadT2 = d2
		}
	}
	fmt.Printf("final theta1 spread: %.4f rad\n", spreadT1)
	fmt.Printf("final theta2 spread: %.4f rad\n", spreadT2)

	return nil
}
