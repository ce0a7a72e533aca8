package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/leachsim/internal/analysis"
	"github.com/san-kum/leachsim/internal/config"
	"github.com/san-kum/leachsim/internal/export"
	"github.com/san-kum/leachsim/internal/leach"
	"github.com/san-kum/leachsim/internal/metrics"
	"github.com/san-kum/leachsim/internal/sweep"
	"github.com/san-kum/leachsim/internal/viz"
)

var (
	depth        float64
	days         float64
	dx           float64
	dt           float64
	velocity     float64
	dispersion   float64
	rainfall     float64
	infiltration float64
	linerThick   float64
	linerPerm    float64
	sorptionKd   float64
	muMax        float64
	ks           float64
	biogasYield  float64
	initConc     float64
	initBiomass  float64
	// Config sources
	configFile string
	preset     string
	// Output
	csvPath    string
	jsonPath   string
	svgPath    string
	svgGasPath string
	noHeatmap  bool
	// Sweep
	sweepParams []string
	sweepMetric string
	sweepMax    bool
	// Live view
	frameRate int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "leachsim",
		Short: "landfill leachate transport and biogas simulation",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a column simulation",
		RunE:  runSimulation,
	}
	addModelFlags(runCmd)
	runCmd.Flags().StringVar(&csvPath, "csv", "", "write result CSV to path (- for stdout)")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "write result JSON to path (- for stdout)")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write heat map SVG to path (- for stdout)")
	runCmd.Flags().StringVar(&svgGasPath, "svg-gas", "", "write gas curve SVG to path (- for stdout)")
	runCmd.Flags().BoolVar(&noHeatmap, "no-heatmap", false, "skip the terminal heat map")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDAYS\tRAIN\tVELOCITY\tMUMAX\tLINER_PERM")
			for _, name := range config.ListPresets() {
				cfg := config.Preset(name)
				fmt.Fprintf(w, "%s\t%.0f\t%.1f\t%.3f\t%.2f\t%.1e\n",
					name, cfg.Days, cfg.Rainfall, cfg.Velocity, cfg.MuMax, cfg.LinerPermeability)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the stepper over grid sizes",
		RunE:  benchGrid,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search over physical parameters",
		RunE:  runSweep,
	}
	addModelFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "sweep axis as name=lo:hi:n (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "cumulative_gas", "metric to optimize")
	sweepCmd.Flags().BoolVar(&sweepMax, "max", true, "maximize instead of minimize")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the column evolve step by step",
		RunE:  runLive,
	}
	addModelFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	rootCmd.AddCommand(runCmd, presetsCmd, benchCmd, sweepCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&depth, "depth", config.DefaultDepth, "landfill depth (m)")
	cmd.Flags().Float64Var(&days, "days", config.DefaultDays, "simulated time (days)")
	cmd.Flags().Float64Var(&dx, "dx", config.DefaultDx, "spatial step (m)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step (days)")
	cmd.Flags().Float64Var(&velocity, "velocity", config.DefaultVelocity, "leachate velocity (m/day)")
	cmd.Flags().Float64Var(&dispersion, "dispersion", config.DefaultDispersion, "dispersion coefficient (m2/day)")
	cmd.Flags().Float64Var(&rainfall, "rainfall", config.DefaultRainfall, "daily rainfall (mm/day)")
	cmd.Flags().Float64Var(&infiltration, "infiltration", config.DefaultInfiltration, "infiltration coefficient (0-1)")
	cmd.Flags().Float64Var(&linerThick, "liner-thickness", 1.0, "liner thickness (m)")
	cmd.Flags().Float64Var(&linerPerm, "liner-perm", 1e-9, "liner permeability (m/s)")
	cmd.Flags().Float64Var(&sorptionKd, "kd", 1.0, "sorption coefficient Kd (L/kg)")
	cmd.Flags().Float64Var(&muMax, "mumax", config.DefaultMuMax, "maximum degradation rate (1/day)")
	cmd.Flags().Float64Var(&ks, "ks", config.DefaultKs, "half-saturation constant (mg/L)")
	cmd.Flags().Float64Var(&biogasYield, "yield", 0.5, "biogas yield (L/g COD)")
	cmd.Flags().Float64Var(&initConc, "conc", 100.0, "initial concentration (mg/L)")
	cmd.Flags().Float64Var(&initBiomass, "biomass", 50.0, "initial biomass (mg/L)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use scenario preset")
}

// buildConfig resolves preset, then config file, then explicitly set flags,
// later sources winning.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		cfg = config.Preset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("depth") {
		cfg.Depth = depth
	}
	if flags.Changed("days") {
		cfg.Days = days
	}
	if flags.Changed("dx") {
		cfg.Dx = dx
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("velocity") {
		cfg.Velocity = velocity
	}
	if flags.Changed("dispersion") {
		cfg.Dispersion = dispersion
	}
	if flags.Changed("rainfall") {
		cfg.Rainfall = rainfall
	}
	if flags.Changed("infiltration") {
		cfg.Infiltration = infiltration
	}
	if flags.Changed("liner-thickness") {
		cfg.LinerThickness = linerThick
	}
	if flags.Changed("liner-perm") {
		cfg.LinerPermeability = linerPerm
	}
	if flags.Changed("kd") {
		cfg.SorptionKd = sorptionKd
	}
	if flags.Changed("mumax") {
		cfg.MuMax = muMax
	}
	if flags.Changed("ks") {
		cfg.Ks = ks
	}
	if flags.Changed("yield") {
		cfg.BiogasYield = biogasYield
	}
	if flags.Changed("conc") {
		cfg.InitConcentration = initConc
	}
	if flags.Changed("biomass") {
		cfg.InitBiomass = initBiomass
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	grid, err := cfg.Grid()
	if err != nil {
		return err
	}
	params := cfg.Params()

	report := analysis.Analyze(grid, params)
	for _, warn := range report.Warnings() {
		fmt.Printf("warning: %s\n", warn)
	}

	drv, err := leach.NewDriver(grid, params)
	if err != nil {
		return err
	}
	for _, m := range metrics.Defaults(grid, params) {
		drv.AddMetric(m)
	}

	fmt.Printf("running %d nodes x %d steps...\n", grid.Nx, grid.Steps)
	start := time.Now()
	res, err := drv.Run(context.Background(), cfg.InitConcentration, cfg.InitBiomass)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	fmt.Println("metrics:")
	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, res.Metrics[name])
	}
	fmt.Println()

	fmt.Println(asciigraph.Plot(res.Gas,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("cumulative biogas (L)"),
	))
	fmt.Println()

	fmt.Println(asciigraph.Plot(res.Conc[len(res.Conc)-1],
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("final concentration profile, surface to base (mg/L)"),
	))
	fmt.Println()

	if !noHeatmap {
		fmt.Println(viz.Heatmap(res.Conc, res.Times, 40, 20))
	}

	if csvPath != "" {
		if err := writeTo(csvPath, func(w io.Writer) error { return export.WriteCSV(w, res) }); err != nil {
			return err
		}
	}
	if jsonPath != "" {
		if err := writeTo(jsonPath, func(w io.Writer) error { return export.WriteJSON(w, res) }); err != nil {
			return err
		}
	}
	if svgPath != "" {
		if err := writeTo(svgPath, func(w io.Writer) error { return export.WriteHeatmapSVG(w, res, 6) }); err != nil {
			return err
		}
	}
	if svgGasPath != "" {
		if err := writeTo(svgGasPath, func(w io.Writer) error { return export.WriteGasSVG(w, res, 640, 240) }); err != nil {
			return err
		}
	}
	return nil
}

func writeTo(path string, fn func(io.Writer) error) error {
	if path == "-" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return err
	}
	return f.Close()
}

func benchGrid(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	params := cfg.Params()

	durations := []float64{30, 100, 365}
	dxs := []float64{1.0, 0.5, 0.25}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DAYS\tDX\tNODES\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, h := range dxs {
			grid, err := leach.NewGrid(cfg.Depth, dur, h, cfg.Dt)
			if err != nil {
				return err
			}
			drv, err := leach.NewDriver(grid, params)
			if err != nil {
				return err
			}

			start := time.Now()
			res, err := drv.Run(context.Background(), cfg.InitConcentration, cfg.InitBiomass)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%.0f\t%.2f\t%d\t%d\t%v\t%.0f\n",
				dur, h, grid.Nx, grid.Steps, elapsed,
				float64(res.StepsTaken)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(sweepParams) == 0 {
		return fmt.Errorf("at least one --param axis is required")
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	grid, err := cfg.Grid()
	if err != nil {
		return err
	}
	base := cfg.Params()

	axes := make([]sweep.Axis, 0, len(sweepParams))
	for _, spec := range sweepParams {
		axis, err := sweep.ParseAxis(spec)
		if err != nil {
			return err
		}
		if err := setParam(&base, axis.Name, axis.Values[0]); err != nil {
			return err
		}
		axes = append(axes, axis)
	}

	score := func(ctx context.Context, assignment map[string]float64) (float64, error) {
		p := base
		for name, v := range assignment {
			if err := setParam(&p, name, v); err != nil {
				return 0, err
			}
		}
		drv, err := leach.NewDriver(grid, p)
		if err != nil {
			return 0, err
		}
		for _, m := range metrics.Defaults(grid, p) {
			drv.AddMetric(m)
		}
		res, err := drv.Run(ctx, cfg.InitConcentration, cfg.InitBiomass)
		if err != nil {
			return 0, err
		}
		val, ok := res.Metrics[sweepMetric]
		if !ok {
			return 0, fmt.Errorf("unknown metric: %s", sweepMetric)
		}
		return val, nil
	}

	fmt.Printf("sweeping %d axes, scoring %s...\n", len(axes), sweepMetric)
	start := time.Now()
	best, val, err := sweep.New(axes, sweepMax).Search(context.Background(), score)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	names := make([]string, 0, len(best))
	for name := range best {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s = %.6g\n", name, best[name])
	}
	fmt.Printf("  %s = %.6f\n", sweepMetric, val)
	return nil
}

func setParam(p *leach.Params, name string, v float64) error {
	switch name {
	case "velocity":
		p.Velocity = v
	case "dispersion":
		p.Dispersion = v
	case "rainfall":
		p.Rainfall = v
	case "infiltration":
		p.Infiltration = v
	case "liner_thickness":
		p.LinerThickness = v
	case "liner_permeability":
		p.LinerPerm = v
	case "sorption_kd":
		p.SorptionKd = v
	case "mu_max":
		p.MuMax = v
	case "ks":
		p.Ks = v
	case "biogas_yield":
		p.BiogasYield = v
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	grid, err := cfg.Grid()
	if err != nil {
		return err
	}
	params := cfg.Params()
	if err := params.Validate(); err != nil {
		return err
	}

	m := viz.NewLive(grid, params, cfg.InitConcentration, cfg.InitBiomass, frameRate)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
