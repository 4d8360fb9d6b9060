package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/clothsim/internal/analysis"
	"github.com/san-kum/clothsim/internal/automation"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/experiment"
	"github.com/san-kum/clothsim/internal/export"
	"github.com/san-kum/clothsim/internal/optim"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
	"github.com/san-kum/clothsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir      string
	dt           float64
	duration     float64
	gravity      float64
	windStrength float64
	stiffness    float64
	damping      float64
	iterations   int
	clothWidth   float64
	clothHeight  float64
	segmentsX    int
	segmentsY    int
	substeps     int
	anchorDriver string
	amplitude    float64
	frequency    float64
	configFile   string
	preset       string
	frameRate    int
	// export-svg options
	svgOut    string
	svgFrame  int
	svgWidth  int
	svgHeight int
	// sweep options
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clothsim",
		Short: "cloth physics simulation lab",
		RunE:  runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clothsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation and record it",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark grid sizes and iteration counts",
		RunE:  benchGrids,
	}
	benchCmd.Flags().Float64Var(&duration, "time", 2.0, "duration per run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listAvailablePresets,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render one frame of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgFrame, "frame", -1, "frame index (default last)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of recorded sway",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search stiffness and damping for minimal strain",
		RunE:  tuneParams,
	}
	addSimFlags(tuneCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "sweep one parameter and report run metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepParam,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "sweep range start")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 10, "sweep range end")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of sweep points")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario from YAML",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, benchCmd, presetsCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, analyzeCmd, tuneCmd, sweepCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&gravity, "gravity", 9.81, "gravity strength")
	cmd.Flags().Float64Var(&windStrength, "wind", 3.0, "wind strength")
	cmd.Flags().Float64Var(&stiffness, "stiffness", 0.9, "constraint stiffness")
	cmd.Flags().Float64Var(&damping, "damping", 0.98, "velocity damping")
	cmd.Flags().IntVar(&iterations, "iterations", 8, "relaxation iterations")
	cmd.Flags().Float64Var(&clothWidth, "width", config.DefaultWidth, "cloth width")
	cmd.Flags().Float64Var(&clothHeight, "height", config.DefaultHeight, "cloth height")
	cmd.Flags().IntVar(&segmentsX, "segments-x", config.DefaultSegmentsX, "horizontal segments")
	cmd.Flags().IntVar(&segmentsY, "segments-y", config.DefaultSegmentsY, "vertical segments")
	cmd.Flags().IntVar(&substeps, "substeps", cloth.DefaultSubsteps, "substeps per frame")
	cmd.Flags().StringVar(&anchorDriver, "anchors", "sway", "anchor driver (static, sway, walk)")
	cmd.Flags().Float64Var(&amplitude, "amplitude", 0.2, "anchor motion amplitude")
	cmd.Flags().Float64Var(&frequency, "frequency", 0.4, "anchor motion frequency")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves the effective configuration: defaults, then
// preset, then config file, then any explicitly set CLI flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("gravity") {
		cfg.Physics.Gravity = gravity
	}
	if cmd.Flags().Changed("wind") {
		cfg.Physics.WindStrength = windStrength
	}
	if cmd.Flags().Changed("stiffness") {
		cfg.Physics.Stiffness = stiffness
	}
	if cmd.Flags().Changed("damping") {
		cfg.Physics.Damping = damping
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Physics.Iterations = iterations
	}
	if cmd.Flags().Changed("width") {
		cfg.Grid.Width = clothWidth
	}
	if cmd.Flags().Changed("height") {
		cfg.Grid.Height = clothHeight
	}
	if cmd.Flags().Changed("segments-x") {
		cfg.Grid.SegmentsX = segmentsX
	}
	if cmd.Flags().Changed("segments-y") {
		cfg.Grid.SegmentsY = segmentsY
	}
	if cmd.Flags().Changed("substeps") {
		cfg.Grid.Substeps = substeps
	}
	if cmd.Flags().Changed("anchors") {
		cfg.Anchors.Driver = anchorDriver
	}
	if cmd.Flags().Changed("amplitude") {
		cfg.Anchors.Amplitude = amplitude
	}
	if cmd.Flags().Changed("frequency") {
		cfg.Anchors.Frequency = frequency
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.DefaultMetrics()); err != nil {
		return err
	}

	fmt.Println("running cloth simulation...")
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Anchors:  cfg.Anchors.Driver,
		Preset:   preset,
		Grid:     cfg.Grid,
		Physics:  cfg.ClothConfig(),
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
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
	if frameRate <= 0 {
		frameRate = 30
	}

	c := cfg.NewCloth()

	registry := experiment.NewRegistry()
	driver, err := registry.GetDriver(cfg.Anchors.Driver, c, cfg.Anchors)
	if err != nil {
		return err
	}

	m := viz.NewModel(c, cfg.GridParams(), driver, cfg.ClothConfig(), cfg.Dt, frameRate)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tANCHORS\tPARTICLES\tPRESET")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%s\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Anchors,
			run.Particles,
			run.Preset,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("anchors: %s\n", meta.Anchors)
	fmt.Printf("samples: %d\n\n", len(frames))

	series := []struct {
		caption string
		extract func(frame []cloth.Vec3) float64
	}{
		{"centroid x", func(f []cloth.Vec3) float64 { return centroid(f).X }},
		{"centroid y", func(f []cloth.Vec3) float64 { return centroid(f).Y }},
		{"centroid z (billow)", func(f []cloth.Vec3) float64 { return centroid(f).Z }},
		{"lowest point y", lowestY},
	}

	for _, s := range series {
		data := make([]float64, len(frames))
		for i, frame := range frames {
			data[i] = s.extract(frame)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func centroid(frame []cloth.Vec3) cloth.Vec3 {
	var sum cloth.Vec3
	if len(frame) == 0 {
		return sum
	}
	for _, p := range frame {
		sum = sum.Add(p)
	}
	return sum.Scale(1.0 / float64(len(frame)))
}

func lowestY(frame []cloth.Vec3) float64 {
	if len(frame) == 0 {
		return 0
	}
	min := frame[0].Y
	for _, p := range frame {
		if p.Y < min {
			min = p.Y
		}
	}
	return min
}

func benchGrids(cmd *cobra.Command, args []string) error {
	grids := []struct{ sx, sy int }{{10, 6}, {20, 12}, {40, 24}}
	iterCounts := []int{4, 8, 16}

	fmt.Println("benchmarking cloth step")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tPARTICLES\tITERS\tSTEPS\tTIME\tSTEPS/SEC")

	for _, g := range grids {
		for _, iters := range iterCounts {
			cfg := config.DefaultConfig()
			cfg.Duration = duration
			cfg.Grid.SegmentsX = g.sx
			cfg.Grid.SegmentsY = g.sy
			cfg.Physics.Iterations = iters
			cfg.Anchors.Driver = "sway"

			exp := experiment.New(cfg)
			if err := exp.Setup(nil); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%dx%d\t%d\t%d\t%d\t%v\t%.0f\n",
				g.sx, g.sy, exp.Cloth().Grid.NumParticles(), iters,
				result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func listAvailablePresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGRID\tGRAVITY\tWIND\tANCHORS")

	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%dx%d\t%.1f\t%.1f\t%s\n",
			name, p.Grid.SegmentsX, p.Grid.SegmentsY,
			p.Physics.Gravity, p.Physics.WindStrength, p.Anchors.Driver)
	}

	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range frames[0] {
		header = append(header,
			fmt.Sprintf("p%d_x", i), fmt.Sprintf("p%d_y", i), fmt.Sprintf("p%d_z", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, frame := range frames {
		row := make([]string, 0, 1+len(frame)*3)
		row = append(row, strconv.FormatFloat(times[i], 'f', 6, 64))
		for _, p := range frame {
			row = append(row,
				strconv.FormatFloat(p.X, 'f', 6, 64),
				strconv.FormatFloat(p.Y, 'f', 6, 64),
				strconv.FormatFloat(p.Z, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	result := &sim.Result{
		Frames:     frames,
		Times:      times,
		Metrics:    meta.Metrics,
		StepsTaken: len(frames),
	}

	return storage.ExportJSON(os.Stdout, meta, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no frames to render")
	}

	idx := svgFrame
	if idx < 0 || idx >= len(frames) {
		idx = len(frames) - 1
	}

	// Rebuild the constraint topology from the recorded grid shape.
	c := cloth.New(cloth.GridParams{
		Width:     meta.Grid.Width,
		Height:    meta.Grid.Height,
		SegmentsX: meta.Grid.SegmentsX,
		SegmentsY: meta.Grid.SegmentsY,
	})
	if c.Grid.NumParticles() != len(frames[idx]) {
		return fmt.Errorf("recorded grid %dx%d does not match frame size %d",
			meta.Grid.SegmentsX, meta.Grid.SegmentsY, len(frames[idx]))
	}

	svg := export.ClothToSVG(frames[idx], c.Constraints, svgWidth, svgHeight, "#4fc3f7")

	if svgOut == "" {
		fmt.Println(svg)
		return nil
	}
	return os.WriteFile(svgOut, []byte(svg), 0644)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("anchors: %s\n\n", meta.Anchors)

	data := make([]float64, len(frames))
	for i, frame := range frames {
		data[i] = centroid(frame).X
	}

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (centroid sway)"),
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

func tuneParams(cmd *cobra.Command, args []string) error {
	base, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	gs := optim.NewGridSearch(
		[]string{"stiffness", "damping"},
		[][]float64{
			{0.7, 0.8, 0.9, 1.0},
			{0.96, 0.97, 0.98, 0.99},
		},
	)

	fmt.Println("searching stiffness x damping for minimal strain...")
	best, err := gs.Search(context.Background(), func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg := *base
		for name, v := range params {
			if err := cfg.SetParam(name, v); err != nil {
				return 0, err
			}
		}

		exp := experiment.New(&cfg)
		if err := exp.Setup(experiment.DefaultMetrics()); err != nil {
			return 0, err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return 0, err
		}
		if len(result.Errors) > 0 {
			return 0, fmt.Errorf("run diverged")
		}
		return result.Metrics["strain"], nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nbest strain: %.6f\n", best.Score)
	for name, v := range best.Params {
		fmt.Printf("  %s: %.3f\n", name, v)
	}
	return nil
}

func sweepParam(cmd *cobra.Command, args []string) error {
	base, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(context.Background(), &automation.ParameterSweep{
		Param:    args[0],
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
		Base:     base,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTRAIN\tSTABILITY\tKINETIC\n", args[0])
	strains := make([]float64, len(results))
	for i, r := range results {
		strains[i] = r.Strain
		fmt.Fprintf(w, "%.4f\t%.6f\t%.3f\t%.6f\n", r.ParamValue, r.Strain, r.Stability, r.Kinetic)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	graph := asciigraph.Plot(strains,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("strain vs %s", args[0])),
	)
	fmt.Println(graph)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	results, err := automation.RunScenario(context.Background(), scenario, st)
	if err != nil {
		return err
	}

	fmt.Println()
	for i, r := range results {
		fmt.Printf("step %d: %d steps", i+1, r.StepsTaken)
		for name, val := range r.Metrics {
			fmt.Printf("  %s=%.6f", name, val)
		}
		fmt.Println()
	}
	return nil
}
