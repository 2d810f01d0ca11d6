package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/splashsim/internal/analysis"
	"github.com/san-kum/splashsim/internal/automation"
	"github.com/san-kum/splashsim/internal/config"
	"github.com/san-kum/splashsim/internal/dynamo"
	"github.com/san-kum/splashsim/internal/experiment"
	"github.com/san-kum/splashsim/internal/export"
	"github.com/san-kum/splashsim/internal/metrics"
	"github.com/san-kum/splashsim/internal/optim"
	"github.com/san-kum/splashsim/internal/sim"
	"github.com/san-kum/splashsim/internal/trajectory"
	"github.com/san-kum/splashsim/internal/viz"
)

var (
	configFile string
	preset     string
	dumpConfig bool
	verbose    bool

	mass          float64
	radius        float64
	angle         float64
	speed         float64
	initHeight    float64
	dragScale     float64
	buoyancyScale float64

	dt         float64
	duration   float64
	seed       int64
	integrator string
	stabilizer string
	theme      string

	showPhase   bool
	svgWidth    int
	svgHeight   int
	sweepParam  string
	sweepValues []float64
	trials      int
	angleJitter float64
	speedJitter float64
	angleSteps  int
	target      float64

	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "splashsim",
		Short:             "projectile and water splash simulator",
		SilenceUsage:      true,
		PersistentPreRunE: resolveConfig,
		RunE:              withConfig(runLive),
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVar(&dumpConfig, "dump-config", false, "print the resolved config as yaml and exit")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	d := sim.DefaultParams()
	pf.Float64Var(&mass, "mass", d.Mass, "body mass (kg)")
	pf.Float64Var(&radius, "radius", d.Radius, "body radius (m)")
	pf.Float64Var(&angle, "angle", d.AngleDeg, "launch angle (degrees, 0..90)")
	pf.Float64Var(&speed, "speed", d.Speed, "launch speed (m/s)")
	pf.Float64Var(&initHeight, "init-height", d.InitHeight, "launch height (m)")
	pf.Float64Var(&dragScale, "drag", d.DragScale, "drag scale")
	pf.Float64Var(&buoyancyScale, "buoyancy", d.BuoyancyScale, "air buoyancy scale")

	pf.Float64Var(&dt, "dt", config.DefaultDt, "fixed timestep for headless runs")
	pf.Float64Var(&duration, "time", config.DefaultDuration, "duration (s)")
	pf.Int64Var(&seed, "seed", config.DefaultSeed, "random seed for effects")
	pf.StringVar(&integrator, "integrator", experiment.DefaultIntegrator, "integrator")
	pf.StringVar(&stabilizer, "stabilizer", experiment.DefaultStabilizer, "floating stabilizer")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		RunE:  withConfig(runLive),
	}
	liveCmd.Flags().StringVar(&theme, "theme", viz.ThemeOcean.Name, "color theme")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "throw once headless and report metrics",
		RunE:  withConfig(runHeadless),
	}
	runCmd.Flags().BoolVar(&showPhase, "phase", false, "print the height/velocity phase portrait after entry")

	predictCmd := &cobra.Command{
		Use:   "predict",
		Short: "preview the flight arc",
		RunE:  withConfig(runPredict),
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "show derived body readouts",
		RunE:  withConfig(runInfo),
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "%s\t%s\n", name, config.Presets[name].Description)
			}
			return w.Flush()
		},
	}

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "render the predicted and recorded paths as SVG to stdout",
		RunE:  withConfig(runSVG),
	}
	svgCmd.Flags().IntVar(&svgWidth, "width", 960, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 480, "image height")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the same throw over several values of one parameter",
		RunE:  withConfig(runSweep),
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", sim.ParamMass, "parameter to vary")
	sweepCmd.Flags().Float64SliceVar(&sweepValues, "values", []float64{20, 67.9, 113.1, 250, 452.4}, "values to compare")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of throws from yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withConfig(func(cmd *cobra.Command) error { return runScenario(cmd, args[0]) })(cmd, args)
		},
	}

	dispersionCmd := &cobra.Command{
		Use:   "dispersion",
		Short: "jitter angle and speed to estimate the landing spread",
		RunE:  withConfig(runDispersion),
	}
	dispersionCmd.Flags().IntVar(&trials, "trials", 50, "number of throws")
	dispersionCmd.Flags().Float64Var(&angleJitter, "angle-jitter", 3, "max angle change (degrees)")
	dispersionCmd.Flags().Float64Var(&speedJitter, "speed-jitter", 1, "max speed change (m/s)")

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "search the launch angle for the longest or a target range",
		RunE:  withConfig(runOptimize),
	}
	optimizeCmd.Flags().IntVar(&angleSteps, "steps", 91, "angles to evaluate between 0 and 90")
	optimizeCmd.Flags().Float64Var(&target, "target", 0, "target range (m), 0 maximises range")

	rootCmd.AddCommand(liveCmd, runCmd, predictCmd, infoCmd, presetsCmd, svgCmd, sweepCmd, scenarioCmd, dispersionCmd, optimizeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and changed flags.
func resolveConfig(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg = config.DefaultConfig()
	if preset != "" {
		if err := config.ApplyPreset(cfg, preset); err != nil {
			return fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
	}
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Overlay(data); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	override := func(name string, dst *float64, v float64) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("mass", &cfg.Params.Mass, mass)
	override("radius", &cfg.Params.Radius, radius)
	override("angle", &cfg.Params.Angle, angle)
	override("speed", &cfg.Params.Speed, speed)
	override("init-height", &cfg.Params.InitHeight, initHeight)
	override("drag", &cfg.Params.DragScale, dragScale)
	override("buoyancy", &cfg.Params.BuoyancyScale, buoyancyScale)
	override("dt", &cfg.Run.Dt, dt)
	override("time", &cfg.Run.Duration, duration)
	if flags.Changed("seed") {
		cfg.Run.Seed = seed
	}
	if flags.Changed("integrator") {
		cfg.Run.Integrator = integrator
	}
	if flags.Changed("stabilizer") {
		cfg.Run.Stabilizer = stabilizer
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.Debug("config resolved", "preset", preset, "file", configFile, "mass", cfg.Params.Mass, "angle", cfg.Params.Angle)
	return nil
}

// withConfig short-circuits a command when --dump-config is set.
func withConfig(fn func(cmd *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if dumpConfig {
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		}
		return fn(cmd)
	}
}

func newSimulation(reg *experiment.Registry) (*sim.Simulation, error) {
	opts, err := cfg.SimOptions(reg)
	if err != nil {
		return nil, err
	}
	p := cfg.Params.ToParams()
	opts = append(opts, sim.WithLogger(logger), sim.WithDefaults(p))
	return sim.New(p, opts...)
}

func runLive(cmd *cobra.Command) error {
	reg := experiment.NewRegistry()
	s, err := newSimulation(reg)
	if err != nil {
		return err
	}
	for _, m := range metrics.Standard(s.Environment()) {
		s.AddMetric(m)
	}
	viz.SetTheme(theme)

	p := tea.NewProgram(viz.NewModel(s, "splashsim"), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runHeadless(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	reg := experiment.NewRegistry()
	ecfg := cfg.Experiment()
	exp := experiment.New(ecfg)
	if err := exp.Setup(reg, logger, reg.DefaultMetrics(ecfg.Env)); err != nil {
		return err
	}

	result, err := exp.Run(ctx)
	if result == nil {
		return err
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "run stopped early: %v\n", err)
	}

	if len(result.Heights) > 1 {
		graph := asciigraph.Plot(downsample(result.Heights, 80),
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("height (m) vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "steps\t%d\n", result.Steps)
	fmt.Fprintf(w, "final\t%s (%s)\n", sim.Status(exp.Simulation().State()), result.Regime)
	fmt.Fprintf(w, "position\t(%.2f, %.2f)\n", result.Final.Position[0], result.Final.Position[1])
	if result.EntryTime >= 0 {
		fmt.Fprintf(w, "entry\t%.2fs\n", result.EntryTime)
	} else {
		fmt.Fprintf(w, "entry\tnever\n")
	}
	if result.BobFrequency > 0 {
		fmt.Fprintf(w, "bob frequency\t%.3f Hz\n", result.BobFrequency)
	}
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Fprintf(w, "%s\t%.4f\n", name, result.Metrics[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if showPhase && result.EntryTime >= 0 {
		fmt.Println("\nphase portrait (height vs vertical velocity) after entry:")
		fmt.Print(analysis.PhasePortraitToASCII(result.Trace.Since(result.EntryTime), 60, 20))
	}
	return err
}

func runPredict(cmd *cobra.Command) error {
	pred := trajectory.NewPredictor(cfg.Env()).Predict(cfg.Params.ToParams().Launch())

	heights := make([]float64, len(pred.Points))
	for i, p := range pred.Points {
		heights[i] = p[1]
	}
	if len(heights) > 1 {
		fmt.Println(asciigraph.Plot(downsample(heights, 80),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("predicted height (m)"),
		))
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "range\t%.2f m\n", pred.Range)
	fmt.Fprintf(w, "apex\t%.2f m\n", pred.Apex)
	fmt.Fprintf(w, "flight\t%.2f s\n", float64(pred.Steps)*trajectory.PredictStep)
	fmt.Fprintf(w, "points\t%d\n", len(pred.Points))
	return w.Flush()
}

func runInfo(cmd *cobra.Command) error {
	reg := experiment.NewRegistry()
	s, err := newSimulation(reg)
	if err != nil {
		return err
	}
	r := s.Readouts()
	env := s.Environment()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "mass\t%.2f kg\n", cfg.Params.Mass)
	fmt.Fprintf(w, "radius\t%.3f m\n", cfg.Params.Radius)
	fmt.Fprintf(w, "density\t%.1f kg/m³\n", r.Density)
	fmt.Fprintf(w, "class\t%s\n", r.Class)
	fmt.Fprintf(w, "in water\t%s\n", dynamo.ClassifyRegime(r.Density, env.WaterDensity))
	fmt.Fprintf(w, "ballistic coefficient\t%.2f kg/m²\n", r.BallisticCoefficient)
	fmt.Fprintf(w, "integrator\t%s\n", s.Integrator().Name())
	fmt.Fprintf(w, "stabilizer\t%s\n", s.Stabilizer().Name())
	fmt.Fprintf(w, "integrators\t%v\n", reg.ListIntegrators())
	fmt.Fprintf(w, "stabilizers\t%v\n", reg.ListStabilizers())
	return w.Flush()
}

func runSVG(cmd *cobra.Command) error {
	reg := experiment.NewRegistry()
	s, err := newSimulation(reg)
	if err != nil {
		return err
	}

	s.Tick(0)
	var predicted []dynamo.Vec3
	if pred := s.Prediction(); pred != nil {
		predicted = pred.Points
	}

	s.Enqueue(sim.Throw{})
	steps := int(math.Round(cfg.Run.Duration / cfg.Run.Dt))
	for i := 0; i < steps && s.State().Thrown; i++ {
		s.Tick(cfg.Run.Dt)
	}

	body := s.Body()
	_, err = fmt.Print(export.SceneToSVG(export.Scene{
		Prediction:   predicted,
		History:      s.History().Points(),
		Body:         &body,
		Waves:        s.Waves(),
		Time:         s.State().Time,
		Floor:        s.Environment().FloorHeight,
		WaterDensity: s.Environment().WaterDensity,
	}, svgWidth, svgHeight))
	return err
}

func runSweep(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sweep := &automation.ParameterSweep{Param: sweepParam, Values: sweepValues}
	results, err := automation.RunSweep(ctx, sweep, cfg.Experiment(), experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tDENSITY\tCLASS\tFINAL\tENTRY X\tDEPTH\tSETTLE\tSPLASHES\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		p := r.Config.Params
		density := p.Density()
		fmt.Fprintf(w, "%.2f\t%.0f\t%s\t%s\t%.2f\t%.2f\t%s\t%.0f\n",
			r.ParamValue,
			density,
			dynamo.ClassifyDensity(density, r.Config.Env.WaterDensity),
			r.Result.Phase,
			r.Result.Metrics["entry_range"],
			r.Result.Metrics["max_depth"],
			settleText(r.Result.Metrics["settle_time"]),
			r.Result.Metrics["splash_count"],
		)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, path string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sc, err := automation.LoadScenario(path)
	if err != nil {
		return err
	}
	if sc.Description != "" {
		fmt.Printf("%s: %s\n\n", sc.Name, sc.Description)
	}

	results, runErr := automation.RunScenario(ctx, sc, cfg, experiment.NewRegistry(), logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THROW\tMASS\tANGLE\tSPEED\tFINAL\tENTRY X\tPEAK\tSETTLE")
	for _, r := range results {
		p := r.Config.Params
		fmt.Fprintf(w, "%s\t%.1f\t%.0f\t%.1f\t%s\t%.2f\t%.2f\t%s\n",
			r.Label, p.Mass, p.AngleDeg, p.Speed,
			r.Result.Phase,
			r.Result.Metrics["entry_range"],
			r.Result.Metrics["peak_speed"],
			settleText(r.Result.Metrics["settle_time"]),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func runDispersion(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	mc := &automation.MonteCarloConfig{
		Base:        cfg.Experiment(),
		AngleJitter: angleJitter,
		SpeedJitter: speedJitter,
		Trials:      trials,
		Seed:        cfg.Run.Seed,
	}
	d, err := automation.RunMonteCarlo(ctx, mc, experiment.NewRegistry(), logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "trials\t%d\n", len(d.Trials))
	fmt.Fprintf(w, "entered water\t%d\n", d.Entered)
	if d.Entered > 0 {
		fmt.Fprintf(w, "entry x mean\t%.2f m\n", d.Mean)
		fmt.Fprintf(w, "entry x stddev\t%.2f m\n", d.StdDev)
		fmt.Fprintf(w, "entry x range\t%.2f .. %.2f m\n", d.Min, d.Max)
	}
	return w.Flush()
}

func settleText(v float64) string {
	if v < 0 {
		return "never"
	}
	return fmt.Sprintf("%.2fs", v)
}

func runOptimize(cmd *cobra.Command) error {
	predictor := trajectory.NewPredictor(cfg.Env())
	objective := func(ctx context.Context, p sim.Params) (float64, error) {
		r := predictor.Predict(p.Launch()).Range
		if target > 0 {
			return math.Abs(r - target), nil
		}
		return -r, nil
	}

	gs := optim.NewGridSearch([]string{sim.ParamAngle}, [][]float64{optim.Linspace(0, 90, angleSteps)})
	best, score, err := gs.Search(cmd.Context(), cfg.Params.ToParams(), objective)
	if err != nil {
		return err
	}

	r := predictor.Predict(best.Launch()).Range
	fmt.Printf("best angle: %.1f°\n", best.AngleDeg)
	fmt.Printf("range: %.2f m\n", r)
	if target > 0 {
		fmt.Printf("miss: %.2f m\n", score)
	}
	return nil
}

// downsample keeps at most n evenly spaced samples for plotting.
func downsample(v []float64, n int) []float64 {
	if len(v) <= n {
		return v
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = v[i*(len(v)-1)/(n-1)]
	}
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
