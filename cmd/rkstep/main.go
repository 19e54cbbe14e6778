package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/san-kum/rkstep/internal/compare"
	"github.com/san-kum/rkstep/internal/config"
	"github.com/san-kum/rkstep/internal/dynamo"
	"github.com/san-kum/rkstep/internal/experiment"
	"github.com/san-kum/rkstep/internal/logging"
	"github.com/san-kum/rkstep/internal/metrics"
	"github.com/san-kum/rkstep/internal/rk"
	"github.com/san-kum/rkstep/internal/storage"
	"github.com/san-kum/rkstep/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	method     string
	engine     string
	h          float64
	steps      int
	preset     string
	showProm   bool
	noSave     bool
	theme      string

	logger = zerolog.Nop()
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "rkstep",
		Short:        "explicit Runge-Kutta stepping lab",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(cmd.ErrOrStderr(), logLevel, true)
			if err != nil {
				return fmt.Errorf("%w: %w", config.ErrInvalid, err)
			}
			logger = l
			viz.SetTheme(theme)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rkstep", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "default", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list built-in tableaus",
		RunE:  listMethods,
	}

	inspectCmd := &cobra.Command{
		Use:   "inspect [method]",
		Short: "show the sparsity analysis of a tableau",
		Args:  cobra.MaximumNArgs(1),
		RunE:  inspectMethod,
	}
	inspectCmd.Flags().StringVar(&configFile, "config", "", "config file with an inline tableau (yaml)")

	runCmd := &cobra.Command{
		Use:   "run [problem]",
		Short: "integrate a problem and store the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runProblem,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [problem] [method1] [method2] ...",
		Short: "compare methods and engines on the same problem",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareMethods,
	}
	compareCmd.Flags().Float64Var(&h, "h", config.DefaultH, "step size")
	compareCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	compareCmd.Flags().BoolVar(&showProm, "metrics", false, "print Prometheus metrics after the runs")

	liveCmd := &cobra.Command{
		Use:   "live [problem]",
		Short: "step a problem with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [problem]",
		Short: "list available presets for a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Fprintf(out, "no presets for problem: %s\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "presets for %s:\n", args[0])
			for _, p := range presets {
				cfg := config.GetPreset(args[0], p)
				fmt.Fprintf(out, "  %-12s %s, h=%g, steps=%d\n", p, cfg.MethodName(), cfg.H, cfg.Steps)
			}
			return nil
		},
	}

	rootCmd.AddCommand(methodsCmd, inspectCmd, runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, compareCmd, liveCmd, presetsCmd)
	return rootCmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&method, "method", config.DefaultMethod, "tableau name")
	cmd.Flags().StringVar(&engine, "engine", config.DefaultEngine, "stepping engine (generic, specialized)")
	cmd.Flags().Float64Var(&h, "h", config.DefaultH, "step size")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().BoolVar(&showProm, "metrics", false, "print Prometheus metrics after the run")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Problem = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Problem, preset)
		if p == nil {
			return nil, fmt.Errorf("%w: unknown preset %s (available: %v)", config.ErrInvalid, preset, config.ListPresets(cfg.Problem))
		}
		cp := *p
		cfg = &cp
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to load config: %w", config.ErrInvalid, err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Problem = args[0]
		}
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Method = method
		cfg.Tableau = nil
	}
	if flags.Changed("engine") {
		cfg.Engine = engine
	}
	if flags.Changed("h") {
		cfg.H = h
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	return cfg, cfg.Validate()
}

func listMethods(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tSTAGES\tEVALUATED\tRECORDED\tBUFFER")
	for _, name := range registry.ListMethods() {
		tab, err := registry.GetMethod(name)
		if err != nil {
			return err
		}
		sp := tab.Sparsity()
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
			name,
			tab.Stages(),
			tab.Stages()-sp.Skipped(),
			sp.NeedKNum,
			tab.KBufferSize(),
		)
	}
	return w.Flush()
}

func inspectMethod(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("%w: failed to load config: %w", config.ErrInvalid, err)
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Method = args[0]
		cfg.Tableau = nil
	}

	tab, err := cfg.BuildTableau()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), viz.SparsityReport(tab))
	return nil
}

func runProblem(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry(), logger); err != nil {
		return err
	}
	exp.GetSimulator().AddObserver(logging.NewStepObserver(logger, max(1, cfg.Steps/20)))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "running %s with %s (%s engine)...\n", cfg.Problem, cfg.MethodName(), cfg.Engine)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, e := range result.Errors {
		logger.Warn().Err(e).Msg("run stopped early")
	}

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(exp.Metadata(), result)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run id: %s\n", runID)
	}

	x, y := result.Final()
	fmt.Fprintf(out, "steps: %d\n", result.StepsTaken)
	fmt.Fprintf(out, "evaluations: %d\n", result.Evaluations)
	fmt.Fprintf(out, "y(%g) = %.12g (exact %.12g)\n", x, y, exp.Problem().Exact(x))
	fmt.Fprintln(out, "\nmetrics:")
	for _, name := range sortedMetricNames(result.Metrics) {
		fmt.Fprintf(out, "  %s: %.6g\n", name, result.Metrics[name])
	}

	if showProm {
		c := metrics.NewCollector()
		c.Observe(cfg.MethodName(), cfg.Engine, result)
		fmt.Fprintln(out)
		return c.WriteText(out)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROBLEM\tMETHOD\tENGINE\tTIME\tH\tSTEPS\tEVALS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%g\t%d\t%d\n",
			run.ID,
			run.Problem,
			run.Method,
			run.Engine,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.H,
			run.Steps,
			run.Evaluations,
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

	xs, ys, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(ys) == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "problem: %s, method: %s\n", meta.Problem, meta.Method)
	fmt.Fprintf(out, "samples: %d\n\n", len(ys))

	caption := fmt.Sprintf("y vs x (%g..%g)", xs[0], xs[len(xs)-1])
	registry := experiment.NewRegistry()
	if p, err := registry.GetProblem(meta.Problem); err == nil {
		p.SetInitial(meta.X0, meta.Y0)
		exact := make([]float64, len(xs))
		for i, x := range xs {
			exact[i] = p.Exact(x)
		}
		fmt.Fprintln(out, viz.PlotAgainst(ys, exact, caption+", exact in default color"))
		return nil
	}
	fmt.Fprintln(out, viz.Plot(ys, caption))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	xs, ys, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(cmd.OutOrStdout(), *meta, xs, ys)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	xs, ys, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	if len(ys) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteCSV(cmd.OutOrStdout(), xs, ys)
}

type comparison struct {
	method string
	engine string
	stages int
	live   int
}

// compareMethods runs every method under both engines concurrently and
// reports how far each lands from the exact solution.
func compareMethods(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	problem, err := registry.GetProblem(args[0])
	if err != nil {
		return err
	}
	x0, y0 := problem.Initial()
	cfg := dynamo.Config{H: h, Steps: steps, ValidateState: true}

	ensemble := dynamo.NewEnsemble(0)
	var runs []comparison
	for _, name := range args[1:] {
		tab, err := registry.GetMethod(name)
		if err != nil {
			return err
		}
		for _, eng := range registry.ListEngines() {
			stepper, err := registry.Engine(eng, tab)
			if err != nil {
				return err
			}
			// Each job gets its own problem instance and simulator.
			p, _ := registry.GetProblem(args[0])
			sim := dynamo.New(p, stepper).WithLogger(logger)
			for _, m := range registry.DefaultMetrics(p) {
				sim.AddMetric(m)
			}
			if err := ensemble.Add(dynamo.Job{Name: name + "/" + eng, Sim: sim, X0: x0, Y0: y0}); err != nil {
				return err
			}
			live := tab.Stages()
			if s, ok := stepper.(*rk.Static[float64]); ok {
				live = len(s.Live())
			}
			runs = append(runs, comparison{method: name, engine: eng, stages: tab.Stages(), live: live})
		}
	}

	results, err := ensemble.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	collector := metrics.NewCollector()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing methods for %s (h=%g, steps=%d)\n\n", problem.Name(), h, steps)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tENGINE\tSTAGES\tLIVE\tEVALS\tFINAL_Y\tMAX_REL\tMAX_ABS\tRMS_ABS")
	for i, r := range results {
		c := runs[i]
		exact := make([]float64, len(r.Xs))
		for j, x := range r.Xs {
			exact[j] = problem.Exact(x)
		}
		_, y := r.Final()
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.10g\t%.3e\t%.3e\t%.3e\n",
			c.method,
			c.engine,
			c.stages,
			c.live,
			r.Evaluations,
			y,
			r.Metrics["max_relative_error"],
			compare.Diff(compare.Max, false, exact, r.Ys),
			compare.Diff(compare.RMS, false, exact, r.Ys),
		)
		collector.Observe(c.method, c.engine, r)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if showProm {
		fmt.Fprintln(out)
		return collector.WriteText(out)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry(), zerolog.Nop()); err != nil {
		return err
	}

	x0, y0 := exp.Initial()
	title := fmt.Sprintf("%s / %s (%s)", cfg.Problem, cfg.MethodName(), cfg.Engine)
	m := viz.NewLiveModel(exp.GetSimulator(), exp.Problem().Exact, title, x0, y0, cfg.H, cfg.Steps)
	return viz.RunLive(m)
}
