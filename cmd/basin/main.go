package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/basin/internal/analysis"
	"github.com/san-kum/basin/internal/config"
	"github.com/san-kum/basin/internal/converge"
	"github.com/san-kum/basin/internal/field"
	"github.com/san-kum/basin/internal/metrics"
	"github.com/san-kum/basin/internal/recovery"
	"github.com/san-kum/basin/internal/signature"
	"github.com/san-kum/basin/internal/storage"
	"github.com/san-kum/basin/internal/tui"
	"github.com/san-kum/basin/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	attractors int
	dims       int
	seed       int64

	maxSteps  int
	tolerance float64
	stepSize  float64
	decay     float64

	rangeLo int
	rangeHi int
	topK    int
	workers int

	saveRun   bool
	runID     string
	evalN     int
	evalSeed  int64
	frameRate int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "basin",
		Short: "attractor convergence and curve-recovery lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".basin", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().IntVar(&attractors, "attractors", config.DefaultAttractors, "number of attractors")
	rootCmd.PersistentFlags().IntVar(&dims, "dims", config.DefaultDims, "phase space dimensionality")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", config.DefaultSeed, "field generation seed")
	rootCmd.PersistentFlags().IntVar(&maxSteps, "max-steps", config.DefaultMaxSteps, "maximum convergence steps")
	rootCmd.PersistentFlags().Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "convergence tolerance")
	rootCmd.PersistentFlags().Float64Var(&stepSize, "step-size", config.DefaultStepSize, "initial step fraction")
	rootCmd.PersistentFlags().Float64Var(&decay, "decay", config.DefaultDecay, "geometric step decay")
	rootCmd.PersistentFlags().IntVar(&rangeLo, "lo", 0, "candidate range lower bound (inclusive)")
	rootCmd.PersistentFlags().IntVar(&rangeHi, "hi", 100, "candidate range upper bound (exclusive)")
	rootCmd.PersistentFlags().IntVar(&topK, "top", config.DefaultTopK, "matches to keep")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", config.DefaultWorkers, "parallel workers")

	runCmd := &cobra.Command{
		Use:   "run [value]",
		Short: "converge a value and print its curve signature",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvergence,
	}
	runCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run to the data directory")

	recoverCmd := &cobra.Command{
		Use:   "recover [value]",
		Short: "recover a value from its curve signature",
		Args:  cobra.MaximumNArgs(1),
		RunE:  recoverValue,
	}
	recoverCmd.Flags().StringVar(&runID, "run", "", "recover from a stored run instead of a value")

	evaluateCmd := &cobra.Command{
		Use:   "evaluate",
		Short: "measure recovery rate over random inputs",
		RunE:  evaluateRecovery,
	}
	evaluateCmd.Flags().IntVar(&evalN, "n", 100, "number of sampled inputs")
	evaluateCmd.Flags().Int64Var(&evalSeed, "sample-seed", 7, "input sampling seed")

	basinCmd := &cobra.Command{
		Use:   "basin",
		Short: "map candidate inputs to their final attractors",
		RunE:  mapBasins,
	}

	sensitivityCmd := &cobra.Command{
		Use:   "sensitivity [a] [b]",
		Short: "measure curve divergence of two inputs",
		Args:  cobra.ExactArgs(2),
		RunE:  measureSensitivity,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and signature as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [value]",
		Short: "watch a value converge",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, recoverCmd, evaluateCmd, basinCmd, sensitivityCmd,
		listCmd, plotCmd, exportCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges preset, config file, and flags; flags set on the
// command line win over both.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
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

	flags := cmd.Flags()
	if flags.Changed("attractors") {
		cfg.Field.Attractors = attractors
	}
	if flags.Changed("dims") {
		cfg.Field.Dims = dims
	}
	if flags.Changed("seed") {
		cfg.Field.Seed = seed
	}
	if flags.Changed("max-steps") {
		cfg.Run.MaxSteps = maxSteps
	}
	if flags.Changed("tolerance") {
		cfg.Run.Tolerance = tolerance
	}
	if flags.Changed("step-size") {
		cfg.Run.StepSize = stepSize
	}
	if flags.Changed("decay") {
		cfg.Run.Decay = decay
	}
	if flags.Changed("lo") {
		cfg.Recovery.Lo = rangeLo
	}
	if flags.Changed("hi") {
		cfg.Recovery.Hi = rangeHi
	}
	if flags.Changed("top") {
		cfg.Recovery.TopK = topK
	}
	if flags.Changed("workers") {
		cfg.Recovery.Workers = workers
	}

	return cfg, nil
}

func buildField(cfg *config.Config) (*field.Field, error) {
	return field.New(cfg.Field.Attractors, cfg.Field.Dims, cfg.Field.Seed)
}

func runConvergence(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	f, err := buildField(cfg)
	if err != nil {
		return err
	}

	sim := converge.New(f)
	sim.AddMetric(metrics.NewPathLength())
	sim.AddMetric(metrics.NewReversals())
	sim.AddMetric(metrics.NewVelocity())

	start := time.Now()
	curve, err := sim.RunValue(context.Background(), value, cfg.PhaseConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	ext := signature.NewExtractor(cfg.Recovery.SeqLen)
	sig := ext.Extract(curve)

	fmt.Printf("%s %g -> A%d (%s, %d steps, %v)\n",
		viz.Title.Render("converged"), value, curve.FinalAttractor,
		viz.StatusLabel(curve.Converged), curve.Steps(), elapsed)

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(curve.Metrics))
	for name := range curve.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, curve.Metrics[name])
	}

	fmt.Println("\nsignature:")
	fmt.Printf("  path length:   %.4f\n", sig.PathLength)
	fmt.Printf("  reversals:     %d\n", sig.Reversals)
	fmt.Printf("  steps:         %d\n", sig.StepCount)
	fmt.Printf("  mean speed:    %.4f (var %.4f)\n", sig.MeanVelocity, sig.VelocityVariance)
	fmt.Printf("  final:         A%d\n", sig.FinalAttractor)
	fmt.Printf("  dominant runs: %v\n", sig.DominantSeq)

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(cfg.Field.Attractors, cfg.Field.Dims, cfg.Field.Seed, cfg.PhaseConfig(), curve, sig)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", id)
	}
	return nil
}

func recoverValue(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var target signature.Signature
	var f *field.Field

	switch {
	case runID != "":
		st := storage.New(dataDir)
		meta, err := st.Load(runID)
		if err != nil {
			return err
		}
		target, err = st.LoadSignature(runID)
		if err != nil {
			return err
		}
		// Recovery runs against the field the signature came from.
		f, err = field.New(meta.Attractors, meta.Dims, meta.Seed)
		if err != nil {
			return err
		}
	case len(args) == 1:
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %w", err)
		}
		f, err = buildField(cfg)
		if err != nil {
			return err
		}
		curve, err := converge.New(f).RunValue(context.Background(), value, cfg.PhaseConfig())
		if err != nil {
			return err
		}
		target = signature.NewExtractor(cfg.Recovery.SeqLen).Extract(curve)
	default:
		return fmt.Errorf("either a value argument or --run is required")
	}

	engine := recovery.NewEngine(f, recovery.Options{
		Weights: cfg.Recovery.Weights,
		SeqLen:  cfg.Recovery.SeqLen,
		TopK:    cfg.Recovery.TopK,
		Workers: cfg.Recovery.Workers,
	})

	start := time.Now()
	result, err := engine.Recover(context.Background(), target,
		recovery.IntRange{Lo: cfg.Recovery.Lo, Hi: cfg.Recovery.Hi}, cfg.PhaseConfig())
	if err != nil {
		return err
	}

	if len(result) == 0 {
		fmt.Println("no candidates evaluated")
		return nil
	}

	fmt.Printf("searched [%d,%d) in %v\n\n", cfg.Recovery.Lo, cfg.Recovery.Hi, time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tCANDIDATE\tSCORE")
	for i, m := range result {
		line := fmt.Sprintf("%d\t%g\t%.6f", i+1, m.Candidate, m.Score)
		if i == 0 {
			line = viz.TopMatch.Render(line)
		}
		fmt.Fprintln(w, line)
	}
	return w.Flush()
}

func evaluateRecovery(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	f, err := buildField(cfg)
	if err != nil {
		return err
	}

	space := recovery.IntRange{Lo: cfg.Recovery.Lo, Hi: cfg.Recovery.Hi}

	start := time.Now()
	report, err := analysis.EvaluateRecovery(context.Background(), f, cfg.PhaseConfig(),
		space, evalN, evalSeed, cfg.Recovery.Workers)
	if err != nil {
		return err
	}

	fmt.Printf("recovered %d/%d (%.0f%%) in %v\n",
		report.Recovered, report.Total, report.Rate()*100, time.Since(start))

	if len(report.Failures) > 0 {
		fmt.Println("\nmisses:")
		for _, fail := range report.Failures {
			fmt.Printf("  input %g -> top candidate %g (score %.4f)\n",
				fail.Input, fail.TopMatch, fail.Score)
		}
	}
	return nil
}

func mapBasins(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	f, err := buildField(cfg)
	if err != nil {
		return err
	}

	m, err := analysis.MapBasins(context.Background(), f, cfg.PhaseConfig(),
		recovery.IntRange{Lo: cfg.Recovery.Lo, Hi: cfg.Recovery.Hi}, cfg.Recovery.Workers)
	if err != nil {
		return err
	}

	fmt.Printf("basins over [%d,%d):\n\n", cfg.Recovery.Lo, cfg.Recovery.Hi)
	fmt.Println(viz.BasinStrip(m.Attractors))
	fmt.Println()
	for i, count := range m.Counts {
		fmt.Printf("  A%d: %d inputs\n", i, count)
	}
	if m.Unconverged > 0 {
		fmt.Printf("  %s\n", viz.NotConverged.Render(fmt.Sprintf("%d inputs hit the step cap", m.Unconverged)))
	}
	return nil
}

func measureSensitivity(cmd *cobra.Command, args []string) error {
	a, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}
	b, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	f, err := buildField(cfg)
	if err != nil {
		return err
	}

	d, err := analysis.Divergence(context.Background(), f, cfg.PhaseConfig(), a, b)
	if err != nil {
		return err
	}
	fmt.Printf("divergence(%g, %g) = %.6f\n", a, b, d)
	if d > 0 {
		fmt.Println(viz.Subtle.Render("curves separate: inputs are distinguishable by signature"))
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
	fmt.Fprintln(w, "ID\tINPUT\tTIME\tSTEPS\tFINAL\tCONVERGED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%g\t%s\t%d\tA%d\t%v\n",
			run.ID,
			run.Input,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.FinalAttractor,
			run.Converged,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	points, dominant, err := st.LoadCurve(args[0])
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("no data to plot")
	}

	f, err := field.New(meta.Attractors, meta.Dims, meta.Seed)
	if err != nil {
		return err
	}

	curve := &converge.Curve{
		Origin:         meta.Input,
		Points:         points,
		Dominant:       dominant,
		FinalAttractor: meta.FinalAttractor,
		Converged:      meta.Converged,
	}

	fmt.Printf("run: %s  input: %g  %s\n\n", meta.ID, meta.Input, viz.StatusLabel(meta.Converged))
	fmt.Println(viz.TrajectoryPlot(curve.Points, f.Positions(), 60, 18))
	fmt.Println(viz.VelocityProfile(curve, 70))
	fmt.Println()
	fmt.Println(viz.DominantProfile(curve, 70))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	sig, err := st.LoadSignature(args[0])
	if err != nil {
		return err
	}

	out := struct {
		Meta      *storage.RunMetadata `json:"meta"`
		Signature []float64            `json:"signature"`
	}{Meta: meta, Signature: sig.Vector()}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runLive(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	f, err := buildField(cfg)
	if err != nil {
		return err
	}

	curve, err := converge.New(f).RunValue(context.Background(), value, cfg.PhaseConfig())
	if err != nil {
		return err
	}
	return tui.Run(curve, f.Positions(), frameRate)
}
