package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/steerlab/internal/config"
	"github.com/san-kum/steerlab/internal/metrics"
	"github.com/san-kum/steerlab/internal/optim"
	"github.com/san-kum/steerlab/internal/sim"
	"github.com/san-kum/steerlab/internal/steer"
	"github.com/san-kum/steerlab/internal/storage"
	"github.com/san-kum/steerlab/internal/viz"
)

var (
	dataDir string

	// Run parameters.
	cycles        int
	dt            float64
	seed          int64
	initialOffset float64

	// Engine tuning.
	kp          float64
	kd          float64
	maxDistance float64
	idealX      float64
	centerY     float64
	limit       float64
	slack       float64

	// Camera model.
	rows        int
	rowSpacing  float64
	noiseStd    float64
	outlierRate float64
	dropoutRate float64

	// Vehicle model.
	speed   float64
	yawGain float64

	// Config file and preset.
	configFile string
	preset     string

	// Live view frame rate.
	frameRate int

	// Tuning grid.
	kpMin, kpMax float64
	kdMin, kdMax float64
	gridSteps    int
	tuneMetric   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "steerlab",
		Short: "lane-keeping steering control lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".steerlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [track]",
		Short: "run a closed-loop steering simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [track]",
		Short: "watch the loop run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frames per second")

	tuneCmd := &cobra.Command{
		Use:   "tune [track]",
		Short: "grid-search kp/kd over closed-loop runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runTune,
	}
	addRunFlags(tuneCmd)
	tuneCmd.Flags().Float64Var(&kpMin, "kp-min", 0.05, "grid lower bound for kp")
	tuneCmd.Flags().Float64Var(&kpMax, "kp-max", 0.5, "grid upper bound for kp")
	tuneCmd.Flags().Float64Var(&kdMin, "kd-min", 0.2, "grid lower bound for kd")
	tuneCmd.Flags().Float64Var(&kdMax, "kd-max", 2.0, "grid upper bound for kd")
	tuneCmd.Flags().IntVar(&gridSteps, "steps", 8, "grid points per parameter")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "centering_rms", "metric to minimize")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [track]",
		Short: "list presets for a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if names == nil {
				return fmt.Errorf("no presets for track: %s", args[0])
			}
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, tuneCmd, listCmd, plotCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&cycles, "cycles", config.DefaultCycles, "control cycles to run")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "cycle period in seconds")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&initialOffset, "offset", 1.0, "initial lateral offset")

	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "proportional gain")
	cmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "derivative (slope) gain")
	cmd.Flags().Float64Var(&maxDistance, "max-distance", 0.5, "outlier residual threshold")
	cmd.Flags().Float64Var(&idealX, "ideal-x", 0, "ideal road-center position")
	cmd.Flags().Float64Var(&centerY, "center-y", 7, "scan row for the lateral error")
	cmd.Flags().Float64Var(&limit, "limit", config.DefaultLimit, "steering magnitude limit")
	cmd.Flags().Float64Var(&slack, "slack", 0, "backlash slack width")

	cmd.Flags().IntVar(&rows, "rows", 8, "camera scan rows")
	cmd.Flags().Float64Var(&rowSpacing, "row-spacing", 0.5, "world distance between rows")
	cmd.Flags().Float64Var(&noiseStd, "noise", 0.05, "perception noise stddev")
	cmd.Flags().Float64Var(&outlierRate, "outliers", 0.05, "outlier probability per sample")
	cmd.Flags().Float64Var(&dropoutRate, "dropouts", 0, "row dropout probability")

	cmd.Flags().Float64Var(&speed, "speed", 1.0, "vehicle speed")
	cmd.Flags().Float64Var(&yawGain, "yaw-gain", 1.0, "heading rate per command unit")

	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves the effective configuration: preset, then config
// file, then explicit flags on top.
func buildConfig(cmd *cobra.Command, track string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Track = track

	if preset != "" {
		p := config.GetPreset(track, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(track))
		}
		*cfg = *p
		cfg.Track = track
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
		cfg.Track = track
	}

	flags := cmd.Flags()
	if flags.Changed("cycles") {
		cfg.Cycles = cycles
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("offset") {
		cfg.InitialOffset = initialOffset
	}
	if flags.Changed("kp") {
		cfg.Engine.Kp = kp
	}
	if flags.Changed("kd") {
		cfg.Engine.Kd = kd
	}
	if flags.Changed("max-distance") {
		cfg.Engine.MaxLineDistance = maxDistance
	}
	if flags.Changed("ideal-x") {
		cfg.Engine.IdealCenterX = idealX
	}
	if flags.Changed("center-y") {
		cfg.Engine.CenterY = centerY
	}
	if flags.Changed("limit") {
		cfg.Engine.Limit = limit
	}
	if flags.Changed("slack") {
		cfg.Engine.Slack = slack
	}
	if flags.Changed("rows") {
		cfg.Camera.Rows = rows
	}
	if flags.Changed("row-spacing") {
		cfg.Camera.RowSpacing = rowSpacing
	}
	if flags.Changed("noise") {
		cfg.Camera.NoiseStd = noiseStd
	}
	if flags.Changed("outliers") {
		cfg.Camera.OutlierRate = outlierRate
	}
	if flags.Changed("dropouts") {
		cfg.Camera.DropoutRate = dropoutRate
	}
	if flags.Changed("speed") {
		cfg.Vehicle.Speed = speed
	}
	if flags.Changed("yaw-gain") {
		cfg.Vehicle.YawGain = yawGain
	}

	return cfg, nil
}

func buildRunner(cfg *config.Config) (*sim.Runner, error) {
	engine, err := steer.NewEngine(cfg.EngineParams())
	if err != nil {
		return nil, err
	}
	track, err := sim.GetTrack(cfg.Track)
	if err != nil {
		return nil, err
	}
	return sim.New(engine, track, cfg.CameraModel(), cfg.VehicleModel()), nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	runner, err := buildRunner(cfg)
	if err != nil {
		return err
	}
	runner.AddMetric(metrics.NewCentering())
	runner.AddMetric(metrics.NewControlEffort())
	runner.AddMetric(metrics.NewReversals())
	runner.AddMetric(metrics.NewOffTrack(1.0))

	fmt.Printf("running %s...\n", cfg.Track)
	start := time.Now()

	result, err := runner.Run(context.Background(), cfg.RunConfig())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.RunMetadata{
		Track:  cfg.Track,
		Seed:   cfg.Seed,
		Cycles: cfg.Cycles,
		Dt:     cfg.Dt,
		Kp:     cfg.Engine.Kp,
		Kd:     cfg.Engine.Kd,
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("cycles: %d (dropouts: %d)\n", len(result.Times), result.Dropouts)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	runner, err := buildRunner(cfg)
	if err != nil {
		return err
	}
	stepper, err := runner.Stepper(cfg.RunConfig())
	if err != nil {
		return err
	}

	model := viz.NewLive(stepper, cfg.Track, frameRate, cfg.Cycles)
	_, err = tea.NewProgram(model).Run()
	return err
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	search := optim.NewGridSearch(
		[]string{"kp", "kd"},
		[][]float64{
			gridRange(kpMin, kpMax, gridSteps),
			gridRange(kdMin, kdMax, gridSteps),
		},
	)

	evaluate := func(ctx context.Context, params map[string]float64) (float64, error) {
		candidate := *cfg
		candidate.Engine.Kp = params["kp"]
		candidate.Engine.Kd = params["kd"]

		runner, err := buildRunner(&candidate)
		if err != nil {
			return 0, err
		}
		runner.AddMetric(metrics.NewCentering())
		runner.AddMetric(metrics.NewControlEffort())
		runner.AddMetric(metrics.NewReversals())
		runner.AddMetric(metrics.NewOffTrack(1.0))

		result, err := runner.Run(ctx, candidate.RunConfig())
		if err != nil {
			return 0, err
		}
		val, ok := result.Metrics[tuneMetric]
		if !ok {
			return 0, fmt.Errorf("unknown metric: %s", tuneMetric)
		}
		return val, nil
	}

	fmt.Printf("tuning %s over a %dx%d grid (%s)...\n", cfg.Track, gridSteps, gridSteps, tuneMetric)
	start := time.Now()

	params, score, err := search.Search(context.Background(), evaluate)
	if err != nil {
		return err
	}
	if params == nil {
		return fmt.Errorf("no grid candidate produced a valid run")
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("best kp: %.4f\n", params["kp"])
	fmt.Printf("best kd: %.4f\n", params["kd"])
	fmt.Printf("%s: %.6f\n", tuneMetric, score)

	return nil
}

func gridRange(min, max float64, steps int) []float64 {
	if steps < 2 {
		return []float64{min}
	}
	vals := make([]float64, steps)
	for i := range vals {
		vals[i] = min + (max-min)*float64(i)/float64(steps-1)
	}
	return vals
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

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTRACK\tCYCLES\tKP\tKD\tCENTERING\tWHEN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%.3f\t%.4f\t%s\n",
			run.ID, run.Track, run.Cycles, run.Kp, run.Kd,
			run.Metrics["centering_rms"],
			run.Timestamp.Format(time.RFC3339),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	result, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.PlotRun(result))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	out := struct {
		Meta  *storage.RunMetadata `json:"meta"`
		Trace *sim.Result          `json:"trace"`
	}{meta, result}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
