package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/echem-lab/echemsim/internal/analysis"
	"github.com/echem-lab/echemsim/internal/config"
	"github.com/echem-lab/echemsim/internal/series"
	"github.com/echem-lab/echemsim/internal/simulate"
	"github.com/echem-lab/echemsim/internal/storage"
	"github.com/echem-lab/echemsim/internal/technique"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	speed      float64
	save       bool
	noPlot     bool

	// Technique parameter flags; only flags the caller actually set
	// are forwarded, so each technique keeps its own schema defaults.
	startPotential float64
	endPotential   float64
	scanRate       float64
	stepPotential  float64
	pulseAmplitude float64
	startFreq      float64
	endFreq        float64
	acAmplitude    float64
	area           float64
	temperature    float64
	duration       float64
	noise          float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "echemsim",
		Short: "electroanalytical technique simulation and analysis lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".echemsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [technique]",
		Short: "simulate a full measurement and analyze it",
		Args:  cobra.ExactArgs(1),
		RunE:  runTechnique,
	}
	addParameterFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [technique]",
		Short: "run a simulation paced in real time with a live plot",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addParameterFlags(liveCmd)

	techniquesCmd := &cobra.Command{
		Use:   "techniques",
		Short: "list the technique catalogue",
		RunE:  listTechniques,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [technique]",
		Short: "list presets for a technique",
		Args:  cobra.ExactArgs(1),
		RunE:  listPresetsCmd,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "re-run the analysis over a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(runCmd, liveCmd, techniquesCmd, presetsCmd, listCmd, analyzeCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParameterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "run config file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().Float64Var(&speed, "speed", 1.0, "simulated-time speed multiplier")
	cmd.Flags().BoolVar(&save, "save", false, "persist the completed run")
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the terminal plot")

	cmd.Flags().Float64Var(&startPotential, "start", -0.5, "start potential (V)")
	cmd.Flags().Float64Var(&endPotential, "end", 0.5, "end potential (V)")
	cmd.Flags().Float64Var(&scanRate, "scan-rate", 0.05, "scan rate (V/s)")
	cmd.Flags().Float64Var(&stepPotential, "step-potential", 0.005, "step potential (V)")
	cmd.Flags().Float64Var(&pulseAmplitude, "pulse-amplitude", 0.05, "pulse amplitude (V)")
	cmd.Flags().Float64Var(&startFreq, "start-freq", 1e5, "start frequency (Hz)")
	cmd.Flags().Float64Var(&endFreq, "end-freq", 0.1, "end frequency (Hz)")
	cmd.Flags().Float64Var(&acAmplitude, "ac-amplitude", 0.01, "AC excitation amplitude (V)")
	cmd.Flags().Float64Var(&area, "area", 1.0, "electrode area (cm2)")
	cmd.Flags().Float64Var(&temperature, "temperature", 25.0, "temperature (C)")
	cmd.Flags().Float64Var(&duration, "duration", 60.0, "step duration (s, chronoamperometry)")
	cmd.Flags().Float64Var(&noise, "noise", 0.02, "relative noise level")
}

// buildConfig merges config file, preset and explicitly set flags into
// one run description, in that order of precedence.
func buildConfig(cmd *cobra.Command, techniqueID string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Technique = techniqueID

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		p := config.GetPreset(techniqueID, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for technique %s", preset, techniqueID)
		}
		cfg = p
	}
	cfg.Technique = techniqueID
	if cfg.Parameters == nil {
		cfg.Parameters = map[string]float64{}
	}

	flagParams := map[string]float64{
		"start":           startPotential,
		"end":             endPotential,
		"scan-rate":       scanRate,
		"step-potential":  stepPotential,
		"pulse-amplitude": pulseAmplitude,
		"start-freq":      startFreq,
		"end-freq":        endFreq,
		"ac-amplitude":    acAmplitude,
		"area":            area,
		"temperature":     temperature,
		"duration":        duration,
		"noise":           noise,
	}
	paramNames := map[string]string{
		"start":           "startPotential",
		"end":             "endPotential",
		"scan-rate":       "scanRate",
		"step-potential":  "stepPotential",
		"pulse-amplitude": "pulseAmplitude",
		"start-freq":      "startFrequency",
		"end-freq":        "endFrequency",
		"ac-amplitude":    "acAmplitude",
		"area":            "electrodeArea",
		"temperature":     "temperature",
		"duration":        "duration",
		"noise":           "noiseLevel",
	}
	for flagName, value := range flagParams {
		if cmd.Flags().Changed(flagName) {
			cfg.Parameters[paramNames[flagName]] = value
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("speed") {
		cfg.Speed = speed
	}
	return cfg, nil
}

func newController(cfg *config.Config) (*simulate.Controller, error) {
	reg := technique.NewRegistry()
	ctrl := simulate.New(reg, cfg.Seed)
	ctrl.SetSpeed(cfg.Speed)
	if err := ctrl.Configure(cfg.Technique, technique.Params(cfg.Parameters)); err != nil {
		return nil, err
	}
	return ctrl, nil
}

func runTechnique(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}

	if err := ctrl.Run(); err != nil {
		return err
	}

	pts := ctrl.Series().Snapshot()
	fmt.Printf("completed %s: %d points over %.1f s simulated\n",
		ctrl.Descriptor().Abbreviation, len(pts), ctrl.Config().TotalTime)

	if !noPlot {
		plotSeries(ctrl.Descriptor(), pts)
	}

	result, err := analysis.Analyze(ctrl.Descriptor(), pts, ctrl.Params())
	if err != nil {
		return err
	}
	printAnalysis(result)

	if save {
		id, err := saveRun(ctrl, pts)
		if err != nil {
			return err
		}
		fmt.Printf("saved run %s\n", id)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}
	if err := ctrl.Start(); err != nil {
		return err
	}

	ticker := time.NewTicker(simulate.DefaultInterval)
	defer ticker.Stop()

	for range ticker.C {
		done := ctrl.Tick()
		fmt.Print("\033[H\033[2J")
		fmt.Printf("%s  progress %.0f%%\n", ctrl.Descriptor().Name, ctrl.Progress()*100)
		plotSeries(ctrl.Descriptor(), ctrl.Series().Snapshot())
		if done {
			break
		}
	}

	result, err := analysis.Analyze(ctrl.Descriptor(), ctrl.Series().Snapshot(), ctrl.Params())
	if err != nil {
		return err
	}
	printAnalysis(result)
	return nil
}

func listTechniques(cmd *cobra.Command, args []string) error {
	reg := technique.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tABBREV\tCATEGORY\tNAME")
	for _, d := range reg.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ID, d.Abbreviation, d.Category, d.Name)
	}
	w.Flush()
	return nil
}

func listPresetsCmd(cmd *cobra.Command, args []string) error {
	names := config.ListPresets(args[0])
	if names == nil {
		return fmt.Errorf("no presets for technique %s", args[0])
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTECHNIQUE\tPOINTS\tSEED\tTIMESTAMP")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", r.ID, r.Technique, r.Points, r.Seed, r.Timestamp.Format(time.RFC3339))
	}
	w.Flush()
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	pts, err := store.LoadPoints(args[0])
	if err != nil {
		return err
	}

	reg := technique.NewRegistry()
	desc, err := reg.Get(meta.Technique)
	if err != nil {
		return err
	}
	params, err := desc.Validate(technique.Params(meta.Parameters))
	if err != nil {
		return err
	}

	result, err := analysis.Analyze(desc, pts, params)
	if err != nil {
		return err
	}
	printAnalysis(result)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func saveRun(ctrl *simulate.Controller, pts []series.Point) (string, error) {
	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return "", err
	}
	d := ctrl.Descriptor()
	return store.Save(storage.RunMetadata{
		Technique:  d.ID,
		Category:   string(d.Category),
		Seed:       ctrl.Seed(),
		TotalTime:  ctrl.Config().TotalTime,
		NoiseLevel: ctrl.Config().NoiseLevel,
		Parameters: ctrl.Params(),
	}, pts)
}

func plotSeries(d technique.Descriptor, pts []series.Point) {
	if len(pts) < 2 {
		return
	}
	ys := make([]float64, len(pts))
	for i, p := range pts {
		ys[i] = p.Y
	}
	caption := "current (uA)"
	if d.Category == technique.Impedance {
		caption = "-Z'' (Ohm)"
	}
	fmt.Println(asciigraph.Plot(ys, asciigraph.Height(14), asciigraph.Caption(caption)))
}

func printAnalysis(r analysis.Result) {
	fmt.Printf("analysis (%s, %d points)\n", r.Technique, r.Points)

	switch {
	case r.Voltammetry != nil:
		v := r.Voltammetry
		fmt.Printf("  peaks: %d\n", len(v.PeakCurrents))
		for i := range v.PeakCurrents {
			fmt.Printf("    E = %+.3f V, i = %.2f uA\n", v.PeakPotentials[i], v.PeakCurrents[i])
		}
		if v.HasSeparation {
			kind := "reversible"
			if !v.Reversible {
				kind = "irreversible"
			}
			fmt.Printf("  peak separation: %.3f V (%s)\n", v.PeakSeparation, kind)
		}
	case r.Impedance != nil:
		z := r.Impedance
		fmt.Printf("  Rs = %.2f Ohm, Rct = %.2f Ohm, f* = %.3g Hz\n",
			z.SolutionResistance, z.ChargeTransferResistance, z.CharacteristicFrequency)
		if z.Fit != nil {
			fmt.Printf("  randles fit: Rs = %.2f, Rct = %.2f, Cdl = %.3g F, sigma = %.2f (chi2 %.3g)\n",
				z.Fit.Rs, z.Fit.Rct, z.Fit.Cdl, z.Fit.Warburg, z.Fit.ChiSq)
		}
	case r.Chrono != nil:
		c := r.Chrono
		fmt.Printf("  steady-state i = %.2f uA, peak i = %.2f uA, charge = %.3f mC\n",
			c.SteadyStateCurrent, c.PeakCurrent, c.ChargeTransferred)
		if c.Cottrell != nil {
			fmt.Printf("  cottrell: slope = %.3f uA s^1/2, R2 = %.3f, D = %.3g cm2/s\n",
				c.Cottrell.Slope, c.Cottrell.R2, c.Cottrell.DiffusionCoefficient)
		}
	default:
		fmt.Println("  series too short for analysis")
	}
}
