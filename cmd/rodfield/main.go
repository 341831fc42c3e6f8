package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	charmlog "github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rodfield/internal/config"
	"github.com/san-kum/rodfield/internal/export"
	"github.com/san-kum/rodfield/internal/field"
	"github.com/san-kum/rodfield/internal/scene"
	"github.com/san-kum/rodfield/internal/schedule"
	"github.com/san-kum/rodfield/internal/storage"
	"github.com/san-kum/rodfield/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	// Rod parameters, in the displayed unit
	unitName string
	density  float64
	length   float64
	distance float64
	// Diagram container
	width  float64
	height float64
	// Command options
	asJSON      bool
	outFile     string
	static      bool
	background  string
	plotSamples int
	themeName   string
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "rodfield",
		Short:        "electric field of a finite charged rod",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
		// Default to the interactive diagram when no command given
		RunE: runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".rodfield", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&unitName, "unit", config.DefaultUnit, "unit system (m or cm)")
	pf.Float64Var(&density, "density", config.DefaultChargeDensity, "charge density in μC per unit length")
	pf.Float64Var(&length, "length", config.DefaultLength, "rod length")
	pf.Float64Var(&distance, "distance", config.DefaultDistance, "distance from the rod midpoint")
	pf.Float64Var(&width, "width", config.DefaultWidth, "diagram container width")
	pf.Float64Var(&height, "height", config.DefaultHeight, "available diagram height")

	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "compute the field magnitude",
		Args:  cobra.NoArgs,
		RunE:  runCompute,
	}
	computeCmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "write the animated field diagram as SVG",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (stdout if empty)")
	renderCmd.Flags().BoolVar(&static, "static", false, "write the settled diagram without animation")
	renderCmd.Flags().StringVar(&background, "background", "", "background color")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot field magnitude against distance",
		Args:  cobra.NoArgs,
		RunE:  runPlot,
	}
	plotCmd.Flags().IntVar(&plotSamples, "samples", 60, "number of samples")
	plotCmd.Flags().StringVarP(&outFile, "out", "o", "", "also write the profile as SVG")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "compute and archive a run",
		Args:  cobra.NoArgs,
		RunE:  saveRun,
	}
	saveCmd.Flags().IntVar(&plotSamples, "samples", 60, "number of profile samples")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show an archived run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal diagram",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&themeName, "theme", config.DefaultTheme, "color theme")

	rootCmd.AddCommand(computeCmd, renderCmd, plotCmd, presetsCmd, saveCmd, listCmd, showCmd, tuiCmd)
	return rootCmd
}

// resolveConfig layers the preset, the config file and explicitly set flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, field.Parameters, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, field.Parameters{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.Decode(configFile, cfg); err != nil {
			return nil, field.Parameters{}, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("unit") {
		cfg.Unit = unitName
	}
	if flags.Changed("density") {
		cfg.ChargeDensity = density
	}
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("distance") {
		cfg.Distance = distance
	}
	if flags.Changed("width") {
		cfg.Container.Width = width
	}
	if flags.Changed("height") {
		cfg.Container.Height = height
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}

	p, err := cfg.Parameters()
	if err != nil {
		return nil, field.Parameters{}, fmt.Errorf("invalid parameters: %w", err)
	}
	return cfg, p, nil
}

// renderPass runs the scheduler once, synchronously, into b.
func renderPass(ctx context.Context, cfg *config.Config, p field.Parameters, b scene.Backend) (schedule.Status, error) {
	sched := schedule.New(b,
		schedule.WithLogger(loggerFromContext(ctx)),
		schedule.WithParameters(p),
		schedule.WithContainer(cfg.Viewport()),
		schedule.WithChoreography(cfg.Choreography()),
		schedule.WithDelay(cfg.Delay()),
	)
	sched.Start()
	defer sched.Close()
	sched.Flush()

	st := sched.Status()
	if st.Error != "" {
		return st, errors.New(st.Error)
	}
	if st.Layout == nil {
		return st, errors.New("no diagram was laid out")
	}
	return st, nil
}

func runCompute(cmd *cobra.Command, args []string) error {
	_, p, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	res, err := field.Compute(p)
	if err != nil {
		return fmt.Errorf("compute: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return storage.WriteJSON(out, storage.NewMetadata("", storage.Run{Params: p, Result: res}))
	}

	fmt.Fprintf(out, "parameters: %s\n", p)
	fmt.Fprintf(out, "E = %.3e N/C\n", res.Magnitude)
	fmt.Fprintf(out, "E = %.3f kN/C\n", res.KiloNewtons())
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, p, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := field.Compute(p); err != nil {
		return fmt.Errorf("compute: %w", err)
	}

	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	var opts []export.SVGOption
	if static {
		opts = append(opts, export.WithStatic())
	}
	if background != "" {
		opts = append(opts, export.WithBackground(background))
	}
	svg := export.NewSVG(opts...)

	st, err := renderPass(cmd.Context(), cfg, p, svg)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	w := cmd.OutOrStdout()
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := svg.Render(w, st.Layout.Viewport); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}

	if outFile != "" {
		prog.done(fmt.Sprintf("wrote %s with %d field lines", outFile, len(st.Layout.FieldLines)))
	}
	return nil
}

// profileRange is the distance span plotted around the measurement point.
func profileRange(p field.Parameters) (float64, float64) {
	return p.Distance / 4, p.Distance * 3
}

func runPlot(cmd *cobra.Command, args []string) error {
	_, p, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	from, to := profileRange(p)
	samples, err := field.Profile(p, from, to, plotSamples)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "parameters: %s\n\n", p)
	fmt.Fprintln(cmd.OutOrStdout(), plotProfile(samples, p.Unit))

	if outFile != "" {
		svg := export.ProfileToSVG(samples, 600, 300, scene.ColorField)
		if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
			return fmt.Errorf("write profile: %w", err)
		}
		loggerFromContext(cmd.Context()).Info("profile written", "path", outFile, "samples", len(samples))
	}
	return nil
}

func plotProfile(samples []field.Sample, u field.Unit) string {
	if len(samples) == 0 {
		return "no samples"
	}
	from := field.FromMeters(samples[0].Distance, u)
	to := field.FromMeters(samples[len(samples)-1].Distance, u)
	return asciigraph.Plot(field.Magnitudes(samples),
		asciigraph.Height(15),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("E (N/C) vs distance %.3g..%.3g %s", from, to, u.Suffix())))
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tUNIT\tDENSITY\tLENGTH\tDISTANCE")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\n", name, cfg.Unit, cfg.ChargeDensity, cfg.Length, cfg.Distance)
	}
	return w.Flush()
}

func saveRun(cmd *cobra.Command, args []string) error {
	cfg, p, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	res, err := field.Compute(p)
	if err != nil {
		return fmt.Errorf("compute: %w", err)
	}

	svg := export.NewSVG()
	st, err := renderPass(cmd.Context(), cfg, p, svg)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	from, to := profileRange(p)
	samples, err := field.Profile(p, from, to, plotSamples)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(storage.Run{
		Params:   p,
		Result:   res,
		Viewport: st.Layout.Viewport,
		Lines:    len(st.Layout.FieldLines),
		Profile:  samples,
		Diagram:  svg.Bytes(st.Layout.Viewport),
	})
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	loggerFromContext(cmd.Context()).Debug("run archived", "id", runID, "dir", dataDir)
	fmt.Fprintf(cmd.OutOrStdout(), "saved run: %s\n", runID)
	fmt.Fprintf(cmd.OutOrStdout(), "E = %.3e N/C\n", res.Magnitude)
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
	fmt.Fprintln(w, "ID\tTIME\tPARAMETERS\tE (N/C)")
	for _, run := range runs {
		desc := "?"
		if p, err := run.Params(); err == nil {
			desc = p.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3e\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			desc,
			run.Magnitude,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := storage.WriteJSON(out, *meta); err != nil {
		return err
	}

	samples, err := st.LoadProfile(runID)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return err
	default:
		unit := field.Meters
		if p, err := meta.Params(); err == nil {
			unit = p.Unit
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, plotProfile(samples, unit))
	}

	if path, err := st.DiagramPath(runID); err == nil {
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(out, "\ndiagram: %s\n", path)
		}
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, p, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal; logs go to a file only when
	// asked for.
	logger := loggerFromContext(cmd.Context())
	logger.SetOutput(io.Discard)
	if verbose {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return err
		}
		f, err := os.OpenFile(filepath.Join(dataDir, "tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	term := viz.NewTerminal(nil)
	sched := schedule.New(term,
		schedule.WithLogger(logger),
		schedule.WithParameters(p),
		schedule.WithChoreography(cfg.Choreography()),
		schedule.WithDelay(cfg.Delay()),
	)
	return viz.Run(sched, term, p, viz.GetTheme(cfg.Theme))
}
