package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/san-kum/latviz/internal/analysis"
	"github.com/san-kum/latviz/internal/config"
	"github.com/san-kum/latviz/internal/export"
	"github.com/san-kum/latviz/internal/format"
	"github.com/san-kum/latviz/internal/latfile"
	"github.com/san-kum/latviz/internal/lattice"
	"github.com/san-kum/latviz/internal/layout"
	"github.com/san-kum/latviz/internal/optics"
	"github.com/san-kum/latviz/internal/storage"
	"github.com/san-kum/latviz/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	latticePath string
	presetName  string
	periods     int
	superperiod int
	energyGeV   float64
	themeName   string
	logLevel    string
	logFile     string
	verbose     bool
	dataDir     string

	targetWidth int
	plotWidth   int
	plotHeight  int
	exportFmt   string
	outputPath  string
	svgPath     string
	asciiOnly   bool

	turns     int
	amplitude float64
	planeName string
	scanMin   float64
	scanMax   float64
	scanSteps int

	cfg       *config.Config
	logOutput io.Closer
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "latviz",
		Short:             "storage ring lattice viewer",
		Long:              "inspect a storage ring lattice: proportional element strip, beta functions and per-element optics",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if logOutput != nil {
				logOutput.Close()
			}
		},
		RunE: runView,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "config file (yaml or toml)")
	pf.StringVarP(&latticePath, "lattice", "f", "", "lattice file (.yaml, .lat, .madx, .seq)")
	pf.StringVarP(&presetName, "preset", "p", config.DefaultPreset, "built-in lattice preset")
	pf.IntVar(&periods, "periods", 0, "cell repetitions forming the ring (0 = preset default)")
	pf.IntVarP(&superperiod, "superperiod", "s", 0, "restrict to one super period (0 = whole ring)")
	pf.Float64VarP(&energyGeV, "energy", "e", config.DefaultEnergyGeV, "beam energy in GeV")
	pf.StringVar(&themeName, "theme", config.DefaultTheme, "colour theme")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "append logs to this file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&dataDir, "data", ".latviz", "export directory")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "interactive lattice viewer",
		RunE:  runView,
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "global lattice parameters",
		RunE:  runInfo,
	}

	layoutCmd := &cobra.Command{
		Use:   "layout",
		Short: "print the proportional element strip",
		RunE:  runLayout,
	}
	layoutCmd.Flags().IntVarP(&targetWidth, "width", "w", config.DefaultTargetWidth, "target strip width in pixels")

	probeCmd := &cobra.Command{
		Use:   "probe <s>",
		Short: "element parameters at a longitudinal position",
		Args:  cobra.ExactArgs(1),
		RunE:  runProbe,
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot beta functions",
		RunE:  runPlot,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 100, "plot width in columns")
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "plot height in rows")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the plot as svg")

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "track a particle and draw its phase portrait",
		RunE:  runPhase,
	}
	phaseCmd.Flags().IntVar(&turns, "turns", 512, "turns to track")
	phaseCmd.Flags().Float64Var(&amplitude, "x0", 1e-3, "initial offset in m")
	phaseCmd.Flags().StringVar(&planeName, "plane", "x", "plane (x or y)")
	phaseCmd.Flags().StringVar(&svgPath, "svg", "", "also write the portrait as svg")
	phaseCmd.Flags().BoolVar(&asciiOnly, "ascii", false, "draw with plain characters instead of braille")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "sweep quadrupole strengths and report tunes",
		RunE:  runScan,
	}
	scanCmd.Flags().Float64Var(&scanMin, "min", 0.5, "smallest quadrupole scale factor")
	scanCmd.Flags().Float64Var(&scanMax, "max", 1.5, "largest quadrupole scale factor")
	scanCmd.Flags().IntVar(&scanSteps, "steps", 11, "number of scale factors")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "save the optics table and global parameters",
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&exportFmt, "format", string(storage.FormatCSV), "csv or msgpack")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved exports",
		RunE:  runList,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in lattices",
		RunE:  runPresets,
	}

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "write the cell as a yaml lattice file",
		RunE:  runConvert,
	}
	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(viewCmd, infoCmd, layoutCmd, probeCmd, plotCmd, phaseCmd,
		scanCmd, exportCmd, listCmd, presetsCmd, convertCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func interactive(cmd *cobra.Command) bool {
	return cmd.Name() == "view" || !cmd.HasParent()
}

// setup loads the config and attaches a logger to the command context.
// The interactive viewer owns the terminal, so it only logs to --log-file.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	if cfg, err = loadConfig(cmd); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}
	if verbose {
		level = log.DebugLevel
	}

	var w io.Writer = os.Stderr
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		logOutput = f
		w = f
	case interactive(cmd):
		w = io.Discard
	}

	cmd.SetContext(withLogger(cmd.Context(), newLogger(w, level)))
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	logger.Info("starting viewer", "lattice", s.name, "elements", s.lat.Len())

	app := viz.NewApp(s.res, viz.Options{
		Title:   s.name,
		Policy:  cfg.Layout.Policy,
		Periods: cfg.RingPeriods(),
		Theme:   cfg.Theme,
		Logger:  logger,
	})
	return viz.Run(app)
}

func runInfo(cmd *cobra.Command, args []string) error {
	p := newProgress(loggerFromContext(cmd.Context()))
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	fields, err := s.res.Summary()
	if err != nil {
		return err
	}

	fmt.Printf("lattice: %s\n", s.name)
	if start, end, ok := s.lat.Window(); ok {
		fmt.Printf("window: %.3f m to %.3f m (super period %d of %d)\n", start, end, cfg.Superperiod, cfg.RingPeriods())
	}
	fmt.Printf("\n%s\n", s.res.SummaryTitle())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, r := range format.Rows(fields) {
		fmt.Fprintf(w, "%s\t%s\n", r.Name, r.Text)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	p.done("computed optics", "elements", s.lat.Len())
	return nil
}

func runLayout(cmd *cobra.Command, args []string) error {
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	width := cfg.Layout.TargetWidth
	if cmd.Flags().Changed("width") {
		width = targetWidth
	}

	res, err := layout.Strip(s.lat, width, cfg.Layout.Policy)
	if err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Debug("layout", "segments", len(res.Segments), "dropped", len(s.lat.ActiveElements())-len(res.Segments))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tNAME\tKIND\tSTART\tLENGTH\tWIDTH")
	for _, seg := range res.Segments {
		e := s.lat.Element(seg.Index)
		fmt.Fprintf(w, "%d\t%s\t%s\t%.4f\t%.4f\t%d\n",
			seg.Index, e.Name, seg.Kind, s.lat.GlobalStart(seg.Index), e.Length, seg.Width)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\npadding: %d px each side, total width: %d px\n", res.Padding, res.Width())
	return nil
}

func runProbe(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid position %q: %w", args[0], err)
	}
	s, err := openSession(cfg)
	if err != nil {
		return err
	}

	info, err := s.res.Info(x)
	if err != nil {
		return err
	}
	fields, err := s.res.Snapshot(x)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, r := range info {
		fmt.Fprintf(w, "%s\t%s\n", r.Name, r.Text)
	}
	fmt.Fprintln(w)
	for _, r := range format.Rows(fields) {
		fmt.Fprintf(w, "%s\t%s\n", r.Name, r.Text)
	}
	return w.Flush()
}

func runPlot(cmd *cobra.Command, args []string) error {
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	p, err := viz.BetaPlot(s.res, plotWidth, plotHeight)
	if err != nil {
		return err
	}
	fmt.Printf("lattice: %s\n", s.name)
	fmt.Printf("s: %.3f m to %.3f m\n\n", p.From, p.To)
	fmt.Println(p.Text)

	if svgPath == "" {
		return nil
	}
	sPos, beta := s.res.Series()
	return writeSVG(cmd, export.OpticsToSVG(s.lat, sPos, beta, 8*plotWidth, 16*plotHeight))
}

func writeSVG(cmd *cobra.Command, doc string) error {
	if doc == "" {
		return fmt.Errorf("nothing to draw")
	}
	if err := os.WriteFile(svgPath, []byte(doc), 0644); err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Info("wrote svg", "path", svgPath)
	return nil
}

func parsePlane(name string) (optics.Plane, error) {
	switch name {
	case "x", "h", "horizontal":
		return optics.Horizontal, nil
	case "y", "v", "vertical":
		return optics.Vertical, nil
	}
	return 0, fmt.Errorf("unknown plane %q", name)
}

func runPhase(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	plane, err := parsePlane(planeName)
	if err != nil {
		return err
	}
	s, err := openSession(cfg)
	if err != nil {
		return err
	}

	pp := analysis.GeneratePhasePortrait(s.eng.OneTurn(plane), analysis.Point{X: amplitude}, turns)
	fmt.Printf("phase portrait (%s plane, %d turns, x0 = %g m)\n\n", plane, turns, amplitude)
	canvas := viz.PortraitCanvas(pp, 60, 20)
	if asciiOnly {
		fmt.Print(analysis.PhasePortraitToASCII(pp, 60, 20))
	} else {
		fmt.Println(canvas.String())
	}
	if svgPath != "" {
		if err := writeSVG(cmd, export.CanvasToSVG(canvas, 4, string(viz.GetTheme(cfg.Theme).Primary))); err != nil {
			return err
		}
	}

	beta, alpha := s.eng.Beta()[0][plane], s.eng.Alpha()[0][plane]
	fmt.Printf("\ninvariant: %.6g m\n", analysis.Invariant(pp.Start, beta, alpha))

	q, err := analysis.EstimateTune(analysis.Positions(pp.Points))
	if errors.Is(err, analysis.ErrShortSignal) {
		logger.Warn("too few turns for a tune estimate", "turns", turns)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("fractional tune: tracked %.6f, engine %.6f\n", q, analysis.Fold(s.eng.Tune(plane)))
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	p := newProgress(loggerFromContext(cmd.Context()))
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	pts, err := analysis.QuadrupoleScan(cmd.Context(), s.ring, cfg.EnergyGeV, scanMin, scanMax, scanSteps)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCALE\tSTABLE\tQX\tQY")
	for _, pt := range pts {
		if !pt.Stable {
			fmt.Fprintf(w, "%.3f\tno\t-\t-\n", pt.Scale)
			continue
		}
		fmt.Fprintf(w, "%.3f\tyes\t%.5f\t%.5f\n", pt.Scale, pt.Tune[0], pt.Tune[1])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	p.done("scan complete", "points", len(pts))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	f, err := storage.ParseFormat(exportFmt)
	if err != nil {
		return err
	}
	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	fields, err := s.res.Summary()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.ExportMetadata{
		Lattice:     s.name,
		EnergyGeV:   cfg.EnergyGeV,
		Superperiod: cfg.Superperiod,
		Parameters:  format.Rows(fields),
	}, storage.BuildTable(s.lat, s.eng), f)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	logger.Info("export saved", "id", id, "format", f, "dir", dataDir)
	fmt.Println(id)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	exports, err := st.List()
	if err != nil {
		return err
	}

	if len(exports) == 0 {
		fmt.Println("no exports found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLATTICE\tTIME\tELEMENTS\tENERGY\tFORMAT")
	for _, m := range exports {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f GeV\t%s\n",
			m.ID,
			m.Lattice,
			m.Timestamp.Local().Format("2006-01-02 15:04:05"),
			m.Elements,
			m.EnergyGeV,
			m.Format,
		)
	}
	return w.Flush()
}

func runPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPERIODS\tCELL\tDESCRIPTION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		l, err := lattice.New(p.Cell)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%.3f m\t%s\n", name, p.Periods, l.Length(), p.Description)
	}
	return w.Flush()
}

func runConvert(cmd *cobra.Command, args []string) error {
	s, err := openSession(cfg)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return latfile.WriteYAML(out, &latfile.File{Name: s.name, Elements: s.cell})
}
