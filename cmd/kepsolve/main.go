package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/kepsolve/internal/analysis"
	"github.com/san-kum/kepsolve/internal/batch"
	"github.com/san-kum/kepsolve/internal/config"
	"github.com/san-kum/kepsolve/internal/kepler"
	"github.com/san-kum/kepsolve/internal/storage"
	"github.com/san-kum/kepsolve/internal/tui"
	"github.com/san-kum/kepsolve/internal/viz"
)

var (
	dataDir string
	ecc     float64
	order   int
	shape   float64
	// Input grid
	gridFrom  float64
	gridTo    float64
	gridCount int
	anomalies []float64
	// Config file and preset
	configFile string
	preset     string
	// Sweep orders
	sweepOrders []int
	// Contour input
	contourM float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kepsolve",
		Short: "hyperbolic Kepler equation solver by contour integration",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".kepsolve", "data directory")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve a mean-anomaly array",
		RunE:  runSolve,
	}
	addSolveFlags(solveCmd)
	solveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	solveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot the anomaly curve z(M)",
		RunE:  runPlot,
	}
	addSolveFlags(plotCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "residual convergence over quadrature order",
		RunE:  runSweep,
	}
	addSolveFlags(sweepCmd)
	sweepCmd.Flags().IntSliceVar(&sweepOrders, "orders", []int{4, 8, 16, 32, 64, 128}, "quadrature orders")

	contourCmd := &cobra.Command{
		Use:   "contour",
		Short: "draw the integration contour for one mean anomaly",
		RunE:  runContour,
	}
	contourCmd.Flags().Float64Var(&ecc, "ecc", config.DefaultEccentricity, "eccentricity")
	contourCmd.Flags().Float64Var(&shape, "shape", config.DefaultShape, "contour aspect (1 = circle)")
	contourCmd.Flags().IntVar(&order, "order", config.DefaultOrder, "quadrature order")
	contourCmd.Flags().Float64Var(&contourM, "m", 2.0, "mean anomaly")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	residualsCmd := &cobra.Command{
		Use:   "residuals [run_id]",
		Short: "plot residuals of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotResiduals,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tECC\tORDER\tSHAPE\tGRID")
			for _, name := range names {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%d\t%.2f\t[%g, %g] x%d\n",
					name, p.Eccentricity, p.Order, p.Shape, p.Grid.From, p.Grid.To, p.Grid.Count)
			}
			return w.Flush()
		},
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive parameter explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunExplorer()
		},
	}

	rootCmd.AddCommand(solveCmd, plotCmd, sweepCmd, contourCmd, listCmd, residualsCmd,
		exportJSONCmd, exportCSVCmd, presetsCmd, exploreCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSolveFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&ecc, "ecc", config.DefaultEccentricity, "eccentricity (> 1)")
	cmd.Flags().IntVar(&order, "order", config.DefaultOrder, "quadrature order (> 1)")
	cmd.Flags().Float64Var(&shape, "shape", config.DefaultShape, "contour aspect (1 = circle)")
	cmd.Flags().Float64Var(&gridFrom, "from", config.DefaultGridFrom, "grid start")
	cmd.Flags().Float64Var(&gridTo, "to", config.DefaultGridTo, "grid end")
	cmd.Flags().IntVar(&gridCount, "count", config.DefaultGridCount, "grid size")
	cmd.Flags().Float64SliceVar(&anomalies, "m", nil, "explicit mean anomalies (overrides grid)")
}

// resolveInput merges preset, config file, and flags into the effective
// options and input array. Flags win over file, file wins over preset.
func resolveInput(cmd *cobra.Command) (kepler.Options, []float64, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return kepler.Options{}, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return kepler.Options{}, nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("ecc") {
		cfg.Eccentricity = ecc
	}
	if cmd.Flags().Changed("order") {
		cfg.Order = order
	}
	if cmd.Flags().Changed("shape") {
		cfg.Shape = shape
	}
	if cmd.Flags().Changed("from") {
		cfg.Grid.From = gridFrom
		cfg.MeanAnomalies = nil
	}
	if cmd.Flags().Changed("to") {
		cfg.Grid.To = gridTo
		cfg.MeanAnomalies = nil
	}
	if cmd.Flags().Changed("count") {
		cfg.Grid.Count = gridCount
		cfg.MeanAnomalies = nil
	}
	if cmd.Flags().Changed("m") {
		cfg.MeanAnomalies = anomalies
	}

	opts := kepler.Options{Order: cfg.Order, Eccentricity: cfg.Eccentricity, Shape: cfg.Shape}
	ms, err := cfg.Anomalies()
	if err != nil {
		return kepler.Options{}, nil, err
	}
	return opts, ms, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	opts, ms, err := resolveInput(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("solving %d mean anomalies (e=%.4g, order=%d)...\n", len(ms), opts.Eccentricity, opts.Order)
	start := time.Now()

	res, err := batch.New().Solve(ms, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	residuals := analysis.Residuals(ms, res, opts.Eccentricity)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "IDX\tM\tZ\tRESIDUAL\tSTATUS")
	for i := range ms {
		status := "ok"
		if e := res.Errors[i]; e != nil {
			if kepler.IsOutOfRange(e) {
				status = "out-of-range"
			} else {
				status = "failed"
			}
		}
		fmt.Fprintf(w, "%d\t%.6g\t%.9g\t%.3e\t%s\n", i, ms[i], res.Roots[i], residuals[i], status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	runID, err := st.Save(opts, ms, res, residuals)
	if err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("max residual: %.3e\n", analysis.MaxResidual(ms, res, opts.Eccentricity))
	if res.Failed() {
		fmt.Println("some elements were flagged; see the STATUS column")
	}
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	opts, ms, err := resolveInput(cmd)
	if err != nil {
		return err
	}

	res, err := batch.New().Solve(ms, opts)
	if err != nil {
		return err
	}

	graph := asciigraph.Plot(res.Roots,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("z(M), M in [%g, %g], e=%.4g", ms[0], ms[len(ms)-1], opts.Eccentricity)),
	)
	fmt.Println(graph)
	fmt.Printf("max residual: %.3e\n", analysis.MaxResidual(ms, res, opts.Eccentricity))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	opts, ms, err := resolveInput(cmd)
	if err != nil {
		return err
	}

	points, err := analysis.ConvergenceStudy(ms, opts, sweepOrders)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tMAX RESIDUAL")
	logRes := make([]float64, len(points))
	for i, p := range points {
		fmt.Fprintf(w, "%d\t%.3e\n", p.Order, p.MaxResidual)
		if p.MaxResidual > 0 {
			logRes[i] = math.Log10(p.MaxResidual)
		} else {
			logRes[i] = -16
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	graph := asciigraph.Plot(logRes,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("log10 max residual vs order index"),
	)
	fmt.Println("\n" + graph)
	return nil
}

func runContour(cmd *cobra.Command, args []string) error {
	opts := kepler.Options{Order: order, Eccentricity: ecc, Shape: shape}
	if err := opts.Validate(); err != nil {
		return err
	}

	m := math.Abs(contourM)
	b := kepler.NewBracket(m, opts.Eccentricity, kepler.NewThresholds(opts.Eccentricity))
	c := kepler.NewContour(b, opts.Shape)

	root, err := kepler.SolveOne(contourM, opts)
	if err != nil && !kepler.IsOutOfRange(err) {
		return err
	}

	fmt.Print(viz.RenderContour(b, c, math.Abs(root), 70, 20))
	if kepler.IsOutOfRange(err) {
		fmt.Println("warning: mean anomaly beyond validated range, root has reduced confidence")
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
	fmt.Fprintln(w, "ID\tTIME\tECC\tORDER\tSHAPE\tCOUNT\tMAX RES\tFAILED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%d\t%.2f\t%d\t%.3e\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Eccentricity,
			run.Order,
			run.Shape,
			run.Count,
			run.MaxResidual,
			run.Failed,
		)
	}
	return w.Flush()
}

func plotResiduals(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	sols, err := st.LoadSolutions(args[0])
	if err != nil {
		return err
	}
	if len(sols) == 0 {
		return fmt.Errorf("no data to plot")
	}

	data := make([]float64, len(sols))
	for i, s := range sols {
		if s.Residual > 0 {
			data[i] = math.Log10(s.Residual)
		} else {
			data[i] = -16
		}
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("log10 residual, run %s", args[0])),
	)
	fmt.Println(graph)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	sols, err := st.LoadSolutions(args[0])
	if err != nil {
		return err
	}

	type row struct {
		M        float64 `json:"m"`
		Z        float64 `json:"z"`
		Residual float64 `json:"residual"`
		Status   string  `json:"status"`
	}
	out := struct {
		Metadata  *storage.RunMetadata `json:"metadata"`
		Solutions []row                `json:"solutions"`
	}{Metadata: meta}

	for _, s := range sols {
		out.Solutions = append(out.Solutions, row{s.MeanAnomaly, s.Root, s.Residual, s.Status})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	sols, err := st.LoadSolutions(args[0])
	if err != nil {
		return err
	}

	fmt.Println("m,z,residual,status")
	for _, s := range sols {
		fmt.Printf("%g,%g,%g,%s\n", s.MeanAnomaly, s.Root, s.Residual, s.Status)
	}
	return nil
}
