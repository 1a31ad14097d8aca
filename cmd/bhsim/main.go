package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"bhsim/internal/config"
	"bhsim/internal/engine"
	"bhsim/internal/export"
	"bhsim/internal/spacetime"
	"bhsim/internal/storage"
	"bhsim/internal/tui"
	"bhsim/internal/viz"
)

var (
	dataDir    string
	metricName string
	particle   string
	mass       float64
	theta      float64
	energy     float64
	angmom     float64
	r0         float64
	radialSign string
	phiMax     float64
	samples    int
	rMin       float64
	rMax       float64
	configFile string
	preset     string
	svgOut     string
	svgSize    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bhsim",
		Short: "black hole geodesic lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bhsim", "data directory")

	orbitCmd := &cobra.Command{
		Use:   "orbit",
		Short: "integrate and store an orbit",
		RunE:  runOrbit,
	}
	addPhysicsFlags(orbitCmd)
	addOrbitFlags(orbitCmd)

	potentialCmd := &cobra.Command{
		Use:   "potential",
		Short: "sample the effective potential",
		RunE:  runPotential,
	}
	addPhysicsFlags(potentialCmd)
	potentialCmd.Flags().Float64Var(&rMin, "r-min", config.DefaultRMin, "lower radius bound")
	potentialCmd.Flags().Float64Var(&rMax, "r-max", config.DefaultRMax, "upper radius bound")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "integrate an orbit and replay it in the terminal",
		RunE:  runLive,
	}
	addPhysicsFlags(liveCmd)
	addOrbitFlags(liveCmd)

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
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write run samples as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "orbit.svg", "output file")
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 800, "image size in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets [metric]",
		Short: "list available presets for a metric",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				return fmt.Errorf("no presets for metric: %s", args[0])
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(orbitCmd, potentialCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPhysicsFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&metricName, "metric", "schwarzschild", "metric (schwarzschild | nc-schwarzschild)")
	cmd.Flags().StringVar(&particle, "particle", "massive", "particle (massive | photon)")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "black hole mass (G=c=1)")
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "noncommutativity scale (nc metric only)")
	cmd.Flags().Float64Var(&energy, "energy", config.DefaultEnergy, "conserved energy E")
	cmd.Flags().Float64Var(&angmom, "angmom", config.DefaultAngMom, "conserved angular momentum L")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "sample count")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func addOrbitFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&r0, "r0", 20.0, "start radius")
	cmd.Flags().StringVar(&radialSign, "sign", "in", "initial radial direction (in | out)")
	cmd.Flags().Float64Var(&phiMax, "phi-max", config.DefaultPhiMax, "total angular span")
}

// resolveConfig merges defaults, preset, config file, and explicit flags, in
// that order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(metricName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(metricName))
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	f := cmd.Flags()
	if f.Changed("metric") {
		cfg.Metric = metricName
	}
	if f.Changed("particle") {
		cfg.Particle = particle
	}
	if f.Changed("mass") {
		cfg.M = mass
	}
	if f.Changed("theta") {
		cfg.Theta = theta
	}
	if f.Changed("energy") {
		cfg.E = energy
	}
	if f.Changed("angmom") {
		cfg.L = angmom
	}
	if f.Changed("samples") {
		cfg.Orbit.Samples = samples
		cfg.Potential.Samples = samples
	}
	if f.Changed("r0") {
		cfg.Orbit.R0 = r0
	}
	if f.Changed("sign") {
		cfg.Orbit.RadialSign = radialSign
	}
	if f.Changed("phi-max") {
		cfg.Orbit.PhiMax = phiMax
	}
	if f.Changed("r-min") {
		cfg.Potential.RMin = rMin
	}
	if f.Changed("r-max") {
		cfg.Potential.RMax = rMax
	}

	if cfg.Orbit.Samples > config.MaxSamples || cfg.Potential.Samples > config.MaxSamples {
		return nil, fmt.Errorf("samples exceeds the maximum of %d", config.MaxSamples)
	}

	return cfg, nil
}

func computeOrbit(cfg *config.Config) (*engine.OrbitResult, error) {
	p := spacetime.Particle(cfg.Particle)
	sign := spacetime.RadialSign(cfg.Orbit.RadialSign)

	switch cfg.Metric {
	case engine.MetricSchwarzschild:
		return engine.ComputeOrbit(engine.OrbitRequest{
			Particle: p,
			M:        cfg.M,
			E:        cfg.E,
			L:        cfg.L,
			R0:       cfg.Orbit.R0,
			Sign:     sign,
			PhiMax:   cfg.Orbit.PhiMax,
			N:        cfg.Orbit.Samples,
		})
	case engine.MetricNCSchwarzschild:
		return engine.ComputeNCOrbit(engine.NCOrbitRequest{
			Particle: p,
			M:        cfg.M,
			Theta:    cfg.Theta,
			E:        cfg.E,
			L:        cfg.L,
			R0:       cfg.Orbit.R0,
			Sign:     sign,
			PhiMax:   cfg.Orbit.PhiMax,
			N:        cfg.Orbit.Samples,
		})
	default:
		return nil, fmt.Errorf("unknown metric: %s", cfg.Metric)
	}
}

func runOrbit(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	res, err := computeOrbit(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(res)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("points: %d/%d\n", res.Points, res.Meta.N)
	if res.Points > 0 {
		minR := res.R[0]
		for _, v := range res.R[1:] {
			if v < minR {
				minR = v
			}
		}
		fmt.Printf("min r: %.4f\n", minR)
	}
	if res.Meta.Metric == engine.MetricSchwarzschild {
		fmt.Printf("captured: %v\n", res.Captured)
	}
	return nil
}

func runPotential(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	p := spacetime.Particle(cfg.Particle)

	switch cfg.Metric {
	case engine.MetricSchwarzschild:
		prof, err := engine.ComputePotentialProfile(engine.PotentialRequest{
			Particle: p,
			M:        cfg.M,
			E:        cfg.E,
			L:        cfg.L,
			RMin:     cfg.Potential.RMin,
			RMax:     cfg.Potential.RMax,
			N:        cfg.Potential.Samples,
		})
		if err != nil {
			return err
		}
		fmt.Printf("metric: %s  particle: %s  M=%g  E=%g  L=%g  b=%g\n",
			prof.Meta.Metric, prof.Meta.Particle, prof.Meta.M, prof.Meta.E, prof.Meta.L, prof.Meta.B)
		fmt.Printf("horizon: %g  photon sphere: %g\n\n", prof.Meta.Horizon, prof.Meta.PhotonSphere)
		plotSeries(prof.Veff2, "Veff^2(r)")
		plotSeries(prof.Ueff, "Ueff(r)")
	case engine.MetricNCSchwarzschild:
		prof, err := engine.ComputeNCPotentialProfile(engine.NCPotentialRequest{
			Particle: p,
			M:        cfg.M,
			Theta:    cfg.Theta,
			E:        cfg.E,
			L:        cfg.L,
			RMin:     cfg.Potential.RMin,
			RMax:     cfg.Potential.RMax,
			N:        cfg.Potential.Samples,
		})
		if err != nil {
			return err
		}
		fmt.Printf("metric: %s  particle: %s  M=%g  theta=%g  E=%g  L=%g  b=%g\n\n",
			prof.Meta.Metric, prof.Meta.Particle, prof.Meta.M, prof.Meta.Theta, prof.Meta.E, prof.Meta.L, prof.Meta.B)
		plotSeries(prof.Veff2, "Veff^2(r)")
	default:
		return fmt.Errorf("unknown metric: %s", cfg.Metric)
	}

	return nil
}

func plotSeries(data []float64, caption string) {
	graph := asciigraph.Plot(downsample(data, 200),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
	fmt.Println()
}

// downsample thins a series for terminal plotting without changing its shape.
func downsample(data []float64, max int) []float64 {
	if len(data) <= max {
		return data
	}
	out := make([]float64, max)
	for i := range out {
		out[i] = data[i*(len(data)-1)/(max-1)]
	}
	return out
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	res, err := computeOrbit(cfg)
	if err != nil {
		return err
	}

	return tui.Run(res)
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
	fmt.Fprintln(w, "ID\tMETRIC\tPARTICLE\tTIME\tE\tL\tR0\tPOINTS\tCAPTURED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4g\t%.4g\t%.4g\t%d\t%v\n",
			run.ID,
			run.Metric,
			run.Particle,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.E,
			run.L,
			run.R0,
			run.PointsReturned,
			run.Captured,
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
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if traj.Points == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("metric: %s  particle: %s  samples: %d\n\n", meta.Metric, meta.Particle, traj.Points)

	plotSeries(traj.R, "r(phi)")

	scene := viz.NewScene(traj, meta.Horizon, meta.PhotonSphere, 60, 24)
	fmt.Println(scene.Render(0))

	if meta.Captured {
		fmt.Println("captured by the horizon")
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	f, err := os.Open(st.SamplesPath(args[0]))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(os.Stdout, f)
	return err
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	svg := export.TrajectoryToSVG(traj, meta.Horizon, meta.PhotonSphere, svgSize, "#00ff88")
	if svg == "" {
		return fmt.Errorf("not enough samples to render")
	}

	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}
