// Command angle-sweep measures the numerical accuracy of the SE(2)/SE(3)
// closed-form exponential and logarithm across a log-spaced range of
// rotation angles. For each angle it compares the closed form against the
// generic matrix-exponential fallback and measures the log∘exp round-trip
// error, covering both sides of the series/trigonometric branch switch.
// Results are recorded to a sqlite database and optionally plotted to PNG.
package main

import (
	"flag"
	"log"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/liegroups/internal/monitoring"
	"github.com/banshee-data/liegroups/internal/sweepdb"
	"github.com/banshee-data/liegroups/lie/se"
)

type config struct {
	Dim      int
	MinExp   float64
	MaxExp   float64
	Samples  int
	Seed     int64
	DBPath   string
	PlotPath string
}

func main() {
	var cfg config
	flag.IntVar(&cfg.Dim, "dim", 3, "group dimension (2 or 3)")
	flag.Float64Var(&cfg.MinExp, "min-exp", -10, "log10 of the smallest angle")
	flag.Float64Var(&cfg.MaxExp, "max-exp", 0.3, "log10 of the largest angle")
	flag.IntVar(&cfg.Samples, "samples", 500, "number of log-spaced angles")
	flag.Int64Var(&cfg.Seed, "seed", 1, "seed for the random axis and translation")
	flag.StringVar(&cfg.DBPath, "db", "sweep.db", "sqlite database for results")
	flag.StringVar(&cfg.PlotPath, "plot", "", "optional PNG error-curve output")
	flag.Parse()

	if cfg.Dim != 2 && cfg.Dim != 3 {
		log.Fatalf("closed forms exist for dimensions 2 and 3 only, got %d", cfg.Dim)
	}
	if cfg.Samples < 2 {
		log.Fatal("need at least 2 samples")
	}

	samples := runSweep(cfg)

	db, err := sweepdb.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open sweep db: %v", err)
	}
	defer db.Close()

	runID, err := db.InsertRun(&sweepdb.Run{Dim: cfg.Dim}, samples)
	if err != nil {
		log.Fatalf("record sweep: %v", err)
	}
	monitoring.Logf("recorded run %s: %d samples at n=%d", runID, len(samples), cfg.Dim)

	if cfg.PlotPath != "" {
		if err := savePlot(cfg.PlotPath, samples); err != nil {
			log.Fatalf("save plot: %v", err)
		}
		monitoring.Logf("wrote %s", cfg.PlotPath)
	}
}

// runSweep evaluates exp/log accuracy at each angle. The rotation axis and
// translation direction are drawn once per sweep so only the angle varies.
func runSweep(cfg config) []sweepdb.Sample {
	rng := rand.New(rand.NewSource(cfg.Seed))
	g := se.New(cfg.Dim)

	b := mat.NewVecDense(cfg.Dim, nil)
	for i := 0; i < cfg.Dim; i++ {
		b.SetVec(i, rng.NormFloat64())
	}

	axis := mat.NewVecDense(g.Rot.DOF(), nil)
	var norm float64
	for i := 0; i < axis.Len(); i++ {
		v := rng.NormFloat64()
		axis.SetVec(i, v)
		norm += v * v
	}
	axis.ScaleVec(1/math.Sqrt(norm), axis)

	samples := make([]sweepdb.Sample, 0, cfg.Samples)
	step := (cfg.MaxExp - cfg.MinExp) / float64(cfg.Samples-1)
	for i := 0; i < cfg.Samples; i++ {
		theta := math.Pow(10, cfg.MinExp+float64(i)*step)
		samples = append(samples, measure(g, b, axis, theta))
	}
	return samples
}

// measure builds the tangent with rotation angle theta and compares the
// closed-form exponential against the generic fallback, then measures the
// round trip through the logarithm.
func measure(g *se.Group, b, axis *mat.VecDense, theta float64) sweepdb.Sample {
	coords := mat.NewVecDense(g.DOF(), nil)
	for i := 0; i < g.N; i++ {
		coords.SetVec(i, b.AtVec(i))
	}
	for i := 0; i < axis.Len(); i++ {
		coords.SetVec(g.N+i, theta*axis.AtVec(i))
	}
	x := g.Hat(coords)

	closed := g.Exp(x)
	generic := se.NewPose(g.N)
	g.ExpGeneric(&generic, x)

	expErr := poseDistance(g, closed, generic)

	back := g.Log(closed)
	var got mat.VecDense
	g.Vee(&got, back)
	var diff mat.VecDense
	diff.SubVec(&got, coords)
	roundtrip := mat.Norm(&diff, 2)

	return sweepdb.Sample{Theta: theta, ExpErr: expErr, RoundtripErr: roundtrip}
}

// poseDistance is the Frobenius distance between the affine matrices of
// two poses.
func poseDistance(g *se.Group, a, b se.Pose) float64 {
	ma := g.AffineMatrix(nil, a)
	mb := g.AffineMatrix(nil, b)
	var diff mat.Dense
	diff.Sub(ma, mb)
	return mat.Norm(&diff, 2)
}

// savePlot draws both error curves against log10(theta).
func savePlot(path string, samples []sweepdb.Sample) error {
	p := plot.New()
	p.Title.Text = "exp/log accuracy vs rotation angle"
	p.X.Label.Text = "log10(theta)"
	p.Y.Label.Text = "log10(error)"

	expPts := make(plotter.XYs, 0, len(samples))
	rtPts := make(plotter.XYs, 0, len(samples))
	for _, s := range samples {
		x := math.Log10(s.Theta)
		expPts = append(expPts, plotter.XY{X: x, Y: safeLog10(s.ExpErr)})
		rtPts = append(rtPts, plotter.XY{X: x, Y: safeLog10(s.RoundtripErr)})
	}

	expLine, err := plotter.NewLine(expPts)
	if err != nil {
		return err
	}
	expLine.Width = vg.Points(1)
	p.Add(expLine)
	p.Legend.Add("closed vs generic", expLine)

	rtLine, err := plotter.NewLine(rtPts)
	if err != nil {
		return err
	}
	rtLine.Width = vg.Points(1)
	rtLine.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
	p.Add(rtLine)
	p.Legend.Add("log(exp) round trip", rtLine)

	return p.Save(10*vg.Inch, 6*vg.Inch, path)
}

// safeLog10 keeps exact zeros plottable.
func safeLog10(v float64) float64 {
	if v <= 0 {
		return -18
	}
	return math.Log10(v)
}
