// Command sweep-chart renders a recorded accuracy sweep as an interactive
// HTML scatter chart. It reads a run from the sqlite database written by
// angle-sweep and plots both error series on log10 axes.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/liegroups/internal/monitoring"
	"github.com/banshee-data/liegroups/internal/sweepdb"
)

func main() {
	dbPath := flag.String("db", "sweep.db", "sqlite database written by angle-sweep")
	runID := flag.String("run", "", "run to chart (default: latest)")
	outPath := flag.String("out", "sweep.html", "output HTML file")
	flag.Parse()

	db, err := sweepdb.Open(*dbPath)
	if err != nil {
		log.Fatalf("open sweep db: %v", err)
	}
	defer db.Close()

	run, err := resolveRun(db, *runID)
	if err != nil {
		log.Fatalf("resolve run: %v", err)
	}

	samples, err := db.Samples(run.RunID)
	if err != nil {
		log.Fatalf("load samples: %v", err)
	}
	if len(samples) == 0 {
		log.Fatalf("run %s has no samples", run.RunID)
	}

	if err := render(*outPath, run, samples); err != nil {
		log.Fatalf("render chart: %v", err)
	}
	monitoring.Logf("charted run %s (%d samples) to %s", run.RunID, len(samples), *outPath)
}

func resolveRun(db *sweepdb.DB, runID string) (*sweepdb.Run, error) {
	if runID == "" {
		return db.LatestRun()
	}
	row := db.QueryRow(`
		SELECT run_id, dim, samples, max_exp_err, max_roundtrip_err, created_at
		FROM sweep_runs WHERE run_id = ?`, runID)
	var r sweepdb.Run
	if err := row.Scan(&r.RunID, &r.Dim, &r.Samples, &r.MaxExpErr, &r.MaxRoundtripErr, &r.CreatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

func render(path string, run *sweepdb.Run, samples []sweepdb.Sample) error {
	expData := make([]opts.ScatterData, 0, len(samples))
	rtData := make([]opts.ScatterData, 0, len(samples))
	for _, s := range samples {
		x := math.Log10(s.Theta)
		expData = append(expData, opts.ScatterData{Value: []interface{}{x, safeLog10(s.ExpErr)}})
		rtData = append(rtData, opts.ScatterData{Value: []interface{}{x, safeLog10(s.RoundtripErr)}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "exp/log accuracy sweep",
			Theme:     "dark",
			Width:     "1100px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("SE(%d) exp/log accuracy", run.Dim),
			Subtitle: fmt.Sprintf("run=%s samples=%d max_exp_err=%.3g max_roundtrip_err=%.3g", run.RunID, run.Samples, run.MaxExpErr, run.MaxRoundtripErr),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "log10(theta)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "log10(error)", NameLocation: "middle", NameGap: 35}),
	)

	scatter.AddSeries("closed vs generic", expData,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
	scatter.AddSeries("log(exp) round trip", rtData,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return scatter.Render(f)
}

func safeLog10(v float64) float64 {
	if v <= 0 {
		return -18
	}
	return math.Log10(v)
}
