package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/katalvlaran/patchnet/config"
	"github.com/katalvlaran/patchnet/core"
	"github.com/katalvlaran/patchnet/delta"
	"github.com/katalvlaran/patchnet/executor"
	"github.com/katalvlaran/patchnet/graphsource"
	"github.com/katalvlaran/patchnet/logging"
	"github.com/katalvlaran/patchnet/metric"
	"github.com/katalvlaran/patchnet/modularity"
	"github.com/katalvlaran/patchnet/observability"
	"github.com/katalvlaran/patchnet/progress"
)

var errPartial = errors.New("delta task incomplete")

// number marshals non-finite values as strings.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte(strconv.Quote(strconv.FormatFloat(f, 'g', -1, 64))), nil
	}

	return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

type nodeRow struct {
	ID     int               `json:"id"`
	Values map[string]number `json:"values"`
}

type report struct {
	Graph      string            `json:"graph"`
	Patches    int               `json:"patches"`
	Links      int               `json:"links"`
	Components int               `json:"components"`
	Metric     string            `json:"metric"`
	Values     map[string]number `json:"values"`
	Clusters   [][]int           `json:"clusters,omitempty"`

	Task   string    `json:"task,omitempty"`
	Mode   string    `json:"mode,omitempty"`
	State  string    `json:"state,omitempty"`
	Deltas []nodeRow `json:"deltas,omitempty"`
	Failed []int     `json:"failed,omitempty"`
}

func values(r metric.Result) map[string]number {
	out := make(map[string]number, len(r.Names))
	for i, n := range r.Names {
		out[n] = number(r.Values[i])
	}

	return out
}

// run is main without the process exit.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := config.Flags("patchnet")
	if err := flags.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Dev)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// 1) Graph
	def, err := cfg.CostDefinition()
	if err != nil {
		return err
	}
	g, err := graphsource.LoadGraph(ctx, graphsource.File{Path: cfg.Input}, def)
	if err != nil {
		return err
	}
	stats := g.Stats()
	log.Info("graph loaded", zap.String("graph", g.Name()), zap.Int("patches", g.Order()),
		zap.Int("links", g.Size()), zap.Int("components", g.ComponentCount()))

	// 2) Metric
	m, err := metric.NewGlobal(cfg.Metric.Name)
	if err != nil {
		return err
	}
	rep := report{
		Graph:      g.Name(),
		Patches:    stats.Patches,
		Links:      stats.Links,
		Components: stats.Components,
		Metric:     m.DetailName(),
	}
	if ca, ok := m.(metric.ClusterAware); ok {
		p, err := partition(g, cfg.Cluster.K, log)
		if err != nil {
			return err
		}
		ca.SetPartition(p)
		rep.Clusters = p.IDs()
	}
	l, err := metric.NewLauncher(m, cfg.Metric.All)
	if err != nil {
		return err
	}
	collector := observability.NewCollector("")

	// 3) Evaluate
	var runErr error
	if cfg.Delta.Enabled {
		runErr = runDelta(ctx, cfg, g, l, log, collector, &rep)
	} else {
		r, err := l.Launch(ctx, g)
		if err != nil {
			return err
		}
		rep.Values = values(r)
	}
	if runErr != nil && !errors.Is(runErr, errPartial) {
		return runErr
	}

	// 4) Output
	if err := write(cfg.Output, stdout, rep); err != nil {
		return err
	}
	if cfg.Metrics.Out != "" {
		if err := dumpMetrics(cfg.Metrics.Out, collector); err != nil {
			return err
		}
	}

	return runErr
}

func partition(g *core.Graph, k int, log *zap.Logger) (*modularity.Partition, error) {
	c, err := modularity.New(g, modularity.CountWeighter{}, modularity.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if k == 0 {
		p := c.BestPartition()
		if p == nil {
			return nil, fmt.Errorf("patchnet: graph %q has no patches to cluster", g.Name())
		}
		return p, nil
	}

	return c.OptimPartition(k)
}

func runDelta(ctx context.Context, cfg *config.Config, g *core.Graph, l *metric.Launcher,
	log *zap.Logger, obs *observability.Collector, rep *report) error {
	mode, err := cfg.DeltaMode()
	if err != nil {
		return err
	}
	pool, err := executor.New(cfg.Workers, executor.WithLogger(log))
	if err != nil {
		return err
	}
	defer pool.Close()
	task, err := delta.NewTask(pool, mode, delta.WithLogger(log), delta.WithObserver(obs))
	if err != nil {
		return err
	}

	every := g.Order() / 20
	ctx = progress.WithReporter(ctx, progress.NewLogger(log, "delta "+task.ID.String(), every))
	res, err := task.Execute(ctx, g, l, cfg.Delta.Batch)
	var pf *delta.PartialFailureError
	if err != nil && !errors.As(err, &pf) {
		return err
	}

	rep.Task = res.Task.String()
	rep.Mode = res.Mode.String()
	rep.State = res.State.String()
	rep.Values = values(res.Base)
	for _, id := range res.IDs() {
		rep.Deltas = append(rep.Deltas, nodeRow{ID: id, Values: values(res.Deltas[id])})
	}
	rep.Failed = res.FailedIDs()
	if pf != nil {
		log.Warn("delta task incomplete", zap.Ints("failed", pf.Failed), zap.Error(err))
		return fmt.Errorf("%w: %d patches failed", errPartial, len(pf.Failed))
	}

	return nil
}

func write(path string, stdout io.Writer, rep report) error {
	encode := func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("patchnet: encode: %w", err)
		}
		return nil
	}
	if path == "" {
		return encode(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("patchnet: output: %w", err)
	}
	if err := finish(f, encode); err != nil {
		return fmt.Errorf("patchnet: output: %w", err)
	}

	return nil
}

func dumpMetrics(path string, c *observability.Collector) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("patchnet: metrics: %w", err)
	}
	if err := finish(f, c.WriteText); err != nil {
		return fmt.Errorf("patchnet: metrics: %w", err)
	}

	return nil
}

// finish runs fill on wc and closes it; a Close error is reported when fill
// succeeded.
func finish(wc io.WriteCloser, fill func(io.Writer) error) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fill(wc)
}
