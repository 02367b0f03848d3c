package observability

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "patchnet"

// Collector holds the Prometheus metrics of distance matrices and delta tasks.
type Collector struct {
	registry *prometheus.Registry

	// Distance engine
	MatrixRows    *prometheus.CounterVec
	MatrixRowTime *prometheus.HistogramVec

	// Delta tasks
	Batches      *prometheus.CounterVec
	BatchNodes   *prometheus.CounterVec
	BatchTime    prometheus.Histogram
	TasksByState *prometheus.CounterVec
}

// NewCollector creates a collector whose metrics live under namespace
// (DefaultNamespace when empty).
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	c := &Collector{
		registry: prometheus.NewRegistry(),
		MatrixRows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "matrix_rows_total",
				Help:      "Distance matrix rows computed, by distance kind",
			},
			[]string{"kind"},
		),
		MatrixRowTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "matrix_row_duration_seconds",
				Help:      "Time to compute one distance matrix row",
				Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
			},
			[]string{"kind"},
		),
		Batches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "delta_batches_total",
				Help:      "Delta task batches, by outcome",
			},
			[]string{"status"},
		),
		BatchNodes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "delta_nodes_total",
				Help:      "Patches handled by delta task batches, by batch outcome",
			},
			[]string{"status"},
		),
		BatchTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "delta_batch_duration_seconds",
				Help:      "Wall time of executed delta task batches",
				Buckets:   prometheus.DefBuckets,
			},
		),
		TasksByState: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "delta_tasks_total",
				Help:      "Delta tasks, by final state",
			},
			[]string{"state"},
		),
	}
	c.registry.MustRegister(c.MatrixRows, c.MatrixRowTime, c.Batches, c.BatchNodes, c.BatchTime, c.TasksByState)

	return c
}

// Registry returns the collector's private registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// ObserveMatrixRow records one distance matrix row.
func (c *Collector) ObserveMatrixRow(kind string, elapsed time.Duration) {
	c.MatrixRows.WithLabelValues(kind).Inc()
	c.MatrixRowTime.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveBatch records one delta batch outcome. Batches that never ran
// (zero elapsed) are not added to the duration histogram.
func (c *Collector) ObserveBatch(status string, nodes int, elapsed time.Duration) {
	c.Batches.WithLabelValues(status).Inc()
	c.BatchNodes.WithLabelValues(status).Add(float64(nodes))
	if elapsed > 0 {
		c.BatchTime.Observe(elapsed.Seconds())
	}
}

// ObserveTask records the final state of a delta task.
func (c *Collector) ObserveTask(state string) {
	c.TasksByState.WithLabelValues(state).Inc()
}

// WriteText writes every metric in the Prometheus text exposition format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("observability: gather: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("observability: write %s: %w", mf.GetName(), err)
		}
	}

	return nil
}
