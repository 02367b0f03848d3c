package observability_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/patchnet/builder"
	"github.com/katalvlaran/patchnet/core"
	"github.com/katalvlaran/patchnet/delta"
	"github.com/katalvlaran/patchnet/distance"
	"github.com/katalvlaran/patchnet/executor"
	"github.com/katalvlaran/patchnet/metric"
	"github.com/katalvlaran/patchnet/observability"
)

var (
	_ distance.RowObserver = (*observability.Collector)(nil)
	_ delta.Observer       = (*observability.Collector)(nil)
)

func TestCollector_Independent(t *testing.T) {
	a := observability.NewCollector("")
	b := observability.NewCollector("")
	a.ObserveTask("completed")
	assert.Equal(t, 1.0, testutil.ToFloat64(a.TasksByState.WithLabelValues("completed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.TasksByState.WithLabelValues("completed")))
}

func TestCollector_ObserveBatch(t *testing.T) {
	c := observability.NewCollector("test")
	c.ObserveBatch(delta.BatchCompleted, 3, time.Millisecond)
	c.ObserveBatch(delta.BatchCancelled, 2, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Batches.WithLabelValues(delta.BatchCompleted)))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.BatchNodes.WithLabelValues(delta.BatchCompleted)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.BatchNodes.WithLabelValues(delta.BatchCancelled)))
	assert.Equal(t, 1, testutil.CollectAndCount(c.BatchTime))
}

func TestCollector_WiredIntoEngineAndTask(t *testing.T) {
	c := observability.NewCollector("")
	g, err := builder.BuildLandscape(core.DefaultCostDefinition(), nil, builder.Cycle(6))
	require.NoError(t, err)

	eng := distance.NewEngine(zap.NewNop(), distance.WithObserver(c))
	_, err = eng.ComputeGraphMatrix(context.Background(), g, distance.LeastCost, 0)
	require.NoError(t, err)
	assert.Equal(t, 6.0, testutil.ToFloat64(c.MatrixRows.WithLabelValues(distance.LeastCost.String())))

	pool, err := executor.New(2)
	require.NoError(t, err)
	defer pool.Close()
	task, err := delta.NewTask(pool, delta.Difference, delta.WithObserver(c))
	require.NoError(t, err)
	m, err := metric.NewGlobal("NC")
	require.NoError(t, err)
	l, err := metric.NewLauncher(m, true)
	require.NoError(t, err)
	_, err = task.Execute(context.Background(), g, l, 4)
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Batches.WithLabelValues(delta.BatchCompleted)))
	assert.Equal(t, 6.0, testutil.ToFloat64(c.BatchNodes.WithLabelValues(delta.BatchCompleted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.TasksByState.WithLabelValues("completed")))

	var buf bytes.Buffer
	require.NoError(t, c.WriteText(&buf))
	assert.Contains(t, buf.String(), "patchnet_delta_tasks_total")
	assert.Contains(t, buf.String(), "patchnet_matrix_rows_total")
}
