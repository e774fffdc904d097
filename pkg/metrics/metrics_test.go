package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorSummary(t *testing.T) {
	c := NewCollector()

	c.RecordRows("agents", 120)
	c.RecordBatch("eve_agents", 100, time.Millisecond)
	c.RecordBatch("eve_agents", 20, time.Millisecond)
	c.RecordBatch("eve_races", 4, time.Millisecond)
	c.RecordSkip()

	s := c.Summary()
	assert.Equal(t, int64(120), s.TableRows["eve_agents"])
	assert.Equal(t, int64(4), s.TableRows["eve_races"])
	assert.Equal(t, int64(3), s.FilesWritten)
	assert.Equal(t, int64(1), s.Skipped)
	assert.Greater(t, s.Elapsed, time.Duration(0))
}

func TestCollectorPrometheusCounters(t *testing.T) {
	c := NewCollector()

	c.RecordRows("types", 7)
	c.RecordBatch("eve_item_types", 7, time.Millisecond)

	got := testutil.ToFloat64(c.rowsExtracted.WithLabelValues("types"))
	assert.Equal(t, 7.0, got)

	got = testutil.ToFloat64(c.batchesWritten.WithLabelValues("eve_item_types"))
	assert.Equal(t, 1.0, got)
}

func TestCollectorsAreIndependent(t *testing.T) {
	// Two runs must not share a registry.
	a := NewCollector()
	b := NewCollector()
	require.NotSame(t, a.Registry(), b.Registry())

	a.RecordRows("agents", 1)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.rowsExtracted.WithLabelValues("agents")))
}
