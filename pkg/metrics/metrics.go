// Package metrics provides conversion counters for the SDE pipeline using
// Prometheus collectors. The converter is a one-shot batch tool with no
// scrape endpoint, so each run owns its own registry and the totals are
// summarized through the logger when the run completes.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector tracks progress of a single conversion run.
type Collector struct {
	registry *prometheus.Registry

	rowsExtracted  *prometheus.CounterVec // rows produced, labeled by entity kind
	batchesWritten *prometheus.CounterVec // batches emitted, labeled by table
	filesWritten   prometheus.Counter     // SQL files created
	sourcesSkipped prometheus.Counter     // missing or unreadable inputs
	writeDuration  prometheus.Histogram   // per-file write latency

	mu        sync.Mutex
	rowTotals map[string]int64 // table -> rows written
	files     int64
	skipped   int64
	startTime time.Time
}

// Summary is the run total reported when a conversion finishes.
type Summary struct {
	TableRows    map[string]int64 `json:"table_rows"`
	FilesWritten int64            `json:"files_written"`
	Skipped      int64            `json:"skipped_sources"`
	Elapsed      time.Duration    `json:"elapsed"`
}

// NewCollector creates a collector with a private Prometheus registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		rowsExtracted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sde2sql_rows_extracted_total",
				Help: "Total number of rows extracted from source documents",
			},
			[]string{"kind"},
		),
		batchesWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sde2sql_batches_written_total",
				Help: "Total number of SQL batches written",
			},
			[]string{"table"},
		),
		filesWritten: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sde2sql_files_written_total",
				Help: "Total number of SQL files created",
			},
		),
		sourcesSkipped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sde2sql_sources_skipped_total",
				Help: "Total number of missing or unreadable source inputs",
			},
		),
		writeDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sde2sql_file_write_duration_seconds",
				Help:    "Time spent rendering and writing one SQL file",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
		),
		rowTotals: make(map[string]int64),
		startTime: time.Now(),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordRows records rows extracted for an entity kind.
func (c *Collector) RecordRows(kind string, n int) {
	c.rowsExtracted.WithLabelValues(kind).Add(float64(n))
}

// RecordBatch records one written batch of rows for a table.
func (c *Collector) RecordBatch(table string, rows int, elapsed time.Duration) {
	c.batchesWritten.WithLabelValues(table).Inc()
	c.filesWritten.Inc()
	c.writeDuration.Observe(elapsed.Seconds())

	c.mu.Lock()
	c.rowTotals[table] += int64(rows)
	c.files++
	c.mu.Unlock()
}

// RecordSkip records a missing or unreadable source input.
func (c *Collector) RecordSkip() {
	c.sourcesSkipped.Inc()

	c.mu.Lock()
	c.skipped++
	c.mu.Unlock()
}

// Summary returns the accumulated run totals.
func (c *Collector) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	tables := make(map[string]int64, len(c.rowTotals))
	for table, rows := range c.rowTotals {
		tables[table] = rows
	}

	return Summary{
		TableRows:    tables,
		FilesWritten: c.files,
		Skipped:      c.skipped,
		Elapsed:      time.Since(c.startTime),
	}
}
