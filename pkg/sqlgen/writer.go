package sqlgen

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/zenevan/sde2sql/pkg/errors"
	"github.com/zenevan/sde2sql/pkg/metrics"
	"github.com/zenevan/sde2sql/pkg/schema"
	stringpool "github.com/zenevan/sde2sql/pkg/strings"
)

// Writer renders row sets into batched SQL scripts on disk.
type Writer struct {
	limit     int
	logger    *zap.Logger
	collector *metrics.Collector
	now       func() time.Time
}

// WriteOptions adjusts one Write call.
type WriteOptions struct {
	// Replace emits a full-table DELETE in the first batch. Callers
	// splitting one table across several Write calls set it on exactly
	// one of them, so the table is cleared once, not once per file.
	Replace bool
}

// NewWriter creates a writer with the given batch row limit. The collector
// may be nil.
func NewWriter(limit int, logger *zap.Logger, collector *metrics.Collector) *Writer {
	return &Writer{
		limit:     limit,
		logger:    logger.With(zap.String("component", "writer")),
		collector: collector,
		now:       time.Now,
	}
}

// Write partitions rows into batches of at most the configured limit and
// writes one self-contained transactional script per batch. An empty row
// set writes nothing. Existing files of the same name are overwritten.
func (w *Writer) Write(path string, spec schema.TableSpec, rows []Row, opts WriteOptions) error {
	if len(rows) == 0 {
		w.logger.Info("no data to write", zap.String("table", spec.Table))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create output directory").
			WithDetail("path", path)
	}

	spans := Partition(len(rows), w.limit)
	total := len(spans)

	for i, span := range spans {
		part := i + 1
		partPath := PartName(path, part, total)
		started := w.now()

		if err := w.writeBatch(partPath, spec, rows[span.Start:span.End], part, total, opts.Replace && part == 1); err != nil {
			return err
		}

		if w.collector != nil {
			w.collector.RecordBatch(spec.Table, span.End-span.Start, time.Since(started))
		}
		w.logger.Info("wrote batch",
			zap.Int("rows", span.End-span.Start),
			zap.String("path", partPath))
	}

	return nil
}

// writeBatch renders and writes one script file.
func (w *Writer) writeBatch(path string, spec schema.TableSpec, rows []Row, part, total int, clear bool) error {
	b := stringpool.GetBuilder(stringpool.Large)
	defer stringpool.PutBuilder(b, stringpool.Large)

	b.WriteString("-- Generated by sde2sql on ")
	b.WriteString(w.now().Format(timestampLayout))
	b.WriteString("\nSTART TRANSACTION;\n\n")

	if clear {
		b.WriteString("-- Clear existing data\nDELETE FROM ")
		b.WriteString(spec.Table)
		b.WriteString(";\n\n")
	}

	b.WriteString("-- Insert data part ")
	b.WriteString(strconv.Itoa(part))
	b.WriteString(" of ")
	b.WriteString(strconv.Itoa(total))
	b.WriteString("\nINSERT INTO ")
	b.WriteString(spec.Table)
	b.WriteString(" (")
	b.WriteString(stringpool.JoinPooled(spec.Columns, ", "))
	b.WriteString(")\nVALUES\n")

	for i, row := range rows {
		b.WriteByte('(')
		for j, value := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(Sanitize(value))
		}
		if i < len(rows)-1 {
			b.WriteString("),\n")
		} else {
			b.WriteString(");\n")
		}
	}

	b.WriteString("\nCOMMIT;\n")

	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil { //nolint:gosec
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write batch script").
			WithDetail("path", path)
	}
	return nil
}
