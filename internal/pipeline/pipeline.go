// Package pipeline orchestrates a full conversion run. A run is a fixed
// sequence of jobs (universe, landmarks, fsd kinds, bsd kinds), each one a
// complete load, extract and write cycle. Jobs are best-effort over their
// inputs: a missing source document skips its kind with a diagnostic and
// the run continues, so partial exports still convert everything they hold.
package pipeline

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/zenevan/sde2sql/pkg/config"
	"github.com/zenevan/sde2sql/pkg/extract"
	"github.com/zenevan/sde2sql/pkg/json"
	"github.com/zenevan/sde2sql/pkg/logger"
	"github.com/zenevan/sde2sql/pkg/metrics"
	"github.com/zenevan/sde2sql/pkg/sde"
	"github.com/zenevan/sde2sql/pkg/sqlgen"
)

// Subdirectories of the output directory, one per data family.
const (
	universeDir = "universe"
	fsdDir      = "fsd"
	bsdDir      = "bsd"
)

// Runner executes conversion runs against one SDE export.
type Runner struct {
	cfg       *config.Config
	walker    sde.Walker
	registry  *extract.Registry
	writer    *sqlgen.Writer
	collector *metrics.Collector
	logger    *zap.Logger
}

// New wires a runner from a validated configuration. The collector may be
// shared with the caller for run reporting.
func New(cfg *config.Config, collector *metrics.Collector) (*Runner, error) {
	registry, err := extract.Catalog(cfg.Language)
	if err != nil {
		return nil, err
	}

	log := logger.Get().With(zap.String("component", "pipeline"))
	walker := sde.NewFSWalker(cfg.InputRoot, cfg.SpaceTypes, cfg.Language, logger.Get(), collector)

	return &Runner{
		cfg:       cfg,
		walker:    walker,
		registry:  registry,
		writer:    sqlgen.NewWriter(cfg.BatchSize, logger.Get(), collector),
		collector: collector,
		logger:    log,
	}, nil
}

// Registry exposes the entity kind registry, used by the list command.
func (r *Runner) Registry() *extract.Registry {
	return r.registry
}

// Run executes the full conversion sequence and returns the run summary.
// Malformed source documents abort the run; missing ones do not.
func (r *Runner) Run(ctx context.Context) (metrics.Summary, error) {
	r.logger.Info("starting conversion",
		zap.String("input", r.cfg.InputRoot),
		zap.String("output", r.cfg.OutputDir),
		zap.Int("batch_size", r.cfg.BatchSize),
		zap.String("language", r.cfg.Language))

	if err := r.runUniverse(ctx); err != nil {
		return metrics.Summary{}, err
	}
	if err := r.runLandmarks(ctx); err != nil {
		return metrics.Summary{}, err
	}
	if err := r.runFamily(ctx, extract.FamilyFSD, fsdDir, r.walker.LoadFSD); err != nil {
		return metrics.Summary{}, err
	}
	if err := r.runFamily(ctx, extract.FamilyBSD, bsdDir, r.walker.LoadBSD); err != nil {
		return metrics.Summary{}, err
	}

	summary := r.collector.Summary()
	r.logger.Info("conversion complete",
		zap.Int64("files_written", summary.FilesWritten),
		zap.Int64("skipped_sources", summary.Skipped),
		zap.Duration("elapsed", summary.Elapsed))

	if r.cfg.ReportPath != "" {
		if err := json.EncodeFile(r.cfg.ReportPath, summary); err != nil {
			return summary, err
		}
		r.logger.Info("report written", zap.String("path", r.cfg.ReportPath))
	}
	return summary, nil
}

// runFamily converts every registered kind of one data family. Each kind
// re-loads its source document, so kinds sharing a file stay independent.
func (r *Runner) runFamily(ctx context.Context, family extract.Family, dir string, load func(context.Context, string) (sde.Document, error)) error {
	for _, spec := range r.registry.Family(family) {
		if err := ctx.Err(); err != nil {
			return err
		}

		log := r.logger.With(zap.String("kind", spec.Kind), zap.String("table", spec.Table.Table))

		doc, err := load(ctx, spec.File)
		if err != nil {
			return err
		}
		if doc.Len() == 0 {
			log.Info("no source entries, skipping kind")
			continue
		}

		rows := spec.Extract(doc, spec.Table.Columns)
		r.collector.RecordRows(spec.Kind, len(rows))
		log.Info("extracted rows", zap.Int("rows", len(rows)))

		path := filepath.Join(r.cfg.OutputDir, dir, spec.Table.Table+".sql")
		if err := r.writer.Write(path, spec.Table, rows, sqlgen.WriteOptions{Replace: true}); err != nil {
			return err
		}
	}
	return nil
}

// runLandmarks converts the universe landmarks document.
func (r *Runner) runLandmarks(ctx context.Context) error {
	spec := extract.Landmarks(r.cfg.Language)

	doc, err := r.walker.LoadLandmarks(ctx)
	if err != nil {
		return err
	}
	if doc.Len() == 0 {
		r.logger.Info("no landmarks, skipping kind")
		return nil
	}

	rows := spec.Extract(doc, spec.Table.Columns)
	r.collector.RecordRows(spec.Kind, len(rows))

	path := filepath.Join(r.cfg.OutputDir, universeDir, spec.Table.Table+".sql")
	return r.writer.Write(path, spec.Table, rows, sqlgen.WriteOptions{Replace: true})
}
