package sde

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/zenevan/sde2sql/pkg/errors"
	"github.com/zenevan/sde2sql/pkg/metrics"
)

// FSD and BSD are the two flat document families under an SDE root.
const (
	FSDDir = "fsd"
	BSDDir = "bsd"
)

// Walker supplies raw documents per entity kind. A missing input location
// yields an empty document and a logged diagnostic, never an error;
// unparseable documents fail at this boundary so the rest of the pipeline
// only ever sees well-formed entries.
type Walker interface {
	// LoadFSD parses one keyed-mapping document from the fsd directory.
	LoadFSD(ctx context.Context, file string) (Document, error)
	// LoadBSD parses one record-list document from the bsd directory.
	LoadBSD(ctx context.Context, file string) (Document, error)
	// WalkUniverse traverses the universe tree, propagating region and
	// constellation context into every descendant.
	WalkUniverse(ctx context.Context) (Universe, error)
	// LoadLandmarks parses the universe landmarks document.
	LoadLandmarks(ctx context.Context) (Document, error)
}

// FSWalker reads an SDE export from the local filesystem.
type FSWalker struct {
	root       string
	spaceTypes []string
	lang       string
	logger     *zap.Logger
	collector  *metrics.Collector
}

// NewFSWalker creates a walker over the given SDE root directory. The
// lang parameter selects the localized name translation for universe
// levels; the collector may be nil.
func NewFSWalker(root string, spaceTypes []string, lang string, logger *zap.Logger, collector *metrics.Collector) *FSWalker {
	return &FSWalker{
		root:       root,
		spaceTypes: spaceTypes,
		lang:       lang,
		logger:     logger.With(zap.String("component", "walker")),
		collector:  collector,
	}
}

// LoadFSD parses one FSD document, keyed by entity id. Entries are ordered
// by ascending key so repeated runs produce identical output.
func (w *FSWalker) LoadFSD(ctx context.Context, file string) (Document, error) {
	path := filepath.Join(w.root, FSDDir, file)

	data, ok, err := w.readFile(path)
	if err != nil || !ok {
		return Document{}, err
	}

	var raw map[interface{}]Fields
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Document{}, errors.Wrap(err, errors.ErrorTypeParse, "failed to parse document").
			WithDetail("path", path)
	}

	entries := make([]Entry, 0, len(raw))
	for key, fields := range raw {
		entries = append(entries, Entry{Key: key, Fields: fields})
	}
	sortEntries(entries)

	return Document{Entries: entries}, nil
}

// LoadBSD parses one BSD document, a top-level record list. Source order
// is preserved.
func (w *FSWalker) LoadBSD(ctx context.Context, file string) (Document, error) {
	path := filepath.Join(w.root, BSDDir, file)

	data, ok, err := w.readFile(path)
	if err != nil || !ok {
		return Document{}, err
	}

	var raw []Fields
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Document{}, errors.Wrap(err, errors.ErrorTypeParse, "failed to parse document").
			WithDetail("path", path)
	}

	entries := make([]Entry, 0, len(raw))
	for _, fields := range raw {
		entries = append(entries, Entry{Fields: fields})
	}

	return Document{Entries: entries}, nil
}

// LoadLandmarks parses universe/landmarks/landmarks.yaml, a keyed mapping
// like the FSD documents.
func (w *FSWalker) LoadLandmarks(ctx context.Context) (Document, error) {
	path := filepath.Join(w.root, "universe", "landmarks", "landmarks.yaml")

	data, ok, err := w.readFile(path)
	if err != nil || !ok {
		return Document{}, err
	}

	var raw map[interface{}]Fields
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Document{}, errors.Wrap(err, errors.ErrorTypeParse, "failed to parse landmarks").
			WithDetail("path", path)
	}

	entries := make([]Entry, 0, len(raw))
	for key, fields := range raw {
		entries = append(entries, Entry{Key: key, Fields: fields})
	}
	sortEntries(entries)

	return Document{Entries: entries}, nil
}

// readFile reads a source file, treating absence as an empty result.
func (w *FSWalker) readFile(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: paths are derived from the validated SDE root
	if err != nil {
		if os.IsNotExist(err) {
			w.logger.Warn("source file not found, skipping", zap.String("path", path))
			w.recordSkip()
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, errors.ErrorTypeFile, "failed to read source file").
			WithDetail("path", path)
	}
	return data, true, nil
}

func (w *FSWalker) recordSkip() {
	if w.collector != nil {
		w.collector.RecordSkip()
	}
}
