// Package sde2sql converts an EVE Online static data export (SDE) into
// batched, transactional SQL insert scripts.
//
// An SDE root holds three data families: keyed YAML mappings under fsd/,
// record-list YAML documents under bsd/, and the nested universe tree of
// region, constellation and solar-system descriptors. sde2sql walks all
// three, maps each entity kind onto its relational table, and writes the
// rows as SQL scripts of at most one batch-size rows per file, each
// wrapped in START TRANSACTION/COMMIT so a partial replay never leaves a
// table half-loaded.
//
// # Quick Start
//
// Convert an export from the command line:
//
//	sde2sql convert ./sde --output ./sql --batch-size 1000 --language en
//
// Or convert a single entity kind programmatically:
//
//	import (
//	    "context"
//	    "github.com/zenevan/sde2sql/pkg/extract"
//	    "github.com/zenevan/sde2sql/pkg/logger"
//	    "github.com/zenevan/sde2sql/pkg/sde"
//	    "github.com/zenevan/sde2sql/pkg/sqlgen"
//	)
//
//	walker := sde.NewFSWalker("./sde", []string{"eve"}, "en", logger.Get(), nil)
//	doc, _ := walker.LoadFSD(context.Background(), "types.yaml")
//
//	registry, _ := extract.Catalog("en")
//	spec, _ := registry.Lookup("types")
//	rows := spec.Extract(doc, spec.Table.Columns)
//
//	writer := sqlgen.NewWriter(1000, logger.Get(), nil)
//	err := writer.Write("./sql/eve_item_types.sql", spec.Table, rows, sqlgen.WriteOptions{Replace: true})
//
// # Key Packages
//
//	pkg/sde       - Source walker: YAML parsing and universe traversal
//	pkg/extract   - Entity kind catalog and document-to-row extraction
//	pkg/sqlgen    - Value sanitization, batching, SQL script writer
//	pkg/config    - Unified run configuration
//	pkg/metrics   - Prometheus-backed run counters and the run summary
//
// Missing source files are diagnostics, not failures: a partial export
// converts everything it holds. Malformed YAML fails the run at the
// walker boundary.
package sde2sql
