package sqlgen

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Span is one half-open [Start, End) slice of a row sequence.
type Span struct {
	Start int
	End   int
}

// NumBatches returns ceil(total/limit); zero rows need zero batches.
func NumBatches(total, limit int) int {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Partition splits total rows into consecutive spans of at most limit rows,
// preserving order. Concatenating the spans reproduces [0, total) exactly.
func Partition(total, limit int) []Span {
	n := NumBatches(total, limit)
	spans := make([]Span, 0, n)
	for start := 0; start < total; start += limit {
		end := start + limit
		if end > total {
			end = total
		}
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans
}

// PartName derives the file name for one batch. A single-batch table keeps
// the base name unchanged; multi-batch tables insert a 1-based part number
// before the extension for every part. The function is pure: it never
// consults the filesystem.
func PartName(base string, part, total int) string {
	if total <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "_" + strconv.Itoa(part) + ext
}
