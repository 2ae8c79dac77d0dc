package tabgrid

import (
	"slices"

	"github.com/tsawler/tabgrid/tables"
)

// ExtractOptions holds configuration for table extraction.
type ExtractOptions struct {
	// Page selection (1-indexed in API, stored as-is)
	pages []int

	// Explicit markers in document space; override saved ones
	columns []float64
	rows    []float64

	// Saved marker snapshot and detector tuning files
	configPath string
	tuningPath string

	// Processing options
	join      tables.JoinMode
	merge     tables.MergeMode
	padMerge  bool
	transpose bool
	orient    bool
	ocr       bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages: nil, // nil means marked pages, or the first page
		join:  tables.JoinNewline,
		merge: tables.MergeVertical,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	newOpts.pages = slices.Clone(o.pages)
	newOpts.columns = slices.Clone(o.columns)
	newOpts.rows = slices.Clone(o.rows)
	return newOpts
}

// hasMarkers reports whether explicit markers were given
func (o ExtractOptions) hasMarkers() bool {
	return len(o.columns) > 0 || len(o.rows) > 0
}
