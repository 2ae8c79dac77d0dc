// Package tabgrid provides a fluent API for pulling tables out of PDF pages
// using column and row markers.
//
// Basic usage, with markers saved earlier by the interactive session:
//
//	grid, warnings, err := tabgrid.Open("invoice.pdf").
//	    Config("invoice.json").
//	    Grid()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tabgrid.FormatWarnings(warnings))
//	}
//
// With explicit markers in PDF points:
//
//	grid, _, err := tabgrid.Open("report.pdf").
//	    Pages(2, 3).
//	    Markers([]float64{72, 222, 372}, []float64{92, 122, 152}).
//	    Merge(tables.MergeVertical).
//	    Grid()
//
// Detecting ruling lines inside a selected area:
//
//	det, _, err := tabgrid.Open("report.pdf").
//	    Detect(1, model.Rect{X0: 60, Y0: 80, X1: 540, Y1: 400})
//
// The session package offers the stateful, command driven workflow.
package tabgrid

import (
	"github.com/tsawler/tabgrid/document"
)

// Open returns an Extractor for the PDF at filename. Nothing is read until
// a terminal operation such as Grid or Detect runs.
//
// Example:
//
//	grid, warnings, err := tabgrid.Open("document.pdf").Config("document.json").Grid()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource creates an Extractor over an already opened page source and
// renderer. path names the document in warnings and snapshots. The renderer
// may be nil when only Grid is used.
// The caller is responsible for closing both.
//
// Example:
//
//	doc, err := document.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer doc.Close()
//	grid, _, err := tabgrid.FromSource(doc.Path(), doc, nil).Markers(cols, rows).Grid()
func FromSource(path string, src document.PageSource, r document.Renderer) *Extractor {
	return &Extractor{
		filename: path,
		source:   src,
		renderer: r,
		options:  defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil.
//
// Example:
//
//	count := tabgrid.Must(tabgrid.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustGrid wraps a call to Grid or Detect and panics if the error is
// non-nil. Warnings are discarded.
//
// Example:
//
//	grid := tabgrid.MustGrid(tabgrid.Open("document.pdf").Config("document.json").Grid())
func MustGrid[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
