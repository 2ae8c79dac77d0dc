// Package model provides the shared data types used throughout tabgrid.
//
// All coordinates in this package are in document space: PDF points with
// the origin at the top-left corner of the page and y growing downward.
// Pixel-space values only exist inside the lines and region packages and
// are converted before they reach a [Grid] or a marker set.
//
// # Geometry
//
//   - [Point] - 2D point, also used as a direction vector for text spans
//   - [Rect] - axis-aligned rectangle given by two corners
//
// # Text
//
// A [TextFragment] is a positioned unit of extracted text. Fragments are
// produced per page by a text source and consumed once per extraction pass.
//
// # Grids
//
// The [Grid] type is the rectangular cell matrix produced by intersecting
// column and row markers:
//
//	g := model.NewGrid(2, 3)
//	_ = g.SetCell(0, 1, "Total")
//	fmt.Print(g.Preview())
//
// Grids produced by a vertical multi-page merge may be ragged; [Grid.ColCount]
// reports the widest row and [Grid.Padded] returns a rectangular copy.
//
// # Errors
//
// [Error] carries an [ErrorKind] so callers can tell user mistakes from
// geometry problems, low-confidence detections, mapping fallbacks and missing
// optional dependencies without string matching.
package model
