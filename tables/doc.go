// Package tables turns marker sets and positioned text into grids and
// combines the grids of several pages.
//
// # Cell Assignment
//
// [Assign] sorts the column and row markers and places each text fragment
// by its center point into the half-open cell it falls in:
//
//	g := tables.Assign(
//	    []float64{72, 222, 372},
//	    []float64{92, 122, 152},
//	    frags, tables.JoinNewline)
//
// Fragments outside the marker hull, or exactly on the last marker of an
// axis, are dropped. Fragments sharing a cell are joined with the
// [JoinMode] separator.
//
// # Merging
//
// [Merge] combines per-page grids in page order:
//
//   - [MergeVertical] appends rows; rows stay ragged unless
//     [MergeOptions].PadVertical is set
//   - [MergeHorizontal] pads each grid to a rectangle and places them side
//     by side, filling short grids with empty rows
//
// [Transpose] pads a grid and swaps its rows and columns.
package tables
