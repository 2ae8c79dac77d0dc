// Package markers keeps the column and row boundary markers that define a
// table grid.
//
// A [Store] holds two working sets (columns and rows), a LIFO history of
// additions used by [Store.Undo], and per-page records created with
// [Store.SaveForPage]. All values are document-space coordinates, so they are
// independent of the zoom at which a page is displayed.
//
//	s := markers.NewStore()
//	_ = s.Add(markers.Column, 72)
//	_ = s.Add(markers.Column, 310.5)
//	_ = s.Add(markers.Row, 100)
//	_ = s.Add(markers.Row, 140)
//	updated, err := s.SaveForPage(1)
//
// Every working set stays sorted ascending and never holds the same value
// twice. Operations validate before they mutate, so a rejected call leaves
// the store untouched.
package markers
