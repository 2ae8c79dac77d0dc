package session

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/tabgrid/logging"
	"github.com/tsawler/tabgrid/markers"
	"github.com/tsawler/tabgrid/model"
	"github.com/tsawler/tabgrid/tables"
)

// GridSource tells where a page grid came from
type GridSource int

const (
	// FromExtraction grids were assigned from page text
	FromExtraction GridSource = iota
	// FromManual grids were entered by hand
	FromManual
	// FromEmpty grids are placeholders for pages that yielded nothing
	FromEmpty
)

func (g GridSource) String() string {
	switch g {
	case FromManual:
		return "manual"
	case FromEmpty:
		return "empty"
	default:
		return "extracted"
	}
}

// PageGrid is the grid of one marked page
type PageGrid struct {
	Page   int
	Grid   *model.Grid
	Source GridSource
}

// MergeOptions controls ExtractMerged
type MergeOptions struct {
	Mode      tables.MergeMode
	Transpose bool
	tables.MergeOptions
}

// SetJoinMode changes how fragments sharing a cell are joined
func (s *Session) SetJoinMode(mode tables.JoinMode) {
	s.cfg.Join = mode
}

// Fragments returns the text fragments of page. Pages with an empty text
// layer fall back to OCR when it is available.
func (s *Session) Fragments(page int) ([]model.TextFragment, error) {
	if err := s.requireDocument("page text"); err != nil {
		return nil, err
	}
	if frags, ok := s.fragments[page]; ok {
		return frags, nil
	}

	frags, err := s.source.Fragments(page)
	if err != nil {
		return nil, err
	}
	if len(frags) == 0 {
		if s.ocr == nil {
			s.warn("page %d has no text layer", page+1)
		} else {
			frags, err = s.ocr.Fragments(page)
			if err != nil {
				return nil, fmt.Errorf("page %d has no text layer and OCR failed: %w", page+1, err)
			}
			s.warn("page %d has no text layer; used OCR for %d words", page+1, len(frags))
		}
	}
	s.fragments[page] = frags
	return frags, nil
}

// Extract assigns the current page's text to the grid formed by the working
// markers. The result becomes the current grid.
func (s *Session) Extract() (*model.Grid, error) {
	if err := s.requireDocument("extract"); err != nil {
		return nil, err
	}
	cols, rows := s.store.Columns(), s.store.Rows()
	if len(cols) < 2 || len(rows) < 2 {
		return nil, model.NewError(model.KindUserInput, "extract", ErrNoMarkers)
	}

	frags, err := s.Fragments(s.page)
	if err != nil {
		return nil, err
	}
	g := tables.Assign(cols, rows, frags, s.cfg.Join)

	s.extracted[s.page] = g.Clone()
	s.setGrid(g)
	if s.corrector.Config().QuickCheck(g) {
		s.warn("page %d: text may be stacked vertically; try force-orient unstack", s.page+1)
	}

	logging.For("session").WithFields(logrus.Fields{
		"page": s.page + 1,
		"rows": g.RowCount(),
		"cols": g.ColCount(),
	}).Info("table extracted")
	return g.Clone(), nil
}

// ExtractMarked returns one grid per page with saved markers, in page order.
// Manually entered data wins over extraction. A page whose text cannot be
// read yields an empty grid sized by its markers. The working markers and
// the current grid are not changed.
func (s *Session) ExtractMarked() ([]PageGrid, error) {
	if err := s.requireDocument("extract marked pages"); err != nil {
		return nil, err
	}
	pages := s.store.MarkedPages()
	if len(pages) == 0 {
		return nil, model.NewError(model.KindUserInput, "extract marked pages", ErrNoMarkedPages)
	}

	out := make([]PageGrid, 0, len(pages))
	for i, page := range pages {
		s.progress(float64(i+1)/float64(len(pages)),
			fmt.Sprintf("extracting page %d (%d/%d)", page+1, i+1, len(pages)))

		rec, _ := s.store.Record(page)
		out = append(out, s.extractPage(page, rec))
	}

	logging.For("session").WithField("pages", len(out)).Info("marked pages extracted")
	return out, nil
}

// ExtractPage makes a page with saved markers current and extracts it the
// way ExtractMarked does. An extracted grid becomes the current grid.
func (s *Session) ExtractPage(page int) (PageGrid, error) {
	if err := s.GotoPage(page); err != nil {
		return PageGrid{}, err
	}
	rec, ok := s.store.Record(page)
	if !ok {
		return PageGrid{}, model.Errorf(model.KindUserInput, "extract page", "page %d has no saved markers", page+1)
	}
	pg := s.extractPage(page, rec)
	if pg.Source == FromExtraction {
		s.setGrid(pg.Grid.Clone())
	}
	return pg, nil
}

func (s *Session) extractPage(page int, rec markers.PageRecord) PageGrid {
	if g, ok := s.manual[page]; ok && !g.IsEmpty() {
		return PageGrid{Page: page, Grid: g.Clone(), Source: FromManual}
	}
	if len(rec.Columns) < 2 || len(rec.Rows) < 2 {
		s.warn("page %d: fewer than two markers on an axis", page+1)
		return PageGrid{Page: page, Grid: tables.EmptyFor(rec), Source: FromEmpty}
	}

	frags, err := s.Fragments(page)
	if err != nil {
		s.warn("page %d: %v", page+1, err)
		return PageGrid{Page: page, Grid: tables.EmptyFor(rec), Source: FromEmpty}
	}
	g := tables.Assign(rec.Columns, rec.Rows, frags, s.cfg.Join)
	s.extracted[page] = g.Clone()
	return PageGrid{Page: page, Grid: g, Source: FromExtraction}
}

// ExtractMerged extracts every marked page and merges the grids. The result
// becomes the current grid.
func (s *Session) ExtractMerged(opts MergeOptions) (*model.Grid, error) {
	pages, err := s.ExtractMarked()
	if err != nil {
		return nil, err
	}

	grids := make([]*model.Grid, len(pages))
	for i, p := range pages {
		grids[i] = p.Grid
	}
	g := tables.Merge(grids, opts.Mode, opts.MergeOptions)
	if opts.Transpose {
		if g, err = tables.Transpose(g); err != nil {
			return nil, err
		}
	}
	s.setGrid(g)

	logging.For("session").WithFields(logrus.Fields{
		"pages":     len(pages),
		"mode":      opts.Mode.String(),
		"transpose": opts.Transpose,
		"rows":      g.RowCount(),
		"cols":      g.ColCount(),
	}).Info("marked pages merged")
	return g.Clone(), nil
}

// Grid returns a copy of the current grid
func (s *Session) Grid() (*model.Grid, bool) {
	if s.grid == nil {
		return nil, false
	}
	return s.grid.Clone(), true
}

// ExtractedGrid returns the last grid extracted from page
func (s *Session) ExtractedGrid(page int) (*model.Grid, bool) {
	g, ok := s.extracted[page]
	return g.Clone(), ok
}

// Transpose swaps the rows and columns of the current grid
func (s *Session) Transpose() (*model.Grid, error) {
	if s.grid == nil {
		return nil, model.NewError(model.KindUserInput, "transpose", ErrNoGrid)
	}
	g, err := tables.Transpose(s.grid)
	if err != nil {
		return nil, err
	}
	s.setGrid(g)
	return g.Clone(), nil
}

func (s *Session) setGrid(g *model.Grid) {
	s.grid = g
	s.corrector.Load(g)
}
