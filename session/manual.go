package session

import (
	"github.com/tsawler/tabgrid/model"
	"github.com/tsawler/tabgrid/tables"
)

// manualDimensions returns the grid size implied by page's markers. The
// current page uses its working markers when it has no saved record.
func (s *Session) manualDimensions(page int) (int, int, error) {
	var cols, rows []float64
	if rec, ok := s.store.Record(page); ok {
		cols, rows = rec.Columns, rec.Rows
	} else if page == s.page {
		cols, rows = s.store.Columns(), s.store.Rows()
	}
	if len(cols) < 2 || len(rows) < 2 {
		return 0, 0, model.NewError(model.KindUserInput, "manual input", ErrNoMarkers)
	}
	nRows, nCols := tables.Dimensions(cols, rows)
	return nRows, nCols, nil
}

// SetManualCell stores a typed value for a cell of page. On first use the
// page's grid starts from its last extraction when that matches the markers,
// otherwise empty. It is recreated when the markers no longer match its size.
func (s *Session) SetManualCell(page, row, col int, value string) error {
	nRows, nCols, err := s.manualDimensions(page)
	if err != nil {
		return err
	}
	if row < 0 || row >= nRows || col < 0 || col >= nCols {
		return model.Errorf(model.KindUserInput, "manual input", "cell (%d, %d) outside %dx%d table", row+1, col+1, nRows, nCols)
	}

	g, ok := s.manual[page]
	if !ok || g.RowCount() != nRows || g.ColCount() != nCols {
		g = model.NewGrid(nRows, nCols)
		if prev, ok := s.ExtractedGrid(page); ok && prev.RowCount() == nRows && prev.ColCount() == nCols {
			g = prev.Padded(nCols)
		}
	} else {
		g = g.Clone()
	}
	if err := g.SetCell(row, col, value); err != nil {
		return model.NewError(model.KindUserInput, "manual input", err)
	}
	s.manual[page] = g
	return nil
}

// ManualGrid returns a copy of the manual data of page
func (s *Session) ManualGrid(page int) (*model.Grid, bool) {
	g, ok := s.manual[page]
	return g.Clone(), ok
}

// SetManualGrid replaces the manual data of page. A nil grid removes it.
func (s *Session) SetManualGrid(page int, g *model.Grid) {
	if g == nil {
		delete(s.manual, page)
		return
	}
	s.manual[page] = g.Clone()
}

// ManualPages returns the number of pages with manual data
func (s *Session) ManualPages() int {
	return len(s.manual)
}
