package tabgrid

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/tabgrid/config"
	"github.com/tsawler/tabgrid/document"
	"github.com/tsawler/tabgrid/logging"
	"github.com/tsawler/tabgrid/model"
	"github.com/tsawler/tabgrid/region"
	"github.com/tsawler/tabgrid/session"
	"github.com/tsawler/tabgrid/tables"
)

// Extractor provides a fluent interface for extracting tables from a PDF.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining. Terminal
// operations open the document, work on a private session and release it
// before returning.
type Extractor struct {
	// Source
	filename string

	// Already opened source and renderer owned by the caller
	source   document.PageSource
	renderer document.Renderer

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		source:   e.source,
		renderer: e.renderer,
		options:  e.options.clone(),
		err:      e.err,
		warnings: append([]Warning(nil), e.warnings...),
	}
}

// Pages restricts extraction to the given 1-indexed pages. Without Pages,
// Grid uses every page with saved markers, or the current page of the
// loaded configuration.
//
// Example:
//
//	grid, _, err := tabgrid.Open("doc.pdf").Config("doc.json").Pages(1, 3).Grid()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append([]int(nil), pages...)
	return newExt
}

// PageRange restricts extraction to pages start through end, inclusive
// and 1-indexed.
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	if start > end {
		newExt.err = model.Errorf(model.KindUserInput, "page range", "start %d after end %d", start, end)
		return newExt
	}
	newExt.options.pages = nil
	for p := start; p <= end; p++ {
		newExt.options.pages = append(newExt.options.pages, p)
	}
	return newExt
}

// Markers sets column and row markers in PDF points, origin top-left.
// They apply to every selected page and take precedence over markers
// loaded with Config.
func (e *Extractor) Markers(columns, rows []float64) *Extractor {
	newExt := e.clone()
	if len(columns) < 2 || len(rows) < 2 {
		newExt.err = model.NewError(model.KindUserInput, "markers", session.ErrNoMarkers)
		return newExt
	}
	newExt.options.columns = append([]float64(nil), columns...)
	newExt.options.rows = append([]float64(nil), rows...)
	return newExt
}

// Config loads markers and manual data from a snapshot written by the
// session (JSON, or YAML for .yaml and .yml paths).
func (e *Extractor) Config(path string) *Extractor {
	newExt := e.clone()
	newExt.options.configPath = path
	return newExt
}

// Tuning overlays detector and orientation settings from a YAML file
func (e *Extractor) Tuning(path string) *Extractor {
	newExt := e.clone()
	newExt.options.tuningPath = path
	return newExt
}

// JoinWith sets how fragments sharing a cell are joined
func (e *Extractor) JoinWith(mode tables.JoinMode) *Extractor {
	newExt := e.clone()
	newExt.options.join = mode
	return newExt
}

// Merge sets how the grids of several pages are combined.
// The default stacks them vertically.
func (e *Extractor) Merge(mode tables.MergeMode) *Extractor {
	newExt := e.clone()
	newExt.options.merge = mode
	return newExt
}

// PadMerge pads every row of a vertical merge to the widest row
func (e *Extractor) PadMerge() *Extractor {
	newExt := e.clone()
	newExt.options.padMerge = true
	return newExt
}

// Transpose swaps rows and columns of the final grid
func (e *Extractor) Transpose() *Extractor {
	newExt := e.clone()
	newExt.options.transpose = true
	return newExt
}

// CorrectOrientation analyzes each page grid for vertical, reversed or
// flipped text and applies the detected correction.
func (e *Extractor) CorrectOrientation() *Extractor {
	newExt := e.clone()
	newExt.options.orient = true
	return newExt
}

// OCR recognizes pages without a text layer when OCR support is built in
func (e *Extractor) OCR() *Extractor {
	newExt := e.clone()
	newExt.options.ocr = true
	return newExt
}

// PageCount returns the number of pages in the document
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if e.source != nil {
		return e.source.PageCount(), nil
	}
	doc, err := document.Open(e.filename)
	if err != nil {
		return 0, err
	}
	defer doc.Close()
	return doc.PageCount(), nil
}

// Grid extracts the table of every selected page and merges the results.
// It returns the grid, any warnings encountered during processing,
// and an error if extraction failed.
//
// Example:
//
//	grid, warnings, err := tabgrid.Open("doc.pdf").Config("doc.json").Grid()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tabgrid.FormatWarnings(warnings))
//	}
func (e *Extractor) Grid() (*model.Grid, []Warning, error) {
	pages, warnings, err := e.PageGrids()
	if err != nil {
		return nil, warnings, err
	}

	grids := make([]*model.Grid, len(pages))
	for i, pg := range pages {
		grids[i] = pg.Grid
	}

	var g *model.Grid
	if len(grids) == 1 {
		g = grids[0]
	} else {
		g = tables.Merge(grids, e.options.merge, tables.MergeOptions{PadVertical: e.options.padMerge})
	}
	if e.options.transpose {
		if g, err = tables.Transpose(g); err != nil {
			return nil, warnings, err
		}
	}
	return g, warnings, nil
}

// PageGrids extracts one grid per selected page, in page order, without
// merging or transposing. Manually entered data from the configuration
// wins over extraction unless explicit markers were given. A page saved
// with fewer than two markers on an axis, or whose text cannot be read,
// yields an empty grid and a warning.
func (e *Extractor) PageGrids() ([]session.PageGrid, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	s, done, err := e.open(false)
	if err != nil {
		return nil, nil, err
	}
	defer done()

	w := e.clone()
	if w.options.configPath != "" {
		if err := s.LoadConfig(w.options.configPath); err != nil {
			return nil, w.warnings, err
		}
		w.collect(s, 0)
	}

	pages, err := w.resolvePages(s)
	if err != nil {
		return nil, w.warnings, err
	}

	// Working markers from the configuration serve pages without records
	baseCols, baseRows := s.Markers().Columns(), s.Markers().Rows()
	if w.options.hasMarkers() {
		baseCols, baseRows = w.options.columns, w.options.rows
	}

	out := make([]session.PageGrid, 0, len(pages))
	for _, page := range pages {
		pg, err := w.pageGrid(s, page, baseCols, baseRows)
		w.collect(s, page+1)
		if err != nil {
			return nil, w.warnings, fmt.Errorf("page %d: %w", page+1, err)
		}
		out = append(out, pg)
	}

	logging.For("tabgrid").WithFields(logrus.Fields{
		"file":     w.filename,
		"pages":    len(out),
		"warnings": len(w.warnings),
	}).Debug("page grids extracted")
	return out, w.warnings, nil
}

func (e *Extractor) pageGrid(s *session.Session, page int, cols, rows []float64) (session.PageGrid, error) {
	if !e.options.hasMarkers() {
		if g, ok := s.ManualGrid(page); ok {
			return session.PageGrid{Page: page, Grid: g, Source: session.FromManual}, nil
		}
	}

	_, recorded := s.Markers().Record(page)
	if recorded && !e.options.hasMarkers() {
		pg, err := s.ExtractPage(page)
		if err != nil {
			return session.PageGrid{}, err
		}
		if e.options.orient && pg.Source == session.FromExtraction {
			if pg.Grid, _, err = s.CorrectOrientation(); err != nil {
				return session.PageGrid{}, err
			}
		}
		return pg, nil
	}

	if page != s.Page() || recorded {
		if err := s.GotoPage(page); err != nil {
			return session.PageGrid{}, err
		}
	}
	s.Markers().SetWorking(cols, rows)

	g, err := s.Extract()
	if err != nil {
		return session.PageGrid{}, err
	}
	if e.options.orient {
		if g, _, err = s.CorrectOrientation(); err != nil {
			return session.PageGrid{}, err
		}
	}
	return session.PageGrid{Page: page, Grid: g, Source: session.FromExtraction}, nil
}

// Detect renders the selected area of a 1-indexed page and finds ruling
// lines in it. Nothing is saved; use the Columns and Rows of the result as
// markers.
//
// Example:
//
//	det, _, err := tabgrid.Open("doc.pdf").Detect(1, model.Rect{X0: 60, Y0: 80, X1: 540, Y1: 400})
//	if err != nil {
//	    // handle error
//	}
//	grid, _, err := tabgrid.Open("doc.pdf").Pages(1).Markers(det.Columns, det.Rows).Grid()
func (e *Extractor) Detect(page int, sel model.Rect) (*region.Detection, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	s, done, err := e.open(true)
	if err != nil {
		return nil, nil, err
	}
	defer done()

	w := e.clone()
	if page < 1 || page > s.PageCount() {
		return nil, nil, model.Errorf(model.KindUserInput, "detect", "page %d out of range (1-%d)", page, s.PageCount())
	}
	if err := s.GotoPage(page - 1); err != nil {
		return nil, nil, err
	}
	if err := s.SelectArea(sel); err != nil {
		return nil, nil, err
	}
	det, err := s.DetectLines(session.DetectOptions{})
	w.collect(s, page)
	if err != nil {
		return nil, w.warnings, err
	}
	return det, w.warnings, nil
}

// open starts a session on the document. withRenderer also loads the page
// renderer. The returned func releases what open acquired.
func (e *Extractor) open(withRenderer bool) (*session.Session, func(), error) {
	tuning, err := config.LoadTuning(e.options.tuningPath)
	if err != nil {
		return nil, nil, err
	}
	cfg := session.DefaultConfig()
	cfg.Tuning = tuning
	cfg.Join = e.options.join
	cfg.OCR = e.options.ocr
	s := session.New(cfg)

	if e.source != nil {
		if withRenderer && e.renderer == nil {
			return nil, nil, model.Errorf(model.KindDependencyMissing, "open", "no page renderer")
		}
		s.Attach(e.filename, e.source, e.renderer)
		return s, func() {}, nil
	}

	if withRenderer || e.options.ocr {
		if err := s.LoadDocument(e.filename); err != nil {
			return nil, nil, fmt.Errorf("failed to open PDF: %w", err)
		}
		return s, func() { s.Close() }, nil
	}

	doc, err := document.Open(e.filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	doc.SetSpanConfig(tuning.Spans)
	s.Attach(e.filename, doc, nil)
	return s, func() {
		s.Close()
		doc.Close()
	}, nil
}

// collect moves the session's pending warnings onto the extractor
func (e *Extractor) collect(s *session.Session, page int) {
	for _, msg := range s.Warnings() {
		e.warnings = append(e.warnings, Warning{Page: page, Message: msg})
	}
}

// resolvePages returns the 0-indexed pages to extract, in order
func (e *Extractor) resolvePages(s *session.Session) ([]int, error) {
	pageCount := s.PageCount()

	if len(e.options.pages) == 0 {
		if marked := s.Markers().MarkedPages(); len(marked) > 0 && !e.options.hasMarkers() {
			return marked, nil
		}
		return []int{s.Page()}, nil
	}

	// Convert 1-indexed to 0-indexed and validate
	seen := make(map[int]bool)
	var pageIndices []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, model.Errorf(model.KindUserInput, "pages", "page %d out of range (1-%d)", p, pageCount)
		}
		zeroIndexed := p - 1
		if !seen[zeroIndexed] {
			seen[zeroIndexed] = true
			pageIndices = append(pageIndices, zeroIndexed)
		}
	}

	sort.Ints(pageIndices)
	return pageIndices, nil
}
