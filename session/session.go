package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/tabgrid/config"
	"github.com/tsawler/tabgrid/document"
	"github.com/tsawler/tabgrid/lines"
	"github.com/tsawler/tabgrid/logging"
	"github.com/tsawler/tabgrid/markers"
	"github.com/tsawler/tabgrid/model"
	"github.com/tsawler/tabgrid/ocr"
	"github.com/tsawler/tabgrid/tables"
	"github.com/tsawler/tabgrid/text"
)

// Zoom limits and step, matching the page viewer
const (
	MinZoom  = 0.1
	ZoomStep = 1.2
)

var (
	// ErrNoDocument is returned by operations that need an open document
	ErrNoDocument = errors.New("please load a PDF first")

	// ErrNoSelection is returned by DetectLines without a selected area
	ErrNoSelection = errors.New("please select an area first")

	// ErrNoMarkers is returned when extraction needs two markers per axis
	ErrNoMarkers = errors.New("please set at least two column and two row markers first")

	// ErrNoMarkedPages is returned by ExtractMarked when no page was saved
	ErrNoMarkedPages = errors.New("no pages have been marked")

	// ErrNoGrid is returned by operations on the current grid before extraction
	ErrNoGrid = errors.New("no extracted table data")
)

// Progress receives coarse progress updates between 0 and 1
type Progress func(fraction float64, stage string)

// Config holds session settings
type Config struct {
	Tuning config.Tuning

	// How fragments sharing a cell are joined
	Join tables.JoinMode

	// Recognize pages without a text layer when OCR support is built in
	OCR bool

	// Optional progress callback for detection and multi-page extraction
	Progress Progress
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Tuning: config.DefaultTuning(),
		Join:   tables.JoinNewline,
	}
}

// TextSource provides fragments for a page
type TextSource interface {
	Fragments(page int) ([]model.TextFragment, error)
}

// Session is one interactive extraction over a document
type Session struct {
	cfg Config

	path     string
	source   document.PageSource
	renderer document.Renderer
	ocr      TextSource
	closers  []io.Closer

	page      int
	zoom      float64
	selection *model.Rect

	store       *markers.Store
	detector    *lines.Detector
	corrector   *text.Corrector
	detection   *markerDetection
	beforeApply *markers.Checkpoint

	grid      *model.Grid
	extracted map[int]*model.Grid
	manual    map[int]*model.Grid
	fragments map[int][]model.TextFragment

	warnings []string
}

// New creates a session without a document
func New(cfg Config) *Session {
	return &Session{
		cfg:       cfg,
		zoom:      1,
		store:     markers.NewStore(),
		detector:  lines.NewDetector(cfg.Tuning.Lines),
		corrector: text.NewCorrector(cfg.Tuning.Orientation),
		extracted: make(map[int]*model.Grid),
		manual:    make(map[int]*model.Grid),
		fragments: make(map[int][]model.TextFragment),
	}
}

// LoadDocument opens the PDF at path for text extraction and rendering.
// All markers, grids and manual data of the previous document are dropped.
func (s *Session) LoadDocument(path string) error {
	doc, err := document.Open(path)
	if err != nil {
		return err
	}
	doc.SetSpanConfig(s.cfg.Tuning.Spans)

	r, err := document.NewPdfiumRenderer(path)
	if err != nil {
		doc.Close()
		return err
	}

	s.Attach(path, doc, r)
	s.closers = append(s.closers, doc, r)

	if s.cfg.OCR {
		s.enableOCR(r)
	}
	return nil
}

func (s *Session) enableOCR(r document.Renderer) {
	client, err := ocr.New()
	if err != nil {
		s.warn("OCR unavailable: %v", err)
		return
	}
	if lang := s.cfg.Tuning.OCR.Language; lang != "" {
		if err := client.SetLanguage(lang); err != nil {
			s.warn("OCR language %s: %v", lang, err)
		}
	}
	src := ocr.NewFragmentSource(r, client)
	src.Pages = s.source
	if m := s.cfg.Tuning.OCR.Magnification; m > 0 {
		src.Magnification = m
	}
	src.MinConfidence = s.cfg.Tuning.OCR.MinConfidence
	s.ocr = src
	s.closers = append(s.closers, client)
}

// Attach installs an already open page source and renderer and resets the
// session. The session does not close them.
func (s *Session) Attach(path string, src document.PageSource, r document.Renderer) {
	s.Close()
	s.path = path
	s.source = src
	s.renderer = r
	s.page = 0
	s.selection = nil
	s.store.Reset()
	s.detection = nil
	s.beforeApply = nil
	s.grid = nil
	s.corrector.Load(nil)
	s.extracted = make(map[int]*model.Grid)
	s.manual = make(map[int]*model.Grid)
	s.fragments = make(map[int][]model.TextFragment)

	logging.For("session").WithFields(logrus.Fields{
		"path":  path,
		"pages": src.PageCount(),
	}).Info("document loaded")
}

// SetTextFallback installs a fragment source used for pages whose text
// layer is empty
func (s *Session) SetTextFallback(src TextSource) {
	s.ocr = src
}

// Close releases resources opened by LoadDocument
func (s *Session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	s.source = nil
	s.renderer = nil
	s.ocr = nil
	return errors.Join(errs...)
}

// Path returns the path of the loaded document
func (s *Session) Path() string {
	return s.path
}

// Config returns the session configuration
func (s *Session) Config() Config {
	return s.cfg
}

// PageCount returns the number of pages, or 0 without a document
func (s *Session) PageCount() int {
	if s.source == nil {
		return 0
	}
	return s.source.PageCount()
}

// Page returns the current page (0-indexed)
func (s *Session) Page() int {
	return s.page
}

// GotoPage makes page current and loads its saved markers. A page without
// saved markers starts with none. The undo history is kept, so Undo on the
// new page may name a marker of the previous page and fail with
// markers.ErrMarkerNotFound.
func (s *Session) GotoPage(page int) error {
	if err := s.requireDocument("goto page"); err != nil {
		return err
	}
	if page < 0 || page >= s.source.PageCount() {
		return model.Errorf(model.KindUserInput, "goto page", "page %d out of range [1, %d]", page+1, s.source.PageCount())
	}
	s.page = page
	s.selection = nil
	s.detection = nil
	s.beforeApply = nil
	s.store.LoadForPage(page)
	return nil
}

// Zoom returns the display zoom
func (s *Session) Zoom() float64 {
	return s.zoom
}

// SetZoom changes the display zoom. Markers are stored in document space
// and are not affected. Values below MinZoom are raised to it.
func (s *Session) SetZoom(zoom float64) error {
	if zoom <= 0 {
		return model.Errorf(model.KindUserInput, "set zoom", "zoom must be positive, got %g", zoom)
	}
	s.zoom = max(zoom, MinZoom)
	return nil
}

// ToDocument converts a display coordinate at the current zoom to document space
func (s *Session) ToDocument(v float64) float64 {
	return v / s.zoom
}

// SelectArea sets the detection area in document space. The corners may be
// given in any order. With a document loaded the area is clipped to the
// current page, and an area entirely off the page is rejected.
func (s *Session) SelectArea(r model.Rect) error {
	r = r.Normalize()
	if r.IsEmpty() {
		return model.Errorf(model.KindGeometry, "select area", "selection %v has no area", r)
	}
	if s.source != nil {
		w, h, err := s.source.PageSize(s.page)
		if err != nil {
			return err
		}
		clipped := r.Intersect(model.Rect{X1: w, Y1: h})
		if clipped.IsEmpty() {
			return model.Errorf(model.KindGeometry, "select area",
				"selection %v lies outside page %d (%.0fx%.0f)", r, s.page+1, w, h)
		}
		r = clipped
	}
	s.selection = &r
	s.detection = nil
	return nil
}

// Selection returns the selected area
func (s *Session) Selection() (model.Rect, bool) {
	if s.selection == nil {
		return model.Rect{}, false
	}
	return *s.selection, true
}

// Markers returns the marker store
func (s *Session) Markers() *markers.Store {
	return s.store
}

// AddMarker adds a marker in document space
func (s *Session) AddMarker(axis markers.Axis, v float64) error {
	return s.store.Add(axis, v)
}

// AddMarkers adds several markers in document space. A duplicate anywhere in
// the batch leaves the store unchanged.
func (s *Session) AddMarkers(axis markers.Axis, values []float64) error {
	return s.store.AddAll(axis, values)
}

// AddDisplayMarker adds a marker given in display coordinates at the
// current zoom
func (s *Session) AddDisplayMarker(axis markers.Axis, v float64) error {
	return s.store.Add(axis, s.ToDocument(v))
}

// Undo removes the most recently added marker
func (s *Session) Undo() (markers.HistoryEntry, error) {
	return s.store.Undo()
}

// ClearMarkers removes the working markers and their history
func (s *Session) ClearMarkers() {
	s.store.Clear()
}

// ResetMarkers removes all markers, history and saved page markers
func (s *Session) ResetMarkers() {
	s.store.Reset()
}

// SavePage saves the working markers for the current page. It reports
// whether an existing record was replaced.
func (s *Session) SavePage() (bool, error) {
	return s.store.SaveForPage(s.page)
}

// Warnings returns the warnings collected since the last call and clears them
func (s *Session) Warnings() []string {
	w := s.warnings
	s.warnings = nil
	return w
}

func (s *Session) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.warnings = append(s.warnings, msg)
	logging.For("session").Warn(msg)
}

func (s *Session) progress(fraction float64, stage string) {
	if s.cfg.Progress != nil {
		s.cfg.Progress(fraction, stage)
	}
}

func (s *Session) requireDocument(op string) error {
	if s.source == nil {
		return model.NewError(model.KindUserInput, op, ErrNoDocument)
	}
	return nil
}
