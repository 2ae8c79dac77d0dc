package document

import (
	"errors"
	"fmt"
	"io"
	"os"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/tabgrid/logging"
	"github.com/tsawler/tabgrid/model"
)

// ErrNoDocument is returned when no PDF path is given
var ErrNoDocument = errors.New("no PDF document")

// Document is an open PDF file
type Document struct {
	path   string
	dims   []types.Dim
	file   io.Closer
	reader *lpdf.Reader
	spans  SpanConfig
}

// Open validates the PDF at path and prepares it for text extraction
func Open(path string) (*Document, error) {
	if path == "" {
		return nil, model.NewError(model.KindUserInput, "open document", ErrNoDocument)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, model.NewError(model.KindUserInput, "open document", err)
	}

	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}
	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}

	f, r, err := lpdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF text layer: %w", err)
	}

	logging.For("document").WithFields(logrus.Fields{
		"path":  path,
		"pages": len(dims),
	}).Debug("document opened")

	return &Document{
		path:   path,
		dims:   dims,
		file:   f,
		reader: r,
		spans:  DefaultSpanConfig(),
	}, nil
}

// Path returns the file the document was opened from
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return len(d.dims)
}

// PageSize returns the page width and height in points
func (d *Document) PageSize(page int) (float64, float64, error) {
	if err := checkPage("page size", page, d.PageCount()); err != nil {
		return 0, 0, err
	}
	return d.dims[page].Width, d.dims[page].Height, nil
}

// SetSpanConfig replaces the glyph grouping thresholds
func (d *Document) SetSpanConfig(c SpanConfig) {
	d.spans = c
}

// Fragments returns the page's text spans in document space
func (d *Document) Fragments(page int) (frags []model.TextFragment, err error) {
	if err := checkPage("page text", page, d.PageCount()); err != nil {
		return nil, err
	}

	// ledongthuc/pdf panics on some malformed content streams
	defer func() {
		if r := recover(); r != nil {
			frags = nil
			err = fmt.Errorf("failed to read text of page %d: %v", page+1, r)
		}
	}()

	p := d.reader.Page(page + 1)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d not found", page+1)
	}

	height := d.dims[page].Height
	if mb := p.V.Key("MediaBox"); mb.Kind() == lpdf.Array && mb.Len() == 4 {
		height = mb.Index(3).Float64() - mb.Index(1).Float64()
	}

	content := p.Content()
	glyphs := make([]Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		top := height - (t.Y + t.FontSize*0.8)
		glyphs = append(glyphs, Glyph{
			Text:     t.S,
			Font:     t.Font,
			FontSize: t.FontSize,
			BBox:     model.Rect{X0: t.X, Y0: top, X1: t.X + t.W, Y1: top + t.FontSize},
		})
	}

	frags = GroupSpans(glyphs, d.spans)
	logging.For("document").WithFields(logrus.Fields{
		"page":   page + 1,
		"glyphs": len(glyphs),
		"spans":  len(frags),
	}).Debug("page text extracted")
	return frags, nil
}

// Close releases the file handle
func (d *Document) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
