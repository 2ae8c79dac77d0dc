package ocr

import (
	"errors"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/tabgrid/logging"
	"github.com/tsawler/tabgrid/model"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Tesseract page segmentation mode that finds as much text as possible in
// no particular order, which suits cells scattered over a table
const sparseText = 11

// Word is one recognized word and its box in image pixels
type Word struct {
	Text       string
	Box        image.Rectangle
	Confidence float64
}

// Recognizer finds words in an image. *Client implements it.
type Recognizer interface {
	Words(img image.Image) ([]Word, error)
}

// Renderer renders a page (0-indexed) at a magnification
type Renderer interface {
	Render(page int, magnification float64) (image.Image, error)
}

// PageSizer reports page dimensions in document units
type PageSizer interface {
	PageSize(page int) (width, height float64, err error)
}

// FragmentSource produces text fragments for a page by rendering it and
// running OCR on the raster.
type FragmentSource struct {
	Renderer   Renderer
	Recognizer Recognizer

	// Optional. When set, word boxes are scaled by the rendered width over
	// the page width instead of the requested magnification.
	Pages PageSizer

	// Render scale requested for recognition
	Magnification float64

	// Words below this confidence (0-100) are dropped
	MinConfidence float64
}

// NewFragmentSource creates a source rendering at 4x and keeping words with
// confidence of at least 30
func NewFragmentSource(r Renderer, rec Recognizer) *FragmentSource {
	return &FragmentSource{
		Renderer:      r,
		Recognizer:    rec,
		Magnification: 4,
		MinConfidence: 30,
	}
}

// Fragments renders page and returns its recognized words in document space
func (s *FragmentSource) Fragments(page int) ([]model.TextFragment, error) {
	if s.Renderer == nil || s.Recognizer == nil {
		return nil, model.NewError(model.KindDependencyMissing, "ocr page", ErrOCRNotEnabled)
	}
	img, err := s.Renderer.Render(page, s.Magnification)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", page+1, err)
	}
	words, err := s.Recognizer.Words(img)
	if err != nil {
		return nil, fmt.Errorf("failed to recognize page %d: %w", page+1, err)
	}
	mag, err := s.effectiveMagnification(page, img.Bounds())
	if err != nil {
		return nil, err
	}
	frags := ToFragments(words, img.Bounds().Min, mag, s.MinConfidence)

	logging.For("ocr").WithFields(logrus.Fields{
		"page":          page + 1,
		"magnification": mag,
		"words":         len(words),
		"fragments":     len(frags),
	}).Debug("page recognized")
	return frags, nil
}

func (s *FragmentSource) effectiveMagnification(page int, bounds image.Rectangle) (float64, error) {
	if s.Pages == nil || bounds.Dx() <= 0 {
		return s.Magnification, nil
	}
	w, _, err := s.Pages.PageSize(page)
	if err != nil {
		return 0, fmt.Errorf("failed to size page %d: %w", page+1, err)
	}
	if w <= 0 {
		return s.Magnification, nil
	}
	return float64(bounds.Dx()) / w, nil
}

// ToFragments maps word boxes from an image rendered at magnification with
// the given origin into document space
func ToFragments(words []Word, origin image.Point, magnification, minConfidence float64) []model.TextFragment {
	if magnification <= 0 {
		magnification = 1
	}
	frags := make([]model.TextFragment, 0, len(words))
	for _, w := range words {
		if w.Confidence < minConfidence {
			continue
		}
		b := w.Box.Sub(origin)
		frags = append(frags, model.TextFragment{
			Text: w.Text,
			BBox: model.NewRect(
				float64(b.Min.X)/magnification,
				float64(b.Min.Y)/magnification,
				float64(b.Max.X)/magnification,
				float64(b.Max.Y)/magnification,
			),
			Dir:      model.Point{X: 1},
			FontSize: float64(b.Dy()) / magnification,
		})
	}
	return frags
}
