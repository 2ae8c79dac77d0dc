package document

import (
	"fmt"
	"image"
	"math"
	"os"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/klippa-app/go-pdfium/webassembly"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"github.com/tsawler/tabgrid/logging"
	"github.com/tsawler/tabgrid/model"
)

// pointsPerInch converts a magnification to the DPI PDFium expects
const pointsPerInch = 72

// PdfiumRenderer renders pages with the WebAssembly build of PDFium.
// It is not safe for concurrent use.
type PdfiumRenderer struct {
	pool      pdfium.Pool
	instance  pdfium.Pdfium
	doc       references.FPDF_DOCUMENT
	pageCount int
}

// NewPdfiumRenderer loads the PDF at path into a PDFium instance
func NewPdfiumRenderer(path string) (*PdfiumRenderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.NewError(model.KindUserInput, "open renderer", err)
	}

	pool, err := webassembly.Init(webassembly.Config{
		MinIdle:  1,
		MaxIdle:  1,
		MaxTotal: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start pdfium: %w", err)
	}

	instance, err := pool.GetInstance(time.Second * 30)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to get pdfium instance: %w", err)
	}

	r := &PdfiumRenderer{pool: pool, instance: instance}

	doc, err := instance.OpenDocument(&requests.OpenDocument{File: &data})
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("failed to open PDF for rendering: %w", err)
	}
	r.doc = doc.Document

	count, err := instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{Document: r.doc})
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}
	r.pageCount = count.PageCount
	return r, nil
}

// PageCount returns the number of pages PDFium sees
func (r *PdfiumRenderer) PageCount() int {
	return r.pageCount
}

// Render draws page at magnification pixels per point. The DPI is rounded to
// a whole number, so the image size may differ slightly from page size times
// magnification; callers must measure the returned bounds.
func (r *PdfiumRenderer) Render(page int, magnification float64) (image.Image, error) {
	if err := checkPage("render page", page, r.pageCount); err != nil {
		return nil, err
	}
	if magnification <= 0 {
		return nil, model.Errorf(model.KindGeometry, "render page", "invalid magnification %g", magnification)
	}

	dpi := int(math.Round(magnification * pointsPerInch))
	resp, err := r.instance.RenderPageInDPI(&requests.RenderPageInDPI{
		DPI: dpi,
		Page: requests.Page{
			ByIndex: &requests.PageByIndex{
				Document: r.doc,
				Index:    page,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", page+1, err)
	}
	defer resp.Cleanup()

	// The result image is backed by PDFium memory released by Cleanup.
	src := resp.Result.Image
	out := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	draw.Copy(out, image.Point{}, src, src.Bounds(), draw.Src, nil)

	logging.For("render").WithFields(logrus.Fields{
		"page":   page + 1,
		"dpi":    dpi,
		"width":  out.Bounds().Dx(),
		"height": out.Bounds().Dy(),
	}).Debug("page rendered")
	return out, nil
}

// Close releases the document and the PDFium runtime
func (r *PdfiumRenderer) Close() error {
	if r.instance != nil {
		if r.doc != "" {
			r.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{Document: r.doc})
			r.doc = ""
		}
		r.instance.Close()
		r.instance = nil
	}
	if r.pool != nil {
		err := r.pool.Close()
		r.pool = nil
		return err
	}
	return nil
}
