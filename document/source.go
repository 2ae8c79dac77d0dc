package document

import (
	"image"

	"github.com/tsawler/tabgrid/model"
)

// PageSource provides page geometry and positioned text
type PageSource interface {
	PageCount() int
	PageSize(page int) (width, height float64, err error)
	Fragments(page int) ([]model.TextFragment, error)
}

// Renderer produces a raster of a page at magnification pixels per point.
// The returned image's bounds report the pixel size actually produced.
type Renderer interface {
	Render(page int, magnification float64) (image.Image, error)
}

func checkPage(op string, page, count int) error {
	if page < 0 || page >= count {
		return model.Errorf(model.KindUserInput, op, "page %d out of range [1, %d]", page+1, count)
	}
	return nil
}
