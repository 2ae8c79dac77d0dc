package region

import (
	"image"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/tabgrid/logging"
	"github.com/tsawler/tabgrid/model"
)

// Mapping converts pixel offsets in the processed image to document space
type Mapping struct {
	// Document position of the processed image's top-left pixel
	OriginX float64
	OriginY float64

	// Document units per pixel
	Scale float64

	// False when the scale fell back to 1/magnification
	Measured bool

	// Truncate mapped values to whole document units
	Truncate bool
}

// Mapping derives the pixel-to-document scale from the processed image.
// When the image is missing or has no width the scale falls back to
// 1/magnification and the result is marked as not measured.
func (p Plan) Mapping(processed image.Image) Mapping {
	m := Mapping{
		OriginX:  p.Cropped.X0,
		OriginY:  p.Cropped.Y0,
		Truncate: p.Truncate,
	}

	docWidth := p.Cropped.Width()
	if processed != nil && processed.Bounds().Dx() > 0 && docWidth > 0 {
		m.Scale = docWidth / float64(processed.Bounds().Dx())
		m.Measured = true
		logging.For("region").WithFields(logrus.Fields{
			"scale":     m.Scale,
			"doc_width": docWidth,
			"px_width":  processed.Bounds().Dx(),
		}).Debug("measured mapping scale")
		return m
	}

	m.Scale = 1 / p.Magnification
	logging.For("region").WithFields(logrus.Fields{
		"kind":          model.KindMapping.String(),
		"magnification": p.Magnification,
	}).Warn("processed image unavailable, using approximate scale")
	return m
}

// X maps a pixel column to a document x coordinate
func (m Mapping) X(px int) float64 {
	return m.apply(m.OriginX, px)
}

// Y maps a pixel row to a document y coordinate
func (m Mapping) Y(px int) float64 {
	return m.apply(m.OriginY, px)
}

func (m Mapping) apply(origin float64, px int) float64 {
	v := origin + float64(px)*m.Scale
	if m.Truncate {
		v = math.Trunc(v)
	}
	return v
}
