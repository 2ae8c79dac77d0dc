package region

import (
	"image"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"github.com/tsawler/tabgrid/logging"
	"github.com/tsawler/tabgrid/model"
)

// DefaultMagnification is the minimum render scale used for detection
const DefaultMagnification = 8.0

// ProcessingMagnification returns the render scale for a detection pass at
// the given display zoom
func ProcessingMagnification(displayZoom float64) float64 {
	return max(DefaultMagnification, displayZoom)
}

// CropPolicy controls how far the selection is shrunk before detection so
// that the selection's own border does not dominate the analysis.
type CropPolicy struct {
	// Fixed margin in document units, roughly one table rule
	LineThickness float64 `yaml:"line_thickness" json:"line_thickness"`

	// Upper bound on the margin as a fraction of the selection size
	MaxFraction float64 `yaml:"max_fraction" json:"max_fraction"`
}

// DefaultCropPolicy returns the default crop margins
func DefaultCropPolicy() CropPolicy {
	return CropPolicy{LineThickness: 3, MaxFraction: 0.05}
}

// Margins returns the horizontal and vertical margin for a selection
func (p CropPolicy) Margins(sel model.Rect) (float64, float64) {
	return min(p.LineThickness, sel.Width()*p.MaxFraction),
		min(p.LineThickness, sel.Height()*p.MaxFraction)
}

// Plan describes one detection pass over a selection
type Plan struct {
	// Normalized selection in document space
	Selection model.Rect

	// Selection shrunk by the margins
	Cropped model.Rect

	// Render scale, pixels per document unit
	Magnification float64

	// Crop margins in document units
	MarginX float64
	MarginY float64

	// Whether mapped coordinates are truncated to whole document units
	Truncate bool
}

// NewPlan validates the selection and computes the crop
func NewPlan(sel model.Rect, magnification float64, policy CropPolicy) (Plan, error) {
	sel = sel.Normalize()
	if sel.IsEmpty() {
		return Plan{}, model.Errorf(model.KindGeometry, "plan selection",
			"degenerate selection %.1fx%.1f", sel.Width(), sel.Height())
	}
	if magnification <= 0 {
		return Plan{}, model.Errorf(model.KindGeometry, "plan selection",
			"invalid magnification %g", magnification)
	}
	mx, my := policy.Margins(sel)
	return Plan{
		Selection:     sel,
		Cropped:       sel.Inset(mx, my),
		Magnification: magnification,
		MarginX:       mx,
		MarginY:       my,
		Truncate:      true,
	}, nil
}

// Fit adapts the plan to a page image actually rendered for it. The
// magnification becomes the rendered width divided by pageWidth, since
// renderers may round the requested scale. The selection and crop are then
// clipped to the rendered page so that the crop and the mapping describe the
// same region. A pageWidth of zero keeps the nominal magnification.
func (p Plan) Fit(bounds image.Rectangle, pageWidth float64) (Plan, error) {
	if pageWidth > 0 && bounds.Dx() > 0 {
		if mag := float64(bounds.Dx()) / pageWidth; mag != p.Magnification {
			logging.For("region").WithFields(logrus.Fields{
				"nominal":  p.Magnification,
				"measured": mag,
			}).Debug("render magnification differs from request")
			p.Magnification = mag
		}
	}

	page := model.Rect{
		X1: float64(bounds.Dx()) / p.Magnification,
		Y1: float64(bounds.Dy()) / p.Magnification,
	}
	cropped := p.Cropped.Intersect(page)
	if cropped.IsEmpty() {
		return Plan{}, model.Errorf(model.KindGeometry, "crop selection",
			"selection lies outside the rendered page %v", bounds)
	}
	if cropped != p.Cropped {
		logging.For("region").WithFields(logrus.Fields{
			"selection": p.Selection,
			"page":      page,
		}).Debug("selection clipped to page")
	}
	p.Cropped = cropped
	p.Selection = p.Selection.Intersect(page)
	return p, nil
}

// PixelBounds returns the cropped region in pixels of a page rendered at the
// plan's magnification
func (p Plan) PixelBounds() (image.Rectangle, error) {
	c := p.Cropped.Scale(p.Magnification)
	r := image.Rect(int(c.X0), int(c.Y0), int(c.X1), int(c.Y1))
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return image.Rectangle{}, model.Errorf(model.KindGeometry, "crop selection",
			"zero-area crop %v", r)
	}
	return r, nil
}

// Crop copies the cropped region of a page image into a new image whose
// bounds start at the origin. The page image must have been rendered at the
// plan's magnification and the plan fitted to it.
func (p Plan) Crop(page image.Image) (*image.RGBA, error) {
	if page == nil {
		return nil, model.Errorf(model.KindUserInput, "crop selection", "no page image")
	}
	r, err := p.PixelBounds()
	if err != nil {
		return nil, err
	}
	pb := page.Bounds()
	r = r.Add(pb.Min).Intersect(pb)
	if r.Empty() {
		return nil, model.Errorf(model.KindGeometry, "crop selection",
			"selection lies outside the rendered page %v", pb)
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Copy(out, image.Point{}, page, r, draw.Src, nil)
	return out, nil
}
