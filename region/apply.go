package region

import (
	"image"

	"github.com/tsawler/tabgrid/lines"
	"github.com/tsawler/tabgrid/markers"
	"github.com/tsawler/tabgrid/model"
)

// ApplyOptions controls how detected lines become markers
type ApplyOptions struct {
	// Clear working markers and history first
	ClearExisting bool
}

// Applied reports how many markers a call to Apply added
type Applied struct {
	Columns int
	Rows    int
	// Values that were already present
	Skipped int
}

// Apply adds the selection boundaries and every mapped detected line to the
// store, skipping values that already exist.
func Apply(store *markers.Store, plan Plan, m Mapping, res *lines.Result, opts ApplyOptions) (Applied, error) {
	if store == nil {
		return Applied{}, model.Errorf(model.KindUserInput, "apply lines", "no marker store")
	}

	cols := []float64{plan.Selection.X0, plan.Selection.X1}
	rows := []float64{plan.Selection.Y0, plan.Selection.Y1}
	if res != nil {
		for _, px := range res.Vertical {
			cols = append(cols, m.X(px))
		}
		for _, px := range res.Horizontal {
			rows = append(rows, m.Y(px))
		}
	}

	if opts.ClearExisting {
		store.Clear()
	}

	var out Applied
	add := func(axis markers.Axis, values []float64, n *int) {
		for _, v := range values {
			if store.Has(axis, v) {
				out.Skipped++
				continue
			}
			if store.Add(axis, v) == nil {
				*n++
			}
		}
	}
	add(markers.Column, cols, &out.Columns)
	add(markers.Row, rows, &out.Rows)
	return out, nil
}

// Detection bundles the outcome of one detection pass
type Detection struct {
	Plan    Plan
	Mapping Mapping
	Result  *lines.Result

	// Processed image the detector ran on
	Image *image.RGBA

	// Detected lines in document space, ascending
	Columns []float64
	Rows    []float64

	Warnings []string
}

// Detect fits the plan to a rendered page image, crops it, runs the detector
// on the crop and maps the lines back to document space. pageWidth is the
// page width in document units; zero trusts the plan's magnification.
func Detect(page image.Image, pageWidth float64, plan Plan, d *lines.Detector) (*Detection, error) {
	if page == nil {
		return nil, model.Errorf(model.KindUserInput, "crop selection", "no page image")
	}
	plan, err := plan.Fit(page.Bounds(), pageWidth)
	if err != nil {
		return nil, err
	}
	crop, err := plan.Crop(page)
	if err != nil {
		return nil, err
	}
	res, err := d.Detect(crop)
	if err != nil {
		return nil, err
	}
	return NewDetection(plan, crop, res), nil
}

// NewDetection maps an existing detector result through the plan
func NewDetection(plan Plan, processed *image.RGBA, res *lines.Result) *Detection {
	var img image.Image
	if processed != nil {
		img = processed
	}
	m := plan.Mapping(img)
	det := &Detection{
		Plan:    plan,
		Mapping: m,
		Result:  res,
		Image:   processed,
	}
	if res != nil {
		det.Warnings = append(det.Warnings, res.Warnings...)
		for _, px := range res.Vertical {
			det.Columns = append(det.Columns, m.X(px))
		}
		for _, px := range res.Horizontal {
			det.Rows = append(det.Rows, m.Y(px))
		}
	}
	if !m.Measured {
		det.Warnings = append(det.Warnings, "mapping uses approximate scale 1/magnification")
	}
	return det
}

// Apply promotes the detection to markers
func (d *Detection) Apply(store *markers.Store, opts ApplyOptions) (Applied, error) {
	return Apply(store, d.Plan, d.Mapping, d.Result, opts)
}
