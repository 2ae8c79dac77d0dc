// Package region turns a document-space selection into a raster crop for
// line detection and maps detected pixel positions back to document space.
//
// Four quantities must stay consistent through a detection pass: the
// selection rectangle, the processing magnification, the inward crop margin
// and the pixel size of the image that was actually analyzed. A [Plan]
// carries the first three, [Plan.Fit] corrects the magnification to the
// render actually produced and clips to the page, and [Plan.Mapping]
// measures the fourth:
//
//	plan, err := region.NewPlan(sel, region.ProcessingMagnification(zoom), region.DefaultCropPolicy())
//	plan, err = plan.Fit(pageImage.Bounds(), pageWidth)
//	crop, err := plan.Crop(pageImage)
//	res, err := lines.NewDetector(lines.DefaultConfig()).Detect(crop)
//	m := plan.Mapping(crop)
//	x := m.X(res.Vertical[0])
//
// The scale is the document width of the cropped region divided by the
// pixel width of the processed image. Rounding during the crop means this is
// not exactly 1/magnification, which is only used as a fallback when the
// processed image is unavailable.
//
// [Apply] promotes the selection boundaries and every mapped line to
// markers in a [markers.Store].
package region
