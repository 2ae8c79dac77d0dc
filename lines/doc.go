// Package lines finds ruling lines in a raster image of a table region.
//
// Detection works on a grayscale intensity buffer (0.299R+0.587G+0.114B) and
// runs in five steps:
//
//  1. Projection: every column (for vertical lines) or row (for horizontal
//     lines) is sampled at a stride of dimension/200 and its darkness summed.
//     The profile is normalized by its maximum.
//  2. Peaks: positions above [Config.PeakThreshold] that are a local maximum
//     or the edge of a flat top become candidates.
//  3. Edge slices: five fixed slices across the orthogonal axis are scanned
//     for sharp drops in intensity, which catches thin lines the projection
//     under-weights.
//  4. Clustering: candidates closer than max(3, 1% of the dimension) collapse
//     to the median of their group. See [Cluster].
//  5. Verification: a representative survives when the line through it, or a
//     line up to five pixels to either side, is dark over at least 35% of its
//     samples.
//
// The thresholds are heuristics tuned for rendered PDF pages with dark rules
// on a light background. They live in [Config] and can be overridden from a
// YAML tuning file.
//
//	d := lines.NewDetector(lines.DefaultConfig())
//	res, err := d.Detect(img)
//	for _, x := range res.Vertical {
//	    fmt.Println("column rule at pixel", x)
//	}
//
// [Result.Annotated] is a copy of the input with verified vertical lines in
// red, horizontal lines in blue and the image border in green.
package lines
