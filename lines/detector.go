package lines

import (
	"fmt"
	"image"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/tabgrid/logging"
	"github.com/tsawler/tabgrid/model"
)

// Result holds verified line positions in pixels of the analyzed image
type Result struct {
	// X positions of vertical lines, ascending
	Vertical []int

	// Y positions of horizontal lines, ascending
	Horizontal []int

	// Copy of the input with the detected lines drawn on it
	Annotated *image.RGBA

	// Dimensions of the analyzed image
	Width  int
	Height int

	// Non-fatal conditions such as an image too small for reliable detection
	Warnings []string
}

// Empty reports whether no lines were found
func (r *Result) Empty() bool {
	return len(r.Vertical) == 0 && len(r.Horizontal) == 0
}

// Detector finds ruling lines in raster images
type Detector struct {
	config Config
}

// NewDetector creates a detector with the given configuration
func NewDetector(config Config) *Detector {
	return &Detector{config: config}
}

// Config returns the detector configuration
func (d *Detector) Config() Config {
	return d.config
}

// Detect analyzes img and returns verified vertical and horizontal lines.
// Finding nothing is not an error.
func (d *Detector) Detect(img image.Image) (*Result, error) {
	if img == nil {
		return nil, model.Errorf(model.KindGeometry, "detect lines", "no image")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, model.Errorf(model.KindGeometry, "detect lines", "zero-area image %dx%d", b.Dx(), b.Dy())
	}

	log := logging.For("lines")
	res := &Result{Width: b.Dx(), Height: b.Dy()}

	if min(b.Dx(), b.Dy()) < d.config.MinReliableSize {
		msg := fmt.Sprintf("image size %dx%d may be too small for reliable line detection; use a higher zoom", b.Dx(), b.Dy())
		res.Warnings = append(res.Warnings, msg)
		log.WithFields(logrus.Fields{"width": b.Dx(), "height": b.Dy(), "kind": model.KindLowConfidence.String()}).Warn(msg)
	}

	m := newIntensityMap(img)
	res.Vertical = d.detectAxis(axis{m: m, vertical: true})
	res.Horizontal = d.detectAxis(axis{m: m, vertical: false})
	res.Annotated = annotate(img, res, d.config.Labels)

	if res.Empty() {
		res.Warnings = append(res.Warnings, "no lines detected")
	}

	log.WithFields(logrus.Fields{
		"vertical":   len(res.Vertical),
		"horizontal": len(res.Horizontal),
	}).Debug("line detection complete")

	return res, nil
}

func (d *Detector) detectAxis(a axis) []int {
	profile := d.projection(a)
	candidates := d.peaks(profile)
	candidates = append(candidates, d.edgeCandidates(a)...)

	reps := Cluster(candidates, d.config.clusterThreshold(a.size()))

	verified := make([]int, 0, len(reps))
	for _, pos := range reps {
		if pos >= 0 && pos < a.size() && d.verify(a, pos) {
			verified = append(verified, pos)
		}
	}
	slices.Sort(verified)
	return verified
}

// projection returns the normalized darkness profile along the axis
func (d *Detector) projection(a axis) []float64 {
	stride := d.config.stride(a.length())
	profile := make([]float64, a.size())
	maxSum := 0.0
	for pos := range profile {
		sum := 0.0
		for along := 0; along < a.length(); along += stride {
			sum += 255 - a.at(pos, along)
		}
		profile[pos] = sum
		maxSum = max(maxSum, sum)
	}
	if maxSum == 0 {
		return make([]float64, len(profile))
	}
	for i := range profile {
		profile[i] /= maxSum
	}
	return profile
}

// peaks returns positions that exceed the threshold and are a local maximum
// or the edge of a plateau. Neighbors outside the profile never satisfy the
// plateau test.
func (d *Detector) peaks(p []float64) []int {
	n := len(p)
	plateau := func(x, step int) bool {
		nb, beyond := x+step, x+2*step
		if beyond < 0 || beyond >= n {
			return false
		}
		return p[x] == p[nb] && p[nb] > p[beyond]
	}

	var out []int
	for x := 1; x < n-1; x++ {
		if p[x] <= d.config.PeakThreshold {
			continue
		}
		left := p[x] > p[x-1] || plateau(x, -1)
		right := p[x] > p[x+1] || plateau(x, 1)
		if left && right {
			out = append(out, x)
		}
	}
	return out
}

// edgeCandidates scans fixed slices across the orthogonal axis for sharp
// darkening between adjacent pixels.
func (d *Detector) edgeCandidates(a axis) []int {
	n := a.size()
	l := a.length()
	slicesAt := []int{0, l / 4, l / 2, (l * 3) / 4, l - 1}

	var out []int
	for _, along := range slicesAt {
		for pos := 1; pos < n-1; pos++ {
			cur := a.at(pos, along)
			if cur >= d.config.DarkIntensity {
				continue
			}
			if a.at(pos-1, along)-cur > d.config.EdgeDelta || a.at(pos+1, along)-cur > d.config.EdgeDelta {
				out = append(out, pos)
			}
		}
	}
	return out
}

// verify checks the line at pos and up to VerifyOffset neighbors on each side
func (d *Detector) verify(a axis, pos int) bool {
	paths := []int{pos}
	for off := 1; off <= d.config.VerifyOffset; off++ {
		if pos-off >= 0 {
			paths = append(paths, pos-off)
		}
		if pos+off < a.size() {
			paths = append(paths, pos+off)
		}
	}

	stride := d.config.stride(a.length())
	for _, p := range paths {
		dark, total := 0, 0
		for along := 0; along < a.length(); along += stride {
			total++
			if a.at(p, along) < d.config.DarkIntensity {
				dark++
			}
		}
		if total > 0 && float64(dark)/float64(total) >= d.config.DarkRatio {
			return true
		}
	}
	return false
}
