package session

import (
	"github.com/sirupsen/logrus"

	"github.com/tsawler/tabgrid/logging"
	"github.com/tsawler/tabgrid/model"
	"github.com/tsawler/tabgrid/region"
)

// DetectOptions controls a detection pass
type DetectOptions struct {
	// Add the detected lines to the working markers
	Apply bool

	// Clear working markers and history before applying
	ClearExisting bool
}

// markerDetection is a detection waiting to be applied to a page
type markerDetection struct {
	*region.Detection
	page int
}

// DetectLines renders the selected area of the current page, detects ruling
// lines in it and maps them to document space. With opts.Apply the lines
// and the selection boundaries become working markers.
func (s *Session) DetectLines(opts DetectOptions) (*region.Detection, error) {
	if err := s.requireDocument("detect lines"); err != nil {
		return nil, err
	}
	if s.renderer == nil {
		return nil, model.Errorf(model.KindDependencyMissing, "detect lines", "no page renderer")
	}
	if s.selection == nil {
		return nil, model.NewError(model.KindUserInput, "detect lines", ErrNoSelection)
	}

	s.progress(0.1, "extracting selection")
	mag := max(s.cfg.Tuning.Magnification, s.zoom)
	plan, err := region.NewPlan(*s.selection, mag, s.cfg.Tuning.Crop)
	if err != nil {
		return nil, err
	}

	pageWidth, _, err := s.source.PageSize(s.page)
	if err != nil {
		return nil, err
	}

	s.progress(0.3, "rendering selection")
	img, err := s.renderer.Render(s.page, plan.Magnification)
	if err != nil {
		return nil, err
	}

	s.progress(0.5, "analyzing image for table lines")
	det, err := region.Detect(img, pageWidth, plan, s.detector)
	if err != nil {
		return nil, err
	}
	snap := &markerDetection{Detection: det, page: s.page}
	for _, w := range det.Warnings {
		s.warn("page %d: %s", s.page+1, w)
	}
	s.detection = snap

	logging.For("session").WithFields(logrus.Fields{
		"page":       s.page + 1,
		"vertical":   len(det.Columns),
		"horizontal": len(det.Rows),
	}).Info("lines detected")

	if opts.Apply {
		s.progress(0.8, "applying detected lines")
		if _, err := s.ApplyDetection(region.ApplyOptions{ClearExisting: opts.ClearExisting}); err != nil {
			return det, err
		}
	}
	s.progress(1.0, "complete")
	return det, nil
}

// ApplyDetection adds the most recent detection to the working markers
func (s *Session) ApplyDetection(opts region.ApplyOptions) (region.Applied, error) {
	if s.detection == nil {
		return region.Applied{}, model.Errorf(model.KindUserInput, "apply lines", "no lines detected to apply")
	}
	if s.detection.page != s.page {
		return region.Applied{}, model.Errorf(model.KindUserInput, "apply lines",
			"lines were detected on page %d, current page is %d", s.detection.page+1, s.page+1)
	}

	current := s.store.Checkpoint()
	applied, err := s.detection.Apply(s.store, opts)
	if err != nil {
		s.store.Rollback(current)
		return applied, err
	}
	s.beforeApply = &current
	s.detection = nil

	logging.For("session").WithFields(logrus.Fields{
		"columns": applied.Columns,
		"rows":    applied.Rows,
		"skipped": applied.Skipped,
	}).Debug("detected lines applied")
	return applied, nil
}

// RevertDetection restores the working markers and history to what they
// were when the last detection was applied
func (s *Session) RevertDetection() error {
	if s.beforeApply == nil {
		return model.Errorf(model.KindUserInput, "revert lines", "no applied detection to revert")
	}
	s.store.Rollback(*s.beforeApply)
	s.beforeApply = nil
	return nil
}

// LastDetection returns the detection waiting to be applied, if any
func (s *Session) LastDetection() (*region.Detection, bool) {
	if s.detection == nil {
		return nil, false
	}
	return s.detection.Detection, true
}
