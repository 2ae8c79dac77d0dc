package session

import (
	"github.com/tsawler/tabgrid/model"
	"github.com/tsawler/tabgrid/text"
)

// CheckOrientation runs the geometric span check on page without extracting
func (s *Session) CheckOrientation(page int) (text.SpanOrientation, error) {
	frags, err := s.Fragments(page)
	if err != nil {
		return text.SpanOrientation{}, err
	}
	return s.corrector.Config().DetectFromSpans(frags), nil
}

// AnalyzeOrientation scores the current grid, using the current page's
// spans for the geometric check
func (s *Session) AnalyzeOrientation() (text.Analysis, error) {
	if s.grid == nil {
		return text.Analysis{}, model.NewError(model.KindUserInput, "analyze orientation", ErrNoGrid)
	}
	var frags []model.TextFragment
	if s.source != nil {
		f, err := s.Fragments(s.page)
		if err != nil {
			s.warn("orientation check without spans: %v", err)
		}
		frags = f
	}
	return s.corrector.Analyze(s.grid, frags), nil
}

// CorrectOrientation analyzes the current grid if needed and applies the
// detected correction. It reports whether the grid changed.
func (s *Session) CorrectOrientation() (*model.Grid, bool, error) {
	if s.grid == nil {
		return nil, false, model.NewError(model.KindUserInput, "correct orientation", ErrNoGrid)
	}
	if s.corrector.State() == text.Unanalyzed {
		if _, err := s.AnalyzeOrientation(); err != nil {
			return nil, false, err
		}
	}
	g, changed, err := s.corrector.Correct()
	if err != nil {
		return nil, false, err
	}
	if changed {
		s.grid = s.corrector.Grid()
	}
	return g, changed, nil
}

// ForceOrientation applies a correction regardless of the analysis
func (s *Session) ForceOrientation(kind text.Correction) (*model.Grid, error) {
	if s.grid == nil {
		return nil, model.NewError(model.KindUserInput, "correct orientation", ErrNoGrid)
	}
	g, err := s.corrector.Apply(kind)
	if err != nil {
		return nil, err
	}
	s.grid = s.corrector.Grid()
	return g, nil
}

// RestoreOrientation undoes the last correction
func (s *Session) RestoreOrientation() (*model.Grid, error) {
	g, err := s.corrector.Restore()
	if err != nil {
		return nil, err
	}
	s.grid = s.corrector.Grid()
	return g, nil
}

// OrientationState returns the corrector's state for the current grid
func (s *Session) OrientationState() text.State {
	return s.corrector.State()
}
