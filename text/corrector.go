package text

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/tabgrid/logging"
	"github.com/tsawler/tabgrid/model"
)

// State tracks the orientation workflow of one grid
type State int

const (
	// Unanalyzed grids have not been scored yet
	Unanalyzed State = iota
	// NoIssue means the analysis found nothing to correct
	NoIssue
	// VerticalDetected means stacked one-character lines were found
	VerticalDetected
	// RTLDetected means characters appear reversed
	RTLDetected
	// FlippedDetected means the text reads upside down
	FlippedDetected
	// Corrected grids have had a correction applied
	Corrected
)

func (s State) String() string {
	switch s {
	case NoIssue:
		return "no issue"
	case VerticalDetected:
		return "vertical detected"
	case RTLDetected:
		return "rtl detected"
	case FlippedDetected:
		return "flipped detected"
	case Corrected:
		return "corrected"
	default:
		return "unanalyzed"
	}
}

func stateFor(c Correction) State {
	switch c {
	case Vertical:
		return VerticalDetected
	case ReversedRTL:
		return RTLDetected
	case Flipped:
		return FlippedDetected
	default:
		return NoIssue
	}
}

var (
	// ErrNoGrid is returned when the corrector has no grid loaded
	ErrNoGrid = errors.New("no table data to correct")
	// ErrNothingToRestore is returned by Restore when no correction was applied
	ErrNothingToRestore = errors.New("no original data to restore")
)

// Corrector detects and undoes orientation distortions in one grid.
// It keeps the grid from before the most recent correction so that a
// single Restore is possible.
type Corrector struct {
	config   OrientationConfig
	state    State
	grid     *model.Grid
	original *model.Grid
	prior    State
	analysis Analysis
}

// NewCorrector creates a corrector with the given configuration
func NewCorrector(config OrientationConfig) *Corrector {
	return &Corrector{config: config}
}

// Load replaces the grid and resets the state to Unanalyzed
func (c *Corrector) Load(g *model.Grid) {
	c.grid = g.Clone()
	c.original = nil
	c.state = Unanalyzed
	c.analysis = Analysis{}
}

// Analyze loads g and scores it. frags are the source spans for the
// geometric check and may be nil.
func (c *Corrector) Analyze(g *model.Grid, frags []model.TextFragment) Analysis {
	c.Load(g)
	span := c.config.DetectFromSpans(frags)
	a := c.config.Score(c.grid, span)
	if a.Verdict == NoCorrection && span.Verdict == ReversedRTL {
		a.Verdict = ReversedRTL
	}
	c.analysis = a
	c.state = stateFor(a.Verdict)

	logging.For("orientation").WithFields(logrus.Fields{
		"score":   a.Score,
		"verdict": a.Verdict.String(),
		"spans":   span.Total,
	}).Debug("orientation analyzed")
	return a
}

// Correct applies the detected correction. It reports false when no issue
// was detected.
func (c *Corrector) Correct() (*model.Grid, bool, error) {
	if c.grid == nil {
		return nil, false, model.NewError(model.KindUserInput, "correct orientation", ErrNoGrid)
	}
	if c.state == Unanalyzed {
		c.Analyze(c.grid, nil)
	}
	var kind Correction
	switch c.state {
	case VerticalDetected:
		kind = Vertical
	case RTLDetected:
		kind = ReversedRTL
	case FlippedDetected:
		kind = Flipped
	default:
		return c.grid.Clone(), false, nil
	}
	g, err := c.Apply(kind)
	return g, err == nil, err
}

// Apply forces a correction regardless of the analysis
func (c *Corrector) Apply(kind Correction) (*model.Grid, error) {
	if c.grid == nil {
		return nil, model.NewError(model.KindUserInput, "correct orientation", ErrNoGrid)
	}
	if kind == NoCorrection {
		return c.grid.Clone(), nil
	}
	c.original = c.grid
	c.prior = c.state
	c.grid = c.config.CorrectGrid(c.grid, kind)
	c.state = Corrected
	return c.grid.Clone(), nil
}

// Restore returns to the grid from before the last correction
func (c *Corrector) Restore() (*model.Grid, error) {
	if c.original == nil {
		return nil, model.NewError(model.KindUserInput, "restore orientation", ErrNothingToRestore)
	}
	c.grid = c.original
	c.original = nil
	c.state = c.prior
	return c.grid.Clone(), nil
}

// State returns the current workflow state
func (c *Corrector) State() State {
	return c.state
}

// Grid returns a copy of the current grid
func (c *Corrector) Grid() *model.Grid {
	return c.grid.Clone()
}

// Analysis returns the most recent analysis
func (c *Corrector) Analysis() Analysis {
	return c.analysis
}

// Config returns the corrector configuration
func (c *Corrector) Config() OrientationConfig {
	return c.config
}
