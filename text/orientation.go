package text

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/tabgrid/model"
)

// Correction names an orientation distortion and the transform that undoes it
type Correction int

const (
	// NoCorrection means the text reads normally
	NoCorrection Correction = iota
	// Vertical text was extracted one character per line, bottom to top
	Vertical
	// ReversedRTL text came out with its characters in reverse order
	ReversedRTL
	// Flipped text is rotated 180 degrees
	Flipped
	// Stacked text came out as reversed lines in reverse order. It is only
	// applied on request, never detected.
	Stacked
)

func (c Correction) String() string {
	switch c {
	case Vertical:
		return "vertical"
	case ReversedRTL:
		return "rtl"
	case Flipped:
		return "flipped"
	case Stacked:
		return "unstack"
	default:
		return "none"
	}
}

// ParseCorrection parses "vertical", "rtl", "flipped", "unstack" or "none"
func ParseCorrection(s string) (Correction, bool) {
	switch strings.ToLower(s) {
	case "vertical":
		return Vertical, true
	case "rtl":
		return ReversedRTL, true
	case "flipped":
		return Flipped, true
	case "unstack":
		return Stacked, true
	case "none", "":
		return NoCorrection, true
	}
	return NoCorrection, false
}

// OrientationConfig holds the detection heuristic's tunables.
// The heuristic is English-biased and can misfire on short or unusual text.
type OrientationConfig struct {
	// Score at or above which text is reported as vertical
	Threshold int `yaml:"threshold" json:"threshold"`

	// Flattened text shorter than this is not scored
	MinTextLength int `yaml:"min_text_length" json:"min_text_length"`

	// Common words as they appear when their characters are reversed
	ReversedWords []string `yaml:"reversed_words" json:"reversed_words"`

	// 'n' more frequent than this multiple of 'e' suggests a vertical scan
	NERatio float64 `yaml:"ne_ratio" json:"ne_ratio"`

	// Consecutive short tokens that count as one run
	RunLength int `yaml:"run_length" json:"run_length"`

	// Maximum letters in a short token
	TokenLength int `yaml:"token_length" json:"token_length"`

	// Score contributions
	RunScore      int `yaml:"run_score" json:"run_score"`
	ReversedScore int `yaml:"reversed_score" json:"reversed_score"`
	NEScore       int `yaml:"ne_score" json:"ne_score"`
	NewlineScore  int `yaml:"newline_score" json:"newline_score"`
	SpanScore     int `yaml:"span_score" json:"span_score"`

	// Fraction of spans that must agree for a geometric verdict
	SpanRatio float64 `yaml:"span_ratio" json:"span_ratio"`

	// Height to width ratio above which a span is treated as vertical
	VerticalAspect float64 `yaml:"vertical_aspect" json:"vertical_aspect"`

	// Minimum span height for the aspect test, in document units
	MinVerticalHeight float64 `yaml:"min_vertical_height" json:"min_vertical_height"`

	// Cells with fewer non-space characters are never transformed
	MinCellChars int `yaml:"min_cell_chars" json:"min_cell_chars"`

	// Fraction of 1-2 character lines a cell needs for the vertical transform
	ShortLineFraction float64 `yaml:"short_line_fraction" json:"short_line_fraction"`

	// Fraction of 1-2 character lines a cell needs to count in QuickCheck
	QuickShortFraction float64 `yaml:"quick_short_fraction" json:"quick_short_fraction"`

	// Fraction of non-empty cells QuickCheck needs to report an issue
	QuickCellRatio float64 `yaml:"quick_cell_ratio" json:"quick_cell_ratio"`
}

// DefaultOrientationConfig returns default configuration
func DefaultOrientationConfig() OrientationConfig {
	return OrientationConfig{
		Threshold:          5,
		MinTextLength:      20,
		ReversedWords:      []string{"eht", "dna", "rof", "era", "elbaT", "egaP", "txeT", "ataD"},
		NERatio:            1.5,
		RunLength:          3,
		TokenLength:        2,
		RunScore:           2,
		ReversedScore:      3,
		NEScore:            5,
		NewlineScore:       1,
		SpanScore:          10,
		SpanRatio:          0.3,
		VerticalAspect:     3,
		MinVerticalHeight:  20,
		MinCellChars:       3,
		ShortLineFraction:  0.6,
		QuickShortFraction: 0.5,
		QuickCellRatio:     0.2,
	}
}

// SpanOrientation summarizes the geometry of the source text spans
type SpanOrientation struct {
	Vertical int
	RTL      int
	Total    int
	Verdict  Correction
}

// Analysis is the breakdown of an orientation score
type Analysis struct {
	Score int

	// Runs of short letter tokens
	Runs int
	// Occurrences of known reversed words
	ReversedWords int
	// Whether 'n' outnumbers 'e' beyond the ratio
	NESkew bool
	// Letters split by a line break
	MidwordNewlines int

	Span    SpanOrientation
	Verdict Correction
}

var midwordNewline = regexp.MustCompile(`[a-zA-Z]\n[a-zA-Z]`)

// DetectFromSpans classifies spans as vertical by their direction vector or
// a tall narrow box, and as right-to-left by a negative x direction.
func (c OrientationConfig) DetectFromSpans(frags []model.TextFragment) SpanOrientation {
	var s SpanOrientation
	for _, f := range frags {
		s.Total++
		w, h := f.BBox.Width(), f.BBox.Height()
		if math.Abs(f.Dir.Y) > math.Abs(f.Dir.X) || (h > w*c.VerticalAspect && h > c.MinVerticalHeight) {
			s.Vertical++
		}
		if f.Dir.X < 0 {
			s.RTL++
		}
	}
	if s.Total == 0 {
		return s
	}
	switch {
	case float64(s.Vertical)/float64(s.Total) > c.SpanRatio:
		s.Verdict = Vertical
	case float64(s.RTL)/float64(s.Total) > c.SpanRatio:
		s.Verdict = ReversedRTL
	}
	return s
}

// Score rates how likely the grid's text was extracted vertically.
// span is the geometric pre-check of the source spans; pass the zero value
// when no spans are available.
func (c OrientationConfig) Score(g *model.Grid, span SpanOrientation) Analysis {
	a := Analysis{Span: span}
	all := flatten(g)
	if utf8.RuneCountInString(all) < c.MinTextLength {
		return a
	}

	a.Runs = c.shortTokenRuns(all)
	a.Score += a.Runs * c.RunScore

	for _, w := range c.ReversedWords {
		a.ReversedWords += strings.Count(all, w)
	}
	a.Score += a.ReversedWords * c.ReversedScore

	var n, e int
	for _, r := range strings.ToLower(all) {
		switch r {
		case 'n':
			n++
		case 'e':
			e++
		}
	}
	if float64(n) > float64(e)*c.NERatio {
		a.NESkew = true
		a.Score += c.NEScore
	}

	a.MidwordNewlines = len(midwordNewline.FindAllStringIndex(all, -1))
	a.Score += a.MidwordNewlines * c.NewlineScore

	if span.Verdict == Vertical {
		a.Score += c.SpanScore
	}

	if a.Score >= c.Threshold {
		a.Verdict = Vertical
	}
	return a
}

// flatten concatenates the cells of each row and joins rows with a space
func flatten(g *model.Grid) string {
	if g == nil {
		return ""
	}
	rows := make([]string, 0, len(g.Rows))
	for _, row := range g.Rows {
		rows = append(rows, strings.Join(row, ""))
	}
	return strings.Join(rows, " ")
}

func (c OrientationConfig) shortTokenRuns(s string) int {
	runs, cur := 0, 0
	flush := func() {
		if cur >= c.RunLength {
			runs++
		}
		cur = 0
	}
	for _, tok := range strings.Fields(s) {
		if c.isShortToken(tok) {
			cur++
			continue
		}
		flush()
	}
	flush()
	return runs
}

func (c OrientationConfig) isShortToken(tok string) bool {
	n := utf8.RuneCountInString(tok)
	if n == 0 || n > c.TokenLength {
		return false
	}
	for _, r := range tok {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// QuickCheck reports whether enough cells look like stacked characters to
// suggest a correction right after extraction
func (c OrientationConfig) QuickCheck(g *model.Grid) bool {
	cells := g.NonEmptyCells()
	if len(cells) == 0 {
		return false
	}
	stacked := 0
	for _, cell := range cells {
		if !strings.Contains(cell, "\n") {
			continue
		}
		lines := strings.Split(cell, "\n")
		if len(lines) >= 3 && float64(countShortLines(lines)) > float64(len(lines))*c.QuickShortFraction {
			stacked++
		}
	}
	return stacked > 0 && float64(stacked)/float64(len(cells)) >= c.QuickCellRatio
}

// QuickCheck runs QuickCheck with the default configuration
func QuickCheck(g *model.Grid) bool {
	return DefaultOrientationConfig().QuickCheck(g)
}

func countShortLines(lines []string) int {
	n := 0
	for _, l := range lines {
		if k := utf8.RuneCountInString(strings.TrimSpace(l)); k > 0 && k <= 2 {
			n++
		}
	}
	return n
}
