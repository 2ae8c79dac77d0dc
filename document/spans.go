package document

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/tabgrid/model"
)

// Glyph is one positioned piece of text as it appears in the content stream
type Glyph struct {
	Text     string
	Font     string
	FontSize float64
	BBox     model.Rect
}

// SpanConfig holds glyph grouping thresholds, as multiples of the font size
type SpanConfig struct {
	// Gap at or above which a space is inserted between glyphs
	SpaceGap float64 `yaml:"space_gap" json:"space_gap"`

	// Gap above which glyphs belong to different spans
	MaxGap float64 `yaml:"max_gap" json:"max_gap"`

	// Allowed baseline drift for glyphs on one line, and column drift for
	// glyphs in one vertical run
	AlignTolerance float64 `yaml:"align_tolerance" json:"align_tolerance"`
}

// DefaultSpanConfig returns default configuration
func DefaultSpanConfig() SpanConfig {
	return SpanConfig{
		SpaceGap:       0.125,
		MaxGap:         1.0,
		AlignTolerance: 0.5,
	}
}

type span struct {
	glyphs []Glyph
	dir    model.Point
	text   strings.Builder
	bbox   model.Rect
}

func (s *span) last() Glyph {
	return s.glyphs[len(s.glyphs)-1]
}

func (s *span) add(g Glyph, space bool) {
	if space {
		s.text.WriteByte(' ')
	}
	s.text.WriteString(g.Text)
	if len(s.glyphs) == 0 {
		s.bbox = g.BBox
	} else {
		s.bbox = model.Rect{
			X0: math.Min(s.bbox.X0, g.BBox.X0),
			Y0: math.Min(s.bbox.Y0, g.BBox.Y0),
			X1: math.Max(s.bbox.X1, g.BBox.X1),
			Y1: math.Max(s.bbox.Y1, g.BBox.Y1),
		}
	}
	s.glyphs = append(s.glyphs, g)
}

// GroupSpans joins consecutive glyphs that share a font and continue each
// other left to right, right to left or top to bottom. The direction of a
// span is set by its first two glyphs and recorded in the fragment's Dir.
// Text is normalized to NFC and spans that are only whitespace are dropped.
func GroupSpans(glyphs []Glyph, cfg SpanConfig) []model.TextFragment {
	var frags []model.TextFragment
	var cur *span

	flush := func() {
		if cur == nil {
			return
		}
		text := strings.TrimSpace(norm.NFC.String(cur.text.String()))
		if text != "" {
			dir := cur.dir
			if dir == (model.Point{}) {
				dir = model.Point{X: 1}
			}
			first := cur.glyphs[0]
			frags = append(frags, model.TextFragment{
				Text:     text,
				BBox:     cur.bbox,
				Dir:      dir,
				FontName: first.Font,
				FontSize: first.FontSize,
			})
		}
		cur = nil
	}

	for _, g := range glyphs {
		if cur != nil {
			if dir, gap, ok := continues(cur, g, cfg); ok {
				if cur.dir == (model.Point{}) {
					cur.dir = dir
				}
				space := dir.Y == 0 && gap >= cfg.SpaceGap*g.FontSize &&
					!endsWithSpace(cur.last().Text) && !strings.HasPrefix(g.Text, " ")
				cur.add(g, space)
				continue
			}
			flush()
		}
		cur = &span{}
		cur.add(g, false)
	}
	flush()
	return frags
}

// continues reports whether g extends the span and the gap before it
func continues(s *span, g Glyph, cfg SpanConfig) (model.Point, float64, bool) {
	prev := s.last()
	if prev.Font != g.Font || math.Abs(prev.FontSize-g.FontSize) > 0.01 {
		return model.Point{}, 0, false
	}
	fs := math.Max(g.FontSize, 1)
	tol := cfg.AlignTolerance * fs
	maxGap := cfg.MaxGap * fs

	var candidates []model.Point
	if s.dir == (model.Point{}) {
		candidates = []model.Point{{X: 1}, {X: -1}, {Y: 1}}
	} else {
		candidates = []model.Point{s.dir}
	}

	for _, dir := range candidates {
		var gap float64
		switch {
		case dir.X > 0:
			if math.Abs(g.BBox.Y0-prev.BBox.Y0) > tol {
				continue
			}
			gap = g.BBox.X0 - prev.BBox.X1
		case dir.X < 0:
			if math.Abs(g.BBox.Y0-prev.BBox.Y0) > tol {
				continue
			}
			gap = prev.BBox.X0 - g.BBox.X1
		default:
			if math.Abs(g.BBox.X0-prev.BBox.X0) > tol || g.BBox.Y0 <= prev.BBox.Y0 {
				continue
			}
			gap = g.BBox.Y0 - prev.BBox.Y1
		}
		if gap >= -tol && gap <= maxGap {
			return dir, gap, true
		}
	}
	return model.Point{}, 0, false
}

func endsWithSpace(s string) bool {
	return strings.HasSuffix(s, " ")
}
