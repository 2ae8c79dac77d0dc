package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/tabgrid/model"
)

const fs = 12.0

// row lays out single-character glyphs left to right starting at x
func row(text string, x, y, w float64) []Glyph {
	var gs []Glyph
	for _, r := range text {
		gs = append(gs, Glyph{Text: string(r), Font: "Helvetica", FontSize: fs, BBox: model.Rect{X0: x, Y0: y, X1: x + w, Y1: y + fs}})
		x += w
	}
	return gs
}

func TestGroupSpans(t *testing.T) {
	cfg := DefaultSpanConfig()

	tests := []struct {
		name   string
		glyphs []Glyph
		want   []string
		dirs   []model.Point
	}{
		{
			name:   "word",
			glyphs: row("Name", 80, 100, 6),
			want:   []string{"Name"},
			dirs:   []model.Point{{X: 1}},
		},
		{
			name:   "word gap inserts space",
			glyphs: append(row("ab", 80, 100, 6), row("cd", 95, 100, 6)...),
			want:   []string{"ab cd"},
			dirs:   []model.Point{{X: 1}},
		},
		{
			name:   "column gap splits",
			glyphs: append(row("Tea", 80, 100, 6), row("10", 230, 100, 6)...),
			want:   []string{"Tea", "10"},
			dirs:   []model.Point{{X: 1}, {X: 1}},
		},
		{
			name:   "new line splits",
			glyphs: append(row("ab", 80, 100, 6), row("cd", 80, 130, 6)...),
			want:   []string{"ab", "cd"},
			dirs:   []model.Point{{X: 1}, {X: 1}},
		},
		{
			name: "vertical run",
			glyphs: []Glyph{
				{Text: "T", Font: "F", FontSize: fs, BBox: model.Rect{X0: 100, Y0: 100, X1: 107, Y1: 112}},
				{Text: "a", Font: "F", FontSize: fs, BBox: model.Rect{X0: 100, Y0: 112, X1: 106, Y1: 124}},
				{Text: "b", Font: "F", FontSize: fs, BBox: model.Rect{X0: 100, Y0: 124, X1: 106, Y1: 136}},
			},
			want: []string{"Tab"},
			dirs: []model.Point{{Y: 1}},
		},
		{
			name: "right to left",
			glyphs: []Glyph{
				{Text: "x", Font: "F", FontSize: fs, BBox: model.Rect{X0: 200, Y0: 100, X1: 206, Y1: 112}},
				{Text: "y", Font: "F", FontSize: fs, BBox: model.Rect{X0: 194, Y0: 100, X1: 200, Y1: 112}},
			},
			want: []string{"xy"},
			dirs: []model.Point{{X: -1}},
		},
		{
			name: "font change splits",
			glyphs: []Glyph{
				{Text: "a", Font: "Regular", FontSize: fs, BBox: model.Rect{X0: 0, Y0: 0, X1: 6, Y1: 12}},
				{Text: "b", Font: "Bold", FontSize: fs, BBox: model.Rect{X0: 6, Y0: 0, X1: 12, Y1: 12}},
			},
			want: []string{"a", "b"},
			dirs: []model.Point{{X: 1}, {X: 1}},
		},
		{
			name:   "whitespace only dropped",
			glyphs: row("  ", 80, 100, 3),
			want:   nil,
		},
		{
			name: "composed to NFC",
			glyphs: []Glyph{
				{Text: "e", Font: "F", FontSize: fs, BBox: model.Rect{X0: 0, Y0: 0, X1: 6, Y1: 12}},
				{Text: "\u0301", Font: "F", FontSize: fs, BBox: model.Rect{X0: 6, Y0: 0, X1: 6, Y1: 12}},
			},
			want: []string{"\u00e9"},
			dirs: []model.Point{{X: 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frags := GroupSpans(tt.glyphs, cfg)
			var got []string
			var dirs []model.Point
			for _, f := range frags {
				got = append(got, f.Text)
				dirs = append(dirs, f.Dir)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.dirs, dirs)
		})
	}
}

func TestGroupSpans_BBox(t *testing.T) {
	frags := GroupSpans(row("Qty", 230, 100, 6), DefaultSpanConfig())
	require.Len(t, frags, 1)
	assert.Equal(t, model.Rect{X0: 230, Y0: 100, X1: 248, Y1: 112}, frags[0].BBox)
	assert.Equal(t, "Helvetica", frags[0].FontName)
	assert.Equal(t, fs, frags[0].FontSize)
}
