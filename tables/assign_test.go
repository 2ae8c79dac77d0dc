package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsawler/tabgrid/markers"
	"github.com/tsawler/tabgrid/model"
)

func frag(text string, cx, cy float64) model.TextFragment {
	return model.TextFragment{
		Text: text,
		BBox: model.NewRect(cx-2, cy-2, cx+2, cy+2),
		Dir:  model.Point{X: 1},
	}
}

func TestAssign(t *testing.T) {
	cols := []float64{0, 100, 200}
	rows := []float64{0, 50, 100}

	tests := []struct {
		name  string
		frags []model.TextFragment
		mode  JoinMode
		want  [][]string
	}{
		{
			name:  "one fragment per cell",
			frags: []model.TextFragment{frag("A", 50, 25), frag("B", 150, 25), frag("C", 50, 75), frag("D", 150, 75)},
			want:  [][]string{{"A", "B"}, {"C", "D"}},
		},
		{
			name:  "center on inner marker goes right",
			frags: []model.TextFragment{frag("edge", 100, 25)},
			want:  [][]string{{"", "edge"}, {"", ""}},
		},
		{
			name:  "center on first marker is kept",
			frags: []model.TextFragment{frag("first", 0, 0)},
			want:  [][]string{{"first", ""}, {"", ""}},
		},
		{
			name:  "center on last marker is discarded",
			frags: []model.TextFragment{frag("x-last", 200, 25), frag("y-last", 50, 100)},
			want:  [][]string{{"", ""}, {"", ""}},
		},
		{
			name:  "outside hull is discarded",
			frags: []model.TextFragment{frag("left", -5, 25), frag("below", 50, 180)},
			want:  [][]string{{"", ""}, {"", ""}},
		},
		{
			name:  "joined with space in encounter order",
			frags: []model.TextFragment{frag("World", 60, 25), frag("Hello", 40, 25)},
			want:  [][]string{{"World Hello", ""}, {"", ""}},
		},
		{
			name:  "joined with newline",
			frags: []model.TextFragment{frag("a", 50, 20), frag("b", 50, 30)},
			mode:  JoinNewline,
			want:  [][]string{{"a\nb", ""}, {"", ""}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Assign(cols, rows, tt.frags, tt.mode)
			assert.Equal(t, tt.want, g.Rows)
		})
	}
}

func TestAssign_UnsortedMarkersNotMutated(t *testing.T) {
	cols := []float64{200, 0, 100}
	rows := []float64{50, 0}

	g := Assign(cols, rows, []model.TextFragment{frag("v", 150, 10)}, JoinSpace)
	assert.Equal(t, [][]string{{"", "v"}}, g.Rows)
	assert.Equal(t, []float64{200, 0, 100}, cols)
}

func TestAssign_TooFewMarkers(t *testing.T) {
	g := Assign([]float64{10}, []float64{0, 50}, []model.TextFragment{frag("x", 10, 10)}, JoinSpace)
	assert.Equal(t, [][]string{{""}}, g.Rows)
}

func TestDimensions(t *testing.T) {
	tests := []struct {
		cols, rows   []float64
		wantR, wantC int
	}{
		{nil, nil, 1, 1},
		{[]float64{1}, []float64{1}, 1, 1},
		{[]float64{1, 2, 3}, []float64{1, 2}, 1, 2},
		{[]float64{1, 2}, []float64{1, 2, 3, 4}, 3, 1},
	}
	for _, tt := range tests {
		r, c := Dimensions(tt.cols, tt.rows)
		assert.Equal(t, tt.wantR, r)
		assert.Equal(t, tt.wantC, c)
	}

	g := EmptyFor(markers.PageRecord{Columns: []float64{0, 10, 20, 30}, Rows: []float64{0, 5, 10}})
	assert.Equal(t, 2, g.RowCount())
	assert.Equal(t, 3, g.ColCount())
	assert.True(t, g.IsBlank())
}

func TestParseModes(t *testing.T) {
	m, ok := ParseJoinMode("newline")
	assert.True(t, ok)
	assert.Equal(t, JoinNewline, m)
	_, ok = ParseJoinMode("tab")
	assert.False(t, ok)

	mm, ok := ParseMergeMode("horizontal")
	assert.True(t, ok)
	assert.Equal(t, MergeHorizontal, mm)
	_, ok = ParseMergeMode("diagonal")
	assert.False(t, ok)
}
