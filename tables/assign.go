package tables

import (
	"slices"
	"sort"

	"github.com/tsawler/tabgrid/markers"
	"github.com/tsawler/tabgrid/model"
)

// JoinMode selects the separator used when several fragments land in one cell
type JoinMode int

const (
	// JoinSpace joins fragments with a single space
	JoinSpace JoinMode = iota
	// JoinNewline joins fragments with a line break
	JoinNewline
)

// Separator returns the string placed between fragments
func (m JoinMode) Separator() string {
	if m == JoinNewline {
		return "\n"
	}
	return " "
}

func (m JoinMode) String() string {
	if m == JoinNewline {
		return "newline"
	}
	return "space"
}

// ParseJoinMode parses "space" or "newline"
func ParseJoinMode(s string) (JoinMode, bool) {
	switch s {
	case "space", "":
		return JoinSpace, true
	case "newline":
		return JoinNewline, true
	}
	return JoinSpace, false
}

// Dimensions returns the grid size implied by the markers
func Dimensions(cols, rows []float64) (nRows, nCols int) {
	return max(1, len(rows)-1), max(1, len(cols)-1)
}

// EmptyFor returns the empty grid for a marked page
func EmptyFor(rec markers.PageRecord) *model.Grid {
	r, c := Dimensions(rec.Columns, rec.Rows)
	return model.NewGrid(r, c)
}

// Assign places fragments into the cells bounded by the markers.
//
// Cells are half-open intervals: a fragment whose center lies on marker i
// belongs to cell i, and a center on the last marker of an axis is
// discarded along with every center outside the marker hull. Fragments that
// share a cell are joined in the order they are given.
//
// Callers must supply at least two markers per axis. With fewer the grid is
// one cell wide on that axis and nothing is placed.
func Assign(cols, rows []float64, frags []model.TextFragment, mode JoinMode) *model.Grid {
	cs := slices.Clone(cols)
	rs := slices.Clone(rows)
	slices.Sort(cs)
	slices.Sort(rs)

	nRows, nCols := Dimensions(cs, rs)
	grid := model.NewGrid(nRows, nCols)
	if len(cs) < 2 || len(rs) < 2 {
		return grid
	}

	sep := mode.Separator()
	for _, f := range frags {
		c := f.Center()
		col, ok := interval(cs, c.X)
		if !ok {
			continue
		}
		row, ok := interval(rs, c.Y)
		if !ok {
			continue
		}
		if cur := grid.Rows[row][col]; cur != "" {
			grid.Rows[row][col] = cur + sep + f.Text
		} else {
			grid.Rows[row][col] = f.Text
		}
	}
	return grid
}

// interval returns i such that m[i] <= v < m[i+1]
func interval(m []float64, v float64) (int, bool) {
	if v < m[0] || v > m[len(m)-1] {
		return 0, false
	}
	i := sort.Search(len(m), func(i int) bool { return m[i] > v }) - 1
	if i < 0 || i >= len(m)-1 {
		return 0, false
	}
	return i, true
}
