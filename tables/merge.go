package tables

import (
	"github.com/tsawler/tabgrid/model"
)

// MergeMode selects how page grids are combined
type MergeMode int

const (
	// MergeVertical stacks page grids top to bottom
	MergeVertical MergeMode = iota
	// MergeHorizontal places page grids side by side
	MergeHorizontal
)

func (m MergeMode) String() string {
	if m == MergeHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseMergeMode parses "vertical" or "horizontal"
func ParseMergeMode(s string) (MergeMode, bool) {
	switch s {
	case "vertical", "":
		return MergeVertical, true
	case "horizontal":
		return MergeHorizontal, true
	}
	return MergeVertical, false
}

// MergeOptions tunes Merge
type MergeOptions struct {
	// Pad every row of a vertical merge to the widest row.
	// By default vertical merges keep ragged rows.
	PadVertical bool
}

// Merge combines grids in page order. Nil grids are skipped.
func Merge(grids []*model.Grid, mode MergeMode, opts MergeOptions) *model.Grid {
	if mode == MergeHorizontal {
		return mergeHorizontal(grids)
	}
	return mergeVertical(grids, opts.PadVertical)
}

func mergeVertical(grids []*model.Grid, pad bool) *model.Grid {
	out := &model.Grid{}
	for _, g := range grids {
		if g == nil {
			continue
		}
		out.Rows = append(out.Rows, g.Clone().Rows...)
	}
	if pad {
		return out.Padded(out.ColCount())
	}
	return out
}

func mergeHorizontal(grids []*model.Grid) *model.Grid {
	padded := make([]*model.Grid, 0, len(grids))
	height := 0
	for _, g := range grids {
		if g == nil {
			continue
		}
		p := g.Padded(g.ColCount())
		padded = append(padded, p)
		height = max(height, p.RowCount())
	}

	out := &model.Grid{Rows: make([][]string, height)}
	for r := 0; r < height; r++ {
		row := []string{}
		for _, g := range padded {
			if r < g.RowCount() {
				row = append(row, g.Rows[r]...)
			} else {
				row = append(row, make([]string, g.ColCount())...)
			}
		}
		out.Rows[r] = row
	}
	return out
}

// Transpose pads the grid to a uniform width and swaps rows and columns
func Transpose(g *model.Grid) (*model.Grid, error) {
	if g == nil || g.IsEmpty() {
		return nil, model.Errorf(model.KindUserInput, "transpose", "no data to transpose")
	}
	p := g.Padded(g.ColCount())
	rows, cols := p.RowCount(), p.ColCount()
	out := &model.Grid{Rows: make([][]string, cols)}
	for c := 0; c < cols; c++ {
		out.Rows[c] = make([]string, rows)
		for r := 0; r < rows; r++ {
			out.Rows[c][r] = p.Rows[r][c]
		}
	}
	return out, nil
}
