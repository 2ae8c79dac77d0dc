package model

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Grid is a matrix of cell strings. Rows are normally all the same width;
// a vertical multi-page merge can leave them ragged.
type Grid struct {
	Rows [][]string
}

// NewGrid creates a grid with the given dimensions, every cell empty.
// Dimensions below 1 are raised to 1.
func NewGrid(rows, cols int) *Grid {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	g := &Grid{Rows: make([][]string, rows)}
	for i := range g.Rows {
		g.Rows[i] = make([]string, cols)
	}
	return g
}

// GridFromRows wraps existing rows, copying them
func GridFromRows(rows [][]string) *Grid {
	g := &Grid{Rows: make([][]string, len(rows))}
	for i, row := range rows {
		g.Rows[i] = append([]string(nil), row...)
	}
	return g
}

// RowCount returns the number of rows
func (g *Grid) RowCount() int {
	if g == nil {
		return 0
	}
	return len(g.Rows)
}

// ColCount returns the width of the widest row
func (g *Grid) ColCount() int {
	if g == nil {
		return 0
	}
	width := 0
	for _, row := range g.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// IsEmpty reports whether the grid has no cells at all
func (g *Grid) IsEmpty() bool {
	return g.RowCount() == 0 || g.ColCount() == 0
}

// IsBlank reports whether every cell is the empty string
func (g *Grid) IsBlank() bool {
	if g == nil {
		return true
	}
	for _, row := range g.Rows {
		for _, cell := range row {
			if cell != "" {
				return false
			}
		}
	}
	return true
}

// Cell returns the cell at the given row and column (0-indexed).
// Out of range positions return the empty string.
func (g *Grid) Cell(row, col int) string {
	if g == nil || row < 0 || row >= len(g.Rows) {
		return ""
	}
	if col < 0 || col >= len(g.Rows[row]) {
		return ""
	}
	return g.Rows[row][col]
}

// SetCell sets the cell at the given position
func (g *Grid) SetCell(row, col int, value string) error {
	if row < 0 || row >= len(g.Rows) {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(g.Rows[row]) {
		return fmt.Errorf("col index %d out of bounds", col)
	}
	g.Rows[row][col] = value
	return nil
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	return GridFromRows(g.Rows)
}

// Padded returns a copy whose rows are all at least width cells wide
func (g *Grid) Padded(width int) *Grid {
	out := &Grid{Rows: make([][]string, len(g.Rows))}
	for i, row := range g.Rows {
		padded := make([]string, max(width, len(row)))
		copy(padded, row)
		out.Rows[i] = padded
	}
	return out
}

// NonEmptyCells returns the non-empty cell values in row-major order
func (g *Grid) NonEmptyCells() []string {
	var cells []string
	for _, row := range g.Rows {
		for _, cell := range row {
			if cell != "" {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// Preview renders the grid as aligned plain text for terminal display.
// Line breaks inside cells are shown as a pilcrow so each row stays on one line.
func (g *Grid) Preview() string {
	if g.IsEmpty() {
		return ""
	}

	cols := g.ColCount()
	widths := make([]int, cols)
	display := make([][]string, len(g.Rows))
	for i, row := range g.Rows {
		display[i] = make([]string, cols)
		for j := 0; j < cols; j++ {
			var cell string
			if j < len(row) {
				cell = strings.ReplaceAll(row[j], "\n", "¶")
			}
			display[i][j] = cell
			if w := runewidth.StringWidth(cell); w > widths[j] {
				widths[j] = w
			}
		}
	}

	var sb strings.Builder
	for _, row := range display {
		for j, cell := range row {
			sb.WriteString("| ")
			sb.WriteString(runewidth.FillRight(cell, widths[j]))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}
