package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tsawler/tabgrid/model"
)

// WriteDelimited writes grid as delimited text. Fields holding the delimiter,
// a quote or a line break are quoted and embedded quotes doubled. Ragged rows
// are padded so every record has the same number of fields.
func WriteDelimited(w io.Writer, grid *model.Grid, delim rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim

	padded := grid.Padded(grid.ColCount())
	if err := cw.WriteAll(padded.Rows); err != nil {
		return fmt.Errorf("failed to write delimited text: %w", err)
	}
	return nil
}
