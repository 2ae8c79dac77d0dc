//go:build !noxlsx

package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tsawler/tabgrid/model"
)

// XLSXEnabled reports whether spreadsheet export is built in
const XLSXEnabled = true

// WriteXLSX writes grid as a workbook with one sheet and no header row
func WriteXLSX(w io.Writer, grid *model.Grid) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, row := range grid.Rows {
		for j, cell := range row {
			if cell == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("failed to address cell (%d, %d): %w", i, j, err)
			}
			if err := f.SetCellStr(SheetName, ref, cell); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", ref, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
