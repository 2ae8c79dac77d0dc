package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tsawler/tabgrid/logging"
	"github.com/tsawler/tabgrid/model"
)

// Format is an output format
type Format int

const (
	// CSV is comma separated text
	CSV Format = iota
	// TSV is tab separated text
	TSV
	// XLSX is an Excel workbook with a single sheet
	XLSX
	// HTML is a bare HTML table
	HTML
)

// SheetName is the name of the worksheet written by XLSX export
const SheetName = "Extracted Table"

var (
	// ErrEmptyGrid is returned when there is nothing to export
	ErrEmptyGrid = errors.New("no extracted table data to export")

	// ErrUnknownFormat is returned for unrecognized format names or extensions
	ErrUnknownFormat = errors.New("unknown export format")
)

// String returns the format name
func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case TSV:
		return "tsv"
	case XLSX:
		return "xlsx"
	case HTML:
		return "html"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name such as "csv" or "xlsx"
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "csv", "txt":
		return CSV, nil
	case "tsv", "tab":
		return TSV, nil
	case "xlsx", "excel":
		return XLSX, nil
	case "html", "htm":
		return HTML, nil
	}
	return 0, model.NewError(model.KindUserInput, "parse format", fmt.Errorf("%w: %q", ErrUnknownFormat, name))
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, model.NewError(model.KindUserInput, "format from path",
			fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path))
	}
	return ParseFormat(ext)
}

// Write writes grid to w in the given format
func Write(w io.Writer, grid *model.Grid, format Format) error {
	if grid.IsEmpty() {
		return model.NewError(model.KindUserInput, "export", ErrEmptyGrid)
	}

	var err error
	switch format {
	case CSV:
		err = WriteDelimited(w, grid, ',')
	case TSV:
		err = WriteDelimited(w, grid, '\t')
	case XLSX:
		err = WriteXLSX(w, grid)
	case HTML:
		err = WriteHTML(w, grid)
	default:
		return model.NewError(model.KindUserInput, "export", fmt.Errorf("%w: %d", ErrUnknownFormat, format))
	}
	if err != nil {
		return err
	}

	logging.For("export").WithFields(logrus.Fields{
		"format": format.String(),
		"rows":   grid.RowCount(),
		"cols":   grid.ColCount(),
	}).Debug("grid exported")
	return nil
}

// WriteFile writes grid to path using the format implied by its extension.
// Nothing is created when the grid is empty or the format is unknown.
func WriteFile(path string, grid *model.Grid) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if grid.IsEmpty() {
		return model.NewError(model.KindUserInput, "export", ErrEmptyGrid)
	}
	if format == XLSX && !XLSXEnabled {
		return WriteXLSX(io.Discard, grid)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Write(f, grid, format); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
