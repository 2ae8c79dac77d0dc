//go:build noxlsx

package export

import (
	"errors"
	"io"

	"github.com/tsawler/tabgrid/model"
)

// XLSXEnabled reports whether spreadsheet export is built in
const XLSXEnabled = false

// ErrXLSXNotEnabled is returned when spreadsheet export was left out of the build
var ErrXLSXNotEnabled = errors.New("spreadsheet export not built in; rebuild without the noxlsx tag to enable it")

// WriteXLSX always fails in builds without spreadsheet support
func WriteXLSX(w io.Writer, grid *model.Grid) error {
	return model.NewError(model.KindDependencyMissing, "export xlsx", ErrXLSXNotEnabled)
}
