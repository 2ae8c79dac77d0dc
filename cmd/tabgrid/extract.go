package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/tabgrid"
	"github.com/tsawler/tabgrid/export"
	"github.com/tsawler/tabgrid/tables"
)

var extractCmd = &cobra.Command{
	Use:   "extract file.pdf",
	Short: "Extract tables using saved or given markers",
	Long: `Extract the text between column and row markers of one or more pages.

Markers come from a configuration saved by detect or run, or from the
--columns and --rows flags. Several pages are merged into one table.
Without --output the table is previewed on stdout.

Examples:
  tabgrid extract invoice.pdf --config invoice.json -o invoice.xlsx
  tabgrid extract report.pdf --pages 2-4 --columns 72,222,372 --rows 92,122,152 --format csv
  tabgrid extract scan.pdf --config scan.yaml --orient --merge horizontal`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("config", "c", "", "configuration file with saved markers")
	extractCmd.Flags().String("pages", "", "pages to extract (e.g., '1-5', '1,3,5'); default: marked pages")
	extractCmd.Flags().Float64Slice("columns", nil, "column markers in PDF points")
	extractCmd.Flags().Float64Slice("rows", nil, "row markers in PDF points")
	extractCmd.Flags().String("join", "newline", "how text sharing a cell is joined (space, newline)")
	extractCmd.Flags().String("merge", "vertical", "how pages are combined (vertical, horizontal)")
	extractCmd.Flags().Bool("pad", false, "pad rows of a vertical merge to the widest row")
	extractCmd.Flags().Bool("transpose", false, "swap rows and columns")
	extractCmd.Flags().Bool("orient", false, "correct vertical, reversed or flipped text")
	extractCmd.Flags().Bool("ocr", false, "recognize pages without a text layer")
	extractCmd.Flags().StringP("output", "o", "", "output file; format follows the extension")
	extractCmd.Flags().StringP("format", "f", "", "write to stdout in this format (csv, tsv, xlsx, html)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	pages, _ := cmd.Flags().GetString("pages")
	columns, _ := cmd.Flags().GetFloat64Slice("columns")
	rows, _ := cmd.Flags().GetFloat64Slice("rows")
	joinName, _ := cmd.Flags().GetString("join")
	mergeName, _ := cmd.Flags().GetString("merge")
	pad, _ := cmd.Flags().GetBool("pad")
	transpose, _ := cmd.Flags().GetBool("transpose")
	orient, _ := cmd.Flags().GetBool("orient")
	ocr, _ := cmd.Flags().GetBool("ocr")
	output, _ := cmd.Flags().GetString("output")
	formatName, _ := cmd.Flags().GetString("format")
	tuningPath, _ := cmd.Flags().GetString("tuning")

	join, ok := tables.ParseJoinMode(joinName)
	if !ok {
		return fmt.Errorf("invalid join mode: %s (must be one of: space, newline)", joinName)
	}
	merge, ok := tables.ParseMergeMode(mergeName)
	if !ok {
		return fmt.Errorf("invalid merge mode: %s (must be one of: vertical, horizontal)", mergeName)
	}

	ext := tabgrid.Open(args[0]).
		Tuning(tuningPath).
		JoinWith(join).
		Merge(merge)
	if configPath != "" {
		ext = ext.Config(configPath)
	}
	if pages != "" {
		nums, err := parsePages(pages)
		if err != nil {
			return fmt.Errorf("invalid page range: %w", err)
		}
		ext = ext.Pages(nums...)
	}
	if len(columns) > 0 || len(rows) > 0 {
		ext = ext.Markers(columns, rows)
	}
	if pad {
		ext = ext.PadMerge()
	}
	if transpose {
		ext = ext.Transpose()
	}
	if orient {
		ext = ext.CorrectOrientation()
	}
	if ocr {
		ext = ext.OCR()
	}

	grid, warnings, err := ext.Grid()
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case output != "":
		if err := export.WriteFile(output, grid); err != nil {
			return err
		}
		fmt.Fprintf(out, "%dx%d table written to %s\n", grid.RowCount(), grid.ColCount(), output)
	case formatName != "":
		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}
		return export.Write(out, grid, format)
	default:
		fmt.Fprintln(out, grid.Preview())
	}
	return nil
}
