// Package export writes extracted grids to delimited text, spreadsheets and
// HTML tables.
//
// The format is chosen explicitly or from the output file extension:
//
//	err := export.WriteFile("table.xlsx", grid)
//
// Spreadsheet output is built with excelize. Builds tagged noxlsx leave the
// spreadsheet writer out; asking for XLSX then fails with a
// KindDependencyMissing error and a hint on how to rebuild.
package export
