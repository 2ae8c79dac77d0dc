// Command tabgrid detects table lines in PDF pages and extracts the text
// between column and row markers as CSV, TSV, XLSX or HTML.
//
// Usage:
//
//	tabgrid detect invoice.pdf --page 1 --area 60,80,540,400 --config invoice.json
//	tabgrid extract invoice.pdf --config invoice.json -o invoice.csv
//	tabgrid orient invoice.pdf --page 2
//	tabgrid run session.txt
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
