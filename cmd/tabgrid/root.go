package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tsawler/tabgrid/config"
	"github.com/tsawler/tabgrid/logging"
	"github.com/tsawler/tabgrid/model"
)

var rootCmd = &cobra.Command{
	Use:   "tabgrid",
	Short: "Extract tables from PDF pages using column and row markers",
	Long: `tabgrid pulls tables out of PDF pages. Markers at column and row
boundaries split a page into cells; the text of each cell becomes one value
of the output table.

Markers can be detected from ruling lines inside a selected area, loaded
from a configuration saved earlier, or given on the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		levelName, _ := cmd.Flags().GetString("log-level")
		level, err := logrus.ParseLevel(levelName)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		logging.SetLogger(logging.New(os.Stderr, level))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("tuning", "", "YAML file overriding detector and orientation settings")
}

// loadTuning reads the --tuning file, or returns defaults without one
func loadTuning(cmd *cobra.Command) (config.Tuning, error) {
	path, _ := cmd.Flags().GetString("tuning")
	return config.LoadTuning(path)
}

// parsePages expands a page list like "1-3,5" into 1-indexed page numbers
func parsePages(pages string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(pages, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "-") {
			rangeParts := strings.Split(part, "-")
			if len(rangeParts) != 2 {
				return nil, fmt.Errorf("invalid range format: %s", part)
			}
			start, err1 := strconv.Atoi(strings.TrimSpace(rangeParts[0]))
			end, err2 := strconv.Atoi(strings.TrimSpace(rangeParts[1]))
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("invalid page numbers in range: %s", part)
			}
			if start > end {
				return nil, fmt.Errorf("invalid page range: start (%d) > end (%d)", start, end)
			}
			if start < 1 {
				return nil, fmt.Errorf("page numbers must be positive: %s", part)
			}
			for p := start; p <= end; p++ {
				out = append(out, p)
			}
			continue
		}
		pageNum, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid page number: %s", part)
		}
		if pageNum < 1 {
			return nil, fmt.Errorf("page number must be positive: %d", pageNum)
		}
		out = append(out, pageNum)
	}
	return out, nil
}

// parseArea reads "x0,y0,x1,y1" in PDF points
func parseArea(s string) (model.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return model.Rect{}, fmt.Errorf("invalid area %q: want x0,y0,x1,y1", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.Rect{}, fmt.Errorf("invalid area %q: %w", s, err)
		}
		v[i] = f
	}
	return model.Rect{X0: v[0], Y0: v[1], X1: v[2], Y1: v[3]}, nil
}
