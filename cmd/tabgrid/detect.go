package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/tabgrid/session"
)

var detectCmd = &cobra.Command{
	Use:   "detect file.pdf",
	Short: "Detect table lines inside an area and save them as markers",
	Long: `Render the selected area of a page, find its horizontal and vertical
ruling lines and turn them, together with the area's edges, into markers
for that page.

The markers are merged into the configuration file given with --config,
which is created when missing.

Examples:
  tabgrid detect invoice.pdf --area 60,80,540,400 --config invoice.json
  tabgrid detect invoice.pdf --page 2 --area 60,80,540,400 --annotate lines.png`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)

	detectCmd.Flags().IntP("page", "p", 1, "page to analyze")
	detectCmd.Flags().StringP("area", "a", "", "area to analyze in PDF points: x0,y0,x1,y1 (required)")
	detectCmd.Flags().StringP("config", "c", "", "configuration file to save markers to")
	detectCmd.Flags().String("description", "", "description stored in a new configuration")
	detectCmd.Flags().String("annotate", "", "write the analyzed image with detected lines as PNG")
	detectCmd.Flags().Bool("clear", false, "replace the page's markers instead of adding to them")
	_ = detectCmd.MarkFlagRequired("area")
}

func runDetect(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")
	area, _ := cmd.Flags().GetString("area")
	configPath, _ := cmd.Flags().GetString("config")
	description, _ := cmd.Flags().GetString("description")
	annotatePath, _ := cmd.Flags().GetString("annotate")
	clearExisting, _ := cmd.Flags().GetBool("clear")

	sel, err := parseArea(area)
	if err != nil {
		return err
	}
	tuning, err := loadTuning(cmd)
	if err != nil {
		return err
	}

	cfg := session.DefaultConfig()
	cfg.Tuning = tuning
	s := session.New(cfg)
	defer s.Close()

	if err := s.LoadDocument(args[0]); err != nil {
		return err
	}
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := s.LoadConfig(configPath); err != nil {
				return err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if err := s.GotoPage(page - 1); err != nil {
		return err
	}
	if err := s.SelectArea(sel); err != nil {
		return err
	}

	det, err := s.DetectLines(session.DetectOptions{Apply: true, ClearExisting: clearExisting})
	printWarnings(cmd, s.Warnings())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "detected %d vertical and %d horizontal lines\n", len(det.Columns), len(det.Rows))
	fmt.Fprintf(out, "columns: %v\n", s.Markers().Columns())
	fmt.Fprintf(out, "rows:    %v\n", s.Markers().Rows())

	if annotatePath != "" && det.Result != nil && det.Result.Annotated != nil {
		if err := writePNG(annotatePath, det.Result.Annotated); err != nil {
			return err
		}
		fmt.Fprintf(out, "annotated image written to %s\n", annotatePath)
	}

	if configPath == "" {
		return nil
	}
	if _, err := s.SavePage(); err != nil {
		return err
	}
	if err := s.SaveConfig(configPath, description); err != nil {
		return err
	}
	fmt.Fprintf(out, "markers for page %d saved to %s\n", page, configPath)
	return nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}

func printWarnings(cmd *cobra.Command, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}
}
