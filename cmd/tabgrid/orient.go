package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/tabgrid/document"
	"github.com/tsawler/tabgrid/text"
)

var orientCmd = &cobra.Command{
	Use:   "orient file.pdf",
	Short: "Check the writing direction of a page's text",
	Long: `Classify the text spans of a page as horizontal, vertical or
right-to-left without extracting a table. Use the verdict to decide whether
extract needs --orient.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runOrient,
}

func init() {
	rootCmd.AddCommand(orientCmd)

	orientCmd.Flags().IntP("page", "p", 1, "page to check")
}

func runOrient(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")

	tuning, err := loadTuning(cmd)
	if err != nil {
		return err
	}
	doc, err := document.Open(args[0])
	if err != nil {
		return err
	}
	defer doc.Close()
	doc.SetSpanConfig(tuning.Spans)

	frags, err := doc.Fragments(page - 1)
	if err != nil {
		return err
	}
	span := tuning.Orientation.DetectFromSpans(frags)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "page %d: %d spans, %d vertical, %d right-to-left\n", page, span.Total, span.Vertical, span.RTL)
	if span.Verdict == text.NoCorrection {
		fmt.Fprintln(out, "no correction needed")
		return nil
	}
	fmt.Fprintf(out, "suggested correction: %s\n", span.Verdict)
	return nil
}
