package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/tabgrid/session"
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a script of session commands",
	Long: `Run session commands one per line, reading from the script file or
stdin. Blank lines and lines starting with # are ignored. Page, row and
column numbers are 1-based.

Example script:
  load-document invoice.pdf
  select 60 80 540 400
  detect
  save-page
  extract
  export invoice.csv
  save-config invoice.json "monthly invoice"`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("pdf", "", "document to load before the script runs")
	runCmd.Flags().Bool("ocr", false, "recognize pages without a text layer")
	runCmd.Flags().Bool("progress", false, "report detection and extraction progress on stderr")
	runCmd.Flags().Bool("intents", false, "list the available commands and exit")
}

func runScript(cmd *cobra.Command, args []string) error {
	pdfPath, _ := cmd.Flags().GetString("pdf")
	ocr, _ := cmd.Flags().GetBool("ocr")
	progress, _ := cmd.Flags().GetBool("progress")
	listIntents, _ := cmd.Flags().GetBool("intents")

	tuning, err := loadTuning(cmd)
	if err != nil {
		return err
	}
	cfg := session.DefaultConfig()
	cfg.Tuning = tuning
	cfg.OCR = ocr
	if progress {
		cfg.Progress = func(fraction float64, stage string) {
			fmt.Fprintf(cmd.ErrOrStderr(), "[%3.0f%%] %s\n", fraction*100, stage)
		}
	}

	s := session.New(cfg)
	defer s.Close()
	d := session.NewDispatcher(s)

	if listIntents {
		for _, intent := range d.Intents() {
			fmt.Fprintln(cmd.OutOrStdout(), intent)
		}
		return nil
	}

	if pdfPath != "" {
		if err := s.LoadDocument(pdfPath); err != nil {
			return err
		}
	}

	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	return d.Run(r, cmd.OutOrStdout())
}
