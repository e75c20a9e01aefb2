package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/tenderboard/internal/acquisition"
)

var relevantOnly bool

var linksCmd = &cobra.Command{
	Use:   "links [file.pdf...]",
	Short: "Extract hyperlinks from local PDF files",
	Long: `Extract the absolute URI link annotations from each PDF, in page order
and without duplicates. With --relevant, links pointing at login pages,
public-sector home pages and similar noise are dropped.

Examples:
  probe links resumen.pdf
  probe links --relevant -o json resumen.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLinks,
}

func init() {
	rootCmd.AddCommand(linksCmd)

	linksCmd.Flags().BoolVar(&relevantOnly, "relevant", false, "keep only links that may lead to tender documents")
}

type linksReport struct {
	File  string   `json:"file"`
	Links []string `json:"links"`
}

func runLinks(cmd *cobra.Command, args []string) error {
	pipeline, err := newPipeline()
	if err != nil {
		return err
	}

	reports := make([]linksReport, 0, len(args))
	for _, name := range args {
		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		links := pipeline.ExtractLinks(cmd.Context(), data)
		if relevantOnly {
			links = acquisition.Candidates(links)
		}
		if links == nil {
			links = []string{}
		}
		reports = append(reports, linksReport{File: name, Links: links})
	}

	return emit(reports, func() {
		for _, r := range reports {
			fmt.Printf("%s: %d links\n", r.File, len(r.Links))
			for _, l := range r.Links {
				fmt.Printf("  %s\n", l)
			}
		}
	})
}
