package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/tenderboard/internal/acquisition"
)

var fromFile string

var batchCmd = &cobra.Command{
	Use:   "batch [url...]",
	Short: "Probe candidate URLs for the administrative and technical documents",
	Long: `Download candidate URLs in concurrent groups, classify each document by
file name and stop as soon as both an administrative and a technical
document have been found. Irrelevant and duplicate links are dropped
before probing.

Examples:
  probe batch https://example.es/a.pdf https://example.es/b.pdf
  probe batch --from resumen.pdf --save ./docs`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&fromFile, "from", "", "read candidate URLs from the links of a local PDF")
}

type batchReport struct {
	Probed int         `json:"probed"`
	Total  int         `json:"total"`
	Admin  *fileReport `json:"admin"`
	Tech   *fileReport `json:"tech"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	pipeline, err := newPipeline()
	if err != nil {
		return err
	}

	urls := args
	if fromFile != "" {
		data, err := os.ReadFile(fromFile)
		if err != nil {
			return fmt.Errorf("read %s: %w", fromFile, err)
		}
		urls = append(urls, pipeline.ExtractLinks(cmd.Context(), data)...)
	}
	if len(acquisition.Candidates(urls)) == 0 {
		return fmt.Errorf("no candidate URLs to probe")
	}

	report := batchReport{}
	result := pipeline.Probe(cmd.Context(), urls, func(probed, total int) {
		report.Probed, report.Total = probed, total
		status("Probed %d/%d", probed, total)
	})

	if report.Admin, err = reportFile(result.Admin); err != nil {
		return err
	}
	if report.Tech, err = reportFile(result.Tech); err != nil {
		return err
	}

	return emit(report, func() {
		fmt.Printf("probed %d of %d candidates\n", report.Probed, report.Total)
		printFile("admin", report.Admin)
		printFile("tech", report.Tech)
	})
}
