package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Find administrative and technical document links on a tender page",
	Args:  cobra.ExactArgs(1),
	RunE:  runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	pipeline, err := newPipeline()
	if err != nil {
		return err
	}

	status("Scraping %s...", args[0])
	links := pipeline.Scrape(cmd.Context(), args[0])

	return emit(links, func() {
		if links.Empty() {
			fmt.Println("no document links found")
			return
		}
		fmt.Printf("admin: %s\n", orNone(links.AdminURL))
		fmt.Printf("tech:  %s\n", orNone(links.TechURL))
	})
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
