// Command probe runs the document acquisition pipeline from the shell:
// link extraction from local PDFs, tender page scraping, single downloads
// through the relay chain and batch probing of candidate URLs.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
