package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/tenderboard/internal/acquisition"
)

var prefix string

var downloadCmd = &cobra.Command{
	Use:   "download <url>",
	Short: "Download a single document through the relay chain",
	Long: `Download a URL, trying each configured relay in order until one returns
a payload that is not an HTML error page. The file name comes from the
Content-Disposition header when present; otherwise it is built from the
prefix, a timestamp and the content type.

Examples:
  probe download https://contratacion.example.es/doc/PCAP.pdf
  probe download --save ./docs --prefix pliego https://example.es/doc?id=42`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVar(&prefix, "prefix", "", "file name prefix when the server does not provide one (default derived from the URL)")
}

func runDownload(cmd *cobra.Command, args []string) error {
	pipeline, err := newPipeline()
	if err != nil {
		return err
	}

	target := args[0]
	p := prefix
	if p == "" {
		p = acquisition.PrefixFromURL(target)
	}

	status("Downloading %s...", target)
	f, ok := pipeline.Download(cmd.Context(), target, p).Get()
	if !ok {
		return fmt.Errorf("no relay returned a document for %s", target)
	}

	r, err := reportFile(f)
	if err != nil {
		return err
	}

	return emit(r, func() { printFile("file", r) })
}
