package acquisition

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
)

// System exposes the document acquisition pipeline.
type System interface {
	Download(ctx context.Context, rawURL, prefix string) Outcome[*File]
	ExtractLinks(ctx context.Context, pdf []byte) []string
	Scrape(ctx context.Context, pageURL string) ScrapedLinks
	Probe(ctx context.Context, urls []string, progress ProgressFunc) ProbeResult
}

type pipeline struct {
	downloader *Downloader
	extractor  *LinkExtractor
	scraper    *Scraper
	prober     *Prober
}

// New assembles the acquisition pipeline. All components share client; a
// nil client uses a pooled default transport.
func New(cfg *Config, client *http.Client, logger *slog.Logger) System {
	if client == nil {
		client = newHTTPClient()
	}
	logger = logger.With("system", "acquisition")

	downloader := NewDownloader(cfg, client, logger)
	return &pipeline{
		downloader: downloader,
		extractor:  NewLinkExtractor(logger),
		scraper:    NewScraper(cfg, client, logger),
		prober:     NewProber(downloader, cfg.BatchSize, logger),
	}
}

func (p *pipeline) Download(ctx context.Context, rawURL, prefix string) Outcome[*File] {
	return p.downloader.Download(ctx, rawURL, prefix)
}

func (p *pipeline) ExtractLinks(ctx context.Context, pdf []byte) []string {
	return p.extractor.Extract(ctx, bytes.NewReader(pdf))
}

func (p *pipeline) Scrape(ctx context.Context, pageURL string) ScrapedLinks {
	return p.scraper.Scrape(ctx, pageURL)
}

func (p *pipeline) Probe(ctx context.Context, urls []string, progress ProgressFunc) ProbeResult {
	return p.prober.Probe(ctx, urls, progress)
}
