package acquisition

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Fetcher downloads a single URL. Downloader satisfies it.
type Fetcher interface {
	Download(ctx context.Context, rawURL, prefix string) Outcome[*File]
}

// ProgressFunc receives the number of candidates probed so far and the
// total after each group completes.
type ProgressFunc func(probed, total int)

// ProbeResult holds the documents selected by a probe.
type ProbeResult struct {
	Admin *File `json:"admin,omitempty"`
	Tech  *File `json:"tech,omitempty"`
}

// Complete reports whether both slots are filled.
func (r ProbeResult) Complete() bool {
	return r.Admin != nil && r.Tech != nil
}

// assign places cf into the first slot its category allows. Unclassified
// files fill whichever slot is still empty, admin first.
func (r *ProbeResult) assign(cf ClassifiedFile) {
	switch {
	case cf.Category == CategoryAdmin && r.Admin == nil:
		r.Admin = cf.File
	case cf.Category == CategoryTech && r.Tech == nil:
		r.Tech = cf.File
	case cf.Category == CategoryUnknown && r.Admin == nil:
		r.Admin = cf.File
	case cf.Category == CategoryUnknown && r.Tech == nil:
		r.Tech = cf.File
	}
}

// Prober downloads candidate links in concurrent groups until an
// administrative and a technical document have both been found.
type Prober struct {
	fetcher   Fetcher
	batchSize int
	logger    *slog.Logger
}

// NewProber creates a Prober that runs at most batchSize downloads at once.
func NewProber(fetcher Fetcher, batchSize int, logger *slog.Logger) *Prober {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Prober{
		fetcher:   fetcher,
		batchSize: batchSize,
		logger:    logger.With("component", "prober"),
	}
}

// Probe filters and deduplicates urls, then downloads them group by group.
// Slot assignment happens only after a whole group has finished, in
// candidate order, so results are deterministic regardless of completion
// order. Later groups are skipped once both slots are filled.
func (p *Prober) Probe(ctx context.Context, urls []string, progress ProgressFunc) ProbeResult {
	candidates := Candidates(urls)
	total := len(candidates)

	var result ProbeResult

	for start := 0; start < total && !result.Complete(); start += p.batchSize {
		if ctx.Err() != nil {
			p.logger.Warn("probe cancelled", "probed", start, "total", total)
			break
		}

		end := min(start+p.batchSize, total)
		for _, cf := range p.probeGroup(ctx, candidates[start:end]) {
			result.assign(cf)
		}

		if progress != nil {
			progress(end, total)
		}
	}

	p.logger.Info("probe finished",
		"candidates", total,
		"admin", result.Admin != nil,
		"tech", result.Tech != nil,
	)

	return result
}

func (p *Prober) probeGroup(ctx context.Context, group []string) []ClassifiedFile {
	found := make([]*File, len(group))

	// Absence is reported through Outcome; no goroutine returns an error.
	var g errgroup.Group
	g.SetLimit(p.batchSize)
	for i, u := range group {
		g.Go(func() error {
			if f, ok := p.fetcher.Download(ctx, u, PrefixFromURL(u)).Get(); ok {
				found[i] = f
			}
			return nil
		})
	}
	_ = g.Wait()

	classified := make([]ClassifiedFile, 0, len(group))
	for _, f := range found {
		if f == nil {
			continue
		}
		classified = append(classified, ClassifiedFile{
			File:     f,
			Category: ClassifyFilename(f.Name),
		})
	}
	return classified
}
