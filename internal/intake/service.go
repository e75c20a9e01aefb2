package intake

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/tenderboard/internal/acquisition"
	"github.com/JaimeStill/tenderboard/internal/analysis"
	"github.com/JaimeStill/tenderboard/internal/staging"
	"github.com/JaimeStill/tenderboard/internal/tenders"
)

type service struct {
	acq      acquisition.System
	analysis analysis.System
	staging  staging.System
	logger   *slog.Logger
}

// New creates the intake System.
func New(
	acq acquisition.System,
	analysis analysis.System,
	staging staging.System,
	logger *slog.Logger,
) System {
	return &service{
		acq:      acq,
		analysis: analysis,
		staging:  staging,
		logger:   logger.With("system", "intake"),
	}
}

func (s *service) Handler(maxUploadSize int64) *Handler {
	return NewHandler(s, s.logger, maxUploadSize)
}

func (s *service) Scrape(ctx context.Context, pageURL string) (acquisition.ScrapedLinks, error) {
	if !isWebURL(pageURL) {
		return acquisition.ScrapedLinks{}, ErrInvalidURL
	}
	return s.acq.Scrape(ctx, pageURL), nil
}

func (s *service) Intake(ctx context.Context, req Request) (*Draft, error) {
	if len(req.Data) == 0 {
		return nil, ErrNoSummary
	}
	if req.TenderPageURL != "" && !isWebURL(req.TenderPageURL) {
		return nil, ErrInvalidURL
	}

	summary, err := s.staging.Stage(ctx, staging.StageCommand{
		Data:        req.Data,
		Filename:    req.Filename,
		ContentType: req.ContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: summary: %w", ErrStaging, err)
	}

	var (
		extraction *analysis.Extraction
		links      []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		extraction, err = s.analysis.Extract(gctx, analysis.Document{
			Label:       "resumen",
			Name:        summary.Filename,
			ContentType: summary.ContentType,
			Data:        req.Data,
		})
		return err
	})
	g.Go(func() error {
		links = s.acq.ExtractLinks(gctx, req.Data)
		return nil
	})

	if err := g.Wait(); err != nil {
		s.discard(ctx, summary.Key)
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	draft := &Draft{
		Tender: tenders.CreateCommand{
			Name:          extraction.Name,
			Budget:        extraction.Budget,
			ScoringSystem: extraction.ScoringSystem,
			TenderPageURL: extraction.TenderPageURL,
			AdminURL:      extraction.AdminURL,
			TechURL:       extraction.TechURL,
			SummaryFile:   summary,
		},
		Links: links,
	}
	if req.TenderPageURL != "" {
		draft.Tender.TenderPageURL = req.TenderPageURL
	}
	if draft.Links == nil {
		draft.Links = []string{}
	}

	found := s.probe(ctx, draft, extraction)

	if found.Admin == nil || found.Tech == nil {
		s.scrape(ctx, draft, &found)
	}

	if err := s.stageFound(ctx, draft, found); err != nil {
		return nil, err
	}

	s.logger.Info("intake complete",
		"name", draft.Tender.Name,
		"links", len(draft.Links),
		"probed", draft.Probed,
		"admin", draft.AdminFrom,
		"tech", draft.TechFrom,
	)
	return draft, nil
}

// probe downloads the extracted document URLs and the links embedded in
// the sheet. Extracted URLs go first since they name the documents directly.
func (s *service) probe(ctx context.Context, draft *Draft, extraction *analysis.Extraction) acquisition.ProbeResult {
	candidates := slices.Concat(extraction.DocumentURLs(), draft.Links)
	draft.Candidates = len(acquisition.Candidates(candidates))

	result := s.acq.Probe(ctx, candidates, func(probed, total int) {
		draft.Probed = probed
		s.logger.Debug("probe progress", "probed", probed, "total", total)
	})

	if result.Admin != nil {
		draft.AdminFrom = SourceProbe
	}
	if result.Tech != nil {
		draft.TechFrom = SourceProbe
	}
	return result
}

// scrape fills the slots the probe left empty from the tender page, when
// one is known.
func (s *service) scrape(ctx context.Context, draft *Draft, found *acquisition.ProbeResult) {
	pageURL := draft.Tender.TenderPageURL
	if pageURL == "" {
		return
	}

	guesses := s.acq.Scrape(ctx, pageURL)
	if guesses.Empty() {
		s.logger.Info("tender page yielded no document links", "url", pageURL)
		return
	}

	var (
		admin, tech *acquisition.File
		g           errgroup.Group
	)
	if found.Admin == nil && guesses.AdminURL != "" {
		if draft.Tender.AdminURL == "" {
			draft.Tender.AdminURL = guesses.AdminURL
		}
		g.Go(func() error {
			admin, _ = s.acq.Download(ctx, guesses.AdminURL, "administrativo").Get()
			return nil
		})
	}
	if found.Tech == nil && guesses.TechURL != "" {
		if draft.Tender.TechURL == "" {
			draft.Tender.TechURL = guesses.TechURL
		}
		g.Go(func() error {
			tech, _ = s.acq.Download(ctx, guesses.TechURL, "tecnico").Get()
			return nil
		})
	}
	g.Wait()

	if admin != nil {
		found.Admin = admin
		draft.AdminFrom = SourceScraper
	}
	if tech != nil {
		found.Tech = tech
		draft.TechFrom = SourceScraper
	}
}

// stageFound stores the acquired documents and records them on the draft.
// A slot URL left empty is filled with the document's source.
func (s *service) stageFound(ctx context.Context, draft *Draft, found acquisition.ProbeResult) error {
	slots := []struct {
		file   *acquisition.File
		stored **staging.StoredFile
		url    *string
	}{
		{found.Admin, &draft.Tender.AdminFile, &draft.Tender.AdminURL},
		{found.Tech, &draft.Tender.TechFile, &draft.Tender.TechURL},
	}

	for _, slot := range slots {
		if slot.file == nil {
			continue
		}

		stored, err := s.staging.Stage(ctx, staging.StageCommand{
			Data:        slot.file.Data,
			Filename:    slot.file.Name,
			ContentType: slot.file.ContentType,
			SourceURL:   slot.file.SourceURL,
		})
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrStaging, slot.file.Name, err)
		}

		*slot.stored = stored
		if *slot.url == "" {
			*slot.url = slot.file.SourceURL
		}
	}
	return nil
}

func (s *service) discard(ctx context.Context, key string) {
	if err := s.staging.Discard(ctx, key); err != nil {
		s.logger.Warn("discard staged summary", "key", key, "error", err)
	}
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
