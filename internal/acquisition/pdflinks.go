package acquisition

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// LinkExtractor collects hyperlink targets from PDF link annotations.
type LinkExtractor struct {
	logger *slog.Logger
}

// NewLinkExtractor creates a LinkExtractor.
func NewLinkExtractor(logger *slog.Logger) *LinkExtractor {
	return &LinkExtractor{logger: logger.With("component", "pdf-links")}
}

// Extract returns the unique absolute URLs of every URI link annotation in
// the document, in first-seen page order. Any parse failure is logged and
// yields an empty slice.
func (e *LinkExtractor) Extract(ctx context.Context, rs io.ReadSeeker) []string {
	links, err := extractLinks(ctx, rs)
	if err != nil {
		e.logger.Warn("pdf link extraction failed", "error", err)
		return []string{}
	}
	e.logger.Debug("pdf links extracted", "count", len(links))
	return links
}

func extractLinks(ctx context.Context, rs io.ReadSeeker) (links []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			links, err = nil, fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pdf, err := api.ReadContext(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	if err := pdf.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}

	seen := make(map[string]struct{})
	links = make([]string, 0)

	for pageNr := 1; pageNr <= pdf.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		uris, err := pageLinks(pdf, pageNr)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNr, err)
		}

		for _, uri := range uris {
			if _, dup := seen[uri]; dup {
				continue
			}
			seen[uri] = struct{}{}
			links = append(links, uri)
		}
	}

	return links, nil
}

func pageLinks(pdf *model.Context, pageNr int) ([]string, error) {
	page, _, _, err := pdf.PageDict(pageNr, false)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, nil
	}

	obj, found := page.Find("Annots")
	if !found {
		return nil, nil
	}

	annots, err := pdf.DereferenceArray(obj)
	if err != nil {
		return nil, fmt.Errorf("annots: %w", err)
	}

	var uris []string
	for _, entry := range annots {
		annot, err := pdf.DereferenceDict(entry)
		if err != nil || annot == nil {
			continue
		}
		if subtype := annot.NameEntry("Subtype"); subtype == nil || *subtype != "Link" {
			continue
		}

		action, err := pdf.DereferenceDict(annot["A"])
		if err != nil || action == nil {
			continue
		}
		if s := action.NameEntry("S"); s != nil && *s != "URI" {
			continue
		}

		uri, err := uriString(pdf, action["URI"])
		if err != nil || !isAbsolute(uri) {
			continue
		}
		uris = append(uris, uri)
	}

	return uris, nil
}

func uriString(pdf *model.Context, obj types.Object) (string, error) {
	o, err := pdf.Dereference(obj)
	if err != nil {
		return "", err
	}

	switch v := o.(type) {
	case types.StringLiteral:
		return types.StringLiteralToString(v)
	case types.HexLiteral:
		return types.HexLiteralToString(v)
	default:
		return "", fmt.Errorf("unexpected uri type %T", o)
	}
}

func isAbsolute(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs()
}
