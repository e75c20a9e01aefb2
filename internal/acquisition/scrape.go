package acquisition

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ScrapedLinks holds the document URLs discovered on a tender page. Empty
// fields were not found.
type ScrapedLinks struct {
	AdminURL string `json:"adminUrl,omitempty"`
	TechURL  string `json:"techUrl,omitempty"`
}

// Empty reports whether neither link was found.
func (s ScrapedLinks) Empty() bool {
	return s.AdminURL == "" && s.TechURL == ""
}

// Scraper fetches tender pages through the relay chain and mines their
// anchors for document links.
type Scraper struct {
	relays *relayChain
	logger *slog.Logger
}

// NewScraper creates a Scraper over client. A nil client uses a pooled
// default transport.
func NewScraper(cfg *Config, client *http.Client, logger *slog.Logger) *Scraper {
	if client == nil {
		client = newHTTPClient()
	}
	return &Scraper{
		relays: newRelayChain(cfg, client),
		logger: logger.With("component", "scraper"),
	}
}

// Scrape fetches pageURL and returns the administrative and technical
// document links it advertises. Fetch and parse failures yield empty links.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) ScrapedLinks {
	pageURL = strings.TrimSpace(pageURL)
	if !isHTTP(pageURL) {
		return ScrapedLinks{}
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return ScrapedLinks{}
	}

	for i, relay := range s.relays.relays {
		resp, err := s.relays.get(ctx, relay, pageURL)
		if err != nil {
			s.logger.Debug("relay attempt failed", "url", pageURL, "relay", i, "error", err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		links, err := ParsePage(base, bytes.NewReader(resp.body))
		if err != nil {
			s.logger.Warn("parse page failed", "url", pageURL, "error", err)
			return ScrapedLinks{}
		}

		s.logger.Info("page scraped", "url", pageURL, "admin", links.AdminURL != "", "tech", links.TechURL != "")
		return links
	}

	return ScrapedLinks{}
}

// ParsePage extracts document links from an HTML page. Each anchor's text,
// title, aria-label, id, class, and href are classified together; the first
// administrative match fills the admin slot, otherwise the first technical
// match fills the tech slot. Remaining empty slots fall back to generic
// .pdf or .zip links in document order.
func ParsePage(base *url.URL, r io.Reader) (ScrapedLinks, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return ScrapedLinks{}, err
	}

	var links ScrapedLinks
	var generic []string

	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if skipHref(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref).String()

		isAdmin, isTech := ClassifyLink(LinkContext{
			Text:      a.Text(),
			Title:     a.AttrOr("title", ""),
			AriaLabel: a.AttrOr("aria-label", ""),
			ID:        a.AttrOr("id", ""),
			Class:     a.AttrOr("class", ""),
			Href:      href,
		})

		if isAdmin && links.AdminURL == "" {
			links.AdminURL = resolved
		} else if isTech && links.TechURL == "" {
			links.TechURL = resolved
		}

		if isDocumentURL(resolved) {
			generic = append(generic, resolved)
		}
	})

	if links.AdminURL == "" && len(generic) > 0 {
		links.AdminURL = generic[0]
	}
	if links.TechURL == "" && len(generic) > 1 {
		links.TechURL = generic[1]
	}

	return links, nil
}

func skipHref(href string) bool {
	switch href {
	case "", "#", "/":
		return true
	}
	return strings.HasPrefix(strings.ToLower(href), "javascript:")
}

func isDocumentURL(u string) bool {
	lower := strings.ToLower(u)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	return strings.HasSuffix(lower, ".pdf") || strings.HasSuffix(lower, ".zip")
}
