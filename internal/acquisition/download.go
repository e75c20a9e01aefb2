package acquisition

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/JaimeStill/tenderboard/pkg/formatting"
)

// DefaultPrefix names files whose source URL offers nothing better.
const DefaultPrefix = "documento"

var (
	errEmptyPayload = errors.New("empty payload")
	errInterstitial = errors.New("relay returned an html or error page")
)

var errorPageMarkers = [][]byte{
	[]byte("<html"),
	[]byte("<HTML"),
	[]byte("<!doctype"),
	[]byte("<!DOCTYPE"),
	[]byte("<body"),
	[]byte("Error"),
	[]byte("Denied"),
}

// File is a downloaded document held in memory.
type File struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	SourceURL   string `json:"sourceUrl"`
	Data        []byte `json:"-"`
}

// Size returns the payload length in bytes.
func (f *File) Size() int64 {
	return int64(len(f.Data))
}

// Downloader retrieves a single URL through the relay chain.
type Downloader struct {
	relays    *relayChain
	threshold int
	logger    *slog.Logger
	now       func() time.Time
}

// NewDownloader creates a Downloader over client. A nil client uses a pooled
// default transport.
func NewDownloader(cfg *Config, client *http.Client, logger *slog.Logger) *Downloader {
	if client == nil {
		client = newHTTPClient()
	}
	return &Downloader{
		relays:    newRelayChain(cfg, client),
		threshold: cfg.SmallPayloadBytes,
		logger:    logger.With("component", "downloader"),
		now:       time.Now,
	}
}

// Download fetches rawURL through each relay in order until one returns a
// plausible document. Invalid URLs, exhausted relays, and interstitial pages
// all yield NotFound. prefix seeds the synthesized filename when the response
// carries no Content-Disposition.
func (d *Downloader) Download(ctx context.Context, rawURL, prefix string) Outcome[*File] {
	rawURL = strings.TrimSpace(rawURL)
	if !isHTTP(rawURL) {
		d.logger.Debug("skipping invalid url", "url", rawURL)
		return NotFound[*File]()
	}

	for i, relay := range d.relays.relays {
		file, err := d.attempt(ctx, relay, rawURL, prefix)
		if err == nil {
			d.logger.Info("downloaded", "url", rawURL, "name", file.Name, "size", formatting.FormatBytes(file.Size(), 1))
			return Found(file)
		}

		d.logger.Debug("relay attempt failed", "url", rawURL, "relay", i, "error", err)
		if ctx.Err() != nil {
			break
		}
	}

	return NotFound[*File]()
}

func (d *Downloader) attempt(ctx context.Context, relay, rawURL, prefix string) (*File, error) {
	resp, err := d.relays.get(ctx, relay, rawURL)
	if err != nil {
		return nil, err
	}

	contentType := resp.mediaType()
	if err := validatePayload(contentType, resp.body, d.threshold); err != nil {
		return nil, err
	}

	name := dispositionFilename(resp.header.Get("Content-Disposition"))
	switch {
	case name == "":
		name = syntheticName(prefix, contentType, d.now())
	case path.Ext(name) == "":
		name += extensionFor(contentType)
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &File{
		Name:        name,
		ContentType: contentType,
		SourceURL:   rawURL,
		Data:        resp.body,
	}, nil
}

// validatePayload rejects HTML responses outright and small payloads that
// read like an error page.
func validatePayload(contentType string, body []byte, threshold int) error {
	if len(body) == 0 {
		return errEmptyPayload
	}
	if strings.Contains(contentType, "html") {
		return errInterstitial
	}
	if len(body) < threshold {
		for _, marker := range errorPageMarkers {
			if bytes.Contains(body, marker) {
				return errInterstitial
			}
		}
	}
	return nil
}

func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return formatting.SanitizeFilename(params["filename"])
}

// extensionFor infers a file extension from a media type, defaulting to PDF.
func extensionFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "wordprocessingml"):
		return ".docx"
	case strings.Contains(contentType, "msword"):
		return ".doc"
	case strings.Contains(contentType, "zip"):
		return ".zip"
	default:
		return ".pdf"
	}
}

func syntheticName(prefix, contentType string, now time.Time) string {
	if prefix = formatting.SanitizeFilename(prefix); prefix == "" {
		prefix = DefaultPrefix
	}
	return fmt.Sprintf("%s_%d%s", prefix, now.UnixMilli(), extensionFor(contentType))
}

// PrefixFromURL derives a filename prefix from the last path segment of
// rawURL with its extension removed.
func PrefixFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return DefaultPrefix
	}

	base := path.Base(u.Path)
	base = strings.TrimSuffix(base, path.Ext(base))
	if unescaped, err := url.PathUnescape(base); err == nil {
		base = unescaped
	}

	if base = formatting.SanitizeFilename(base); base == "" {
		return DefaultPrefix
	}
	return base
}
