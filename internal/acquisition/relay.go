package acquisition

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	errStatus   = errors.New("unexpected status")
	errTooLarge = errors.New("payload exceeds size limit")
)

// response is a fully read relay response.
type response struct {
	header http.Header
	body   []byte
}

func (r *response) mediaType() string {
	ct := r.header.Get("Content-Type")
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// relayChain fetches targets through an ordered list of CORS relay
// prefixes. Each attempt runs under its own deadline.
type relayChain struct {
	client    *http.Client
	relays    []string
	timeout   time.Duration
	maxBytes  int64
	userAgent string
}

func newRelayChain(cfg *Config, client *http.Client) *relayChain {
	return &relayChain{
		client:    client,
		relays:    cfg.Relays,
		timeout:   cfg.AttemptTimeoutDuration(),
		maxBytes:  cfg.MaxDownloadBytes(),
		userAgent: cfg.UserAgent,
	}
}

// wrap builds the relay URL for target.
func wrap(relay, target string) string {
	return relay + url.QueryEscape(target)
}

func (c *relayChain) get(ctx context.Context, relay, target string) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wrap(relay, target), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", errStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, errTooLarge
	}

	return &response{header: resp.Header, body: body}, nil
}

// isHTTP reports whether rawURL is an absolute http or https URL.
func isHTTP(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        32,
			MaxIdleConnsPerHost: 8,
			IdleConnTimeout:     90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			return nil
		},
	}
}
