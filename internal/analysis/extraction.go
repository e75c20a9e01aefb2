package analysis

import (
	"fmt"
	"net/url"
	"strings"
)

// Extraction is the metadata read from a tender summary sheet. Only Name is
// guaranteed; other fields may be empty.
type Extraction struct {
	Name          string `json:"name"`
	Budget        string `json:"budget"`
	ScoringSystem string `json:"scoringSystem"`
	TenderPageURL string `json:"tenderPageUrl"`
	AdminURL      string `json:"adminUrl"`
	TechURL       string `json:"techUrl"`
}

// DocumentURLs returns the non-empty admin and tech URLs.
func (e *Extraction) DocumentURLs() []string {
	var urls []string
	for _, u := range []string{e.AdminURL, e.TechURL} {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func (e *Extraction) normalize() error {
	e.Name = strings.TrimSpace(e.Name)
	e.Budget = strings.TrimSpace(e.Budget)
	e.ScoringSystem = strings.TrimSpace(e.ScoringSystem)
	e.TenderPageURL = cleanURL(e.TenderPageURL)
	e.AdminURL = cleanURL(e.AdminURL)
	e.TechURL = cleanURL(e.TechURL)

	if e.Name == "" {
		return fmt.Errorf("%w: name missing", ErrInvalidResponse)
	}
	return nil
}

// cleanURL drops values that are not absolute http(s) URLs. Models
// occasionally answer "N/A" or a bare domain.
func cleanURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return raw
}
