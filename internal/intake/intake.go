// Package intake turns an uploaded tender summary sheet into a draft tender:
// it extracts metadata, discovers and downloads the administrative and
// technical documents, and stages everything it finds.
package intake

import (
	"context"

	"github.com/JaimeStill/tenderboard/internal/acquisition"
	"github.com/JaimeStill/tenderboard/internal/tenders"
)

// Request is one summary sheet submitted for intake. TenderPageURL, when
// set, takes precedence over the URL extracted from the sheet.
type Request struct {
	Filename      string
	ContentType   string
	Data          []byte
	TenderPageURL string
}

// Source records where a slot's document came from.
type Source string

const (
	SourceNone    Source = ""
	SourceProbe   Source = "probe"
	SourceScraper Source = "scraper"
)

// Draft is the auto-populated form a user reviews before creating the
// tender. Tender is ready to submit as a create command.
type Draft struct {
	Tender     tenders.CreateCommand `json:"tender"`
	Links      []string              `json:"links"`
	Candidates int                   `json:"candidates"`
	Probed     int                   `json:"probed"`
	AdminFrom  Source                `json:"admin_from,omitempty"`
	TechFrom   Source                `json:"tech_from,omitempty"`
}

// System defines the intake contract.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// Intake runs the acquisition pipeline for a summary sheet. Extraction
	// and storage failures are returned; acquisition failures only leave
	// document slots empty.
	Intake(ctx context.Context, req Request) (*Draft, error)

	// Scrape guesses the document links on a tender page.
	Scrape(ctx context.Context, pageURL string) (acquisition.ScrapedLinks, error)
}
