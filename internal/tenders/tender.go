// Package tenders implements the tender record domain: storage, queries,
// workflow status transitions and attachment of analysis reports.
package tenders

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/tenderboard/internal/analysis"
	"github.com/JaimeStill/tenderboard/internal/staging"
)

// Status is the workflow column a tender sits in.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusInDoubt    Status = "IN_DOUBT"
	StatusRejected   Status = "REJECTED"
	StatusArchived   Status = "ARCHIVED"
)

// legacyDiscarded is the former name of StatusRejected.
const legacyDiscarded = "DISCARDED"

// Statuses lists every workflow status in board order.
var Statuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusInDoubt,
	StatusRejected,
	StatusArchived,
}

// ParseStatus maps s to a Status, accepting the legacy DISCARDED value.
func ParseStatus(s string) (Status, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == legacyDiscarded {
		return StatusRejected, nil
	}
	for _, st := range Statuses {
		if string(st) == v {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// StatusFromDecision returns the status an analysis decision moves a tender to.
func StatusFromDecision(d analysis.Decision) Status {
	switch d {
	case analysis.DecisionKeep:
		return StatusInProgress
	case analysis.DecisionDiscard:
		return StatusRejected
	default:
		return StatusInDoubt
	}
}

// Slot names one of the three document positions on a tender.
type Slot string

const (
	SlotSummary Slot = "summary"
	SlotAdmin   Slot = "admin"
	SlotTech    Slot = "tech"
)

// slotLabels name slots in the language of the documents.
var slotLabels = map[Slot]string{
	SlotSummary: "resumen",
	SlotAdmin:   "administrativo",
	SlotTech:    "técnico",
}

// ParseSlot maps s to a Slot.
func ParseSlot(s string) (Slot, error) {
	switch sl := Slot(strings.ToLower(s)); sl {
	case SlotSummary, SlotAdmin, SlotTech:
		return sl, nil
	default:
		return "", ErrInvalidSlot
	}
}

// Tender is one procurement opportunity tracked through the triage board.
// A document slot may carry a URL, a stored file, both or neither.
type Tender struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	Budget        string              `json:"budget"`
	ScoringSystem string              `json:"scoring_system"`
	TenderPageURL string              `json:"tender_page_url"`
	AdminURL      string              `json:"admin_url"`
	TechURL       string              `json:"tech_url"`
	SummaryFile   *staging.StoredFile `json:"summary_file"`
	AdminFile     *staging.StoredFile `json:"admin_file"`
	TechFile      *staging.StoredFile `json:"tech_file"`
	Status        Status              `json:"status"`
	Report        *analysis.Report    `json:"report"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// File returns the stored file in slot, or nil.
func (t *Tender) File(slot Slot) *staging.StoredFile {
	switch slot {
	case SlotSummary:
		return t.SummaryFile
	case SlotAdmin:
		return t.AdminFile
	case SlotTech:
		return t.TechFile
	default:
		return nil
	}
}

// CreateCommand contains the data needed to create a tender. File slots
// reference documents previously staged.
type CreateCommand struct {
	Name          string              `json:"name"`
	Budget        string              `json:"budget"`
	ScoringSystem string              `json:"scoring_system"`
	TenderPageURL string              `json:"tender_page_url"`
	AdminURL      string              `json:"admin_url"`
	TechURL       string              `json:"tech_url"`
	SummaryFile   *staging.StoredFile `json:"summary_file"`
	AdminFile     *staging.StoredFile `json:"admin_file"`
	TechFile      *staging.StoredFile `json:"tech_file"`
}

// StatusCommand moves a tender to another workflow column.
type StatusCommand struct {
	Status string `json:"status"`
}

// Validate trims and checks the command. File keys must name staged documents.
func (c *CreateCommand) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: name required", ErrInvalid)
	}

	urls := map[string]*string{
		"tender_page_url": &c.TenderPageURL,
		"admin_url":       &c.AdminURL,
		"tech_url":        &c.TechURL,
	}
	for field, u := range urls {
		*u = strings.TrimSpace(*u)
		if *u != "" && !isWebURL(*u) {
			return fmt.Errorf("%w: %s must be an http(s) url", ErrInvalid, field)
		}
	}

	files := map[Slot]*staging.StoredFile{
		SlotSummary: c.SummaryFile,
		SlotAdmin:   c.AdminFile,
		SlotTech:    c.TechFile,
	}
	for slot, f := range files {
		if f != nil && !staging.IsStagingKey(f.Key) {
			return fmt.Errorf("%w: %s file key %q is not a staged document", ErrInvalid, slot, f.Key)
		}
	}
	return nil
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
