package tenders

import (
	"net/url"
	"strings"
	"time"

	"github.com/JaimeStill/tenderboard/internal/analysis"
	"github.com/JaimeStill/tenderboard/internal/staging"
	"github.com/JaimeStill/tenderboard/pkg/query"
	"github.com/JaimeStill/tenderboard/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "tenders", "t").
	Project("id", "ID").
	Project("name", "Name").
	Project("budget", "Budget").
	Project("scoring_system", "ScoringSystem").
	Project("tender_page_url", "TenderPageURL").
	Project("admin_url", "AdminURL").
	Project("tech_url", "TechURL").
	Project("summary_file", "SummaryFile").
	Project("admin_file", "AdminFile").
	Project("tech_file", "TechFile").
	Project("status", "Status").
	Project("report", "Report").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// returning lists the columns mutations hand back, in scanTender order.
const returning = `RETURNING id, name, budget, scoring_system, tender_page_url,
		admin_url, tech_url, summary_file, admin_file, tech_file,
		status, report, created_at, updated_at`

var defaultSort = query.SortField{Field: "CreatedAt", Descending: true}

// Filters narrows tender listings. An empty Status matches every status.
type Filters struct {
	Status        []Status   `json:"status,omitempty"`
	CreatedAfter  *time.Time `json:"created_after,omitempty"`
	CreatedBefore *time.Time `json:"created_before,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	statuses := make([]any, len(f.Status))
	for i, s := range f.Status {
		statuses[i] = string(s)
	}

	return b.
		WhereIn("Status", statuses).
		WhereAtLeast("CreatedAt", f.CreatedAfter).
		WhereAtMost("CreatedAt", f.CreatedBefore)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// status accepts a comma-separated list; unknown statuses and malformed
// RFC 3339 timestamps are dropped.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	for raw := range strings.SplitSeq(values.Get("status"), ",") {
		if raw == "" {
			continue
		}
		if s, err := ParseStatus(raw); err == nil {
			f.Status = append(f.Status, s)
		}
	}

	if t, err := time.Parse(time.RFC3339, values.Get("created_after")); err == nil {
		f.CreatedAfter = &t
	}
	if t, err := time.Parse(time.RFC3339, values.Get("created_before")); err == nil {
		f.CreatedBefore = &t
	}

	return f
}

func scanTender(s repository.Scanner) (Tender, error) {
	var (
		t                    Tender
		summary, admin, tech repository.JSON[staging.StoredFile]
		report               repository.JSON[analysis.Report]
	)
	err := s.Scan(
		&t.ID,
		&t.Name,
		&t.Budget,
		&t.ScoringSystem,
		&t.TenderPageURL,
		&t.AdminURL,
		&t.TechURL,
		&summary,
		&admin,
		&tech,
		&t.Status,
		&report,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return Tender{}, err
	}

	t.SummaryFile = summary.V
	t.AdminFile = admin.V
	t.TechFile = tech.V
	t.Report = report.V
	return t, nil
}
