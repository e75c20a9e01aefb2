package prompts

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/tenderboard/pkg/query"
	"github.com/JaimeStill/tenderboard/pkg/repository"
)

// projection column order must match scanPrompt.
var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("name", "Name").
	Project("stage", "Stage").
	Project("instructions", "Instructions").
	Project("description", "Description").
	Project("active", "Active")

// Overrides list grouped by stage, then alphabetically.
var defaultSort = []query.SortField{{Field: "Stage"}, {Field: "Name"}}

// Filters narrows prompt listings. Nil fields match everything. Free-text
// search comes from the page request instead.
type Filters struct {
	Stage  *Stage  `json:"stage,omitempty"`
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Stage", f.Stage).
		WhereContains("Name", f.Name).
		WhereEquals("Active", f.Active)
}

// FiltersFromQuery reads ?stage=, ?name= and ?active=. Values
// that do not parse are dropped, so ?stage=banana lists every stage
// instead of nothing.
func FiltersFromQuery(values url.Values) Filters {
	f := Filters{Name: nonEmpty(values.Get("name"))}
	if stage, err := ParseStage(values.Get("stage")); err == nil {
		f.Stage = &stage
	}
	if active, err := strconv.ParseBool(values.Get("active")); err == nil {
		f.Active = &active
	}
	return f
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	err := s.Scan(&p.ID, &p.Name, &p.Stage, &p.Instructions, &p.Description, &p.Active)
	return p, err
}
