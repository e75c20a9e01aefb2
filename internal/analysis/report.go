package analysis

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Decision is the recommended triage outcome.
type Decision string

const (
	DecisionKeep    Decision = "KEEP"
	DecisionDiscard Decision = "DISCARD"
	DecisionReview  Decision = "REVIEW"
)

// ParseDecision maps s to a Decision. Unknown values become REVIEW so that
// an unclear answer always lands with a human.
func ParseDecision(s string) Decision {
	switch d := Decision(strings.ToUpper(strings.TrimSpace(s))); d {
	case DecisionKeep, DecisionDiscard, DecisionReview:
		return d
	default:
		return DecisionReview
	}
}

// Category classifies an award sub-criterion.
type Category string

const (
	CategoryPrice   Category = "PRICE"
	CategoryFormula Category = "FORMULA"
	CategoryValue   Category = "VALUE"
)

// ParseCategory maps s to a Category, defaulting to VALUE.
func ParseCategory(s string) Category {
	switch c := Category(strings.ToUpper(strings.TrimSpace(s))); c {
	case CategoryPrice, CategoryFormula, CategoryValue:
		return c
	default:
		return CategoryValue
	}
}

// Section is one analysis dimension of a report.
type Section struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Concerns   []string `json:"concerns"`
}

// SubCriterion is one weighted award criterion.
type SubCriterion struct {
	Label    string   `json:"label"`
	Weight   float64  `json:"weight"`
	Category Category `json:"category"`
}

// Scoring summarizes how the award criteria are weighted, each 0-100.
type Scoring struct {
	Price       float64        `json:"price"`
	Formula     float64        `json:"formula"`
	Value       float64        `json:"value"`
	SubCriteria []SubCriterion `json:"subCriteria"`
}

// Report is the structured feasibility analysis of a tender.
type Report struct {
	Decision         Decision  `json:"decision"`
	SummaryReasoning string    `json:"summaryReasoning"`
	Economic         Section   `json:"economic"`
	Scope            Section   `json:"scope"`
	Resources        Section   `json:"resources"`
	Solvency         Section   `json:"solvency"`
	Strategy         Section   `json:"strategy"`
	Scoring          Scoring   `json:"scoring"`
	Model            string    `json:"model,omitempty"`
	GeneratedAt      time.Time `json:"generatedAt"`
}

// weight accepts JSON numbers and strings such as "40", "40%", or "40,5".
type weight float64

func (w *weight) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*w = weight(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*w = 0
		return nil
	}

	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	s = strings.ReplaceAll(s, ",", ".")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		n = 0
	}
	*w = weight(n)
	return nil
}

type rawSection struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Concerns   []string `json:"concerns"`
}

type rawReport struct {
	Decision         string      `json:"decision"`
	SummaryReasoning string      `json:"summaryReasoning"`
	Economic         *rawSection `json:"economic"`
	Scope            *rawSection `json:"scope"`
	Resources        *rawSection `json:"resources"`
	Solvency         *rawSection `json:"solvency"`
	Strategy         *rawSection `json:"strategy"`
	Scoring          *struct {
		Price       weight `json:"price"`
		Formula     weight `json:"formula"`
		Value       weight `json:"value"`
		SubCriteria []struct {
			Label    string `json:"label"`
			Weight   weight `json:"weight"`
			Category string `json:"category"`
		} `json:"subCriteria"`
	} `json:"scoring"`
}

// report converts the loosely typed response into a Report with every
// optional field set to a defined default.
func (r rawReport) report() Report {
	rep := Report{
		Decision:         ParseDecision(r.Decision),
		SummaryReasoning: strings.TrimSpace(r.SummaryReasoning),
		Economic:         r.Economic.section(),
		Scope:            r.Scope.section(),
		Resources:        r.Resources.section(),
		Solvency:         r.Solvency.section(),
		Strategy:         r.Strategy.section(),
		Scoring:          Scoring{SubCriteria: []SubCriterion{}},
	}

	if s := r.Scoring; s != nil {
		rep.Scoring.Price = clamp(float64(s.Price))
		rep.Scoring.Formula = clamp(float64(s.Formula))
		rep.Scoring.Value = clamp(float64(s.Value))

		for _, sc := range s.SubCriteria {
			label := strings.TrimSpace(sc.Label)
			if label == "" {
				continue
			}
			rep.Scoring.SubCriteria = append(rep.Scoring.SubCriteria, SubCriterion{
				Label:    label,
				Weight:   clamp(float64(sc.Weight)),
				Category: ParseCategory(sc.Category),
			})
		}
	}

	return rep
}

func (s *rawSection) section() Section {
	if s == nil {
		return Section{Highlights: []string{}, Concerns: []string{}}
	}
	return Section{
		Summary:    strings.TrimSpace(s.Summary),
		Highlights: nonEmpty(s.Highlights),
		Concerns:   nonEmpty(s.Concerns),
	}
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func clamp(v float64) float64 {
	return min(max(v, 0), 100)
}
