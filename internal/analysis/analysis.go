// Package analysis is the client for the document understanding service. It
// extracts tender metadata from a summary sheet and produces structured
// feasibility reports, validating every response into typed values.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/tenderboard/internal/prompts"
	"github.com/JaimeStill/tenderboard/pkg/formatting"
)

const extractPrompt = "Extrae los datos de la hoja resumen de la licitación adjunta."

// Metadata describes the tender under analysis.
type Metadata struct {
	Name          string `json:"name"`
	Budget        string `json:"budget"`
	ScoringSystem string `json:"scoringSystem"`
	SourceURL     string `json:"sourceUrl"`
}

// AnalyzeRequest carries everything the analysis call sees. Nil documents
// are omitted.
type AnalyzeRequest struct {
	Metadata Metadata
	Summary  *Document
	Admin    *Document
	Tech     *Document
	Rules    string
}

func (r AnalyzeRequest) documents() []Document {
	docs := make([]Document, 0, 3)
	for _, d := range []*Document{r.Summary, r.Admin, r.Tech} {
		if d != nil && len(d.Data) > 0 {
			docs = append(docs, *d)
		}
	}
	return docs
}

// System defines the document understanding operations.
type System interface {
	Extract(ctx context.Context, doc Document) (*Extraction, error)
	Analyze(ctx context.Context, req AnalyzeRequest) (*Report, error)
}

type service struct {
	completer Completer
	prompts   prompts.Source
	logger    *slog.Logger
	now       func() time.Time
}

// New creates the analysis System.
func New(completer Completer, source prompts.Source, logger *slog.Logger) System {
	return &service{
		completer: completer,
		prompts:   source,
		logger:    logger.With("system", "analysis"),
		now:       time.Now,
	}
}

func (s *service) Extract(ctx context.Context, doc Document) (*Extraction, error) {
	if len(doc.Data) == 0 || !doc.IsPDF() {
		return nil, ErrNoDocument
	}

	system, err := s.compose(ctx, prompts.StageExtract)
	if err != nil {
		return nil, err
	}

	text, err := s.completer.Complete(ctx, Completion{
		System:    system,
		Prompt:    extractPrompt,
		Documents: []Document{doc},
	})
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	extraction, err := formatting.Parse[Extraction](text)
	if err != nil {
		return nil, fmt.Errorf("extract: %w: %w", ErrInvalidResponse, err)
	}
	if err := extraction.normalize(); err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	s.logger.Info("metadata extracted",
		"name", extraction.Name,
		"admin_url", extraction.AdminURL != "",
		"tech_url", extraction.TechURL != "",
	)
	return &extraction, nil
}

func (s *service) Analyze(ctx context.Context, req AnalyzeRequest) (*Report, error) {
	system, err := s.compose(ctx, prompts.StageAnalyze)
	if err != nil {
		return nil, err
	}

	docs := req.documents()
	text, err := s.completer.Complete(ctx, Completion{
		System:    system,
		Prompt:    analyzePrompt(req),
		Documents: docs,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	raw, err := formatting.Parse[rawReport](text)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w: %w", ErrInvalidResponse, err)
	}

	report := raw.report()
	report.Model = s.completer.Model()
	report.GeneratedAt = s.now().UTC()

	s.logger.Info("tender analyzed",
		"name", req.Metadata.Name,
		"documents", len(docs),
		"decision", report.Decision,
	)
	return &report, nil
}

// compose joins the effective instructions and the response specification
// for stage into one system prompt.
func (s *service) compose(ctx context.Context, stage prompts.Stage) (string, error) {
	instructions, err := s.prompts.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := s.prompts.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	return instructions + "\n\n" + spec, nil
}

func analyzePrompt(req AnalyzeRequest) string {
	var sb strings.Builder

	sb.WriteString("Datos de la licitación:\n")
	fmt.Fprintf(&sb, "- Nombre: %s\n", orDash(req.Metadata.Name))
	fmt.Fprintf(&sb, "- Presupuesto: %s\n", orDash(req.Metadata.Budget))
	fmt.Fprintf(&sb, "- Criterios de adjudicación: %s\n", orDash(req.Metadata.ScoringSystem))
	fmt.Fprintf(&sb, "- Página de la licitación: %s\n", orDash(req.Metadata.SourceURL))

	sb.WriteString("\nReglas de la empresa:\n")
	if rules := strings.TrimSpace(req.Rules); rules != "" {
		sb.WriteString(rules)
	} else {
		sb.WriteString("(sin reglas definidas)")
	}
	sb.WriteString("\n")

	return sb.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
