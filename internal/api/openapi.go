package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/tenderboard/internal/config"
	"github.com/JaimeStill/tenderboard/internal/tenders"
	"github.com/JaimeStill/tenderboard/pkg/openapi"
	"github.com/JaimeStill/tenderboard/pkg/routes"
)

// endpointDoc describes one registered route. Body names a component
// schema; files lists the multipart file fields of an upload instead.
type endpointDoc struct {
	summary string
	tag     string
	body    string
	files   []string
	fields  []string
	created bool
}

var endpointDocs = map[string]endpointDoc{
	"GET /tenders":                   {summary: "List tenders", tag: "tenders"},
	"POST /tenders":                  {summary: "Create a tender from reviewed intake data", tag: "tenders", body: "CreateTender", created: true},
	"POST /tenders/search":           {summary: "Search tenders", tag: "tenders", body: "TenderSearch"},
	"GET /tenders/{id}":              {summary: "Get a tender", tag: "tenders"},
	"PUT /tenders/{id}/status":       {summary: "Move a tender to another workflow column", tag: "tenders", body: "StatusCommand"},
	"POST /tenders/{id}/analyze":     {summary: "Run the feasibility analysis and attach the report", tag: "tenders"},
	"GET /tenders/{id}/files/{slot}": {summary: "Download a tender document (summary, admin or tech)", tag: "tenders"},
	"POST /intake":                   {summary: "Upload a summary sheet and auto-populate a tender draft", tag: "intake", files: []string{"summary"}, fields: []string{"tender_page_url"}},
	"POST /acquisition/scrape":       {summary: "Scrape a tender page for document links", tag: "intake", body: "ScrapeRequest"},
	"POST /staging":                  {summary: "Stage documents for a tender draft", tag: "staging", files: []string{"files"}, created: true},
	"GET /staging/{id}/{name}":       {summary: "Download a staged document", tag: "staging"},
	"DELETE /staging/{id}/{name}":    {summary: "Discard a staged document", tag: "staging"},
	"GET /rules":                     {summary: "Load the qualification rules", tag: "rules"},
	"PUT /rules":                     {summary: "Replace the qualification rules", tag: "rules", body: "SaveRules"},
	"GET /storage":                   {summary: "List stored blobs", tag: "storage"},
	"GET /storage/download/{key...}": {summary: "Download a stored blob", tag: "storage"},
	"GET /storage/{key...}":          {summary: "Get stored blob metadata", tag: "storage"},
	"GET /status":                    {summary: "Service readiness and version", tag: "status"},
}

func schemas() map[string]*openapi.Schema {
	statuses := make([]any, len(tenders.Statuses))
	for i, s := range tenders.Statuses {
		statuses[i] = string(s)
	}

	str := func(desc string) *openapi.Schema {
		return &openapi.Schema{Type: "string", Description: desc}
	}

	return map[string]*openapi.Schema{
		"StoredFile": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"key":          str("Staging key"),
				"filename":     str("Original file name"),
				"content_type": str("Media type"),
				"size_bytes":   {Type: "integer"},
				"page_count":   {Type: "integer"},
				"source_url":   str("URL the document was downloaded from"),
			},
		},
		"CreateTender": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Schema{
				"name":            str("Contract title"),
				"budget":          str("Budget as written on the summary sheet"),
				"scoring_system":  str("Award criteria summary"),
				"tender_page_url": {Type: "string", Format: "uri"},
				"admin_url":       {Type: "string", Format: "uri"},
				"tech_url":        {Type: "string", Format: "uri"},
				"summary_file":    openapi.SchemaRef("StoredFile"),
				"admin_file":      openapi.SchemaRef("StoredFile"),
				"tech_file":       openapi.SchemaRef("StoredFile"),
			},
		},
		"TenderSearch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":           {Type: "integer"},
				"page_size":      {Type: "integer"},
				"search":         str("Matches name, budget and scoring system"),
				"sort":           str("Comma-separated sort fields"),
				"status":         {Type: "array", Items: &openapi.Schema{Type: "string", Enum: statuses}},
				"created_after":  {Type: "string", Format: "date-time"},
				"created_before": {Type: "string", Format: "date-time"},
			},
		},
		"StatusCommand": {
			Type:     "object",
			Required: []string{"status"},
			Properties: map[string]*openapi.Schema{
				"status": {Type: "string", Enum: statuses},
			},
		},
		"ScrapeRequest": {
			Type:       "object",
			Required:   []string{"url"},
			Properties: map[string]*openapi.Schema{"url": {Type: "string", Format: "uri"}},
		},
		"SaveRules": {
			Type:       "object",
			Required:   []string{"text"},
			Properties: map[string]*openapi.Schema{"text": str("Free-text qualification rules")},
		},
	}
}

// buildSpec documents every route the groups register. Routes without an
// entry in endpointDocs are still listed, untagged.
func buildSpec(cfg *config.Config, groups ...routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	spec.Components.AddSchemas(schemas())

	for _, pattern := range routes.Patterns(groups...) {
		method, path, _ := strings.Cut(pattern, " ")
		template, params := openapi.PathTemplate(path)

		if err := spec.AddOperation(method, template, operation(pattern, params)); err != nil {
			return nil, fmt.Errorf("document %s: %w", pattern, err)
		}
	}

	return openapi.MarshalJSON(spec)
}

func operation(pattern string, params []string) *openapi.Operation {
	doc := endpointDocs[pattern]

	op := &openapi.Operation{
		Summary:   doc.summary,
		Responses: map[int]*openapi.Response{},
	}
	if doc.tag != "" {
		op.Tags = []string{doc.tag}
	}

	for _, name := range params {
		if name == "id" {
			op.Parameters = append(op.Parameters, openapi.PathParam(name, "Tender ID"))
			continue
		}
		op.Parameters = append(op.Parameters, openapi.StringPathParam(name, ""))
	}

	switch {
	case len(doc.files) > 0:
		op.RequestBody = openapi.RequestBodyMultipart(doc.files, doc.fields...)
		op.Responses[http.StatusRequestEntityTooLarge] = openapi.ResponseRef("PayloadTooLarge")
	case doc.body != "":
		op.RequestBody = openapi.RequestBodyJSON(doc.body, true)
	}

	success := http.StatusOK
	if doc.created {
		success = http.StatusCreated
	}
	if strings.HasPrefix(pattern, "DELETE ") {
		success = http.StatusNoContent
	}
	op.Responses[success] = &openapi.Response{Description: http.StatusText(success)}

	if len(params) > 0 || op.RequestBody != nil {
		op.Responses[http.StatusBadRequest] = openapi.ResponseRef("BadRequest")
	}
	if len(params) > 0 {
		op.Responses[http.StatusNotFound] = openapi.ResponseRef("NotFound")
	}

	if doc.tag == "intake" || strings.HasSuffix(pattern, "/analyze") {
		op.Responses[http.StatusBadGateway] = openapi.ResponseRef("BadGateway")
	}

	return op
}
