package openapi

import (
	"maps"
	"net/http"
)

// errorResponses are the failure shapes every handler emits through
// handlers.RespondError, keyed by component name.
var errorResponses = map[string]int{
	"BadRequest":      http.StatusBadRequest,
	"NotFound":        http.StatusNotFound,
	"Conflict":        http.StatusConflict,
	"PayloadTooLarge": http.StatusRequestEntityTooLarge,
	"BadGateway":      http.StatusBadGateway,
}

// NewComponents returns the shared Error and PageRequest schemas plus one
// response component per entry in errorResponses.
func NewComponents() *Components {
	c := &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type:     "object",
				Required: []string{"error"},
				Properties: map[string]*Schema{
					"error": {Type: "string", Description: "Error message"},
				},
			},
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"page_size": {Type: "integer", Description: "Results per page", Example: 20},
					"search":    {Type: "string", Description: "Search query"},
					"sort":      {Type: "string", Description: "Comma-separated sort fields, - prefix for descending", Example: "-created_at"},
				},
			},
		},
		Responses: make(map[string]*Response, len(errorResponses)),
	}

	for name, status := range errorResponses {
		c.Responses[name] = ResponseJSON(http.StatusText(status), "Error")
	}
	return c
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
