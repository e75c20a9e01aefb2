package openapi

const (
	schemaPrefix   = "#/components/schemas/"
	responsePrefix = "#/components/responses/"
	mediaJSON      = "application/json"
)

// SchemaRef points at a component schema.
func SchemaRef(name string) *Schema {
	return &Schema{Ref: schemaPrefix + name}
}

// ResponseRef points at a component response.
func ResponseRef(name string) *Response {
	return &Response{Ref: responsePrefix + name}
}

// RequestBodyJSON is a JSON body typed by a component schema.
func RequestBodyJSON(schemaName string, required bool) *RequestBody {
	return &RequestBody{
		Required: required,
		Content:  map[string]*MediaType{mediaJSON: {Schema: SchemaRef(schemaName)}},
	}
}

// RequestBodyMultipart is a multipart/form-data body with the given
// fields, each a binary file unless listed in text.
func RequestBodyMultipart(files []string, text ...string) *RequestBody {
	props := make(map[string]*Schema, len(files)+len(text))
	for _, f := range files {
		props[f] = &Schema{Type: "string", Format: "binary"}
	}
	for _, t := range text {
		props[t] = &Schema{Type: "string"}
	}

	return &RequestBody{
		Required: true,
		Content: map[string]*MediaType{
			"multipart/form-data": {Schema: &Schema{Type: "object", Required: files, Properties: props}},
		},
	}
}

// ResponseJSON is a JSON response typed by a component schema.
func ResponseJSON(description, schemaName string) *Response {
	return &Response{
		Description: description,
		Content:     map[string]*MediaType{mediaJSON: {Schema: SchemaRef(schemaName)}},
	}
}

// PathParam is a required UUID path parameter.
func PathParam(name, description string) *Parameter {
	p := StringPathParam(name, description)
	p.Schema.Format = "uuid"
	return p
}

// StringPathParam is a required free-form string path parameter.
func StringPathParam(name, description string) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "path",
		Required:    true,
		Description: description,
		Schema:      &Schema{Type: "string"},
	}
}

// QueryParam is a query parameter of the given JSON type.
func QueryParam(name, typ, description string, required bool) *Parameter {
	return &Parameter{
		Name:        name,
		In:          "query",
		Required:    required,
		Description: description,
		Schema:      &Schema{Type: typ},
	}
}
