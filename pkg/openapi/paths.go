package openapi

import (
	"fmt"
	"strings"
)

// PathTemplate converts a ServeMux path pattern into an OpenAPI path
// template and returns the names of its path parameters in order.
// Trailing "..." wildcards become plain parameters and the "{$}" anchor
// is dropped.
func PathTemplate(pattern string) (string, []string) {
	segments := strings.Split(pattern, "/")
	var params []string

	out := segments[:0]
	for _, seg := range segments {
		if seg == "{$}" {
			continue
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			name := strings.TrimSuffix(strings.Trim(seg, "{}"), "...")
			params = append(params, name)
			seg = "{" + name + "}"
		}
		out = append(out, seg)
	}

	path := strings.Join(out, "/")
	if path == "" {
		path = "/"
	}
	return path, params
}

// AddOperation attaches op to path under the given HTTP method, creating
// the path item when needed.
func (s *Spec) AddOperation(method, path string, op *Operation) error {
	item, ok := s.Paths[path]
	if !ok {
		item = &PathItem{}
		s.Paths[path] = item
	}

	switch strings.ToUpper(method) {
	case "GET":
		item.Get = op
	case "POST":
		item.Post = op
	case "PUT":
		item.Put = op
	case "DELETE":
		item.Delete = op
	default:
		return fmt.Errorf("unsupported method %q for %s", method, path)
	}
	return nil
}
