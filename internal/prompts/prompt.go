// Package prompts manages the instructions sent to the document
// understanding service. Each stage has hardcoded default instructions and
// an immutable response specification; operators may store named
// instruction overrides and activate at most one per stage.
package prompts

import "github.com/google/uuid"

// Prompt is a named instruction override for a stage.
type Prompt struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Stage        Stage     `json:"stage"`
	Instructions string    `json:"instructions"`
	Description  *string   `json:"description"`
	Active       bool      `json:"active"`
}

// CreateCommand carries the data needed to create a prompt override.
type CreateCommand struct {
	Name         string  `json:"name"`
	Stage        Stage   `json:"stage"`
	Instructions string  `json:"instructions"`
	Description  *string `json:"description"`
}

// UpdateCommand carries the data needed to update a prompt override.
type UpdateCommand struct {
	Name         string  `json:"name"`
	Stage        Stage   `json:"stage"`
	Instructions string  `json:"instructions"`
	Description  *string `json:"description"`
}

func (c CreateCommand) validate() error {
	return validateFields(c.Name, c.Stage, c.Instructions)
}

func (c UpdateCommand) validate() error {
	return validateFields(c.Name, c.Stage, c.Instructions)
}
