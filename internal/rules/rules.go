// Package rules persists the free-text triage rules that accompany every
// tender analysis.
package rules

import (
	"context"
	"time"
)

// MaxLength bounds the rules text in bytes.
const MaxLength = 32 * 1024

// Rules is the stored rules block. UpdatedAt is nil until rules are first saved.
type Rules struct {
	Text      string     `json:"text"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// SaveCommand replaces the rules text.
type SaveCommand struct {
	Text string `json:"text"`
}

// System defines the rules contract.
type System interface {
	Handler() *Handler

	// Load returns the stored rules, or empty rules when none were saved.
	Load(ctx context.Context) (*Rules, error)
	Save(ctx context.Context, cmd SaveCommand) (*Rules, error)
}
