package openapi

import "os"

// Config is the document's info block. The version always comes from the
// service build, so only the human-facing text is configurable.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// Env names the override variables for Config.
type Env struct {
	Title       string
	Description string
}

const (
	defaultTitle       = "Tenderboard API"
	defaultDescription = "Intake, document acquisition and feasibility triage for public procurement tenders."
)

func (c *Config) Finalize(env *Env) error {
	if env != nil {
		override(&c.Title, env.Title)
		override(&c.Description, env.Description)
	}
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.Description == "" {
		c.Description = defaultDescription
	}
	return nil
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
}

func override(dst *string, name string) {
	if name == "" {
		return
	}
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
