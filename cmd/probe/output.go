package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/tenderboard/internal/acquisition"
	"github.com/JaimeStill/tenderboard/pkg/formatting"
)

// fileReport is the printable view of a downloaded document.
type fileReport struct {
	Name        string               `json:"name"`
	ContentType string               `json:"contentType"`
	SourceURL   string               `json:"sourceUrl"`
	Size        int64                `json:"size"`
	Category    acquisition.Category `json:"category"`
	SavedTo     string               `json:"savedTo,omitempty"`
}

func reportFile(f *acquisition.File) (*fileReport, error) {
	if f == nil {
		return nil, nil
	}

	r := &fileReport{
		Name:        f.Name,
		ContentType: f.ContentType,
		SourceURL:   f.SourceURL,
		Size:        f.Size(),
		Category:    acquisition.ClassifyFilename(f.Name),
	}

	if saveDir != "" {
		path, err := save(f)
		if err != nil {
			return nil, err
		}
		r.SavedTo = path
	}
	return r, nil
}

func save(f *acquisition.File) (string, error) {
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}
	name := formatting.SanitizeFilename(f.Name)
	if name == "" {
		name = acquisition.DefaultPrefix
	}
	path := filepath.Join(saveDir, name)
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// emit prints v as JSON, or calls human when the output format is human.
func emit(v any, human func()) error {
	switch strings.ToLower(output) {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "human":
		human()
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
}

func printFile(label string, r *fileReport) {
	if r == nil {
		fmt.Printf("%-6s not found\n", label+":")
		return
	}
	fmt.Printf("%-6s %s (%s, %s, %s)\n",
		label+":", r.Name, r.ContentType, formatting.FormatBytes(r.Size, 1), r.Category)
	fmt.Printf("       %s\n", r.SourceURL)
	if r.SavedTo != "" {
		fmt.Printf("       saved to %s\n", r.SavedTo)
	}
}
