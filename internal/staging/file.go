// Package staging stores tender documents in blob storage under
// content-addressed keys before a tender record references them.
package staging

import (
	"path"
	"strings"
)

// KeyPrefix roots every staged blob key.
const KeyPrefix = "staging/"

// StoredFile describes a staged document. It is embedded as jsonb in
// tender records, so its json shape is part of the stored schema.
type StoredFile struct {
	Key         string `json:"key"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	PageCount   *int   `json:"page_count,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
}

// StageCommand contains the data needed to stage a document.
// SourceURL is recorded when the document was fetched rather than uploaded.
type StageCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	SourceURL   string
}

// BatchResult reports the outcome of a single file within a batch upload.
// On success, File is populated and Error is empty.
type BatchResult struct {
	File     *StoredFile `json:"file,omitempty"`
	Filename string      `json:"filename"`
	Error    string      `json:"error,omitempty"`
}

// IsStagingKey reports whether key names a blob under KeyPrefix with no
// traversal segments.
func IsStagingKey(key string) bool {
	if !strings.HasPrefix(key, KeyPrefix) || strings.Contains(key, "..") {
		return false
	}
	return path.Clean(key) == key
}
