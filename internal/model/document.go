package model

import "time"

// Document represents a stored file and its analysis results.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
//
// Summary, DocumentType, ExtractedMetadata and AnalyzedAt stay nil until the
// first successful analysis; a non-nil AnalyzedAt always comes with a non-nil
// Summary and DocumentType. Re-analysis overwrites prior results in place.
type Document struct {
	ID                string         `json:"id"`
	Filename          string         `json:"filename"`
	FilePath          string         `json:"file_path"`
	FileSize          int64          `json:"file_size"`
	FileType          string         `json:"file_type"`
	ExtractedText     string         `json:"extracted_text,omitempty"`
	Summary           *string        `json:"summary"`
	DocumentType      *string        `json:"document_type"`
	ExtractedMetadata map[string]any `json:"metadata"`
	CreatedAt         time.Time      `json:"created_at"`
	AnalyzedAt        *time.Time     `json:"analyzed_at"`
}

// Analyzed reports whether the document carries analysis results.
func (d *Document) Analyzed() bool {
	return d.AnalyzedAt != nil
}
