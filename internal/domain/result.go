package domain

import "github.com/google/uuid"

// IngestionResult is the aggregate outcome of one parse pass over an
// export. It is built once and never mutated afterwards. MessageCount is
// the number of messages the export contained before system-message
// filtering.
type IngestionResult struct {
	RunID        uuid.UUID          `json:"runId"`
	SourceType   string             `json:"sourceType"`
	SourceName   string             `json:"sourceName,omitempty"`
	MessageCount int                `json:"messageCount"`
	Tools        []ExtractedTool    `json:"tools"`
	Articles     []ExtractedArticle `json:"articles"`
	Errors       []string           `json:"errors,omitempty"`
}

// NewIngestionResult stamps a fresh run identifier.
func NewIngestionResult(sourceType, sourceName string) IngestionResult {
	return IngestionResult{
		RunID:      uuid.New(),
		SourceType: sourceType,
		SourceName: sourceName,
	}
}
