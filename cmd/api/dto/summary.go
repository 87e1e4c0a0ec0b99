package dto

import (
	"time"

	"notebrief/models"
)

// SummarizeRequest is the pasted-text input.
type SummarizeRequest struct {
	Text string `json:"text" example:"The quick brown fox jumps over the lazy dog repeatedly."`
}

// SummaryDTO is the external record shape.
type SummaryDTO struct {
	ID        string                `json:"id"`
	Original  string                `json:"original"`
	Summary   string                `json:"summary"`
	KeyPoints []string              `json:"keyPoints"`
	WordCount int                   `json:"wordCount"`
	Source    models.SourceMetadata `json:"source"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// UploadResultDTO is the upload endpoint's payload: the extracted text plus
// the summarization outcome.
type UploadResultDTO struct {
	Filename      string    `json:"filename"`
	ExtractedText string    `json:"extractedText"`
	Summary       string    `json:"summary"`
	KeyPoints     []string  `json:"keyPoints"`
	Timestamp     time.Time `json:"timestamp"`
	ID            string    `json:"id,omitempty"`
}

// FromSummary maps a stored record to its external shape.
func FromSummary(s *models.Summary) SummaryDTO {
	keyPoints := s.KeyPoints
	if keyPoints == nil {
		keyPoints = []string{}
	}
	return SummaryDTO{
		ID:        s.ID.Hex(),
		Original:  s.OriginalText,
		Summary:   s.Summary,
		KeyPoints: keyPoints,
		WordCount: s.WordCount,
		Source:    s.Source,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
