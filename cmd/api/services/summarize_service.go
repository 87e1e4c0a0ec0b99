package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"notebrief/cmd/internal/logger"
	"notebrief/extract"
	"notebrief/models"
	"notebrief/summarizer"
	"notebrief/validate"
)

// saveTimeout bounds the detached best-effort persistence step.
const saveTimeout = 10 * time.Second

// SaveOutcome reports the best-effort persistence result. Callers may ignore
// it by design; failures are logged and never surfaced to the HTTP response.
type SaveOutcome struct {
	Saved bool
	Err   error
}

// SummaryStore is the slice of the repository the service needs.
type SummaryStore interface {
	Insert(ctx context.Context, s *models.Summary) error
}

type SummarizeService struct {
	extractor  *extract.Extractor
	summarizer *summarizer.Summarizer
	store      SummaryStore
	maxUpload  int64
}

func NewSummarizeService(ex *extract.Extractor, sm *summarizer.Summarizer, store SummaryStore, maxUpload int64) *SummarizeService {
	return &SummarizeService{extractor: ex, summarizer: sm, store: store, maxUpload: maxUpload}
}

// MaxUpload returns the upload ceiling in bytes. Handlers check declared
// sizes against it before buffering a request body.
func (s *SummarizeService) MaxUpload() int64 {
	if s.maxUpload > 0 {
		return s.maxUpload
	}
	return validate.MaxFileSizeBytes
}

// SummarizeText runs the pasted-text pipeline: validate, summarize, then a
// fire-and-forget save. The returned record carries its id even when the
// save has not completed yet.
func (s *SummarizeService) SummarizeText(ctx context.Context, text, ownerID string) (*models.Summary, <-chan SaveOutcome, error) {
	if err := validate.Text(text); err != nil {
		return nil, nil, err
	}

	result, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		return nil, nil, err
	}

	record := s.newRecord(text, ownerID, result, models.SourceMetadata{
		Channel: models.SourceChannelText,
	})
	outcome := s.saveAsync(record)
	return record, outcome, nil
}

// SummarizeUpload runs the upload pipeline: validate metadata, extract text,
// summarize, fire-and-forget save.
func (s *SummarizeService) SummarizeUpload(ctx context.Context, filename, mimeType string, data []byte, ownerID string) (*models.Summary, <-chan SaveOutcome, error) {
	if err := validate.File(filename, mimeType, int64(len(data)), s.maxUpload); err != nil {
		return nil, nil, err
	}

	text, err := s.extractor.Extract(ctx, data, mimeType)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.summarizer.Summarize(ctx, text)
	if err != nil {
		return nil, nil, err
	}

	record := s.newRecord(text, ownerID, result, models.SourceMetadata{
		Channel:   models.SourceChannelUpload,
		Filename:  filename,
		MimeType:  mimeType,
		SizeBytes: int64(len(data)),
	})
	outcome := s.saveAsync(record)
	return record, outcome, nil
}

func (s *SummarizeService) newRecord(text, ownerID string, result *summarizer.Result, source models.SourceMetadata) *models.Summary {
	return &models.Summary{
		ID:           primitive.NewObjectID(),
		OwnerID:      ownerID,
		OriginalText: text,
		Summary:      result.Summary,
		KeyPoints:    result.KeyPoints,
		Source:       source,
	}
}

// saveAsync persists the record in a detached goroutine with its own
// deadline. The request context is deliberately not used: the save must not
// be cancelled when the response is already on its way out.
func (s *SummarizeService) saveAsync(record *models.Summary) <-chan SaveOutcome {
	out := make(chan SaveOutcome, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()

		if err := s.store.Insert(ctx, record); err != nil {
			logger.ErrorWithFields("history save failed", logger.Fields{
				"record_id": record.ID.Hex(),
				"owner_id":  record.OwnerID,
				"error":     err.Error(),
			})
			out <- SaveOutcome{Saved: false, Err: err}
			return
		}
		out <- SaveOutcome{Saved: true}
	}()
	return out
}
