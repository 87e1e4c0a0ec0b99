package services

import (
	"context"

	"notebrief/models"
	"notebrief/repositories"
)

// HistoryStore is the slice of the repository the history service needs.
type HistoryStore interface {
	List(ctx context.Context, ownerID string, opt repositories.ListOptions) ([]models.Summary, int64, error)
	FindByID(ctx context.Context, id, ownerID string) (*models.Summary, error)
	Update(ctx context.Context, id, ownerID string, fields repositories.UpdateFields) (*models.Summary, error)
	Delete(ctx context.Context, id, ownerID string) error
	DeleteAllByOwner(ctx context.Context, ownerID string) (int64, error)
	Stats(ctx context.Context, ownerID string) (*models.SummaryStats, error)
}

// HistoryService scopes record access by the caller's owner id. An empty
// owner id (guest or anonymous caller) reaches only unowned records; owned
// records are invisible to it for reads and writes alike.
type HistoryService struct {
	store HistoryStore
}

func NewHistoryService(store HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

func (s *HistoryService) List(ctx context.Context, ownerID string, opt repositories.ListOptions) ([]models.Summary, int64, error) {
	return s.store.List(ctx, ownerID, opt)
}

func (s *HistoryService) Get(ctx context.Context, id, ownerID string) (*models.Summary, error) {
	return s.store.FindByID(ctx, id, ownerID)
}

func (s *HistoryService) Update(ctx context.Context, id, ownerID string, fields repositories.UpdateFields) (*models.Summary, error) {
	return s.store.Update(ctx, id, ownerID, fields)
}

func (s *HistoryService) Delete(ctx context.Context, id, ownerID string) error {
	return s.store.Delete(ctx, id, ownerID)
}

func (s *HistoryService) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
	return s.store.DeleteAllByOwner(ctx, ownerID)
}

func (s *HistoryService) Stats(ctx context.Context, ownerID string) (*models.SummaryStats, error) {
	return s.store.Stats(ctx, ownerID)
}
