package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Sanjay-Kirti/YouMDB/internal/db"
	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/internal/store"
)

// EventPublisher hands an accepted suggestion to the broker for the
// import worker. Implemented by MessagePublisher.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *models.SuggestionEvent) error
}

// SuggestionInput carries the caller-supplied fields of a new suggestion.
type SuggestionInput struct {
	URL       string `json:"url"`
	ExtraInfo string `json:"extra_info,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// SuggestionService accepts channel suggestions, deduplicates them by
// normalized URL and notifies the import worker.
type SuggestionService struct {
	suggestions store.SuggestionStore
	publisher   EventPublisher
	logger      *zap.Logger
}

// NewSuggestionService creates a new suggestion service. publisher may be
// nil; suggestions then wait for the import worker's periodic sweep.
func NewSuggestionService(s *store.Store, publisher EventPublisher, logger *zap.Logger) *SuggestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuggestionService{
		suggestions: s.Suggestions,
		publisher:   publisher,
		logger:      logger,
	}
}

// Submit validates and stores a suggestion. A URL already suggested
// (after normalization) yields db.ErrDuplicateKey. The broker publish is
// best-effort; the stored row is the source of truth.
func (s *SuggestionService) Submit(ctx context.Context, session models.Session, input SuggestionInput) (*models.Suggestion, error) {
	url := strings.TrimSpace(input.URL)
	if url == "" {
		return nil, fmt.Errorf("%w: url is required", db.ErrInvalidArgument)
	}
	if !strings.Contains(url, "youtube.com") && !strings.HasPrefix(url, "@") {
		return nil, fmt.Errorf("%w: not a YouTube channel URL", db.ErrInvalidArgument)
	}

	suggestion := models.NewSuggestion(url)
	suggestion.URLHash = db.SuggestionURLHash(url)
	suggestion.ExtraInfo = input.ExtraInfo
	suggestion.Notes = input.Notes
	if !session.Anonymous && session.UserID != "" {
		userID := session.UserID
		suggestion.UserID = &userID
	}

	if err := s.suggestions.Create(ctx, suggestion); err != nil {
		return nil, err
	}

	s.logger.Info("suggestion accepted",
		zap.String("suggestion_id", suggestion.ID),
		zap.String("url", suggestion.URL))

	if s.publisher != nil {
		event := &models.SuggestionEvent{
			SuggestionID: suggestion.ID,
			URL:          suggestion.URL,
			ReceivedAt:   time.Now(),
		}
		if err := s.publisher.PublishEvent(ctx, event); err != nil {
			// The sweep in the import worker retries unpublished rows.
			s.logger.Warn("failed to publish suggestion event",
				zap.String("suggestion_id", suggestion.ID), zap.Error(err))
		}
	}

	return suggestion, nil
}

// List returns suggestions, optionally only those not yet imported.
func (s *SuggestionService) List(ctx context.Context, onlyUnprocessed bool) ([]*models.Suggestion, error) {
	return s.suggestions.List(ctx, onlyUnprocessed)
}
