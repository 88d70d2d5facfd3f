package handler

import (
	"context"
	"strings"

	"github.com/Sanjay-Kirti/YouMDB/internal/db"
	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/internal/store"
)

// In-memory store used across the handler tests. Deliberately simple:
// no locking, handlers under test are exercised sequentially.

type memCreatorStore struct {
	creators []*models.Creator
	err      error
}

func (m *memCreatorStore) GetAll(ctx context.Context) ([]*models.Creator, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.creators, nil
}

func (m *memCreatorStore) GetByID(ctx context.Context, id string) (*models.Creator, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.creators {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memCreatorStore) SearchByName(ctx context.Context, s string) ([]*models.Creator, error) {
	var out []*models.Creator
	for _, c := range m.creators {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(s)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCreatorStore) FindByLocation(ctx context.Context, country, state string) ([]*models.Creator, error) {
	var out []*models.Creator
	for _, c := range m.creators {
		if c.Country == country && (state == "" || c.State == state) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCreatorStore) Create(ctx context.Context, c *models.Creator) error {
	if m.err != nil {
		return m.err
	}
	m.creators = append(m.creators, c)
	return nil
}

func (m *memCreatorStore) Upsert(ctx context.Context, c *models.Creator) error {
	return m.Create(ctx, c)
}

func (m *memCreatorStore) UpdateRating(ctx context.Context, id string, rating float64) error {
	c, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.AverageRating = rating
	return nil
}

func (m *memCreatorStore) UpdateInsights(ctx context.Context, id string, insights string) error {
	c, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.Insights = &insights
	return nil
}

type memVideoStore struct {
	videos []*models.Video
}

func (m *memVideoStore) GetAll(ctx context.Context) ([]*models.Video, error) {
	return m.videos, nil
}

func (m *memVideoStore) GetByID(ctx context.Context, id string) (*models.Video, error) {
	for _, v := range m.videos {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memVideoStore) ListByCreator(ctx context.Context, creatorID string) ([]*models.Video, error) {
	var out []*models.Video
	for _, v := range m.videos {
		if v.CreatorID == creatorID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memVideoStore) Create(ctx context.Context, v *models.Video) error {
	m.videos = append(m.videos, v)
	return nil
}

func (m *memVideoStore) UpdateRating(ctx context.Context, id string, rating float64) error {
	v, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	v.AverageRating = rating
	return nil
}

func (m *memVideoStore) UpdateSummary(ctx context.Context, id string, summary string) error {
	v, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	v.Summary = &summary
	return nil
}

type memReviewStore struct {
	reviews []*models.Review
}

func (m *memReviewStore) GetByID(ctx context.Context, id string) (*models.Review, error) {
	for _, r := range m.reviews {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memReviewStore) ListByEntity(ctx context.Context, entityID string, entityType models.EntityType) ([]*models.Review, error) {
	var out []*models.Review
	for _, r := range m.reviews {
		if r.EntityID == entityID && r.EntityType == entityType {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReviewStore) Create(ctx context.Context, r *models.Review) error {
	m.reviews = append(m.reviews, r)
	return nil
}

func (m *memReviewStore) UpdateReactions(ctx context.Context, id string, likes, dislikes []string) error {
	r, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	r.Likes = likes
	r.Dislikes = dislikes
	return nil
}

type memSuggestionStore struct {
	suggestions []*models.Suggestion
}

func (m *memSuggestionStore) GetByID(ctx context.Context, id string) (*models.Suggestion, error) {
	for _, s := range m.suggestions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *memSuggestionStore) List(ctx context.Context, onlyUnprocessed bool) ([]*models.Suggestion, error) {
	var out []*models.Suggestion
	for _, s := range m.suggestions {
		if onlyUnprocessed && s.Processed {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *memSuggestionStore) Create(ctx context.Context, s *models.Suggestion) error {
	for _, existing := range m.suggestions {
		if existing.URLHash == s.URLHash {
			return db.ErrDuplicateKey
		}
	}
	m.suggestions = append(m.suggestions, s)
	return nil
}

func (m *memSuggestionStore) MarkProcessed(ctx context.Context, id string, processingError string) error {
	s, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.Processed = true
	if processingError != "" {
		s.ProcessingError = &processingError
	}
	return nil
}

func newMemStore() *store.Store {
	return &store.Store{
		Creators:    &memCreatorStore{},
		Videos:      &memVideoStore{},
		Reviews:     &memReviewStore{},
		Suggestions: &memSuggestionStore{},
	}
}
