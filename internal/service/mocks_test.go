package service

import (
	"context"
	"sync"

	"github.com/Sanjay-Kirti/YouMDB/internal/db"
	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/internal/store"
)

// In-memory store mocks shared by the service tests.

type mockCreatorStore struct {
	mu       sync.Mutex
	creators map[string]*models.Creator
	ratings  map[string]float64
	insights map[string]string
	upserts  int
	err      error
}

func newMockCreatorStore() *mockCreatorStore {
	return &mockCreatorStore{
		creators: make(map[string]*models.Creator),
		ratings:  make(map[string]float64),
		insights: make(map[string]string),
	}
}

func (m *mockCreatorStore) GetAll(ctx context.Context) ([]*models.Creator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Creator
	for _, c := range m.creators {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCreatorStore) GetByID(ctx context.Context, id string) (*models.Creator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.creators[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return c, nil
}

func (m *mockCreatorStore) SearchByName(ctx context.Context, s string) ([]*models.Creator, error) {
	return nil, nil
}

func (m *mockCreatorStore) FindByLocation(ctx context.Context, country, state string) ([]*models.Creator, error) {
	return nil, nil
}

func (m *mockCreatorStore) Create(ctx context.Context, c *models.Creator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.creators[c.ID] = c
	return nil
}

func (m *mockCreatorStore) Upsert(ctx context.Context, c *models.Creator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.upserts++
	if c.YouTubeChannelID != nil {
		for _, existing := range m.creators {
			if existing.YouTubeChannelID != nil && *existing.YouTubeChannelID == *c.YouTubeChannelID {
				c.ID = existing.ID
				m.creators[existing.ID] = c
				return nil
			}
		}
	}
	m.creators[c.ID] = c
	return nil
}

func (m *mockCreatorStore) UpdateRating(ctx context.Context, id string, rating float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.creators[id]; !ok {
		return db.ErrNotFound
	}
	m.ratings[id] = rating
	return nil
}

func (m *mockCreatorStore) UpdateInsights(ctx context.Context, id string, insights string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.creators[id]; !ok {
		return db.ErrNotFound
	}
	m.insights[id] = insights
	return nil
}

type mockVideoStore struct {
	mu      sync.Mutex
	videos  map[string]*models.Video
	ratings map[string]float64
}

func newMockVideoStore() *mockVideoStore {
	return &mockVideoStore{
		videos:  make(map[string]*models.Video),
		ratings: make(map[string]float64),
	}
}

func (m *mockVideoStore) GetAll(ctx context.Context) ([]*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Video
	for _, v := range m.videos {
		out = append(out, v)
	}
	return out, nil
}

func (m *mockVideoStore) GetByID(ctx context.Context, id string) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.videos[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return v, nil
}

func (m *mockVideoStore) ListByCreator(ctx context.Context, creatorID string) ([]*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Video
	for _, v := range m.videos {
		if v.CreatorID == creatorID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockVideoStore) Create(ctx context.Context, v *models.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.videos[v.ID] = v
	return nil
}

func (m *mockVideoStore) UpdateRating(ctx context.Context, id string, rating float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.videos[id]; !ok {
		return db.ErrNotFound
	}
	m.ratings[id] = rating
	return nil
}

func (m *mockVideoStore) UpdateSummary(ctx context.Context, id string, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.videos[id]
	if !ok {
		return db.ErrNotFound
	}
	v.Summary = &summary
	return nil
}

type mockReviewStore struct {
	mu      sync.Mutex
	reviews map[string]*models.Review
	err     error
}

func newMockReviewStore() *mockReviewStore {
	return &mockReviewStore{reviews: make(map[string]*models.Review)}
}

func (m *mockReviewStore) GetByID(ctx context.Context, id string) (*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.reviews[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return r, nil
}

func (m *mockReviewStore) ListByEntity(ctx context.Context, entityID string, entityType models.EntityType) ([]*models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Review
	for _, r := range m.reviews {
		if r.EntityID == entityID && r.EntityType == entityType {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReviewStore) Create(ctx context.Context, r *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.reviews[r.ID] = r
	return nil
}

func (m *mockReviewStore) UpdateReactions(ctx context.Context, id string, likes, dislikes []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return db.ErrNotFound
	}
	r.Likes = likes
	r.Dislikes = dislikes
	return nil
}

type mockSuggestionStore struct {
	mu          sync.Mutex
	suggestions map[string]*models.Suggestion
	hashes      map[string]bool
}

func newMockSuggestionStore() *mockSuggestionStore {
	return &mockSuggestionStore{
		suggestions: make(map[string]*models.Suggestion),
		hashes:      make(map[string]bool),
	}
}

func (m *mockSuggestionStore) GetByID(ctx context.Context, id string) (*models.Suggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.suggestions[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return s, nil
}

func (m *mockSuggestionStore) List(ctx context.Context, onlyUnprocessed bool) ([]*models.Suggestion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Suggestion
	for _, s := range m.suggestions {
		if onlyUnprocessed && s.Processed {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *mockSuggestionStore) Create(ctx context.Context, s *models.Suggestion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hashes[s.URLHash] {
		return db.ErrDuplicateKey
	}
	m.hashes[s.URLHash] = true
	m.suggestions[s.ID] = s
	return nil
}

func (m *mockSuggestionStore) MarkProcessed(ctx context.Context, id string, processingError string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.suggestions[id]
	if !ok {
		return db.ErrNotFound
	}
	s.Processed = true
	if processingError != "" {
		s.ProcessingError = &processingError
	}
	return nil
}

func newMockStore() *store.Store {
	return &store.Store{
		Creators:    newMockCreatorStore(),
		Videos:      newMockVideoStore(),
		Reviews:     newMockReviewStore(),
		Suggestions: newMockSuggestionStore(),
	}
}
