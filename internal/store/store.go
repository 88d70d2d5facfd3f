// Package store defines the record-store contract over the creator, video,
// review and suggestion collections. Two backends implement it: postgres
// (primary) and mongodb. The backend is injected by configuration; business
// logic only ever sees these interfaces.
package store

import (
	"context"

	"github.com/Sanjay-Kirti/YouMDB/internal/models"
)

// CreatorStore defines operations over the creator collection.
type CreatorStore interface {
	// GetAll retrieves the entire collection.
	GetAll(ctx context.Context) ([]*models.Creator, error)

	// GetByID retrieves a single creator. Missing id yields db.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Creator, error)

	// SearchByName retrieves creators whose name contains the substring,
	// case-insensitively.
	SearchByName(ctx context.Context, nameSubstring string) ([]*models.Creator, error)

	// FindByLocation retrieves creators matching country and, when non-empty,
	// state equality.
	FindByLocation(ctx context.Context, country, state string) ([]*models.Creator, error)

	// Create inserts a new creator.
	Create(ctx context.Context, c *models.Creator) error

	// Upsert inserts or updates a creator keyed on its YouTube channel id.
	Upsert(ctx context.Context, c *models.Creator) error

	// UpdateRating sets the stored average rating.
	UpdateRating(ctx context.Context, id string, rating float64) error

	// UpdateInsights sets the generated insight text.
	UpdateInsights(ctx context.Context, id string, insights string) error
}

// VideoStore defines operations over the video collection.
type VideoStore interface {
	GetAll(ctx context.Context) ([]*models.Video, error)
	GetByID(ctx context.Context, id string) (*models.Video, error)

	// ListByCreator retrieves videos by creator id equality.
	ListByCreator(ctx context.Context, creatorID string) ([]*models.Video, error)

	Create(ctx context.Context, v *models.Video) error
	UpdateRating(ctx context.Context, id string, rating float64) error

	// UpdateSummary sets the generated summary text.
	UpdateSummary(ctx context.Context, id string, summary string) error
}

// ReviewStore defines operations over the review collection.
type ReviewStore interface {
	GetByID(ctx context.Context, id string) (*models.Review, error)

	// ListByEntity retrieves reviews for a (entityID, entityType) pair.
	ListByEntity(ctx context.Context, entityID string, entityType models.EntityType) ([]*models.Review, error)

	Create(ctx context.Context, r *models.Review) error

	// UpdateReactions replaces the like/dislike sets. Read-modify-write with
	// no optimistic guard; last write wins.
	UpdateReactions(ctx context.Context, id string, likes, dislikes []string) error
}

// SuggestionStore defines operations over the suggestion collection.
type SuggestionStore interface {
	GetByID(ctx context.Context, id string) (*models.Suggestion, error)
	List(ctx context.Context, onlyUnprocessed bool) ([]*models.Suggestion, error)
	Create(ctx context.Context, s *models.Suggestion) error

	// MarkProcessed records the import outcome; processingError is empty on
	// success.
	MarkProcessed(ctx context.Context, id string, processingError string) error
}

// Store bundles the per-collection stores behind one handle.
type Store struct {
	Creators    CreatorStore
	Videos      VideoStore
	Reviews     ReviewStore
	Suggestions SuggestionStore
}
