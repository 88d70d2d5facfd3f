package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Sanjay-Kirti/YouMDB/internal/db"
	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/internal/store"
)

// RatingEnqueuer schedules an asynchronous rating recomputation for an
// entity. Implemented by queue.Client.
type RatingEnqueuer interface {
	EnqueueRatingRefresh(ctx context.Context, entityID, entityType string) error
}

// ReviewInput carries the caller-supplied fields of a new review.
type ReviewInput struct {
	EntityID   string `json:"entity_id"`
	EntityType string `json:"entity_type"`
	Rating     *int   `json:"rating,omitempty"`
	ReviewText string `json:"review_text,omitempty"`
}

// ReviewService owns review writes, reaction toggling and rating
// aggregation over the review collection.
type ReviewService struct {
	reviews  store.ReviewStore
	creators store.CreatorStore
	videos   store.VideoStore
	enqueuer RatingEnqueuer
	logger   *zap.Logger
}

// NewReviewService creates a new review service. enqueuer may be nil, in
// which case ratings are recomputed inline on every write.
func NewReviewService(s *store.Store, enqueuer RatingEnqueuer, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{
		reviews:  s.Reviews,
		creators: s.Creators,
		videos:   s.Videos,
		enqueuer: enqueuer,
		logger:   logger,
	}
}

// ListByEntity returns all reviews for a creator or video.
func (s *ReviewService) ListByEntity(ctx context.Context, entityID string, entityType models.EntityType) ([]*models.Review, error) {
	if entityID == "" {
		return nil, fmt.Errorf("%w: entity_id is required", db.ErrInvalidArgument)
	}
	if !entityType.Valid() {
		return nil, fmt.Errorf("%w: unknown entity_type %q", db.ErrInvalidArgument, entityType)
	}
	return s.reviews.ListByEntity(ctx, entityID, entityType)
}

// AddReview validates and stores a new review on behalf of the session
// user. Anonymous sessions are rejected. The target entity must exist.
func (s *ReviewService) AddReview(ctx context.Context, session models.Session, input ReviewInput) (*models.Review, error) {
	if session.Anonymous || session.UserID == "" {
		return nil, fmt.Errorf("%w: sign in to write reviews", db.ErrPermissionDenied)
	}

	entityType := models.EntityType(input.EntityType)
	if !entityType.Valid() {
		return nil, fmt.Errorf("%w: unknown entity_type %q", db.ErrInvalidArgument, input.EntityType)
	}
	if input.EntityID == "" {
		return nil, fmt.Errorf("%w: entity_id is required", db.ErrInvalidArgument)
	}
	if input.Rating == nil && input.ReviewText == "" {
		return nil, fmt.Errorf("%w: a rating or review text is required", db.ErrInvalidArgument)
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", db.ErrInvalidArgument)
	}

	if err := s.entityExists(ctx, input.EntityID, entityType); err != nil {
		return nil, err
	}

	review := models.NewReview(input.EntityID, entityType, session.UserID)
	review.Rating = input.Rating
	review.ReviewText = input.ReviewText

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info("review created",
		zap.String("review_id", review.ID),
		zap.String("entity_id", review.EntityID),
		zap.String("entity_type", string(review.EntityType)))

	s.scheduleRatingRefresh(ctx, input.EntityID, entityType)

	return review, nil
}

// ToggleReaction flips the session user's like or dislike on a review.
// A repeated reaction in the same direction removes it; switching
// direction moves the user between the two sets. A user is never in both.
func (s *ReviewService) ToggleReaction(ctx context.Context, session models.Session, reviewID string, like bool) (*models.Review, error) {
	if session.Anonymous || session.UserID == "" {
		return nil, fmt.Errorf("%w: sign in to react to reviews", db.ErrPermissionDenied)
	}

	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if like {
		review.Likes, review.Dislikes = toggle(review.Likes, review.Dislikes, session.UserID)
	} else {
		review.Dislikes, review.Likes = toggle(review.Dislikes, review.Likes, session.UserID)
	}

	if err := s.reviews.UpdateReactions(ctx, review.ID, review.Likes, review.Dislikes); err != nil {
		return nil, err
	}
	return review, nil
}

// RefreshRating recomputes the average rating for an entity from its
// reviews and writes it back to the owning record. Reviews without a
// rating are excluded; no rated reviews yields zero.
func (s *ReviewService) RefreshRating(ctx context.Context, entityID string, entityType models.EntityType) error {
	if !entityType.Valid() {
		return fmt.Errorf("%w: unknown entity_type %q", db.ErrInvalidArgument, entityType)
	}

	reviews, err := s.reviews.ListByEntity(ctx, entityID, entityType)
	if err != nil {
		return err
	}

	avg := AverageRating(reviews)

	switch entityType {
	case models.EntityTypeYouTuber:
		err = s.creators.UpdateRating(ctx, entityID, avg)
	case models.EntityTypeVideo:
		err = s.videos.UpdateRating(ctx, entityID, avg)
	}
	if err != nil {
		return err
	}

	s.logger.Debug("rating refreshed",
		zap.String("entity_id", entityID),
		zap.String("entity_type", string(entityType)),
		zap.Float64("average", avg))
	return nil
}

// AverageRating computes the mean of the rated reviews in the slice.
func AverageRating(reviews []*models.Review) float64 {
	var sum, count int
	for _, r := range reviews {
		if r.Rating != nil {
			sum += *r.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

func (s *ReviewService) entityExists(ctx context.Context, entityID string, entityType models.EntityType) error {
	var err error
	switch entityType {
	case models.EntityTypeYouTuber:
		_, err = s.creators.GetByID(ctx, entityID)
	case models.EntityTypeVideo:
		_, err = s.videos.GetByID(ctx, entityID)
	}
	return err
}

// scheduleRatingRefresh hands the recomputation to the queue when one is
// configured, falling back to inline recomputation. Failures are logged
// and never surfaced to the writer.
func (s *ReviewService) scheduleRatingRefresh(ctx context.Context, entityID string, entityType models.EntityType) {
	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueueRatingRefresh(ctx, entityID, string(entityType)); err != nil {
			s.logger.Warn("failed to enqueue rating refresh, recomputing inline",
				zap.String("entity_id", entityID), zap.Error(err))
		} else {
			return
		}
	}
	if err := s.RefreshRating(ctx, entityID, entityType); err != nil {
		s.logger.Warn("failed to refresh rating",
			zap.String("entity_id", entityID), zap.Error(err))
	}
}

// toggle applies a reaction to the primary set, removing the user from
// the opposite set. Returns the updated (primary, opposite) pair.
func toggle(primary, opposite []string, userID string) ([]string, []string) {
	if contains(primary, userID) {
		return remove(primary, userID), opposite
	}
	return append(primary, userID), remove(opposite, userID)
}

func contains(set []string, userID string) bool {
	for _, id := range set {
		if id == userID {
			return true
		}
	}
	return false
}

func remove(set []string, userID string) []string {
	out := set[:0]
	for _, id := range set {
		if id != userID {
			out = append(out, id)
		}
	}
	return out
}
