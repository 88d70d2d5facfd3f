package queue

import (
	"context"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/internal/service"
	"github.com/Sanjay-Kirti/YouMDB/internal/service/insights"
	"github.com/Sanjay-Kirti/YouMDB/internal/store"
)

// Handler processes background tasks: rating recomputation and creator
// insight generation.
type Handler struct {
	reviews   *service.ReviewService
	generator *insights.Generator
	creators  store.CreatorStore
	videos    store.VideoStore
}

// NewHandler creates a new task handler
func NewHandler(reviews *service.ReviewService, generator *insights.Generator, s *store.Store) *Handler {
	return &Handler{
		reviews:   reviews,
		generator: generator,
		creators:  s.Creators,
		videos:    s.Videos,
	}
}

// Register attaches the handler's task types to an asynq mux.
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeRatingRefresh, h.ProcessRatingRefresh)
	mux.HandleFunc(TypeCreatorInsights, h.ProcessCreatorInsights)
	mux.HandleFunc(TypeVideoSummary, h.ProcessVideoSummary)
}

// ProcessRatingRefresh implements asynq.HandlerFunc for rating tasks
func (h *Handler) ProcessRatingRefresh(ctx context.Context, task *asynq.Task) error {
	payload, err := UnmarshalRatingRefreshPayload(task.Payload())
	if err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log.Printf("[Handler] Processing rating refresh: entity_id=%s, entity_type=%s",
		payload.EntityID, payload.EntityType)

	return h.reviews.RefreshRating(ctx, payload.EntityID, models.EntityType(payload.EntityType))
}

// ProcessCreatorInsights implements asynq.HandlerFunc for insight tasks
func (h *Handler) ProcessCreatorInsights(ctx context.Context, task *asynq.Task) error {
	payload, err := UnmarshalCreatorInsightsPayload(task.Payload())
	if err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log.Printf("[Handler] Processing creator insights: creator_id=%s", payload.CreatorID)

	creator, err := h.creators.GetByID(ctx, payload.CreatorID)
	if err != nil {
		return fmt.Errorf("failed to load creator: %w", err)
	}

	videos, err := h.videos.ListByCreator(ctx, creator.ID)
	if err != nil {
		return fmt.Errorf("failed to load videos: %w", err)
	}

	text := h.generator.CreatorInsights(creator, videos)
	if err := h.creators.UpdateInsights(ctx, creator.ID, text); err != nil {
		return fmt.Errorf("failed to store insights: %w", err)
	}

	return nil
}

// ProcessVideoSummary implements asynq.HandlerFunc for summary tasks
func (h *Handler) ProcessVideoSummary(ctx context.Context, task *asynq.Task) error {
	payload, err := UnmarshalVideoSummaryPayload(task.Payload())
	if err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log.Printf("[Handler] Processing video summary: video_id=%s", payload.VideoID)

	video, err := h.videos.GetByID(ctx, payload.VideoID)
	if err != nil {
		return fmt.Errorf("failed to load video: %w", err)
	}

	text := h.generator.VideoSummary(video)
	if err := h.videos.UpdateSummary(ctx, video.ID, text); err != nil {
		return fmt.Errorf("failed to store summary: %w", err)
	}

	return nil
}
