package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/internal/store"
)

// InsightsEnqueuer schedules creator insight generation. Implemented by
// queue.Client.
type InsightsEnqueuer interface {
	EnqueueCreatorInsights(ctx context.Context, creatorID string) error
}

// CreatorHandler serves creator profiles and their video listings.
type CreatorHandler struct {
	creators store.CreatorStore
	videos   store.VideoStore
	insights InsightsEnqueuer
	logger   *slog.Logger
}

// NewCreatorHandler creates a new CreatorHandler. insights may be nil,
// disabling the insight trigger endpoint.
func NewCreatorHandler(s *store.Store, insights InsightsEnqueuer, logger *slog.Logger) *CreatorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreatorHandler{
		creators: s.Creators,
		videos:   s.Videos,
		insights: insights,
		logger:   logger,
	}
}

// CreateCreatorRequest represents the request to create a creator profile.
type CreateCreatorRequest struct {
	Name              string `json:"name"`
	Bio               string `json:"bio,omitempty"`
	Genre             string `json:"genre,omitempty"`
	Country           string `json:"country,omitempty"`
	State             string `json:"state,omitempty"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
	SubscriberCount   int64  `json:"subscriber_count,omitempty"`
	TotalViews        int64  `json:"total_views,omitempty"`
}

// ServeHTTP routes creator requests.
func (h *CreatorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/creators")

	if path == "" || path == "/" {
		switch r.Method {
		case http.MethodGet:
			h.handleList(w, r)
		case http.MethodPost:
			h.handleCreate(w, r)
		default:
			sendError(w, http.StatusMethodNotAllowed, "method not allowed", "", nil)
		}
		return
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.handleGet(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "videos" && r.Method == http.MethodGet:
		h.handleListVideos(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "insights" && r.Method == http.MethodPost:
		h.handleTriggerInsights(w, r, parts[0])
	default:
		sendError(w, http.StatusNotFound, "not found", "", nil)
	}
}

func (h *CreatorHandler) handleList(w http.ResponseWriter, r *http.Request) {
	creators, err := h.creators.GetAll(r.Context())
	if err != nil {
		sendStoreError(w, h.logger, err, "creators")
		return
	}
	if creators == nil {
		creators = []*models.Creator{}
	}
	sendJSON(w, http.StatusOK, creators)
}

func (h *CreatorHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	creator, err := h.creators.GetByID(r.Context(), id)
	if err != nil {
		sendStoreError(w, h.logger, err, "creator")
		return
	}
	sendJSON(w, http.StatusOK, creator)
}

func (h *CreatorHandler) handleListVideos(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.creators.GetByID(r.Context(), id); err != nil {
		sendStoreError(w, h.logger, err, "creator")
		return
	}

	videos, err := h.videos.ListByCreator(r.Context(), id)
	if err != nil {
		sendStoreError(w, h.logger, err, "videos")
		return
	}
	if videos == nil {
		videos = []*models.Video{}
	}
	sendJSON(w, http.StatusOK, videos)
}

func (h *CreatorHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateCreatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "invalid request body", err.Error(), nil)
		return
	}

	if req.Name == "" {
		sendError(w, http.StatusBadRequest, "validation failed", "name is required", nil)
		return
	}
	if req.SubscriberCount < 0 || req.TotalViews < 0 {
		sendError(w, http.StatusBadRequest, "validation failed", "counts must be non-negative", nil)
		return
	}

	creator := models.NewCreator(req.Name)
	creator.Bio = req.Bio
	creator.Genre = req.Genre
	creator.Country = req.Country
	creator.State = req.State
	creator.ProfilePictureURL = req.ProfilePictureURL
	creator.SubscriberCount = req.SubscriberCount
	creator.TotalViews = req.TotalViews

	if err := h.creators.Create(r.Context(), creator); err != nil {
		sendStoreError(w, h.logger, err, "creator")
		return
	}

	sendJSON(w, http.StatusCreated, creator)
}

func (h *CreatorHandler) handleTriggerInsights(w http.ResponseWriter, r *http.Request, id string) {
	if h.insights == nil {
		sendError(w, http.StatusServiceUnavailable, "unavailable", "insight generation is not configured", nil)
		return
	}

	if _, err := h.creators.GetByID(r.Context(), id); err != nil {
		sendStoreError(w, h.logger, err, "creator")
		return
	}

	if err := h.insights.EnqueueCreatorInsights(r.Context(), id); err != nil {
		h.logger.Error("failed to enqueue insights", "creator_id", id, "error", err)
		sendError(w, http.StatusInternalServerError, "internal server error", "failed to schedule insight generation", nil)
		return
	}

	sendJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}
