package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Sanjay-Kirti/YouMDB/internal/db"
	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/internal/store"
)

// SummaryEnqueuer schedules video summary generation. Implemented by
// queue.Client.
type SummaryEnqueuer interface {
	EnqueueVideoSummary(ctx context.Context, videoID string) error
}

// VideoHandler serves video records.
type VideoHandler struct {
	videos    store.VideoStore
	creators  store.CreatorStore
	summaries SummaryEnqueuer
	logger    *slog.Logger
}

// NewVideoHandler creates a new VideoHandler. summaries may be nil,
// disabling the summary trigger endpoint.
func NewVideoHandler(s *store.Store, summaries SummaryEnqueuer, logger *slog.Logger) *VideoHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &VideoHandler{
		videos:    s.Videos,
		creators:  s.Creators,
		summaries: summaries,
		logger:    logger,
	}
}

// CreateVideoRequest represents the request to register a video.
type CreateVideoRequest struct {
	CreatorID    string     `json:"youtuber_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	VideoURL     string     `json:"video_url,omitempty"`
	PublishDate  *time.Time `json:"publish_date,omitempty"`
	Views        int64      `json:"views,omitempty"`
}

// ServeHTTP routes video requests.
func (h *VideoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/videos")

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
	case len(parts) == 1:
		sendError(w, http.StatusMethodNotAllowed, "method not allowed", "", nil)
	case len(parts) == 2 && parts[1] == "summary" && r.Method == http.MethodPost:
		h.handleTriggerSummary(w, r, parts[0])
	default:
		sendError(w, http.StatusNotFound, "not found", "", nil)
	}
}

func (h *VideoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		videos []*models.Video
		err    error
	)
	if creatorID := r.URL.Query().Get("youtuber_id"); creatorID != "" {
		videos, err = h.videos.ListByCreator(r.Context(), creatorID)
	} else {
		videos, err = h.videos.GetAll(r.Context())
	}
	if err != nil {
		sendStoreError(w, h.logger, err, "videos")
		return
	}
	if videos == nil {
		videos = []*models.Video{}
	}
	sendJSON(w, http.StatusOK, videos)
}

func (h *VideoHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	video, err := h.videos.GetByID(r.Context(), id)
	if err != nil {
		sendStoreError(w, h.logger, err, "video")
		return
	}
	sendJSON(w, http.StatusOK, video)
}

func (h *VideoHandler) handleTriggerSummary(w http.ResponseWriter, r *http.Request, id string) {
	if h.summaries == nil {
		sendError(w, http.StatusServiceUnavailable, "unavailable", "summary generation is not configured", nil)
		return
	}

	if _, err := h.videos.GetByID(r.Context(), id); err != nil {
		sendStoreError(w, h.logger, err, "video")
		return
	}

	if err := h.summaries.EnqueueVideoSummary(r.Context(), id); err != nil {
		h.logger.Error("failed to enqueue summary", "video_id", id, "error", err)
		sendError(w, http.StatusInternalServerError, "internal server error", "failed to schedule summary generation", nil)
		return
	}

	sendJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

func (h *VideoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "invalid request body", err.Error(), nil)
		return
	}

	if req.Title == "" {
		sendError(w, http.StatusBadRequest, "validation failed", "title is required", nil)
		return
	}
	if req.CreatorID == "" {
		sendError(w, http.StatusBadRequest, "validation failed", "youtuber_id is required", nil)
		return
	}
	if req.Views < 0 {
		sendError(w, http.StatusBadRequest, "validation failed", "views must be non-negative", nil)
		return
	}

	if _, err := h.creators.GetByID(r.Context(), req.CreatorID); err != nil {
		if db.IsNotFound(err) {
			sendError(w, http.StatusBadRequest, "validation failed", "youtuber_id does not reference a known creator", nil)
			return
		}
		sendStoreError(w, h.logger, err, "creator")
		return
	}

	video := models.NewVideo(req.CreatorID, req.Title)
	video.Description = req.Description
	video.ThumbnailURL = req.ThumbnailURL
	video.VideoURL = req.VideoURL
	video.PublishDate = req.PublishDate
	video.Views = req.Views

	if err := h.videos.Create(r.Context(), video); err != nil {
		sendStoreError(w, h.logger, err, "video")
		return
	}

	sendJSON(w, http.StatusCreated, video)
}
