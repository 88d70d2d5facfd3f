package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Sanjay-Kirti/YouMDB/internal/middleware"
	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/internal/service"
)

// ReviewHandler serves review listings, review submission and reactions.
type ReviewHandler struct {
	reviews *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		reviews: reviews,
		logger:  logger,
	}
}

// ReactionRequest represents a like or dislike toggle on a review.
type ReactionRequest struct {
	Action string `json:"action"`
}

// ServeHTTP routes review requests.
func (h *ReviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/reviews")

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
	case len(parts) == 2 && parts[1] == "reactions" && r.Method == http.MethodPost:
		h.handleReaction(w, r, parts[0])
	default:
		sendError(w, http.StatusNotFound, "not found", "", nil)
	}
}

func (h *ReviewHandler) handleList(w http.ResponseWriter, r *http.Request) {
	entityID := r.URL.Query().Get("entity_id")
	entityType := r.URL.Query().Get("entity_type")

	reviews, err := h.reviews.ListByEntity(r.Context(), entityID, models.EntityType(entityType))
	if err != nil {
		sendStoreError(w, h.logger, err, "reviews")
		return
	}
	if reviews == nil {
		reviews = []*models.Review{}
	}
	sendJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var input service.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, http.StatusBadRequest, "invalid request body", err.Error(), nil)
		return
	}

	session := middleware.SessionFromContext(r.Context())
	review, err := h.reviews.AddReview(r.Context(), session, input)
	if err != nil {
		sendStoreError(w, h.logger, err, "review")
		return
	}

	sendJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) handleReaction(w http.ResponseWriter, r *http.Request, reviewID string) {
	var req ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "invalid request body", err.Error(), nil)
		return
	}

	var like bool
	switch req.Action {
	case "like":
		like = true
	case "dislike":
		like = false
	default:
		sendError(w, http.StatusBadRequest, "validation failed", `action must be "like" or "dislike"`, nil)
		return
	}

	session := middleware.SessionFromContext(r.Context())
	review, err := h.reviews.ToggleReaction(r.Context(), session, reviewID, like)
	if err != nil {
		sendStoreError(w, h.logger, err, "review")
		return
	}

	sendJSON(w, http.StatusOK, review)
}
