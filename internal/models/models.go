// Package models contains the data models and DTOs for the YouMDB service.
package models

import (
	"time"

	"github.com/google/uuid"
)

// EntityType distinguishes the reviewable target of a Review.
type EntityType string

// EntityType constants define the possible review targets.
const (
	EntityTypeYouTuber EntityType = "youtuber"
	EntityTypeVideo    EntityType = "video"
)

// Valid reports whether the entity type is one of the known tags.
func (t EntityType) Valid() bool {
	return t == EntityTypeYouTuber || t == EntityTypeVideo
}

// Creator represents a profiled YouTube channel.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Creator struct {
	ID                string    `db:"id" json:"id" bson:"id"`
	YouTubeChannelID  *string   `db:"youtube_channel_id" json:"youtube_channel_id,omitempty" bson:"youtube_channel_id"`
	Name              string    `db:"name" json:"name" bson:"name"`
	Bio               string    `db:"bio" json:"bio,omitempty" bson:"bio"`
	Genre             string    `db:"genre" json:"genre,omitempty" bson:"genre"`
	Country           string    `db:"country" json:"country,omitempty" bson:"country"`
	State             string    `db:"state" json:"state,omitempty" bson:"state"`
	ProfilePictureURL string    `db:"profile_picture_url" json:"profile_picture_url,omitempty" bson:"profile_picture_url"`
	SubscriberCount   int64     `db:"subscriber_count" json:"subscriber_count" bson:"subscriber_count"`
	TotalViews        int64     `db:"total_views" json:"total_views" bson:"total_views"`
	AverageRating     float64   `db:"average_rating" json:"average_rating" bson:"average_rating"`
	Insights          *string   `db:"insights" json:"insights,omitempty" bson:"insights"`
	CreatedAt         time.Time `db:"created_at" json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at" bson:"updated_at"`
}

// NewCreator creates a Creator with a fresh id and timestamps.
func NewCreator(name string) *Creator {
	now := time.Now()
	return &Creator{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Video represents a published video belonging to a Creator. CreatorID may
// dangle if the Creator was deleted; no cascade rule is defined.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Video struct {
	ID            string     `db:"id" json:"id" bson:"id"`
	CreatorID     string     `db:"youtuber_id" json:"youtuber_id" bson:"youtuber_id"`
	Title         string     `db:"title" json:"title" bson:"title"`
	Description   string     `db:"description" json:"description,omitempty" bson:"description"`
	ThumbnailURL  string     `db:"thumbnail_url" json:"thumbnail_url,omitempty" bson:"thumbnail_url"`
	VideoURL      string     `db:"video_url" json:"video_url,omitempty" bson:"video_url"`
	PublishDate   *time.Time `db:"publish_date" json:"publish_date,omitempty" bson:"publish_date"`
	Views         int64      `db:"views" json:"views" bson:"views"`
	AverageRating float64    `db:"average_rating" json:"average_rating" bson:"average_rating"`
	Summary       *string    `db:"summary" json:"summary,omitempty" bson:"summary"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at" bson:"updated_at"`
}

// NewVideo creates a Video with a fresh id and timestamps.
func NewVideo(creatorID, title string) *Video {
	now := time.Now()
	return &Video{
		ID:        uuid.NewString(),
		CreatorID: creatorID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Review represents a user's rating and text review of a Creator or Video.
// Invariant: a given user id appears in at most one of Likes/Dislikes.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Review struct {
	ID         string     `db:"id" json:"id" bson:"id"`
	EntityID   string     `db:"entity_id" json:"entity_id" bson:"entity_id"`
	EntityType EntityType `db:"entity_type" json:"entity_type" bson:"entity_type"`
	UserID     string     `db:"user_id" json:"user_id" bson:"user_id"`
	Rating     *int       `db:"rating" json:"rating,omitempty" bson:"rating"`
	ReviewText string     `db:"review_text" json:"review_text,omitempty" bson:"review_text"`
	Likes      []string   `db:"likes" json:"likes" bson:"likes"`
	Dislikes   []string   `db:"dislikes" json:"dislikes" bson:"dislikes"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at" bson:"updated_at"`
}

// NewReview creates a Review with a fresh id, empty reaction sets and timestamps.
func NewReview(entityID string, entityType EntityType, userID string) *Review {
	now := time.Now()
	return &Review{
		ID:         uuid.NewString(),
		EntityID:   entityID,
		EntityType: entityType,
		UserID:     userID,
		Likes:      []string{},
		Dislikes:   []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Suggestion is a free-form request to add a new Creator, queued for the
// import worker.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Suggestion struct {
	ID              string     `db:"id" json:"id" bson:"id"`
	URL             string     `db:"url" json:"url" bson:"url"`
	URLHash         string     `db:"url_hash" json:"-" bson:"url_hash"`
	ExtraInfo       string     `db:"extra_info" json:"extra_info,omitempty" bson:"extra_info"`
	Notes           string     `db:"notes" json:"notes,omitempty" bson:"notes"`
	UserID          *string    `db:"user_id" json:"user_id,omitempty" bson:"user_id"`
	Processed       bool       `db:"processed" json:"processed" bson:"processed"`
	ProcessedAt     *time.Time `db:"processed_at" json:"processed_at,omitempty" bson:"processed_at"`
	ProcessingError *string    `db:"processing_error" json:"processing_error,omitempty" bson:"processing_error"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at" bson:"created_at"`
}

// NewSuggestion creates a Suggestion with a fresh id and timestamp.
func NewSuggestion(url string) *Suggestion {
	return &Suggestion{
		ID:        uuid.NewString(),
		URL:       url,
		CreatedAt: time.Now(),
	}
}

// SuggestionEvent is the message published to the broker when a suggestion is
// accepted, consumed by the import worker.
type SuggestionEvent struct {
	SuggestionID string    `json:"suggestion_id"`
	URL          string    `json:"url"`
	ReceivedAt   time.Time `json:"received_at"`
}

// Session identifies the caller of a request. Anonymous sessions can browse
// and search but cannot write reviews or reactions.
type Session struct {
	UserID    string
	Anonymous bool
}

// ErrorResponse represents a JSON error response.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
