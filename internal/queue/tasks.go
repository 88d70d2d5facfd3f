package queue

import (
	"encoding/json"
	"fmt"
)

// Task types
const (
	TypeCreatorInsights = "insights:creator"
	TypeVideoSummary    = "summary:video"
	TypeRatingRefresh   = "rating:refresh"
)

// CreatorInsightsPayload is the payload for creator insight generation tasks
type CreatorInsightsPayload struct {
	CreatorID string                 `json:"creator_id"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// NewCreatorInsightsTask creates a new creator insights task payload
func NewCreatorInsightsTask(creatorID string, metadata map[string]interface{}) (*CreatorInsightsPayload, error) {
	if creatorID == "" {
		return nil, fmt.Errorf("creator ID is required")
	}

	if metadata == nil {
		metadata = make(map[string]interface{})
	}

	return &CreatorInsightsPayload{
		CreatorID: creatorID,
		Metadata:  metadata,
	}, nil
}

// Marshal serializes the payload to JSON
func (p *CreatorInsightsPayload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalCreatorInsightsPayload deserializes JSON to payload
func UnmarshalCreatorInsightsPayload(data []byte) (*CreatorInsightsPayload, error) {
	var payload CreatorInsightsPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return &payload, nil
}

// VideoSummaryPayload is the payload for video summary generation tasks
type VideoSummaryPayload struct {
	VideoID string `json:"video_id"`
}

// NewVideoSummaryTask creates a new video summary task payload
func NewVideoSummaryTask(videoID string) (*VideoSummaryPayload, error) {
	if videoID == "" {
		return nil, fmt.Errorf("video ID is required")
	}

	return &VideoSummaryPayload{VideoID: videoID}, nil
}

// Marshal serializes the payload to JSON
func (p *VideoSummaryPayload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalVideoSummaryPayload deserializes JSON to payload
func UnmarshalVideoSummaryPayload(data []byte) (*VideoSummaryPayload, error) {
	var payload VideoSummaryPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return &payload, nil
}

// RatingRefreshPayload is the payload for rating recomputation tasks
type RatingRefreshPayload struct {
	EntityID   string `json:"entity_id"`
	EntityType string `json:"entity_type"`
}

// NewRatingRefreshTask creates a new rating refresh task payload
func NewRatingRefreshTask(entityID, entityType string) (*RatingRefreshPayload, error) {
	if entityID == "" {
		return nil, fmt.Errorf("entity ID is required")
	}
	if entityType == "" {
		return nil, fmt.Errorf("entity type is required")
	}

	return &RatingRefreshPayload{
		EntityID:   entityID,
		EntityType: entityType,
	}, nil
}

// Marshal serializes the payload to JSON
func (p *RatingRefreshPayload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// UnmarshalRatingRefreshPayload deserializes JSON to payload
func UnmarshalRatingRefreshPayload(data []byte) (*RatingRefreshPayload, error) {
	var payload RatingRefreshPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return &payload, nil
}
