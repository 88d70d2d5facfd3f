package queue

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

// Client wraps asynq client for enqueueing tasks
type Client struct {
	asynqClient *asynq.Client
}

// NewClient creates a new queue client
func NewClient(redisAddr string) (*Client, error) {
	redisOpt, err := ParseRedisURL(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &Client{
		asynqClient: asynq.NewClient(redisOpt),
	}, nil
}

// Close closes the client connection
func (c *Client) Close() error {
	return c.asynqClient.Close()
}

// EnqueueCreatorInsights enqueues an insight generation task for a creator
func (c *Client) EnqueueCreatorInsights(ctx context.Context, creatorID string) error {
	payload, err := NewCreatorInsightsTask(creatorID, map[string]interface{}{
		"enqueued_at": time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to create task payload: %w", err)
	}

	payloadBytes, err := payload.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeCreatorInsights, payloadBytes)

	info, err := c.asynqClient.Enqueue(task,
		asynq.MaxRetry(3),
		asynq.Timeout(5*time.Minute),
		asynq.Queue("default"),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Printf("[Queue] Enqueued creator insights: creator_id=%s, task_id=%s", creatorID, info.ID)
	return nil
}

// EnqueueVideoSummary enqueues a summary generation task for a video
func (c *Client) EnqueueVideoSummary(ctx context.Context, videoID string) error {
	payload, err := NewVideoSummaryTask(videoID)
	if err != nil {
		return fmt.Errorf("failed to create task payload: %w", err)
	}

	payloadBytes, err := payload.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeVideoSummary, payloadBytes)

	info, err := c.asynqClient.Enqueue(task,
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
		asynq.Queue("default"),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Printf("[Queue] Enqueued video summary: video_id=%s, task_id=%s", videoID, info.ID)
	return nil
}

// EnqueueRatingRefresh enqueues a rating recomputation for a creator or video
func (c *Client) EnqueueRatingRefresh(ctx context.Context, entityID, entityType string) error {
	payload, err := NewRatingRefreshTask(entityID, entityType)
	if err != nil {
		return fmt.Errorf("failed to create task payload: %w", err)
	}

	payloadBytes, err := payload.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeRatingRefresh, payloadBytes)

	info, err := c.asynqClient.Enqueue(task,
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
		asynq.Queue("ratings"),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Printf("[Queue] Enqueued rating refresh: entity_id=%s, entity_type=%s, task_id=%s", entityID, entityType, info.ID)
	return nil
}
