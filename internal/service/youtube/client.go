package youtube

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Client wraps the YouTube Data API v3 client
type Client struct {
	service *youtube.Service
	apiKey  string
}

// NewClient creates a new YouTube API client
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	service, err := youtube.NewService(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service: service,
		apiKey:  apiKey,
	}, nil
}

// ChannelInfo is the subset of channel data the import path consumes.
type ChannelInfo struct {
	ChannelID       string
	Title           string
	Description     string
	Country         string
	ThumbnailURL    string
	CustomURL       string
	SubscriberCount int64
	ViewCount       int64
	VideoCount      int64
	UploadsPlaylist string
	PublishedAt     time.Time
}

// VideoInfo is the subset of video data the import path consumes.
type VideoInfo struct {
	VideoID      string
	Title        string
	Description  string
	ThumbnailURL string
	Views        int64
	PublishedAt  time.Time
}

// channelParts are the list parts needed to populate ChannelInfo.
var channelParts = []string{"snippet", "statistics", "contentDetails"}

// FetchChannel retrieves a channel by its canonical channel id
func (c *Client) FetchChannel(ctx context.Context, channelID string) (*ChannelInfo, error) {
	call := c.service.Channels.List(channelParts).Id(channelID).Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel from YouTube API: %w", err)
	}
	if len(response.Items) == 0 {
		return nil, fmt.Errorf("channel %s not found", channelID)
	}

	return mapChannel(response.Items[0]), nil
}

// ResolveHandle retrieves a channel by its @handle
func (c *Client) ResolveHandle(ctx context.Context, handle string) (*ChannelInfo, error) {
	handle = strings.TrimPrefix(handle, "@")

	call := c.service.Channels.List(channelParts).ForHandle(handle).Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve handle from YouTube API: %w", err)
	}
	if len(response.Items) == 0 {
		return nil, fmt.Errorf("no channel found for handle @%s", handle)
	}

	return mapChannel(response.Items[0]), nil
}

// ResolveChannelURL resolves a channel from any of the URL shapes YouTube
// serves: /channel/UC..., /@handle, /user/name, /c/name, or a bare @handle.
// Legacy /user/ and /c/ names fall back to a search.list lookup.
func (c *Client) ResolveChannelURL(ctx context.Context, rawURL string) (*ChannelInfo, error) {
	ref, err := parseChannelRef(rawURL)
	if err != nil {
		return nil, err
	}

	switch ref.kind {
	case refChannelID:
		return c.FetchChannel(ctx, ref.value)
	case refHandle:
		return c.ResolveHandle(ctx, ref.value)
	default:
		return c.searchChannel(ctx, ref.value)
	}
}

// FetchRecentUploads retrieves up to maxResults of the channel's most recent
// uploads with view statistics.
func (c *Client) FetchRecentUploads(ctx context.Context, uploadsPlaylist string, maxResults int64) ([]*VideoInfo, error) {
	if uploadsPlaylist == "" {
		return nil, nil
	}
	if maxResults <= 0 || maxResults > 50 {
		maxResults = 10
	}

	call := c.service.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(uploadsPlaylist).
		MaxResults(maxResults).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch uploads playlist: %w", err)
	}

	videoIDs := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.ContentDetails != nil {
			videoIDs = append(videoIDs, item.ContentDetails.VideoId)
		}
	}
	if len(videoIDs) == 0 {
		return nil, nil
	}

	videoCall := c.service.Videos.List([]string{"snippet", "statistics"}).
		Id(videoIDs...).
		Context(ctx)

	videoResponse, err := videoCall.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video details: %w", err)
	}

	videos := make([]*VideoInfo, 0, len(videoResponse.Items))
	for _, item := range videoResponse.Items {
		videos = append(videos, mapVideo(item))
	}
	return videos, nil
}

// searchChannel resolves legacy /user/ and /c/ names via search.list.
// Costs 100 quota units, so only the fallback path uses it.
func (c *Client) searchChannel(ctx context.Context, name string) (*ChannelInfo, error) {
	call := c.service.Search.List([]string{"snippet"}).
		Q(name).
		Type("channel").
		MaxResults(1).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search for channel: %w", err)
	}
	if len(response.Items) == 0 || response.Items[0].Snippet == nil {
		return nil, fmt.Errorf("no channel found for %q", name)
	}

	return c.FetchChannel(ctx, response.Items[0].Snippet.ChannelId)
}

func mapChannel(channel *youtube.Channel) *ChannelInfo {
	info := &ChannelInfo{
		ChannelID: channel.Id,
	}

	if channel.Snippet != nil {
		info.Title = channel.Snippet.Title
		info.Description = channel.Snippet.Description
		info.Country = channel.Snippet.Country
		info.CustomURL = channel.Snippet.CustomUrl
		if t, err := time.Parse(time.RFC3339, channel.Snippet.PublishedAt); err == nil {
			info.PublishedAt = t
		}
		if channel.Snippet.Thumbnails != nil {
			info.ThumbnailURL = bestThumbnail(channel.Snippet.Thumbnails)
		}
	}

	if channel.Statistics != nil {
		info.SubscriberCount = int64(channel.Statistics.SubscriberCount)
		info.ViewCount = int64(channel.Statistics.ViewCount)
		info.VideoCount = int64(channel.Statistics.VideoCount)
	}

	if channel.ContentDetails != nil && channel.ContentDetails.RelatedPlaylists != nil {
		info.UploadsPlaylist = channel.ContentDetails.RelatedPlaylists.Uploads
	}

	return info
}

func mapVideo(video *youtube.Video) *VideoInfo {
	info := &VideoInfo{
		VideoID: video.Id,
	}

	if video.Snippet != nil {
		info.Title = video.Snippet.Title
		info.Description = video.Snippet.Description
		if t, err := time.Parse(time.RFC3339, video.Snippet.PublishedAt); err == nil {
			info.PublishedAt = t
		}
		if video.Snippet.Thumbnails != nil {
			info.ThumbnailURL = bestThumbnail(video.Snippet.Thumbnails)
		}
	}

	if video.Statistics != nil {
		info.Views = int64(video.Statistics.ViewCount)
	}

	return info
}

func bestThumbnail(t *youtube.ThumbnailDetails) string {
	switch {
	case t.High != nil:
		return t.High.Url
	case t.Medium != nil:
		return t.Medium.Url
	case t.Default != nil:
		return t.Default.Url
	default:
		return ""
	}
}

type refKind int

const (
	refChannelID refKind = iota
	refHandle
	refLegacyName
)

type channelRef struct {
	kind  refKind
	value string
}

// parseChannelRef extracts the channel reference from a URL or bare handle.
func parseChannelRef(rawURL string) (channelRef, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return channelRef{}, fmt.Errorf("channel URL is required")
	}

	// Bare @handle or bare channel id, no URL wrapping.
	if strings.HasPrefix(trimmed, "@") {
		return channelRef{kind: refHandle, value: trimmed}, nil
	}
	if strings.HasPrefix(trimmed, "UC") && !strings.Contains(trimmed, "/") {
		return channelRef{kind: refChannelID, value: trimmed}, nil
	}

	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return channelRef{}, fmt.Errorf("invalid channel URL: %w", err)
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	if host != "youtube.com" && host != "m.youtube.com" && host != "" {
		return channelRef{}, fmt.Errorf("not a YouTube URL: %s", rawURL)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return channelRef{}, fmt.Errorf("channel URL has no path: %s", rawURL)
	}

	switch {
	case parts[0] == "channel" && len(parts) > 1:
		return channelRef{kind: refChannelID, value: parts[1]}, nil
	case strings.HasPrefix(parts[0], "@"):
		return channelRef{kind: refHandle, value: parts[0]}, nil
	case (parts[0] == "user" || parts[0] == "c") && len(parts) > 1:
		return channelRef{kind: refLegacyName, value: parts[1]}, nil
	default:
		return channelRef{}, fmt.Errorf("unrecognized channel URL format: %s", rawURL)
	}
}
