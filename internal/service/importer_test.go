package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Sanjay-Kirti/YouMDB/internal/db"
	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/internal/service/youtube"
)

type mockResolver struct {
	channels map[string]*youtube.ChannelInfo
	uploads  map[string][]*youtube.VideoInfo
	err      error
}

func (m *mockResolver) ResolveChannelURL(ctx context.Context, rawURL string) (*youtube.ChannelInfo, error) {
	if m.err != nil {
		return nil, m.err
	}
	info, ok := m.channels[rawURL]
	if !ok {
		return nil, fmt.Errorf("no channel found for %q", rawURL)
	}
	return info, nil
}

func (m *mockResolver) FetchRecentUploads(ctx context.Context, playlist string, max int64) ([]*youtube.VideoInfo, error) {
	return m.uploads[playlist], nil
}

func techGuruResolver() *mockResolver {
	return &mockResolver{
		channels: map[string]*youtube.ChannelInfo{
			"https://youtube.com/@techguru": {
				ChannelID:       "UCtech123",
				Title:           "TechGuru Alex",
				Description:     "Latest tech reviews",
				Country:         "US",
				ThumbnailURL:    "https://example.com/thumb.jpg",
				SubscriberCount: 2500000,
				ViewCount:       150000000,
				UploadsPlaylist: "UUtech123",
				PublishedAt:     time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		uploads: map[string][]*youtube.VideoInfo{
			"UUtech123": {
				{VideoID: "vid1", Title: "Building a PC", Views: 500000, PublishedAt: time.Now()},
				{VideoID: "vid2", Title: "Phone Review", Views: 300000},
			},
		},
	}
}

func TestImporterService_ImportFromURL(t *testing.T) {
	s := newMockStore()
	svc := NewImporterService(techGuruResolver(), s, nil)

	creator, err := svc.ImportFromURL(context.Background(), "https://youtube.com/@techguru")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if creator.Name != "TechGuru Alex" {
		t.Errorf("Name = %q, want %q", creator.Name, "TechGuru Alex")
	}
	if creator.YouTubeChannelID == nil || *creator.YouTubeChannelID != "UCtech123" {
		t.Errorf("YouTubeChannelID = %v, want UCtech123", creator.YouTubeChannelID)
	}
	if creator.SubscriberCount != 2500000 {
		t.Errorf("SubscriberCount = %d, want 2500000", creator.SubscriberCount)
	}

	videos, err := s.Videos.ListByCreator(context.Background(), creator.ID)
	if err != nil {
		t.Fatalf("list videos: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected 2 imported videos, got %d", len(videos))
	}
}

func TestImporterService_ImportFromURL_Idempotent(t *testing.T) {
	s := newMockStore()
	svc := NewImporterService(techGuruResolver(), s, nil)

	first, err := svc.ImportFromURL(context.Background(), "https://youtube.com/@techguru")
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	second, err := svc.ImportFromURL(context.Background(), "https://youtube.com/@techguru")
	if err != nil {
		t.Fatalf("second import: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("re-import created a new profile: %s vs %s", first.ID, second.ID)
	}

	creators, err := s.Creators.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(creators) != 1 {
		t.Errorf("expected 1 creator after re-import, got %d", len(creators))
	}

	videos, err := s.Videos.ListByCreator(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("list videos: %v", err)
	}
	if len(videos) != 2 {
		t.Errorf("expected 2 videos after re-import, got %d", len(videos))
	}
}

func TestImporterService_ImportFromURL_ResolveFailure(t *testing.T) {
	s := newMockStore()
	svc := NewImporterService(&mockResolver{err: errors.New("quota exceeded")}, s, nil)

	_, err := svc.ImportFromURL(context.Background(), "https://youtube.com/@techguru")
	if !errors.Is(err, db.ErrImportFailed) {
		t.Fatalf("expected ErrImportFailed, got %v", err)
	}
}

func TestImporterService_ProcessSuggestion(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantError bool
	}{
		{
			name: "successful import marks processed",
			url:  "https://youtube.com/@techguru",
		},
		{
			name:      "failed import records the error",
			url:       "https://youtube.com/@unknown",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMockStore()
			svc := NewImporterService(techGuruResolver(), s, nil)

			suggestion := models.NewSuggestion(tt.url)
			suggestion.URLHash = db.SuggestionURLHash(tt.url)
			if err := s.Suggestions.Create(context.Background(), suggestion); err != nil {
				t.Fatalf("seed suggestion: %v", err)
			}

			if err := svc.ProcessSuggestion(context.Background(), suggestion); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			stored, err := s.Suggestions.GetByID(context.Background(), suggestion.ID)
			if err != nil {
				t.Fatalf("get suggestion: %v", err)
			}
			if !stored.Processed {
				t.Error("suggestion should be marked processed")
			}
			if tt.wantError && stored.ProcessingError == nil {
				t.Error("expected a recorded processing error")
			}
			if !tt.wantError && stored.ProcessingError != nil {
				t.Errorf("unexpected processing error: %s", *stored.ProcessingError)
			}
		})
	}
}

func TestImporterService_SweepUnprocessed(t *testing.T) {
	s := newMockStore()
	svc := NewImporterService(techGuruResolver(), s, nil)

	pending := models.NewSuggestion("https://youtube.com/@techguru")
	pending.URLHash = db.SuggestionURLHash(pending.URL)
	done := models.NewSuggestion("https://youtube.com/@already")
	done.URLHash = db.SuggestionURLHash(done.URL)
	done.Processed = true

	for _, sg := range []*models.Suggestion{pending, done} {
		if err := s.Suggestions.Create(context.Background(), sg); err != nil {
			t.Fatalf("seed suggestion: %v", err)
		}
	}

	handled, err := svc.SweepUnprocessed(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if handled != 1 {
		t.Errorf("handled = %d, want 1", handled)
	}
}
