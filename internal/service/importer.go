package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Sanjay-Kirti/YouMDB/internal/db"
	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/internal/service/youtube"
	"github.com/Sanjay-Kirti/YouMDB/internal/store"
)

// ChannelResolver resolves channel references against the YouTube Data API.
// Implemented by youtube.Client.
type ChannelResolver interface {
	ResolveChannelURL(ctx context.Context, rawURL string) (*youtube.ChannelInfo, error)
	FetchRecentUploads(ctx context.Context, uploadsPlaylist string, maxResults int64) ([]*youtube.VideoInfo, error)
}

// ImporterService turns channel URLs and queued suggestions into stored
// creator profiles with their recent uploads.
type ImporterService struct {
	resolver    ChannelResolver
	creators    store.CreatorStore
	videos      store.VideoStore
	suggestions store.SuggestionStore
	maxUploads  int64
	logger      *zap.Logger
}

// NewImporterService creates a new importer service
func NewImporterService(resolver ChannelResolver, s *store.Store, logger *zap.Logger) *ImporterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImporterService{
		resolver:    resolver,
		creators:    s.Creators,
		videos:      s.Videos,
		suggestions: s.Suggestions,
		maxUploads:  10,
		logger:      logger,
	}
}

// ImportFromURL resolves a channel URL and upserts the creator profile,
// keyed on the YouTube channel id so repeated imports refresh statistics
// instead of duplicating the profile. Recent uploads are stored alongside.
func (s *ImporterService) ImportFromURL(ctx context.Context, rawURL string) (*models.Creator, error) {
	info, err := s.resolver.ResolveChannelURL(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", db.ErrImportFailed, err)
	}

	s.logger.Info("resolved channel",
		zap.String("channel_id", info.ChannelID),
		zap.String("title", info.Title))

	creator := models.NewCreator(info.Title)
	creator.YouTubeChannelID = &info.ChannelID
	creator.Bio = info.Description
	creator.Country = info.Country
	creator.ProfilePictureURL = info.ThumbnailURL
	creator.SubscriberCount = info.SubscriberCount
	creator.TotalViews = info.ViewCount

	if err := s.creators.Upsert(ctx, creator); err != nil {
		return nil, err
	}

	if err := s.importUploads(ctx, creator, info); err != nil {
		// The profile is already stored; failed video imports are not fatal.
		s.logger.Warn("failed to import recent uploads",
			zap.String("creator_id", creator.ID), zap.Error(err))
	}

	return creator, nil
}

// ProcessSuggestion runs the import for a queued suggestion and records
// the outcome on the suggestion row. Import failures are recorded, not
// returned, so a bad URL never wedges the worker.
func (s *ImporterService) ProcessSuggestion(ctx context.Context, suggestion *models.Suggestion) error {
	creator, err := s.ImportFromURL(ctx, suggestion.URL)
	if err != nil {
		s.logger.Warn("suggestion import failed",
			zap.String("suggestion_id", suggestion.ID),
			zap.String("url", suggestion.URL),
			zap.Error(err))
		return s.suggestions.MarkProcessed(ctx, suggestion.ID, err.Error())
	}

	s.logger.Info("suggestion imported",
		zap.String("suggestion_id", suggestion.ID),
		zap.String("creator_id", creator.ID))
	return s.suggestions.MarkProcessed(ctx, suggestion.ID, "")
}

// SweepUnprocessed imports every suggestion not yet processed. Returns the
// number of suggestions handled.
func (s *ImporterService) SweepUnprocessed(ctx context.Context) (int, error) {
	pending, err := s.suggestions.List(ctx, true)
	if err != nil {
		return 0, err
	}

	for _, suggestion := range pending {
		if err := s.ProcessSuggestion(ctx, suggestion); err != nil {
			return 0, err
		}
	}
	return len(pending), nil
}

func (s *ImporterService) importUploads(ctx context.Context, creator *models.Creator, info *youtube.ChannelInfo) error {
	uploads, err := s.resolver.FetchRecentUploads(ctx, info.UploadsPlaylist, s.maxUploads)
	if err != nil {
		return err
	}
	if len(uploads) == 0 {
		return nil
	}

	existing, err := s.videos.ListByCreator(ctx, creator.ID)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, v := range existing {
		seen[v.VideoURL] = true
	}

	var created int
	for _, upload := range uploads {
		videoURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", upload.VideoID)
		if seen[videoURL] {
			continue
		}

		video := models.NewVideo(creator.ID, upload.Title)
		video.Description = upload.Description
		video.ThumbnailURL = upload.ThumbnailURL
		video.VideoURL = videoURL
		video.Views = upload.Views
		if !upload.PublishedAt.IsZero() {
			publishDate := upload.PublishedAt
			video.PublishDate = &publishDate
		}

		if err := s.videos.Create(ctx, video); err != nil {
			return err
		}
		created++
	}

	s.logger.Debug("imported uploads",
		zap.String("creator_id", creator.ID),
		zap.Int("created", created),
		zap.Int("skipped", len(uploads)-created))
	return nil
}
