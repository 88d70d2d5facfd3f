package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sanjay-Kirti/YouMDB/internal/db"
	"github.com/Sanjay-Kirti/YouMDB/internal/db/testutil"
	"github.com/Sanjay-Kirti/YouMDB/internal/models"
)

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	td := testutil.SetupTestDatabase(t)
	defer td.Cleanup(t)

	s := New(td.Pool)
	ctx := context.Background()

	t.Run("creator lifecycle", func(t *testing.T) {
		td.TruncateTables(t)

		creator := models.NewCreator("TechGuru Alex")
		creator.Genre = "Technology"
		creator.Country = "USA"
		creator.State = "California"
		creator.SubscriberCount = 2500000
		require.NoError(t, s.Creators.Create(ctx, creator))

		got, err := s.Creators.GetByID(ctx, creator.ID)
		require.NoError(t, err)
		require.Equal(t, "TechGuru Alex", got.Name)
		require.Equal(t, int64(2500000), got.SubscriberCount)

		_, err = s.Creators.GetByID(ctx, "missing")
		require.True(t, errors.Is(err, db.ErrNotFound))
	})

	t.Run("search by name is case-insensitive", func(t *testing.T) {
		td.TruncateTables(t)

		for _, name := range []string{"TechGuru Alex", "alexandra", "Bob"} {
			require.NoError(t, s.Creators.Create(ctx, models.NewCreator(name)))
		}

		results, err := s.Creators.SearchByName(ctx, "alex")
		require.NoError(t, err)
		require.Len(t, results, 2)
	})

	t.Run("find by location", func(t *testing.T) {
		td.TruncateTables(t)

		a := models.NewCreator("A")
		a.Country = "USA"
		a.State = "Texas"
		b := models.NewCreator("B")
		b.Country = "USA"
		b.State = "California"
		c := models.NewCreator("C")
		c.Country = "India"
		for _, creator := range []*models.Creator{a, b, c} {
			require.NoError(t, s.Creators.Create(ctx, creator))
		}

		results, err := s.Creators.FindByLocation(ctx, "USA", "")
		require.NoError(t, err)
		require.Len(t, results, 2)

		results, err = s.Creators.FindByLocation(ctx, "USA", "Texas")
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Equal(t, "A", results[0].Name)
	})

	t.Run("upsert keyed on channel id", func(t *testing.T) {
		td.TruncateTables(t)

		channelID := "UCtech123"
		first := models.NewCreator("TechGuru Alex")
		first.YouTubeChannelID = &channelID
		first.SubscriberCount = 100
		require.NoError(t, s.Creators.Upsert(ctx, first))

		second := models.NewCreator("TechGuru Alex")
		second.YouTubeChannelID = &channelID
		second.SubscriberCount = 200
		require.NoError(t, s.Creators.Upsert(ctx, second))

		all, err := s.Creators.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		require.Equal(t, int64(200), all[0].SubscriberCount)
		require.Equal(t, first.ID, all[0].ID)
	})

	t.Run("update rating and insights", func(t *testing.T) {
		td.TruncateTables(t)

		creator := models.NewCreator("TechGuru Alex")
		require.NoError(t, s.Creators.Create(ctx, creator))

		require.NoError(t, s.Creators.UpdateRating(ctx, creator.ID, 4.5))
		require.NoError(t, s.Creators.UpdateInsights(ctx, creator.ID, "steady growth"))

		got, err := s.Creators.GetByID(ctx, creator.ID)
		require.NoError(t, err)
		require.Equal(t, 4.5, got.AverageRating)
		require.NotNil(t, got.Insights)
		require.Equal(t, "steady growth", *got.Insights)

		err = s.Creators.UpdateRating(ctx, "missing", 1)
		require.True(t, errors.Is(err, db.ErrNotFound))
	})

	t.Run("video listing by creator", func(t *testing.T) {
		td.TruncateTables(t)

		creator := models.NewCreator("TechGuru Alex")
		require.NoError(t, s.Creators.Create(ctx, creator))

		v1 := models.NewVideo(creator.ID, "Building a PC")
		v2 := models.NewVideo(creator.ID, "Phone Review")
		other := models.NewVideo("other-creator", "Unrelated")
		for _, v := range []*models.Video{v1, v2, other} {
			require.NoError(t, s.Videos.Create(ctx, v))
		}

		videos, err := s.Videos.ListByCreator(ctx, creator.ID)
		require.NoError(t, err)
		require.Len(t, videos, 2)
	})

	t.Run("video summary update", func(t *testing.T) {
		td.TruncateTables(t)

		creator := models.NewCreator("TechGuru Alex")
		require.NoError(t, s.Creators.Create(ctx, creator))
		video := models.NewVideo(creator.ID, "Building a PC")
		require.NoError(t, s.Videos.Create(ctx, video))

		require.NoError(t, s.Videos.UpdateSummary(ctx, video.ID, "A build walkthrough."))

		got, err := s.Videos.GetByID(ctx, video.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Summary)
		require.Equal(t, "A build walkthrough.", *got.Summary)

		err = s.Videos.UpdateSummary(ctx, "missing", "x")
		require.True(t, errors.Is(err, db.ErrNotFound))
	})

	t.Run("review reactions round-trip text arrays", func(t *testing.T) {
		td.TruncateTables(t)

		rating := 4
		review := models.NewReview("entity-1", models.EntityTypeYouTuber, "user-1")
		review.Rating = &rating
		review.ReviewText = "solid channel"
		require.NoError(t, s.Reviews.Create(ctx, review))

		require.NoError(t, s.Reviews.UpdateReactions(ctx, review.ID, []string{"u1", "u2"}, []string{"u3"}))

		got, err := s.Reviews.GetByID(ctx, review.ID)
		require.NoError(t, err)
		require.Equal(t, []string{"u1", "u2"}, got.Likes)
		require.Equal(t, []string{"u3"}, got.Dislikes)
		require.NotNil(t, got.Rating)
		require.Equal(t, 4, *got.Rating)
	})

	t.Run("review rating check constraint", func(t *testing.T) {
		td.TruncateTables(t)

		rating := 7
		review := models.NewReview("entity-1", models.EntityTypeYouTuber, "user-1")
		review.Rating = &rating

		err := s.Reviews.Create(ctx, review)
		require.Error(t, err)
		require.True(t, errors.Is(err, db.ErrInvalidArgument))
	})

	t.Run("suggestion dedupe on url hash", func(t *testing.T) {
		td.TruncateTables(t)

		first := models.NewSuggestion("https://youtube.com/@techguru")
		first.URLHash = db.SuggestionURLHash(first.URL)
		require.NoError(t, s.Suggestions.Create(ctx, first))

		dup := models.NewSuggestion("https://YouTube.com/@TechGuru/")
		dup.URLHash = db.SuggestionURLHash(dup.URL)
		err := s.Suggestions.Create(ctx, dup)
		require.True(t, errors.Is(err, db.ErrDuplicateKey))
	})

	t.Run("suggestion processing lifecycle", func(t *testing.T) {
		td.TruncateTables(t)

		suggestion := models.NewSuggestion("https://youtube.com/@techguru")
		suggestion.URLHash = db.SuggestionURLHash(suggestion.URL)
		require.NoError(t, s.Suggestions.Create(ctx, suggestion))

		pending, err := s.Suggestions.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, pending, 1)

		require.NoError(t, s.Suggestions.MarkProcessed(ctx, suggestion.ID, ""))

		pending, err = s.Suggestions.List(ctx, true)
		require.NoError(t, err)
		require.Empty(t, pending)

		got, err := s.Suggestions.GetByID(ctx, suggestion.ID)
		require.NoError(t, err)
		require.True(t, got.Processed)
		require.NotNil(t, got.ProcessedAt)
		require.Nil(t, got.ProcessingError)
	})
}
