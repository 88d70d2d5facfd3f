package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Sanjay-Kirti/YouMDB/internal/db"
	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/internal/store"
)

func intPtr(n int) *int { return &n }

func seedCreator(t *testing.T, s *store.Store, name string) *models.Creator {
	t.Helper()
	c := models.NewCreator(name)
	if err := s.Creators.Create(context.Background(), c); err != nil {
		t.Fatalf("seed creator: %v", err)
	}
	return c
}

func seedVideo(t *testing.T, s *store.Store, creatorID, title string) *models.Video {
	t.Helper()
	v := models.NewVideo(creatorID, title)
	if err := s.Videos.Create(context.Background(), v); err != nil {
		t.Fatalf("seed video: %v", err)
	}
	return v
}

func TestReviewService_AddReview(t *testing.T) {
	user := models.Session{UserID: "user-1"}

	tests := []struct {
		name    string
		session models.Session
		input   func(s *store.Store) ReviewInput
		wantErr error
	}{
		{
			name:    "rating only review for a creator",
			session: user,
			input: func(s *store.Store) ReviewInput {
				c := seedCreator(t, s, "TechGuru Alex")
				return ReviewInput{EntityID: c.ID, EntityType: "youtuber", Rating: intPtr(5)}
			},
		},
		{
			name:    "text only review for a video",
			session: user,
			input: func(s *store.Store) ReviewInput {
				c := seedCreator(t, s, "TechGuru Alex")
				v := seedVideo(t, s, c.ID, "Building a PC")
				return ReviewInput{EntityID: v.ID, EntityType: "video", ReviewText: "great walkthrough"}
			},
		},
		{
			name:    "anonymous session rejected",
			session: models.Session{Anonymous: true},
			input: func(s *store.Store) ReviewInput {
				c := seedCreator(t, s, "TechGuru Alex")
				return ReviewInput{EntityID: c.ID, EntityType: "youtuber", Rating: intPtr(4)}
			},
			wantErr: db.ErrPermissionDenied,
		},
		{
			name:    "empty session rejected",
			session: models.Session{},
			input: func(s *store.Store) ReviewInput {
				c := seedCreator(t, s, "TechGuru Alex")
				return ReviewInput{EntityID: c.ID, EntityType: "youtuber", Rating: intPtr(4)}
			},
			wantErr: db.ErrPermissionDenied,
		},
		{
			name:    "rating above range rejected",
			session: user,
			input: func(s *store.Store) ReviewInput {
				c := seedCreator(t, s, "TechGuru Alex")
				return ReviewInput{EntityID: c.ID, EntityType: "youtuber", Rating: intPtr(6)}
			},
			wantErr: db.ErrInvalidArgument,
		},
		{
			name:    "rating below range rejected",
			session: user,
			input: func(s *store.Store) ReviewInput {
				c := seedCreator(t, s, "TechGuru Alex")
				return ReviewInput{EntityID: c.ID, EntityType: "youtuber", Rating: intPtr(0)}
			},
			wantErr: db.ErrInvalidArgument,
		},
		{
			name:    "neither rating nor text rejected",
			session: user,
			input: func(s *store.Store) ReviewInput {
				c := seedCreator(t, s, "TechGuru Alex")
				return ReviewInput{EntityID: c.ID, EntityType: "youtuber"}
			},
			wantErr: db.ErrInvalidArgument,
		},
		{
			name:    "unknown entity type rejected",
			session: user,
			input: func(s *store.Store) ReviewInput {
				return ReviewInput{EntityID: "x", EntityType: "playlist", Rating: intPtr(3)}
			},
			wantErr: db.ErrInvalidArgument,
		},
		{
			name:    "missing entity yields not found",
			session: user,
			input: func(s *store.Store) ReviewInput {
				return ReviewInput{EntityID: "nope", EntityType: "youtuber", Rating: intPtr(3)}
			},
			wantErr: db.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMockStore()
			svc := NewReviewService(s, nil, nil)
			input := tt.input(s)

			review, err := svc.AddReview(context.Background(), tt.session, input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if stored := len(s.Reviews.(*mockReviewStore).reviews); stored != 0 {
					t.Errorf("rejected write stored %d review(s), want none", stored)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if review.UserID != tt.session.UserID {
				t.Errorf("UserID = %q, want %q", review.UserID, tt.session.UserID)
			}
			if review.Likes == nil || review.Dislikes == nil {
				t.Error("reaction sets should be initialized empty, not nil")
			}
		})
	}
}

func TestReviewService_AddReview_RefreshesRatingInline(t *testing.T) {
	s := newMockStore()
	svc := NewReviewService(s, nil, nil)
	c := seedCreator(t, s, "TechGuru Alex")
	user := models.Session{UserID: "user-1"}

	for _, rating := range []int{5, 4} {
		_, err := svc.AddReview(context.Background(), models.Session{UserID: user.UserID}, ReviewInput{
			EntityID:   c.ID,
			EntityType: "youtuber",
			Rating:     intPtr(rating),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	creators := s.Creators.(*mockCreatorStore)
	if got := creators.ratings[c.ID]; got != 4.5 {
		t.Errorf("stored rating = %v, want 4.5", got)
	}
}

type recordingEnqueuer struct {
	entityIDs []string
}

func (e *recordingEnqueuer) EnqueueRatingRefresh(ctx context.Context, entityID, entityType string) error {
	e.entityIDs = append(e.entityIDs, entityID)
	return nil
}

func TestReviewService_AddReview_EnqueuesRefresh(t *testing.T) {
	s := newMockStore()
	enq := &recordingEnqueuer{}
	svc := NewReviewService(s, enq, nil)
	c := seedCreator(t, s, "TechGuru Alex")

	_, err := svc.AddReview(context.Background(), models.Session{UserID: "user-1"}, ReviewInput{
		EntityID:   c.ID,
		EntityType: "youtuber",
		Rating:     intPtr(5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(enq.entityIDs) != 1 || enq.entityIDs[0] != c.ID {
		t.Errorf("expected one enqueued refresh for %s, got %v", c.ID, enq.entityIDs)
	}

	// Queued refresh means no inline write happened.
	creators := s.Creators.(*mockCreatorStore)
	if _, ok := creators.ratings[c.ID]; ok {
		t.Error("rating should not be written inline when the queue accepts the task")
	}
}

func TestReviewService_ToggleReaction(t *testing.T) {
	type step struct {
		userID string
		like   bool
	}

	tests := []struct {
		name         string
		steps        []step
		wantLikes    []string
		wantDislikes []string
	}{
		{
			name:      "like adds the user",
			steps:     []step{{"u1", true}},
			wantLikes: []string{"u1"},
		},
		{
			name:  "like twice removes the user",
			steps: []step{{"u1", true}, {"u1", true}},
		},
		{
			name:         "dislike after like moves the user",
			steps:        []step{{"u1", true}, {"u1", false}},
			wantDislikes: []string{"u1"},
		},
		{
			name:         "dislike toggles off and back on",
			steps:        []step{{"u1", false}, {"u1", false}, {"u1", false}},
			wantDislikes: []string{"u1"},
		},
		{
			name:         "independent users",
			steps:        []step{{"u1", true}, {"u2", false}, {"u3", true}},
			wantLikes:    []string{"u1", "u3"},
			wantDislikes: []string{"u2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMockStore()
			svc := NewReviewService(s, nil, nil)
			c := seedCreator(t, s, "TechGuru Alex")

			review, err := svc.AddReview(context.Background(), models.Session{UserID: "author"}, ReviewInput{
				EntityID:   c.ID,
				EntityType: "youtuber",
				Rating:     intPtr(4),
			})
			if err != nil {
				t.Fatalf("seed review: %v", err)
			}

			var result *models.Review
			for _, step := range tt.steps {
				result, err = svc.ToggleReaction(context.Background(), models.Session{UserID: step.userID}, review.ID, step.like)
				if err != nil {
					t.Fatalf("toggle: %v", err)
				}
			}

			if !equalSets(result.Likes, tt.wantLikes) {
				t.Errorf("Likes = %v, want %v", result.Likes, tt.wantLikes)
			}
			if !equalSets(result.Dislikes, tt.wantDislikes) {
				t.Errorf("Dislikes = %v, want %v", result.Dislikes, tt.wantDislikes)
			}
			for _, id := range result.Likes {
				for _, other := range result.Dislikes {
					if id == other {
						t.Errorf("user %s appears in both likes and dislikes", id)
					}
				}
			}
		})
	}
}

func TestReviewService_ToggleReaction_Anonymous(t *testing.T) {
	s := newMockStore()
	svc := NewReviewService(s, nil, nil)

	_, err := svc.ToggleReaction(context.Background(), models.Session{Anonymous: true}, "any", true)
	if !errors.Is(err, db.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestReviewService_ToggleReaction_MissingReview(t *testing.T) {
	s := newMockStore()
	svc := NewReviewService(s, nil, nil)

	_, err := svc.ToggleReaction(context.Background(), models.Session{UserID: "u1"}, "missing", true)
	if !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReviewService_RefreshRating_SkipsUnrated(t *testing.T) {
	s := newMockStore()
	svc := NewReviewService(s, nil, nil)
	c := seedCreator(t, s, "TechGuru Alex")

	reviews := []*models.Review{
		{Rating: intPtr(5)},
		{Rating: nil},
		{Rating: intPtr(2)},
	}
	for _, r := range reviews {
		review := models.NewReview(c.ID, models.EntityTypeYouTuber, "u")
		review.Rating = r.Rating
		if err := s.Reviews.Create(context.Background(), review); err != nil {
			t.Fatalf("seed review: %v", err)
		}
	}

	if err := svc.RefreshRating(context.Background(), c.ID, models.EntityTypeYouTuber); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	creators := s.Creators.(*mockCreatorStore)
	if got := creators.ratings[c.ID]; got != 3.5 {
		t.Errorf("stored rating = %v, want 3.5", got)
	}
}

func TestAverageRating(t *testing.T) {
	if got := AverageRating(nil); got != 0 {
		t.Errorf("AverageRating(nil) = %v, want 0", got)
	}
	if got := AverageRating([]*models.Review{{Rating: nil}}); got != 0 {
		t.Errorf("AverageRating(unrated) = %v, want 0", got)
	}
}

func equalSets(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	seen := make(map[string]bool, len(got))
	for _, id := range got {
		seen[id] = true
	}
	for _, id := range want {
		if !seen[id] {
			return false
		}
	}
	return true
}
