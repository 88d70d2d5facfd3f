package mongodb

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanjay-Kirti/YouMDB/internal/models"
)

type creatorStore struct {
	coll *mongo.Collection
}

func (s *creatorStore) GetAll(ctx context.Context) ([]*models.Creator, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, wrapMongoError(err, "get all creators")
	}

	return decodeCreators(ctx, cursor)
}

func (s *creatorStore) GetByID(ctx context.Context, id string) (*models.Creator, error) {
	var c models.Creator
	if err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		return nil, wrapMongoError(err, "get creator by id")
	}
	return &c, nil
}

func (s *creatorStore) SearchByName(ctx context.Context, nameSubstring string) ([]*models.Creator, error) {
	filter := bson.M{"name": primitive.Regex{
		Pattern: regexp.QuoteMeta(nameSubstring),
		Options: "i",
	}}

	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, wrapMongoError(err, "search creators by name")
	}

	return decodeCreators(ctx, cursor)
}

func (s *creatorStore) FindByLocation(ctx context.Context, country, state string) ([]*models.Creator, error) {
	filter := bson.M{"country": country}
	if state != "" {
		filter["state"] = state
	}

	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.M{"name": 1}))
	if err != nil {
		return nil, wrapMongoError(err, "find creators by location")
	}

	return decodeCreators(ctx, cursor)
}

func (s *creatorStore) Create(ctx context.Context, c *models.Creator) error {
	if _, err := s.coll.InsertOne(ctx, c); err != nil {
		return wrapMongoError(err, "create creator")
	}
	return nil
}

func (s *creatorStore) Upsert(ctx context.Context, c *models.Creator) error {
	if c.YouTubeChannelID == nil {
		return s.Create(ctx, c)
	}

	update := bson.M{
		"$set": bson.M{
			"name":                c.Name,
			"bio":                 c.Bio,
			"country":             c.Country,
			"profile_picture_url": c.ProfilePictureURL,
			"subscriber_count":    c.SubscriberCount,
			"total_views":         c.TotalViews,
			"updated_at":          c.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"id":                 c.ID,
			"youtube_channel_id": c.YouTubeChannelID,
			"genre":              c.Genre,
			"state":              c.State,
			"average_rating":     c.AverageRating,
			"created_at":         c.CreatedAt,
		},
	}

	_, err := s.coll.UpdateOne(ctx,
		bson.M{"youtube_channel_id": c.YouTubeChannelID},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return wrapMongoError(err, "upsert creator")
	}

	// Read back the stored id so callers see the surviving record.
	var stored models.Creator
	if err := s.coll.FindOne(ctx, bson.M{"youtube_channel_id": c.YouTubeChannelID}).Decode(&stored); err != nil {
		return wrapMongoError(err, "upsert creator")
	}
	c.ID = stored.ID
	c.CreatedAt = stored.CreatedAt

	return nil
}

func (s *creatorStore) UpdateRating(ctx context.Context, id string, rating float64) error {
	return s.updateField(ctx, id, "average_rating", rating, "update creator rating")
}

func (s *creatorStore) UpdateInsights(ctx context.Context, id string, insights string) error {
	return s.updateField(ctx, id, "insights", insights, "update creator insights")
}

func (s *creatorStore) updateField(ctx context.Context, id, field string, value interface{}, operation string) error {
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{field: value, "updated_at": time.Now()}},
	)
	if err != nil {
		return wrapMongoError(err, operation)
	}
	if result.MatchedCount == 0 {
		return wrapMongoError(mongo.ErrNoDocuments, operation)
	}
	return nil
}

func decodeCreators(ctx context.Context, cursor *mongo.Cursor) ([]*models.Creator, error) {
	defer cursor.Close(ctx)

	var creators []*models.Creator
	if err := cursor.All(ctx, &creators); err != nil {
		return nil, wrapMongoError(err, "decode creators")
	}
	return creators, nil
}
