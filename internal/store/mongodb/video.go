package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanjay-Kirti/YouMDB/internal/models"
)

type videoStore struct {
	coll *mongo.Collection
}

func (s *videoStore) GetAll(ctx context.Context) ([]*models.Video, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, wrapMongoError(err, "get all videos")
	}

	return decodeVideos(ctx, cursor)
}

func (s *videoStore) GetByID(ctx context.Context, id string) (*models.Video, error) {
	var v models.Video
	if err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&v); err != nil {
		return nil, wrapMongoError(err, "get video by id")
	}
	return &v, nil
}

func (s *videoStore) ListByCreator(ctx context.Context, creatorID string) ([]*models.Video, error) {
	cursor, err := s.coll.Find(ctx,
		bson.M{"youtuber_id": creatorID},
		options.Find().SetSort(bson.M{"created_at": -1}),
	)
	if err != nil {
		return nil, wrapMongoError(err, "list videos by creator")
	}

	return decodeVideos(ctx, cursor)
}

func (s *videoStore) Create(ctx context.Context, v *models.Video) error {
	if _, err := s.coll.InsertOne(ctx, v); err != nil {
		return wrapMongoError(err, "create video")
	}
	return nil
}

func (s *videoStore) UpdateRating(ctx context.Context, id string, rating float64) error {
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"average_rating": rating, "updated_at": time.Now()}},
	)
	if err != nil {
		return wrapMongoError(err, "update video rating")
	}
	if result.MatchedCount == 0 {
		return wrapMongoError(mongo.ErrNoDocuments, "update video rating")
	}
	return nil
}

func (s *videoStore) UpdateSummary(ctx context.Context, id string, summary string) error {
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"summary": summary, "updated_at": time.Now()}},
	)
	if err != nil {
		return wrapMongoError(err, "update video summary")
	}
	if result.MatchedCount == 0 {
		return wrapMongoError(mongo.ErrNoDocuments, "update video summary")
	}
	return nil
}

func decodeVideos(ctx context.Context, cursor *mongo.Cursor) ([]*models.Video, error) {
	defer cursor.Close(ctx)

	var videos []*models.Video
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, wrapMongoError(err, "decode videos")
	}
	return videos, nil
}
