package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanjay-Kirti/YouMDB/internal/models"
)

type reviewStore struct {
	coll *mongo.Collection
}

func (s *reviewStore) GetByID(ctx context.Context, id string) (*models.Review, error) {
	var r models.Review
	if err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&r); err != nil {
		return nil, wrapMongoError(err, "get review by id")
	}
	return &r, nil
}

func (s *reviewStore) ListByEntity(ctx context.Context, entityID string, entityType models.EntityType) ([]*models.Review, error) {
	cursor, err := s.coll.Find(ctx,
		bson.M{"entity_id": entityID, "entity_type": string(entityType)},
		options.Find().SetSort(bson.M{"created_at": -1}),
	)
	if err != nil {
		return nil, wrapMongoError(err, "list reviews by entity")
	}
	defer cursor.Close(ctx)

	var reviews []*models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, wrapMongoError(err, "decode reviews")
	}
	return reviews, nil
}

func (s *reviewStore) Create(ctx context.Context, r *models.Review) error {
	if _, err := s.coll.InsertOne(ctx, r); err != nil {
		return wrapMongoError(err, "create review")
	}
	return nil
}

func (s *reviewStore) UpdateReactions(ctx context.Context, id string, likes, dislikes []string) error {
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{
			"likes":      likes,
			"dislikes":   dislikes,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return wrapMongoError(err, "update review reactions")
	}
	if result.MatchedCount == 0 {
		return wrapMongoError(mongo.ErrNoDocuments, "update review reactions")
	}
	return nil
}
