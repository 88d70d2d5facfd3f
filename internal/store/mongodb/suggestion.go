package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanjay-Kirti/YouMDB/internal/models"
)

type suggestionStore struct {
	coll *mongo.Collection
}

func (s *suggestionStore) GetByID(ctx context.Context, id string) (*models.Suggestion, error) {
	var sg models.Suggestion
	if err := s.coll.FindOne(ctx, bson.M{"id": id}).Decode(&sg); err != nil {
		return nil, wrapMongoError(err, "get suggestion by id")
	}
	return &sg, nil
}

func (s *suggestionStore) List(ctx context.Context, onlyUnprocessed bool) ([]*models.Suggestion, error) {
	filter := bson.M{}
	if onlyUnprocessed {
		filter["processed"] = false
	}

	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, wrapMongoError(err, "list suggestions")
	}
	defer cursor.Close(ctx)

	var suggestions []*models.Suggestion
	if err := cursor.All(ctx, &suggestions); err != nil {
		return nil, wrapMongoError(err, "decode suggestions")
	}
	return suggestions, nil
}

func (s *suggestionStore) Create(ctx context.Context, sg *models.Suggestion) error {
	if _, err := s.coll.InsertOne(ctx, sg); err != nil {
		return wrapMongoError(err, "create suggestion")
	}
	return nil
}

func (s *suggestionStore) MarkProcessed(ctx context.Context, id string, processingError string) error {
	set := bson.M{
		"processed":    true,
		"processed_at": time.Now(),
	}
	if processingError != "" {
		set["processing_error"] = processingError
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return wrapMongoError(err, "mark suggestion processed")
	}
	if result.MatchedCount == 0 {
		return wrapMongoError(mongo.ErrNoDocuments, "mark suggestion processed")
	}
	return nil
}
