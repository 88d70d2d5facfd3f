// Package mongodb implements the record-store contract on MongoDB. Name
// search uses a case-insensitive regex; like/dislike sets are stored as
// string arrays on the review document.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanjay-Kirti/YouMDB/internal/db"
	"github.com/Sanjay-Kirti/YouMDB/internal/store"
)

// Collection names within the YouMDB database.
const (
	collectionCreators    = "youtubers"
	collectionVideos      = "videos"
	collectionReviews     = "reviews"
	collectionSuggestions = "channel_suggestions"
)

// Connect dials MongoDB and returns a store.Store over the named database.
func Connect(ctx context.Context, uri, database string) (*store.Store, *mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	d := client.Database(database)
	s := &store.Store{
		Creators:    &creatorStore{coll: d.Collection(collectionCreators)},
		Videos:      &videoStore{coll: d.Collection(collectionVideos)},
		Reviews:     &reviewStore{coll: d.Collection(collectionReviews)},
		Suggestions: &suggestionStore{coll: d.Collection(collectionSuggestions)},
	}

	return s, client, nil
}

// wrapMongoError maps driver errors onto the shared taxonomy.
func wrapMongoError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", operation, db.ErrNotFound)
	}

	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", operation, db.ErrDuplicateKey)
	}

	return fmt.Errorf("%s: %w: %v", operation, db.ErrStore, err)
}
