package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/harentsoaR/sewa-finder/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoProfileStore keeps profiles keyed by identity id.
type MongoProfileStore struct {
	DB *mongo.Database
}

func NewMongoProfileStore(db *mongo.Database) *MongoProfileStore {
	return &MongoProfileStore{DB: db}
}

func (s *MongoProfileStore) CreateProfile(ctx context.Context, collection string, p models.Profile) error {
	p.ID = p.UID
	_, err := s.DB.Collection(collection).InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s/%s", ErrProfileExists, collection, p.UID)
		}
		return fmt.Errorf("services: insert %s/%s: %w", collection, p.UID, err)
	}
	return nil
}

func (s *MongoProfileStore) HasEmail(ctx context.Context, collection, email string) (bool, error) {
	n, err := s.DB.Collection(collection).CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("services: query %s by email: %w", collection, err)
	}
	return n > 0, nil
}

func (s *MongoProfileStore) GetProfile(ctx context.Context, collection, uid string) (*models.Profile, error) {
	var p models.Profile
	err := s.DB.Collection(collection).FindOne(ctx, bson.M{"_id": uid}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("services: get %s/%s: %w", collection, uid, err)
	}
	return &p, nil
}

func (s *MongoProfileStore) Ping(ctx context.Context) error {
	return s.DB.Client().Ping(ctx, readpref.Primary())
}
