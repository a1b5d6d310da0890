package mediastore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/communityhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("media_items")}
}

// ErrNotFound is returned by lookups that match nothing.
var ErrNotFound = errors.New("media item not found")

// Create records the metadata for an uploaded file.
func (s *Store) Create(ctx context.Context, m models.MediaItem) (models.MediaItem, error) {
	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now()
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.MediaItem{}, err
	}
	return m, nil
}

// List returns gallery items, newest first.
func (s *Store) List(ctx context.Context, limit int64) ([]models.MediaItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.MediaItem{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads one item by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.MediaItem, error) {
	var m models.MediaItem
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Delete removes an item's metadata, scoped to its owner.
func (s *Store) Delete(ctx context.Context, id, ownerID primitive.ObjectID) (*models.MediaItem, error) {
	var m models.MediaItem
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}
